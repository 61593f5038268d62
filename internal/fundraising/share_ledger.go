package fundraising

import (
	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"

	"trooptreasury-engine/internal/money"
)

const unknownScoutName = "Unknown"

type shareEntry struct {
	name    string
	amount  decimal.Decimal
	details []string
}

// shareLedger accumulates unrounded per-scout amounts keyed and ordered by scout id. pooled is the
// exact total the shares were carved from and sets the rounded total.
type shareLedger struct {
	tree   *redblacktree.Tree
	pooled decimal.Decimal
}

func newShareLedger() *shareLedger {
	return &shareLedger{tree: redblacktree.NewWithStringComparator(), pooled: money.Zero}
}

// pool records amount as handed out to the scouts added for it.
func (l *shareLedger) pool(amount decimal.Decimal) {
	if amount.IsPositive() {
		l.pooled = l.pooled.Add(amount)
	}
}

// add credits amount to scoutID. Zero amounts are dropped so nobody appears with an empty share.
func (l *shareLedger) add(scoutID, name string, amount decimal.Decimal, detail string) {
	if scoutID == "" || !amount.IsPositive() {
		return
	}

	var entry *shareEntry
	if v, found := l.tree.Get(scoutID); found {
		entry = v.(*shareEntry)
	} else {
		entry = &shareEntry{amount: money.Zero}
		l.tree.Put(scoutID, entry)
	}

	if entry.name == "" {
		entry.name = name
	}
	entry.amount = entry.amount.Add(amount)
	if detail != "" {
		entry.details = append(entry.details, detail)
	}
}

// shares rounds the accumulated amounts to cents by largest remainder so they add up to the pooled
// total rounded to cents, in scout id order.
func (l *shareLedger) shares() []Share {
	ids := make([]string, 0, l.tree.Size())
	entries := make([]*shareEntry, 0, l.tree.Size())
	amounts := make([]decimal.Decimal, 0, l.tree.Size())

	it := l.tree.Iterator()
	for it.Next() {
		entry := it.Value().(*shareEntry)
		ids = append(ids, it.Key().(string))
		entries = append(entries, entry)
		amounts = append(amounts, entry.amount)
	}

	rounded := money.ApportionTo(amounts, l.pooled)
	out := make([]Share, 0, len(ids))
	for i, id := range ids {
		name := entries[i].name
		if name == "" {
			name = unknownScoutName
		}
		out = append(out, Share{
			ScoutID:   id,
			ScoutName: name,
			Amount:    rounded[i],
			Details:   entries[i].details,
		})
	}
	return out
}
