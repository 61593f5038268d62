package ledger

import (
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/money"
)

const (
	AllocatedOffsetDescription = "MINUS TOTAL ALLOCATED TO SCOUTS"
	scoutBalancePrefix         = "Current Balance: "
)

// Item is one row of an itemized audit list.
type Item struct {
	TransactionID string          `json:"transaction_id,omitempty"`
	Description   string          `json:"description"`
	Amount        decimal.Decimal `json:"amount"`
	Date          *time.Time      `json:"date,omitempty"`
}

// SkippedRecord is a transaction left out of a fold because it failed validation.
type SkippedRecord struct {
	TransactionID string `json:"transaction_id"`
	Reason        string `json:"reason"`
}

// Summary is the reconciled view of a troop's money.
type Summary struct {
	TroopIncome           decimal.Decimal `json:"troop_income"`
	TroopExpenses         decimal.Decimal `json:"troop_expenses"`
	ScoutFundraisingShare decimal.Decimal `json:"scout_fundraising_share"`
	IBADepositsTotal      decimal.Decimal `json:"iba_deposits_total"`
	OrganizerCashTotal    decimal.Decimal `json:"organizer_cash_total"`

	TroopFunds          decimal.Decimal `json:"troop_funds"`
	AllocatedScoutFunds decimal.Decimal `json:"allocated_scout_funds"`
	UnallocatedReserves decimal.Decimal `json:"unallocated_reserves"`
	TotalBankBalance    decimal.Decimal `json:"total_bank_balance"`

	TroopItems          []Item `json:"troop_items"`
	IncomeItems         []Item `json:"income_items"`
	ExpenseItems        []Item `json:"expense_items"`
	ReserveItems        []Item `json:"reserve_items"`
	OrganizerCashItems  []Item `json:"organizer_cash_items"`
	ScoutAccountItems   []Item `json:"scout_account_items"`
	ReserveDisplayItems []Item `json:"reserve_display_items"`
	BankAuditItems      []Item `json:"bank_audit_items"`

	ScoutActivity []ScoutAudit `json:"scout_activity"`

	Skipped           []SkippedRecord `json:"skipped"`
	IgnoredCount      int             `json:"ignored_count"`
	PocketCreditCount int             `json:"pocket_credit_count"`
}

// Reconciles checks that the four headline balances decompose the bank-affecting buckets.
func (s *Summary) Reconciles() bool {
	expected := s.TroopIncome.Sub(s.TroopExpenses).Add(s.IBADepositsTotal).Add(s.ScoutFundraisingShare)
	return s.TotalBankBalance.Equal(expected) &&
		s.TroopFunds.Add(s.AllocatedScoutFunds).Add(s.UnallocatedReserves).Equal(s.TotalBankBalance)
}

// Aggregate folds the APPROVED transactions of one troop into a Summary. Scouts supply the
// authoritative IBA balances; only ACTIVE scouts count toward allocated funds.
//
// Records that fail validation are skipped and listed in Summary.Skipped. The fold never fails.
func Aggregate(transactions []domain.Transaction, scouts []domain.Scout) *Summary {
	s := &Summary{
		TroopIncome:           money.Zero,
		TroopExpenses:         money.Zero,
		ScoutFundraisingShare: money.Zero,
		IBADepositsTotal:      money.Zero,
		OrganizerCashTotal:    money.Zero,
		TroopItems:            []Item{},
		IncomeItems:           []Item{},
		ExpenseItems:          []Item{},
		ReserveItems:          []Item{},
		OrganizerCashItems:    []Item{},
		ScoutAccountItems:     []Item{},
		Skipped:               []SkippedRecord{},
	}

	approved := make([]domain.Transaction, 0, len(transactions))
	for i := range transactions {
		tx := &transactions[i]
		if !tx.IsApproved() {
			continue
		}
		approved = append(approved, *tx)

		c, err := Classify(tx, tx.Campaign)
		if err != nil {
			s.Skipped = append(s.Skipped, SkippedRecord{TransactionID: tx.ID, Reason: err.Error()})
			continue
		}
		switch {
		case c.Ignored:
			s.IgnoredCount++
			continue
		case c.PocketCredit:
			s.PocketCreditCount++
			continue
		}

		for _, d := range c.Deltas {
			s.apply(tx, d)
		}
	}

	s.TroopFunds = s.TroopIncome.Sub(s.TroopExpenses)

	active := activeScouts(scouts)
	s.AllocatedScoutFunds = money.Zero
	for _, scout := range active {
		s.AllocatedScoutFunds = s.AllocatedScoutFunds.Add(scout.IBABalance)
		s.ScoutAccountItems = append(s.ScoutAccountItems, Item{
			Description: scoutBalancePrefix + scout.Name,
			Amount:      scout.IBABalance,
		})
	}

	s.UnallocatedReserves = s.ScoutFundraisingShare.Add(s.IBADepositsTotal).Sub(s.AllocatedScoutFunds)
	s.TotalBankBalance = s.TroopFunds.Add(s.AllocatedScoutFunds).Add(s.UnallocatedReserves)

	s.ReserveDisplayItems = make([]Item, 0, len(s.ReserveItems)+1)
	s.ReserveDisplayItems = append(s.ReserveDisplayItems, s.ReserveItems...)
	s.ReserveDisplayItems = append(s.ReserveDisplayItems, Item{
		Description: AllocatedOffsetDescription,
		Amount:      s.AllocatedScoutFunds.Neg(),
	})

	s.BankAuditItems = make([]Item, 0, len(s.TroopItems)+len(s.ReserveItems))
	s.BankAuditItems = append(s.BankAuditItems, s.TroopItems...)
	s.BankAuditItems = append(s.BankAuditItems, s.ReserveItems...)

	s.ScoutActivity = AuditScouts(approved, scouts)

	return s
}

func (s *Summary) apply(tx *domain.Transaction, d Delta) {
	date := tx.CreatedAt
	item := Item{
		TransactionID: tx.ID,
		Description:   describe(tx, d.Label),
		Amount:        d.Amount,
		Date:          &date,
	}

	switch d.Bucket {
	case BucketTroopIncome:
		s.TroopIncome = s.TroopIncome.Add(d.Amount)
		s.TroopItems = append(s.TroopItems, item)
		s.IncomeItems = append(s.IncomeItems, item)
	case BucketTroopExpense:
		s.TroopExpenses = s.TroopExpenses.Add(d.Amount)
		outflow := item
		outflow.Amount = d.Amount.Neg()
		s.TroopItems = append(s.TroopItems, outflow)
		s.ExpenseItems = append(s.ExpenseItems, item)
	case BucketScoutFundraisingShare:
		s.ScoutFundraisingShare = s.ScoutFundraisingShare.Add(d.Amount)
		s.ReserveItems = append(s.ReserveItems, item)
	case BucketIBADeposit:
		s.IBADepositsTotal = s.IBADepositsTotal.Add(d.Amount)
		s.ReserveItems = append(s.ReserveItems, item)
	case BucketOrganizerCash:
		s.OrganizerCashTotal = s.OrganizerCashTotal.Add(d.Amount)
		s.OrganizerCashItems = append(s.OrganizerCashItems, item)
	}
}

// describe renders the itemized description, falling back to a per-type placeholder when the
// transaction has none.
func describe(tx *domain.Transaction, label string) string {
	desc := tx.Description
	if desc == "" {
		switch tx.Type {
		case domain.TransactionTypeScoutCashTurnIn:
			desc = "Scout Cash Turn-in"
		case domain.TransactionTypeEventPayment:
			desc = "Organizer Collected Cash"
		case domain.TransactionTypeInternalTransfer:
			desc = "Internal Transfer"
		default:
			desc = "No Description"
		}
	}
	if label == "" {
		return desc
	}
	return desc + " " + label
}

func activeScouts(scouts []domain.Scout) []domain.Scout {
	active := make([]domain.Scout, 0, len(scouts))
	for _, scout := range scouts {
		if scout.IsActive() {
			active = append(active, scout)
		}
	}
	sort.SliceStable(active, func(i, j int) bool {
		if active[i].Name != active[j].Name {
			return active[i].Name < active[j].Name
		}
		return active[i].ID < active[j].ID
	})
	return active
}
