package ledger

import (
	"strings"

	"github.com/shopspring/decimal"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/money"
)

// Bucket is a ledger pool a transaction can move money into.
type Bucket string

const (
	BucketTroopIncome           Bucket = "TROOP_INCOME"
	BucketTroopExpense          Bucket = "TROOP_EXPENSE"
	BucketScoutFundraisingShare Bucket = "SCOUT_FUNDRAISING_SHARE"
	BucketIBADeposit            Bucket = "IBA_DEPOSIT"
	BucketOrganizerCash         Bucket = "ORGANIZER_CASH"
)

// PocketCreditMarker in a reimbursement description means the organizer was credited for cash
// already in hand. Such rows never reach the bank.
const PocketCreditMarker = "Cash Collection Credit"

const (
	LabelTroopShare      = "(Troop Share)"
	LabelScoutShare      = "(Scout Share)"
	LabelActiveSaleTroop = "(Active Sale - 100% to Troop)"
)

// Delta is a single bucket movement. Amount is always non-negative; the bucket gives direction.
type Delta struct {
	Bucket Bucket          `json:"bucket"`
	Amount decimal.Decimal `json:"amount"`
	Label  string          `json:"label,omitempty"`
}

type Classification struct {
	Deltas       []Delta `json:"deltas"`
	PocketCredit bool    `json:"pocket_credit"`
	Ignored      bool    `json:"ignored"`
}

// Total returns the sum of deltas landing in b.
func (c Classification) Total(b Bucket) decimal.Decimal {
	total := money.Zero
	for _, d := range c.Deltas {
		if d.Bucket == b {
			total = total.Add(d.Amount)
		}
	}
	return total
}

// IsPocketCredit reports whether tx is a reimbursement recording cash the organizer already holds.
func IsPocketCredit(tx *domain.Transaction) bool {
	return tx.Type == domain.TransactionTypeReimbursement && strings.Contains(tx.Description, PocketCreditMarker)
}

// ScoutPortion is the share of a fundraising income row reserved for scouts, amount * pct / 100.
// A missing campaign counts as 0%.
func ScoutPortion(amount decimal.Decimal, campaign *domain.CampaignContext) decimal.Decimal {
	if campaign == nil {
		return money.Zero
	}
	return money.Percent(amount, campaign.IBAPercentage)
}

// Classify maps one transaction to the buckets it moves. Status is not consulted; callers decide
// which transactions to fold. campaign is the linked campaign for FUNDRAISING_INCOME rows and
// may be nil, in which case the row is treated as an active sale at 0%.
//
// Types outside the known set produce an empty classification with Ignored set.
func Classify(tx *domain.Transaction, campaign *domain.CampaignContext) (Classification, error) {
	if tx.Amount.IsNegative() {
		return Classification{}, domain.ErrNegativeAmount
	}
	if campaign != nil {
		if err := domain.ValidatePercentage(campaign.IBAPercentage); err != nil {
			return Classification{}, err
		}
	}

	amount := tx.Amount
	switch tx.Type {
	case domain.TransactionTypeRegistrationIncome,
		domain.TransactionTypeDonationIn,
		domain.TransactionTypeDues,
		domain.TransactionTypeCampTransfer,
		domain.TransactionTypeIBAReclaim:
		return single(BucketTroopIncome, amount, ""), nil

	case domain.TransactionTypeEventPayment, domain.TransactionTypeScoutCashTurnIn:
		return single(BucketOrganizerCash, amount, ""), nil

	case domain.TransactionTypeFundraisingIncome:
		if campaign != nil && campaign.Status == domain.CampaignStatusClosed {
			scoutPortion := ScoutPortion(amount, campaign)
			return Classification{Deltas: []Delta{
				{Bucket: BucketTroopIncome, Amount: amount.Sub(scoutPortion), Label: LabelTroopShare},
				{Bucket: BucketScoutFundraisingShare, Amount: scoutPortion, Label: LabelScoutShare},
			}}, nil
		}
		return single(BucketTroopIncome, amount, LabelActiveSaleTroop), nil

	case domain.TransactionTypeExpense,
		domain.TransactionTypeReimbursement,
		domain.TransactionTypeTroopPayment:
		if IsPocketCredit(tx) {
			return Classification{PocketCredit: true}, nil
		}
		return single(BucketTroopExpense, amount, ""), nil

	case domain.TransactionTypeIBADeposit:
		return single(BucketIBADeposit, amount, ""), nil

	case domain.TransactionTypeInternalTransfer:
		return Classification{Deltas: []Delta{
			{Bucket: BucketTroopExpense, Amount: amount},
			{Bucket: BucketIBADeposit, Amount: amount},
		}}, nil
	}

	return Classification{Ignored: true}, nil
}

func single(b Bucket, amount decimal.Decimal, label string) Classification {
	return Classification{Deltas: []Delta{{Bucket: b, Amount: amount, Label: label}}}
}
