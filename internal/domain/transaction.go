package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

type TransactionType string

const (
	TransactionTypeRegistrationIncome TransactionType = "REGISTRATION_INCOME"
	TransactionTypeDonationIn         TransactionType = "DONATION_IN"
	TransactionTypeDues               TransactionType = "DUES"
	TransactionTypeCampTransfer       TransactionType = "CAMP_TRANSFER"
	TransactionTypeIBAReclaim         TransactionType = "IBA_RECLAIM"
	TransactionTypeEventPayment       TransactionType = "EVENT_PAYMENT"
	TransactionTypeScoutCashTurnIn    TransactionType = "SCOUT_CASH_TURN_IN"
	TransactionTypeFundraisingIncome  TransactionType = "FUNDRAISING_INCOME"
	TransactionTypeExpense            TransactionType = "EXPENSE"
	TransactionTypeReimbursement      TransactionType = "REIMBURSEMENT"
	TransactionTypeTroopPayment       TransactionType = "TROOP_PAYMENT"
	TransactionTypeIBADeposit         TransactionType = "IBA_DEPOSIT"
	TransactionTypeInternalTransfer   TransactionType = "INTERNAL_TRANSFER"
)

var knownTransactionTypes = map[TransactionType]bool{
	TransactionTypeRegistrationIncome: true,
	TransactionTypeDonationIn:         true,
	TransactionTypeDues:               true,
	TransactionTypeCampTransfer:       true,
	TransactionTypeIBAReclaim:         true,
	TransactionTypeEventPayment:       true,
	TransactionTypeScoutCashTurnIn:    true,
	TransactionTypeFundraisingIncome:  true,
	TransactionTypeExpense:            true,
	TransactionTypeReimbursement:      true,
	TransactionTypeTroopPayment:       true,
	TransactionTypeIBADeposit:         true,
	TransactionTypeInternalTransfer:   true,
}

// IsKnown reports whether t is one of the transaction types the ledger understands.
// Values loaded from storage keep their raw string even when unknown.
func (t TransactionType) IsKnown() bool {
	return knownTransactionTypes[t]
}

type TransactionStatus string

const (
	TransactionStatusPending  TransactionStatus = "PENDING"
	TransactionStatusApproved TransactionStatus = "APPROVED"
	TransactionStatusRejected TransactionStatus = "REJECTED"
)

func (s TransactionStatus) IsKnown() bool {
	switch s {
	case TransactionStatusPending, TransactionStatusApproved, TransactionStatusRejected:
		return true
	}
	return false
}

// ParseTransactionStatus accepts the stored spelling of a status.
func ParseTransactionStatus(s string) (TransactionStatus, error) {
	status := TransactionStatus(s)
	if !status.IsKnown() {
		return "", fmt.Errorf("%w: %q", ErrUnknownStatus, s)
	}
	return status, nil
}

// FromAccount tags where money came from. Informational only.
type FromAccount string

const (
	FromAccountIBA        FromAccount = "IBA"
	FromAccountManual     FromAccount = "MANUAL"
	FromAccountBankDirect FromAccount = "BANK_DIRECT"
	FromAccountTroop      FromAccount = "TROOP"
	FromAccountCash       FromAccount = "CASH"
)

// CampaignContext is the part of a linked campaign the classifier needs.
type CampaignContext struct {
	IBAPercentage decimal.Decimal `json:"iba_percentage"`
	Status        CampaignStatus  `json:"status"`
}

type Transaction struct {
	ID                    string            `json:"id"`
	TroopID               string            `json:"troop_id"`
	Type                  TransactionType   `json:"type"`
	Status                TransactionStatus `json:"status"`
	Amount                decimal.Decimal   `json:"amount"`
	Description           string            `json:"description"`
	CreatedAt             time.Time         `json:"created_at"`
	ScoutID               null.String       `json:"scout_id"`
	UserID                null.String       `json:"user_id"`
	CampoutID             null.String       `json:"campout_id"`
	BudgetCategoryID      null.String       `json:"budget_category_id"`
	FundraisingCampaignID null.String       `json:"fundraising_campaign_id"`
	FromAccount           FromAccount       `json:"from_account,omitempty"`
	Campaign              *CampaignContext  `json:"campaign,omitempty"`
}

func (t *Transaction) IsApproved() bool {
	return t.Status == TransactionStatusApproved
}

// Validate rejects records the ledger cannot fold: negative amounts and out of range campaign percentages.
func (t *Transaction) Validate() error {
	if t.Amount.IsNegative() {
		return fmt.Errorf("transaction %s: %w", t.ID, ErrNegativeAmount)
	}
	if t.Campaign != nil {
		if err := ValidatePercentage(t.Campaign.IBAPercentage); err != nil {
			return fmt.Errorf("transaction %s: %w", t.ID, err)
		}
	}
	return nil
}
