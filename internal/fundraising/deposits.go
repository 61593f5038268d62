package fundraising

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"trooptreasury-engine/internal/domain"
)

const DepositDescription = "Distribution from Campaign"

// DefaultMinimumDeposit is the smallest share worth posting; shares at or below it are skipped.
var DefaultMinimumDeposit = decimal.New(1, -2)

// ProposeDeposits drafts the IBA deposits that would post dist to each scout's account. Shares at
// or below minimum are left out. Nothing is persisted.
func ProposeDeposits(campaign *domain.FundraisingCampaign, dist *Distribution, minimum decimal.Decimal, now time.Time) []domain.Transaction {
	deposits := make([]domain.Transaction, 0, len(dist.Shares))
	for _, share := range dist.Shares {
		if share.Amount.LessThanOrEqual(minimum) {
			continue
		}
		deposits = append(deposits, domain.Transaction{
			ID:                    uuid.NewString(),
			TroopID:               campaign.TroopID,
			Type:                  domain.TransactionTypeIBADeposit,
			Status:                domain.TransactionStatusApproved,
			Amount:                share.Amount,
			Description:           DepositDescription,
			CreatedAt:             now,
			ScoutID:               null.StringFrom(share.ScoutID),
			FundraisingCampaignID: null.StringFrom(campaign.ID),
			FromAccount:           domain.FromAccountManual,
		})
	}
	return deposits
}
