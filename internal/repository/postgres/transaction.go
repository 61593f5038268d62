package postgres

import (
	"context"
	"fmt"

	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
)

type transactionRepository struct {
	db DBTX
}

func NewTransactionRepository(db DBTX) repository.TransactionRepository {
	return &transactionRepository{db: db}
}

const transactionColumns = `
		SELECT t.id, t.troop_id, t.type, t.status, t.amount, COALESCE(t.description, ''), t.created_at,
		       t.scout_id, t.user_id, t.campout_id, t.budget_category_id, t.fundraising_campaign_id,
		       COALESCE(t.from_account, ''), c.iba_percentage, c.status
		FROM transactions t
		LEFT JOIN fundraising_campaigns c ON c.id = t.fundraising_campaign_id`

func (r *transactionRepository) ListByTroop(ctx context.Context, troopID string, statuses []domain.TransactionStatus) ([]domain.Transaction, error) {
	logger.EnterMethod("transactionRepository.ListByTroop", "troopID", troopID, "statuses", statuses)

	query := transactionColumns + ` WHERE t.troop_id = $1`
	args := []interface{}{troopID}
	if len(statuses) > 0 {
		statusStrs := make([]string, len(statuses))
		for i, s := range statuses {
			statusStrs[i] = string(s)
		}
		query += fmt.Sprintf(" AND t.status = ANY($%d)", len(args)+1)
		args = append(args, pq.Array(statusStrs))
	}
	query += " ORDER BY t.created_at, t.id"

	txs, err := r.query(ctx, query, args...)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.ListByTroop", err, "troopID", troopID)
		return nil, err
	}
	logger.ExitMethod("transactionRepository.ListByTroop", "troopID", troopID, "count", len(txs))
	return txs, nil
}

func (r *transactionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Transaction, error) {
	logger.EnterMethod("transactionRepository.ListByCampaign", "campaignID", campaignID)

	query := transactionColumns + ` WHERE t.fundraising_campaign_id = $1 ORDER BY t.created_at, t.id`
	txs, err := r.query(ctx, query, campaignID)
	if err != nil {
		logger.ExitMethodWithError("transactionRepository.ListByCampaign", err, "campaignID", campaignID)
		return nil, err
	}
	logger.ExitMethod("transactionRepository.ListByCampaign", "campaignID", campaignID, "count", len(txs))
	return txs, nil
}

func (r *transactionRepository) query(ctx context.Context, query string, args ...interface{}) ([]domain.Transaction, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		var (
			t             domain.Transaction
			fromAccount   string
			ibaPercentage decimal.NullDecimal
			campaignState null.String
		)
		err := rows.Scan(
			&t.ID, &t.TroopID, &t.Type, &t.Status, &t.Amount, &t.Description, &t.CreatedAt,
			&t.ScoutID, &t.UserID, &t.CampoutID, &t.BudgetCategoryID, &t.FundraisingCampaignID,
			&fromAccount, &ibaPercentage, &campaignState,
		)
		if err != nil {
			return nil, err
		}
		t.FromAccount = domain.FromAccount(fromAccount)
		if campaignState.Valid {
			t.Campaign = &domain.CampaignContext{
				IBAPercentage: ibaPercentage.Decimal,
				Status:        domain.CampaignStatus(campaignState.String),
			}
		}
		txs = append(txs, t)
	}
	return txs, rows.Err()
}
