package service

import (
	"context"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/ledger"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
)

type treasuryService struct {
	troopRepo       repository.TroopRepository
	transactionRepo repository.TransactionRepository
	scoutRepo       repository.ScoutRepository
}

func NewTreasuryService(
	troopRepo repository.TroopRepository,
	transactionRepo repository.TransactionRepository,
	scoutRepo repository.ScoutRepository,
) TreasuryService {
	return &treasuryService{
		troopRepo:       troopRepo,
		transactionRepo: transactionRepo,
		scoutRepo:       scoutRepo,
	}
}

func (s *treasuryService) GetLedgerSummary(ctx context.Context, troopID string) (*ledger.Summary, error) {
	logger.EnterMethod("treasuryService.GetLedgerSummary", "troopID", troopID)

	if _, err := s.troopRepo.GetByID(ctx, troopID); err != nil {
		logger.ExitMethodWithError("treasuryService.GetLedgerSummary", err, "troopID", troopID)
		return nil, err
	}

	txs, err := s.transactionRepo.ListByTroop(ctx, troopID, []domain.TransactionStatus{domain.TransactionStatusApproved})
	if err != nil {
		logger.ExitMethodWithError("treasuryService.GetLedgerSummary", err, "troopID", troopID)
		return nil, err
	}

	scouts, err := s.scoutRepo.ListByTroop(ctx, troopID)
	if err != nil {
		logger.ExitMethodWithError("treasuryService.GetLedgerSummary", err, "troopID", troopID)
		return nil, err
	}

	summary := ledger.Aggregate(txs, scouts)
	for _, skipped := range summary.Skipped {
		logger.Warn("Transaction skipped during aggregation", "troopID", troopID,
			"transactionID", skipped.TransactionID, "reason", skipped.Reason)
	}
	if !summary.Reconciles() {
		logger.Error("Ledger does not reconcile", "troopID", troopID,
			"totalBankBalance", summary.TotalBankBalance.String())
	}

	logger.ExitMethod("treasuryService.GetLedgerSummary", "troopID", troopID,
		"transactions", len(txs), "totalBankBalance", summary.TotalBankBalance.String())
	return summary, nil
}
