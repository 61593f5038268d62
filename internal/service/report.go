package service

import (
	"context"

	"trooptreasury-engine/internal/ledger"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
)

type reportService struct {
	troopRepo       repository.TroopRepository
	transactionRepo repository.TransactionRepository
	scoutRepo       repository.ScoutRepository
	defaultPolicy   ledger.StatusPolicy
}

func NewReportService(
	troopRepo repository.TroopRepository,
	transactionRepo repository.TransactionRepository,
	scoutRepo repository.ScoutRepository,
	defaultPolicy ledger.StatusPolicy,
) ReportService {
	if defaultPolicy == "" {
		defaultPolicy = ledger.ApprovedOnly
	}
	return &reportService{
		troopRepo:       troopRepo,
		transactionRepo: transactionRepo,
		scoutRepo:       scoutRepo,
		defaultPolicy:   defaultPolicy,
	}
}

func (s *reportService) GetPeriodReport(ctx context.Context, troopID string, period ledger.Period, policy ledger.StatusPolicy) (*ledger.PeriodReport, error) {
	if policy == "" {
		policy = s.defaultPolicy
	}
	logger.EnterMethod("reportService.GetPeriodReport", "troopID", troopID, "policy", policy)

	if _, err := s.troopRepo.GetByID(ctx, troopID); err != nil {
		logger.ExitMethodWithError("reportService.GetPeriodReport", err, "troopID", troopID)
		return nil, err
	}

	// Scout audits need the whole history, so the period is applied in memory.
	txs, err := s.transactionRepo.ListByTroop(ctx, troopID, policy.Statuses())
	if err != nil {
		logger.ExitMethodWithError("reportService.GetPeriodReport", err, "troopID", troopID)
		return nil, err
	}

	scouts, err := s.scoutRepo.ListByTroop(ctx, troopID)
	if err != nil {
		logger.ExitMethodWithError("reportService.GetPeriodReport", err, "troopID", troopID)
		return nil, err
	}

	report := ledger.BuildReport(txs, scouts, period, policy)

	logger.ExitMethod("reportService.GetPeriodReport", "troopID", troopID,
		"transactionCount", report.TransactionCount, "skipped", len(report.Skipped))
	return report, nil
}
