package service

import (
	"context"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/fundraising"
	"trooptreasury-engine/internal/ledger"
)

type TreasuryService interface {
	GetLedgerSummary(ctx context.Context, troopID string) (*ledger.Summary, error)
}

type ReportService interface {
	// GetPeriodReport uses the configured default policy when policy is empty.
	GetPeriodReport(ctx context.Context, troopID string, period ledger.Period, policy ledger.StatusPolicy) (*ledger.PeriodReport, error)
}

type FundraisingService interface {
	ListCampaigns(ctx context.Context, troopID string, status domain.CampaignStatus) ([]domain.FundraisingCampaign, error)
	LoadSnapshot(ctx context.Context, campaignID string) (*fundraising.CampaignSnapshot, error)
	GetDistribution(ctx context.Context, campaignID string) (*fundraising.Distribution, error)
	ProposeDistributionDeposits(ctx context.Context, campaignID string) ([]domain.Transaction, error)
}

// Services groups the application services for the HTTP layer and the job runner.
type Services struct {
	Treasury    TreasuryService
	Reports     ReportService
	Fundraising FundraisingService
}
