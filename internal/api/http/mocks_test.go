package http

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/fundraising"
	"trooptreasury-engine/internal/ledger"
)

type MockTreasuryService struct {
	mock.Mock
}

func (m *MockTreasuryService) GetLedgerSummary(ctx context.Context, troopID string) (*ledger.Summary, error) {
	args := m.Called(ctx, troopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.Summary), args.Error(1)
}

type MockReportService struct {
	mock.Mock
}

func (m *MockReportService) GetPeriodReport(ctx context.Context, troopID string, period ledger.Period, policy ledger.StatusPolicy) (*ledger.PeriodReport, error) {
	args := m.Called(ctx, troopID, period, policy)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*ledger.PeriodReport), args.Error(1)
}

type MockFundraisingService struct {
	mock.Mock
}

func (m *MockFundraisingService) ListCampaigns(ctx context.Context, troopID string, status domain.CampaignStatus) ([]domain.FundraisingCampaign, error) {
	args := m.Called(ctx, troopID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundraisingCampaign), args.Error(1)
}

func (m *MockFundraisingService) LoadSnapshot(ctx context.Context, campaignID string) (*fundraising.CampaignSnapshot, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fundraising.CampaignSnapshot), args.Error(1)
}

func (m *MockFundraisingService) GetDistribution(ctx context.Context, campaignID string) (*fundraising.Distribution, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*fundraising.Distribution), args.Error(1)
}

func (m *MockFundraisingService) ProposeDistributionDeposits(ctx context.Context, campaignID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}
