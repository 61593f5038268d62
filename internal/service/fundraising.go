package service

import (
	"context"
	"time"

	"github.com/shopspring/decimal"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/fundraising"
	"trooptreasury-engine/internal/logger"
	"trooptreasury-engine/internal/repository"
)

type fundraisingService struct {
	troopRepo      repository.TroopRepository
	campaignRepo   repository.CampaignRepository
	snapshots      repository.SnapshotReader
	minimumDeposit decimal.Decimal
	now            func() time.Time
}

func NewFundraisingService(
	troopRepo repository.TroopRepository,
	campaignRepo repository.CampaignRepository,
	snapshots repository.SnapshotReader,
	minimumDeposit decimal.Decimal,
) FundraisingService {
	return &fundraisingService{
		troopRepo:      troopRepo,
		campaignRepo:   campaignRepo,
		snapshots:      snapshots,
		minimumDeposit: minimumDeposit,
		now:            time.Now,
	}
}

func (s *fundraisingService) ListCampaigns(ctx context.Context, troopID string, status domain.CampaignStatus) ([]domain.FundraisingCampaign, error) {
	logger.EnterMethod("fundraisingService.ListCampaigns", "troopID", troopID, "status", status)

	if _, err := s.troopRepo.GetByID(ctx, troopID); err != nil {
		logger.ExitMethodWithError("fundraisingService.ListCampaigns", err, "troopID", troopID)
		return nil, err
	}

	campaigns, err := s.campaignRepo.ListByTroop(ctx, troopID, status)
	if err != nil {
		logger.ExitMethodWithError("fundraisingService.ListCampaigns", err, "troopID", troopID)
		return nil, err
	}

	logger.ExitMethod("fundraisingService.ListCampaigns", "troopID", troopID, "count", len(campaigns))
	return campaigns, nil
}

// LoadSnapshot reads the campaign and everything linked to it inside one read-only transaction.
func (s *fundraisingService) LoadSnapshot(ctx context.Context, campaignID string) (*fundraising.CampaignSnapshot, error) {
	logger.EnterMethod("fundraisingService.LoadSnapshot", "campaignID", campaignID)

	snap := &fundraising.CampaignSnapshot{}
	err := s.snapshots.ReadSnapshot(ctx, func(ctx context.Context, campaigns repository.CampaignRepository, transactions repository.TransactionRepository) error {
		campaign, err := campaigns.GetByID(ctx, campaignID)
		if err != nil {
			return err
		}
		snap.Campaign = *campaign

		if snap.Transactions, err = transactions.ListByCampaign(ctx, campaignID); err != nil {
			return err
		}
		if snap.Orders, err = campaigns.ListOrders(ctx, campaignID); err != nil {
			return err
		}
		if snap.Volunteers, err = campaigns.ListVolunteers(ctx, campaignID); err != nil {
			return err
		}
		snap.Inventories, err = campaigns.ListDirectSalesInventories(ctx, campaignID)
		return err
	})
	if err != nil {
		logger.ExitMethodWithError("fundraisingService.LoadSnapshot", err, "campaignID", campaignID)
		return nil, err
	}

	logger.ExitMethod("fundraisingService.LoadSnapshot", "campaignID", campaignID,
		"transactions", len(snap.Transactions), "orders", len(snap.Orders),
		"volunteers", len(snap.Volunteers), "inventories", len(snap.Inventories))
	return snap, nil
}

func (s *fundraisingService) GetDistribution(ctx context.Context, campaignID string) (*fundraising.Distribution, error) {
	logger.EnterMethod("fundraisingService.GetDistribution", "campaignID", campaignID)

	snap, err := s.LoadSnapshot(ctx, campaignID)
	if err != nil {
		logger.ExitMethodWithError("fundraisingService.GetDistribution", err, "campaignID", campaignID)
		return nil, err
	}

	dist, err := fundraising.Calculate(snap)
	if err != nil {
		logger.ExitMethodWithError("fundraisingService.GetDistribution", err, "campaignID", campaignID)
		return nil, err
	}

	for _, skipped := range dist.Skipped {
		logger.Warn("Record skipped during distribution", "campaignID", campaignID,
			"kind", skipped.Kind, "id", skipped.ID, "reason", skipped.Reason)
	}
	if dist.UndistributedDirectSales.IsPositive() {
		logger.Warn("Direct sales profit has no scout to receive it", "campaignID", campaignID,
			"amount", dist.UndistributedDirectSales.StringFixed(2))
	}

	logger.ExitMethod("fundraisingService.GetDistribution", "campaignID", campaignID,
		"netProfit", dist.Profit.NetProfit.StringFixed(2), "shares", len(dist.Shares))
	return dist, nil
}

func (s *fundraisingService) ProposeDistributionDeposits(ctx context.Context, campaignID string) ([]domain.Transaction, error) {
	logger.EnterMethod("fundraisingService.ProposeDistributionDeposits", "campaignID", campaignID)

	snap, err := s.LoadSnapshot(ctx, campaignID)
	if err != nil {
		logger.ExitMethodWithError("fundraisingService.ProposeDistributionDeposits", err, "campaignID", campaignID)
		return nil, err
	}

	dist, err := fundraising.Calculate(snap)
	if err != nil {
		logger.ExitMethodWithError("fundraisingService.ProposeDistributionDeposits", err, "campaignID", campaignID)
		return nil, err
	}

	deposits := fundraising.ProposeDeposits(&snap.Campaign, dist, s.minimumDeposit, s.now().UTC())

	logger.ExitMethod("fundraisingService.ProposeDistributionDeposits", "campaignID", campaignID, "deposits", len(deposits))
	return deposits, nil
}
