package jobs

import (
	"context"
	"fmt"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
)

// PreviewDistributions logs the projected distribution of every ACTIVE campaign.
func (jr *JobRunner) PreviewDistributions() error {
	return jr.runWithRecovery(JobPreviewDistributions, jr.previewDistributions)
}

func (jr *JobRunner) previewDistributions(ctx context.Context) error {
	troops, err := jr.troopRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list troops: %w", err)
	}

	failed := jr.forEachTroop(ctx, JobPreviewDistributions, troops, func(ctx context.Context, troop domain.Troop) int {
		log := logger.WithTroop(troop.ID)

		campaigns, err := jr.services.Fundraising.ListCampaigns(ctx, troop.ID, domain.CampaignStatusActive)
		if err != nil {
			log.Error("Failed to list active campaigns", "error", err)
			return 1
		}

		failed := 0
		for _, c := range campaigns {
			dist, err := jr.services.Fundraising.GetDistribution(ctx, c.ID)
			if err != nil {
				failed++
				log.Error("Failed to preview distribution", "campaignID", c.ID, "error", err)
				continue
			}

			log.Info("Distribution preview",
				"campaignID", c.ID,
				"campaignName", c.Name,
				"netProfit", dist.Profit.NetProfit.StringFixed(2),
				"ibaTotal", dist.IBATotal.StringFixed(2),
				"scouts", len(dist.Shares),
				"distributed", dist.Total.StringFixed(2),
				"skipped", len(dist.Skipped))

			if dist.UndistributedDirectSales.IsPositive() {
				log.Warn("Direct sales profit has no scout to receive it",
					"campaignID", c.ID,
					"amount", dist.UndistributedDirectSales.StringFixed(2))
			}
			if dist.UnassignedSellerShare.IsPositive() {
				log.Warn("Seller share on orders without a scout",
					"campaignID", c.ID,
					"amount", dist.UnassignedSellerShare.StringFixed(2))
			}
		}
		return failed
	})

	if failed > 0 {
		return fmt.Errorf("%d distribution previews failed", failed)
	}
	return nil
}
