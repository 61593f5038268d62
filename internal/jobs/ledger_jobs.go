package jobs

import (
	"context"
	"fmt"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/logger"
)

// AuditLedgers aggregates every troop's ledger, several troops at a time, and warns on reconciliation failures and on
// scouts whose stored IBA balance drifts from their transaction history.
func (jr *JobRunner) AuditLedgers() error {
	return jr.runWithRecovery(JobAuditLedgers, jr.auditLedgers)
}

func (jr *JobRunner) auditLedgers(ctx context.Context) error {
	troops, err := jr.troopRepo.List(ctx)
	if err != nil {
		return fmt.Errorf("list troops: %w", err)
	}

	failed := jr.forEachTroop(ctx, JobAuditLedgers, troops, func(ctx context.Context, troop domain.Troop) int {
		log := logger.WithTroop(troop.ID)

		summary, err := jr.services.Treasury.GetLedgerSummary(ctx, troop.ID)
		if err != nil {
			log.Error("Failed to aggregate ledger", "troopName", troop.Name, "error", err)
			return 1
		}

		log.Info("Ledger audited",
			"troopName", troop.Name,
			"troopFunds", summary.TroopFunds.StringFixed(2),
			"allocatedScoutFunds", summary.AllocatedScoutFunds.StringFixed(2),
			"unallocatedReserves", summary.UnallocatedReserves.StringFixed(2),
			"totalBankBalance", summary.TotalBankBalance.StringFixed(2),
			"skipped", len(summary.Skipped))

		if !summary.Reconciles() {
			log.Warn("Ledger does not reconcile", "troopName", troop.Name)
		}
		for _, audit := range summary.ScoutActivity {
			if !audit.InBalance() {
				log.Warn("Scout balance drifts from history",
					"scoutID", audit.ScoutID,
					"scoutName", audit.Name,
					"storedBalance", audit.Balance.StringFixed(2),
					"drift", audit.Drift.StringFixed(2))
			}
		}
		return 0
	})

	if failed > 0 {
		return fmt.Errorf("%d of %d troop ledgers failed", failed, len(troops))
	}
	return nil
}
