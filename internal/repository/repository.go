package repository

import (
	"context"

	"trooptreasury-engine/internal/domain"
)

// All repositories are read-only. Money is written by the surrounding application.

type TroopRepository interface {
	GetByID(ctx context.Context, id string) (*domain.Troop, error)
	List(ctx context.Context) ([]domain.Troop, error)
}

type TransactionRepository interface {
	// ListByTroop returns the troop's transactions with their campaign context attached.
	// An empty statuses slice returns every status.
	ListByTroop(ctx context.Context, troopID string, statuses []domain.TransactionStatus) ([]domain.Transaction, error)
	ListByCampaign(ctx context.Context, campaignID string) ([]domain.Transaction, error)
}

type ScoutRepository interface {
	ListByTroop(ctx context.Context, troopID string) ([]domain.Scout, error)
}

type CampaignRepository interface {
	GetByID(ctx context.Context, id string) (*domain.FundraisingCampaign, error)
	// ListByTroop filters by status when status is not empty.
	ListByTroop(ctx context.Context, troopID string, status domain.CampaignStatus) ([]domain.FundraisingCampaign, error)
	ListOrders(ctx context.Context, campaignID string) ([]domain.FundraisingOrder, error)
	ListVolunteers(ctx context.Context, campaignID string) ([]domain.FundraisingVolunteer, error)
	ListDirectSalesInventories(ctx context.Context, campaignID string) ([]domain.DirectSalesInventory, error)
}

// SnapshotReader runs fn against repositories bound to one read-only transaction, so every
// read inside fn sees the same committed state.
type SnapshotReader interface {
	ReadSnapshot(ctx context.Context, fn func(ctx context.Context, campaigns CampaignRepository, transactions TransactionRepository) error) error
}
