package service

import (
	"context"

	"github.com/stretchr/testify/mock"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/repository"
)

type MockTroopRepository struct {
	mock.Mock
}

func (m *MockTroopRepository) GetByID(ctx context.Context, id string) (*domain.Troop, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Troop), args.Error(1)
}

func (m *MockTroopRepository) List(ctx context.Context) ([]domain.Troop, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Troop), args.Error(1)
}

type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) ListByTroop(ctx context.Context, troopID string, statuses []domain.TransactionStatus) ([]domain.Transaction, error) {
	args := m.Called(ctx, troopID, statuses)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

func (m *MockTransactionRepository) ListByCampaign(ctx context.Context, campaignID string) ([]domain.Transaction, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Transaction), args.Error(1)
}

type MockScoutRepository struct {
	mock.Mock
}

func (m *MockScoutRepository) ListByTroop(ctx context.Context, troopID string) ([]domain.Scout, error) {
	args := m.Called(ctx, troopID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Scout), args.Error(1)
}

type MockCampaignRepository struct {
	mock.Mock
}

func (m *MockCampaignRepository) GetByID(ctx context.Context, id string) (*domain.FundraisingCampaign, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.FundraisingCampaign), args.Error(1)
}

func (m *MockCampaignRepository) ListByTroop(ctx context.Context, troopID string, status domain.CampaignStatus) ([]domain.FundraisingCampaign, error) {
	args := m.Called(ctx, troopID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundraisingCampaign), args.Error(1)
}

func (m *MockCampaignRepository) ListOrders(ctx context.Context, campaignID string) ([]domain.FundraisingOrder, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundraisingOrder), args.Error(1)
}

func (m *MockCampaignRepository) ListVolunteers(ctx context.Context, campaignID string) ([]domain.FundraisingVolunteer, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.FundraisingVolunteer), args.Error(1)
}

func (m *MockCampaignRepository) ListDirectSalesInventories(ctx context.Context, campaignID string) ([]domain.DirectSalesInventory, error) {
	args := m.Called(ctx, campaignID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.DirectSalesInventory), args.Error(1)
}

type MockSnapshotReader struct {
	mock.Mock
	campaigns    *MockCampaignRepository
	transactions *MockTransactionRepository
}

func (m *MockSnapshotReader) ReadSnapshot(ctx context.Context, fn func(ctx context.Context, campaigns repository.CampaignRepository, transactions repository.TransactionRepository) error) error {
	args := m.Called(ctx)
	if err := args.Error(0); err != nil {
		return err
	}
	return fn(ctx, m.campaigns, m.transactions)
}
