package fundraising

import (
	"fmt"

	"trooptreasury-engine/internal/domain"
)

// Kinds of records a calculation can skip.
const (
	SkippedTransaction   = "transaction"
	SkippedOrder         = "order"
	SkippedInventory     = "inventory"
	SkippedInventoryItem = "inventory_item"
)

// SkippedRecord is a record left out of a calculation because it failed validation.
type SkippedRecord struct {
	Kind   string `json:"kind"`
	ID     string `json:"id"`
	Reason string `json:"reason"`
}

// CampaignSnapshot is everything needed to settle one campaign, loaded in one consistent read.
type CampaignSnapshot struct {
	Campaign     domain.FundraisingCampaign
	Transactions []domain.Transaction
	Orders       []domain.FundraisingOrder
	Volunteers   []domain.FundraisingVolunteer
	Inventories  []domain.DirectSalesInventory
}

// usable returns a copy of the snapshot without the records that fail validation, and lists them.
// A campaign that fails validation is an error since its percentages drive every share.
func (s *CampaignSnapshot) usable() (*CampaignSnapshot, []SkippedRecord, error) {
	if err := s.Campaign.Validate(); err != nil {
		return nil, nil, err
	}

	skipped := []SkippedRecord{}
	out := &CampaignSnapshot{
		Campaign:     s.Campaign,
		Transactions: make([]domain.Transaction, 0, len(s.Transactions)),
		Orders:       make([]domain.FundraisingOrder, 0, len(s.Orders)),
		Volunteers:   s.Volunteers,
		Inventories:  make([]domain.DirectSalesInventory, 0, len(s.Inventories)),
	}

	for i := range s.Transactions {
		if err := s.Transactions[i].Validate(); err != nil {
			skipped = append(skipped, SkippedRecord{Kind: SkippedTransaction, ID: s.Transactions[i].ID, Reason: err.Error()})
			continue
		}
		out.Transactions = append(out.Transactions, s.Transactions[i])
	}

	for i := range s.Orders {
		if err := s.Orders[i].Validate(); err != nil {
			skipped = append(skipped, SkippedRecord{Kind: SkippedOrder, ID: s.Orders[i].ID, Reason: err.Error()})
			continue
		}
		out.Orders = append(out.Orders, s.Orders[i])
	}

	for i := range s.Inventories {
		inv := s.Inventories[i]
		if err := inv.Product.Validate(); err != nil {
			skipped = append(skipped, SkippedRecord{Kind: SkippedInventory, ID: inv.ID, Reason: err.Error()})
			continue
		}
		items := make([]domain.DirectSalesGroupItem, 0, len(inv.Items))
		for _, item := range inv.Items {
			if item.SoldCount < 0 || item.Quantity < 0 {
				err := fmt.Errorf("inventory %s item %s: %w", inv.ID, item.ID, domain.ErrInvalidQuantity)
				skipped = append(skipped, SkippedRecord{Kind: SkippedInventoryItem, ID: item.ID, Reason: err.Error()})
				continue
			}
			items = append(items, item)
		}
		inv.Items = items
		out.Inventories = append(out.Inventories, inv)
	}

	return out, skipped, nil
}

// Calculate computes the campaign's net profit and distributes it. Malformed transactions, orders
// and inventory records are left out and listed in Distribution.Skipped.
func Calculate(s *CampaignSnapshot) (*Distribution, error) {
	clean, skipped, err := s.usable()
	if err != nil {
		return nil, err
	}
	profit := ComputeNetProfit(&clean.Campaign, clean.Transactions, clean.Orders, clean.Inventories)
	d := DistributeProfit(&clean.Campaign, profit, clean.Orders, clean.Volunteers, clean.Inventories)
	d.Skipped = skipped
	return d, nil
}
