package domain

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"
)

type CampaignType string

const (
	CampaignTypeGeneral     CampaignType = "GENERAL"
	CampaignTypeProductSale CampaignType = "PRODUCT_SALE"
)

type CampaignStatus string

const (
	CampaignStatusDraft  CampaignStatus = "DRAFT"
	CampaignStatusActive CampaignStatus = "ACTIVE"
	CampaignStatusClosed CampaignStatus = "CLOSED"
)

// ParseCampaignStatus accepts the stored upper-case form only.
func ParseCampaignStatus(s string) (CampaignStatus, error) {
	switch st := CampaignStatus(s); st {
	case CampaignStatusDraft, CampaignStatusActive, CampaignStatusClosed:
		return st, nil
	}
	return "", fmt.Errorf("%w: campaign status %q", ErrUnknownStatus, s)
}

type FundraisingCampaign struct {
	ID                  string              `json:"id"`
	TroopID             string              `json:"troop_id"`
	Name                string              `json:"name"`
	Type                CampaignType        `json:"type"`
	Status              CampaignStatus      `json:"status"`
	IBAPercentage       decimal.Decimal     `json:"iba_percentage"`
	VolunteerPercentage decimal.Decimal     `json:"volunteer_percentage"`
	Goal                decimal.Decimal     `json:"goal"`
	TicketPrice         decimal.NullDecimal `json:"ticket_price"`
	StartDate           time.Time           `json:"start_date"`
	EndDate             null.Time           `json:"end_date"`
}

// Context returns the view of the campaign attached to its transactions.
func (c *FundraisingCampaign) Context() *CampaignContext {
	return &CampaignContext{IBAPercentage: c.IBAPercentage, Status: c.Status}
}

func (c *FundraisingCampaign) IsClosed() bool {
	return c.Status == CampaignStatusClosed
}

// Validate checks both percentages. volunteerPercentage > ibaPercentage is allowed.
func (c *FundraisingCampaign) Validate() error {
	if err := ValidatePercentage(c.IBAPercentage); err != nil {
		return fmt.Errorf("campaign %s iba percentage: %w", c.ID, err)
	}
	if err := ValidatePercentage(c.VolunteerPercentage); err != nil {
		return fmt.Errorf("campaign %s volunteer percentage: %w", c.ID, err)
	}
	if c.Goal.IsNegative() {
		return fmt.Errorf("campaign %s goal: %w", c.ID, ErrNegativeAmount)
	}
	return nil
}

type CampaignProduct struct {
	ID         string          `json:"id"`
	CampaignID string          `json:"campaign_id"`
	Name       string          `json:"name"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	IBAAmount  decimal.Decimal `json:"iba_amount"` // fixed scout profit per unit; > 0 overrides the percentage split
}

func (p *CampaignProduct) HasIBAOverride() bool {
	return p != nil && p.IBAAmount.IsPositive()
}

func (p *CampaignProduct) Validate() error {
	if p.Price.IsNegative() || p.Cost.IsNegative() || p.IBAAmount.IsNegative() {
		return fmt.Errorf("product %s: %w", p.ID, ErrNegativeAmount)
	}
	return nil
}

type FundraisingOrder struct {
	ID         string           `json:"id"`
	CampaignID string           `json:"campaign_id"`
	ScoutID    null.String      `json:"scout_id"`
	ScoutName  string           `json:"scout_name"`
	Product    *CampaignProduct `json:"product,omitempty"`
	Quantity   int              `json:"quantity"`
	AmountPaid decimal.Decimal  `json:"amount_paid"`
}

func (o *FundraisingOrder) Validate() error {
	if o.Quantity < 0 {
		return fmt.Errorf("order %s: %w", o.ID, ErrInvalidQuantity)
	}
	if o.AmountPaid.IsNegative() {
		return fmt.Errorf("order %s: %w", o.ID, ErrNegativeAmount)
	}
	if o.Product != nil {
		return o.Product.Validate()
	}
	return nil
}

type FundraisingVolunteer struct {
	CampaignID string `json:"campaign_id"`
	ScoutID    string `json:"scout_id"`
	ScoutName  string `json:"scout_name"`
}

type DirectSalesInventory struct {
	ID         string                 `json:"id"`
	CampaignID string                 `json:"campaign_id"`
	Product    CampaignProduct        `json:"product"`
	Quantity   int                    `json:"quantity"`
	Items      []DirectSalesGroupItem `json:"items"`
}

// SoldCount sums the units reported sold across all groups holding this stock.
func (inv *DirectSalesInventory) SoldCount() int {
	sold := 0
	for _, item := range inv.Items {
		sold += item.SoldCount
	}
	return sold
}

type DirectSalesGroupItem struct {
	ID        string            `json:"id"`
	GroupID   string            `json:"group_id"`
	Quantity  int               `json:"quantity"`
	SoldCount int               `json:"sold_count"`
	Group     *DirectSalesGroup `json:"group,omitempty"`
}

type DirectSalesGroup struct {
	ID         string                      `json:"id"`
	CampaignID string                      `json:"campaign_id"`
	Name       string                      `json:"name"`
	Volunteers []DirectSalesGroupVolunteer `json:"volunteers"`
}

// ScoutVolunteers returns the members that are scouts. Adult members get no cash share.
func (g *DirectSalesGroup) ScoutVolunteers() []DirectSalesGroupVolunteer {
	if g == nil {
		return nil
	}
	var scouts []DirectSalesGroupVolunteer
	for _, v := range g.Volunteers {
		if v.ScoutID.Valid && v.ScoutID.String != "" {
			scouts = append(scouts, v)
		}
	}
	return scouts
}

type DirectSalesGroupVolunteer struct {
	GroupID   string      `json:"group_id"`
	ScoutID   null.String `json:"scout_id"`
	UserID    null.String `json:"user_id"`
	ScoutName string      `json:"scout_name"`
}
