package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type Troop struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Slug      string    `json:"slug"`
	CreatedAt time.Time `json:"created_at"`
}

type ScoutStatus string

const (
	ScoutStatusActive   ScoutStatus = "ACTIVE"
	ScoutStatusInactive ScoutStatus = "INACTIVE"
)

type Scout struct {
	ID         string          `json:"id"`
	TroopID    string          `json:"troop_id"`
	Name       string          `json:"name"`
	Status     ScoutStatus     `json:"status"`
	IBABalance decimal.Decimal `json:"iba_balance"` // maintained outside the engine
}

func (s *Scout) IsActive() bool {
	return s.Status == ScoutStatusActive
}
