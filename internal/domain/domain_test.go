package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"
)

func TestTransactionType_IsKnown(t *testing.T) {
	assert.True(t, TransactionTypeInternalTransfer.IsKnown())
	assert.True(t, TransactionTypeScoutCashTurnIn.IsKnown())
	assert.False(t, TransactionType("PAYPAL_FEE").IsKnown())
}

func TestParseTransactionStatus(t *testing.T) {
	s, err := ParseTransactionStatus("APPROVED")
	require.NoError(t, err)
	assert.Equal(t, TransactionStatusApproved, s)

	_, err = ParseTransactionStatus("approved")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestParseCampaignStatus(t *testing.T) {
	s, err := ParseCampaignStatus("ACTIVE")
	require.NoError(t, err)
	assert.Equal(t, CampaignStatusActive, s)

	_, err = ParseCampaignStatus("OPEN")
	assert.ErrorIs(t, err, ErrUnknownStatus)
}

func TestTransaction_Validate(t *testing.T) {
	t.Run("Valid", func(t *testing.T) {
		tx := Transaction{ID: "1", Amount: decimal.NewFromInt(5)}
		assert.NoError(t, tx.Validate())
	})

	t.Run("Negative amount", func(t *testing.T) {
		tx := Transaction{ID: "1", Amount: decimal.NewFromInt(-5)}
		err := tx.Validate()
		assert.ErrorIs(t, err, ErrNegativeAmount)
		assert.True(t, IsInvalidInput(err))
	})

	t.Run("Bad campaign percentage", func(t *testing.T) {
		tx := Transaction{ID: "1", Campaign: &CampaignContext{IBAPercentage: decimal.NewFromInt(-1)}}
		assert.ErrorIs(t, tx.Validate(), ErrPercentageOutOfRange)
	})
}

func TestValidatePercentage(t *testing.T) {
	assert.NoError(t, ValidatePercentage(decimal.Zero))
	assert.NoError(t, ValidatePercentage(decimal.NewFromInt(100)))
	assert.Error(t, ValidatePercentage(decimal.RequireFromString("100.01")))
	assert.Error(t, ValidatePercentage(decimal.RequireFromString("-0.5")))
}

func TestFundraisingCampaign_Validate(t *testing.T) {
	c := FundraisingCampaign{ID: "c", IBAPercentage: decimal.NewFromInt(30), VolunteerPercentage: decimal.NewFromInt(40)}
	assert.NoError(t, c.Validate())

	c.VolunteerPercentage = decimal.NewFromInt(101)
	assert.ErrorIs(t, c.Validate(), ErrPercentageOutOfRange)

	ctx := c.Context()
	assert.True(t, ctx.IBAPercentage.Equal(decimal.NewFromInt(30)))
}

func TestFundraisingOrder_Validate(t *testing.T) {
	o := FundraisingOrder{ID: "o", Quantity: -1}
	assert.ErrorIs(t, o.Validate(), ErrInvalidQuantity)

	o = FundraisingOrder{ID: "o", Quantity: 1, Product: &CampaignProduct{ID: "p", Cost: decimal.NewFromInt(-2)}}
	assert.ErrorIs(t, o.Validate(), ErrNegativeAmount)
}

func TestDirectSalesGroup_ScoutVolunteers(t *testing.T) {
	g := &DirectSalesGroup{Volunteers: []DirectSalesGroupVolunteer{
		{ScoutID: null.StringFrom("s1")},
		{UserID: null.StringFrom("u1")},
		{ScoutID: null.StringFrom("s2"), UserID: null.StringFrom("u2")},
	}}
	assert.Len(t, g.ScoutVolunteers(), 2)

	var none *DirectSalesGroup
	assert.Empty(t, none.ScoutVolunteers())
}

func TestDirectSalesInventory_SoldCount(t *testing.T) {
	inv := DirectSalesInventory{Items: []DirectSalesGroupItem{{SoldCount: 2}, {SoldCount: 5}}}
	assert.Equal(t, 7, inv.SoldCount())
}
