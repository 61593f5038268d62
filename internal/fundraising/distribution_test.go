package fundraising

import (
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/volatiletech/null"

	"trooptreasury-engine/internal/domain"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func campaign(iba, volunteer string) *domain.FundraisingCampaign {
	return &domain.FundraisingCampaign{
		ID:                  "c1",
		TroopID:             "t1",
		Name:                "Popcorn",
		Type:                domain.CampaignTypeProductSale,
		Status:              domain.CampaignStatusActive,
		IBAPercentage:       dec(iba),
		VolunteerPercentage: dec(volunteer),
	}
}

func order(id, scoutID, name string, product *domain.CampaignProduct, qty int, paid string) domain.FundraisingOrder {
	return domain.FundraisingOrder{
		ID:         id,
		CampaignID: "c1",
		ScoutID:    null.StringFrom(scoutID),
		ScoutName:  name,
		Product:    product,
		Quantity:   qty,
		AmountPaid: dec(paid),
	}
}

func volunteer(scoutID, name string) domain.FundraisingVolunteer {
	return domain.FundraisingVolunteer{CampaignID: "c1", ScoutID: scoutID, ScoutName: name}
}

func profitOf(net string) ProfitSummary {
	return ProfitSummary{NetProfit: dec(net), ProductProfit: dec(net)}
}

func TestDistributeProfit_NoProfit(t *testing.T) {
	for _, net := range []string{"0", "-25"} {
		d := DistributeProfit(campaign("30", "10"), profitOf(net), nil, []domain.FundraisingVolunteer{volunteer("s1", "A")}, nil)
		assert.Empty(t, d.Shares)
		assert.True(t, d.IBATotal.IsZero())
		assert.True(t, d.VolunteerTotal.IsZero())
		assert.True(t, d.SellerTotal.IsZero())
	}
}

func TestDistributeProfit_VolunteerEqualSplit(t *testing.T) {
	volunteers := []domain.FundraisingVolunteer{
		volunteer("s3", "Cy"),
		volunteer("s1", "Ann"),
		volunteer("s2", "Bea"),
	}

	d := DistributeProfit(campaign("30", "10"), profitOf("100"), nil, volunteers, nil)

	assert.Equal(t, "10", d.VolunteerTotal.String())
	assert.Equal(t, "20", d.SellerTotal.String())
	require.Len(t, d.Shares, 3)

	assert.Equal(t, "s1", d.Shares[0].ScoutID)
	assert.Equal(t, "3.34", d.Shares[0].Amount.StringFixed(2))
	assert.Equal(t, "3.33", d.Shares[1].Amount.StringFixed(2))
	assert.Equal(t, "3.33", d.Shares[2].Amount.StringFixed(2))
	assert.Equal(t, "10.00", d.Total.StringFixed(2))
}

func TestDistributeProfit_PerUnitSellerSplit(t *testing.T) {
	plain := &domain.CampaignProduct{ID: "p1", Name: "Caramel", Price: dec("20"), Cost: dec("10")}
	orders := []domain.FundraisingOrder{
		order("o1", "s1", "Ann", plain, 3, "60"),
		order("o2", "s2", "Bea", plain, 1, "20"),
		order("o3", "s1", "Ann", plain, 1, "20"),
	}

	d := DistributeProfit(campaign("50", "0"), profitOf("100"), orders, nil, nil)

	assert.False(t, d.ProductOverride)
	assert.Equal(t, "10", d.PerUnitRate.String())
	require.Len(t, d.Shares, 2)
	assert.Equal(t, "40", d.Shares[0].Amount.String())
	assert.Equal(t, "10", d.Shares[1].Amount.String())
}

func TestDistributeProfit_ZeroUnits(t *testing.T) {
	d := DistributeProfit(campaign("50", "0"), profitOf("100"), nil, nil, nil)
	assert.Empty(t, d.Shares)
	assert.True(t, d.PerUnitRate.IsZero())
}

func TestDistributeProfit_SellerPoolNeverNegative(t *testing.T) {
	d := DistributeProfit(campaign("10", "40"), profitOf("100"), nil, nil, nil)
	assert.True(t, d.SellerTotal.IsZero())
}

func TestDistributeProfit_ProductOverride(t *testing.T) {
	override := &domain.CampaignProduct{ID: "p1", Name: "Wreath", Price: dec("25"), Cost: dec("15"), IBAAmount: dec("2")}

	t.Run("Fixed amount wins over percentage", func(t *testing.T) {
		for _, pct := range []string{"0", "30", "100"} {
			orders := []domain.FundraisingOrder{order("o1", "sA", "Ann", override, 10, "250")}
			profit := ProfitSummary{NetProfit: dec("100"), ProductProfit: dec("100")}

			d := DistributeProfit(campaign(pct, "0"), profit, orders, nil, nil)

			require.True(t, d.ProductOverride)
			require.Len(t, d.Shares, 1)
			assert.Equal(t, "20.00", d.Shares[0].Amount.StringFixed(2), "pct %s", pct)
			assert.Equal(t, "20", d.SellerTotal.String())
			assert.Equal(t, "80", d.IBATotal.String())
		}
	})

	t.Run("Non override products give no seller share", func(t *testing.T) {
		plain := &domain.CampaignProduct{ID: "p2", Name: "Plain"}
		orders := []domain.FundraisingOrder{
			order("o1", "sA", "Ann", override, 1, "25"),
			order("o2", "sB", "Ben", plain, 5, "50"),
		}
		d := DistributeProfit(campaign("30", "0"), profitOf("60"), orders, nil, nil)
		require.Len(t, d.Shares, 1)
		assert.Equal(t, "sA", d.Shares[0].ScoutID)
	})

	t.Run("Volunteers still split their pool", func(t *testing.T) {
		orders := []domain.FundraisingOrder{order("o1", "sA", "Ann", override, 10, "250")}
		d := DistributeProfit(campaign("30", "10"), profitOf("100"), orders, []domain.FundraisingVolunteer{
			volunteer("sA", "Ann"),
			volunteer("sB", "Ben"),
		}, nil)

		require.Len(t, d.Shares, 2)
		assert.Equal(t, "25.00", d.Shares[0].Amount.StringFixed(2))
		assert.Equal(t, "5.00", d.Shares[1].Amount.StringFixed(2))
	})

	t.Run("IBA total clamps at zero", func(t *testing.T) {
		orders := []domain.FundraisingOrder{order("o1", "sA", "Ann", override, 10, "250")}
		profit := ProfitSummary{NetProfit: dec("100"), ProductProfit: dec("5")}
		d := DistributeProfit(campaign("30", "0"), profit, orders, nil, nil)
		assert.True(t, d.IBATotal.IsZero())
	})
}

func TestDistributeProfit_HalfCentPools(t *testing.T) {
	plain := &domain.CampaignProduct{ID: "p1", Name: "Caramel"}

	t.Run("Seller pool keeps its half cent", func(t *testing.T) {
		orders := []domain.FundraisingOrder{
			order("o1", "s1", "Ann", plain, 3, "30"),
			order("o2", "s1", "Ann", plain, 4, "40"),
		}
		d := DistributeProfit(campaign("50", "0"), profitOf("100.05"), orders, nil, nil)

		assert.Equal(t, "50.025", d.SellerTotal.String())
		require.Len(t, d.Shares, 1)
		assert.Equal(t, "50.03", d.Shares[0].Amount.StringFixed(2))
		assert.Equal(t, "50.03", d.Total.StringFixed(2))
	})

	t.Run("Volunteer pool rounds from the exact total", func(t *testing.T) {
		volunteers := []domain.FundraisingVolunteer{volunteer("s1", "Ann"), volunteer("s2", "Bea"), volunteer("s3", "Cy")}
		d := DistributeProfit(campaign("10", "10"), profitOf("100.05"), nil, volunteers, nil)

		assert.Equal(t, "10.005", d.VolunteerTotal.String())
		assert.Equal(t, "10.01", d.Total.StringFixed(2))
		assert.Equal(t, "3.34", d.Shares[0].Amount.StringFixed(2))
		assert.Equal(t, "3.34", d.Shares[1].Amount.StringFixed(2))
		assert.Equal(t, "3.33", d.Shares[2].Amount.StringFixed(2))
	})

	t.Run("Direct sales split keeps the item total", func(t *testing.T) {
		product := domain.CampaignProduct{ID: "p9", Name: "Wreath", Price: dec("20"), IBAAmount: dec("3.335")}
		group := &domain.DirectSalesGroup{
			ID:   "g1",
			Name: "Sunday Crew",
			Volunteers: []domain.DirectSalesGroupVolunteer{
				{ScoutID: null.StringFrom("s1"), ScoutName: "Ann"},
				{ScoutID: null.StringFrom("s2"), ScoutName: "Bea"},
				{ScoutID: null.StringFrom("s3"), ScoutName: "Cy"},
			},
		}
		inventories := []domain.DirectSalesInventory{{
			ID:      "i1",
			Product: product,
			Items:   []domain.DirectSalesGroupItem{{ID: "gi1", GroupID: "g1", Quantity: 5, SoldCount: 1, Group: group}},
		}}
		d := DistributeProfit(campaign("0", "0"), profitOf("10"), nil, nil, inventories)

		assert.Equal(t, "3.34", d.Total.StringFixed(2))
	})
}

func TestDistributeProfit_DirectSales(t *testing.T) {
	product := domain.CampaignProduct{ID: "p9", Name: "Mulch", Price: dec("6"), IBAAmount: dec("4")}
	group := &domain.DirectSalesGroup{
		ID:   "g1",
		Name: "Saturday Crew",
		Volunteers: []domain.DirectSalesGroupVolunteer{
			{ScoutID: null.StringFrom("s2"), ScoutName: "Bea"},
			{ScoutID: null.StringFrom("s1"), ScoutName: "Ann"},
			{UserID: null.StringFrom("u1"), ScoutName: ""},
		},
	}
	adultsOnly := &domain.DirectSalesGroup{
		ID:         "g2",
		Name:       "Parents",
		Volunteers: []domain.DirectSalesGroupVolunteer{{UserID: null.StringFrom("u2")}},
	}
	inventories := []domain.DirectSalesInventory{{
		ID:      "i1",
		Product: product,
		Items: []domain.DirectSalesGroupItem{
			{ID: "gi1", GroupID: "g1", Quantity: 10, SoldCount: 5, Group: group},
			{ID: "gi2", GroupID: "g2", Quantity: 10, SoldCount: 3, Group: adultsOnly},
			{ID: "gi3", GroupID: "g1", Quantity: 10, SoldCount: 0, Group: group},
		},
	}}

	t.Run("Sold items split equally among scout members", func(t *testing.T) {
		d := DistributeProfit(campaign("0", "0"), profitOf("50"), nil, nil, inventories)

		require.Len(t, d.Shares, 2)
		assert.Equal(t, "s1", d.Shares[0].ScoutID)
		assert.Equal(t, "10.00", d.Shares[0].Amount.StringFixed(2))
		assert.Equal(t, "10.00", d.Shares[1].Amount.StringFixed(2))
		assert.Equal(t, []string{"Saturday Crew (Mulch): 5 sold"}, d.Shares[0].Details)
	})

	t.Run("Groups without scouts leave profit undistributed", func(t *testing.T) {
		d := DistributeProfit(campaign("0", "0"), profitOf("50"), nil, nil, inventories)
		assert.Equal(t, "12", d.UndistributedDirectSales.String())
		assert.Equal(t, "32", d.DirectSalesTotal.String())
	})

	t.Run("Direct sales merge with order shares", func(t *testing.T) {
		plain := &domain.CampaignProduct{ID: "p1", Name: "Caramel"}
		orders := []domain.FundraisingOrder{order("o1", "s1", "Ann", plain, 2, "40")}
		d := DistributeProfit(campaign("10", "0"), profitOf("100"), orders, nil, inventories)

		require.Len(t, d.Shares, 2)
		assert.Equal(t, "20.00", d.Shares[0].Amount.StringFixed(2))
		assert.Equal(t, "10.00", d.Shares[1].Amount.StringFixed(2))
	})
}

func TestDistributeProfit_NamesAndUnassigned(t *testing.T) {
	plain := &domain.CampaignProduct{ID: "p1"}
	orphan := order("o2", "", "", plain, 1, "10")
	orphan.ScoutID = null.String{}
	orders := []domain.FundraisingOrder{
		order("o1", "s1", "", plain, 1, "10"),
		orphan,
	}

	d := DistributeProfit(campaign("20", "0"), profitOf("100"), orders, nil, nil)

	require.Len(t, d.Shares, 1)
	assert.Equal(t, "Unknown", d.Shares[0].ScoutName)
	assert.Equal(t, "10", d.UnassignedSellerShare.String())
}

func TestDistributeProfit_NeverNegativeAndSumsToRoundedTotal(t *testing.T) {
	plain := &domain.CampaignProduct{ID: "p1"}
	orders := []domain.FundraisingOrder{
		order("o1", "s1", "A", plain, 1, "1"),
		order("o2", "s2", "B", plain, 2, "1"),
		order("o3", "s3", "C", plain, 4, "1"),
	}
	volunteers := []domain.FundraisingVolunteer{volunteer("s1", "A"), volunteer("s4", "D"), volunteer("s4", "D")}

	d := DistributeProfit(campaign("33.3", "7.7"), profitOf("123.45"), orders, volunteers, nil)

	exact := d.SellerTotal.Add(d.VolunteerTotal)
	assert.Equal(t, exact.Round(2).StringFixed(2), d.Total.StringFixed(2))
	for _, s := range d.Shares {
		assert.False(t, s.Amount.IsNegative())
		assert.Equal(t, s.Amount.Round(2).String(), s.Amount.String())
	}
	assert.Len(t, d.Shares, 4)
}

func TestCalculate(t *testing.T) {
	product := &domain.CampaignProduct{ID: "p1", Name: "Popcorn", Price: dec("20"), Cost: dec("8")}
	snap := &CampaignSnapshot{
		Campaign: *campaign("40", "10"),
		Transactions: []domain.Transaction{
			{ID: "t1", Type: domain.TransactionTypeDonationIn, Amount: dec("50"), FundraisingCampaignID: null.StringFrom("c1")},
			{ID: "t2", Type: domain.TransactionTypeExpense, Amount: dec("30"), FundraisingCampaignID: null.StringFrom("c1")},
		},
		Orders: []domain.FundraisingOrder{order("o1", "s1", "Ann", product, 5, "100")},
		Volunteers: []domain.FundraisingVolunteer{
			volunteer("s2", "Bea"),
		},
	}

	d, err := Calculate(snap)
	require.NoError(t, err)

	// revenue 100 + 50, cost 40 is not an expense; net = 150 - 30 = 120
	assert.Equal(t, "120", d.Profit.NetProfit.String())
	assert.Equal(t, "48", d.IBATotal.String())
	assert.Equal(t, "12", d.VolunteerTotal.String())
	require.Len(t, d.Shares, 2)
	assert.Equal(t, "36.00", d.Shares[0].Amount.StringFixed(2))
	assert.Equal(t, "12.00", d.Shares[1].Amount.StringFixed(2))

	assert.Empty(t, d.Skipped)

	t.Run("Invalid campaign", func(t *testing.T) {
		bad := *snap
		bad.Campaign.IBAPercentage = dec("120")
		_, err := Calculate(&bad)
		assert.ErrorIs(t, err, domain.ErrPercentageOutOfRange)
	})

	t.Run("Malformed records are skipped", func(t *testing.T) {
		bad := *snap
		bad.Transactions = append([]domain.Transaction{
			{ID: "t9", Type: domain.TransactionTypeDonationIn, Amount: dec("-1"), FundraisingCampaignID: null.StringFrom("c1")},
		}, snap.Transactions...)
		bad.Orders = append([]domain.FundraisingOrder{order("o9", "s3", "Cy", product, -2, "0")}, snap.Orders...)
		bad.Inventories = []domain.DirectSalesInventory{
			{ID: "i8", Product: domain.CampaignProduct{ID: "p8", Price: dec("-3")}},
			{ID: "i9", Product: domain.CampaignProduct{ID: "p9", Price: dec("5")}, Items: []domain.DirectSalesGroupItem{
				{ID: "gi9", GroupID: "g1", Quantity: 4, SoldCount: -1},
			}},
		}

		got, err := Calculate(&bad)

		require.NoError(t, err)
		assert.Equal(t, "120", got.Profit.NetProfit.String())
		require.Len(t, got.Shares, 2)
		assert.Equal(t, "36.00", got.Shares[0].Amount.StringFixed(2))
		require.Len(t, got.Skipped, 4)
		assert.Equal(t, SkippedRecord{Kind: SkippedTransaction, ID: "t9", Reason: got.Skipped[0].Reason}, got.Skipped[0])
		assert.Contains(t, got.Skipped[0].Reason, domain.ErrNegativeAmount.Error())
		assert.Equal(t, SkippedOrder, got.Skipped[1].Kind)
		assert.Equal(t, "o9", got.Skipped[1].ID)
		assert.Equal(t, SkippedInventory, got.Skipped[2].Kind)
		assert.Equal(t, "i8", got.Skipped[2].ID)
		assert.Equal(t, SkippedInventoryItem, got.Skipped[3].Kind)
		assert.Equal(t, "gi9", got.Skipped[3].ID)
		assert.Len(t, bad.Transactions, 3)
	})
}

func TestProposeDeposits(t *testing.T) {
	c := campaign("30", "0")
	dist := &Distribution{Shares: []Share{
		{ScoutID: "s1", ScoutName: "Ann", Amount: dec("12.50")},
		{ScoutID: "s2", ScoutName: "Bea", Amount: dec("0.01")},
		{ScoutID: "s3", ScoutName: "Cy", Amount: dec("0.02")},
	}}
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)

	deposits := ProposeDeposits(c, dist, DefaultMinimumDeposit, now)

	require.Len(t, deposits, 2)
	first := deposits[0]
	assert.NotEmpty(t, first.ID)
	assert.NotEqual(t, first.ID, deposits[1].ID)
	assert.Equal(t, domain.TransactionTypeIBADeposit, first.Type)
	assert.Equal(t, domain.TransactionStatusApproved, first.Status)
	assert.Equal(t, domain.FromAccountManual, first.FromAccount)
	assert.Equal(t, DepositDescription, first.Description)
	assert.Equal(t, "s1", first.ScoutID.String)
	assert.Equal(t, "c1", first.FundraisingCampaignID.String)
	assert.Equal(t, "t1", first.TroopID)
	assert.Equal(t, now, first.CreatedAt)
	assert.Equal(t, "s3", deposits[1].ScoutID.String)
}
