package fundraising

import (
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/volatiletech/null"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/money"
)

// Share is one scout's cut of a campaign, rounded to cents.
type Share struct {
	ScoutID   string          `json:"scout_id"`
	ScoutName string          `json:"scout_name"`
	Amount    decimal.Decimal `json:"amount"`
	Details   []string        `json:"details,omitempty"`
}

// Distribution is the split of a campaign's profit. Pool amounts are exact; only Shares are rounded.
type Distribution struct {
	CampaignID string        `json:"campaign_id"`
	Profit     ProfitSummary `json:"profit"`

	IBATotal        decimal.Decimal `json:"iba_total"`
	VolunteerTotal  decimal.Decimal `json:"volunteer_total"`
	SellerTotal     decimal.Decimal `json:"seller_total"`
	ProductOverride bool            `json:"product_override"`
	PerUnitRate     decimal.Decimal `json:"per_unit_rate"`
	PerVolunteer    decimal.Decimal `json:"per_volunteer"`

	DirectSalesTotal         decimal.Decimal `json:"direct_sales_total"`
	UndistributedDirectSales decimal.Decimal `json:"undistributed_direct_sales"`
	UnassignedSellerShare    decimal.Decimal `json:"unassigned_seller_share"`

	Shares  []Share         `json:"shares"`
	Total   decimal.Decimal `json:"total"`
	Skipped []SkippedRecord `json:"skipped"`
}

func emptyDistribution(campaignID string, profit ProfitSummary) *Distribution {
	return &Distribution{
		CampaignID:               campaignID,
		Profit:                   profit,
		IBATotal:                 money.Zero,
		VolunteerTotal:           money.Zero,
		SellerTotal:              money.Zero,
		PerUnitRate:              money.Zero,
		PerVolunteer:             money.Zero,
		DirectSalesTotal:         money.Zero,
		UndistributedDirectSales: money.Zero,
		UnassignedSellerShare:    money.Zero,
		Shares:                   []Share{},
		Total:                    money.Zero,
		Skipped:                  []SkippedRecord{},
	}
}

// DistributeProfit splits profit.NetProfit between the campaign's sellers and volunteers and adds
// the direct-sales group shares.
//
// When any ordered product carries a fixed per-unit IBA amount the seller pool is replaced by those
// fixed amounts and the IBA total becomes the product profit left over. Otherwise sellers share
// the seller pool at a uniform rate per unit sold. Volunteers split the volunteer pool equally in
// both cases. Nothing is distributed when net profit is not positive.
func DistributeProfit(
	campaign *domain.FundraisingCampaign,
	profit ProfitSummary,
	orders []domain.FundraisingOrder,
	volunteers []domain.FundraisingVolunteer,
	inventories []domain.DirectSalesInventory,
) *Distribution {
	d := emptyDistribution(campaign.ID, profit)
	if !profit.HasProfit() {
		return d
	}

	ibaTotal := money.Percent(profit.NetProfit, campaign.IBAPercentage)
	d.VolunteerTotal = money.Percent(profit.NetProfit, campaign.VolunteerPercentage)
	d.IBATotal = ibaTotal
	d.SellerTotal = money.NonNegative(ibaTotal.Sub(d.VolunteerTotal))

	ledger := newShareLedger()

	fromProducts := money.Zero
	for i := range orders {
		if orders[i].Product.HasIBAOverride() {
			d.ProductOverride = true
			fromProducts = fromProducts.Add(orders[i].Product.IBAAmount.Mul(money.FromInt(int64(orders[i].Quantity))))
		}
	}

	if d.ProductOverride {
		d.IBATotal = money.NonNegative(profit.ProductProfit.Sub(fromProducts))
		d.SellerTotal = fromProducts
		for i := range orders {
			o := &orders[i]
			if !o.Product.HasIBAOverride() {
				continue
			}
			d.assignSeller(ledger, o.ScoutID, o.ScoutName, o.Product.IBAAmount.Mul(money.FromInt(int64(o.Quantity))))
		}
	} else {
		d.addPerUnitSellers(ledger, orders)
	}

	members := uniqueVolunteers(volunteers)
	if len(members) > 0 {
		d.PerVolunteer = money.SplitEvenly(d.VolunteerTotal, len(members))
		for _, v := range members {
			ledger.add(v.ScoutID, v.ScoutName, d.PerVolunteer, "")
		}
		ledger.pool(d.VolunteerTotal)
	}

	d.addDirectSales(ledger, inventories)

	d.Shares = ledger.shares()
	d.Total = money.Sum(sharesAmounts(d.Shares)...)
	return d
}

// addPerUnitSellers gives each seller SellerTotal * unitsSold / totalUnits, summed per scout
// before dividing.
func (d *Distribution) addPerUnitSellers(ledger *shareLedger, orders []domain.FundraisingOrder) {
	type seller struct {
		id    null.String
		name  string
		units int64
	}

	var total int64
	var sellers []*seller
	byScout := make(map[string]*seller, len(orders))
	for i := range orders {
		o := &orders[i]
		total += int64(o.Quantity)

		key := ""
		if o.ScoutID.Valid {
			key = o.ScoutID.String
		}
		sl, ok := byScout[key]
		if !ok {
			sl = &seller{id: o.ScoutID}
			byScout[key] = sl
			sellers = append(sellers, sl)
		}
		if sl.name == "" {
			sl.name = o.ScoutName
		}
		sl.units += int64(o.Quantity)
	}
	if total <= 0 {
		return
	}

	d.PerUnitRate = money.SplitEvenly(d.SellerTotal, int(total))
	for _, sl := range sellers {
		d.assignSeller(ledger, sl.id, sl.name, money.Allot(d.SellerTotal, sl.units, total))
	}
}

// assignSeller credits a seller share, or parks it as unassigned when the order has no scout.
func (d *Distribution) assignSeller(ledger *shareLedger, scoutID null.String, name string, amount decimal.Decimal) {
	if !scoutID.Valid || scoutID.String == "" {
		d.UnassignedSellerShare = d.UnassignedSellerShare.Add(amount)
		return
	}
	ledger.add(scoutID.String, name, amount, "")
	ledger.pool(amount)
}

// addDirectSales splits each sold group item's IBA profit equally among the group's scout members.
// Groups with no scout members keep their profit unassigned.
func (d *Distribution) addDirectSales(ledger *shareLedger, inventories []domain.DirectSalesInventory) {
	for i := range inventories {
		inv := &inventories[i]
		for j := range inv.Items {
			item := &inv.Items[j]
			if item.SoldCount <= 0 {
				continue
			}
			itemProfit := inv.Product.IBAAmount.Mul(money.FromInt(int64(item.SoldCount)))
			if !itemProfit.IsPositive() {
				continue
			}
			d.DirectSalesTotal = d.DirectSalesTotal.Add(itemProfit)

			scouts := item.Group.ScoutVolunteers()
			if len(scouts) == 0 {
				d.UndistributedDirectSales = d.UndistributedDirectSales.Add(itemProfit)
				continue
			}

			detail := fmt.Sprintf("%s (%s): %d sold", item.Group.Name, inv.Product.Name, item.SoldCount)
			perScout := money.Allot(itemProfit, 1, int64(len(scouts)))
			for _, v := range scouts {
				ledger.add(v.ScoutID.String, v.ScoutName, perScout, detail)
			}
			ledger.pool(itemProfit)
		}
	}
}

func uniqueVolunteers(volunteers []domain.FundraisingVolunteer) []domain.FundraisingVolunteer {
	seen := make(map[string]bool, len(volunteers))
	out := make([]domain.FundraisingVolunteer, 0, len(volunteers))
	for _, v := range volunteers {
		if v.ScoutID == "" || seen[v.ScoutID] {
			continue
		}
		seen[v.ScoutID] = true
		out = append(out, v)
	}
	return out
}

func sharesAmounts(shares []Share) []decimal.Decimal {
	out := make([]decimal.Decimal, len(shares))
	for i, s := range shares {
		out[i] = s.Amount
	}
	return out
}
