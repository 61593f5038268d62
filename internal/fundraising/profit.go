package fundraising

import (
	"github.com/shopspring/decimal"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/money"
)

// ProfitSummary breaks down a campaign's revenue and recognized expense.
type ProfitSummary struct {
	Donations      decimal.Decimal `json:"donations"`
	Expenses       decimal.Decimal `json:"expenses"`
	ProductRevenue decimal.Decimal `json:"product_revenue"`
	ProductCost    decimal.Decimal `json:"product_cost"`
	ProductProfit  decimal.Decimal `json:"product_profit"`
	DirectRevenue  decimal.Decimal `json:"direct_revenue"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	NetProfit      decimal.Decimal `json:"net_profit"`
}

// HasProfit reports whether there is anything to distribute.
func (p ProfitSummary) HasProfit() bool {
	return p.NetProfit.IsPositive()
}

// ComputeNetProfit totals one campaign. Every transaction linked to the campaign counts whatever
// its status or the campaign's status. Transactions linked to a different campaign are ignored;
// unlinked ones are assumed to belong to this campaign.
func ComputeNetProfit(
	campaign *domain.FundraisingCampaign,
	transactions []domain.Transaction,
	orders []domain.FundraisingOrder,
	inventories []domain.DirectSalesInventory,
) ProfitSummary {
	p := ProfitSummary{
		Donations:      money.Zero,
		Expenses:       money.Zero,
		ProductRevenue: money.Zero,
		ProductCost:    money.Zero,
		DirectRevenue:  money.Zero,
	}

	for i := range transactions {
		tx := &transactions[i]
		if tx.FundraisingCampaignID.Valid && tx.FundraisingCampaignID.String != campaign.ID {
			continue
		}
		switch tx.Type {
		case domain.TransactionTypeDonationIn, domain.TransactionTypeFundraisingIncome:
			p.Donations = p.Donations.Add(tx.Amount)
		case domain.TransactionTypeExpense, domain.TransactionTypeIBADeposit:
			p.Expenses = p.Expenses.Add(tx.Amount)
		}
	}

	for i := range orders {
		o := &orders[i]
		p.ProductRevenue = p.ProductRevenue.Add(o.AmountPaid)
		if o.Product != nil {
			p.ProductCost = p.ProductCost.Add(o.Product.Cost.Mul(money.FromInt(int64(o.Quantity))))
		}
	}
	p.ProductProfit = p.ProductRevenue.Sub(p.ProductCost)

	for i := range inventories {
		inv := &inventories[i]
		p.DirectRevenue = p.DirectRevenue.Add(inv.Product.Price.Mul(money.FromInt(int64(inv.SoldCount()))))
	}

	p.TotalRevenue = money.Sum(p.ProductRevenue, p.Donations, p.DirectRevenue)
	p.NetProfit = p.TotalRevenue.Sub(p.Expenses)
	return p
}
