package ledger

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/shopspring/decimal"

	"trooptreasury-engine/internal/domain"
	"trooptreasury-engine/internal/money"
)

// StatusPolicy selects which transaction statuses a report folds.
type StatusPolicy string

const (
	ApprovedOnly StatusPolicy = "approved"
	AllStatuses  StatusPolicy = "all"
)

func ParseStatusPolicy(s string) (StatusPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", string(ApprovedOnly):
		return ApprovedOnly, nil
	case string(AllStatuses):
		return AllStatuses, nil
	}
	return "", fmt.Errorf("%w: report status %q", domain.ErrUnknownStatus, s)
}

func (p StatusPolicy) Admits(tx *domain.Transaction) bool {
	return p == AllStatuses || tx.IsApproved()
}

// Statuses lists the stored statuses a loader should fetch for p. Nil means no filter.
func (p StatusPolicy) Statuses() []domain.TransactionStatus {
	if p == AllStatuses {
		return nil
	}
	return []domain.TransactionStatus{domain.TransactionStatusApproved}
}

// Period is an inclusive date window. Either bound may be open. To covers its whole day.
type Period struct {
	From *time.Time `json:"from,omitempty"`
	To   *time.Time `json:"to,omitempty"`
}

func (p Period) Contains(t time.Time) bool {
	if p.From != nil && t.Before(*p.From) {
		return false
	}
	if p.To != nil && t.After(endOfDay(*p.To)) {
		return false
	}
	return true
}

func endOfDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 23, 59, 59, int(999*time.Millisecond), t.Location())
}

const (
	UncategorizedBudget  = "UNCATEGORIZED"
	fundraisingTroopNote = " (Troop Available)"
)

var (
	incomeCategoryOrder = []domain.TransactionType{
		domain.TransactionTypeRegistrationIncome,
		domain.TransactionTypeFundraisingIncome,
		domain.TransactionTypeDonationIn,
		domain.TransactionTypeDues,
		domain.TransactionTypeCampTransfer,
		domain.TransactionTypeIBAReclaim,
	}
	expenseCategoryOrder = []domain.TransactionType{
		domain.TransactionTypeExpense,
		domain.TransactionTypeReimbursement,
		domain.TransactionTypeTroopPayment,
		domain.TransactionTypeInternalTransfer,
	}
)

type CategoryTotal struct {
	Category string          `json:"category"`
	Label    string          `json:"label"`
	Amount   decimal.Decimal `json:"amount"`
}

// ScoutAudit recomputes a scout's IBA activity from history for comparison with the stored balance.
type ScoutAudit struct {
	ScoutID string          `json:"scout_id"`
	Name    string          `json:"name"`
	Status  string          `json:"status"`
	Credits decimal.Decimal `json:"credits"`
	Debits  decimal.Decimal `json:"debits"`
	Balance decimal.Decimal `json:"balance"`
	Drift   decimal.Decimal `json:"drift"`
}

func (a ScoutAudit) InBalance() bool {
	return a.Drift.IsZero()
}

type PeriodReport struct {
	Period       Period          `json:"period"`
	Policy       StatusPolicy    `json:"policy"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Net          decimal.Decimal `json:"net"`

	IncomeByCategory        []CategoryTotal `json:"income_by_category"`
	ExpenseByCategory       []CategoryTotal `json:"expense_by_category"`
	ExpenseByBudgetCategory []CategoryTotal `json:"expense_by_budget_category"`

	TransactionCount int             `json:"transaction_count"`
	Skipped          []SkippedRecord `json:"skipped"`
	ScoutAudits      []ScoutAudit    `json:"scout_audits"`
}

// BuildReport classifies the policy-admitted transactions inside period into income and expense
// categories. Scout audits use the same policy over the whole history, ignoring the period.
func BuildReport(transactions []domain.Transaction, scouts []domain.Scout, period Period, policy StatusPolicy) *PeriodReport {
	r := &PeriodReport{
		Period:       period,
		Policy:       policy,
		TotalIncome:  money.Zero,
		TotalExpense: money.Zero,
		Skipped:      []SkippedRecord{},
	}

	income := map[domain.TransactionType]decimal.Decimal{}
	expense := map[domain.TransactionType]decimal.Decimal{}
	budget := redblacktree.NewWithStringComparator()

	admitted := make([]domain.Transaction, 0, len(transactions))
	for i := range transactions {
		tx := &transactions[i]
		if !policy.Admits(tx) {
			continue
		}
		admitted = append(admitted, *tx)
		if !period.Contains(tx.CreatedAt) {
			continue
		}
		r.TransactionCount++

		c, err := Classify(tx, tx.Campaign)
		if err != nil {
			r.Skipped = append(r.Skipped, SkippedRecord{TransactionID: tx.ID, Reason: err.Error()})
			continue
		}

		if in := c.Total(BucketTroopIncome); in.IsPositive() {
			income[tx.Type] = addTo(income[tx.Type], in)
			r.TotalIncome = r.TotalIncome.Add(in)
		}
		if out := c.Total(BucketTroopExpense); out.IsPositive() {
			expense[tx.Type] = addTo(expense[tx.Type], out)
			r.TotalExpense = r.TotalExpense.Add(out)

			key := UncategorizedBudget
			if tx.BudgetCategoryID.Valid && tx.BudgetCategoryID.String != "" {
				key = tx.BudgetCategoryID.String
			}
			prev := money.Zero
			if v, found := budget.Get(key); found {
				prev = v.(decimal.Decimal)
			}
			budget.Put(key, prev.Add(out))
		}
	}

	r.Net = r.TotalIncome.Sub(r.TotalExpense)
	r.IncomeByCategory = categoryTotals(incomeCategoryOrder, income)
	r.ExpenseByCategory = categoryTotals(expenseCategoryOrder, expense)

	r.ExpenseByBudgetCategory = make([]CategoryTotal, 0, budget.Size())
	it := budget.Iterator()
	for it.Next() {
		key := it.Key().(string)
		r.ExpenseByBudgetCategory = append(r.ExpenseByBudgetCategory, CategoryTotal{
			Category: key,
			Label:    key,
			Amount:   it.Value().(decimal.Decimal),
		})
	}

	r.ScoutAudits = AuditScouts(admitted, scouts)
	return r
}

func addTo(acc, v decimal.Decimal) decimal.Decimal {
	return money.Sum(acc, v)
}

func categoryTotals(order []domain.TransactionType, totals map[domain.TransactionType]decimal.Decimal) []CategoryTotal {
	out := make([]CategoryTotal, 0, len(order))
	for _, t := range order {
		amount, ok := totals[t]
		if !ok || !amount.IsPositive() {
			continue
		}
		out = append(out, CategoryTotal{Category: string(t), Label: CategoryLabel(t), Amount: amount})
	}
	return out
}

// CategoryLabel turns a transaction type into its report heading.
func CategoryLabel(t domain.TransactionType) string {
	label := strings.ReplaceAll(string(t), "_", " ")
	if t == domain.TransactionTypeFundraisingIncome {
		label += fundraisingTroopNote
	}
	return label
}

// AuditScouts recomputes every scout's credits and debits from transactions. Credits are IBA
// deposits plus the scout share of fundraising income on campaigns with a positive percentage.
// Debits are IBA reclaims and camp transfers. Drift is the stored balance minus the recomputed net.
// Results are ordered by scout name.
func AuditScouts(transactions []domain.Transaction, scouts []domain.Scout) []ScoutAudit {
	credits := map[string]decimal.Decimal{}
	debits := map[string]decimal.Decimal{}

	for i := range transactions {
		tx := &transactions[i]
		if !tx.ScoutID.Valid || tx.Amount.IsNegative() {
			continue
		}
		id := tx.ScoutID.String
		switch tx.Type {
		case domain.TransactionTypeIBADeposit:
			credits[id] = addTo(credits[id], tx.Amount)
		case domain.TransactionTypeFundraisingIncome:
			if tx.Campaign != nil && tx.Campaign.IBAPercentage.IsPositive() {
				credits[id] = addTo(credits[id], ScoutPortion(tx.Amount, tx.Campaign))
			}
		case domain.TransactionTypeIBAReclaim, domain.TransactionTypeCampTransfer:
			debits[id] = addTo(debits[id], tx.Amount)
		}
	}

	sorted := make([]domain.Scout, len(scouts))
	copy(sorted, scouts)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Name != sorted[j].Name {
			return sorted[i].Name < sorted[j].Name
		}
		return sorted[i].ID < sorted[j].ID
	})

	audits := make([]ScoutAudit, 0, len(sorted))
	for _, scout := range sorted {
		c := addTo(credits[scout.ID], money.Zero)
		d := addTo(debits[scout.ID], money.Zero)
		audits = append(audits, ScoutAudit{
			ScoutID: scout.ID,
			Name:    scout.Name,
			Status:  string(scout.Status),
			Credits: c,
			Debits:  d,
			Balance: scout.IBABalance,
			Drift:   scout.IBABalance.Sub(c.Sub(d)),
		})
	}
	return audits
}
