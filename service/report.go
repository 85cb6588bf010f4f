package service

import (
	"context"
	"sort"
	"time"

	"fintrack/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// Parcel status filters
const (
	ParcelStatusAll     = "all"
	ParcelStatusPending = "pending"
	ParcelStatusOverdue = "overdue"
)

// MonthlySummary totals for one month; parcel anchors are left out so a purchase
// is only counted through its monthly parcels.
type MonthlySummary struct {
	Month            int             `json:"month"`
	Year             int             `json:"year"`
	TotalIncome      decimal.Decimal `json:"totalIncome"`
	TotalExpense     decimal.Decimal `json:"totalExpense"`
	Balance          decimal.Decimal `json:"balance"`
	IncomeCount      int64           `json:"incomeCount"`
	ExpenseCount     int64           `json:"expenseCount"`
	TransactionCount int64           `json:"transactionCount"`
}

// CategoryTotal expense total per category
type CategoryTotal struct {
	Category string          `json:"category"`
	Total    decimal.Decimal `json:"total"`
	Count    int64           `json:"count"`
}

// MonthlyReport response of the monthly summary endpoint
type MonthlyReport struct {
	Summary        MonthlySummary       `json:"summary"`
	PendingParcels []models.Transaction `json:"pendingParcels"`
	TopCategories  []CategoryTotal      `json:"topCategories"`
}

// CategoryShare category slice of a month's expenses
type CategoryShare struct {
	Category   string          `json:"category"`
	Color      *string         `json:"color"`
	Total      decimal.Decimal `json:"total"`
	Percentage decimal.Decimal `json:"percentage"`
}

// ParcelFilter parcels view filter
type ParcelFilter struct {
	Month  int
	Year   int
	Status string
}

// ParcelGroup payment progress of one parceled purchase
type ParcelGroup struct {
	ParentID         uint            `json:"parentId"`
	Description      string          `json:"description"`
	Category         string          `json:"category"`
	TotalParcels     int             `json:"totalParcels"`
	PaidParcels      int             `json:"paidParcels"`
	RemainingParcels int             `json:"remainingParcels"`
	NextDueDate      *models.Date    `json:"nextDueDate"`
	TotalAmount      decimal.Decimal `json:"totalAmount"`
	PaidAmount       decimal.Decimal `json:"paidAmount"`
	RemainingAmount  decimal.Decimal `json:"remainingAmount"`
}

// MonthTotals one row of the annual summary
type MonthTotals struct {
	Month        int             `json:"month"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
	Count        int64           `json:"transactionCount"`
}

// AnnualSummary twelve months plus year totals
type AnnualSummary struct {
	Year         int             `json:"year"`
	Months       []MonthTotals   `json:"months"`
	TotalIncome  decimal.Decimal `json:"totalIncome"`
	TotalExpense decimal.Decimal `json:"totalExpense"`
	Balance      decimal.Decimal `json:"balance"`
}

// ReportService read-only aggregations over transactions
type ReportService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewReportService creates the reporter
func NewReportService(db *gorm.DB) *ReportService {
	return &ReportService{db: db, now: time.Now}
}

// WithClock replaces the time source used for "today"
func (s *ReportService) WithClock(now func() time.Time) *ReportService {
	s.now = now
	return s
}

func (s *ReportService) today() models.Date {
	return models.DateOf(s.now())
}

func validMonth(month, year int) error {
	if month < 1 || month > 12 || year < 1 {
		return Validationf("month and year are required")
	}
	return nil
}

// excludes parcel anchors
const notAnchor = "(is_parceled = ? OR total_parcels <= ?)"

// MonthlySummary totals by type, upcoming parcels and the top five expense categories
func (s *ReportService) MonthlySummary(ctx context.Context, userID uint, month, year int) (*MonthlyReport, error) {
	if err := validMonth(month, year); err != nil {
		return nil, err
	}
	db := s.db.WithContext(ctx)
	start, end := models.FirstOfMonth(year, month)

	var byType []struct {
		Type  string
		Total decimal.Decimal
		Count int64
	}
	if err := db.Model(&models.Transaction{}).
		Select("type, COALESCE(SUM(amount), 0) AS total, COUNT(*) AS count").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Where(notAnchor, true, 1).
		Group("type").
		Scan(&byType).Error; err != nil {
		return nil, err
	}

	summary := MonthlySummary{Month: month, Year: year, TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for _, row := range byType {
		switch row.Type {
		case models.TypeIncome:
			summary.TotalIncome = row.Total
			summary.IncomeCount = row.Count
		case models.TypeExpense:
			summary.TotalExpense = row.Total
			summary.ExpenseCount = row.Count
		}
	}
	summary.Balance = summary.TotalIncome.Sub(summary.TotalExpense)
	summary.TransactionCount = summary.IncomeCount + summary.ExpenseCount

	pending := make([]models.Transaction, 0)
	if err := db.Where("user_id = ? AND is_parceled = ? AND parent_transaction_id IS NOT NULL AND date >= ?", userID, true, s.today()).
		Order("date ASC").
		Find(&pending).Error; err != nil {
		return nil, err
	}

	top := make([]CategoryTotal, 0)
	if err := db.Model(&models.Transaction{}).
		Select("category, SUM(amount) AS total, COUNT(*) AS count").
		Where("user_id = ? AND type = ? AND date >= ? AND date < ?", userID, models.TypeExpense, start, end).
		Where(notAnchor, true, 1).
		Group("category").
		Order("total DESC").
		Limit(5).
		Scan(&top).Error; err != nil {
		return nil, err
	}

	return &MonthlyReport{Summary: summary, PendingParcels: pending, TopCategories: top}, nil
}

// CategoryBreakdown expense share per category for a month, parcel children excluded
func (s *ReportService) CategoryBreakdown(ctx context.Context, userID uint, month, year int) ([]CategoryShare, error) {
	if err := validMonth(month, year); err != nil {
		return nil, err
	}
	start, end := models.FirstOfMonth(year, month)

	rows := make([]CategoryShare, 0)
	if err := s.db.WithContext(ctx).Model(&models.Transaction{}).
		Select("transactions.category AS category, MAX(categories.color) AS color, SUM(transactions.amount) AS total").
		Joins("LEFT JOIN categories ON categories.name = transactions.category AND categories.user_id = transactions.user_id").
		Where("transactions.user_id = ? AND transactions.type = ?", userID, models.TypeExpense).
		Where("transactions.date >= ? AND transactions.date < ?", start, end).
		Where("transactions.is_parceled = ?", false).
		Group("transactions.category").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	sortShares(rows)
	applyPercentages(rows)
	return rows, nil
}

// applyPercentages sets total*100/sum rounded to two places
func applyPercentages(rows []CategoryShare) {
	sum := decimal.Zero
	for _, r := range rows {
		sum = sum.Add(r.Total)
	}
	for i := range rows {
		if sum.IsZero() {
			rows[i].Percentage = decimal.Zero
			continue
		}
		rows[i].Percentage = rows[i].Total.Mul(decimal.NewFromInt(100)).DivRound(sum, 2)
	}
}

// Parcels lists parcel children with their category color, oldest due date first
func (s *ReportService) Parcels(ctx context.Context, userID uint, f ParcelFilter) ([]models.TransactionView, error) {
	q := withCategoryColor(s.db.WithContext(ctx)).
		Where("transactions.user_id = ? AND transactions.is_parceled = ? AND transactions.parent_transaction_id IS NOT NULL", userID, true)

	if f.Month > 0 && f.Year > 0 {
		start, end := models.FirstOfMonth(f.Year, f.Month)
		q = q.Where("transactions.date >= ? AND transactions.date < ?", start, end)
	}

	switch f.Status {
	case "", ParcelStatusAll:
	case ParcelStatusPending:
		q = q.Where("transactions.date >= ?", s.today())
	case ParcelStatusOverdue:
		q = q.Where("transactions.date < ?", s.today())
	default:
		return nil, Validationf("status must be pending, overdue or all")
	}

	rows := make([]models.TransactionView, 0)
	if err := q.Order("transactions.date ASC").Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

// ParcelGroups payment progress for every parceled purchase
func (s *ReportService) ParcelGroups(ctx context.Context, userID uint) ([]ParcelGroup, error) {
	db := s.db.WithContext(ctx)

	var children []models.Transaction
	if err := db.Where("user_id = ? AND is_parceled = ? AND parent_transaction_id IS NOT NULL", userID, true).
		Order("parent_transaction_id ASC, current_parcel ASC").
		Find(&children).Error; err != nil {
		return nil, err
	}
	if len(children) == 0 {
		return []ParcelGroup{}, nil
	}

	parentIDs := make([]uint, 0)
	seen := map[uint]bool{}
	for _, c := range children {
		if !seen[*c.ParentTransactionID] {
			seen[*c.ParentTransactionID] = true
			parentIDs = append(parentIDs, *c.ParentTransactionID)
		}
	}

	var anchors []models.Transaction
	if err := db.Where("user_id = ? AND id IN ?", userID, parentIDs).Find(&anchors).Error; err != nil {
		return nil, err
	}
	return buildParcelGroups(anchors, children, s.today()), nil
}

// buildParcelGroups counts only the children still stored, so a family with a
// deleted sibling reports the same number of parcels its amounts are summed from
func buildParcelGroups(anchors, children []models.Transaction, today models.Date) []ParcelGroup {
	byID := make(map[uint]models.Transaction, len(anchors))
	for _, a := range anchors {
		byID[a.ID] = a
	}

	groups := make(map[uint]*ParcelGroup)
	order := make([]uint, 0)
	for _, c := range children {
		pid := *c.ParentTransactionID
		g, ok := groups[pid]
		if !ok {
			g = &ParcelGroup{
				ParentID:     pid,
				Description:  c.Description,
				Category:     c.Category,
				TotalAmount:  decimal.Zero,
				PaidAmount:   decimal.Zero,
			}
			if a, ok := byID[pid]; ok {
				g.Description = a.Description
			}
			groups[pid] = g
			order = append(order, pid)
		}

		g.TotalParcels++
		g.TotalAmount = g.TotalAmount.Add(c.Amount)
		if c.Paid {
			g.PaidParcels++
			g.PaidAmount = g.PaidAmount.Add(c.Amount)
			continue
		}
		if !c.Date.Before(today.Time) && (g.NextDueDate == nil || c.Date.Before(g.NextDueDate.Time)) {
			due := c.Date
			g.NextDueDate = &due
		}
	}

	out := make([]ParcelGroup, 0, len(order))
	for _, pid := range order {
		g := groups[pid]
		g.RemainingParcels = g.TotalParcels - g.PaidParcels
		g.RemainingAmount = g.TotalAmount.Sub(g.PaidAmount)
		out = append(out, *g)
	}
	return out
}

// AnnualSummary income/expense per month of a year
func (s *ReportService) AnnualSummary(ctx context.Context, userID uint, year int) (*AnnualSummary, error) {
	if year < 1 {
		return nil, Validationf("year is required")
	}
	start := models.NewDate(year, time.January, 1)
	end := models.NewDate(year+1, time.January, 1)

	var rows []models.Transaction
	if err := s.db.WithContext(ctx).
		Select("date", "type", "amount").
		Where("user_id = ? AND date >= ? AND date < ?", userID, start, end).
		Where(notAnchor, true, 1).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	return aggregateAnnual(year, rows), nil
}

func aggregateAnnual(year int, rows []models.Transaction) *AnnualSummary {
	out := &AnnualSummary{Year: year, Months: make([]MonthTotals, 12), TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	for i := range out.Months {
		out.Months[i] = MonthTotals{Month: i + 1, TotalIncome: decimal.Zero, TotalExpense: decimal.Zero}
	}
	for _, r := range rows {
		m := &out.Months[int(r.Date.Month())-1]
		m.Count++
		if r.Type == models.TypeIncome {
			m.TotalIncome = m.TotalIncome.Add(r.Amount)
		} else {
			m.TotalExpense = m.TotalExpense.Add(r.Amount)
		}
	}
	for i := range out.Months {
		m := &out.Months[i]
		m.Balance = m.TotalIncome.Sub(m.TotalExpense)
		out.TotalIncome = out.TotalIncome.Add(m.TotalIncome)
		out.TotalExpense = out.TotalExpense.Add(m.TotalExpense)
	}
	out.Balance = out.TotalIncome.Sub(out.TotalExpense)
	return out
}

// sortShares orders by total descending, then name
func sortShares(rows []CategoryShare) {
	sort.SliceStable(rows, func(i, j int) bool {
		if c := rows[i].Total.Cmp(rows[j].Total); c != 0 {
			return c > 0
		}
		return rows[i].Category < rows[j].Category
	})
}
