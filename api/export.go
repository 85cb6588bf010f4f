package api

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"net/http"

	"fintrack/middleware"
	"fintrack/models"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
)

const exportSheet = "Transactions"

var exportHeaders = []string{"ID", "Date", "Description", "Category", "Type", "Amount", "Parcel", "Fixed", "Paid"}

// ExportHandler spreadsheet exports
type ExportHandler struct {
	db *gorm.DB
}

// NewExportHandler creates the handler
func NewExportHandler(db *gorm.DB) *ExportHandler {
	return &ExportHandler{db: db}
}

// exportRange reads start_date/end_date (inclusive) and loads the rows; parcel anchors
// are skipped so totals match the summary
func (h *ExportHandler) exportRange(c *gin.Context) ([]models.Transaction, string, string, bool) {
	startStr, endStr := c.Query("start_date"), c.Query("end_date")
	if startStr == "" || endStr == "" {
		BadRequest(c, "start_date and end_date are required")
		return nil, "", "", false
	}
	start, err := models.ParseDate(startStr)
	if err != nil {
		BadRequest(c, "start_date must be YYYY-MM-DD")
		return nil, "", "", false
	}
	end, err := models.ParseDate(endStr)
	if err != nil {
		BadRequest(c, "end_date must be YYYY-MM-DD")
		return nil, "", "", false
	}
	if end.Before(start.Time) {
		BadRequest(c, "end_date is before start_date")
		return nil, "", "", false
	}

	rows := make([]models.Transaction, 0)
	if err := h.db.WithContext(c.Request.Context()).
		Where("user_id = ? AND date >= ? AND date <= ?", middleware.GetCurrentUserID(c), start, end).
		Where("is_parceled = ? OR total_parcels <= ?", true, 1).
		Order("date ASC").Order("id ASC").
		Find(&rows).Error; err != nil {
		serviceError(c, err, "failed to load transactions")
		return nil, "", "", false
	}
	return rows, startStr, endStr, true
}

func exportRecord(t models.Transaction) []string {
	parcel := ""
	if t.IsParceled && t.CurrentParcel != nil {
		parcel = fmt.Sprintf("%d/%d", *t.CurrentParcel, t.TotalParcels)
	}
	return []string{
		fmt.Sprintf("%d", t.ID),
		t.Date.String(),
		t.Description,
		t.Category,
		t.Type,
		t.Amount.StringFixed(2),
		parcel,
		yesNo(t.IsFixed),
		yesNo(t.Paid),
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}

func exportTotals(rows []models.Transaction) (income, expense decimal.Decimal) {
	income, expense = decimal.Zero, decimal.Zero
	for _, t := range rows {
		if t.Type == models.TypeIncome {
			income = income.Add(t.Amount)
		} else {
			expense = expense.Add(t.Amount)
		}
	}
	return income, expense
}

// ExportCSV exports transactions as CSV
// @Summary Export transactions as CSV
// @Tags export
// @Produce text/csv
// @Security BearerAuth
// @Param start_date query string true "first day (YYYY-MM-DD)"
// @Param end_date query string true "last day (YYYY-MM-DD)"
// @Success 200 {file} file "CSV file"
// @Failure 400 {object} ErrorResponse
// @Router /api/export/csv [get]
func (h *ExportHandler) ExportCSV(c *gin.Context) {
	rows, startStr, endStr, ok := h.exportRange(c)
	if !ok {
		return
	}

	data, err := buildCSV(rows)
	if err != nil {
		serviceError(c, err, "failed to build CSV")
		return
	}

	filename := fmt.Sprintf("transactions_%s_%s.csv", startStr, endStr)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%s", filename))
	c.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

func buildCSV(rows []models.Transaction) ([]byte, error) {
	buf := new(bytes.Buffer)
	// BOM so spreadsheet apps detect UTF-8
	buf.WriteString("\xEF\xBB\xBF")

	writer := csv.NewWriter(buf)
	if err := writer.Write(exportHeaders); err != nil {
		return nil, err
	}
	for _, t := range rows {
		if err := writer.Write(exportRecord(t)); err != nil {
			return nil, err
		}
	}
	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// ExportExcel exports transactions as an xlsx workbook with a totals block
// @Summary Export transactions as Excel
// @Tags export
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Security BearerAuth
// @Param start_date query string true "first day (YYYY-MM-DD)"
// @Param end_date query string true "last day (YYYY-MM-DD)"
// @Success 200 {file} file "xlsx file"
// @Failure 400 {object} ErrorResponse
// @Router /api/export/excel [get]
func (h *ExportHandler) ExportExcel(c *gin.Context) {
	rows, startStr, endStr, ok := h.exportRange(c)
	if !ok {
		return
	}

	f, err := buildWorkbook(rows)
	if err != nil {
		serviceError(c, err, "failed to build workbook")
		return
	}
	defer f.Close()

	filename := fmt.Sprintf("transactions_%s_%s.xlsx", startStr, endStr)
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename*=UTF-8''%s", filename))
	if err := f.Write(c.Writer); err != nil {
		_ = c.Error(err)
	}
}

func cellBorder() []excelize.Border {
	return []excelize.Border{
		{Type: "left", Color: "000000", Style: 1},
		{Type: "top", Color: "000000", Style: 1},
		{Type: "bottom", Color: "000000", Style: 1},
		{Type: "right", Color: "000000", Style: 1},
	}
}

func buildWorkbook(rows []models.Transaction) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", exportSheet); err != nil {
		f.Close()
		return nil, err
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 12, Color: "FFFFFF"},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"4F81BD"}, Pattern: 1},
		Alignment: &excelize.Alignment{Horizontal: "center", Vertical: "center"},
		Border:    cellBorder(),
	})
	if err != nil {
		f.Close()
		return nil, err
	}
	dataStyle, _ := f.NewStyle(&excelize.Style{
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    cellBorder(),
	})
	summaryStyle, _ := f.NewStyle(&excelize.Style{
		Font:      &excelize.Font{Bold: true, Size: 11},
		Fill:      excelize.Fill{Type: "pattern", Color: []string{"FFC000"}, Pattern: 1},
		Alignment: &excelize.Alignment{Vertical: "center"},
		Border:    cellBorder(),
	})

	widths := []float64{8, 12, 36, 18, 10, 14, 8, 8, 8}
	for i, w := range widths {
		col, _ := excelize.ColumnNumberToName(i + 1)
		_ = f.SetColWidth(exportSheet, col, col, w)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		_ = f.SetCellValue(exportSheet, cell, header)
	}
	_ = f.SetCellStyle(exportSheet, "A1", "I1", headerStyle)

	for i, t := range rows {
		r := i + 2
		record := exportRecord(t)
		for j, v := range record {
			cell, _ := excelize.CoordinatesToCellName(j+1, r)
			if j == 0 {
				_ = f.SetCellValue(exportSheet, cell, t.ID)
				continue
			}
			if j == 5 {
				_ = f.SetCellValue(exportSheet, cell, t.Amount.InexactFloat64())
				continue
			}
			_ = f.SetCellValue(exportSheet, cell, v)
		}
		_ = f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("I%d", r), dataStyle)
	}

	income, expense := exportTotals(rows)
	summary := []struct {
		label string
		value decimal.Decimal
	}{
		{"Total income", income},
		{"Total expense", expense},
		{"Balance", income.Sub(expense)},
	}
	first := len(rows) + 3
	for i, s := range summary {
		r := first + i
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("A%d", r), s.label)
		_ = f.MergeCell(exportSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("E%d", r))
		_ = f.SetCellValue(exportSheet, fmt.Sprintf("F%d", r), s.value.InexactFloat64())
		_ = f.SetCellStyle(exportSheet, fmt.Sprintf("A%d", r), fmt.Sprintf("F%d", r), summaryStyle)
	}
	_ = f.SetCellValue(exportSheet, fmt.Sprintf("G%d", first), fmt.Sprintf("%d rows", len(rows)))

	return f, nil
}
