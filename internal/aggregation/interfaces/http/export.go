package http

import (
	"bytes"
	"fmt"
	"net/http"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	aggregation "commerce-views/internal/aggregation/domain"
)

func (h *ResourceHandler) handleExportXLSX(w http.ResponseWriter, r *http.Request) {
	result := h.service.Build(r.Context())
	payload, err := buildViewXLSX(h.display, result)
	if err != nil {
		h.respondFault(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.xlsx", h.resource))
	_, _ = w.Write(payload)
}

func (h *ResourceHandler) handleExportPDF(w http.ResponseWriter, r *http.Request) {
	result := h.service.Build(r.Context())
	payload, err := buildViewPDF(h.display, result)
	if err != nil {
		h.respondFault(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%s.pdf", h.resource))
	_, _ = w.Write(payload)
}

// buildViewXLSX renders the aggregation as a workbook: one line per entry
// plus a per-customer total row and a grand-total footer.
func buildViewXLSX(title string, result *aggregation.Result) ([]byte, error) {
	monetary := result.Mode() == aggregation.ModeMonetary

	f := excelize.NewFile()
	sheet := "summary"
	f.SetSheetName("Sheet1", sheet)

	headers := []string{"Customer ID", "Customer Name", "Order ID", "Product Name", "Quantity"}
	if monetary {
		headers = append(headers, "Product Price", "Total")
	}
	_ = f.SetCellValue(sheet, "A1", title)
	for col, header := range headers {
		cell, _ := excelize.CoordinatesToCellName(col+1, 3)
		_ = f.SetCellValue(sheet, cell, header)
	}

	row := 4
	for _, s := range result.Summaries() {
		for _, e := range s.Entries {
			values := []any{s.CustomerID, s.CustomerName, e.OrderID, e.ProductName, e.Quantity}
			if monetary {
				values = append(values, e.UnitPrice.StringFixed(2), e.LineTotal.StringFixed(2))
			}
			for col, value := range values {
				cell, _ := excelize.CoordinatesToCellName(col+1, row)
				_ = f.SetCellValue(sheet, cell, value)
			}
			row++
		}
		label := fmt.Sprintf("Total for %s", s.CustomerName)
		total := s.Total.StringFixed(2)
		if !monetary {
			label = fmt.Sprintf("Total quantity for %s", s.CustomerName)
			total = s.Total.String()
		}
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), label)
		cell, _ := excelize.CoordinatesToCellName(len(headers), row)
		_ = f.SetCellValue(sheet, cell, total)
		row++
	}

	footer := "Total"
	grand := result.GrandTotal().StringFixed(2)
	if !monetary {
		footer = "Total quantity"
		grand = result.GrandTotal().String()
	}
	_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), footer)
	cell, _ := excelize.CoordinatesToCellName(len(headers), row)
	_ = f.SetCellValue(sheet, cell, grand)

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// buildViewPDF renders the aggregation as a PDF table.
func buildViewPDF(title string, result *aggregation.Result) ([]byte, error) {
	monetary := result.Mode() == aggregation.ModeMonetary

	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, title+" Summary")
	pdf.Ln(12)

	type column struct {
		label string
		width float64
	}
	columns := []column{
		{"Customer ID", 30},
		{"Customer Name", 60},
		{"Order ID", 25},
		{"Product Name", 60},
		{"Quantity", 25},
	}
	if monetary {
		columns = append(columns, column{"Product Price", 35}, column{"Total", 35})
	}

	pdf.SetFont("Arial", "B", 10)
	for _, col := range columns {
		pdf.CellFormat(col.width, 6, col.label, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Arial", "", 10)
	for _, s := range result.Summaries() {
		for _, e := range s.Entries {
			cells := []string{
				fmt.Sprintf("%d", s.CustomerID),
				s.CustomerName,
				fmt.Sprintf("%d", e.OrderID),
				e.ProductName,
				fmt.Sprintf("%d", e.Quantity),
			}
			if monetary {
				cells = append(cells, e.UnitPrice.StringFixed(2), e.LineTotal.StringFixed(2))
			}
			for i, cell := range cells {
				pdf.CellFormat(columns[i].width, 6, cell, "1", 0, "C", false, 0, "")
			}
			pdf.Ln(-1)
		}
	}

	pdf.SetFont("Arial", "B", 10)
	var labelWidth float64
	for _, col := range columns[:len(columns)-1] {
		labelWidth += col.width
	}
	footer := "Total"
	grand := result.GrandTotal().StringFixed(2)
	if !monetary {
		footer = "Total quantity"
		grand = result.GrandTotal().String()
	}
	pdf.CellFormat(labelWidth, 6, footer, "1", 0, "R", false, 0, "")
	pdf.CellFormat(columns[len(columns)-1].width, 6, grand, "1", 0, "C", false, 0, "")
	pdf.Ln(-1)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
