package generate_excel

import (
	"context"
	"fmt"
	"math"

	"github.com/xuri/excelize/v2"

	"vue-estate/internal/service/costing"
	"vue-estate/internal/storage"
)

type ReportCosts interface {
	TotalCost(ctx context.Context, viewingID int64) (*costing.Breakdown, error)
}

type ReportStorage interface {
	GetViewing(ctx context.Context, id int64) (*storage.Viewing, error)
}

type GenerateExcelService struct {
	storage ReportStorage
	costs   ReportCosts
}

func NewGenerateService(storage ReportStorage, costs ReportCosts) *GenerateExcelService {
	return &GenerateExcelService{storage: storage, costs: costs}
}

// GenerateExcel renders the cost breakdown of one viewing as an xlsx sheet:
// acquisition fees, extra-expense line items, and the three totals.
func (g *GenerateExcelService) GenerateExcel(ctx context.Context, viewingID int64) ([]byte, error) {
	viewing, err := g.storage.GetViewing(ctx, viewingID)
	if err != nil {
		return nil, fmt.Errorf("fetch viewing: %w", err)
	}

	breakdown, err := g.costs.TotalCost(ctx, viewingID)
	if err != nil {
		return nil, fmt.Errorf("fetch breakdown: %w", err)
	}

	f := excelize.NewFile()
	defer f.Close()
	sheet := "Cost report"
	f.SetSheetName("Sheet1", sheet)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Fill:   excelize.Fill{Type: "pattern", Color: []string{"E0E0E0"}, Pattern: 1},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 2}},
	})
	totalStyle, _ := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		Border: []excelize.Border{{Type: "top", Color: "000000", Style: 1}},
	})

	f.SetCellValue(sheet, "A1", viewing.Address)
	f.SetCellValue(sheet, "A2", "Purchase price")
	f.SetCellValue(sheet, "B2", breakdown.Price)

	row := 4
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Acquisition fees")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Amount")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	row++

	for _, fee := range breakdown.Fees {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), fee.Label)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), math.Round(fee.Amount))
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Fees subtotal")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), math.Round(breakdown.FirstSubtotal))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), totalStyle)
	row += 2

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Extra expenses")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), "Amount")
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), headerStyle)
	row++

	for _, item := range breakdown.Items {
		f.SetCellValue(sheet, fmt.Sprintf("A%d", row), item.Description)
		f.SetCellValue(sheet, fmt.Sprintf("B%d", row), item.Amount)
		row++
	}
	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Expenses subtotal")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), math.Round(breakdown.SecondSubtotal))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), totalStyle)
	row += 2

	f.SetCellValue(sheet, fmt.Sprintf("A%d", row), "Total cost")
	f.SetCellValue(sheet, fmt.Sprintf("B%d", row), math.Round(breakdown.Total))
	f.SetCellStyle(sheet, fmt.Sprintf("A%d", row), fmt.Sprintf("B%d", row), totalStyle)

	f.SetColWidth(sheet, "A", "A", 42)
	f.SetColWidth(sheet, "B", "B", 14)

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, fmt.Errorf("write xlsx: %w", err)
	}

	return buf.Bytes(), nil
}
