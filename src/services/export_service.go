package services

import (
	"context"
	"fmt"

	"cryptoapp/src/models"
	"cryptoapp/src/utils"

	"github.com/xuri/excelize/v2"
)

const (
	transactionsSheet = "Transactions"
	holdingsSheet     = "Holdings"
)

type ExportServiceI interface {
	GenerateXLSXLedger(ctx context.Context, user *models.User, portfolioID int64) (*excelize.File, error)
}

// ExportService renders a portfolio ledger and its holdings as a spreadsheet.
type ExportService struct {
	transactionService TransactionServiceI
	holdingService     HoldingServiceI
}

func NewExportService(transactionService TransactionServiceI, holdingService HoldingServiceI) *ExportService {
	return &ExportService{transactionService: transactionService, holdingService: holdingService}
}

func (es *ExportService) GenerateXLSXLedger(ctx context.Context, user *models.User, portfolioID int64) (*excelize.File, error) {
	transactions, err := es.transactionService.List(ctx, user, portfolioID)
	if err != nil {
		return nil, err
	}
	holdings, err := es.holdingService.GetAllByPortfolio(ctx, portfolioID)
	if err != nil {
		return nil, err
	}

	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", transactionsSheet); err != nil {
		return nil, err
	}
	txRows := make([][]interface{}, 0, len(transactions))
	for _, t := range transactions {
		txRows = append(txRows, []interface{}{
			t.ID, t.CreatedAt.UTC().Format(utils.DateTimeLayout), t.CryptoID, string(t.Kind),
			t.Quantity.String(), t.Price.String(), t.Fee.String(),
		})
	}
	err = es.writeSheet(f, transactionsSheet,
		[]string{"ID", "Date", "Crypto", "Type", "Quantity", "Price", "Fee"}, txRows)
	if err != nil {
		return nil, err
	}

	if _, err := f.NewSheet(holdingsSheet); err != nil {
		return nil, err
	}
	holdingRows := make([][]interface{}, 0, len(holdings))
	for _, h := range holdings {
		holdingRows = append(holdingRows, []interface{}{
			h.CryptoID, h.Quantity.String(), h.ModifiedAt.UTC().Format(utils.DateTimeLayout),
		})
	}
	err = es.writeSheet(f, holdingsSheet, []string{"Crypto", "Quantity", "Updated"}, holdingRows)
	if err != nil {
		return nil, err
	}

	if err := es.applyStylesToAllSheets(f); err != nil {
		return nil, err
	}
	return f, nil
}

func (es *ExportService) writeSheet(f *excelize.File, sheetName string, header []string, rows [][]interface{}) error {
	for col, title := range header {
		cell, err := excelize.CoordinatesToCellName(col+1, 1)
		if err != nil {
			return err
		}
		if err := f.SetCellValue(sheetName, cell, title); err != nil {
			return err
		}
	}
	for rowIndex, row := range rows {
		for col, value := range row {
			cell, err := excelize.CoordinatesToCellName(col+1, rowIndex+2)
			if err != nil {
				return err
			}
			if err := f.SetCellValue(sheetName, cell, value); err != nil {
				return err
			}
		}
	}
	return nil
}

func (es *ExportService) applyStylesToAllSheets(f *excelize.File) error {
	headerStyle, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{
			Bold: true,
		},
		Fill: excelize.Fill{
			Type:    "pattern",
			Color:   []string{"#E6E6E6"},
			Pattern: 1,
		},
		Border: []excelize.Border{
			{Type: "left", Color: "000000", Style: 1},
			{Type: "top", Color: "000000", Style: 1},
			{Type: "bottom", Color: "000000", Style: 1},
			{Type: "right", Color: "000000", Style: 1},
		},
		Alignment: &excelize.Alignment{
			Horizontal: "center",
			Vertical:   "center",
		},
	})
	if err != nil {
		return err
	}

	for _, sheetName := range f.GetSheetList() {
		rows, err := f.GetRows(sheetName)
		if err != nil {
			return err
		}
		if len(rows) == 0 {
			continue
		}
		lastCell, err := excelize.CoordinatesToCellName(len(rows[0]), 1)
		if err != nil {
			return err
		}
		if err := f.SetCellStyle(sheetName, "A1", lastCell, headerStyle); err != nil {
			return err
		}
		lastCol, _, err := excelize.SplitCellName(lastCell)
		if err != nil {
			return err
		}
		if err := f.SetColWidth(sheetName, "A", lastCol, 18); err != nil {
			return fmt.Errorf("setting column width on %s: %w", sheetName, err)
		}
	}
	return nil
}
