package export

import (
	"context"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"

	"github.com/mtlprog/krakenboard/internal/domain"
)

const usdNumFmt = `"$"#,##0.00`

// XLSXWriter writes the portfolio as an .xlsx workbook.
type XLSXWriter struct {
	out io.Writer
}

// NewXLSXWriter creates an XLSXWriter streaming the workbook to out.
func NewXLSXWriter(out io.Writer) *XLSXWriter {
	return &XLSXWriter{out: out}
}

// Write builds a single-sheet workbook and writes it to the output.
func (w *XLSXWriter) Write(_ context.Context, p domain.Portfolio) error {
	f, err := Workbook(p)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w.out); err != nil {
		return fmt.Errorf("writing workbook: %w", err)
	}
	return nil
}

// Workbook lays the portfolio out on the PORTFOLIO sheet with currency formatting.
func Workbook(p domain.Portfolio) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		f.Close()
		return nil, fmt.Errorf("naming sheet: %w", err)
	}

	rows := buildRows(p)
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			f.Close()
			return nil, fmt.Errorf("addressing row %d: %w", i+1, err)
		}
		if err := f.SetSheetRow(sheetName, cell, &row); err != nil {
			f.Close()
			return nil, fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}

	numFmt := usdNumFmt
	usd, err := f.NewStyle(&excelize.Style{CustomNumFmt: &numFmt})
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("creating currency style: %w", err)
	}
	last, err := excelize.CoordinatesToCellName(5, len(rows))
	if err != nil {
		f.Close()
		return nil, fmt.Errorf("addressing last cell: %w", err)
	}
	if err := f.SetCellStyle(sheetName, "D2", last, usd); err != nil {
		f.Close()
		return nil, fmt.Errorf("styling currency cells: %w", err)
	}

	return f, nil
}
