// Package report writes the consult result table as a spreadsheet.
package report

import (
	"fmt"
	"io"

	"github.com/meghashyamc/docregistry/logger"
	"github.com/meghashyamc/docregistry/services/consult"
	"github.com/xuri/excelize/v2"
)

const (
	SheetName   = "Documentos"
	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	defaultName = "Sheet1"
)

var header = []any{"id", "nome", "tipo", "cliente", "caixa", "data", "observacao"}

type Service struct {
	logger logger.Logger
}

func New(logger logger.Logger) *Service {
	return &Service{logger: logger}
}

// Write renders rows as a single-sheet workbook, header first. Type ids are
// replaced by their resolved names.
func (s *Service) Write(w io.Writer, rows []consult.Row) error {
	file := excelize.NewFile()
	defer file.Close()

	if err := file.SetSheetName(defaultName, SheetName); err != nil {
		s.logger.Error("could not name report sheet", "err", err.Error())
		return fmt.Errorf("failed to name report sheet: %w", err)
	}

	if err := file.SetSheetRow(SheetName, "A1", &header); err != nil {
		s.logger.Error("could not write report header", "err", err.Error())
		return fmt.Errorf("failed to write report header: %w", err)
	}

	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return fmt.Errorf("failed to address report row %d: %w", i, err)
		}
		values := []any{row.ID, row.Name, row.TypeName, row.ClientID, row.Box, row.Date.String(), row.Note}
		if err := file.SetSheetRow(SheetName, cell, &values); err != nil {
			s.logger.Error("could not write report row", "row", i, "err", err.Error())
			return fmt.Errorf("failed to write report row %d: %w", i, err)
		}
	}

	if _, err := file.WriteTo(w); err != nil {
		s.logger.Error("could not write report", "err", err.Error())
		return fmt.Errorf("failed to write report: %w", err)
	}

	return nil
}
