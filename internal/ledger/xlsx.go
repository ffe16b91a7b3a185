package ledger

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

// XLSXStore keeps every ledger as one sheet of a single workbook on disk.
// The workbook is opened, mutated, and saved per call; the mutex makes the
// read-modify-write cycle safe for the concurrent intake workers.
type XLSXStore struct {
	path string
	log  *slog.Logger
	mu   sync.Mutex
}

func NewXLSXStore(path string, logger *slog.Logger) *XLSXStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &XLSXStore{path: path, log: logger}
}

func (s *XLSXStore) open() (*excelize.File, error) {
	f, err := excelize.OpenFile(s.path)
	if err == nil {
		return f, nil
	}
	if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
		return excelize.NewFile(), nil
	}
	return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
}

func (s *XLSXStore) save(f *excelize.File) error {
	if err := f.SaveAs(s.path); err != nil {
		return fmt.Errorf("save workbook %s: %w", s.path, err)
	}
	return nil
}

// EnsureHeaders creates the sheet with its header row when absent. The
// throwaway default sheet of a fresh workbook is dropped once a real
// ledger sheet exists.
func (s *XLSXStore) EnsureHeaders(_ context.Context, ledgerID string, headers []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(ledgerID); idx != -1 {
		return nil
	}
	if _, err := f.NewSheet(ledgerID); err != nil {
		return fmt.Errorf("new sheet %s: %w", ledgerID, err)
	}
	for i, h := range headers {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		if err := f.SetCellValue(ledgerID, cell, h); err != nil {
			return fmt.Errorf("write header %s: %w", ledgerID, err)
		}
	}
	if ledgerID != "Sheet1" {
		if idx, _ := f.GetSheetIndex("Sheet1"); idx != -1 {
			if rows, _ := f.GetRows("Sheet1"); len(rows) == 0 {
				_ = f.DeleteSheet("Sheet1")
			}
		}
	}
	s.log.Info("ledger.xlsx.sheet_created", "ledger", ledgerID, "columns", len(headers))
	return s.save(f)
}

func (s *XLSXStore) AppendRow(_ context.Context, ledgerID string, row []string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := s.open()
	if err != nil {
		return err
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(ledgerID); idx == -1 {
		return fmt.Errorf("append to missing ledger %q", ledgerID)
	}
	rows, err := f.GetRows(ledgerID)
	if err != nil {
		return fmt.Errorf("read sheet %s: %w", ledgerID, err)
	}
	next := len(rows) + 1
	for i, v := range row {
		cell, _ := excelize.CoordinatesToCellName(i+1, next)
		if err := f.SetCellValue(ledgerID, cell, v); err != nil {
			return fmt.Errorf("write cell %s: %w", cell, err)
		}
	}
	return s.save(f)
}

func (s *XLSXStore) ReadAll(_ context.Context, ledgerID string) ([][]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	f, err := excelize.OpenFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) || errors.Is(err, os.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("open workbook %s: %w", s.path, err)
	}
	defer f.Close()

	if idx, _ := f.GetSheetIndex(ledgerID); idx == -1 {
		return nil, nil
	}
	rows, err := f.GetRows(ledgerID)
	if err != nil {
		return nil, fmt.Errorf("read sheet %s: %w", ledgerID, err)
	}
	return rows, nil
}

var _ Store = (*XLSXStore)(nil)
