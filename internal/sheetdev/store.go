package sheetdev

import (
	"errors"
	"fmt"
	"os"
	"sync"

	"github.com/xuri/excelize/v2"
)

var (
	ErrUnknownSheet = errors.New("sheetdev: unknown sheet")
	ErrRowNotFound  = errors.New("sheetdev: row not found")
)

// Store keeps forum data in a local .xlsx workbook. Each sheet's first
// row is the header; every cell is handled as text, matching what the
// remote script returns. All mutations are flushed back to disk.
type Store struct {
	mu   sync.Mutex
	path string
	file *excelize.File
}

// Open loads the workbook at path, creating it with empty users, posts
// and comments sheets when it does not exist yet.
func Open(path string) (*Store, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return create(path)
	}

	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("sheetdev: open %s: %w", path, err)
	}
	return &Store{path: path, file: f}, nil
}

func create(path string) (*Store, error) {
	f := excelize.NewFile()

	seed := map[string][]string{
		"users":    {"id", "name", "email", "password", "created_at", "updated_at"},
		"posts":    {"id", "user_id", "author", "title", "content", "comment_count", "created_at", "updated_at"},
		"comments": {"id", "user_id", "post_id", "content", "created_at", "updated_at"},
	}
	for name, header := range seed {
		if _, err := f.NewSheet(name); err != nil {
			return nil, fmt.Errorf("sheetdev: seed sheet %s: %w", name, err)
		}
		for col, key := range header {
			cell, _ := excelize.CoordinatesToCellName(col+1, 1)
			if err := f.SetCellValue(name, cell, key); err != nil {
				return nil, fmt.Errorf("sheetdev: seed header %s: %w", name, err)
			}
		}
	}
	_ = f.DeleteSheet("Sheet1")

	if err := f.SaveAs(path); err != nil {
		return nil, fmt.Errorf("sheetdev: save %s: %w", path, err)
	}
	return &Store{path: path, file: f}, nil
}

func (s *Store) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.file.Close()
}

// Query returns rows matching an optional filter, paginated 1-based.
// A limit of zero returns everything on a single page.
func (s *Store) Query(sheet, filterKey, filterValue string, limit, page int) ([]map[string]string, int, int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, rows, err := s.read(sheet)
	if err != nil {
		return nil, 0, 0, err
	}

	matched := make([]map[string]string, 0, len(rows))
	for _, cells := range rows {
		record := toRecord(header, cells)
		if filterKey != "" && record[filterKey] != filterValue {
			continue
		}
		matched = append(matched, record)
	}

	if limit <= 0 {
		return matched, 1, 1, nil
	}

	totalPages := (len(matched) + limit - 1) / limit
	if totalPages == 0 {
		totalPages = 1
	}
	if page <= 0 {
		page = 1
	}
	if page > totalPages {
		return []map[string]string{}, page, totalPages, nil
	}

	start := (page - 1) * limit
	end := start + limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], page, totalPages, nil
}

// Create appends a row, extending the header for any new field keys.
func (s *Store) Create(sheet string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, rows, err := s.read(sheet)
	if err != nil {
		return err
	}

	for key := range fields {
		if columnIndex(header, key) < 0 {
			header = append(header, key)
			cell, _ := excelize.CoordinatesToCellName(len(header), 1)
			if err := s.file.SetCellValue(sheet, cell, key); err != nil {
				return fmt.Errorf("sheetdev: extend header: %w", err)
			}
		}
	}

	rowNum := len(rows) + 2 // 1-based, after the header
	for col, key := range header {
		value, ok := fields[key]
		if !ok {
			continue
		}
		cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
		if err := s.file.SetCellValue(sheet, cell, value); err != nil {
			return fmt.Errorf("sheetdev: write cell: %w", err)
		}
	}

	return s.file.Save()
}

// Update rewrites the supplied fields of the row whose id matches.
func (s *Store) Update(sheet, id string, fields map[string]string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	header, rows, err := s.read(sheet)
	if err != nil {
		return err
	}

	idCol := columnIndex(header, "id")
	if idCol < 0 {
		return fmt.Errorf("sheetdev: sheet %q has no id column", sheet)
	}

	for i, cells := range rows {
		if cellAt(cells, idCol) != id {
			continue
		}
		rowNum := i + 2
		for key, value := range fields {
			col := columnIndex(header, key)
			if col < 0 {
				continue
			}
			cell, _ := excelize.CoordinatesToCellName(col+1, rowNum)
			if err := s.file.SetCellValue(sheet, cell, value); err != nil {
				return fmt.Errorf("sheetdev: write cell: %w", err)
			}
		}
		return s.file.Save()
	}

	return ErrRowNotFound
}

// read returns the header row and the data rows of a sheet.
func (s *Store) read(sheet string) ([]string, [][]string, error) {
	idx, err := s.file.GetSheetIndex(sheet)
	if err != nil || idx < 0 {
		return nil, nil, ErrUnknownSheet
	}

	all, err := s.file.GetRows(sheet)
	if err != nil {
		return nil, nil, fmt.Errorf("sheetdev: read %s: %w", sheet, err)
	}
	if len(all) == 0 {
		return nil, nil, nil
	}
	return all[0], all[1:], nil
}

func toRecord(header []string, cells []string) map[string]string {
	record := make(map[string]string, len(header))
	for col, key := range header {
		record[key] = cellAt(cells, col)
	}
	return record
}

func cellAt(cells []string, col int) string {
	if col >= len(cells) {
		return ""
	}
	return cells[col]
}

func columnIndex(header []string, key string) int {
	for i, h := range header {
		if h == key {
			return i
		}
	}
	return -1
}
