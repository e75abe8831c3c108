package repo

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// csvFile is a flat, comma-delimited UTF-8 table with a header row.
// It does no locking; callers serialise access.
type csvFile struct {
	path   string
	header []string
}

// csvRow is one data row with column lookup by header name, so files written
// with a different column order still load.
type csvRow struct {
	index  map[string]int
	fields []string
}

// get returns the value of column name, or "" if the column or cell is absent.
func (r csvRow) get(name string) string {
	i, ok := r.index[name]
	if !ok || i >= len(r.fields) {
		return ""
	}
	return r.fields[i]
}

// appendRow writes row at the end of the file, creating the file (and its
// directory) with a header first if it does not exist or is empty.
func (f csvFile) appendRow(row []string) (err error) {
	if dir := filepath.Dir(f.path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("create directory: %w", err)
		}
	}

	file, err := os.OpenFile(f.path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open %s: %w", f.path, err)
	}
	defer func() {
		if cerr := file.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close %s: %w", f.path, cerr)
		}
	}()

	info, err := file.Stat()
	if err != nil {
		return fmt.Errorf("stat %s: %w", f.path, err)
	}

	w := csv.NewWriter(file)
	if info.Size() == 0 {
		if err := w.Write(f.header); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
	}
	if err := w.Write(row); err != nil {
		return fmt.Errorf("write row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush: %w", err)
	}
	return nil
}

// readRows parses the whole file. A missing file yields domain.ErrStoreEmpty.
// An existing file with only a header yields an empty slice.
func (f csvFile) readRows() ([]csvRow, error) {
	file, err := os.Open(f.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, domain.ErrStoreEmpty
		}
		return nil, fmt.Errorf("open %s: %w", f.path, err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	header, err := r.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return []csvRow{}, nil
		}
		return nil, fmt.Errorf("read header: %w", err)
	}

	index := make(map[string]int, len(header))
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff")
		}
		index[strings.TrimSpace(name)] = i
	}

	rows := []csvRow{}
	for {
		fields, err := r.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("read row: %w", err)
		}
		rows = append(rows, csvRow{index: index, fields: fields})
	}
	return rows, nil
}

// remove deletes the file. A file that is already gone is not an error.
func (f csvFile) remove() error {
	if err := os.Remove(f.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", f.path, err)
	}
	return nil
}
