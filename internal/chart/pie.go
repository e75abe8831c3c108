// Package chart renders modal-split pie charts as PNG files.
package chart

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/wcharczuk/go-chart/v2"

	"github.com/MatthiasHofhansl/Traffic-Diary-Analysis-Tool/internal/domain"
)

// File names and titles of the two charts.
const (
	WaysFile       = "modal_split_ways.png"
	KilometresFile = "modal_split_km.png"

	WaysTitle       = "Modal Split (Anzahl Wege in %)"
	KilometresTitle = "Modal Split (Kilometer in %)"
)

const (
	width  = 640
	height = 480
)

// PieWriter writes both modal-split charts into one directory, replacing the
// files of any previous run.
type PieWriter struct {
	dir string
}

// NewPieWriter constructs a PieWriter for dir. The directory is created on
// the first Write.
func NewPieWriter(dir string) *PieWriter {
	return &PieWriter{dir: dir}
}

// Write renders split.ByCount and split.ByDistance and returns the paths of
// the written files.
func (w *PieWriter) Write(split domain.ModalSplit) (domain.ChartFiles, error) {
	if err := os.MkdirAll(w.dir, 0o755); err != nil {
		return domain.ChartFiles{}, fmt.Errorf("chart.PieWriter.Write: create directory: %w", err)
	}

	files := domain.ChartFiles{
		Ways:       filepath.Join(w.dir, WaysFile),
		Kilometres: filepath.Join(w.dir, KilometresFile),
	}
	if err := render(files.Ways, WaysTitle, split.ByCount); err != nil {
		return domain.ChartFiles{}, fmt.Errorf("chart.PieWriter.Write: %w", err)
	}
	if err := render(files.Kilometres, KilometresTitle, split.ByDistance); err != nil {
		return domain.ChartFiles{}, fmt.Errorf("chart.PieWriter.Write: %w", err)
	}
	return files, nil
}

// render draws one pie chart to path. The image is rendered in memory and
// swapped in by rename, so a failed render leaves the previous file in place.
func render(path, title string, shares map[domain.Mode]float64) error {
	values := pieValues(shares)
	if len(values) == 0 {
		return fmt.Errorf("%s: no non-zero shares", title)
	}

	pie := chart.PieChart{
		Title:  title,
		Width:  width,
		Height: height,
		Values: values,
	}

	var buf bytes.Buffer
	if err := pie.Render(chart.PNG, &buf); err != nil {
		return fmt.Errorf("render %s: %w", title, err)
	}
	if err := writeFileAtomic(path, buf.Bytes()); err != nil {
		return fmt.Errorf("write %s: %w", path, err)
	}
	return nil
}

// writeFileAtomic writes data to a temp file in the target directory and
// renames it over path, so readers never see a partially written PNG.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	defer func() {
		if err != nil {
			_ = tmp.Close()
			_ = os.Remove(tmp.Name())
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		return err
	}
	if err = tmp.Chmod(0o644); err != nil {
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// pieValues orders the shares like domain.Modes, followed by any unknown
// modes alphabetically, and drops zero shares.
func pieValues(shares map[domain.Mode]float64) []chart.Value {
	order := domain.Modes()
	var extra []domain.Mode
	for mode := range shares {
		if !mode.Valid() {
			extra = append(extra, mode)
		}
	}
	slices.Sort(extra)
	order = append(order, extra...)

	values := make([]chart.Value, 0, len(shares))
	for _, mode := range order {
		pct := shares[mode]
		if pct <= 0 {
			continue
		}
		values = append(values, chart.Value{
			Value: pct,
			Label: Label(mode, pct),
		})
	}
	return values
}

// Label formats a slice label such as "MIV 42.9%".
func Label(mode domain.Mode, pct float64) string {
	return fmt.Sprintf("%s %.1f%%", mode, pct)
}
