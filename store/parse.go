package store

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"math"
	"strconv"
	"strings"

	"scrolly/models"
)

// RowIssue describes a row that was dropped while parsing.
type RowIssue struct {
	Line   int
	Reason string
}

// ParseResult is either typed rows (Err nil) or the reason parsing failed. Skipped rows are reported either way.
type ParseResult[T any] struct {
	Value   T
	Rows    int
	Skipped []RowIssue
	Err     error
}

func (r ParseResult[T]) OK() bool {
	return r.Err == nil
}

type table struct {
	reader  *csv.Reader
	columns map[string]int
}

func openTable(r io.Reader) (*table, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("%w: no header row", ErrEmptySeries)
		}
		return nil, err
	}
	columns := make(map[string]int, len(header))
	for i, name := range header {
		// Spreadsheet exports like to start with a BOM.
		name = strings.TrimPrefix(strings.TrimSpace(name), "\ufeff")
		columns[name] = i
	}
	return &table{reader, columns}, nil
}

func (t *table) index(name string) (int, error) {
	i, ok := t.columns[name]
	if !ok {
		return 0, fmt.Errorf("%w %q", ErrMissingColumn, name)
	}
	return i, nil
}

// next returns the next record and its line, io.EOF at the end.
func (t *table) next() ([]string, int, error) {
	record, err := t.reader.Read()
	if err != nil {
		return nil, 0, err
	}
	line, _ := t.reader.FieldPos(0)
	return record, line, nil
}

func field(record []string, i int) (string, bool) {
	if i >= len(record) {
		return "", false
	}
	return strings.TrimSpace(record[i]), true
}

func parseValue(raw string) (float64, error) {
	if raw == "" {
		return 0, errors.New("empty value")
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("value %q is not numeric", raw)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return 0, fmt.Errorf("value %q is not finite", raw)
	}
	return v, nil
}

func parseYear(raw string) (int, error) {
	if year, err := strconv.Atoi(raw); err == nil {
		return year, nil
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil || f != math.Trunc(f) || math.Abs(f) > 1e6 {
		return 0, fmt.Errorf("year %q is not a whole number", raw)
	}
	return int(f), nil
}

// ParseTimeSeries reads (year, value) rows. Malformed rows are skipped, an empty result or repeated year fails.
func ParseTimeSeries(name string, r io.Reader, columns Columns) ParseResult[*models.TimeSeries] {
	var result ParseResult[*models.TimeSeries]
	columns = columns.withDefaults()

	t, err := openTable(r)
	if err != nil {
		result.Err = err
		return result
	}
	yearIdx, err := t.index(columns.Year)
	if err != nil {
		result.Err = err
		return result
	}
	valueIdx, err := t.index(columns.Value)
	if err != nil {
		result.Err = err
		return result
	}

	seen := make(map[int]int)
	var points []models.TimeSeriesPoint
	for {
		record, line, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Err = err
			return result
		}

		rawYear, ok := field(record, yearIdx)
		if !ok {
			result.Skipped = append(result.Skipped, RowIssue{line, "short row"})
			continue
		}
		year, err := parseYear(rawYear)
		if err != nil {
			result.Skipped = append(result.Skipped, RowIssue{line, err.Error()})
			continue
		}
		rawValue, _ := field(record, valueIdx)
		value, err := parseValue(rawValue)
		if err != nil {
			result.Skipped = append(result.Skipped, RowIssue{line, err.Error()})
			continue
		}
		if first, dup := seen[year]; dup {
			result.Err = fmt.Errorf("%w %d on lines %d and %d", ErrDuplicateYear, year, first, line)
			return result
		}
		seen[year] = line
		points = append(points, models.NewTimeSeriesPoint(year, value))
	}

	if len(points) == 0 {
		result.Err = ErrEmptySeries
		return result
	}
	result.Value = models.NewTimeSeries(name, "", points)
	result.Rows = len(points)
	return result
}

// ParseCategories reads (category, value[, group]) rows. The group column is optional.
func ParseCategories(name string, r io.Reader, columns Columns, sentinel string) ParseResult[*models.CategorySeries] {
	var result ParseResult[*models.CategorySeries]
	columns = columns.withDefaults()

	t, err := openTable(r)
	if err != nil {
		result.Err = err
		return result
	}
	categoryIdx, err := t.index(columns.Category)
	if err != nil {
		result.Err = err
		return result
	}
	valueIdx, err := t.index(columns.Value)
	if err != nil {
		result.Err = err
		return result
	}
	groupIdx := -1
	if columns.Group != "" {
		if groupIdx, err = t.index(columns.Group); err != nil {
			result.Err = err
			return result
		}
	}

	var points []models.CategoryPoint
	for {
		record, line, err := t.next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			result.Err = err
			return result
		}

		category, _ := field(record, categoryIdx)
		if category == "" {
			result.Skipped = append(result.Skipped, RowIssue{line, "missing category"})
			continue
		}
		rawValue, _ := field(record, valueIdx)
		value, err := parseValue(rawValue)
		if err != nil {
			result.Skipped = append(result.Skipped, RowIssue{line, err.Error()})
			continue
		}
		group := ""
		if groupIdx >= 0 {
			group, _ = field(record, groupIdx)
			if group == "" {
				result.Skipped = append(result.Skipped, RowIssue{line, "missing group"})
				continue
			}
		}
		points = append(points, models.NewCategoryPoint(category, value, group))
	}

	if len(points) == 0 {
		result.Err = ErrEmptySeries
		return result
	}
	result.Value = models.NewCategorySeries(name, sentinel, points)
	result.Rows = len(points)
	return result
}
