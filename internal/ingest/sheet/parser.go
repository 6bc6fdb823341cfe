package sheet

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/claude/gymtrack/internal/models"
)

// header maps the column names of the spreadsheet export to field indexes.
type header struct {
	date     int
	exercise int
	reps     int
	weight   int
	duration int // -1 when the optional column is absent
}

// requiredColumns are the headers the export must carry. A missing required
// column is a schema violation and aborts the whole parse.
var requiredColumns = []string{
	models.SheetColDate,
	models.SheetColExercise,
	models.SheetColReps,
	models.SheetColWeight,
}

func parseHeader(record []string) (header, error) {
	idx := make(map[string]int, len(record))
	for i, name := range record {
		idx[strings.TrimSpace(name)] = i
	}
	for _, col := range requiredColumns {
		if _, ok := idx[col]; !ok {
			return header{}, fmt.Errorf("missing required column %q", col)
		}
	}
	h := header{
		date:     idx[models.SheetColDate],
		exercise: idx[models.SheetColExercise],
		reps:     idx[models.SheetColReps],
		weight:   idx[models.SheetColWeight],
		duration: -1,
	}
	if i, ok := idx[models.SheetColDuration]; ok {
		h.duration = i
	}
	return h, nil
}

// Parse reads a spreadsheet CSV export and returns its entries plus the count
// of rows skipped for unparseable dates. Rows with bad dates are tolerated;
// a malformed header is not.
func Parse(r io.Reader) ([]models.SheetEntry, int, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true

	first, err := cr.Read()
	if err == io.EOF {
		return nil, 0, fmt.Errorf("empty export: no header row")
	}
	if err != nil {
		return nil, 0, fmt.Errorf("reading header: %w", err)
	}
	h, err := parseHeader(first)
	if err != nil {
		return nil, 0, err
	}

	var entries []models.SheetEntry
	skipped := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, 0, fmt.Errorf("reading row: %w", err)
		}
		if len(record) <= h.weight || len(record) <= h.exercise {
			skipped++
			continue
		}

		date, err := models.ParseSheetDate(strings.TrimSpace(record[h.date]))
		if err != nil {
			skipped++
			continue
		}

		entry := models.SheetEntry{
			Date:           date,
			Exercise:       strings.TrimSpace(record[h.exercise]),
			RepsNotation:   strings.TrimSpace(record[h.reps]),
			WeightNotation: strings.TrimSpace(record[h.weight]),
		}
		if h.duration >= 0 && len(record) > h.duration {
			if sec, err := strconv.ParseFloat(strings.TrimSpace(record[h.duration]), 64); err == nil {
				entry.DurationSec = &sec
			}
		}
		entries = append(entries, entry)
	}

	return entries, skipped, nil
}
