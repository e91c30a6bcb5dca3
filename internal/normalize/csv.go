// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package normalize

import (
	"bytes"
	"encoding/csv"
	"strconv"
	"strings"
)

// QuoteRow is one trading session parsed from a stooq-style CSV dump
// (Date,Open,High,Low,Close,Volume).
type QuoteRow struct {
	Date  string
	Open  float64
	Close float64
}

// ParseQuoteCSV parses a header row plus data rows into sessions, oldest
// first (the upstream emits them chronologically).
//
// A row whose Close (or Open) cell is missing or unparsable is skipped; one
// polluted row must not invalidate the rest of the series. A body without a
// recognizable Close column yields an empty slice.
func ParseQuoteCSV(body []byte) []QuoteRow {
	r := csv.NewReader(bytes.NewReader(body))
	r.FieldsPerRecord = -1
	r.TrimLeadingSpace = true

	records, err := r.ReadAll()
	if err != nil || len(records) < 2 {
		return nil
	}

	closeIdx, openIdx, dateIdx := -1, -1, -1
	for i, col := range records[0] {
		switch strings.ToLower(strings.TrimSpace(col)) {
		case "close":
			closeIdx = i
		case "open":
			openIdx = i
		case "date":
			dateIdx = i
		}
	}
	if closeIdx < 0 {
		return nil
	}

	var rows []QuoteRow
	for _, rec := range records[1:] {
		if closeIdx >= len(rec) {
			continue
		}
		closeVal, err := strconv.ParseFloat(strings.TrimSpace(rec[closeIdx]), 64)
		if err != nil {
			continue
		}
		row := QuoteRow{Close: closeVal}
		if openIdx >= 0 && openIdx < len(rec) {
			if openVal, err := strconv.ParseFloat(strings.TrimSpace(rec[openIdx]), 64); err == nil {
				row.Open = openVal
			} else {
				continue
			}
		}
		if dateIdx >= 0 && dateIdx < len(rec) {
			row.Date = strings.TrimSpace(rec[dateIdx])
		}
		rows = append(rows, row)
	}
	return rows
}

// Closes projects the close series out of rows, preserving order.
func Closes(rows []QuoteRow) []float64 {
	out := make([]float64, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.Close)
	}
	return out
}
