// Package sheets reads the manually curated race spreadsheet through the
// Google Sheets gviz export, which wraps its JSON table in a JSONP call that
// must be stripped before decoding.
package sheets

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/hashicorp/go-retryablehttp"

	"github.com/filmmyrun/fmrapi/races"
)

const (
	respMarker = "google.visualization.Query.setResponse("
	respTail   = ");"
)

// Client fetches and decodes the spreadsheet export.
type Client struct {
	http          *retryablehttp.Client
	spreadsheetID string
}

// New builds a Client for the given spreadsheet.
func New(spreadsheetID string) *Client {
	c := retryablehttp.NewClient()
	c.HTTPClient.Timeout = 30 * time.Second
	c.RetryMax = 3
	c.Logger = nil

	return &Client{http: c, spreadsheetID: spreadsheetID}
}

// FetchRaces downloads the export and maps its rows to race inputs.
func (c *Client) FetchRaces(ctx context.Context) ([]races.Input, error) {
	url := fmt.Sprintf("https://docs.google.com/spreadsheets/d/%s/gviz/tq?tqx=out:json", c.spreadsheetID)

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetching spreadsheet: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("spreadsheet export: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, 16<<20))
	if err != nil {
		return nil, err
	}

	table, err := Unwrap(string(body))
	if err != nil {
		return nil, err
	}

	return RowsToInputs(table), nil
}

// Table is the subset of the gviz response we consume.
type Table struct {
	Table struct {
		Rows []Row `json:"rows"`
	} `json:"table"`
}

// Row is one spreadsheet row; nil cells are common.
type Row struct {
	C []*Cell `json:"c"`
}

// Cell carries the raw value and the formatted display string.
type Cell struct {
	V interface{} `json:"v"`
	F string      `json:"f"`
}

// Unwrap strips the JSONP wrapper and decodes the table.
func Unwrap(body string) (*Table, error) {
	start := strings.Index(body, respMarker)
	if start == -1 {
		return nil, fmt.Errorf("unexpected spreadsheet response format")
	}

	jsonStart := start + len(respMarker)
	jsonEnd := strings.LastIndex(body, respTail)
	if jsonEnd == -1 || jsonEnd <= jsonStart {
		return nil, fmt.Errorf("could not find JSON boundaries in spreadsheet response")
	}

	var table Table
	if err := json.Unmarshal([]byte(body[jsonStart:jsonEnd]), &table); err != nil {
		return nil, fmt.Errorf("decoding spreadsheet JSON: %w", err)
	}
	return &table, nil
}

// Column layout of the race sheet. Trailing stat columns are ignored here;
// they are duplicated aggregates the pipeline recomputes.
const (
	colDate = iota + 1
	colEvent
	colDistance
	colTime
	colPosition
	colElevation
	colVideo
	_ // report link, unused
	colStrava
	colResults
	colType
	colTerrain
)

// RowsToInputs maps the sheet's columns to race inputs. The first row is the
// header and is skipped.
func RowsToInputs(t *Table) []races.Input {
	rows := t.Table.Rows
	if len(rows) > 0 {
		rows = rows[1:]
	}

	inputs := make([]races.Input, 0, len(rows))
	for _, row := range rows {
		in := races.Input{
			Date:       cellString(row, colDate),
			Event:      cellString(row, colEvent),
			Type:       cellString(row, colType),
			TimeHms:    cellString(row, colTime),
			Position:   cellString(row, colPosition),
			Terrain:    cellString(row, colTerrain),
			VideoUrl:   cellString(row, colVideo),
			StravaUrl:  cellString(row, colStrava),
			ResultsUrl: cellString(row, colResults),
		}
		if km, ok := cellFloat(row, colDistance); ok {
			in.DistanceKm = &km
		}
		if elev, ok := cellFloat(row, colElevation); ok {
			m := int(elev)
			in.Elevation = &m
		}
		inputs = append(inputs, in)
	}
	return inputs
}

// cellString prefers the formatted display value, falling back to the raw one.
func cellString(r Row, i int) string {
	if i >= len(r.C) || r.C[i] == nil {
		return ""
	}
	if r.C[i].F != "" {
		return strings.TrimSpace(r.C[i].F)
	}
	if s, ok := r.C[i].V.(string); ok {
		return strings.TrimSpace(s)
	}
	return ""
}

func cellFloat(r Row, i int) (float64, bool) {
	if i >= len(r.C) || r.C[i] == nil {
		return 0, false
	}
	f, ok := r.C[i].V.(float64)
	return f, ok
}
