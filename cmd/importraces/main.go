// cmd/importraces/main.go
// One-shot import of the race history into the local database. The source is
// either the Google Sheets export (-source sheet) or the legacy dashboard
// JSON API (-source dashboard). The import is a full replace inside one
// transaction.
//
// Usage:
//
//	RACE_SPREADSHEET_ID=... go run ./cmd/importraces -source sheet
//	DASHBOARD_API=https://.../api/data go run ./cmd/importraces -source dashboard
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"log"
	"net/http"
	"time"

	"github.com/hashicorp/go-retryablehttp"
	"github.com/uptrace/bun"

	"github.com/filmmyrun/fmrapi/config"
	bundb "github.com/filmmyrun/fmrapi/db"
	"github.com/filmmyrun/fmrapi/models"
	"github.com/filmmyrun/fmrapi/races"
	"github.com/filmmyrun/fmrapi/sheets"
)

func main() {
	source := flag.String("source", "sheet", "import source: sheet or dashboard")
	flag.Parse()

	ctx := context.Background()
	cfg := config.Load()

	var inputs []races.Input
	var err error
	switch *source {
	case "sheet":
		if cfg.SpreadsheetID == "" {
			log.Fatal("RACE_SPREADSHEET_ID required for -source sheet")
		}
		inputs, err = sheets.New(cfg.SpreadsheetID).FetchRaces(ctx)
	case "dashboard":
		if cfg.DashboardAPI == "" {
			log.Fatal("DASHBOARD_API required for -source dashboard")
		}
		inputs, err = fetchDashboard(ctx, cfg.DashboardAPI)
	default:
		log.Fatalf("unknown source %q", *source)
	}
	if err != nil {
		log.Fatalf("fetch %s: %v", *source, err)
	}
	log.Printf("fetched %d rows", len(inputs))

	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	res := races.NormalizeAll(inputs, time.Now())
	for _, rej := range res.Rejections {
		log.Printf("dropped row %d (%s): %s", rej.Index, rej.Event, rej.Reason)
	}
	if res.DefaultedDates > 0 {
		log.Printf("warning: %d rows had unparsable dates defaulted to today", res.DefaultedDates)
	}

	err = db.RunInTx(ctx, nil, func(ctx context.Context, tx bun.Tx) error {
		if _, err := tx.NewDelete().Model((*models.Race)(nil)).Where("TRUE").Exec(ctx); err != nil {
			return err
		}
		if len(res.Races) == 0 {
			return nil
		}
		_, err := tx.NewInsert().Model(&res.Races).Exec(ctx)
		return err
	})
	if err != nil {
		log.Fatalf("import: %v", err)
	}

	byType := map[string]int{}
	for _, r := range res.Races {
		if r.Type != nil {
			byType[*r.Type]++
		}
	}
	log.Printf("imported %d races (%d marathons, %d ultras)",
		len(res.Races), byType["Marathon"], byType["Ultra"])
}

// dashboardRow is the legacy dashboard export shape with its short aliases.
type dashboardRow struct {
	Date       string   `json:"date"`
	Event      string   `json:"event"`
	Type       string   `json:"type"`
	DistanceKm *float64 `json:"distanceKm"`
	TimeHms    string   `json:"timeHms"`
	Secs       *int     `json:"secs"`
	Elev       *int     `json:"elev"`
	Pos        string   `json:"pos"`
	Terrain    string   `json:"terrain"`
	Video      string   `json:"video"`
	Strava     string   `json:"strava"`
	Results    string   `json:"results"`
}

func fetchDashboard(ctx context.Context, url string) ([]races.Input, error) {
	client := retryablehttp.NewClient()
	client.HTTPClient.Timeout = 30 * time.Second
	client.Logger = nil

	req, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("dashboard API: HTTP %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var payload struct {
		OK   bool           `json:"ok"`
		Data []dashboardRow `json:"data"`
	}
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, err
	}
	if !payload.OK {
		return nil, fmt.Errorf("dashboard API returned ok=false")
	}

	inputs := make([]races.Input, 0, len(payload.Data))
	for _, row := range payload.Data {
		inputs = append(inputs, races.Input{
			Date:        row.Date,
			Event:       row.Event,
			Type:        row.Type,
			DistanceKm:  row.DistanceKm,
			TimeHms:     row.TimeHms,
			TimeSeconds: row.Secs,
			Elevation:   row.Elev,
			Position:    row.Pos,
			Terrain:     row.Terrain,
			VideoUrl:    row.Video,
			StravaUrl:   row.Strava,
			ResultsUrl:  row.Results,
		})
	}
	return inputs, nil
}
