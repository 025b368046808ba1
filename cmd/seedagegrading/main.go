// cmd/seedagegrading/main.go
// Loads the age-grading reference dataset from JSON into PostgreSQL,
// replacing whatever is there.
//
// Usage:
//
//	go run ./cmd/seedagegrading -file agegradingfactors.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"log"
	"os"
	"strconv"

	"github.com/filmmyrun/fmrapi/config"
	bundb "github.com/filmmyrun/fmrapi/db"
	"github.com/filmmyrun/fmrapi/models"
)

const chunkSize = 1000

// dataset mirrors the JSON layout: open record and age factors keyed by
// gender then event.
type dataset map[string]map[string]struct {
	OpenRecord float64            `json:"open_record"`
	Factors    map[string]float64 `json:"age_grading_factors"`
}

func main() {
	file := flag.String("file", "agegradingfactors.json", "path to the age grading JSON dataset")
	flag.Parse()

	raw, err := os.ReadFile(*file)
	if err != nil {
		log.Fatalf("read %s: %v", *file, err)
	}

	var data dataset
	if err := json.Unmarshal(raw, &data); err != nil {
		log.Fatalf("decode %s: %v", *file, err)
	}

	var records []models.AgeGradingFactor
	for gender, events := range data {
		for event, ev := range events {
			for ageStr, factor := range ev.Factors {
				age, err := strconv.Atoi(ageStr)
				if err != nil {
					log.Printf("skipping non-numeric age %q for %s/%s", ageStr, gender, event)
					continue
				}
				records = append(records, models.AgeGradingFactor{
					Gender:     gender,
					Event:      event,
					Age:        age,
					Factor:     factor,
					OpenRecord: ev.OpenRecord,
				})
			}
		}
	}
	log.Printf("parsed %d factors", len(records))

	ctx := context.Background()
	cfg := config.Load()
	db := bundb.Setup(cfg)
	defer db.Close()

	if err := bundb.CreateTables(ctx, db); err != nil {
		log.Fatalf("create tables: %v", err)
	}

	if _, err := db.NewDelete().Model((*models.AgeGradingFactor)(nil)).Where("TRUE").Exec(ctx); err != nil {
		log.Fatalf("clear existing factors: %v", err)
	}

	for i := 0; i < len(records); i += chunkSize {
		end := i + chunkSize
		if end > len(records) {
			end = len(records)
		}
		chunk := records[i:end]
		if _, err := db.NewInsert().Model(&chunk).Exec(ctx); err != nil {
			log.Fatalf("insert chunk at %d: %v", i, err)
		}
		log.Printf("inserted %d / %d", end, len(records))
	}

	log.Println("age grading seed complete")
}
