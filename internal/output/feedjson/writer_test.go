package feedjson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"threatradar/pkg/models"
)

func TestWriteFeedProducesBothDocuments(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "nested", "out")
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer w.Close()

	full := models.FeedDocument{
		Metadata: models.FeedMetadata{
			Product:        "THREATRADAR LIVE",
			Generated:      "2026-03-15T12:00:00Z",
			TotalIncidents: 1,
			Window:         "24 hours",
		},
		Incidents: []models.Incident{{
			Title:    "Breach at vendor",
			Severity: models.SeverityHigh,
			Score:    3,
		}},
	}
	widget := models.WidgetDocument{
		Brand:     "THREATRADAR LIVE",
		Generated: "2026-03-15T12:00:00Z",
		Incidents: []models.WidgetIncident{{Title: "Breach at vendor", Severity: models.SeverityHigh}},
	}

	if err := w.WriteFeed(full, widget); err != nil {
		t.Fatalf("WriteFeed: %v", err)
	}

	var gotFull models.FeedDocument
	data, err := os.ReadFile(filepath.Join(dir, FeedFileName))
	if err != nil {
		t.Fatalf("read full feed: %v", err)
	}
	if err := json.Unmarshal(data, &gotFull); err != nil {
		t.Fatalf("decode full feed: %v", err)
	}
	if gotFull.Metadata.TotalIncidents != 1 || len(gotFull.Incidents) != 1 {
		t.Fatalf("unexpected full feed contents: %+v", gotFull.Metadata)
	}

	var gotWidget models.WidgetDocument
	data, err = os.ReadFile(filepath.Join(dir, WidgetFileName))
	if err != nil {
		t.Fatalf("read widget feed: %v", err)
	}
	if err := json.Unmarshal(data, &gotWidget); err != nil {
		t.Fatalf("decode widget feed: %v", err)
	}
	if len(gotWidget.Incidents) != 1 || gotWidget.Brand != "THREATRADAR LIVE" {
		t.Fatalf("unexpected widget feed contents: %+v", gotWidget)
	}
}

func TestWriteFeedOverwritesPreviousRun(t *testing.T) {
	dir := t.TempDir()
	w, err := NewWriter(dir)
	if err != nil {
		t.Fatalf("NewWriter: %v", err)
	}
	defer w.Close()

	first := models.FeedDocument{Incidents: []models.Incident{{Title: "one"}, {Title: "two"}}}
	if err := w.WriteFeed(first, models.WidgetDocument{}); err != nil {
		t.Fatalf("first write: %v", err)
	}
	second := models.FeedDocument{Incidents: []models.Incident{{Title: "three"}}}
	if err := w.WriteFeed(second, models.WidgetDocument{}); err != nil {
		t.Fatalf("second write: %v", err)
	}

	data, err := os.ReadFile(filepath.Join(dir, FeedFileName))
	if err != nil {
		t.Fatalf("read feed: %v", err)
	}
	var got models.FeedDocument
	if err := json.Unmarshal(data, &got); err != nil {
		t.Fatalf("decode feed: %v", err)
	}
	if len(got.Incidents) != 1 || got.Incidents[0].Title != "three" {
		t.Fatalf("previous run not overwritten: %+v", got.Incidents)
	}
}
