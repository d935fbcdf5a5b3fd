package orbitguard

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"strings"
	"testing"
	"time"

	"github.com/gonum/floats"
)

func testEvents() []RiskEvent {
	return []RiskEvent{
		{Day: 0, ID1: 1, ID2: 2, Name1: "LEO-A", Name2: "LEO-B", DistanceKm: 0.3, Level: Critical, Score: 2.1},
		{Day: 0.5, ID1: 1, ID2: 3, Name1: "LEO-A", Name2: "LEO-C", DistanceKm: 4.2, Level: Low, Score: 0.4},
	}
}

func TestExportEventsCSV(t *testing.T) {
	start := time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := ExportEventsCSV(&buf, start, testEvents()); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != 3 {
		t.Fatalf("expected header + 2 rows, got %d", len(records))
	}
	if records[0][0] != "day" || records[0][5] != "risk_level" {
		t.Fatalf("unexpected header: %v", records[0])
	}
	if records[1][5] != "CRITICAL" || records[2][5] != "LOW" {
		t.Fatalf("risk levels not rendered: %v, %v", records[1], records[2])
	}
	// 2024-04-09 12:00 UTC is JD 2460410.0.
	if !strings.HasPrefix(records[1][1], "2460410.0") {
		t.Fatalf("julian date column: %s", records[1][1])
	}
}

func TestExportEventsJSON(t *testing.T) {
	start := time.Date(2024, 4, 9, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	if err := ExportEventsJSON(&buf, start, testEvents()); err != nil {
		t.Fatal(err)
	}
	var reports []struct {
		Day        float64 `json:"day"`
		JulianDate float64 `json:"julianDate"`
		Object1    string  `json:"object1"`
		RiskLevel  string  `json:"riskLevel"`
		Color      string  `json:"color"`
	}
	if err := json.Unmarshal(buf.Bytes(), &reports); err != nil {
		t.Fatal(err)
	}
	if len(reports) != 2 {
		t.Fatalf("expected 2 reports, got %d", len(reports))
	}
	if reports[0].RiskLevel != "CRITICAL" || reports[0].Color != "#FF0000" {
		t.Fatalf("first report: %+v", reports[0])
	}
	if !floats.EqualWithinAbs(reports[1].JulianDate-reports[0].JulianDate, 0.5, 1e-9) {
		t.Fatalf("half a day apart in JD: %f, %f", reports[0].JulianDate, reports[1].JulianDate)
	}
}

func TestExportNodesCSV(t *testing.T) {
	o1, o2 := leoTestPair()
	nodes := NodeEvaluator{ToleranceKm: 50}.EvaluatePair(o1, o2)
	var buf bytes.Buffer
	if err := ExportNodesCSV(&buf, nodes); err != nil {
		t.Fatal(err)
	}
	records, err := csv.NewReader(&buf).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(records) != len(nodes)+1 {
		t.Fatalf("expected header + %d rows, got %d", len(nodes), len(records))
	}
	if records[1][0] != "LEO-A" || records[1][1] != "LEO-B" {
		t.Fatalf("object names not rendered: %v", records[1])
	}
}
