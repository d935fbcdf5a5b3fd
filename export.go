package orbitguard

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/soniakeys/meeus/julian"
)

// ExportNodesCSV streams conjunction nodes as CSV.
func ExportNodesCSV(w io.Writer, nodes []ConjunctionNode) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"object1", "object2", "distance_diff_km", "lat_deg", "lon_deg", "f_nc_per_month", "synodic_days"}); err != nil {
		return err
	}
	for _, cn := range nodes {
		record := []string{
			cn.Name1,
			cn.Name2,
			fmt.Sprintf("%.4f", cn.DistanceDiffKm),
			fmt.Sprintf("%.3f", cn.LatDeg),
			fmt.Sprintf("%.3f", cn.LonDeg),
			fmt.Sprintf("%.4f", cn.NodalFrequency),
			fmt.Sprintf("%.4f", cn.SynodicDays),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// ExportEventsCSV streams risk events as CSV. Each event is dated both as a
// day offset and as the Julian date of start+offset.
func ExportEventsCSV(w io.Writer, start time.Time, events []RiskEvent) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"day", "julian_date", "object1", "object2", "distance_km", "risk_level", "probability_score"}); err != nil {
		return err
	}
	for _, ev := range events {
		record := []string{
			fmt.Sprintf("%.1f", ev.Day),
			fmt.Sprintf("%.5f", eventJD(start, ev)),
			ev.Name1,
			ev.Name2,
			fmt.Sprintf("%.3f", ev.DistanceKm),
			ev.Level.String(),
			fmt.Sprintf("%.2f", ev.Score),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// eventReport is the JSON shape of one exported risk event.
type eventReport struct {
	Day        float64 `json:"day"`
	JulianDate float64 `json:"julianDate"`
	Object1    string  `json:"object1"`
	Object2    string  `json:"object2"`
	DistanceKm float64 `json:"distanceKm"`
	RiskLevel  string  `json:"riskLevel"`
	Color      string  `json:"color"`
	Score      float64 `json:"probabilityScore"`
}

// ExportEventsJSON writes the risk event timeline as a JSON array.
func ExportEventsJSON(w io.Writer, start time.Time, events []RiskEvent) error {
	reports := make([]eventReport, len(events))
	for k, ev := range events {
		reports[k] = eventReport{
			Day:        ev.Day,
			JulianDate: eventJD(start, ev),
			Object1:    ev.Name1,
			Object2:    ev.Name2,
			DistanceKm: ev.DistanceKm,
			RiskLevel:  ev.Level.String(),
			Color:      ev.Level.Color(),
			Score:      ev.Score,
		}
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(reports)
}

func eventJD(start time.Time, ev RiskEvent) float64 {
	return julian.TimeToJD(start.UTC().Add(time.Duration(ev.Day * 24 * float64(time.Hour))))
}
