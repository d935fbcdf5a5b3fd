package main

import (
	"context"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"sort"
	"syscall"

	kitlog "github.com/go-kit/kit/log"
	orbitguard "github.com/recepsuluker/OrbitGuardAI"
)

// This binary only reads a scenario file, runs the analysis and writes reports.

const defaultScenario = "~~unset~~"

var (
	scenario    string
	nodesOut    string
	eventsOut   string
	jsonOut     string
	metricsAddr string
)

func init() {
	flag.StringVar(&scenario, "scenario", defaultScenario, "analysis scenario TOML file")
	flag.StringVar(&nodesOut, "nodes", "", "write single epoch conjunction nodes to this CSV file")
	flag.StringVar(&eventsOut, "events", "", "write forecast risk events to this CSV file")
	flag.StringVar(&jsonOut, "json", "", "write forecast risk events to this JSON file")
	flag.StringVar(&metricsAddr, "metrics.addr", "", "optional listen address for Prometheus metrics")
}

func main() {
	flag.Parse()
	if scenario == defaultScenario {
		log.Fatal("no scenario provided")
	}
	logger := kitlog.With(kitlog.NewLogfmtLogger(kitlog.NewSyncWriter(os.Stdout)), "cmd", "collisionwatch")

	scn, err := orbitguard.LoadScenario(scenario)
	if err != nil {
		log.Fatalf("could not load scenario: %s", err)
	}
	forecaster, err := orbitguard.NewForecaster(scn.Config, logger)
	if err != nil {
		log.Fatalf("invalid configuration: %s", err)
	}

	if metricsAddr != "" {
		go func() {
			http.Handle("/metrics", orbitguard.MetricsHandler())
			if err := http.ListenAndServe(metricsAddr, nil); err != nil {
				logger.Log("level", "warning", "subsys", "metrics", "err", err)
			}
		}()
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Single epoch pass first: criticality ranking of the population as loaded.
	nodes, scores := forecaster.Analyze(scn.Objects)
	logger.Log("level", "info", "subsys", "engine", "epoch", scn.Epoch.Format("2006-01-02 15:04:05"), "objects", len(scn.Objects), "nodes", len(nodes))
	ranked := make(orbitguard.Population, len(scn.Objects))
	copy(ranked, scn.Objects)
	sort.Slice(ranked, func(a, b int) bool { return ranked[a].CriticalityScore > ranked[b].CriticalityScore })
	for k, o := range ranked {
		if k == 10 || o.CriticalityScore == 0 {
			break
		}
		logger.Log("level", "info", "subsys", "engine", "rank", k+1, "object", o.Name, "criticality", scores[o.ID])
	}
	if nodesOut != "" {
		writeReport(logger, nodesOut, func(f *os.File) error {
			return orbitguard.ExportNodesCSV(f, nodes)
		})
	}

	// Multi day forecast.
	events := forecaster.ForecastTimeline(ctx, scn.Objects)
	logger.Log("level", "notice", "subsys", "forecast", "status", "finished", "days", scn.Config.ForecastDays, "events", len(events))
	for _, ev := range events {
		if ev.Level == orbitguard.Critical || ev.Level == orbitguard.High {
			logger.Log("level", "warning", "subsys", "forecast", "event", ev)
		}
	}
	if eventsOut != "" {
		writeReport(logger, eventsOut, func(f *os.File) error {
			return orbitguard.ExportEventsCSV(f, scn.Epoch, events)
		})
	}
	if jsonOut != "" {
		writeReport(logger, jsonOut, func(f *os.File) error {
			return orbitguard.ExportEventsJSON(f, scn.Epoch, events)
		})
	}
}

func writeReport(logger kitlog.Logger, path string, write func(*os.File) error) {
	f, err := os.Create(path)
	if err != nil {
		log.Fatalf("could not create %s: %s", path, err)
	}
	defer f.Close()
	if err := write(f); err != nil {
		log.Fatalf("could not write %s: %s", path, err)
	}
	logger.Log("level", "info", "subsys", "export", "file", path)
}
