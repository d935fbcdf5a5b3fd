package orbitguard

import (
	"context"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	kitlog "github.com/go-kit/kit/log"
)

// Config gathers the caller supplied knobs of an analysis invocation.
type Config struct {
	ToleranceKm  float64 // radial mismatch tolerance at a node, must be > 0
	ForecastDays float64 // forecast horizon, must be >= 0
	StepHours    float64 // forecast step, must be > 0
	Workers      int     // parallel pair evaluations, defaults to NumCPU
}

// Validate rejects unusable configurations before any computation begins.
func (cfg Config) Validate() error {
	if cfg.ToleranceKm <= 0 {
		return fmt.Errorf("tolerance_km=%f must be strictly positive", cfg.ToleranceKm)
	}
	if cfg.ForecastDays < 0 {
		return fmt.Errorf("forecast_days=%f cannot be negative", cfg.ForecastDays)
	}
	if cfg.StepHours <= 0 {
		return fmt.Errorf("step_hours=%f must be strictly positive", cfg.StepHours)
	}
	return nil
}

// RiskLevel classifies a risk event by the radial mismatch at its node.
type RiskLevel uint8

// Risk levels, most severe first.
const (
	Critical RiskLevel = iota + 1
	High
	Medium
	Low
)

// RiskLevelFor classifies a nodal distance in km.
func RiskLevelFor(distanceKm float64) RiskLevel {
	switch {
	case distanceKm < 0.5:
		return Critical
	case distanceKm < 1.0:
		return High
	case distanceKm < 2.5:
		return Medium
	default:
		return Low
	}
}

func (l RiskLevel) String() string {
	switch l {
	case Critical:
		return "CRITICAL"
	case High:
		return "HIGH"
	case Medium:
		return "MEDIUM"
	case Low:
		return "LOW"
	}
	panic("cannot stringify unknown risk level")
}

// Color returns the display color associated with the level.
func (l RiskLevel) Color() string {
	switch l {
	case Critical:
		return "#FF0000"
	case High:
		return "#FF4B4B"
	case Medium:
		return "#FFA500"
	}
	return "#FFFF00"
}

// RiskEvent is one qualifying conjunction node found at a forecast step.
type RiskEvent struct {
	Day          float64 // offset from forecast start
	ID1, ID2     int
	Name1, Name2 string
	DistanceKm   float64
	Level        RiskLevel
	Score        float64 // nodal frequency, used as a probability proxy
}

// String implements the Stringer interface.
func (ev RiskEvent) String() string {
	return fmt.Sprintf("day %.1f: %s x %s %.3f km [%s] score=%.2f", ev.Day, ev.Name1, ev.Name2, ev.DistanceKm, ev.Level, ev.Score)
}

// Forecaster runs single epoch conjunction analyses and multi day risk
// forecasts over a population of tracked objects.
type Forecaster struct {
	cfg    Config
	prop   SecularPropagator
	eval   NodeEvaluator
	logger kitlog.Logger
}

// NewForecaster validates the configuration and returns an engine instance.
func NewForecaster(cfg Config, logger kitlog.Logger) (*Forecaster, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Workers <= 0 {
		cfg.Workers = runtime.NumCPU()
	}
	if logger == nil {
		logger = kitlog.NewNopLogger()
	}
	return &Forecaster{
		cfg:    cfg,
		prop:   NewSecularPropagator(),
		eval:   NodeEvaluator{ToleranceKm: cfg.ToleranceKm},
		logger: logger,
	}, nil
}

// Analyze runs a single epoch pass: prune, evaluate each candidate pair, and
// aggregate nodal frequencies into per object criticality scores. Scores are
// returned as an explicit map and also merged into the objects' records.
// Objects with invalid elements are logged and skipped, not fatal.
func (f *Forecaster) Analyze(pop Population) ([]ConjunctionNode, map[int]float64) {
	pop.resetScores()
	valid := f.validPopulation(pop)
	nodes := f.evaluateStep(valid)
	scores := AggregateCriticality(nodes)
	for _, o := range pop {
		o.CriticalityScore = scores[o.ID]
	}
	return nodes, scores
}

// ForecastTimeline forecasts risk events over the configured horizon. Step 0
// is the initial snapshot; every further step first advances all objects by
// the step size (compounding step over step) and then re-evaluates the
// population. The context is checked at step boundaries only; on cancellation
// the events already collected are returned, since a partial forecast is
// still useful for alerting.
func (f *Forecaster) ForecastTimeline(ctx context.Context, pop Population) []RiskEvent {
	work := f.validPopulation(pop).clone()
	steps := int(math.Floor(f.cfg.ForecastDays*24/f.cfg.StepHours)) + 1
	stepΔt := time.Duration(f.cfg.StepHours * float64(time.Hour))

	var events []RiskEvent
	for step := 0; step < steps; step++ {
		if ctx.Err() != nil {
			f.logger.Log("level", "warning", "subsys", "forecast", "status", "cancelled", "step", step, "events", len(events))
			return events
		}
		if step > 0 {
			// Advance every object before any pair evaluation reads the
			// population: the WaitGroup is the step boundary fence. Each
			// propagation writes only its own record, so no locking.
			var wg sync.WaitGroup
			for _, o := range work {
				wg.Add(1)
				go func(o *TrackedObject) {
					defer wg.Done()
					f.prop.Propagate(&o.Elements, stepΔt)
				}(o)
			}
			wg.Wait()
		}

		start := time.Now()
		day := float64(step) * f.cfg.StepHours / 24
		nodes := f.evaluateStep(work)
		for _, cn := range nodes {
			level := RiskLevelFor(cn.DistanceDiffKm)
			events = append(events, RiskEvent{
				Day:        day,
				ID1:        cn.ID1,
				ID2:        cn.ID2,
				Name1:      cn.Name1,
				Name2:      cn.Name2,
				DistanceKm: cn.DistanceDiffKm,
				Level:      level,
				Score:      cn.NodalFrequency,
			})
			riskEventsTotal.WithLabelValues(level.String()).Inc()
		}
		stepDurationSeconds.Observe(time.Since(start).Seconds())
		f.logger.Log("level", "info", "subsys", "forecast", "step", step, "day", day, "objects", len(work), "nodes", len(nodes))
	}
	return events
}

// evaluateStep prunes the population and fans candidate pairs out to the
// worker pool, collecting qualifying nodes in a stable order.
func (f *Forecaster) evaluateStep(pop Population) []ConjunctionNode {
	pairs := CandidatePairs(pop, f.cfg.ToleranceKm)
	if len(pairs) == 0 {
		return nil
	}
	pairsEvaluatedTotal.Add(float64(len(pairs)))

	jobs := make(chan CandidatePair, f.cfg.Workers*2)
	results := make(chan []ConjunctionNode, f.cfg.Workers*2)

	var wg sync.WaitGroup
	for w := 0; w < f.cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for pair := range jobs {
				results <- f.eval.EvaluatePair(pop[pair.I], pop[pair.J])
			}
		}()
	}
	go func() {
		defer close(jobs)
		for _, pair := range pairs {
			jobs <- pair
		}
	}()
	go func() {
		wg.Wait()
		close(results)
	}()

	var nodes []ConjunctionNode
	for batch := range results {
		nodes = append(nodes, batch...)
	}
	// Worker completion order is nondeterministic; restore a stable ordering.
	sort.Slice(nodes, func(a, b int) bool {
		if nodes[a].ID1 != nodes[b].ID1 {
			return nodes[a].ID1 < nodes[b].ID1
		}
		if nodes[a].ID2 != nodes[b].ID2 {
			return nodes[a].ID2 < nodes[b].ID2
		}
		return nodes[a].LatDeg > nodes[b].LatDeg
	})
	nodesFoundTotal.Add(float64(len(nodes)))
	return nodes
}

// validPopulation drops objects whose elements cannot be processed, isolating
// per object failures from the rest of the pass.
func (f *Forecaster) validPopulation(pop Population) Population {
	valid := make(Population, 0, len(pop))
	for _, o := range pop {
		if err := o.Elements.Validate(); err != nil {
			f.logger.Log("level", "warning", "subsys", "engine", "object", o.ID, "name", o.Name, "skipped", err)
			continue
		}
		valid = append(valid, o)
	}
	return valid
}

// clone deep copies the population so forecast propagation never mutates the
// caller's records.
func (pop Population) clone() Population {
	cloned := make(Population, len(pop))
	for k, o := range pop {
		c := *o
		cloned[k] = &c
	}
	return cloned
}
