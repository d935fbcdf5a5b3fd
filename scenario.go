package orbitguard

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

const dateFormat = "2006-01-02 15:04:05"

// ObjectSpec is one object entry of a scenario file: either a raw element set
// (angles in degrees, as catalogs list them) or a two line element set.
type ObjectSpec struct {
	ID       int       `mapstructure:"id"`
	Name     string    `mapstructure:"name"`
	Elements []float64 `mapstructure:"elements"` // a, e, i, Ω, ω, ν
	TLE1     string    `mapstructure:"tle1"`
	TLE2     string    `mapstructure:"tle2"`
}

// Scenario is a fully loaded analysis request.
type Scenario struct {
	Config  Config
	Epoch   time.Time
	Objects Population
}

// LoadScenario reads a TOML scenario file: an [engine] table with the
// configuration, an epoch, and an [[objects]] array.
func LoadScenario(path string) (*Scenario, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	cfg := Config{
		ToleranceKm:  v.GetFloat64("engine.tolerance_km"),
		ForecastDays: v.GetFloat64("engine.forecast_days"),
		StepHours:    v.GetFloat64("engine.step_hours"),
		Workers:      v.GetInt("engine.workers"),
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	epoch := time.Now().UTC()
	if raw := v.GetString("epoch"); raw != "" {
		parsed, err := time.Parse(dateFormat, raw)
		if err != nil {
			return nil, fmt.Errorf("%s: invalid epoch %q: %w", path, raw, err)
		}
		epoch = parsed.UTC()
	}

	var specs []ObjectSpec
	if err := v.UnmarshalKey("objects", &specs); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	if len(specs) == 0 {
		return nil, fmt.Errorf("%s: no objects defined", path)
	}

	objects := make(Population, 0, len(specs))
	for k, spec := range specs {
		obj, err := spec.build(epoch)
		if err != nil {
			return nil, fmt.Errorf("%s: objects[%d]: %w", path, k, err)
		}
		objects = append(objects, obj)
	}
	return &Scenario{Config: cfg, Epoch: epoch, Objects: objects}, nil
}

func (spec ObjectSpec) build(epoch time.Time) (*TrackedObject, error) {
	switch {
	case spec.TLE1 != "" || spec.TLE2 != "":
		return NewTrackedObjectFromTLE(spec.ID, spec.Name, spec.TLE1, spec.TLE2, epoch)
	case len(spec.Elements) == 6:
		el := NewElements(spec.Elements[0], spec.Elements[1], spec.Elements[2], spec.Elements[3], spec.Elements[4], spec.Elements[5])
		if err := el.Validate(); err != nil {
			return nil, err
		}
		return NewTrackedObjectFromElements(spec.ID, spec.Name, el), nil
	case len(spec.Elements) != 0:
		return nil, fmt.Errorf("elements must list exactly a, e, i, Ω, ω, ν (got %d values)", len(spec.Elements))
	default:
		return nil, fmt.Errorf("object %q defines neither elements nor a TLE", spec.Name)
	}
}
