// Package pdcurve reconciles an athlete's empirical power-duration curve
// with the two-parameter critical-power model and produces chart-ready,
// log-axis-friendly comparison series.
package pdcurve

// Sample is one best-effort observation: the best average power (watts)
// the athlete held for Duration seconds.
type Sample struct {
	Duration float64 `json:"duration"`
	Power    float64 `json:"power"`
}

// Curve is the wire shape returned by the upstream analytics API:
// parallel arrays paired by index.
type Curve struct {
	Durations []float64 `json:"durations"`
	Powers    []float64 `json:"powers"`
}

// ModelParams are the externally fitted CP model inputs. The engine treats
// them as opaque: it neither fits nor validates them.
type ModelParams struct {
	CriticalPower float64 `json:"critical_power" toml:"critical_power"`
	WPrime        float64 `json:"w_prime" toml:"w_prime"`
}

// Point is one chart-ready value at grid duration X. Y is nil when the
// series has no value there, which can only happen at the first grid
// position.
type Point struct {
	X int      `json:"x"`
	Y *float64 `json:"y"`
}

// ComparisonSeries holds the three output series, aligned 1:1 to Grid.
// ActualMeasured marks the positions where Actual came from a real sample
// rather than forward fill or model fallback.
type ComparisonSeries struct {
	Grid           []int     `json:"grid"`
	Actual         []Point   `json:"actual"`
	Model          []Point   `json:"model"`
	Difference     []float64 `json:"difference"`
	ActualMeasured []bool    `json:"actual_measured"`
}
