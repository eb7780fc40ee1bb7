package pipeline

import "time"

// Options configures the cp_compare pipeline. Exactly one of FitPath and
// CurvePath supplies the measured curve.
type Options struct {
	FitPath        string
	CurvePath      string
	ModelCurvePath string
	AthletePath    string
	CPOverride     float64
	WPrimeOverride float64
	OutDir         string
	Format         string // parquet|csv
	Overwrite      bool
}

// Result returns generated output paths.
type Result struct {
	OutputDir    string   `json:"output_dir"`
	SeriesPath   string   `json:"series_path"`
	TicksPath    string   `json:"ticks_path"`
	SummaryPath  string   `json:"summary_path"`
	ManifestPath string   `json:"manifest_path"`
	Warnings     []string `json:"warnings,omitempty"`
}

// TicksFile is the axis tick artifact.
type TicksFile struct {
	TicksS []int `json:"ticks_s"`
}

// ComparisonSummary contains one-run aggregate metrics.
type ComparisonSummary struct {
	CriticalPowerW   float64 `json:"critical_power_w"`
	WPrimeJ          float64 `json:"w_prime_j"`
	ParamSource      string  `json:"param_source"` // flag|athlete_file
	GridMinS         int     `json:"grid_min_s"`
	GridMaxS         int     `json:"grid_max_s"`
	GridPoints       int     `json:"grid_points"`
	MeasuredSamples  int     `json:"measured_samples"`
	ModelSamples     int     `json:"model_samples"`
	MeasuredPoints   int     `json:"measured_points"`
	MaxDifferenceW   float64 `json:"max_difference_w"`
	MaxDifferenceAtS int     `json:"max_difference_at_s"`
	TickCount        int     `json:"tick_count"`
}

// Manifest names every artifact a run produced.
type Manifest struct {
	FormatVersion string            `json:"format_version"`
	GeneratedAt   time.Time         `json:"generated_at"`
	SourceFile    string            `json:"source_file"`
	Artifacts     map[string]string `json:"artifacts"`
}
