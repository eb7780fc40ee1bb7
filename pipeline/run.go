package pipeline

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/tormoder/fit"

	pdcurve "github.com/lucasjlepore/cp-compare"
)

const manifestFormatVersion = "cp_compare_v1"

// Run executes the full cp_compare pipeline: load or extract the measured
// power-duration curve, reconcile it against the CP model, and write the
// comparison artifacts.
func Run(opts Options) (*Result, error) {
	if strings.TrimSpace(opts.OutDir) == "" {
		return nil, fmt.Errorf("output directory is required")
	}
	haveFit := strings.TrimSpace(opts.FitPath) != ""
	haveCurve := strings.TrimSpace(opts.CurvePath) != ""
	if haveFit == haveCurve {
		return nil, fmt.Errorf("exactly one of fit path and curve path is required")
	}
	format := strings.ToLower(strings.TrimSpace(opts.Format))
	if format == "" {
		format = "parquet"
	}
	if format != "parquet" && format != "csv" {
		return nil, fmt.Errorf("unsupported format %q (expected parquet|csv)", format)
	}

	params, paramSource, err := resolveParams(opts)
	if err != nil {
		return nil, err
	}

	result := &Result{}

	var measured pdcurve.Curve
	sourceFile := opts.CurvePath
	if haveFit {
		sourceFile = opts.FitPath
		activity, err := decodeActivity(opts.FitPath)
		if err != nil {
			return nil, fmt.Errorf("decode activity: %w", err)
		}
		measured = pdcurve.MeanMaxCurve(activity.Records, pdcurve.CanonicalDurations())
	} else {
		measured, err = readCurveJSON(opts.CurvePath)
		if err != nil {
			return nil, fmt.Errorf("read curve file: %w", err)
		}
	}

	var modelCurve pdcurve.Curve
	if strings.TrimSpace(opts.ModelCurvePath) != "" {
		modelCurve, err = readCurveJSON(opts.ModelCurvePath)
		if err != nil {
			return nil, fmt.Errorf("read model curve file: %w", err)
		}
	} else {
		result.Warnings = append(result.Warnings, "no model-derived curve supplied; wide-tolerance fallback resolution is disabled")
	}

	measuredIx := pdcurve.IndexFromCurve(measured)
	modelIx := pdcurve.IndexFromCurve(modelCurve)
	if measuredIx.Len() == 0 {
		result.Warnings = append(result.Warnings, "no usable power samples in measured curve")
	}

	grid := pdcurve.PlanGrid(pdcurve.CanonicalDurations(), measuredIx, modelIx)
	series := pdcurve.Align(grid, measuredIx, modelIx, params.CriticalPower, params.WPrime)
	ticks := pdcurve.PlanTicks(grid)

	if err := ensureOutputDir(opts.OutDir, opts.Overwrite); err != nil {
		return nil, err
	}
	result.OutputDir = opts.OutDir

	result.SeriesPath = filepath.Join(opts.OutDir, "comparison_series."+format)
	switch format {
	case "csv":
		if err := writeSeriesCSV(result.SeriesPath, series); err != nil {
			return nil, fmt.Errorf("write comparison csv: %w", err)
		}
	case "parquet":
		if err := writeSeriesParquet(result.SeriesPath, series); err != nil {
			return nil, fmt.Errorf("write comparison parquet: %w", err)
		}
	}

	result.TicksPath = filepath.Join(opts.OutDir, "ticks.json")
	if err := writeJSON(result.TicksPath, TicksFile{TicksS: ticks}); err != nil {
		return nil, fmt.Errorf("write ticks.json: %w", err)
	}

	summary := buildSummary(series, ticks, measuredIx.Len(), modelIx.Len(), params, paramSource)
	result.SummaryPath = filepath.Join(opts.OutDir, "comparison_summary.json")
	if err := writeJSON(result.SummaryPath, summary); err != nil {
		return nil, fmt.Errorf("write comparison_summary.json: %w", err)
	}

	manifest := Manifest{
		FormatVersion: manifestFormatVersion,
		GeneratedAt:   time.Now().UTC(),
		SourceFile:    sourceFile,
		Artifacts: map[string]string{
			"comparison_series":  filepath.Base(result.SeriesPath),
			"ticks":              filepath.Base(result.TicksPath),
			"comparison_summary": filepath.Base(result.SummaryPath),
		},
	}
	result.ManifestPath = filepath.Join(opts.OutDir, "manifest.json")
	if err := writeJSON(result.ManifestPath, manifest); err != nil {
		return nil, fmt.Errorf("write manifest.json: %w", err)
	}

	return result, nil
}

// resolveParams merges the athlete file with flag overrides; a flag value
// above zero wins over the file, mirroring the FTP-override flow.
func resolveParams(opts Options) (pdcurve.ModelParams, string, error) {
	params := pdcurve.ModelParams{}
	source := "flag"
	if strings.TrimSpace(opts.AthletePath) != "" {
		if _, err := toml.DecodeFile(opts.AthletePath, &params); err != nil {
			return params, "", fmt.Errorf("read athlete file: %w", err)
		}
		source = "athlete_file"
	}
	if opts.CPOverride > 0 {
		params.CriticalPower = opts.CPOverride
		source = "flag"
	}
	if opts.WPrimeOverride > 0 {
		params.WPrime = opts.WPrimeOverride
	}
	if params.CriticalPower <= 0 {
		return params, "", fmt.Errorf("critical power is required (set --cp or supply an athlete file)")
	}
	if params.WPrime < 0 {
		params.WPrime = 0
	}
	return params, source, nil
}

func buildSummary(series pdcurve.ComparisonSeries, ticks []int, measuredSamples, modelSamples int, params pdcurve.ModelParams, paramSource string) ComparisonSummary {
	summary := ComparisonSummary{
		CriticalPowerW:  params.CriticalPower,
		WPrimeJ:         params.WPrime,
		ParamSource:     paramSource,
		GridPoints:      len(series.Grid),
		MeasuredSamples: measuredSamples,
		ModelSamples:    modelSamples,
		TickCount:       len(ticks),
	}
	if len(series.Grid) > 0 {
		summary.GridMinS = series.Grid[0]
		summary.GridMaxS = series.Grid[len(series.Grid)-1]
	}
	for i, diff := range series.Difference {
		if series.ActualMeasured[i] {
			summary.MeasuredPoints++
		}
		if diff > summary.MaxDifferenceW {
			summary.MaxDifferenceW = diff
			summary.MaxDifferenceAtS = series.Grid[i]
		}
	}
	return summary
}

func decodeActivity(path string) (*fit.ActivityFile, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	decoded, err := fit.Decode(f)
	if err != nil {
		return nil, err
	}
	return decoded.Activity()
}

func readCurveJSON(path string) (pdcurve.Curve, error) {
	curve := pdcurve.Curve{}
	data, err := os.ReadFile(path)
	if err != nil {
		return curve, err
	}
	if err := json.Unmarshal(data, &curve); err != nil {
		return curve, err
	}
	return curve, nil
}

func ensureOutputDir(path string, overwrite bool) error {
	if err := os.MkdirAll(path, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}

	entries, err := os.ReadDir(path)
	if err != nil {
		return fmt.Errorf("read output directory: %w", err)
	}
	if len(entries) > 0 && !overwrite {
		return fmt.Errorf("output directory is not empty: %s (set overwrite=true to allow)", path)
	}
	return nil
}

func writeJSON(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func writeSeriesCSV(path string, series pdcurve.ComparisonSeries) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	w := csv.NewWriter(f)
	header := []string{"duration_s", "actual_w", "model_w", "difference_w", "actual_measured"}
	if err := w.Write(header); err != nil {
		return err
	}
	for i, d := range series.Grid {
		row := []string{
			strconv.Itoa(d),
			formatFloatPtr(series.Actual[i].Y),
			formatFloatPtr(series.Model[i].Y),
			formatFloat(series.Difference[i]),
			strconv.FormatBool(series.ActualMeasured[i]),
		}
		if err := w.Write(row); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}

func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func formatFloatPtr(v *float64) string {
	if v == nil {
		return ""
	}
	return formatFloat(*v)
}
