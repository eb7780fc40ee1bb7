package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/lucasjlepore/cp-compare/pipeline"
)

func main() {
	var (
		fitPath    = flag.String("fit", "", "Path to input .fit activity file")
		curvePath  = flag.String("curve", "", "Path to a measured curve JSON file (durations/powers arrays)")
		modelCurve = flag.String("model-curve", "", "Path to a model-derived curve JSON file used as resolution fallback")
		athlete    = flag.String("athlete", "", "Path to an athlete TOML file with critical_power and w_prime")
		cp         = flag.Float64("cp", 0, "Critical power override in watts")
		wPrime     = flag.Float64("wprime", 0, "W' override in joules")
		outDir     = flag.String("out", "", "Output directory")
		format     = flag.String("format", "parquet", "Comparison series format: parquet|csv")
		overwrite  = flag.Bool("overwrite", true, "Allow writing into non-empty output directories")
	)
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s (--fit ride.fit | --curve curve.json) --out outdir [--athlete athlete.toml] [--cp 250] [--wprime 20000] [--format parquet|csv]\n", filepath.Base(os.Args[0]))
		flag.PrintDefaults()
	}
	flag.Parse()

	if strings.TrimSpace(*outDir) == "" || (strings.TrimSpace(*fitPath) == "" && strings.TrimSpace(*curvePath) == "") {
		flag.Usage()
		os.Exit(2)
	}

	result, err := pipeline.Run(pipeline.Options{
		FitPath:        *fitPath,
		CurvePath:      *curvePath,
		ModelCurvePath: *modelCurve,
		AthletePath:    *athlete,
		CPOverride:     *cp,
		WPrimeOverride: *wPrime,
		OutDir:         *outDir,
		Format:         *format,
		Overwrite:      *overwrite,
	})
	if err != nil {
		fmt.Fprintf(os.Stderr, "cp_compare failed: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("cp_compare complete\n")
	fmt.Printf("Output dir:          %s\n", result.OutputDir)
	fmt.Printf("comparison series:   %s\n", result.SeriesPath)
	fmt.Printf("ticks:               %s\n", result.TicksPath)
	fmt.Printf("summary:             %s\n", result.SummaryPath)
	fmt.Printf("manifest:            %s\n", result.ManifestPath)
	for _, w := range result.Warnings {
		fmt.Printf("warning:             %s\n", w)
	}
}
