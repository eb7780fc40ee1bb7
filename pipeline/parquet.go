package pipeline

import (
	"math"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	pdcurve "github.com/lucasjlepore/cp-compare"
)

type comparisonParquetRow struct {
	DurationS      int64   `parquet:"name=duration_s, type=INT64"`
	ActualW        float64 `parquet:"name=actual_w, type=DOUBLE"`
	ModelW         float64 `parquet:"name=model_w, type=DOUBLE"`
	DifferenceW    float64 `parquet:"name=difference_w, type=DOUBLE"`
	ActualMeasured bool    `parquet:"name=actual_measured, type=BOOLEAN"`
}

func writeSeriesParquet(path string, series pdcurve.ComparisonSeries) error {
	fw, err := local.NewLocalFileWriter(path)
	if err != nil {
		return err
	}
	pw, err := writer.NewParquetWriter(fw, new(comparisonParquetRow), 4)
	if err != nil {
		return err
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for i, d := range series.Grid {
		row := comparisonParquetRow{
			DurationS:      int64(d),
			ActualW:        valueOrNaN(series.Actual[i].Y),
			ModelW:         valueOrNaN(series.Model[i].Y),
			DifferenceW:    series.Difference[i],
			ActualMeasured: series.ActualMeasured[i],
		}
		if err := pw.Write(row); err != nil {
			_ = pw.WriteStop()
			_ = fw.Close()
			return err
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return err
	}
	return fw.Close()
}

func valueOrNaN(v *float64) float64 {
	if v == nil {
		return math.NaN()
	}
	return *v
}
