package cmd

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/adikkala/vahanlens/internal/log"
	"github.com/adikkala/vahanlens/internal/metrics"
	"github.com/adikkala/vahanlens/internal/presentation"
	"github.com/adikkala/vahanlens/internal/registrations/domain"
	"github.com/adikkala/vahanlens/internal/tracing"
)

var (
	growthGroupBy  string
	growthUnit     string
	growthCategory string
	shareCategory  string
	sharePeriod    string
)

var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Print analytics reports as JSON",
	Long: `Compute growth or market-share reports over the stored records and
print them as JSON, suitable for piping into jq.

Percentage changes computed from a zero base period are emitted as null
rather than a number, since no finite growth rate exists.`,
}

var reportGrowthCmd = &cobra.Command{
	Use:   "growth",
	Short: "Period-over-period registration growth",
	Long: `Compute year-over-year or quarter-over-quarter growth, optionally
broken down by vehicle category or manufacturer.

Examples:
  # Total YoY growth across all records
  vahanlens report growth

  # QoQ growth per manufacturer
  vahanlens report growth --unit quarter --group-by manufacturer

  # YoY growth per manufacturer within two-wheelers
  vahanlens report growth --group-by manufacturer --category 2W

  # Extract one series with jq
  vahanlens report growth --group-by category | jq '.[] | select(.key == "2W")'`,
	RunE: func(cmd *cobra.Command, args []string) error {
		groupBy := metrics.GroupBy(growthGroupBy)
		if !groupBy.IsValid() {
			return fmt.Errorf("unknown --group-by %q (want none, category or manufacturer)", growthGroupBy)
		}
		unit := metrics.PeriodUnit(growthUnit)
		if !unit.IsValid() {
			return fmt.Errorf("unknown --unit %q (want year or quarter)", growthUnit)
		}

		var filter domain.Filter
		if growthCategory != "" {
			cat, ok := domain.ParseCategory(growthCategory)
			if !ok {
				return fmt.Errorf("unknown --category %q (want 2W, 3W or 4W)", growthCategory)
			}
			filter.Category = cat
		}

		return withReportSpan(cmd.Context(), "growth", func(ctx context.Context, tracer trace.Tracer) error {
			records, err := listRecords(ctx, tracer, filter)
			if err != nil {
				return err
			}

			ctx, span := tracer.Start(ctx, tracing.SpanComputeGrow,
				trace.WithAttributes(
					attribute.String(tracing.AttrReportGroupBy, groupBy.String()),
					attribute.String(tracing.AttrPeriodUnit, unit.String()),
				))
			results, err := metrics.ComputeGrowth(records, groupBy, unit)
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				span.End()
				return err
			}
			span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(results)))
			span.End()

			return encodeReport(ctx, tracer, func(f *presentation.Formatter) error {
				return f.FormatGrowth(presentation.FromGrowthResults(results))
			})
		})
	},
}

var reportShareCmd = &cobra.Command{
	Use:   "share",
	Short: "Manufacturer market share within a category",
	Long: `Compute each manufacturer's share of a category's registrations in a
year or quarter. Shares are percentages of the category total for that
period and sum to 100 (up to rounding).

Examples:
  # Two-wheeler shares for a calendar year
  vahanlens report share --category 2W --period 2023

  # Four-wheeler shares for one quarter
  vahanlens report share --category 4W --period 2023-Q4`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cat, ok := domain.ParseCategory(shareCategory)
		if !ok {
			return fmt.Errorf("unknown --category %q (want 2W, 3W or 4W)", shareCategory)
		}
		period, err := metrics.ParsePeriod(sharePeriod)
		if err != nil {
			return err
		}

		return withReportSpan(cmd.Context(), "share", func(ctx context.Context, tracer trace.Tracer) error {
			records, err := listRecords(ctx, tracer, domain.Filter{Category: cat})
			if err != nil {
				return err
			}

			ctx, span := tracer.Start(ctx, tracing.SpanComputeShare,
				trace.WithAttributes(
					attribute.String(tracing.AttrReportPeriod, period.String()),
					attribute.String(tracing.AttrCategory, cat.String()),
				))
			shares, err := metrics.ComputeMarketShare(records, period, cat)
			if err != nil {
				span.SetStatus(codes.Error, err.Error())
				span.End()
				return err
			}
			span.SetAttributes(attribute.Int(tracing.AttrResultCount, len(shares)))
			span.End()

			return encodeReport(ctx, tracer, func(f *presentation.Formatter) error {
				return f.FormatShares(presentation.FromMarketShares(shares, period, cat.String()))
			})
		})
	},
}

var reportSummaryCmd = &cobra.Command{
	Use:   "summary",
	Short: "Headline indicators over all stored records",
	RunE: func(cmd *cobra.Command, args []string) error {
		return withReportSpan(cmd.Context(), "summary", func(ctx context.Context, tracer trace.Tracer) error {
			records, err := listRecords(ctx, tracer, domain.Filter{})
			if err != nil {
				return err
			}
			summary := metrics.ComputeSummary(records)
			return encodeReport(ctx, tracer, func(f *presentation.Formatter) error {
				return f.FormatSummary(presentation.FromSummary(summary))
			})
		})
	},
}

// withReportSpan runs fn under a root report span, wiring up (and tearing
// down) the configured trace provider around it.
func withReportSpan(ctx context.Context, kind string, fn func(context.Context, trace.Tracer) error) error {
	provider, err := tracing.NewProvider(cfg.Tracing)
	if err != nil {
		return fmt.Errorf("setting up tracing: %w", err)
	}
	defer func() {
		if shutdownErr := provider.Shutdown(context.Background()); shutdownErr != nil {
			log.ErrorErr(log.CatTrace, "trace shutdown failed", shutdownErr)
		}
	}()

	tracer := provider.Tracer()
	ctx, span := tracer.Start(ctx, tracing.SpanReport,
		trace.WithAttributes(attribute.String(tracing.AttrReportKind, kind)))
	defer span.End()

	if err := fn(ctx, tracer); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	span.SetStatus(codes.Ok, "")
	return nil
}

// listRecords opens the store and loads the filtered snapshot under a
// store.list span.
func listRecords(ctx context.Context, tracer trace.Tracer, filter domain.Filter) ([]*domain.Record, error) {
	_, span := tracer.Start(ctx, tracing.SpanStoreList,
		trace.WithAttributes(attribute.String(tracing.AttrDBPath, cfg.DBPath)))
	defer span.End()

	db, err := openStore()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer db.Close()

	records, err := db.RecordRepository().List(filter)
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("loading records: %w", err)
	}
	span.SetAttributes(attribute.Int(tracing.AttrRecordCount, len(records)))
	return records, nil
}

// encodeReport writes the formatted report to stdout under an encode span.
func encodeReport(ctx context.Context, tracer trace.Tracer, write func(*presentation.Formatter) error) error {
	_, span := tracer.Start(ctx, tracing.SpanEncode)
	defer span.End()

	formatter := presentation.NewFormatter(os.Stdout)
	if err := write(formatter); err != nil {
		span.SetStatus(codes.Error, err.Error())
		return fmt.Errorf("encoding report: %w", err)
	}
	return nil
}

func init() {
	reportGrowthCmd.Flags().StringVar(&growthGroupBy, "group-by", "none", "break results down by: none, category or manufacturer")
	reportGrowthCmd.Flags().StringVar(&growthUnit, "unit", "year", "bucket granularity: year or quarter")
	reportGrowthCmd.Flags().StringVar(&growthCategory, "category", "", "restrict to one vehicle category (2W, 3W or 4W)")

	reportShareCmd.Flags().StringVar(&shareCategory, "category", "", "vehicle category (2W, 3W or 4W)")
	reportShareCmd.Flags().StringVar(&sharePeriod, "period", "", "period to report, e.g. 2023 or 2023-Q4")
	_ = reportShareCmd.MarkFlagRequired("category")
	_ = reportShareCmd.MarkFlagRequired("period")

	reportCmd.AddCommand(reportGrowthCmd)
	reportCmd.AddCommand(reportShareCmd)
	reportCmd.AddCommand(reportSummaryCmd)
	rootCmd.AddCommand(reportCmd)
}
