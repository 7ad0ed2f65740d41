package presentation

import (
	"math"
	"sort"

	"github.com/adikkala/vahanlens/internal/metrics"
)

// GrowthDTO represents one period-over-period comparison for output.
// PctChange is null when the growth rate is undefined (growth from a
// zero base), so consumers never see NaN or infinity.
type GrowthDTO struct {
	Period    string   `json:"period"`
	Key       string   `json:"key"`
	Current   int64    `json:"current"`
	Prior     int64    `json:"prior"`
	Change    int64    `json:"change"`
	PctChange *float64 `json:"pct_change"`
}

// ShareDTO represents one manufacturer's slice of a category in a period.
// SharePct is rounded to one decimal place for display.
type ShareDTO struct {
	Manufacturer string  `json:"manufacturer"`
	SharePct     float64 `json:"share_pct"`
}

// ShareReportDTO wraps the shares with the period and category they
// describe.
type ShareReportDTO struct {
	Period   string     `json:"period"`
	Category string     `json:"category"`
	Shares   []ShareDTO `json:"shares"`
}

// SummaryDTO represents the headline indicators.
type SummaryDTO struct {
	TotalRegistrations int64    `json:"total_registrations"`
	AvgMonthly         int64    `json:"avg_monthly"`
	Manufacturers      int      `json:"manufacturers"`
	LatestMonth        string   `json:"latest_month,omitempty"`
	MoMPctChange       *float64 `json:"mom_pct_change"`
}

// FromGrowthResult converts a single engine result to a DTO.
func FromGrowthResult(r metrics.GrowthResult) GrowthDTO {
	dto := GrowthDTO{
		Period:  r.Period.String(),
		Key:     r.Key,
		Current: r.Current,
		Prior:   r.Prior,
		Change:  r.Change,
	}
	if r.PctDefined {
		pct := r.Pct
		dto.PctChange = &pct
	}
	return dto
}

// FromGrowthResults converts engine results to DTOs, preserving order.
func FromGrowthResults(results []metrics.GrowthResult) []GrowthDTO {
	dtos := make([]GrowthDTO, len(results))
	for i, r := range results {
		dtos[i] = FromGrowthResult(r)
	}
	return dtos
}

// FromMarketShares converts an engine share map to a report DTO. Shares
// are rounded to one decimal place and ordered largest first, with ties
// broken alphabetically so output is deterministic.
func FromMarketShares(shares map[string]float64, period metrics.Period, category string) ShareReportDTO {
	dtos := make([]ShareDTO, 0, len(shares))
	for manufacturer, pct := range shares {
		dtos = append(dtos, ShareDTO{
			Manufacturer: manufacturer,
			SharePct:     roundShare(pct),
		})
	}
	sort.Slice(dtos, func(i, j int) bool {
		if dtos[i].SharePct != dtos[j].SharePct {
			return dtos[i].SharePct > dtos[j].SharePct
		}
		return dtos[i].Manufacturer < dtos[j].Manufacturer
	})
	return ShareReportDTO{
		Period:   period.String(),
		Category: category,
		Shares:   dtos,
	}
}

// FromSummary converts headline indicators to a DTO.
func FromSummary(s metrics.Summary) SummaryDTO {
	dto := SummaryDTO{
		TotalRegistrations: s.TotalRegistrations,
		AvgMonthly:         s.AvgMonthly,
		Manufacturers:      s.Manufacturers,
	}
	if !s.LatestMonth.IsZero() {
		dto.LatestMonth = s.LatestMonth.Format("2006-01")
	}
	if s.MoMDefined {
		pct := s.MoMPct
		dto.MoMPctChange = &pct
	}
	return dto
}

func roundShare(pct float64) float64 {
	return math.Round(pct*10) / 10
}
