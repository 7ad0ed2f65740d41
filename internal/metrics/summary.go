package metrics

import (
	"time"

	"github.com/adikkala/vahanlens/internal/registrations/domain"
)

// Summary holds the headline indicators shown above the charts: overall
// volume, the average monthly volume, how many manufacturers are active,
// and the latest month's movement against the month before it.
type Summary struct {
	TotalRegistrations int64
	AvgMonthly         int64
	Manufacturers      int
	LatestMonth        time.Time
	MoMPct             float64
	MoMDefined         bool
}

// ComputeSummary derives the summary indicators from a record snapshot.
// An empty snapshot yields the zero Summary. The month-over-month growth
// follows the same undefined-sentinel policy as ComputeGrowth: growth from
// a zero base month is reported as undefined, never as infinity.
func ComputeSummary(records []*domain.Record) Summary {
	var s Summary
	monthly := make(map[time.Time]int64)
	manufacturers := make(map[string]struct{})

	for _, rec := range records {
		if rec == nil {
			continue
		}
		s.TotalRegistrations += rec.Count()
		monthly[rec.Date()] += rec.Count()
		manufacturers[rec.Manufacturer()] = struct{}{}
		if rec.Date().After(s.LatestMonth) {
			s.LatestMonth = rec.Date()
		}
	}
	s.Manufacturers = len(manufacturers)

	if len(monthly) == 0 {
		return s
	}
	s.AvgMonthly = s.TotalRegistrations / int64(len(monthly))

	prevMonth := s.LatestMonth.AddDate(0, -1, 0)
	prior, ok := monthly[prevMonth]
	if !ok {
		return s
	}
	current := monthly[s.LatestMonth]
	switch {
	case prior != 0:
		s.MoMPct = round1(float64(current-prior) / float64(prior) * 100)
		s.MoMDefined = true
	case current == 0:
		s.MoMDefined = true
	}
	return s
}
