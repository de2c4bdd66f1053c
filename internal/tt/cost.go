package tt

import (
	"database/sql"
	"math"
	"time"

	"tt-go/internal/database/sqlc"
)

// DayLayout is the bucket key format of day summaries.
const DayLayout = "2006-01-02"

// ActivityLayout formats times in summary activity lists.
const ActivityLayout = "2006-01-02 15:04:05"

// Hours converts tracked seconds to hours.
func Hours(seconds int64) float64 {
	return float64(seconds) / 3600
}

// Minutes converts tracked seconds to whole minutes.
func Minutes(seconds int64) int64 {
	return seconds / 60
}

// TaskCost is the cost of seconds of work at an hourly rate, rounded to
// cents. It is nil when the project has no rate.
func TaskCost(seconds int64, rate *float64) *float64 {
	if rate == nil {
		return nil
	}
	cost := roundCents(Hours(seconds) * *rate)
	return &cost
}

func roundCents(v float64) float64 {
	return math.Round(v*100) / 100
}

func rateOf(r sql.NullFloat64) *float64 {
	if !r.Valid {
		return nil
	}
	f := r.Float64
	return &f
}

// DayKey is the bucket a log starting at t falls into.
func DayKey(t time.Time) string {
	return t.UTC().Format(DayLayout)
}

// BucketByDay sums log durations per UTC calendar day of their start time.
func BucketByDay(logs []sqlc.TimeLog) map[string]int64 {
	buckets := make(map[string]int64)
	for _, l := range logs {
		buckets[DayKey(l.StartTime)] += l.Duration
	}
	return buckets
}

// midnight truncates t to the start of its UTC day.
func midnight(t time.Time) time.Time {
	y, m, d := t.UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
