package period

import (
	"fmt"
	"strings"
	"time"
)

// Kind selects the dashboard comparison window and chart granularity.
type Kind string

const (
	KindToday Kind = "today"
	KindWeek  Kind = "week"
	KindMonth Kind = "month"
	KindYear  Kind = "year"
)

// ParseKind normalizes a raw period parameter, defaulting to month.
func ParseKind(raw string) Kind {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case string(KindToday):
		return KindToday
	case string(KindWeek):
		return KindWeek
	case string(KindYear):
		return KindYear
	default:
		return KindMonth
	}
}

// Granularity is the bucket size of a labeled revenue series.
type Granularity string

const (
	GranularityHour  Granularity = "hour"
	GranularityDay   Granularity = "day"
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
)

// Range is an inclusive UTC interval; End carries end-of-day precision.
type Range struct {
	Start time.Time
	End   time.Time
}

func (r Range) Contains(t time.Time) bool {
	return !t.Before(r.Start) && !t.After(r.End)
}

// Windows pairs the current interval with its comparison interval.
type Windows struct {
	Current     Range
	Previous    Range
	Granularity Granularity
}

// Resolve computes the comparison windows for a period kind. All arithmetic
// is UTC and calendar-true. The week kind compares the trailing 7 days
// against the 28 days immediately before them; the asymmetry is intentional
// product behavior carried over from the upstream dashboard.
func Resolve(kind Kind, now time.Time) Windows {
	now = now.UTC()
	switch kind {
	case KindToday:
		yesterday := now.AddDate(0, 0, -1)
		return Windows{
			Current:     Range{Start: DayStart(now), End: DayEnd(now)},
			Previous:    Range{Start: DayStart(yesterday), End: DayEnd(yesterday)},
			Granularity: GranularityHour,
		}
	case KindWeek:
		return Windows{
			Current:     Range{Start: DayStart(now.AddDate(0, 0, -6)), End: DayEnd(now)},
			Previous:    Range{Start: DayStart(now.AddDate(0, 0, -34)), End: DayEnd(now.AddDate(0, 0, -7))},
			Granularity: GranularityWeek,
		}
	case KindYear:
		return Windows{
			Current:     YearRange(now.Year()),
			Previous:    YearRange(now.Year() - 1),
			Granularity: GranularityMonth,
		}
	default:
		prev := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC).AddDate(0, -1, 0)
		return Windows{
			Current:     MonthRange(now.Year(), now.Month()),
			Previous:    MonthRange(prev.Year(), prev.Month()),
			Granularity: GranularityDay,
		}
	}
}

// DayStart returns midnight UTC of t's calendar day.
func DayStart(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DayEnd returns the last representable instant of t's calendar day.
func DayEnd(t time.Time) time.Time {
	return DayStart(t).AddDate(0, 0, 1).Add(-time.Nanosecond)
}

// YearRange covers Jan 1 00:00:00 through Dec 31 end of day.
func YearRange(year int) Range {
	start := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(1, 0, 0).Add(-time.Nanosecond)}
}

// MonthRange covers the first through the last calendar day of the month,
// respecting variable month lengths and leap years.
func MonthRange(year int, month time.Month) Range {
	start := time.Date(year, month, 1, 0, 0, 0, 0, time.UTC)
	return Range{Start: start, End: start.AddDate(0, 1, 0).Add(-time.Nanosecond)}
}

// DaysIn returns the number of calendar days in the given month.
func DaysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}

var shorthandDays = map[string]int{
	"7d":  7,
	"30d": 30,
	"90d": 90,
	"1y":  365,
}

// ShorthandRange resolves the 7d/30d/90d/1y list filters to a window of that
// many calendar days ending today, inclusive.
func ShorthandRange(code string, now time.Time) (Range, bool) {
	days, ok := shorthandDays[strings.ToLower(strings.TrimSpace(code))]
	if !ok {
		return Range{}, false
	}
	now = now.UTC()
	return Range{Start: DayStart(now.AddDate(0, 0, -(days - 1))), End: DayEnd(now)}, true
}

const dateOnlyLayout = "2006-01-02"

// Selection carries the optional date narrowing of a list request. Explicit
// dates take precedence over year/month, which takes precedence over the
// period shorthand. Unparseable values are dropped, never rejected.
type Selection struct {
	Year      int
	Month     int
	StartDate string
	EndDate   string
	Shorthand string
}

// Bounds resolves the selection to inclusive interval bounds; either side may
// be nil when the selection leaves it open.
func (s Selection) Bounds(now time.Time) (from, to *time.Time) {
	if start := parseDate(s.StartDate, false); start != nil {
		from = start
	}
	if end := parseDate(s.EndDate, true); end != nil {
		to = end
	}
	if from != nil || to != nil {
		return from, to
	}

	if s.Year > 0 {
		var r Range
		if s.Month >= 1 && s.Month <= 12 {
			r = MonthRange(s.Year, time.Month(s.Month))
		} else {
			r = YearRange(s.Year)
		}
		return &r.Start, &r.End
	}

	if r, ok := ShorthandRange(s.Shorthand, now); ok {
		return &r.Start, &r.End
	}
	return nil, nil
}

func parseDate(value string, endOfDay bool) *time.Time {
	trimmed := strings.TrimSpace(value)
	if trimmed == "" {
		return nil
	}
	if parsed, err := time.Parse(time.RFC3339, trimmed); err == nil {
		parsed = parsed.UTC()
		return &parsed
	}
	if parsed, err := time.Parse(dateOnlyLayout, trimmed); err == nil {
		if endOfDay {
			parsed = DayEnd(parsed)
		} else {
			parsed = DayStart(parsed)
		}
		return &parsed
	}
	return nil
}

// HourLabels are the 24 chart labels of the today period.
func HourLabels() []string {
	labels := make([]string, 24)
	for hour := 0; hour < 24; hour++ {
		labels[hour] = fmt.Sprintf("%02d:00", hour)
	}
	return labels
}

// DayLabels are the per-day chart labels of the month containing r.Start.
func DayLabels(r Range) []string {
	days := DaysIn(r.Start.Year(), r.Start.Month())
	labels := make([]string, days)
	for day := 1; day <= days; day++ {
		labels[day-1] = fmt.Sprintf("%d", day)
	}
	return labels
}

// MonthLabels are the 12 chart labels of the year period.
func MonthLabels() []string {
	return []string{"Jan", "Feb", "Mar", "Apr", "May", "Jun", "Jul", "Aug", "Sep", "Oct", "Nov", "Dec"}
}

// WeekLabels label the four trailing comparison spans of the week period,
// oldest first.
func WeekLabels() []string {
	return []string{"Week 1", "Week 2", "Week 3", "Week 4"}
}

// CurrentWeekLabel is the single-point current series label of the week period.
const CurrentWeekLabel = "This Week"
