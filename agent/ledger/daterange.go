package ledger

import (
	"regexp"
	"strconv"
	"strings"
	"time"
)

var (
	betweenPattern = regexp.MustCompile(`between\s+(\d{4}-\d{2}-\d{2})\s+and\s+(\d{4}-\d{2}-\d{2})`)
	fromToPattern  = regexp.MustCompile(`from\s+(\d{4}-\d{2}-\d{2})\s+to\s+(\d{4}-\d{2}-\d{2})`)
	lastNPattern   = regexp.MustCompile(`last\s+(\d+)\s+(day|days|week|weeks|month|months|year|years)`)
)

// ParseRange extracts a natural-language date window from free text, relative
// to today. Weeks are ISO weeks starting Monday; "last month" is the previous
// full calendar month. Returns false when no supported pattern is present.
func ParseRange(text string, today time.Time) (DateRange, bool) {
	t := strings.ToLower(text)
	day := midnight(today)

	if m := betweenPattern.FindStringSubmatch(t); m != nil {
		if r, ok := explicitRange(m[1], m[2], "between_explicit"); ok {
			return r, true
		}
	}
	if m := fromToPattern.FindStringSubmatch(t); m != nil {
		if r, ok := explicitRange(m[1], m[2], "from_to_explicit"); ok {
			return r, true
		}
	}

	if strings.Contains(t, "today") {
		return DateRange{Start: day, End: day, Kind: "today"}, true
	}
	if strings.Contains(t, "yesterday") {
		y := day.AddDate(0, 0, -1)
		return DateRange{Start: y, End: y, Kind: "yesterday"}, true
	}

	if m := lastNPattern.FindStringSubmatch(t); m != nil {
		n, err := strconv.Atoi(m[1])
		if err == nil && n > 0 {
			switch {
			case strings.HasPrefix(m[2], "day"):
				return DateRange{Start: day.AddDate(0, 0, -n), End: day, Kind: "last_n_days"}, true
			case strings.HasPrefix(m[2], "week"):
				return DateRange{Start: day.AddDate(0, 0, -7*n), End: day, Kind: "last_n_weeks"}, true
			case strings.HasPrefix(m[2], "month"):
				return DateRange{Start: shiftMonths(day, -n), End: day, Kind: "last_n_months"}, true
			case strings.HasPrefix(m[2], "year"):
				return DateRange{Start: shiftMonths(day, -12*n), End: day, Kind: "last_n_years"}, true
			}
		}
	}

	switch {
	case strings.Contains(t, "last day"):
		return DateRange{Start: day.AddDate(0, 0, -1), End: day, Kind: "last_day"}, true
	case strings.Contains(t, "last week"):
		thisMonday := day.AddDate(0, 0, -isoWeekday(day))
		end := thisMonday.AddDate(0, 0, -1)
		return DateRange{Start: end.AddDate(0, 0, -6), End: end, Kind: "last_week"}, true
	case strings.Contains(t, "last month"):
		firstOfThis := time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location())
		end := firstOfThis.AddDate(0, 0, -1)
		start := time.Date(end.Year(), end.Month(), 1, 0, 0, 0, 0, day.Location())
		return DateRange{Start: start, End: end, Kind: "last_month"}, true
	case strings.Contains(t, "last year"):
		prev := day.Year() - 1
		return DateRange{
			Start: time.Date(prev, time.January, 1, 0, 0, 0, 0, day.Location()),
			End:   time.Date(prev, time.December, 31, 0, 0, 0, 0, day.Location()),
			Kind:  "last_year",
		}, true
	case strings.Contains(t, "this week"):
		return DateRange{Start: day.AddDate(0, 0, -isoWeekday(day)), End: day, Kind: "this_week"}, true
	case strings.Contains(t, "this month"):
		return DateRange{
			Start: time.Date(day.Year(), day.Month(), 1, 0, 0, 0, 0, day.Location()),
			End:   day,
			Kind:  "this_month",
		}, true
	case strings.Contains(t, "this year"):
		return DateRange{
			Start: time.Date(day.Year(), time.January, 1, 0, 0, 0, 0, day.Location()),
			End:   day,
			Kind:  "this_year",
		}, true
	}

	return DateRange{}, false
}

func explicitRange(startStr, endStr, kind string) (DateRange, bool) {
	start, err := time.Parse("2006-01-02", startStr)
	if err != nil {
		return DateRange{}, false
	}
	end, err := time.Parse("2006-01-02", endStr)
	if err != nil {
		return DateRange{}, false
	}
	if end.Before(start) {
		return DateRange{}, false
	}
	return DateRange{Start: start, End: end, Kind: kind}, true
}

func midnight(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// isoWeekday returns days since Monday (0..6).
func isoWeekday(t time.Time) int {
	wd := int(t.Weekday())
	if wd == 0 {
		return 6
	}
	return wd - 1
}

// shiftMonths moves a date back or forward by whole months, clamping the day
// to the last valid day of the target month (e.g. Mar 31 - 1 month = Feb 28).
func shiftMonths(t time.Time, months int) time.Time {
	year, month := t.Year(), int(t.Month())+months
	for month <= 0 {
		month += 12
		year--
	}
	for month > 12 {
		month -= 12
		year++
	}
	day := t.Day()
	if last := daysIn(year, time.Month(month)); day > last {
		day = last
	}
	return time.Date(year, time.Month(month), day, 0, 0, 0, 0, t.Location())
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
