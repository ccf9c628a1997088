package utils

import (
	"fmt"
	"time"

	"app/models"
)

// dateLayout is the wire format for daily sales dates (no time-of-day component).
const dateLayout = "2006-01-02"

// ForecastDemandSeasonality projects daily demand for a single product over the
// next horizonDays days using day-of-week seasonal averaging.
//
// Every historical record is grouped into one of seven weekday buckets
// (time.Weekday order: Sunday=0 .. Saturday=6) and each bucket's arithmetic
// mean becomes the projection for any future date falling on that weekday.
// The forecast starts on the day after the latest date in history and the
// result is chronological, one value per horizon day.
//
// Degraded inputs are valid inputs: an empty history yields all zeros, a
// history covering fewer than seven weekdays yields zeros for the uncovered
// ones, and duplicate dates all contribute to their bucket's average. A date
// that does not parse as YYYY-MM-DD is the caller's bug and returns an error
// rather than a silently wrong forecast.
func ForecastDemandSeasonality(history []models.DailySales, horizonDays int) ([]float64, error) {
	if horizonDays <= 0 {
		return []float64{}, nil
	}

	forecasts := make([]float64, horizonDays)
	if len(history) == 0 {
		// No seasonal signal and no origin date to anchor on; the contract
		// is still a full-length result, all zeros.
		return forecasts, nil
	}

	var sums, counts [7]float64
	var latest time.Time
	for _, record := range history {
		day, err := time.Parse(dateLayout, record.Date)
		if err != nil {
			return nil, fmt.Errorf("invalid sales date %q: %w", record.Date, err)
		}
		sums[day.Weekday()] += record.Quantity
		counts[day.Weekday()]++
		if day.After(latest) {
			latest = day
		}
	}

	var averages [7]float64
	for weekday := range sums {
		if counts[weekday] > 0 {
			averages[weekday] = sums[weekday] / counts[weekday]
		}
	}

	origin := latest.AddDate(0, 0, 1)
	for i := 0; i < horizonDays; i++ {
		forecasts[i] = averages[origin.AddDate(0, 0, i).Weekday()]
	}
	return forecasts, nil
}

// ForecastOriginDate returns the first forecasted calendar day for a history,
// i.e. the day after the latest date present. ok is false when the history is
// empty or contains no parseable date, in which case there is no origin.
func ForecastOriginDate(history []models.DailySales) (time.Time, bool) {
	var latest time.Time
	found := false
	for _, record := range history {
		day, err := time.Parse(dateLayout, record.Date)
		if err != nil {
			continue
		}
		if day.After(latest) {
			latest = day
			found = true
		}
	}
	if !found {
		return time.Time{}, false
	}
	return latest.AddDate(0, 0, 1), true
}
