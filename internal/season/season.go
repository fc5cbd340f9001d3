// Package season maps calendar dates to demand multipliers.
package season

import (
	"fmt"
	"time"
)

// Window is an inclusive month/day span that recurs every year.
type Window struct {
	Name       string
	StartMonth time.Month
	StartDay   int
	EndMonth   time.Month
	EndDay     int
}

func (w Window) Contains(t time.Time) bool {
	key := monthDay(t.Month(), t.Day())
	start := monthDay(w.StartMonth, w.StartDay)
	end := monthDay(w.EndMonth, w.EndDay)
	if start <= end {
		return key >= start && key <= end
	}
	// wraps the year boundary
	return key >= start || key <= end
}

func monthDay(m time.Month, d int) int {
	return int(m)*100 + d
}

// Model is a pure function from date to demand multiplier.
type Model struct {
	Monthly [12]float64
	Weekend float64
	Holiday float64
	Windows []Window
}

// DefaultMonthly rises from a January trough to a single July peak and falls afterwards.
// The December lift comes from the holiday window, not the monthly curve.
var DefaultMonthly = [12]float64{
	0.80, // Jan
	0.90, // Feb
	1.00, // Mar
	1.10, // Apr
	1.30, // May
	1.55, // Jun
	1.80, // Jul
	1.60, // Aug
	1.40, // Sep
	1.25, // Oct
	1.15, // Nov
	1.10, // Dec
}

var DefaultWindows = []Window{
	{Name: "black-friday", StartMonth: time.November, StartDay: 20, EndMonth: time.November, EndDay: 30},
	{Name: "year-end", StartMonth: time.December, StartDay: 15, EndMonth: time.December, EndDay: 26},
}

func Default() Model {
	windows := make([]Window, len(DefaultWindows))
	copy(windows, DefaultWindows)
	return Model{
		Monthly: DefaultMonthly,
		Weekend: 1.3,
		Holiday: 1.5,
		Windows: windows,
	}
}

// Month returns the multiplier for month m (1-12).
func (m Model) Month(month time.Month) float64 {
	if month < time.January || month > time.December {
		return 1
	}
	return m.Monthly[month-1]
}

// Day composes the monthly, weekend and holiday multipliers for t.
func (m Model) Day(t time.Time) float64 {
	f := m.Month(t.Month())
	if wd := t.Weekday(); wd == time.Saturday || wd == time.Sunday {
		f *= m.Weekend
	}
	if m.InHoliday(t) {
		f *= m.Holiday
	}
	return f
}

func (m Model) InHoliday(t time.Time) bool {
	for _, w := range m.Windows {
		if w.Contains(t) {
			return true
		}
	}
	return false
}

// Period averages Day over every calendar day in [from, to).
func (m Model) Period(from, to time.Time) float64 {
	sum, n := 0.0, 0
	for d := from; d.Before(to); d = d.AddDate(0, 0, 1) {
		sum += m.Day(d)
		n++
	}
	if n == 0 {
		return m.Day(from)
	}
	return sum / float64(n)
}

// Validate checks the monthly curve is positive and unimodal with one maximum.
func (m Model) Validate() error {
	peak := 0
	for i, v := range m.Monthly {
		if v <= 0 {
			return fmt.Errorf("month %d multiplier must be positive, got %v", i+1, v)
		}
		if v > m.Monthly[peak] {
			peak = i
		}
	}
	for i := 1; i <= peak; i++ {
		if m.Monthly[i] <= m.Monthly[i-1] {
			return fmt.Errorf("monthly curve must rise strictly up to the peak month %d", peak+1)
		}
	}
	for i := peak + 1; i < len(m.Monthly); i++ {
		if m.Monthly[i] >= m.Monthly[i-1] {
			return fmt.Errorf("monthly curve must fall strictly after the peak month %d", peak+1)
		}
	}
	if m.Weekend <= 0 || m.Holiday <= 0 {
		return fmt.Errorf("weekend and holiday multipliers must be positive")
	}
	return nil
}
