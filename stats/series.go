package stats

import (
	"math"
	"time"

	"linkstats/models"
)

// Point is one day of a dashboard series. Derived only, never stored.
type Point struct {
	Date   string `json:"date"`
	Views  uint   `json:"views"`
	Clicks uint   `json:"clicks"`
}

// Field selects which counter of a Point a helper operates on.
type Field string

const (
	Views  Field = "views"
	Clicks Field = "clicks"
)

// LastNDays returns the last n calendar dates, oldest first, today
// last, in the "2006-01-02" form.
func LastNDays(n int) []string {
	days := make([]string, 0, n)
	today := time.Now()
	for i := n - 1; i >= 0; i-- {
		days = append(days, today.AddDate(0, 0, -i).Format(models.DateLayout))
	}
	return days
}

// FillMissing turns sparse daily rows into a dense series: one point
// per requested day, zero-filled where no row exists. Output order
// follows days, not the input.
func FillMissing(points []Point, days []string) []Point {
	byDate := make(map[string]Point, len(points))
	for _, p := range points {
		byDate[p.Date] = p
	}

	dense := make([]Point, 0, len(days))
	for _, day := range days {
		if p, ok := byDate[day]; ok {
			dense = append(dense, p)
			continue
		}
		dense = append(dense, Point{Date: day})
	}
	return dense
}

// PercentOf maps value onto a 0-100 bar height, rounding half away
// from zero. A zero max yields 0 so an all-zero series renders as flat
// bars instead of NaN.
func PercentOf(value, max uint) int {
	if max == 0 {
		return 0
	}
	return int(math.Round(float64(value) / float64(max) * 100))
}

// MaxOf returns the largest value of the chosen field, floored at 1 so
// it is always a safe PercentOf denominator.
func MaxOf(points []Point, field Field) uint {
	max := uint(1)
	for _, p := range points {
		v := p.Views
		if field == Clicks {
			v = p.Clicks
		}
		if v > max {
			max = v
		}
	}
	return max
}
