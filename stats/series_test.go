package stats

import (
	"testing"
	"time"

	"linkstats/models"
)

func TestLastNDays(t *testing.T) {
	days := LastNDays(7)
	if len(days) != 7 {
		t.Fatalf("expected 7 days, got %d", len(days))
	}
	if days[6] != time.Now().Format(models.DateLayout) {
		t.Errorf("last day should be today, got %s", days[6])
	}
	if days[0] != time.Now().AddDate(0, 0, -6).Format(models.DateLayout) {
		t.Errorf("first day should be six days ago, got %s", days[0])
	}
	for i := 1; i < len(days); i++ {
		if days[i] <= days[i-1] {
			t.Errorf("days out of order at %d: %s <= %s", i, days[i], days[i-1])
		}
	}
}

func TestFillMissingEmptyInput(t *testing.T) {
	days := []string{"2026-08-29", "2026-08-30", "2026-08-31"}
	dense := FillMissing(nil, days)
	if len(dense) != len(days) {
		t.Fatalf("expected %d points, got %d", len(days), len(dense))
	}
	for i, p := range dense {
		if p.Date != days[i] {
			t.Errorf("point %d date %s, want %s", i, p.Date, days[i])
		}
		if p.Views != 0 || p.Clicks != 0 {
			t.Errorf("point %d not zero-valued: %+v", i, p)
		}
	}
}

func TestFillMissingKeepsSparseRows(t *testing.T) {
	sparse := []Point{{Date: "2026-08-31", Views: 3, Clicks: 1}}
	dense := FillMissing(sparse, []string{"2026-08-30", "2026-08-31"})

	want := []Point{
		{Date: "2026-08-30"},
		{Date: "2026-08-31", Views: 3, Clicks: 1},
	}
	for i := range want {
		if dense[i] != want[i] {
			t.Errorf("point %d = %+v, want %+v", i, dense[i], want[i])
		}
	}
}

func TestFillMissingOrderFollowsDays(t *testing.T) {
	// Input deliberately out of order relative to days.
	sparse := []Point{
		{Date: "2026-08-31", Views: 2},
		{Date: "2026-08-29", Views: 9},
	}
	dense := FillMissing(sparse, []string{"2026-08-29", "2026-08-30", "2026-08-31"})
	if dense[0].Views != 9 || dense[1].Views != 0 || dense[2].Views != 2 {
		t.Errorf("series not ordered by days: %+v", dense)
	}
}

func TestPercentOf(t *testing.T) {
	cases := []struct {
		value, max uint
		want       int
	}{
		{0, 0, 0},
		{5, 0, 0},
		{5, 10, 50},
		{7, 10, 70},
		{1, 8, 13},  // 12.5 rounds half away from zero
		{10, 10, 100},
		{3, 7, 43},
	}
	for _, c := range cases {
		if got := PercentOf(c.value, c.max); got != c.want {
			t.Errorf("PercentOf(%d, %d) = %d, want %d", c.value, c.max, got, c.want)
		}
	}
}

func TestMaxOf(t *testing.T) {
	points := []Point{
		{Date: "2026-08-29", Views: 3, Clicks: 7},
		{Date: "2026-08-30", Views: 12, Clicks: 0},
		{Date: "2026-08-31", Views: 5, Clicks: 2},
	}
	if got := MaxOf(points, Views); got != 12 {
		t.Errorf("MaxOf views = %d, want 12", got)
	}
	if got := MaxOf(points, Clicks); got != 7 {
		t.Errorf("MaxOf clicks = %d, want 7", got)
	}

	// Never zero, even on empty or all-zero data.
	if got := MaxOf(nil, Views); got != 1 {
		t.Errorf("MaxOf(nil) = %d, want 1", got)
	}
	if got := MaxOf([]Point{{Date: "2026-08-31"}}, Clicks); got != 1 {
		t.Errorf("MaxOf all-zero = %d, want 1", got)
	}
}
