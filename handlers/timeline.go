package handlers

import (
	"net/http"
	"strconv"

	"linkstats/models"
	"linkstats/stats"

	"github.com/google/uuid"
)

type timelinePoint struct {
	Date      string `json:"date"`
	Views     uint   `json:"views"`
	Clicks    uint   `json:"clicks"`
	ViewsPct  int    `json:"views_pct"`
	ClicksPct int    `json:"clicks_pct"`
}

// TimelineHandler serves the dashboard's daily series: one point per
// calendar day, zero-filled, with percent-of-max bar heights.
func TimelineHandler(w http.ResponseWriter, r *http.Request) {
	subjectID := r.URL.Query().Get("id")
	if _, err := uuid.Parse(subjectID); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "invalid subject id"})
		return
	}

	days := 7
	if s := r.URL.Query().Get("days"); s != "" {
		n, err := strconv.Atoi(s)
		if err != nil || n < 1 || n > 90 {
			writeJSON(w, http.StatusBadRequest, map[string]interface{}{"error": "days must be between 1 and 90"})
			return
		}
		days = n
	}

	window := stats.LastNDays(days)
	rows, err := Agg.DailyStats(r.Context(), subjectID, window[0])
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]interface{}{"error": "error fetching stats"})
		return
	}

	sparse := make([]stats.Point, 0, len(rows))
	for _, row := range rows {
		sparse = append(sparse, pointFromRow(row))
	}
	dense := stats.FillMissing(sparse, window)

	maxViews := stats.MaxOf(dense, stats.Views)
	maxClicks := stats.MaxOf(dense, stats.Clicks)
	timeline := make([]timelinePoint, 0, len(dense))
	for _, p := range dense {
		timeline = append(timeline, timelinePoint{
			Date:      p.Date,
			Views:     p.Views,
			Clicks:    p.Clicks,
			ViewsPct:  stats.PercentOf(p.Views, maxViews),
			ClicksPct: stats.PercentOf(p.Clicks, maxClicks),
		})
	}

	writeJSON(w, http.StatusOK, map[string]interface{}{
		"id":       subjectID,
		"days":     days,
		"timeline": timeline,
	})
}

func pointFromRow(row models.DailyStat) stats.Point {
	return stats.Point{Date: row.Date, Views: row.Views, Clicks: row.Clicks}
}
