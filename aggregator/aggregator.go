package aggregator

import (
	"context"
	"time"

	"linkstats/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Aggregator applies view and click increments against the durable
// counters. All arithmetic happens inside the database ("col + 1"
// expressions and upsert-on-conflict), never as read-modify-write in
// the handler, so concurrent visitors hitting the same subject cannot
// lose updates. Handlers stay stateless; this is the only component
// that mutates counters.
type Aggregator struct {
	db *gorm.DB
}

func New(db *gorm.DB) *Aggregator {
	return &Aggregator{db: db}
}

// today is the current UTC calendar day. Buckets are keyed on the
// server clock, not the visitor's.
func today() string {
	return time.Now().UTC().Format(models.DateLayout)
}

// IncrementView bumps a profile's lifetime view total and today's view
// bucket in one transaction, so a crash between the two can never leave
// them diverged. A profile that no longer exists is a silent no-op:
// tracking a deleted page is not worth surfacing to a beacon call.
func (a *Aggregator) IncrementView(ctx context.Context, profileID string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Profile{}).
			Where("id = ? AND deleted_at IS NULL", profileID).
			Update("view_count", gorm.Expr("view_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		return a.bumpBucket(tx, profileID, "views")
	})
}

// IncrementClick bumps a link's lifetime click total, its daily click
// bucket, and the owning profile's daily click bucket (the dashboard
// reads one subject's rows as {date, views, clicks}, so profile-level
// clicks have to land in the profile's own bucket). One transaction,
// same shape as IncrementView.
func (a *Aggregator) IncrementClick(ctx context.Context, linkID, profileID string) error {
	return a.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		result := tx.Model(&models.Link{}).
			Where("id = ? AND deleted_at IS NULL", linkID).
			Update("click_count", gorm.Expr("click_count + ?", 1))
		if result.Error != nil {
			return result.Error
		}
		if result.RowsAffected == 0 {
			return nil
		}
		if err := a.bumpBucket(tx, linkID, "clicks"); err != nil {
			return err
		}
		if profileID == "" {
			return nil
		}
		return a.bumpBucket(tx, profileID, "clicks")
	})
}

// bumpBucket upserts the subject's bucket for today, adding 1 to the
// given column. The (subject_id, date) unique index makes creation
// idempotent under concurrent writers.
func (a *Aggregator) bumpBucket(tx *gorm.DB, subjectID, column string) error {
	row := models.DailyStat{SubjectID: subjectID, Date: today()}
	if column == "views" {
		row.Views = 1
	} else {
		row.Clicks = 1
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "subject_id"}, {Name: "date"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			column: gorm.Expr(column + " + 1"),
		}),
	}).Create(&row).Error
}

// DailyStats returns the subject's buckets since the given day
// (inclusive), oldest first. Days with no traffic have no row; the
// stats package fills the gaps.
func (a *Aggregator) DailyStats(ctx context.Context, subjectID, since string) ([]models.DailyStat, error) {
	var rows []models.DailyStat
	err := a.db.WithContext(ctx).
		Where("subject_id = ? AND date >= ?", subjectID, since).
		Order("date ASC").
		Find(&rows).Error
	return rows, err
}
