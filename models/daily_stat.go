package models

// DailyStat is one subject's aggregate for one UTC calendar day.
// SubjectID is either a profile ID or a link ID; Date uses the
// "2006-01-02" form so rows sort and group by plain string compare.
type DailyStat struct {
	ID        uint   `gorm:"primaryKey"`
	SubjectID string `gorm:"size:36;not null;uniqueIndex:idx_subject_date"`
	Date      string `gorm:"size:10;not null;uniqueIndex:idx_subject_date"`
	Views     uint   `gorm:"default:0"`
	Clicks    uint   `gorm:"default:0"`
}

// DateLayout is the day-granularity form DailyStat.Date is stored in.
const DateLayout = "2006-01-02"
