package model

import (
	"time"

	"github.com/google/uuid"
)

// DailySummaryModel: rekap headcount harian, satu baris per tanggal.
type DailySummaryModel struct {
	DailySummaryId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:daily_summary_id" json:"daily_summary_id"`

	DailySummaryDate time.Time `gorm:"type:date;not null;uniqueIndex;column:daily_summary_date" json:"daily_summary_date"`

	DailySummaryTotalEmployees int `gorm:"not null;default:0;column:daily_summary_total_employees" json:"daily_summary_total_employees"`
	DailySummaryPresent        int `gorm:"not null;default:0;column:daily_summary_present" json:"daily_summary_present"`
	DailySummaryExempt         int `gorm:"not null;default:0;column:daily_summary_exempt" json:"daily_summary_exempt"`
	DailySummaryLate           int `gorm:"not null;default:0;column:daily_summary_late" json:"daily_summary_late"`
	DailySummaryAbsent         int `gorm:"not null;default:0;column:daily_summary_absent" json:"daily_summary_absent"`

	DailySummaryCreatedAt time.Time `gorm:"column:daily_summary_created_at;autoCreateTime" json:"daily_summary_created_at"`
}

func (DailySummaryModel) TableName() string { return "daily_summaries" }
