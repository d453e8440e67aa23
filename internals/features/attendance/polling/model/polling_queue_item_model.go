package model

import (
	"time"

	"github.com/google/uuid"
)

/* =========================================================
 * REQUEST TYPE & STATUS (enum tertutup)
 * ========================================================= */

const (
	RequestTypeDateRange          = "date_range"
	RequestTypeMissingData        = "missing_data"
	RequestTypeManualRepoll       = "manual_repoll"
	RequestTypeGapFill            = "gap_fill"
	RequestTypeHistoricalBackfill = "historical_backfill"
)

const (
	StatusPending    = "pending"
	StatusProcessing = "processing"
	StatusCompleted  = "completed"
	StatusFailed     = "failed"
	StatusCancelled  = "cancelled"
)

// ValidRequestType dipakai controller untuk menolak tipe di luar enum.
func ValidRequestType(t string) bool {
	switch t {
	case RequestTypeDateRange, RequestTypeMissingData, RequestTypeManualRepoll,
		RequestTypeGapFill, RequestTypeHistoricalBackfill:
		return true
	}
	return false
}

// PollingQueueItemModel: satu unit kerja ingest. Status mengikuti state
// machine ketat: pending → processing → {completed|failed}, dan
// pending → cancelled. Tidak ada preemption setelah processing.
type PollingQueueItemModel struct {
	PollingQueueItemId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:polling_queue_item_id" json:"polling_queue_item_id"`

	PollingQueueItemRequestType string     `gorm:"not null;column:polling_queue_item_request_type" json:"polling_queue_item_request_type"`
	PollingQueueItemTargetDate  time.Time  `gorm:"type:date;not null;column:polling_queue_item_target_date" json:"polling_queue_item_target_date"`
	PollingQueueItemEndDate     *time.Time `gorm:"type:date;column:polling_queue_item_end_date" json:"polling_queue_item_end_date,omitempty"`

	// Angka kecil = lebih urgen. Tie-break: enqueued_at paling awal.
	PollingQueueItemPriority int    `gorm:"not null;default:5;index;column:polling_queue_item_priority" json:"polling_queue_item_priority"`
	PollingQueueItemStatus   string `gorm:"not null;default:'pending';index;column:polling_queue_item_status" json:"polling_queue_item_status"`

	PollingQueueItemRecordsProcessed int `gorm:"not null;default:0;column:polling_queue_item_records_processed" json:"polling_queue_item_records_processed"`
	PollingQueueItemTotalRecords     int `gorm:"not null;default:0;column:polling_queue_item_total_records" json:"polling_queue_item_total_records"`

	PollingQueueItemErrorMessage *string `gorm:"column:polling_queue_item_error_message" json:"polling_queue_item_error_message,omitempty"`

	PollingQueueItemEnqueuedAt  time.Time  `gorm:"column:polling_queue_item_enqueued_at;autoCreateTime" json:"polling_queue_item_enqueued_at"`
	PollingQueueItemStartedAt   *time.Time `gorm:"column:polling_queue_item_started_at" json:"polling_queue_item_started_at,omitempty"`
	PollingQueueItemFinishedAt  *time.Time `gorm:"column:polling_queue_item_finished_at" json:"polling_queue_item_finished_at,omitempty"`
	PollingQueueItemCancelledAt *time.Time `gorm:"column:polling_queue_item_cancelled_at" json:"polling_queue_item_cancelled_at,omitempty"`
}

func (PollingQueueItemModel) TableName() string { return "polling_queue_items" }

// ProgressPercentage: processed/total×100; total 0 berarti request trivially
// complete, dilaporkan 100.
func (m *PollingQueueItemModel) ProgressPercentage() float64 {
	if m.PollingQueueItemTotalRecords <= 0 {
		return 100
	}
	return float64(m.PollingQueueItemRecordsProcessed) / float64(m.PollingQueueItemTotalRecords) * 100
}

// CanCancel: hanya item pending yang boleh dibatalkan.
func (m *PollingQueueItemModel) CanCancel() bool {
	return m.PollingQueueItemStatus == StatusPending
}
