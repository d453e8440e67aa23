// file: internals/features/attendance/polling/dto/queue_dto.go
package dto

import (
	"time"

	"github.com/google/uuid"

	"absensiku_backend/internals/features/attendance/polling/model"
)

/* =========================================================
 * REQUESTS
 * ========================================================= */

type EnqueueRequest struct {
	RequestType string `json:"request_type" validate:"required,oneof=date_range missing_data manual_repoll gap_fill historical_backfill"`

	// Format tanggal: "2006-01-02"
	TargetDate string  `json:"target_date" validate:"required,datetime=2006-01-02"`
	EndDate    *string `json:"end_date" validate:"omitempty,datetime=2006-01-02"`

	// Angka kecil = lebih urgen; default 5
	Priority *int `json:"priority" validate:"omitempty,min=1,max=9"`
}

func (r *EnqueueRequest) ParsedDates(loc *time.Location) (time.Time, *time.Time, error) {
	target, err := time.ParseInLocation("2006-01-02", r.TargetDate, loc)
	if err != nil {
		return time.Time{}, nil, err
	}
	if r.EndDate == nil {
		return target, nil, nil
	}
	end, err := time.ParseInLocation("2006-01-02", *r.EndDate, loc)
	if err != nil {
		return time.Time{}, nil, err
	}
	return target, &end, nil
}

/* =========================================================
 * RESPONSE
 * ========================================================= */

type QueueItemResponse struct {
	Id               uuid.UUID  `json:"id"`
	RequestType      string     `json:"request_type"`
	TargetDate       string     `json:"target_date"`
	EndDate          *string    `json:"end_date,omitempty"`
	Priority         int        `json:"priority"`
	Status           string     `json:"status"`
	RecordsProcessed int        `json:"records_processed"`
	TotalRecords     int        `json:"total_records"`
	Progress         float64    `json:"progress_percentage"`
	ErrorMessage     *string    `json:"error_message,omitempty"`
	EnqueuedAt       time.Time  `json:"enqueued_at"`
	StartedAt        *time.Time `json:"started_at,omitempty"`
	FinishedAt       *time.Time `json:"finished_at,omitempty"`
	CancelledAt      *time.Time `json:"cancelled_at,omitempty"`
}

func ToQueueItemResponse(m *model.PollingQueueItemModel) QueueItemResponse {
	resp := QueueItemResponse{
		Id:               m.PollingQueueItemId,
		RequestType:      m.PollingQueueItemRequestType,
		TargetDate:       m.PollingQueueItemTargetDate.Format("2006-01-02"),
		Priority:         m.PollingQueueItemPriority,
		Status:           m.PollingQueueItemStatus,
		RecordsProcessed: m.PollingQueueItemRecordsProcessed,
		TotalRecords:     m.PollingQueueItemTotalRecords,
		Progress:         m.ProgressPercentage(),
		ErrorMessage:     m.PollingQueueItemErrorMessage,
		EnqueuedAt:       m.PollingQueueItemEnqueuedAt,
		StartedAt:        m.PollingQueueItemStartedAt,
		FinishedAt:       m.PollingQueueItemFinishedAt,
		CancelledAt:      m.PollingQueueItemCancelledAt,
	}
	if m.PollingQueueItemEndDate != nil {
		s := m.PollingQueueItemEndDate.Format("2006-01-02")
		resp.EndDate = &s
	}
	return resp
}
