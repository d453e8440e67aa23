package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// MachinePunchLog menyimpan transaksi mesin absensi apa adanya (raw).
// Baris di sini immutable: sekali masuk tidak pernah di-update, dedup
// dilakukan sebelum insert.
type MachinePunchLog struct {
	MachinePunchLogId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:machine_punch_log_id" json:"machine_punch_log_id"`

	// Id transaksi dari mesin. Bisa kosong untuk mesin lama, makanya nullable.
	MachinePunchLogSourceLogId *string `gorm:"column:machine_punch_log_source_log_id;index" json:"machine_punch_log_source_log_id,omitempty"`

	MachinePunchLogEmployeeCode string    `gorm:"not null;index;column:machine_punch_log_employee_code" json:"machine_punch_log_employee_code"`
	MachinePunchLogPunchTime    time.Time `gorm:"not null;index;column:machine_punch_log_punch_time"    json:"machine_punch_log_punch_time"`
	MachinePunchLogDirection    string    `gorm:"not null;default:'unknown';column:machine_punch_log_direction" json:"machine_punch_log_direction"` // in | out | unknown
	MachinePunchLogTerminal     string    `gorm:"column:machine_punch_log_terminal" json:"machine_punch_log_terminal"`

	// Payload asli dari API mesin, disimpan utuh karena skema vendor tidak
	// sepenuhnya diketahui.
	MachinePunchLogPayload datatypes.JSON `gorm:"column:machine_punch_log_payload" json:"machine_punch_log_payload,omitempty"`

	MachinePunchLogCreatedAt time.Time `gorm:"column:machine_punch_log_created_at;autoCreateTime" json:"machine_punch_log_created_at"`
}

func (MachinePunchLog) TableName() string { return "machine_punch_logs" }

const (
	PunchDirectionIn      = "in"
	PunchDirectionOut     = "out"
	PunchDirectionUnknown = "unknown"
)
