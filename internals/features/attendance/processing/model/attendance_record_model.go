package model

import (
	"time"

	"github.com/google/uuid"
)

// AttendanceRecordModel adalah fakta kehadiran turunan: satu baris per
// (karyawan, tanggal). Hanya Attendance Processor yang boleh membuat baris
// ini; guard idempotensinya existence-check sebelum insert (lihat service).
type AttendanceRecordModel struct {
	AttendanceRecordId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:attendance_record_id" json:"attendance_record_id"`

	AttendanceRecordEmployeeCode string    `gorm:"not null;index:idx_attendance_employee_date;column:attendance_record_employee_code" json:"attendance_record_employee_code"`
	AttendanceRecordDate         time.Time `gorm:"type:date;not null;index:idx_attendance_employee_date;column:attendance_record_date" json:"attendance_record_date"`

	AttendanceRecordCheckIn  time.Time  `gorm:"not null;column:attendance_record_check_in" json:"attendance_record_check_in"`
	AttendanceRecordCheckOut *time.Time `gorm:"column:attendance_record_check_out" json:"attendance_record_check_out,omitempty"`

	AttendanceRecordHoursWorked float64 `gorm:"not null;default:0;column:attendance_record_hours_worked" json:"attendance_record_hours_worked"`

	AttendanceRecordArrivalStatus   string `gorm:"column:attendance_record_arrival_status"   json:"attendance_record_arrival_status"`   // early | on_time | grace | late
	AttendanceRecordDepartureStatus string `gorm:"column:attendance_record_departure_status" json:"attendance_record_departure_status"` // early | on_time | late | incomplete

	AttendanceRecordLateMinutes           int `gorm:"not null;default:0;column:attendance_record_late_minutes" json:"attendance_record_late_minutes"`
	AttendanceRecordGraceMinutes          int `gorm:"not null;default:0;column:attendance_record_grace_minutes" json:"attendance_record_grace_minutes"`
	AttendanceRecordEarlyDepartureMinutes int `gorm:"not null;default:0;column:attendance_record_early_departure_minutes" json:"attendance_record_early_departure_minutes"`
	AttendanceRecordLateDepartureMinutes  int `gorm:"not null;default:0;column:attendance_record_late_departure_minutes" json:"attendance_record_late_departure_minutes"`

	// Id transaksi mesin asal check-in, dipakai untuk menandai raw log yang
	// sudah dikonversi.
	AttendanceRecordSourceLogId *string `gorm:"index;column:attendance_record_source_log_id" json:"attendance_record_source_log_id,omitempty"`

	AttendanceRecordTimingAnalyzedAt *time.Time `gorm:"column:attendance_record_timing_analyzed_at" json:"attendance_record_timing_analyzed_at,omitempty"`

	AttendanceRecordCreatedAt time.Time  `gorm:"column:attendance_record_created_at;autoCreateTime" json:"attendance_record_created_at"`
	AttendanceRecordUpdatedAt *time.Time `gorm:"column:attendance_record_updated_at;autoUpdateTime" json:"attendance_record_updated_at,omitempty"`
}

func (AttendanceRecordModel) TableName() string { return "attendance_records" }
