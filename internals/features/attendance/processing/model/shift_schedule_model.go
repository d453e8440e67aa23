package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/helpers/dbtime"
)

// ShiftScheduleModel adalah jendela kerja yang diharapkan per karyawan.
// Read-only bagi pipeline; CRUD-nya ada di modul HR di luar core ini.
type ShiftScheduleModel struct {
	ShiftScheduleId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:shift_schedule_id" json:"shift_schedule_id"`

	ShiftScheduleEmployeeCode string     `gorm:"not null;index;column:shift_schedule_employee_code" json:"shift_schedule_employee_code"`
	ShiftScheduleStartTime    dbtime.Tod `gorm:"type:time;not null;column:shift_schedule_start_time" json:"shift_schedule_start_time"`
	ShiftScheduleEndTime      dbtime.Tod `gorm:"type:time;not null;column:shift_schedule_end_time"   json:"shift_schedule_end_time"`
	ShiftScheduleGraceMinutes int        `gorm:"not null;default:30;column:shift_schedule_grace_minutes" json:"shift_schedule_grace_minutes"`

	// Hari berlaku, mis. {monday,...,friday}
	ShiftScheduleDays pq.StringArray `gorm:"type:text[];column:shift_schedule_days" json:"shift_schedule_days"`

	ShiftScheduleCreatedAt time.Time  `gorm:"column:shift_schedule_created_at;autoCreateTime" json:"shift_schedule_created_at"`
	ShiftScheduleUpdatedAt *time.Time `gorm:"column:shift_schedule_updated_at;autoUpdateTime" json:"shift_schedule_updated_at,omitempty"`
}

func (ShiftScheduleModel) TableName() string { return "shift_schedules" }

// DefaultShift dipakai saat karyawan belum punya jadwal (09:00–17:00, grace 30).
func DefaultShift(employeeCode string) ShiftScheduleModel {
	start, _ := dbtime.Parse(constants.DefaultShiftStart)
	end, _ := dbtime.Parse(constants.DefaultShiftEnd)
	return ShiftScheduleModel{
		ShiftScheduleEmployeeCode: employeeCode,
		ShiftScheduleStartTime:    start,
		ShiftScheduleEndTime:      end,
		ShiftScheduleGraceMinutes: constants.DefaultGraceMinutes,
	}
}
