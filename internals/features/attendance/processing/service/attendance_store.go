// file: internals/features/attendance/processing/service/attendance_store.go
package service

import (
	"time"

	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/processing/model"
	"absensiku_backend/internals/helpers/dbtime"
)

// AttendanceStore: guard idempotensi konversi raw → attendance adalah
// existence-check di sini, BUKAN unique constraint. Konsekuensinya hanya
// boleh ada satu processor aktif (lihat DESIGN.md).
type AttendanceStore interface {
	ExistsForEmployeeDate(employeeCode string, date time.Time) (bool, error)
	Insert(rec *model.AttendanceRecordModel) error
}

type gormAttendanceStore struct {
	db *gorm.DB
}

func NewAttendanceStore(db *gorm.DB) AttendanceStore {
	return &gormAttendanceStore{db: db}
}

func (s *gormAttendanceStore) ExistsForEmployeeDate(employeeCode string, date time.Time) (bool, error) {
	var n int64
	err := s.db.Model(&model.AttendanceRecordModel{}).
		Where("attendance_record_employee_code = ? AND attendance_record_date = ?",
			employeeCode, dbtime.DateOnly(date)).
		Count(&n).Error
	return n > 0, err
}

func (s *gormAttendanceStore) Insert(rec *model.AttendanceRecordModel) error {
	return s.db.Create(rec).Error
}
