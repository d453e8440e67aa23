// file: internals/features/attendance/machine/service/punch_store.go
package service

import (
	"time"

	"gorm.io/gorm"

	"absensiku_backend/internals/features/attendance/machine/model"
)

// PunchStore membungkus akses raw storage supaya ingest bisa dites tanpa DB.
// Pola interface repository mengikuti modul dashboard HRIS.
type PunchStore interface {
	ExistsBySourceLogId(id string) (bool, error)
	ExistsByEvent(punchTime time.Time, employeeCode, direction string) (bool, error)
	Insert(log *model.MachinePunchLog) error
	LatestPunchTime() (*time.Time, error)
}

type gormPunchStore struct {
	db *gorm.DB
}

func NewPunchStore(db *gorm.DB) PunchStore {
	return &gormPunchStore{db: db}
}

func (s *gormPunchStore) ExistsBySourceLogId(id string) (bool, error) {
	var n int64
	err := s.db.Model(&model.MachinePunchLog{}).
		Where("machine_punch_log_source_log_id = ?", id).
		Count(&n).Error
	return n > 0, err
}

func (s *gormPunchStore) ExistsByEvent(punchTime time.Time, employeeCode, direction string) (bool, error) {
	var n int64
	err := s.db.Model(&model.MachinePunchLog{}).
		Where("machine_punch_log_punch_time = ? AND machine_punch_log_employee_code = ? AND machine_punch_log_direction = ?",
			punchTime, employeeCode, direction).
		Count(&n).Error
	return n > 0, err
}

func (s *gormPunchStore) Insert(log *model.MachinePunchLog) error {
	return s.db.Create(log).Error
}

func (s *gormPunchStore) LatestPunchTime() (*time.Time, error) {
	var row model.MachinePunchLog
	err := s.db.Order("machine_punch_log_punch_time DESC").Limit(1).Take(&row).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	t := row.MachinePunchLogPunchTime
	return &t, nil
}
