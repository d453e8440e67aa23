package model

import (
	"time"

	"github.com/google/uuid"
)

// EmployeeModel adalah mirror master karyawan dari API mesin. Upsert by
// employee_code, tidak pernah dihapus oleh pipeline.
type EmployeeModel struct {
	EmployeeId uuid.UUID `gorm:"type:uuid;default:gen_random_uuid();primaryKey;column:employee_id" json:"employee_id"`

	EmployeeCode       string  `gorm:"uniqueIndex;not null;column:employee_code" json:"employee_code"`
	EmployeeFirstName  string  `gorm:"column:employee_first_name" json:"employee_first_name"`
	EmployeeLastName   *string `gorm:"column:employee_last_name"  json:"employee_last_name,omitempty"`
	EmployeeNickname   *string `gorm:"column:employee_nickname"   json:"employee_nickname,omitempty"`
	EmployeeDepartment *string `gorm:"column:employee_department" json:"employee_department,omitempty"`
	EmployeePhone      *string `gorm:"column:employee_phone"      json:"employee_phone,omitempty"`
	EmployeeEmail      *string `gorm:"column:employee_email"      json:"employee_email,omitempty"`

	// Karyawan yang dibebaskan dari absensi biometrik (mis. direksi) selalu
	// dihitung hadir di rekap harian.
	EmployeeIsBiometricExempt bool `gorm:"not null;default:false;column:employee_is_biometric_exempt" json:"employee_is_biometric_exempt"`

	EmployeeLastSyncedAt *time.Time `gorm:"column:employee_last_synced_at" json:"employee_last_synced_at,omitempty"`

	EmployeeCreatedAt time.Time  `gorm:"column:employee_created_at;autoCreateTime" json:"employee_created_at"`
	EmployeeUpdatedAt *time.Time `gorm:"column:employee_updated_at;autoUpdateTime" json:"employee_updated_at,omitempty"`
}

func (EmployeeModel) TableName() string { return "employees" }
