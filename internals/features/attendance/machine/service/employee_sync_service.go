// file: internals/features/attendance/machine/service/employee_sync_service.go
package service

import (
	"fmt"
	"log"
	"strings"
	"time"
	"unicode"

	"gorm.io/gorm"

	"absensiku_backend/internals/constants"
	"absensiku_backend/internals/features/attendance/machine/client"
	"absensiku_backend/internals/features/attendance/machine/dto"
	"absensiku_backend/internals/features/attendance/machine/model"
)

/* =========================================================
 * STORE
 * ========================================================= */

type EmployeeStore interface {
	FindByCode(code string) (*model.EmployeeModel, error) // (nil, nil) saat tidak ada
	Save(emp *model.EmployeeModel) error
	All() ([]model.EmployeeModel, error)
}

type gormEmployeeStore struct {
	db *gorm.DB
}

func NewEmployeeStore(db *gorm.DB) EmployeeStore {
	return &gormEmployeeStore{db: db}
}

func (s *gormEmployeeStore) FindByCode(code string) (*model.EmployeeModel, error) {
	var emp model.EmployeeModel
	err := s.db.Where("employee_code = ?", code).Take(&emp).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &emp, nil
}

func (s *gormEmployeeStore) Save(emp *model.EmployeeModel) error {
	return s.db.Save(emp).Error
}

func (s *gormEmployeeStore) All() ([]model.EmployeeModel, error) {
	var rows []model.EmployeeModel
	err := s.db.Order("employee_code ASC").Find(&rows).Error
	return rows, err
}

/* =========================================================
 * SYNC
 * ========================================================= */

type SyncResult struct {
	Pulled   int `json:"pulled"`
	Inserted int `json:"inserted"`
	Updated  int `json:"updated"`
}

// Finding: temuan kualitas data master karyawan. Dilaporkan, tidak pernah
// menolak record.
type Finding struct {
	EmployeeCode string `json:"employee_code"`
	Issue        string `json:"issue"`
}

// EmployeeSyncService mirror master karyawan dari API mesin: paginasi
// sendiri, upsert by employee_code, tidak pernah menghapus.
type EmployeeSyncService struct {
	api      client.MachineAPI
	store    EmployeeStore
	pageSize int
}

func NewEmployeeSyncService(api client.MachineAPI, store EmployeeStore) *EmployeeSyncService {
	return &EmployeeSyncService{
		api:      api,
		store:    store,
		pageSize: constants.EmployeePageSize,
	}
}

func (s *EmployeeSyncService) SyncEmployees() (SyncResult, error) {
	res := SyncResult{}

	page := 1
	for {
		records, err := s.api.FetchEmployeePage(page, s.pageSize)
		if err != nil {
			return res, fmt.Errorf("sync karyawan gagal di halaman %d: %w", page, err)
		}
		if len(records) == 0 {
			break
		}

		for i := range records {
			rec := &records[i]
			res.Pulled++
			inserted, err := s.upsertOne(rec)
			if err != nil {
				log.Printf("[MESIN] karyawan %s dilewati: %v", rec.EmployeeCode, err)
				continue
			}
			if inserted {
				res.Inserted++
			} else {
				res.Updated++
			}
		}

		if len(records) < s.pageSize {
			break
		}
		page++
	}

	return res, nil
}

func (s *EmployeeSyncService) upsertOne(rec *dto.MachineEmployeeDTO) (bool, error) {
	code := strings.TrimSpace(rec.EmployeeCode)
	if code == "" {
		return false, fmt.Errorf("emp_code kosong")
	}

	now := time.Now()
	existing, err := s.store.FindByCode(code)
	if err != nil {
		return false, err
	}

	if existing == nil {
		emp := &model.EmployeeModel{
			EmployeeCode:         code,
			EmployeeFirstName:    strings.TrimSpace(rec.FirstName),
			EmployeeLastName:     rec.LastName,
			EmployeeNickname:     rec.Nickname,
			EmployeeDepartment:   rec.Department,
			EmployeePhone:        rec.Mobile,
			EmployeeEmail:        rec.Email,
			EmployeeLastSyncedAt: &now,
		}
		return true, s.store.Save(emp)
	}

	existing.EmployeeFirstName = strings.TrimSpace(rec.FirstName)
	existing.EmployeeLastName = rec.LastName
	existing.EmployeeNickname = rec.Nickname
	existing.EmployeeDepartment = rec.Department
	existing.EmployeePhone = rec.Mobile
	existing.EmployeeEmail = rec.Email
	existing.EmployeeLastSyncedAt = &now
	return false, s.store.Save(existing)
}

/* =========================================================
 * VALIDASI KUALITAS DATA
 * ========================================================= */

// ValidateEmployees menandai record master yang mencurigakan:
// nama full angka, nama < 2 huruf, nama belakang tidak diawali kapital,
// atau tidak punya nama belakang maupun panggilan sekaligus.
func (s *EmployeeSyncService) ValidateEmployees() ([]Finding, error) {
	rows, err := s.store.All()
	if err != nil {
		return nil, err
	}

	var findings []Finding
	for i := range rows {
		emp := &rows[i]
		findings = append(findings, validateEmployee(emp)...)
	}
	return findings, nil
}

func validateEmployee(emp *model.EmployeeModel) []Finding {
	var out []Finding
	name := strings.TrimSpace(emp.EmployeeFirstName)

	if name != "" && isAllDigits(name) {
		out = append(out, Finding{emp.EmployeeCode, "nama hanya berisi angka"})
	}
	if len([]rune(name)) < 2 {
		out = append(out, Finding{emp.EmployeeCode, "nama kurang dari 2 karakter"})
	}
	if emp.EmployeeLastName != nil {
		last := strings.TrimSpace(*emp.EmployeeLastName)
		if last != "" {
			first := []rune(last)[0]
			if unicode.IsLetter(first) && !unicode.IsUpper(first) {
				out = append(out, Finding{emp.EmployeeCode, "nama belakang tidak diawali huruf kapital"})
			}
		}
	}
	if isBlankPtr(emp.EmployeeLastName) && isBlankPtr(emp.EmployeeNickname) {
		out = append(out, Finding{emp.EmployeeCode, "tidak punya nama belakang maupun nama panggilan"})
	}
	return out
}

func isAllDigits(s string) bool {
	for _, r := range s {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return len(s) > 0
}

func isBlankPtr(s *string) bool {
	return s == nil || strings.TrimSpace(*s) == ""
}
