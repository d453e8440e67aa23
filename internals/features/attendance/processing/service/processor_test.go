package service

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	machineModel "absensiku_backend/internals/features/attendance/machine/model"
	"absensiku_backend/internals/features/attendance/processing/model"
	"absensiku_backend/internals/helpers/dbtime"
)

type fakeAttendanceStore struct {
	existing  map[string]bool
	inserted  []model.AttendanceRecordModel
	insertErr map[string]error // keyed by employee code
}

func newFakeAttendanceStore() *fakeAttendanceStore {
	return &fakeAttendanceStore{
		existing:  map[string]bool{},
		insertErr: map[string]error{},
	}
}

func attKey(code string, date time.Time) string {
	return code + "|" + date.Format("2006-01-02")
}

func (f *fakeAttendanceStore) ExistsForEmployeeDate(code string, date time.Time) (bool, error) {
	return f.existing[attKey(code, date)], nil
}

func (f *fakeAttendanceStore) Insert(rec *model.AttendanceRecordModel) error {
	if err := f.insertErr[rec.AttendanceRecordEmployeeCode]; err != nil {
		return err
	}
	f.existing[attKey(rec.AttendanceRecordEmployeeCode, rec.AttendanceRecordDate)] = true
	f.inserted = append(f.inserted, *rec)
	return nil
}

// wibPunch: punch di jam lokal kantor supaya pengelompokan tanggal tidak
// tergantung offset UTC.
func wibPunch(code string, y int, m time.Month, d, hh, mm int) machineModel.MachinePunchLog {
	loc := dbtime.CompanyLocation()
	return machineModel.MachinePunchLog{
		MachinePunchLogEmployeeCode: code,
		MachinePunchLogPunchTime:    time.Date(y, m, d, hh, mm, 0, 0, loc),
	}
}

func TestGroupPunchesByEmployeeAndDate(t *testing.T) {
	punches := []machineModel.MachinePunchLog{
		wibPunch("EMP01", 2026, 8, 20, 8, 0),
		wibPunch("EMP01", 2026, 8, 20, 17, 0),
		wibPunch("EMP01", 2026, 8, 21, 8, 5),
		wibPunch("EMP02", 2026, 8, 20, 9, 10),
	}

	groups := GroupPunches(punches)

	require.Len(t, groups, 3)
	day20 := dbtime.DateOnly(punches[0].MachinePunchLogPunchTime)
	assert.Len(t, groups[GroupKey{EmployeeCode: "EMP01", Date: day20}], 2)
	assert.Len(t, groups[GroupKey{EmployeeCode: "EMP02", Date: day20}], 1)
}

func TestConvertGroupsCreatesFacts(t *testing.T) {
	punches := []machineModel.MachinePunchLog{
		wibPunch("EMP01", 2026, 8, 20, 8, 0),
		wibPunch("EMP01", 2026, 8, 20, 17, 0),
	}
	store := newFakeAttendanceStore()

	inserted, errs := ConvertGroups(GroupPunches(punches), store)

	assert.Equal(t, 1, inserted)
	assert.Empty(t, errs)
	require.Len(t, store.inserted, 1)

	rec := store.inserted[0]
	assert.Equal(t, "EMP01", rec.AttendanceRecordEmployeeCode)
	require.NotNil(t, rec.AttendanceRecordCheckOut)
	assert.InDelta(t, 9.0, rec.AttendanceRecordHoursWorked, 0.001)
}

func TestConvertGroupsIdempotent(t *testing.T) {
	punches := []machineModel.MachinePunchLog{
		wibPunch("EMP01", 2026, 8, 20, 8, 0),
		wibPunch("EMP01", 2026, 8, 20, 17, 0),
	}
	store := newFakeAttendanceStore()
	groups := GroupPunches(punches)

	first, _ := ConvertGroups(groups, store)
	second, _ := ConvertGroups(groups, store)

	assert.Equal(t, 1, first)
	assert.Equal(t, 0, second) // grup yang sama tidak pernah menghasilkan fakta ganda
	assert.Len(t, store.inserted, 1)
}

func TestConvertGroupsCollectsPerGroupErrors(t *testing.T) {
	punches := []machineModel.MachinePunchLog{
		wibPunch("EMP01", 2026, 8, 20, 8, 0),
		wibPunch("EMP02", 2026, 8, 20, 9, 0),
	}
	store := newFakeAttendanceStore()
	store.insertErr["EMP01"] = fmt.Errorf("constraint violation")

	inserted, errs := ConvertGroups(GroupPunches(punches), store)

	// Grup bermasalah dilewati, sisanya tetap jalan.
	assert.Equal(t, 1, inserted)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0], "EMP01")
}

func TestAbsentCount(t *testing.T) {
	assert.Equal(t, 10, AbsentCount(50, 35, 5))
	assert.Equal(t, 0, AbsentCount(10, 8, 2))
	assert.Equal(t, 0, AbsentCount(10, 9, 3)) // tidak pernah negatif
}
