package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"absensiku_backend/internals/constants"
	machineModel "absensiku_backend/internals/features/attendance/machine/model"
)

func punchAt(code string, t time.Time) machineModel.MachinePunchLog {
	return machineModel.MachinePunchLog{
		MachinePunchLogEmployeeCode: code,
		MachinePunchLogPunchTime:    t,
	}
}

func TestPairPunchesSinglePunchDefaultsHours(t *testing.T) {
	in := time.Date(2026, 8, 20, 8, 55, 0, 0, time.UTC)

	p, err := PairPunches([]machineModel.MachinePunchLog{punchAt("EMP01", in)})
	require.NoError(t, err)
	assert.Equal(t, in, p.CheckIn)
	assert.Nil(t, p.CheckOut)
	assert.Equal(t, constants.DefaultWorkHours, p.HoursWorked)
}

func TestPairPunchesWithinMaxGap(t *testing.T) {
	in := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	out := in.Add(9 * time.Hour)

	p, err := PairPunches([]machineModel.MachinePunchLog{
		punchAt("EMP01", in),
		punchAt("EMP01", out),
	})
	require.NoError(t, err)
	require.NotNil(t, p.CheckOut)
	assert.Equal(t, out, *p.CheckOut)
	assert.InDelta(t, 9.0, p.HoursWorked, 0.001)
}

func TestPairPunchesOverMaxGapDropsCheckout(t *testing.T) {
	in := time.Date(2026, 8, 20, 7, 0, 0, 0, time.UTC)
	out := in.Add(14 * time.Hour) // lebih dari 12 jam: dianggap lupa checkout

	p, err := PairPunches([]machineModel.MachinePunchLog{
		punchAt("EMP01", in),
		punchAt("EMP01", out),
	})
	require.NoError(t, err)
	assert.Nil(t, p.CheckOut)
	assert.Equal(t, constants.DefaultWorkHours, p.HoursWorked)
}

func TestPairPunchesSortsUnorderedInput(t *testing.T) {
	in := time.Date(2026, 8, 20, 8, 0, 0, 0, time.UTC)
	mid := in.Add(4 * time.Hour)
	out := in.Add(8 * time.Hour)

	p, err := PairPunches([]machineModel.MachinePunchLog{
		punchAt("EMP01", mid),
		punchAt("EMP01", out),
		punchAt("EMP01", in),
	})
	require.NoError(t, err)
	assert.Equal(t, in, p.CheckIn)
	require.NotNil(t, p.CheckOut)
	assert.Equal(t, out, *p.CheckOut)
}

func TestPairPunchesEmptyGroup(t *testing.T) {
	_, err := PairPunches(nil)
	require.Error(t, err)
}

func TestClassifyArrival(t *testing.T) {
	start := time.Date(2026, 8, 20, 9, 0, 0, 0, time.UTC)
	grace := 30

	cases := []struct {
		name       string
		checkIn    time.Time
		status     string
		lateMin    int
		graceUsed  int
	}{
		{"10 menit lebih awal", start.Add(-10 * time.Minute), constants.ArrivalEarly, 0, 0},
		{"tepat waktu", start, constants.ArrivalOnTime, 0, 0},
		{"10 menit dalam grace", start.Add(10 * time.Minute), constants.ArrivalGrace, 0, 10},
		{"pas di batas grace", start.Add(30 * time.Minute), constants.ArrivalGrace, 0, 30},
		{"45 menit: 15 dihitung telat", start.Add(45 * time.Minute), constants.ArrivalLate, 15, 30},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			status, lateMin, graceUsed := ClassifyArrival(tc.checkIn, start, grace)
			assert.Equal(t, tc.status, status)
			assert.Equal(t, tc.lateMin, lateMin)
			assert.Equal(t, tc.graceUsed, graceUsed)
		})
	}
}

func TestClassifyDeparture(t *testing.T) {
	end := time.Date(2026, 8, 20, 17, 0, 0, 0, time.UTC)

	status, early, late := ClassifyDeparture(nil, end)
	assert.Equal(t, constants.DepartureIncomplete, status)
	assert.Zero(t, early)
	assert.Zero(t, late)

	onTime := end
	status, early, late = ClassifyDeparture(&onTime, end)
	assert.Equal(t, constants.DepartureOnTime, status)

	lateOut := end.Add(20 * time.Minute)
	status, early, late = ClassifyDeparture(&lateOut, end)
	assert.Equal(t, constants.DepartureLate, status)
	assert.Equal(t, 0, early)
	assert.Equal(t, 20, late)

	earlyOut := end.Add(-15 * time.Minute)
	status, early, late = ClassifyDeparture(&earlyOut, end)
	assert.Equal(t, constants.DepartureEarly, status)
	assert.Equal(t, 15, early)
	assert.Equal(t, 0, late)
}
