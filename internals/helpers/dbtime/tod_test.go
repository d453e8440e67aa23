package dbtime

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTod(t *testing.T) {
	tod, err := Parse("09:00")
	require.NoError(t, err)
	assert.Equal(t, 9, tod.Hour())
	assert.Equal(t, 0, tod.Minute())

	tod, err = Parse("17:30:15")
	require.NoError(t, err)
	assert.Equal(t, 17, tod.Hour())
	assert.Equal(t, 15, tod.Second())

	_, err = Parse("jam sembilan")
	require.Error(t, err)
}

func TestTodOnDate(t *testing.T) {
	tod, err := Parse("09:00")
	require.NoError(t, err)

	loc := CompanyLocation()
	date := time.Date(2026, 8, 20, 0, 0, 0, 0, loc)
	at := tod.OnDate(date, loc)

	assert.Equal(t, 2026, at.Year())
	assert.Equal(t, time.August, at.Month())
	assert.Equal(t, 20, at.Day())
	assert.Equal(t, 9, at.Hour())
	assert.Equal(t, loc, at.Location())
}

func TestTodValue(t *testing.T) {
	tod, err := Parse("08:05")
	require.NoError(t, err)
	v, err := tod.Value()
	require.NoError(t, err)
	assert.Equal(t, "08:05:00", v)

	var zero Tod
	v, err = zero.Value()
	require.NoError(t, err)
	assert.Equal(t, "00:00:00", v)
}

func TestDateOnlyMidnightInCompanyTimezone(t *testing.T) {
	loc := CompanyLocation()
	in := time.Date(2026, 8, 20, 23, 45, 0, 0, loc)

	d := DateOnly(in)
	assert.Equal(t, 20, d.Day())
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, loc, d.Location())

	// Dua punch di hari lokal yang sama harus dapat tanggal yang sama.
	later := time.Date(2026, 8, 20, 1, 10, 0, 0, loc)
	assert.Equal(t, DateOnly(later), d)
}
