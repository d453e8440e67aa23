// file: internals/features/attendance/machine/dto/machine_dto.go
package dto

import (
	"encoding/json"
	"strings"
	"time"
)

/* =========================================================
 * AUTH
 * ========================================================= */

type MachineAuthRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type MachineAuthResponse struct {
	Token string `json:"token"`
	// Masa berlaku token dalam detik (default vendor: 3600)
	ExpiresIn int `json:"expires_in"`
}

/* =========================================================
 * TRANSAKSI (PUNCH)
 * ========================================================= */

// MachinePunchDTO mengikuti bentuk respons API vendor (gaya BioTime):
// emp_code + punch_time + punch_state + terminal_alias. Field lain yang
// tidak kita pakai tetap dibawa lewat Raw.
type MachinePunchDTO struct {
	Id            *string `json:"id,omitempty"`
	EmployeeCode  string  `json:"emp_code"`
	PunchTime     string  `json:"punch_time"`  // "2006-01-02 15:04:05" waktu kantor
	PunchState    string  `json:"punch_state"` // "0" = masuk, "1" = pulang
	TerminalAlias string  `json:"terminal_alias"`

	// Payload asli (di-set ulang oleh client dari body halaman).
	Raw json.RawMessage `json:"-"`
}

type MachinePunchPage struct {
	Data []MachinePunchDTO `json:"data"`
}

// ParsedPunchTime membaca punch_time di timezone kantor.
func (d *MachinePunchDTO) ParsedPunchTime(loc *time.Location) (time.Time, error) {
	if loc == nil {
		loc = time.UTC
	}
	return time.ParseInLocation("2006-01-02 15:04:05", strings.TrimSpace(d.PunchTime), loc)
}

// Direction memetakan punch_state vendor ke arah punch internal.
func (d *MachinePunchDTO) Direction() string {
	switch strings.TrimSpace(d.PunchState) {
	case "0", "in", "IN":
		return "in"
	case "1", "out", "OUT":
		return "out"
	default:
		return "unknown"
	}
}

// IsAccessControlTerminal: mesin akses pintu ikut nyangkut di API transaksi
// vendor, padahal bukan data kehadiran. Deteksi dari label terminal.
func (d *MachinePunchDTO) IsAccessControlTerminal() bool {
	label := strings.ToLower(d.TerminalAlias)
	for _, marker := range []string{"pintu", "door", "access", "turnstile", "gate"} {
		if strings.Contains(label, marker) {
			return true
		}
	}
	return false
}

/* =========================================================
 * KARYAWAN
 * ========================================================= */

type MachineEmployeeDTO struct {
	EmployeeCode string  `json:"emp_code"`
	FirstName    string  `json:"first_name"`
	LastName     *string `json:"last_name,omitempty"`
	Nickname     *string `json:"nickname,omitempty"`
	Department   *string `json:"department,omitempty"`
	Mobile       *string `json:"mobile,omitempty"`
	Email        *string `json:"email,omitempty"`
}

type MachineEmployeePage struct {
	Data []MachineEmployeeDTO `json:"data"`
}
