// file: internals/helpers/dbtime/time_helper.go
package dbtime

import (
	"os"
	"strings"
	"sync"
	"time"
)

// Timezone kantor dipakai untuk menentukan "tanggal kalender" sebuah punch
// dan untuk menempelkan jam shift ke tanggal. Default Asia/Jakarta.
var (
	companyLocOnce sync.Once
	companyLoc     *time.Location
)

// CompanyLocation:
// 1) Baca COMPANY_TIMEZONE dari ENV (mis. "Asia/Jakarta")
// 2) Fallback ke Asia/Jakarta
// 3) Fallback terakhir: time.UTC
func CompanyLocation() *time.Location {
	companyLocOnce.Do(func() {
		if tz := strings.TrimSpace(os.Getenv("COMPANY_TIMEZONE")); tz != "" {
			if loc, err := time.LoadLocation(tz); err == nil {
				companyLoc = loc
				return
			}
		}
		if loc, err := time.LoadLocation("Asia/Jakarta"); err == nil {
			companyLoc = loc
			return
		}
		companyLoc = time.UTC
	})
	return companyLoc
}

// ToCompanyTime mengonversi waktu (biasanya dari DB = UTC) ke timezone kantor.
// Kalau t.IsZero() → dikembalikan apa adanya.
func ToCompanyTime(t time.Time) time.Time {
	if t.IsZero() {
		return t
	}
	return t.In(CompanyLocation())
}

// DateOnly memotong waktu ke tengah malam di timezone kantor. Semua
// pengelompokan per-tanggal di pipeline lewat sini biar konsisten.
func DateOnly(t time.Time) time.Time {
	lt := t.In(CompanyLocation())
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, CompanyLocation())
}

// NowInCompany: "sekarang" di timezone kantor.
func NowInCompany() time.Time {
	return time.Now().In(CompanyLocation())
}
