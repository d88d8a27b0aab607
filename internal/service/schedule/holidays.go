package schedule

import "fmt"

// Holidays2026 is the Indonesian national holiday calendar for 2026.
// Joint-leave (cuti bersama) dates are excluded on purpose.
var Holidays2026 = []string{
	"2026-01-01", // Tahun Baru Masehi
	"2026-01-29", // Tahun Baru Imlek
	"2026-02-16", // Isra Mikraj
	"2026-03-20", // Hari Raya Nyepi
	"2026-04-03", // Wafat Isa Almasih
	"2026-04-05", // Paskah
	"2026-04-30", // Kenaikan Isa Almasih
	"2026-05-01", // Hari Buruh
	"2026-05-21", // Idul Fitri
	"2026-05-22", // Idul Fitri
	"2026-06-01", // Hari Lahir Pancasila
	"2026-06-06", // Hari Raya Waisak
	"2026-07-06", // Idul Adha
	"2026-08-17", // Hari Kemerdekaan
	"2026-09-14", // Maulid Nabi
	"2026-12-25", // Hari Raya Natal
}

func sessionNote(n int) string {
	return fmt.Sprintf("Sesi ke-%d", n)
}

func overtimeSessionNote(n int) string {
	return fmt.Sprintf("Overtime (Sesi %d)", n)
}
