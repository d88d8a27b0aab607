package report

import (
	"bytes"
	"context"
	"fmt"
	"html/template"
	"time"

	"github.com/absensi-nh/absensi-backend-go/internal/domain/report"
)

const exportStyle = `
body { font-family: Arial, Helvetica, sans-serif; font-size: 12px; margin: 24px; }
h1 { font-size: 18px; margin-bottom: 4px; }
p.period { color: #555; margin-top: 0; }
table { border-collapse: collapse; width: 100%; margin-top: 12px; }
th, td { border: 1px solid #999; padding: 4px 8px; text-align: left; }
th { background: #eee; }
td.num { text-align: right; }
@media print { body { margin: 0; } }
`

var summaryTemplate = template.Must(template.New("summary").Funcs(template.FuncMap{
	"inc": func(i int) int { return i + 1 },
}).Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Rekap Absensi</title>
<style>` + exportStyle + `</style>
</head>
<body>
<h1>Rekap Absensi ({{.TypeLabel}})</h1>
<p class="period">Periode {{.PeriodStart}} s.d. {{.PeriodEnd}} &middot; {{.WorkingDays}} hari kerja</p>
<table>
<thead>
<tr>
<th>No</th><th>Nama</th><th>NIK</th>
<th>Hadir</th><th>Terlambat</th><th>Sakit</th><th>Izin</th><th>Alpha</th><th>Persentase</th>
</tr>
</thead>
<tbody>
{{range $i, $row := .Rows}}<tr>
<td class="num">{{inc $i}}</td>
<td>{{$row.EmployeeName}}</td>
<td>{{$row.EmployeeNIK}}</td>
<td class="num">{{$row.Present}}</td>
<td class="num">{{$row.Late}}</td>
<td class="num">{{$row.Sick}}</td>
<td class="num">{{$row.Permission}}</td>
<td class="num">{{$row.Alpha}}</td>
<td class="num">{{$row.Percentage}}%</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

var detailTemplate = template.Must(template.New("detail").Parse(`<!DOCTYPE html>
<html lang="id">
<head>
<meta charset="utf-8">
<title>Rekap Absensi Detail</title>
<style>` + exportStyle + `</style>
</head>
<body>
<h1>Rekap Absensi Detail ({{.TypeLabel}})</h1>
<p class="period">Periode {{.PeriodStart}} s.d. {{.PeriodEnd}}</p>
<table>
<thead>
<tr>
<th>Tanggal</th><th>Nama</th><th>Sesi</th><th>Masuk</th><th>Istirahat</th><th>Kembali</th><th>Pulang</th><th>Status</th><th>Keterangan</th>
</tr>
</thead>
<tbody>
{{range .Rows}}<tr>
<td>{{.Date}}</td>
<td>{{.Name}}</td>
<td class="num">{{.SessionNumber}}</td>
<td>{{.CheckIn}}</td>
<td>{{.BreakStart}}</td>
<td>{{.BreakEnd}}</td>
<td>{{.CheckOut}}</td>
<td>{{.Status}}</td>
<td>{{.Notes}}</td>
</tr>
{{end}}</tbody>
</table>
</body>
</html>
`))

type summaryView struct {
	TypeLabel   string
	PeriodStart string
	PeriodEnd   string
	WorkingDays int
	Rows        []report.RecapRow
}

type detailRow struct {
	Date          string
	Name          string
	SessionNumber int
	CheckIn       string
	BreakStart    string
	BreakEnd      string
	CheckOut      string
	Status        string
	Notes         string
}

type detailView struct {
	TypeLabel   string
	PeriodStart string
	PeriodEnd   string
	Rows        []detailRow
}

func typeLabel(reportType string) string {
	switch reportType {
	case report.TypeDaily:
		return "Harian"
	case report.TypeWeekly:
		return "Mingguan"
	default:
		return "Bulanan"
	}
}

func renderSummary(recap report.RecapResponse) (string, error) {
	var buf bytes.Buffer
	err := summaryTemplate.Execute(&buf, summaryView{
		TypeLabel:   typeLabel(recap.Type),
		PeriodStart: recap.PeriodStart,
		PeriodEnd:   recap.PeriodEnd,
		WorkingDays: recap.WorkingDays,
		Rows:        recap.Rows,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render summary report: %w", err)
	}
	return buf.String(), nil
}

func (s *RecapServiceImpl) renderDetail(ctx context.Context, recap report.RecapResponse) (string, error) {
	sessions, err := s.sessions.ListByDateRange(ctx, nil, recap.PeriodStart, recap.PeriodEnd)
	if err != nil {
		return "", fmt.Errorf("failed to list sessions: %w", err)
	}

	loc := s.classifier.Location()
	clock := func(t *time.Time) string {
		if t == nil {
			return "-"
		}
		return t.In(loc).Format("15:04")
	}

	rows := make([]detailRow, 0, len(sessions))
	for _, session := range sessions {
		name := session.EmployeeID
		if session.EmployeeName != nil {
			name = *session.EmployeeName
		}
		notes := ""
		if session.Notes != nil {
			notes = *session.Notes
		}
		rows = append(rows, detailRow{
			Date:          session.Date.Format("2006-01-02"),
			Name:          name,
			SessionNumber: session.SessionNumber,
			CheckIn:       clock(session.CheckIn),
			BreakStart:    clock(session.BreakStart),
			BreakEnd:      clock(session.BreakEnd),
			CheckOut:      clock(session.CheckOut),
			Status:        session.Status,
			Notes:         notes,
		})
	}

	var buf bytes.Buffer
	err = detailTemplate.Execute(&buf, detailView{
		TypeLabel:   typeLabel(recap.Type),
		PeriodStart: recap.PeriodStart,
		PeriodEnd:   recap.PeriodEnd,
		Rows:        rows,
	})
	if err != nil {
		return "", fmt.Errorf("failed to render detail report: %w", err)
	}
	return buf.String(), nil
}
