// Package export renders catalogue data for download: participant lists as
// spreadsheet-friendly CSV and the public calendar as iCalendar.
package export

import (
	"bufio"
	"io"
	"strings"

	"github.com/bariskaantoprak-ui/ITSO/internal/model"
)

// StatusConfirmed is the status column value for every participant.
const StatusConfirmed = "Onaylandı"

const (
	bom        = "\uFEFF"
	csvHeader  = "Ad Soyad,Firma Adı,E-posta,Durum"
	titleRunes = 30
	fileSuffix = "_katilimcilar.csv"
)

// CSVContentType is the Content-Type for WriteRegistrationsCSV output.
const CSVContentType = "text/csv; charset=utf-8"

// WriteRegistrationsCSV writes the participant list. Values are always
// quoted, and the BOM lets spreadsheet tools detect UTF-8.
func WriteRegistrationsCSV(w io.Writer, regs []model.Registration) error {
	bw := bufio.NewWriter(w)
	bw.WriteString(bom)
	bw.WriteString(csvHeader)
	for _, r := range regs {
		bw.WriteByte('\n')
		bw.WriteString(quote(r.FullName))
		bw.WriteByte(',')
		bw.WriteString(quote(r.CompanyName))
		bw.WriteByte(',')
		bw.WriteString(quote(r.Email))
		bw.WriteByte(',')
		bw.WriteString(quote(StatusConfirmed))
	}
	return bw.Flush()
}

func quote(s string) string {
	return `"` + strings.ReplaceAll(s, `"`, `""`) + `"`
}

// CSVFilename derives the download name from the event title.
func CSVFilename(title string) string {
	r := []rune(title)
	if len(r) > titleRunes {
		r = r[:titleRunes]
	}
	for i, c := range r {
		if !(c >= 'a' && c <= 'z' || c >= 'A' && c <= 'Z' || c >= '0' && c <= '9') {
			r[i] = '_'
		}
	}
	return string(r) + fileSuffix
}
