package export

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"github.com/brightprep/studycal-api/internal/models"
)

// ICSExporter renders a study program into an iCalendar feed that most
// calendar apps can import.
type ICSExporter struct{}

// NewICSExporter builds an ICS exporter.
func NewICSExporter() *ICSExporter {
	return &ICSExporter{}
}

const (
	icsTimeLayout = "20060102T150405"
	dayStartHour  = 9
)

// Render emits one VEVENT per study block. Blocks on a day are stacked
// back-to-back starting at 09:00; break entries are skipped so the calendar
// only carries actual study sessions.
func (e *ICSExporter) Render(program *models.StudyProgram) ([]byte, error) {
	if program == nil || len(program.Weeks) == 0 {
		return nil, fmt.Errorf("ics requires a program with at least one week")
	}

	buf := &bytes.Buffer{}
	writeLine(buf, "BEGIN:VCALENDAR")
	writeLine(buf, "VERSION:2.0")
	writeLine(buf, "PRODID:-//StudyCal//Study Program//TR")
	writeLine(buf, "CALSCALE:GREGORIAN")
	writeLine(buf, "METHOD:PUBLISH")
	writeLine(buf, "X-WR-CALNAME:"+escapeText(program.Title))

	stamp := program.CreatedAt.UTC().Format(icsTimeLayout) + "Z"
	sequence := 0
	for _, day := range program.FlattenDays() {
		date, err := time.Parse(models.DateLayout, day.Date)
		if err != nil {
			return nil, fmt.Errorf("parse day date %q: %w", day.Date, err)
		}
		cursor := time.Date(date.Year(), date.Month(), date.Day(), dayStartHour, 0, 0, 0, time.UTC)

		for _, block := range day.Subjects {
			if block.IsBreak {
				cursor = cursor.Add(time.Duration(block.Duration) * time.Minute)
				continue
			}
			end := cursor.Add(time.Duration(block.Duration) * time.Minute)
			sequence++

			writeLine(buf, "BEGIN:VEVENT")
			writeLine(buf, fmt.Sprintf("UID:%s-%d@studycal", program.ID, sequence))
			writeLine(buf, "DTSTAMP:"+stamp)
			writeLine(buf, "DTSTART:"+cursor.Format(icsTimeLayout))
			writeLine(buf, "DTEND:"+end.Format(icsTimeLayout))
			writeLine(buf, "SUMMARY:"+escapeText(block.Name))
			if len(block.Topics) > 0 {
				writeLine(buf, "DESCRIPTION:"+escapeText(strings.Join(block.Topics, ", ")))
			}
			writeLine(buf, "END:VEVENT")

			cursor = end
		}
	}
	writeLine(buf, "END:VCALENDAR")

	return buf.Bytes(), nil
}

// writeLine terminates with CRLF as RFC 5545 requires.
func writeLine(buf *bytes.Buffer, line string) {
	buf.WriteString(line)
	buf.WriteString("\r\n")
}

func escapeText(value string) string {
	replacer := strings.NewReplacer(
		"\\", "\\\\",
		";", "\\;",
		",", "\\,",
		"\n", "\\n",
	)
	return replacer.Replace(value)
}
