package report

import (
	"fmt"
	"strings"
	"time"
)

// monthNames indexes Spanish month names by time.Month value
var monthNames = [13]string{
	"",
	"Enero", "Febrero", "Marzo", "Abril", "Mayo", "Junio",
	"Julio", "Agosto", "Septiembre", "Octubre", "Noviembre", "Diciembre",
}

// MonthName returns the Spanish name for a 1-based month, empty when out
// of range.
func MonthName(month int) string {
	if month < 1 || month > 12 {
		return ""
	}
	return monthNames[month]
}

// FormatDate renders a date in Spanish long form, e.g. "02 de Marzo de 2025"
func FormatDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), MonthName(int(t.Month())), t.Year())
}

// FormatHeaderDate renders the running-header date with a lowercase month,
// e.g. "02 de marzo de 2025".
func FormatHeaderDate(t time.Time) string {
	return fmt.Sprintf("%02d de %s de %d", t.Day(), strings.ToLower(MonthName(int(t.Month()))), t.Year())
}
