package report

import (
	"testing"
	"time"
)

func TestMonthName(t *testing.T) {
	tests := []struct {
		month int
		want  string
	}{
		{1, "Enero"},
		{9, "Septiembre"},
		{12, "Diciembre"},
		{0, ""},
		{13, ""},
	}
	for _, tt := range tests {
		if got := MonthName(tt.month); got != tt.want {
			t.Errorf("MonthName(%d) = %q, want %q", tt.month, got, tt.want)
		}
	}
}

func TestFormatDate(t *testing.T) {
	when := time.Date(2025, time.January, 5, 0, 0, 0, 0, time.UTC)
	if got := FormatDate(when); got != "05 de Enero de 2025" {
		t.Errorf("FormatDate = %q", got)
	}
	if got := FormatHeaderDate(when); got != "05 de enero de 2025" {
		t.Errorf("FormatHeaderDate = %q", got)
	}
}
