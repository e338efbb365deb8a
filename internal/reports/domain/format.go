package domain

import (
	"fmt"
	"strings"
	"time"

	"github.com/ecousadba4-pixel/mad-podolsk-api/internal/period"
)

var monthNamesNominative = [...]string{
	"Январь", "Февраль", "Март", "Апрель", "Май", "Июнь",
	"Июль", "Август", "Сентябрь", "Октябрь", "Ноябрь", "Декабрь",
}

var monthNamesGenitive = [...]string{
	"января", "февраля", "марта", "апреля", "мая", "июня",
	"июля", "августа", "сентября", "октября", "ноября", "декабря",
}

// FormatMonthRussian renders a month title like "Ноябрь 2025".
func FormatMonthRussian(m period.Month) string {
	start := m.Start()
	return fmt.Sprintf("%s %d", monthNamesNominative[start.Month()-1], start.Year())
}

// FormatDateRussian renders a date like "27 ноября 2025".
func FormatDateRussian(t time.Time) string {
	return fmt.Sprintf("%d %s %d", t.Day(), monthNamesGenitive[t.Month()-1], t.Year())
}

// FormatAmount renders an amount with space-separated thousands and two
// decimals, e.g. "1 234 567.89".
func FormatAmount(v float64) string {
	return formatNumber(v, 2)
}

// FormatVolume renders a work volume with two decimals.
func FormatVolume(v float64) string {
	return formatNumber(v, 2)
}

func formatNumber(v float64, decimals int) string {
	s := fmt.Sprintf("%.*f", decimals, v)

	sign := ""
	if strings.HasPrefix(s, "-") {
		sign = "-"
		s = s[1:]
	}

	intPart := s
	fracPart := ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, fracPart = s[:i], s[i:]
	}

	var b strings.Builder
	for i, r := range intPart {
		if i > 0 && (len(intPart)-i)%3 == 0 {
			b.WriteByte(' ')
		}
		b.WriteRune(r)
	}
	return sign + b.String() + fracPart
}
