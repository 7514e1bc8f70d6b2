package utils

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// ParseDate converte uma data no formato YYYY-MM-DD. String vazia retorna nil.
func ParseDate(dateStr string) (*time.Time, error) {
	if dateStr == "" {
		return nil, nil
	}

	date, err := time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, fmt.Errorf("data inválida %q: esperado %s", dateStr, dateLayout)
	}

	return &date, nil
}

// EndOfDay retorna o último instante do dia informado
func EndOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), t.Location())
}

// DaysAgo retorna o início do dia `days` dias antes de `now`
func DaysAgo(now time.Time, days int) time.Time {
	start := now.AddDate(0, 0, -days)
	return time.Date(start.Year(), start.Month(), start.Day(), 0, 0, 0, 0, now.Location())
}
