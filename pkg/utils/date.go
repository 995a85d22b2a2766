package utils

import (
	"fmt"
	"time"
)

const (
	PresetToday     = "today"
	PresetYesterday = "yesterday"
	PresetLast7d    = "last_7d"
	PresetLast14d   = "last_14d"
	PresetLast30d   = "last_30d"
	PresetThisMonth = "this_month"
	PresetLastMonth = "last_month"
)

var DatePresets = []string{
	PresetToday, PresetYesterday, PresetLast7d, PresetLast14d,
	PresetLast30d, PresetThisMonth, PresetLastMonth,
}

func StartOfDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
}

// DateRangeForPreset converte o preset no intervalo fechado [start, end] em dias.
// Os presets "last_Nd" terminam ontem, como na API de anúncios.
func DateRangeForPreset(preset string, now time.Time) (time.Time, time.Time, error) {
	today := StartOfDay(now)
	yesterday := today.AddDate(0, 0, -1)

	switch preset {
	case PresetToday:
		return today, today, nil
	case PresetYesterday:
		return yesterday, yesterday, nil
	case PresetLast7d:
		return today.AddDate(0, 0, -7), yesterday, nil
	case PresetLast14d:
		return today.AddDate(0, 0, -14), yesterday, nil
	case PresetLast30d:
		return today.AddDate(0, 0, -30), yesterday, nil
	case PresetThisMonth:
		return time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location()), today, nil
	case PresetLastMonth:
		firstOfMonth := time.Date(today.Year(), today.Month(), 1, 0, 0, 0, 0, today.Location())
		return firstOfMonth.AddDate(0, -1, 0), firstOfMonth.AddDate(0, 0, -1), nil
	default:
		return time.Time{}, time.Time{}, fmt.Errorf("preset de data desconhecido: %q", preset)
	}
}
