package utils

import (
	"fmt"
	"math"
)

// FormatDistance форматирует дистанцию для отображения:
// до 1 км - целые метры ("450 m"), от 1 км - километры с одним
// знаком ("3.2 km").
func FormatDistance(meters float64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", int(math.Round(meters)))
	}
	return fmt.Sprintf("%.1f km", meters/1000)
}

// FormatDuration форматирует длительность: "2h 5min" от часа и выше,
// иначе "45 min". Минуты усекаются, не округляются.
func FormatDuration(seconds float64) string {
	totalMinutes := int(seconds / 60)
	if totalMinutes >= 60 {
		hours := totalMinutes / 60
		minutes := totalMinutes % 60
		return fmt.Sprintf("%dh %dmin", hours, minutes)
	}
	return fmt.Sprintf("%d min", totalMinutes)
}
