package services

import (
	"math"

	models "github.com/glkeru/safedrive/internal/models"
)

// Штрафы по типам событий
var eventPenalties = map[models.EventType]float64{
	models.EventHardBrake:         5,
	models.EventRapidAcceleration: 5,
	models.EventSpeeding:          10,
	models.EventPhoneUsage:        15,
	models.EventSharpTurn:         7,
}

// Расчет рейтинга поездки и заработанных баллов.
// Чистая функция: одинаковые входы всегда дают одинаковый результат,
// порядок событий не влияет на сумму штрафов.
func ComputeScore(distance float64, events []models.DrivingEvent) (score int, points int64) {
	raw := 100.0
	for _, event := range events {
		penalty := eventPenalties[event.Type] // неизвестный тип = 0
		multiplier := 1.0
		if event.Severity != nil {
			multiplier = float64(*event.Severity) / 5
		}
		raw -= penalty * multiplier
	}

	if raw < 0 {
		raw = 0
	}
	if raw > 100 {
		raw = 100
	}
	score = int(math.Round(raw))

	points = int64(math.Floor(float64(score) / 100 * distance / 10))
	return score, points
}
