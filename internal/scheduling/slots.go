package scheduling

import (
	"time"

	"github.com/m04kA/SMC-SalonBooking/internal/domain"
	"github.com/m04kA/SMC-SalonBooking/pkg/types"
)

// GenerateSlots возвращает начала слотов на дату по расписанию дня.
//
// Слоты идут с шагом SlotDurationMinutes от времени открытия, пока начало
// строго раньше закрытия (конец слота может выходить за время закрытия).
// Для сегодняшней даты исключаются слоты, начало которых <= текущего времени
// (с точностью до минуты). Закрытый день, отсутствующее расписание, расписание
// другого дня недели или open >= close дают пустой список, а не ошибку.
func GenerateSlots(schedule *domain.DaySchedule, date time.Time, now time.Time) []types.TimeString {
	slots := make([]types.TimeString, 0)

	if schedule == nil || !schedule.IsOpen {
		return slots
	}
	if schedule.Weekday() != date.Weekday() {
		return slots
	}
	if schedule.SlotDurationMinutes <= 0 {
		return slots
	}

	open := schedule.OpeningTime.Minutes()
	closing := schedule.ClosingTime.Minutes()
	if open < 0 || closing < 0 || open >= closing {
		return slots
	}

	// Для сегодняшнего дня слоты должны начинаться строго после текущей минуты
	earliest := open
	if domain.SameDate(date, now) {
		nowMinutes := now.Hour()*60 + now.Minute()
		if nowMinutes+1 > earliest {
			earliest = nowMinutes + 1
		}
	}

	for start := open; start < closing; start += schedule.SlotDurationMinutes {
		if start < earliest {
			continue
		}
		slot, err := types.NewTimeStringFromMinutes(start)
		if err != nil {
			break
		}
		slots = append(slots, slot)
	}

	return slots
}
