package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// slotsOnDate функция получения слотов на конкретную дату
type slotsOnDate func(date time.Time) ([]types.TimeString, error)

// resolveWithRollover возвращает слоты на запрошенную дату, а при пустом
// результате на сегодняшнюю дату пробует ровно один раз следующий день
//
// Асимметрия намеренная: "на сегодня слотов не осталось - предложи завтра".
// Для любой другой даты пустой результат возвращается как есть, без
// перехода вперед. Если и завтра пусто, возвращается исходная дата
// с пустым списком
func resolveWithRollover(
	requestDate time.Time,
	now time.Time,
	slotsFor slotsOnDate,
) (time.Time, []types.TimeString, error) {
	slots, err := slotsFor(requestDate)
	if err != nil {
		return requestDate, nil, err
	}

	if len(slots) > 0 || !isSameDay(requestDate, now) {
		return requestDate, slots, nil
	}

	nextDate := requestDate.AddDate(0, 0, 1)
	nextSlots, err := slotsFor(nextDate)
	if err != nil {
		return requestDate, nil, err
	}

	if len(nextSlots) == 0 {
		return requestDate, slots, nil
	}

	return nextDate, nextSlots, nil
}
