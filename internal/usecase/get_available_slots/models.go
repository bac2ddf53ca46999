package get_available_slots

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// Request модель запроса на получение доступных слотов
type Request struct {
	ProfessionalID int64     // ID профессионала
	ServiceID      int64     // ID услуги (определяет длительность слота)
	Date           time.Time // Дата для получения слотов (без времени)
}

// Response модель ответа со списком доступных слотов
type Response struct {
	Date            time.Time          // Запрошенная дата
	EffectiveDate   time.Time          // Фактическая дата слотов (может быть сдвинута на день при rollover)
	ProfessionalID  int64              // ID профессионала
	ServiceID       int64              // ID услуги
	DurationMinutes int                // Длительность слота (из услуги)
	Slots           []types.TimeString // Времена начала по возрастанию, формат HH:MM
}

// RolledOver возвращает true, если слоты выданы не на запрошенную дату
func (r *Response) RolledOver() bool {
	return !r.Date.Equal(r.EffectiveDate)
}
