package create_appointment

import (
	"time"

	"github.com/m04kA/SMC-AppointmentService/internal/domain"
	"github.com/m04kA/SMC-AppointmentService/pkg/types"
)

// PendingApprovalMessage сообщение для записи, ожидающей подтверждения
const PendingApprovalMessage = "Время уже занято, запись передана бизнесу на подтверждение"

// Request модель запроса на создание записи
type Request struct {
	Session        domain.Session   // Сессия вызывающего пользователя
	ProfessionalID int64            // ID профессионала
	ServiceID      int64            // ID услуги
	Date           time.Time        // Дата записи (без времени)
	StartTime      types.TimeString // Время начала, формат HH:MM
	ClientID       *int64           // ID клиента при записи сотрудником от имени клиента
	Notes          *string          // Комментарий клиента
}

// Response модель ответа на создание записи
type Response struct {
	Appointment *domain.Appointment // Созданная запись
	Outcome     domain.Outcome      // Итог бронирования: confirmed или pending_approval
}
