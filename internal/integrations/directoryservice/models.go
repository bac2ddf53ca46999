package directoryservice

// Business модель бизнеса из DirectoryService
type Business struct {
	ID       int64   `json:"id"`
	Name     string  `json:"name"`
	AdminIDs []int64 `json:"admin_ids"`
	StaffIDs []int64 `json:"staff_ids"`
}

// Professional модель профессионала из DirectoryService
type Professional struct {
	ID          int64  `json:"id"`
	BusinessID  int64  `json:"business_id"`
	UserID      int64  `json:"user_id"`
	DisplayName string `json:"display_name"`
	Active      bool   `json:"active"`
}

// Service модель услуги из DirectoryService
type Service struct {
	ID              int64    `json:"id"`
	BusinessID      int64    `json:"business_id"`
	Name            string   `json:"name"`
	DurationMinutes int      `json:"duration_minutes"`
	Price           *float64 `json:"price,omitempty"`
	ProfessionalIDs []int64  `json:"professional_ids"`
}

// ErrorResponse модель ошибки от DirectoryService
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// IsAdmin возвращает true, если пользователь является администратором бизнеса
func (b *Business) IsAdmin(userID int64) bool {
	for _, id := range b.AdminIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// IsStaff возвращает true, если пользователь является сотрудником бизнеса
// Администраторы также считаются сотрудниками
func (b *Business) IsStaff(userID int64) bool {
	if b.IsAdmin(userID) {
		return true
	}
	for _, id := range b.StaffIDs {
		if id == userID {
			return true
		}
	}
	return false
}

// OfferedBy возвращает true, если услуга оказывается указанным профессионалом
func (s *Service) OfferedBy(professionalID int64) bool {
	for _, id := range s.ProfessionalIDs {
		if id == professionalID {
			return true
		}
	}
	return false
}
