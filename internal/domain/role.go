package domain

import (
	"errors"
	"fmt"
)

// Role роль пользователя в системе (закрытый набор вариантов)
type Role string

const (
	RoleClient       Role = "client"
	RoleProfessional Role = "professional"
	RoleStaff        Role = "staff"
	RoleAdmin        Role = "admin"
)

// ErrUnknownRole возвращается при неизвестном значении роли
var ErrUnknownRole = errors.New("unknown role")

// ParseRole валидирует и конвертирует строку в Role
// Пустая строка трактуется как клиент
func ParseRole(s string) (Role, error) {
	switch Role(s) {
	case "":
		return RoleClient, nil
	case RoleClient, RoleProfessional, RoleStaff, RoleAdmin:
		return Role(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownRole, s)
	}
}

// rolePermissions набор разрешений роли
// Ветвление по ролям идет через эту таблицу, а не через сравнение строк в коде
type rolePermissions struct {
	bookForOthers      bool // запись от имени клиента
	manageOwnSchedule  bool // изменение собственного недельного расписания
	manageAnySchedule  bool // изменение расписания любого профессионала бизнеса
	viewAgenda         bool // просмотр записей профессионала
	cancelForBusiness  bool // отмена чужих записей от имени бизнеса
	manageBookingRules bool // изменение политики бронирования
}

var permissionsByRole = map[Role]rolePermissions{
	RoleClient: {},
	RoleProfessional: {
		manageOwnSchedule: true,
		viewAgenda:        true,
	},
	RoleStaff: {
		bookForOthers:     true,
		viewAgenda:        true,
		cancelForBusiness: true,
	},
	RoleAdmin: {
		bookForOthers:      true,
		manageOwnSchedule:  true,
		manageAnySchedule:  true,
		viewAgenda:         true,
		cancelForBusiness:  true,
		manageBookingRules: true,
	},
}

// CanBookForOthers разрешена ли запись от имени другого клиента
func (r Role) CanBookForOthers() bool {
	return permissionsByRole[r].bookForOthers
}

// CanManageOwnSchedule разрешено ли изменение собственного расписания
func (r Role) CanManageOwnSchedule() bool {
	return permissionsByRole[r].manageOwnSchedule
}

// CanManageAnySchedule разрешено ли изменение расписания других профессионалов
func (r Role) CanManageAnySchedule() bool {
	return permissionsByRole[r].manageAnySchedule
}

// CanViewAgenda разрешен ли просмотр записей профессионала
func (r Role) CanViewAgenda() bool {
	return permissionsByRole[r].viewAgenda
}

// CanCancelForBusiness разрешена ли отмена чужих записей
func (r Role) CanCancelForBusiness() bool {
	return permissionsByRole[r].cancelForBusiness
}

// CanManageBookingRules разрешено ли изменение политики бронирования
func (r Role) CanManageBookingRules() bool {
	return permissionsByRole[r].manageBookingRules
}

// Session контекст аутентифицированного пользователя
// Передается явно через context, а не через глобальное состояние
type Session struct {
	UserID int64
	Role   Role
}
