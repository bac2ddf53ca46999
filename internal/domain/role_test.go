package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRole(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Role
		wantErr bool
	}{
		{name: "клиент", input: "client", want: RoleClient},
		{name: "профессионал", input: "professional", want: RoleProfessional},
		{name: "сотрудник", input: "staff", want: RoleStaff},
		{name: "администратор", input: "admin", want: RoleAdmin},
		{name: "пустая строка трактуется как клиент", input: "", want: RoleClient},
		{name: "неизвестная роль", input: "superuser", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseRole(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, ErrUnknownRole)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRole_Permissions(t *testing.T) {
	// Клиент: только собственные записи
	assert.False(t, RoleClient.CanBookForOthers())
	assert.False(t, RoleClient.CanViewAgenda())
	assert.False(t, RoleClient.CanManageOwnSchedule())
	assert.False(t, RoleClient.CanCancelForBusiness())
	assert.False(t, RoleClient.CanManageBookingRules())

	// Профессионал: свое расписание и своя повестка
	assert.True(t, RoleProfessional.CanManageOwnSchedule())
	assert.True(t, RoleProfessional.CanViewAgenda())
	assert.False(t, RoleProfessional.CanManageAnySchedule())
	assert.False(t, RoleProfessional.CanBookForOthers())
	assert.False(t, RoleProfessional.CanManageBookingRules())

	// Сотрудник: операции с записями от имени бизнеса
	assert.True(t, RoleStaff.CanBookForOthers())
	assert.True(t, RoleStaff.CanViewAgenda())
	assert.True(t, RoleStaff.CanCancelForBusiness())
	assert.False(t, RoleStaff.CanManageOwnSchedule())
	assert.False(t, RoleStaff.CanManageBookingRules())

	// Администратор: все разрешения
	assert.True(t, RoleAdmin.CanBookForOthers())
	assert.True(t, RoleAdmin.CanManageAnySchedule())
	assert.True(t, RoleAdmin.CanCancelForBusiness())
	assert.True(t, RoleAdmin.CanManageBookingRules())
}
