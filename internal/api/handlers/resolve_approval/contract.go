package resolve_approval

import (
	"context"

	"github.com/m04kA/SMC-AppointmentService/internal/service/appointments/models"
)

type AppointmentService interface {
	ResolveApproval(ctx context.Context, appointmentID int64, req *models.ResolveApprovalRequest) (*models.ResolveApprovalResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
