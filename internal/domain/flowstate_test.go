package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNextFlowState(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    FlowState
	}{
		{name: "подтверждено", outcome: ConfirmedOutcome(), want: FlowSuccess},
		{name: "отменено", outcome: CancelledOutcome(), want: FlowSuccess},
		{name: "ожидает подтверждения - это успех, не ошибка", outcome: PendingApprovalOutcome("слот занят"), want: FlowSuccess},
		{name: "отклонено", outcome: RejectedOutcome("нет мест"), want: FlowError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next, err := NextFlowState(FlowReview, tt.outcome)

			require.NoError(t, err)
			assert.Equal(t, tt.want, next)
			assert.True(t, next.IsTerminal())
		})
	}
}

func TestNextFlowState_TerminalStatesHaveNoTransitions(t *testing.T) {
	for _, state := range []FlowState{FlowSuccess, FlowError} {
		t.Run(string(state), func(t *testing.T) {
			next, err := NextFlowState(state, ConfirmedOutcome())

			assert.ErrorIs(t, err, ErrInvalidFlowTransition)
			assert.Equal(t, state, next)
		})
	}
}

func TestOutcome_Classification(t *testing.T) {
	assert.True(t, ConfirmedOutcome().IsAccepted())
	assert.True(t, PendingApprovalOutcome("msg").IsAccepted())
	assert.False(t, PendingApprovalOutcome("msg").IsFailure())
	assert.True(t, RejectedOutcome("причина").IsFailure())
}

func TestRejectedOutcome_EmptyReasonFallsBackToGenericMessage(t *testing.T) {
	outcome := RejectedOutcome("")

	assert.Equal(t, GenericRejectionMessage, outcome.Message)
}
