package services

import (
	"github.com/pedeai/pedeai-backend/internal/apperr"
	"github.com/pedeai/pedeai-backend/internal/models"
)

// The status machine is a blocklist, not a forward-only chain: any
// non-terminal status may move to any other, except that an order already
// out for delivery cannot be cancelled (it must be refused or completed).

var orderStatuses = map[string]struct{}{
	models.OrderStatusProcessing: {},
	models.OrderStatusPreparing:  {},
	models.OrderStatusEnRoute:    {},
	models.OrderStatusCompleted:  {},
	models.OrderStatusCanceled:   {},
	models.OrderStatusRefused:    {},
}

var terminalStatuses = map[string]struct{}{
	models.OrderStatusCompleted: {},
	models.OrderStatusCanceled:  {},
	models.OrderStatusRefused:   {},
}

func IsValidOrderStatus(status string) bool {
	_, ok := orderStatuses[status]
	return ok
}

func IsTerminalStatus(status string) bool {
	_, ok := terminalStatuses[status]
	return ok
}

// CheckTransition validates the edge from -> to, returning a
// StateTransitionError for terminal origins and the forbidden
// em_rota -> cancelado edge.
func CheckTransition(from, to string) error {
	if !IsValidOrderStatus(to) {
		return apperr.Validationf("unknown order status %q", to)
	}
	if IsTerminalStatus(from) {
		return &apperr.StateTransitionError{From: from, To: to}
	}
	if from == models.OrderStatusEnRoute && to == models.OrderStatusCanceled {
		return &apperr.StateTransitionError{From: from, To: to}
	}
	return nil
}
