package statemachine

import (
	"errors"

	"self-order-api/models"
)

// Transition defines a valid order state change
type Transition struct {
	From models.OrderStatus
	To   models.OrderStatus
}

// validTransitions is the authoritative state machine definition: strictly
// linear, no skips, no backward edges, no cancellation for orders.
var validTransitions = []Transition{
	// Chef accepts the order and starts cooking
	{From: models.StatusPending, To: models.StatusCooking},
	// Chef marks the order ready for the table
	{From: models.StatusCooking, To: models.StatusReady},
	// Chef confirms the order was delivered
	{From: models.StatusReady, To: models.StatusCompleted},
}

// Build a lookup map for O(1) validation
var transitionMap = func() map[Transition]bool {
	m := make(map[Transition]bool)
	for _, t := range validTransitions {
		m[t] = true
	}
	return m
}()

// Next returns the single status that follows the given one, or false when
// the status is terminal.
func Next(status models.OrderStatus) (models.OrderStatus, bool) {
	for _, t := range validTransitions {
		if t.From == status {
			return t.To, true
		}
	}
	return "", false
}

// CanTransition checks whether an order may move from one state to another.
// The chain is linear, so any request that is not the immediate next edge is
// rejected with a descriptive error.
func CanTransition(from, to models.OrderStatus) error {
	if transitionMap[Transition{From: from, To: to}] {
		return nil
	}
	next, ok := Next(from)
	if !ok {
		return errors.New("invalid transition: " + string(from) + " is a terminal state")
	}
	return errors.New(
		"invalid transition: " + string(from) + " → " + string(to) +
			" is not allowed; the only valid next state is " + string(next),
	)
}

// GetAllTransitions returns the full state machine for documentation
func GetAllTransitions() []Transition {
	return validTransitions
}
