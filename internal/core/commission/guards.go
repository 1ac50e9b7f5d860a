// Package commission contains the pure business logic for the commission workflow.
// This is part of the Functional Core - no I/O, only pure functions.
package commission

import (
	"fmt"

	"github.com/example/easel/internal/models"
)

// GuardResult represents the outcome of a guard evaluation.
type GuardResult struct {
	Allowed bool
	Reason  string // Human-readable reason (populated when not allowed)
}

// Error returns the guard result as an error if not allowed, nil otherwise.
func (r GuardResult) Error() error {
	if r.Allowed {
		return nil
	}
	return fmt.Errorf("%s", r.Reason)
}

// TransitionContext provides context for workflow transition guards.
type TransitionContext struct {
	CommissionID string
	From         models.CommissionStatus
	To           models.CommissionStatus
}

var allowedTransitions = map[models.CommissionStatus]models.CommissionStatus{
	models.StatusPending:    models.StatusInProgress,
	models.StatusInProgress: models.StatusCompleted,
	models.StatusCompleted:  models.StatusPending,
}

// CanTransition evaluates whether a commission can move between workflow states.
// Rule: Pending -> In Progress -> Completed, and Completed -> Pending to reopen.
func CanTransition(ctx TransitionContext) GuardResult {
	if next, ok := allowedTransitions[ctx.From]; ok && next == ctx.To {
		return GuardResult{Allowed: true}
	}
	return GuardResult{
		Allowed: false,
		Reason:  fmt.Sprintf("Cannot move commission %s from %q to %q", ctx.CommissionID, ctx.From, ctx.To),
	}
}

// DeleteClientContext provides context for client deletion guards.
// Populated by the caller with the pre-fetched commission count.
type DeleteClientContext struct {
	ClientID        string
	CommissionCount int
	ForceDelete     bool
}

// CanDeleteClient evaluates whether a client can be deleted.
// Rule: Clients with commissions require --force.
func CanDeleteClient(ctx DeleteClientContext) GuardResult {
	if ctx.CommissionCount > 0 && !ctx.ForceDelete {
		return GuardResult{
			Allowed: false,
			Reason:  fmt.Sprintf("Client %s has %d commissions. Use --force to delete anyway", ctx.ClientID, ctx.CommissionCount),
		}
	}
	return GuardResult{Allowed: true}
}
