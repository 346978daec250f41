// Package ports defines the interfaces the leads module needs from other
// bounded contexts. Adapters in internal/adapters satisfy them.
package ports

import "context"

// StageRef identifies a funnel stage and its owning funnel.
type StageRef struct {
	ID       int64
	FunnelID int64
}

// FunnelDirectory resolves funnel and stage references for lead assignment.
type FunnelDirectory interface {
	// FunnelExists reports whether the funnel id resolves.
	FunnelExists(ctx context.Context, id int64) (bool, error)
	// GetStageRef resolves a stage id to its owning funnel.
	// Returns a not-found domain error for unknown ids.
	GetStageRef(ctx context.Context, id int64) (StageRef, error)
}
