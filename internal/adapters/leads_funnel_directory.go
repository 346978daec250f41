// Package adapters wires bounded contexts together by adapting one module's
// service to another module's port interfaces.
package adapters

import (
	"context"

	funnelservice "realty_portal_backend/internal/funnels/service"
	"realty_portal_backend/internal/leads/ports"
)

// LeadsFunnelDirectory adapts the funnels service to the leads module's
// FunnelDirectory port.
type LeadsFunnelDirectory struct {
	funnels *funnelservice.Service
}

// NewLeadsFunnelDirectory creates the adapter.
func NewLeadsFunnelDirectory(funnels *funnelservice.Service) *LeadsFunnelDirectory {
	return &LeadsFunnelDirectory{funnels: funnels}
}

// FunnelExists reports whether the funnel id resolves.
func (a *LeadsFunnelDirectory) FunnelExists(ctx context.Context, id int64) (bool, error) {
	return a.funnels.FunnelExists(ctx, id)
}

// GetStageRef resolves a stage id to its owning funnel.
func (a *LeadsFunnelDirectory) GetStageRef(ctx context.Context, id int64) (ports.StageRef, error) {
	ref, err := a.funnels.GetStageRef(ctx, id)
	if err != nil {
		return ports.StageRef{}, err
	}
	return ports.StageRef{ID: ref.ID, FunnelID: ref.FunnelID}, nil
}

// Compile-time check that the adapter satisfies the port.
var _ ports.FunnelDirectory = (*LeadsFunnelDirectory)(nil)
