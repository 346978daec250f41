// Package events provides domain event definitions for decoupled,
// event-driven communication between modules.
// Infrastructure (Bus, Handler) is in platform/events.
package events

import (
	"time"

	"realty_portal_backend/platform/events"
)

// Re-export platform types for convenience
type (
	Event       = events.Event
	Bus         = events.Bus
	Handler     = events.Handler
	HandlerFunc = events.HandlerFunc
	BaseEvent   = events.BaseEvent
)

// Re-export platform functions
var NewBaseEvent = events.NewBaseEvent

// =============================================================================
// Lead Domain Events
// =============================================================================

// LeadCreated is published when a new lead is stored.
type LeadCreated struct {
	BaseEvent
	LeadID int64  `json:"leadId"`
	Name   string `json:"name"`
	Source string `json:"source"`
}

func (e LeadCreated) EventName() string { return "leads.lead.created" }

// LeadStageChanged is published when a lead moves to a different funnel stage.
type LeadStageChanged struct {
	BaseEvent
	LeadID   int64 `json:"leadId"`
	FunnelID int64 `json:"funnelId"`
	StageID  int64 `json:"stageId"`
}

func (e LeadStageChanged) EventName() string { return "leads.lead.stage_changed" }

// ContactMessageReceived is published when the public contact form is submitted.
type ContactMessageReceived struct {
	BaseEvent
	LeadID  int64  `json:"leadId"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone"`
	Message string `json:"message"`
}

func (e ContactMessageReceived) EventName() string { return "leads.contact.received" }

// =============================================================================
// Task Domain Events
// =============================================================================

// TaskDueSoon is published by the scheduler worker when a task reminder fires.
type TaskDueSoon struct {
	BaseEvent
	TaskID  int64     `json:"taskId"`
	Title   string    `json:"title"`
	DueDate time.Time `json:"dueDate"`
}

func (e TaskDueSoon) EventName() string { return "tasks.task.due_soon" }
