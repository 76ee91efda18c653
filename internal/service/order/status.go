package order

import (
	"fmt"

	"cafe-storefront/internal/domain"
)

// statusOrder is the normal forward progression. Cancellation is handled
// separately and is only reachable early in the flow.
var statusOrder = []domain.OrderStatus{
	domain.StatusPending,
	domain.StatusProcessing,
	domain.StatusPreparing,
	domain.StatusOutForDelivery,
	domain.StatusDelivered,
}

// StatusLabels maps canonical statuses to the labels shown in tracking.
var StatusLabels = map[domain.OrderStatus]string{
	domain.StatusPending:        "Pending",
	domain.StatusProcessing:     "Confirmed",
	domain.StatusPreparing:      "Preparing",
	domain.StatusOutForDelivery: "Out for Delivery",
	domain.StatusDelivered:      "Delivered",
	domain.StatusCancelled:      "Cancelled",
}

func statusIndex(s domain.OrderStatus) int {
	for i, v := range statusOrder {
		if v == s {
			return i
		}
	}
	return -1
}

// transitions is the single source of truth for allowed status moves. Normal
// flow advances one step at a time; assigning a courier jumps processing
// straight to out_for_delivery; cancellation is only reachable from pending
// or processing.
var transitions = map[domain.OrderStatus][]domain.OrderStatus{
	domain.StatusPending:        {domain.StatusProcessing, domain.StatusCancelled},
	domain.StatusProcessing:     {domain.StatusPreparing, domain.StatusOutForDelivery, domain.StatusCancelled},
	domain.StatusPreparing:      {domain.StatusOutForDelivery},
	domain.StatusOutForDelivery: {domain.StatusDelivered},
}

// Transition reports whether an order may move from one status to the other.
func Transition(from, to domain.OrderStatus) error {
	for _, allowed := range transitions[from] {
		if allowed == to {
			return nil
		}
	}
	return fmt.Errorf("%w: %s -> %s", domain.ErrInvalidTransition, from, to)
}

// TrackingStep is one rung of the tracking ladder.
type TrackingStep struct {
	Status    domain.OrderStatus `json:"status"`
	Label     string             `json:"label"`
	Completed bool               `json:"completed"`
}

// Tracking is the progress view computed from an order's current status.
type Tracking struct {
	OrderID     string             `json:"orderId"`
	Status      domain.OrderStatus `json:"status"`
	Cancelled   bool               `json:"cancelled"`
	Steps       []TrackingStep     `json:"steps"`
	CurrentStep int                `json:"currentStep"`
	Progress    float64            `json:"progress"`
}

// BuildTracking derives the step ladder: the current step index is the first
// not-yet-completed status, progress is currentStep/(numStatuses-1).
func BuildTracking(o *domain.Order) Tracking {
	t := Tracking{
		OrderID: o.ID,
		Status:  o.Status,
	}

	if o.Status == domain.StatusCancelled {
		t.Cancelled = true
		for _, s := range statusOrder {
			t.Steps = append(t.Steps, TrackingStep{Status: s, Label: StatusLabels[s]})
		}
		return t
	}

	idx := statusIndex(o.Status)
	for i, s := range statusOrder {
		t.Steps = append(t.Steps, TrackingStep{
			Status:    s,
			Label:     StatusLabels[s],
			Completed: i <= idx,
		})
	}

	t.CurrentStep = idx + 1
	last := len(statusOrder) - 1
	if t.CurrentStep > last {
		t.CurrentStep = last
	}
	t.Progress = float64(t.CurrentStep) / float64(last)
	return t
}
