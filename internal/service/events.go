package service

import "log/slog"

// Routing keys of the domain events published after a commit.
const (
	EventUserCreated     = "user.created"
	EventItemCreated     = "item.created"
	EventItemUpdated     = "item.updated"
	EventRequestCreated  = "request.created"
	EventBookingCreated  = "booking.created"
	EventBookingApproved = "booking.approved"
	EventBookingRejected = "booking.rejected"
	EventCommentCreated  = "comment.created"
)

// EventPublisher delivers domain events. *rabbitmq.Publisher satisfies it.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// publish is best-effort: the operation has already committed.
func publish(p EventPublisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		slog.Warn("failed to publish event", "routing_key", routingKey, "err", err)
	}
}
