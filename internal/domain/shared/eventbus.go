package shared

import "context"

// EventHandler consumes domain events
type EventHandler interface {
	Handle(ctx context.Context, event DomainEvent) error
	// EventTypes names the event types this handler wants.
	// An empty slice subscribes the handler to every event.
	EventTypes() []string
}

// EventPublisher is the side of the bus aggregate-owning services see:
// they publish the events an aggregate recorded once it is persisted.
type EventPublisher interface {
	Publish(ctx context.Context, events ...DomainEvent) error
}

// EventSubscriber registers and removes handlers
type EventSubscriber interface {
	Subscribe(handler EventHandler, eventTypes ...string)
	Unsubscribe(handler EventHandler)
}

// EventBus is the full bus contract wired up in main
type EventBus interface {
	EventPublisher
	EventSubscriber
	Start(ctx context.Context) error
	Stop(ctx context.Context) error
}
