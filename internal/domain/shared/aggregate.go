package shared

// AggregateRoot is implemented by every aggregate. Aggregates carry a
// version for optimistic locking and record the domain events their
// mutations raise, to be published after the aggregate is persisted.
type AggregateRoot interface {
	Entity
	GetVersion() int
	IncrementVersion()
	AddDomainEvent(event DomainEvent)
	GetDomainEvents() []DomainEvent
	ClearDomainEvents()
}

// BaseAggregateRoot is the embeddable implementation of AggregateRoot.
// The pending event slice is in-memory only and never persisted.
type BaseAggregateRoot struct {
	BaseEntity
	Version       int           `gorm:"not null;default:1"`
	pendingEvents []DomainEvent `gorm:"-"`
}

// NewBaseAggregateRoot creates a fresh aggregate at version 1
func NewBaseAggregateRoot() BaseAggregateRoot {
	return BaseAggregateRoot{
		BaseEntity: NewBaseEntity(),
		Version:    1,
	}
}

// GetVersion returns the optimistic-locking version
func (a *BaseAggregateRoot) GetVersion() int {
	return a.Version
}

// IncrementVersion bumps the version; every state-changing mutation calls this
func (a *BaseAggregateRoot) IncrementVersion() {
	a.Version++
}

// AddDomainEvent records an event raised by a mutation
func (a *BaseAggregateRoot) AddDomainEvent(event DomainEvent) {
	a.pendingEvents = append(a.pendingEvents, event)
}

// GetDomainEvents returns the events recorded since the last clear
func (a *BaseAggregateRoot) GetDomainEvents() []DomainEvent {
	return a.pendingEvents
}

// ClearDomainEvents drops the recorded events, called after publishing
func (a *BaseAggregateRoot) ClearDomainEvents() {
	a.pendingEvents = nil
}
