package services

import "github.com/yeremiapane/lumiere-api/models"

// EventPublisher receives domain events after they are committed. kds.Hub
// implements it.
type EventPublisher interface {
	BroadcastOrderPlaced(order models.Order)
	BroadcastReservationCreated(r models.Reservation)
	BroadcastOrderStatusChanged(order models.Order)
}

type noopPublisher struct{}

func (noopPublisher) BroadcastOrderPlaced(models.Order)             {}
func (noopPublisher) BroadcastReservationCreated(models.Reservation) {}
func (noopPublisher) BroadcastOrderStatusChanged(models.Order)      {}

func publisherOrNoop(p EventPublisher) EventPublisher {
	if p == nil {
		return noopPublisher{}
	}
	return p
}
