package consumer

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	"github.com/Eursukkul/local-event-finder/internal/dto"
	"github.com/Eursukkul/local-event-finder/internal/service"
	amqp "github.com/rabbitmq/amqp091-go"
)

const handleTimeout = 30 * time.Second

// Resyncer is the part of the reservation service the consumer drives.
type Resyncer interface {
	Resync(ctx context.Context, eventID uint) error
	ResyncAfterCapacityChange(ctx context.Context, eventID uint, newTotalSeats int) error
}

type ResyncConsumer struct {
	svc Resyncer
}

func NewResyncConsumer(svc Resyncer) *ResyncConsumer {
	return &ResyncConsumer{svc: svc}
}

// Start handles seat resync requests until msgs is closed. The returned channel
// is closed once the last message has been handled.
func (rc *ResyncConsumer) Start(msgs <-chan amqp.Delivery) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		for msg := range msgs {
			rc.handleMessage(msg)
		}
		log.Println("[ResyncConsumer] channel closed, stopping consumer")
	}()
	return done
}

func (rc *ResyncConsumer) handleMessage(msg amqp.Delivery) {
	var req dto.ResyncRequest
	if err := json.Unmarshal(msg.Body, &req); err != nil || req.EventID == 0 {
		log.Printf("[ResyncConsumer] dropping malformed message %q: %v", msg.MessageId, err)
		msg.Nack(false, false)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), handleTimeout)
	defer cancel()

	var err error
	if req.TotalSeats != nil {
		err = rc.svc.ResyncAfterCapacityChange(ctx, req.EventID, *req.TotalSeats)
	} else {
		err = rc.svc.Resync(ctx, req.EventID)
	}

	switch {
	case err == nil:
		log.Printf("[ResyncConsumer] resynced event %d", req.EventID)
		msg.Ack(false)
	case errors.Is(err, service.ErrEventNotFound):
		log.Printf("[ResyncConsumer] event %d not found, dropping", req.EventID)
		msg.Ack(false)
	case errors.Is(err, service.ErrInvalidCapacity):
		log.Printf("[ResyncConsumer] rejecting event %d: %v", req.EventID, err)
		msg.Nack(false, false)
	default:
		log.Printf("[ResyncConsumer] failed to resync event %d: %v", req.EventID, err)
		msg.Nack(false, true) // requeue
	}
}
