package service

import "log"

// Publisher sends a domain notification. *rabbitmq.Publisher satisfies it.
type Publisher interface {
	Publish(routingKey string, payload any) error
}

// notify publishes best-effort; a nil publisher disables notifications.
func notify(p Publisher, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(routingKey, payload); err != nil {
		log.Printf("[Notify] failed to publish %s: %v", routingKey, err)
	}
}
