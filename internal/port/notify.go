package port

import "healthmon/internal/domain"

// AlertPublisher fans a newly raised or updated alert out to live subscribers.
type AlertPublisher interface {
	Publish(alert domain.Alert)
}
