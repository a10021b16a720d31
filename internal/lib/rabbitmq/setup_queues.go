package rabbitmq

// EventsExchange is the direct exchange all Kaulela events go through.
const EventsExchange = "kaulela.events"

// Routing keys of the events published by the API server.
const (
	RoutingKeySMS = "notification.sms"
)

type QueueConfig struct {
	QueueName  string
	RoutingKey string
}

// GetNotificationQueues lists the queues the SMS worker consumes.
func GetNotificationQueues() []QueueConfig {
	return []QueueConfig{
		{QueueName: "notification.sms", RoutingKey: RoutingKeySMS},
	}
}
