package constants

// Ключи маршрутизации
const (
	RoutingKeySearchResolved    = "search.resolved"
	RoutingKeyDevelopersChanged = "developers.changed"
)

// Имена ресурсов брокера по умолчанию
const (
	SearchExchange          = "search_exchange"
	QueueDevelopersChanged  = "search_service_developers_changed"
	SearchEventsContentType = "application/json"
)
