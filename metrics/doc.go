/*
Package metrics holds the Prometheus collectors of the service.

Collectors register with the default registry on import and are exposed by
promhttp on GET /metrics.

	sondaj_http_requests_total{route,method,status}
	sondaj_http_request_duration_seconds{route,method}
	sondaj_votes_total{board,outcome}
	sondaj_live_activations_total

Vote outcomes are accepted, changed (live revote), duplicate (user question
already voted) and rejected (validation or not found).
*/
package metrics
