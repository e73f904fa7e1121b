package api

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/RF33-maker/Swish-Assistant-Website-sub000/pkg/metrics"
)

// handleHealth serves the Prometheus registry; a successful scrape doubles as
// the liveness check.
func handleHealth(w http.ResponseWriter, r *http.Request) {
	promhttp.HandlerFor(metrics.GetRegistry(), promhttp.HandlerOpts{}).ServeHTTP(w, r)
}
