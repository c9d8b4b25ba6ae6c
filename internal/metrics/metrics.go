package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ParseRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chronomap",
		Name:      "parse_requests_total",
		Help:      "Document parse requests by strategy and outcome",
	}, []string{"strategy", "status"})

	ParseDuration = prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "chronomap",
		Name:      "parse_duration_seconds",
		Help:      "Wall time of synchronous document parses",
		Buckets:   prometheus.DefBuckets,
	})

	EventsExtracted = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chronomap",
		Name:      "events_extracted_total",
		Help:      "Candidate events produced by parses",
	}, []string{"strategy"})

	FetchRequests = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "chronomap",
		Name:      "fetch_requests_total",
		Help:      "URL content fetches by outcome",
	}, []string{"status"})
)

func init() {
	prometheus.MustRegister(ParseRequests, ParseDuration, EventsExtracted, FetchRequests)
}

// Handler serves the Prometheus scrape endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
