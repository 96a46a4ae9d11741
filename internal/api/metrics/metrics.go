// Package metrics defines all custom Prometheus metrics for the fountain
// finder API. It is the single source of truth for metric names, labels, and
// help strings. Metrics register themselves with the default registry via
// promauto at package init.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "fountain"

// FountainsCreatedTotal counts fountains successfully placed on the map.
var FountainsCreatedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "fountains_created_total",
		Help:      "Total number of fountains created.",
	},
)

// ReviewsSubmittedTotal counts submitted reviews.
// Label:
//   - status: the review status ("red", "yellow", "green")
var ReviewsSubmittedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reviews_submitted_total",
		Help:      "Total number of reviews submitted, by status.",
	},
	[]string{"status"},
)

// ReportsTotal counts report submissions.
// Label:
//   - result: "counted" (increment applied) or "throttled" (repeat within the
//     per-user window, acknowledged but not counted)
var ReportsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "reports_total",
		Help:      "Total number of fountain reports, by throttle result.",
	},
	[]string{"result"},
)
