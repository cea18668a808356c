package http

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// fulfillmentsTotal cuenta los intentos de fulfillment por camino y resultado.
// path: direct | procedure. result: ok | not_found | no_order | missing_price |
// conflict | error.
var fulfillmentsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: "warehouse",
	Name:      "fulfillments_total",
	Help:      "Intentos de fulfillment por camino y resultado.",
}, []string{"path", "result"})
