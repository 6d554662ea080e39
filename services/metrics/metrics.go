// Package metrics exposes the application counters to prometheus.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/trezcool/amenagement/core/collection"
)

const namespace = "amenagement"

// Recorder counts collection mutations, resolved views and logins.
type Recorder struct {
	registry  *prometheus.Registry
	mutations *prometheus.CounterVec
	views     *prometheus.CounterVec
	logins    *prometheus.CounterVec
}

var _ collection.Observer = (*Recorder)(nil)

func NewRecorder() *Recorder {
	r := &Recorder{
		registry: prometheus.NewRegistry(),
		mutations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "collection_mutations_total",
			Help:      "Persisted collection mutations, by collection and operation.",
		}, []string{"collection", "op"}),
		views: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "view_resolutions_total",
			Help:      "Resolved views, by role and rendered view.",
		}, []string{"role", "view"}),
		logins: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "logins_total",
			Help:      "Login attempts, by outcome.",
		}, []string{"outcome"}),
	}
	r.registry.MustRegister(
		r.mutations,
		r.views,
		r.logins,
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return r
}

func (r *Recorder) ObserveMutation(coll, op string) {
	r.mutations.WithLabelValues(coll, op).Inc()
}

func (r *Recorder) ObserveView(role, view string) {
	r.views.WithLabelValues(role, view).Inc()
}

func (r *Recorder) ObserveLogin(ok bool) {
	outcome := "failure"
	if ok {
		outcome = "success"
	}
	r.logins.WithLabelValues(outcome).Inc()
}

// Handler serves the registry in the prometheus exposition format.
func (r *Recorder) Handler() http.Handler {
	return promhttp.HandlerFor(r.registry, promhttp.HandlerOpts{})
}
