package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics agrupa los contadores Prometheus de la aplicación.
type Metrics struct {
	PersonsCreated prometheus.Counter
	PetsCreated    prometheus.Counter
	PetsDeleted    prometheus.Counter
	AuthFailures   prometheus.Counter
}

// New registra los contadores en el registry dado.
// En tests conviene pasar prometheus.NewRegistry() para no chocar
// con el registry global entre casos.
func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		PersonsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_persons_created_total",
			Help: "Total number of persons created.",
		}),
		PetsCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_pets_created_total",
			Help: "Total number of pets created.",
		}),
		PetsDeleted: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_pets_deleted_total",
			Help: "Total number of pets deleted.",
		}),
		AuthFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "registry_auth_failures_total",
			Help: "Total number of failed authentication attempts.",
		}),
	}
}
