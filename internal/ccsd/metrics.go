// metrics.go --  This file is part of goCCSD project.
// Mirzaeva Irina, 2023
//
//	goCCSD is distributed in the hope that it will be useful,
//	but WITHOUT ANY WARRANTY; without even the implied warranty
//	of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
//	See the GNU General Public License for more details.
//
//	You should have received a copy of the GNU General Public License
//	along with this program.  If not, see http://www.gnu.org/licenses/
//
// ------------------------------------------------
package ccsd

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Phases of one CCSD cycle, used as the "phase" metric label.
const (
	phaseIntermediates = "intermediates"
	phaseGather        = "gather"
	phaseAmplitudes    = "amplitudes"
	phaseBroadcast     = "broadcast"
	phaseEnergy        = "energy"
)

// Metrics records solver progress. A nil *Metrics records nothing.
type Metrics struct {
	Iterations  prometheus.Counter
	Energy      prometheus.Gauge
	EnergyDelta prometheus.Gauge
	Phase       *prometheus.HistogramVec
	Build       *prometheus.HistogramVec
}

// NewMetrics creates the solver metrics and registers them with reg.
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		Iterations: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "ccsd",
			Name:      "iterations_total",
			Help:      "Completed CCSD amplitude iterations.",
		}),
		Energy: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ccsd",
			Name:      "correlation_energy_hartree",
			Help:      "CCSD correlation energy after the last iteration.",
		}),
		EnergyDelta: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: "ccsd",
			Name:      "energy_delta_hartree",
			Help:      "Absolute correlation energy change of the last iteration.",
		}),
		Phase: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ccsd",
			Name:      "phase_duration_seconds",
			Help:      "Wall time of each phase of a CCSD iteration per rank.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"phase", "rank"}),
		Build: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "ccsd",
			Name:      "intermediate_build_seconds",
			Help:      "Wall time spent building one intermediate on its owner.",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}, []string{"intermediate"}),
	}
	for _, c := range []prometheus.Collector{m.Iterations, m.Energy, m.EnergyDelta, m.Phase, m.Build} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

func (m *Metrics) observePhase(phase string, rank int, d time.Duration) {
	if m == nil {
		return
	}
	m.Phase.WithLabelValues(phase, strconv.Itoa(rank)).Observe(d.Seconds())
}

func (m *Metrics) observeBuild(x Intermediate, d time.Duration) {
	if m == nil {
		return
	}
	m.Build.WithLabelValues(x.String()).Observe(d.Seconds())
}

func (m *Metrics) observeIteration(energy, delta float64) {
	if m == nil {
		return
	}
	m.Iterations.Inc()
	m.Energy.Set(energy)
	m.EnergyDelta.Set(delta)
}
