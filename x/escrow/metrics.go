package escrow

import "github.com/prometheus/client_golang/prometheus"

// Approval results reported by the escrow_approvals_total counter.
const (
	resultApproved = "approved"
	resultReleased = "released"
	resultRejected = "rejected"
	resultFailed   = "transfer_failed"
)

// Metrics counts escrow activity.
type Metrics struct {
	created   prometheus.Counter
	approvals *prometheus.CounterVec
	released  prometheus.Counter
}

// NewMetrics creates escrow counters and registers them with reg. A nil
// registerer leaves the counters unregistered.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		created: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "escrow_created_total",
			Help: "Number of escrows created.",
		}),
		approvals: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "escrow_approvals_total",
			Help: "Number of processed approvals by result.",
		}, []string{"result"}),
		released: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "escrow_released_total",
			Help: "Number of escrows paid out to their destination.",
		}),
	}
	if reg != nil {
		reg.MustRegister(m.created, m.approvals, m.released)
	}
	return m
}

func (m *Metrics) observeApproval(res *ApprovalResult, err error) {
	switch {
	case ErrTransfer.Is(err):
		m.approvals.WithLabelValues(resultFailed).Inc()
	case err != nil:
		m.approvals.WithLabelValues(resultRejected).Inc()
	case res.Released:
		m.approvals.WithLabelValues(resultReleased).Inc()
		m.released.Inc()
	default:
		m.approvals.WithLabelValues(resultApproved).Inc()
	}
}
