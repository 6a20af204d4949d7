package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HandoverMetrics - метрики жизненного цикла handover и выплат
type HandoverMetrics struct {
	HandoversCreatedTotal    prometheus.CounterVec
	HandoverTransitionsTotal prometheus.CounterVec

	HandoversCompletedTotal    prometheus.CounterVec
	EscrowReleasedAmountTotal  prometheus.CounterVec
	WalletCreditsTotal         prometheus.CounterVec
	WalletCreditsAmountTotal   prometheus.CounterVec

	HandoverCompletionDuration prometheus.HistogramVec

	TransitionRejectedTotal prometheus.CounterVec
}

func NewHandoverMetrics() *HandoverMetrics {
	return &HandoverMetrics{
		HandoversCreatedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "handovers_created_total",
				Help: "Total handovers created from confirmed payments",
			},
			[]string{"handover_type"},
		),

		HandoverTransitionsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "handover_transitions_total",
				Help: "Total handover state transitions by target status",
			},
			[]string{"handover_type", "status"},
		),

		HandoversCompletedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "handovers_completed_total",
				Help: "Total completed handovers",
			},
			[]string{"handover_type"},
		),

		EscrowReleasedAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "escrow_released_amount_total",
				Help: "Total amount released from escrow on completion",
			},
			[]string{"handover_type"},
		),

		WalletCreditsTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_credits_total",
				Help: "Total wallet credit operations on escrow release",
			},
			[]string{"role"},
		),

		WalletCreditsAmountTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "wallet_credits_amount_total",
				Help: "Total amount credited to wallets on escrow release",
			},
			[]string{"role"},
		),

		HandoverCompletionDuration: *promauto.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "handover_completion_duration_seconds",
				Help:    "Time from payment confirmation to handover completion",
				Buckets: prometheus.ExponentialBuckets(3600, 2, 12), // 1h, 2h, 4h...
			},
			[]string{"handover_type"},
		),

		TransitionRejectedTotal: *promauto.NewCounterVec(
			prometheus.CounterOpts{
				Name: "handover_transition_rejected_total",
				Help: "Total guard violations on handover transitions",
			},
			[]string{"handover_type", "reason"},
		),
	}
}

func (m *HandoverMetrics) RecordCreated(handoverType string) {
	m.HandoversCreatedTotal.WithLabelValues(handoverType).Inc()
}

func (m *HandoverMetrics) RecordTransition(handoverType, newStatus string) {
	m.HandoverTransitionsTotal.WithLabelValues(handoverType, newStatus).Inc()
}

func (m *HandoverMetrics) RecordCompleted(handoverType string, amount float64) {
	m.HandoversCompletedTotal.WithLabelValues(handoverType).Inc()
	m.EscrowReleasedAmountTotal.WithLabelValues(handoverType).Add(amount)
}

func (m *HandoverMetrics) RecordWalletCredit(role string, amount float64) {
	m.WalletCreditsTotal.WithLabelValues(role).Inc()
	m.WalletCreditsAmountTotal.WithLabelValues(role).Add(amount)
}

func (m *HandoverMetrics) RecordCompletionDuration(handoverType string, durationSeconds float64) {
	m.HandoverCompletionDuration.WithLabelValues(handoverType).Observe(durationSeconds)
}

func (m *HandoverMetrics) RecordRejected(handoverType, reason string) {
	m.TransitionRejectedTotal.WithLabelValues(handoverType, reason).Inc()
}
