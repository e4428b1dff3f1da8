package sealpay

import (
	"github.com/prometheus/client_golang/prometheus"
)

const (
	MetricNameSpace = "sealpay"
)

var (
	purchaseTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "purchase_total",
			Help:      "settled purchases",
		},
	)
	purchaseVolume = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "purchase_volume",
			Help:      "settled volume in smallest token unit",
		},
	)
	feeVolume = prometheus.NewCounter(
		prometheus.CounterOpts{
			Namespace: MetricNameSpace,
			Name:      "fee_volume",
			Help:      "platform fee volume in smallest token unit",
		},
	)
	custodyBalance = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Namespace: MetricNameSpace,
			Name:      "custody_balance",
			Help:      "token balance resting in the engine custody account",
		},
		[]string{"token"},
	)
)

func init() {
	prometheus.MustRegister(
		purchaseTotal,
		purchaseVolume,
		feeVolume,
		custodyBalance,
	)
}

func metricPurchase(price, feeAmount uint64) {
	purchaseTotal.Inc()
	purchaseVolume.Add(float64(price))
	feeVolume.Add(float64(feeAmount))
}

func metricCustodyBalance(symbol string, balance uint64) {
	custodyBalance.WithLabelValues(symbol).Set(float64(balance))
}
