package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Coin metrics
var (
	CoinsGenerated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsGenerated,
			Help: HelpTextCoinsGenerated,
		},
		[]string{LabelDenomination},
	)

	CoinFactor = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameCoinFactor,
			Help:    HelpTextCoinFactor,
			Buckets: prometheus.LinearBuckets(0, 1, 6),
		},
	)
)

// Treasure metrics
var (
	TreasureDraws = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameTreasureDraws,
			Help: HelpTextTreasureDraws,
		},
		[]string{LabelTable},
	)

	CoinsConverted = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCoinsConverted,
			Help: HelpTextCoinsConverted,
		},
		[]string{LabelDenomination},
	)
)

// Deterioration metrics
var (
	ItemsDeteriorated = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameItemsDeteriorated,
			Help: HelpTextItemsDeteriorated,
		},
		[]string{LabelOutcome},
	)
)

// Generation metrics
var (
	LootGenerations = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLootGenerations,
			Help: HelpTextLootGenerations,
		},
		[]string{LabelResult},
	)

	LookupMisses = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameLookupMisses,
			Help: HelpTextLookupMisses,
		},
		[]string{LabelKind},
	)

	GenerationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameGenerationDuration,
			Help:    HelpTextGenerationDuration,
			Buckets: prometheus.ExponentialBuckets(0.0001, 4, 8),
		},
	)
)
