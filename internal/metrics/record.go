package metrics

// RecordCoins adds generated coin amounts per denomination symbol.
func RecordCoins(amounts map[string]int) {
	for denomination, amount := range amounts {
		if amount > 0 {
			CoinsGenerated.WithLabelValues(denomination).Add(float64(amount))
		}
	}
}

// RecordDeterioration counts broken, damaged and destroyed units.
func RecordDeterioration(broken, damaged, destroyed int) {
	if broken > 0 {
		ItemsDeteriorated.WithLabelValues(OutcomeBroken).Add(float64(broken))
	}
	if damaged > 0 {
		ItemsDeteriorated.WithLabelValues(OutcomeDamaged).Add(float64(damaged))
	}
	if destroyed > 0 {
		ItemsDeteriorated.WithLabelValues(OutcomeDestroyed).Add(float64(destroyed))
	}
}
