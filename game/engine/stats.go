package engine

// GetStats aggregates the delivery history into dashboard figures.
func (e *GameEngine) GetStats() GameStats {
	return ComputeStats(e.state)
}

// ComputeStats derives aggregate figures from a game state. Rates are
// percentages; average delivery time is in seconds.
func ComputeStats(state *GameState) GameStats {
	stats := GameStats{
		TotalDeliveries: state.Deliveries,
		TotalEarnings:   state.TotalEarnings,
		BestTime:        state.BestTime,
		CurrentStreak:   state.ConsecutiveDeliveries,
	}

	completed := len(state.CompletedDeliveries)
	if completed > 0 {
		var totalTime float64
		for _, delivery := range state.CompletedDeliveries {
			totalTime += delivery.CompletionTime
		}
		stats.AverageDeliveryTime = totalTime / float64(completed)

		attempts := completed + len(state.FailedDeliveries)
		stats.SuccessRate = float64(completed) / float64(attempts) * 100
	}

	return stats
}
