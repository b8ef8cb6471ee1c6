package engine

import (
	"testing"
	"time"
)

func TestComputeStats_Empty(t *testing.T) {
	state := NewGameState(DefaultCityConfig())

	stats := ComputeStats(state)
	if stats.TotalDeliveries != 0 || stats.SuccessRate != 0 || stats.AverageDeliveryTime != 0 {
		t.Errorf("Expected zero stats for a fresh state, got %+v", stats)
	}
	if stats.BestTime != nil {
		t.Error("Expected no best time for a fresh state")
	}
}

func TestComputeStats(t *testing.T) {
	eng := newTestEngine(t)
	start := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	complete := func(elapsed time.Duration) {
		eng.SetClock(fixedClock(start))
		eng.StartRun()
		eng.SetClock(fixedClock(start.Add(elapsed)))
		eng.CompleteOrder()
	}

	complete(100 * time.Second)
	complete(200 * time.Second)
	eng.StartRun()
	eng.FailOrder("gave up")

	stats := eng.GetStats()
	if stats.TotalDeliveries != 2 {
		t.Errorf("Expected 2 deliveries, got %d", stats.TotalDeliveries)
	}
	if stats.AverageDeliveryTime != 150 {
		t.Errorf("Expected average 150s, got %v", stats.AverageDeliveryTime)
	}
	// 2 of 3 attempts succeeded.
	wantRate := 2.0 / 3.0 * 100
	if stats.SuccessRate != wantRate {
		t.Errorf("Expected success rate %v, got %v", wantRate, stats.SuccessRate)
	}
	if stats.BestTime == nil || *stats.BestTime != 100 {
		t.Error("Expected best time 100s")
	}
	if stats.CurrentStreak != 0 {
		t.Errorf("Expected streak reset by the failure, got %d", stats.CurrentStreak)
	}
}

func TestFormatTime(t *testing.T) {
	tests := []struct {
		seconds float64
		want    string
	}{
		{0, "0:00"},
		{59, "0:59"},
		{60, "1:00"},
		{125, "2:05"},
		{-5, "0:00"},
	}
	for _, tt := range tests {
		if got := FormatTime(tt.seconds); got != tt.want {
			t.Errorf("FormatTime(%v) = %q, want %q", tt.seconds, got, tt.want)
		}
	}
}
