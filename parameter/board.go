package parameter

import "time"

// Board - Player Stats
const (
	// StatsMin and StatsMax clamp coin and star counters
	StatsMin = 0
	StatsMax = 999

	// StarCost is the coin price of a star on a star space
	StarCost = 20
)

// Board - Dice
const (
	DiceMin = 1
	DiceMax = 10
)

// Board - Turn pacing (presentation delays, not traversal timing)
const (
	// RollResultDelay is the time the rolled value is displayed before moving
	RollResultDelay = 500 * time.Millisecond

	// LandSettleDelay is the time between landing and the next turn becoming available
	LandSettleDelay = 80 * time.Millisecond
)
