package event

import (
	"github.com/lixenwraith/knot-runner/knot"
)

// KnotPayload carries a knot arrival or landing
type KnotPayload struct {
	Knot      knot.Index `json:"knot"`
	Remaining int        `json:"remaining"` // Steps left after this arrival
}

// JunctionPayload carries junction entry/exit
// Candidates is a copy owned by the receiver
type JunctionPayload struct {
	Active     bool         `json:"active"`
	Knot       knot.Index   `json:"knot"`
	Candidates []knot.Index `json:"candidates,omitempty"`
}

// SelectionPayload carries the highlighted junction candidate
type SelectionPayload struct {
	Index     int        `json:"index"`
	Candidate knot.Index `json:"candidate"`
}

// RejectPayload carries the reason an Animate request was refused
type RejectPayload struct {
	Requested int    `json:"requested"`
	Reason    string `json:"reason"`
}

// PausePayload carries the pause gate state
type PausePayload struct {
	Paused bool `json:"paused"`
}

// RollPayload carries a dice result
type RollPayload struct {
	Value int `json:"value"`
}

// StatsPayload carries player stats after a change
type StatsPayload struct {
	Coins      int `json:"coins"`
	Stars      int `json:"stars"`
	CoinsDelta int `json:"coins_delta"`
	StarsDelta int `json:"stars_delta"`
}

// StarOfferPayload carries a star purchase offer
type StarOfferPayload struct {
	Knot       knot.Index `json:"knot"`
	Cost       int        `json:"cost"`
	Affordable bool       `json:"affordable"`
}
