// Package stage defines the hiring pipeline a candidate moves through.
//
// Valid stage graph:
//
//	APPLIED ──► SCREENING ──► INTERVIEW ──► OFFER ──► HIRED
//	   │            │              │           │
//	   └────────────┴──────────────┴───────────┴──► REJECTED
//
// HIRED and REJECTED are terminal. OFFER ──► HIRED is only taken by the hire
// transaction; callers changing a stage directly must refuse HIRED themselves.
package stage

import "fmt"

// Stage values mirror the candidate_stage enum in PostgreSQL.
type Stage string

const (
	Applied   Stage = "APPLIED"
	Screening Stage = "SCREENING"
	Interview Stage = "INTERVIEW"
	Offer     Stage = "OFFER"
	Hired     Stage = "HIRED"
	Rejected  Stage = "REJECTED"
)

// Initial is the stage assigned to every new candidate.
const Initial = Applied

var all = []Stage{Applied, Screening, Interview, Offer, Hired, Rejected}

// transitions lists every allowed (from → to) pair. Never mutated after init.
var transitions = map[Stage]map[Stage]struct{}{
	Applied:   {Screening: {}, Rejected: {}},
	Screening: {Interview: {}, Rejected: {}},
	Interview: {Offer: {}, Rejected: {}},
	Offer:     {Hired: {}, Rejected: {}},
}

// Parse converts a raw string to a Stage, returning an error for unknown values.
func Parse(s string) (Stage, error) {
	st := Stage(s)
	if !st.Valid() {
		return "", fmt.Errorf("unknown candidate stage %q", s)
	}
	return st, nil
}

// Valid reports whether s is one of the six pipeline stages.
func (s Stage) Valid() bool {
	switch s {
	case Applied, Screening, Interview, Offer, Hired, Rejected:
		return true
	}
	return false
}

// Terminal reports whether no transition leaves s.
func (s Stage) Terminal() bool {
	return s == Hired || s == Rejected
}

func (s Stage) String() string { return string(s) }

// CanTransition returns true when moving from → to is permitted.
// Self-transitions are never permitted.
func CanTransition(from, to Stage) bool {
	_, ok := transitions[from][to]
	return ok
}

// Next returns the stages reachable from s, in pipeline order.
func Next(s Stage) []Stage {
	var out []Stage
	for _, to := range all {
		if CanTransition(s, to) {
			out = append(out, to)
		}
	}
	return out
}

// All returns every stage in pipeline order.
func All() []Stage {
	out := make([]Stage, len(all))
	copy(out, all)
	return out
}
