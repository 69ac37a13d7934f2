package domain

import "time"

// VoteChoice enumerates roll-call outcomes.
type VoteChoice string

const (
	VoteFor     VoteChoice = "for"
	VoteAgainst VoteChoice = "against"
	VoteAbstain VoteChoice = "abstain"
)

// Vote is read-only reference data describing a single roll call of an
// official. Votes are supplied by a directory client or a fixture and
// are never persisted locally.
type Vote struct {
	Date        time.Time
	Topic       string
	Choice      VoteChoice
	Description string
}

// Promise is a public statement under audit plus the topics it touches.
// Topics drive the consistency check against the voting history.
type Promise struct {
	Statement string
	Topics    []string
}

// FiscalBaseline carries the illustrative budget figures behind a
// promise: the current amount, the multiplier the promise implies
// (doubling means 2.0), and the years available to get there.
type FiscalBaseline struct {
	CurrentAmount    float64
	TargetMultiplier float64
	HorizonYears     int
}

// Classification is the final credibility call on a promise.
type Classification string

const (
	ClassificationEmpty     Classification = "empty"
	ClassificationDubious   Classification = "dubious"
	ClassificationPlausible Classification = "plausible"
)

// Feasibility rates how plausible the fiscal target is given the
// required compound annual growth rate.
type Feasibility string

const (
	FeasibilityLow    Feasibility = "low"
	FeasibilityMedium Feasibility = "medium"
	FeasibilityHigh   Feasibility = "high"
)

// AuditVerdict is derived on demand and never persisted.
type AuditVerdict struct {
	Classification        Classification
	Feasibility           Feasibility
	InconsistencyDetected bool
	InconsistentVote      *Vote
	RequiredGrowthRate    float64
	Explanation           string
}
