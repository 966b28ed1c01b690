// Package model defines the core domain models used throughout the application.
package model

// Stage identifies the conversational intent of an inbound reply.
type Stage string

// The twelve reply stages. BOUNCE, OOO, HOSTILE and NEGATIVE are hard-stops:
// once one of them matches, classification ends immediately and no secondary
// stages are recorded.
const (
	StageBounce     Stage = "BOUNCE"
	StageOOO        Stage = "OOO"
	StageNegative   Stage = "NEGATIVE"
	StageHostile    Stage = "HOSTILE"
	StageScheduling Stage = "SCHEDULING"
	StagePricing    Stage = "PRICING"
	StageProof      Stage = "PROOF"
	StageIdentity   Stage = "IDENTITY"
	StageScope      Stage = "SCOPE"
	StageInterest   Stage = "INTEREST"
	StageConfusion  Stage = "CONFUSION"
	StageUnknown    Stage = "UNKNOWN"
)

// HardStopOrder is the fixed order in which hard-stop families are checked.
// An obscene reply must classify HOSTILE rather than NEGATIVE, and a delivery
// failure must never be read as a human response, so BOUNCE and OOO come
// before the human stages.
var HardStopOrder = []Stage{StageBounce, StageOOO, StageHostile, StageNegative}

// Precedence is the tie-break order for non-hard-stop candidate stages. The
// first matching stage in this list becomes primary; the rest become
// secondary in the same order.
var Precedence = []Stage{
	StageScheduling,
	StagePricing,
	StageProof,
	StageIdentity,
	StageScope,
	StageInterest,
	StageConfusion,
}

// IsHardStop reports whether s terminates classification on match.
func (s Stage) IsHardStop() bool {
	switch s {
	case StageBounce, StageOOO, StageHostile, StageNegative:
		return true
	default:
		return false
	}
}

// Valid reports whether s is one of the twelve known stages.
func (s Stage) Valid() bool {
	switch s {
	case StageBounce, StageOOO, StageNegative, StageHostile,
		StageScheduling, StagePricing, StageProof, StageIdentity,
		StageScope, StageInterest, StageConfusion, StageUnknown:
		return true
	default:
		return false
	}
}

// PrecedenceRank returns the position of s in the precedence list, or a rank
// past the end for stages outside it. Lower ranks win.
func (s Stage) PrecedenceRank() int {
	for i, p := range Precedence {
		if p == s {
			return i
		}
	}
	return len(Precedence)
}
