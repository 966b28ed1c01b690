package model

// OfferType captures what the outbound message was asking for.
type OfferType string

// Offer type constants.
const (
	OfferIntro   OfferType = "intro"
	OfferCall    OfferType = "call"
	OfferInfo    OfferType = "info"
	OfferUnknown OfferType = "unknown"
)

// Extraction score weights. Score exists only so the composer can grade
// anchor quality; it plays no part in classification.
const (
	ScoreProvider = 2
	ScoreAudience = 3
	ScorePain     = 3
)

// OutboundFrame holds the structured facts extracted from the operator's own
// outbound message. Empty string means the field was not extracted.
type OutboundFrame struct {
	Provider string    `json:"provider,omitempty"`
	Audience string    `json:"audience,omitempty"`
	Pain     string    `json:"pain,omitempty"`
	Offer    OfferType `json:"offer"`
	Raw      string    `json:"raw"`
	Score    int       `json:"score"`
}

// HasProvider reports whether a provider identity was extracted.
func (f OutboundFrame) HasProvider() bool { return f.Provider != "" }

// HasAudience reports whether a target audience was extracted.
func (f OutboundFrame) HasAudience() bool { return f.Audience != "" }

// HasPain reports whether a pain clause was extracted.
func (f OutboundFrame) HasPain() bool { return f.Pain != "" }
