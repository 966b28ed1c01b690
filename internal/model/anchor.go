package model

// AnchorQuality grades how much of an AnchorPack came from extracted facts
// versus generic fallback language.
type AnchorQuality string

// Anchor quality constants. Good means both audience and pain were extracted;
// partial means at least one of audience, pain or provider was; fallback
// means the pack is entirely generic.
const (
	QualityGood     AnchorQuality = "good"
	QualityPartial  AnchorQuality = "partial"
	QualityFallback AnchorQuality = "fallback"
)

// Valid reports whether q is one of the defined quality grades.
func (q AnchorQuality) Valid() bool {
	switch q {
	case QualityGood, QualityPartial, QualityFallback:
		return true
	}
	return false
}

// ExtractedFlags records which outbound facts survived into the pack.
type ExtractedFlags struct {
	HasAudience bool `json:"hasAudience"`
	HasPain     bool `json:"hasPain"`
	HasProvider bool `json:"hasProvider"`
	HasOffer    bool `json:"hasOffer"`
}

// AnchorPack is the set of composed sentence fragments used to fill a reply
// template. Every field is non-empty, sentence fields end with a period, and
// no field ever matches a forbidden pattern.
type AnchorPack struct {
	ProspectLabel   string         `json:"prospect_label"`
	PainSentence    string         `json:"pain_sentence"`
	OfferSentence   string         `json:"offer_sentence"`
	OutboundSummary string         `json:"outbound_summary"`
	Quality         AnchorQuality  `json:"quality"`
	Extracted       ExtractedFlags `json:"extracted"`
}
