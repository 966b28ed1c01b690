package anchor

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/introflow/replybrain/internal/model"
)

// longRaw is any raw outbound long enough to clear the fallback threshold.
const longRaw = "Hey, noticed you work with a bunch of interesting companies lately."

func TestComposeShortRawFallsBack(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{name: "empty", raw: ""},
		{name: "whitespace only", raw: "    \n\t "},
		{name: "too short", raw: "hi there"},
		{name: "just under threshold", raw: "nineteen chars here"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := Compose(model.OutboundFrame{Raw: tt.raw})

			assert.Equal(t, model.QualityFallback, pack.Quality)
			assert.Equal(t, fallbackLabel, pack.ProspectLabel)
			assert.Equal(t, fallbackPain, pack.PainSentence)
			assert.Equal(t, fallbackSummary, pack.OutboundSummary)
			assert.Equal(t, offerSentences[model.OfferIntro], pack.OfferSentence)
			assert.False(t, pack.Extracted.HasAudience)
			assert.False(t, pack.Extracted.HasPain)
		})
	}
}

func TestComposeGoodQuality(t *testing.T) {
	frame := model.OutboundFrame{
		Provider: "Meridian Staffing",
		Audience: "home health agencies",
		Pain:     "can't fill shifts on short notice",
		Offer:    model.OfferIntro,
		Raw:      longRaw,
	}

	pack := Compose(frame)

	assert.Equal(t, model.QualityGood, pack.Quality)
	assert.Equal(t, "home health agencies", pack.ProspectLabel)
	assert.Equal(t, "They can't fill shifts on short notice.", pack.PainSentence)
	assert.Equal(t, offerSentences[model.OfferIntro], pack.OfferSentence)
	assert.Equal(t, "My note mentioned home health agencies who can't fill shifts on short notice.", pack.OutboundSummary)
	assert.True(t, pack.Extracted.HasAudience)
	assert.True(t, pack.Extracted.HasPain)
	assert.True(t, pack.Extracted.HasProvider)
	assert.True(t, pack.Extracted.HasOffer)
}

func TestProspectLabel(t *testing.T) {
	tests := []struct {
		name  string
		frame model.OutboundFrame
		want  string
	}{
		{
			name:  "audience preferred",
			frame: model.OutboundFrame{Audience: "regional credit unions", Provider: "Acme", Raw: longRaw},
			want:  "regional credit unions",
		},
		{
			name:  "leading determiner stripped",
			frame: model.OutboundFrame{Audience: "the regional credit unions", Raw: longRaw},
			want:  "regional credit unions",
		},
		{
			name:  "trailing dash clause dropped",
			frame: model.OutboundFrame{Audience: "solo practitioners - mostly dentists", Raw: longRaw},
			want:  "solo practitioners",
		},
		{
			name:  "clause-like audience rejected",
			frame: model.OutboundFrame{Audience: "are losing two deals a month", Raw: longRaw},
			want:  fallbackLabel,
		},
		{
			name:  "provider fallback",
			frame: model.OutboundFrame{Provider: "Acme Staffing", Raw: longRaw},
			want:  "the folks Acme Staffing works with",
		},
		{
			name:  "pain-derived label",
			frame: model.OutboundFrame{Pain: "keep missing payroll deadlines", Raw: longRaw},
			want:  "keep missing payroll deadlines",
		},
		{
			name:  "clause-like pain label rejected",
			frame: model.OutboundFrame{Pain: "lose two deals a month", Raw: longRaw},
			want:  fallbackLabel,
		},
		{
			name:  "nothing extracted",
			frame: model.OutboundFrame{Raw: longRaw},
			want:  fallbackLabel,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := Compose(tt.frame)
			assert.Equal(t, tt.want, pack.ProspectLabel)
		})
	}
}

func TestProspectLabelWordCap(t *testing.T) {
	frame := model.OutboundFrame{
		Audience: "owners of small independent veterinary clinics across the greater midwest region and beyond",
		Raw:      longRaw,
	}

	pack := Compose(frame)

	words := strings.Fields(pack.ProspectLabel)
	require.Len(t, words, maxLabelWords)
	assert.Equal(t, "owners", words[0])
}

func TestPainSentence(t *testing.T) {
	tests := []struct {
		name string
		pain string
		want string
	}{
		{
			name: "verb-first clause gets a subject",
			pain: "struggle to hire senior engineers",
			want: "They struggle to hire senior engineers.",
		},
		{
			name: "contraction verb gets a subject",
			pain: "can't keep up with inbound demand",
			want: "They can't keep up with inbound demand.",
		},
		{
			name: "noun phrase gets the dealing-with frame",
			pain: "the same staffing crunch",
			want: "They're dealing with the same staffing crunch.",
		},
		{
			name: "existing subject left alone",
			pain: "they keep losing candidates to faster shops",
			want: "They keep losing candidates to faster shops.",
		},
		{
			name: "double they collapsed",
			pain: "they they keep churning through vendors",
			want: "They keep churning through vendors.",
		},
		{
			name: "they're they collapsed",
			pain: "they're they behind on collections",
			want: "They're behind on collections.",
		},
		{
			name: "existing punctuation kept",
			pain: "they never hear back from recruiters!",
			want: "They never hear back from recruiters!",
		},
		{
			name: "empty pain falls back",
			pain: "",
			want: fallbackPain,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := Compose(model.OutboundFrame{Pain: tt.pain, Audience: "local shops", Raw: longRaw})
			assert.Equal(t, tt.want, pack.PainSentence)
		})
	}
}

func TestOfferSentence(t *testing.T) {
	intro := Compose(model.OutboundFrame{Offer: model.OfferIntro, Raw: longRaw}).OfferSentence
	call := Compose(model.OutboundFrame{Offer: model.OfferCall, Raw: longRaw}).OfferSentence
	info := Compose(model.OutboundFrame{Offer: model.OfferInfo, Raw: longRaw}).OfferSentence
	unknown := Compose(model.OutboundFrame{Offer: model.OfferUnknown, Raw: longRaw}).OfferSentence

	assert.Equal(t, offerSentences[model.OfferIntro], intro)
	assert.Equal(t, offerSentences[model.OfferCall], call)
	assert.Equal(t, intro, info, "unmapped offers default to the intro sentence")
	assert.Equal(t, intro, unknown)
	assert.NotEqual(t, intro, call)
}

func TestOutboundSummary(t *testing.T) {
	tests := []struct {
		name  string
		frame model.OutboundFrame
		want  string
	}{
		{
			name:  "audience and pain",
			frame: model.OutboundFrame{Audience: "med spas", Pain: "lose bookings to no-shows", Raw: longRaw},
			want:  "My note mentioned med spas who lose bookings to no-shows.",
		},
		{
			name:  "audience only",
			frame: model.OutboundFrame{Audience: "regional credit unions", Raw: longRaw},
			want:  "My note was about regional credit unions.",
		},
		{
			name:  "pain only",
			frame: model.OutboundFrame{Pain: "can't fill shifts", Raw: longRaw},
			want:  "My note was about folks who can't fill shifts.",
		},
		{
			name:  "nothing extracted",
			frame: model.OutboundFrame{Raw: longRaw},
			want:  fallbackSummary,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			pack := Compose(tt.frame)
			assert.Equal(t, tt.want, pack.OutboundSummary)
		})
	}
}

func TestOutboundSummaryWordCap(t *testing.T) {
	frame := model.OutboundFrame{
		Audience: "owners of boutique fitness studios in the pacific northwest",
		Pain:     "keep losing members to the big chains every single january without fail",
		Raw:      longRaw,
	}

	pack := Compose(frame)

	words := strings.Fields(pack.OutboundSummary)
	assert.LessOrEqual(t, len(words), maxSummaryWords)
	assert.True(t, strings.HasSuffix(pack.OutboundSummary, "."))
}

func TestComposeForbiddenGuard(t *testing.T) {
	tests := []struct {
		name  string
		frame model.OutboundFrame
		check func(t *testing.T, pack model.AnchorPack)
	}{
		{
			name:  "generic label reverted",
			frame: model.OutboundFrame{Audience: "businesses and companies", Raw: longRaw},
			check: func(t *testing.T, pack model.AnchorPack) {
				assert.Equal(t, fallbackLabel, pack.ProspectLabel)
				assert.Equal(t, fallbackSummary, pack.OutboundSummary)
			},
		},
		{
			name:  "vague industries label reverted",
			frame: model.OutboundFrame{Audience: "various industries", Raw: longRaw},
			check: func(t *testing.T, pack model.AnchorPack) {
				assert.Equal(t, fallbackLabel, pack.ProspectLabel)
			},
		},
		{
			name:  "broken grammar pain reverted",
			frame: model.OutboundFrame{Audience: "local shops", Pain: "are losing revenue every month", Raw: longRaw},
			check: func(t *testing.T, pack model.AnchorPack) {
				assert.Equal(t, fallbackPain, pack.PainSentence)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.check(t, Compose(tt.frame))
		})
	}
}

// TestComposeAlwaysWellFormed sweeps a spread of frames, including hostile
// ones, and checks the invariants every pack must hold.
func TestComposeAlwaysWellFormed(t *testing.T) {
	frames := []model.OutboundFrame{
		{},
		{Raw: longRaw},
		{Audience: "are are are", Pain: "are losing", Raw: longRaw},
		{Audience: "the people i mentioned are great", Raw: longRaw},
		{Provider: "Acme", Offer: model.OfferCall, Raw: longRaw},
		{Audience: "med spas", Pain: "lose bookings to no-shows", Offer: model.OfferIntro, Raw: longRaw},
		{Pain: "they they they keep churning", Raw: longRaw},
	}

	for _, frame := range frames {
		pack := Compose(frame)

		require.NotEmpty(t, pack.ProspectLabel)
		require.NotEmpty(t, pack.PainSentence)
		require.NotEmpty(t, pack.OfferSentence)
		require.NotEmpty(t, pack.OutboundSummary)
		require.True(t, pack.Quality.Valid())

		assert.False(t, isForbidden(pack.ProspectLabel), "label %q", pack.ProspectLabel)
		assert.False(t, isForbidden(pack.PainSentence), "pain %q", pack.PainSentence)
		assert.False(t, isForbidden(pack.OutboundSummary), "summary %q", pack.OutboundSummary)

		for _, s := range []string{pack.PainSentence, pack.OfferSentence, pack.OutboundSummary} {
			last := s[len(s)-1]
			assert.Contains(t, ".!?", string(last), "sentence %q must terminate", s)
		}
	}
}
