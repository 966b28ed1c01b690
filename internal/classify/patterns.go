package classify

import "github.com/introflow/replybrain/internal/model"

// Family is one stage's set of pattern alternatives. Families are plain data
// so new wording can be added without touching the classification algorithm.
type Family struct {
	Stage    model.Stage `json:"stage"`
	Signal   string      `json:"signal"`
	Patterns []string    `json:"patterns"`
}

// DefaultFamilies returns the built-in pattern families, hard-stops first in
// their fixed check order, then the candidate stages in precedence order.
func DefaultFamilies() []Family {
	return []Family{
		{
			Stage:  model.StageBounce,
			Signal: "bounce",
			Patterns: []string{
				`mailer-daemon|mail delivery (?:failed|subsystem)|delivery (?:status notification|has failed)`,
				`undeliverable|could ?n[o']t be delivered|address (?:not found|rejected)|recipient .{0,20}not (?:found|exist)`,
				`mailbox (?:is )?(?:full|unavailable|disabled)|user unknown|no such user`,
				`550 5\.\d|permanent (?:error|failure)|message (?:blocked|bounced)`,
			},
		},
		{
			Stage:  model.StageOOO,
			Signal: "ooo",
			Patterns: []string{
				`out of (?:the )?office|\booo\b`,
				`on (?:vacation|holiday|leave)|annual leave|parental leave|maternity|paternity|sabbatical`,
				`auto[- ]?reply|automatic reply|away from (?:my )?(?:email|desk)`,
				`limited access to (?:my )?email|return(?:ing)? (?:to the office )?on \w+|back (?:in the office|on) \w+`,
			},
		},
		{
			Stage:  model.StageHostile,
			Signal: "hostile",
			Patterns: []string{
				`\bfuck|\bshit\b|bullshit|piss off|screw you|go to hell`,
				`stop spamming|this is (?:spam|harassment)|reporting (?:you|this)|reported (?:you|this|as spam)`,
				`\bscammer\b|you people are|how dare you|leave me (?:the hell )?alone`,
			},
		},
		{
			Stage:  model.StageNegative,
			Signal: "negative",
			Patterns: []string{
				`not interested|no interest|not for (?:me|us)|not a (?:good )?fit`,
				`no thank|i'?ll pass|hard pass|pass on this`,
				`remove me|take me off|unsubscribe|opt me out|stop (?:contacting|emailing|messaging)|do ?n[o']t contact`,
				`we'?re (?:all )?set|all set here|no longer (?:interested|looking|with)|not looking|not at this time|not right now`,
			},
		},
		{
			Stage:  model.StageScheduling,
			Signal: "scheduling",
			Patterns: []string{
				`calendar|calendly|schedul|availability|\bavailable\b`,
				`book (?:a|some) time|set up a (?:call|time|meeting)|grab (?:some )?time|hop on a call`,
				`send (?:an|the|your) invite|what times|times? (?:that )?works?|works for me|free (?:on|this|next) \w+|next week works`,
			},
		},
		{
			Stage:  model.StagePricing,
			Signal: "pricing",
			Patterns: []string{
				`\bfees?\b|\bcost\b|\bpricing\b|\bprice\b|how much|\bcharge\b|\bpaid\b`,
				`commission|compensation|referral fee|rev(?:enue)? share|finder'?s fee`,
				`what do you (?:charge|get out of)|is there a (?:cost|fee)|who pays`,
			},
		},
		{
			Stage:  model.StageProof,
			Signal: "proof",
			Patterns: []string{
				`who are (?:these|those|the) (?:people|companies|firms|folks|guys|clients)`,
				`\bexamples?\b|case stud|references?\b|track record|\bproof\b`,
				`can you (?:share|send|give) (?:some )?(?:names|examples)|name (?:a few|some|one)|which (?:companies|firms)|who (?:else|have you) work`,
			},
		},
		{
			Stage:  model.StageIdentity,
			Signal: "identity",
			Patterns: []string{
				`who are you|who is this|who'?s this|what company (?:are you|is this)`,
				`how did you (?:get|find)|where did you (?:get|find)`,
				`what'?s the catch|what is the catch|how does this work|is this (?:legit|real|a scam)|why (?:are you reaching|me)`,
			},
		},
		{
			Stage:  model.StageScope,
			Signal: "scope",
			Patterns: []string{
				`what (?:size|type|kind|sort) of|deal size|check size|ticket size`,
				`minimums?\b|\baum\b|budget range|price range|how (?:big|large|many)`,
				`geograph|what (?:area|region|market)s?\b|which (?:industr|sector)|criteria|parameters|stage (?:of|are they)`,
			},
		},
		{
			Stage:  model.StageInterest,
			Signal: "interest",
			Patterns: []string{
				`\binterested\b|\bintrigued\b|sounds (?:good|great|interesting)|\bsure\b`,
				`open to|happy to (?:chat|connect|talk|hear)|would love|keen to|why not`,
				`tell me more|more (?:info|details)|let'?s (?:talk|chat|connect|do it)|^yes\b|yes,? (?:please|let'?s)`,
			},
		},
		{
			Stage:  model.StageConfusion,
			Signal: "confusion",
			Patterns: []string{
				`what (?:do|did) you mean|what you mean|makes no sense`,
				`do ?n[o']t understand|i'?m confused|confusing|(?:ca|do)n'?t follow`,
				`wrong person|what is this (?:about|regarding)?[?]?$|what are you (?:talking|referring)|huh\b|come again`,
			},
		},
	}
}

// positiveIntentPhrases is the vocabulary checked for negation before the
// candidate families run. A negated positive phrase suppresses INTEREST.
var positiveIntentPhrases = []string{
	"interested", "sure", "yes", "open to", "happy to", "sounds good",
}

// strongDisclaimers short-circuit a negated positive intent straight to
// NEGATIVE.
var strongDisclaimers = []string{
	"i don't think", "not really", "prefer not", "rather not",
}

// okTrapPattern catches soft refusals ("not ok", "not sure") that the family
// tables read as nothing at all. Confusion wording bypasses the trap because
// "not sure what you mean" is confusion, not refusal.
const okTrapPattern = `not ok(?:ay)?\b|not sure`
