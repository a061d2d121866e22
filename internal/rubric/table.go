package rubric

// Shared detection rules. Several methodologies coach the same ritual under a
// different name, so the rules live once and the variant table reuses them.
var (
	rapportRule = DetectionRule{
		Primary: []string{
			"how have you been", "good to see you", "great to meet you",
			"how's your week", "thanks for taking the time",
		},
		Support:    []string{"weekend", "family", "appreciate you", "glad we could connect"},
		ProbeTerms: []string{"you", "your team"},
		Gap:        "Open the next call with a genuine personal check-in before moving to business.",
	}

	upFrontContractRule = DetectionRule{
		Primary: []string{
			"up-front contract", "upfront contract", "agenda for today",
			"at the end of this call", "by the end of our call",
			"is it fair to say", "does that sound fair", "sound fair",
			"is it okay if we", "what i'd like to cover",
		},
		Support:    []string{"agenda", "outcome of this call", "next 30 minutes", "how much time do we have"},
		ProbeTerms: []string{"agenda", "expect"},
		Gap:        "Set an explicit up-front contract: agenda, time, and the decision to be made by call end.",
	}

	painRule = DetectionRule{
		Primary: []string{
			"biggest challenge", "what's the impact", "how long has this been",
			"what happens if", "what have you tried", "tell me more about",
			"why is that a problem", "how does that affect",
		},
		Support:    []string{"challenge", "pain", "problem", "struggle", "frustrat", "bottleneck", "costing you"},
		ProbeTerms: []string{"challenge", "problem", "pain", "impact", "why"},
		Gap:        "Dig at least two follow-up questions deeper into the prospect's pain before presenting.",
	}

	budgetRule = DetectionRule{
		Primary: []string{
			"budget", "what are you investing", "investment range",
			"what are you spending", "cost of doing nothing", "set aside for this",
		},
		Support:    []string{"pricing", "cost", "spend", "afford", "roi"},
		ProbeTerms: []string{"budget", "invest", "spend", "cost"},
		Gap:        "Surface the budget conversation: ask what they are investing today and what solving this is worth.",
	}

	decisionRule = DetectionRule{
		Primary: []string{
			"who else is involved", "decision process", "who signs off",
			"how do decisions get made", "who makes the final call",
			"decision maker", "procurement",
		},
		Support:    []string{"stakeholder", "committee", "approval", "sign-off", "evaluate"},
		ProbeTerms: []string{"decision", "who", "approve"},
		Gap:        "Map the decision process: identify every stakeholder and how the final call gets made.",
	}

	fulfillmentRule = DetectionRule{
		Primary: []string{
			"here's how we'd", "proposal", "what we would deliver",
			"implementation", "onboarding", "how this would work for you",
		},
		Support:    []string{"demo", "solution", "deliverable", "timeline"},
		ProbeTerms: []string{"fit", "solution"},
		Gap:        "Present fulfillment only against pains the prospect confirmed, not a generic pitch.",
	}

	postSellRule = DetectionRule{
		Primary: []string{
			"buyer's remorse", "are you sure", "what could derail",
			"if anything changes", "who might push back",
		},
		Support:    []string{"second thoughts", "concerns before we", "anything that would stop"},
		ProbeTerms: []string{"concern", "hesitat"},
		Gap:        "Post-sell the decision: ask what could derail it before the call ends.",
	}

	nextStepsRule = DetectionRule{
		Primary: []string{
			"next step", "follow up on", "schedule a", "put time on the calendar",
			"by next week", "send over the",
		},
		Support:    []string{"calendar", "recap", "action item"},
		ProbeTerms: []string{"next", "when"},
		Gap:        "Close with a concrete, calendared next step instead of an open-ended follow-up.",
	}

	teachRule = DetectionRule{
		Primary: []string{
			"what we've seen across", "most companies like yours", "industry data",
			"here's what's surprising", "a different way to look at",
		},
		Support:    []string{"insight", "benchmark", "research shows", "trend"},
		ProbeTerms: []string{"consider", "thought about"},
		Gap:        "Lead with a commercial insight that reframes the prospect's problem, not with product.",
	}

	tailorRule = DetectionRule{
		Primary: []string{
			"for your role", "in your industry", "given your team",
			"specific to your", "your priorities",
		},
		Support:    []string{"your situation", "your market", "your customers"},
		ProbeTerms: []string{"priorit", "matter to you"},
		Gap:        "Tailor the message to this stakeholder's metrics and priorities.",
	}

	takeControlRule = DetectionRule{
		Primary: []string{
			"let's agree on", "i'd push back", "the way this usually works",
			"i recommend we", "to keep this moving",
		},
		Support:    []string{"pressure-test", "challenge that", "disagree"},
		ProbeTerms: []string{"agree", "commit"},
		Gap:        "Take control of the process: assert the path forward and pressure-test objections directly.",
	}

	situationRule = DetectionRule{
		Primary: []string{
			"walk me through your current", "how are you handling",
			"what does your process look like", "how is your team set up",
		},
		Support:    []string{"currently", "today you", "existing"},
		ProbeTerms: []string{"current", "process", "how"},
		Gap:        "Establish the current situation with open questions before probing problems.",
	}

	needPayoffRule = DetectionRule{
		Primary: []string{
			"what would it mean if", "how valuable would", "if you could solve",
			"what would that free you up", "how would that help",
		},
		Support:    []string{"value to you", "benefit", "save you"},
		ProbeTerms: []string{"value", "mean for you"},
		Gap:        "Ask need-payoff questions so the prospect states the value of solving the problem themselves.",
	}

	futureStateRule = DetectionRule{
		Primary: []string{
			"where do you want to be", "what does success look like",
			"ideal outcome", "twelve months from now", "a year from now",
		},
		Support:    []string{"goal", "target", "vision", "aspiration"},
		ProbeTerms: []string{"goal", "success", "future"},
		Gap:        "Paint the future state: have the prospect describe where they want to be and by when.",
	}

	gapImpactRule = DetectionRule{
		Primary: []string{
			"the gap between", "what's standing in the way", "what's the difference costing",
			"to close that gap", "holding you back",
		},
		Support:    []string{"gap", "shortfall", "distance", "blocker"},
		ProbeTerms: []string{"gap", "blocking"},
		Gap:        "Quantify the gap between current and future state and what it costs to leave it open.",
	}

	championRule = DetectionRule{
		Primary: []string{
			"will you champion", "can you advocate", "who internally is pushing for this",
			"sell this internally", "your sponsor",
		},
		Support:    []string{"champion", "advocate", "sponsor"},
		ProbeTerms: []string{"champion", "internal"},
		Gap:        "Identify and equip an internal champion who sells when you are not in the room.",
	}

	overallRule = DetectionRule{
		Derived: true,
		Gap:     "Tighten overall call structure: clear contract, deep discovery, and a committed close.",
	}
)

// rubrics is the single variant table. Every methodology is just an ordered
// component list over the shared rule set.
var rubrics = map[Methodology]Rubric{
	MethodologySandler: {
		Methodology: MethodologySandler,
		Components: []Component{
			{Name: "Bonding & Rapport", Key: "rapport", Rule: rapportRule},
			{Name: "Up-Front Contract", Key: "up-front contract", Rule: upFrontContractRule},
			{Name: "Pain", Key: "pain", Rule: painRule},
			{Name: "Budget", Key: "budget", Rule: budgetRule},
			{Name: "Decision", Key: "decision", Rule: decisionRule},
			{Name: "Fulfillment", Key: "fulfillment", Rule: fulfillmentRule},
			{Name: "Post-Sell", Key: "post-sell", Rule: postSellRule},
			{Name: "Overall", Key: "overall", Rule: overallRule},
		},
	},
	MethodologyMEDDIC: {
		Methodology: MethodologyMEDDIC,
		Components: []Component{
			{Name: "Metrics", Key: "budget", Rule: budgetRule},
			{Name: "Economic Buyer", Key: "decision", Rule: decisionRule},
			{Name: "Decision Criteria", Key: "decision", Rule: decisionRule},
			{Name: "Decision Process", Key: "decision", Rule: decisionRule},
			{Name: "Identify Pain", Key: "pain", Rule: painRule},
			{Name: "Champion", Key: "champion", Rule: championRule},
		},
	},
	MethodologyChallenger: {
		Methodology: MethodologyChallenger,
		Components: []Component{
			{Name: "Teach", Key: "teach", Rule: teachRule},
			{Name: "Tailor", Key: "tailor", Rule: tailorRule},
			{Name: "Take Control", Key: "take control", Rule: takeControlRule},
			{Name: "Constructive Tension", Key: "pain", Rule: painRule},
			{Name: "Next Steps", Key: "next steps", Rule: nextStepsRule},
		},
	},
	MethodologySPIN: {
		Methodology: MethodologySPIN,
		Components: []Component{
			{Name: "Situation", Key: "situation", Rule: situationRule},
			{Name: "Problem", Key: "pain", Rule: painRule},
			{Name: "Implication", Key: "pain", Rule: painRule},
			{Name: "Need-Payoff", Key: "need-payoff", Rule: needPayoffRule},
			{Name: "Next Steps", Key: "next steps", Rule: nextStepsRule},
		},
	},
	MethodologyGap: {
		Methodology: MethodologyGap,
		Components: []Component{
			{Name: "Current State", Key: "situation", Rule: situationRule},
			{Name: "Future State", Key: "future state", Rule: futureStateRule},
			{Name: "Gap Impact", Key: "gap impact", Rule: gapImpactRule},
			{Name: "Budget", Key: "budget", Rule: budgetRule},
			{Name: "Next Steps", Key: "next steps", Rule: nextStepsRule},
		},
	},
	MethodologyGeneric: {
		Methodology: MethodologyGeneric,
		Components: []Component{
			{Name: "Rapport", Key: "rapport", Rule: rapportRule},
			{Name: "Discovery", Key: "pain", Rule: painRule},
			{Name: "Qualification", Key: "up-front contract", Rule: upFrontContractRule},
			{Name: "Budget", Key: "budget", Rule: budgetRule},
			{Name: "Decision Process", Key: "decision", Rule: decisionRule},
			{Name: "Next Steps", Key: "next steps", Rule: nextStepsRule},
		},
	},
}
