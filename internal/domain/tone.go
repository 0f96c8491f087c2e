package domain

var statusTones = map[Status]Tone{
	StatusDraft:            ToneNeutral,
	StatusInternalReview:   ToneNeutral,
	StatusPublished:        ToneNeutral,
	StatusQA:               ToneNeutral,
	StatusSubmissionClosed: ToneWarn,
	StatusEvaluation:       ToneWarn,
	StatusAwarded:          ToneOK,
}

var riskTones = map[Risk]Tone{
	RiskNone:    ToneNeutral,
	RiskAtRisk:  ToneWarn,
	RiskOverdue: ToneDanger,
}

// StatusTone returns the badge tone for a status. Statuses outside the
// default workflow report ok=false and render neutral.
func StatusTone(s Status) (Tone, bool) {
	t, ok := statusTones[s]
	if !ok {
		return ToneNeutral, false
	}
	return t, true
}

// RiskTone returns the badge tone for a risk value.
func RiskTone(r Risk) (Tone, bool) {
	t, ok := riskTones[r]
	if !ok {
		return ToneNeutral, false
	}
	return t, true
}
