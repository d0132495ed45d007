package agent

// fallbacks is the local default bank. Every mode has a complete Response
// so a failed or rate-limited dispatch still produces a full message.
var fallbacks = map[Mode]Response{
	ModeSessionComplete: {
		Message:           "Session complete! Great focus - your garden is growing.",
		Tone:              "celebratory",
		SuggestedDuration: 1500,
	},
	ModeSessionAbandoned: {
		Message:           "No worries, every attempt counts. Try a shorter session next time?",
		Tone:              "supportive",
		SuggestedDuration: 900,
	},
	ModeFinalMinute: {
		Message: "Final minute - you've got this!",
		Tone:    "encouraging",
	},
	ModeWelcomeBack: {
		Message:           "Welcome back! Ready to pick up where you left off?",
		Tone:              "warm",
		SuggestedDuration: 1500,
	},
	ModeEncouragement: {
		Message: "Keep it up - consistency beats intensity.",
		Tone:    "encouraging",
	},
	ModeArchitectureAdvice: {
		Message:       "Your stack is coming along. A solid next step is whatever unlocks your most-used path.",
		SuggestedItem: "",
		Reasoning:     "Build out the request path before adding extras.",
	},
}

// Fallback returns the complete default response for a mode. Unknown modes
// get the encouragement default so callers are never left without text.
func Fallback(mode Mode) Response {
	if resp, ok := fallbacks[mode]; ok {
		return resp
	}
	return fallbacks[ModeEncouragement]
}

// Normalize fills any empty field of a persona reply from the mode's
// defaults. The result always carries every field the mode's fallback
// defines, so downstream rendering never sees a partial shape.
func Normalize(resp Response, mode Mode) Response {
	def := Fallback(mode)
	if resp.Message == "" {
		resp.Message = def.Message
	}
	if resp.Tone == "" {
		resp.Tone = def.Tone
	}
	if resp.SuggestedDuration <= 0 {
		resp.SuggestedDuration = def.SuggestedDuration
	}
	if resp.SuggestedItem == "" {
		resp.SuggestedItem = def.SuggestedItem
	}
	if resp.Reasoning == "" {
		resp.Reasoning = def.Reasoning
	}
	return resp
}
