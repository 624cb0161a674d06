package tourney

// Step names one screen of the guided session flow.
type Step string

const (
	StepWelcome        Step = "WELCOME"
	StepRules          Step = "RULES"
	StepRoundPreview   Step = "ROUND_PREVIEW"
	StepStrategy       Step = "STRATEGY_REGISTRATION"
	StepMatching       Step = "MATCHING_DISPLAY"
	StepBattle         Step = "BATTLE_PROGRESS"
	StepRoundReveal    Step = "ROUND_REVEAL"
	StepFinalStandings Step = "FINAL_STANDINGS"
)

// Progress is the session's position in the step sequence. It is a dumb
// stepper: Advance moves unconditionally and never fails. Business gates
// (round locked, all games reported) live on the Store's query surface and
// are checked by the caller before offering the transition.
type Progress struct {
	Step        Step `json:"step"`
	RoundIndex  int  `json:"round_index"`
	TotalRounds int  `json:"total_rounds"`
}

func NewProgress(totalRounds int) Progress {
	return Progress{Step: StepWelcome, TotalRounds: totalRounds}
}

// Advance returns the next position. From ROUND_REVEAL it loops back to
// ROUND_PREVIEW with the next round index while rounds remain, otherwise
// moves to FINAL_STANDINGS. FINAL_STANDINGS is terminal.
func (p Progress) Advance() Progress {
	switch p.Step {
	case StepWelcome:
		p.Step = StepRules
	case StepRules:
		p.Step = StepRoundPreview
	case StepRoundPreview:
		p.Step = StepStrategy
	case StepStrategy:
		p.Step = StepMatching
	case StepMatching:
		p.Step = StepBattle
	case StepBattle:
		p.Step = StepRoundReveal
	case StepRoundReveal:
		if p.RoundIndex < p.TotalRounds-1 {
			p.RoundIndex++
			p.Step = StepRoundPreview
		} else {
			p.Step = StepFinalStandings
		}
	}
	return p
}
