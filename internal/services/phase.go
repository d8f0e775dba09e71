package services

type Phase string

const (
	PhaseMenstrual  Phase = "menstrual"
	PhaseFollicular Phase = "follicular"
	PhaseOvulatory  Phase = "ovulatory"
	PhaseLuteal     Phase = "luteal"
)

type PhaseInfo struct {
	Phase       Phase  `json:"phase" yaml:"phase"`
	Name        string `json:"name" yaml:"name"`
	Icon        string `json:"icon" yaml:"icon"`
	Description string `json:"description" yaml:"description"`
	Hormones    string `json:"hormones" yaml:"hormones"`
	Advice      string `json:"advice" yaml:"advice"`
}

var phaseDetails = map[Phase]PhaseInfo{
	PhaseMenstrual: {
		Phase:       PhaseMenstrual,
		Name:        "Menstrual phase",
		Icon:        "🌙",
		Description: "The uterine lining sheds and a new cycle begins.",
		Hormones:    "Estrogen and progesterone are at their lowest.",
		Advice:      "Rest when you need to, stay warm and keep iron-rich food on the menu.",
	},
	PhaseFollicular: {
		Phase:       PhaseFollicular,
		Name:        "Follicular phase",
		Icon:        "🌸",
		Description: "Follicles mature in the ovaries and energy usually rises.",
		Hormones:    "Estrogen climbs steadily while FSH stimulates the follicles.",
		Advice:      "A good window for new plans, harder workouts and social time.",
	},
	PhaseOvulatory: {
		Phase:       PhaseOvulatory,
		Name:        "Ovulatory phase",
		Icon:        "☀️",
		Description: "An egg is released; this is the most fertile part of the cycle.",
		Hormones:    "An LH surge triggers ovulation and estrogen peaks.",
		Advice:      "Stay hydrated and keep track of any mid-cycle discomfort.",
	},
	PhaseLuteal: {
		Phase:       PhaseLuteal,
		Name:        "Luteal phase",
		Icon:        "🍂",
		Description: "The body prepares for a possible pregnancy; PMS may appear late in this phase.",
		Hormones:    "Progesterone rises, then both hormones fall if no pregnancy occurs.",
		Advice:      "Favour steady meals, gentle movement and extra sleep.",
	},
}

// ClassifyPhase maps a 1-based cycle day to a phase. Ovulation is assumed
// LutealPhaseDays before the next period, matching ComputeStats. The
// ovulatory phase spans the three days centred on ovulationDay.
func ClassifyPhase(dayOfCycle int, stats CycleStats) Phase {
	if dayOfCycle <= stats.AvgPeriodLength {
		return PhaseMenstrual
	}
	ovulationDay := stats.AvgCycleLength - LutealPhaseDays
	switch {
	case dayOfCycle < ovulationDay-1:
		return PhaseFollicular
	case dayOfCycle <= ovulationDay+1:
		return PhaseOvulatory
	default:
		return PhaseLuteal
	}
}

func PhaseDetails(phase Phase) (PhaseInfo, bool) {
	info, ok := phaseDetails[phase]
	return info, ok
}
