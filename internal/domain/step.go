package domain

// DetailedStep is one normalized sub-leg of a transit item, such as a
// single bus ride or a walk between platforms.
type DetailedStep struct {
	Title     string   `json:"title"`
	Time      string   `json:"time"`
	Icon      string   `json:"icon,omitempty"`
	Tag       string   `json:"tag,omitempty"`
	Type      StepType `json:"type"`
	Color     string   `json:"color,omitempty"`
	TextColor string   `json:"textColor,omitempty"`
	Info      StepInfo `json:"transitInfo"`
}

// StepInfo holds the stop chaining of a step. Duration is in minutes;
// DepTime and ArrTime are "HH:MM" clocks when the provider reports them.
type StepInfo struct {
	DepStop   string `json:"depStop,omitempty"`
	ArrStop   string `json:"arrStop,omitempty"`
	DepTime   string `json:"depTime,omitempty"`
	ArrTime   string `json:"arrTime,omitempty"`
	Duration  int    `json:"duration"`
	StopCount *int   `json:"stopCount,omitempty"`
}

// CloneSteps copies steps without sharing their stop counts.
func CloneSteps(steps []DetailedStep) []DetailedStep {
	if steps == nil {
		return nil
	}
	out := make([]DetailedStep, len(steps))
	for i, s := range steps {
		if s.Info.StopCount != nil {
			s.Info.StopCount = IntPtr(*s.Info.StopCount)
		}
		out[i] = s
	}
	return out
}

// TotalStepMinutes sums the durations of steps.
func TotalStepMinutes(steps []DetailedStep) int {
	total := 0
	for _, s := range steps {
		total += s.Info.Duration
	}
	return total
}
