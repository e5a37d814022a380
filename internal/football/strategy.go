package football

// StrategicAxes is the abstract tactical posture, each axis in [0,100].
type StrategicAxes struct {
	Aggression      float64 `json:"aggression"`
	VerticalDepth   float64 `json:"vertical_depth"`
	PositionalFocus float64 `json:"positional_focus"`
}

// ExecutionModifiers shape pacing and misdirection, each in [0,1].
type ExecutionModifiers struct {
	Tempo     float64 `json:"tempo"`
	Deception float64 `json:"deception"`
}

// DynamicStrategy is regenerated every play from the match context.
type DynamicStrategy struct {
	Axes      StrategicAxes      `json:"axes"`
	Modifiers ExecutionModifiers `json:"modifiers"`
}

// Bounded returns a copy with every axis and modifier clamped to range.
func (s DynamicStrategy) Bounded() DynamicStrategy {
	return DynamicStrategy{
		Axes: StrategicAxes{
			Aggression:      clamp(s.Axes.Aggression, 0, 100),
			VerticalDepth:   clamp(s.Axes.VerticalDepth, 0, 100),
			PositionalFocus: clamp(s.Axes.PositionalFocus, 0, 100),
		},
		Modifiers: ExecutionModifiers{
			Tempo:     clamp(s.Modifiers.Tempo, 0, 1),
			Deception: clamp(s.Modifiers.Deception, 0, 1),
		},
	}
}
