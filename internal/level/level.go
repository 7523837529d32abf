package level

// Level is a named point band used for progress-bar rendering. It is derived
// from the point total on every read and never persisted.
type Level struct {
	Level int    `json:"level"`
	Name  string `json:"name"`
	Min   int    `json:"min"`
	Max   int    `json:"max"`
	Icon  string `json:"icon"`
}

// Classify maps a point total onto its tier. The top tier's Max is a display
// ceiling for the progress bar, not a cap on points.
func Classify(points int) Level {
	switch {
	case points >= 8000:
		return Level{Level: 6, Name: "Lenda da Estrada", Min: 8000, Max: 99999, Icon: "👑"}
	case points >= 5000:
		return Level{Level: 5, Name: "Rei do Asfalto", Min: 5000, Max: 8000, Icon: "🦁"}
	case points >= 3000:
		return Level{Level: 4, Name: "Veterano", Min: 3000, Max: 5000, Icon: "🦅"}
	case points >= 1500:
		return Level{Level: 3, Name: "Rodagem Alta", Min: 1500, Max: 3000, Icon: "🚛"}
	case points >= 500:
		return Level{Level: 2, Name: "Estradeiro", Min: 500, Max: 1500, Icon: "🛣️"}
	default:
		return Level{Level: 1, Name: "Iniciante", Min: 0, Max: 500, Icon: "🥚"}
	}
}

// Progress returns the fill fraction of the tier's progress bar, clamped to
// [0, 1].
func Progress(points int) float64 {
	l := Classify(points)
	p := float64(points-l.Min) / float64(l.Max-l.Min)
	if p < 0 {
		return 0
	}
	if p > 1 {
		return 1
	}
	return p
}
