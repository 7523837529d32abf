package level

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyBoundaries(t *testing.T) {
	cases := []struct {
		points int
		level  int
		name   string
	}{
		{0, 1, "Iniciante"},
		{499, 1, "Iniciante"},
		{500, 2, "Estradeiro"},
		{1499, 2, "Estradeiro"},
		{1500, 3, "Rodagem Alta"},
		{2999, 3, "Rodagem Alta"},
		{3000, 4, "Veterano"},
		{4999, 4, "Veterano"},
		{5000, 5, "Rei do Asfalto"},
		{7999, 5, "Rei do Asfalto"},
		{8000, 6, "Lenda da Estrada"},
		{999999, 6, "Lenda da Estrada"},
	}

	for _, c := range cases {
		got := Classify(c.points)
		assert.Equal(t, c.level, got.Level, "points=%d", c.points)
		assert.Equal(t, c.name, got.Name, "points=%d", c.points)
	}
}

func TestClassifyBandEdges(t *testing.T) {
	l := Classify(600)
	assert.Equal(t, 500, l.Min)
	assert.Equal(t, 1500, l.Max)
}

func TestProgressClamped(t *testing.T) {
	assert.Equal(t, 0.0, Progress(0))
	assert.InDelta(t, 0.5, Progress(250), 1e-9)
	// top tier never exceeds a full bar
	assert.LessOrEqual(t, Progress(500000), 1.0)
	// exact tier start is an empty bar
	assert.Equal(t, 0.0, Progress(1500))
}
