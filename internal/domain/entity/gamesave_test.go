package entity

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGameSaveSanitize(t *testing.T) {
	save := &GameSave{
		Day:       -3,
		Funds:     -12.5,
		Inventory: map[string]int{"lemons": -1, "cups": 4},
		Sliders:   map[string]float64{"price": math.NaN(), "ads": 30},
	}

	repaired := save.Sanitize()

	assert.True(t, repaired)
	assert.Equal(t, 1, save.Day)
	assert.Equal(t, 0.0, save.Funds)
	assert.Equal(t, 0, save.Inventory["lemons"])
	assert.Equal(t, 4, save.Inventory["cups"])
	assert.Equal(t, SliderFallback, save.Sliders["price"])
	assert.Equal(t, 30.0, save.Sliders["ads"])
}

func TestGameSaveSanitize_CleanSaveUntouched(t *testing.T) {
	save := &GameSave{Day: 4, Funds: 22, Sliders: map[string]float64{"price": 75}}

	assert.False(t, save.Sanitize())
	assert.Equal(t, 4, save.Day)
	assert.Equal(t, 75.0, save.Sliders["price"])
}
