package service

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func float(v float64) *float64 { return &v }

func TestCalculateCalories(t *testing.T) {
	tests := []struct {
		name     string
		portions []Portion
		want     float64
	}{
		{name: "empty", portions: nil, want: 0},
		{
			name: "sums quantity times calories",
			portions: []Portion{
				{Quantity: 2, CaloriesPerUnit: float(20)},
				{Quantity: 1, CaloriesPerUnit: float(884)},
			},
			want: 924,
		},
		{
			name: "missing calorie value contributes nothing",
			portions: []Portion{
				{Quantity: 3, CaloriesPerUnit: nil},
				{Quantity: 0.5, CaloriesPerUnit: float(100)},
			},
			want: 50,
		},
		{
			name:     "zero calorie ingredient",
			portions: []Portion{{Quantity: 10, CaloriesPerUnit: float(0)}},
			want:     0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.InDelta(t, tt.want, CalculateCalories(tt.portions), 1e-9)
		})
	}
}
