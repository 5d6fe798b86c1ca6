package service

// Portion is one resolved ingredient line as seen by calorie aggregation.
type Portion struct {
	Quantity        float64
	CaloriesPerUnit *float64
}

// CalculateCalories sums quantity × caloriesPerUnit over the portions.
// Portions without a calorie value contribute nothing.
func CalculateCalories(portions []Portion) float64 {
	var total float64
	for _, p := range portions {
		if p.CaloriesPerUnit == nil {
			continue
		}
		total += p.Quantity * *p.CaloriesPerUnit
	}
	return total
}
