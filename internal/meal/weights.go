package meal

// Weights maps each attribute to the points a matching value is worth.
type Weights map[Attribute]int

// DefaultWeights is the weight table used by the recommender.
var DefaultWeights = Weights{
	AttrMood:         5,
	AttrCraving:      4,
	AttrDiet:         4,
	AttrRestrictions: 4,
	AttrHunger:       3,
	AttrTime:         3,
	AttrActivity:     2,
	AttrBudget:       2,
	AttrWeather:      1,
}

// Max returns the score of a sample matching on every attribute.
func (w Weights) Max() int {
	total := 0
	for _, attr := range Attributes {
		total += w[attr]
	}
	return total
}

// Score sums the weights of the attributes where inputs and sample are equal.
// Comparison is exact and case-sensitive; an empty input value never matches.
func (w Weights) Score(inputs UserInputs, sample Profile) int {
	score := 0
	for _, attr := range Attributes {
		if v := inputs.Value(attr); v != "" && v == sample.Value(attr) {
			score += w[attr]
		}
	}
	return score
}
