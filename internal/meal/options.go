package meal

// Choice is one selectable value of an attribute.
type Choice struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

// Domains holds the closed set of values for every attribute. Dataset
// samples and validated submissions only ever use these values.
var Domains = map[Attribute][]Choice{
	AttrMood: {
		{"happy", "Happy"},
		{"sad", "Sad"},
		{"neutral", "Neutral"},
		{"angry", "Angry"},
		{"excited", "Excited"},
		{"lovable", "Lovable"},
	},
	AttrCraving: {
		{"spicy", "Spicy"},
		{"sweet", "Sweet"},
		{"savory", "Savory"},
		{"crunchy", "Crunchy"},
		{"comfort", "Comfort"},
		{"healthy", "Healthy"},
	},
	AttrHunger: {
		{"low", "Low"},
		{"medium", "Medium"},
		{"high", "High"},
	},
	AttrTime: {
		{"morning", "Morning"},
		{"afternoon", "Afternoon"},
		{"evening", "Evening"},
		{"night", "Night"},
	},
	AttrDiet: {
		{"veg", "Vegetarian"},
		{"non-veg", "Non-Veg"},
		{"vegan", "Vegan"},
		{"egg", "Egg"},
	},
	AttrRestrictions: {
		{"none", "None"},
		{"gluten-free", "Gluten-Free"},
		{"nut-free", "Nut-Free"},
		{"lactose-free", "Lactose-Free"},
		{"low-sugar", "Low Sugar"},
	},
	AttrWeather: {
		{"hot", "Hot"},
		{"cold", "Cold"},
		{"rainy", "Rainy"},
	},
	AttrActivity: {
		{"resting", "Resting"},
		{"normal", "Normal"},
		{"active", "Active"},
		{"post-workout", "Post-Workout"},
	},
	AttrBudget: {
		{"low", "Low"},
		{"medium", "Medium"},
		{"high", "High"},
	},
}

// IsValid reports whether value belongs to the domain of attr.
func IsValid(attr Attribute, value string) bool {
	for _, c := range Domains[attr] {
		if c.Value == value {
			return true
		}
	}
	return false
}

// Hunger slider thresholds.
const (
	hungerMediumFrom = 33
	hungerHighFrom   = 66
)

// HungerFromLevel maps a 0-100 slider position to a hunger category.
func HungerFromLevel(level int) string {
	switch {
	case level < hungerMediumFrom:
		return "low"
	case level < hungerHighFrom:
		return "medium"
	default:
		return "high"
	}
}
