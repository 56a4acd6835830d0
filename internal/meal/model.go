package meal

// Attribute names one of the profile fields a sample is matched on.
type Attribute string

const (
	AttrMood         Attribute = "mood"
	AttrCraving      Attribute = "craving"
	AttrHunger       Attribute = "hunger"
	AttrTime         Attribute = "time"
	AttrDiet         Attribute = "diet"
	AttrRestrictions Attribute = "restrictions"
	AttrWeather      Attribute = "weather"
	AttrActivity     Attribute = "activity"
	AttrBudget       Attribute = "budget"
)

// Attributes lists every scored attribute in a fixed order.
var Attributes = []Attribute{
	AttrMood,
	AttrCraving,
	AttrHunger,
	AttrTime,
	AttrDiet,
	AttrRestrictions,
	AttrWeather,
	AttrActivity,
	AttrBudget,
}

// Defaults for the optional attributes of a submission.
const (
	DefaultRestrictions = "none"
	DefaultBudget       = "medium"
	DefaultActivity     = "normal"
)

// Profile is the context a meal is eaten in: what a user reports, or what a
// sample is ideal for.
type Profile struct {
	Mood         string `json:"mood"`
	Craving      string `json:"craving"`
	Hunger       string `json:"hunger"`
	Time         string `json:"time"`
	Diet         string `json:"diet"`
	Restrictions string `json:"restrictions"`
	Weather      string `json:"weather"`
	Activity     string `json:"activity"`
	Budget       string `json:"budget"`
}

// UserInputs is the profile submitted by a user for one recommendation.
type UserInputs = Profile

// Value returns the value of attr, or "" for an unknown attribute.
func (p Profile) Value(attr Attribute) string {
	switch attr {
	case AttrMood:
		return p.Mood
	case AttrCraving:
		return p.Craving
	case AttrHunger:
		return p.Hunger
	case AttrTime:
		return p.Time
	case AttrDiet:
		return p.Diet
	case AttrRestrictions:
		return p.Restrictions
	case AttrWeather:
		return p.Weather
	case AttrActivity:
		return p.Activity
	case AttrBudget:
		return p.Budget
	}
	return ""
}

// WithDefaults returns a copy of p with empty optional attributes filled in.
func (p Profile) WithDefaults() Profile {
	if p.Restrictions == "" {
		p.Restrictions = DefaultRestrictions
	}
	if p.Budget == "" {
		p.Budget = DefaultBudget
	}
	if p.Activity == "" {
		p.Activity = DefaultActivity
	}
	return p
}

// Sample is one entry of the reference dataset.
type Sample struct {
	Profile
	Meal     string `json:"meal"`
	Category string `json:"category"`
	Reason   string `json:"reason"`
}

// Strategy reports how a recommendation was chosen.
type Strategy string

const (
	StrategyBestMatch      Strategy = "best_match"
	StrategyMoodFallback   Strategy = "mood_fallback"
	StrategyRandomFallback Strategy = "random_fallback"
)

// Result is the recommendation returned to the caller.
type Result struct {
	Meal       string   `json:"meal"`
	Category   string   `json:"category"`
	Reason     string   `json:"reason"`
	MatchScore int      `json:"matchScore"`
	Strategy   Strategy `json:"strategy"`
}
