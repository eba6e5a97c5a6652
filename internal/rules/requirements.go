package rules

// RequirementState is the read view a civilization exposes so requirement
// predicates can be evaluated without reaching into its internals.
type RequirementState interface {
	HasTech(id string) bool
	HasCulture(id string) bool
	HasPolicy(id string) bool
	GovernmentID() string
	CityCount() int
}

// Requirements gates a definition behind prior progression. All listed
// conditions must hold; a zero value is always met.
type Requirements struct {
	Techs      []string `json:"techs,omitempty"`
	Cultures   []string `json:"cultures,omitempty"`
	Policies   []string `json:"policies,omitempty"`
	Government string   `json:"government,omitempty"`
	MinCities  int      `json:"min_cities,omitempty"`
}

// IsZero returns true when the requirements gate nothing.
func (r Requirements) IsZero() bool {
	return len(r.Techs) == 0 && len(r.Cultures) == 0 && len(r.Policies) == 0 &&
		r.Government == "" && r.MinCities == 0
}

// Met evaluates every condition against the given state.
func (r Requirements) Met(s RequirementState) bool {
	for _, id := range r.Techs {
		if !s.HasTech(id) {
			return false
		}
	}
	for _, id := range r.Cultures {
		if !s.HasCulture(id) {
			return false
		}
	}
	for _, id := range r.Policies {
		if !s.HasPolicy(id) {
			return false
		}
	}
	if r.Government != "" && s.GovernmentID() != r.Government {
		return false
	}
	if r.MinCities > 0 && s.CityCount() < r.MinCities {
		return false
	}
	return true
}
