package rules

import "testing"

func TestBaselineValidates(t *testing.T) {
	c := Baseline()
	if err := c.Validate(); err != nil {
		t.Fatalf("baseline catalog failed validation: %v", err)
	}
	if len(c.Technologies) == 0 || len(c.Cultures) == 0 || len(c.Civilizations) == 0 {
		t.Fatal("baseline catalog is missing core tables")
	}
}

func TestValidateRejectsBrokenReferences(t *testing.T) {
	tests := []struct {
		name  string
		corrupt func(*Catalog)
	}{
		{"tech requires unknown tech", func(c *Catalog) {
			c.Technologies["bad"] = &TechnologyDef{ID: "bad", Cost: 10, Requires: Requirements{Techs: []string{"no-such"}}}
		}},
		{"tech key mismatch", func(c *Catalog) {
			c.Technologies["bad"] = &TechnologyDef{ID: "other", Cost: 10}
		}},
		{"tech with zero cost", func(c *Catalog) {
			c.Technologies["bad"] = &TechnologyDef{ID: "bad", Cost: 0}
		}},
		{"equipment costs unknown resource", func(c *Catalog) {
			c.Equipment["bad"] = &EquipmentDef{ID: "bad", ResourceCost: map[string]int{"no-such": 1}}
		}},
		{"equipment restricted to unknown unit", func(c *Catalog) {
			c.Equipment["bad"] = &EquipmentDef{ID: "bad", Units: []string{"no-such"}}
		}},
		{"pantheon with unknown belief", func(c *Catalog) {
			c.Pantheons["bad"] = &PantheonDef{ID: "bad", Beliefs: []string{"no-such"}}
		}},
		{"pantheon with no beliefs", func(c *Catalog) {
			c.Pantheons["bad"] = &PantheonDef{ID: "bad"}
		}},
		{"pantheon upgrading to unknown", func(c *Catalog) {
			c.Pantheons["bad"] = &PantheonDef{ID: "bad", Beliefs: []string{"solar-tithe"}, UpgradesTo: "no-such"}
		}},
		{"religion requiring unknown pantheon", func(c *Catalog) {
			c.Religions["bad"] = &ReligionDef{ID: "bad", Pantheon: "no-such"}
		}},
		{"civilization with negative capacity", func(c *Catalog) {
			c.Civilizations["bad"] = &CivilizationDef{ID: "bad", BaseCityCap: -1}
		}},
		{"civilization with unknown government", func(c *Catalog) {
			c.Civilizations["bad"] = &CivilizationDef{ID: "bad", StartingGovernment: "no-such"}
		}},
		{"unit with zero health", func(c *Catalog) {
			c.CombatUnits["bad"] = &CombatUnitDef{ID: "bad", MaxHealth: 0}
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := Baseline()
			tt.corrupt(c)
			if err := c.Validate(); err == nil {
				t.Error("Validate() accepted a broken catalog")
			}
		})
	}
}

func TestCatalogLookups(t *testing.T) {
	c := Baseline()

	if c.Technology("fusion-power") == nil {
		t.Error("known technology lookup returned nil")
	}
	if c.Technology("no-such") != nil {
		t.Error("unknown technology lookup should return nil")
	}
	if c.Pantheon("star-cult") == nil {
		t.Error("known pantheon lookup returned nil")
	}
	if c.Civilization("drift-clans") == nil {
		t.Error("known civilization lookup returned nil")
	}

	ids := c.TechnologyIDs()
	if len(ids) != len(c.Technologies) {
		t.Fatalf("TechnologyIDs() returned %d ids, want %d", len(ids), len(c.Technologies))
	}
	for i := 1; i < len(ids); i++ {
		if ids[i-1] >= ids[i] {
			t.Fatalf("TechnologyIDs() not sorted: %q before %q", ids[i-1], ids[i])
		}
	}
}
