package rules

// Baseline returns the built-in definition catalog. Data packs loaded from
// disk overlay these tables entry by entry.
func Baseline() *Catalog {
	c := NewCatalog()
	for i := range baselineTechs {
		d := &baselineTechs[i]
		c.Technologies[d.ID] = d
	}
	for i := range baselineCultures {
		d := &baselineCultures[i]
		c.Cultures[d.ID] = d
	}
	for i := range baselinePolicies {
		d := &baselinePolicies[i]
		c.Policies[d.ID] = d
	}
	for i := range baselineGovernments {
		d := &baselineGovernments[i]
		c.Governments[d.ID] = d
	}
	for i := range baselineCombatUnits {
		d := &baselineCombatUnits[i]
		c.CombatUnits[d.ID] = d
	}
	for i := range baselineWorkerUnits {
		d := &baselineWorkerUnits[i]
		c.WorkerUnits[d.ID] = d
	}
	for i := range baselineBuildings {
		d := &baselineBuildings[i]
		c.Buildings[d.ID] = d
	}
	for i := range baselineEquipment {
		d := &baselineEquipment[i]
		c.Equipment[d.ID] = d
	}
	for i := range baselineProjectiles {
		d := &baselineProjectiles[i]
		c.Projectiles[d.ID] = d
	}
	for i := range baselineResources {
		d := &baselineResources[i]
		c.Resources[d.ID] = d
	}
	for i := range baselineBeliefs {
		d := &baselineBeliefs[i]
		c.Beliefs[d.ID] = d
	}
	for i := range baselinePantheons {
		d := &baselinePantheons[i]
		c.Pantheons[d.ID] = d
	}
	for i := range baselineReligions {
		d := &baselineReligions[i]
		c.Religions[d.ID] = d
	}
	for i := range baselineCivs {
		d := &baselineCivs[i]
		c.Civilizations[d.ID] = d
	}
	return c
}

// ys builds a YieldSet in channel order: gold, food, science, culture,
// faith, policy.
func ys(gold, food, science, culture, faith, policy int) YieldSet {
	return YieldSet{gold, food, science, culture, faith, policy}
}

var baselineTechs = []TechnologyDef{
	{
		ID: "fusion-power", Name: "Fusion Power", Cost: 40,
		Mods: []Modifier{{Target: Global, Yield: YieldScience, Pct: 0.05}},
	},
	{
		ID: "stellar-cartography", Name: "Stellar Cartography", Cost: 35,
		Mods: []Modifier{{Target: WorkerUnitTarget("surveyor"), Yield: YieldScience, Flat: 1}},
	},
	{
		ID: "cryo-agriculture", Name: "Cryo-Agriculture", Cost: 45,
		Mods: []Modifier{{Target: Global, Yield: YieldFood, Pct: 0.10}},
	},
	{
		ID: "deep-mining", Name: "Deep Mining", Cost: 50,
		Mods: []Modifier{{Target: WorkerUnitTarget("harvester-rig"), Yield: YieldGold, Flat: 2}},
	},
	{
		ID: "orbital-mechanics", Name: "Orbital Mechanics", Cost: 55,
		Requires: Requirements{Techs: []string{"fusion-power"}},
		Mods:     []Modifier{{Target: CombatUnitTarget("strike-frigate"), Yield: YieldGold, Flat: 1}},
	},
	{
		ID: "astrotheology", Name: "Astrotheology", Cost: 60,
		Requires: Requirements{Techs: []string{"fusion-power"}},
		Grant:    Grants{EnablesPantheons: true},
	},
	{
		ID: "xenolinguistics", Name: "Xenolinguistics", Cost: 65,
		Mods: []Modifier{{Target: Global, Yield: YieldCulture, Pct: 0.10}},
	},
	{
		ID: "drone-swarms", Name: "Drone Swarms", Cost: 70,
		Requires: Requirements{Techs: []string{"orbital-mechanics"}},
		Combat:   []CombatModifier{{Target: Global, Stat: StatAttack, Flat: 1}},
	},
	{
		ID: "gauss-armament", Name: "Gauss Armament", Cost: 75,
		Requires: Requirements{Techs: []string{"deep-mining"}},
	},
	{
		ID: "planetary-charter", Name: "Planetary Charter", Cost: 80,
		Requires: Requirements{Techs: []string{"cryo-agriculture"}},
		Grant:    Grants{CityCap: 1},
	},
	{
		ID: "neural-governance", Name: "Neural Governance", Cost: 90,
		Requires: Requirements{Techs: []string{"xenolinguistics"}},
		Grant:    Grants{GovernorSlots: 1},
	},
	{
		ID: "orbital-habitats", Name: "Orbital Habitats", Cost: 100,
		Requires: Requirements{Techs: []string{"planetary-charter"}},
		Mods:     []Modifier{{Target: Global, Yield: YieldFood, Flat: 2}},
		Grant:    Grants{CityCap: 1},
	},
	{
		ID: "terraforming", Name: "Terraforming", Cost: 120,
		Requires: Requirements{Techs: []string{"orbital-habitats"}},
		Mods:     []Modifier{{Target: WorkerUnitTarget("terraform-crew"), Yield: YieldFood, Pct: 0.25}},
	},
	{
		ID: "antimatter-lattice", Name: "Antimatter Lattice", Cost: 140,
		Requires: Requirements{Techs: []string{"drone-swarms", "gauss-armament"}},
		Combat:   []CombatModifier{{Target: Global, Stat: StatAttack, Flat: 2}},
	},
}

var baselineCultures = []CultureDef{
	{
		ID: "hearth-rites", Name: "Hearth Rites", Cost: 30,
		Mods: []Modifier{{Target: Global, Yield: YieldFaith, Pct: 0.10}},
	},
	{
		ID: "spacer-guilds", Name: "Spacer Guilds", Cost: 45,
		Requires: Requirements{Cultures: []string{"hearth-rites"}},
		Mods:     []Modifier{{Target: Global, Yield: YieldGold, Pct: 0.10}},
	},
	{
		ID: "void-pilgrims", Name: "Void Pilgrims", Cost: 50,
		Requires: Requirements{Cultures: []string{"hearth-rites"}},
		Mods:     []Modifier{{Target: Global, Yield: YieldFaith, Flat: 1}},
		Grant:    Grants{EnablesPantheons: true},
	},
	{
		ID: "colonial-code", Name: "Colonial Code", Cost: 55,
		Mods: []Modifier{{Target: Global, Yield: YieldPolicy, Pct: 0.20}},
	},
	{
		ID: "martial-creed", Name: "Martial Creed", Cost: 60,
		Mods:   []Modifier{{Target: CombatUnitTarget("marine-squad"), Yield: YieldGold, Flat: 1}},
		Combat: []CombatModifier{{Target: Global, Stat: StatDefense, Flat: 1}},
	},
	{
		ID: "orbital-festivals", Name: "Orbital Festivals", Cost: 70,
		Requires: Requirements{Cultures: []string{"spacer-guilds"}},
		Mods:     []Modifier{{Target: Global, Yield: YieldCulture, Pct: 0.15}},
	},
	{
		ID: "synthetic-ethics", Name: "Synthetic Ethics", Cost: 85,
		Requires: Requirements{Cultures: []string{"colonial-code"}},
		Grant:    Grants{GovernorSlots: 1},
	},
	{
		ID: "exodus-doctrine", Name: "Exodus Doctrine", Cost: 95,
		Requires: Requirements{Cultures: []string{"void-pilgrims"}},
		Grant:    Grants{PantheonCap: 1},
	},
}

var baselinePolicies = []PolicyDef{
	{
		ID: "tithe-mandate", Name: "Tithe Mandate", PointCost: 2,
		Mods: []Modifier{{Target: Global, Yield: YieldGold, Pct: 0.10}},
	},
	{
		ID: "ration-control", Name: "Ration Control", PointCost: 2,
		Mods: []Modifier{{Target: Global, Yield: YieldFood, Pct: 0.10}},
	},
	{
		ID: "research-grants", Name: "Research Grants", PointCost: 3,
		Requires: Requirements{Techs: []string{"fusion-power"}},
		Mods:     []Modifier{{Target: Global, Yield: YieldScience, Pct: 0.15}},
	},
	{
		ID: "temple-endowments", Name: "Temple Endowments", PointCost: 3,
		Requires: Requirements{Cultures: []string{"hearth-rites"}},
		Mods:     []Modifier{{Target: Global, Yield: YieldFaith, Pct: 0.15}},
	},
	{
		ID: "conscription", Name: "Conscription", PointCost: 3,
		Requires: Requirements{Cultures: []string{"martial-creed"}},
		Combat: []CombatModifier{
			{Target: Global, Stat: StatAttack, Flat: 1},
			{Target: CombatUnitTarget("marine-squad"), Stat: StatDefense, Flat: 1},
		},
	},
	{
		ID: "frontier-subsidies", Name: "Frontier Subsidies", PointCost: 4,
		Requires: Requirements{Policies: []string{"tithe-mandate"}},
		Grant:    Grants{CityCap: 1},
	},
	{
		ID: "drone-labor", Name: "Drone Labor", PointCost: 4,
		Requires: Requirements{Techs: []string{"drone-swarms"}},
		Mods:     []Modifier{{Target: WorkerUnitTarget("harvester-rig"), Yield: YieldGold, Pct: 0.20}},
	},
	{
		ID: "senate-charter", Name: "Senate Charter", PointCost: 5,
		Requires: Requirements{Cultures: []string{"colonial-code"}, MinCities: 2},
		Grant:    Grants{GovernorSlots: 1},
	},
}

var baselineGovernments = []GovernmentDef{
	{
		ID: "survey-council", Name: "Survey Council",
		Mods: []Modifier{{Target: Global, Yield: YieldScience, Pct: 0.05}},
	},
	{
		ID: "trade-syndicate", Name: "Trade Syndicate",
		Requires: Requirements{Cultures: []string{"spacer-guilds"}, MinCities: 2},
		Mods: []Modifier{
			{Target: Global, Yield: YieldGold, Pct: 0.15},
			{Target: Global, Yield: YieldFood, Pct: -0.05},
		},
	},
	{
		ID: "star-imperium", Name: "Star Imperium",
		Requires: Requirements{Techs: []string{"antimatter-lattice"}, Cultures: []string{"martial-creed"}, MinCities: 3},
		Mods: []Modifier{
			{Target: Global, Yield: YieldGold, Pct: 0.10},
			{Target: Global, Yield: YieldCulture, Pct: -0.10},
		},
		Combat: []CombatModifier{{Target: Global, Stat: StatAttack, Flat: 2}},
	},
}

var baselineCombatUnits = []CombatUnitDef{
	{
		ID: "militia-band", Name: "Militia Band",
		Attack: 3, Defense: 3, Movement: 2, MaxHealth: 20, FoodUpkeep: 1,
		Slots: []EquipSlot{SlotWeapon},
	},
	{
		ID: "marine-squad", Name: "Marine Squad",
		Requires: Requirements{Techs: []string{"fusion-power"}},
		Attack:   6, Defense: 5, Movement: 2, MaxHealth: 30, FoodUpkeep: 2,
		Slots: []EquipSlot{SlotWeapon, SlotArmor},
	},
	{
		ID: "strike-frigate", Name: "Strike Frigate",
		Requires: Requirements{Techs: []string{"orbital-mechanics"}},
		Attack:   9, Defense: 6, Movement: 4, MaxHealth: 40, FoodUpkeep: 2,
		Yields: ys(1, 0, 0, 0, 0, 0),
		Slots:  []EquipSlot{SlotWeapon},
	},
	{
		ID: "drone-wing", Name: "Drone Wing",
		Requires: Requirements{Techs: []string{"drone-swarms"}},
		Attack:   7, Defense: 3, Movement: 5, MaxHealth: 25, FoodUpkeep: 0,
		Yields: ys(0, 0, 1, 0, 0, 0),
		Slots:  []EquipSlot{SlotWeapon},
	},
	{
		ID: "sentinel-walker", Name: "Sentinel Walker",
		Requires: Requirements{Techs: []string{"gauss-armament"}},
		Attack:   5, Defense: 10, Movement: 1, MaxHealth: 60, FoodUpkeep: 2,
		Slots: []EquipSlot{SlotArmor},
	},
	{
		ID: "orbital-lancer", Name: "Orbital Lancer",
		Requires: Requirements{Techs: []string{"antimatter-lattice"}},
		Attack:   14, Defense: 8, Movement: 3, MaxHealth: 55, FoodUpkeep: 3,
		Slots: []EquipSlot{SlotWeapon, SlotArmor, SlotRelic},
	},
}

var baselineWorkerUnits = []WorkerUnitDef{
	{
		ID: "surveyor", Name: "Surveyor",
		Yields: ys(0, 0, 2, 0, 0, 0), FoodUpkeep: 1, MaxHealth: 10,
		Slots: []EquipSlot{SlotWeapon},
	},
	{
		ID: "harvester-rig", Name: "Harvester Rig",
		Requires: Requirements{Techs: []string{"deep-mining"}},
		Yields:   ys(3, 0, 0, 0, 0, 0), FoodUpkeep: 1, MaxHealth: 15,
		Slots: []EquipSlot{SlotWeapon},
	},
	{
		ID: "terraform-crew", Name: "Terraform Crew",
		Requires: Requirements{Techs: []string{"terraforming"}},
		Yields:   ys(0, 4, 0, 0, 0, 0), FoodUpkeep: 2, MaxHealth: 12,
	},
}

var baselineBuildings = []BuildingDef{
	{ID: "habitat-dome", Name: "Habitat Dome", GoldCost: 60, Yields: ys(0, 2, 0, 0, 0, 0)},
	{
		ID: "hydroponics-bay", Name: "Hydroponics Bay", GoldCost: 80,
		Requires: Requirements{Techs: []string{"cryo-agriculture"}},
		Yields:   ys(0, 4, 0, 0, 0, 0),
	},
	{
		ID: "research-spire", Name: "Research Spire", GoldCost: 90,
		Requires: Requirements{Techs: []string{"fusion-power"}},
		Yields:   ys(0, 0, 3, 0, 0, 0),
	},
	{
		ID: "trade-port", Name: "Trade Port", GoldCost: 100,
		Requires: Requirements{Techs: []string{"orbital-mechanics"}},
		Yields:   ys(4, 0, 0, 0, 0, 0),
	},
	{
		ID: "meditation-garden", Name: "Meditation Garden", GoldCost: 50,
		Requires: Requirements{Cultures: []string{"hearth-rites"}},
		Yields:   ys(0, 0, 0, 0, 1, 0),
	},
	{
		ID: "shrine-of-origins", Name: "Shrine of Origins", GoldCost: 70,
		Requires: Requirements{Techs: []string{"astrotheology"}},
		Yields:   ys(0, 0, 0, 0, 2, 0),
	},
	{
		ID: "forum-of-voices", Name: "Forum of Voices", GoldCost: 110,
		Requires: Requirements{Techs: []string{"xenolinguistics"}},
		Yields:   ys(0, 0, 0, 2, 0, 1),
	},
	{
		ID: "orbital-dock", Name: "Orbital Dock", GoldCost: 130,
		Requires: Requirements{Techs: []string{"orbital-mechanics"}, MinCities: 2},
		Yields:   ys(2, 0, 1, 0, 0, 0),
	},
	{
		ID: "gene-vault", Name: "Gene Vault", GoldCost: 150,
		Requires: Requirements{Techs: []string{"terraforming"}},
		Yields:   ys(0, 3, 2, 0, 0, 0),
	},
}

var baselineEquipment = []EquipmentDef{
	{
		ID: "plasma-blade", Name: "Plasma Blade", Slot: SlotWeapon,
		GoldCost: 40, ResourceCost: map[string]int{"ferrite": 2},
		Attack: 3,
	},
	{
		ID: "mining-laser", Name: "Mining Laser", Slot: SlotWeapon,
		Requires: Requirements{Techs: []string{"deep-mining"}},
		GoldCost: 30, ResourceCost: map[string]int{"ferrite": 1},
		Units:  []string{"surveyor", "harvester-rig"},
		Yields: ys(2, 0, 0, 0, 0, 0),
	},
	{
		ID: "gauss-rifle", Name: "Gauss Rifle", Slot: SlotWeapon,
		Requires: Requirements{Techs: []string{"gauss-armament"}},
		GoldCost: 55, ResourceCost: map[string]int{"ferrite": 2, "isotopes": 1},
		Units:  []string{"militia-band", "marine-squad", "sentinel-walker"},
		Attack: 4,
	},
	{
		ID: "ablative-plate", Name: "Ablative Plate", Slot: SlotArmor,
		GoldCost: 35, ResourceCost: map[string]int{"ferrite": 2},
		Defense: 3,
	},
	{
		ID: "phase-shroud", Name: "Phase Shroud", Slot: SlotArmor,
		Requires: Requirements{Techs: []string{"antimatter-lattice"}},
		GoldCost: 90, ResourceCost: map[string]int{"isotopes": 2, "helium-3": 1},
		Units:   []string{"orbital-lancer", "strike-frigate"},
		Defense: 6, Movement: 1,
	},
	{
		ID: "relic-beacon", Name: "Relic Beacon", Slot: SlotRelic,
		Requires: Requirements{Techs: []string{"astrotheology"}},
		GoldCost: 60, ResourceCost: map[string]int{"crystal": 2},
		Yields: ys(0, 0, 0, 0, 1, 0),
	},
	{
		ID: "targeting-core", Name: "Targeting Core", Slot: SlotRelic,
		Requires: Requirements{Techs: []string{"drone-swarms"}},
		GoldCost: 70, ResourceCost: map[string]int{"isotopes": 1},
		Units:  []string{"orbital-lancer", "drone-wing"},
		Attack: 2,
	},
	{
		ID: "harvest-drones", Name: "Harvest Drones", Slot: SlotWeapon,
		Requires: Requirements{Policies: []string{"drone-labor"}},
		GoldCost: 50, ResourceCost: map[string]int{"ferrite": 1},
		Units:  []string{"harvester-rig"},
		Yields: ys(1, 1, 0, 0, 0, 0),
	},
}

var baselineProjectiles = []ProjectileDef{
	{
		ID: "rail-slug", Name: "Rail Slug", Damage: 8,
		GoldCost: 10, ResourceCost: map[string]int{"ferrite": 1},
	},
	{
		ID: "fusion-torpedo", Name: "Fusion Torpedo", Damage: 25,
		Requires: Requirements{Techs: []string{"orbital-mechanics"}},
		GoldCost: 45, ResourceCost: map[string]int{"helium-3": 2},
	},
}

var baselineResources = []ResourceDef{
	{ID: "ferrite", Name: "Ferrite"},
	{ID: "helium-3", Name: "Helium-3"},
	{ID: "isotopes", Name: "Isotopes"},
	{ID: "crystal", Name: "Crystal"},
	{ID: "biomass", Name: "Biomass"},
	{ID: "regolith", Name: "Regolith"},
}

var baselineBeliefs = []BeliefDef{
	{ID: "solar-tithe", Name: "Solar Tithe", Mods: []Modifier{{Target: Global, Yield: YieldGold, Pct: 0.10}}},
	{ID: "tide-of-grain", Name: "Tide of Grain", Mods: []Modifier{{Target: Global, Yield: YieldFood, Pct: 0.10}}},
	{ID: "relic-codices", Name: "Relic Codices", Mods: []Modifier{{Target: Global, Yield: YieldScience, Pct: 0.08}}},
	{ID: "chant-of-voids", Name: "Chant of Voids", Mods: []Modifier{{Target: Global, Yield: YieldFaith, Flat: 2}}},
	{ID: "star-wardens", Name: "Star Wardens", Mods: []Modifier{{Target: Global, Yield: YieldCulture, Pct: 0.08}}},
	{ID: "pilgrim-roads", Name: "Pilgrim Roads", Mods: []Modifier{{Target: Global, Yield: YieldGold, Flat: 2}}},
	{ID: "ember-communion", Name: "Ember Communion", Mods: []Modifier{{Target: Global, Yield: YieldFaith, Pct: 0.12}}},
	{ID: "silent-orbit", Name: "Silent Orbit", Mods: []Modifier{{Target: Global, Yield: YieldScience, Flat: 1}}},
}

var baselinePantheons = []PantheonDef{
	{
		ID: "star-cult", Name: "Cult of the Star", FaithCost: 25,
		Beliefs:    []string{"solar-tithe", "chant-of-voids", "pilgrim-roads"},
		UpgradesTo: "star-covenant",
	},
	{
		ID: "star-covenant", Name: "Covenant of the Star", FaithCost: 60,
		Beliefs: []string{"solar-tithe", "ember-communion", "silent-orbit"},
	},
	{
		ID: "tide-chorus", Name: "Chorus of Tides", FaithCost: 30,
		Beliefs: []string{"tide-of-grain", "chant-of-voids"},
	},
	{
		ID: "machine-rite", Name: "Rite of the Machine", FaithCost: 35,
		Beliefs: []string{"relic-codices", "silent-orbit", "star-wardens"},
	},
}

var baselineReligions = []ReligionDef{
	{
		ID: "church-of-the-helix", Name: "Church of the Helix",
		Pantheon: "star-cult", FaithCost: 120,
		Beliefs: []string{"ember-communion", "pilgrim-roads"},
	},
	{
		ID: "order-of-the-deep-sky", Name: "Order of the Deep Sky",
		Pantheon: "tide-chorus", FaithCost: 110,
		Beliefs: []string{"star-wardens", "chant-of-voids"},
	},
}

var baselineCivs = []CivilizationDef{
	{
		ID: "helio-compact", Name: "Helio Compact", Leader: "Chancellor Ivex",
		BaseCityCap: 1, BasePantheonCap: 1, BaseGovernorSlots: 0,
		GovernorsEnabled:   true,
		StartingStockpiles: ys(50, 20, 0, 0, 0, 0),
		StartingGovernment: "survey-council",
	},
	{
		ID: "void-syndicate", Name: "Void Syndicate", Leader: "Broker Yamm",
		BaseCityCap: 1, BasePantheonCap: 0, BaseGovernorSlots: 1,
		GovernorsEnabled:   true,
		StartingStockpiles: ys(80, 10, 0, 0, 0, 0),
		StartingGovernment: "survey-council",
	},
	{
		ID: "drift-clans", Name: "Drift Clans", Leader: "Matriarch Oru",
		BaseCityCap: 0, BasePantheonCap: 1, BaseGovernorSlots: 2,
		GovernorsEnabled:   false,
		StartingStockpiles: ys(0, 30, 0, 0, 10, 0),
		StartingGovernment: "survey-council",
	},
	{
		ID: "cinder-court", Name: "Cinder Court", Leader: "Regent Calyx",
		BaseCityCap: 2, BasePantheonCap: 1, BaseGovernorSlots: 1,
		GovernorsEnabled:   true,
		StartingStockpiles: ys(40, 15, 0, 0, 15, 0),
		StartingGovernment: "survey-council",
	},
}
