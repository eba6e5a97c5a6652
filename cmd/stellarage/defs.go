package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/corvidae/stellar-age/internal/config"
	"github.com/corvidae/stellar-age/internal/rules"
)

func defsCmd() *cobra.Command {
	var rulesDir string
	cmd := &cobra.Command{
		Use:   "defs [kind]",
		Short: "Print the definition catalog",
		Long: `Print the definition catalog, optionally narrowed to one kind.

Kinds: technologies, cultures, policies, governments, combat-units,
worker-units, buildings, equipment, projectiles, resources, beliefs,
pantheons, religions, civilizations.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			kind := ""
			if len(args) == 1 {
				kind = args[0]
			}
			return printDefs(kind, rulesDir)
		},
	}
	cmd.Flags().StringVar(&rulesDir, "rules", "", "Data-pack directory overlaying the built-in catalog")
	return cmd
}

func printDefs(kind, rulesDir string) error {
	if rulesDir == "" {
		cfg, err := config.Load(config.Resolve(cfgFlag))
		if err != nil {
			return err
		}
		rulesDir = cfg.Rules.Dir
	}
	cat, err := rules.Load(rulesDir)
	if err != nil {
		return err
	}

	switch kind {
	case "":
		printCatalogIndex(cat)
	case "technologies":
		table := newDefsTable("ID", "Name", "Cost", "Requires", "Effects")
		for _, id := range sortedKeys(cat.Technologies) {
			d := cat.Technologies[id]
			table.Append([]string{d.ID, d.Name, strconv.Itoa(d.Cost), requiresStr(d.Requires), effectsStr(d.Mods, d.Combat, d.Grant)})
		}
		table.Render()
	case "cultures":
		table := newDefsTable("ID", "Name", "Cost", "Requires", "Effects")
		for _, id := range sortedKeys(cat.Cultures) {
			d := cat.Cultures[id]
			table.Append([]string{d.ID, d.Name, strconv.Itoa(d.Cost), requiresStr(d.Requires), effectsStr(d.Mods, d.Combat, d.Grant)})
		}
		table.Render()
	case "policies":
		table := newDefsTable("ID", "Name", "Points", "Requires", "Effects")
		for _, id := range sortedKeys(cat.Policies) {
			d := cat.Policies[id]
			table.Append([]string{d.ID, d.Name, strconv.Itoa(d.PointCost), requiresStr(d.Requires), effectsStr(d.Mods, d.Combat, d.Grant)})
		}
		table.Render()
	case "governments":
		table := newDefsTable("ID", "Name", "Requires", "Effects")
		for _, id := range sortedKeys(cat.Governments) {
			d := cat.Governments[id]
			table.Append([]string{d.ID, d.Name, requiresStr(d.Requires), effectsStr(d.Mods, d.Combat, rules.Grants{})})
		}
		table.Render()
	case "combat-units":
		table := newDefsTable("ID", "Name", "Atk", "Def", "Mov", "HP", "Upkeep", "Yields", "Slots", "Requires")
		for _, id := range sortedKeys(cat.CombatUnits) {
			d := cat.CombatUnits[id]
			table.Append([]string{
				d.ID, d.Name,
				strconv.Itoa(d.Attack), strconv.Itoa(d.Defense), strconv.Itoa(d.Movement), strconv.Itoa(d.MaxHealth),
				strconv.Itoa(d.FoodUpkeep), yieldsStr(d.Yields), slotsStr(d.Slots), requiresStr(d.Requires),
			})
		}
		table.Render()
	case "worker-units":
		table := newDefsTable("ID", "Name", "HP", "Upkeep", "Yields", "Slots", "Requires")
		for _, id := range sortedKeys(cat.WorkerUnits) {
			d := cat.WorkerUnits[id]
			table.Append([]string{
				d.ID, d.Name, strconv.Itoa(d.MaxHealth),
				strconv.Itoa(d.FoodUpkeep), yieldsStr(d.Yields), slotsStr(d.Slots), requiresStr(d.Requires),
			})
		}
		table.Render()
	case "buildings":
		table := newDefsTable("ID", "Name", "Gold", "Yields", "Requires")
		for _, id := range sortedKeys(cat.Buildings) {
			d := cat.Buildings[id]
			table.Append([]string{d.ID, d.Name, strconv.Itoa(d.GoldCost), yieldsStr(d.Yields), requiresStr(d.Requires)})
		}
		table.Render()
	case "equipment":
		table := newDefsTable("ID", "Name", "Slot", "Gold", "Resources", "Atk", "Def", "Mov", "Units", "Requires")
		for _, id := range sortedKeys(cat.Equipment) {
			d := cat.Equipment[id]
			table.Append([]string{
				d.ID, d.Name, d.Slot.Name(), strconv.Itoa(d.GoldCost), costMapStr(d.ResourceCost),
				strconv.Itoa(d.Attack), strconv.Itoa(d.Defense), strconv.Itoa(d.Movement),
				listStr(d.Units), requiresStr(d.Requires),
			})
		}
		table.Render()
	case "projectiles":
		table := newDefsTable("ID", "Name", "Damage", "Gold", "Resources", "Requires")
		for _, id := range sortedKeys(cat.Projectiles) {
			d := cat.Projectiles[id]
			table.Append([]string{d.ID, d.Name, strconv.Itoa(d.Damage), strconv.Itoa(d.GoldCost), costMapStr(d.ResourceCost), requiresStr(d.Requires)})
		}
		table.Render()
	case "resources":
		table := newDefsTable("ID", "Name")
		for _, id := range sortedKeys(cat.Resources) {
			d := cat.Resources[id]
			table.Append([]string{d.ID, d.Name})
		}
		table.Render()
	case "beliefs":
		table := newDefsTable("ID", "Name", "Effects")
		for _, id := range sortedKeys(cat.Beliefs) {
			d := cat.Beliefs[id]
			table.Append([]string{d.ID, d.Name, effectsStr(d.Mods, nil, rules.Grants{})})
		}
		table.Render()
	case "pantheons":
		table := newDefsTable("ID", "Name", "Faith", "Beliefs", "Upgrades To")
		for _, id := range sortedKeys(cat.Pantheons) {
			d := cat.Pantheons[id]
			table.Append([]string{d.ID, d.Name, strconv.Itoa(d.FaithCost), listStr(d.Beliefs), orDash(d.UpgradesTo)})
		}
		table.Render()
	case "religions":
		table := newDefsTable("ID", "Name", "Pantheon", "Faith", "Beliefs")
		for _, id := range sortedKeys(cat.Religions) {
			d := cat.Religions[id]
			table.Append([]string{d.ID, d.Name, d.Pantheon, strconv.Itoa(d.FaithCost), listStr(d.Beliefs)})
		}
		table.Render()
	case "civilizations":
		table := newDefsTable("ID", "Name", "Leader", "Cities", "Pantheons", "Governors", "Government", "Start")
		for _, id := range sortedKeys(cat.Civilizations) {
			d := cat.Civilizations[id]
			governors := strconv.Itoa(d.BaseGovernorSlots)
			if !d.GovernorsEnabled {
				governors = "off"
			}
			table.Append([]string{
				d.ID, d.Name, d.Leader,
				strconv.Itoa(d.BaseCityCap), strconv.Itoa(d.BasePantheonCap), governors,
				orDash(d.StartingGovernment), yieldsStr(d.StartingStockpiles),
			})
		}
		table.Render()
	default:
		return fmt.Errorf("unknown definition kind %q", kind)
	}
	return nil
}

func printCatalogIndex(cat *rules.Catalog) {
	table := newDefsTable("Kind", "Entries")
	for _, row := range [][2]string{
		{"technologies", strconv.Itoa(len(cat.Technologies))},
		{"cultures", strconv.Itoa(len(cat.Cultures))},
		{"policies", strconv.Itoa(len(cat.Policies))},
		{"governments", strconv.Itoa(len(cat.Governments))},
		{"combat-units", strconv.Itoa(len(cat.CombatUnits))},
		{"worker-units", strconv.Itoa(len(cat.WorkerUnits))},
		{"buildings", strconv.Itoa(len(cat.Buildings))},
		{"equipment", strconv.Itoa(len(cat.Equipment))},
		{"projectiles", strconv.Itoa(len(cat.Projectiles))},
		{"resources", strconv.Itoa(len(cat.Resources))},
		{"beliefs", strconv.Itoa(len(cat.Beliefs))},
		{"pantheons", strconv.Itoa(len(cat.Pantheons))},
		{"religions", strconv.Itoa(len(cat.Religions))},
		{"civilizations", strconv.Itoa(len(cat.Civilizations))},
	} {
		table.Append([]string{row[0], row[1]})
	}
	table.Render()
}

func newDefsTable(headers ...string) *tablewriter.Table {
	return tablewriter.NewTable(os.Stdout, tablewriter.WithHeader(headers))
}

func sortedKeys[D any](m map[string]*D) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// yieldsStr renders a yield set as "gold+2 food+1".
func yieldsStr(ys rules.YieldSet) string {
	var parts []string
	for _, k := range rules.AllYields() {
		if v := ys.Get(k); v != 0 {
			parts = append(parts, fmt.Sprintf("%s%+d", k.Name(), v))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}

// requiresStr renders a requirements gate compactly.
func requiresStr(r rules.Requirements) string {
	if r.IsZero() {
		return "-"
	}
	var parts []string
	parts = append(parts, r.Techs...)
	parts = append(parts, r.Cultures...)
	parts = append(parts, r.Policies...)
	if r.Government != "" {
		parts = append(parts, "gov:"+r.Government)
	}
	if r.MinCities > 0 {
		parts = append(parts, fmt.Sprintf("cities>=%d", r.MinCities))
	}
	return strings.Join(parts, ", ")
}

// effectsStr summarizes a source's modifiers and grants on one line.
func effectsStr(mods []rules.Modifier, combat []rules.CombatModifier, grant rules.Grants) string {
	var parts []string
	for _, m := range mods {
		scope := ""
		if !m.Target.IsGlobal() {
			scope = m.Target.ID + " "
		}
		if m.Flat != 0 {
			parts = append(parts, fmt.Sprintf("%s%+d %s", scope, m.Flat, m.Yield.Name()))
		}
		if m.Pct != 0 {
			parts = append(parts, fmt.Sprintf("%s%+.0f%% %s", scope, m.Pct*100, m.Yield.Name()))
		}
	}
	for _, m := range combat {
		scope := ""
		if !m.Target.IsGlobal() {
			scope = m.Target.ID + " "
		}
		parts = append(parts, fmt.Sprintf("%s%+d %s", scope, m.Flat, statName(m.Stat)))
	}
	if grant.CityCap != 0 {
		parts = append(parts, fmt.Sprintf("%+d city cap", grant.CityCap))
	}
	if grant.PantheonCap != 0 {
		parts = append(parts, fmt.Sprintf("%+d pantheon cap", grant.PantheonCap))
	}
	if grant.GovernorSlots != 0 {
		parts = append(parts, fmt.Sprintf("%+d governor slots", grant.GovernorSlots))
	}
	if grant.EnablesPantheons {
		parts = append(parts, "enables pantheons")
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, ", ")
}

func statName(s rules.CombatStat) string {
	switch s {
	case rules.StatAttack:
		return "attack"
	case rules.StatDefense:
		return "defense"
	case rules.StatMovement:
		return "movement"
	}
	return "unknown"
}

func slotsStr(slots []rules.EquipSlot) string {
	if len(slots) == 0 {
		return "-"
	}
	names := make([]string, len(slots))
	for i, s := range slots {
		names[i] = s.Name()
	}
	return strings.Join(names, ", ")
}

func costMapStr(costs map[string]int) string {
	if len(costs) == 0 {
		return "-"
	}
	ids := make([]string, 0, len(costs))
	for id := range costs {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = fmt.Sprintf("%s x%d", id, costs[id])
	}
	return strings.Join(parts, ", ")
}

func listStr(items []string) string {
	if len(items) == 0 {
		return "-"
	}
	return strings.Join(items, ", ")
}
