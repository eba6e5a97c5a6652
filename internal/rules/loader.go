package rules

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// Data-pack file names. Each holds a JSON array of definitions for one table;
// missing files leave the baseline table untouched.
const (
	FileTechnologies  = "technologies.json"
	FileCultures      = "cultures.json"
	FilePolicies      = "policies.json"
	FileGovernments   = "governments.json"
	FileCombatUnits   = "combat_units.json"
	FileWorkerUnits   = "worker_units.json"
	FileBuildings     = "buildings.json"
	FileEquipment     = "equipment.json"
	FileProjectiles   = "projectiles.json"
	FileResources     = "resources.json"
	FileBeliefs       = "beliefs.json"
	FilePantheons     = "pantheons.json"
	FileReligions     = "religions.json"
	FileCivilizations = "civilizations.json"
)

// Load returns the baseline catalog overlaid with the data pack in dir.
// Entries from the pack replace baseline entries with the same ID and add
// new ones. An empty dir returns the baseline unchanged. The merged catalog
// is validated before it is returned.
func Load(dir string) (*Catalog, error) {
	c := Baseline()
	if dir != "" {
		if err := c.overlayDir(dir); err != nil {
			return nil, err
		}
	}
	if err := c.Validate(); err != nil {
		return nil, fmt.Errorf("catalog validation: %w", err)
	}
	return c, nil
}

func (c *Catalog) overlayDir(dir string) error {
	if err := overlayFile(dir, FileTechnologies, c.Technologies); err != nil {
		return err
	}
	if err := overlayFile(dir, FileCultures, c.Cultures); err != nil {
		return err
	}
	if err := overlayFile(dir, FilePolicies, c.Policies); err != nil {
		return err
	}
	if err := overlayFile(dir, FileGovernments, c.Governments); err != nil {
		return err
	}
	if err := overlayFile(dir, FileCombatUnits, c.CombatUnits); err != nil {
		return err
	}
	if err := overlayFile(dir, FileWorkerUnits, c.WorkerUnits); err != nil {
		return err
	}
	if err := overlayFile(dir, FileBuildings, c.Buildings); err != nil {
		return err
	}
	if err := overlayFile(dir, FileEquipment, c.Equipment); err != nil {
		return err
	}
	if err := overlayFile(dir, FileProjectiles, c.Projectiles); err != nil {
		return err
	}
	if err := overlayFile(dir, FileResources, c.Resources); err != nil {
		return err
	}
	if err := overlayFile(dir, FileBeliefs, c.Beliefs); err != nil {
		return err
	}
	if err := overlayFile(dir, FilePantheons, c.Pantheons); err != nil {
		return err
	}
	if err := overlayFile(dir, FileReligions, c.Religions); err != nil {
		return err
	}
	if err := overlayFile(dir, FileCivilizations, c.Civilizations); err != nil {
		return err
	}
	return nil
}

// identified is satisfied by every definition type so overlayFile can key
// loaded entries into the catalog maps.
type identified interface {
	DefID() string
}

func (d *TechnologyDef) DefID() string   { return d.ID }
func (d *CultureDef) DefID() string      { return d.ID }
func (d *PolicyDef) DefID() string       { return d.ID }
func (d *GovernmentDef) DefID() string   { return d.ID }
func (d *CombatUnitDef) DefID() string   { return d.ID }
func (d *WorkerUnitDef) DefID() string   { return d.ID }
func (d *BuildingDef) DefID() string     { return d.ID }
func (d *EquipmentDef) DefID() string    { return d.ID }
func (d *ProjectileDef) DefID() string   { return d.ID }
func (d *ResourceDef) DefID() string     { return d.ID }
func (d *BeliefDef) DefID() string       { return d.ID }
func (d *PantheonDef) DefID() string     { return d.ID }
func (d *ReligionDef) DefID() string     { return d.ID }
func (d *CivilizationDef) DefID() string { return d.ID }

func overlayFile[D any, PD interface {
	*D
	identified
}](dir, name string, table map[string]PD) error {
	data, err := os.ReadFile(filepath.Join(dir, name))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("read %s: %w", name, err)
	}
	var defs []D
	if err := json.Unmarshal(data, &defs); err != nil {
		return fmt.Errorf("parse %s: %w", name, err)
	}
	for i := range defs {
		d := PD(&defs[i])
		if d.DefID() == "" {
			return fmt.Errorf("parse %s: entry %d has no id", name, i)
		}
		table[d.DefID()] = d
	}
	return nil
}
