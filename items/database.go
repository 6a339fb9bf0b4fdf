// Package items is the item database: what an item is called, where it is
// equipped, and which prefab shows it.
package items

import (
	"errors"
	"fmt"
	"strings"

	"github.com/milk9111/topdown/ecs/component"
	"github.com/milk9111/topdown/prefabs"
	"gopkg.in/yaml.v3"
)

// DefaultFile is the prefab-relative path of the shipped item table.
const DefaultFile = "items.yaml"

var ErrDuplicateItem = errors.New("items: duplicate item type")

// Definition describes one item type.
type Definition struct {
	Type        component.ItemType      `yaml:"type"`
	Name        string                  `yaml:"name"`
	Equip       component.EquipPosition `yaml:"equip"`
	Prefab      string                  `yaml:"prefab"`
	Description string                  `yaml:"description"`
}

type fileSpec struct {
	Items []Definition `yaml:"items"`
}

// Database is an in-memory item table.
type Database struct {
	file  string
	items map[component.ItemType]*Definition
	order []component.ItemType
}

// Load reads an item table through the prefab loader, so a file under
// prefabs/ on disk overrides the embedded copy.
func Load(file string) (*Database, error) {
	data, err := prefabs.Load(file)
	if err != nil {
		return nil, fmt.Errorf("items: load %s: %w", file, err)
	}
	db, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("items: parse %s: %w", file, err)
	}
	db.file = file
	return db, nil
}

// Parse builds a database from YAML.
func Parse(data []byte) (*Database, error) {
	var spec fileSpec
	if err := yaml.Unmarshal(data, &spec); err != nil {
		return nil, err
	}
	db := &Database{items: make(map[component.ItemType]*Definition, len(spec.Items))}
	for i := range spec.Items {
		def := spec.Items[i]
		def.Type = component.ItemType(strings.TrimSpace(string(def.Type)))
		if def.Type == component.ItemNone {
			return nil, fmt.Errorf("items: entry %d has no type", i)
		}
		if _, ok := db.items[def.Type]; ok {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateItem, def.Type)
		}
		if def.Name == "" {
			def.Name = string(def.Type)
		}
		db.items[def.Type] = &def
		db.order = append(db.order, def.Type)
	}
	return db, nil
}

// FindItem returns the definition for t. Unknown types and ItemNone report
// false.
func (db *Database) FindItem(t component.ItemType) (*Definition, bool) {
	if db == nil || t == component.ItemNone {
		return nil, false
	}
	def, ok := db.items[t]
	return def, ok
}

// Types lists item types in file order.
func (db *Database) Types() []component.ItemType {
	if db == nil {
		return nil
	}
	return append([]component.ItemType(nil), db.order...)
}

// Reload re-reads the file the database was loaded from. On error the
// current contents are kept.
func (db *Database) Reload() error {
	if db == nil || db.file == "" {
		return fmt.Errorf("items: database was not loaded from a file")
	}
	fresh, err := Load(db.file)
	if err != nil {
		return err
	}
	db.items = fresh.items
	db.order = fresh.order
	return nil
}

// File reports the prefab-relative file backing the database.
func (db *Database) File() string {
	if db == nil {
		return ""
	}
	return db.file
}
