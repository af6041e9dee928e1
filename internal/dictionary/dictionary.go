// Package dictionary manages the acronym tables the normalizer resolves
// tokens against: a general table, equipment-type-specific tables, and
// vendor-specific tables. Tables are published as immutable snapshots;
// readers never observe a partially updated dictionary.
package dictionary

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"bacmap/internal/types"
)

// Entry is one acronym record. Priority runs 1-10, 10 strongest.
type Entry struct {
	Acronym       string              `yaml:"acronym"`
	Expansion     string              `yaml:"expansion"`
	Category      string              `yaml:"category"`
	Priority      int                 `yaml:"priority"`
	Tags          []string            `yaml:"tags,omitempty"`
	PointFunction types.PointFunction `yaml:"point_function,omitempty"`
}

// File is the YAML shape of a dictionary overlay file.
type File struct {
	General   []Entry            `yaml:"general,omitempty"`
	Equipment map[string][]Entry `yaml:"equipment,omitempty"`
	Vendor    map[string][]Entry `yaml:"vendor,omitempty"`
}

// Snapshot is an immutable, indexed view of all dictionary tables. Build a
// new one and swap it atomically; never mutate one in place.
type Snapshot struct {
	version   string
	general   map[string]Entry
	equipment map[string]map[string]Entry
	vendor    map[string]map[string]Entry
}

// tokenKey canonicalizes a token for table lookup.
func tokenKey(token string) string {
	return strings.ToUpper(strings.TrimSpace(token))
}

// equipKey canonicalizes an equipment-type name for table lookup.
func equipKey(equipmentType string) string {
	return strings.ToUpper(strings.TrimSpace(equipmentType))
}

// vendorKey canonicalizes a vendor name for table lookup.
func vendorKey(vendor string) string {
	return strings.ToLower(strings.TrimSpace(vendor))
}

// insert adds an entry to an index, resolving duplicates: higher priority
// wins, ties keep the first occurrence in load order. This is how the stray
// CCW double-definition is made deterministic.
func insert(idx map[string]Entry, e Entry) {
	key := tokenKey(e.Acronym)
	if key == "" {
		return
	}
	if existing, ok := idx[key]; ok {
		if e.Priority <= existing.Priority {
			return
		}
	}
	idx[key] = e
}

// Build creates a snapshot from one or more dictionary files applied in
// order. Later files overlay earlier ones under the same duplicate rule.
func Build(version string, files ...File) *Snapshot {
	s := &Snapshot{
		version:   version,
		general:   make(map[string]Entry),
		equipment: make(map[string]map[string]Entry),
		vendor:    make(map[string]map[string]Entry),
	}
	for _, f := range files {
		for _, e := range f.General {
			insert(s.general, e)
		}
		for equip, entries := range f.Equipment {
			key := equipKey(equip)
			if s.equipment[key] == nil {
				s.equipment[key] = make(map[string]Entry)
			}
			for _, e := range entries {
				insert(s.equipment[key], e)
			}
		}
		for vendor, entries := range f.Vendor {
			key := vendorKey(vendor)
			if s.vendor[key] == nil {
				s.vendor[key] = make(map[string]Entry)
			}
			for _, e := range entries {
				insert(s.vendor[key], e)
			}
		}
	}
	return s
}

// Version identifies the snapshot; signature caches key on it.
func (s *Snapshot) Version() string { return s.version }

// General looks a token up in the general table.
func (s *Snapshot) General(token string) (Entry, bool) {
	e, ok := s.general[tokenKey(token)]
	return e, ok
}

// Equipment looks a token up in the table for the given equipment type.
func (s *Snapshot) Equipment(equipmentType, token string) (Entry, bool) {
	tbl, ok := s.equipment[equipKey(equipmentType)]
	if !ok {
		return Entry{}, false
	}
	e, ok := tbl[tokenKey(token)]
	return e, ok
}

// Vendor looks a token up in the table for the given vendor.
func (s *Snapshot) Vendor(vendor, token string) (Entry, bool) {
	tbl, ok := s.vendor[vendorKey(vendor)]
	if !ok {
		return Entry{}, false
	}
	e, ok := tbl[tokenKey(token)]
	return e, ok
}

// EquipmentTypes returns the known equipment-type table names, sorted.
func (s *Snapshot) EquipmentTypes() []string {
	out := make([]string, 0, len(s.equipment))
	for k := range s.equipment {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Vendors returns the known vendor table names, sorted.
func (s *Snapshot) Vendors() []string {
	out := make([]string, 0, len(s.vendor))
	for k := range s.vendor {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// GeneralEntries returns the general table sorted by acronym, for display
// and linting.
func (s *Snapshot) GeneralEntries() []Entry {
	out := make([]Entry, 0, len(s.general))
	for _, e := range s.general {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return tokenKey(out[i].Acronym) < tokenKey(out[j].Acronym) })
	return out
}

// Stats summarizes table sizes for logging.
func (s *Snapshot) Stats() string {
	equipEntries := 0
	for _, t := range s.equipment {
		equipEntries += len(t)
	}
	vendorEntries := 0
	for _, t := range s.vendor {
		vendorEntries += len(t)
	}
	return fmt.Sprintf("general=%d equipment_tables=%d equipment_entries=%d vendor_tables=%d vendor_entries=%d",
		len(s.general), len(s.equipment), equipEntries, len(s.vendor), vendorEntries)
}

// =============================================================================
// TAG VOCABULARY
// =============================================================================

// TagCategoryFor maps a tag name from the tagging vocabulary to its
// category. Unlisted tags fall into the Other category.
func TagCategoryFor(name string) types.TagCategory {
	if cat, ok := tagVocabulary[strings.ToLower(name)]; ok {
		return cat
	}
	return types.TagOther
}

var tagVocabulary = map[string]types.TagCategory{
	"point":  types.TagEntity,
	"equip":  types.TagEntity,
	"device": types.TagEntity,
	"damper": types.TagEntity,
	"valve":  types.TagEntity,
	"fan":    types.TagEntity,
	"pump":   types.TagEntity,

	"air":   types.TagSubstance,
	"water": types.TagSubstance,
	"steam": types.TagSubstance,
	"elec":  types.TagSubstance,
	"gas":   types.TagSubstance,

	"temp":     types.TagMeasurement,
	"pressure": types.TagMeasurement,
	"flow":     types.TagMeasurement,
	"humidity": types.TagMeasurement,
	"power":    types.TagMeasurement,
	"level":    types.TagMeasurement,
	"co2":      types.TagMeasurement,
	"speed":    types.TagMeasurement,

	"sensor": types.TagFunction,
	"sp":     types.TagFunction,
	"cmd":    types.TagFunction,
	"status": types.TagFunction,

	"zone":      types.TagLocation,
	"room":      types.TagLocation,
	"discharge": types.TagLocation,
	"supply":    types.TagLocation,
	"return":    types.TagLocation,
	"exhaust":   types.TagLocation,
	"outside":   types.TagLocation,
	"mixed":     types.TagLocation,

	"occ":     types.TagState,
	"unocc":   types.TagState,
	"alarm":   types.TagState,
	"fault":   types.TagState,
	"enable":  types.TagState,
	"run":     types.TagState,
	"heating": types.TagState,
	"cooling": types.TagState,
}

// =============================================================================
// VENDOR HINTS
// =============================================================================

// vendorHint pairs a vendor table name with an identifier pattern that
// suggests the vendor when no vendor context was supplied.
type vendorHint struct {
	vendor  string
	pattern *regexp.Regexp
}

var vendorHints = []vendorHint{
	{"johnson controls", regexp.MustCompile(`(?i)\b(JCI|FEC|NAE|VMA|N2)\b|-ADI\b`)},
	{"siemens", regexp.MustCompile(`(?i)\b(SIEMENS|PXC|DESIGO|TEC)\b`)},
	{"honeywell", regexp.MustCompile(`(?i)\b(HONEYWELL|SPYDER|WEBS)\b`)},
	{"trane", regexp.MustCompile(`(?i)\b(TRANE|UC\d{3}|TRACER)\b`)},
	{"automated logic", regexp.MustCompile(`(?i)\b(ALC|WEBCTRL|LGR)\b`)},
}

// InferVendor guesses a vendor from an identifier when no vendor context is
// supplied. Returns "" when nothing matches.
func InferVendor(identifier string) string {
	for _, h := range vendorHints {
		if h.pattern.MatchString(identifier) {
			return h.vendor
		}
	}
	return ""
}
