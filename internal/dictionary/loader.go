package dictionary

import (
	"fmt"
	"hash/fnv"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// LoadDir reads every .yaml/.yml overlay file in dir (sorted by name, so
// load order is deterministic) and builds a snapshot with the embedded
// defaults underneath. An empty dir path yields the defaults alone.
func LoadDir(dir string) (*Snapshot, error) {
	files := []File{Defaults()}
	version := DefaultVersion

	if dir != "" {
		overlays, overlayVersion, err := readOverlays(dir)
		if err != nil {
			return nil, err
		}
		files = append(files, overlays...)
		if overlayVersion != "" {
			version = overlayVersion
		}
	}

	return Build(version, files...), nil
}

func readOverlays(dir string) ([]File, string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, "", nil
		}
		return nil, "", fmt.Errorf("failed to read dictionary dir: %w", err)
	}

	var names []string
	for _, e := range entries {
		if e.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(e.Name()))
		if ext == ".yaml" || ext == ".yml" {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)

	h := fnv.New64a()
	var files []File
	for _, name := range names {
		path := filepath.Join(dir, name)
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read dictionary file %s: %w", path, err)
		}
		var f File
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, "", fmt.Errorf("failed to parse dictionary file %s: %w", path, err)
		}
		if err := lintFile(name, f); err != nil {
			return nil, "", err
		}
		files = append(files, f)
		h.Write([]byte(name))
		h.Write(data)
	}

	if len(files) == 0 {
		return nil, "", nil
	}
	return files, fmt.Sprintf("%s+%x", DefaultVersion, h.Sum64()), nil
}

// lintFile validates overlay entries at the load boundary.
func lintFile(name string, f File) error {
	check := func(table string, entries []Entry) error {
		for _, e := range entries {
			if strings.TrimSpace(e.Acronym) == "" {
				return fmt.Errorf("dictionary %s: %s table has entry with empty acronym", name, table)
			}
			if strings.TrimSpace(e.Expansion) == "" {
				return fmt.Errorf("dictionary %s: entry %q has empty expansion", name, e.Acronym)
			}
			if e.Priority < 1 || e.Priority > 10 {
				return fmt.Errorf("dictionary %s: entry %q priority %d out of range 1-10", name, e.Acronym, e.Priority)
			}
		}
		return nil
	}
	if err := check("general", f.General); err != nil {
		return err
	}
	for equip, entries := range f.Equipment {
		if err := check("equipment/"+equip, entries); err != nil {
			return err
		}
	}
	for vendor, entries := range f.Vendor {
		if err := check("vendor/"+vendor, entries); err != nil {
			return err
		}
	}
	return nil
}
