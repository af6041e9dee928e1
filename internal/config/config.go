// Package config holds all bacmap configuration, including every scoring
// constant of the engines. The constants are design-fixed defaults; they are
// collected here so the test suite can pin them and so deployments can tune
// them from one YAML file.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all bacmap configuration.
type Config struct {
	Name    string `yaml:"name"`
	Version string `yaml:"version"`

	Normalization NormalizationConfig `yaml:"normalization"`
	Signature     SignatureConfig     `yaml:"signature"`
	Matching      MatchingConfig      `yaml:"matching"`
	AutoMap       AutoMapConfig       `yaml:"auto_map"`
	Application   ApplicationConfig   `yaml:"application"`
	Dictionary    DictionaryConfig    `yaml:"dictionary"`
	Storage       StorageConfig       `yaml:"storage"`
	Logging       LoggingConfig       `yaml:"logging"`
}

// NormalizationConfig configures the point normalization engine.
type NormalizationConfig struct {
	// Dictionary cascade priority bases. Equipment-specific entries win over
	// vendor entries, which win over general entries (priority x multiplier).
	EquipmentPriorityBase     float64 `yaml:"equipment_priority_base"`     // 0.95
	VendorPriorityBase        float64 `yaml:"vendor_priority_base"`        // 0.85
	GeneralPriorityMultiplier float64 `yaml:"general_priority_multiplier"` // 0.10 per dictionary priority unit

	// Confidence bonuses from context.
	EquipmentContextBonus float64 `yaml:"equipment_context_bonus"` // +0.10
	UnitContextBonus      float64 `yaml:"unit_context_bonus"`      // +0.10
	VendorContextBonus    float64 `yaml:"vendor_context_bonus"`    // +0.05

	// Points scoring below this need a human look.
	ManualReviewThreshold float64 `yaml:"manual_review_threshold"` // 0.70

	// When true, a longer contractor-provided description replaces the
	// synthesized expanded description.
	PreferContractorDescription bool `yaml:"prefer_contractor_description"`
}

// SignatureConfig configures the signature builder.
type SignatureConfig struct {
	MaxWildcards     int `yaml:"max_wildcards"`      // 5
	MinKeywordLength int `yaml:"min_keyword_length"` // 2
}

// MatchingConfig configures the template matcher.
type MatchingConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"` // 0.70
	MaxResults          int     `yaml:"max_results"`          // 10

	// Composite score weights; must sum to 1.0.
	PatternWeight  float64 `yaml:"pattern_weight"`  // 0.40
	KeywordWeight  float64 `yaml:"keyword_weight"`  // 0.30
	FunctionWeight float64 `yaml:"function_weight"` // 0.20
	ContextWeight  float64 `yaml:"context_weight"`  // 0.10

	// Multiplicative boost when the observed signature's own confidence
	// exceeds HighConfidenceFloor.
	HighConfidenceFloor float64 `yaml:"high_confidence_floor"` // 0.80
	HighConfidenceBoost float64 `yaml:"high_confidence_boost"` // 1.10
}

// AutoMapConfig configures the equipment auto-mapper.
type AutoMapConfig struct {
	ExactThreshold     float64 `yaml:"exact_threshold"`     // 0.95
	SuggestedThreshold float64 `yaml:"suggested_threshold"` // 0.60

	// Composite score weights.
	NameWeight     float64 `yaml:"name_weight"`     // 0.80
	TypeWeight     float64 `yaml:"type_weight"`     // 0.10
	LocationWeight float64 `yaml:"location_weight"` // 0.10
}

// ApplicationConfig configures template application defaults.
type ApplicationConfig struct {
	ConfidenceThreshold float64 `yaml:"confidence_threshold"` // 0.70
	DefaultConfidence   float64 `yaml:"default_confidence"`   // 0.70
	AllowPartialMatches bool    `yaml:"allow_partial_matches"`
	CopyNavName         bool    `yaml:"copy_nav_name"`
	CopyUnits           bool    `yaml:"copy_units"`
}

// DictionaryConfig configures dictionary loading and hot reload.
type DictionaryConfig struct {
	// Directory of YAML overlay files merged over the embedded defaults.
	// Empty means embedded defaults only.
	Path string `yaml:"path"`

	// Watch the overlay directory and republish the snapshot on change.
	HotReload bool `yaml:"hot_reload"`
}

// StorageConfig configures the SQLite repository.
type StorageConfig struct {
	DatabasePath string `yaml:"database_path"`
}

// LoggingConfig configures logging.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json, text
	File   string `yaml:"file"`
}

// DefaultConfig returns the default configuration. The scoring constants
// here are the fixed design constants of the engines.
func DefaultConfig() *Config {
	return &Config{
		Name:    "bacmap",
		Version: "1.0.0",
		Normalization: NormalizationConfig{
			EquipmentPriorityBase:     0.95,
			VendorPriorityBase:        0.85,
			GeneralPriorityMultiplier: 0.10,
			EquipmentContextBonus:     0.10,
			UnitContextBonus:          0.10,
			VendorContextBonus:        0.05,
			ManualReviewThreshold:     0.70,
		},
		Signature: SignatureConfig{
			MaxWildcards:     5,
			MinKeywordLength: 2,
		},
		Matching: MatchingConfig{
			ConfidenceThreshold: 0.70,
			MaxResults:          10,
			PatternWeight:       0.40,
			KeywordWeight:       0.30,
			FunctionWeight:      0.20,
			ContextWeight:       0.10,
			HighConfidenceFloor: 0.80,
			HighConfidenceBoost: 1.10,
		},
		AutoMap: AutoMapConfig{
			ExactThreshold:     0.95,
			SuggestedThreshold: 0.60,
			NameWeight:         0.80,
			TypeWeight:         0.10,
			LocationWeight:     0.10,
		},
		Application: ApplicationConfig{
			ConfidenceThreshold: 0.70,
			DefaultConfidence:   0.70,
			AllowPartialMatches: false,
			CopyNavName:         true,
			CopyUnits:           true,
		},
		Dictionary: DictionaryConfig{},
		Storage: StorageConfig{
			DatabasePath: ".bacmap/catalog.db",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads a YAML config file and overlays it on the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate checks weight sums and threshold ordering.
func (c *Config) Validate() error {
	m := c.Matching
	if sum := m.PatternWeight + m.KeywordWeight + m.FunctionWeight + m.ContextWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("matching weights must sum to 1.0, got %.3f", sum)
	}
	a := c.AutoMap
	if sum := a.NameWeight + a.TypeWeight + a.LocationWeight; sum < 0.999 || sum > 1.001 {
		return fmt.Errorf("auto-map weights must sum to 1.0, got %.3f", sum)
	}
	if a.SuggestedThreshold >= a.ExactThreshold {
		return fmt.Errorf("suggested threshold %.2f must be below exact threshold %.2f",
			a.SuggestedThreshold, a.ExactThreshold)
	}
	return nil
}
