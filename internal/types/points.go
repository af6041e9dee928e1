// Package types provides shared type definitions used across bacmap packages.
// This package exists to break import cycles between the engines, the store,
// and the CLI. Types here are foundational records with no complex
// dependencies; the enumerations mirror the closed sets of the BACnet
// object model and are rejected at the ingestion boundary when unknown.
package types

import (
	"fmt"
	"strings"
)

// =============================================================================
// OBJECT TYPES
// =============================================================================

// ObjectType is the BACnet object type of a point. Closed set.
type ObjectType string

const (
	ObjectAnalogInput      ObjectType = "AI"
	ObjectAnalogOutput     ObjectType = "AO"
	ObjectAnalogValue      ObjectType = "AV"
	ObjectBinaryInput      ObjectType = "BI"
	ObjectBinaryOutput     ObjectType = "BO"
	ObjectBinaryValue      ObjectType = "BV"
	ObjectMultistateInput  ObjectType = "MSI"
	ObjectMultistateOutput ObjectType = "MSO"
	ObjectMultistateValue  ObjectType = "MSV"
)

// ParseObjectType validates a raw object-type string against the closed set.
// Matching is case-insensitive; the empty string is allowed (object type is
// optional on some exports) and returns ("", nil).
func ParseObjectType(s string) (ObjectType, error) {
	if s == "" {
		return "", nil
	}
	ot := ObjectType(strings.ToUpper(strings.TrimSpace(s)))
	switch ot {
	case ObjectAnalogInput, ObjectAnalogOutput, ObjectAnalogValue,
		ObjectBinaryInput, ObjectBinaryOutput, ObjectBinaryValue,
		ObjectMultistateInput, ObjectMultistateOutput, ObjectMultistateValue:
		return ot, nil
	}
	return "", fmt.Errorf("unknown BACnet object type %q", s)
}

// IsInput reports whether the object type is an input (AI/BI/MSI).
func (o ObjectType) IsInput() bool {
	return o == ObjectAnalogInput || o == ObjectBinaryInput || o == ObjectMultistateInput
}

// IsOutput reports whether the object type is an output (AO/BO/MSO).
func (o ObjectType) IsOutput() bool {
	return o == ObjectAnalogOutput || o == ObjectBinaryOutput || o == ObjectMultistateOutput
}

// IsValue reports whether the object type is a value object (AV/BV/MSV).
func (o ObjectType) IsValue() bool {
	return o == ObjectAnalogValue || o == ObjectBinaryValue || o == ObjectMultistateValue
}

// =============================================================================
// POINT FUNCTION
// =============================================================================

// PointFunction classifies what role a point plays on its equipment.
type PointFunction string

const (
	FunctionSensor   PointFunction = "sensor"
	FunctionSetpoint PointFunction = "setpoint"
	FunctionCommand  PointFunction = "command"
	FunctionStatus   PointFunction = "status"
	FunctionUnknown  PointFunction = "unknown"
)

// Suffix returns the human-readable description suffix for the function,
// or "" when no suffix applies.
func (f PointFunction) Suffix() string {
	switch f {
	case FunctionSetpoint:
		return " Setpoint"
	case FunctionCommand:
		return " Command"
	case FunctionStatus:
		return " Status"
	case FunctionSensor:
		return " Sensor"
	}
	return ""
}

// HaystackTag returns the tagging-vocabulary marker for the function.
func (f PointFunction) HaystackTag() string {
	switch f {
	case FunctionSensor:
		return "sensor"
	case FunctionSetpoint:
		return "sp"
	case FunctionCommand:
		return "cmd"
	case FunctionStatus:
		return "status"
	}
	return ""
}

// =============================================================================
// CONFIDENCE
// =============================================================================

// ConfidenceLevel buckets a confidence score for display and review routing.
type ConfidenceLevel string

const (
	ConfidenceHigh    ConfidenceLevel = "high"
	ConfidenceMedium  ConfidenceLevel = "medium"
	ConfidenceLow     ConfidenceLevel = "low"
	ConfidenceUnknown ConfidenceLevel = "unknown"
)

// LevelForScore maps a [0,1] score onto a confidence level.
// Thresholds: >=0.80 high, >=0.50 medium, >=0.20 low, else unknown.
func LevelForScore(score float64) ConfidenceLevel {
	switch {
	case score >= 0.80:
		return ConfidenceHigh
	case score >= 0.50:
		return ConfidenceMedium
	case score >= 0.20:
		return ConfidenceLow
	}
	return ConfidenceUnknown
}

// =============================================================================
// TAGS
// =============================================================================

// TagCategory groups semantic tags by what they describe.
type TagCategory string

const (
	TagEntity      TagCategory = "entity"
	TagSubstance   TagCategory = "substance"
	TagMeasurement TagCategory = "measurement"
	TagFunction    TagCategory = "function"
	TagLocation    TagCategory = "location"
	TagState       TagCategory = "state"
	TagOther       TagCategory = "other"
)

// TagSource records whether a tag came from explicit dictionary data or
// was inferred from context.
type TagSource string

const (
	TagExplicit TagSource = "explicit"
	TagInferred TagSource = "inferred"
)

// Tag is a semantic marker drawn from the building-automation tagging
// vocabulary (point, sensor, temp, air, ...).
type Tag struct {
	Name       string      `json:"name" yaml:"name"`
	Category   TagCategory `json:"category" yaml:"category"`
	Confidence float64     `json:"confidence" yaml:"confidence"`
	Source     TagSource   `json:"source" yaml:"source"`
}

// =============================================================================
// RAW AND NORMALIZED POINTS
// =============================================================================

// RawPoint is a point descriptor as exported by a BACnet field device.
// ObjectName is the stable external identifier (unique within a device);
// DisplayName is the primary source for normalization.
type RawPoint struct {
	ObjectName  string     `json:"objectName" yaml:"object_name"`
	ObjectType  ObjectType `json:"objectType" yaml:"object_type"`
	DisplayName string     `json:"displayName" yaml:"display_name"`
	Description string     `json:"description,omitempty" yaml:"description,omitempty"`
	Units       string     `json:"units,omitempty" yaml:"units,omitempty"`
	IsWritable  bool       `json:"isWritable" yaml:"is_writable"`
	IsCommand   bool       `json:"isCommand" yaml:"is_command"`
}

// NormalizationContext carries optional hints for one normalization call.
// Immutable during the call.
type NormalizationContext struct {
	EquipmentType string `json:"equipmentType,omitempty"`
	VendorName    string `json:"vendorName,omitempty"`
	Units         string `json:"units,omitempty"`
	PointCategory string `json:"pointCategory,omitempty"`
}

// AnalysisSource records which dictionary-cascade step resolved a token.
type AnalysisSource string

const (
	SourceGeneral   AnalysisSource = "general"
	SourceEquipment AnalysisSource = "equipment"
	SourceVendor    AnalysisSource = "vendor"
	SourceUnit      AnalysisSource = "unit"
	SourcePattern   AnalysisSource = "pattern"
	SourceNone      AnalysisSource = "none"
)

// TokenAnalysis is the per-token result of the dictionary cascade.
type TokenAnalysis struct {
	OriginalToken   string         `json:"originalToken"`
	NormalizedToken string         `json:"normalizedToken"`
	Confidence      float64        `json:"confidence"`
	Source          AnalysisSource `json:"source"`
	MatchedAcronym  string         `json:"matchedAcronym,omitempty"`
	Expansion       string         `json:"expansion,omitempty"`
}

// AcronymExpansion records one acronym that was expanded during
// normalization, for audit display.
type AcronymExpansion struct {
	Original   string  `json:"original"`
	Expanded   string  `json:"expanded"`
	Confidence float64 `json:"confidence"`
}

// NormalizedPoint is the output of the normalization engine. It is a pure
// function of (RawPoint, NormalizationContext, dictionary snapshot).
type NormalizedPoint struct {
	ObjectName          string             `json:"objectName"`
	OriginalName        string             `json:"originalName"`
	NormalizedName      string             `json:"normalizedName"`
	ExpandedDescription string             `json:"expandedDescription"`
	PointFunction       PointFunction      `json:"pointFunction"`
	ObjectType          ObjectType         `json:"objectType,omitempty"`
	Units               string             `json:"units,omitempty"`
	Tags                []Tag              `json:"tags"`
	ConfidenceLevel     ConfidenceLevel    `json:"confidenceLevel"`
	ConfidenceScore     float64            `json:"confidenceScore"`
	Method              AnalysisSource     `json:"method"`
	AppliedRules        []string           `json:"appliedRules,omitempty"`
	ExpandedAcronyms    []AcronymExpansion `json:"expandedAcronyms,omitempty"`

	HasAcronymExpansion  bool `json:"hasAcronymExpansion"`
	HasUnitNormalization bool `json:"hasUnitNormalization"`
	HasContextInference  bool `json:"hasContextInference"`
	RequiresManualReview bool `json:"requiresManualReview"`

	// Errors carries internal-defect annotations; normalization itself is
	// total and never fails outright.
	Errors []string `json:"errors,omitempty"`
}

// HasTag reports whether the point carries a tag with the given name.
func (np *NormalizedPoint) HasTag(name string) bool {
	for _, t := range np.Tags {
		if t.Name == name {
			return true
		}
	}
	return false
}

// AddTag appends a tag unless one with the same name is already present.
func (np *NormalizedPoint) AddTag(tag Tag) {
	if np.HasTag(tag.Name) {
		return
	}
	np.Tags = append(np.Tags, tag)
}
