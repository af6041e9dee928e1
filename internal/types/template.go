package types

import "time"

// =============================================================================
// SIGNATURES
// =============================================================================

// PointSignature is a wildcard keyword pattern derived from a normalized
// point name, used as a matching key against template points.
type PointSignature struct {
	Pattern           string        `json:"pattern"`           // e.g. "*ROOM*TEMP*"
	NormalizedPattern string        `json:"normalizedPattern"` // uppercased, wildcards stripped
	Keywords          []string      `json:"keywords"`
	Confidence        float64       `json:"confidence"`
	Specificity       float64       `json:"specificity"`
	PointFunction     PointFunction `json:"pointFunction"`
	ObjectType        ObjectType    `json:"objectType,omitempty"`
	Units             string        `json:"units,omitempty"`
	ObjectName        string        `json:"objectName,omitempty"`
	MatchCount        int           `json:"matchCount"`
	SuccessfulMatches int           `json:"successfulMatches"`
}

// =============================================================================
// TEMPLATES
// =============================================================================

// MatchingFacet selects which BACnet facet of a template point is compared
// against observed points during template application.
type MatchingFacet string

const (
	FacetBacnetCur  MatchingFacet = "bacnetCur"
	FacetBacnetDis  MatchingFacet = "bacnetDis"
	FacetBacnetDesc MatchingFacet = "bacnetDesc"
)

// TemplateType distinguishes how a template is meant to be used.
type TemplateType string

const (
	TemplateEquipment TemplateType = "equipment"
	TemplateMapping   TemplateType = "mapping"
	TemplateHybrid    TemplateType = "hybrid"
)

// PointTemplate is one required or optional point slot of an equipment
// template.
type PointTemplate struct {
	TemplatePointID   string        `json:"templatePointId"`
	Name              string        `json:"name"`
	Description       string        `json:"description,omitempty"`
	PointFunction     PointFunction `json:"pointFunction"`
	ObjectType        ObjectType    `json:"objectType,omitempty"`
	Units             string        `json:"units,omitempty"`
	Required          bool          `json:"required"`
	NavName           string        `json:"navName,omitempty"`
	BacnetCur         string        `json:"bacnetCur,omitempty"`
	BacnetDis         string        `json:"bacnetDis,omitempty"`
	BacnetDesc        string        `json:"bacnetDesc,omitempty"`
	MatchingFacet     MatchingFacet `json:"matchingFacet"`
	DefaultConfidence float64       `json:"defaultConfidence"`
	Tags              []Tag         `json:"tags,omitempty"`
}

// FacetValue returns the template point's value on the given facet.
func (pt *PointTemplate) FacetValue(facet MatchingFacet) string {
	switch facet {
	case FacetBacnetCur:
		return pt.BacnetCur
	case FacetBacnetDis:
		return pt.BacnetDis
	case FacetBacnetDesc:
		return pt.BacnetDesc
	}
	return ""
}

// EquipmentTemplate is an ordered set of point templates plus equipment-type
// metadata. Templates are never mutated during matching; effectiveness
// aggregation publishes updated copies.
type EquipmentTemplate struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	Description   string          `json:"description,omitempty"`
	EquipmentType string          `json:"equipmentType"`
	Category      string          `json:"category,omitempty"`
	Vendor        string          `json:"vendor,omitempty"`
	Model         string          `json:"model,omitempty"`
	Points        []PointTemplate `json:"points"`
	TemplateType  TemplateType    `json:"templateType"`
	IsBuiltIn     bool            `json:"isBuiltIn"`
	IsDefault     bool            `json:"isDefault"`
	UsageCount    int             `json:"usageCount"`
	SuccessRate   float64         `json:"successRate"`
	Effectiveness float64         `json:"effectiveness"`
	CreatedAt     time.Time       `json:"createdAt"`
	UpdatedAt     time.Time       `json:"updatedAt"`
}

// RequiredPoints returns the template's required point slots.
func (t *EquipmentTemplate) RequiredPoints() []PointTemplate {
	var req []PointTemplate
	for _, p := range t.Points {
		if p.Required {
			req = append(req, p)
		}
	}
	return req
}

// =============================================================================
// TEMPLATE MATCHING
// =============================================================================

// PatternMatch records how one signature keyword fared against a template
// point.
type PatternMatch struct {
	Keyword  string  `json:"keyword"`
	Position int     `json:"position"`
	Weight   float64 `json:"weight"`
	Matched  bool    `json:"matched"`
}

// MatchQuality flags qualitative properties of a template match.
type MatchQuality struct {
	Exact   bool `json:"exact"`   // score > 0.95
	Partial bool `json:"partial"` // 0.70 < score <= 0.95
	Fuzzy   bool `json:"fuzzy"`   // 0.50 < score <= 0.70
	Context bool `json:"context"` // units/objectType/function agree
}

// TemplateMatch pairs one template point with one observed point.
type TemplateMatch struct {
	TemplateID             string         `json:"templateId"`
	TemplatePointID        string         `json:"templatePointId"`
	MatchedPointObjectName string         `json:"matchedPointObjectName"`
	Confidence             float64        `json:"confidence"`
	MatchScore             float64        `json:"matchScore"`
	PatternMatches         []PatternMatch `json:"patternMatches,omitempty"`
	Quality                MatchQuality   `json:"quality"`
	Warnings               []string       `json:"warnings,omitempty"`
	Recommendations        []string       `json:"recommendations,omitempty"`
}

// =============================================================================
// TEMPLATE APPLICATION
// =============================================================================

// AppliedPoint is one template-point binding produced by template
// application. Matched=false entries surface unmatched required points.
type AppliedPoint struct {
	PointObjectName string  `json:"pointObjectName,omitempty"`
	TemplatePointID string  `json:"templatePointId"`
	Matched         bool    `json:"matched"`
	Confidence      float64 `json:"confidence"`
	NavName         string  `json:"navName,omitempty"`
	Units           string  `json:"units,omitempty"`
}

// MatchingResults aggregates one application pass.
type MatchingResults struct {
	TotalPoints           int     `json:"totalPoints"`
	MatchedPoints         int     `json:"matchedPoints"`
	UnmatchedPoints       int     `json:"unmatchedPoints"`
	AverageConfidence     float64 `json:"averageConfidence"`
	RequiredPointsMatched int     `json:"requiredPointsMatched"`
	OptionalPointsMatched int     `json:"optionalPointsMatched"`
}

// ApplicationOptions controls a template application pass.
type ApplicationOptions struct {
	AllowPartialMatches bool    `json:"allowPartialMatches" yaml:"allow_partial_matches"`
	CopyNavName         bool    `json:"copyNavName" yaml:"copy_nav_name"`
	CopyUnits           bool    `json:"copyUnits" yaml:"copy_units"`
	ConfidenceThreshold float64 `json:"confidenceThreshold" yaml:"confidence_threshold"`
}

// TemplateApplication records one application of a template to a target
// equipment. Immutable once recorded.
type TemplateApplication struct {
	ID                string             `json:"id"`
	TemplateID        string             `json:"templateId"`
	TargetEquipmentID string             `json:"targetEquipmentId"`
	AppliedPoints     []AppliedPoint     `json:"appliedPoints"`
	MatchingOptions   ApplicationOptions `json:"matchingOptions"`
	MatchingResults   MatchingResults    `json:"matchingResults"`
	IsSuccessful      bool               `json:"isSuccessful"`
	AppliedAt         time.Time          `json:"appliedAt"`
	AppliedBy         string             `json:"appliedBy"`
}

// EffectivenessReport summarizes historical applications of one template.
type EffectivenessReport struct {
	TemplateID           string   `json:"templateId"`
	OverallEffectiveness float64  `json:"overallEffectiveness"`
	PointMatchRate       float64  `json:"pointMatchRate"`
	ConfidenceScore      float64  `json:"confidenceScore"`
	UsageFrequency       int      `json:"usageFrequency"`
	Recommendations      []string `json:"recommendations,omitempty"`
}
