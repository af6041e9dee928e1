package types

// =============================================================================
// EQUIPMENT AND AUTO-MAPPING
// =============================================================================

// Equipment is one side of an auto-mapping pass: either a BACnet-discovered
// equipment or a CxAlloy catalog entry. Location is free-form and optional.
type Equipment struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	EquipmentType string `json:"equipmentType,omitempty"`
	Location      string `json:"location,omitempty"`
	Description   string `json:"description,omitempty"`
}

// MatchType classifies how an auto-mapping pair was found.
type MatchType string

const (
	MatchExact        MatchType = "exact"
	MatchFuzzy        MatchType = "fuzzy"
	MatchTypeAssisted MatchType = "type-assisted"
)

// AutoMappingMatch pairs one BACnet equipment with one CxAlloy equipment.
// Immutable once recorded.
type AutoMappingMatch struct {
	BacnetEquipmentID  string    `json:"bacnetEquipmentId"`
	CxAlloyEquipmentID string    `json:"cxAlloyEquipmentId"`
	Confidence         float64   `json:"confidence"`
	MatchType          MatchType `json:"matchType"`
	Reasons            []string  `json:"reasons,omitempty"`
}

// AutoMappingStats carries totals for one auto-mapping pass.
type AutoMappingStats struct {
	TotalSources   int   `json:"totalSources"`
	TotalTargets   int   `json:"totalTargets"`
	ExactCount     int   `json:"exactCount"`
	SuggestedCount int   `json:"suggestedCount"`
	UnmatchedCount int   `json:"unmatchedCount"`
	ElapsedMs      int64 `json:"elapsedMs"`
}

// AutoMappingResult partitions every source equipment into exactly one of
// exact / suggested / unmatched, and claims each target at most once.
type AutoMappingResult struct {
	Exact           []AutoMappingMatch `json:"exact"`
	Suggested       []AutoMappingMatch `json:"suggested"`
	UnmatchedSource []Equipment        `json:"unmatchedSource"`
	UnmatchedTarget []Equipment        `json:"unmatchedTarget"`
	Stats           AutoMappingStats   `json:"stats"`
}
