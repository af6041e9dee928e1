package normalize

import (
	"regexp"
	"strings"
)

// =============================================================================
// UNIT-BASED INFERENCE
// =============================================================================

// UnitCategory is a measurement family recognized from a units string.
type UnitCategory struct {
	Name      string // canonical expansion, e.g. "Temperature"
	Tag       string // tagging-vocabulary marker, e.g. "temp"
	Substance string // optional substance tag implied by the unit family
}

// unitPattern pairs a compiled unit regex with its category. Order matters:
// the first match wins, so the more specific families come first.
type unitPattern struct {
	re  *regexp.Regexp
	cat UnitCategory
}

var unitPatterns = []unitPattern{
	{regexp.MustCompile(`(?i)%?rh|humidity`), UnitCategory{Name: "Humidity", Tag: "humidity"}},
	{regexp.MustCompile(`(?i)ppm|co2`), UnitCategory{Name: "Carbon Dioxide", Tag: "co2"}},
	{regexp.MustCompile(`(?i)°?[cf]$|deg|temp`), UnitCategory{Name: "Temperature", Tag: "temp"}},
	{regexp.MustCompile(`(?i)psi|pa$|inh2o|inhg|bar|press`), UnitCategory{Name: "Pressure", Tag: "pressure"}},
	{regexp.MustCompile(`(?i)cfm|gpm|lps|m3h|flow`), UnitCategory{Name: "Flow", Tag: "flow"}},
	{regexp.MustCompile(`(?i)kw|^w$|hp|power`), UnitCategory{Name: "Power", Tag: "power", Substance: "elec"}},
	{regexp.MustCompile(`(?i)%|pct|percent`), UnitCategory{Name: "Percentage", Tag: ""}},
}

// UnitCategoryFor recognizes the measurement family of a units string.
func UnitCategoryFor(units string) (UnitCategory, bool) {
	u := strings.TrimSpace(units)
	if u == "" {
		return UnitCategory{}, false
	}
	for _, p := range unitPatterns {
		if p.re.MatchString(u) {
			return p.cat, true
		}
	}
	return UnitCategory{}, false
}

// inferFromUnits expands a token using the recognized unit category.
// Confidence is 0.80 when the token's first letter is consistent with the
// category (t for Temperature), 0.60 otherwise.
func inferFromUnits(token string, cat UnitCategory) (expansion string, confidence float64) {
	if token == "" || cat.Name == "" {
		return "", 0
	}
	first := strings.ToLower(token[:1])
	if first == strings.ToLower(cat.Name[:1]) {
		return cat.Name, 0.80
	}
	return cat.Name, 0.60
}

// =============================================================================
// PATTERN-BASED INFERENCE
// =============================================================================

// patternRule expands a token by shape when no dictionary resolves it.
type patternRule struct {
	re         *regexp.Regexp
	expansion  string
	confidence float64
}

var patternRules = []patternRule{
	{regexp.MustCompile(`(?i)^(sp|setp|setpt)$`), "Setpoint", 0.90},
	{regexp.MustCompile(`(?i)^(cmd|cmmd|command)$`), "Command", 0.90},
	{regexp.MustCompile(`(?i)^(st|stat|status)$`), "Status", 0.85},
	{regexp.MustCompile(`(?i)^(pos|position)$`), "Position", 0.80},
	{regexp.MustCompile(`(?i)^(lvl|level)$`), "Level", 0.80},
}

// functionWords are short common words kept lowercase and passed through.
var functionWords = map[string]bool{
	"of": true, "to": true, "in": true, "on": true, "at": true,
	"and": true, "or": true, "for": true, "the": true,
}

// inferFromPattern expands a token by its shape. Pure digits pass through
// verbatim at full confidence; short function words stay lowercase.
func inferFromPattern(token string) (expansion string, confidence float64, ok bool) {
	if isNumeric(token) {
		return token, 1.00, true
	}
	lower := strings.ToLower(token)
	if functionWords[lower] {
		return lower, 0.70, true
	}
	for _, r := range patternRules {
		if r.re.MatchString(token) {
			return r.expansion, r.confidence, true
		}
	}
	return "", 0, false
}

// =============================================================================
// FUNCTION MARKER TOKENS
// =============================================================================

var (
	setpointMarkers = regexp.MustCompile(`(?i)^(sp|setpt|stpt|setpoint)$`)
	commandMarkers  = regexp.MustCompile(`(?i)^(cmd|cmmd|command)$`)
	statusMarkers   = regexp.MustCompile(`(?i)^(st|sts|stat|status|alm|alarm|fail|flt|fault|run)$`)
	sensorMarkers   = regexp.MustCompile(`(?i)^(sensor|sen|input)$`)
)

// isSetpointMarker reports whether the token explicitly marks a setpoint.
func isSetpointMarker(token string) bool { return setpointMarkers.MatchString(token) }

// isCommandMarker reports whether the token explicitly marks a command.
func isCommandMarker(token string) bool { return commandMarkers.MatchString(token) }

// isStatusMarker reports whether the token is status-bearing
// (status/alarm/fail/run/stat and kin).
func isStatusMarker(token string) bool { return statusMarkers.MatchString(token) }

// isSensorMarker reports whether the token explicitly marks a sensor.
func isSensorMarker(token string) bool { return sensorMarkers.MatchString(token) }

// isFunctionSuffixToken reports whether the token is a bare function marker
// that is dropped from the synthesized base name (the function lands in the
// description suffix instead).
func isFunctionSuffixToken(token string) bool {
	return setpointMarkers.MatchString(token) ||
		commandMarkers.MatchString(token) ||
		statusMarkers.MatchString(token) ||
		sensorMarkers.MatchString(token)
}
