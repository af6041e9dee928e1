package dictionary

import "bacmap/internal/types"

// Defaults returns the embedded dictionary tables. Declared as Go data to
// avoid parsing fragility at startup; YAML overlays merge on top of these.
//
// Priority runs 1-10 (10 strongest). The duplicate CCW entry is deliberate:
// field exports use CCW for both rotation senses, and the snapshot build
// resolves it to the higher-priority counterclockwise reading.
//
// Invariant: a general entry whose acronym also matches a normalization
// pattern rule (sp, cmd, st/stat/status, pos, lvl) must carry a priority of
// at least 10x the rule's confidence, so removing the entry can never raise
// a token's score.
func Defaults() File {
	return File{
		General:   generalDefaults,
		Equipment: equipmentDefaults,
		Vendor:    vendorDefaults,
	}
}

// DefaultVersion labels the embedded tables; overlay loads derive their own
// version from file contents.
const DefaultVersion = "embedded-1"

var generalDefaults = []Entry{
	// --- Measurements ---
	{Acronym: "TEMP", Expansion: "Temperature", Category: "measurement", Priority: 9, Tags: []string{"temp"}},
	{Acronym: "TMP", Expansion: "Temperature", Category: "measurement", Priority: 8, Tags: []string{"temp"}},
	{Acronym: "T", Expansion: "Temperature", Category: "measurement", Priority: 6, Tags: []string{"temp"}},
	{Acronym: "TS", Expansion: "Temperature Sensor", Category: "measurement", Priority: 7, Tags: []string{"temp", "sensor"}, PointFunction: types.FunctionSensor},
	{Acronym: "RH", Expansion: "Relative Humidity", Category: "measurement", Priority: 9, Tags: []string{"humidity"}},
	{Acronym: "HUM", Expansion: "Humidity", Category: "measurement", Priority: 8, Tags: []string{"humidity"}},
	{Acronym: "PRESS", Expansion: "Pressure", Category: "measurement", Priority: 9, Tags: []string{"pressure"}},
	{Acronym: "PRS", Expansion: "Pressure", Category: "measurement", Priority: 8, Tags: []string{"pressure"}},
	{Acronym: "PR", Expansion: "Pressure", Category: "measurement", Priority: 5, Tags: []string{"pressure"}},
	{Acronym: "DP", Expansion: "Differential Pressure", Category: "measurement", Priority: 7, Tags: []string{"pressure"}},
	{Acronym: "SP", Expansion: "Setpoint", Category: "function", Priority: 9, Tags: []string{"sp"}, PointFunction: types.FunctionSetpoint},
	{Acronym: "STPT", Expansion: "Setpoint", Category: "function", Priority: 9, Tags: []string{"sp"}, PointFunction: types.FunctionSetpoint},
	{Acronym: "SETPT", Expansion: "Setpoint", Category: "function", Priority: 9, Tags: []string{"sp"}, PointFunction: types.FunctionSetpoint},
	{Acronym: "FLOW", Expansion: "Flow", Category: "measurement", Priority: 8, Tags: []string{"flow"}},
	{Acronym: "FLW", Expansion: "Flow", Category: "measurement", Priority: 7, Tags: []string{"flow"}},
	{Acronym: "FLO", Expansion: "Flow", Category: "measurement", Priority: 6, Tags: []string{"flow"}},
	{Acronym: "CFM", Expansion: "Airflow", Category: "measurement", Priority: 7, Tags: []string{"flow", "air"}},
	{Acronym: "GPM", Expansion: "Water Flow", Category: "measurement", Priority: 7, Tags: []string{"flow", "water"}},
	{Acronym: "LVL", Expansion: "Level", Category: "measurement", Priority: 8, Tags: []string{"level"}},
	{Acronym: "PWR", Expansion: "Power", Category: "measurement", Priority: 8, Tags: []string{"power", "elec"}},
	{Acronym: "KW", Expansion: "Kilowatts", Category: "measurement", Priority: 7, Tags: []string{"power", "elec"}},
	{Acronym: "KWH", Expansion: "Kilowatt Hours", Category: "measurement", Priority: 7, Tags: []string{"power", "elec"}},
	{Acronym: "AMP", Expansion: "Current", Category: "measurement", Priority: 6, Tags: []string{"elec"}},
	{Acronym: "CUR", Expansion: "Current", Category: "measurement", Priority: 5, Tags: []string{"elec"}},
	{Acronym: "CO2", Expansion: "Carbon Dioxide", Category: "measurement", Priority: 8, Tags: []string{"co2"}},
	{Acronym: "SPD", Expansion: "Speed", Category: "measurement", Priority: 7, Tags: []string{"speed"}},
	{Acronym: "FREQ", Expansion: "Frequency", Category: "measurement", Priority: 6, Tags: []string{"elec"}},
	{Acronym: "FRQ", Expansion: "Frequency", Category: "measurement", Priority: 5, Tags: []string{"elec"}},
	{Acronym: "ENTH", Expansion: "Enthalpy", Category: "measurement", Priority: 6},
	{Acronym: "DEWPT", Expansion: "Dewpoint", Category: "measurement", Priority: 6, Tags: []string{"temp"}},

	// --- Air streams and locations ---
	{Acronym: "SA", Expansion: "Supply Air", Category: "location", Priority: 8, Tags: []string{"supply", "air"}},
	{Acronym: "RA", Expansion: "Return Air", Category: "location", Priority: 8, Tags: []string{"return", "air"}},
	{Acronym: "OA", Expansion: "Outside Air", Category: "location", Priority: 8, Tags: []string{"outside", "air"}},
	{Acronym: "EA", Expansion: "Exhaust Air", Category: "location", Priority: 8, Tags: []string{"exhaust", "air"}},
	{Acronym: "MA", Expansion: "Mixed Air", Category: "location", Priority: 7, Tags: []string{"mixed", "air"}},
	{Acronym: "DA", Expansion: "Discharge Air", Category: "location", Priority: 7, Tags: []string{"discharge", "air"}},
	{Acronym: "SAT", Expansion: "Supply Air Temperature", Category: "location", Priority: 8, Tags: []string{"supply", "air", "temp"}},
	{Acronym: "RAT", Expansion: "Return Air Temperature", Category: "location", Priority: 8, Tags: []string{"return", "air", "temp"}},
	{Acronym: "OAT", Expansion: "Outside Air Temperature", Category: "location", Priority: 8, Tags: []string{"outside", "air", "temp"}},
	{Acronym: "MAT", Expansion: "Mixed Air Temperature", Category: "location", Priority: 7, Tags: []string{"mixed", "air", "temp"}},
	{Acronym: "DAT", Expansion: "Discharge Air Temperature", Category: "location", Priority: 7, Tags: []string{"discharge", "air", "temp"}},
	{Acronym: "ZN", Expansion: "Zone", Category: "location", Priority: 8, Tags: []string{"zone"}},
	{Acronym: "ZONE", Expansion: "Zone", Category: "location", Priority: 8, Tags: []string{"zone"}},
	{Acronym: "RM", Expansion: "Room", Category: "location", Priority: 7, Tags: []string{"room"}},
	{Acronym: "ROOM", Expansion: "Room", Category: "location", Priority: 8, Tags: []string{"room"}},
	{Acronym: "SPACE", Expansion: "Space", Category: "location", Priority: 6, Tags: []string{"zone"}},
	{Acronym: "FLR", Expansion: "Floor", Category: "location", Priority: 5},
	{Acronym: "BLDG", Expansion: "Building", Category: "location", Priority: 5},

	// --- Equipment and components ---
	{Acronym: "AHU", Expansion: "Air Handling Unit", Category: "equipment", Priority: 8, Tags: []string{"equip", "air"}},
	{Acronym: "VAV", Expansion: "Variable Air Volume", Category: "equipment", Priority: 8, Tags: []string{"equip", "air"}},
	{Acronym: "RTU", Expansion: "Rooftop Unit", Category: "equipment", Priority: 8, Tags: []string{"equip", "air"}},
	{Acronym: "FCU", Expansion: "Fan Coil Unit", Category: "equipment", Priority: 7, Tags: []string{"equip"}},
	{Acronym: "CUH", Expansion: "Cabinet Unit Heater", Category: "equipment", Priority: 6, Tags: []string{"equip"}},
	{Acronym: "UH", Expansion: "Unit Heater", Category: "equipment", Priority: 5, Tags: []string{"equip"}},
	{Acronym: "FAN", Expansion: "Fan", Category: "equipment", Priority: 8, Tags: []string{"fan"}},
	{Acronym: "SF", Expansion: "Supply Fan", Category: "equipment", Priority: 7, Tags: []string{"fan", "supply"}},
	{Acronym: "RF", Expansion: "Return Fan", Category: "equipment", Priority: 7, Tags: []string{"fan", "return"}},
	{Acronym: "EF", Expansion: "Exhaust Fan", Category: "equipment", Priority: 7, Tags: []string{"fan", "exhaust"}},
	{Acronym: "PMP", Expansion: "Pump", Category: "equipment", Priority: 7, Tags: []string{"pump"}},
	{Acronym: "PUMP", Expansion: "Pump", Category: "equipment", Priority: 8, Tags: []string{"pump"}},
	{Acronym: "VLV", Expansion: "Valve", Category: "equipment", Priority: 8, Tags: []string{"valve"}},
	{Acronym: "VALVE", Expansion: "Valve", Category: "equipment", Priority: 8, Tags: []string{"valve"}},
	{Acronym: "DMP", Expansion: "Damper", Category: "equipment", Priority: 8, Tags: []string{"damper"}},
	{Acronym: "DPR", Expansion: "Damper", Category: "equipment", Priority: 8, Tags: []string{"damper"}},
	{Acronym: "DAMPER", Expansion: "Damper", Category: "equipment", Priority: 9, Tags: []string{"damper"}},
	{Acronym: "VFD", Expansion: "Variable Frequency Drive", Category: "equipment", Priority: 7, Tags: []string{"equip", "elec"}},
	{Acronym: "COMP", Expansion: "Compressor", Category: "equipment", Priority: 6, Tags: []string{"equip"}},
	{Acronym: "HX", Expansion: "Heat Exchanger", Category: "equipment", Priority: 6, Tags: []string{"equip"}},
	{Acronym: "COIL", Expansion: "Coil", Category: "equipment", Priority: 6},

	// --- Substances and systems ---
	{Acronym: "CHW", Expansion: "Chilled Water", Category: "substance", Priority: 8, Tags: []string{"water", "cooling"}},
	{Acronym: "CHWS", Expansion: "Chilled Water Supply", Category: "substance", Priority: 8, Tags: []string{"water", "supply", "cooling"}},
	{Acronym: "CHWR", Expansion: "Chilled Water Return", Category: "substance", Priority: 8, Tags: []string{"water", "return", "cooling"}},
	{Acronym: "HW", Expansion: "Hot Water", Category: "substance", Priority: 8, Tags: []string{"water", "heating"}},
	{Acronym: "HWS", Expansion: "Hot Water Supply", Category: "substance", Priority: 8, Tags: []string{"water", "supply", "heating"}},
	{Acronym: "HWR", Expansion: "Hot Water Return", Category: "substance", Priority: 8, Tags: []string{"water", "return", "heating"}},
	{Acronym: "CW", Expansion: "Condenser Water", Category: "substance", Priority: 7, Tags: []string{"water"}},
	{Acronym: "STM", Expansion: "Steam", Category: "substance", Priority: 7, Tags: []string{"steam"}},
	{Acronym: "CLG", Expansion: "Cooling", Category: "state", Priority: 8, Tags: []string{"cooling"}},
	{Acronym: "HTG", Expansion: "Heating", Category: "state", Priority: 8, Tags: []string{"heating"}},
	{Acronym: "HGR", Expansion: "Hot Gas Reheat", Category: "equipment", Priority: 6, Tags: []string{"heating"}},
	{Acronym: "RHT", Expansion: "Reheat", Category: "state", Priority: 6, Tags: []string{"heating"}},
	{Acronym: "ECON", Expansion: "Economizer", Category: "equipment", Priority: 6, Tags: []string{"damper", "air"}},
	{Acronym: "DX", Expansion: "Direct Expansion", Category: "equipment", Priority: 5},

	// --- Function markers ---
	{Acronym: "CMD", Expansion: "Command", Category: "function", Priority: 9, Tags: []string{"cmd"}, PointFunction: types.FunctionCommand},
	{Acronym: "CMMD", Expansion: "Command", Category: "function", Priority: 8, Tags: []string{"cmd"}, PointFunction: types.FunctionCommand},
	{Acronym: "STAT", Expansion: "Status", Category: "function", Priority: 9, Tags: []string{"status"}, PointFunction: types.FunctionStatus},
	{Acronym: "STS", Expansion: "Status", Category: "function", Priority: 8, Tags: []string{"status"}, PointFunction: types.FunctionStatus},
	{Acronym: "ST", Expansion: "Status", Category: "function", Priority: 9, Tags: []string{"status"}, PointFunction: types.FunctionStatus},
	{Acronym: "ALM", Expansion: "Alarm", Category: "state", Priority: 8, Tags: []string{"alarm", "status"}, PointFunction: types.FunctionStatus},
	{Acronym: "ALARM", Expansion: "Alarm", Category: "state", Priority: 8, Tags: []string{"alarm", "status"}, PointFunction: types.FunctionStatus},
	{Acronym: "FLT", Expansion: "Fault", Category: "state", Priority: 7, Tags: []string{"fault", "status"}, PointFunction: types.FunctionStatus},
	{Acronym: "FAIL", Expansion: "Failure", Category: "state", Priority: 7, Tags: []string{"fault", "status"}, PointFunction: types.FunctionStatus},
	{Acronym: "RUN", Expansion: "Run", Category: "state", Priority: 6, Tags: []string{"run", "status"}, PointFunction: types.FunctionStatus},
	{Acronym: "OCC", Expansion: "Occupied", Category: "state", Priority: 7, Tags: []string{"occ"}},
	{Acronym: "UNOCC", Expansion: "Unoccupied", Category: "state", Priority: 7, Tags: []string{"unocc"}},
	{Acronym: "ENA", Expansion: "Enable", Category: "function", Priority: 7, Tags: []string{"enable", "cmd"}, PointFunction: types.FunctionCommand},
	{Acronym: "EN", Expansion: "Enable", Category: "function", Priority: 4, Tags: []string{"enable"}},
	{Acronym: "OVR", Expansion: "Override", Category: "function", Priority: 6, Tags: []string{"cmd"}},
	{Acronym: "REQ", Expansion: "Request", Category: "function", Priority: 5},
	{Acronym: "FB", Expansion: "Feedback", Category: "function", Priority: 6, Tags: []string{"sensor"}},
	{Acronym: "FDBK", Expansion: "Feedback", Category: "function", Priority: 6, Tags: []string{"sensor"}},
	{Acronym: "POS", Expansion: "Position", Category: "measurement", Priority: 8},
	{Acronym: "SIG", Expansion: "Signal", Category: "function", Priority: 5},

	// --- Qualifiers ---
	{Acronym: "HI", Expansion: "High", Category: "qualifier", Priority: 5},
	{Acronym: "LO", Expansion: "Low", Category: "qualifier", Priority: 5},
	{Acronym: "LMT", Expansion: "Limit", Category: "qualifier", Priority: 5},
	{Acronym: "MIN", Expansion: "Minimum", Category: "qualifier", Priority: 5},
	{Acronym: "MAX", Expansion: "Maximum", Category: "qualifier", Priority: 5},
	{Acronym: "AVG", Expansion: "Average", Category: "qualifier", Priority: 5},
	{Acronym: "EFF", Expansion: "Effective", Category: "qualifier", Priority: 4},
	{Acronym: "ADJ", Expansion: "Adjust", Category: "qualifier", Priority: 4},

	// Stray double definition carried from field data on purpose: the
	// snapshot build resolves CCW to the higher-priority entry.
	{Acronym: "CCW", Expansion: "Counterclockwise", Category: "qualifier", Priority: 6},
	{Acronym: "CCW", Expansion: "Clockwise", Category: "qualifier", Priority: 4},
}

var equipmentDefaults = map[string][]Entry{
	"VAV_CONTROLLER": {
		{Acronym: "ZN", Expansion: "Zone", Category: "location", Priority: 10, Tags: []string{"zone"}},
		{Acronym: "T", Expansion: "Temperature", Category: "measurement", Priority: 9, Tags: []string{"temp"}},
		{Acronym: "DPR", Expansion: "Damper", Category: "equipment", Priority: 10, Tags: []string{"damper"}},
		{Acronym: "VP", Expansion: "Velocity Pressure", Category: "measurement", Priority: 8, Tags: []string{"pressure", "air"}},
		{Acronym: "RHT", Expansion: "Reheat", Category: "state", Priority: 8, Tags: []string{"heating"}},
		{Acronym: "FLOW", Expansion: "Airflow", Category: "measurement", Priority: 9, Tags: []string{"flow", "air"}},
		{Acronym: "BOX", Expansion: "Terminal Box", Category: "equipment", Priority: 6, Tags: []string{"equip"}},
	},
	"AHU_CONTROLLER": {
		{Acronym: "SF", Expansion: "Supply Fan", Category: "equipment", Priority: 10, Tags: []string{"fan", "supply"}},
		{Acronym: "RF", Expansion: "Return Fan", Category: "equipment", Priority: 10, Tags: []string{"fan", "return"}},
		{Acronym: "MAD", Expansion: "Mixed Air Damper", Category: "equipment", Priority: 9, Tags: []string{"damper", "mixed", "air"}},
		{Acronym: "OAD", Expansion: "Outside Air Damper", Category: "equipment", Priority: 9, Tags: []string{"damper", "outside", "air"}},
		{Acronym: "RAD", Expansion: "Return Air Damper", Category: "equipment", Priority: 9, Tags: []string{"damper", "return", "air"}},
		{Acronym: "CC", Expansion: "Cooling Coil", Category: "equipment", Priority: 8, Tags: []string{"cooling"}},
		{Acronym: "HC", Expansion: "Heating Coil", Category: "equipment", Priority: 8, Tags: []string{"heating"}},
		{Acronym: "PH", Expansion: "Preheat", Category: "state", Priority: 7, Tags: []string{"heating"}},
		{Acronym: "SSP", Expansion: "Static Setpoint", Category: "function", Priority: 8, Tags: []string{"pressure", "sp"}, PointFunction: types.FunctionSetpoint},
		{Acronym: "STATIC", Expansion: "Static Pressure", Category: "measurement", Priority: 8, Tags: []string{"pressure", "air"}},
	},
	"RTU_CONTROLLER": {
		{Acronym: "C1", Expansion: "Compressor Stage 1", Category: "equipment", Priority: 8, Tags: []string{"equip"}},
		{Acronym: "C2", Expansion: "Compressor Stage 2", Category: "equipment", Priority: 8, Tags: []string{"equip"}},
		{Acronym: "ECON", Expansion: "Economizer", Category: "equipment", Priority: 9, Tags: []string{"damper", "air"}},
		{Acronym: "DX", Expansion: "Direct Expansion", Category: "equipment", Priority: 7},
	},
	"CHILLER": {
		{Acronym: "EVAP", Expansion: "Evaporator", Category: "equipment", Priority: 9, Tags: []string{"equip", "water"}},
		{Acronym: "COND", Expansion: "Condenser", Category: "equipment", Priority: 9, Tags: []string{"equip", "water"}},
		{Acronym: "COMP", Expansion: "Compressor", Category: "equipment", Priority: 9, Tags: []string{"equip"}},
		{Acronym: "LWT", Expansion: "Leaving Water Temperature", Category: "measurement", Priority: 9, Tags: []string{"water", "temp"}},
		{Acronym: "EWT", Expansion: "Entering Water Temperature", Category: "measurement", Priority: 9, Tags: []string{"water", "temp"}},
	},
	"BOILER": {
		{Acronym: "FLAME", Expansion: "Flame", Category: "state", Priority: 8, Tags: []string{"status"}},
		{Acronym: "STACK", Expansion: "Stack", Category: "equipment", Priority: 7},
		{Acronym: "LWCO", Expansion: "Low Water Cutoff", Category: "state", Priority: 8, Tags: []string{"water", "status"}},
	},
}

var vendorDefaults = map[string][]Entry{
	"johnson controls": {
		{Acronym: "ZNT", Expansion: "Zone Temperature", Category: "measurement", Priority: 8, Tags: []string{"zone", "temp"}},
		{Acronym: "ZNSP", Expansion: "Zone Setpoint", Category: "function", Priority: 8, Tags: []string{"zone", "sp"}, PointFunction: types.FunctionSetpoint},
		{Acronym: "WCADJ", Expansion: "Warmup Cooldown Adjust", Category: "function", Priority: 6},
		{Acronym: "SASP", Expansion: "Supply Air Setpoint", Category: "function", Priority: 7, Tags: []string{"supply", "air", "sp"}, PointFunction: types.FunctionSetpoint},
	},
	"siemens": {
		{Acronym: "RTS", Expansion: "Room Temperature Sensor", Category: "measurement", Priority: 8, Tags: []string{"room", "temp", "sensor"}, PointFunction: types.FunctionSensor},
		{Acronym: "CTLSTPT", Expansion: "Control Setpoint", Category: "function", Priority: 8, Tags: []string{"sp"}, PointFunction: types.FunctionSetpoint},
		{Acronym: "DAYNGT", Expansion: "Day Night Mode", Category: "state", Priority: 6, Tags: []string{"occ"}},
	},
	"honeywell": {
		{Acronym: "SPT", Expansion: "Space Temperature", Category: "measurement", Priority: 8, Tags: []string{"zone", "temp"}},
		{Acronym: "OCCSEN", Expansion: "Occupancy Sensor", Category: "state", Priority: 7, Tags: []string{"occ", "sensor"}, PointFunction: types.FunctionSensor},
	},
	"trane": {
		{Acronym: "UCM", Expansion: "Unit Control Module", Category: "equipment", Priority: 6, Tags: []string{"equip"}},
		{Acronym: "IGV", Expansion: "Inlet Guide Vane", Category: "equipment", Priority: 6},
	},
	"automated logic": {
		{Acronym: "LSTAT", Expansion: "Local Status", Category: "state", Priority: 6, Tags: []string{"status"}, PointFunction: types.FunctionStatus},
		{Acronym: "ZNT", Expansion: "Zone Temperature", Category: "measurement", Priority: 8, Tags: []string{"zone", "temp"}},
	},
}
