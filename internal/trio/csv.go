package trio

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"bacmap/internal/types"
)

// csvColumns maps recognized header names (lowercased, separators stripped)
// onto RawPoint fields.
var csvColumns = map[string]string{
	"objectname":   "objectName",
	"object name":  "objectName",
	"objecttype":   "objectType",
	"object type":  "objectType",
	"displayname":  "displayName",
	"display name": "displayName",
	"display":      "displayName",
	"dis":          "displayName",
	"name":         "displayName",
	"description":  "description",
	"desc":         "description",
	"units":        "units",
	"unit":         "units",
	"writable":     "writable",
	"iswritable":   "writable",
	"command":      "command",
	"iscommand":    "command",
}

// ParseCSV reads a point export with a header row. Unrecognized columns are
// ignored; rows with an invalid object type are rejected individually.
func ParseCSV(r io.Reader) (*Result, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true
	reader.FieldsPerRecord = -1

	header, err := reader.Read()
	if err == io.EOF {
		return &Result{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header: %w", err)
	}

	fields := make(map[int]string, len(header))
	for i, col := range header {
		key := strings.ToLower(strings.TrimSpace(col))
		if f, ok := csvColumns[key]; ok {
			fields[i] = f
		}
	}
	if len(fields) == 0 {
		return nil, fmt.Errorf("CSV header has no recognized columns")
	}

	res := &Result{}
	for recordNum := 1; ; recordNum++ {
		row, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("failed to read CSV record %d: %w", recordNum, err)
		}

		var p types.RawPoint
		var rawType string
		for i, cell := range row {
			value := strings.TrimSpace(cell)
			switch fields[i] {
			case "objectName":
				p.ObjectName = value
			case "objectType":
				rawType = value
			case "displayName":
				p.DisplayName = value
			case "description":
				p.Description = value
			case "units":
				p.Units = value
			case "writable":
				p.IsWritable = truthy(value)
			case "command":
				p.IsCommand = truthy(value)
			}
		}
		if p.ObjectName == "" && p.DisplayName == "" {
			continue
		}

		objectType, err := types.ParseObjectType(rawType)
		if err != nil {
			res.Errors = append(res.Errors, &ParseError{Record: recordNum, Field: "objectType", Err: err})
			continue
		}
		p.ObjectType = objectType
		res.Points = append(res.Points, p)
	}
	return res, nil
}

func truthy(v string) bool {
	switch strings.ToLower(v) {
	case "true", "yes", "y", "1":
		return true
	}
	return false
}
