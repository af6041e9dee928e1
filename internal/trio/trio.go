// Package trio ingests BACnet point exports into RawPoint records. Two
// formats are supported: Haystack trio files (line-oriented, records
// separated by "---") and CSV with a header row. Object types are validated
// here, at the ingestion boundary; unknown types reject the record.
package trio

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"bacmap/internal/types"
)

// ParseError reports one rejected record. Parsing continues past rejected
// records; callers decide whether any error is fatal.
type ParseError struct {
	Record int
	Field  string
	Err    error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("record %d field %q: %v", e.Record, e.Field, e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// Result carries the accepted points and the per-record rejections of one
// parse pass.
type Result struct {
	Points []types.RawPoint
	Errors []*ParseError
}

// ParseTrio reads a Haystack trio stream. Records are blocks of
// "name: value" lines separated by lines of three or more dashes; a bare
// name is a marker tag (true).
func ParseTrio(r io.Reader) (*Result, error) {
	res := &Result{}
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	record := make(map[string]string)
	recordNum := 0
	flush := func() {
		if len(record) == 0 {
			return
		}
		recordNum++
		appendRecord(res, record, recordNum)
		record = make(map[string]string)
	}

	for scanner.Scan() {
		line := strings.TrimRight(scanner.Text(), " \t\r")
		if strings.HasPrefix(line, "//") {
			continue
		}
		if isSeparator(line) {
			flush()
			continue
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		name, value := splitTag(line)
		record[name] = value
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read trio stream: %w", err)
	}
	flush()
	return res, nil
}

func isSeparator(line string) bool {
	trimmed := strings.TrimSpace(line)
	if len(trimmed) < 3 {
		return false
	}
	for _, r := range trimmed {
		if r != '-' {
			return false
		}
	}
	return true
}

// splitTag parses one "name: value" line. A line without a colon is a
// marker tag.
func splitTag(line string) (name, value string) {
	idx := strings.Index(line, ":")
	if idx < 0 {
		return strings.TrimSpace(line), "true"
	}
	return strings.TrimSpace(line[:idx]), strings.Trim(strings.TrimSpace(line[idx+1:]), `"`)
}

// appendRecord converts one trio record into a RawPoint, validating the
// object type. Records with neither a dis nor an id are skipped silently;
// they carry nothing to normalize.
func appendRecord(res *Result, record map[string]string, num int) {
	objectName := firstOf(record, "id", "bacnetCur", "navName")
	displayName := firstOf(record, "dis", "bacnetDis")
	if objectName == "" && displayName == "" {
		return
	}

	rawType := firstOf(record, "objectType", "bacnetObjectType", "kind")
	objectType, err := types.ParseObjectType(rawType)
	if err != nil {
		res.Errors = append(res.Errors, &ParseError{Record: num, Field: "objectType", Err: err})
		return
	}

	res.Points = append(res.Points, types.RawPoint{
		ObjectName:  objectName,
		ObjectType:  objectType,
		DisplayName: displayName,
		Description: record["bacnetDesc"],
		Units:       firstOf(record, "unit", "units"),
		IsWritable:  record["writable"] == "true" || record["cmd"] == "true",
		IsCommand:   record["cmd"] == "true",
	})
}

func firstOf(record map[string]string, keys ...string) string {
	for _, k := range keys {
		if v := record[k]; v != "" && v != "true" {
			return v
		}
	}
	return ""
}
