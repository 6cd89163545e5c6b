// Package preview renders a bounded, typed preview of a tabular file:
// the header row, up to MaxRows data rows, and the unbounded row count.
// Malformed input degrades to an empty preview instead of an error.
package preview

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/appdotbuilder/unimus-dataset-repo/internal/apperrors"
)

// MaxRows caps the number of data rows included in a preview. The total
// row count is always the uncapped number.
const MaxRows = 20

type Result struct {
	Headers   []string        `json:"headers"`
	Rows      [][]interface{} `json:"rows"`
	TotalRows int             `json:"totalRows"`
	FileType  string          `json:"fileType"`
}

func emptyResult(fileType string) *Result {
	return &Result{Headers: []string{}, Rows: [][]interface{}{}, TotalRows: 0, FileType: fileType}
}

// DetectFormat resolves the parser to use: the file name extension when
// present, the declared type otherwise.
func DetectFormat(filename, declaredType string) (string, error) {
	format := strings.ToLower(strings.TrimPrefix(filepath.Ext(filename), "."))
	if format == "" {
		format = strings.ToLower(declaredType)
	}
	switch format {
	case "csv", "json", "arff":
		return format, nil
	}
	return "", fmt.Errorf("%w: %q", apperrors.ErrUnsupported, format)
}

// Parse previews raw file content in the given format ("csv", "json" or
// "arff", lowercase).
func Parse(content []byte, format string) (*Result, error) {
	switch format {
	case "csv":
		return parseCSV(content), nil
	case "json":
		return parseJSON(content), nil
	case "arff":
		return parseARFF(content), nil
	}
	return nil, fmt.Errorf("%w: %q", apperrors.ErrUnsupported, format)
}

// typedCell applies the uniform cell typing policy: empty and "null"
// (any case) map to null, "?" too for ARFF; a token that fully parses
// as a finite number becomes numeric; anything else stays a string.
func typedCell(token string, arff bool) interface{} {
	t := strings.TrimSpace(token)
	if t == "" || strings.EqualFold(t, "null") || (arff && t == "?") {
		return nil
	}
	if n, err := strconv.ParseFloat(t, 64); err == nil && !math.IsInf(n, 0) && !math.IsNaN(n) {
		return n
	}
	return t
}

// cleanToken trims a token and strips one leading and one trailing
// quote character.
func cleanToken(token, quote string) string {
	t := strings.TrimSpace(token)
	t = strings.TrimPrefix(t, quote)
	t = strings.TrimSuffix(t, quote)
	return t
}

func nonBlankLines(content []byte) []string {
	var lines []string
	for _, line := range strings.Split(string(content), "\n") {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, strings.TrimRight(line, "\r"))
		}
	}
	return lines
}

// splitCSVLine tokenizes a physical CSV line. A double quote toggles
// the in-quotes flag so commas inside quotes do not split; each token
// is trimmed and loses one surrounding quote.
func splitCSVLine(line string) []string {
	var tokens []string
	var current strings.Builder
	inQuotes := false
	for _, ch := range line {
		switch {
		case ch == '"':
			inQuotes = !inQuotes
			current.WriteRune(ch)
		case ch == ',' && !inQuotes:
			tokens = append(tokens, cleanToken(current.String(), `"`))
			current.Reset()
		default:
			current.WriteRune(ch)
		}
	}
	tokens = append(tokens, cleanToken(current.String(), `"`))
	return tokens
}

func parseCSV(content []byte) *Result {
	result := emptyResult("csv")
	lines := nonBlankLines(content)
	if len(lines) == 0 {
		return result
	}
	result.Headers = splitCSVLine(lines[0])
	dataLines := lines[1:]
	result.TotalRows = len(dataLines)
	for i, line := range dataLines {
		if i >= MaxRows {
			break
		}
		tokens := splitCSVLine(line)
		row := make([]interface{}, len(tokens))
		for j, token := range tokens {
			row[j] = typedCell(token, false)
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

// jsonCell converts a decoded JSON value to a preview cell: null stays
// null, numbers stay numeric, strings go through the typing policy, and
// everything else is stringified.
func jsonCell(value interface{}) interface{} {
	switch v := value.(type) {
	case nil:
		return nil
	case json.Number:
		if f, err := v.Float64(); err == nil && !math.IsInf(f, 0) && !math.IsNaN(f) {
			return f
		}
		return v.String()
	case string:
		return typedCell(v, false)
	case bool:
		return strconv.FormatBool(v)
	default:
		b, err := json.Marshal(v)
		if err != nil {
			return fmt.Sprintf("%v", v)
		}
		return string(b)
	}
}

// objectKeys scans a raw JSON object and returns its keys in document
// order, which a decoded map would lose.
func objectKeys(raw []byte) []string {
	dec := json.NewDecoder(bytes.NewReader(raw))
	tok, err := dec.Token()
	if err != nil || tok != json.Delim('{') {
		return nil
	}
	var keys []string
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return keys
		}
		key, ok := keyTok.(string)
		if !ok {
			return keys
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return keys
		}
	}
	return keys
}

func parseJSON(content []byte) *Result {
	result := emptyResult("json")

	dec := json.NewDecoder(bytes.NewReader(content))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return result
	}

	switch v := doc.(type) {
	case []interface{}:
		if len(v) > 0 {
			if _, ok := v[0].(map[string]interface{}); ok {
				return previewRecords(content, v, result)
			}
		}
	case map[string]interface{}:
		result.Headers = objectKeys(content)
		row := make([]interface{}, len(result.Headers))
		for i, key := range result.Headers {
			row[i] = jsonCell(v[key])
		}
		result.Rows = append(result.Rows, row)
		result.TotalRows = 1
		return result
	}

	result.Headers = []string{"value"}
	result.Rows = append(result.Rows, []interface{}{jsonCell(doc)})
	result.TotalRows = 1
	return result
}

// previewRecords flattens a JSON array of records to the key order of
// the first record. Missing keys become null cells.
func previewRecords(content []byte, records []interface{}, result *Result) *Result {
	var raw []json.RawMessage
	if err := json.Unmarshal(content, &raw); err != nil || len(raw) == 0 {
		return result
	}
	result.Headers = objectKeys(raw[0])
	result.TotalRows = len(records)
	for i, rec := range records {
		if i >= MaxRows {
			break
		}
		row := make([]interface{}, len(result.Headers))
		if obj, ok := rec.(map[string]interface{}); ok {
			for j, key := range result.Headers {
				row[j] = jsonCell(obj[key])
			}
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}

func parseARFF(content []byte) *Result {
	result := emptyResult("arff")
	lines := strings.Split(string(content), "\n")

	dataIndex := -1
	var headers []string
	for i, line := range lines {
		t := strings.TrimRight(strings.TrimSpace(line), "\r")
		if strings.EqualFold(t, "@data") {
			dataIndex = i
			break
		}
		if len(t) >= 10 && strings.EqualFold(t[:10], "@attribute") {
			fields := strings.Fields(t)
			if len(fields) >= 2 {
				headers = append(headers, cleanToken(fields[1], "'"))
			}
		}
	}
	if dataIndex < 0 {
		return result
	}
	if headers != nil {
		result.Headers = headers
	}

	for _, line := range lines[dataIndex+1:] {
		t := strings.TrimSpace(line)
		if t == "" || strings.HasPrefix(t, "%") {
			continue
		}
		result.TotalRows++
		if len(result.Rows) >= MaxRows {
			continue
		}
		tokens := strings.Split(t, ",")
		row := make([]interface{}, len(tokens))
		for j, token := range tokens {
			row[j] = typedCell(cleanToken(token, "'"), true)
		}
		result.Rows = append(result.Rows, row)
	}
	return result
}
