package source

import (
	"bytes"
	"fmt"
	"os"
	"strconv"

	"github.com/goccy/go-json"
)

// LoadJSON reads a JSON array into a table. Elements may be objects (columns
// are the union of keys in first-seen order), arrays (positional columns) or
// scalars (a single "value" column).
func LoadJSON(path string) (*Table, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	t, err := ParseJSON(data)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	t.Name = path
	return t, nil
}

// ParseJSON builds a table from a JSON array
func ParseJSON(data []byte) (*Table, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, err
	}
	if len(elems) == 0 {
		return NewTable(nil, nil), nil
	}

	switch firstByte(elems[0]) {
	case '{':
		return parseObjects(elems)
	case '[':
		return parseArrays(elems)
	default:
		rows := make([][]string, 0, len(elems))
		for _, e := range elems {
			rows = append(rows, []string{formatRaw(e)})
		}
		return NewTable([]string{"value"}, rows), nil
	}
}

func parseObjects(elems []json.RawMessage) (*Table, error) {
	var columns []string
	seen := make(map[string]int)
	objects := make([]map[string]json.RawMessage, 0, len(elems))

	for i, e := range elems {
		keys, err := objectKeys(e)
		if err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		for _, k := range keys {
			if _, ok := seen[k]; !ok {
				seen[k] = len(columns)
				columns = append(columns, k)
			}
		}
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(e, &obj); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		objects = append(objects, obj)
	}

	rows := make([][]string, 0, len(objects))
	for _, obj := range objects {
		row := make([]string, len(columns))
		for k, v := range obj {
			row[seen[k]] = formatRaw(v)
		}
		rows = append(rows, row)
	}
	return NewTable(columns, rows), nil
}

func parseArrays(elems []json.RawMessage) (*Table, error) {
	width := 0
	rows := make([][]string, 0, len(elems))
	for i, e := range elems {
		var cells []json.RawMessage
		if err := json.Unmarshal(e, &cells); err != nil {
			return nil, fmt.Errorf("element %d: %w", i, err)
		}
		row := make([]string, len(cells))
		for j, c := range cells {
			row[j] = formatRaw(c)
		}
		if len(row) > width {
			width = len(row)
		}
		rows = append(rows, row)
	}
	columns := make([]string, width)
	for i := range columns {
		columns[i] = "c" + strconv.Itoa(i)
	}
	return NewTable(columns, rows), nil
}

// objectKeys returns the keys of a JSON object in document order
func objectKeys(raw json.RawMessage) ([]string, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	if _, err := dec.Token(); err != nil {
		return nil, err
	}
	var keys []string
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, err
		}
		key, ok := tok.(string)
		if !ok {
			return nil, fmt.Errorf("unexpected token %v", tok)
		}
		keys = append(keys, key)
		var skip json.RawMessage
		if err := dec.Decode(&skip); err != nil {
			return nil, err
		}
	}
	return keys, nil
}

// formatRaw renders a JSON value as cell text. Strings lose their quotes,
// null becomes empty, everything else keeps its JSON form.
func formatRaw(raw json.RawMessage) string {
	trimmed := bytes.TrimSpace(raw)
	switch firstByte(trimmed) {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s
		}
	case 'n':
		return ""
	}
	return string(trimmed)
}

func firstByte(raw []byte) byte {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return 0
	}
	return trimmed[0]
}
