package models

import (
	"fmt"
	"strconv"
	"time"
)

// ViewRow is one row of an aggregate view read without a fixed schema.
type ViewRow map[string]interface{}

// NormalizeViewRow converts driver values into JSON friendly ones.
func NormalizeViewRow(raw map[string]interface{}) ViewRow {
	row := make(ViewRow, len(raw))
	for key, value := range raw {
		switch v := value.(type) {
		case []byte:
			row[key] = string(v)
		case time.Time:
			row[key] = v.UTC().Format(time.RFC3339)
		default:
			row[key] = v
		}
	}
	return row
}

// Int reads column as an integer, accepting the numeric encodings drivers produce.
func (r ViewRow) Int(column string) int {
	switch v := r[column].(type) {
	case int:
		return v
	case int32:
		return int(v)
	case int64:
		return int(v)
	case float64:
		return int(v)
	case string:
		if n, err := strconv.ParseFloat(v, 64); err == nil {
			return int(n)
		}
	}
	return 0
}

// Text reads column as a display string.
func (r ViewRow) Text(column string) string {
	v, ok := r[column]
	if !ok || v == nil {
		return ""
	}
	if s, ok := v.(string); ok {
		return s
	}
	return fmt.Sprint(v)
}
