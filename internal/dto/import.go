package dto

// RawStudent is one submitted roster line. Fields keep their JSON type until normalized,
// since spreadsheets exported to JSON mix numbers and strings.
type RawStudent struct {
	FullName interface{} `json:"full_name"`
	Grade    interface{} `json:"grade"`
	Course   interface{} `json:"course"`
}

// ImportStudentsRequest wraps a roster upload.
type ImportStudentsRequest struct {
	Students []RawStudent `json:"students"`
}

// ImportSummary reports the outcome of a roster import.
type ImportSummary struct {
	Success   bool     `json:"success"`
	Imported  int      `json:"imported"`
	Skipped   int      `json:"skipped"`
	Total     int      `json:"total"`
	Valid     int      `json:"valid"`
	Groups    int      `json:"groups"`
	Message   string   `json:"message,omitempty"`
	Errors    []string `json:"errors"`
	HasErrors bool     `json:"hasErrors"`
}
