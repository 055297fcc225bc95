package pagination

import (
	"encoding/json"
	"strings"
)

// SortField is one ORDER BY term. Field is the logical field name exposed by
// the API; repositories map it to a column and ignore names they do not know.
type SortField struct {
	Field      string `json:"field"`
	Descending bool   `json:"descending"`
}

// Direction returns "DESC" or "ASC".
func (f SortField) Direction() string {
	if f.Descending {
		return "DESC"
	}
	return "ASC"
}

// ParseSortFields parses a comma-separated sort string such as "grade,-evaluated_at".
// A leading "-" marks a descending field. Returns nil for empty input.
func ParseSortFields(s string) []SortField {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, ",")
	fields := make([]SortField, 0, len(parts))

	for _, part := range parts {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}

		if after, ok := strings.CutPrefix(part, "-"); ok {
			fields = append(fields, SortField{Field: after, Descending: true})
		} else {
			fields = append(fields, SortField{Field: part})
		}
	}

	return fields
}

// SortFields accepts either a comma-separated string or an array of SortField objects in JSON.
type SortFields []SortField

// UnmarshalJSON supports unmarshaling from a comma-separated string or array format.
func (s *SortFields) UnmarshalJSON(data []byte) error {
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		*s = ParseSortFields(str)
		return nil
	}

	var fields []SortField
	if err := json.Unmarshal(data, &fields); err != nil {
		return err
	}
	*s = fields
	return nil
}
