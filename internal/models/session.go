package models

import "time"

// Session is the console's persistent client storage: the bearer token plus the
// self snapshot fetched after login.
type Session struct {
	Token       string    `json:"token"`
	User        *User     `json:"user,omitempty"`
	Permissions []string  `json:"permissions"`
	SavedAt     time.Time `json:"saved_at"`
}

// ViewState keeps a table's transient UI state (current page, filter values) so
// it survives console restarts.
type ViewState struct {
	View    string         `json:"view"`
	Page    int            `json:"page"`
	Filters map[string]any `json:"filters"`
}

func (s *ViewState) GetString(key string) string {
	if s.Filters == nil {
		return ""
	}
	val, ok := s.Filters[key]
	if !ok {
		return ""
	}
	if str, ok := val.(string); ok {
		return str
	}
	return ""
}

func (s *ViewState) GetInt64(key string) int64 {
	if s.Filters == nil {
		return 0
	}
	val, ok := s.Filters[key]
	if !ok {
		return 0
	}
	switch v := val.(type) {
	case int64:
		return v
	case float64:
		return int64(v)
	case int:
		return int64(v)
	default:
		return 0
	}
}

func (s *ViewState) GetTime(key string) time.Time {
	if s.Filters == nil {
		return time.Time{}
	}
	val, ok := s.Filters[key]
	if !ok {
		return time.Time{}
	}
	switch v := val.(type) {
	case time.Time:
		return v
	case string:
		t, err := time.Parse(time.RFC3339, v)
		if err != nil {
			t, err = time.Parse("2006-01-02", v)
			if err != nil {
				return time.Time{}
			}
		}
		return t
	default:
		return time.Time{}
	}
}
