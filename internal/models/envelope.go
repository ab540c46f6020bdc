package models

// Meta describes server-side pagination of a collection response.
type Meta struct {
	CurrentPage int `json:"current_page"`
	LastPage    int `json:"last_page"`
	PerPage     int `json:"per_page"`
	Total       int `json:"total"`
}

// Envelope is the standard collection response shape {data, meta}.
type Envelope[T any] struct {
	Data []T   `json:"data"`
	Meta *Meta `json:"meta,omitempty"`
}

// Single wraps a one-resource response.
type Single[T any] struct {
	Data T `json:"data"`
}

// ErrorBody is the backend failure payload.
type ErrorBody struct {
	Message string `json:"message"`
}
