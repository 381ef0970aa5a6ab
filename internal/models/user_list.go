package models

// UserFilter carries the optional listing inputs. Nil means "not supplied".
// Ranges are checked by the request validator before a filter reaches the service.
type UserFilter struct {
	Search  *string
	Country *string
	Company *string
	Limit   *int
	Offset  int
}

// Paginated reports whether the caller asked for a bounded page.
func (f UserFilter) Paginated() bool { return f.Limit != nil }

// UserList is the listing envelope.
type UserList struct {
	Users []User `json:"users"`
	Total int64  `json:"total"`
	Skip  int    `json:"skip"`
	Limit int64  `json:"limit"`

	HasMore    *bool  `json:"hasMore,omitempty"`
	Page       *int64 `json:"page,omitempty"`
	TotalPages *int64 `json:"totalPages,omitempty"`
}
