package userapi

import (
	"bytes"
	"fmt"
	"time"

	"github.com/goccy/go-json"
)

// Paging defaults applied when a PageRequest field is left at its zero value.
const (
	DefaultPage   = 0
	DefaultSize   = 10
	DefaultSortBy = "createdAt"
)

// User is the user record exchanged with the backend.
// It is sent as-is; zero-valued fields are omitted, so a User without an ID
// never carries an "id" key.
type User struct {
	ID        int64      `json:"id,omitempty"`
	Username  string     `json:"username,omitempty"`
	Email     string     `json:"email,omitempty"`
	FullName  string     `json:"fullName,omitempty"`
	IsActive  *bool      `json:"isActive,omitempty"`
	CreatedAt *Timestamp `json:"createdAt,omitempty"`
	UpdatedAt *Timestamp `json:"updatedAt,omitempty"`
}

// Active reports the user's status flag. A missing flag counts as inactive.
func (u User) Active() bool {
	return u.IsActive != nil && *u.IsActive
}

// Bool returns a pointer to b, for filling optional fields such as IsActive.
func Bool(b bool) *bool {
	return &b
}

// PageRequest selects one page of the paged listing.
type PageRequest struct {
	Page   int
	Size   int
	SortBy string
}

// withDefaults fills omitted fields. Size zero and an empty SortBy are
// treated as omitted; Page zero already is the default.
func (p PageRequest) withDefaults() PageRequest {
	if p.Size == 0 {
		p.Size = DefaultSize
	}
	if p.SortBy == "" {
		p.SortBy = DefaultSortBy
	}
	return p
}

// Envelope holds the fields every backend response carries.
type Envelope struct {
	Success    bool   `json:"success"`
	Message    string `json:"message"`
	DataSource string `json:"dataSource,omitempty"`
}

// ListResult is returned by the list and simple search operations.
type ListResult struct {
	Envelope
	Data       []User `json:"data"`
	Count      int    `json:"count"`
	SearchTerm string `json:"searchTerm,omitempty"`
	Domain     string `json:"domain,omitempty"`
}

// SearchResult is returned by AdvancedSearch.
type SearchResult struct {
	ListResult
	SearchCriteria map[string]any `json:"searchCriteria,omitempty"`
}

// PageResult is returned by ListPaged.
type PageResult struct {
	Envelope
	Data          []User `json:"data"`
	CurrentPage   int    `json:"currentPage"`
	TotalPages    int    `json:"totalPages"`
	TotalElements int64  `json:"totalElements"`
	Size          int    `json:"size"`
	HasNext       bool   `json:"hasNext,omitempty"`
	HasPrevious   bool   `json:"hasPrevious,omitempty"`
}

// UserResult is returned by the single-user operations.
type UserResult struct {
	Envelope
	Data User `json:"data"`
}

// CountResult is returned by CountActive.
type CountResult struct {
	Envelope
	ActiveUserCount int64 `json:"activeUserCount"`
}

// DeleteResult is returned by Delete.
type DeleteResult struct {
	Envelope
	DeletedID int64 `json:"deletedId"`
}

// timestampLayouts are tried in order. The backend emits local date-times
// without a zone; RFC 3339 is accepted as well.
var timestampLayouts = []string{
	"2006-01-02T15:04:05.999999999",
	time.RFC3339Nano,
	"2006-01-02 15:04:05",
}

// Timestamp is a point in time that remembers the layout it was parsed
// from, so a record read from the backend is written back unchanged.
type Timestamp struct {
	time.Time
	layout string
}

// NewTimestamp wraps t; it is encoded as RFC 3339.
func NewTimestamp(t time.Time) *Timestamp {
	return &Timestamp{Time: t, layout: time.RFC3339Nano}
}

// UnmarshalJSON implements json.Unmarshaler.
func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	if bytes.Equal(data, []byte("null")) {
		return nil
	}
	var raw string
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("timestamp: %w", err)
	}
	for _, layout := range timestampLayouts {
		if t, err := time.Parse(layout, raw); err == nil {
			ts.Time = t
			ts.layout = layout
			return nil
		}
	}
	return fmt.Errorf("timestamp: unrecognized format %q", raw)
}

// MarshalJSON implements json.Marshaler.
func (ts Timestamp) MarshalJSON() ([]byte, error) {
	layout := ts.layout
	if layout == "" {
		layout = time.RFC3339Nano
	}
	return json.Marshal(ts.Time.Format(layout))
}
