package userapi

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
)

// Users is the operation set of one backend. Every method issues exactly
// one request; inputs are forwarded without validation.
type Users struct {
	client  *Client
	backend Backend
}

// Backend returns the backend this set talks to.
func (u *Users) Backend() Backend {
	return u.backend
}

// ListAll fetches every user.
// GET {prefix}
func (u *Users) ListAll(ctx context.Context) (*ListResult, error) {
	return fetch[ListResult](ctx, u, "list_all", http.MethodGet, "", nil, nil)
}

// ListPaged fetches one page of users, applying DefaultSize and
// DefaultSortBy to omitted fields.
// GET {prefix}/paged?page=&size=&sortBy=
func (u *Users) ListPaged(ctx context.Context, p PageRequest) (*PageResult, error) {
	p = p.withDefaults()
	query := url.Values{
		"page":   {strconv.Itoa(p.Page)},
		"size":   {strconv.Itoa(p.Size)},
		"sortBy": {p.SortBy},
	}
	return fetch[PageResult](ctx, u, "list_paged", http.MethodGet, "/paged", query, nil)
}

// Get fetches a user by ID.
// GET {prefix}/{id}
func (u *Users) Get(ctx context.Context, id int64) (*UserResult, error) {
	return fetch[UserResult](ctx, u, "get", http.MethodGet, idPath(id), nil, nil)
}

// ListActive fetches active users.
// GET {prefix}/active
func (u *Users) ListActive(ctx context.Context) (*ListResult, error) {
	return fetch[ListResult](ctx, u, "list_active", http.MethodGet, "/active", nil, nil)
}

// SearchByUsername fetches users whose username matches.
// GET {prefix}/search?username=
func (u *Users) SearchByUsername(ctx context.Context, username string) (*ListResult, error) {
	query := url.Values{"username": {username}}
	return fetch[ListResult](ctx, u, "search_username", http.MethodGet, "/search", query, nil)
}

// ListByDomain fetches users whose email belongs to domain.
// GET {prefix}/domain?domain=
func (u *Users) ListByDomain(ctx context.Context, domain string) (*ListResult, error) {
	query := url.Values{"domain": {domain}}
	return fetch[ListResult](ctx, u, "list_domain", http.MethodGet, "/domain", query, nil)
}

// ListRecent fetches the most recently created users.
// GET {prefix}/recent
func (u *Users) ListRecent(ctx context.Context) (*ListResult, error) {
	return fetch[ListResult](ctx, u, "list_recent", http.MethodGet, "/recent", nil, nil)
}

// CountActive fetches the number of active users.
// GET {prefix}/count/active
func (u *Users) CountActive(ctx context.Context) (*CountResult, error) {
	return fetch[CountResult](ctx, u, "count_active", http.MethodGet, "/count/active", nil, nil)
}

// Create sends user as a new record.
// POST {prefix}
func (u *Users) Create(ctx context.Context, user User) (*UserResult, error) {
	return fetch[UserResult](ctx, u, "create", http.MethodPost, "", nil, user)
}

// AdvancedSearch filters users by arbitrary criteria.
// GET {prefix}/advanced-search?{criteria}
func (u *Users) AdvancedSearch(ctx context.Context, criteria SearchCriteria) (*SearchResult, error) {
	if !u.backend.Caps.AdvancedSearch {
		return nil, u.unsupported("advanced search")
	}
	query, err := criteria.Values()
	if err != nil {
		return nil, err
	}
	return fetch[SearchResult](ctx, u, "advanced_search", http.MethodGet, "/advanced-search", query, nil)
}

// Update replaces the user with the given ID.
// PUT {prefix}/{id}
func (u *Users) Update(ctx context.Context, id int64, user User) (*UserResult, error) {
	if !u.backend.Caps.Update {
		return nil, u.unsupported("update")
	}
	return fetch[UserResult](ctx, u, "update", http.MethodPut, idPath(id), nil, user)
}

// UpdateRecord replaces the user with the given ID, sending record as the
// body exactly as given. Unlike Update it can carry empty strings, explicit
// nulls and fields User does not declare.
// PUT {prefix}/{id}
func (u *Users) UpdateRecord(ctx context.Context, id int64, record map[string]any) (*UserResult, error) {
	if !u.backend.Caps.Update {
		return nil, u.unsupported("update")
	}
	return fetch[UserResult](ctx, u, "update", http.MethodPut, idPath(id), nil, record)
}

// Delete removes the user with the given ID.
// DELETE {prefix}/{id}
func (u *Users) Delete(ctx context.Context, id int64) (*DeleteResult, error) {
	if !u.backend.Caps.Delete {
		return nil, u.unsupported("delete")
	}
	return fetch[DeleteResult](ctx, u, "delete", http.MethodDelete, idPath(id), nil, nil)
}

func fetch[T any](ctx context.Context, u *Users, op, method, sub string, query url.Values, body any) (*T, error) {
	var out T
	_, err := u.client.send(ctx, request{
		backend:   u.backend.Name,
		operation: op,
		method:    method,
		path:      u.backend.Prefix + sub,
		query:     query,
		body:      body,
	}, &out)
	if err != nil {
		return nil, err
	}
	return &out, nil
}

func (u *Users) unsupported(op string) error {
	return fmt.Errorf("%s on %s backend: %w", op, u.backend.Name, ErrUnsupported)
}

func idPath(id int64) string {
	return "/" + strconv.FormatInt(id, 10)
}
