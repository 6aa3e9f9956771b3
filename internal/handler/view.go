package handler

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"html/template"
	"log/slog"
	"net/http"
	"net/url"
	"sort"
	"strconv"

	"github.com/usermgmt/usermgmt/internal/middleware"
	"github.com/usermgmt/usermgmt/internal/userapi"
)

//go:embed templates/users.html
var usersHTML string

var usersTemplate = template.Must(template.New("users").Parse(usersHTML))

// UserDirectory is the part of the user API the view reads.
type UserDirectory interface {
	ListPaged(ctx context.Context, p userapi.PageRequest) (*userapi.PageResult, error)
	SearchByUsername(ctx context.Context, username string) (*userapi.ListResult, error)
	CountActive(ctx context.Context) (*userapi.CountResult, error)
}

// ViewHandler renders the user management page.
type ViewHandler struct {
	directories    map[string]UserDirectory
	names          []string
	defaultBackend string
	logger         *slog.Logger
}

// NewViewHandler creates a ViewHandler serving the given backends by name.
// defaultBackend is shown when the request names none.
func NewViewHandler(defaultBackend string, directories map[string]UserDirectory, logger *slog.Logger) *ViewHandler {
	names := make([]string, 0, len(directories))
	for name := range directories {
		names = append(names, name)
	}
	sort.Strings(names)

	return &ViewHandler{
		directories:    directories,
		names:          names,
		defaultBackend: defaultBackend,
		logger:         logger.With("component", "handler.view"),
	}
}

type viewData struct {
	Backends []string
	Backend  string
	Username string
	Error    string

	Users       []userapi.User
	ActiveCount int64

	Paged         bool
	Page          int
	TotalPages    int
	TotalElements int64
	HasPrevious   bool
	HasNext       bool
	PrevURL       string
	NextURL       string
}

// Users renders the management view.
//
// GET /?backend=&page=&size=&sortBy=&username=
func (h *ViewHandler) Users(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	data := viewData{
		Backends: h.names,
		Backend:  q.Get("backend"),
		Username: q.Get("username"),
	}
	if data.Backend == "" {
		data.Backend = h.defaultBackend
	}

	dir, ok := h.directories[data.Backend]
	if !ok {
		data.Error = "unknown backend: " + data.Backend
		h.render(w, http.StatusBadRequest, data)
		return
	}

	page, err := optionalInt(q.Get("page"))
	if err != nil {
		data.Error = "invalid page: " + q.Get("page")
		h.render(w, http.StatusBadRequest, data)
		return
	}
	size, err := optionalInt(q.Get("size"))
	if err != nil {
		data.Error = "invalid size: " + q.Get("size")
		h.render(w, http.StatusBadRequest, data)
		return
	}

	ctx := r.Context()

	count, err := dir.CountActive(ctx)
	if err != nil {
		h.upstreamError(w, r, data, err)
		return
	}
	data.ActiveCount = count.ActiveUserCount

	if data.Username != "" {
		res, err := dir.SearchByUsername(ctx, data.Username)
		if err != nil {
			h.upstreamError(w, r, data, err)
			return
		}
		data.Users = res.Data
		h.render(w, http.StatusOK, data)
		return
	}

	res, err := dir.ListPaged(ctx, userapi.PageRequest{Page: page, Size: size, SortBy: q.Get("sortBy")})
	if err != nil {
		h.upstreamError(w, r, data, err)
		return
	}

	data.Users = res.Data
	data.Paged = true
	data.Page = res.CurrentPage + 1
	data.TotalPages = res.TotalPages
	data.TotalElements = res.TotalElements
	data.HasPrevious = res.CurrentPage > 0
	data.HasNext = res.HasNext || res.CurrentPage+1 < res.TotalPages
	data.PrevURL = pageURL(q, res.CurrentPage-1)
	data.NextURL = pageURL(q, res.CurrentPage+1)

	h.render(w, http.StatusOK, data)
}

// upstreamError shows the backend's message, or the transport error, with
// a 502 status.
func (h *ViewHandler) upstreamError(w http.ResponseWriter, r *http.Request, data viewData, err error) {
	h.logger.Warn("user api call failed",
		slog.String("request_id", middleware.GetRequestID(r.Context())),
		slog.String("backend", data.Backend),
		slog.String("error", err.Error()),
	)

	data.Error = err.Error()
	var apiErr *userapi.APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		data.Error = apiErr.Message
	}
	h.render(w, http.StatusBadGateway, data)
}

func (h *ViewHandler) render(w http.ResponseWriter, status int, data viewData) {
	var buf bytes.Buffer
	if err := usersTemplate.Execute(&buf, data); err != nil {
		h.logger.Error("render view", slog.String("error", err.Error()))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

func optionalInt(s string) (int, error) {
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil || n < 0 {
		return 0, errors.New("not a non-negative integer")
	}
	return n, nil
}

func pageURL(q url.Values, page int) string {
	next := url.Values{}
	for k, v := range q {
		next[k] = v
	}
	next.Set("page", strconv.Itoa(page))
	return "/?" + next.Encode()
}
