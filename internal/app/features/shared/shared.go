// Package shared holds the pieces every JSON feature handler uses: the
// caller identity, list settings and the degraded list envelope.
package shared

import (
	"net/http"
	"time"

	"github.com/hostelhub/hostelhub/internal/app/system/apperr"
	"github.com/hostelhub/hostelhub/internal/app/system/auth"
	"github.com/hostelhub/hostelhub/internal/app/system/paging"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Settings are the list knobs loaded from config.
type Settings struct {
	PerPage          int
	AgentLimit       int
	ExpiryWindowDays int
	// Now is overridden in tests.
	Now func() time.Time
}

// Today is the current UTC date.
func (s Settings) Today() time.Time {
	now := time.Now
	if s.Now != nil {
		now = s.Now
	}
	y, m, d := now().UTC().Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// Caller is the signed-in business user behind a request.
type Caller struct {
	UserID     primitive.ObjectID
	BusinessID primitive.ObjectID
	SessionID  string
	Name       string
}

// CallerFrom reads the session user. Routes are behind RequireSignedIn,
// but handlers still refuse a request without a business.
func CallerFrom(r *http.Request) (Caller, error) {
	u, ok := auth.CurrentUser(r)
	if !ok || u == nil {
		return Caller{}, apperr.Unauthenticated()
	}
	c := Caller{UserID: u.User(), BusinessID: u.Business(), SessionID: u.SessionID, Name: u.Name}
	if c.BusinessID.IsZero() {
		return Caller{}, apperr.Unauthenticated()
	}
	return c, nil
}

// List is one page of results. When the underlying read failed the list is
// served empty (or partial) with Degraded set and Error explaining why.
type List[T any] struct {
	paging.Page[T]
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

// NewList paginates items and carries err, if any, as a degraded marker.
func NewList[T any](items []T, page, perPage int, err error) List[T] {
	if items == nil {
		items = []T{}
	}
	l := List[T]{Page: paging.Paginate(items, page, perPage)}
	if err != nil {
		l.Degraded = true
		l.Error = apperr.Message(err)
	}
	return l
}

// Degradable reports whether err should be served as a degraded list
// rather than an error response.
func Degradable(err error) bool {
	switch apperr.KindOf(err) {
	case apperr.KindUnauthenticated, apperr.KindNotFound, apperr.KindInvalid:
		return false
	default:
		return true
	}
}

// Collection is an unpaged list with the same degraded marker as List.
type Collection[T any] struct {
	Items    []T    `json:"items"`
	Degraded bool   `json:"degraded"`
	Error    string `json:"error,omitempty"`
}

// NewCollection wraps items, carrying err as a degraded marker.
func NewCollection[T any](items []T, err error) Collection[T] {
	if items == nil {
		items = []T{}
	}
	c := Collection[T]{Items: items}
	if err != nil {
		c.Degraded = true
		c.Error = apperr.Message(err)
	}
	return c
}
