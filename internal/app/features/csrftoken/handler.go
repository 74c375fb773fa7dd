// internal/app/features/csrftoken/handler.go
package csrftoken

import (
	"net/http"

	"github.com/gorilla/csrf"
	"github.com/hostelhub/hostelhub/internal/app/system/respond"
)

// HeaderName is the request header clients echo the token in.
const HeaderName = "X-CSRF-Token"

type tokenResponse struct {
	Token  string `json:"csrfToken"`
	Header string `json:"header"`
}

// ServeToken handles GET /api/csrf. It only works behind csrf.Protect,
// which also sets the cookie the token is checked against.
func ServeToken(w http.ResponseWriter, r *http.Request) {
	token := csrf.Token(r)
	w.Header().Set(HeaderName, token)
	respond.JSON(w, http.StatusOK, tokenResponse{Token: token, Header: HeaderName})
}

// Rejected answers requests that fail the CSRF check.
func Rejected(w http.ResponseWriter, r *http.Request) {
	respond.JSON(w, http.StatusForbidden, respond.ErrorBody{
		Error: "missing or invalid csrf token",
		Code:  "CSRF_REJECTED",
	})
}
