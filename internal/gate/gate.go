// Package gate implements the authentication boundary in front of an
// application: a login endpoint that trades a username/password form for a
// session cookie, and a check on every other request that forwards it to the
// wrapped handler only once its credential verifies against the live store.
package gate

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"

	"gatehouse/internal/ui"
)

const (
	// LoginPath is the endpoint serving the sign-in form. The same path with
	// a trailing slash is accepted as an alias.
	LoginPath = "/login"

	// CookieName is the session cookie carrying the encoded credential.
	CookieName = "gatehouse_auth"

	// BasicAuthPrefix introduces a credential token in the Authorization
	// header. The match is case-sensitive and includes the space.
	BasicAuthPrefix = "Basic "

	// maxLoginFormBytes caps how much of a login submission body is read.
	maxLoginFormBytes = 64 << 10
)

// Verifier reports whether a username/password pair is currently valid.
// Implementations consult the live credential store on every call and
// collapse internal failures into a rejection; the gate treats the answer
// as authoritative and never retries.
type Verifier interface {
	Verify(ctx context.Context, username string, password string) bool
}

// Gate is an http.Handler that authenticates every request before handing it
// to the wrapped handler. Browser clients sign in at LoginPath and carry a
// session cookie afterwards; programmatic clients send the same encoded
// credential in the Authorization header. The gate keeps no session state of
// its own, so revoking a user in the store takes effect on their next
// request.
type Gate struct {
	verifier Verifier
	next     http.Handler
}

// New wraps next behind credential checks backed by verifier.
func New(verifier Verifier, next http.Handler) *Gate {
	return &Gate{verifier: verifier, next: next}
}

func (g *Gate) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path == LoginPath || r.URL.Path == LoginPath+"/" {
		switch r.Method {
		case http.MethodGet:
			g.serveLoginPage(w, r)
			return
		case http.MethodPost:
			g.handleLoginSubmit(w, r)
			return
		}
	}

	// Everything else, including other methods on the login path, must
	// present a credential.
	g.serveProtected(w, r)
}

// serveLoginPage writes the sign-in form, with the rejection banner when the
// redirect that led here carried the error marker.
func (g *Gate) serveLoginPage(w http.ResponseWriter, r *http.Request) {
	showError := r.URL.Query().Has("error")

	var buf bytes.Buffer
	if err := ui.LoginPage(showError).Render(r.Context(), &buf); err != nil {
		slog.Error("Failed to render login page", "error", err)
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	_, _ = w.Write(buf.Bytes())
}

// handleLoginSubmit verifies a submitted form. Success plants the session
// cookie and redirects to the application root; anything else redirects back
// to the form with the error marker and sets no cookie.
func (g *Gate) handleLoginSubmit(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, maxLoginFormBytes)

	body, err := io.ReadAll(r.Body)
	if err != nil {
		// An oversized or unreadable body decodes as an empty form.
		body = nil
	}

	fields := DecodeForm(body)
	username := fields["username"]
	password := fields["password"]

	if !g.verifier.Verify(r.Context(), username, password) {
		loginAttempts.WithLabelValues("rejected").Inc()
		slog.Info("Login rejected", "user", username)
		http.Redirect(w, r, LoginPath+"?error=1", http.StatusSeeOther)
		return
	}

	loginAttempts.WithLabelValues("accepted").Inc()
	slog.Info("Login accepted", "user", username)

	http.SetCookie(w, &http.Cookie{
		Name:     CookieName,
		Value:    EncodeCredential(username, password),
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// serveProtected checks the request's credential and forwards it, with the
// verified username attached to its context, to the wrapped handler.
func (g *Gate) serveProtected(w http.ResponseWriter, r *http.Request) {
	token, ok := credentialToken(r)
	if !ok {
		requestsTotal.WithLabelValues(outcomeRedirectLogin).Inc()
		http.Redirect(w, r, LoginPath, http.StatusSeeOther)
		return
	}

	username, password, err := DecodeCredential(token)
	if err != nil {
		requestsTotal.WithLabelValues(outcomeRedirectError).Inc()
		slog.Debug("Rejecting undecodable credential token", "error", err)
		http.Redirect(w, r, LoginPath+"?error=1", http.StatusSeeOther)
		return
	}

	if !g.verifier.Verify(r.Context(), username, password) {
		requestsTotal.WithLabelValues(outcomeRedirectError).Inc()
		slog.Debug("Rejecting credential", "user", username)
		http.Redirect(w, r, LoginPath+"?error=1", http.StatusSeeOther)
		return
	}

	requestsTotal.WithLabelValues(outcomeForwarded).Inc()
	g.next.ServeHTTP(w, r.WithContext(WithIdentity(r.Context(), username)))
}

// credentialToken finds the encoded credential for a protected request. The
// Authorization header is consulted first: a value beginning with exactly
// "Basic " and carrying a non-empty remainder supplies the token and ends
// the search, whatever the token's shape. Otherwise the session cookie
// supplies it. The boolean is false only when neither source is present.
func credentialToken(r *http.Request) (string, bool) {
	authz := r.Header.Get("Authorization")
	if strings.HasPrefix(authz, BasicAuthPrefix) && len(authz) > len(BasicAuthPrefix) {
		return authz[len(BasicAuthPrefix):], true
	}

	return CookieValue(r.Header.Get("Cookie"), CookieName)
}
