package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"gatehouse/internal/gate"
)

// getenv returns the value of the environment variable named by key or
// fallback if the variable is not present.
func getenv(key, fallback string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return fallback
}

// drain discards and closes a response body so the connection can be reused.
func drain(resp *http.Response) {
	_, _ = io.Copy(io.Discard, resp.Body)
	_ = resp.Body.Close()
}

// SubmitLogin posts the credential form and returns the session token the
// gateway plants on success.
func SubmitLogin(ctx context.Context, client *http.Client, gateway string, username string, password string) (string, error) {
	form := url.Values{}
	form.Set("username", username)
	form.Set("password", password)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, gateway+gate.LoginPath, strings.NewReader(form.Encode()))
	if err != nil {
		return "", fmt.Errorf("failed to build login request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to submit login form: %w", err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusSeeOther {
		return "", fmt.Errorf("unexpected login response status %d", resp.StatusCode)
	}
	if loc := resp.Header.Get("Location"); loc != "/" {
		return "", fmt.Errorf("login rejected, gateway redirected to %q", loc)
	}

	for _, c := range resp.Cookies() {
		if c.Name == gate.CookieName {
			return c.Value, nil
		}
	}
	return "", errors.New("login response carried no session cookie")
}

// FetchWithCookie requests path presenting the token as a session cookie.
func FetchWithCookie(ctx context.Context, client *http.Client, gateway string, path string, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gateway+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Cookie", gate.CookieName+"="+token)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %q: %w", path, err)
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusSeeOther && strings.HasPrefix(resp.Header.Get("Location"), gate.LoginPath) {
		return fmt.Errorf("gateway rejected the session cookie for %q", path)
	}

	slog.Info("Cookie request passed the gate", "path", path, "status", resp.StatusCode)
	return nil
}

// FetchWithHeader requests path presenting the token in the Authorization
// header, the way a non-browser client would.
func FetchWithHeader(ctx context.Context, client *http.Client, gateway string, path string, token string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gateway+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Authorization", gate.BasicAuthPrefix+token)

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %q: %w", path, err)
	}
	defer drain(resp)

	if resp.StatusCode == http.StatusSeeOther && strings.HasPrefix(resp.Header.Get("Location"), gate.LoginPath) {
		return fmt.Errorf("gateway rejected the Authorization header for %q", path)
	}

	slog.Info("Header request passed the gate", "path", path, "status", resp.StatusCode)
	return nil
}

// FetchAnonymous requests path with no credential and confirms the gateway
// sends the client to the login form.
func FetchAnonymous(ctx context.Context, client *http.Client, gateway string, path string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, gateway+path, nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to fetch %q: %w", path, err)
	}
	defer drain(resp)

	if resp.StatusCode != http.StatusSeeOther || resp.Header.Get("Location") != gate.LoginPath {
		return fmt.Errorf("anonymous request for %q was not sent to the login form (status %d)", path, resp.StatusCode)
	}

	slog.Info("Anonymous request redirected to login", "path", path)
	return nil
}

func Run(ctx context.Context) error {
	gateway := getenv("GATEHOUSE_URL", "http://localhost:8080")
	username := getenv("GATEHOUSE_USER", "admin")
	password := getenv("GATEHOUSE_SECRET", "admin")
	path := getenv("GATEHOUSE_PATH", "/")

	// Redirects are reported, not followed, so each hop stays visible.
	client := &http.Client{
		Timeout: 10 * time.Second,
		CheckRedirect: func(req *http.Request, via []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}

	// 1. Sign in with the form and capture the session token.
	token, err := SubmitLogin(ctx, client, gateway, username, password)
	if err != nil {
		return fmt.Errorf("failed to sign in: %w", err)
	}
	slog.Info("Signed in", "user", username, "cookie", gate.CookieName)
	slog.Info("Replay with curl", "cookie", "curl -H 'Cookie: "+gate.CookieName+"="+token+"' "+gateway+path, "header", "curl -H 'Authorization: "+gate.BasicAuthPrefix+token+"' "+gateway+path)

	// 2. Replay the token as a session cookie.
	if err := FetchWithCookie(ctx, client, gateway, path, token); err != nil {
		return err
	}

	// 3. Replay the same token in the Authorization header.
	if err := FetchWithHeader(ctx, client, gateway, path, token); err != nil {
		return err
	}

	// 4. Confirm a request with no credential is turned away.
	if err := FetchAnonymous(ctx, client, gateway, path); err != nil {
		return err
	}

	return nil
}

func main() {
	if err := Run(context.Background()); err != nil {
		slog.Error("error running login check", "err", err)
		os.Exit(1)
	}
}
