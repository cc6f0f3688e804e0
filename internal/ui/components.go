package ui

import (
	"context"
	"fmt"
	"html"
	"io"

	"github.com/a-h/templ"
)

// Bucket represents a single S3 bucket for display.
type Bucket struct {
	Name         string
	CreationDate string
}

// Object represents a single object within a bucket for display.
type Object struct {
	Key          string
	Size         int64
	LastModified string
}

const loginPageHead = `<!DOCTYPE html><html lang="en"><head><meta charset="utf-8">` +
	`<meta name="viewport" content="width=device-width, initial-scale=1">` +
	`<title>Gatehouse sign in</title>` +
	`<style>` +
	`body{margin:0;font-family:system-ui,sans-serif;background:#f3f4f6;display:flex;min-height:100vh;align-items:center;justify-content:center}` +
	`main{background:#fff;border:1px solid #d1d5db;border-radius:8px;padding:2rem;width:20rem}` +
	`h1{margin:0 0 1rem;font-size:1.25rem}` +
	`label{display:block;margin:.75rem 0 .25rem;font-size:.875rem}` +
	`input{width:100%;box-sizing:border-box;padding:.5rem;border:1px solid #d1d5db;border-radius:4px}` +
	`button{margin-top:1rem;width:100%;padding:.5rem;border:0;border-radius:4px;background:#1f2937;color:#fff;cursor:pointer}` +
	`.error{background:#fef2f2;border:1px solid #fca5a5;color:#991b1b;border-radius:4px;padding:.5rem .75rem;font-size:.875rem}` +
	`</style></head><body><main><h1>Gatehouse</h1>`

const loginPageError = `<div class="error">Invalid username or password.</div>`

const loginPageTail = `<form method="post" action="/login">` +
	`<label for="username">Username</label>` +
	`<input type="text" id="username" name="username" autofocus autocomplete="username">` +
	`<label for="password">Password</label>` +
	`<input type="password" id="password" name="password" autocomplete="current-password">` +
	`<button type="submit">Sign in</button>` +
	`</form></main></body></html>`

// LoginPage renders the sign-in form, with the rejection banner when
// showError is set. The markup is fixed: nothing request-derived is
// interpolated into it.
func LoginPage(showError bool) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, loginPageHead)
		if err != nil {
			return err
		}

		if showError {
			_, err = io.WriteString(w, loginPageError)
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, loginPageTail)
		return err
	})
}

// Layout renders a full HTML page with a title, the signed-in user in the
// top bar, and a body component.
func Layout(title string, user string, body templ.Component) templ.Component {
	return templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<!DOCTYPE html><html lang=\"en\">")
		if err != nil {
			return err
		}

		// Head
		_, err = io.WriteString(w, "<head><meta charset=\"utf-8\">")
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "<meta name=\"viewport\" content=\"width=device-width, initial-scale=1\">")
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "<title>")
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, html.EscapeString(title))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "</title>")
		if err != nil {
			return err
		}
		// Minimal modern CSS framework (Pico.css) via CDN.
		_, err = io.WriteString(w, "<link rel=\"stylesheet\" href=\"https://unpkg.com/@picocss/pico@2/css/pico.min.css\">")
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "</head>")
		if err != nil {
			return err
		}

		_, err = io.WriteString(w, "<body><main class=\"container\">")
		if err != nil {
			return err
		}

		// Top bar with the identity the gate attached.
		_, err = io.WriteString(w, "<nav><ul><li><strong>Gatehouse Browser</strong></li></ul><ul><li>")
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "signed in as "+html.EscapeString(user))
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "</li></ul></nav>")
		if err != nil {
			return err
		}

		if err := body.Render(ctx, w); err != nil {
			return err
		}

		_, err = io.WriteString(w, "</main></body></html>")
		return err
	})
}

// BucketsPage renders the list of buckets.
func BucketsPage(user string, buckets []Bucket) templ.Component {
	return Layout("Gatehouse Browser", user, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<section><header><h1>Buckets</h1>")
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "<p>Object storage reachable through the authentication gateway.</p></header>")
		if err != nil {
			return err
		}

		if len(buckets) == 0 {
			_, err = io.WriteString(w, "<p>No buckets found.</p></section>")
			return err
		}

		_, err = io.WriteString(w, "<table><thead><tr><th>Name</th><th>Created</th></tr></thead><tbody>")
		if err != nil {
			return err
		}

		for _, b := range buckets {
			row := fmt.Sprintf("<tr><td><a href=\"/bucket/%s\">%s</a></td><td>%s</td></tr>", html.EscapeString(b.Name), html.EscapeString(b.Name), html.EscapeString(b.CreationDate))
			_, err = io.WriteString(w, row)
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, "</tbody></table></section>")
		return err
	}))
}

// ObjectsPage renders the list of objects for a single bucket.
func ObjectsPage(user string, bucket string, objects []Object) templ.Component {
	return Layout("Gatehouse Browser: "+bucket, user, templ.ComponentFunc(func(ctx context.Context, w io.Writer) error {
		_, err := io.WriteString(w, "<section><header>")
		if err != nil {
			return err
		}
		title := fmt.Sprintf("<h1>Bucket: %s</h1>", html.EscapeString(bucket))
		_, err = io.WriteString(w, title)
		if err != nil {
			return err
		}
		_, err = io.WriteString(w, "<p><a href=\"/\">&larr; Back to buckets</a></p></header>")
		if err != nil {
			return err
		}

		if len(objects) == 0 {
			_, err = io.WriteString(w, "<p>No objects in this bucket.</p></section>")
			return err
		}

		_, err = io.WriteString(w, "<table><thead><tr><th>Key</th><th>Size (bytes)</th><th>Last Modified</th></tr></thead><tbody>")
		if err != nil {
			return err
		}

		for _, o := range objects {
			row := fmt.Sprintf("<tr><td>%s</td><td>%d</td><td>%s</td></tr>", html.EscapeString(o.Key), o.Size, html.EscapeString(o.LastModified))
			_, err = io.WriteString(w, row)
			if err != nil {
				return err
			}
		}

		_, err = io.WriteString(w, "</tbody></table></section>")
		return err
	}))
}
