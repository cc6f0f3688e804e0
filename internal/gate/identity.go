package gate

import "context"

type identityKey struct{}

// WithIdentity returns a context carrying the authenticated username.
func WithIdentity(ctx context.Context, username string) context.Context {
	return context.WithValue(ctx, identityKey{}, username)
}

// Identity reports the username the gate attached after verifying the
// request's credential. It is absent on contexts that never passed through
// the gate, such as login form requests.
func Identity(ctx context.Context) (string, bool) {
	username, ok := ctx.Value(identityKey{}).(string)
	return username, ok
}
