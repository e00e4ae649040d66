package auth

import (
	"context"
)

// Context keys for authentication data
type contextKey string

// ContextKeySubject is the context key for the authenticated operator
const ContextKeySubject contextKey = "subject"

// WithSubject adds the authenticated operator to the context
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, ContextKeySubject, subject)
}

// SubjectFromContext retrieves the authenticated operator from the context
func SubjectFromContext(ctx context.Context) (string, bool) {
	sub, ok := ctx.Value(ContextKeySubject).(string)
	return sub, ok
}
