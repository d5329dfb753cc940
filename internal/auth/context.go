package auth

import "context"

type ctxKey string

const subjectKey ctxKey = "auth_subject"

// ContextWithSubject stores the verified subject id in the context.
func ContextWithSubject(ctx context.Context, subject int) context.Context {
	return context.WithValue(ctx, subjectKey, subject)
}

// SubjectFromContext extracts the authenticated subject id from context.
func SubjectFromContext(ctx context.Context) (int, bool) {
	v, ok := ctx.Value(subjectKey).(int)
	return v, ok
}
