package log

import "context"

type contextKey int

const (
	requestIDKey contextKey = iota
	viewIDKey
	fieldsKey
)

// WithRequestID adds a request ID to the context.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey, id)
}

// RequestIDFromContext extracts the request ID from context.
// Returns empty string if not found or context is nil.
func RequestIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, requestIDKey)
}

// WithViewID adds the id of the profile view being served to the context.
func WithViewID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, viewIDKey, id)
}

// ViewIDFromContext extracts the view ID from context.
func ViewIDFromContext(ctx context.Context) string {
	return stringFromContext(ctx, viewIDKey)
}

func stringFromContext(ctx context.Context, key contextKey) string {
	if ctx == nil {
		return ""
	}
	s, _ := ctx.Value(key).(string)
	return s
}

// WithFields adds structured fields to the context.
// Fields are merged with any existing fields.
func WithFields(ctx context.Context, keysAndValues ...any) context.Context {
	existing := FieldsFromContext(ctx)
	fields := make(map[string]any, len(existing)+len(keysAndValues)/2)
	for k, v := range existing {
		fields[k] = v
	}
	addPairs(fields, keysAndValues)

	return context.WithValue(ctx, fieldsKey, fields)
}

// FieldsFromContext extracts structured fields from context.
// Returns nil if no fields are set.
func FieldsFromContext(ctx context.Context) map[string]any {
	if ctx == nil {
		return nil
	}
	fields, _ := ctx.Value(fieldsKey).(map[string]any)
	return fields
}

// addPairs copies alternating key/value arguments into fields.
// Non-string keys and a trailing key without value are skipped.
func addPairs(fields map[string]any, keysAndValues []any) {
	for i := 0; i+1 < len(keysAndValues); i += 2 {
		if key, ok := keysAndValues[i].(string); ok {
			fields[key] = keysAndValues[i+1]
		}
	}
}
