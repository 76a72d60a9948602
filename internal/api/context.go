package api

// contextKey is a custom type for context keys to avoid collisions
type contextKey string

// contextKeyRequestID is the context key for the request ID.
const contextKeyRequestID contextKey = "requestID"
