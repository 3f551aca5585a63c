package domain

type CtxKey string

const (
	// KeyCaller holds the *Account decoded from the bearer token, if any.
	KeyCaller    CtxKey = "Caller"
	KeyRequestID CtxKey = "RequestID"
)
