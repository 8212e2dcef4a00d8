package errs

// Error kinds surfaced to callers. Usecase and domain errors are marked with
// exactly one of these so the transport layer can pick a status code.
var (
	ErrNotFound       = New("not found")
	ErrInvalidRequest = New("invalid request")
	ErrAccessDenied   = New("access denied")
)

func NotFound(msg string) error {
	return Mark(New(msg), ErrNotFound)
}

func InvalidRequest(msg string) error {
	return Mark(New(msg), ErrInvalidRequest)
}

func AccessDenied(msg string) error {
	return Mark(New(msg), ErrAccessDenied)
}
