package service

// ValidationError signals a missing or malformed request field. Handlers
// translate it into an HTTP 400 with the message as the error body.
type ValidationError string

func (e ValidationError) Error() string { return string(e) }
