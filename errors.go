package aichat

import "errors"

// Sentinel errors for the generic chat layer.
// All use prefix "aichat:" for identification. Callers should use errors.Is.
var (
	ErrNilClient = errors.New("aichat: client must not be nil")
	ErrNoUpdates = errors.New("aichat: stream produced no updates")
)
