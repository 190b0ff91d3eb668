package service

import "errors"

// ErrInvalidRequest indicates a malformed or incomplete request from a
// caller.
var ErrInvalidRequest = errors.New("invalid request")
