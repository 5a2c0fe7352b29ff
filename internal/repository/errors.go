// Package repository persists reconciliation runs.  Sentinel errors let
// handlers map storage outcomes to HTTP codes.
package repository

import "errors"

// ErrRunNotFound is returned when no run has the requested id.  Handlers
// translate it into an HTTP 404 response.
var ErrRunNotFound = errors.New("reconciliation run not found")
