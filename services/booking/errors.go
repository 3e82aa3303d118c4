package booking

import (
	"fmt"

	"roomify/models"
)

// FormatError reports malformed time/date/phone/email input. Always
// recoverable by re-prompting or returning a field-specific 400.
type FormatError struct {
	Field   string
	Message string
}

func (e *FormatError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewFormatError(field, msg string) error {
	return &FormatError{Field: field, Message: msg}
}

// NotFoundError reports an unknown room, booking number, or blackout id.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s not found: %s", e.Resource, e.ID)
}

func NewNotFoundError(resource, id string) error {
	return &NotFoundError{Resource: resource, ID: id}
}

// ConflictError reports that a requested segment overlaps an existing booking
// or blackout window. Segment is the caller's segment verbatim, so the
// conflict can be surfaced precisely.
type ConflictError struct {
	Segment models.Segment
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("time %s-%s is already booked", e.Segment.Start, e.Segment.End)
}

// UnauthorizedError reports an admin-only action without valid credentials.
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	return e.Message
}
