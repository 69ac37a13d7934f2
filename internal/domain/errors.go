package domain

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that neither the local registry nor the remote
// directory knows the requested official. Terminal; not retryable.
var ErrNotFound = errors.New("politician not found")

// ErrUpstreamUnavailable reports a transport failure, timeout, or
// non-success response from the remote directory. Callers may retry.
var ErrUpstreamUnavailable = errors.New("remote directory unavailable")

// DuplicateIDError reports an insert conflicting with an existing id.
type DuplicateIDError struct {
	ID string
}

func (e *DuplicateIDError) Error() string {
	return fmt.Sprintf("politician id %q already exists", e.ID)
}

// MalformedUpstreamDataError reports an unusable remote payload. The
// offending field lets the caller decide between retry and abort; no
// partial record is written when this is returned.
type MalformedUpstreamDataError struct {
	Field string
}

func (e *MalformedUpstreamDataError) Error() string {
	return fmt.Sprintf("malformed upstream payload: missing or invalid %q", e.Field)
}

// UnknownPoliticianError reports an evidence attachment referencing an
// official that does not exist in the registry.
type UnknownPoliticianError struct {
	PoliticianID string
}

func (e *UnknownPoliticianError) Error() string {
	return fmt.Sprintf("unknown politician %q", e.PoliticianID)
}

// InvalidBaselineError reports audit input violating the fiscal
// baseline contract. Never silently defaulted.
type InvalidBaselineError struct {
	Field string
	Value float64
}

func (e *InvalidBaselineError) Error() string {
	return fmt.Sprintf("invalid fiscal baseline: %s = %v", e.Field, e.Value)
}

// HasDependentsError rejects deleting an official that still owns
// evidence records. Callers must remove the evidence first.
type HasDependentsError struct {
	PoliticianID  string
	EvidenceCount int
}

func (e *HasDependentsError) Error() string {
	return fmt.Sprintf("politician %q has %d dependent evidence records", e.PoliticianID, e.EvidenceCount)
}
