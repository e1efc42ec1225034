package shared

import (
	"errors"
	"fmt"
	"strings"
)

// Kind is a stable, machine-readable error category surfaced to the
// request layer. Kinds never change once clients depend on them.
type Kind string

const (
	// KindDuplicateIdentity indicates a signup conflict on a unique field.
	KindDuplicateIdentity Kind = "duplicate_identity"
	// KindIdentityNotFound indicates no principal matched the lookup.
	KindIdentityNotFound Kind = "identity_not_found"
	// KindInvalidCredentials indicates a failed secret check.
	KindInvalidCredentials Kind = "invalid_credentials"
	// KindTokenMalformed indicates a structurally broken token.
	KindTokenMalformed Kind = "token_malformed"
	// KindTokenBadSignature indicates a token signed with the wrong key
	// or tampered with after signing.
	KindTokenBadSignature Kind = "token_bad_signature"
	// KindTokenExpired indicates an otherwise valid token past its expiry.
	KindTokenExpired Kind = "token_expired"
	// KindUnauthenticated indicates a protected operation reached without
	// valid claims.
	KindUnauthenticated Kind = "unauthenticated"
	// KindInsufficientRole indicates none of the required roles were held.
	KindInsufficientRole Kind = "insufficient_role"
	// KindInsufficientPermission indicates required permissions were missing.
	KindInsufficientPermission Kind = "insufficient_permission"
	// KindConflict indicates a uniqueness violation on a non-identity
	// resource such as a role or permission name.
	KindConflict Kind = "conflict"
	// KindNotFound indicates a missing resource.
	KindNotFound Kind = "not_found"
	// KindConfiguration indicates a fatal misconfiguration, such as a
	// malformed stored credential digest. Never recoverable per request.
	KindConfiguration Kind = "configuration"
)

// Error is a structured failure with a stable kind and a human-readable
// message. Callers discriminate on Kind, never on message text.
type Error struct {
	Kind    Kind
	Message string
	// Field names the conflicting attribute for duplicate-identity errors.
	Field string
	// Missing lists the absent permissions for insufficient-permission
	// denials.
	Missing []string
}

func (e *Error) Error() string { return e.Message }

// Is matches any *Error with the same Kind, so sentinel comparisons via
// errors.Is work across dynamically constructed instances.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf extracts the Kind from an error chain, or "" when the error is
// not a structured one.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

var (
	// ErrIdentityNotFound indicates no principal matched an email,
	// username, or id lookup.
	ErrIdentityNotFound = &Error{Kind: KindIdentityNotFound, Message: "identity not found"}
	// ErrInvalidCredentials indicates login failure.
	ErrInvalidCredentials = &Error{Kind: KindInvalidCredentials, Message: "invalid credentials"}
	// ErrTokenMalformed indicates a structurally broken token.
	ErrTokenMalformed = &Error{Kind: KindTokenMalformed, Message: "token malformed"}
	// ErrTokenBadSignature indicates a bad or forged token signature.
	ErrTokenBadSignature = &Error{Kind: KindTokenBadSignature, Message: "token signature invalid"}
	// ErrTokenExpired indicates an expired session token.
	ErrTokenExpired = &Error{Kind: KindTokenExpired, Message: "session expired"}
	// ErrUnauthenticated indicates no valid claims on a protected operation.
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated, Message: "authentication required"}
	// ErrNotFound indicates resource not found.
	ErrNotFound = &Error{Kind: KindNotFound, Message: "not found"}
)

// DuplicateIdentity builds a signup-conflict error naming the field that
// collided.
func DuplicateIdentity(field string) *Error {
	return &Error{
		Kind:    KindDuplicateIdentity,
		Message: fmt.Sprintf("%s already registered", field),
		Field:   field,
	}
}

// Conflict builds a uniqueness-violation error for non-identity resources.
func Conflict(resource string) *Error {
	return &Error{Kind: KindConflict, Message: fmt.Sprintf("%s already exists", resource)}
}

// InsufficientRole builds a role-gate denial.
func InsufficientRole() *Error {
	return &Error{Kind: KindInsufficientRole, Message: "required role not held"}
}

// InsufficientPermission builds a permission-gate denial naming the
// permissions the caller lacks.
func InsufficientPermission(missing []string) *Error {
	return &Error{
		Kind:    KindInsufficientPermission,
		Message: fmt.Sprintf("missing permissions: %s", strings.Join(missing, ", ")),
		Missing: missing,
	}
}

// Configuration builds a fatal misconfiguration error.
func Configuration(msg string) *Error {
	return &Error{Kind: KindConfiguration, Message: msg}
}
