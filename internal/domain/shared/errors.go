package shared

import "fmt"

// DomainError is the base error type for all domain errors
type DomainError struct {
	Message string
}

func (e *DomainError) Error() string {
	return e.Message
}

func NewDomainError(message string) *DomainError {
	return &DomainError{Message: message}
}

// Transfer errors
//
// Transfer failures are part of the command result contract: they are
// returned to the caller as a rejection, never raised as a panic.

type InvalidTransferError struct {
	*DomainError
	SourceID string
	DestID   string
}

func NewInvalidTransferError(sourceID, destID, reason string) *InvalidTransferError {
	return &InvalidTransferError{
		DomainError: &DomainError{Message: fmt.Sprintf("invalid transfer %s → %s: %s", sourceID, destID, reason)},
		SourceID:    sourceID,
		DestID:      destID,
	}
}

// State conflict errors
//
// A StateConflictError marks an operation attempted against a node in an
// exclusive state that cannot accept it (e.g. starting a conquest on a
// battling node). The simulation degrades these to a no-op and emits them
// through the diagnostic sink only.

type StateConflictError struct {
	*DomainError
	NodeID string
	State  string
}

func NewStateConflictError(nodeID, state, operation string) *StateConflictError {
	return &StateConflictError{
		DomainError: &DomainError{Message: fmt.Sprintf("node %s in state %s cannot accept %s", nodeID, state, operation)},
		NodeID:      nodeID,
		State:       state,
	}
}

// Configuration errors

type ConfigurationError struct {
	*DomainError
}

func NewConfigurationError(message string) *ConfigurationError {
	return &ConfigurationError{DomainError: &DomainError{Message: message}}
}

// Validation error

type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
