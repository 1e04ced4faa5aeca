package domain

import "fmt"

// EngineError is the unified error type for the engine.
// Each error has a numeric code and human-readable message.
// Rule violations are never EngineErrors; they travel inside reports.
type EngineError struct {
	Code    int
	Message string
}

// Error implements the error interface.
func (e *EngineError) Error() string {
	return fmt.Sprintf("engine error %d: %s", e.Code, e.Message)
}

// NewEngineError creates a new EngineError.
func NewEngineError(code int, msg string) *EngineError {
	return &EngineError{Code: code, Message: msg}
}

// WrapEngineError creates an EngineError that includes a cause.
func WrapEngineError(code int, msg string, cause error) *EngineError {
	return &EngineError{Code: code, Message: fmt.Sprintf("%s: %v", msg, cause)}
}

// ---- Ruleset / game errors (-41010 to -41039) ----

var (
	ErrUnknownGame    = &EngineError{Code: -41010, Message: "no ruleset registered for game"}
	ErrNoSimulator    = &EngineError{Code: -41011, Message: "no simulator registered for game"}
	ErrLevelNotValid  = &EngineError{Code: -41012, Message: "level has not passed validation"}
	ErrLevelMissing   = &EngineError{Code: -41013, Message: "level is missing"}
	ErrGridUnusable   = &EngineError{Code: -41014, Message: "grid dimensions are unusable"}
)

// ---- Generation / sanitization boundary errors (-41040 to -41069) ----

var (
	ErrGeneratorUnavailable = &EngineError{Code: -41040, Message: "generator endpoint unavailable"}
	ErrGeneratorResponse    = &EngineError{Code: -41041, Message: "generator returned an unusable response"}
	ErrAttemptsExhausted    = &EngineError{Code: -41042, Message: "generation attempt budget exhausted"}
)

// ---- Store / golden set errors (-41070 to -41099) ----

var (
	ErrStoreInit     = &EngineError{Code: -41070, Message: "failed to initialize store"}
	ErrStoreQuery    = &EngineError{Code: -41071, Message: "store query failed"}
	ErrStoreWrite    = &EngineError{Code: -41072, Message: "store write failed"}
	ErrGoldenMissing = &EngineError{Code: -41073, Message: "no golden level available for game"}
)

// ---- Config errors (-41100 to -41109) ----

var (
	ErrConfigInvalid = &EngineError{Code: -41100, Message: "invalid configuration"}
)
