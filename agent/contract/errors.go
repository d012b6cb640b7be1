package contract

import "errors"

var (
	// ErrMalformedDecision means the router model's output fit neither
	// decision variant. It is surfaced, never defaulted.
	ErrMalformedDecision = errors.New("router output cannot be interpreted")

	// ErrUnknownTool means the requested tool name is not in the catalog.
	ErrUnknownTool = errors.New("unknown tool")

	// ErrInvalidArguments means required args were missing or mistyped.
	ErrInvalidArguments = errors.New("invalid tool arguments")

	// ErrTransactionSource wraps failures from the transaction source itself.
	ErrTransactionSource = errors.New("transaction source failed")

	// ErrModelInvoke wraps failures of the external reasoning call.
	ErrModelInvoke = errors.New("model invoke failed")

	// ErrEmptyAnswer means the analyst model returned no text.
	ErrEmptyAnswer = errors.New("analyst returned empty answer")

	ErrValidation = errors.New("validation failed")
)
