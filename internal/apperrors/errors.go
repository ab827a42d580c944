package apperrors

import "errors"

// Validation errors represent missing local preconditions.
// These errors indicate that an operation cannot start because required
// user state has not been set up yet.
var (
	// ErrEmptyPortfolio indicates that an analysis was requested before any
	// stocks were added to the watch-list.
	ErrEmptyPortfolio = errors.New("please add stocks to your portfolio first")

	// ErrEmailNotSet indicates that an analysis was requested before a
	// delivery email address was configured.
	ErrEmailNotSet = errors.New("please set an email address for delivery")

	// ErrEmptySymbol indicates that a stock symbol is empty after normalization.
	ErrEmptySymbol = errors.New("symbol cannot be empty")

	// ErrInvalidSymbol indicates that a stock symbol contains characters
	// outside the accepted ticker alphabet.
	ErrInvalidSymbol = errors.New("invalid symbol format")
)

// Remote boundary errors represent failures at or around the scheduling and
// agent service boundaries.
var (
	// ErrScheduleNotLoaded indicates that a schedule operation was requested
	// before the schedule record was fetched from the remote service.
	ErrScheduleNotLoaded = errors.New("schedule has not been loaded")

	// ErrOperationInFlight indicates that the same action is already running.
	// Concurrent duplicates are dropped rather than raced.
	ErrOperationInFlight = errors.New("operation already in progress")
)

// Format errors represent malformed schedule expressions.
var (
	// ErrInvalidCronExpression indicates that a cron expression does not have
	// exactly five whitespace-separated fields.
	ErrInvalidCronExpression = errors.New("invalid cron expression")
)

// Store errors represent missing or unusable locally persisted values.
var (
	// ErrPreferenceNotFound indicates that a preference slot has never been written.
	ErrPreferenceNotFound = errors.New("preference not found")

	// ErrCredentialNotFound indicates that no service credential has been stored.
	ErrCredentialNotFound = errors.New("service credential not found")

	// ErrFernetKeyMissing indicates that credential encryption was requested
	// without a configured fernet key.
	ErrFernetKeyMissing = errors.New("fernet key is not configured")

	// ErrCredentialDecrypt indicates that the stored credential could not be
	// decrypted with the configured key.
	ErrCredentialDecrypt = errors.New("failed to decrypt service credential")
)
