package restclient

import "errors"

// Sentinel errors returned by ClientBuilder. Setter validation failures latch on the
// builder and are surfaced by Build and Err; state errors are detected at build time.
var (
	// ErrBaseURINotSet is returned by Build when no base address has been configured.
	ErrBaseURINotSet = errors.New("cannot build a client before a base URI has been set")

	// ErrNilBaseURL is latched by BaseURL when given a nil URL.
	ErrNilBaseURL = errors.New("base URL must not be nil")

	// ErrInvalidBaseURI is latched by BaseURI when given an empty or unparseable URI.
	ErrInvalidBaseURI = errors.New("base URI must be a valid non-empty URI")

	// ErrNilExecutor is latched by Executor when given a nil executor.
	ErrNilExecutor = errors.New("executor must not be nil")

	// ErrNegativeTimeout is latched by ConnectTimeout and ReadTimeout when given a
	// negative duration.
	ErrNegativeTimeout = errors.New("timeout must be non-negative")

	// ErrNilComponent is latched when a nil component, factory, or resolver is passed
	// to a setter that requires one.
	ErrNilComponent = errors.New("component must not be nil")
)
