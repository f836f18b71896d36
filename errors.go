package triekv

import "errors"

// Sentinel errors, grouped by the subsystem that raises them. Call sites
// wrap these with fmt.Errorf("%w: ...") to attach operation-specific
// context; callers should compare with errors.Is against these values, not
// against wrapped message text.
var (
	// ErrConfigurationInvalid is returned by Config.Validate and
	// Config.ValidateForMap when a configuration violates one of the
	// structural constraints in spec.md section 6.
	ErrConfigurationInvalid = errors.New("triekv: configuration invalid")

	// ErrPreconditionViolated is returned by checked entry points when a
	// caller-supplied argument (key or value length, an index out of
	// range) violates the engine's operating preconditions. Unchecked
	// entry points panic with this error instead of returning it.
	ErrPreconditionViolated = errors.New("triekv: precondition violated")

	// ErrLimitExceeded is returned when an operation would overflow a
	// pool's addressable index range for the configured pointer_size.
	ErrLimitExceeded = errors.New("triekv: limit exceeded")
)
