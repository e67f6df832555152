package domain

// OutcomeKind tags how a model-backed operation concluded.
type OutcomeKind int

const (
	// OutcomeOK means the model output decoded into the expected shape.
	OutcomeOK OutcomeKind = iota
	// OutcomeDegraded means the model answered but its output could not be
	// decoded; Raw holds the fence-stripped text.
	OutcomeDegraded
)

// String returns the label used in logs, metrics and the
// X-Upstream-Outcome response header.
func (k OutcomeKind) String() string {
	if k == OutcomeDegraded {
		return "degraded"
	}
	return "ok"
}

// Outcome is the result of one model-backed operation: either Ok(Value) or
// Degraded(Raw). Transport and configuration failures are returned as errors
// alongside, never folded into an Outcome.
type Outcome[T any] struct {
	Kind  OutcomeKind
	Value T
	Raw   string
	Cause error
}

// OK wraps a decoded value.
func OK[T any](v T) Outcome[T] {
	return Outcome[T]{Kind: OutcomeOK, Value: v}
}

// Degraded records undecodable model output and the decode failure.
func Degraded[T any](raw string, cause error) Outcome[T] {
	return Outcome[T]{Kind: OutcomeDegraded, Raw: raw, Cause: cause}
}

// IsDegraded reports whether the value could not be decoded.
func (o Outcome[T]) IsDegraded() bool { return o.Kind == OutcomeDegraded }
