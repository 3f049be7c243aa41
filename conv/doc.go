// Package conv converts values between runtime types through an ordered pipeline of strategies.
//
// Each strategy reports one of three outcomes: unmatched (the pair is not its concern),
// matched to nil, or matched to a value. The pipeline returns the first matched outcome.
// Nested values are converted through a derived Context that carries the declared source and
// target types and, with tracing enabled, the attribute path used in error messages.
package conv
