package domain

import "errors"

// Locally rejected submissions. Neither is surfaced to the user as an error;
// callers treat both as no-ops.
var (
	// ErrEmptySubmission rejects an empty or whitespace-only prompt.
	ErrEmptySubmission = errors.New("empty submission")

	// ErrExchangeInFlight rejects a submission while another exchange is
	// still streaming. The session accepts exactly one in-flight exchange.
	ErrExchangeInFlight = errors.New("exchange already in flight")
)

// ErrStreamInterrupted marks a transport closure before the backend sent its
// end signal. It reaches the user as an errored assistant message.
var ErrStreamInterrupted = errors.New("stream interrupted before completion")
