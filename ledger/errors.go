package ledger

import "fmt"

// Rejection kinds the node reports when a trade bound no longer holds at
// execution time.
const (
	RejectionInsufficientAmount = "InsufficientAmount"
	RejectionBelowMinimumReturn = "BelowMinimumReturn"
)

// RemoteRejection is the ledger refusing a call. The reason is surfaced
// verbatim; this layer never interprets it beyond the kind the node reported,
// and never retries.
type RemoteRejection struct {
	Kind   string
	Reason string
}

func (e *RemoteRejection) Error() string {
	if e.Kind != "" {
		return fmt.Sprintf("ledger rejected call (%s): %s", e.Kind, e.Reason)
	}
	return fmt.Sprintf("ledger rejected call: %s", e.Reason)
}
