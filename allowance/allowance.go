// Package allowance computes the minimal spending-authorization delta needed
// before a transfer-consuming action, so redundant authorization transactions
// never hit the chain.
package allowance

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/ledger"
)

type ActionKind int

const (
	NoOp ActionKind = iota
	Create
	Change
)

// Action is the single mutation (or none) required to move an allowance to a
// target amount. Amount is the full target for Create and the signed delta
// for Change.
type Action struct {
	Kind   ActionKind
	Amount *big.Int
}

var ErrInvalidTarget = errors.New("allowance target must be a non-negative integer amount")

// Plan computes the minimal action that moves the granted allowance to
// target. current is nil when no allowance record exists. Issuing a delta
// instead of revoke-and-recreate avoids losing an intervening spend against
// the old allowance.
func Plan(current, target *big.Int) Action {
	if current == nil {
		return Action{Kind: Create, Amount: new(big.Int).Set(target)}
	}

	delta := new(big.Int).Sub(target, current)
	if delta.Sign() == 0 {
		return Action{Kind: NoOp}
	}
	return Action{Kind: Change, Amount: delta}
}

// Ensure fetches the current allowance and submits the one mutation Plan
// calls for, if any. target must already be expressed in the token's base
// units; it is validated before any remote call is attempted.
func Ensure(client ledger.Client, tokenID, owner, spender string, target *big.Int) error {
	if target == nil || target.Sign() < 0 {
		return ErrInvalidTarget
	}

	current, err := client.Allowance(tokenID, owner, spender)
	if err != nil {
		return err
	}

	action := Plan(current, target)
	switch action.Kind {
	case NoOp:
		config.Log.Debugf("Allowance for %v already at %v, nothing to submit", spender, target)
		return nil
	case Create:
		_, err = client.CreateAllowance(tokenID, owner, spender, action.Amount)
		return err
	case Change:
		_, err = client.ChangeAllowance(tokenID, owner, spender, action.Amount)
		return err
	default:
		return fmt.Errorf("invariant violation: unknown allowance action %d", action.Kind)
	}
}
