// Package dao derives the human-meaningful lifecycle state of governance
// votes from raw height-stamped ledger state, and wraps the treasury and vote
// contracts for the actions that state permits.
package dao

import (
	"math/big"

	"github.com/bctsl/bctsl-sdk/ledger"
	"github.com/bctsl/bctsl-sdk/util"
	"github.com/shopspring/decimal"
)

// StateLabel is the lifecycle state of a vote. Exactly five states exist;
// every (vote, treasury, height) combination maps to exactly one of them.
type StateLabel string

const (
	StateOpen          StateLabel = "Open"
	StateAppliable     StateLabel = "Appliable"
	StateNotSuccessful StateLabel = "NotSuccessful"
	StateTimeout       StateLabel = "Timeout"
	StateApplied       StateLabel = "Applied"
)

// percentageScale is the display precision of the derived percentages.
const percentageScale = 8

// aboveHalf reports whether 100 * part / total > 50, exactly. False when
// total is nil or zero, consistent with the zero-denominator percentage
// policy: a strict majority of nothing is unsatisfiable.
func aboveHalf(part, total *big.Int) bool {
	if total == nil || total.Sign() == 0 {
		return false
	}
	doubled := new(big.Int).Lsh(part, 1)
	return doubled.Cmp(total) > 0
}

// Label derives the lifecycle state of a vote. The applied flag in the
// treasury record takes precedence over all height arithmetic: an applied
// vote never reverts to any other label.
func Label(vote ledger.VoteState, treasury ledger.TreasuryState, voteID uint64, currentHeight uint64, tokenSupply *big.Int) StateLabel {
	timeoutHeight := vote.CloseHeight + treasury.VoteTimeout

	switch {
	case treasury.Votes[voteID].Applied:
		return StateApplied
	case vote.CreateHeight <= currentHeight && currentHeight < vote.CloseHeight:
		return StateOpen
	case vote.CloseHeight <= currentHeight && currentHeight < timeoutHeight:
		total := new(big.Int).Add(vote.YesStake, vote.NoStake)
		if aboveHalf(vote.YesStake, total) && aboveHalf(vote.YesStake, tokenSupply) {
			return StateAppliable
		}
		return StateNotSuccessful
	default:
		return StateTimeout
	}
}

// YesPercentage is 100 * yes / (yes + no), and exactly 0 when both tallies
// are zero. The zero fallback is a policy choice, not an error: the
// permission predicates depend on receiving a defined value.
func YesPercentage(vote ledger.VoteState) decimal.Decimal {
	total := new(big.Int).Add(vote.YesStake, vote.NoStake)
	if total.Sign() == 0 {
		return decimal.Zero
	}
	return util.ToNumeric(vote.YesStake).Mul(decimal.NewFromInt(100)).DivRound(util.ToNumeric(total), percentageScale)
}

// YesStakePercentageOfSupply is 100 * yes / supply, and exactly 0 when the
// supply is zero.
func YesStakePercentageOfSupply(vote ledger.VoteState, tokenSupply *big.Int) decimal.Decimal {
	if tokenSupply == nil || tokenSupply.Sign() == 0 {
		return decimal.Zero
	}
	return util.ToNumeric(vote.YesStake).Mul(decimal.NewFromInt(100)).DivRound(util.ToNumeric(tokenSupply), percentageScale)
}

// AccountVoted reports whether the account has a stake record on the vote.
func AccountVoted(vote ledger.VoteState, account string) bool {
	_, ok := vote.Accounts[account]
	return ok
}

// CanVote: the vote is open and the account has not voted yet.
func CanVote(label StateLabel, vote ledger.VoteState, account string) bool {
	return label == StateOpen && !AccountVoted(vote, account)
}

// CanRevokeVote: the vote is open and the account has an existing stake
// record. Mutually exclusive with CanVote by construction.
func CanRevokeVote(label StateLabel, vote ledger.VoteState, account string) bool {
	return label == StateOpen && AccountVoted(vote, account)
}

// CanWithdraw: the vote has left the open state and the account's stake has
// not been withdrawn yet.
func CanWithdraw(label StateLabel, vote ledger.VoteState, account string) bool {
	record, ok := vote.Accounts[account]
	if !ok {
		return false
	}

	switch label {
	case StateAppliable, StateApplied, StateNotSuccessful, StateTimeout:
		return !record.Withdrawn
	default:
		return false
	}
}

// CanApply: applying is permissionless at this layer, any further restriction
// is enforced on chain.
func CanApply(label StateLabel) bool {
	return label == StateAppliable
}

// HasLockedBalance reports whether the account still has nonzero stake locked
// in the vote.
func HasLockedBalance(vote ledger.VoteState, account string) bool {
	record, ok := vote.Accounts[account]
	return ok && !record.Withdrawn && record.Stake.Sign() != 0
}

// VotedBalance returns the account's staked amount. The second return is
// false when the account never voted, which callers must distinguish from a
// recorded stake.
func VotedBalance(vote ledger.VoteState, account string) (*big.Int, bool) {
	record, ok := vote.Accounts[account]
	if !ok {
		return nil, false
	}
	return record.Stake, true
}

// VotedAgreement returns the account's recorded agreement. The second return
// is false when the account never voted.
func VotedAgreement(vote ledger.VoteState, account string) (bool, bool) {
	record, ok := vote.Accounts[account]
	if !ok {
		return false, false
	}
	return record.Agree, true
}
