package dao

import (
	"math/big"
	"testing"

	"github.com/bctsl/bctsl-sdk/ledger"
	"github.com/stretchr/testify/require"
)

const (
	createHeight = uint64(100)
	closeHeight  = uint64(200)
	voteTimeout  = uint64(480)
)

func testVote(yes, no int64) ledger.VoteState {
	return ledger.VoteState{
		CreateHeight: createHeight,
		CloseHeight:  closeHeight,
		Token:        "ct_token",
		Author:       "ak_author",
		Accounts:     map[string]ledger.VoteAccount{},
		YesStake:     big.NewInt(yes),
		NoStake:      big.NewInt(no),
	}
}

func testTreasury(applied bool) ledger.TreasuryState {
	return ledger.TreasuryState{
		Factory:     "ct_factory",
		TokenSale:   "ct_sale",
		VoteTimeout: voteTimeout,
		Votes:       map[uint64]ledger.TreasuryVote{0: {Applied: applied, Vote: "ct_vote"}},
	}
}

func TestLabelOpenWindow(t *testing.T) {
	// a vote inside its open window is Open regardless of tallies
	vote := testVote(1000, 0)
	treasury := testTreasury(false)
	supply := big.NewInt(1000)

	require.Equal(t, StateOpen, Label(vote, treasury, 0, createHeight, supply))
	require.Equal(t, StateOpen, Label(vote, treasury, 0, closeHeight-1, supply))
	require.NotEqual(t, StateOpen, Label(vote, treasury, 0, closeHeight, supply))
}

func TestLabelAppliedTakesPrecedence(t *testing.T) {
	vote := testVote(0, 0)
	treasury := testTreasury(true)
	supply := big.NewInt(1000)

	// even where height arithmetic alone would say Timeout
	require.Equal(t, StateApplied, Label(vote, treasury, 0, closeHeight+voteTimeout+1000, supply))
	require.Equal(t, StateApplied, Label(vote, treasury, 0, createHeight, supply))
}

func TestLabelCloseWindow(t *testing.T) {
	treasury := testTreasury(false)

	tests := []struct {
		name     string
		yes      int64
		no       int64
		supply   int64
		expected StateLabel
	}{
		{"both thresholds met", 60, 40, 100, StateAppliable},
		{"tally majority but low supply share", 60, 40, 200, StateNotSuccessful},
		{"tally minority", 40, 60, 100, StateNotSuccessful},
		{"exactly half is not enough", 50, 50, 100, StateNotSuccessful},
		{"no votes at all", 0, 0, 100, StateNotSuccessful},
		{"zero supply", 60, 40, 0, StateNotSuccessful},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			vote := testVote(tc.yes, tc.no)
			got := Label(vote, treasury, 0, closeHeight, big.NewInt(tc.supply))
			require.Equal(t, tc.expected, got)

			// the whole close window behaves the same
			got = Label(vote, treasury, 0, closeHeight+voteTimeout-1, big.NewInt(tc.supply))
			require.Equal(t, tc.expected, got)
		})
	}
}

func TestLabelNilSupply(t *testing.T) {
	// an unknown supply behaves like a zero one: never Appliable, never a panic
	vote := testVote(60, 40)
	treasury := testTreasury(false)

	require.Equal(t, StateNotSuccessful, Label(vote, treasury, 0, closeHeight, nil))
	require.Equal(t, StateOpen, Label(vote, treasury, 0, createHeight, nil))
	require.Equal(t, StateTimeout, Label(vote, treasury, 0, closeHeight+voteTimeout, nil))
}

func TestLabelTimeout(t *testing.T) {
	vote := testVote(1000, 0)
	treasury := testTreasury(false)
	supply := big.NewInt(1000)

	require.Equal(t, StateTimeout, Label(vote, treasury, 0, closeHeight+voteTimeout, supply))
	require.Equal(t, StateTimeout, Label(vote, treasury, 0, closeHeight+voteTimeout+100000, supply))
}

func TestPercentages(t *testing.T) {
	vote := testVote(2, 1)
	require.Equal(t, "66.66666667", YesPercentage(vote).String())

	vote = testVote(60, 40)
	require.Equal(t, "60", YesPercentage(vote).String())
	require.Equal(t, "30", YesStakePercentageOfSupply(vote, big.NewInt(200)).String())
}

func TestPercentagesZeroDenominators(t *testing.T) {
	// exactly 0, not an error, when the denominator is zero
	vote := testVote(0, 0)
	require.True(t, YesPercentage(vote).IsZero())

	vote = testVote(60, 40)
	require.True(t, YesStakePercentageOfSupply(vote, big.NewInt(0)).IsZero())
	require.True(t, YesStakePercentageOfSupply(vote, nil).IsZero())
}

func votedState(stake int64, agree, withdrawn bool) ledger.VoteState {
	vote := testVote(stake, 0)
	vote.Accounts["ak_voter"] = ledger.VoteAccount{Stake: big.NewInt(stake), Agree: agree, Withdrawn: withdrawn}
	return vote
}

func TestCanVoteAndCanRevokeAreExclusive(t *testing.T) {
	voted := votedState(10, true, false)
	fresh := testVote(0, 0)

	labels := []StateLabel{StateOpen, StateAppliable, StateNotSuccessful, StateTimeout, StateApplied}
	for _, label := range labels {
		require.False(t, CanVote(label, voted, "ak_voter") && CanRevokeVote(label, voted, "ak_voter"))
		require.False(t, CanVote(label, fresh, "ak_voter") && CanRevokeVote(label, fresh, "ak_voter"))
	}

	require.True(t, CanVote(StateOpen, fresh, "ak_voter"))
	require.False(t, CanRevokeVote(StateOpen, fresh, "ak_voter"))

	require.False(t, CanVote(StateOpen, voted, "ak_voter"))
	require.True(t, CanRevokeVote(StateOpen, voted, "ak_voter"))
}

func TestCanWithdraw(t *testing.T) {
	voted := votedState(10, true, false)
	withdrawn := votedState(10, true, true)
	fresh := testVote(0, 0)

	for _, label := range []StateLabel{StateAppliable, StateApplied, StateNotSuccessful, StateTimeout} {
		require.True(t, CanWithdraw(label, voted, "ak_voter"), "label %s", label)
		require.False(t, CanWithdraw(label, withdrawn, "ak_voter"), "label %s", label)
		require.False(t, CanWithdraw(label, fresh, "ak_voter"), "label %s", label)
	}

	require.False(t, CanWithdraw(StateOpen, voted, "ak_voter"))
}

func TestCanApply(t *testing.T) {
	require.True(t, CanApply(StateAppliable))
	for _, label := range []StateLabel{StateOpen, StateApplied, StateNotSuccessful, StateTimeout} {
		require.False(t, CanApply(label))
	}
}

func TestHasLockedBalance(t *testing.T) {
	require.True(t, HasLockedBalance(votedState(10, true, false), "ak_voter"))
	require.False(t, HasLockedBalance(votedState(10, true, true), "ak_voter"))
	require.False(t, HasLockedBalance(votedState(0, true, false), "ak_voter"))
	require.False(t, HasLockedBalance(testVote(0, 0), "ak_voter"))
}

func TestVotedBalanceAndAgreement(t *testing.T) {
	vote := votedState(10, false, false)

	balance, ok := VotedBalance(vote, "ak_voter")
	require.True(t, ok)
	require.Equal(t, "10", balance.String())

	agree, ok := VotedAgreement(vote, "ak_voter")
	require.True(t, ok)
	require.False(t, agree)

	// never voted is an explicit absent signal, not a zero value
	_, ok = VotedBalance(vote, "ak_other")
	require.False(t, ok)
	_, ok = VotedAgreement(vote, "ak_other")
	require.False(t, ok)
}
