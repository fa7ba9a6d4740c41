package dao

import (
	"fmt"
	"math/big"

	"github.com/bctsl/bctsl-sdk/allowance"
	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/ledger"
	"github.com/shopspring/decimal"
)

// DAO is a handle on a treasury contract. The governed token contract id is
// fetched lazily and kept for the handle's lifetime.
type DAO struct {
	client ledger.Client
	ID     string

	tokenID string
}

func NewDAO(client ledger.Client, id string) *DAO {
	return &DAO{client: client, ID: id}
}

func (d *DAO) State() (ledger.TreasuryState, error) {
	return d.client.TreasuryState(d.ID)
}

// TokenContract resolves the token governed by this treasury through its
// token sale, fetching it on first use.
func (d *DAO) TokenContract() (string, error) {
	if d.tokenID != "" {
		return d.tokenID, nil
	}

	treasury, err := d.State()
	if err != nil {
		return "", err
	}

	saleState, err := d.client.SaleState(treasury.TokenSale)
	if err != nil {
		return "", err
	}
	d.tokenID = saleState.TokenContract
	return d.tokenID, nil
}

// Balance is the treasury's base-asset holdings in smallest units, read from
// the contract's account.
func (d *DAO) Balance() (*big.Int, error) {
	return d.client.AccountBalance(ledger.ContractAccount(d.ID))
}

// Vote resolves the vote contract registered under voteID.
func (d *DAO) Vote(voteID uint64) (*Vote, error) {
	treasury, err := d.State()
	if err != nil {
		return nil, err
	}

	entry, ok := treasury.Votes[voteID]
	if !ok {
		return nil, fmt.Errorf("vote %d is not registered with treasury %s", voteID, d.ID)
	}

	return &Vote{client: d.client, ID: entry.Vote, VoteID: voteID}, nil
}

// ApplyVoteSubject applies an appliable vote's subject on chain.
func (d *DAO) ApplyVoteSubject(voteID uint64) (string, error) {
	return d.client.ApplyVoteSubject(d.ID, voteID)
}

// VoteStatus bundles the derived lifecycle label with the actions the given
// account may currently take and the tally percentages behind them.
type VoteStatus struct {
	Label                      StateLabel
	YesPercentage              decimal.Decimal
	YesStakePercentageOfSupply decimal.Decimal

	CanVote          bool
	CanRevokeVote    bool
	CanWithdraw      bool
	CanApply         bool
	HasLockedBalance bool
}

// VoteStatus fetches fresh treasury, vote, height and supply snapshots and
// derives the vote's status for account. The round trips are strictly
// sequential; the derivation itself is pure.
func (d *DAO) VoteStatus(voteID uint64, account string) (VoteStatus, error) {
	treasury, err := d.State()
	if err != nil {
		return VoteStatus{}, err
	}

	entry, ok := treasury.Votes[voteID]
	if !ok {
		return VoteStatus{}, fmt.Errorf("vote %d is not registered with treasury %s", voteID, d.ID)
	}

	vote, err := d.client.VoteState(entry.Vote)
	if err != nil {
		return VoteStatus{}, err
	}

	currentHeight, err := d.client.CurrentHeight()
	if err != nil {
		return VoteStatus{}, err
	}

	supply, err := d.client.TokenSupply(vote.Token)
	if err != nil {
		return VoteStatus{}, err
	}

	label := Label(vote, treasury, voteID, currentHeight, supply)
	return VoteStatus{
		Label:                      label,
		YesPercentage:              YesPercentage(vote),
		YesStakePercentageOfSupply: YesStakePercentageOfSupply(vote, supply),
		CanVote:                    CanVote(label, vote, account),
		CanRevokeVote:              CanRevokeVote(label, vote, account),
		CanWithdraw:                CanWithdraw(label, vote, account),
		CanApply:                   CanApply(label),
		HasLockedBalance:           HasLockedBalance(vote, account),
	}, nil
}

// Vote is a handle on one vote contract registered with a treasury.
type Vote struct {
	client ledger.Client
	ID     string
	VoteID uint64
}

func NewVote(client ledger.Client, id string, voteID uint64) *Vote {
	return &Vote{client: client, ID: id, VoteID: voteID}
}

func (v *Vote) State() (ledger.VoteState, error) {
	return v.client.VoteState(v.ID)
}

// Submit stakes tokens on the vote. Staking consumes a transfer, so the
// account's allowance toward the vote contract is adjusted first; if that
// fails the vote is never submitted.
func (v *Vote) Submit(tokenID, account string, agree bool, stake *big.Int) (string, error) {
	err := allowance.Ensure(v.client, tokenID, account, ledger.ContractAccount(v.ID), stake)
	if err != nil {
		return "", err
	}

	config.Log.Debugf("Voting %v with stake %v on %v", agree, stake, v.ID)
	return v.client.SubmitVote(v.ID, account, agree, stake)
}

// Revoke takes back the account's open vote.
func (v *Vote) Revoke(account string) (string, error) {
	return v.client.RevokeVote(v.ID, account)
}

// Withdraw releases the account's stake after the vote has closed.
func (v *Vote) Withdraw(account string) (string, error) {
	return v.client.Withdraw(v.ID, account)
}
