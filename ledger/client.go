package ledger

import (
	"math/big"
	"strings"
)

// ContractAccount is the account address a contract is reachable at for plain
// transfers and allowances.
func ContractAccount(contractID string) string {
	return strings.Replace(contractID, "ct_", "ak_", 1)
}

// QueryClient is the read-only node surface this SDK computes on. All calls
// are idempotent; transport failures are returned unchanged and never retried
// here.
type QueryClient interface {
	AccountBalance(account string) (*big.Int, error)
	CurrentHeight() (uint64, error)
	CurveBuyPrice(curveID string, tokenUnits *big.Int) (*big.Int, error)
	CurveDecimals(curveID string) (int64, error)
	SalePrice(saleID string, tokenUnits *big.Int) (*big.Int, error)
	SaleSellReturn(saleID string, tokenUnits *big.Int) (*big.Int, error)
	SaleState(saleID string) (SaleState, error)
	TokenMetaInfo(tokenID string) (TokenMetaInfo, error)
	TokenSupply(tokenID string) (*big.Int, error)
	// Allowance returns (nil, nil) when no allowance record exists, which is
	// distinct from a recorded zero.
	Allowance(tokenID, owner, spender string) (*big.Int, error)
	VoteState(voteID string) (VoteState, error)
	TreasuryState(treasuryID string) (TreasuryState, error)
}

// TxClient submits mutations. Each call returns the transaction hash the node
// assigned, or a *RemoteRejection carrying the node's reason.
type TxClient interface {
	CreateAllowance(tokenID, owner, spender string, amount *big.Int) (string, error)
	ChangeAllowance(tokenID, owner, spender string, delta *big.Int) (string, error)
	SubmitBuy(saleID, account string, tokenUnits, authorizedAmount *big.Int) (string, error)
	SubmitSell(saleID, account string, tokenUnits, minimumReturn *big.Int) (string, error)
	SubmitVote(voteID, account string, agree bool, stake *big.Int) (string, error)
	RevokeVote(voteID, account string) (string, error)
	Withdraw(voteID, account string) (string, error)
	ApplyVoteSubject(treasuryID string, voteID uint64) (string, error)
}

// Client is the full node surface.
type Client interface {
	QueryClient
	TxClient
}
