package ledger

import "math/big"

// SaleState is the read projection of a token sale contract's state.
type SaleState struct {
	SaleType      string
	Version       uint64
	Owner         string
	Beneficiary   string
	BondingCurve  string
	TokenContract string
}

// TokenMetaInfo mirrors a fungible token's meta info. Decimals cannot change
// after deployment.
type TokenMetaInfo struct {
	Name     string
	Symbol   string
	Decimals int64
}

// VoteAccount is one account's stake record on a vote.
type VoteAccount struct {
	Stake     *big.Int
	Agree     bool
	Withdrawn bool
}

// VoteSubject is the structured subject a vote decides on.
type VoteSubject struct {
	Type string
	Args []string
}

// VoteMetadata carries the subject plus free-text description and link.
type VoteMetadata struct {
	Subject     VoteSubject
	Description string
	Link        string
}

// VoteState is the read projection of a vote contract's state. YesStake and
// NoStake are the two tally entries keyed by agreement.
type VoteState struct {
	CreateHeight uint64
	CloseHeight  uint64
	Metadata     VoteMetadata
	Token        string
	Author       string
	Accounts     map[string]VoteAccount
	YesStake     *big.Int
	NoStake      *big.Int
}

// TreasuryVote records whether a vote registered with the treasury has been
// applied, and the vote contract it lives at.
type TreasuryVote struct {
	Applied bool
	Vote    string
}

// TreasuryState is the read projection of a treasury (DAO) contract's state.
// VoteTimeout is a height delta, constant per deployment.
type TreasuryState struct {
	Factory     string
	TokenSale   string
	VoteTimeout uint64
	Votes       map[uint64]TreasuryVote
}
