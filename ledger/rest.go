package ledger

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"net/http"
	"net/url"
	"strconv"
)

var apiEndpoints = map[string]string{
	"status_endpoint":    "/v1/status",
	"account_balance":    "/v1/accounts/%s/balance",
	"curve_buy_price":    "/v1/curves/%s/buy-price?count=%s",
	"curve_decimals":     "/v1/curves/%s/decimals",
	"sale_price":         "/v1/sales/%s/price?count=%s",
	"sale_sell_return":   "/v1/sales/%s/sell-return?count=%s",
	"sale_state":         "/v1/sales/%s/state",
	"token_meta_info":    "/v1/tokens/%s/meta-info",
	"token_supply":       "/v1/tokens/%s/total-supply",
	"allowance":          "/v1/tokens/%s/allowances?from_account=%s&for_account=%s",
	"vote_state":         "/v1/votes/%s/state",
	"treasury_state":     "/v1/treasuries/%s/state",
	"create_allowance":   "/v1/tokens/%s/allowances/create",
	"change_allowance":   "/v1/tokens/%s/allowances/change",
	"buy_endpoint":       "/v1/sales/%s/buy",
	"sell_endpoint":      "/v1/sales/%s/sell",
	"vote_endpoint":      "/v1/votes/%s/vote",
	"revoke_vote":        "/v1/votes/%s/revoke",
	"withdraw_endpoint":  "/v1/votes/%s/withdraw",
	"apply_vote_subject": "/v1/treasuries/%s/apply-vote",
}

func GetEndpoint(key string) string {
	return apiEndpoints[key]
}

// Node implements Client against the node's REST API. It holds no connection
// state; every call is one HTTP round trip.
type Node struct {
	Host string
}

func NewNode(host string) *Node {
	return &Node{Host: host}
}

var _ Client = (*Node)(nil)

type amountResponse struct {
	Amount string `json:"amount"`
}

type txResponse struct {
	TxHash string `json:"tx_hash"`
}

func checkResponseErrorCode(requestEndpoint string, resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	body, _ := io.ReadAll(resp.Body)

	var rejection struct {
		Kind   string `json:"kind"`
		Reason string `json:"reason"`
	}
	if err := json.Unmarshal(body, &rejection); err == nil && rejection.Reason != "" {
		return &RemoteRejection{Kind: rejection.Kind, Reason: rejection.Reason}
	}

	return fmt.Errorf("error getting response for endpoint %s: Status %s Body %s", requestEndpoint, resp.Status, body)
}

func (n *Node) get(requestEndpoint string, result interface{}) error {
	resp, err := http.Get(fmt.Sprintf("%s%s", n.Host, requestEndpoint)) //nolint:gosec
	if err != nil {
		return err
	}

	defer resp.Body.Close()

	err = checkResponseErrorCode(requestEndpoint, resp)
	if err != nil {
		return err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}

	return json.Unmarshal(body, result)
}

func (n *Node) post(requestEndpoint string, payload interface{}) (string, error) {
	buf, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	resp, err := http.Post(fmt.Sprintf("%s%s", n.Host, requestEndpoint), "application/json", bytes.NewReader(buf)) //nolint:gosec
	if err != nil {
		return "", err
	}

	defer resp.Body.Close()

	err = checkResponseErrorCode(requestEndpoint, resp)
	if err != nil {
		return "", err
	}

	var result txResponse
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", err
	}

	err = json.Unmarshal(body, &result)
	if err != nil {
		return "", err
	}

	return result.TxHash, nil
}

func parseAmount(s string) (*big.Int, error) {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return nil, fmt.Errorf("malformed integer amount %q in node response", s)
	}
	return v, nil
}

// CurrentHeight returns the node's current ledger height.
func (n *Node) CurrentHeight() (uint64, error) {
	var result struct {
		Height uint64 `json:"height"`
	}
	err := n.get(apiEndpoints["status_endpoint"], &result)
	if err != nil {
		return 0, err
	}
	return result.Height, nil
}

// AccountBalance queries an account's base-asset balance in smallest units.
func (n *Node) AccountBalance(account string) (*big.Int, error) {
	return n.queryAmount(fmt.Sprintf(apiEndpoints["account_balance"], url.PathEscape(account)))
}

func (n *Node) queryAmount(requestEndpoint string) (*big.Int, error) {
	var result amountResponse
	err := n.get(requestEndpoint, &result)
	if err != nil {
		return nil, err
	}
	return parseAmount(result.Amount)
}

// CurveBuyPrice queries the base-asset cost of moving the curve's supply from
// zero to tokenUnits.
func (n *Node) CurveBuyPrice(curveID string, tokenUnits *big.Int) (*big.Int, error) {
	return n.queryAmount(fmt.Sprintf(apiEndpoints["curve_buy_price"], curveID, tokenUnits.String()))
}

// CurveDecimals queries the decimal count the curve contract operates at.
func (n *Node) CurveDecimals(curveID string) (int64, error) {
	var result struct {
		Decimals int64 `json:"decimals"`
	}
	err := n.get(fmt.Sprintf(apiEndpoints["curve_decimals"], curveID), &result)
	if err != nil {
		return 0, err
	}
	return result.Decimals, nil
}

// SalePrice queries the current base-asset buy price for tokenUnits.
func (n *Node) SalePrice(saleID string, tokenUnits *big.Int) (*big.Int, error) {
	return n.queryAmount(fmt.Sprintf(apiEndpoints["sale_price"], saleID, tokenUnits.String()))
}

// SaleSellReturn queries the current base-asset sell return for tokenUnits.
func (n *Node) SaleSellReturn(saleID string, tokenUnits *big.Int) (*big.Int, error) {
	return n.queryAmount(fmt.Sprintf(apiEndpoints["sale_sell_return"], saleID, tokenUnits.String()))
}

func (n *Node) SaleState(saleID string) (SaleState, error) {
	var result struct {
		SaleType      string `json:"sale_type"`
		Version       uint64 `json:"version"`
		Owner         string `json:"owner"`
		Beneficiary   string `json:"beneficiary"`
		BondingCurve  string `json:"bonding_curve"`
		TokenContract string `json:"token_contract"`
	}
	err := n.get(fmt.Sprintf(apiEndpoints["sale_state"], saleID), &result)
	if err != nil {
		return SaleState{}, err
	}
	return SaleState{
		SaleType:      result.SaleType,
		Version:       result.Version,
		Owner:         result.Owner,
		Beneficiary:   result.Beneficiary,
		BondingCurve:  result.BondingCurve,
		TokenContract: result.TokenContract,
	}, nil
}

func (n *Node) TokenMetaInfo(tokenID string) (TokenMetaInfo, error) {
	var result struct {
		Name     string `json:"name"`
		Symbol   string `json:"symbol"`
		Decimals int64  `json:"decimals"`
	}
	err := n.get(fmt.Sprintf(apiEndpoints["token_meta_info"], tokenID), &result)
	if err != nil {
		return TokenMetaInfo{}, err
	}
	return TokenMetaInfo{Name: result.Name, Symbol: result.Symbol, Decimals: result.Decimals}, nil
}

func (n *Node) TokenSupply(tokenID string) (*big.Int, error) {
	return n.queryAmount(fmt.Sprintf(apiEndpoints["token_supply"], tokenID))
}

// Allowance returns (nil, nil) when the node has no allowance record for the
// owner/spender pair.
func (n *Node) Allowance(tokenID, owner, spender string) (*big.Int, error) {
	requestEndpoint := fmt.Sprintf(apiEndpoints["allowance"], tokenID, url.QueryEscape(owner), url.QueryEscape(spender))

	resp, err := http.Get(fmt.Sprintf("%s%s", n.Host, requestEndpoint)) //nolint:gosec
	if err != nil {
		return nil, err
	}

	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, nil
	}

	err = checkResponseErrorCode(requestEndpoint, resp)
	if err != nil {
		return nil, err
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, err
	}

	var result amountResponse
	err = json.Unmarshal(body, &result)
	if err != nil {
		return nil, err
	}

	return parseAmount(result.Amount)
}

type voteAccountResponse struct {
	Stake     string `json:"stake"`
	Agree     bool   `json:"agree"`
	Withdrawn bool   `json:"withdrawn"`
}

func (n *Node) VoteState(voteID string) (VoteState, error) {
	var result struct {
		CreateHeight uint64 `json:"create_height"`
		CloseHeight  uint64 `json:"close_height"`
		Metadata     struct {
			Subject struct {
				Type string   `json:"type"`
				Args []string `json:"args"`
			} `json:"subject"`
			Description string `json:"description"`
			Link        string `json:"link"`
		} `json:"metadata"`
		Token        string                         `json:"token"`
		Author       string                         `json:"author"`
		VoteAccounts map[string]voteAccountResponse `json:"vote_accounts"`
		VoteState    struct {
			Yes string `json:"yes"`
			No  string `json:"no"`
		} `json:"vote_state"`
	}

	err := n.get(fmt.Sprintf(apiEndpoints["vote_state"], voteID), &result)
	if err != nil {
		return VoteState{}, err
	}

	accounts := make(map[string]VoteAccount, len(result.VoteAccounts))
	for account, record := range result.VoteAccounts {
		stake, err := parseAmount(record.Stake)
		if err != nil {
			return VoteState{}, err
		}
		accounts[account] = VoteAccount{Stake: stake, Agree: record.Agree, Withdrawn: record.Withdrawn}
	}

	yes, err := parseAmount(result.VoteState.Yes)
	if err != nil {
		return VoteState{}, err
	}
	no, err := parseAmount(result.VoteState.No)
	if err != nil {
		return VoteState{}, err
	}

	return VoteState{
		CreateHeight: result.CreateHeight,
		CloseHeight:  result.CloseHeight,
		Metadata: VoteMetadata{
			Subject:     VoteSubject{Type: result.Metadata.Subject.Type, Args: result.Metadata.Subject.Args},
			Description: result.Metadata.Description,
			Link:        result.Metadata.Link,
		},
		Token:    result.Token,
		Author:   result.Author,
		Accounts: accounts,
		YesStake: yes,
		NoStake:  no,
	}, nil
}

func (n *Node) TreasuryState(treasuryID string) (TreasuryState, error) {
	var result struct {
		Factory     string `json:"factory"`
		TokenSale   string `json:"token_sale"`
		VoteTimeout uint64 `json:"vote_timeout"`
		Votes       map[string]struct {
			Applied bool   `json:"applied"`
			Vote    string `json:"vote"`
		} `json:"votes"`
	}

	err := n.get(fmt.Sprintf(apiEndpoints["treasury_state"], treasuryID), &result)
	if err != nil {
		return TreasuryState{}, err
	}

	votes := make(map[uint64]TreasuryVote, len(result.Votes))
	for id, vote := range result.Votes {
		voteID, err := strconv.ParseUint(id, 10, 64)
		if err != nil {
			return TreasuryState{}, fmt.Errorf("malformed vote id %q in node response: %w", id, err)
		}
		votes[voteID] = TreasuryVote{Applied: vote.Applied, Vote: vote.Vote}
	}

	return TreasuryState{
		Factory:     result.Factory,
		TokenSale:   result.TokenSale,
		VoteTimeout: result.VoteTimeout,
		Votes:       votes,
	}, nil
}

func (n *Node) CreateAllowance(tokenID, owner, spender string, amount *big.Int) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["create_allowance"], tokenID), map[string]string{
		"from_account": owner,
		"for_account":  spender,
		"amount":       amount.String(),
	})
}

func (n *Node) ChangeAllowance(tokenID, owner, spender string, delta *big.Int) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["change_allowance"], tokenID), map[string]string{
		"from_account": owner,
		"for_account":  spender,
		"delta":        delta.String(),
	})
}

func (n *Node) SubmitBuy(saleID, account string, tokenUnits, authorizedAmount *big.Int) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["buy_endpoint"], saleID), map[string]string{
		"account": account,
		"count":   tokenUnits.String(),
		"amount":  authorizedAmount.String(),
	})
}

func (n *Node) SubmitSell(saleID, account string, tokenUnits, minimumReturn *big.Int) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["sell_endpoint"], saleID), map[string]string{
		"account":    account,
		"count":      tokenUnits.String(),
		"min_return": minimumReturn.String(),
	})
}

func (n *Node) SubmitVote(voteID, account string, agree bool, stake *big.Int) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["vote_endpoint"], voteID), map[string]interface{}{
		"account": account,
		"agree":   agree,
		"stake":   stake.String(),
	})
}

func (n *Node) RevokeVote(voteID, account string) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["revoke_vote"], voteID), map[string]string{
		"account": account,
	})
}

func (n *Node) Withdraw(voteID, account string) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["withdraw_endpoint"], voteID), map[string]string{
		"account": account,
	})
}

func (n *Node) ApplyVoteSubject(treasuryID string, voteID uint64) (string, error) {
	return n.post(fmt.Sprintf(apiEndpoints["apply_vote_subject"], treasuryID), map[string]string{
		"vote_id": strconv.FormatUint(voteID, 10),
	})
}
