package cmd

import (
	"fmt"

	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/dao"
	"github.com/spf13/cobra"
)

var voteConfig struct {
	Treasury string
	VoteID   uint64
	Account  string
	Agree    bool
	Stake    string
}

func setupVoteSpecificFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&voteConfig.Treasury, "treasury", "", "treasury contract id")
	cmd.Flags().Uint64Var(&voteConfig.VoteID, "vote-id", 0, "vote id within the treasury")
	cmd.Flags().StringVar(&voteConfig.Account, "account", "", "acting account")
}

func init() {
	for _, cmd := range []*cobra.Command{voteStatusCmd, voteSubmitCmd, voteRevokeCmd, voteWithdrawCmd, voteApplyCmd} {
		setupVoteSpecificFlags(cmd)
		voteCmd.AddCommand(cmd)
	}
	voteSubmitCmd.Flags().BoolVar(&voteConfig.Agree, "agree", false, "vote yes instead of no")
	voteSubmitCmd.Flags().StringVar(&voteConfig.Stake, "stake", "", "stake in token base units")
	rootCmd.AddCommand(voteCmd)
}

var voteCmd = &cobra.Command{
	Use:   "vote",
	Short: "Inspects and acts on treasury votes.",
}

var voteStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Derives a vote's lifecycle state and the actions an account may take.",
	Run: func(cmd *cobra.Command, args []string) {
		client := nodeClient()
		d := dao.NewDAO(client, voteConfig.Treasury)

		status, err := d.VoteStatus(voteConfig.VoteID, voteConfig.Account)
		if err != nil {
			config.Log.Fatal("Could not derive vote status", err)
		}

		fmt.Printf("state: %s\n", status.Label)
		fmt.Printf("yes: %s%%  of supply: %s%%\n", status.YesPercentage, status.YesStakePercentageOfSupply)
		fmt.Printf("can vote: %v\n", status.CanVote)
		fmt.Printf("can revoke vote: %v\n", status.CanRevokeVote)
		fmt.Printf("can withdraw: %v\n", status.CanWithdraw)
		fmt.Printf("can apply: %v\n", status.CanApply)
		fmt.Printf("locked balance: %v\n", status.HasLockedBalance)
	},
}

func resolveVote() (*dao.Vote, *dao.DAO) {
	node := nodeClient()
	d := dao.NewDAO(node, voteConfig.Treasury)
	vote, err := d.Vote(voteConfig.VoteID)
	if err != nil {
		config.Log.Fatal("Could not resolve vote", err)
	}
	return vote, d
}

var voteSubmitCmd = &cobra.Command{
	Use:   "submit",
	Short: "Stakes tokens on a vote.",
	Run: func(cmd *cobra.Command, args []string) {
		vote, d := resolveVote()
		stake := parseUnits(voteConfig.Stake)

		tokenID, err := d.TokenContract()
		if err != nil {
			config.Log.Fatal("Could not resolve governed token", err)
		}

		txHash, err := vote.Submit(tokenID, voteConfig.Account, voteConfig.Agree, stake)
		if err != nil {
			config.Log.Fatal("Vote failed", err)
		}
		fmt.Println(txHash)
	},
}

var voteRevokeCmd = &cobra.Command{
	Use:   "revoke",
	Short: "Takes back an open vote.",
	Run: func(cmd *cobra.Command, args []string) {
		vote, _ := resolveVote()

		txHash, err := vote.Revoke(voteConfig.Account)
		if err != nil {
			config.Log.Fatal("Revoke failed", err)
		}
		fmt.Println(txHash)
	},
}

var voteWithdrawCmd = &cobra.Command{
	Use:   "withdraw",
	Short: "Releases a stake after its vote has closed.",
	Run: func(cmd *cobra.Command, args []string) {
		vote, _ := resolveVote()

		txHash, err := vote.Withdraw(voteConfig.Account)
		if err != nil {
			config.Log.Fatal("Withdraw failed", err)
		}
		fmt.Println(txHash)
	},
}

var voteApplyCmd = &cobra.Command{
	Use:   "apply",
	Short: "Applies an appliable vote's subject.",
	Run: func(cmd *cobra.Command, args []string) {
		client := nodeClient()
		d := dao.NewDAO(client, voteConfig.Treasury)

		txHash, err := d.ApplyVoteSubject(voteConfig.VoteID)
		if err != nil {
			config.Log.Fatal("Apply failed", err)
		}
		fmt.Println(txHash)
	},
}
