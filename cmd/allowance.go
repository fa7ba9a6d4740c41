package cmd

import (
	"github.com/bctsl/bctsl-sdk/allowance"
	"github.com/bctsl/bctsl-sdk/config"
	"github.com/spf13/cobra"
)

var allowanceConfig struct {
	Token   string
	Owner   string
	Spender string
	Target  string
}

func init() {
	allowanceCmd.Flags().StringVar(&allowanceConfig.Token, "token", "", "token contract id")
	allowanceCmd.Flags().StringVar(&allowanceConfig.Owner, "owner", "", "granting account")
	allowanceCmd.Flags().StringVar(&allowanceConfig.Spender, "spender", "", "account allowed to spend")
	allowanceCmd.Flags().StringVar(&allowanceConfig.Target, "target", "", "target allowance in token base units")
	rootCmd.AddCommand(allowanceCmd)
}

var allowanceCmd = &cobra.Command{
	Use:   "allowance",
	Short: "Moves a spending allowance to a target amount.",
	Long: `Fetches the current allowance and submits the minimal mutation that
	moves it to the target: a create when no record exists, a signed delta when
	one does, nothing when it already matches.`,
	Run: func(cmd *cobra.Command, args []string) {
		client := nodeClient()
		target := parseUnits(allowanceConfig.Target)

		err := allowance.Ensure(client, allowanceConfig.Token, allowanceConfig.Owner, allowanceConfig.Spender, target)
		if err != nil {
			config.Log.Fatal("Could not ensure allowance", err)
		}

		config.Log.Infof("Allowance for %v now at %v", allowanceConfig.Spender, target)
	},
}
