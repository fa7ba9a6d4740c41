package cmd

import (
	"fmt"
	"log"
	"math/big"
	"os"
	"strings"

	"github.com/bctsl/bctsl-sdk/config"
	"github.com/bctsl/bctsl-sdk/ledger"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

var (
	cfgFile string // config file location to load
	conf    config.SdkConfig
	rootCmd = &cobra.Command{
		Use:   "bctsl",
		Short: "A CLI for trading and governing bonding-curve token-sale communities",
		Long: `bctsl prices trades against bonding-curve token sales, manages the
		spending allowances those trades require, and derives the lifecycle state
		of treasury votes. The node is the sole source of truth; every command
		computes on a fresh snapshot of its state.`,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			bindFlags(cmd, viperConf)
			config.DoConfigureLogger(conf.Log.Path, conf.Log.Level, conf.Log.Pretty)
		},
	}
	viperConf = viper.New()
)

func GetRootCmd() *cobra.Command {
	return rootCmd
}

// Execute executes the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(getViperConfig)
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file location (default is <CWD>/config.toml)")
	config.SetupLogFlags(&conf.Log, rootCmd)
	config.SetupNodeFlags(&conf.Node, rootCmd)
	config.SetupTradeFlags(&conf.Trade, rootCmd)
}

func getViperConfig() {
	v := viper.New()

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		v.SetConfigType("toml")
	} else {
		// Check in current working dir
		pwd, err := os.Getwd()
		if err != nil {
			log.Fatalf("Could not determine current working dir. Err: %v", err)
		}
		if _, err := os.Stat(fmt.Sprintf("%v/config.toml", pwd)); err == nil {
			cfgFile = pwd
		} else {
			// file not in current working dir. Check home dir instead
			home, err := os.UserHomeDir()
			if err != nil {
				log.Fatalf("Failed to find user home dir. Err: %v", err)
			}
			cfgFile = fmt.Sprintf("%s/.bctsl", home)
		}
		v.AddConfigPath(cfgFile)
		v.SetConfigType("toml")
		v.SetConfigName("config")
	}

	var noConfig bool
	err := v.ReadInConfig()
	if err != nil {
		switch {
		case strings.Contains(err.Error(), "Config File \"config\" Not Found"):
			noConfig = true
		case strings.Contains(err.Error(), "incomplete number"):
			log.Fatalf("Failed to read config file %v. This usually means you forgot to wrap a string in quotes.", err)
		default:
			log.Fatalf("Failed to read config file. Err: %v", err)
		}
	}

	if !noConfig {
		log.Println("CFG successfully read from: ", cfgFile)
	}

	viperConf = v
}

// Set config vars from config file not already specified on command line.
func bindFlags(cmd *cobra.Command, v *viper.Viper) {
	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		configName := f.Name

		// Apply the viper config value to the flag when the flag is not set and viper has a value
		if !f.Changed && v.IsSet(configName) {
			val := v.Get(configName)
			err := cmd.Flags().Set(f.Name, fmt.Sprintf("%v", val))
			if err != nil {
				log.Fatalf("Failed to bind config file value %v. Err: %v", configName, err)
			}
		}
	})
}

// nodeClient validates the config and returns the node the command talks to.
func nodeClient() *ledger.Node {
	err := conf.Validate()
	if err != nil {
		config.Log.Fatal("Config validation failed", err)
	}
	return ledger.NewNode(conf.Node.URL)
}

func parseCount(value string) decimal.Decimal {
	count, err := decimal.NewFromString(value)
	if err != nil {
		config.Log.Fatalf("Count %q is not a decimal number", value)
	}
	return count
}

func parseUnits(value string) *big.Int {
	units, ok := new(big.Int).SetString(value, 10)
	if !ok {
		config.Log.Fatalf("Amount %q is not an integer number of base units", value)
	}
	return units
}
