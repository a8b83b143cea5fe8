package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/Mohsinsiddi/tmbcli/internal/config"
	"github.com/Mohsinsiddi/tmbcli/internal/session"
	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// Version is the current release. Overridable via build ldflags:
//
//	go build -ldflags "-X github.com/Mohsinsiddi/tmbcli/cmd.Version=1.2.3" .
var Version = "0.1.0"

var (
	cfgDir    string
	cfg       *config.Config
	logger    = zap.NewNop()
	logLevel  *zap.AtomicLevel
	verbose   bool
	assumeYes bool
)

// rootCmd is the top-level command.
var rootCmd = &cobra.Command{
	Use:   "tmb",
	Short: "Terminal front end for the TMB faucet token on Sepolia",
	Long: `tmb drives the TMB faucet token contract on Sepolia from the terminal.

  Claim from the faucet, transfer, approve and check allowances, and, as
  the contract owner, pause or unpause the token.

Every command connects a wallet first. The wallet is either a local
signing wallet kept in the OS keychain ("provider": "keystore", default)
or an external wallet reachable over JSON-RPC ("provider": "remote",
e.g. Frame at ws://127.0.0.1:1248). Switch with: tmb config set provider remote`,
	Version:       Version,
	SilenceUsage:  true,
	SilenceErrors: true,
	Run: func(cmd *cobra.Command, _ []string) {
		fmt.Println(ui.Banner())
		_ = cmd.Help()
	},
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		// Load config (skip for commands that don't need it).
		if cmd.Name() == "help" || cmd.Name() == "completion" {
			return nil
		}
		var err error
		cfg, err = config.Load(cfgDir)
		if err != nil {
			return fmt.Errorf("loading config: %w", err)
		}
		l, lvl, err := config.NewLogger(verbose, cfg)
		if err != nil {
			return err
		}
		logger, logLevel = l, lvl
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = logger.Sync()
	},
}

// Execute runs the root command.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, ui.Err(session.Message(err)))
		stop()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgDir, "config", "", "config directory (default: $TMB_CONFIG_DIR or ~/.tmbcli)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging on stderr")
	rootCmd.PersistentFlags().BoolVarP(&assumeYes, "yes", "y", false, "skip confirmation prompts")

	// Register all sub-commands.
	rootCmd.AddCommand(
		connectCmd,
		dashboardCmd,
		accountsCmd,
		balanceCmd,
		infoCmd,
		faucetCmd,
		transferCmd,
		transferFromCmd,
		approveCmd,
		allowanceCmd,
		ownerCmd,
		walletCmd,
		rpcCmd,
		configCmd,
	)
}
