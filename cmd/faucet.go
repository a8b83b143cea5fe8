package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/Mohsinsiddi/tmbcli/internal/contract"
	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/spf13/cobra"
)

var errFaucetClaimed = errors.New("you have already claimed from the faucet")

var faucetEthOpen bool

var faucetCmd = &cobra.Command{
	Use:   "faucet",
	Short: "Claim " + contract.FaucetAmount + " TMB from the token faucet",
	Long: `Claim the one-time faucet allowance of ` + contract.FaucetAmount + ` TMB for the connected account.

Gas is paid in Sepolia ETH. Use "tmb faucet eth" to find a faucet for it.

Examples:
  tmb faucet            # claim TMB
  tmb faucet eth --open # open the Sepolia ETH faucet in the browser`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if err := a.checkFaucet(cmd.Context()); err != nil {
			return err
		}
		tok := a.session.Token()
		ok, err := a.send(cmd, "Claim Faucet", [][2]string{
			{"Account", tok.From().Hex()},
			{"Amount", contract.FaucetAmount + " " + a.symbol},
		}, tok.ClaimFaucet, faucetDiagnose(tok))
		if err != nil || !ok {
			return err
		}
		fmt.Println(ui.Success(faucetMessage))
		fmt.Println(ui.KeyValueBlock("Session", a.sessionPairs()))
		return nil
	},
}

var faucetEthCmd = &cobra.Command{
	Use:   "eth",
	Short: "Show the Sepolia ETH faucet for gas",
	RunE: func(_ *cobra.Command, _ []string) error {
		n, err := chain.NewRegistry().GetByChainID(chain.SepoliaChainID)
		if err != nil {
			return err
		}
		fmt.Printf("%s  %s\n", ui.ChainName(n.DisplayName), ui.Val(n.FaucetURL))
		if !faucetEthOpen {
			fmt.Println(ui.Hint("Run with --open to launch it in your browser."))
			return nil
		}
		if err := ui.OpenURL(n.FaucetURL); err != nil {
			return fmt.Errorf("opening browser: %w", err)
		}
		fmt.Println(ui.Success("Opened in browser"))
		return nil
	},
}

const faucetMessage = "Faucet claimed successfully! " + contract.FaucetAmount + " TMB added."

// checkFaucet refuses a claim the contract would revert anyway.
func (a *app) checkFaucet(ctx context.Context) error {
	st := a.session.State()
	if st.Paused {
		return errPaused
	}
	tok := a.session.Token()
	claimed, err := tok.HasClaimedFaucet(ctx, tok.From())
	if err != nil {
		return txError(err)
	}
	if claimed {
		return errFaucetClaimed
	}
	return nil
}

// claimFaucet is the dashboard's faucet action.
func (a *app) claimFaucet(ctx context.Context) (string, error) {
	if err := a.checkFaucet(ctx); err != nil {
		return "", err
	}
	tok := a.session.Token()
	if err := a.transact(ctx, tok.ClaimFaucet, faucetDiagnose(tok)); err != nil {
		return "", err
	}
	return faucetMessage, nil
}

func faucetDiagnose(tok *contract.Token) func(context.Context) error {
	return func(ctx context.Context) error { return tok.Simulate(ctx, "claimFaucet") }
}

func init() {
	faucetEthCmd.Flags().BoolVar(&faucetEthOpen, "open", false, "Open the faucet in the browser")
	faucetCmd.AddCommand(faucetEthCmd)
}
