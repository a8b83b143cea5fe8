package cmd

import (
	"context"
	"fmt"
	"math/big"

	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var allowanceOwner string

var transferCmd = &cobra.Command{
	Use:     "transfer <to> <amount>",
	Short:   "Transfer TMB to an address",
	Example: "  tmb transfer 0x8f3C...4b2a 1.5",
	Args:    cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		to, err := parseAddress(args[0], "recipient")
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		amount, err := a.writable(args[1])
		if err != nil {
			return err
		}
		tok := a.session.Token()
		ok, err := a.send(cmd, "Transfer", [][2]string{
			{"From", tok.From().Hex()},
			{"To", to.Hex()},
			{"Amount", a.amount(amount)},
		}, func(ctx context.Context) (common.Hash, error) {
			return tok.Transfer(ctx, to, amount)
		}, func(ctx context.Context) error {
			return tok.Simulate(ctx, "transfer", to, amount)
		})
		if err != nil || !ok {
			return err
		}
		fmt.Println(ui.Success("Transfer successful!"))
		fmt.Printf("  Balance: %s\n", ui.Val(a.session.State().Balance+" "+a.symbol))
		return nil
	},
}

var transferFromCmd = &cobra.Command{
	Use:   "transfer-from <from> <to> <amount>",
	Short: "Move TMB from an owner that approved you",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		from, err := parseAddress(args[0], "owner")
		if err != nil {
			return err
		}
		to, err := parseAddress(args[1], "recipient")
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		amount, err := a.writable(args[2])
		if err != nil {
			return err
		}
		tok := a.session.Token()
		allowed, err := tok.Allowance(cmd.Context(), from, tok.From())
		if err != nil {
			return txError(err)
		}
		if allowed.Cmp(amount) < 0 {
			return fmt.Errorf("insufficient allowance: %s approved", a.amount(allowed))
		}

		ok, err := a.send(cmd, "TransferFrom", [][2]string{
			{"Spender", tok.From().Hex()},
			{"From", from.Hex()},
			{"To", to.Hex()},
			{"Amount", a.amount(amount)},
		}, func(ctx context.Context) (common.Hash, error) {
			return tok.TransferFrom(ctx, from, to, amount)
		}, func(ctx context.Context) error {
			return tok.Simulate(ctx, "transferFrom", from, to, amount)
		})
		if err != nil || !ok {
			return err
		}
		fmt.Println(ui.Success("TransferFrom successful!"))
		return nil
	},
}

var approveCmd = &cobra.Command{
	Use:   "approve <spender> <amount>",
	Short: "Allow a spender to move your TMB",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if a.session.State().Paused {
			return errPaused
		}
		spender, err := parseAddress(args[0], "spender")
		if err != nil {
			return err
		}
		amount, err := parseAmount(args[1], a.decimals)
		if err != nil {
			return err
		}

		tok := a.session.Token()
		ok, err := a.send(cmd, "Approve", [][2]string{
			{"Owner", tok.From().Hex()},
			{"Spender", spender.Hex()},
			{"Amount", a.amount(amount)},
		}, func(ctx context.Context) (common.Hash, error) {
			return tok.Approve(ctx, spender, amount)
		}, func(ctx context.Context) error {
			return tok.Simulate(ctx, "approve", spender, amount)
		})
		if err != nil || !ok {
			return err
		}
		fmt.Println(ui.Success("Approval successful!"))
		return nil
	},
}

var allowanceCmd = &cobra.Command{
	Use:   "allowance <spender>",
	Short: "Show how much a spender may move",
	Long: `Show the allowance an owner granted to spender. The owner defaults to
the connected account.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		spender, err := parseAddress(args[0], "spender")
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		tok := a.session.Token()
		owner := tok.From()
		if allowanceOwner != "" {
			if owner, err = parseAddress(allowanceOwner, "owner"); err != nil {
				return err
			}
		}
		v, err := tok.Allowance(cmd.Context(), owner, spender)
		if err != nil {
			return txError(err)
		}
		fmt.Println(ui.Info("Allowance: " + a.amount(v)))
		return nil
	},
}

// writable parses an amount for a balance-moving write.
func (a *app) writable(s string) (*big.Int, error) {
	if a.session.State().Paused {
		return nil, errPaused
	}
	return parseAmount(s, a.decimals)
}

func init() {
	allowanceCmd.Flags().StringVar(&allowanceOwner, "owner", "", "Owner address (default: connected account)")
}
