package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/ethereum/go-ethereum/common"
	"github.com/spf13/cobra"
)

var errNotOwner = errors.New("only the contract owner can do this")

var ownerCmd = &cobra.Command{
	Use:   "owner",
	Short: "Owner-only contract administration",
	Long: `Pause, unpause or hand over the token contract. Every subcommand is
refused unless the connected account is the contract owner.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		st := a.session.State()
		if st.Owner == nil {
			return errors.New("contract owner is unknown")
		}
		fmt.Printf("Owner: %s\n", ui.Addr(st.Owner.Hex()))
		if st.IsOwner() {
			fmt.Println(ui.Success("You are the contract owner"))
		}
		return nil
	},
}

var ownerPauseCmd = &cobra.Command{
	Use:   "pause",
	Short: "Pause all token transfers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPause(cmd, true)
	},
}

var ownerUnpauseCmd = &cobra.Command{
	Use:   "unpause",
	Short: "Resume token transfers",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		return runPause(cmd, false)
	},
}

var ownerTransferCmd = &cobra.Command{
	Use:   "transfer <new-owner>",
	Short: "Transfer contract ownership",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		newOwner, err := parseAddress(args[0], "new owner")
		if err != nil {
			return err
		}
		a, err := openApp(cmd)
		if err != nil {
			return err
		}
		defer a.close()

		if !a.session.IsOwner() {
			return errNotOwner
		}
		fmt.Println(ui.DangerBox("You will lose every owner permission on " + a.session.ContractAddress().Hex()))
		if !assumeYes && !ui.ConfirmDanger("Transfer ownership to "+newOwner.Hex()+"?") {
			fmt.Println(ui.Meta("Cancelled."))
			return nil
		}

		tok := a.session.Token()
		ok, err := a.send(cmd, "Transfer Ownership", [][2]string{
			{"Contract", a.session.ContractAddress().Hex()},
			{"New owner", newOwner.Hex()},
		}, func(ctx context.Context) (common.Hash, error) {
			return tok.TransferOwnership(ctx, newOwner)
		}, func(ctx context.Context) error {
			return tok.Simulate(ctx, "transferOwnership", newOwner)
		})
		if err != nil || !ok {
			return err
		}
		fmt.Println(ui.Success("Ownership transferred!"))
		return nil
	},
}

func runPause(cmd *cobra.Command, pause bool) error {
	a, err := openApp(cmd)
	if err != nil {
		return err
	}
	defer a.close()

	if !a.session.IsOwner() {
		return errNotOwner
	}
	if a.session.State().Paused == pause {
		fmt.Println(ui.Meta("Nothing to do: " + pauseLabel(pause)))
		return nil
	}

	write, method := pauseCall(a, pause)
	ok, err := a.send(cmd, "Contract Status", [][2]string{
		{"Contract", a.session.ContractAddress().Hex()},
		{"Action", method},
	}, write, func(ctx context.Context) error {
		return a.session.Token().Simulate(ctx, method)
	})
	if err != nil || !ok {
		return err
	}
	fmt.Println(ui.Success(pauseToast(pause)))
	return nil
}

// togglePause is the dashboard's pause action.
func (a *app) togglePause(ctx context.Context) (string, error) {
	if !a.session.IsOwner() {
		return "", errNotOwner
	}
	pause := !a.session.State().Paused
	write, method := pauseCall(a, pause)
	if err := a.transact(ctx, write, func(ctx context.Context) error {
		return a.session.Token().Simulate(ctx, method)
	}); err != nil {
		return "", err
	}
	return pauseToast(pause), nil
}

func pauseCall(a *app, pause bool) (txFunc, string) {
	tok := a.session.Token()
	if pause {
		return tok.Pause, "pause"
	}
	return tok.Unpause, "unpause"
}

func pauseToast(pause bool) string {
	if pause {
		return "Contract Paused!"
	}
	return "Contract Unpaused!"
}

func pauseLabel(paused bool) string {
	if paused {
		return "contract is already paused"
	}
	return "contract is already active"
}

func init() {
	ownerCmd.AddCommand(ownerPauseCmd, ownerUnpauseCmd, ownerTransferCmd)
}
