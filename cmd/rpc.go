package cmd

import (
	"context"
	"fmt"
	"strings"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/Mohsinsiddi/tmbcli/internal/config"
	"github.com/Mohsinsiddi/tmbcli/internal/rpc"
	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

var rpcTestPlain bool

var rpcCmd = &cobra.Command{
	Use:   "rpc",
	Short: "Manage RPC endpoints used by local wallets",
	Long: `Manage the RPC endpoints the keystore provider reads and broadcasts
through. Custom endpoints for a network replace its built-in ones. The
network defaults to sepolia.`,
}

var rpcListCmd = &cobra.Command{
	Use:   "list [network]",
	Short: "List the RPCs for a network",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(_ *cobra.Command, args []string) error {
		n, err := networkArg(args)
		if err != nil {
			return err
		}
		fmt.Println(ui.StyleTitle.Render("RPCs for " + n.DisplayName))

		custom := cfg.GetRPCs(n.Name)
		builtin := ui.StyleHeader.Render("Built-in:")
		if len(custom) > 0 {
			builtin += " " + ui.Meta("(overridden)")
		}
		fmt.Println(builtin)
		for _, r := range n.RPCs {
			fmt.Println("  " + r)
		}
		if len(custom) > 0 {
			fmt.Println(ui.StyleHeader.Render("Custom:"))
			for _, r := range custom {
				fmt.Println("  " + r)
			}
		}
		fmt.Println(ui.Meta("Selection: " + cfg.RPCAlgorithm))
		return nil
	},
}

var rpcAddCmd = &cobra.Command{
	Use:   "add <network> <url>",
	Short: "Add a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		n, err := networkArg(args[:1])
		if err != nil {
			return err
		}
		url := strings.TrimSpace(args[1])
		if !strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
			return fmt.Errorf("rpc url must start with http:// or https://")
		}
		if err := cfg.AddRPC(n.Name, url); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Added RPC for %s: %s", ui.ChainName(n.DisplayName), url)))
		return nil
	},
}

var rpcRemoveCmd = &cobra.Command{
	Use:   "remove <network> <url>",
	Short: "Remove a custom RPC URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(_ *cobra.Command, args []string) error {
		n, err := networkArg(args[:1])
		if err != nil {
			return err
		}
		if err := cfg.RemoveRPC(n.Name, args[1]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("Removed RPC for %s: %s", ui.ChainName(n.DisplayName), args[1])))
		return nil
	},
}

var rpcTestCmd = &cobra.Command{
	Use:   "test [network]",
	Short: "Probe every RPC for latency, height and chain id",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		n, err := networkArg(args)
		if err != nil {
			return err
		}
		urls := cfg.GetRPCs(n.Name)
		if len(urls) == 0 {
			urls = n.RPCs
		}

		ctx, cancel := context.WithTimeout(cmd.Context(), config.RPCSelectTimeout)
		defer cancel()

		if rpcTestPlain {
			printProbe(n, rpc.Probe(ctx, urls))
			return nil
		}
		model := ui.NewProbeModel(n.DisplayName, n.ChainID, urls, func(url string) tea.Cmd {
			return func() tea.Msg {
				ep := rpc.Probe(ctx, []string{url})[0]
				return ui.ProbeResultMsg{URL: ep.URL, Latency: ep.Latency, Block: ep.BlockNumber, ChainID: ep.ChainID, Err: ep.Err}
			}
		})
		_, err = tea.NewProgram(model).Run()
		return err
	},
}

var rpcAlgorithmCmd = &cobra.Command{
	Use:       "algorithm <fastest|round-robin|failover>",
	Short:     "Set how an RPC endpoint is chosen",
	Args:      cobra.ExactArgs(1),
	ValidArgs: []string{string(rpc.AlgorithmFastest), string(rpc.AlgorithmRoundRobin), string(rpc.AlgorithmFailover)},
	RunE: func(_ *cobra.Command, args []string) error {
		if err := cfg.Set("rpc_algorithm", args[0]); err != nil {
			return err
		}
		if err := cfg.Save(); err != nil {
			return err
		}
		fmt.Println(ui.Success(fmt.Sprintf("RPC algorithm set to %q", args[0])))
		return nil
	},
}

// networkArg resolves the optional network argument, sepolia by default.
func networkArg(args []string) (*chain.Network, error) {
	reg := chain.NewRegistry()
	if len(args) == 0 {
		return reg.GetByChainID(chain.SepoliaChainID)
	}
	n, err := reg.GetByName(args[0])
	if err != nil {
		return nil, fmt.Errorf("unknown network %q", args[0])
	}
	return n, nil
}

func printProbe(n *chain.Network, eps []rpc.Endpoint) {
	t := ui.NewTable([]ui.Column{
		{Title: "RPC URL", Width: 44},
		{Title: "Latency", Width: 10},
		{Title: "Block #", Width: 12},
		{Title: "Status", Width: 16},
	})
	for _, ep := range eps {
		latency, block, status := "—", "—", ui.Success("healthy")
		switch {
		case ep.Err != nil:
			status = ui.Err("down")
		case ep.ChainID != n.ChainID:
			status = ui.Warn(fmt.Sprintf("chain %d", ep.ChainID))
		}
		if ep.Err == nil {
			latency = fmt.Sprintf("%dms", ep.Latency.Milliseconds())
			block = fmt.Sprintf("%d", ep.BlockNumber)
		}
		t.AddRow(ui.Row{ep.URL, latency, block, status})
	}
	fmt.Println(t.Render())
}

func init() {
	rpcTestCmd.Flags().BoolVar(&rpcTestPlain, "plain", false, "print a table instead of the live view")
	rpcCmd.AddCommand(rpcListCmd, rpcAddCmd, rpcRemoveCmd, rpcTestCmd, rpcAlgorithmCmd)
}
