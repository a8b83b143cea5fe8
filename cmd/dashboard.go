package cmd

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/Mohsinsiddi/tmbcli/internal/config"
	"github.com/Mohsinsiddi/tmbcli/internal/metrics"
	"github.com/Mohsinsiddi/tmbcli/internal/session"
	"github.com/Mohsinsiddi/tmbcli/internal/ui"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	dashboardInterval time.Duration
	dashboardMetrics  string
)

var dashboardCmd = &cobra.Command{
	Use:   "dashboard",
	Short: "Live session dashboard",
	Long: `Open a full-screen view of the wallet session: connected account,
network, TMB balance and contract status.

Keys: r refresh, a next account, f faucet, p pause/unpause (owner),
c connect, d disconnect, q quit.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		addr := dashboardMetrics
		if !cmd.Flags().Changed("metrics-addr") {
			addr = cfg.MetricsAddr
		}
		srv := metrics.NewService(addr, logger.Named("metrics"))
		go srv.Start()
		defer srv.ShutDown()

		a, err := openApp(cmd, session.WithObserver(func(st session.State) {
			logger.Debug("session updated", zap.Stringer("phase", st.Phase), zap.Int("accounts", len(st.AvailableAccounts)))
		}))
		if err != nil {
			return err
		}
		defer a.close()

		// Console logs would tear the alternate screen.
		if cfg.LogPath == "" && !verbose && logLevel != nil {
			logLevel.SetLevel(zapcore.ErrorLevel)
		}
		return ui.RunDashboard(ui.NewDashboard(dashboardInterval, a.dashboardActions(cmd.Context())))
	},
}

func (a *app) dashboardActions(ctx context.Context) ui.DashboardActions {
	run := func(timeout time.Duration, fn func(context.Context) (string, error)) func() (string, error) {
		return func() (string, error) {
			ctx, cancel := context.WithTimeout(ctx, timeout)
			defer cancel()
			msg, err := fn(ctx)
			if err != nil {
				return "", errors.New(session.Message(err))
			}
			return msg, nil
		}
	}

	return ui.DashboardActions{
		Snapshot: a.snapshot,
		Refresh: run(config.ReadTimeout, func(ctx context.Context) (string, error) {
			if err := a.session.Refresh(ctx); err != nil {
				return "", err
			}
			return "Balance & Status refreshed", nil
		}),
		NextAccount: run(config.ReadTimeout, a.nextAccount),
		Faucet:      run(cfg.TxWait(), a.claimFaucet),
		TogglePause: run(cfg.TxWait(), a.togglePause),
		Connect: run(config.ConnectTimeout, func(ctx context.Context) (string, error) {
			if err := a.session.Connect(ctx); err != nil {
				return "", err
			}
			return "Wallet Connected!", nil
		}),
		Disconnect: run(config.ReadTimeout, func(context.Context) (string, error) {
			a.session.Disconnect()
			return "Wallet disconnected", nil
		}),
	}
}

func (a *app) snapshot() ui.DashboardSnapshot {
	st := a.session.State()
	snap := ui.DashboardSnapshot{
		Phase:     st.Phase.String(),
		Connected: st.Connected,
		ChainID:   st.ChainID,
		Balance:   st.Balance,
		Symbol:    a.symbol,
		Paused:    st.Paused,
		IsOwner:   st.IsOwner(),
	}
	if st.Account != nil {
		snap.Account = st.Account.Hex()
	}
	for _, acc := range st.AvailableAccounts {
		snap.Accounts = append(snap.Accounts, acc.Hex())
	}
	if st.Owner != nil {
		snap.Owner = st.Owner.Hex()
	}
	if n, err := chain.NewRegistry().GetByChainID(st.ChainID); err == nil {
		snap.Network = n.DisplayName
	}
	return snap
}

// nextAccount cycles to the account after the current one.
func (a *app) nextAccount(ctx context.Context) (string, error) {
	st := a.session.State()
	if len(st.AvailableAccounts) < 2 {
		return "", errors.New("only one account is available")
	}
	i := 0
	if st.Account != nil {
		i = slices.Index(st.AvailableAccounts, *st.Account) + 1
	}
	next := st.AvailableAccounts[i%len(st.AvailableAccounts)]

	if err := a.session.SwitchAccount(ctx, next); err != nil {
		return "", err
	}
	if a.keystore != nil {
		if err := a.keystore.Select(ctx, next); err != nil {
			logger.Warn("keystore primary not updated", zap.Error(err))
		}
	}
	return fmt.Sprintf("Account switched! %s", ui.TruncateAddr(next.Hex())), nil
}

func init() {
	dashboardCmd.Flags().DurationVar(&dashboardInterval, "interval", 30*time.Second, "Auto refresh period (0 disables)")
	dashboardCmd.Flags().StringVar(&dashboardMetrics, "metrics-addr", "", "Serve Prometheus metrics on this address (default: config metrics_addr)")
}
