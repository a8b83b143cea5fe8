package provider

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"sync"
	"time"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// DefaultWalletURL is where Frame and similar desktop wallets listen.
const DefaultWalletURL = "ws://127.0.0.1:1248"

const (
	defaultAccountPoll = 3 * time.Second
	defaultReceiptPoll = 2 * time.Second
)

// Remote talks to an external wallet over JSON-RPC. The wallet holds the
// keys and signs eth_sendTransaction itself.
type Remote struct {
	client      *gethrpc.Client
	log         *zap.Logger
	accountPoll time.Duration
	receiptPoll time.Duration

	mu      sync.Mutex
	cancel  context.CancelFunc
	watched bool

	notifier
}

// RemoteOption configures a Remote provider.
type RemoteOption func(*Remote)

// WithRemoteLogger sets the logger.
func WithRemoteLogger(l *zap.Logger) RemoteOption {
	return func(r *Remote) { r.log = l }
}

// WithPollIntervals sets how often eth_accounts (when the transport has no
// subscriptions) and receipts are polled.
func WithPollIntervals(accounts, receipts time.Duration) RemoteOption {
	return func(r *Remote) {
		r.accountPoll = accounts
		r.receiptPoll = receipts
	}
}

// DialRemote connects to the wallet at url (http, ws or ipc).
func DialRemote(ctx context.Context, url string, opts ...RemoteOption) (*Remote, error) {
	client, err := gethrpc.DialContext(ctx, url)
	if err != nil {
		return nil, fmt.Errorf("dialing wallet at %s: %w", url, err)
	}
	return NewRemote(client, opts...), nil
}

// NewRemote wraps an existing RPC client.
func NewRemote(client *gethrpc.Client, opts ...RemoteOption) *Remote {
	r := &Remote{
		client:      client,
		log:         zap.NewNop(),
		accountPoll: defaultAccountPoll,
		receiptPoll: defaultReceiptPoll,
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Close stops account watching and closes the connection.
func (r *Remote) Close() {
	r.mu.Lock()
	if r.cancel != nil {
		r.cancel()
	}
	r.mu.Unlock()
	r.client.Close()
}

func (r *Remote) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := r.call(ctx, &accounts, "eth_requestAccounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *Remote) Accounts(ctx context.Context) ([]common.Address, error) {
	var accounts []common.Address
	if err := r.call(ctx, &accounts, "eth_accounts"); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (r *Remote) ChainID(ctx context.Context) (uint64, error) {
	var id hexutil.Uint64
	if err := r.call(ctx, &id, "eth_chainId"); err != nil {
		return 0, err
	}
	return uint64(id), nil
}

// SwitchChain asks the wallet to change networks (EIP-3326).
func (r *Remote) SwitchChain(ctx context.Context, id uint64) error {
	param := map[string]string{"chainId": hexutil.EncodeUint64(id)}
	return r.call(ctx, nil, "wallet_switchEthereumChain", param)
}

// Signer resolves account (nil for the wallet's primary one) against the
// wallet's current account list.
func (r *Remote) Signer(ctx context.Context, account *common.Address) (common.Address, error) {
	accounts, err := r.Accounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if len(accounts) == 0 {
		return common.Address{}, unauthorized("The wallet has not authorized any account.")
	}
	if account == nil {
		return accounts[0], nil
	}
	if !slices.Contains(accounts, *account) {
		return common.Address{}, unauthorized(fmt.Sprintf("Account %s is not authorized.", account.Hex()))
	}
	return *account, nil
}

type txArgs struct {
	From *common.Address `json:"from,omitempty"`
	To   common.Address  `json:"to"`
	Data hexutil.Bytes   `json:"data"`
}

func (r *Remote) CallContract(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	args := txArgs{To: to, Data: data}
	if from != (common.Address{}) {
		args.From = &from
	}
	var out hexutil.Bytes
	if err := r.call(ctx, &out, "eth_call", args, "latest"); err != nil {
		return nil, err
	}
	return out, nil
}

// SendTransaction hands the call to the wallet, which fills in gas, nonce
// and fees, asks the user and signs.
func (r *Remote) SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	var hash common.Hash
	if err := r.call(ctx, &hash, "eth_sendTransaction", txArgs{From: &from, To: to, Data: data}); err != nil {
		return common.Hash{}, err
	}
	r.log.Info("transaction sent", zap.Stringer("hash", hash), zap.Stringer("from", from))
	return hash, nil
}

// WaitMined polls eth_getTransactionReceipt until the tx is included.
func (r *Remote) WaitMined(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	limiter := rate.NewLimiter(rate.Every(r.receiptPoll), 1)
	for {
		if err := limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("transaction %s not mined: %w", hash.Hex(), err)
		}
		var rcpt *struct {
			Status      hexutil.Uint64 `json:"status"`
			BlockNumber hexutil.Uint64 `json:"blockNumber"`
			GasUsed     hexutil.Uint64 `json:"gasUsed"`
		}
		if err := r.call(ctx, &rcpt, "eth_getTransactionReceipt", hash); err != nil {
			return nil, err
		}
		if rcpt == nil {
			continue
		}
		receipt := &chain.Receipt{
			TxHash:      hash,
			Status:      uint64(rcpt.Status),
			BlockNumber: uint64(rcpt.BlockNumber),
			GasUsed:     uint64(rcpt.GasUsed),
		}
		if receipt.Status == 0 {
			return receipt, fmt.Errorf("transaction reverted (hash: %s)", hash.Hex())
		}
		return receipt, nil
	}
}

// OnAccountsChanged registers fn. The first subscriber starts watching the
// wallet: an accountsChanged subscription when the transport supports it,
// eth_accounts polling otherwise.
func (r *Remote) OnAccountsChanged(fn func([]common.Address)) func() {
	r.mu.Lock()
	defer r.mu.Unlock()
	cancel := r.subscribe(fn)
	if !r.watched {
		r.watched = true
		ctx, stop := context.WithCancel(context.Background())
		r.cancel = stop
		go r.watch(ctx)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Unsubscribe and the last-subscriber check happen under one
			// lock so a concurrent subscriber never loses its watcher.
			r.mu.Lock()
			defer r.mu.Unlock()
			cancel()
			if r.subscribers() > 0 {
				return
			}
			if r.cancel != nil {
				r.cancel()
				r.cancel = nil
			}
			r.watched = false
		})
	}
}

func (r *Remote) watch(ctx context.Context) {
	ch := make(chan []common.Address)
	sub, err := r.client.Subscribe(ctx, "eth", ch, "accountsChanged")
	if err != nil {
		r.log.Debug("accountsChanged subscription unavailable, polling", zap.Error(err))
		r.poll(ctx)
		return
	}
	defer sub.Unsubscribe()

	for {
		select {
		case accounts := <-ch:
			r.publish(accounts)
		case err := <-sub.Err():
			if err != nil {
				r.log.Warn("accountsChanged subscription ended", zap.Error(err))
			}
			return
		case <-ctx.Done():
			return
		}
	}
}

func (r *Remote) poll(ctx context.Context) {
	last, err := r.Accounts(ctx)
	if err != nil {
		r.log.Debug("initial eth_accounts failed", zap.Error(err))
	}
	ticker := time.NewTicker(r.accountPoll)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			accounts, err := r.Accounts(ctx)
			if err != nil {
				r.log.Debug("eth_accounts poll failed", zap.Error(err))
				continue
			}
			if !slices.Equal(accounts, last) {
				last = accounts
				r.publish(accounts)
			}
		}
	}
}

func (r *Remote) call(ctx context.Context, result any, method string, args ...any) error {
	if err := r.client.CallContext(ctx, result, method, args...); err != nil {
		return toProviderError(err)
	}
	return nil
}

// toProviderError keeps the JSON-RPC code and data of wallet errors.
func toProviderError(err error) error {
	var rpcErr gethrpc.Error
	if !errors.As(err, &rpcErr) {
		return err
	}
	perr := &Error{Code: rpcErr.ErrorCode(), Message: rpcErr.Error()}
	var dataErr gethrpc.DataError
	if errors.As(err, &dataErr) {
		perr.Data = dataErr.ErrorData()
	}
	return perr
}
