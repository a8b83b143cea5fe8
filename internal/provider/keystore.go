package provider

import (
	"context"
	"fmt"
	"math/big"
	"slices"
	"sync"

	"github.com/Mohsinsiddi/tmbcli/internal/chain"
	"github.com/Mohsinsiddi/tmbcli/internal/rpc"
	"github.com/Mohsinsiddi/tmbcli/internal/wallet"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"go.uber.org/zap"
)

// defaultGasLimit is used when the node cannot estimate a contract call.
const defaultGasLimit = uint64(200_000)

// ApproveFunc asks the user whether accounts may be revealed to the app.
type ApproveFunc func(ctx context.Context, accounts []common.Address) (bool, error)

// Keystore is a provider backed by the local wallet manager. Transactions
// are signed with the wallet's stored key and broadcast through an RPC
// endpoint picked for the active chain.
type Keystore struct {
	wallets  *wallet.Manager
	registry *chain.Registry
	custom   map[string][]string
	algo     rpc.Algorithm
	approve  ApproveFunc
	log      *zap.Logger

	mu         sync.Mutex
	authorized bool
	chainID    uint64
	client     *chain.EVMClient
	primary    *common.Address

	notifier
}

// KeystoreOption configures a Keystore provider.
type KeystoreOption func(*Keystore)

// WithApprover sets the prompt shown on eth_requestAccounts. Without one
// every request is approved.
func WithApprover(fn ApproveFunc) KeystoreOption {
	return func(k *Keystore) { k.approve = fn }
}

// WithCustomRPCs sets endpoints per network name. A network with custom
// endpoints uses only those; the others fall back to the registry.
func WithCustomRPCs(rpcs map[string][]string) KeystoreOption {
	return func(k *Keystore) { k.custom = rpcs }
}

// WithAlgorithm sets how an endpoint is chosen among the candidates.
func WithAlgorithm(a rpc.Algorithm) KeystoreOption {
	return func(k *Keystore) { k.algo = a }
}

// WithChain sets the chain the provider starts on.
func WithChain(id uint64) KeystoreOption {
	return func(k *Keystore) { k.chainID = id }
}

// WithKeystoreLogger sets the logger.
func WithKeystoreLogger(l *zap.Logger) KeystoreOption {
	return func(k *Keystore) { k.log = l }
}

// NewKeystore creates a provider over the given wallets.
func NewKeystore(wallets *wallet.Manager, registry *chain.Registry, opts ...KeystoreOption) *Keystore {
	k := &Keystore{
		wallets:  wallets,
		registry: registry,
		algo:     rpc.AlgorithmFastest,
		chainID:  chain.SepoliaChainID,
		log:      zap.NewNop(),
	}
	for _, opt := range opts {
		opt(k)
	}
	return k
}

// RequestAccounts asks the user to expose the signing wallets.
func (k *Keystore) RequestAccounts(ctx context.Context) ([]common.Address, error) {
	accounts := k.signingAccounts()
	if len(accounts) == 0 {
		return nil, ErrNoAccounts
	}
	if k.approve != nil {
		ok, err := k.approve(ctx, accounts)
		if err != nil {
			return nil, fmt.Errorf("approval prompt: %w", err)
		}
		if !ok {
			return nil, rejected("request")
		}
	}

	k.mu.Lock()
	k.authorized = true
	k.mu.Unlock()
	k.log.Debug("accounts authorized", zap.Int("count", len(accounts)))
	return k.Accounts(ctx)
}

// Accounts returns the authorized accounts, primary first. It is empty
// until RequestAccounts succeeds.
func (k *Keystore) Accounts(context.Context) ([]common.Address, error) {
	k.mu.Lock()
	authorized, primary := k.authorized, k.primary
	k.mu.Unlock()
	if !authorized {
		return []common.Address{}, nil
	}

	accounts := k.signingAccounts()
	if primary != nil {
		if i := slices.Index(accounts, *primary); i > 0 {
			accounts = append([]common.Address{*primary}, slices.Delete(accounts, i, i+1)...)
		}
	}
	return accounts, nil
}

// ChainID returns the active chain.
func (k *Keystore) ChainID(context.Context) (uint64, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	return k.chainID, nil
}

// SwitchChain makes id the active chain. Unknown chains fail with 4902.
func (k *Keystore) SwitchChain(ctx context.Context, id uint64) error {
	network, err := k.registry.GetByChainID(id)
	if err != nil {
		return &Error{Code: CodeUnrecognizedChain, Message: fmt.Sprintf("Unrecognized chain ID %d.", id)}
	}
	client, err := k.dial(ctx, network)
	if err != nil {
		return &Error{Code: CodeInternal, Message: err.Error()}
	}

	k.mu.Lock()
	k.chainID = id
	k.client = client
	k.mu.Unlock()
	k.log.Info("switched chain", zap.String("network", network.Name), zap.String("rpc", client.URL()))
	return nil
}

// Signer resolves account (nil for the primary one) to an authorized address.
func (k *Keystore) Signer(ctx context.Context, account *common.Address) (common.Address, error) {
	accounts, err := k.Accounts(ctx)
	if err != nil {
		return common.Address{}, err
	}
	if len(accounts) == 0 {
		return common.Address{}, unauthorized("The requested account has not been authorized by the user.")
	}
	if account == nil {
		return accounts[0], nil
	}
	if !slices.Contains(accounts, *account) {
		return common.Address{}, unauthorized(fmt.Sprintf("Account %s is not authorized.", account.Hex()))
	}
	return *account, nil
}

// OnAccountsChanged registers fn for account changes.
func (k *Keystore) OnAccountsChanged(fn func([]common.Address)) func() {
	return k.subscribe(fn)
}

// Select makes addr the primary account and notifies subscribers.
func (k *Keystore) Select(ctx context.Context, addr common.Address) error {
	if _, err := k.Signer(ctx, &addr); err != nil {
		return err
	}
	k.mu.Lock()
	k.primary = &addr
	k.mu.Unlock()

	accounts, _ := k.Accounts(ctx)
	k.publish(accounts)
	return nil
}

// Revoke withdraws the authorization; subscribers see an empty account list.
func (k *Keystore) Revoke() {
	k.mu.Lock()
	k.authorized = false
	k.primary = nil
	k.mu.Unlock()
	k.publish(nil)
}

// CallContract executes eth_call on the active chain.
func (k *Keystore) CallContract(ctx context.Context, from, to common.Address, data []byte) ([]byte, error) {
	client, err := k.rpcClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.CallContract(ctx, chain.CallMsg{From: from, To: to, Data: data})
}

// SendTransaction signs a dynamic-fee transaction with from's stored key
// and broadcasts it.
func (k *Keystore) SendTransaction(ctx context.Context, from, to common.Address, data []byte) (common.Hash, error) {
	if _, err := k.Signer(ctx, &from); err != nil {
		return common.Hash{}, err
	}
	w, err := k.wallets.FindByAddress(from)
	if err != nil {
		return common.Hash{}, err
	}
	client, err := k.rpcClient(ctx)
	if err != nil {
		return common.Hash{}, err
	}

	msg := chain.CallMsg{From: from, To: to, Data: data}
	gas, err := client.EstimateGas(ctx, msg)
	if err != nil {
		k.log.Debug("gas estimation failed, using fallback", zap.Error(err))
		gas = defaultGasLimit
	}
	gasPrice, err := client.GasPrice(ctx)
	if err != nil {
		return common.Hash{}, fmt.Errorf("getting gas price: %w", err)
	}
	nonce, err := client.PendingNonce(ctx, from)
	if err != nil {
		return common.Hash{}, fmt.Errorf("getting nonce: %w", err)
	}

	chainID, _ := k.ChainID(ctx)
	cid := new(big.Int).SetUint64(chainID)
	tx := types.NewTx(&types.DynamicFeeTx{
		ChainID:   cid,
		Nonce:     nonce,
		GasTipCap: gasPrice,
		GasFeeCap: new(big.Int).Mul(gasPrice, big.NewInt(2)),
		Gas:       gas,
		To:        &to,
		Value:     big.NewInt(0),
		Data:      data,
	})

	raw, err := wallet.NewSigner(w, k.wallets.KeyStore()).SignTx(tx, cid)
	if err != nil {
		return common.Hash{}, fmt.Errorf("signing transaction: %w", err)
	}
	hash, err := client.SendRawTransaction(ctx, raw)
	if err != nil {
		return common.Hash{}, fmt.Errorf("broadcasting transaction: %w", err)
	}
	k.log.Info("transaction sent", zap.Stringer("hash", hash), zap.Stringer("from", from), zap.Uint64("nonce", nonce))
	return hash, nil
}

// WaitMined polls for the receipt on the active chain.
func (k *Keystore) WaitMined(ctx context.Context, hash common.Hash) (*chain.Receipt, error) {
	client, err := k.rpcClient(ctx)
	if err != nil {
		return nil, err
	}
	return client.WaitForReceipt(ctx, hash)
}

// --- internal ---

func (k *Keystore) signingAccounts() []common.Address {
	signing := k.wallets.Signing()
	out := make([]common.Address, 0, len(signing))
	for _, w := range signing {
		out = append(out, w.Account())
	}
	return out
}

func (k *Keystore) rpcClient(ctx context.Context) (*chain.EVMClient, error) {
	k.mu.Lock()
	client, id := k.client, k.chainID
	k.mu.Unlock()
	if client != nil {
		return client, nil
	}

	network, err := k.registry.GetByChainID(id)
	if err != nil {
		return nil, err
	}
	client, err = k.dial(ctx, network)
	if err != nil {
		return nil, err
	}
	k.mu.Lock()
	if k.client == nil && k.chainID == id {
		k.client = client
	}
	k.mu.Unlock()
	return client, nil
}

func (k *Keystore) dial(ctx context.Context, network *chain.Network) (*chain.EVMClient, error) {
	urls := k.custom[network.Name]
	if len(urls) == 0 {
		urls = network.RPCs
	}
	url, err := rpc.Select(ctx, urls, k.algo, network.ChainID)
	if err != nil {
		return nil, fmt.Errorf("selecting %s endpoint: %w", network.Name, err)
	}
	return chain.NewEVMClient(url), nil
}
