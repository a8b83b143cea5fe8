package provider

import (
	"context"
	"math/big"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	gethrpc "github.com/ethereum/go-ethereum/rpc"
	"github.com/stretchr/testify/require"
)

// Hardhat/Anvil test account #0. Never fund on mainnet.
const (
	hardhatKey  = "0xac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80"
	hardhatAddr = "0xf39Fd6e51aad88F6F4ce6aB8827279cffFb92266"
)

var (
	alice = common.HexToAddress("0x00000000000000000000000000000000000a11ce")
	bob   = common.HexToAddress("0x0000000000000000000000000000000000000b0b")
	token = common.HexToAddress("0x12aCeCA2A8db549f99096f524905fbd6AAfeA77D")
)

// rpcErr is returned by fake services so the server reports code and data.
type rpcErr struct {
	code int
	msg  string
	data interface{}
}

func (e *rpcErr) Error() string          { return e.msg }
func (e *rpcErr) ErrorCode() int         { return e.code }
func (e *rpcErr) ErrorData() interface{} { return e.data }

type callArgs struct {
	From  *common.Address `json:"from"`
	To    common.Address  `json:"to"`
	Data  hexutil.Bytes   `json:"data"`
	Value *hexutil.Big    `json:"value"`
}

// fakeNode is an "eth" namespace good enough for the keystore provider.
type fakeNode struct {
	chainID     uint64
	callResult  hexutil.Bytes
	callErr     error
	estimateErr error

	mu    sync.Mutex
	calls []callArgs
	txs   []*types.Transaction
}

func (n *fakeNode) ChainId() hexutil.Uint64     { return hexutil.Uint64(n.chainID) }
func (n *fakeNode) BlockNumber() hexutil.Uint64 { return 100 }
func (n *fakeNode) GasPrice() *hexutil.Big      { return (*hexutil.Big)(big.NewInt(1_000_000_000)) }

func (n *fakeNode) Call(args callArgs, block string) (hexutil.Bytes, error) {
	n.mu.Lock()
	n.calls = append(n.calls, args)
	n.mu.Unlock()
	return n.callResult, n.callErr
}

func (n *fakeNode) EstimateGas(args callArgs, block string) (hexutil.Uint64, error) {
	if n.estimateErr != nil {
		return 0, n.estimateErr
	}
	return 51_000, nil
}

func (n *fakeNode) GetTransactionCount(addr common.Address, block string) hexutil.Uint64 {
	return 7
}

func (n *fakeNode) SendRawTransaction(raw hexutil.Bytes) (common.Hash, error) {
	tx := new(types.Transaction)
	if err := tx.UnmarshalBinary(raw); err != nil {
		return common.Hash{}, err
	}
	n.mu.Lock()
	n.txs = append(n.txs, tx)
	n.mu.Unlock()
	return tx.Hash(), nil
}

func (n *fakeNode) GetTransactionReceipt(hash common.Hash) map[string]interface{} {
	return map[string]interface{}{"status": "0x1", "blockNumber": "0x10", "gasUsed": "0xc738"}
}

func (n *fakeNode) sent() []*types.Transaction {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]*types.Transaction(nil), n.txs...)
}

// serveHTTP exposes services over a test HTTP endpoint.
func serveHTTP(t *testing.T, services map[string]interface{}) string {
	t.Helper()
	srv := gethrpc.NewServer()
	for ns, svc := range services {
		require.NoError(t, srv.RegisterName(ns, svc))
	}
	hs := httptest.NewServer(srv)
	t.Cleanup(func() {
		hs.Close()
		srv.Stop()
	})
	return hs.URL
}

// fakeWallet is an EIP-1193 wallet: "eth" plus the "wallet" namespace.
type fakeWallet struct {
	mu       sync.Mutex
	accounts []common.Address
	chainID  uint64
	reject   bool
	pending  int
	sentTx   []callArgs
	calls    []callArgs
	changes  chan []common.Address
}

func newFakeWallet(accounts ...common.Address) *fakeWallet {
	return &fakeWallet{accounts: accounts, chainID: 1, changes: make(chan []common.Address)}
}

func (w *fakeWallet) RequestAccounts() ([]common.Address, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.reject {
		return nil, &rpcErr{code: CodeUserRejected, msg: "User rejected the request."}
	}
	return w.accounts, nil
}

func (w *fakeWallet) Accounts() []common.Address {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]common.Address{}, w.accounts...)
}

func (w *fakeWallet) ChainId() hexutil.Uint64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return hexutil.Uint64(w.chainID)
}

func (w *fakeWallet) Call(args callArgs, block string) (hexutil.Bytes, error) {
	w.mu.Lock()
	w.calls = append(w.calls, args)
	w.mu.Unlock()
	if len(args.Data) == 0 {
		return nil, &rpcErr{code: 3, msg: "execution reverted", data: "0xdeadbeef"}
	}
	return hexutil.Bytes{0x01}, nil
}

func (w *fakeWallet) SendTransaction(args callArgs) (common.Hash, error) {
	w.mu.Lock()
	defer w.mu.Unlock()
	w.sentTx = append(w.sentTx, args)
	return common.HexToHash("0xfeed"), nil
}

func (w *fakeWallet) GetTransactionReceipt(hash common.Hash) map[string]interface{} {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.pending > 0 {
		w.pending--
		return nil
	}
	return map[string]interface{}{"status": "0x1", "blockNumber": "0x2", "gasUsed": "0x5208"}
}

func (w *fakeWallet) AccountsChanged(ctx context.Context) (*gethrpc.Subscription, error) {
	notifier, ok := gethrpc.NotifierFromContext(ctx)
	if !ok {
		return nil, gethrpc.ErrNotificationsUnsupported
	}
	sub := notifier.CreateSubscription()
	go func() {
		for {
			select {
			case accounts := <-w.changes:
				notifier.Notify(sub.ID, accounts) //nolint:errcheck
			case <-sub.Err():
				return
			}
		}
	}()
	return sub, nil
}

func (w *fakeWallet) setAccounts(accounts ...common.Address) {
	w.mu.Lock()
	w.accounts = accounts
	w.mu.Unlock()
}

// walletNS serves wallet_switchEthereumChain.
type walletNS struct {
	w      *fakeWallet
	params []map[string]string
}

func (n *walletNS) SwitchEthereumChain(param map[string]string) error {
	id, err := hexutil.DecodeUint64(param["chainId"])
	if err != nil {
		return err
	}
	n.params = append(n.params, param)
	if id == 999 {
		return &rpcErr{code: CodeUnrecognizedChain, msg: "Unrecognized chain ID"}
	}
	n.w.mu.Lock()
	n.w.chainID = id
	n.w.mu.Unlock()
	return nil
}
