package session

import (
	"errors"
	"strings"
)

// Errors returned by the Manager. Each one wraps the underlying cause, so
// both errors.Is(err, ErrX) and the cause's own type remain reachable.
var (
	ErrNoWalletFound       = errors.New("no wallet provider found")
	ErrUserRejected        = errors.New("user rejected the request")
	ErrChainUnavailable    = errors.New("required network is not available in the wallet")
	ErrChainSwitchFailed   = errors.New("failed to switch network")
	ErrConnectFailed       = errors.New("failed to connect")
	ErrAccountSwitchFailed = errors.New("failed to switch account")
	ErrRefreshFailed       = errors.New("failed to refresh")
)

// EIP-1193 codes the session reacts to.
const (
	codeUserRejected      = 4001
	codeUnrecognizedChain = 4902
)

// Message maps an error from the Manager to a short line for the user.
func Message(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNoWalletFound):
		return "No wallet found. Add a wallet or configure a remote wallet URL."
	case errors.Is(err, ErrUserRejected):
		return "Connection cancelled"
	case errors.Is(err, ErrChainUnavailable):
		return "Please add the Sepolia network to your wallet"
	case errors.Is(err, ErrChainSwitchFailed):
		return "Failed to switch to Sepolia"
	case errors.Is(err, ErrAccountSwitchFailed):
		return "Failed to switch account"
	case errors.Is(err, ErrRefreshFailed):
		return "Failed to fetch balance or paused status"
	case errors.Is(err, ErrConnectFailed):
		if root := rootMessage(err); root != ErrConnectFailed.Error() {
			return "Failed to connect: " + root
		}
		return "Failed to connect"
	default:
		return err.Error()
	}
}

func errorCode(err error) int {
	var c interface{ ErrorCode() int }
	if errors.As(err, &c) {
		return c.ErrorCode()
	}
	return 0
}

// isRejection reports whether the wallet refused on the user's behalf.
func isRejection(err error) bool {
	if errors.Is(err, ErrUserRejected) || errorCode(err) == codeUserRejected {
		return true
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "rejected") || strings.Contains(msg, "denied")
}

// rootMessage returns the innermost error text of a chain.
func rootMessage(err error) string {
	for {
		var next error
		if u, ok := err.(interface{ Unwrap() []error }); ok {
			errs := u.Unwrap()
			if len(errs) > 0 {
				next = errs[len(errs)-1]
			}
		} else {
			next = errors.Unwrap(err)
		}
		if next == nil {
			return err.Error()
		}
		err = next
	}
}
