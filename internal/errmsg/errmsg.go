// Package errmsg turns provider, RPC and revert errors into short messages
// a user can act on.
package errmsg

import (
	"bytes"
	"errors"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"golang.org/x/crypto/sha3"
)

const (
	Rejected     = "Transaction was rejected"
	CheckInputs  = "Transaction failed. Please check your inputs."
	NoGas        = "Insufficient ETH for gas fees"
	NonceError   = "Transaction nonce error. Please refresh."
	TryAgain     = "Transaction failed. Please try again."
	Unexpected   = "An unexpected error occurred"
	maxRawLength = 100
)

// codeUserRejected is the EIP-1193 code for a request the user declined.
const codeUserRejected = 4001

type customError struct {
	name     string
	message  string
	selector []byte
}

// customErrors is checked in order; the first name found wins.
var customErrors = newCustomErrors([][2]string{
	{"TransferToZeroAddress", "Cannot transfer to zero address"},
	{"TransferFromZeroAddress", "Cannot transfer from zero address"},
	{"InsufficientBalance", "Insufficient token balance"},
	{"ApproveToZeroAddress", "Cannot approve zero address"},
	{"InsufficientAllowance", "Insufficient allowance. Please approve first."},
	{"NotTheOwner", "Only the contract owner can do this"},
	{"ContractPaused", "Contract is currently paused"},
	{"FaucetWouldExceedCap", "Faucet would exceed token cap"},
	{"CapMustBeGreaterOrEqualInitialSupply", "Initial supply must be less than or equal to cap"},
	{"NewOwnerIsZeroAddress", "New owner cannot be zero address"},
})

func newCustomErrors(pairs [][2]string) []customError {
	out := make([]customError, len(pairs))
	for i, p := range pairs {
		out[i] = customError{name: p[0], message: p[1], selector: Selector(p[0] + "()")}
	}
	return out
}

// Selector returns the 4-byte id of a function or error signature.
func Selector(signature string) []byte {
	h := sha3.NewLegacyKeccak256()
	h.Write([]byte(signature))
	return h.Sum(nil)[:4]
}

type coder interface {
	ErrorCode() int
}

type dataCarrier interface {
	ErrorData() interface{}
}

// Translate maps err to a friendly message. It never returns an empty
// string for a non-nil error.
func Translate(err error) string {
	if err == nil {
		return ""
	}

	var c coder
	if errors.As(err, &c) && c.ErrorCode() == codeUserRejected {
		return Rejected
	}
	message := err.Error()
	if strings.Contains(message, "ACTION_REJECTED") {
		return Rejected
	}

	revert := revertData(err)
	for _, ce := range customErrors {
		if len(revert) >= 4 && bytes.Equal(revert[:4], ce.selector) {
			return ce.message
		}
	}

	haystack := message
	if reason, uerr := abi.UnpackRevert(revert); uerr == nil {
		haystack += " " + reason
	}
	for _, ce := range customErrors {
		if strings.Contains(haystack, ce.name) {
			return ce.message
		}
	}

	switch {
	case strings.Contains(message, "execution reverted") || strings.Contains(message, "CALL_EXCEPTION"):
		return CheckInputs
	case strings.Contains(message, "insufficient funds"):
		return NoGas
	case strings.Contains(message, "nonce"):
		return NonceError
	}

	if len(message) > maxRawLength {
		return TryAgain
	}
	if strings.TrimSpace(message) == "" {
		return Unexpected
	}
	return message
}

// revertData digs the raw revert payload out of the first error in the
// chain that carries JSON-RPC error data.
func revertData(err error) []byte {
	var dc dataCarrier
	if !errors.As(err, &dc) {
		return nil
	}
	var s string
	switch d := dc.ErrorData().(type) {
	case string:
		s = d
	case map[string]interface{}:
		// Some nodes nest the payload as {"data": "0x..."}.
		s, _ = d["data"].(string)
	default:
		s = fmt.Sprint(d)
	}
	b, derr := hexutil.Decode(s)
	if derr != nil {
		return nil
	}
	return b
}
