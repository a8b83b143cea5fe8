package contract

// TMB is the faucet token on Sepolia: ERC-20 plus a one-shot faucet,
// Pausable and Ownable, with a supply cap.
//
// Well-known selectors:
//
//	name()               → 0x06fdde03
//	symbol()             → 0x95d89b41
//	decimals()           → 0x313ce567
//	totalSupply()        → 0x18160ddd
//	balanceOf(address)   → 0x70a08231
//	allowance(a,a)       → 0xdd62ed3e
//	transfer(a,u256)     → 0xa9059cbb
//	approve(a,u256)      → 0x095ea7b3
//	transferFrom(a,a,u)  → 0x23b872dd
//	owner()              → 0x8da5cb5b
//	transferOwnership(a) → 0xf2fde38b
//	paused()             → 0x5c975abb
//	pause()              → 0x8456cb59
//	unpause()            → 0x3f4ba83a
//	cap()                → 0x355274ea
const tmbABI = `[
  {"type":"function","name":"name","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"symbol","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"string"}]},
  {"type":"function","name":"decimals","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint8"}]},
  {"type":"function","name":"totalSupply","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"cap","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"balanceOf","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"allowance","stateMutability":"view","inputs":[{"name":"owner","type":"address"},{"name":"spender","type":"address"}],"outputs":[{"name":"","type":"uint256"}]},
  {"type":"function","name":"hasClaimedFaucet","stateMutability":"view","inputs":[{"name":"account","type":"address"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"owner","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"address"}]},
  {"type":"function","name":"paused","stateMutability":"view","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"transfer","stateMutability":"nonpayable","inputs":[{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"approve","stateMutability":"nonpayable","inputs":[{"name":"spender","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"transferFrom","stateMutability":"nonpayable","inputs":[{"name":"from","type":"address"},{"name":"to","type":"address"},{"name":"amount","type":"uint256"}],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"claimFaucet","stateMutability":"nonpayable","inputs":[],"outputs":[{"name":"","type":"bool"}]},
  {"type":"function","name":"pause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"unpause","stateMutability":"nonpayable","inputs":[],"outputs":[]},
  {"type":"function","name":"transferOwnership","stateMutability":"nonpayable","inputs":[{"name":"newOwner","type":"address"}],"outputs":[]},
  {"type":"event","name":"Transfer","anonymous":false,"inputs":[{"name":"from","type":"address","indexed":true},{"name":"to","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
  {"type":"event","name":"Approval","anonymous":false,"inputs":[{"name":"owner","type":"address","indexed":true},{"name":"spender","type":"address","indexed":true},{"name":"value","type":"uint256","indexed":false}]},
  {"type":"error","name":"TransferToZeroAddress","inputs":[]},
  {"type":"error","name":"TransferFromZeroAddress","inputs":[]},
  {"type":"error","name":"InsufficientBalance","inputs":[]},
  {"type":"error","name":"ApproveToZeroAddress","inputs":[]},
  {"type":"error","name":"InsufficientAllowance","inputs":[]},
  {"type":"error","name":"NotTheOwner","inputs":[]},
  {"type":"error","name":"ContractPaused","inputs":[]},
  {"type":"error","name":"FaucetWouldExceedCap","inputs":[]},
  {"type":"error","name":"CapMustBeGreaterOrEqualInitialSupply","inputs":[]},
  {"type":"error","name":"NewOwnerIsZeroAddress","inputs":[]}
]`
