package sealpay

import (
	"errors"
	"strings"
	"sync"
)

// PaymentToken is the fungible-token collaborator the settlement engine
// moves funds through. Every transfer is fallible; a failed transfer aborts
// the purchase that issued it.
type PaymentToken interface {
	Address() string
	Symbol() string
	Decimals() int
	BalanceOf(addr string) uint64

	// TransferFrom pulls amount from `from` into `to`. It requires a prior
	// allowance granted by `from` to `to`.
	TransferFrom(from, to string, amount uint64) error
	// Transfer pushes amount out of `from` (the engine custody account).
	Transfer(from, to string, amount uint64) error
}

var (
	ErrInsufficientBalance   = errors.New("insufficient_balance")
	ErrInsufficientAllowance = errors.New("insufficient_allowance")
)

// DevToken is an in-process token ledger used by tests and the dev
// deployment mode. Balances and allowances live in memory only.
type DevToken struct {
	addr     string
	symbol   string
	decimals int

	lock       sync.RWMutex
	balances   map[string]uint64
	allowances map[string]map[string]uint64 // owner -> spender -> amount
}

func NewDevToken(addr, symbol string, decimals int) (*DevToken, error) {
	normed, ok := normAddress(addr)
	if !ok {
		return nil, ErrInvalidAddress
	}
	return &DevToken{
		addr:       normed,
		symbol:     strings.ToUpper(symbol),
		decimals:   decimals,
		balances:   make(map[string]uint64),
		allowances: make(map[string]map[string]uint64),
	}, nil
}

func (t *DevToken) Address() string {
	return t.addr
}

func (t *DevToken) Symbol() string {
	return t.symbol
}

func (t *DevToken) Decimals() int {
	return t.decimals
}

func (t *DevToken) BalanceOf(addr string) uint64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.balances[strings.ToLower(addr)]
}

// Mint credits addr out of thin air. Dev and test helper.
func (t *DevToken) Mint(addr string, amount uint64) {
	t.lock.Lock()
	defer t.lock.Unlock()
	t.balances[strings.ToLower(addr)] += amount
}

func (t *DevToken) Approve(owner, spender string, amount uint64) {
	t.lock.Lock()
	defer t.lock.Unlock()
	owner = strings.ToLower(owner)
	spender = strings.ToLower(spender)
	if _, ok := t.allowances[owner]; !ok {
		t.allowances[owner] = make(map[string]uint64)
	}
	t.allowances[owner][spender] = amount
}

func (t *DevToken) Allowance(owner, spender string) uint64 {
	t.lock.RLock()
	defer t.lock.RUnlock()
	return t.allowances[strings.ToLower(owner)][strings.ToLower(spender)]
}

func (t *DevToken) TransferFrom(from, to string, amount uint64) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	if t.allowances[from][to] < amount {
		return ErrInsufficientAllowance
	}
	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	t.allowances[from][to] -= amount
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}

func (t *DevToken) Transfer(from, to string, amount uint64) error {
	t.lock.Lock()
	defer t.lock.Unlock()
	from = strings.ToLower(from)
	to = strings.ToLower(to)

	if t.balances[from] < amount {
		return ErrInsufficientBalance
	}
	t.balances[from] -= amount
	t.balances[to] += amount
	return nil
}
