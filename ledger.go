package sealpay

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/sealpay/sealpay/schema"
	"gorm.io/gorm"
)

// Ledger is the shared marketplace state: item listings, purchase receipts
// and the operator configuration. Every mutating operation runs under one
// mutex and either commits fully or leaves the state untouched.
type Ledger struct {
	mu  sync.Mutex
	wdb *Wdb

	custody string // engine account funds transit through
	tokens  map[string]PaymentToken

	sink EventSink
	now  func() time.Time
}

func NewLedger(wdb *Wdb, custody string, sink EventSink) (*Ledger, error) {
	normed, ok := normAddress(custody)
	if !ok {
		return nil, ErrInvalidAddress
	}
	return &Ledger{
		wdb:     wdb,
		custody: normed,
		tokens:  make(map[string]PaymentToken),
		sink:    sink,
		now:     time.Now,
	}, nil
}

func (l *Ledger) RegisterToken(tok PaymentToken) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.tokens[strings.ToLower(tok.Address())] = tok
}

func (l *Ledger) Token(addr string) (PaymentToken, bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	tok, ok := l.tokens[strings.ToLower(addr)]
	return tok, ok
}

func (l *Ledger) Tokens() []PaymentToken {
	l.mu.Lock()
	defer l.mu.Unlock()
	res := make([]PaymentToken, 0, len(l.tokens))
	for _, tok := range l.tokens {
		res = append(res, tok)
	}
	return res
}

// InitConfig seeds the configuration singleton on first boot. A stored
// config wins over flags so operator changes survive restarts.
func (l *Ledger) InitConfig(operator, feeRecipient, tokenAddr string, feeBps uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	_, err := l.wdb.GetConfig()
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	op, ok := normAddress(operator)
	if !ok {
		return ErrInvalidAddress
	}
	recipient, ok := normAddress(feeRecipient)
	if !ok {
		return ErrInvalidAddress
	}
	token, ok := normAddress(tokenAddr)
	if !ok {
		return ErrInvalidAddress
	}
	if feeBps > schema.MaxFeeBps {
		return ErrFeeTooHigh
	}
	return l.wdb.SaveConfig(schema.MarketConfig{
		PaymentToken: token,
		FeeRecipient: recipient,
		FeeBps:       feeBps,
		Operator:     op,
	})
}

func (l *Ledger) Config() (schema.MarketConfig, error) {
	return l.wdb.GetConfig()
}

func (l *Ledger) Custody() string {
	return l.custody
}

func (l *Ledger) emit(kind string, payload interface{}) {
	if l.sink == nil {
		return
	}
	l.sink.Emit(kind, payload)
}
