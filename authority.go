package sealpay

import (
	"github.com/sealpay/sealpay/schema"
)

// All configuration state transitions are gated on the stored operator
// identity and emit a before/after event. A rejected call leaves the
// configuration untouched.

func (l *Ledger) SetFeeRecipient(caller, newRecipient string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.requireOperator(caller)
	if err != nil {
		return err
	}
	recipient, ok := normAddress(newRecipient)
	if !ok {
		return ErrInvalidAddress
	}

	old := cfg.FeeRecipient
	cfg.FeeRecipient = recipient
	if err := l.wdb.SaveConfig(cfg); err != nil {
		log.Error("l.wdb.SaveConfig(cfg)", "err", err)
		return err
	}
	l.emit(schema.EventFeeRecipientChanged, schema.AddressChangedPayload{Old: old, New: recipient})
	return nil
}

// SetPaymentToken only affects future purchases; every purchase reads the
// configuration fresh.
func (l *Ledger) SetPaymentToken(caller, newToken string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.requireOperator(caller)
	if err != nil {
		return err
	}
	token, ok := normAddress(newToken)
	if !ok {
		return ErrInvalidAddress
	}

	old := cfg.PaymentToken
	cfg.PaymentToken = token
	if err := l.wdb.SaveConfig(cfg); err != nil {
		log.Error("l.wdb.SaveConfig(cfg)", "err", err)
		return err
	}
	l.emit(schema.EventPaymentTokenChanged, schema.AddressChangedPayload{Old: old, New: token})
	return nil
}

func (l *Ledger) SetFeeBasisPoints(caller string, newBps uint64) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.requireOperator(caller)
	if err != nil {
		return err
	}
	if newBps > schema.MaxFeeBps {
		return ErrFeeTooHigh
	}

	old := cfg.FeeBps
	cfg.FeeBps = newBps
	if err := l.wdb.SaveConfig(cfg); err != nil {
		log.Error("l.wdb.SaveConfig(cfg)", "err", err)
		return err
	}
	l.emit(schema.EventFeeBpsChanged, schema.FeeBpsChangedPayload{Old: old, New: newBps})
	return nil
}

// TransferOwnership hands the operator role to a new identity. All setter
// calls gate on the new owner from then on.
func (l *Ledger) TransferOwnership(caller, newOwner string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cfg, err := l.requireOperator(caller)
	if err != nil {
		return err
	}
	owner, ok := normAddress(newOwner)
	if !ok {
		return ErrInvalidAddress
	}

	old := cfg.Operator
	cfg.Operator = owner
	if err := l.wdb.SaveConfig(cfg); err != nil {
		log.Error("l.wdb.SaveConfig(cfg)", "err", err)
		return err
	}
	l.emit(schema.EventOwnershipTransferred, schema.AddressChangedPayload{Old: old, New: owner})
	return nil
}

func (l *Ledger) requireOperator(caller string) (schema.MarketConfig, error) {
	cfg, err := l.wdb.GetConfig()
	if err != nil {
		log.Error("l.wdb.GetConfig()", "err", err)
		return schema.MarketConfig{}, err
	}
	if !sameAddress(caller, cfg.Operator) {
		return schema.MarketConfig{}, ErrUnauthorized
	}
	return cfg, nil
}
