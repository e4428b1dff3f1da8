package sealpay

import (
	"errors"
	"math/big"

	"github.com/sealpay/sealpay/schema"
	"gorm.io/gorm"
)

// splitFee computes the platform cut as floor(price * feeBps / 10000).
// The creator share is derived by subtraction, so any truncation remainder
// stays with the creator.
func splitFee(price, feeBps uint64) (feeAmount, creatorAmount uint64) {
	fee := new(big.Int).SetUint64(price)
	fee.Mul(fee, new(big.Int).SetUint64(feeBps))
	fee.Div(fee, new(big.Int).SetUint64(schema.MaxFeeBps))
	feeAmount = fee.Uint64()
	creatorAmount = price - feeAmount
	return
}

// Purchase settles a one-time unlock of an item for the buyer: it pulls the
// full price into custody, forwards the fee and creator shares and records
// the receipt. The whole operation is serialized on the ledger mutex and
// commits or aborts as a unit; the receipt row is written inside a db
// transaction that is only committed once every transfer succeeded.
func (l *Ledger) Purchase(buyer, fingerprint string) (schema.Receipt, error) {
	buyerAddr, ok := normAddress(buyer)
	if !ok {
		return schema.Receipt{}, ErrInvalidAddress
	}
	fp, ok := normFingerprint(fingerprint)
	if !ok {
		return schema.Receipt{}, ErrItemNotExist
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	item, err := l.wdb.GetItem(fp)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return schema.Receipt{}, ErrItemNotExist
	}
	if err != nil {
		return schema.Receipt{}, err
	}
	if sameAddress(buyerAddr, item.Creator) {
		return schema.Receipt{}, ErrSelfPurchase
	}
	if prev, err := l.wdb.GetReceipt(fp, buyerAddr); err == nil && prev.Purchased() {
		return schema.Receipt{}, ErrAlreadyPurchased
	}
	now := l.now().Unix()
	if item.ExpiresAt != 0 && now >= item.ExpiresAt {
		return schema.Receipt{}, ErrItemExpired
	}

	cfg, err := l.wdb.GetConfig()
	if err != nil {
		log.Error("l.wdb.GetConfig()", "err", err)
		return schema.Receipt{}, err
	}
	tok, ok := l.tokens[cfg.PaymentToken]
	if !ok {
		log.Error("configured payment token not registered", "token", cfg.PaymentToken)
		return schema.Receipt{}, ErrTransferFailed
	}

	feeAmount, creatorAmount := splitFee(item.Price, cfg.FeeBps)

	receipt := schema.Receipt{
		Fingerprint: fp,
		Buyer:       buyerAddr,
		PricePaid:   item.Price,
		PurchasedAt: now,
	}

	tx := l.wdb.Db.Begin()
	if err := tx.Create(&receipt).Error; err != nil {
		tx.Rollback()
		log.Error("tx.Create(&receipt)", "err", err, "fingerprint", fp, "buyer", buyerAddr)
		return schema.Receipt{}, err
	}
	if err := l.settle(tok, buyerAddr, item.Creator, cfg.FeeRecipient, item.Price, feeAmount, creatorAmount); err != nil {
		tx.Rollback()
		return schema.Receipt{}, ErrTransferFailed
	}
	if err := tx.Commit().Error; err != nil {
		log.Error("tx.Commit()", "err", err, "fingerprint", fp, "buyer", buyerAddr)
		l.unwindSettle(tok, buyerAddr, item.Creator, cfg.FeeRecipient, feeAmount, creatorAmount)
		return schema.Receipt{}, err
	}

	l.emit(schema.EventItemPurchased, schema.ItemPurchasedPayload{
		Fingerprint: fp,
		Buyer:       buyerAddr,
		Price:       item.Price,
		PurchasedAt: now,
	})
	metricPurchase(item.Price, feeAmount)
	return receipt, nil
}

// settle moves the full price into custody and forwards the two shares.
// A failed leg unwinds the earlier ones so funds never end up stranded.
func (l *Ledger) settle(tok PaymentToken, buyer, creator, feeRecipient string, price, feeAmount, creatorAmount uint64) error {
	if err := tok.TransferFrom(buyer, l.custody, price); err != nil {
		log.Warn("tok.TransferFrom(buyer,custody,price)", "err", err, "buyer", buyer, "price", price)
		return err
	}
	if feeAmount > 0 {
		if err := tok.Transfer(l.custody, feeRecipient, feeAmount); err != nil {
			log.Error("tok.Transfer(custody,feeRecipient,feeAmount)", "err", err, "feeAmount", feeAmount)
			l.refund(tok, buyer, price)
			return err
		}
	}
	if creatorAmount > 0 {
		if err := tok.Transfer(l.custody, creator, creatorAmount); err != nil {
			log.Error("tok.Transfer(custody,creator,creatorAmount)", "err", err, "creatorAmount", creatorAmount)
			if feeAmount > 0 {
				if rerr := tok.Transfer(feeRecipient, l.custody, feeAmount); rerr != nil {
					log.Error("reclaim fee share failed", "err", rerr, "feeAmount", feeAmount)
				}
			}
			l.refund(tok, buyer, price)
			return err
		}
	}
	return nil
}

func (l *Ledger) refund(tok PaymentToken, buyer string, price uint64) {
	if err := tok.Transfer(l.custody, buyer, price); err != nil {
		log.Error("refund buyer failed", "err", err, "buyer", buyer, "price", price)
	}
}

// unwindSettle reverses a fully settled payment after a receipt commit
// failure. Best effort; every failed reversal is logged for the operator.
func (l *Ledger) unwindSettle(tok PaymentToken, buyer, creator, feeRecipient string, feeAmount, creatorAmount uint64) {
	if feeAmount > 0 {
		if err := tok.Transfer(feeRecipient, l.custody, feeAmount); err != nil {
			log.Error("unwind fee share failed", "err", err, "feeAmount", feeAmount)
		}
	}
	if creatorAmount > 0 {
		if err := tok.Transfer(creator, l.custody, creatorAmount); err != nil {
			log.Error("unwind creator share failed", "err", err, "creatorAmount", creatorAmount)
		}
	}
	l.refund(tok, buyer, feeAmount+creatorAmount)
}

func (l *Ledger) HasPurchased(fingerprint, buyer string) bool {
	return l.GetPurchaseDetails(fingerprint, buyer).Purchased()
}

// GetPurchaseDetails returns the zero-valued receipt when the pair never
// purchased; callers distinguish the two states via PurchasedAt > 0.
func (l *Ledger) GetPurchaseDetails(fingerprint, buyer string) schema.Receipt {
	fp, ok := normFingerprint(fingerprint)
	if !ok {
		return schema.Receipt{}
	}
	buyerAddr, ok := normAddress(buyer)
	if !ok {
		return schema.Receipt{}
	}
	receipt, err := l.wdb.GetReceipt(fp, buyerAddr)
	if err != nil {
		return schema.Receipt{Fingerprint: fp, Buyer: buyerAddr}
	}
	return receipt
}
