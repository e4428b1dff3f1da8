package sealpay

import (
	"encoding/hex"
	"errors"
	"strings"

	"github.com/sealpay/sealpay/schema"
	"gorm.io/gorm"
)

var ErrInvalidFingerprint = errors.New("invalid_fingerprint")

// normFingerprint validates a hex-encoded 256-bit content fingerprint and
// returns its canonical lowercase form without the 0x prefix.
func normFingerprint(fp string) (string, bool) {
	fp = strings.ToLower(strings.TrimPrefix(fp, "0x"))
	if len(fp) != 64 {
		return "", false
	}
	if _, err := hex.DecodeString(fp); err != nil {
		return "", false
	}
	return fp, true
}

// CreateItem registers a priced listing under the caller's identity.
// A fingerprint can be registered at most once; creator, price and
// expiration are immutable afterwards.
func (l *Ledger) CreateItem(caller, fingerprint string, price uint64, expiresAt int64) (schema.Item, error) {
	creator, ok := normAddress(caller)
	if !ok {
		return schema.Item{}, ErrInvalidAddress
	}
	fp, ok := normFingerprint(fingerprint)
	if !ok {
		return schema.Item{}, ErrInvalidFingerprint
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	if l.wdb.ExistItem(fp) {
		return schema.Item{}, ErrItemExist
	}
	if price == 0 {
		return schema.Item{}, ErrInvalidPrice
	}
	if expiresAt != 0 && expiresAt <= l.now().Unix() {
		return schema.Item{}, ErrInvalidExpiration
	}

	item := schema.Item{
		Fingerprint: fp,
		Creator:     creator,
		Price:       price,
		ExpiresAt:   expiresAt,
	}
	if err := l.wdb.InsertItem(item); err != nil {
		log.Error("l.wdb.InsertItem(item)", "err", err, "fingerprint", fp)
		return schema.Item{}, err
	}

	l.emit(schema.EventItemCreated, schema.ItemCreatedPayload{
		Fingerprint: fp,
		Creator:     creator,
		Price:       price,
		ExpiresAt:   expiresAt,
	})
	return item, nil
}

func (l *Ledger) GetItem(fingerprint string) (schema.Item, error) {
	fp, ok := normFingerprint(fingerprint)
	if !ok {
		return schema.Item{}, ErrItemNotExist
	}
	item, err := l.wdb.GetItem(fp)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return schema.Item{}, ErrItemNotExist
	}
	return item, err
}

func (l *Ledger) ItemExists(fingerprint string) bool {
	fp, ok := normFingerprint(fingerprint)
	if !ok {
		return false
	}
	return l.wdb.ExistItem(fp)
}

// IsExpired reports false for nonexistent and never-expiring items.
func (l *Ledger) IsExpired(fingerprint string) bool {
	item, err := l.GetItem(fingerprint)
	if err != nil || item.ExpiresAt == 0 {
		return false
	}
	return l.now().Unix() >= item.ExpiresAt
}
