package sealpay

import (
	"errors"
	"sync"

	"github.com/sealpay/sealpay/schema"
	"gorm.io/gorm"
)

// Settler is the purchase entry point the API layer calls through. The
// statistics extension decorates it; both the bare ledger and the decorated
// form satisfy it.
type Settler interface {
	Purchase(buyer, fingerprint string) (schema.Receipt, error)
}

// Stats wraps the base settlement engine and accumulates aggregate sale
// counters on every successful call-through. Counters are snapshotted to
// the db by a scheduler job and restored on boot.
type Stats struct {
	base *Ledger
	wdb  *Wdb

	lock        sync.RWMutex
	totalSales  int64
	totalVolume uint64
}

func NewStats(base *Ledger, wdb *Wdb) (*Stats, error) {
	s := &Stats{
		base: base,
		wdb:  wdb,
	}
	st, err := wdb.GetStatistic()
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	s.totalSales = st.TotalSales
	s.totalVolume = st.TotalVolume
	return s, nil
}

func (s *Stats) Purchase(buyer, fingerprint string) (schema.Receipt, error) {
	receipt, err := s.base.Purchase(buyer, fingerprint)
	if err != nil {
		return receipt, err
	}

	s.lock.Lock()
	s.totalSales += 1
	s.totalVolume += receipt.PricePaid
	s.lock.Unlock()
	return receipt, nil
}

func (s *Stats) Summary() schema.RespStats {
	s.lock.RLock()
	defer s.lock.RUnlock()
	return schema.RespStats{
		TotalSales:  s.totalSales,
		TotalVolume: s.totalVolume,
	}
}

func (s *Stats) Flush() error {
	summary := s.Summary()
	return s.wdb.SaveStatistic(schema.SaleStatistic{
		TotalSales:  summary.TotalSales,
		TotalVolume: summary.TotalVolume,
	})
}
