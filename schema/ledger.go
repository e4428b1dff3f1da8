package schema

import (
	"time"
)

const (
	// fee percentage is expressed in basis points, 10000 bp = 100%
	MaxFeeBps = uint64(10000)

	ZeroAddress = "0x0000000000000000000000000000000000000000"
)

type Item struct {
	Fingerprint string `gorm:"primarykey;size:66" json:"fingerprint"` // hex sha256 of the sealed content
	Creator     string `gorm:"index:idx_creator" json:"creator"`
	Price       uint64 `json:"price"`     // smallest token unit
	ExpiresAt   int64  `json:"expiresAt"` // unix s; 0 means never expires

	CreatedAt time.Time `json:"createdAt"`
}

type Receipt struct {
	ID          uint   `gorm:"primarykey" json:"-"`
	Fingerprint string `gorm:"uniqueIndex:idx_fp_buyer;size:66" json:"fingerprint"`
	Buyer       string `gorm:"uniqueIndex:idx_fp_buyer" json:"buyer"`

	PricePaid   uint64 `json:"pricePaid"`   // captured at purchase time
	PurchasedAt int64  `json:"purchasedAt"` // unix s; 0 means not purchased
}

// Purchased reports whether the receipt records a completed purchase.
// A receipt's presence and its purchased status are the same fact.
func (r Receipt) Purchased() bool {
	return r.PurchasedAt > 0
}

type MarketConfig struct {
	ID           uint   `gorm:"primarykey" json:"-"`
	PaymentToken string `json:"paymentToken"`
	FeeRecipient string `json:"feeRecipient"`
	FeeBps       uint64 `json:"feeBps"`
	Operator     string `json:"operator"`

	UpdatedAt time.Time `json:"updatedAt"`
}

type SaleStatistic struct {
	ID          uint `gorm:"primarykey"`
	TotalSales  int64
	TotalVolume uint64
	UpdatedAt   time.Time
}
