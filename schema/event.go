package schema

import (
	"encoding/json"
)

const (
	EventItemCreated          = "item-created"
	EventItemPurchased        = "item-purchased"
	EventFeeBpsChanged        = "fee-bps-changed"
	EventPaymentTokenChanged  = "payment-token-changed"
	EventFeeRecipientChanged  = "fee-recipient-changed"
	EventOwnershipTransferred = "ownership-transferred"
)

type Event struct {
	ID      string          `json:"id"`
	Kind    string          `json:"kind"`
	Nonce   int64           `json:"nonce"` // ns
	Payload json.RawMessage `json:"payload"`
}

type ItemCreatedPayload struct {
	Fingerprint string `json:"fingerprint"`
	Creator     string `json:"creator"`
	Price       uint64 `json:"price"`
	ExpiresAt   int64  `json:"expiresAt"`
}

type ItemPurchasedPayload struct {
	Fingerprint string `json:"fingerprint"`
	Buyer       string `json:"buyer"`
	Price       uint64 `json:"price"`
	PurchasedAt int64  `json:"purchasedAt"`
}

type AddressChangedPayload struct {
	Old string `json:"old"`
	New string `json:"new"`
}

type FeeBpsChangedPayload struct {
	Old uint64 `json:"old"`
	New uint64 `json:"new"`
}
