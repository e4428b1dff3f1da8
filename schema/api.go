package schema

type RespErr struct {
	Err string `json:"error"`
}

func (r RespErr) Error() string {
	return r.Err
}

type CreateItemReq struct {
	Caller      string `json:"caller"`
	Fingerprint string `json:"fingerprint"`
	Price       uint64 `json:"price"`
	ExpiresAt   int64  `json:"expiresAt"`
}

type PurchaseReq struct {
	Caller      string `json:"caller"`
	Fingerprint string `json:"fingerprint"`
}

type SetAddressReq struct {
	Caller  string `json:"caller"`
	Address string `json:"address"`
}

type SetFeeBpsReq struct {
	Caller string `json:"caller"`
	FeeBps uint64 `json:"feeBps"`
}

type RespItem struct {
	Item
	DisplayPrice string `json:"displayPrice,omitempty"` // price scaled by token decimals
	Expired      bool   `json:"expired"`
}

type RespStats struct {
	TotalSales  int64  `json:"totalSales"`
	TotalVolume uint64 `json:"totalVolume"`
}
