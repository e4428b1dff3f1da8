package sealpay

import (
	"strings"

	ethcommon "github.com/ethereum/go-ethereum/common"
)

// normAddress returns the lowercased form of a hex account address.
// The zero address is treated as the null identity and rejected.
func normAddress(addr string) (string, bool) {
	if !ethcommon.IsHexAddress(addr) {
		return "", false
	}
	if ethcommon.HexToAddress(addr) == (ethcommon.Address{}) {
		return "", false
	}
	return strings.ToLower(ethcommon.HexToAddress(addr).Hex()), true
}

func sameAddress(a, b string) bool {
	return ethcommon.HexToAddress(a) == ethcommon.HexToAddress(b)
}
