package sealpay

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitFee(t *testing.T) {
	cases := []struct {
		price     uint64
		feeBps    uint64
		wantFee   uint64
		wantShare uint64
	}{
		{100, 1000, 10, 90},
		{1, 1000, 0, 1}, // floor division at minimal denomination
		{100, 0, 0, 100},
		{100, 10000, 100, 0},
		{999, 2500, 249, 750},
		{3, 3333, 0, 3},
	}
	for _, c := range cases {
		fee, share := splitFee(c.price, c.feeBps)
		assert.Equal(t, c.wantFee, fee, "price=%d bps=%d", c.price, c.feeBps)
		assert.Equal(t, c.wantShare, share, "price=%d bps=%d", c.price, c.feeBps)
		assert.Equal(t, c.price, fee+share, "shares must sum to price")
	}
}

func TestPurchase(t *testing.T) {
	ledger, tok := newTestLedger(t)
	freezeClock(ledger, 5000)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	tok.Mint(testBuyer, 100)
	tok.Approve(testBuyer, testCustody, 100)

	receipt, err := ledger.Purchase(testBuyer, fpAlpha)
	require.NoError(t, err)
	assert.Equal(t, uint64(100), receipt.PricePaid)
	assert.Equal(t, int64(5000), receipt.PurchasedAt)

	// 10% fee: creator +90, recipient +10, buyer -100, nothing in custody
	assert.Equal(t, uint64(0), tok.BalanceOf(testBuyer))
	assert.Equal(t, uint64(90), tok.BalanceOf(testCreator))
	assert.Equal(t, uint64(10), tok.BalanceOf(testFeeRecipient))
	assert.Equal(t, uint64(0), tok.BalanceOf(testCustody))

	assert.True(t, ledger.HasPurchased(fpAlpha, testBuyer))
	details := ledger.GetPurchaseDetails(fpAlpha, testBuyer)
	assert.Equal(t, uint64(100), details.PricePaid)
	assert.Equal(t, int64(5000), details.PurchasedAt)
}

func TestPurchaseNotFound(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.Purchase(testBuyer, fpBeta)
	assert.ErrorIs(t, err, ErrItemNotExist)
}

func TestPurchaseSelf(t *testing.T) {
	ledger, tok := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	tok.Mint(testCreator, 100)
	tok.Approve(testCreator, testCustody, 100)

	_, err = ledger.Purchase(testCreator, fpAlpha)
	assert.ErrorIs(t, err, ErrSelfPurchase)
	assert.Equal(t, uint64(100), tok.BalanceOf(testCreator))
}

func TestPurchaseTwice(t *testing.T) {
	ledger, tok := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	tok.Mint(testBuyer, 500)
	tok.Approve(testBuyer, testCustody, 500)

	_, err = ledger.Purchase(testBuyer, fpAlpha)
	require.NoError(t, err)

	_, err = ledger.Purchase(testBuyer, fpAlpha)
	assert.ErrorIs(t, err, ErrAlreadyPurchased)
	// funds moved exactly once
	assert.Equal(t, uint64(400), tok.BalanceOf(testBuyer))
}

func TestPurchaseExpiry(t *testing.T) {
	ledger, tok := newTestLedger(t)
	freezeClock(ledger, 1000)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 2000)
	require.NoError(t, err)

	tok.Mint(testBuyer, 100)
	tok.Mint(testBuyer2, 100)
	tok.Approve(testBuyer, testCustody, 100)
	tok.Approve(testBuyer2, testCustody, 100)

	// one tick before expiration still settles
	freezeClock(ledger, 1999)
	_, err = ledger.Purchase(testBuyer, fpAlpha)
	assert.NoError(t, err)

	// at expiration the item is gone
	freezeClock(ledger, 2000)
	_, err = ledger.Purchase(testBuyer2, fpAlpha)
	assert.ErrorIs(t, err, ErrItemExpired)
	assert.Equal(t, uint64(100), tok.BalanceOf(testBuyer2))
	assert.False(t, ledger.HasPurchased(fpAlpha, testBuyer2))
}

func TestPurchaseTransferFailed(t *testing.T) {
	ledger, tok := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	// funds but no allowance: the pull leg fails and nothing changes
	tok.Mint(testBuyer, 100)
	_, err = ledger.Purchase(testBuyer, fpAlpha)
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.Equal(t, uint64(100), tok.BalanceOf(testBuyer))
	assert.Equal(t, uint64(0), tok.BalanceOf(testCreator))
	assert.False(t, ledger.HasPurchased(fpAlpha, testBuyer))

	// the caller is free to resubmit once the allowance is granted
	tok.Approve(testBuyer, testCustody, 100)
	_, err = ledger.Purchase(testBuyer, fpAlpha)
	assert.NoError(t, err)
	assert.True(t, ledger.HasPurchased(fpAlpha, testBuyer))
}

func TestPurchaseUnregisteredToken(t *testing.T) {
	ledger, tok := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	// operator points the config at a token the engine has no client for
	other := "0x0000000000000000000000000000000000000d05"
	require.NoError(t, ledger.SetPaymentToken(testOperator, other))

	tok.Mint(testBuyer, 100)
	tok.Approve(testBuyer, testCustody, 100)
	_, err = ledger.Purchase(testBuyer, fpAlpha)
	assert.ErrorIs(t, err, ErrTransferFailed)
	assert.Equal(t, uint64(100), tok.BalanceOf(testBuyer))
}

func TestPurchaseMinimalDenomination(t *testing.T) {
	ledger, tok := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 1, 0)
	require.NoError(t, err)

	tok.Mint(testBuyer, 1)
	tok.Approve(testBuyer, testCustody, 1)

	_, err = ledger.Purchase(testBuyer, fpAlpha)
	require.NoError(t, err)

	// floor(1*1000/10000) = 0 fee, the creator absorbs the full unit
	assert.Equal(t, uint64(1), tok.BalanceOf(testCreator))
	assert.Equal(t, uint64(0), tok.BalanceOf(testFeeRecipient))
}

func TestPurchaseTwoBuyers(t *testing.T) {
	ledger, tok := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	tok.Mint(testBuyer, 100)
	tok.Mint(testBuyer2, 100)
	tok.Approve(testBuyer, testCustody, 100)
	tok.Approve(testBuyer2, testCustody, 100)

	freezeClock(ledger, 7000)
	first, err := ledger.Purchase(testBuyer, fpAlpha)
	require.NoError(t, err)

	freezeClock(ledger, 8000)
	second, err := ledger.Purchase(testBuyer2, fpAlpha)
	require.NoError(t, err)

	assert.Equal(t, int64(7000), first.PurchasedAt)
	assert.Equal(t, int64(8000), second.PurchasedAt)
	assert.True(t, ledger.HasPurchased(fpAlpha, testBuyer))
	assert.True(t, ledger.HasPurchased(fpAlpha, testBuyer2))
	assert.Equal(t, uint64(180), tok.BalanceOf(testCreator))
	assert.Equal(t, uint64(20), tok.BalanceOf(testFeeRecipient))
}

func TestPurchaseCapturesPriceAtPurchaseTime(t *testing.T) {
	ledger, tok := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	tok.Mint(testBuyer, 100)
	tok.Approve(testBuyer, testCustody, 100)
	receipt, err := ledger.Purchase(testBuyer, fpAlpha)
	require.NoError(t, err)

	// later fee changes never rewrite an existing receipt
	require.NoError(t, ledger.SetFeeBasisPoints(testOperator, 5000))
	details := ledger.GetPurchaseDetails(fpAlpha, testBuyer)
	assert.Equal(t, receipt.PricePaid, details.PricePaid)
	assert.Equal(t, receipt.PurchasedAt, details.PurchasedAt)
}

func TestGetPurchaseDetailsZeroValued(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	details := ledger.GetPurchaseDetails(fpAlpha, testBuyer)
	assert.Equal(t, int64(0), details.PurchasedAt)
	assert.Equal(t, uint64(0), details.PricePaid)
	assert.False(t, details.Purchased())
	assert.False(t, ledger.HasPurchased(fpAlpha, testBuyer))
}
