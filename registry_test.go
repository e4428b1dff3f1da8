package sealpay

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testOperator     = "0x00000000000000000000000000000000000000a1"
	testFeeRecipient = "0x00000000000000000000000000000000000000b2"
	testCustody      = "0x00000000000000000000000000000000000000c3"
	testToken        = "0x00000000000000000000000000000000000000d4"
	testCreator      = "0x00000000000000000000000000000000000000e5"
	testBuyer        = "0x00000000000000000000000000000000000000f6"
	testBuyer2       = "0x0000000000000000000000000000000000000107"

	testFeeBps = uint64(1000) // 10%
)

var (
	fpAlpha = strings.Repeat("ab", 32)
	fpBeta  = strings.Repeat("cd", 32)
)

func newTestLedger(t *testing.T) (*Ledger, *DevToken) {
	t.Helper()
	wdb := NewSqliteDb(t.TempDir())
	require.NoError(t, wdb.Migrate())

	ledger, err := NewLedger(wdb, testCustody, nil)
	require.NoError(t, err)

	tok, err := NewDevToken(testToken, "SEAL", 6)
	require.NoError(t, err)
	ledger.RegisterToken(tok)

	require.NoError(t, ledger.InitConfig(testOperator, testFeeRecipient, testToken, testFeeBps))
	return ledger, tok
}

func freezeClock(l *Ledger, unix int64) {
	l.now = func() time.Time { return time.Unix(unix, 0) }
}

func TestCreateItem(t *testing.T) {
	ledger, _ := newTestLedger(t)

	item, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	assert.NoError(t, err)
	assert.Equal(t, fpAlpha, item.Fingerprint)
	assert.Equal(t, testCreator, item.Creator)
	assert.Equal(t, uint64(100), item.Price)
	assert.Equal(t, int64(0), item.ExpiresAt)

	got, err := ledger.GetItem(fpAlpha)
	assert.NoError(t, err)
	assert.Equal(t, item.Creator, got.Creator)
	assert.True(t, ledger.ItemExists(fpAlpha))
}

func TestCreateItemDuplicate(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	// differing args never override an existing registration
	_, err = ledger.CreateItem(testBuyer, fpAlpha, 999, time.Now().Unix()+3600)
	assert.ErrorIs(t, err, ErrItemExist)

	got, err := ledger.GetItem(fpAlpha)
	assert.NoError(t, err)
	assert.Equal(t, testCreator, got.Creator)
	assert.Equal(t, uint64(100), got.Price)
}

func TestCreateItemInvalidPrice(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 0, 0)
	assert.ErrorIs(t, err, ErrInvalidPrice)
	assert.False(t, ledger.ItemExists(fpAlpha))
}

func TestCreateItemInvalidExpiration(t *testing.T) {
	ledger, _ := newTestLedger(t)
	freezeClock(ledger, 1000)

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 999)
	assert.ErrorIs(t, err, ErrInvalidExpiration)

	// expiration equal to current time is not in the future
	_, err = ledger.CreateItem(testCreator, fpAlpha, 100, 1000)
	assert.ErrorIs(t, err, ErrInvalidExpiration)

	_, err = ledger.CreateItem(testCreator, fpAlpha, 100, 1001)
	assert.NoError(t, err)
}

func TestCreateItemInvalidInputs(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.CreateItem("not-an-address", fpAlpha, 100, 0)
	assert.ErrorIs(t, err, ErrInvalidAddress)

	_, err = ledger.CreateItem(testCreator, "deadbeef", 100, 0)
	assert.ErrorIs(t, err, ErrInvalidFingerprint)
}

func TestGetItemNotExist(t *testing.T) {
	ledger, _ := newTestLedger(t)

	_, err := ledger.GetItem(fpBeta)
	assert.ErrorIs(t, err, ErrItemNotExist)
	assert.False(t, ledger.ItemExists(fpBeta))
}

func TestIsExpired(t *testing.T) {
	ledger, _ := newTestLedger(t)
	freezeClock(ledger, 1000)

	// nonexistent items are never expired
	assert.False(t, ledger.IsExpired(fpBeta))

	_, err := ledger.CreateItem(testCreator, fpAlpha, 100, 2000)
	require.NoError(t, err)
	_, err = ledger.CreateItem(testCreator, fpBeta, 100, 0)
	require.NoError(t, err)

	assert.False(t, ledger.IsExpired(fpAlpha))

	freezeClock(ledger, 1999)
	assert.False(t, ledger.IsExpired(fpAlpha))

	freezeClock(ledger, 2000)
	assert.True(t, ledger.IsExpired(fpAlpha))
	// never-expiring item stays live
	assert.False(t, ledger.IsExpired(fpBeta))
}

func TestNormFingerprint(t *testing.T) {
	fp, ok := normFingerprint("0x" + strings.ToUpper(fpAlpha))
	assert.True(t, ok)
	assert.Equal(t, fpAlpha, fp)

	_, ok = normFingerprint("abc")
	assert.False(t, ok)
	_, ok = normFingerprint(strings.Repeat("zz", 32))
	assert.False(t, ok)
}
