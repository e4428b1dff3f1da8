package sealpay

import (
	"encoding/json"
	"testing"

	"github.com/sealpay/sealpay/rawdb"
	"github.com/sealpay/sealpay/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestJournalSinkEmit(t *testing.T) {
	db, err := rawdb.NewBoltDB(t.TempDir())
	require.NoError(t, err)
	defer db.Close()

	sink, err := NewJournalSink(db, nil)
	require.NoError(t, err)
	defer sink.Close()

	sink.Emit(schema.EventItemCreated, schema.ItemCreatedPayload{
		Fingerprint: fpAlpha,
		Creator:     testCreator,
		Price:       100,
	})
	sink.Emit(schema.EventFeeBpsChanged, schema.FeeBpsChangedPayload{Old: 1000, New: 2000})

	keys, err := db.GetAllKey(schema.EventJournalBucket)
	require.NoError(t, err)
	require.Len(t, keys, 2)

	// bolt iterates keys in byte order, which matches emission order here
	body, err := db.Get(schema.EventJournalBucket, keys[0])
	require.NoError(t, err)
	ev := schema.Event{}
	require.NoError(t, json.Unmarshal(body, &ev))
	assert.Equal(t, schema.EventItemCreated, ev.Kind)
	assert.NotEmpty(t, ev.ID)
	assert.Greater(t, ev.Nonce, int64(0))

	payload := schema.ItemCreatedPayload{}
	require.NoError(t, json.Unmarshal(ev.Payload, &payload))
	assert.Equal(t, fpAlpha, payload.Fingerprint)
	assert.Equal(t, uint64(100), payload.Price)
}

func TestLedgerEmitsEvents(t *testing.T) {
	db, err := rawdb.NewBoltDB(t.TempDir())
	require.NoError(t, err)
	defer db.Close()
	sink, err := NewJournalSink(db, nil)
	require.NoError(t, err)
	defer sink.Close()

	ledger, tok := newTestLedger(t)
	ledger.sink = sink

	_, err = ledger.CreateItem(testCreator, fpAlpha, 100, 0)
	require.NoError(t, err)

	tok.Mint(testBuyer, 100)
	tok.Approve(testBuyer, testCustody, 100)
	_, err = ledger.Purchase(testBuyer, fpAlpha)
	require.NoError(t, err)

	require.NoError(t, ledger.SetFeeBasisPoints(testOperator, 500))

	keys, err := db.GetAllKey(schema.EventJournalBucket)
	require.NoError(t, err)
	require.Len(t, keys, 3)

	kinds := make([]string, 0, len(keys))
	for _, key := range keys {
		body, err := db.Get(schema.EventJournalBucket, key)
		require.NoError(t, err)
		ev := schema.Event{}
		require.NoError(t, json.Unmarshal(body, &ev))
		kinds = append(kinds, ev.Kind)
	}
	assert.ElementsMatch(t, []string{schema.EventItemCreated, schema.EventItemPurchased, schema.EventFeeBpsChanged}, kinds)
}
