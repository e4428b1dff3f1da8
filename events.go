package sealpay

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/panjf2000/ants/v2"
	"github.com/sealpay/sealpay/rawdb"
	"github.com/sealpay/sealpay/schema"
)

// EventSink receives ledger events for external indexers and backends.
// Emission is a side channel: a sink failure never fails the operation that
// produced the event.
type EventSink interface {
	Emit(kind string, payload interface{})
	Close()
}

// JournalSink appends every event to the rawdb journal and, when a kafka
// writer is configured, publishes it through a worker pool so settlement
// never blocks on the broker.
type JournalSink struct {
	db   rawdb.KeyValueDB
	kw   *KWriter
	pool *ants.PoolWithFunc
}

func NewJournalSink(db rawdb.KeyValueDB, kw *KWriter) (*JournalSink, error) {
	j := &JournalSink{
		db: db,
		kw: kw,
	}
	if kw != nil {
		pool, err := ants.NewPoolWithFunc(10, func(i interface{}) {
			body, ok := i.([]byte)
			if !ok {
				return
			}
			if err := kw.Write(body); err != nil {
				log.Error("kw.Write(body)", "err", err)
			}
		})
		if err != nil {
			return nil, err
		}
		j.pool = pool
	}
	return j, nil
}

func (j *JournalSink) Emit(kind string, payload interface{}) {
	data, err := json.Marshal(payload)
	if err != nil {
		log.Error("json.Marshal(payload)", "err", err, "kind", kind)
		return
	}
	ev := schema.Event{
		ID:      uuid.NewString(),
		Kind:    kind,
		Nonce:   time.Now().UnixNano(),
		Payload: data,
	}
	body, err := json.Marshal(ev)
	if err != nil {
		log.Error("json.Marshal(ev)", "err", err, "kind", kind)
		return
	}

	// nonce-first keys keep the journal iterable in emission order
	key := fmt.Sprintf("%020d-%s", ev.Nonce, ev.ID)
	if err := j.db.Put(schema.EventJournalBucket, key, body); err != nil {
		log.Error("j.db.Put(schema.EventJournalBucket,key,body)", "err", err, "kind", kind)
	}

	if j.pool != nil {
		if err := j.pool.Invoke(body); err != nil {
			log.Error("j.pool.Invoke(body)", "err", err, "kind", kind)
		}
	}
}

func (j *JournalSink) Close() {
	if j.pool != nil {
		j.pool.Release()
	}
	if j.kw != nil {
		j.kw.Close()
	}
}
