package rawdb

import (
	"github.com/inconshreveable/log15"
)

var log = log15.New("module", "sealpay/rawdb")

type KeyValueDB interface {
	Put(bucket, key string, value []byte) (err error)

	Get(bucket, key string) (data []byte, err error)

	GetAllKey(bucket string) (keys []string, err error)

	Delete(bucket, key string) (err error)

	Exist(bucket, key string) bool

	Close() (err error)

	Type() string
}
