package sealpay

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/go-co-op/gocron"
	"github.com/sealpay/sealpay/rawdb"
)

type SealPay struct {
	ledger *Ledger
	settle Settler
	stats  *Stats // nil when the statistics toggle is off
	cache  *Cache

	wdb   *Wdb
	store rawdb.KeyValueDB
	sink  *JournalSink

	engine    *gin.Engine
	scheduler *gocron.Scheduler
}

func New(
	boltDirPath, mySqlDsn, sqliteDir string, useSqlite bool,
	useS3 bool, s3AccKey, s3SecretKey, s3BucketPrefix, s3Region, s3Endpoint string,
	useAliyun bool, aliyunEndpoint, aliyunAccKey, aliyunSecretKey, aliyunPrefix string,
	kafkaUri string,
	custody, operator, feeRecipient, tokenAddr, tokenSymbol string, tokenDecimals int,
	feeBps uint64, enableStats bool,
) *SealPay {
	var err error
	var kvDb rawdb.KeyValueDB
	switch {
	case useS3:
		kvDb, err = rawdb.NewS3DB(s3AccKey, s3SecretKey, s3Region, s3BucketPrefix, s3Endpoint)
	case useAliyun:
		kvDb, err = rawdb.NewAliyunDB(aliyunEndpoint, aliyunAccKey, aliyunSecretKey, aliyunPrefix)
	default:
		kvDb, err = rawdb.NewBoltDB(boltDirPath)
	}
	if err != nil {
		panic(err)
	}

	wdb := &Wdb{}
	if useSqlite {
		wdb = NewSqliteDb(sqliteDir)
	} else {
		wdb = NewMysqlDb(mySqlDsn)
	}
	if err = wdb.Migrate(); err != nil {
		panic(err)
	}

	var kw *KWriter
	if kafkaUri != "" {
		kw, err = NewKWriter(EventTopic, kafkaUri)
		if err != nil {
			panic(err)
		}
	}
	sink, err := NewJournalSink(kvDb, kw)
	if err != nil {
		panic(err)
	}

	ledger, err := NewLedger(wdb, custody, sink)
	if err != nil {
		panic(err)
	}
	devToken, err := NewDevToken(tokenAddr, tokenSymbol, tokenDecimals)
	if err != nil {
		panic(err)
	}
	ledger.RegisterToken(devToken)
	if err = ledger.InitConfig(operator, feeRecipient, tokenAddr, feeBps); err != nil {
		panic(err)
	}

	cache, err := NewCache(10 * time.Minute)
	if err != nil {
		panic(err)
	}

	var settle Settler = ledger
	var stats *Stats
	if enableStats {
		stats, err = NewStats(ledger, wdb)
		if err != nil {
			panic(err)
		}
		settle = stats
	}

	return &SealPay{
		ledger:    ledger,
		settle:    settle,
		stats:     stats,
		cache:     cache,
		wdb:       wdb,
		store:     kvDb,
		sink:      sink,
		engine:    gin.Default(),
		scheduler: gocron.NewScheduler(time.UTC),
	}
}

func (s *SealPay) Ledger() *Ledger {
	return s.ledger
}

func (s *SealPay) Run(port string) {
	go s.runAPI(port)
	s.runJobs()
}

func (s *SealPay) Close() {
	s.scheduler.Stop()
	if s.stats != nil {
		if err := s.stats.Flush(); err != nil {
			log.Error("s.stats.Flush()", "err", err)
		}
	}
	s.sink.Close()
	if err := s.store.Close(); err != nil {
		log.Error("s.store.Close()", "err", err)
	}
	s.wdb.Close()
}
