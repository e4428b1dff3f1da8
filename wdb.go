package sealpay

import (
	"os"
	"path"

	"github.com/sealpay/sealpay/schema"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
)

const sqliteName = "sealpay.sqlite"

type Wdb struct {
	Db *gorm.DB
}

func NewMysqlDb(dsn string) *Wdb {
	logLevel := logger.Error
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:          logger.Default.LogMode(logLevel),
		CreateBatchSize: 200,
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect mysql db success")
	return &Wdb{Db: db}
}

func NewSqliteDb(dbDir string) *Wdb {
	if err := os.MkdirAll(dbDir, os.ModePerm); err != nil {
		panic(err)
	}
	db, err := gorm.Open(sqlite.Open(path.Join(dbDir, sqliteName)), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		panic(err)
	}
	log.Info("connect sqlite db success")
	return &Wdb{Db: db}
}

func (w *Wdb) Migrate() error {
	return w.Db.AutoMigrate(&schema.Item{}, &schema.Receipt{}, &schema.MarketConfig{}, &schema.SaleStatistic{})
}

func (w *Wdb) Close() {
	sql, err := w.Db.DB()
	if err == nil {
		sql.Close()
	}
}

func (w *Wdb) InsertItem(item schema.Item) error {
	return w.Db.Create(&item).Error
}

func (w *Wdb) GetItem(fingerprint string) (res schema.Item, err error) {
	err = w.Db.First(&res, "fingerprint = ?", fingerprint).Error
	return
}

func (w *Wdb) ExistItem(fingerprint string) bool {
	var count int64
	w.Db.Model(&schema.Item{}).Where("fingerprint = ?", fingerprint).Count(&count)
	return count > 0
}

func (w *Wdb) GetItemsByCreator(creator string) ([]schema.Item, error) {
	res := make([]schema.Item, 0, 10)
	err := w.Db.Where("creator = ?", creator).Find(&res).Error
	return res, err
}

func (w *Wdb) GetReceipt(fingerprint, buyer string) (res schema.Receipt, err error) {
	err = w.Db.First(&res, "fingerprint = ? and buyer = ?", fingerprint, buyer).Error
	return
}

func (w *Wdb) ExistReceipt(fingerprint, buyer string) bool {
	var count int64
	w.Db.Model(&schema.Receipt{}).Where("fingerprint = ? and buyer = ?", fingerprint, buyer).Count(&count)
	return count > 0
}

func (w *Wdb) GetReceiptsByBuyer(buyer string) ([]schema.Receipt, error) {
	res := make([]schema.Receipt, 0, 10)
	err := w.Db.Where("buyer = ?", buyer).Find(&res).Error
	return res, err
}

func (w *Wdb) GetConfig() (res schema.MarketConfig, err error) {
	err = w.Db.First(&res, "id = ?", 1).Error
	return
}

func (w *Wdb) SaveConfig(cfg schema.MarketConfig) error {
	cfg.ID = 1
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&cfg).Error
}

func (w *Wdb) GetStatistic() (res schema.SaleStatistic, err error) {
	err = w.Db.First(&res, "id = ?", 1).Error
	return
}

func (w *Wdb) SaveStatistic(st schema.SaleStatistic) error {
	st.ID = 1
	return w.Db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		UpdateAll: true,
	}).Create(&st).Error
}
