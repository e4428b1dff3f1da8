package main

import (
	"log"
	"os"
	"os/signal"
	"syscall"

	"github.com/sealpay/sealpay"
	"github.com/sealpay/sealpay/common"
	"github.com/urfave/cli/v2"
)

func main() {
	app := &cli.App{
		Name: "sealpay",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "db_dir", Value: "./data/bolt", Usage: "bolt db dir path", EnvVars: []string{"DB_DIR"}},
			&cli.StringFlag{Name: "mysql", Value: "root@tcp(127.0.0.1:3306)/sealpay?charset=utf8mb4&parseTime=True&loc=Local", Usage: "mysql dsn", EnvVars: []string{"MYSQL"}},
			&cli.StringFlag{Name: "sqlite_dir", Value: "./data/sqlite", Usage: "sqlite db dir path", EnvVars: []string{"SQLITE_DIR"}},
			&cli.BoolFlag{Name: "use_sqlite", Value: false, Usage: "run with sqlite instead of mysql", EnvVars: []string{"USE_SQLITE"}},

			&cli.BoolFlag{Name: "use_s3", Value: false, Usage: "journal events to s3", EnvVars: []string{"USE_S3"}},
			&cli.StringFlag{Name: "s3_acc_key", Value: "", Usage: "s3 access key", EnvVars: []string{"S3_ACC_KEY"}},
			&cli.StringFlag{Name: "s3_secret_key", Value: "", Usage: "s3 secret key", EnvVars: []string{"S3_SECRET_KEY"}},
			&cli.StringFlag{Name: "s3_prefix", Value: "sealpay", Usage: "s3 bucket name prefix", EnvVars: []string{"S3_PREFIX"}},
			&cli.StringFlag{Name: "s3_region", Value: "ap-northeast-1", Usage: "s3 bucket region", EnvVars: []string{"S3_REGION"}},
			&cli.StringFlag{Name: "s3_endpoint", Value: "", Usage: "custom s3 endpoint", EnvVars: []string{"S3_ENDPOINT"}},

			&cli.BoolFlag{Name: "use_aliyun", Value: false, Usage: "journal events to aliyun oss", EnvVars: []string{"USE_ALIYUN"}},
			&cli.StringFlag{Name: "aliyun_endpoint", Value: "", EnvVars: []string{"ALIYUN_ENDPOINT"}},
			&cli.StringFlag{Name: "aliyun_acc_key", Value: "", EnvVars: []string{"ALIYUN_ACC_KEY"}},
			&cli.StringFlag{Name: "aliyun_secret_key", Value: "", EnvVars: []string{"ALIYUN_SECRET_KEY"}},
			&cli.StringFlag{Name: "aliyun_prefix", Value: "sealpay", EnvVars: []string{"ALIYUN_PREFIX"}},

			&cli.StringFlag{Name: "kafka_uri", Value: "", Usage: "publish events to kafka when set", EnvVars: []string{"KAFKA_URI"}},

			&cli.StringFlag{Name: "custody", Value: "0x0000000000000000000000000000000000c0ffee", Usage: "engine custody account", EnvVars: []string{"CUSTODY"}},
			&cli.StringFlag{Name: "operator", Value: "", Usage: "privileged operator account", EnvVars: []string{"OPERATOR"}},
			&cli.StringFlag{Name: "fee_recipient", Value: "", Usage: "platform fee recipient account", EnvVars: []string{"FEE_RECIPIENT"}},
			&cli.StringFlag{Name: "token", Value: "0x00000000000000000000000000000000005ea1ed", Usage: "payment token address", EnvVars: []string{"TOKEN"}},
			&cli.StringFlag{Name: "token_symbol", Value: "SEAL", EnvVars: []string{"TOKEN_SYMBOL"}},
			&cli.IntFlag{Name: "token_decimals", Value: 6, EnvVars: []string{"TOKEN_DECIMALS"}},
			&cli.Uint64Flag{Name: "fee_bps", Value: 1000, Usage: "platform fee in basis points, max 10000", EnvVars: []string{"FEE_BPS"}},
			&cli.BoolFlag{Name: "enable_stats", Value: true, Usage: "track aggregate sale statistics", EnvVars: []string{"ENABLE_STATS"}},

			&cli.StringFlag{Name: "port", Value: ":8080", EnvVars: []string{"PORT"}},
		},
		Action: run,
	}

	err := app.Run(os.Args)
	if err != nil {
		log.Fatal(err)
	}
}

func run(c *cli.Context) error {
	signals := make(chan os.Signal, 1)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)

	common.NewMetricServer()

	s := sealpay.New(
		c.String("db_dir"), c.String("mysql"), c.String("sqlite_dir"), c.Bool("use_sqlite"),
		c.Bool("use_s3"), c.String("s3_acc_key"), c.String("s3_secret_key"), c.String("s3_prefix"), c.String("s3_region"), c.String("s3_endpoint"),
		c.Bool("use_aliyun"), c.String("aliyun_endpoint"), c.String("aliyun_acc_key"), c.String("aliyun_secret_key"), c.String("aliyun_prefix"),
		c.String("kafka_uri"),
		c.String("custody"), c.String("operator"), c.String("fee_recipient"), c.String("token"), c.String("token_symbol"), c.Int("token_decimals"),
		c.Uint64("fee_bps"), c.Bool("enable_stats"),
	)
	s.Run(c.String("port"))

	<-signals
	s.Close()

	return nil
}
