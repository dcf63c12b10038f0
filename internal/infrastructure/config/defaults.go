package config

import "time"

const (
	DefaultAPIBase          = "https://www.alphavantage.co"
	DefaultOutputFile       = "data/stocks.json"
	DefaultRequestTimeout   = 30 * time.Second
	DefaultHistoryOutput    = "compact"
	DefaultDemoHistoryDays  = 100
	DefaultRedisSnapshotKey = "stocks:snapshot"
	DefaultKafkaTopic       = "stock_quotes"
	DefaultExportDir        = "data/history"
	DefaultPGMaxConns       = 2
	DefaultPGMinConns       = 0
)
