// internal/config/constants.go
package config

import "time"

// アプリケーション情報
const (
	AppName    = "WortschatzKeep"
	AppVersion = "1.2.0"
)

// デフォルト設定値
const (
	DefaultServerPort        = ":8080"
	DefaultLogLevel          = "info"
	DefaultStatsWindowDays   = 30
	DefaultTranslatorModel   = "llama-3.3-70b-versatile"
	DefaultTranslatorBaseURL = "https://api.groq.com/openai/v1"
	DefaultTranslatorTimeout = 30 * time.Second
)
