// Управление конфигурацией сервиса контента страниц из переменных окружения.
//
// Основные возможности:
//   - Загрузка конфигурации из переменных окружения с использованием тегов struct.
//   - Преобразование типов данных из переменных окружения (string, int, bool).
//   - Маскировка секретных значений (строка подключения к БД) в логах.
//   - Значения по умолчанию и ограничения для числовых параметров.
package config

import (
	"log/slog"
	"reflect"
	"strings"
)

const (
	DefaultHTTPAddr     = ":8080"
	DefaultMetricsAddr  = ":9090"
	DefaultSQLitePath   = "pagecontent.db"
	DefaultHistoryLimit = 100
	DefaultBodyLimit    = "2M"
	DefaultSessionIdle  = 30
)

type Config struct {
	// Пустая строка подключения - встроенная SQLite база SQLITE_PATH
	DatabaseDSN string `env:"DATABASE_URL"`
	SQLitePath  string `env:"SQLITE_PATH"`

	HTTPAddr    string `env:"HTTP_ADDR"`
	MetricsAddr string `env:"METRICS_ADDR"`
	BodyLimit   string `env:"BODY_LIMIT"`

	HistoryLimit int  `env:"HISTORY_LIMIT"`
	SessionIdle  int  `env:"SESSION_IDLE_MINUTES"`
	MinifyHTML   bool `env:"MINIFY_HTML"`
}

// ReadConfig загружает конфигурацию из переменных окружения и подставляет значения по умолчанию.
func ReadConfig() *Config {
	config := &Config{}

	envConfig("env", config)

	if config.SQLitePath == "" {
		config.SQLitePath = DefaultSQLitePath
	}
	if config.HTTPAddr == "" {
		config.HTTPAddr = DefaultHTTPAddr
	}
	if config.MetricsAddr == "" {
		config.MetricsAddr = DefaultMetricsAddr
	}
	if config.BodyLimit == "" {
		config.BodyLimit = DefaultBodyLimit
	}
	if config.HistoryLimit < 0 || config.HistoryLimit > 1000 {
		config.HistoryLimit = DefaultHistoryLimit
	}
	if !Exist("HISTORY_LIMIT") {
		config.HistoryLimit = DefaultHistoryLimit
	}
	if config.SessionIdle <= 0 {
		config.SessionIdle = DefaultSessionIdle
	}

	return config
}

// Присваивает полям в переданной структуре значения переменных. Название переменной для каждого поля лежит в теге этого поля.
func envConfig(key string, s any) {
	v := reflect.ValueOf(s).Elem()
	typeParam := v.Type()
	for i := 0; i < v.NumField(); i++ {
		fName := typeParam.Field(i).Name
		fEnvTag := typeParam.Field(i).Tag.Get(key)

		if !Exist(fEnvTag) {
			continue
		}

		logValue := GetEnv(fEnvTag)
		if logValue == "" {
			continue
		}

		// Secure credentials in log
		lower := strings.ToLower(fName)
		if strings.Contains(lower, "pass") || strings.Contains(lower, "secret") || strings.Contains(lower, "dsn") {
			logValue = maskValue(logValue)
		}
		slog.Info("Set config value",
			slog.String("key", typeParam.Name()+"."+fName),
			slog.String("value", logValue),
			slog.String("source", "ENVIRONMENT"),
		)

		switch v.Field(i).Interface().(type) {
		case string:
			v.Field(i).SetString(GetEnv(fEnvTag))
		case int:
			v.Field(i).SetInt(int64(GetIntEnv(fEnvTag)))
		case bool:
			v.Field(i).SetBool(GetBoolEnv(fEnvTag))
		}
	}
}

func maskValue(val string) string {
	runes := []rune(val)
	if len(runes) <= 2 {
		return strings.Repeat("*", len(runes))
	}
	return string(runes[0]) + strings.Repeat("*", len(runes)-2) + string(runes[len(runes)-1])
}
