// Основной пакет сервиса контента страниц. Отвечает за чтение конфигурации, подключение к базе данных,
// миграцию моделей и запуск HTTP сервера.
package main

import (
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/aisa-it/shopadmin/internal/pagecontent"
	"github.com/aisa-it/shopadmin/internal/pagecontent/config"
	"github.com/aisa-it/shopadmin/internal/pagecontent/dao"
	"github.com/aisa-it/shopadmin/internal/pagecontent/gormlogger"
	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	gormLog "gorm.io/gorm/logger"
)

var version string = "DEV"

// Пример запуска: go run main.go --noMigration --trace
func main() {
	noTranslateFlag := flag.Bool("noTranslate", false, "Turn off DB errors translate")
	paramQueries := flag.Bool("paramQueries", true, "Mask queries params in log")
	noMigration := flag.Bool("noMigration", false, "Turn off DB migration")
	trace := flag.Bool("trace", false, "Verbose logs and sql trace")
	flag.Parse()

	PrintBanner()

	cfg := config.ReadConfig()

	if *trace {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	// Set prod log format
	if version != "DEV" {
		slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{})))
	}

	slog.Info("Page content service start.")

	var gl gormLog.Interface = gormlogger.NewGormLogger(slog.Default(), time.Second*4, *paramQueries)
	if *trace {
		gl = gl.LogMode(gormLog.Info)
	}

	db, err := openDB(cfg, &gorm.Config{
		TranslateError: !*noTranslateFlag,
		Logger:         gl,
	})
	if err != nil {
		slog.Error("Fail init DB connection", "err", err)
		os.Exit(1)
	}

	if !*noMigration {
		slog.Info("Migrate models")
		if err := dao.Migrate(db); err != nil {
			slog.Error("Fail migrate models", "err", err)
			os.Exit(1)
		}
	}

	if err := pagecontent.Server(db, cfg, version); err != nil {
		slog.Error("Server stopped with error", "err", err)
		os.Exit(1)
	}
}

// openDB подключается к PostgreSQL по DATABASE_URL или открывает встроенную SQLite базу.
func openDB(cfg *config.Config, gormCfg *gorm.Config) (*gorm.DB, error) {
	if cfg.DatabaseDSN == "" {
		slog.Info("DATABASE_URL is empty, using embedded SQLite", "path", cfg.SQLitePath)
		return gorm.Open(sqlite.Open(cfg.SQLitePath), gormCfg)
	}

	db, err := gorm.Open(postgres.New(postgres.Config{
		DSN: cfg.DatabaseDSN,
	}), gormCfg)
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetMaxIdleConns(10)
	sqlDB.SetConnMaxLifetime(time.Hour)
	sqlDB.SetConnMaxIdleTime(time.Minute * 15)
	return db, nil
}

func PrintBanner() {
	banner := `
 ___                  ___          _             _
| _ \__ _ __ _ ___   / __|___ _ _ | |_ ___ _ _  | |_
|  _/ _' / _' / -_) | (__/ _ \ ' \|  _/ -_) ' \ |  _|
|_| \__,_\__, \___|  \___\___/_||_|\__\___|_||_| \__| %s
         |___/
Shop page content editor service
----------------------------------------------------
`
	colorReset := "\033[0m"
	colorYellow := "\033[33m"

	formattedVersion := version
	if version == "DEV" {
		formattedVersion = colorYellow + version + colorReset
	}

	fmt.Printf(banner, formattedVersion)
}
