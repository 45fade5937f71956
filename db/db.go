package db

import (
	"fmt"
	"math"
	"math/rand"
	"path"
	"strings"
	"time"

	"github.com/go-gorm/caches/v4"
	"github.com/redis/go-redis/v9"
	"go.morpionai.com/account/config"
	"go.morpionai.com/account/core"
	"go.morpionai.com/account/db/models"
	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func NewDatabase(cm config.Manager, rootLogger *core.Logger) (*gorm.DB, error) {
	dbType := cm.Config().Core.DB.Type
	var db *gorm.DB
	var err error

	switch dbType {
	case "mysql":
		db, err = openMySQLDatabase(cm, rootLogger)
	case "sqlite":
		var dbFile string

		if path.IsAbs(cm.Config().Core.DB.File) {
			dbFile = cm.Config().Core.DB.File
		} else {
			dbFile = path.Join(path.Dir(cm.ConfigFile()), cm.Config().Core.DB.File)
		}

		db, err = openSQLiteDatabase(dbFile, rootLogger)
	default:
		return nil, fmt.Errorf("unsupported database type: %s", dbType)
	}

	if err != nil {
		return nil, err
	}

	cacher := getCacher(cm, rootLogger)
	if cacher != nil {
		cache := &caches.Caches{Conf: &caches.Config{
			Cacher: cacher,
		}}
		if err := db.Use(cache); err != nil {
			return nil, err
		}
	}

	if err := db.AutoMigrate(models.GetModels()...); err != nil {
		return nil, err
	}

	return db, nil
}

func openMySQLDatabase(cfg config.Manager, rootLogger *core.Logger) (*gorm.DB, error) {
	username := cfg.Config().Core.DB.Username
	password := cfg.Config().Core.DB.Password
	host := cfg.Config().Core.DB.Host
	port := cfg.Config().Core.DB.Port
	dbname := cfg.Config().Core.DB.Name
	charset := cfg.Config().Core.DB.Charset

	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local", username, password, host, port, dbname, charset)

	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		Logger:         newLogger(rootLogger.Logger, rootLogger.Level()),
		TranslateError: true,
	})
}

func openSQLiteDatabase(file string, rootLogger *core.Logger) (*gorm.DB, error) {
	return gorm.Open(sqlite.Open(file), &gorm.Config{
		Logger:         newLogger(rootLogger.Logger, rootLogger.Level()),
		TranslateError: true,
	})
}

func getCacher(cm config.Manager, logger *core.Logger) caches.Cacher {
	cacheCfg := cm.Config().Core.DB.Cache
	if cacheCfg == nil {
		return nil
	}

	switch cacheCfg.Mode {
	case "", "none":
		return nil
	case "memory":
		return &memoryCacher{}
	case "redis":
		return &redisCacher{
			redis.NewClient(&redis.Options{
				Addr:     cacheCfg.Redis.Address,
				Password: cacheCfg.Redis.Password,
				DB:       cacheCfg.Redis.DB,
			}),
		}
	default:
		logger.Fatal("invalid cache mode", zap.String("mode", cacheCfg.Mode))
	}

	return nil
}

func RetryOnLock(db *gorm.DB, operation func(*gorm.DB) *gorm.DB) error {
	initialBackoff := 100 * time.Millisecond
	maxBackoff := 10 * time.Second
	attempt := 0

	for {
		result := operation(db)
		if result.Error == nil {
			return nil
		}

		if !isLockError(result.Error) {
			return result.Error
		}

		backoff := float64(initialBackoff) * math.Pow(2, float64(attempt))
		jitter := rand.Float64() * float64(initialBackoff)
		sleepDuration := time.Duration(math.Min(backoff+jitter, float64(maxBackoff)))
		time.Sleep(sleepDuration)
		attempt++
	}
}

// isLockError checks if the given error is a database lock error
func isLockError(err error) bool {
	errMsg := strings.ToLower(err.Error())
	return strings.Contains(errMsg, "deadlock") ||
		strings.Contains(errMsg, "lock wait timeout") ||
		strings.Contains(errMsg, "database is locked") ||
		strings.Contains(errMsg, "too many connections")
}
