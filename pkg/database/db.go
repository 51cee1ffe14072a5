package database

import (
	"Storefront/config"
	"Storefront/pkg/log"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// NewDB 初始化数据库连接, driver 由配置决定 (mysql / postgres)
func NewDB(conf *config.Config) *gorm.DB {
	var dialector gorm.Dialector
	switch conf.Database.Driver {
	case config.DriverPostgres:
		dialector = postgres.Open(conf.Database.Dsn())
	default:
		dialector = mysql.Open(conf.Database.Dsn())
	}

	gormConf := &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	}
	if !conf.Database.LogSQL {
		gormConf.Logger = logger.Default.LogMode(logger.Silent)
	}

	db, err := gorm.Open(dialector, gormConf)
	if err != nil {
		log.L.Fatal("failed to connect database", zap.String("driver", conf.Database.Driver), zap.Error(err))
	}

	sqlDB, err := db.DB()
	if err == nil {
		if conf.Database.MaxIdle > 0 {
			sqlDB.SetMaxIdleConns(conf.Database.MaxIdle)
		}
		if conf.Database.MaxOpen > 0 {
			sqlDB.SetMaxOpenConns(conf.Database.MaxOpen)
		}
		sqlDB.SetConnMaxLifetime(time.Hour)
	}
	log.L.Info("connect database success", zap.String("driver", conf.Database.Driver))
	return db
}
