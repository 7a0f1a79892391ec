package database

import (
	"errors"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"go.uber.org/zap"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"

	"youwatch-api/internal/domain"
)

type Opts struct {
	Driver             string
	DSN                string
	Username           string
	Password           string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	LogLevel           string
}

var ErrUnsupportedDriver = errors.New("unsupported db driver")

func NewGorm(o Opts, l *zap.Logger) (*gorm.DB, error) {
	if l == nil {
		l = zap.NewNop()
	}
	var dial gorm.Dialector
	switch o.Driver {
	case "sqlite":
		dial = sqlite.Open(sqliteDSN(o.DSN))
	case "postgres":
		dial = postgres.Open(o.DSN)
	case "mysql":
		dsn := normalizeMySQLDSN(o.DSN, o.Username, o.Password)
		l.Debug("mysql dsn normalized", zap.String("dsn", maskDSN(dsn)))
		dial = mysql.Open(dsn)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedDriver, o.Driver)
	}

	db, err := gorm.Open(dial, &gorm.Config{
		Logger: logger.New(zapWriter{l}, logger.Config{
			SlowThreshold:             200 * time.Millisecond,
			LogLevel:                  gormLevel(o.LogLevel),
			IgnoreRecordNotFoundError: true,
		}),
		TranslateError: true,
	})
	if err != nil {
		return nil, err
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, err
	}
	if o.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(o.MaxOpenConns)
	}
	if o.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(o.MaxIdleConns)
	}
	sqlDB.SetConnMaxLifetime(time.Duration(o.ConnMaxLifetimeMin) * time.Minute)

	if o.Driver == "sqlite" {
		if err := db.Exec("PRAGMA foreign_keys = ON").Error; err != nil {
			return nil, err
		}
	}
	db = db.Session(&gorm.Session{
		PrepareStmt:            true, // 预编译缓存
		SkipDefaultTransaction: true, // 只在需要时手动开 Tx
	})
	return db, nil
}

// Migrate 建表（含外键与复合主键）
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(domain.All()...)
}

func gormLevel(s string) logger.LogLevel {
	switch s {
	case "silent":
		return logger.Silent
	case "error":
		return logger.Error
	case "info":
		return logger.Info
	}
	return logger.Warn
}

// zapWriter 让 gorm 日志走 zap
type zapWriter struct{ l *zap.Logger }

func (w zapWriter) Printf(format string, args ...interface{}) {
	w.l.Debug(fmt.Sprintf(format, args...), zap.String("component", "gorm"))
}

// sqliteDSN 确保每个连接都开启外键约束
func sqliteDSN(dsn string) string {
	if dsn == "" {
		dsn = "file::memory:"
	}
	if strings.Contains(dsn, "foreign_keys") {
		return dsn
	}
	sep := "?"
	if strings.Contains(dsn, "?") {
		sep = "&"
	}
	return dsn + sep + "_pragma=foreign_keys(1)"
}

func maskDSN(dsn string) string {
	at := strings.Index(dsn, "@")
	if at <= 0 {
		return dsn
	}
	if colon := strings.Index(dsn[:at], ":"); colon > 0 {
		return dsn[:colon+1] + "****" + dsn[at:]
	}
	return dsn
}

// JDBC 参数 -> go-sql-driver 参数；空值表示直接丢弃
var jdbcParams = map[string]string{
	"characterEncoding":    "charset",
	"serverTimezone":       "loc",
	"useUnicode":           "",
	"zeroDateTimeBehavior": "",
}

// normalizeMySQLDSN 接受 go-sql-driver DSN 原样返回；
// mysql:// 或 jdbc:mysql:// URL 则改写为 user:pass@tcp(host)/db?...
func normalizeMySQLDSN(input, userOverride, passOverride string) string {
	in := strings.TrimPrefix(strings.TrimSpace(input), "jdbc:")
	if !strings.HasPrefix(in, "mysql://") {
		return in
	}
	u, err := url.Parse(in)
	if err != nil {
		return in // 交给驱动报错
	}

	q := u.Query()
	var user, pass string
	if u.User != nil {
		user = u.User.Username()
		pass, _ = u.User.Password()
	}
	for key, dst := range map[string]*string{"user": &user, "password": &pass} {
		if v := q.Get(key); v != "" {
			*dst = v
		}
		q.Del(key)
	}
	if userOverride != "" {
		user = userOverride
	}
	if passOverride != "" {
		pass = passOverride
	}

	for from, to := range jdbcParams {
		v := q.Get(from)
		q.Del(from)
		if v != "" && to != "" && q.Get(to) == "" {
			q.Set(to, v)
		}
	}
	if v := strings.ToLower(q.Get("useSSL")); v != "" {
		q.Del("useSSL")
		switch v {
		case "true", "1":
			q.Set("tls", "true")
		case "skip-verify", "preferred":
			q.Set("tls", v)
		default:
			q.Set("tls", "false")
		}
	}
	if q.Get("parseTime") == "" {
		q.Set("parseTime", "true")
	}
	if q.Get("charset") == "" {
		q.Set("charset", "utf8mb4")
	}

	cred := user
	if pass != "" {
		cred += ":" + pass
	}
	if cred != "" {
		cred += "@"
	}
	dsn := fmt.Sprintf("%stcp(%s)/%s", cred, u.Host, strings.TrimPrefix(u.Path, "/"))
	if enc := q.Encode(); enc != "" {
		dsn += "?" + enc
	}
	return dsn
}
