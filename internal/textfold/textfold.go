// Package textfold lower-cases search text identically in Go and in SQL.
//
// SQLite's built-in LOWER only maps ASCII letters, so SQLite connections get
// a FuncName function backed by Lower. Postgres uses its own LOWER, which
// maps each rune the same way under a UTF-8 database.
package textfold

import (
	"database/sql"
	"database/sql/driver"
	"strings"
	"sync"

	nocgo "github.com/glebarez/sqlite"
	gosqlite "github.com/glebarez/go-sqlite"
	"github.com/mattn/go-sqlite3"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// FuncName is the SQL function registered on SQLite connections.
const FuncName = "fold_lower"

const cgoDriverName = "sqlite3_fold"

var registerOnce sync.Once

// Lower maps every rune of s to lower case.
func Lower(s string) string {
	return strings.ToLower(s)
}

func lowerValue(v any) any {
	switch s := v.(type) {
	case string:
		return Lower(s)
	case []byte:
		if s == nil {
			return nil
		}
		return Lower(string(s))
	default:
		return v
	}
}

func register() {
	registerOnce.Do(func() {
		sql.Register(cgoDriverName, &sqlite3.SQLiteDriver{
			ConnectHook: func(conn *sqlite3.SQLiteConn) error {
				return conn.RegisterFunc(FuncName, lowerValue, true)
			},
		})
		gosqlite.MustRegisterDeterministicScalarFunction(FuncName, 1,
			func(_ *gosqlite.FunctionContext, args []driver.Value) (driver.Value, error) {
				return lowerValue(args[0]), nil
			})
	})
}

// SQLiteDialector opens dsn with FuncName available. pureGo selects the
// cgo-free driver.
func SQLiteDialector(dsn string, pureGo bool) gorm.Dialector {
	register()
	if pureGo {
		return nocgo.Open(dsn)
	}
	return &sqlite.Dialector{DriverName: cgoDriverName, DSN: dsn}
}
