package persistence

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"
)

const (
	DriverMysql  = "mysql"
	DriverSqlite = "sqlite3"
)

type DatabaseConfig struct {
	DriverType string
	DriverArgs string
	LogMode    bool
}

func (c *DatabaseConfig) Validate() error {
	switch c.DriverType {
	case DriverMysql, DriverSqlite:
	default:
		return fmt.Errorf("unsupported database driver '%s'", c.DriverType)
	}
	if c.DriverArgs == "" {
		return errors.New("database driver args is required")
	}
	return nil
}

// PrepareMysqlDatabase creates the database named in driverArgs when it does not exist yet.
func PrepareMysqlDatabase(driverArgs string) error {
	cfg, err := mysql.ParseDSN(driverArgs)
	if err != nil {
		return err
	}
	databaseName := cfg.DBName
	if databaseName == "" {
		return errors.New("database name is missing in driver args")
	}
	if strings.ContainsAny(databaseName, "`;") {
		return fmt.Errorf("illegal database name '%s'", databaseName)
	}
	cfg.DBName = ""

	db, err := sql.Open(DriverMysql, cfg.FormatDSN())
	if err != nil {
		return err
	}
	defer db.Close()

	_, err = db.Exec("CREATE DATABASE IF NOT EXISTS `" + databaseName + "` DEFAULT CHARACTER SET utf8mb4 COLLATE utf8mb4_unicode_ci")
	return err
}
