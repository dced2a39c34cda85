// Package database provisions the MySQL schema a generated site connects to.
package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"github.com/go-sql-driver/mysql"

	"wp-starter/internal/logger"
)

// ErrNoName is returned when no database name was supplied.
var ErrNoName = errors.New("database name is empty")

// Credentials identify the server and account used to create the database.
type Credentials struct {
	Host     string
	User     string
	Password string
	Name     string
}

// MySQL creates databases through database/sql and the go-sql-driver/mysql driver.
type MySQL struct {
	open func(driver, dsn string) (*sql.DB, error)
}

// NewMySQL returns a MySQL provisioner.
func NewMySQL() *MySQL {
	return &MySQL{open: sql.Open}
}

// DSN builds the driver connection string for c. The database itself is not selected
// since it may not exist yet.
func DSN(c Credentials) string {
	cfg := mysql.NewConfig()
	cfg.User = c.User
	cfg.Passwd = c.Password
	cfg.Net = "tcp"
	cfg.Addr = c.Host
	if cfg.Addr == "" || cfg.Addr == "localhost" {
		cfg.Addr = "127.0.0.1:3306"
	} else if !strings.Contains(cfg.Addr, ":") {
		cfg.Addr += ":3306"
	}
	return cfg.FormatDSN()
}

// QuoteIdentifier wraps name in backticks, doubling any backtick inside it.
func QuoteIdentifier(name string) string {
	return "`" + strings.ReplaceAll(name, "`", "``") + "`"
}

// Create issues CREATE DATABASE IF NOT EXISTS for c.Name and closes the connection.
func (m *MySQL) Create(ctx context.Context, c Credentials) (err error) {
	if c.Name == "" {
		return ErrNoName
	}

	db, err := m.open("mysql", DSN(c))
	if err != nil {
		return fmt.Errorf("open mysql connection: %w", err)
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	stmt := "CREATE DATABASE IF NOT EXISTS " + QuoteIdentifier(c.Name)
	logger.Debug("[DEBUG] %s on %s as %s\n", stmt, c.Host, c.User)
	if _, err := db.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("create database %s: %w", c.Name, err)
	}
	return nil
}
