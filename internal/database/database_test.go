package database

import (
	"context"
	"errors"
	"net"
	"strings"
	"testing"

	"github.com/go-sql-driver/mysql"
)

func TestDSN(t *testing.T) {
	tests := []struct {
		name     string
		host     string
		wantAddr string
	}{
		{"empty host", "", "127.0.0.1:3306"},
		{"localhost", "localhost", "127.0.0.1:3306"},
		{"bare host", "db.internal", "db.internal:3306"},
		{"host with port", "db.internal:3307", "db.internal:3307"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dsn := DSN(Credentials{Host: tt.host, User: "root", Password: "s3cret", Name: "site"})
			cfg, err := mysql.ParseDSN(dsn)
			if err != nil {
				t.Fatalf("ParseDSN(%q): %v", dsn, err)
			}
			if cfg.Addr != tt.wantAddr {
				t.Errorf("Addr = %q, want %q", cfg.Addr, tt.wantAddr)
			}
			if cfg.User != "root" || cfg.Passwd != "s3cret" {
				t.Errorf("credentials not carried: %+v", cfg)
			}
			if cfg.DBName != "" {
				t.Errorf("DBName = %q, want none selected", cfg.DBName)
			}
		})
	}
}

func TestQuoteIdentifier(t *testing.T) {
	if got := QuoteIdentifier("wp_site"); got != "`wp_site`" {
		t.Errorf("QuoteIdentifier = %s", got)
	}
	if got := QuoteIdentifier("a`b"); got != "`a``b`" {
		t.Errorf("QuoteIdentifier = %s", got)
	}
}

func TestCreateRequiresName(t *testing.T) {
	err := NewMySQL().Create(context.Background(), Credentials{Host: "localhost"})
	if !errors.Is(err, ErrNoName) {
		t.Fatalf("expected ErrNoName, got %v", err)
	}
}

func TestCreateUnreachableServer(t *testing.T) {
	// Reserve a port and release it so nothing is listening there.
	ln, err := net.Listen("tcp", "127.0.0.1:0")
	if err != nil {
		t.Fatal(err)
	}
	addr := ln.Addr().String()
	ln.Close()

	err = NewMySQL().Create(context.Background(), Credentials{Host: addr, User: "root", Name: "site"})
	if err == nil {
		t.Fatal("expected connection error")
	}
	if !strings.Contains(err.Error(), "create database site") {
		t.Fatalf("error not wrapped with context: %v", err)
	}
}
