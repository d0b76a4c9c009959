package dbtx_test

import (
	"context"
	"testing"
	"time"

	"courtly/internal/shared/database/dbtx"

	"gorm.io/gorm"
)

func handle(table string) *gorm.DB {
	return &gorm.DB{Config: &gorm.Config{}, Statement: &gorm.Statement{Table: table}}
}

func TestConnWithoutTransaction(t *testing.T) {
	db := handle("pool")
	ctx := context.Background()

	if dbtx.InTx(ctx) {
		t.Fatal("InTx() = true on a bare context")
	}
	conn, release := dbtx.Conn(ctx, db)
	defer release()
	if conn.Statement.Table != "pool" {
		t.Errorf("Conn() table = %q, want %q", conn.Statement.Table, "pool")
	}
	if conn.Statement.Context != ctx {
		t.Error("Conn() did not bind the context")
	}
}

func TestConnPrefersTransaction(t *testing.T) {
	db := handle("pool")
	tx := handle("tx")
	ctx := dbtx.WithTx(context.Background(), tx)

	if !dbtx.InTx(ctx) {
		t.Fatal("InTx() = false after WithTx")
	}
	conn, release := dbtx.Conn(ctx, db)
	defer release()
	if conn.Statement.Table != "tx" {
		t.Errorf("Conn() table = %q, want %q", conn.Statement.Table, "tx")
	}
	if conn.Statement.Context != ctx {
		t.Error("Conn() did not bind the context")
	}
}

func TestConnSerializesTransactionUse(t *testing.T) {
	db := handle("pool")
	tx := handle("tx")
	ctx := dbtx.WithTx(context.Background(), tx)

	_, release := dbtx.Conn(ctx, db)

	acquired := make(chan struct{})
	go func() {
		_, second := dbtx.Conn(ctx, db)
		close(acquired)
		second()
	}()

	select {
	case <-acquired:
		t.Fatal("second Conn() ran while the first statement still held the transaction")
	case <-time.After(50 * time.Millisecond):
	}

	release()
	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second Conn() never ran after release")
	}
}
