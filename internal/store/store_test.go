package store

import (
	"errors"
	"testing"
	"time"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(&Config{DataDir: t.TempDir()})
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndGetRecord(t *testing.T) {
	s := openTestStore(t)

	record := &Record{
		Chain:     "BTC",
		Network:   "mainnet",
		TxID:      "deadbeef",
		Recipient: "bc1qw508d6qejxtdg4y5r3zarvary0c5xw7kv8f3t4",
		Amount:    "50000",
		Raw:       "02000000...",
	}
	if err := s.SaveRecord(record); err != nil {
		t.Fatalf("SaveRecord() error = %v", err)
	}
	if record.ID == "" {
		t.Error("SaveRecord should assign an id")
	}

	got, err := s.GetByTxID("deadbeef")
	if err != nil {
		t.Fatalf("GetByTxID() error = %v", err)
	}
	if got.ID != record.ID || got.Chain != "BTC" || got.Amount != "50000" {
		t.Errorf("got %+v", got)
	}
}

func TestGetByTxIDNotFound(t *testing.T) {
	s := openTestStore(t)
	if _, err := s.GetByTxID("missing"); !errors.Is(err, ErrRecordNotFound) {
		t.Errorf("got %v, want ErrRecordNotFound", err)
	}
}

func TestListRecent(t *testing.T) {
	s := openTestStore(t)

	base := time.Now().Add(-time.Hour)
	for i, chain := range []string{"BTC", "ETH", "BTC"} {
		record := &Record{
			Chain:     chain,
			Network:   "mainnet",
			TxID:      string(rune('a' + i)),
			Raw:       "raw",
			CreatedAt: base.Add(time.Duration(i) * time.Minute),
		}
		if err := s.SaveRecord(record); err != nil {
			t.Fatal(err)
		}
	}

	all, err := s.ListRecent("", 10)
	if err != nil {
		t.Fatalf("ListRecent() error = %v", err)
	}
	if len(all) != 3 {
		t.Fatalf("count = %d, want 3", len(all))
	}
	// Newest first.
	if all[0].TxID != "c" {
		t.Errorf("first record txid = %s, want c", all[0].TxID)
	}

	btc, err := s.ListRecent("BTC", 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(btc) != 2 {
		t.Errorf("BTC count = %d, want 2", len(btc))
	}

	limited, err := s.ListRecent("", 1)
	if err != nil {
		t.Fatal(err)
	}
	if len(limited) != 1 {
		t.Errorf("limited count = %d, want 1", len(limited))
	}
}
