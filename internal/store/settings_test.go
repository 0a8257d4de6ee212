package store

import (
	"slices"
	"testing"

	"github.com/dukerupert/wallcal/internal/database"
)

func setupKVTestDB(t *testing.T) *KVStore {
	t.Helper()
	db, err := database.Open(":memory:")
	if err != nil {
		t.Fatalf("open test db: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return NewKVStore(db)
}

func TestKVGetMissing(t *testing.T) {
	kv := setupKVTestDB(t)

	val, ok, err := kv.Get("calendarTheme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if ok || val != "" {
		t.Errorf("Get(missing) = %q, %v; want empty, false", val, ok)
	}
}

func TestKVSetAndOverwrite(t *testing.T) {
	kv := setupKVTestDB(t)

	if err := kv.Set("calendarTheme", `"dark"`); err != nil {
		t.Fatalf("set: %v", err)
	}
	if err := kv.Set("calendarTheme", `"light"`); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	val, ok, err := kv.Get("calendarTheme")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if !ok || val != `"light"` {
		t.Errorf("Get = %q, %v; want %q, true", val, ok, `"light"`)
	}
}

func TestKVKeys(t *testing.T) {
	kv := setupKVTestDB(t)

	kv.Set("calendarTheme", `"dark"`)
	kv.Set("calendarEvents", `[]`)

	keys, err := kv.Keys()
	if err != nil {
		t.Fatalf("keys: %v", err)
	}
	if !slices.Equal(keys, []string{"calendarEvents", "calendarTheme"}) {
		t.Errorf("keys = %v", keys)
	}
}
