package driver_test

import (
	"testing"

	"lattice/internal/driver"
)

func TestDiskCacheRoundTrip(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	key := driver.KeyFor("structured", "0.1.0")
	put := &driver.CachePayload{Name: "structured", Text: "mlfunc @sweep() {\n}\n\n"}
	if err := cache.Put(key, put); err != nil {
		t.Fatalf("Put: %v", err)
	}

	var got driver.CachePayload
	ok, err := cache.Get(key, &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !ok {
		t.Fatal("entry not found after Put")
	}
	if got.Name != put.Name || got.Text != put.Text {
		t.Errorf("payload mismatch: %+v", got)
	}
}

func TestDiskCacheMiss(t *testing.T) {
	cache, err := driver.OpenDiskCacheAt(t.TempDir())
	if err != nil {
		t.Fatalf("OpenDiskCacheAt: %v", err)
	}

	var got driver.CachePayload
	ok, err := cache.Get(driver.KeyFor("absent", "0.1.0"), &got)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if ok {
		t.Error("unexpected hit for absent key")
	}
}

func TestKeyForDistinguishesVersions(t *testing.T) {
	if driver.KeyFor("a", "1") == driver.KeyFor("a", "2") {
		t.Error("keys must differ across tool versions")
	}
	if driver.KeyFor("a", "1") == driver.KeyFor("b", "1") {
		t.Error("keys must differ across names")
	}
}
