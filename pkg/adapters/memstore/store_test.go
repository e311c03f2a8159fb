package memstore

import (
	"bytes"
	"errors"
	"sync"
	"testing"
)

func TestStore_PutGetDelete(t *testing.T) {
	store := New()

	data := []byte("mp4 bytes")
	id, err := store.Put(data)
	if err != nil {
		t.Fatalf("Put: %v", err)
	}

	got, err := store.Get(id)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Error("Get returned different bytes")
	}

	// The store holds its own copy.
	data[0] = 'X'
	got, _ = store.Get(id)
	if got[0] == 'X' {
		t.Error("store shares memory with the caller's slice")
	}

	if err := store.Delete(id); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := store.Get(id); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get after Delete = %v, want ErrNotFound", err)
	}
	if store.Len() != 0 {
		t.Errorf("Len = %d, want 0", store.Len())
	}
}

func TestStore_UnknownID(t *testing.T) {
	store := New()
	if _, err := store.Get("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Get = %v, want ErrNotFound", err)
	}
	if err := store.Delete("nope"); !errors.Is(err, ErrNotFound) {
		t.Errorf("Delete = %v, want ErrNotFound", err)
	}
}

func TestStore_ConcurrentPuts(t *testing.T) {
	store := New()

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, err := store.Put([]byte("blob")); err != nil {
				t.Errorf("Put: %v", err)
			}
		}()
	}
	wg.Wait()

	if store.Len() != 16 {
		t.Errorf("Len = %d, want 16", store.Len())
	}
}
