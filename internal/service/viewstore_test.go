package service

import (
	"sync"
	"testing"
	"time"

	"github.com/bigkaa/goartstore/resource-browser/internal/domain/model"
)

// TestViewStore_AddGet проверяет базовые операции Add/Get.
func TestViewStore_AddGet(t *testing.T) {
	store := NewViewStore(100, 5*time.Minute, nil)

	// Miss
	if _, ok := store.Get("view-1"); ok {
		t.Fatal("ожидался miss для нового ключа")
	}

	// Add + hit
	store.Add(newTableView("view-1", model.FilterCriteria{}))
	got, ok := store.Get("view-1")
	if !ok {
		t.Fatal("ожидался hit после Add")
	}
	if got.ID() != "view-1" {
		t.Errorf("ID = %q, ожидался %q", got.ID(), "view-1")
	}
}

// TestViewStore_Remove проверяет удаление и вызов onEvict.
func TestViewStore_Remove(t *testing.T) {
	var (
		mu      sync.Mutex
		evicted []string
	)
	store := NewViewStore(100, 5*time.Minute, func(id string) {
		mu.Lock()
		evicted = append(evicted, id)
		mu.Unlock()
	})

	store.Add(newTableView("remove-me", model.FilterCriteria{}))

	if !store.Remove("remove-me") {
		t.Fatal("Remove вернул false для существующего представления")
	}
	if _, ok := store.Get("remove-me"); ok {
		t.Fatal("ожидался miss после Remove")
	}
	if store.Remove("remove-me") {
		t.Error("повторный Remove должен вернуть false")
	}

	mu.Lock()
	defer mu.Unlock()
	if len(evicted) != 1 || evicted[0] != "remove-me" {
		t.Errorf("onEvict = %v, ожидался [remove-me]", evicted)
	}
}

// TestViewStore_TTLExpiration проверяет истечение TTL.
func TestViewStore_TTLExpiration(t *testing.T) {
	// Короткий TTL = 50ms для теста
	store := NewViewStore(100, 50*time.Millisecond, nil)

	store.Add(newTableView("ttl-test", model.FilterCriteria{}))
	if _, ok := store.Get("ttl-test"); !ok {
		t.Fatal("ожидался hit сразу после Add")
	}

	time.Sleep(100 * time.Millisecond)

	if _, ok := store.Get("ttl-test"); ok {
		t.Fatal("ожидался miss после истечения TTL")
	}
}

// TestViewStore_LRUEviction проверяет вытеснение при переполнении.
func TestViewStore_LRUEviction(t *testing.T) {
	store := NewViewStore(2, 5*time.Minute, nil)

	store.Add(newTableView("a", model.FilterCriteria{}))
	store.Add(newTableView("b", model.FilterCriteria{}))
	store.Add(newTableView("c", model.FilterCriteria{}))

	if _, ok := store.Get("a"); ok {
		t.Error("ожидалось вытеснение самого старого представления")
	}
	if _, ok := store.Get("c"); !ok {
		t.Error("ожидался hit для последнего представления")
	}
	if store.Len() != 2 {
		t.Errorf("Len = %d, ожидалось 2", store.Len())
	}
}
