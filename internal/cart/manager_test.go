package cart

import (
	"context"
	"testing"

	"github.com/rafaeltorres/rocketcart-backend/internal/catalog"
	"github.com/rafaeltorres/rocketcart-backend/internal/store"
)

func newTestManager(t *testing.T, backing store.Store) *Manager {
	t.Helper()

	manager, err := NewManager(ManagerParams{
		Stock:        &stubStock{levels: map[string]int{"1": 5}},
		Catalog:      &stubCatalog{products: map[string]catalog.Product{}},
		Store:        backing,
		FeedCapacity: 5,
	})
	if err != nil {
		t.Fatalf("NewManager failed: %v", err)
	}
	return manager
}

func TestManagerRestoresSnapshot(t *testing.T) {
	t.Parallel()

	backing := store.NewMemory()
	snapshot, err := Encode(Cart{testItem("1", "Shoe", 3)})
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}
	if err := backing.Write(context.Background(), "sess-a", snapshot); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	manager := newTestManager(t, backing)
	session, err := manager.Session(context.Background(), "sess-a")
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}

	cart := session.Engine.GetCart(context.Background())
	if len(cart) != 1 || cart[0].Key() != "1" || cart[0].Amount != 3 {
		t.Fatalf("snapshot not restored: %+v", cart)
	}
}

func TestManagerAbsentSnapshotYieldsEmptyCart(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, store.NewMemory())
	session, err := manager.Session(context.Background(), "sess-new")
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if got := session.Engine.GetCart(context.Background()); len(got) != 0 {
		t.Fatalf("expected empty cart, got %+v", got)
	}
}

func TestManagerCachesSessions(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, store.NewMemory())
	first, err := manager.Session(context.Background(), "sess-a")
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	second, err := manager.Session(context.Background(), "sess-a")
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if first != second {
		t.Fatal("expected the same session instance on repeat lookups")
	}

	other, err := manager.Session(context.Background(), "sess-b")
	if err != nil {
		t.Fatalf("Session failed: %v", err)
	}
	if other == first {
		t.Fatal("distinct session ids must not share an engine")
	}
}

func TestManagerCorruptSnapshotIsAnError(t *testing.T) {
	t.Parallel()

	backing := store.NewMemory()
	if err := backing.Write(context.Background(), "sess-a", "{broken"); err != nil {
		t.Fatalf("seed write failed: %v", err)
	}

	manager := newTestManager(t, backing)
	if _, err := manager.Session(context.Background(), "sess-a"); err == nil {
		t.Fatal("expected error for corrupt snapshot, carts are never silently reset")
	}
}

func TestManagerRejectsEmptySessionID(t *testing.T) {
	t.Parallel()

	manager := newTestManager(t, store.NewMemory())
	if _, err := manager.Session(context.Background(), ""); err == nil {
		t.Fatal("expected error for empty session id")
	}
}

func TestNewManagerValidatesCollaborators(t *testing.T) {
	t.Parallel()

	_, err := NewManager(ManagerParams{
		Catalog: &stubCatalog{},
		Store:   store.NewMemory(),
	})
	if err == nil {
		t.Fatal("expected error for missing stock oracle")
	}
}
