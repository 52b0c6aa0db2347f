package memory_test

import (
	"context"
	"testing"

	"github.com/abcretail/storefront/internal/domain"
	"github.com/abcretail/storefront/internal/storage/memory"
)

func TestOrderStore_CreateGeneratesDistinctIDs(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	a := &domain.Order{OrderIntent: domain.OrderIntent{Username: "alice", ProductID: "p1", Quantity: 1}}
	b := &domain.Order{OrderIntent: domain.OrderIntent{Username: "alice", ProductID: "p1", Quantity: 1}}
	if err := store.Create(ctx, a); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if err := store.Create(ctx, b); err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if a.ID == b.ID || a.ID == "" {
		t.Fatalf("expected two distinct generated ids, got %q and %q", a.ID, b.ID)
	}
}

func TestOrderStore_ExistsForCustomer(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	o := &domain.Order{OrderIntent: domain.OrderIntent{CustomerID: "c1", Username: "alice", ProductID: "p1", Quantity: 1}}
	if err := store.Create(ctx, o); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	if ok, _ := store.ExistsForCustomer(ctx, "c1"); !ok {
		t.Fatal("expected orders for c1")
	}
	if ok, _ := store.ExistsForCustomer(ctx, "c2"); ok {
		t.Fatal("expected no orders for c2")
	}
}

func TestOrderStore_UpdateRequiresFreshVersion(t *testing.T) {
	store := memory.NewOrderStore()
	ctx := context.Background()

	o := &domain.Order{OrderIntent: domain.OrderIntent{Username: "alice", ProductID: "p1", Quantity: 1, Status: domain.StatusSubmitted}}
	if err := store.Create(ctx, o); err != nil {
		t.Fatalf("create failed: %v", err)
	}

	stale := *o
	o.Status = domain.StatusProcessing
	if err := store.Update(ctx, o); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	stale.Status = domain.StatusCancelled
	if err := store.Update(ctx, &stale); !domain.IsVersionConflict(err) {
		t.Fatalf("expected version conflict, got %v", err)
	}
}
