package store

import (
	"errors"
	"sync"
	"testing"

	"canteen/models"
)

func line(id int, name string, price float64) models.CartLine {
	return models.CartLine{ID: id, Name: name, Price: price}
}

func TestAddItemAppendsNewLine(t *testing.T) {
	s := New()

	if err := s.AddItem(1, line(1, "Nasi Goreng", 100), 2); err != nil {
		t.Fatalf("AddItem returned error: %v", err)
	}

	snap := s.Snapshot(1)
	if len(snap.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 2 {
		t.Errorf("expected quantity 2, got %d", snap.Items[0].Quantity)
	}
	if snap.TotalAmount != 200 {
		t.Errorf("expected total 200, got %v", snap.TotalAmount)
	}
}

func TestAddItemMergesSameID(t *testing.T) {
	s := New()

	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)
	s.AddItem(1, line(1, "Nasi Goreng", 100), 3)

	snap := s.Snapshot(1)
	if len(snap.Items) != 1 {
		t.Fatalf("expected a single merged line, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 5 {
		t.Errorf("expected merged quantity 5, got %d", snap.Items[0].Quantity)
	}
	if snap.TotalAmount != 500 {
		t.Errorf("expected total 500, got %v", snap.TotalAmount)
	}
	if snap.ItemCount != 5 {
		t.Errorf("expected item count 5, got %d", snap.ItemCount)
	}
}

func TestAddItemPreservesInsertionOrder(t *testing.T) {
	s := New()

	s.AddItem(1, line(3, "Es Teh", 5), 1)
	s.AddItem(1, line(1, "Nasi Goreng", 100), 1)
	s.AddItem(1, line(2, "Mie Ayam", 50), 1)
	s.AddItem(1, line(3, "Es Teh", 5), 1)

	snap := s.Snapshot(1)
	got := []int{}
	for _, l := range snap.Items {
		got = append(got, l.ID)
	}
	want := []int{3, 1, 2}
	if len(got) != len(want) {
		t.Fatalf("expected %d lines, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("line %d: expected id %d, got %d", i, want[i], got[i])
		}
	}
}

func TestAddItemValidation(t *testing.T) {
	s := New()

	if err := s.AddItem(1, line(0, "No ID", 10), 1); !errors.Is(err, ErrMissingID) {
		t.Errorf("expected ErrMissingID, got %v", err)
	}
	if err := s.AddItem(1, line(1, "Nasi Goreng", 10), 0); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for zero, got %v", err)
	}
	if err := s.AddItem(1, line(1, "Nasi Goreng", 10), -3); !errors.Is(err, ErrInvalidQuantity) {
		t.Errorf("expected ErrInvalidQuantity for negative, got %v", err)
	}

	if got := s.Snapshot(1); len(got.Items) != 0 {
		t.Errorf("rejected adds must not touch the cart, got %d lines", len(got.Items))
	}
}

func TestUpdateQuantitySetsValue(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)

	s.UpdateQuantity(1, 1, 7)

	snap := s.Snapshot(1)
	if snap.Items[0].Quantity != 7 {
		t.Errorf("expected quantity 7, got %d", snap.Items[0].Quantity)
	}
	if snap.TotalAmount != 700 {
		t.Errorf("expected total 700, got %v", snap.TotalAmount)
	}
}

func TestUpdateQuantityZeroRemovesLine(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)
	s.AddItem(1, line(2, "Mie Ayam", 50), 1)

	s.UpdateQuantity(1, 2, 0)

	snap := s.Snapshot(1)
	if len(snap.Items) != 1 || snap.Items[0].ID != 1 {
		t.Fatalf("expected only line 1 to remain, got %+v", snap.Items)
	}
	if snap.TotalAmount != 200 {
		t.Errorf("expected total 200, got %v", snap.TotalAmount)
	}
}

func TestUpdateQuantityNegativeRemovesLine(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)

	s.UpdateQuantity(1, 1, -5)

	if snap := s.Snapshot(1); len(snap.Items) != 0 {
		t.Errorf("expected empty cart, got %+v", snap.Items)
	}
}

func TestUpdateQuantityUnknownIDIsNoOp(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)

	s.UpdateQuantity(1, 99, 4)

	snap := s.Snapshot(1)
	if len(snap.Items) != 1 || snap.Items[0].Quantity != 2 {
		t.Errorf("unknown id must not change the cart, got %+v", snap.Items)
	}
}

func TestRemoveItemMatchesUpdateToZero(t *testing.T) {
	a := New()
	b := New()
	for _, s := range []*Store{a, b} {
		s.AddItem(1, line(1, "Nasi Goreng", 100), 2)
		s.AddItem(1, line(2, "Mie Ayam", 50), 3)
	}

	a.RemoveItem(1, 2)
	b.UpdateQuantity(1, 2, 0)

	snapA, snapB := a.Snapshot(1), b.Snapshot(1)
	if len(snapA.Items) != len(snapB.Items) || snapA.TotalAmount != snapB.TotalAmount {
		t.Errorf("RemoveItem and UpdateQuantity(0) diverged: %+v vs %+v", snapA, snapB)
	}
}

func TestRemoveItemUnknownIDIsNoOp(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)

	s.RemoveItem(1, 99)

	if snap := s.Snapshot(1); len(snap.Items) != 1 {
		t.Errorf("unknown id must not change the cart, got %+v", snap.Items)
	}
}

func TestClearEmptiesCart(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)
	s.AddItem(1, line(2, "Mie Ayam", 50), 1)

	s.Clear(1)

	snap := s.Snapshot(1)
	if len(snap.Items) != 0 || snap.ItemCount != 0 || snap.TotalAmount != 0 {
		t.Errorf("expected empty snapshot after Clear, got %+v", snap)
	}
}

func TestCartsAreIsolatedPerUser(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)
	s.AddItem(2, line(1, "Nasi Goreng", 100), 1)

	s.Clear(1)

	if snap := s.Snapshot(2); len(snap.Items) != 1 || snap.Items[0].Quantity != 1 {
		t.Errorf("clearing user 1 must not touch user 2, got %+v", snap)
	}
}

func TestSnapshotIsACopy(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)

	snap := s.Snapshot(1)
	snap.Items[0].Quantity = 999

	if got := s.Snapshot(1); got.Items[0].Quantity != 2 {
		t.Errorf("mutating a snapshot leaked into the store: %+v", got.Items)
	}
}

func TestTotalsAreRecomputedPerRead(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)

	if got := s.TotalAmount(1); got != 200 {
		t.Fatalf("expected 200, got %v", got)
	}

	s.AddItem(1, line(2, "Mie Ayam", 50), 3)
	if got := s.TotalAmount(1); got != 350 {
		t.Errorf("expected 350 after second add, got %v", got)
	}

	s.UpdateQuantity(1, 2, 1)
	if got := s.TotalAmount(1); got != 250 {
		t.Errorf("expected 250 after quantity update, got %v", got)
	}
}

func TestSubscribeDeliversCurrentSnapshotFirst(t *testing.T) {
	s := New()
	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)

	events, cancel := s.Subscribe(1)
	defer cancel()

	first := <-events
	if first.ItemCount != 2 || first.TotalAmount != 200 {
		t.Errorf("expected initial snapshot with count 2 total 200, got %+v", first)
	}
}

func TestSubscribeObservesMutations(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe(1)
	defer cancel()

	<-events // initial empty snapshot

	s.AddItem(1, line(1, "Nasi Goreng", 100), 2)
	snap := <-events
	if snap.ItemCount != 2 {
		t.Errorf("expected count 2 after add, got %d", snap.ItemCount)
	}

	s.UpdateQuantity(1, 1, 5)
	snap = <-events
	if snap.ItemCount != 5 {
		t.Errorf("expected count 5 after update, got %d", snap.ItemCount)
	}

	s.Clear(1)
	snap = <-events
	if snap.ItemCount != 0 {
		t.Errorf("expected empty snapshot after clear, got %+v", snap)
	}
}

func TestCancelClosesChannel(t *testing.T) {
	s := New()
	events, cancel := s.Subscribe(1)

	<-events
	cancel()
	cancel() // second cancel must be safe

	if _, ok := <-events; ok {
		t.Error("expected channel to be closed after cancel")
	}

	// Mutations after cancel must not panic on the closed channel.
	s.AddItem(1, line(1, "Nasi Goreng", 100), 1)
}

func TestConcurrentMutations(t *testing.T) {
	s := New()

	var wg sync.WaitGroup
	for w := 0; w < 10; w++ {
		wg.Add(1)
		go func(w int) {
			defer wg.Done()
			for i := 0; i < 100; i++ {
				s.AddItem(1, line(1, "Nasi Goreng", 100), 1)
				s.Snapshot(1)
			}
		}(w)
	}
	wg.Wait()

	snap := s.Snapshot(1)
	if len(snap.Items) != 1 {
		t.Fatalf("expected all adds to merge into one line, got %d", len(snap.Items))
	}
	if snap.Items[0].Quantity != 1000 {
		t.Errorf("expected quantity 1000, got %d", snap.Items[0].Quantity)
	}
	if snap.TotalAmount != 100000 {
		t.Errorf("expected total 100000, got %v", snap.TotalAmount)
	}
}
