package domain

import "testing"

func TestTotalPrice_NoFloatDrift(t *testing.T) {
	items := []OrderItem{
		{Price: 12.99, Quantity: 2},
		{Price: 4.99, Quantity: 1},
	}
	if got := TotalPrice(items); got != 30.97 {
		t.Fatalf("expected 30.97, got %v", got)
	}
	if got := TotalQuantity(items); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}

func TestTotalPrice_Empty(t *testing.T) {
	if got := TotalPrice(nil); got != 0 {
		t.Fatalf("expected 0, got %v", got)
	}
}

func TestDeriveCategories(t *testing.T) {
	items := []MenuItem{{Category: "Mains"}, {Category: "Sides"}, {Category: "Mains"}, {Category: "Drinks"}}
	got := DeriveCategories(items)
	want := []string{"Mains", "Sides", "Drinks"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("expected %v, got %v", want, got)
		}
	}
}
