package domain

import "testing"

func TestOrderIntentEmpty(t *testing.T) {
	if !(OrderIntent{}).Empty() {
		t.Fatal("zero intent should be empty")
	}
	if (OrderIntent{Username: "alice", ProductID: "p1", Quantity: 1}).Empty() {
		t.Fatal("populated intent should not be empty")
	}
	// a partial payload still counts as non-empty and is validated elsewhere
	if (OrderIntent{ProductID: "p1"}).Empty() {
		t.Fatal("intent with a product id is not empty")
	}
}
