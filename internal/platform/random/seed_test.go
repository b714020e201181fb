package random

import "testing"

func TestNewSeed_ProducesDistinctSeeds(t *testing.T) {
	a, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	b, err := NewSeed()
	if err != nil {
		t.Fatalf("new seed: %v", err)
	}
	if a == b {
		t.Fatalf("seeds collided: %d", a)
	}
}
