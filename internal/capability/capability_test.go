package capability_test

import (
	"testing"

	"github.com/lox/betteridle/internal/capability"
)

func TestBuilderPacksDeterministically(t *testing.T) {
	k1 := capability.NewBuilder().Pack(5, 8).Pack(99, 8).Key()
	k2 := capability.NewBuilder().Pack(5, 8).Pack(99, 8).Key()
	if k1 != k2 {
		t.Fatalf("expected deterministic key, got %+v vs %+v", k1, k2)
	}
	k3 := capability.NewBuilder().Pack(6, 8).Pack(99, 8).Key()
	if k1 == k3 {
		t.Fatal("expected different key for different input")
	}
}

func TestBuilderClampsOutOfRange(t *testing.T) {
	over := capability.NewBuilder().Pack(1000, 4).Key()
	max := capability.NewBuilder().Pack(15, 4).Key()
	if over != max {
		t.Fatalf("expected clamp to field max, got %+v want %+v", over, max)
	}
	neg := capability.NewBuilder().Pack(-5, 4).Key()
	if neg != (capability.Key{}) {
		t.Fatalf("expected negative clamp to zero key, got %+v", neg)
	}
}

func TestBuilderStraddlesBothWords(t *testing.T) {
	b := capability.NewBuilder()
	for i := 0; i < 9; i++ {
		b.Pack(100+i, 7) // 9*7 = 63 bits, fits in lo alone
	}
	straddling := b.Pack(123, 13) // bits [63, 76): spans both words
	k := straddling.Key()
	if k.Hi == 0 {
		t.Fatalf("expected a straddling field to set bits in the high word, got %+v", k)
	}

	other := capability.NewBuilder()
	for i := 0; i < 9; i++ {
		other.Pack(100+i, 7)
	}
	again := other.Pack(123, 13).Key()
	if k != again {
		t.Fatalf("expected straddling pack to be deterministic, got %+v vs %+v", k, again)
	}
}

func TestInventoryBucketRange(t *testing.T) {
	if b := capability.InventoryBucket(0); b != 0 {
		t.Fatalf("expected 0, got %d", b)
	}
	if b := capability.InventoryBucket(1); b != capability.InventoryBucketCount-1 {
		t.Fatalf("expected last bucket, got %d", b)
	}
	if b := capability.InventoryBucket(1.5); b != capability.InventoryBucketCount-1 {
		t.Fatalf("expected clamp above 1, got %d", b)
	}
}
