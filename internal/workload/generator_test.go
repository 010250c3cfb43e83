package workload

import "testing"

func TestGeneratorKeysStayInRange(t *testing.T) {
	g := NewGenerator(1, 10, 20, 50, 30)
	for i := 0; i < 1000; i++ {
		_, key := g.Next()
		if key < 10 || key >= 20 {
			t.Fatalf("key %d out of range [10,20)", key)
		}
	}
}

func TestGeneratorRespectsOperationMix(t *testing.T) {
	g := NewGenerator(42, 0, 1000, 60, 20)
	counts := map[Op]int{}
	const n = 10000
	for i := 0; i < n; i++ {
		op, _ := g.Next()
		counts[op]++
	}

	// Loose bounds: exact percentages aren't guaranteed over a finite
	// sample, but each op kind must appear, and none should dominate to
	// the point the mix is obviously wrong.
	if counts[OpInsert] == 0 || counts[OpRemove] == 0 || counts[OpContains] == 0 {
		t.Fatalf("expected all three op kinds to appear, got %v", counts)
	}
	if counts[OpInsert] < counts[OpContains] {
		t.Errorf("with insertPct=60 and remainder contains=20, expected more inserts than contains, got %v", counts)
	}
}

func TestGeneratorIsDeterministicPerSeed(t *testing.T) {
	g1 := NewGenerator(7, 0, 100, 50, 30)
	g2 := NewGenerator(7, 0, 100, 50, 30)

	for i := 0; i < 100; i++ {
		op1, key1 := g1.Next()
		op2, key2 := g2.Next()
		if op1 != op2 || key1 != key2 {
			t.Fatalf("same-seed generators diverged at step %d: (%v,%d) vs (%v,%d)", i, op1, key1, op2, key2)
		}
	}
}

func TestOpString(t *testing.T) {
	cases := map[Op]string{OpInsert: "insert", OpRemove: "remove", OpContains: "contains"}
	for op, want := range cases {
		if got := op.String(); got != want {
			t.Errorf("%v.String() = %q, want %q", op, got, want)
		}
	}
}
