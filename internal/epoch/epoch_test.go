package epoch

import "testing"

func TestManagerRetireWithNoActiveReadersReclaimsImmediately(t *testing.T) {
	m := NewManager[int]()
	n := new(int)
	*n = 1

	m.Retire(n)
	m.Advance()
	if got := m.TryReclaim(); got != 1 {
		t.Errorf("TryReclaim() = %d, want 1 (no active readers pinning the retire epoch)", got)
	}
	if got := m.PendingCount(); got != 0 {
		t.Errorf("PendingCount() = %d, want 0", got)
	}
}

func TestManagerRetireHeldBackByActiveReader(t *testing.T) {
	m := NewManager[int]()
	guard := m.Enter()

	n := new(int)
	m.Retire(n)
	m.Advance()

	if got := m.TryReclaim(); got != 0 {
		t.Errorf("TryReclaim() = %d, want 0 while a reader from the retire epoch is still active", got)
	}

	guard.Leave()
	m.Advance()
	if got := m.TryReclaim(); got != 1 {
		t.Errorf("TryReclaim() = %d, want 1 after the pinning reader left", got)
	}
}

func TestManagerActiveReadersTracksEnterLeave(t *testing.T) {
	m := NewManager[int]()
	if got := m.ActiveReaders(); got != 0 {
		t.Fatalf("ActiveReaders() = %d, want 0", got)
	}

	g1 := m.Enter()
	g2 := m.Enter()
	if got := m.ActiveReaders(); got != 2 {
		t.Errorf("ActiveReaders() = %d, want 2", got)
	}

	g1.Leave()
	if got := m.ActiveReaders(); got != 1 {
		t.Errorf("ActiveReaders() = %d, want 1", got)
	}
	g2.Leave()
	if got := m.ActiveReaders(); got != 0 {
		t.Errorf("ActiveReaders() = %d, want 0", got)
	}
}

func TestGuardLeaveIsNilSafe(t *testing.T) {
	var g *Guard
	g.Leave() // must not panic
}
