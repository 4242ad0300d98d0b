package quota

import "testing"

func TestGuardAllow(t *testing.T) {
	g := NewGuard()
	if g.Limit != DailyGameLimit {
		t.Fatalf("NewGuard().Limit = %d, want %d", g.Limit, DailyGameLimit)
	}
	cases := map[int]bool{0: true, 1: true, 2: true, 3: false, 4: false}
	for started, want := range cases {
		if got := g.Allow(started); got != want {
			t.Errorf("Allow(%d) = %v, want %v", started, got, want)
		}
	}
}
