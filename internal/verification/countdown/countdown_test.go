package countdown

import "testing"

func TestCountdownTick(t *testing.T) {
	c := New(3)

	c.Tick()
	c.Tick()
	if got := c.Remaining(); got != 1 {
		t.Fatalf("Remaining() = %d, want 1", got)
	}
	if c.Expired() {
		t.Fatalf("countdown expired with time left")
	}

	c.Tick()
	if !c.Expired() {
		t.Fatalf("countdown not expired at zero")
	}

	// further ticks must not go negative or panic
	c.Tick()
	if got := c.Remaining(); got != 0 {
		t.Fatalf("Remaining() after expiry = %d, want 0", got)
	}
}

func TestCountdownReset(t *testing.T) {
	c := New(2)
	c.Tick()
	c.Tick()
	if !c.Expired() {
		t.Fatalf("countdown should be expired")
	}

	c.Reset(30)
	if got := c.Remaining(); got != 30 {
		t.Fatalf("Remaining() after reset = %d, want 30", got)
	}

	c.Tick()
	if got := c.Remaining(); got != 29 {
		t.Fatalf("reset countdown did not resume ticking, Remaining() = %d", got)
	}
}

func TestCountdownZeroStart(t *testing.T) {
	c := New(0)
	if !c.Expired() {
		t.Fatalf("zero countdown should start expired")
	}

	c.Tick()
	if got := c.Remaining(); got != 0 {
		t.Fatalf("Remaining() = %d, want 0", got)
	}
}

func TestFormatMMSS(t *testing.T) {
	cases := []struct {
		in   int
		want string
	}{
		{300, "5:00"},
		{61, "1:01"},
		{9, "0:09"},
		{0, "0:00"},
		{-5, "0:00"},
	}

	for _, tc := range cases {
		if got := FormatMMSS(tc.in); got != tc.want {
			t.Errorf("FormatMMSS(%d) = %q, want %q", tc.in, got, tc.want)
		}
	}
}
