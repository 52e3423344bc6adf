package item

import "testing"

func TestKindString(t *testing.T) {
	cases := []struct {
		k    Kind
		want string
	}{
		{Int, "Int"},
		{Float, "Float"},
		{Str, "Str"},
		{Default, "Default"},
		{EndRec, "End"},
	}
	for _, c := range cases {
		if got := c.k.String(); got != c.want {
			t.Errorf("Kind(%d).String() = %q, want %q", c.k, got, c.want)
		}
	}
}

func TestEqual(t *testing.T) {
	cases := []struct {
		name string
		a, b Item
		want bool
	}{
		{"equal ints", NewInt(10, 1), NewInt(10, 1), true},
		{"different repeat", NewInt(10, 1), NewInt(10, 2), false},
		{"different kind", NewInt(10, 1), NewFloat(10, 1), false},
		{"equal floats", NewFloat(0.005, 3), NewFloat(0.005, 3), true},
		{"equal strings", NewStr("YES", 1), NewStr("YES", 1), true},
		{"defaults ignore payload", NewDefault(3), NewDefault(3), true},
		{"endrec always equal", NewEndRec(), NewEndRec(), true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := c.a.Equal(c.b); got != c.want {
				t.Errorf("Equal() = %v, want %v", got, c.want)
			}
		})
	}
}

func TestRepeatInvariant(t *testing.T) {
	// every constructor other than NewEndRec accepts the caller's repeat;
	// NewEndRec always pins Repeat to 1 regardless.
	if got := NewEndRec().Repeat; got != 1 {
		t.Errorf("NewEndRec().Repeat = %d, want 1", got)
	}
	if got := NewDefault(3).Repeat; got != 3 {
		t.Errorf("NewDefault(3).Repeat = %d, want 3", got)
	}
}
