package cmenu

import "testing"

func TestSplitKey(t *testing.T) {
	tests := []struct {
		name     string
		data     string
		n        int
		complete bool
	}{
		{"empty", "", 0, false},
		{"ascii", "jk", 1, true},
		{"control", "\x0dq", 1, true},
		{"utf8", "é!", 2, true},
		{"wide utf8", "日", 3, true},
		{"csi arrow", KeyUp + "j", 3, true},
		{"csi tilde", KeyPageDown, 4, true},
		{"csi partial", "\x1b[5", 3, false},
		{"ss3", KeyDownSS3 + "x", 3, true},
		{"ss3 partial", "\x1bO", 2, false},
		{"lone escape", "\x1b", 1, false},
		{"double escape", "\x1b\x1b[A", 1, true},
		{"alt key", "\x1bx", 2, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			n, complete := splitKey([]byte(tt.data))
			if n != tt.n || complete != tt.complete {
				t.Errorf("splitKey(%q) = %d, %v; want %d, %v", tt.data, n, complete, tt.n, tt.complete)
			}
		})
	}
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()
	tests := []struct {
		key  string
		want Action
	}{
		{KeyUp, ActUp},
		{"k", ActUp},
		{KeyCtrlN, ActDown},
		{KeyDownSS3, ActDown},
		{"g", ActFirst},
		{KeyEnd2, ActLast},
		{KeyCtrlG, ActShowInfo},
		{KeyEscape, ActHideInfo},
		{KeyCtrlF, ActPageDown},
		{KeyCtrlU, ActHalfPageUp},
		{KeyCtrlL, ActRefresh},
		{KeyEnter, ActCommit},
		{KeyCtrlJ, ActCommit},
		{KeyEnterSS3, ActCommit},
		{"c", ActCustom},
		{"q", ActQuit},
		{"z", ActNone},
	}
	for _, tt := range tests {
		if got := km.Lookup(tt.key); got != tt.want {
			t.Errorf("Lookup(%q) = %v, want %v", tt.key, got, tt.want)
		}
	}
}

func TestActionString(t *testing.T) {
	if ActHalfPageDown.String() != "half-page-down" {
		t.Errorf("got %q", ActHalfPageDown.String())
	}
	if Action(99).String() != "unknown" {
		t.Errorf("got %q", Action(99).String())
	}
}
