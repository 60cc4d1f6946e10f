package gctx

import "testing"

func TestWindowSize(t *testing.T) {
	cases := []struct {
		w, h, board  int
		wantW, wantH int
	}{
		{760, 760, 480, 760, 760},
		{300, 300, 480, 520, 720},
		{1000, 500, 640, 1000, 880},
	}
	for _, c := range cases {
		w, h := WindowSize(c.w, c.h, c.board)
		if w != c.wantW || h != c.wantH {
			t.Errorf("WindowSize(%d, %d, %d) = %d x %d, want %d x %d", c.w, c.h, c.board, w, h, c.wantW, c.wantH)
		}
	}
}
