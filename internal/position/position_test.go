package position

import "testing"

func pos(line, col, off int) Position {
	return Position{Filename: "test.picto", Line: line, Column: col, Offset: off}
}

func TestPositionString(t *testing.T) {
	tests := []struct {
		name string
		pos  Position
		want string
	}{
		{"with filename", pos(3, 7, 20), "test.picto:3:7"},
		{"without filename", Position{Line: 1, Column: 2, Offset: 1}, "1:2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.pos.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestPositionValidity(t *testing.T) {
	if !pos(1, 1, 0).IsValid() {
		t.Error("1:1 should be valid")
	}
	if (Position{Line: 0, Column: 1}).IsValid() {
		t.Error("line 0 should be invalid")
	}
}

func TestSpanContains(t *testing.T) {
	s := Span{Start: pos(1, 1, 0), End: pos(1, 6, 5)}
	if !s.Contains(pos(1, 3, 2)) {
		t.Error("span should contain interior position")
	}
	if s.Contains(pos(1, 6, 5)) {
		t.Error("span end is exclusive")
	}
}

func TestSpanUnion(t *testing.T) {
	a := Span{Start: pos(1, 1, 0), End: pos(1, 4, 3)}
	b := Span{Start: pos(2, 1, 10), End: pos(2, 5, 14)}
	u := a.Union(b)
	if u.Start != a.Start || u.End != b.End {
		t.Errorf("Union() = %v, want %v..%v", u, a.Start, b.End)
	}
}
