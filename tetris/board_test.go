package tetris

import "testing"

func TestBoardBorder(t *testing.T) {
	b := NewBoard(10, 20)
	tests := []struct {
		name     string
		row, col int
		want     bool
	}{
		{name: "interior", row: 0, col: 0},
		{name: "left border", row: 5, col: -1, want: true},
		{name: "outer left border", row: 5, col: -2, want: true},
		{name: "right border", row: 5, col: 10, want: true},
		{name: "bottom border", row: 20, col: 3, want: true},
		{name: "bottom corner", row: 21, col: 11, want: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := b.IsOccupied(tt.row, tt.col); got != tt.want {
				t.Errorf("IsOccupied(%d, %d) = %t, want %t", tt.row, tt.col, got, tt.want)
			}
		})
	}
	if b.Count() != 0 {
		t.Errorf("new board has %d occupied cells", b.Count())
	}
}

func TestBoardOutOfBoundsPanics(t *testing.T) {
	b := NewBoard(10, 20)
	tests := []struct {
		name string
		do   func()
	}{
		{name: "read above the board", do: func() { b.IsOccupied(-1, 0) }},
		{name: "read past the border", do: func() { b.IsOccupied(0, 12) }},
		{name: "write to the border", do: func() { b.Set(20, 0, false) }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			defer func() {
				if recover() == nil {
					t.Errorf("expected panic")
				}
			}()
			tt.do()
		})
	}
}

func TestShiftDown(t *testing.T) {
	b := NewBoard(4, 6)
	b.Fill([2]int{0, 0}, [2]int{1, 1}, [2]int{2, 2})
	b.shiftDown(3)

	for _, c := range [][2]int{{1, 0}, {2, 1}, {3, 2}} {
		if !b.IsOccupied(c[0], c[1]) {
			t.Errorf("expected (%d, %d) to be occupied after shift", c[0], c[1])
		}
	}
	if b.Count() != 3 {
		t.Errorf("expected 3 occupied cells, got %d", b.Count())
	}
	for c := range 4 {
		if b.IsOccupied(0, c) {
			t.Errorf("expected top row to be empty, col %d is occupied", c)
		}
	}
}
