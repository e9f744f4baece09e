package tetris

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClearFrom(t *testing.T) {
	tests := []struct {
		name        string
		start       int
		full        []int
		fill        [][2]int
		wantCleared bool
		wantCells   [][2]int
		wantFlashes []int
	}{
		{
			name:        "two adjacent full rows",
			start:       18,
			full:        []int{17, 18},
			fill:        [][2]int{{15, 3}, {16, 0}},
			wantCleared: true,
			wantCells:   [][2]int{{17, 3}, {18, 0}},
			wantFlashes: []int{18, 18},
		},
		{
			name:  "no full row",
			start: 19,
			fill:  [][2]int{{19, 0}, {18, 5}},
			wantCells: [][2]int{
				{18, 5}, {19, 0},
			},
		},
		{
			name:        "full rows with a gap",
			start:       19,
			full:        []int{17, 19},
			fill:        [][2]int{{18, 4}},
			wantCleared: true,
			wantCells:   [][2]int{{19, 4}},
			wantFlashes: []int{19, 18},
		},
		{
			name:        "full row at the edge of the scan",
			start:       18,
			full:        []int{14},
			wantCleared: true,
			wantFlashes: []int{14},
		},
		{
			name:      "full row out of reach",
			start:     18,
			full:      []int{13},
			wantCells: fullRow(13, 20),
		},
		{
			name:        "start below the playfield",
			start:       20,
			full:        []int{19},
			wantCleared: true,
			wantFlashes: []int{19},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			tetris := NewTestTetris(T)
			tetris.draw(false)
			for _, r := range tt.full {
				tetris.Board.FillRow(r)
			}
			tetris.Board.Fill(tt.fill...)
			_, render, _ := NewTestGame(tetris)

			if got := tetris.clearFrom(tt.start); got != tt.wantCleared {
				t.Errorf("clearFrom(%d) = %t, want %t", tt.start, got, tt.wantCleared)
			}
			if diff := cmp.Diff(tt.wantCells, cells(tetris.Board)); diff != "" {
				t.Errorf("cells mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.wantFlashes, render.Flashes); diff != "" {
				t.Errorf("flashes mismatch (-want +got):\n%s", diff)
			}
			wantScore := len(tt.wantFlashes) * DefaultScoreIncrement
			if tetris.Score != wantScore {
				t.Errorf("wanted score %d, got %d", wantScore, tetris.Score)
			}
			if tetris.Lines != len(tt.wantFlashes) {
				t.Errorf("wanted %d lines, got %d", len(tt.wantFlashes), tetris.Lines)
			}
		})
	}
}

func TestClearFlashesBeforeClearing(t *testing.T) {
	tetris := NewTestTetris(T)
	tetris.draw(false)
	tetris.Board.FillRow(19)
	_, render, clock := NewTestGame(tetris)

	tetris.clearFrom(19)

	// the frame between the two pauses shows the emptied row in place.
	if len(render.Frames) != 1 {
		t.Fatalf("wanted 1 frame, got %d", len(render.Frames))
	}
	for c, v := range render.Frames[0].Rows[19] {
		if v {
			t.Errorf("wanted row 19 empty in the flash frame, col %d is occupied", c)
		}
	}
	if len(clock.Sleeps()) != 2 {
		t.Errorf("wanted 2 pauses, got %v", clock.Sleeps())
	}
}

func fullRow(row, width int) [][2]int {
	out := make([][2]int, width)
	for c := range width {
		out[c] = [2]int{row, c}
	}
	return out
}
