package tetris

import "fmt"

// Border is the width of the solid margin around the left, right and bottom
// edges of the playfield.
const Border = 2

// Surface is the occupancy view the collision probes work against.
type Surface interface {
	Width() int
	Height() int
	IsOccupied(row, col int) bool
}

// Board is the playfield occupancy grid.
//
// Rows are 0 > height-1 top to bottom and columns 0 > width-1 left to right.
// The margin surrounding the playfield is always occupied:
//
//	    0 1 2 ... w-1
//	# # . . .     . # #   row 0
//	# # . . .     . # #
//	# # . . .     . # #   row h-1
//	# # # # # ... # # #   row h
//	# # # # # ... # # #   row h+1
type Board struct {
	width, height int
	cells         [][]bool
}

func NewBoard(width, height int) *Board {
	b := &Board{
		width:  width,
		height: height,
		cells:  make([][]bool, height+Border),
	}
	for r := range b.cells {
		b.cells[r] = make([]bool, width+2*Border)
		for c := range b.cells[r] {
			b.cells[r][c] = r >= height || c < Border || c >= width+Border
		}
	}
	return b
}

func (b *Board) Width() int  { return b.width }
func (b *Board) Height() int { return b.height }

// IsOccupied reports whether the cell is solid. Border cells are always solid.
// Reading outside the board and its border panics.
func (b *Board) IsOccupied(row, col int) bool {
	b.mustContain(row, col)
	return b.cells[row][col+Border]
}

// Set marks an interior cell as occupied or empty. Writing to the border
// panics.
func (b *Board) Set(row, col int, occupied bool) {
	if !b.interior(row, col) {
		panic(fmt.Sprintf("tetris: set outside playfield (row %d, col %d)", row, col))
	}
	b.cells[row][col+Border] = occupied
}

// Count returns the number of occupied interior cells.
func (b *Board) Count() int {
	n := 0
	for r := range b.height {
		for c := range b.width {
			if b.cells[r][c+Border] {
				n++
			}
		}
	}
	return n
}

// Rows returns a copy of the interior occupancy, safe to keep.
func (b *Board) Rows() [][]bool {
	rows := make([][]bool, b.height)
	for r := range rows {
		rows[r] = make([]bool, b.width)
		copy(rows[r], b.cells[r][Border:Border+b.width])
	}
	return rows
}

// rowFull reports whether every interior cell of the row is occupied.
// Rows outside the playfield are never full.
func (b *Board) rowFull(row int) bool {
	if row < 0 || row >= b.height {
		return false
	}
	for c := range b.width {
		if !b.cells[row][c+Border] {
			return false
		}
	}
	return true
}

func (b *Board) fillRow(row int, occupied bool) {
	for c := range b.width {
		b.cells[row][c+Border] = occupied
	}
}

// shiftDown copies every row above row one step down. Row 0 ends up empty.
func (b *Board) shiftDown(row int) {
	for r := row; r > 0; r-- {
		copy(b.cells[r][Border:Border+b.width], b.cells[r-1][Border:Border+b.width])
	}
	b.fillRow(0, false)
}

func (b *Board) interior(row, col int) bool {
	return row >= 0 && row < b.height && col >= 0 && col < b.width
}

func (b *Board) mustContain(row, col int) {
	if row < 0 || row >= b.height+Border || col < -Border || col >= b.width+Border {
		panic(fmt.Sprintf("tetris: read outside board (row %d, col %d)", row, col))
	}
}
