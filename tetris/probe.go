package tetris

// CollidesLateral reports whether shape placed with its frame at (x, y)
// leaves the columns of the playfield or overlaps an occupied cell.
//
// The active piece must be withdrawn from the surface before probing,
// otherwise it collides with itself.
func CollidesLateral(s Surface, shape Shape, x, y int) bool {
	for bit := range FrameWidth * FrameHeight {
		ix, iy := bit%FrameWidth, bit/FrameWidth
		if !shape.Solid(ix, iy) {
			continue
		}
		col := x + ix
		if col < 0 || col >= s.Width() {
			return true
		}
		row := y + iy
		if row >= s.Height() || s.IsOccupied(row, col) {
			return true
		}
	}
	return false
}

// CollideLongitudinal returns the obstruction row for shape placed with its
// frame at (x, y): one more than the first blocked row found scanning the
// frame from its bottom row upward, or 0 when nothing blocks it. Reaching
// past the bottom of the playfield counts as blocked.
//
// The scan goes bottom-up so the lowest blocked row is reported first; line
// clearing starts from that same row.
func CollideLongitudinal(s Surface, shape Shape, x, y int) int {
	for bit := FrameWidth*FrameHeight - 1; bit >= 0; bit-- {
		ix, iy := bit%FrameWidth, bit/FrameWidth
		if !shape.Solid(ix, iy) {
			continue
		}
		row := y + iy
		if row > s.Height()-1 {
			return row + 1
		}
		if s.IsOccupied(row, x+ix) {
			return row + 1
		}
	}
	return 0
}
