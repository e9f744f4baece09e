package tetris

// Kind is one of the seven piece kinds.
type Kind uint8

const (
	T Kind = iota
	L
	J
	O
	I
	S
	Z
)

// Kinds lists every kind in catalog order.
var Kinds = [...]Kind{T, L, J, O, I, S, Z}

func (k Kind) String() string {
	switch k {
	case T:
		return "T"
	case L:
		return "L"
	case J:
		return "J"
	case O:
		return "O"
	case I:
		return "I"
	case S:
		return "S"
	case Z:
		return "Z"
	}
	return "?"
}

// ParseKind returns the kind named by s.
func ParseKind(s string) (Kind, bool) {
	for _, k := range Kinds {
		if k.String() == s {
			return k, true
		}
	}
	return 0, false
}

const (
	FrameWidth  = 4
	FrameHeight = 4
	Rotations   = 4
)

// Shape is a 4x4 occupancy mask. Bit row*4+col set means the cell is solid.
//
//	bit	0  1  2  3
//		4  5  6  7
//		8  9  10 11
//		12 13 14 15
type Shape uint16

// shapes holds every rotation of every kind, indexed by kind*4 + rotation.
// Rotations are tabulated, never computed.
var shapes = [len(Kinds) * Rotations]Shape{
	// T
	0x2700, 0x2620, 0x0720, 0x2320,
	// L
	0x1700, 0x6220, 0x0740, 0x2230,
	// J
	0x4700, 0x2260, 0x0710, 0x3220,
	// O
	0x6600, 0x6600, 0x6600, 0x6600,
	// I
	0x0f00, 0x4444, 0x0f00, 0x4444,
	// S
	0x2310, 0x3600, 0x2310, 0x3600,
	// Z
	0x1320, 0x6300, 0x1320, 0x6300,
}

// ShapeOf returns the mask of kind k at the given rotation unit (0 to 3).
func ShapeOf(k Kind, rotation int) Shape {
	return shapes[int(k)*Rotations+rotation]
}

// Solid reports whether the cell at (col, row) of the frame is occupied.
func (s Shape) Solid(col, row int) bool {
	return s&(1<<(row*FrameWidth+col)) != 0
}

// Rows renders the mask as FrameHeight strings, '#' for solid cells.
func (s Shape) Rows() []string {
	rows := make([]string, FrameHeight)
	for r := range FrameHeight {
		b := make([]byte, FrameWidth)
		for c := range FrameWidth {
			b[c] = '.'
			if s.Solid(c, r) {
				b[c] = '#'
			}
		}
		rows[r] = string(b)
	}
	return rows
}
