package pb

import (
	"errors"
	"fmt"
	"strings"

	"picotet/tetris"

	"google.golang.org/protobuf/types/known/structpb"
)

const (
	solidCell = '#'
	emptyCell = '.'

	// NoFlash marks a frame that doesn't flash any row.
	NoFlash = -1
)

// Frame is what the server streams after every change of a session.
type Frame struct {
	Session string
	// Flash is the row about to be cleared, NoFlash otherwise.
	Flash int
	*tetris.Snapshot
}

// EncodeFrame converts f into its wire representation. Rows are sent as
// strings of '#' and '.' cells.
func EncodeFrame(f *Frame) (*structpb.Struct, error) {
	rows := make([]any, len(f.Rows))
	for i, r := range f.Rows {
		var sb strings.Builder
		for _, v := range r {
			if v {
				sb.WriteByte(solidCell)
				continue
			}
			sb.WriteByte(emptyCell)
		}
		rows[i] = sb.String()
	}
	queue := make([]any, len(f.Queue))
	for i, k := range f.Queue {
		queue[i] = k.String()
	}
	st, err := structpb.NewStruct(map[string]any{
		"session":   f.Session,
		"flash":     f.Flash,
		"rows":      rows,
		"queue":     queue,
		"score":     f.Score,
		"lines":     f.Lines,
		"game_over": f.GameOver,
		"piece": map[string]any{
			"kind":     f.Piece.Kind.String(),
			"rotation": f.Piece.Rotation,
			"x":        f.Piece.X,
			"y":        f.Piece.Y,
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to encode frame: %w", err)
	}
	return st, nil
}

// DecodeFrame is the inverse of EncodeFrame.
func DecodeFrame(st *structpb.Struct) (*Frame, error) {
	if st == nil {
		return nil, errors.New("empty frame")
	}
	fields := st.GetFields()
	f := &Frame{
		Session:  fields["session"].GetStringValue(),
		Flash:    int(fields["flash"].GetNumberValue()),
		Snapshot: &tetris.Snapshot{},
	}
	f.Score = int(fields["score"].GetNumberValue())
	f.Lines = int(fields["lines"].GetNumberValue())
	f.GameOver = fields["game_over"].GetBoolValue()

	var width int
	for i, v := range fields["rows"].GetListValue().GetValues() {
		s := v.GetStringValue()
		if i == 0 {
			width = len(s)
		}
		if len(s) != width {
			return nil, fmt.Errorf("row %d has %d cells, want %d", i, len(s), width)
		}
		row := make([]bool, width)
		for c := range s {
			switch s[c] {
			case solidCell:
				row[c] = true
			case emptyCell:
			default:
				return nil, fmt.Errorf("row %d: unknown cell %q", i, s[c])
			}
		}
		f.Rows = append(f.Rows, row)
	}

	for _, v := range fields["queue"].GetListValue().GetValues() {
		k, ok := tetris.ParseKind(v.GetStringValue())
		if !ok {
			return nil, fmt.Errorf("unknown kind %q in queue", v.GetStringValue())
		}
		f.Queue = append(f.Queue, k)
	}

	piece := fields["piece"].GetStructValue().GetFields()
	kind, ok := tetris.ParseKind(piece["kind"].GetStringValue())
	if !ok {
		return nil, fmt.Errorf("unknown piece kind %q", piece["kind"].GetStringValue())
	}
	rotation := int(piece["rotation"].GetNumberValue())
	if rotation < 0 || rotation >= tetris.Rotations {
		return nil, fmt.Errorf("piece rotation %d out of range", rotation)
	}
	f.Piece = tetris.Piece{
		Kind:     kind,
		Rotation: rotation,
		X:        int(piece["x"].GetNumberValue()),
		Y:        int(piece["y"].GetNumberValue()),
	}
	return f, nil
}
