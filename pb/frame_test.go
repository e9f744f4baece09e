package pb

import (
	"strings"
	"testing"

	"picotet/tetris"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/structpb"
)

func TestFrameRoundTrip(t *testing.T) {
	tts := tetris.NewTestTetris(tetris.S)
	tts.Score = 1041
	tts.Lines = 3
	in := &Frame{Session: "abc", Flash: 7, Snapshot: tts.Read()}

	st, err := EncodeFrame(in)
	require.NoError(t, err)
	rows := st.GetFields()["rows"].GetListValue().GetValues()
	require.Len(t, rows, tetris.DefaultHeight)
	assert.Equal(t, strings.Repeat(".", 8)+"##"+strings.Repeat(".", 10), rows[2].GetStringValue())

	out, err := DecodeFrame(st)
	require.NoError(t, err)
	assert.Equal(t, in, out)
}

func TestDecodeFrameErrors(t *testing.T) {
	tests := []struct {
		name  string
		frame map[string]any
	}{
		{
			name:  "ragged rows",
			frame: map[string]any{"rows": []any{"..", "..."}},
		},
		{
			name:  "unknown cell",
			frame: map[string]any{"rows": []any{".x"}},
		},
		{
			name:  "unknown queue kind",
			frame: map[string]any{"queue": []any{"T", "W"}},
		},
		{
			name:  "missing piece",
			frame: map[string]any{"queue": []any{"T"}},
		},
		{
			name:  "rotation past the last one",
			frame: map[string]any{"piece": map[string]any{"kind": "Z", "rotation": 7}},
		},
		{
			name:  "negative rotation",
			frame: map[string]any{"piece": map[string]any{"kind": "T", "rotation": -1}},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st, err := structpb.NewStruct(tt.frame)
			require.NoError(t, err)
			_, err = DecodeFrame(st)
			assert.Error(t, err)
		})
	}

	_, err := DecodeFrame(nil)
	assert.Error(t, err)

	t.Run("encoded piece with an unknown rotation", func(t *testing.T) {
		s := tetris.NewTestTetris(tetris.Z).Read()
		s.Piece.Rotation = 7
		st, err := EncodeFrame(&Frame{Flash: NoFlash, Snapshot: s})
		require.NoError(t, err)
		_, err = DecodeFrame(st)
		assert.ErrorContains(t, err, "rotation")
	})
}
