package client

import (
	"bytes"
	"log/slog"
	"os"
	"strings"
	"testing"

	"picotet/pb"
	"picotet/tetris"

	"github.com/fatih/color"
	"github.com/google/go-cmp/cmp"
)

func TestMain(m *testing.M) {
	color.NoColor = true
	os.Exit(m.Run())
}

func testRender(t *testing.T) (*render, *bytes.Buffer) {
	t.Helper()
	buf := &bytes.Buffer{}
	r, err := newRender(buf, slog.New(slog.DiscardHandler))
	if err != nil {
		t.Fatalf("unable to create render: %v", err)
	}
	return r, buf
}

func TestPlayfield(t *testing.T) {
	s := tetris.NewGame(nil).Read()
	got := playfield(s)
	if len(got) != tetris.DefaultHeight+1 {
		t.Fatalf("wanted %d lines, got %d", tetris.DefaultHeight+1, len(got))
	}
	empty := "|" + strings.Repeat(" .", 20) + "|"
	want := []string{
		empty,
		empty,
		"|" + strings.Repeat(" .", 8) + "[][][]" + strings.Repeat(" .", 9) + "|",
		"|" + strings.Repeat(" .", 9) + "[]" + strings.Repeat(" .", 10) + "|",
		empty,
	}
	if diff := cmp.Diff(want, got[:5]); diff != "" {
		t.Errorf("playfield mismatch (-want +got):\n%s", diff)
	}
	if bottom := got[len(got)-1]; bottom != "+"+strings.Repeat("--", 20)+"+" {
		t.Errorf("unexpected bottom wall %q", bottom)
	}
}

func TestSidebar(t *testing.T) {
	got := sidebar(10, 1388, 4, []tetris.Kind{tetris.T})
	want := []string{
		"  Score: 1,388" + clearLine,
		"  Lines: 4" + clearLine,
		clearLine,
		"  Next:" + clearLine,
		"  [][][]  " + clearLine,
		"    []    " + clearLine,
		clearLine,
		clearLine,
		clearLine,
		clearLine,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("sidebar mismatch (-want +got):\n%s", diff)
	}

	t.Run("sidebar is cut to the playfield height", func(t *testing.T) {
		got := sidebar(3, 0, 0, []tetris.Kind{tetris.I, tetris.O, tetris.Z})
		if len(got) != 3 {
			t.Errorf("wanted 3 lines, got %d", len(got))
		}
	})
}

func TestRenderFrame(t *testing.T) {
	r, buf := testRender(t)
	s := tetris.NewGame(nil).Read()

	r.Score(100)
	r.Queue([]tetris.Kind{tetris.J})
	if buf.Len() != 0 {
		t.Errorf("nothing should be drawn before the first frame, got %q", buf.String())
	}

	r.Frame(s)
	out := buf.String()
	if !strings.HasPrefix(out, resetPos) {
		t.Errorf("wanted the frame to start at the top left corner")
	}
	for _, want := range []string{"picotet", "Score: 0", "Next:", help} {
		if !strings.Contains(out, want) {
			t.Errorf("wanted %q in the frame", want)
		}
	}
	if strings.Contains(out, "\n") && !strings.Contains(out, "\r\n") {
		t.Errorf("wanted carriage returns for the raw console")
	}

	buf.Reset()
	r.Score(4164)
	if !strings.Contains(buf.String(), "Score: 4,164") {
		t.Errorf("wanted the new score to be drawn, got %q", buf.String())
	}

	buf.Reset()
	r.GameOver(4164)
	if !strings.Contains(buf.String(), overHelp) {
		t.Errorf("wanted the game over message to be drawn")
	}
	if !r.isOver() {
		t.Errorf("wanted render to report game over")
	}

	r.Frame(s)
	if r.isOver() {
		t.Errorf("a fresh frame should clear the game over")
	}
}

func TestRenderFlash(t *testing.T) {
	r, buf := testRender(t)
	r.Flash(3)
	if buf.Len() != 0 {
		t.Errorf("nothing should be drawn before the first frame")
	}

	s := tetris.NewGame(nil).Read()
	r.Frame(s)
	buf.Reset()
	r.Flash(19)
	if want := "\033[21;2H" + strings.Repeat("**", 20); buf.String() != want {
		t.Errorf("want %q, got %q", want, buf.String())
	}

	buf.Reset()
	r.Flash(20)
	if buf.Len() != 0 {
		t.Errorf("rows off the board should not flash")
	}
}

func TestRenderRemoteFrame(t *testing.T) {
	r, buf := testRender(t)
	s := tetris.NewGame(nil).Read()

	r.frame(&pb.Frame{Flash: pb.NoFlash, Snapshot: s})
	if r.snapshot != s {
		t.Errorf("wanted the frame's snapshot to be drawn")
	}

	buf.Reset()
	r.frame(&pb.Frame{Flash: 5, Snapshot: s})
	if !strings.HasPrefix(buf.String(), "\033[7;2H") {
		t.Errorf("wanted row 5 to flash, got %q", buf.String())
	}

	over := *s
	over.GameOver = true
	r.frame(&pb.Frame{Flash: pb.NoFlash, Snapshot: &over})
	if !r.isOver() {
		t.Errorf("wanted game over frames to be drawn as such")
	}
}
