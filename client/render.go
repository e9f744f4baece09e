package client

import (
	"bytes"
	_ "embed"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
	"text/template"

	"picotet/pb"
	"picotet/tetris"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
)

const (
	resetPos   = "\033[H"     // Reset cursor position to 0,0
	clearLine  = "\033[K"     // Clear from the cursor to the end of the line
	moveCursor = "\033[%d;%dH" // Move the cursor to line, column
	emptyCell  = " ."
	flashCell  = "**"
	blockCell  = "[]"

	// screen line of the first playfield row, 1-based.
	firstRowLine = 2
)

//go:embed "layout.tmpl"
var layout string

var (
	title    = color.New(color.Bold)
	gameOver = color.New(color.FgRed, color.Bold)
	stack    = color.New(color.ReverseVideo)
	colorMap = map[tetris.Kind]*color.Color{
		tetris.I: color.New(color.ReverseVideo, color.FgCyan),
		tetris.J: color.New(color.ReverseVideo, color.FgBlue),
		tetris.L: color.New(color.ReverseVideo, 38, 5, 214),
		tetris.O: color.New(color.ReverseVideo, color.FgYellow),
		tetris.S: color.New(color.ReverseVideo, color.FgGreen),
		tetris.Z: color.New(color.ReverseVideo, color.FgRed),
		tetris.T: color.New(color.ReverseVideo, color.FgMagenta),
	}
)

const (
	help     = "h/l move  space rotate  j down  k drop  r restart  q quit"
	overHelp = "Game Over!  (r)estart, any other key quits"
)

type templateData struct {
	Title  string
	Rows   []string
	Side   []string
	Footer string
}

// render draws the game on a terminal in raw mode. It implements
// tetris.Renderer and can be shared by the engine and the input loop.
type render struct {
	writer   io.Writer
	logger   *slog.Logger
	template *template.Template

	mu       sync.Mutex
	snapshot *tetris.Snapshot
	score    int
	preview  []tetris.Kind
	over     bool
}

func newRender(w io.Writer, l *slog.Logger) (*render, error) {
	tmpl, err := loadTemplate()
	if err != nil {
		return nil, fmt.Errorf("failed to load template: %w", err)
	}
	return &render{writer: w, logger: l, template: tmpl}, nil
}

func (r *render) Frame(s *tetris.Snapshot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.snapshot = s
	r.score = s.Score
	r.preview = s.Preview()
	r.over = s.GameOver
	r.draw()
}

// Flash draws the row about to be cleared straight on the screen, the next
// frame replaces it.
func (r *render) Flash(row int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.snapshot == nil || row < 0 || row >= len(r.snapshot.Rows) {
		return
	}
	width := len(r.snapshot.Rows[row])
	fmt.Fprintf(r.writer, moveCursor, firstRowLine+row, 2)
	fmt.Fprint(r.writer, strings.Repeat(flashCell, width))
}

func (r *render) Score(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.score = score
	r.draw()
}

func (r *render) Queue(preview []tetris.Kind) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.preview = preview
	r.draw()
}

func (r *render) GameOver(score int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.score = score
	r.over = true
	r.draw()
}

// isOver reports whether the last thing drawn was a finished game.
func (r *render) isOver() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.over
}

// frame draws a frame streamed by a remote session.
func (r *render) frame(f *pb.Frame) {
	if f.Flash != pb.NoFlash {
		r.Flash(f.Flash)
		return
	}
	r.Frame(f.Snapshot)
}

// draw must be called with r.mu held.
func (r *render) draw() {
	if r.snapshot == nil {
		return
	}
	var buf bytes.Buffer
	buf.WriteString(resetPos)
	if err := r.template.Execute(&buf, r.data()); err != nil {
		r.logger.Error("unable to execute template", slog.String("error", err.Error()))
		return
	}
	if _, err := r.writer.Write(buf.Bytes()); err != nil {
		r.logger.Error("unable to write frame", slog.String("error", err.Error()))
	}
}

func (r *render) data() *templateData {
	rows := playfield(r.snapshot)
	footer := help
	if r.over {
		footer = gameOver.Sprint(overHelp)
	}
	return &templateData{
		Title:  title.Sprint("picotet"),
		Rows:   rows,
		Side:   sidebar(len(rows), r.score, r.snapshot.Lines, r.preview),
		Footer: footer + clearLine,
	}
}

// playfield returns the walled board, one string per screen line, with the
// falling piece colored by its kind.
func playfield(s *tetris.Snapshot) []string {
	piece := map[[2]int]bool{}
	if !s.GameOver {
		shape := s.Piece.Shape()
		for iy := range tetris.FrameHeight {
			for ix := range tetris.FrameWidth {
				if shape.Solid(ix, iy) {
					piece[[2]int{s.Piece.Y + iy, s.Piece.X + ix}] = true
				}
			}
		}
	}
	out := make([]string, 0, len(s.Rows)+1)
	width := 0
	for y, row := range s.Rows {
		width = len(row)
		var b strings.Builder
		b.WriteString("|")
		for x, v := range row {
			switch {
			case v && piece[[2]int{y, x}]:
				b.WriteString(colorMap[s.Piece.Kind].Sprint(blockCell))
			case v:
				b.WriteString(stack.Sprint(blockCell))
			default:
				b.WriteString(emptyCell)
			}
		}
		b.WriteString("|")
		out = append(out, b.String())
	}
	return append(out, "+"+strings.Repeat("--", width)+"+")
}

// sidebar returns exactly lines entries to print next to the playfield.
func sidebar(lines, score, cleared int, preview []tetris.Kind) []string {
	side := []string{
		"  Score: " + humanize.Comma(int64(score)),
		"  Lines: " + humanize.Comma(int64(cleared)),
		"",
		"  Next:",
	}
	for _, k := range preview {
		for _, row := range tetris.ShapeOf(k, 0).Rows() {
			if !strings.Contains(row, "#") {
				continue
			}
			line := strings.ReplaceAll(row, ".", "  ")
			line = strings.ReplaceAll(line, "#", colorMap[k].Sprint(blockCell))
			side = append(side, "  "+line)
		}
		side = append(side, "")
	}
	for i := range side {
		side[i] += clearLine
	}
	for len(side) < lines {
		side = append(side, clearLine)
	}
	return side[:lines]
}

func loadTemplate() (*template.Template, error) {
	// the console is raw so new lines don't return the carriage.
	l := strings.ReplaceAll(layout, "\n", "\r\n")
	return template.New("layout").Parse(l)
}
