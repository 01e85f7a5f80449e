// Package output prints search matches to the user, one per line, optionally numbered and highlighted
package output

import (
	"bufio"
	"io"
	"os"
	"strconv"
	"strings"
	"unicode"

	"github.com/UnendingLoop/minigrep/internal/matcher"
	"github.com/UnendingLoop/minigrep/internal/model"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"golang.org/x/term"
)

type Printer struct {
	w         io.Writer
	opts      model.OutputParam
	highlight *lipgloss.Style // nil - без подсветки
}

func NewPrinter(w io.Writer, opts model.OutputParam) *Printer {
	p := &Printer{w: w, opts: opts}
	if useColor(w, opts.Color) {
		r := lipgloss.NewRenderer(w)
		r.SetColorProfile(termenv.ANSI)
		style := r.NewStyle().
			Foreground(lipgloss.Color("1")).
			Bold(true).
			TabWidth(lipgloss.NoTabConversion)
		p.highlight = &style
	}
	return p
}

// Print writes matches in the given order. With CountOnly only their number is written.
func (p *Printer) Print(query string, mode model.MatchMode, matches []model.Match) error {
	bw := bufio.NewWriter(p.w)

	if p.opts.CountOnly {
		bw.WriteString(strconv.Itoa(len(matches)))
		bw.WriteByte('\n')
		return bw.Flush()
	}

	for _, m := range matches {
		if p.opts.LineNumbers {
			bw.WriteString(strconv.Itoa(m.Line))
			bw.WriteByte(':')
		}
		bw.WriteString(p.decorate(m.Text, query, mode))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// PrintLines is Print for bare lines, without line numbers.
func (p *Printer) PrintLines(query string, mode model.MatchMode, lines []string) error {
	bw := bufio.NewWriter(p.w)

	if p.opts.CountOnly {
		bw.WriteString(strconv.Itoa(len(lines)))
		bw.WriteByte('\n')
		return bw.Flush()
	}

	for _, line := range lines {
		bw.WriteString(p.decorate(line, query, mode))
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// decorate wraps every non-overlapping occurrence of query in the highlight style.
func (p *Printer) decorate(line, query string, mode model.MatchMode) string {
	if p.highlight == nil || query == "" {
		return line
	}

	hay, needle := line, query
	var offs []int
	if mode == model.CaseInsensitive {
		hay, offs = foldWithOffsets(line)
		needle = matcher.Fold(query)
	}
	// позиция в hay -> позиция в исходной строке
	orig := func(i int) int {
		if offs == nil {
			return i
		}
		return offs[i]
	}

	var sb strings.Builder
	pos, last := 0, 0
	for {
		i := strings.Index(hay[pos:], needle)
		if i < 0 {
			break
		}
		start, end := orig(pos+i), orig(pos+i+len(needle))
		sb.WriteString(line[last:start])
		sb.WriteString(p.highlight.Render(line[start:end]))
		pos, last = pos+i+len(needle), end
	}
	sb.WriteString(line[last:])
	return sb.String()
}

// foldWithOffsets lowercases s rune by rune the way matcher.Fold does.
// offs[j] is the offset in s of the rune that produced byte j of the folded
// string, offs[len(folded)] is len(s). A lowercased rune may be shorter or
// longer than the original one, so folded offsets can't be used on s directly.
func foldWithOffsets(s string) (string, []int) {
	var sb strings.Builder
	sb.Grow(len(s))
	offs := make([]int, 0, len(s)+1)
	for i, r := range s {
		n := sb.Len()
		sb.WriteRune(unicode.ToLower(r))
		for range sb.Len() - n {
			offs = append(offs, i)
		}
	}
	offs = append(offs, len(s))
	return sb.String(), offs
}

func useColor(w io.Writer, mode model.ColorMode) bool {
	switch mode {
	case model.ColorAlways:
		return true
	case model.ColorNever:
		return false
	default:
		f, ok := w.(*os.File)
		return ok && term.IsTerminal(int(f.Fd()))
	}
}
