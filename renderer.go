package readln

import (
	"fmt"
	"io"
)

// renderer redraws the single prompt line after every accepted key: clear
// the current line, rewrite the colored prefix and buffer contents, then
// reposition the terminal cursor to the prefix width plus the buffer cursor
// column. Columns are counted in runes.
type renderer struct {
	output      io.Writer
	colorScheme *ColorScheme
}

func newRenderer(output io.Writer, colorScheme *ColorScheme) *renderer {
	if colorScheme == nil {
		colorScheme = ThemeDefault
	}
	return &renderer{
		output:      output,
		colorScheme: colorScheme,
	}
}

// renderLine clears the line and redraws prefix + input with the cursor at
// the given rune offset into input.
func (r *renderer) renderLine(prefix, input string, cursor int) error {
	// Clear line and return to column 0.
	if _, err := fmt.Fprint(r.output, "\r\x1b[2K"); err != nil {
		return err
	}

	if _, err := fmt.Fprint(r.output, r.colorScheme.Prefix.ToANSI(), prefix, Reset()); err != nil {
		return err
	}
	if _, err := fmt.Fprint(r.output, r.colorScheme.Input.ToANSI(), input, Reset()); err != nil {
		return err
	}

	return r.positionCursor(prefix, cursor)
}

// positionCursor moves the terminal cursor to prefix width + cursor columns
// from the line start.
func (r *renderer) positionCursor(prefix string, cursor int) error {
	if _, err := fmt.Fprint(r.output, "\r"); err != nil {
		return err
	}
	col := len([]rune(prefix)) + cursor
	if col > 0 {
		if _, err := fmt.Fprintf(r.output, "\x1b[%dC", col); err != nil {
			return err
		}
	}
	return nil
}

// renderSearch draws the reverse history search interface: the query line
// with the best match inline, then up to maxResults candidates below with
// the selected one highlighted. The cursor is left on the query line.
func (r *renderer) renderSearch(query string, results []string, selected int) error {
	if _, err := fmt.Fprint(r.output, "\r\x1b[2K"); err != nil {
		return err
	}

	if _, err := fmt.Fprintf(r.output, "reverse-i-search: %s%s%s",
		r.colorScheme.Match.ToANSI(), query, Reset()); err != nil {
		return err
	}
	if selected < len(results) && len(results) > 0 {
		if _, err := fmt.Fprintf(r.output, " -> %s", results[selected]); err != nil {
			return err
		}
	}
	if _, err := fmt.Fprint(r.output, "\r\n"); err != nil {
		return err
	}

	maxResults := 5
	if len(results) > maxResults {
		results = results[:maxResults]
	}

	for i, result := range results {
		if _, err := fmt.Fprint(r.output, "\r\x1b[2K"); err != nil {
			return err
		}
		if i == selected {
			if _, err := fmt.Fprintf(r.output, "  %s> %s%s\r\n",
				r.colorScheme.Selected.ToANSI(), result, Reset()); err != nil {
				return err
			}
		} else {
			if _, err := fmt.Fprintf(r.output, "    %s\r\n", result); err != nil {
				return err
			}
		}
	}

	// Move back up to the query line.
	if _, err := fmt.Fprintf(r.output, "\x1b[%dA", len(results)+1); err != nil {
		return err
	}
	return nil
}

// clearSearch erases the candidate lines left behind by renderSearch.
func (r *renderer) clearSearch(lines int) error {
	for i := 0; i < lines; i++ {
		if _, err := fmt.Fprint(r.output, "\x1b[E\x1b[2K"); err != nil {
			return err
		}
	}
	if lines > 0 {
		if _, err := fmt.Fprintf(r.output, "\x1b[%dA\r", lines); err != nil {
			return err
		}
	}
	return nil
}
