package report

import (
	"io"
	"os"
	"path/filepath"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"golang.org/x/term"
)

// IsTerminal reports whether f is attached to a terminal.
func IsTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

// Highlight writes src to w with terminal syntax highlighting. The lexer is
// chosen by name (e.g. "yaml") or, failing that, by treating name as a file
// name. When color is false, or tokenising fails, src is written as is.
func Highlight(w io.Writer, src, name string, color bool) error {
	if !color {
		_, err := io.WriteString(w, src)
		return err
	}
	lexer := lexers.Get(name)
	if lexer == nil {
		lexer = lexers.Match(name)
	}
	if lexer == nil {
		if ext := filepath.Ext(name); ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		lexer = lexers.Fallback
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		formatter = formatters.Fallback
	}

	iterator, err := lexer.Tokenise(nil, src)
	if err != nil {
		_, werr := io.WriteString(w, src)
		return werr
	}
	return formatter.Format(w, style, iterator)
}
