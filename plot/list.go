package plot

import (
	"bufio"
	"fmt"
	"io"

	"golang.org/x/text/language"

	"github.com/gogpu/odeglue"
)

// WriteList writes the textual listing of pieces in insertion order:
// a title followed by one "- <description> :  <label>" line per piece.
// With no pieces it writes the prompt to add some instead.
func WriteList(w io.Writer, pieces []odeglue.Piece, lang language.Tag) error {
	texts := odeglue.TextsFor(lang)
	bw := bufio.NewWriter(w)
	if len(pieces) == 0 {
		fmt.Fprintln(bw, texts.EmptyPrompt)
		return bw.Flush()
	}
	fmt.Fprintln(bw, texts.ListTitle)
	for _, p := range pieces {
		fmt.Fprintf(bw, "- %s :  %s\n", p.DisplayDescription(), p.DisplayLabel())
	}
	return bw.Flush()
}
