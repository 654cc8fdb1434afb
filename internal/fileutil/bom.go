package fileutil

import (
	"bufio"
	"io"
)

// UTF8BOM prefixes CSV output so spreadsheet tools detect UTF-8.
const UTF8BOM = "\ufeff"

// SkipBOM returns a reader that drops a leading UTF-8 byte order mark.
func SkipBOM(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(UTF8BOM)); err == nil && string(head) == UTF8BOM {
		_, _ = br.Discard(len(UTF8BOM))
	}
	return br
}
