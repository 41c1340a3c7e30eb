// Package encoding decodes document text of unknown encoding to UTF-8.
package encoding

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"unicode/utf8"

	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/htmlindex"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// sniffLen is how much of the input is inspected before decoding.
const sniffLen = 4096

var boms = []struct {
	mark []byte
	enc  encoding.Encoding
}{
	{[]byte{0xEF, 0xBB, 0xBF}, nil},
	{[]byte{0xFF, 0xFE}, unicode.UTF16(unicode.LittleEndian, unicode.UseBOM)},
	{[]byte{0xFE, 0xFF}, unicode.UTF16(unicode.BigEndian, unicode.UseBOM)},
}

// Charsets reported by chardet that are trusted. Everything else falls back
// to Windows-1252, which covers the Western European invoices we see.
var trustedCharsets = map[string]bool{
	"ISO-8859-1":   true,
	"ISO-8859-2":   true,
	"ISO-8859-9":   true,
	"windows-1250": true,
	"windows-1252": true,
	"windows-1254": true,
}

// NewUTF8Reader returns a reader that yields r decoded to UTF-8.
//
// Detection order:
//  1. Byte order mark (UTF-8 is stripped, UTF-16 is decoded)
//  2. Valid UTF-8 passes through
//  3. A single-byte Latin charset guessed by chardet
//  4. Windows-1252
func NewUTF8Reader(r io.Reader) (io.Reader, error) {
	br := bufio.NewReaderSize(r, sniffLen)

	buf, err := br.Peek(sniffLen)
	if err != nil && err != io.EOF && err != bufio.ErrBufferFull {
		return nil, fmt.Errorf("peek: %w", err)
	}

	for _, b := range boms {
		if !bytes.HasPrefix(buf, b.mark) {
			continue
		}

		if b.enc == nil {
			_, _ = br.Discard(len(b.mark))
			return br, nil
		}

		return transform.NewReader(br, b.enc.NewDecoder()), nil
	}

	if utf8.Valid(trimPartialRune(buf)) {
		return br, nil
	}

	return transform.NewReader(br, detect(buf).NewDecoder()), nil
}

func detect(buf []byte) encoding.Encoding {
	result, err := chardet.NewTextDetector().DetectBest(buf)
	if err != nil || !trustedCharsets[result.Charset] {
		return charmap.Windows1252
	}

	enc, err := htmlindex.Get(result.Charset)
	if err != nil {
		return charmap.Windows1252
	}

	return enc
}

// trimPartialRune drops a multi-byte sequence cut off by the sniff window.
func trimPartialRune(buf []byte) []byte {
	if len(buf) < sniffLen {
		return buf
	}

	for i := 1; i <= utf8.UTFMax && i <= len(buf); i++ {
		if utf8.RuneStart(buf[len(buf)-i]) {
			if !utf8.FullRune(buf[len(buf)-i:]) {
				return buf[:len(buf)-i]
			}

			break
		}
	}

	return buf
}
