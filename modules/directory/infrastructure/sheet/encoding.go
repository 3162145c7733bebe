package sheet

import (
	"bytes"
	"unicode/utf8"

	"github.com/go-faster/errors"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

var (
	bomUTF8    = []byte{0xEF, 0xBB, 0xBF}
	bomUTF16LE = []byte{0xFF, 0xFE}
	bomUTF16BE = []byte{0xFE, 0xFF}
)

// Decode converts a fetched payload to UTF-8 text and reports the encoding
// it detected. UTF-16 requires a BOM; invalid UTF-8 is read as Windows-1252.
func Decode(data []byte) (string, string, error) {
	switch {
	case len(data) == 0:
		return "", "utf-8", nil
	case bytes.HasPrefix(data, bomUTF8):
		return string(data[len(bomUTF8):]), "utf-8-bom", nil
	case bytes.HasPrefix(data, bomUTF16LE):
		out, err := unicode.UTF16(unicode.LittleEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", "", errors.Wrap(err, "decode utf-16le")
		}
		return string(out), "utf-16le", nil
	case bytes.HasPrefix(data, bomUTF16BE):
		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(data)
		if err != nil {
			return "", "", errors.Wrap(err, "decode utf-16be")
		}
		return string(out), "utf-16be", nil
	case utf8.Valid(data):
		return string(data), "utf-8", nil
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(data)
	if err != nil {
		return "", "", errors.Wrap(err, "decode windows-1252")
	}
	return string(out), "windows-1252", nil
}
