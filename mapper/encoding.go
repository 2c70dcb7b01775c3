package mapper

import (
	"regexp"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Encoding names the byte encoding chosen for literal content.
type Encoding string

const (
	EncodingASCII  Encoding = "ASCII"
	EncodingLatin1 Encoding = "ISO-8859-1"
	EncodingUTF8   Encoding = "UTF-8"
)

// encodingDecl matches the encoding pseudo-attribute when it closes the XML declaration.
var encodingDecl = regexp.MustCompile(`encoding="([^"]*)"\?`)

// EncodingOf returns the encoding declared by content. Only ASCII and
// ISO-8859-1 are honoured, matched case-sensitively; everything else is UTF-8.
func EncodingOf(content string) Encoding {
	m := encodingDecl.FindStringSubmatch(content)
	if m == nil {
		return EncodingUTF8
	}
	switch Encoding(m[1]) {
	case EncodingASCII:
		return EncodingASCII
	case EncodingLatin1:
		return EncodingLatin1
	default:
		return EncodingUTF8
	}
}

// Encode converts content to enc. Runes the target cannot represent become '?'.
func Encode(content string, enc Encoding) []byte {
	var t transform.Transformer
	switch enc {
	case EncodingASCII:
		t = runes.Map(replaceAbove(0x7F))
	case EncodingLatin1:
		t = transform.Chain(runes.Map(replaceAbove(0xFF)), charmap.ISO8859_1.NewEncoder())
	default:
		return []byte(content)
	}
	out, _, err := transform.String(t, content)
	if err != nil {
		return []byte(content)
	}
	return []byte(out)
}

func replaceAbove(limit rune) func(rune) rune {
	return func(r rune) rune {
		if r > limit {
			return '?'
		}
		return r
	}
}
