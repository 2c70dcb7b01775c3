package mapper

import (
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/x3mlmapper/rdf"
)

func TestEncodingOf(t *testing.T) {
	cases := map[string]Encoding{
		`<root>café</root>`:                                         EncodingUTF8,
		`<?xml version="1.0" encoding="ASCII"?><root/>`:             EncodingASCII,
		`<?xml version="1.0" encoding="ISO-8859-1"?><root/>`:        EncodingLatin1,
		`<?xml version="1.0" encoding="UTF-16"?><root/>`:            EncodingUTF8,
		`<?xml version="1.0" encoding="bogus"?><root/>`:             EncodingUTF8,
		`<?xml version="1.0" encoding="iso-8859-1"?><root/>`:        EncodingUTF8,
		`<?xml version="1.0" encoding="ASCII" standalone="no"?><r/>`: EncodingUTF8,
		"":                                                          EncodingUTF8,
	}
	for content, want := range cases {
		assert.Equal(t, want, EncodingOf(content), content)
	}
}

func TestStringResourceEncodesContent(t *testing.T) {
	t.Run("no declaration is UTF-8", func(t *testing.T) {
		r := require.New(t)
		res := StringResource("<a>é€</a>")
		data, err := io.ReadAll(res)
		r.NoError(err)
		r.Equal(EncodingUTF8, res.Encoding)
		r.Equal([]byte("<a>é€</a>"), data)
	})

	t.Run("ASCII replaces non-ASCII runes", func(t *testing.T) {
		r := require.New(t)
		content := `<?xml version="1.0" encoding="ASCII"?><a>é€</a>`
		data, err := io.ReadAll(StringResource(content))
		r.NoError(err)
		r.Equal([]byte(`<?xml version="1.0" encoding="ASCII"?><a>??</a>`), data)
	})

	t.Run("ISO-8859-1 writes single bytes", func(t *testing.T) {
		r := require.New(t)
		content := `<?xml version="1.0" encoding="ISO-8859-1"?><a>é€</a>`
		data, err := io.ReadAll(StringResource(content))
		r.NoError(err)
		want := append([]byte(`<?xml version="1.0" encoding="ISO-8859-1"?><a>`), 0xE9, '?')
		want = append(want, []byte("</a>")...)
		r.Equal(want, data)
	})

	t.Run("unknown declaration is UTF-8", func(t *testing.T) {
		r := require.New(t)
		content := `<?xml version="1.0" encoding="KOI8-R"?><a>é</a>`
		data, err := io.ReadAll(StringResource(content))
		r.NoError(err)
		r.Equal([]byte(content), data)
	})
}

func TestThesaurusFormat(t *testing.T) {
	cases := map[string]rdf.Format{
		"@prefix skos: <http://www.w3.org/2004/02/skos/core#> .": rdf.FormatTurtle,
		"<rdf:RDF xmlns:rdf=\"x\"/>":                              rdf.FormatRDFXML,
		"<http://x/a> <http://x/b> <http://x/c> .":                rdf.FormatNTriples,
		"":                                                        rdf.FormatNTriples,
		" @prefix ex: <http://example.org/> .":                    rdf.FormatNTriples,
		"\n<rdf:RDF/>":                                            rdf.FormatNTriples,
		"<?xml version=\"1.0\"?><rdf:RDF/>":                       rdf.FormatNTriples,
	}
	for content, want := range cases {
		assert.Equal(t, want, ThesaurusFormat(content), "%q", content)
	}
}
