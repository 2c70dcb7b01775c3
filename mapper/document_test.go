package mapper

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDocumentFromString(t *testing.T) {
	r := require.New(t)
	p := NewDocumentParser(NewResolver())
	root, err := p.DocumentFromString(`<?xml version="1.0"?><ex:root xmlns:ex="http://example.org/"><ex:item>1</ex:item></ex:root>`)
	r.NoError(err)
	r.Equal("root", root.Data)
	r.Equal("http://example.org/", root.NamespaceURI)
}

func TestDocumentFromStringLatin1(t *testing.T) {
	r := require.New(t)
	p := NewDocumentParser(NewResolver())
	root, err := p.DocumentFromString(`<?xml version="1.0" encoding="ISO-8859-1"?><name>Zoë</name>`)
	r.NoError(err)
	r.Equal("Zoë", root.InnerText())
}

func TestDocumentFromStringFailure(t *testing.T) {
	p := NewDocumentParser(NewResolver())
	for _, content := range []string{"<root>", "", "not xml", "<r/><s/>", "<r/>text<s/>"} {
		root, err := p.DocumentFromString(content)
		assert.Nil(t, root)
		var parseErr *ParseError
		require.ErrorAs(t, err, &parseErr)
		assert.Equal(t, "Unable to parse "+content, err.Error())
	}
}

func TestDocumentFromURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
		if req.URL.Path == "/missing" {
			http.NotFound(w, req)
			return
		}
		_, _ = io.WriteString(w, "<records><record/></records>")
	}))
	defer srv.Close()
	p := NewDocumentParser(NewResolver())

	root, err := p.DocumentFromURL(context.Background(), srv.URL+"/source.xml")
	require.NoError(t, err)
	assert.Equal(t, "records", root.Data)

	_, err = p.DocumentFromURL(context.Background(), srv.URL+"/missing")
	var parseErr *ParseError
	require.ErrorAs(t, err, &parseErr)
	assert.Equal(t, "Unable to parse "+srv.URL+"/missing", err.Error())
	assert.ErrorIs(t, err, ErrResourceUnavailable)
}
