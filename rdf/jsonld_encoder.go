package rdf

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	json "github.com/goccy/go-json"
	ld "github.com/piprate/json-gold/ld"
)

// jsonldEncoder buffers triples as N-Quads and converts them on Close,
// compacting against the configured prefixes.
type jsonldEncoder struct {
	writer *bufio.Writer
	opts   EncodeOptions
	quads  strings.Builder
	closed bool
	err    error
}

func newJSONLDEncoder(w io.Writer, opts EncodeOptions) Encoder {
	return &jsonldEncoder{writer: bufio.NewWriter(w), opts: opts}
}

func (e *jsonldEncoder) Write(t Triple) error {
	if e.err != nil {
		return e.err
	}
	if e.closed {
		return ErrWriterClosed
	}
	if err := checkTriple(t); err != nil {
		return fmt.Errorf("jsonld: %w", err)
	}
	e.quads.WriteString(t.String())
	e.quads.WriteByte('\n')
	return nil
}

// Flush is a no-op; JSON-LD output is produced on Close.
func (e *jsonldEncoder) Flush() error {
	return e.err
}

func (e *jsonldEncoder) Close() error {
	if e.closed {
		return e.err
	}
	e.closed = true
	if e.err != nil {
		return e.err
	}
	proc := ld.NewJsonLdProcessor()
	options := ld.NewJsonLdOptions(e.opts.BaseIRI)
	options.Format = "application/n-quads"
	doc, err := proc.FromRDF(e.quads.String(), options)
	if err != nil {
		e.err = fmt.Errorf("jsonld: %w", err)
		return e.err
	}
	if len(e.opts.Prefixes) > 0 {
		context := make(map[string]interface{}, len(e.opts.Prefixes))
		for prefix, ns := range e.opts.Prefixes {
			if prefix == "" {
				context["@vocab"] = ns
				continue
			}
			context[prefix] = ns
		}
		doc, err = proc.Compact(doc, map[string]interface{}{"@context": context}, options)
		if err != nil {
			e.err = fmt.Errorf("jsonld: %w", err)
			return e.err
		}
	}
	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		e.err = fmt.Errorf("jsonld: %w", err)
		return e.err
	}
	if _, err := e.writer.Write(append(data, '\n')); err != nil {
		e.err = err
		return err
	}
	return e.writer.Flush()
}
