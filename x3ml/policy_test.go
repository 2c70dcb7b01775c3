package x3ml

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/x3mlmapper/mapper"
	"github.com/geoknoesis/x3mlmapper/rdf"
)

var testNamespaces = map[string]string{"ex": ex}

func TestPolicyBuiltins(t *testing.T) {
	policy, err := LoadPolicy(strings.NewReader(""), mapper.NewUUIDSource(2))
	require.NoError(t, err)

	term, err := policy.Generate(GeneratorUUID, nil, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI{Value: "uuid:AA"}, term)

	term, err = policy.Generate(GeneratorLiteral, map[string]string{"text": "hello", "language": "en"}, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.Literal{Lexical: "hello", Lang: "en"}, term)

	term, err = policy.Generate(GeneratorConstant, map[string]string{"text": "ex:Thing"}, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI{Value: ex + "Thing"}, term)

	term, err = policy.Generate(GeneratorURIorUUID, map[string]string{"text": "http://example.org/x"}, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI{Value: "http://example.org/x"}, term)

	term, err = policy.Generate(GeneratorURIorUUID, map[string]string{"text": "not a uri"}, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI{Value: "uuid:AB"}, term)

	_, err = policy.Generate(GeneratorLiteral, map[string]string{}, testNamespaces)
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = policy.Generate("Nope", nil, testNamespaces)
	assert.ErrorIs(t, err, ErrUnknownGenerator)
}

func TestPolicyPatternGenerators(t *testing.T) {
	doc := `<generator_policy>
  <generator name="PlaceURI" prefix="ex"><pattern>place/{name}</pattern></generator>
  <generator name="Absolute"><pattern>http://other.org/{id}</pattern></generator>
  <generator name="FullName" type="literal"><pattern>{first} {last}</pattern></generator>
  <generator name="Orphan" prefix="zz"><pattern>{id}</pattern></generator>
</generator_policy>`
	policy, err := LoadPolicy(strings.NewReader(doc), mapper.NewUUIDSource(2))
	require.NoError(t, err)

	term, err := policy.Generate("PlaceURI", map[string]string{"name": "New York"}, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI{Value: ex + "place/New%20York"}, term)

	term, err = policy.Generate("Absolute", map[string]string{"id": "7"}, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.IRI{Value: "http://other.org/7"}, term)

	term, err = policy.Generate("FullName", map[string]string{"first": "Ada", "last": "Lovelace"}, testNamespaces)
	require.NoError(t, err)
	assert.Equal(t, rdf.Literal{Lexical: "Ada Lovelace"}, term)

	_, err = policy.Generate("PlaceURI", map[string]string{}, testNamespaces)
	assert.ErrorIs(t, err, ErrMissingArgument)

	_, err = policy.Generate("Orphan", map[string]string{"id": "1"}, testNamespaces)
	assert.ErrorIs(t, err, ErrUndeclaredPrefix)
}

func TestLoadPolicyRejectsInvalidDocuments(t *testing.T) {
	cases := map[string]string{
		"malformed":  "<generator_policy>",
		"no name":    "<generator_policy><generator><pattern>x</pattern></generator></generator_policy>",
		"no pattern": `<generator_policy><generator name="A"/></generator_policy>`,
		"bad type":   `<generator_policy><generator name="A" type="blank"><pattern>x</pattern></generator></generator_policy>`,
		"duplicate":  `<generator_policy><generator name="A"><pattern>x</pattern></generator><generator name="A"><pattern>y</pattern></generator></generator_policy>`,
		"wrong root": `<policy/>`,
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := LoadPolicy(strings.NewReader(doc), nil)
			assert.Error(t, err)
		})
	}
}

func TestThesaurusIsNarrower(t *testing.T) {
	var empty *Thesaurus
	assert.True(t, empty.IsNarrower("a", "a"))
	assert.False(t, empty.IsNarrower("a", "b"))

	th, err := LoadThesaurus(context.Background(), strings.NewReader(
		"<http://x/a> <http://www.w3.org/2004/02/skos/core#broader> <http://x/b> .\n"+
			"<http://x/b> <http://www.w3.org/2004/02/skos/core#broader> <http://x/a> .\n"+
			"<http://x/c> <http://www.w3.org/2004/02/skos/core#narrower> <http://x/b> .\n"), rdf.FormatNTriples)
	require.NoError(t, err)
	assert.True(t, th.IsNarrower("http://x/a", "http://x/c"))
	assert.False(t, th.IsNarrower("http://x/c", "http://x/a"))
}

func TestPolicyDeclaredEncodings(t *testing.T) {
	cases := map[string]struct {
		encoding string
		want     string
	}{
		"latin-1": {encoding: "ISO-8859-1", want: ex + "café/7"},
		"ascii":   {encoding: "ASCII", want: ex + "caf?/7"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			doc := `<?xml version="1.0" encoding="` + tc.encoding + `"?>
<generator_policy>
  <generator name="CafeURI" prefix="ex"><pattern>café/{id}</pattern></generator>
</generator_policy>`
			policy, err := mapper.NewPolicyBuilder(NewPolicyFactory()).Build(doc, 2)
			require.NoError(t, err)

			term, err := policy.Generate("CafeURI", map[string]string{"id": "7"}, testNamespaces)
			require.NoError(t, err)
			assert.Equal(t, rdf.IRI{Value: tc.want}, term)
		})
	}
}
