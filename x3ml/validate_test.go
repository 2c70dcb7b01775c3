package x3ml

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/geoknoesis/x3mlmapper/mapper"
)

func TestValidateAcceptsDefinition(t *testing.T) {
	assert.Empty(t, Validate(strings.NewReader(definition(""))))
}

func TestValidateDeclaredEncodings(t *testing.T) {
	cases := map[string]struct {
		encoding string
		want     string
	}{
		"latin-1": {encoding: "ISO-8859-1", want: "é"},
		"ascii":   {encoding: "ASCII", want: "?"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			content := `<?xml version="1.0" encoding="` + tc.encoding + `"?>` + "\n" +
				strings.Replace(definition(""), `type="constant">en<`, `type="constant">é<`, 1)

			assert.Empty(t, Validate(mapper.StringResource(content)))

			def, err := DecodeDefinition(mapper.StringResource(content))
			require.NoError(t, err)
			args := def.Mappings[0].Links[0].Range.Target.Entity.LabelGenerators[0].Args
			require.Len(t, args, 2)
			assert.Equal(t, tc.want, args[1].Value)
		})
	}
}

func TestValidateReportsProblems(t *testing.T) {
	cases := map[string]struct {
		input string
		want  string
	}{
		"malformed": {
			input: "<x3ml><mappings>",
			want:  "invalid definition",
		},
		"wrong root": {
			input: "<mapping/>",
			want:  "invalid definition",
		},
		"no mappings": {
			input: "<x3ml><mappings/></x3ml>",
			want:  "Definition.Mappings: failed required",
		},
		"bad xpath": {
			input: strings.Replace(definition(""), "<source_node>//person</source_node>", "<source_node>//person[</source_node>", 1),
			want:  "mapping[0].domain.source_node: invalid XPath",
		},
		"undeclared prefix": {
			input: strings.Replace(definition(""), "crm:P1_is_identified_by", "foo:P1", 1),
			want:  `undeclared prefix: "foo"`,
		},
		"missing intermediate": {
			input: strings.Replace(definition(""), "<entity><type>crm:E67_Birth</type></entity>", "", 1),
			want:  "2 relationships need 1 intermediate entities, found 0",
		},
		"missing type": {
			input: strings.Replace(definition(""), "<type>crm:E21_Person</type>", "", 1),
			want:  "Types: failed required",
		},
		"bad arg type": {
			input: strings.Replace(definition(""), `type="constant"`, `type="sparql"`, 1),
			want:  "Type: failed oneof=xpath constant",
		},
		"empty condition": {
			input: definition("<if></if>"),
			want:  "mapping[0].domain.target_node.if: empty condition",
		},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			problems := Validate(strings.NewReader(tc.input))
			assert.NotEmpty(t, problems)
			assert.Contains(t, strings.Join(problems, "\n"), tc.want)
		})
	}
}
