package x3ml

import (
	"errors"
	"fmt"
	"io"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// Validate decodes an X3ML document and returns its problems. An empty result means valid.
func Validate(r io.Reader) []string {
	def, err := DecodeDefinition(r)
	if err != nil {
		return []string{err.Error()}
	}
	return def.Validate()
}

// Validate checks required fields, XPath syntax, prefixes and relationship chains.
func (d *Definition) Validate() []string {
	var problems []string
	problems = append(problems, structProblems(d)...)
	c := newCompiler(d)
	c.compile(d)
	return append(problems, c.problems...)
}

func structProblems(v interface{}) []string {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return []string{err.Error()}
	}
	problems := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Param() != "" {
			problems = append(problems, fmt.Sprintf("%s: failed %s=%s", fe.Namespace(), fe.Tag(), fe.Param()))
			continue
		}
		problems = append(problems, fmt.Sprintf("%s: failed %s", fe.Namespace(), fe.Tag()))
	}
	return problems
}
