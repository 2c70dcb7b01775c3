package server

import (
	"strconv"

	"github.com/gin-gonic/gin"
)

// Request parameter names.
const (
	ParamID         = "id"
	ParamSourceFile = "sourceFile"
	ParamSourceURL  = "sourceURL"
	ParamGenerator  = "generator"
	ParamThesaurus  = "thesaurus"
	ParamUUIDSize   = "uuidSize"
	ParamOutput     = "output"
)

// Parameters are the inputs of one mapping request.
type Parameters struct {
	ID         string
	SourceFile string
	SourceURL  string
	Generator  string
	// Thesaurus is nil when no thesaurus was supplied.
	Thesaurus *string
	UUIDSize  int
	Output    string
	OutputSet bool
}

// ReadParameters collects the request parameters from the query string or the form body.
func ReadParameters(c *gin.Context, defaultUUIDSize int) Parameters {
	p := Parameters{
		ID:         param(c, ParamID),
		SourceFile: param(c, ParamSourceFile),
		SourceURL:  param(c, ParamSourceURL),
		Generator:  param(c, ParamGenerator),
	}
	if th, ok := lookup(c, ParamThesaurus); ok && th != "" {
		p.Thesaurus = &th
	}
	raw, ok := lookup(c, ParamUUIDSize)
	p.UUIDSize = ParseUUIDSize(raw, ok, defaultUUIDSize)
	p.Output, p.OutputSet = lookup(c, ParamOutput)
	return p
}

// ParseUUIDSize returns raw as an integer, or def when raw is absent or not a number.
func ParseUUIDSize(raw string, present bool, def int) int {
	if !present {
		return def
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		return def
	}
	return n
}

func param(c *gin.Context, key string) string {
	v, _ := lookup(c, key)
	return v
}

func lookup(c *gin.Context, key string) (string, bool) {
	if v, ok := c.GetQuery(key); ok {
		return v, true
	}
	return c.GetPostForm(key)
}
