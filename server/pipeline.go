package server

import (
	"errors"
	"net/http"

	"github.com/antchfx/xmlquery"
	"github.com/gin-gonic/gin"

	"github.com/geoknoesis/x3mlmapper/mapper"
	"github.com/geoknoesis/x3mlmapper/rdf"
	"github.com/geoknoesis/x3mlmapper/x3ml"
)

// Output format tokens accepted by the output parameter.
const (
	OutputRDFXML   = "RDF/XML"
	OutputNTriples = "N-triples"
	OutputTurtle   = "Turtle"
	OutputJSONLD   = "JSON-LD"
)

// DefaultContentType is declared on every mapping response unless
// server.formatContentType is enabled.
const DefaultContentType = "text/html; charset=UTF-8"

// job carries one request through the mapping pipeline.
type job struct {
	params    Parameters
	callback  string
	engine    mapper.Engine
	document  *xmlquery.Node
	generator mapper.Generator
	output    mapper.Output
}

// outputFormat maps an output token to its format. Unknown tokens report false.
func outputFormat(token string, set bool) (rdf.Format, bool) {
	if !set {
		return rdf.FormatRDFXML, true
	}
	switch token {
	case OutputRDFXML:
		return rdf.FormatRDFXML, true
	case OutputNTriples:
		return rdf.FormatNTriples, true
	case OutputTurtle:
		return rdf.FormatTurtle, true
	case OutputJSONLD:
		return rdf.FormatJSONLD, true
	default:
		return "", false
	}
}

func (s *Server) pipeline() *Chain {
	return First(&Stage{
		Name: "parameters",
		F: func(_ any, c *gin.Context) (any, error) {
			return &job{params: ReadParameters(c, s.cfg.Defaults.UUIDSize)}, nil
		},
		E: errorResponse,
	}).Then(&Stage{
		Name: "callback",
		F: func(in any, c *gin.Context) (any, error) {
			j := in.(*job)
			host, port := localAddr(c)
			j.callback = CallbackURL(s.cfg.Callback, host, port, j.params.ID)
			s.log.DebugContext(c.Request.Context(), "mapping definition callback", "url", j.callback)
			return j, nil
		},
		E: errorResponse,
	}).Then(&Stage{
		Name: "engine",
		F: func(in any, c *gin.Context) (any, error) {
			j := in.(*job)
			engine, err := s.loader.Load(c.Request.Context(), j.callback, j.params.Thesaurus)
			if err != nil {
				return nil, err
			}
			j.engine = engine
			return j, nil
		},
		E: errorResponse,
	}).Then(&Stage{
		Name: "document",
		F: func(in any, c *gin.Context) (any, error) {
			j := in.(*job)
			var err error
			if j.params.SourceFile == "" && j.params.SourceURL != "" {
				j.document, err = s.documents.DocumentFromURL(c.Request.Context(), j.params.SourceURL)
			} else {
				j.document, err = s.documents.DocumentFromString(j.params.SourceFile)
			}
			if err != nil {
				return nil, err
			}
			return j, nil
		},
		E: errorResponse,
	}).Then(&Stage{
		Name: "policy",
		F: func(in any, c *gin.Context) (any, error) {
			j := in.(*job)
			gen, err := s.policies.Build(j.params.Generator, j.params.UUIDSize)
			if err != nil {
				return nil, err
			}
			j.generator = gen
			return j, nil
		},
		E: errorResponse,
	}).Then(&Stage{
		Name: "execute",
		F: func(in any, c *gin.Context) (any, error) {
			j := in.(*job)
			out, err := j.engine.Execute(c.Request.Context(), j.document, j.generator)
			if err != nil {
				return nil, err
			}
			j.output = out
			return j, nil
		},
		E: errorResponse,
	}).Then(&Stage{
		Name: "output",
		F:    s.writeOutput,
		E:    errorResponse,
	})
}

func (s *Server) writeOutput(in any, c *gin.Context) (any, error) {
	j := in.(*job)
	format, ok := outputFormat(j.params.Output, j.params.OutputSet)
	contentType := DefaultContentType
	if ok && s.cfg.Server.FormatContentType {
		contentType = format.MediaType() + "; charset=UTF-8"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if !ok {
		s.log.DebugContext(c.Request.Context(), "unknown output format, nothing written", "output", j.params.Output)
		return j, nil
	}
	var err error
	if format == rdf.FormatNTriples {
		body := j.output.String()
		if body == "" {
			s.log.DebugContext(c.Request.Context(), "mapping produced no triples")
		}
		_, err = c.Writer.WriteString(body)
	} else {
		err = j.output.WriteAs(c.Writer, format)
	}
	if err != nil {
		if !c.Writer.Written() {
			c.Writer.Header().Del("Content-Type")
			return nil, err
		}
		s.log.ErrorContext(c.Request.Context(), "writing response", "format", format, "code", rdf.Code(err), "error", err)
	}
	return j, nil
}

// errorResponse maps a pipeline error to its HTTP status and JSON body.
func errorResponse(err error) *StageError {
	var (
		verr *mapper.ValidationError
		perr *mapper.ParseError
		xerr *x3ml.Error
	)
	switch {
	case errors.As(err, &verr):
		return &StageError{Code: http.StatusUnprocessableEntity, Obj: H{"error": verr.Error(), "errors": verr.Errors}}
	case errors.As(err, &perr):
		return &StageError{Code: http.StatusBadRequest, Obj: H{"error": perr.Error()}}
	case errors.Is(err, mapper.ErrInvalidPolicy):
		return &StageError{Code: http.StatusBadRequest, Obj: H{"error": err.Error()}}
	case errors.Is(err, mapper.ErrResourceUnavailable):
		return &StageError{Code: http.StatusBadGateway, Obj: H{"error": err.Error()}}
	case errors.As(err, &xerr):
		return &StageError{Code: http.StatusInternalServerError, Obj: H{"error": xerr.Error()}}
	default:
		return &StageError{Code: http.StatusInternalServerError, Obj: H{"error": err.Error()}}
	}
}
