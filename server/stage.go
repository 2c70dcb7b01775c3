package server

import (
	"time"

	"github.com/gin-gonic/gin"
)

// H is the shape of JSON error bodies.
type H map[string]any

// Stage is one step of a request pipeline. F receives the output of the previous
// stage and returns its own output for the next. When F fails, E turns the error
// into the HTTP status and JSON body of the response.
type Stage struct {
	Name string
	F    func(any, *gin.Context) (any, error)
	E    func(error) *StageError
	n    *Stage
}

// StageError is the response produced by a failing stage.
type StageError struct {
	Code int
	Obj  any
}

// Chain links stages together. Build it as First(s0).Then(s1).Then(s2).
type Chain struct {
	First *Stage
	Last  *Stage
}

func First(s *Stage) *Chain {
	return &Chain{First: s, Last: s}
}

func (ch *Chain) Then(n *Stage) *Chain {
	ch.Last.n = n
	ch.Last = n
	return ch
}

// Execute runs the stages in order and stops at the first failure.
func Execute(ch *Chain, c *gin.Context, lgr Logger) (any, *StageError) {
	var d any
	for s := ch.First; s != nil; s = s.n {
		t := time.Now()
		out, err := s.F(d, c)
		var e *StageError
		if err != nil {
			e = s.E(err)
		}
		if lgr != nil {
			lgr.LogStageComplete(c.Request.Context(), e == nil, time.Since(t), s.Name)
			if e != nil {
				lgr.LogStageError(c.Request.Context(), s.Name, err)
			}
		}
		if e != nil {
			return nil, e
		}
		d = out
	}
	return d, nil
}
