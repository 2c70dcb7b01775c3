package rdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"testing"
)

func TestCode(t *testing.T) {
	cases := []struct {
		err  error
		want ErrorCode
	}{
		{nil, ""},
		{io.EOF, ""},
		{fmt.Errorf("wrap: %w", ErrUnsupportedFormat), ErrCodeUnsupportedFormat},
		{ErrWriterClosed, ErrCodeWriterClosed},
		{context.Canceled, ErrCodeContextCanceled},
		{errors.New("boom"), ErrCodeParseError},
	}
	for _, c := range cases {
		if got := Code(c.err); got != c.want {
			t.Fatalf("Code(%v) = %s, want %s", c.err, got, c.want)
		}
	}
}

func TestParseErrorMessage(t *testing.T) {
	err := wrapParseError(FormatTurtle, strings.Repeat("x", 100), 3, 7, errors.New("bad token"))
	msg := err.Error()
	if !strings.HasPrefix(msg, "turtle:3:7: bad token") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.HasSuffix(msg, strings.Repeat("x", 80)+"...") {
		t.Fatalf("expected truncated excerpt, got %q", msg)
	}
	if wrapParseError(FormatTurtle, "", 0, 0, nil) != nil {
		t.Fatal("expected nil for nil error")
	}
	again := wrapParseError(FormatNTriples, "", 1, 1, err)
	if again != err {
		t.Fatal("expected existing ParseError to be returned unchanged")
	}
}

func TestParseHonoursCanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := Parse(ctx, strings.NewReader(""), FormatNTriples, func(Triple) error { return nil })
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}
