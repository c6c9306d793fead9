package logs

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/reusee/dscope"
)

func TestHandlerKeepsSpanInDerivedLogger(t *testing.T) {
	buf := new(bytes.Buffer)
	dscope.New(new(Module)).Fork(
		func() Writer {
			return buf
		},
	).Call(func(
		logger Logger,
	) {
		ctx := context.WithValue(context.Background(), SpanKey, Span("foo"))
		logger.With("runtime", "main").InfoContext(ctx, "hello")
		out := buf.String()
		if !strings.Contains(out, "logs.span=foo") ||
			!strings.Contains(out, "runtime=main") {
			t.Fatalf("got %s", out)
		}
	})
}

func TestWrapSpan(t *testing.T) {
	err := WrapSpan(context.Background(), errFoo)
	if err != errFoo {
		t.Fatalf("got %v", err)
	}
	ctx := context.WithValue(context.Background(), SpanKey, Span("bar"))
	err = WrapSpan(ctx, errFoo)
	if !strings.Contains(err.Error(), "span: bar") {
		t.Fatalf("got %v", err)
	}
}

var errFoo = errors.New("foo")
