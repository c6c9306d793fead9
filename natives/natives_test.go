package natives

import (
	"slices"
	"strings"
	"testing"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func exec(t *testing.T, thread *starlark.Thread, src string, predeclared starlark.StringDict) (starlark.StringDict, error) {
	t.Helper()
	return starlark.ExecFileOptions(&syntax.FileOptions{
		TopLevelControl: true,
		While:           true,
	}, thread, t.Name()+".star", src, predeclared)
}

func TestCanvas(t *testing.T) {
	canvas := NewCanvas(2, 3)
	thread := &starlark.Thread{Name: "main"}
	globals, err := exec(t, thread, `
before = canvas.area()
canvas.resize(4, height = 5)
after = canvas.area()
size = canvas.size
canvas.title = "hello"
title = canvas.title
names = dir(canvas)
`, starlark.StringDict{
		"canvas": canvas.Bind(thread),
	})
	if err != nil {
		t.Fatal(err)
	}
	for name, want := range map[string]string{
		"before": "6",
		"after":  "20",
		"size":   "[4, 5]",
		"title":  `"hello"`,
		"names":  `["area", "height", "resize", "size", "title", "width"]`,
	} {
		if got := globals[name].String(); got != want {
			t.Fatalf("%s: got %s, want %s", name, got, want)
		}
	}
	if w, h := canvas.Size(); w != 4 || h != 5 {
		t.Fatalf("got %dx%d", w, h)
	}
	if canvas.Title() != "hello" {
		t.Fatalf("got %q", canvas.Title())
	}
}

func TestCanvasErrors(t *testing.T) {
	canvas := NewCanvas(1, 1)
	thread := &starlark.Thread{Name: "main"}
	for src, want := range map[string]string{
		`canvas.resize(-1, 1)`: "negative size",
		`canvas.resize(1)`:     "missing argument",
		`canvas.title = 1`:     "want string",
		`canvas.area(1)`:       "area",
	} {
		_, err := exec(t, thread, src, starlark.StringDict{
			"canvas": canvas.Bind(thread),
		})
		if err == nil || !strings.Contains(err.Error(), want) {
			t.Fatalf("%s: got %v", src, err)
		}
	}
}

func TestCounter(t *testing.T) {
	counter := NewCounter()
	thread := &starlark.Thread{Name: "main"}
	globals, err := exec(t, thread, `
counter.incr()
counter.incr(10)
counter.step = 5
counter.incr()
value = counter.value
names = dir(counter)
has_step = hasattr(counter, "step")
`, starlark.StringDict{
		"counter": counter.Bind(thread),
	})
	if err != nil {
		t.Fatal(err)
	}
	if got := globals["value"].String(); got != "16" {
		t.Fatalf("got %s", got)
	}
	if got := globals["names"].String(); got != `["incr", "reset", "value"]` {
		t.Fatalf("got %s", got)
	}
	if globals["has_step"] != starlark.False {
		t.Fatal("write-only property is readable")
	}
	if counter.Value() != 16 {
		t.Fatalf("got %d", counter.Value())
	}

	if _, err := exec(t, thread, `counter.reset()`, starlark.StringDict{
		"counter": counter.Bind(thread),
	}); err != nil {
		t.Fatal(err)
	}
	if counter.Value() != 0 {
		t.Fatalf("got %d", counter.Value())
	}
}

func TestCounterNames(t *testing.T) {
	names := NewCounter().Names()
	if !slices.Equal(names, []string{"incr", "reset", "value"}) {
		t.Fatalf("got %v", names)
	}
}
