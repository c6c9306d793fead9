package hostobjs

import (
	"strings"
	"testing"

	"go.starlark.net/starlark"
	"go.starlark.net/syntax"
)

func execScript(thread *starlark.Thread, src string, predeclared starlark.StringDict) (starlark.StringDict, error) {
	return starlark.ExecFileOptions(&syntax.FileOptions{
		Set:             true,
		While:           true,
		TopLevelControl: true,
	}, thread, "test.star", src, predeclared)
}

func TestBindingInScript(t *testing.T) {
	w := new(widget)
	obj := New(newWidgetTable(nil), w)
	thread := &starlark.Thread{Name: "main"}

	globals, err := execScript(thread, `
a = w.width
b = w.width
w.resize(1, 2, 3)
same = w.resize == w.resize
names = dir(w)
has_width = hasattr(w, "width")
has_secret = hasattr(w, "secret")
w.secret = "hidden"
w.width = 42
c = w.width
kind = type(w)
`, starlark.StringDict{
		"w": obj.Bind(thread),
	})
	if err != nil {
		t.Fatal(err)
	}

	expect := map[string]string{
		"a":          "0",
		"b":          "1",
		"same":       "True",
		"names":      `["resize", "width"]`,
		"has_width":  "True",
		"has_secret": "False",
		"c":          "3",
		"kind":       `"Widget"`,
	}
	for name, want := range expect {
		if got := globals[name].String(); got != want {
			t.Fatalf("%s: got %s, want %s", name, got, want)
		}
	}
	if w.resizes != 1 {
		t.Fatalf("got %d", w.resizes)
	}
	if w.title != "hidden" {
		t.Fatalf("got %q", w.title)
	}
}

func TestBindingUnknownAttr(t *testing.T) {
	obj := New(newWidgetTable(nil), new(widget))
	thread := &starlark.Thread{Name: "main"}
	_, err := execScript(thread, `w.nope()`, starlark.StringDict{
		"w": obj.Bind(thread),
	})
	if err == nil {
		t.Fatal("should error")
	}
	if !strings.Contains(err.Error(), "nope") {
		t.Fatalf("got %v", err)
	}
}

func TestBindingStable(t *testing.T) {
	obj := New(newWidgetTable(nil), new(widget))
	a := &starlark.Thread{Name: "a"}
	b := &starlark.Thread{Name: "b"}
	if obj.Bind(a) != obj.Bind(a) {
		t.Fatal("binding changed")
	}
	if obj.Bind(a) == obj.Bind(b) {
		t.Fatal("runtimes share a binding")
	}

	binding := obj.Bind(a)
	if binding.String() != "<Widget>" {
		t.Fatalf("got %s", binding.String())
	}
	if binding.Truth() != starlark.True {
		t.Fatal()
	}
	if _, err := binding.Hash(); err == nil {
		t.Fatal("should be unhashable")
	}
	binding.Freeze()
}

func TestBindingUsesOwnRuntimeCache(t *testing.T) {
	factory := new(countingFactory)
	obj := New(newWidgetTable(factory.factory), new(widget))
	a := &starlark.Thread{Name: "a"}
	b := &starlark.Thread{Name: "b"}

	fa, err := obj.Bind(a).Attr("resize")
	if err != nil {
		t.Fatal(err)
	}
	fb, err := obj.Bind(b).Attr("resize")
	if err != nil {
		t.Fatal(err)
	}
	if fa == fb {
		t.Fatal("runtimes share a callable")
	}
	again, err := obj.Get(a, "resize")
	if err != nil {
		t.Fatal(err)
	}
	if again != fa {
		t.Fatal("binding and Get disagree")
	}
	if n := factory.count(); n != 2 {
		t.Fatalf("got %d", n)
	}
}

func TestBindingAfterDetach(t *testing.T) {
	factory := new(countingFactory)
	obj := New(newWidgetTable(factory.factory), new(widget))
	thread := &starlark.Thread{Name: "main"}

	binding := obj.Bind(thread)
	before, err := binding.Attr("resize")
	if err != nil {
		t.Fatal(err)
	}

	obj.Detach(thread)
	if n := obj.Runtimes(); n != 0 {
		t.Fatalf("got %d", n)
	}

	after, err := binding.Attr("resize")
	if err != nil {
		t.Fatal(err)
	}
	if after == before {
		t.Fatal("expecting a fresh cache after detach")
	}
	if n := obj.Runtimes(); n != 1 {
		t.Fatalf("got %d", n)
	}
	if obj.Bind(thread) != binding {
		t.Fatal("binding changed")
	}
	again, err := obj.Get(thread, "resize")
	if err != nil {
		t.Fatal(err)
	}
	if again != after {
		t.Fatal("binding and Get disagree")
	}
	if n := factory.count(); n != 2 {
		t.Fatalf("got %d", n)
	}
}
