package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/reusee/dscope"
	"github.com/reusee/taihost/configs"
	"github.com/reusee/taihost/hosts"
	"github.com/reusee/taihost/logs"
	"github.com/reusee/taihost/modes"
	"github.com/reusee/taihost/natives"
)

func testScope(t *testing.T, buf *bytes.Buffer) dscope.Scope {
	return dscope.New(
		new(Module),
		modes.ForTest(t),
	).Fork(
		func() logs.Writer {
			return buf
		},
		func() configs.Loader {
			return configs.NewLoader(nil, hosts.Schema)
		},
	)
}

func TestRunDemo(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf).Call(func(
		run Run,
	) {
		objects := newObjects()
		if err := run(t.Context(), objects, []string{"testdata/demo.star"}); err != nil {
			t.Fatal(err)
		}
		if out := buf.String(); !strings.Contains(out, `text="area 480000 count 10"`) {
			t.Fatalf("got %s", out)
		}
		canvas := objects["canvas"].(*natives.Canvas)
		if w, h := canvas.Size(); w != 800 || h != 600 {
			t.Fatalf("got %d %d", w, h)
		}
		if n := objects["counter"].(*natives.Counter).Value(); n != 10 {
			t.Fatalf("got %d", n)
		}
	})
}

func TestRunMissingScript(t *testing.T) {
	buf := new(bytes.Buffer)
	testScope(t, buf).Call(func(
		run Run,
	) {
		err := run(t.Context(), newObjects(), []string{
			"testdata/demo.star",
			"testdata/not-exists.star",
		})
		if err == nil || !strings.Contains(err.Error(), "runtime not-exists.star") {
			t.Fatalf("got %v", err)
		}
	})
}
