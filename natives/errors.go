package natives

import (
	"fmt"

	"go.starlark.net/starlark"
)

func errWantString(name string, value starlark.Value) error {
	return fmt.Errorf("%s: want string, got %s", name, value.Type())
}

func errNegativeSize(w, h int) error {
	return fmt.Errorf("resize: negative size %dx%d", w, h)
}
