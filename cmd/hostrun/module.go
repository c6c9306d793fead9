package main

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taihost/debugs"
)

type Module struct {
	dscope.Module
	Debugs debugs.Module
}
