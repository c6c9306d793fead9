package debugs

import (
	"github.com/reusee/dscope"
	"github.com/reusee/taihost/hosts"
)

type Module struct {
	dscope.Module
	Hosts hosts.Module
}
