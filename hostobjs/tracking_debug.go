//go:build hostobjs_debug

package hostobjs

func init() {
	EnableTracking(true)
}
