// Package modkit wires API modules: shared deps, build options and cross module ports
package modkit

import (
	"reflect"

	phttp "contactguard/internal/platform/net/http"
)

// Module is what the API composer mounts
type Module interface {
	MountRoutes(r phttp.Router)
	// Ports is the module's port bundle, a port itself or a struct of ports
	Ports() any
	Name() string
}

// PortsOf finds a T in m's bundle: the bundle itself first, then the exported fields
// of a struct or struct pointer bundle
func PortsOf[T any](m Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.Indirect(reflect.ValueOf(p))
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := range rv.NumField() {
		f := rv.Field(i)
		if !f.CanInterface() {
			continue
		}
		if v, ok := f.Interface().(T); ok {
			return v, true
		}
	}
	return zero, false
}

// MustPortsOf is PortsOf for startup wiring, where a missing port is a programming error
func MustPortsOf[T any](m Module) T {
	v, ok := PortsOf[T](m)
	if !ok {
		panic("modkit: module " + m.Name() + " does not export the requested port")
	}
	return v
}
