// Package module finds and shares the port sets modules expose
package module

import (
	"reflect"

	"biasdb/internal/modkit"
)

// PortsOf finds a T in m.Ports(), either the value itself or one of its exported struct fields
func PortsOf[T any](m modkit.Module) (T, bool) {
	var zero T
	p := m.Ports()
	if p == nil {
		return zero, false
	}
	if v, ok := p.(T); ok {
		return v, true
	}
	rv := reflect.ValueOf(p)
	if rv.Kind() != reflect.Struct {
		return zero, false
	}
	for i := 0; i < rv.NumField(); i++ {
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

// MustPortsOf is PortsOf for wiring code that cannot continue without the port
func MustPortsOf[T any](m modkit.Module) T {
	if v, ok := PortsOf[T](m); ok {
		return v
	}
	panic("module: " + m.Name() + " has no port of type " + reflect.TypeFor[T]().String())
}
