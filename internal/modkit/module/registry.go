package module

import "sync"

// the api registers every mounted module's ports here so main can reach them
var registry sync.Map

// Register stores the port set of the module called name
func Register(name string, ports any) { registry.Store(name, ports) }

// PortsAs returns the port set registered under name when it is a T
func PortsAs[T any](name string) (T, bool) {
	v, ok := registry.Load(name)
	if !ok {
		var zero T
		return zero, false
	}
	out, ok := v.(T)
	return out, ok
}

// Reset clears the registry for tests
func Reset() { registry.Clear() }
