package ecs

import "unsafe"

// iface mirrors the runtime layout of an interface value so component
// pointers can be pulled out of an `any` without reflection.
type iface struct {
	typ  unsafe.Pointer
	data unsafe.Pointer
}

func ifaceData(v any) unsafe.Pointer {
	return (*iface)(unsafe.Pointer(&v)).data
}
