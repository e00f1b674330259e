package animation

import "fmt"

// Layout maps parameter names to the driver's native slot handles.
type Layout map[string]int

// DefaultLayout assigns one slot per parameter in declaration order.
func DefaultLayout() Layout {
	l := make(Layout, paramCount)
	for _, p := range Params() {
		l[p.String()] = int(p)
	}
	return l
}

// bind resolves every Param to a slot. Missing or negative bindings are errors,
// so a controller never has to look a name up while ticking. Slots are per kind:
// a float and a bool may share one, two floats may not.
func (l Layout) bind() (handles [paramCount]int, slots int, err error) {
	type slotKey struct {
		kind Kind
		slot int
	}
	taken := make(map[slotKey]Param, paramCount)
	for _, p := range Params() {
		h, ok := l[p.String()]
		if !ok {
			return handles, 0, fmt.Errorf("parameter %q has no binding", p)
		}
		if h < 0 {
			return handles, 0, fmt.Errorf("parameter %q has negative slot %d", p, h)
		}
		key := slotKey{p.Kind(), h}
		if other, ok := taken[key]; ok {
			return handles, 0, fmt.Errorf("parameters %q and %q share slot %d", other, p, h)
		}
		taken[key] = p
		handles[p] = h
		if h+1 > slots {
			slots = h + 1
		}
	}
	return handles, slots, nil
}
