package runtime

import "fmt"

// Locator is the runtime representation of a pointer's target: an
// environment slot, or a composite path rooted in one — a field or index
// path into a heap cell reached through that slot (spec.md §3 "Binding").
// Because struct/list/array/map cells are Go heap pointers, a field or
// index locator can hold the container reference directly rather than
// re-walking from a root slot; identity of that Go pointer is what makes
// aliased mutation observable.
type Locator interface {
	Get() (Value, error)
	Set(v Value) error
	fmt.Stringer
}

// SlotLocator targets a named scope slot directly — the target of `&name`.
type SlotLocator struct {
	Slot *Slot
}

func (l SlotLocator) Get() (Value, error) { return l.Slot.Value, nil }

func (l SlotLocator) Set(v Value) error {
	if !l.Slot.Mutable {
		return fmt.Errorf("write to immutable slot %q", l.Slot.Name)
	}
	l.Slot.Value = v
	return nil
}

func (l SlotLocator) String() string { return l.Slot.Name }

// FieldLocator targets one field of a struct heap cell — the target of
// `&instance.field`, and how `self.field = v` writes through inside a
// mutating method.
type FieldLocator struct {
	Inst  *StructInstance
	Field string
}

func (l FieldLocator) Get() (Value, error) {
	v, ok := l.Inst.Fields[l.Field]
	if !ok {
		return nil, fmt.Errorf("unknown field %q on %s", l.Field, l.Inst.TypeName)
	}
	return v, nil
}

func (l FieldLocator) Set(v Value) error {
	if _, ok := l.Inst.Fields[l.Field]; !ok {
		return fmt.Errorf("unknown field %q on %s", l.Field, l.Inst.TypeName)
	}
	l.Inst.Fields[l.Field] = v
	return nil
}

func (l FieldLocator) String() string { return fmt.Sprintf("%s.%s", l.Inst.TypeName, l.Field) }

// ListIndexLocator targets one element of a list heap cell.
type ListIndexLocator struct {
	List  *ListValue
	Index int
}

func (l ListIndexLocator) Get() (Value, error) {
	if l.Index < 0 || l.Index >= len(l.List.Elements) {
		return nil, fmt.Errorf("index %d out of range (len %d)", l.Index, len(l.List.Elements))
	}
	return l.List.Elements[l.Index], nil
}

func (l ListIndexLocator) Set(v Value) error {
	if l.Index < 0 || l.Index >= len(l.List.Elements) {
		return fmt.Errorf("index %d out of range (len %d)", l.Index, len(l.List.Elements))
	}
	l.List.Elements[l.Index] = v
	return nil
}

func (l ListIndexLocator) String() string { return fmt.Sprintf("list[%d]", l.Index) }

// ArrayIndexLocator targets one element of an array heap cell.
type ArrayIndexLocator struct {
	Array *ArrayValue
	Index int
}

func (l ArrayIndexLocator) Get() (Value, error) {
	if l.Index < 0 || l.Index >= len(l.Array.Elements) {
		return nil, fmt.Errorf("index %d out of range (len %d)", l.Index, len(l.Array.Elements))
	}
	return l.Array.Elements[l.Index], nil
}

func (l ArrayIndexLocator) Set(v Value) error {
	if l.Index < 0 || l.Index >= len(l.Array.Elements) {
		return fmt.Errorf("index %d out of range (len %d)", l.Index, len(l.Array.Elements))
	}
	l.Array.Elements[l.Index] = v
	return nil
}

func (l ArrayIndexLocator) String() string { return fmt.Sprintf("array[%d]", l.Index) }

// MapKeyLocator targets one entry of a map heap cell.
type MapKeyLocator struct {
	Map *MapValue
	Key string
}

func (l MapKeyLocator) Get() (Value, error) {
	v, ok := l.Map.Entries[l.Key]
	if !ok {
		return nil, fmt.Errorf("key %q not found in map", l.Key)
	}
	return v, nil
}

func (l MapKeyLocator) Set(v Value) error {
	l.Map.Set(l.Key, v)
	return nil
}

func (l MapKeyLocator) String() string { return fmt.Sprintf("map[%q]", l.Key) }
