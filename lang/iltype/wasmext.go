package iltype

// WasmExt is the polymorphic wasm-side extension payload attached to a Type's
// Ext. Exactly one concrete kind applies to any given wasm value.
type WasmExt interface {
	wasmExt()
	// Equal reports structural equality with another WasmExt of the same
	// concrete kind; it returns false for a kind mismatch.
	Equal(WasmExt) bool
	// Subsumes reports whether every value described by other is also
	// described by this extension (used for reference-type special-casing of
	// §4.4's subsumption rule).
	Subsumes(other WasmExt) bool
}

// WasmGlobalExt describes a wasm global variable binding.
type WasmGlobalExt struct {
	ValueType BaseBits
	Mutable   bool
}

func (WasmGlobalExt) wasmExt() {}
func (g WasmGlobalExt) Equal(o WasmExt) bool {
	og, ok := o.(WasmGlobalExt)
	return ok && og == g
}
func (g WasmGlobalExt) Subsumes(o WasmExt) bool { return g.Equal(o) }

// WasmMemoryExt describes a wasm linear memory import/export.
type WasmMemoryExt struct {
	MinPages, MaxPages uint32
	HasMax             bool
	Shared             bool
}

func (WasmMemoryExt) wasmExt() {}
func (m WasmMemoryExt) Equal(o WasmExt) bool {
	om, ok := o.(WasmMemoryExt)
	return ok && om == m
}
func (m WasmMemoryExt) Subsumes(o WasmExt) bool { return m.Equal(o) }

// WasmTableExt describes a wasm table.
type WasmTableExt struct {
	ElementType BaseBits
	MinSize     uint32
}

func (WasmTableExt) wasmExt() {}
func (t WasmTableExt) Equal(o WasmExt) bool {
	ot, ok := o.(WasmTableExt)
	return ok && ot == t
}
func (t WasmTableExt) Subsumes(o WasmExt) bool { return t.Equal(o) }

// WasmTagExt describes a wasm exception tag.
type WasmTagExt struct {
	ParameterTypes string // canonicalized signature key
}

func (WasmTagExt) wasmExt() {}
func (t WasmTagExt) Equal(o WasmExt) bool {
	ot, ok := o.(WasmTagExt)
	return ok && ot == t
}
func (t WasmTagExt) Subsumes(o WasmExt) bool { return t.Equal(o) }

// WasmLabelExt describes a branch target's expected value types.
type WasmLabelExt struct {
	ValueTypes []BaseBits
}

func (WasmLabelExt) wasmExt() {}
func (l WasmLabelExt) Equal(o WasmExt) bool {
	ol, ok := o.(WasmLabelExt)
	if !ok || len(ol.ValueTypes) != len(l.ValueTypes) {
		return false
	}
	for i, v := range l.ValueTypes {
		if ol.ValueTypes[i] != v {
			return false
		}
	}
	return true
}
func (l WasmLabelExt) Subsumes(o WasmExt) bool { return l.Equal(o) }

// WasmReferenceExt describes a typed wasm reference (funcref, externref, or a
// reference to an indexed type). Subsumption special-cases the generic
// (TypeIndex < 0) reference kinds so that, e.g., any funcref subsumes a more
// specific typed function reference.
type WasmReferenceExt struct {
	Nullable  bool
	TypeIndex int32 // -1 for the generic funcref/externref kinds
}

func (WasmReferenceExt) wasmExt() {}
func (r WasmReferenceExt) Equal(o WasmExt) bool {
	or, ok := o.(WasmReferenceExt)
	return ok && or == r
}
func (r WasmReferenceExt) Subsumes(o WasmExt) bool {
	or, ok := o.(WasmReferenceExt)
	if !ok {
		return false
	}
	if r.Nullable != or.Nullable && !r.Nullable {
		return false // a non-nullable ref cannot subsume a nullable one
	}
	if r.TypeIndex < 0 {
		return true // generic reference subsumes any concretely-typed one
	}
	return r.TypeIndex == or.TypeIndex
}

// WasmTypeDefExt is a non-owning handle into the enclosing typer's type
// arena, used to break cycles in recursive wasm type descriptions (struct
// fields typed as a reference to their own type) without reference cycles in
// the Type value itself.
type WasmTypeDefExt struct {
	ArenaID int
}

func (WasmTypeDefExt) wasmExt() {}
func (t WasmTypeDefExt) Equal(o WasmExt) bool {
	ot, ok := o.(WasmTypeDefExt)
	return ok && ot == t
}
func (t WasmTypeDefExt) Subsumes(o WasmExt) bool { return t.Equal(o) }

// WasmFunctionDefExt attaches a signature to a wasm function definition
// value.
type WasmFunctionDefExt struct {
	Signature Signature
}

func (WasmFunctionDefExt) wasmExt() {}
func (f WasmFunctionDefExt) Equal(o WasmExt) bool {
	of, ok := o.(WasmFunctionDefExt)
	return ok && of.Signature.Equal(f.Signature)
}
func (f WasmFunctionDefExt) Subsumes(o WasmExt) bool {
	of, ok := o.(WasmFunctionDefExt)
	return ok && f.Signature.Subsumes(of.Signature)
}
