package iltype

import (
	"strings"

	"golang.org/x/exp/slices"
)

// groupPrefixes lists the object-group tag prefixes that are interchangeable
// across individual programs: each FuzzIL program mints its own numbered
// instances (e.g. "_fuzz_Object3"), and two groups sharing one of these
// prefixes (differing only by trailing decimal index) subsume each other.
var groupPrefixes = []string{
	"_fuzz_Object",
	"_fuzz_WasmModule",
	"_fuzz_WasmExports",
	"_fuzz_Class",
	"_fuzz_Constructor",
}

func groupsCompatible(a, b string) bool {
	if a == "" || a == b {
		return true
	}
	if b == "" {
		return false
	}
	return slices.ContainsFunc(groupPrefixes, func(p string) bool {
		return strings.HasPrefix(a, p) && strings.HasPrefix(b, p) &&
			isDecimalSuffix(a[len(p):]) && isDecimalSuffix(b[len(p):])
	})
}

func isDecimalSuffix(s string) bool {
	if s == "" {
		return true
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

// Union is the `|` operator: the result describes a value that is an
// instance of t or of o (or both), but the caller can no longer tell which.
func (t Type) Union(o Type) Type {
	if t.IsNothing() {
		return o
	}
	if o.IsNothing() {
		return t
	}
	return Type{
		definite: t.definite & o.definite,
		possible: t.possible | o.possible,
		ext:      unionExt(t.ext, o.ext),
	}
}

func unionExt(a, b *Ext) *Ext {
	if a == nil || b == nil {
		return nil
	}
	ne := &Ext{}
	if a.Group != "" && b.Group != "" && groupsCompatible(a.Group, b.Group) {
		if a.Group == b.Group {
			ne.Group = a.Group
		} else if a.Group != "" {
			ne.Group = a.Group
		} else {
			ne.Group = b.Group
		}
	}
	ne.Properties = intersectSets(a.Properties, b.Properties)
	ne.Methods = intersectSets(a.Methods, b.Methods)
	if a.Signature != nil && b.Signature != nil && a.Signature.Equal(*b.Signature) {
		sig := *a.Signature
		ne.Signature = &sig
	}
	if a.Receiver != nil && b.Receiver != nil {
		r := a.Receiver.Union(*b.Receiver)
		ne.Receiver = &r
	}
	if a.Wasm != nil && b.Wasm != nil && a.Wasm.Equal(b.Wasm) {
		ne.Wasm = a.Wasm
	}
	if extIsZero(ne) {
		return nil
	}
	return ne
}

func intersectSets(a, b map[string]struct{}) map[string]struct{} {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := map[string]struct{}{}
	for k := range a {
		if _, ok := b[k]; ok {
			out[k] = struct{}{}
		}
	}
	if len(out) == 0 {
		return nil
	}
	return out
}

func unionSets(a, b map[string]struct{}) map[string]struct{} {
	if len(a) == 0 && len(b) == 0 {
		return nil
	}
	out := make(map[string]struct{}, len(a)+len(b))
	for k := range a {
		out[k] = struct{}{}
	}
	for k := range b {
		out[k] = struct{}{}
	}
	return out
}

// Intersect is the `&` operator: the result describes a value known to be
// simultaneously an instance of t and of o. Returns Nothing if t and o are
// mutually inconsistent (e.g. disjoint definite kinds).
func (t Type) Intersect(o Type) Type {
	if t.IsNothing() || o.IsNothing() {
		return Nothing
	}
	// consistency check: whatever one side guarantees must remain possible
	// for the other, or the intersection is empty.
	if t.definite&^o.possible != 0 || o.definite&^t.possible != 0 {
		return Nothing
	}
	definite := t.definite | o.definite
	possible := (t.possible & o.possible) | definite
	ext, ok := intersectExt(t.ext, o.ext)
	if !ok {
		return Nothing
	}
	return Type{definite: definite, possible: possible, ext: ext}
}

func intersectExt(a, b *Ext) (*Ext, bool) {
	if a == nil {
		return b, true
	}
	if b == nil {
		return a, true
	}
	if !groupsCompatible(a.Group, b.Group) {
		return nil, false
	}
	ne := &Ext{}
	if a.Group != "" {
		ne.Group = a.Group
	} else {
		ne.Group = b.Group
	}
	ne.Properties = unionSets(a.Properties, b.Properties)
	ne.Methods = unionSets(a.Methods, b.Methods)

	switch {
	case a.Signature == nil:
		ne.Signature = b.Signature
	case b.Signature == nil:
		ne.Signature = a.Signature
	case a.Signature.Subsumes(*b.Signature):
		ne.Signature = b.Signature
	case b.Signature.Subsumes(*a.Signature):
		ne.Signature = a.Signature
	default:
		return nil, false
	}

	switch {
	case a.Receiver == nil:
		ne.Receiver = b.Receiver
	case b.Receiver == nil:
		ne.Receiver = a.Receiver
	default:
		r := a.Receiver.Intersect(*b.Receiver)
		ne.Receiver = &r
	}

	switch {
	case a.Wasm == nil:
		ne.Wasm = b.Wasm
	case b.Wasm == nil:
		ne.Wasm = a.Wasm
	case a.Wasm.Equal(b.Wasm):
		ne.Wasm = a.Wasm
	default:
		return nil, false
	}

	return ne, true
}

// Merge is the `+` operator: combines two non-union, mutually consistent
// types into one that carries the sum of their known shape information. It
// is disallowed (returns Nothing) for unions, for mismatched
// signatures/groups/wasm extensions, or when either side is Nothing.
func (t Type) Merge(o Type) Type {
	if t.IsNothing() || o.IsNothing() || t.IsUnion() || o.IsUnion() {
		return Nothing
	}
	ext, ok := mergeExt(t.ext, o.ext)
	if !ok {
		return Nothing
	}
	return Type{definite: t.definite | o.definite, possible: t.possible | o.possible, ext: ext}
}

func mergeExt(a, b *Ext) (*Ext, bool) {
	if a == nil {
		return b, true
	}
	if b == nil {
		return a, true
	}
	if a.Group != b.Group && a.Group != "" && b.Group != "" {
		return nil, false
	}
	if a.Signature != nil && b.Signature != nil && !a.Signature.Equal(*b.Signature) {
		return nil, false
	}
	if a.Wasm != nil && b.Wasm != nil && !a.Wasm.Equal(b.Wasm) {
		return nil, false
	}
	ne := &Ext{Properties: unionSets(a.Properties, b.Properties), Methods: unionSets(a.Methods, b.Methods)}
	if a.Group != "" {
		ne.Group = a.Group
	} else {
		ne.Group = b.Group
	}
	if a.Signature != nil {
		ne.Signature = a.Signature
	} else {
		ne.Signature = b.Signature
	}
	if a.Wasm != nil {
		ne.Wasm = a.Wasm
	} else {
		ne.Wasm = b.Wasm
	}
	if a.Receiver != nil && b.Receiver != nil {
		r := a.Receiver.Merge(*b.Receiver)
		ne.Receiver = &r
	} else if a.Receiver != nil {
		ne.Receiver = a.Receiver
	} else {
		ne.Receiver = b.Receiver
	}
	return ne, true
}

// Subsumes is the `>=` operator: t.Subsumes(o) means every instance of o is
// also an instance of t.
func (t Type) Subsumes(o Type) bool {
	if o.IsNothing() {
		return true
	}
	if t.IsNothing() {
		return false
	}
	if o.definite&t.definite != t.definite {
		return false
	}
	if o.possible&^t.possible != 0 {
		return false
	}
	return extSubsumes(t.ext, o.ext)
}

func extSubsumes(a, b *Ext) bool {
	if a == nil {
		return true
	}
	if b == nil {
		return extIsZero(a)
	}
	if a.Group != "" && !groupsCompatible(a.Group, b.Group) {
		return false
	}
	if !isSubsetOf(a.Properties, b.Properties) {
		return false
	}
	if !isSubsetOf(a.Methods, b.Methods) {
		return false
	}
	if a.Signature != nil {
		if b.Signature == nil {
			return false
		}
		if !a.Signature.Equal(*b.Signature) && !a.Signature.Subsumes(*b.Signature) {
			return false
		}
	}
	if a.Receiver != nil {
		if b.Receiver == nil || !a.Receiver.Subsumes(*b.Receiver) {
			return false
		}
	}
	if a.Wasm != nil {
		if b.Wasm == nil || !a.Wasm.Subsumes(b.Wasm) {
			return false
		}
	}
	return true
}

func isSubsetOf(a, b map[string]struct{}) bool {
	for k := range a {
		if _, ok := b[k]; !ok {
			return false
		}
	}
	return true
}
