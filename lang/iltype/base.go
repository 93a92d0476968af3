package iltype

import "strings"

// BaseBits is a bitset of primitive type kinds, spanning both the
// JavaScript-side and wasm-side vocabularies. A Type's definite and possible
// fields are both BaseBits: definite must always be a subset of possible.
type BaseBits uint32

// JavaScript-side base kinds.
const (
	Undefined BaseBits = 1 << iota
	Integer
	BigInt
	Float
	String
	Boolean
	RegExp
	Object
	Function
	Constructor
	UnboundFunction
	Iterable

	// Wasm-side base kinds.
	WasmI32
	WasmI64
	WasmF32
	WasmF64
	WasmSIMD128
	WasmRef
	WasmTypeDef
	WasmPackedI8
	WasmPackedI16
	WasmLabel
	WasmExceptionLabel
	WasmFunctionDef
	WasmDataSegment
	WasmElementSegment
)

// jsMask and wasmMask partition BaseBits into the two sublanguages.
const (
	jsMask   = Undefined | Integer | BigInt | Float | String | Boolean | RegExp | Object | Function | Constructor | UnboundFunction | Iterable
	wasmMask = WasmI32 | WasmI64 | WasmF32 | WasmF64 | WasmSIMD128 | WasmRef | WasmTypeDef | WasmPackedI8 | WasmPackedI16 | WasmLabel | WasmExceptionLabel | WasmFunctionDef | WasmDataSegment | WasmElementSegment
)

var baseBitNames = []struct {
	bit  BaseBits
	name string
}{
	{Undefined, "undefined"},
	{Integer, "integer"},
	{BigInt, "bigint"},
	{Float, "float"},
	{String, "string"},
	{Boolean, "boolean"},
	{RegExp, "regexp"},
	{Object, "object"},
	{Function, "function"},
	{Constructor, "constructor"},
	{UnboundFunction, "unboundFunction"},
	{Iterable, "iterable"},
	{WasmI32, "i32"},
	{WasmI64, "i64"},
	{WasmF32, "f32"},
	{WasmF64, "f64"},
	{WasmSIMD128, "simd128"},
	{WasmRef, "ref"},
	{WasmTypeDef, "typeDef"},
	{WasmPackedI8, "packedI8"},
	{WasmPackedI16, "packedI16"},
	{WasmLabel, "label"},
	{WasmExceptionLabel, "exceptionLabel"},
	{WasmFunctionDef, "functionDef"},
	{WasmDataSegment, "dataSegment"},
	{WasmElementSegment, "elementSegment"},
}

func (b BaseBits) String() string {
	if b == 0 {
		return "none"
	}
	var parts []string
	for _, e := range baseBitNames {
		if b&e.bit != 0 {
			parts = append(parts, e.name)
		}
	}
	return strings.Join(parts, "|")
}

// IsJS reports whether b contains only JavaScript-side kinds (or is empty).
func (b BaseBits) IsJS() bool { return b&^jsMask == 0 }

// IsWasm reports whether b contains only wasm-side kinds (or is empty).
func (b BaseBits) IsWasm() bool { return b&^wasmMask == 0 }
