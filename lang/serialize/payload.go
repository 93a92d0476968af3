package serialize

import (
	"bufio"
	"fmt"

	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/iltype"
)

// payloadKind tags which concrete ilop.Payload type follows on the wire.
// The integer values are part of the wire format (spec §4.6) and must never
// be renumbered; append new kinds at the end.
type payloadKind uint8

const (
	payloadNone payloadKind = iota
	payloadIntegerLiteral
	payloadBigIntLiteral
	payloadFloatLiteral
	payloadStringLiteral
	payloadBooleanLiteral
	payloadRegExpLiteral
	payloadPropertyName
	payloadElementIndex
	payloadNamedVariableName
	payloadUnaryOp
	payloadBinaryOp
	payloadCompareOp
	payloadGuarded
	payloadFunctionSignature
	payloadClassDefinition
	payloadSwitchCaseValue
	payloadDestructurePattern
	payloadWasmGlobalDef
	payloadWasmMemoryDef
	payloadWasmTableDef
	payloadWasmTagDef
	payloadWasmValueType
	payloadWasmBinOp
	payloadWasmUnOp
	payloadWasmCompareOp
)

// encodeOperation writes opcode and payload and returns the bytes written,
// which also serve as the shared cache's lookup key for this exact
// (opcode, payload) pair.
func encodeOperation(op ilop.Operation) ([]byte, error) {
	var buf sliceBuffer
	if err := writeUvarint(&buf, uint64(op.Op)); err != nil {
		return nil, err
	}
	if err := writePayload(&buf, op.Payload); err != nil {
		return nil, err
	}
	return buf.b, nil
}

func decodeOperation(r *bufio.Reader) (ilop.Operation, error) {
	opVal, err := readUvarint(r)
	if err != nil {
		return ilop.Operation{}, err
	}
	op := ilop.Opcode(opVal)
	payload, err := readPayload(r)
	if err != nil {
		return ilop.Operation{}, err
	}
	return ilop.New(op, payload), nil
}

func writePayload(w byteWriter, p ilop.Payload) error {
	switch v := p.(type) {
	case nil:
		return writeUvarint(w, uint64(payloadNone))
	case ilop.IntegerLiteral:
		return writeTagged(w, payloadIntegerLiteral, func() error { return writeVarint(w, v.Value) })
	case ilop.BigIntLiteral:
		return writeTagged(w, payloadBigIntLiteral, func() error { return writeString(w, v.Value) })
	case ilop.FloatLiteral:
		return writeTagged(w, payloadFloatLiteral, func() error { return writeUvarint(w, float64Bits(v.Value)) })
	case ilop.StringLiteral:
		return writeTagged(w, payloadStringLiteral, func() error { return writeString(w, v.Value) })
	case ilop.BooleanLiteral:
		return writeTagged(w, payloadBooleanLiteral, func() error { return writeBool(w, v.Value) })
	case ilop.RegExpLiteral:
		return writeTagged(w, payloadRegExpLiteral, func() error {
			if err := writeString(w, v.Pattern); err != nil {
				return err
			}
			return writeString(w, v.Flags)
		})
	case ilop.PropertyName:
		return writeTagged(w, payloadPropertyName, func() error { return writeString(w, v.Name) })
	case ilop.ElementIndex:
		return writeTagged(w, payloadElementIndex, func() error { return writeVarint(w, v.Index) })
	case ilop.NamedVariableName:
		return writeTagged(w, payloadNamedVariableName, func() error { return writeString(w, v.Name) })
	case ilop.UnaryOp:
		return writeTagged(w, payloadUnaryOp, func() error { return writeUvarint(w, uint64(v.Operator)) })
	case ilop.BinaryOp:
		return writeTagged(w, payloadBinaryOp, func() error { return writeUvarint(w, uint64(v.Operator)) })
	case ilop.CompareOp:
		return writeTagged(w, payloadCompareOp, func() error { return writeUvarint(w, uint64(v.Operator)) })
	case ilop.Guarded:
		return writeTagged(w, payloadGuarded, func() error { return writeBool(w, v.IsGuarded) })
	case ilop.FunctionSignature:
		return writeTagged(w, payloadFunctionSignature, func() error { return writeSignature(w, v.Signature) })
	case ilop.ClassDefinition:
		return writeTagged(w, payloadClassDefinition, func() error { return writeBool(w, v.HasSuperclass) })
	case ilop.SwitchCaseValue:
		return writeTagged(w, payloadSwitchCaseValue, func() error { return writeVarint(w, v.Value) })
	case ilop.DestructurePattern:
		return writeTagged(w, payloadDestructurePattern, func() error { return writeDestructurePattern(w, v) })
	case ilop.WasmGlobalDef:
		return writeTagged(w, payloadWasmGlobalDef, func() error {
			if err := writeUvarint(w, uint64(v.ValueType)); err != nil {
				return err
			}
			if err := writeBool(w, v.Mutable); err != nil {
				return err
			}
			return writeBool(w, v.IsImport)
		})
	case ilop.WasmMemoryDef:
		return writeTagged(w, payloadWasmMemoryDef, func() error {
			if err := writeUvarint(w, uint64(v.MinPages)); err != nil {
				return err
			}
			if err := writeUvarint(w, uint64(v.MaxPages)); err != nil {
				return err
			}
			if err := writeBool(w, v.HasMax); err != nil {
				return err
			}
			if err := writeBool(w, v.Shared); err != nil {
				return err
			}
			return writeBool(w, v.IsImport)
		})
	case ilop.WasmTableDef:
		return writeTagged(w, payloadWasmTableDef, func() error {
			if err := writeUvarint(w, uint64(v.ElementType)); err != nil {
				return err
			}
			if err := writeUvarint(w, uint64(v.MinSize)); err != nil {
				return err
			}
			return writeBool(w, v.IsImport)
		})
	case ilop.WasmTagDef:
		return writeTagged(w, payloadWasmTagDef, func() error {
			if err := writeUvarint(w, uint64(len(v.ParameterTypes))); err != nil {
				return err
			}
			for _, pt := range v.ParameterTypes {
				if err := writeUvarint(w, uint64(pt)); err != nil {
					return err
				}
			}
			return nil
		})
	case ilop.WasmValueType:
		return writeTagged(w, payloadWasmValueType, func() error { return writeUvarint(w, uint64(v.Type)) })
	case ilop.WasmBinOp:
		return writeTagged(w, payloadWasmBinOp, func() error { return writeUvarint(w, uint64(v.Kind)) })
	case ilop.WasmUnOp:
		return writeTagged(w, payloadWasmUnOp, func() error { return writeUvarint(w, uint64(v.Kind)) })
	case ilop.WasmCompareOp:
		return writeTagged(w, payloadWasmCompareOp, func() error { return writeUvarint(w, uint64(v.Kind)) })
	default:
		return fmt.Errorf("serialize: unknown payload type %T", p)
	}
}

func writeTagged(w byteWriter, kind payloadKind, body func() error) error {
	if err := writeUvarint(w, uint64(kind)); err != nil {
		return err
	}
	return body()
}

func writeDestructurePattern(w byteWriter, v ilop.DestructurePattern) error {
	if err := writeBool(w, v.HasRestElement); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(len(v.Indices))); err != nil {
		return err
	}
	for _, i := range v.Indices {
		if err := writeVarint(w, i); err != nil {
			return err
		}
	}
	if err := writeUvarint(w, uint64(len(v.Names))); err != nil {
		return err
	}
	for _, n := range v.Names {
		if err := writeString(w, n); err != nil {
			return err
		}
	}
	return nil
}

func readPayload(r *bufio.Reader) (ilop.Payload, error) {
	kindVal, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	kind := payloadKind(kindVal)

	switch kind {
	case payloadNone:
		return nil, nil
	case payloadIntegerLiteral:
		v, err := readVarint(r)
		return ilop.IntegerLiteral{Value: v}, err
	case payloadBigIntLiteral:
		v, err := readString(r)
		return ilop.BigIntLiteral{Value: v}, err
	case payloadFloatLiteral:
		v, err := readUvarint(r)
		return ilop.FloatLiteral{Value: bitsFloat64(v)}, err
	case payloadStringLiteral:
		v, err := readString(r)
		return ilop.StringLiteral{Value: v}, err
	case payloadBooleanLiteral:
		v, err := readBool(r)
		return ilop.BooleanLiteral{Value: v}, err
	case payloadRegExpLiteral:
		pattern, err := readString(r)
		if err != nil {
			return nil, err
		}
		flags, err := readString(r)
		return ilop.RegExpLiteral{Pattern: pattern, Flags: flags}, err
	case payloadPropertyName:
		v, err := readString(r)
		return ilop.PropertyName{Name: v}, err
	case payloadElementIndex:
		v, err := readVarint(r)
		return ilop.ElementIndex{Index: v}, err
	case payloadNamedVariableName:
		v, err := readString(r)
		return ilop.NamedVariableName{Name: v}, err
	case payloadUnaryOp:
		v, err := readUvarint(r)
		return ilop.UnaryOp{Operator: ilop.UnaryOperator(v)}, err
	case payloadBinaryOp:
		v, err := readUvarint(r)
		return ilop.BinaryOp{Operator: ilop.BinaryOperator(v)}, err
	case payloadCompareOp:
		v, err := readUvarint(r)
		return ilop.CompareOp{Operator: ilop.Comparator(v)}, err
	case payloadGuarded:
		v, err := readBool(r)
		return ilop.Guarded{IsGuarded: v}, err
	case payloadFunctionSignature:
		sig, err := readSignature(r)
		return ilop.FunctionSignature{Signature: sig}, err
	case payloadClassDefinition:
		v, err := readBool(r)
		return ilop.ClassDefinition{HasSuperclass: v}, err
	case payloadSwitchCaseValue:
		v, err := readVarint(r)
		return ilop.SwitchCaseValue{Value: v}, err
	case payloadDestructurePattern:
		return readDestructurePattern(r)
	case payloadWasmGlobalDef:
		return readWasmGlobalDef(r)
	case payloadWasmMemoryDef:
		return readWasmMemoryDef(r)
	case payloadWasmTableDef:
		return readWasmTableDef(r)
	case payloadWasmTagDef:
		return readWasmTagDef(r)
	case payloadWasmValueType:
		v, err := readUvarint(r)
		return ilop.WasmValueType{Type: iltype.BaseBits(v)}, err
	case payloadWasmBinOp:
		v, err := readUvarint(r)
		return ilop.WasmBinOp{Kind: ilop.WasmI32BinaryOpKind(v)}, err
	case payloadWasmUnOp:
		v, err := readUvarint(r)
		return ilop.WasmUnOp{Kind: ilop.WasmI32UnaryOpKind(v)}, err
	case payloadWasmCompareOp:
		v, err := readUvarint(r)
		return ilop.WasmCompareOp{Kind: ilop.WasmCompareOpKind(v)}, err
	default:
		return nil, fmt.Errorf("serialize: unknown payload kind %d", kind)
	}
}

func readDestructurePattern(r *bufio.Reader) (ilop.Payload, error) {
	hasRest, err := readBool(r)
	if err != nil {
		return nil, err
	}
	nIdx, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	indices := make([]int64, nIdx)
	for i := range indices {
		v, err := readVarint(r)
		if err != nil {
			return nil, err
		}
		indices[i] = v
	}
	nNames, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	names := make([]string, nNames)
	for i := range names {
		v, err := readString(r)
		if err != nil {
			return nil, err
		}
		names[i] = v
	}
	return ilop.DestructurePattern{HasRestElement: hasRest, Indices: indices, Names: names}, nil
}

func readWasmGlobalDef(r *bufio.Reader) (ilop.Payload, error) {
	vt, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	mutable, err := readBool(r)
	if err != nil {
		return nil, err
	}
	isImport, err := readBool(r)
	return ilop.WasmGlobalDef{ValueType: iltype.BaseBits(vt), Mutable: mutable, IsImport: isImport}, err
}

func readWasmMemoryDef(r *bufio.Reader) (ilop.Payload, error) {
	minPages, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	maxPages, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	hasMax, err := readBool(r)
	if err != nil {
		return nil, err
	}
	shared, err := readBool(r)
	if err != nil {
		return nil, err
	}
	isImport, err := readBool(r)
	return ilop.WasmMemoryDef{MinPages: uint32(minPages), MaxPages: uint32(maxPages), HasMax: hasMax, Shared: shared, IsImport: isImport}, err
}

func readWasmTableDef(r *bufio.Reader) (ilop.Payload, error) {
	elemType, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	minSize, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	isImport, err := readBool(r)
	return ilop.WasmTableDef{ElementType: iltype.BaseBits(elemType), MinSize: uint32(minSize), IsImport: isImport}, err
}

func readWasmTagDef(r *bufio.Reader) (ilop.Payload, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	params := make([]iltype.BaseBits, n)
	for i := range params {
		v, err := readUvarint(r)
		if err != nil {
			return nil, err
		}
		params[i] = iltype.BaseBits(v)
	}
	return ilop.WasmTagDef{ParameterTypes: params}, nil
}
