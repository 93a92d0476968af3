package serialize

import (
	"bufio"

	"github.com/mna/fuzzil/lang/iltype"
)

// Type encoding is not part of spec.md's own wire format (FunctionSignature
// is the only payload that carries one, via a Begin*Function/Constructor
// instruction), but the bit-exact contract of §4.6 extends to it by the same
// "fixed integer raw values, recovered lengths" rules used everywhere else.
//
// A Type's wasm extension (iltype.WasmExt) and bound-method receiver are
// deliberately not round-tripped: FunctionSignature only ever types
// JavaScript-side call shapes in practice, and WasmExt's
// closed-but-open-ended interface would need its own per-concrete-type wire
// tags to encode losslessly. A Type carrying either encodes with its base
// bits, group, properties, methods and signature only; see DESIGN.md.

func writeType(w byteWriter, t iltype.Type) error {
	if err := writeUvarint(w, uint64(t.Definite())); err != nil {
		return err
	}
	if err := writeUvarint(w, uint64(t.Possible())); err != nil {
		return err
	}

	hasExt := t.Group() != "" || len(t.Properties()) > 0 || len(t.Methods()) > 0 || t.Signature() != nil
	if !hasExt {
		return writeUvarint(w, 0)
	}
	if err := writeUvarint(w, 1); err != nil {
		return err
	}
	if err := writeString(w, t.Group()); err != nil {
		return err
	}
	if err := writeStringSlice(w, t.Properties()); err != nil {
		return err
	}
	if err := writeStringSlice(w, t.Methods()); err != nil {
		return err
	}
	if sig := t.Signature(); sig != nil {
		if err := writeUvarint(w, 1); err != nil {
			return err
		}
		return writeSignature(w, *sig)
	}
	return writeUvarint(w, 0)
}

func readType(r *bufio.Reader) (iltype.Type, error) {
	definite, err := readUvarint(r)
	if err != nil {
		return iltype.Type{}, err
	}
	possible, err := readUvarint(r)
	if err != nil {
		return iltype.Type{}, err
	}
	hasExt, err := readUvarint(r)
	if err != nil {
		return iltype.Type{}, err
	}

	base := iltype.WithBits(iltype.BaseBits(definite), iltype.BaseBits(possible))
	if hasExt == 0 {
		return base, nil
	}

	group, err := readString(r)
	if err != nil {
		return iltype.Type{}, err
	}
	props, err := readStringSlice(r)
	if err != nil {
		return iltype.Type{}, err
	}
	methods, err := readStringSlice(r)
	if err != nil {
		return iltype.Type{}, err
	}
	hasSig, err := readUvarint(r)
	if err != nil {
		return iltype.Type{}, err
	}
	var sig *iltype.Signature
	if hasSig == 1 {
		s, err := readSignature(r)
		if err != nil {
			return iltype.Type{}, err
		}
		sig = &s
	}

	base = base.WithExt(group, props, methods, sig)
	return base, nil
}

func writeStringSlice(w byteWriter, xs []string) error {
	if err := writeUvarint(w, uint64(len(xs))); err != nil {
		return err
	}
	for _, x := range xs {
		if err := writeString(w, x); err != nil {
			return err
		}
	}
	return nil
}

func readStringSlice(r *bufio.Reader) ([]string, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	out := make([]string, n)
	for i := range out {
		s, err := readString(r)
		if err != nil {
			return nil, err
		}
		out[i] = s
	}
	return out, nil
}

// writeSignature/readSignature encode a Signature's parameter kinds
// (ParamKind's integer value is part of the wire format) and types, followed
// by the output type.
func writeSignature(w byteWriter, sig iltype.Signature) error {
	if err := writeUvarint(w, uint64(len(sig.Parameters))); err != nil {
		return err
	}
	for _, p := range sig.Parameters {
		if err := writeUvarint(w, uint64(p.Kind)); err != nil {
			return err
		}
		if err := writeType(w, p.Type); err != nil {
			return err
		}
	}
	return writeType(w, sig.OutputType)
}

func readSignature(r *bufio.Reader) (iltype.Signature, error) {
	n, err := readUvarint(r)
	if err != nil {
		return iltype.Signature{}, err
	}
	params := make([]iltype.Param, n)
	for i := range params {
		kind, err := readUvarint(r)
		if err != nil {
			return iltype.Signature{}, err
		}
		t, err := readType(r)
		if err != nil {
			return iltype.Signature{}, err
		}
		params[i] = iltype.Param{Kind: iltype.ParamKind(kind), Type: t}
	}
	output, err := readType(r)
	if err != nil {
		return iltype.Signature{}, err
	}
	return iltype.Signature{Parameters: params, OutputType: output}, nil
}
