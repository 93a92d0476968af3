package serialize

import (
	"bufio"
	"io"

	"github.com/google/uuid"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/ilvar"
)

// maxParentDepth bounds the recursive parent chain a single decode will
// follow, guarding against a corrupt or adversarial stream claiming an
// unbounded ancestry.
const maxParentDepth = 4096

// Write encodes p to w in the binary format of spec §4.6. Each call starts
// a fresh shared operation cache: the cache's whole purpose is round-trip
// efficiency within one encode/decode pair, not cross-program reuse.
func Write(w io.Writer, p *ilprog.Program) error {
	bw := bufio.NewWriter(w)
	cache := newOpCache()
	if err := writeProgram(bw, p, cache, 0); err != nil {
		return err
	}
	return bw.Flush()
}

func writeProgram(w byteWriter, p *ilprog.Program, cache *opCache, depth int) error {
	if depth > maxParentDepth {
		return &ilprog.ProgramDecodingError{Msg: "parent chain exceeds maximum depth"}
	}

	id := p.ID()
	if _, err := w.Write(id[:]); err != nil {
		return err
	}

	if parent := p.Parent(); parent != nil {
		if err := writeBool(w, true); err != nil {
			return err
		}
		if err := writeProgram(w, parent, cache, depth+1); err != nil {
			return err
		}
	} else if err := writeBool(w, false); err != nil {
		return err
	}

	attribution := p.Attribution()
	if err := writeStringSlice(w, attribution); err != nil {
		return err
	}

	comments := p.Comments()
	if err := writeUvarint(w, uint64(len(comments))); err != nil {
		return err
	}
	for idx, text := range comments {
		if err := writeUvarint(w, uint64(idx)); err != nil {
			return err
		}
		if err := writeString(w, text); err != nil {
			return err
		}
	}

	return writeCode(w, p.Code(), cache)
}

func writeCode(w byteWriter, code *ilprog.Code, cache *opCache) error {
	instructions := code.Instructions()
	if err := writeUvarint(w, uint64(len(instructions))); err != nil {
		return err
	}
	for _, instr := range instructions {
		if err := writeInstruction(w, instr, cache); err != nil {
			return err
		}
	}
	return nil
}

func writeInstruction(w byteWriter, instr ilprog.Instruction, cache *opCache) error {
	key, err := encodeOperation(instr.Operation)
	if err != nil {
		return err
	}

	if idx, ok := cache.lookup(key); ok {
		if err := writeBool(w, true); err != nil {
			return err
		}
		if err := writeUvarint(w, uint64(idx)); err != nil {
			return err
		}
	} else {
		if err := writeBool(w, false); err != nil {
			return err
		}
		if _, err := w.Write(key); err != nil {
			return err
		}
		cache.insert(key, instr.Operation)
	}

	all := instr.AllOutputs()
	vars := make([]uint32, 0, len(instr.Inputs())+len(all))
	for _, v := range instr.Inputs() {
		vars = append(vars, uint32(v))
	}
	for _, v := range all {
		vars = append(vars, uint32(v))
	}
	if err := writeUvarint(w, uint64(len(vars))); err != nil {
		return err
	}
	for _, v := range vars {
		if err := writeUvarint(w, uint64(v)); err != nil {
			return err
		}
	}
	return nil
}

// Read decodes a single Program from r and validates it (spec §4.6: decoded
// Code is checked before it is ever handed to an analyzer). A *ProgramDecodingError
// is returned for a malformed stream or one whose decoded Code fails
// ilprog.Validate.
func Read(r io.Reader) (*ilprog.Program, error) {
	br := bufio.NewReader(r)
	cache := newOpCache()
	return readProgram(br, cache, 0)
}

func readProgram(r *bufio.Reader, cache *opCache, depth int) (*ilprog.Program, error) {
	if depth > maxParentDepth {
		return nil, &ilprog.ProgramDecodingError{Msg: "parent chain exceeds maximum depth"}
	}

	var idBytes [16]byte
	if _, err := io.ReadFull(r, idBytes[:]); err != nil {
		return nil, &ilprog.ProgramDecodingError{Msg: "reading id", Cause: err}
	}
	id, err := uuid.FromBytes(idBytes[:])
	if err != nil {
		return nil, &ilprog.ProgramDecodingError{Msg: "parsing id", Cause: err}
	}

	hasParent, err := readBool(r)
	if err != nil {
		return nil, &ilprog.ProgramDecodingError{Msg: "reading parent flag", Cause: err}
	}
	var parent *ilprog.Program
	if hasParent {
		parent, err = readProgram(r, cache, depth+1)
		if err != nil {
			return nil, err
		}
	}

	attribution, err := readStringSlice(r)
	if err != nil {
		return nil, &ilprog.ProgramDecodingError{Msg: "reading attribution", Cause: err}
	}

	nComments, err := readUvarint(r)
	if err != nil {
		return nil, &ilprog.ProgramDecodingError{Msg: "reading comment count", Cause: err}
	}
	comments := make(map[int]string, nComments)
	for i := uint64(0); i < nComments; i++ {
		idx, err := readUvarint(r)
		if err != nil {
			return nil, &ilprog.ProgramDecodingError{Msg: "reading comment index", Cause: err}
		}
		text, err := readString(r)
		if err != nil {
			return nil, &ilprog.ProgramDecodingError{Msg: "reading comment text", Cause: err}
		}
		comments[int(idx)] = text
	}

	code, err := readCode(r, cache)
	if err != nil {
		return nil, &ilprog.ProgramDecodingError{Msg: "reading code", Cause: err}
	}
	if err := ilprog.Validate(code); err != nil {
		return nil, &ilprog.ProgramDecodingError{Msg: "decoded code is not statically valid", Cause: err}
	}

	return ilprog.FromParts(code, id, parent, comments, attribution), nil
}

func readCode(r *bufio.Reader, cache *opCache) (*ilprog.Code, error) {
	n, err := readUvarint(r)
	if err != nil {
		return nil, err
	}
	instructions := make([]ilprog.Instruction, n)
	for i := range instructions {
		instr, err := readInstruction(r, cache)
		if err != nil {
			return nil, &ilprog.InstructionDecodingError{Index: i, Msg: err.Error()}
		}
		instructions[i] = instr
	}
	return ilprog.NewCode(instructions), nil
}

func readInstruction(r *bufio.Reader, cache *opCache) (ilprog.Instruction, error) {
	isCacheHit, err := readBool(r)
	if err != nil {
		return ilprog.Instruction{}, err
	}

	var op ilop.Operation
	if isCacheHit {
		idx, err := readUvarint(r)
		if err != nil {
			return ilprog.Instruction{}, err
		}
		op = cache.get(int(idx))
	} else {
		op, err = decodeOperation(r)
		if err != nil {
			return ilprog.Instruction{}, err
		}
		key, err := encodeOperation(op)
		if err != nil {
			return ilprog.Instruction{}, err
		}
		cache.insert(key, op)
	}

	nVars, err := readUvarint(r)
	if err != nil {
		return ilprog.Instruction{}, err
	}
	numOutputs := op.Op.NumOutputs()
	numInnerOutputs := op.Op.NumInnerOutputs()
	numInputs := int(nVars) - numOutputs - numInnerOutputs
	if numInputs < 0 {
		return ilprog.Instruction{}, &ilprog.InstructionDecodingError{Op: op.Op, Msg: "variable vector shorter than fixed output/inner-output count"}
	}

	vars := make([]uint32, nVars)
	for i := range vars {
		v, err := readUvarint(r)
		if err != nil {
			return ilprog.Instruction{}, err
		}
		vars[i] = uint32(v)
	}

	toVars := func(xs []uint32) []ilvar.Variable {
		out := make([]ilvar.Variable, len(xs))
		for i, x := range xs {
			out[i] = ilvar.Variable(x)
		}
		return out
	}

	inputs := toVars(vars[:numInputs])
	outputs := toVars(vars[numInputs : numInputs+numOutputs])
	innerOutputs := toVars(vars[numInputs+numOutputs:])
	return ilprog.NewInstruction(op, inputs, outputs, innerOutputs), nil
}
