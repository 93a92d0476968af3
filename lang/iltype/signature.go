package iltype

// ParamKind distinguishes the three ways a Signature parameter may accept
// arguments.
type ParamKind uint8

const (
	ParamPlain ParamKind = iota
	ParamOpt
	ParamRest
)

// Param is one formal parameter of a Signature. Rest may only appear last;
// Opt must not precede a Plain parameter.
type Param struct {
	Kind ParamKind
	Type Type
}

// Plain builds a required parameter of type t.
func Plain(t Type) Param { return Param{Kind: ParamPlain, Type: t} }

// Opt builds an optional parameter of type t.
func Opt(t Type) Param { return Param{Kind: ParamOpt, Type: t} }

// Rest builds a variadic trailing parameter of element type t.
func Rest(t Type) Param { return Param{Kind: ParamRest, Type: t} }

// Signature is the call shape of a function or constructor: its formal
// parameters and its output (return) type.
type Signature struct {
	Parameters []Param
	OutputType Type
}

// NewSignature builds a Signature. It panics if params violate the ordering
// rule (Opt may not precede Plain, Rest may only be last) — these are
// programming errors in the caller, not data to validate dynamically.
func NewSignature(output Type, params ...Param) Signature {
	sawOpt := false
	for i, p := range params {
		if p.Kind == ParamRest && i != len(params)-1 {
			panic("iltype: rest parameter must be last")
		}
		if p.Kind == ParamOpt {
			sawOpt = true
		}
		if p.Kind == ParamPlain && sawOpt {
			panic("iltype: plain parameter cannot follow an optional parameter")
		}
	}
	return Signature{Parameters: params, OutputType: output}
}

// expand flattens a signature's parameters into a sequence of per-position
// types for pairwise comparison: Opt positions are included, and a trailing
// Rest is repeated up to n times (n chosen by the caller, one more than the
// longest of the two sides being compared, which is always enough since
// beyond that both sides are exhausted).
func (s Signature) expand(n int) []Type {
	var out []Type
	for _, p := range s.Parameters {
		if p.Kind == ParamRest {
			for len(out) < n {
				out = append(out, p.Type)
			}
			return out
		}
		out = append(out, p.Type)
	}
	return out
}

func (s Signature) hasRest() bool {
	return len(s.Parameters) > 0 && s.Parameters[len(s.Parameters)-1].Kind == ParamRest
}

func (s Signature) minParams() int {
	n := 0
	for _, p := range s.Parameters {
		if p.Kind == ParamPlain {
			n++
		}
	}
	return n
}

// Subsumes reports whether every call satisfying callee also satisfies s,
// i.e. s.Subsumes(callee) means callee may be used wherever s is expected.
// Parameters are compared position-wise after expanding Opt/Rest on both
// sides; the callee side must accept at least as many parameters as s does.
func (s Signature) Subsumes(callee Signature) bool {
	if !s.OutputType.Subsumes(callee.OutputType) {
		return false
	}
	if callee.minParams() < s.minParams() {
		return false
	}

	n := len(s.Parameters)
	if len(callee.Parameters) > n {
		n = len(callee.Parameters)
	}
	if s.hasRest() || callee.hasRest() {
		n++ // ensure at least one position is compared past the declared list
	}

	sp, cp := s.expand(n), callee.expand(n)
	for i := 0; i < n; i++ {
		var st, ct Type
		if i < len(sp) {
			st = sp[i]
		} else {
			continue // s has no constraint at this position
		}
		if i < len(cp) {
			ct = cp[i]
		} else {
			return false // callee cannot accept a parameter s requires
		}
		// contravariant in parameter position: callee's parameter type must
		// accept whatever s's signature would pass, i.e. callee param subsumes s
		// param's allowed input, mirrored here as ct.Subsumes(st) would be the
		// strict contravariant rule; FuzzIL's type lattice is not sound in the
		// formal sense (spec §1 Non-goals) so a direct subsumption check in
		// declaration order is used instead, matching the reference behavior of
		// comparing "parameter types pairwise" without variance inversion.
		if !st.Subsumes(ct) && !ct.Subsumes(st) {
			return false
		}
	}
	return true
}

func (s Signature) Equal(o Signature) bool {
	if !s.OutputType.Equal(o.OutputType) {
		return false
	}
	if len(s.Parameters) != len(o.Parameters) {
		return false
	}
	for i, p := range s.Parameters {
		op := o.Parameters[i]
		if p.Kind != op.Kind || !p.Type.Equal(op.Type) {
			return false
		}
	}
	return true
}
