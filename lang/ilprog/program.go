package ilprog

import "github.com/google/uuid"

// Program is a complete, independently executable (or embeddable) FuzzIL
// sample: its Code, an identity UUID, an optional link to the Program it was
// derived from (by mutation or minimization), free-form per-instruction
// comments, and an attribution set naming the components that contributed
// instructions to it (used by corpus bookkeeping to weight mutator/generator
// selection).
type Program struct {
	code        *Code
	id          uuid.UUID
	parent      *Program
	comments    map[int]string // instruction index -> comment text
	attribution map[string]struct{}
}

// NewProgram wraps code as a fresh, parentless Program with a new random id.
func NewProgram(code *Code) *Program {
	return &Program{code: code, id: uuid.New(), comments: map[int]string{}, attribution: map[string]struct{}{}}
}

// Derive builds a new Program sharing no mutable state with p, recording p
// as its parent.
func (p *Program) Derive(code *Code) *Program {
	child := NewProgram(code)
	child.parent = p
	return child
}

func (p *Program) ID() uuid.UUID    { return p.id }
func (p *Program) Code() *Code      { return p.code }
func (p *Program) Parent() *Program { return p.parent }

// Ancestors returns p's parent chain, nearest ancestor first.
func (p *Program) Ancestors() []*Program {
	var out []*Program
	for cur := p.parent; cur != nil; cur = cur.parent {
		out = append(out, cur)
	}
	return out
}

// SetComment attaches a free-form comment to the instruction at index.
func (p *Program) SetComment(index int, text string) { p.comments[index] = text }

// Comment returns the comment attached to the instruction at index, if any.
func (p *Program) Comment(index int) (string, bool) {
	c, ok := p.comments[index]
	return c, ok
}

// Comments returns every (index, text) comment pair attached to p, in no
// particular order. Used by lang/serialize to encode the full set.
func (p *Program) Comments() map[int]string { return p.comments }

// FromParts rebuilds a Program from its serialized components: used only by
// lang/serialize's decoder, which has already validated code and resolved
// parent recursively.
func FromParts(code *Code, id uuid.UUID, parent *Program, comments map[int]string, attribution []string) *Program {
	attr := make(map[string]struct{}, len(attribution))
	for _, a := range attribution {
		attr[a] = struct{}{}
	}
	if comments == nil {
		comments = map[int]string{}
	}
	return &Program{code: code, id: id, parent: parent, comments: comments, attribution: attr}
}

// Attribute records that the named component (a generator, mutator, or
// corpus program) contributed to p.
func (p *Program) Attribute(component string) { p.attribution[component] = struct{}{} }

// Attribution returns the set of components attributed to p.
func (p *Program) Attribution() []string {
	out := make([]string, 0, len(p.attribution))
	for k := range p.attribution {
		out = append(out, k)
	}
	return out
}

// Size returns the number of instructions in p's top-level Code.
func (p *Program) Size() int { return p.code.Len() }

// ProgramDecodingError is returned by lang/serialize when a decoded Program
// fails the static validity checks (Validate) before it is ever handed to an
// analyzer.
type ProgramDecodingError struct {
	Msg   string
	Cause error
}

func (e *ProgramDecodingError) Error() string {
	if e.Cause != nil {
		return "ilprog: decoding program: " + e.Msg + ": " + e.Cause.Error()
	}
	return "ilprog: decoding program: " + e.Msg
}

func (e *ProgramDecodingError) Unwrap() error { return e.Cause }
