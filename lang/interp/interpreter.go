package interp

import (
	"fmt"

	"github.com/mna/fuzzil/lang/ilenv"
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/iltype"
	"github.com/mna/fuzzil/lang/ilvar"
)

// classFrame is one entry of the class-context stack (spec §4.3): the
// information a method body needs to resolve its implicit `this` and
// `super` bindings.
type classFrame struct {
	instanceType iltype.Type
	superType    iltype.Type
}

// Interpreter runs the single forward abstract-interpretation pass over an
// already statically-valid Code, reporting every (variable, newType) change
// as it goes.
type Interpreter struct {
	env     ilenv.Environment
	current *ilvar.Map[iltype.Type]
	parent  *ilvar.Map[iltype.Type]
	levels  []*level
	classes []*classFrame
	// classVarStack parallels classes: the Variable each open
	// BeginClassDefinition declared in its enclosing scope, refined to its
	// precise functionAndConstructor(signature) once BeginClassConstructor is
	// seen (see setEnclosing).
	classVarStack []ilvar.Variable

	// objectLiteralVarStack parallels a nesting of open BeginObjectLiteral
	// blocks: the Variable each one declared, widened in place by every
	// ObjectLiteralAddProperty/BeginObjectLiteralMethod/Getter/Setter seen
	// before its matching EndObjectLiteral (spec §4.3).
	objectLiteralVarStack []ilvar.Variable

	// propertyTypes/methodSignatures are the program-wide tables spec §4.3
	// says LoadProperty/CallMethod consult before falling back to the
	// Environment, keyed by "<group>.<name>" (a group of "" matches any
	// untagged object).
	propertyTypes    map[string]iltype.Type
	methodSignatures map[string]iltype.Signature
}

// New returns an Interpreter driven by env.
func New(env ilenv.Environment) *Interpreter {
	return &Interpreter{
		env:              env,
		current:          ilvar.NewMap[iltype.Type](0),
		propertyTypes:    map[string]iltype.Type{},
		methodSignatures: map[string]iltype.Signature{},
	}
}

// TypeOf returns v's current type, or iltype.Nothing if v has never been
// assigned a type (not yet visible).
func (in *Interpreter) TypeOf(v ilvar.Variable) iltype.Type {
	t, ok := in.current.Get(v)
	if !ok {
		return iltype.Nothing
	}
	return t
}

// Feed runs one instruction of an already statically-valid Code through the
// interpreter and returns every (variable, newType) change it produced.
// Instructions must be fed in program order; Feed panics if it observes a
// block-stack invariant violated (spec §4.3's failure model: such a
// violation can only mean the input was not, in fact, statically valid).
func (in *Interpreter) Feed(instr ilprog.Instruction) []Change {
	op := instr.Op()

	var changes []Change
	changes = append(changes, in.outerEffects(op, instr)...)

	switch blockRoles[op] {
	case roleChild:
		in.pushChildState()
	case roleSibling:
		if len(in.levels) == 0 {
			panic(fmt.Sprintf("interp: %s sibling with no open level", op))
		}
		in.pushSiblingState()
	case roleMerge:
		if len(in.levels) == 0 {
			panic(fmt.Sprintf("interp: %s merge with no open level", op))
		}
		changes = append(changes, in.mergeStates()...)
	}

	changes = append(changes, in.innerEffects(op, instr)...)
	return dedupChanges(changes)
}

// dedupChanges keeps only the last change recorded for each variable,
// preserving relative order of first appearance.
func dedupChanges(changes []Change) []Change {
	if len(changes) < 2 {
		return changes
	}
	last := map[ilvar.Variable]iltype.Type{}
	var order []ilvar.Variable
	for _, c := range changes {
		if _, ok := last[c.Var]; !ok {
			order = append(order, c.Var)
		}
		last[c.Var] = c.Type
	}
	out := make([]Change, 0, len(order))
	for _, v := range order {
		out = append(out, Change{Var: v, Type: last[v]})
	}
	return out
}

func (in *Interpreter) set(v ilvar.Variable, t iltype.Type) Change {
	in.current.Set(v, t)
	return Change{Var: v, Type: t}
}
