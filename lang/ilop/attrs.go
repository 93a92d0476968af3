package ilop

// Attrs is a bitset of the per-opcode attributes named in spec §4.1.
type Attrs uint32

const (
	// IsPure marks operations with no observable side effect (beyond
	// producing their outputs), e.g. LoadInteger, UnaryOperation.
	IsPure Attrs = 1 << iota
	// IsMutable marks operations a minimizer/mutator may rewrite in place
	// (e.g. swap the literal payload) without touching variable wiring.
	IsMutable
	// IsCall marks operations that invoke a function, method, or
	// constructor value.
	IsCall
	// IsBlockStart marks a Begin-family operation that opens a nested Code
	// block.
	IsBlockStart
	// IsBlockEnd marks an End-family operation that closes a nested Code
	// block.
	IsBlockEnd
	// IsJump marks operations that transfer control out of the current
	// block (break, continue, throw).
	IsJump
	// IsVariadic marks operations whose input count depends on
	// FirstVariadicInput rather than being fixed.
	IsVariadic
	// IsSingular marks operations that may appear at most once directly
	// inside their immediately enclosing block (e.g. BeginSwitchDefaultCase).
	IsSingular
	// PropagatesSurroundingContext marks Begin operations whose opened
	// block still carries the surrounding context bits (e.g. a nested
	// BeginIf inside a loop body is still "inside a loop").
	PropagatesSurroundingContext
	// ResumesSurroundingContext marks Begin operations whose opened block
	// unions in the context one frame below the top of the context stack
	// rather than the top itself: a switch case gets the context surrounding
	// its BeginSwitch, not the switch block's own frame.
	ResumesSurroundingContext
	// IsInternal marks operations that exist only for bookkeeping (Nop)
	// and are never considered "real" program content by analyzers that
	// skip internal instructions.
	IsInternal
	// IsNop marks an operation as a literal no-op, distinct from IsInternal
	// in that a Nop still occupies a Variable slot (spec keeps them for
	// stable indices after minimization).
	IsNop
	// IsNotInputMutable marks operations whose inputs must not be replaced
	// by a mutator (e.g. the Variable being declared by a destructuring
	// pattern's left-hand side placeholders).
	IsNotInputMutable
)

// Has reports whether a has every bit set in want.
func (a Attrs) Has(want Attrs) bool { return a&want == want }
