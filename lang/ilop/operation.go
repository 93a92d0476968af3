package ilop

// Operation is one concrete, immutable instance of an opcode: the opcode
// plus whatever Payload its kind requires. It carries no variables — those
// live on the owning Instruction (lang/ilprog), matching the teacher's split
// between an opcode's identity and its operands.
type Operation struct {
	Op      Opcode
	Payload Payload
}

// New builds an Operation. payload may be nil for opcodes that need none.
func New(op Opcode, payload Payload) Operation {
	return Operation{Op: op, Payload: payload}
}

func (o Operation) NumInputs() int          { return o.Op.NumInputs() }
func (o Operation) NumOutputs() int         { return o.Op.NumOutputs() }
func (o Operation) NumInnerOutputs() int    { return o.Op.NumInnerOutputs() }
func (o Operation) FirstVariadicInput() int { return o.Op.FirstVariadicInput() }
func (o Operation) Attrs() Attrs            { return o.Op.Attrs() }
func (o Operation) IsVariadic() bool        { return o.Op.IsVariadic() }
func (o Operation) IsBlockStart() bool      { return o.Op.IsBlockStart() }
func (o Operation) IsBlockEnd() bool        { return o.Op.IsBlockEnd() }

// IsGuarded reports whether a call-family Operation swallows a thrown
// exception rather than propagating it. Non-call opcodes are never guarded.
func (o Operation) IsGuarded() bool {
	g, ok := o.Payload.(Guarded)
	return ok && g.IsGuarded
}

// blockEnders maps every Begin-family opcode that starts a single nested
// Code block to the opcode(s) legally allowed to close or continue that
// block: BeginX -> {valid next siblings/closers}. Used by the validity
// checker (lang/ilprog) to reject e.g. a BeginIf closed by EndWasmModule.
var blockEnders = map[Opcode][]Opcode{
	OpBeginIf:   {OpBeginElse, OpEndIf},
	OpBeginElse: {OpEndIf},

	OpBeginSwitch:            {OpEndSwitch},
	OpBeginSwitchCase:        {OpEndSwitchCase},
	OpBeginSwitchDefaultCase: {OpEndSwitchCase},

	OpBeginWhileLoopHeader:     {OpBeginWhileLoopBody},
	OpBeginWhileLoopBody:       {OpEndWhileLoop},
	OpBeginDoWhileLoopBody:     {OpBeginDoWhileLoopHeader},
	OpBeginDoWhileLoopHeader:   {OpEndDoWhileLoop},
	OpBeginForLoopInitializer:  {OpBeginForLoopCondition},
	OpBeginForLoopCondition:    {OpBeginForLoopAfterthought},
	OpBeginForLoopAfterthought: {OpBeginForLoopBody},
	OpBeginForLoopBody:         {OpEndForLoop},
	OpBeginForInLoop:           {OpEndForInLoop},
	OpBeginForOfLoop:           {OpEndForOfLoop},
	OpBeginForOfLoopWithDestruct: {OpEndForOfLoop},
	OpBeginRepeatLoop:          {OpEndRepeatLoop},

	OpBeginPlainFunction:          {OpEndPlainFunction},
	OpBeginArrowFunction:          {OpEndArrowFunction},
	OpBeginGeneratorFunction:      {OpEndGeneratorFunction},
	OpBeginAsyncFunction:          {OpEndAsyncFunction},
	OpBeginAsyncArrowFunction:     {OpEndAsyncArrowFunction},
	OpBeginAsyncGeneratorFunction: {OpEndAsyncGeneratorFunction},
	OpBeginConstructor:            {OpEndConstructor},

	// BeginClassDefinition wraps a flat sequence of member declarations, each
	// either a plain instruction (ClassAdd*Property) or its own independently
	// nested Begin/End pair (constructor, method, getter, setter, static
	// initializer) — not a replace-in-place chain like if/else, since the
	// class-definition wrapper instruction is distinct from each member.
	OpBeginClassDefinition:         {OpEndClassDefinition},
	OpBeginClassConstructor:        {OpEndClassConstructor},
	OpBeginClassInstanceMethod:     {OpEndClassInstanceMethod},
	OpBeginClassStaticMethod:       {OpEndClassStaticMethod},
	OpBeginClassPrivateMethod:      {OpEndClassPrivateMethod},
	OpBeginClassInstanceGetter:     {OpEndClassInstanceGetter},
	OpBeginClassInstanceSetter:     {OpEndClassInstanceSetter},
	OpBeginClassStaticGetter:       {OpEndClassStaticGetter},
	OpBeginClassStaticSetter:       {OpEndClassStaticSetter},
	OpBeginClassStaticInitializer:  {OpEndClassStaticInitializer},

	OpBeginTry:     {OpBeginCatch, OpBeginFinally, OpEndTryCatchFinally},
	OpBeginCatch:   {OpBeginFinally, OpEndTryCatchFinally},
	OpBeginFinally: {OpEndTryCatchFinally},

	// Likewise BeginObjectLiteral wraps plain Add* instructions and
	// independently nested method/getter/setter blocks; only EndObjectLiteral
	// truly closes it.
	OpBeginObjectLiteral:       {OpEndObjectLiteral},
	OpBeginObjectLiteralMethod: {OpEndObjectLiteralMethod},
	OpBeginObjectLiteralGetter: {OpEndObjectLiteralGetter},
	OpBeginObjectLiteralSetter: {OpEndObjectLiteralSetter},

	OpBeginCodeString: {OpEndCodeString},
	OpBeginBlockStatement: {OpEndBlockStatement},

	OpBeginWasmModule:   {OpEndWasmModule},
	OpBeginWasmFunction: {OpEndWasmFunction},
	OpBeginWasmBlock:    {OpEndWasmBlock},
	OpBeginWasmLoop:     {OpEndWasmLoop},
	OpBeginWasmTry:      {OpBeginWasmCatch, OpEndWasmTry},
	OpBeginWasmCatch:    {OpBeginWasmCatch, OpEndWasmTry},
	OpBeginWasmIf:       {OpBeginWasmElse, OpEndWasmIf},
	OpBeginWasmElse:     {OpEndWasmIf},
}

// ValidNextInBlock reports whether next may legally follow a still-open
// block opened by opener (which must be a Begin-family opcode), as either a
// chain continuation or the matching End.
func ValidNextInBlock(opener, next Opcode) bool {
	for _, o := range blockEnders[opener] {
		if o == next {
			return true
		}
	}
	return false
}

// ClosesBlock reports whether op is the final, block-end member for a chain
// opened by opener (as opposed to merely continuing the chain, e.g.
// BeginElse continues an if/else chain but does not close it).
func ClosesBlock(opener, op Opcode) bool {
	return ValidNextInBlock(opener, op) && op.IsBlockEnd() && !op.IsBlockStart()
}
