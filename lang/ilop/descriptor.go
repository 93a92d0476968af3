package ilop

import "github.com/mna/fuzzil/lang/ilctx"

// Descriptor is the immutable, opcode-keyed data a Operation value inherits
// from its Opcode: arity, attributes and context requirements. It never
// varies between two Operations of the same Opcode (anything that does vary,
// e.g. a literal's value or a property's name, lives in the Operation's
// Payload instead).
type Descriptor struct {
	NumInputs          int
	NumOutputs         int
	NumInnerOutputs    int
	FirstVariadicInput int // meaningless unless Attrs.Has(IsVariadic); may legitimately be 0
	Attrs              Attrs
	RequiredContext    ilctx.Set
	ContextOpened      ilctx.Set
}

var descriptors [opcodeCount]Descriptor

func init() {
	for i := range descriptors {
		descriptors[i] = Descriptor{RequiredContext: ilctx.JavaScript}
	}
	describeLiterals()
	describeAggregates()
	describeAccess()
	describeCalls()
	describeOperators()
	describeIfSwitch()
	describeLoops()
	describeFunctions()
	describeClasses()
	describeExceptions()
	describeDestructuring()
	describeMisc()
	describeWasm()
}

func set(op Opcode, d Descriptor) {
	if d.RequiredContext == 0 {
		d.RequiredContext = ilctx.JavaScript
	}
	descriptors[op] = d
}

// Descriptor returns op's immutable descriptor. Panics on an invalid opcode,
// since that is always a programming error (decoding already validates).
func (op Opcode) Descriptor() Descriptor {
	if !op.IsValid() {
		panic("ilop: invalid opcode " + op.String())
	}
	return descriptors[op]
}

func (op Opcode) NumInputs() int             { return op.Descriptor().NumInputs }
func (op Opcode) NumOutputs() int            { return op.Descriptor().NumOutputs }
func (op Opcode) NumInnerOutputs() int       { return op.Descriptor().NumInnerOutputs }
func (op Opcode) FirstVariadicInput() int    { return op.Descriptor().FirstVariadicInput }
func (op Opcode) Attrs() Attrs               { return op.Descriptor().Attrs }
func (op Opcode) RequiredContext() ilctx.Set { return op.Descriptor().RequiredContext }
func (op Opcode) ContextOpened() ilctx.Set   { return op.Descriptor().ContextOpened }
func (op Opcode) IsVariadic() bool           { return op.Attrs().Has(IsVariadic) }
func (op Opcode) IsBlockStart() bool         { return op.Attrs().Has(IsBlockStart) }
func (op Opcode) IsBlockEnd() bool           { return op.Attrs().Has(IsBlockEnd) }

func describeLiterals() {
	pureNullary := Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable}
	set(OpLoadInteger, pureNullary)
	set(OpLoadBigInt, pureNullary)
	set(OpLoadFloat, pureNullary)
	set(OpLoadString, pureNullary)
	set(OpLoadBoolean, pureNullary)
	set(OpLoadUndefined, Descriptor{NumOutputs: 1, Attrs: IsPure})
	set(OpLoadNull, Descriptor{NumOutputs: 1, Attrs: IsPure})
	set(OpLoadThis, Descriptor{NumOutputs: 1, Attrs: IsPure})
	set(OpLoadArguments, Descriptor{NumOutputs: 1, Attrs: IsPure})
	set(OpLoadRegExp, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable})
	set(OpLoadNewTarget, Descriptor{NumOutputs: 1, Attrs: IsPure})
}

func describeAggregates() {
	set(OpCreateArray, Descriptor{NumOutputs: 1, FirstVariadicInput: 0, Attrs: IsPure | IsVariadic})
	set(OpCreateIntArray, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable})
	set(OpCreateFloatArray, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable})
	set(OpCreateArrayWithSpread, Descriptor{NumOutputs: 1, FirstVariadicInput: 0, Attrs: IsPure | IsVariadic | IsMutable})
	set(OpCreateTemplateString, Descriptor{NumOutputs: 1, FirstVariadicInput: 0, Attrs: IsPure | IsVariadic})

	set(OpBeginObjectLiteral, Descriptor{NumOutputs: 1, Attrs: IsBlockStart, ContextOpened: ilctx.ObjectLiteral})
	set(OpObjectLiteralAddProperty, Descriptor{NumInputs: 1, RequiredContext: ilctx.ObjectLiteral})
	set(OpObjectLiteralAddElement, Descriptor{NumInputs: 1, RequiredContext: ilctx.ObjectLiteral})
	set(OpObjectLiteralAddComputedProperty, Descriptor{NumInputs: 2, RequiredContext: ilctx.ObjectLiteral})
	set(OpObjectLiteralCopyProperties, Descriptor{NumInputs: 1, RequiredContext: ilctx.ObjectLiteral})
	set(OpObjectLiteralSetPrototype, Descriptor{NumInputs: 1, RequiredContext: ilctx.ObjectLiteral})
	set(OpBeginObjectLiteralMethod, Descriptor{Attrs: IsBlockStart, RequiredContext: ilctx.ObjectLiteral, ContextOpened: ilctx.Subroutine | ilctx.Method})
	set(OpEndObjectLiteralMethod, Descriptor{Attrs: IsBlockEnd, RequiredContext: ilctx.ObjectLiteral})
	set(OpBeginObjectLiteralGetter, Descriptor{Attrs: IsBlockStart, RequiredContext: ilctx.ObjectLiteral, ContextOpened: ilctx.Subroutine | ilctx.Method})
	set(OpEndObjectLiteralGetter, Descriptor{Attrs: IsBlockEnd, RequiredContext: ilctx.ObjectLiteral})
	set(OpBeginObjectLiteralSetter, Descriptor{Attrs: IsBlockStart, RequiredContext: ilctx.ObjectLiteral, ContextOpened: ilctx.Subroutine | ilctx.Method})
	set(OpEndObjectLiteralSetter, Descriptor{Attrs: IsBlockEnd, RequiredContext: ilctx.ObjectLiteral})
	set(OpEndObjectLiteral, Descriptor{Attrs: IsBlockEnd, RequiredContext: ilctx.ObjectLiteral})

	set(OpCreateNamedVariable, Descriptor{NumOutputs: 1, Attrs: IsMutable})
	set(OpLoadNamedVariable, Descriptor{NumOutputs: 1, Attrs: IsMutable})
	set(OpStoreNamedVariable, Descriptor{NumInputs: 1, Attrs: IsMutable})
}

func describeAccess() {
	load1 := Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsMutable}
	store2 := Descriptor{NumInputs: 2, Attrs: IsMutable}
	delete1 := Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsMutable}
	update2 := Descriptor{NumInputs: 2, Attrs: IsMutable}

	set(OpLoadProperty, load1)
	set(OpStoreProperty, store2)
	set(OpDeleteProperty, delete1)
	set(OpUpdateProperty, update2)
	set(OpConfigureProperty, Descriptor{NumInputs: 1, Attrs: IsMutable})

	set(OpLoadElement, load1)
	set(OpStoreElement, store2)
	set(OpDeleteElement, delete1)
	set(OpUpdateElement, update2)
	set(OpConfigureElement, Descriptor{NumInputs: 1, Attrs: IsMutable})

	set(OpLoadComputedProperty, Descriptor{NumInputs: 2, NumOutputs: 1})
	set(OpStoreComputedProperty, Descriptor{NumInputs: 3})
	set(OpDeleteComputedProperty, Descriptor{NumInputs: 2, NumOutputs: 1})
	set(OpUpdateComputedProperty, Descriptor{NumInputs: 3, Attrs: IsMutable})
	set(OpConfigureComputedProperty, Descriptor{NumInputs: 2})

	set(OpLoadPrivateProperty, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsMutable, RequiredContext: ilctx.JavaScript | ilctx.ClassDefinition})
	set(OpStorePrivateProperty, Descriptor{NumInputs: 2, Attrs: IsMutable, RequiredContext: ilctx.JavaScript | ilctx.ClassDefinition})
	set(OpUpdatePrivateProperty, Descriptor{NumInputs: 2, Attrs: IsMutable, RequiredContext: ilctx.JavaScript | ilctx.ClassDefinition})

	set(OpLoadSuperProperty, Descriptor{NumOutputs: 1, Attrs: IsMutable, RequiredContext: ilctx.Method | ilctx.ClassMethod})
	set(OpStoreSuperProperty, Descriptor{NumInputs: 1, Attrs: IsMutable, RequiredContext: ilctx.Method | ilctx.ClassMethod})
	set(OpUpdateSuperProperty, Descriptor{NumInputs: 1, Attrs: IsMutable, RequiredContext: ilctx.Method | ilctx.ClassMethod})
}

func describeCalls() {
	variadicCall := Descriptor{NumInputs: 1, NumOutputs: 1, FirstVariadicInput: 1, Attrs: IsCall | IsVariadic}
	set(OpCallFunction, variadicCall)
	set(OpCallFunctionWithSpread, variadicCall)
	set(OpConstruct, variadicCall)
	set(OpConstructWithSpread, variadicCall)
	set(OpCallMethod, Descriptor{NumInputs: 1, NumOutputs: 1, FirstVariadicInput: 1, Attrs: IsCall | IsVariadic | IsMutable})
	set(OpCallMethodWithSpread, Descriptor{NumInputs: 1, NumOutputs: 1, FirstVariadicInput: 1, Attrs: IsCall | IsVariadic | IsMutable})
	set(OpCallComputedMethod, Descriptor{NumInputs: 2, NumOutputs: 1, FirstVariadicInput: 2, Attrs: IsCall | IsVariadic})
	set(OpCallComputedMethodWithSpread, Descriptor{NumInputs: 2, NumOutputs: 1, FirstVariadicInput: 2, Attrs: IsCall | IsVariadic})
	set(OpCallPrivateMethod, Descriptor{NumInputs: 1, NumOutputs: 1, FirstVariadicInput: 1, Attrs: IsCall | IsVariadic | IsMutable, RequiredContext: ilctx.JavaScript | ilctx.ClassDefinition})
	set(OpCallSuperConstructor, Descriptor{NumOutputs: 0, FirstVariadicInput: 0, Attrs: IsCall | IsVariadic, RequiredContext: ilctx.ClassMethod})
	set(OpCallSuperMethod, Descriptor{NumOutputs: 1, FirstVariadicInput: 0, Attrs: IsCall | IsVariadic | IsMutable, RequiredContext: ilctx.ClassMethod})
	set(OpEval, Descriptor{NumOutputs: 1, FirstVariadicInput: 0, Attrs: IsCall | IsVariadic | IsMutable})
}

func describeOperators() {
	set(OpUnaryOperation, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsPure | IsMutable})
	set(OpBinaryOperation, Descriptor{NumInputs: 2, NumOutputs: 1, Attrs: IsPure | IsMutable})
	set(OpTernaryOperation, Descriptor{NumInputs: 3, NumOutputs: 1, Attrs: IsPure})
	set(OpCompare, Descriptor{NumInputs: 2, NumOutputs: 1, Attrs: IsPure | IsMutable})
	set(OpUpdate, Descriptor{NumInputs: 2, Attrs: IsMutable})
}

func describeIfSwitch() {
	set(OpBeginIf, Descriptor{NumInputs: 1, Attrs: IsBlockStart | PropagatesSurroundingContext})
	set(OpBeginElse, Descriptor{Attrs: IsBlockStart | IsBlockEnd | PropagatesSurroundingContext})
	set(OpEndIf, Descriptor{Attrs: IsBlockEnd})

	set(OpBeginSwitch, Descriptor{NumInputs: 1, Attrs: IsBlockStart, ContextOpened: ilctx.JavaScript | ilctx.SwitchBlock})
	set(OpBeginSwitchCase, Descriptor{NumInputs: 1, Attrs: IsBlockStart | ResumesSurroundingContext, RequiredContext: ilctx.SwitchBlock, ContextOpened: ilctx.JavaScript | ilctx.SwitchCase})
	set(OpBeginSwitchDefaultCase, Descriptor{Attrs: IsBlockStart | IsSingular | ResumesSurroundingContext, RequiredContext: ilctx.SwitchBlock, ContextOpened: ilctx.JavaScript | ilctx.SwitchCase})
	set(OpEndSwitchCase, Descriptor{Attrs: IsBlockEnd, RequiredContext: ilctx.SwitchCase})
	set(OpSwitchBreak, Descriptor{Attrs: IsJump, RequiredContext: ilctx.SwitchCase})
	set(OpEndSwitch, Descriptor{Attrs: IsBlockEnd})
}

func describeLoops() {
	loopCtx := ilctx.Loop
	propagate := PropagatesSurroundingContext
	set(OpBeginWhileLoopHeader, Descriptor{Attrs: IsBlockStart | propagate})
	set(OpBeginWhileLoopBody, Descriptor{NumInputs: 1, Attrs: IsBlockStart | IsBlockEnd | propagate, ContextOpened: loopCtx})
	set(OpEndWhileLoop, Descriptor{Attrs: IsBlockEnd})

	set(OpBeginDoWhileLoopBody, Descriptor{Attrs: IsBlockStart | propagate, ContextOpened: loopCtx})
	set(OpBeginDoWhileLoopHeader, Descriptor{Attrs: IsBlockStart | IsBlockEnd | propagate})
	set(OpEndDoWhileLoop, Descriptor{NumInputs: 1, Attrs: IsBlockEnd})

	set(OpBeginForLoopInitializer, Descriptor{Attrs: IsBlockStart | propagate})
	set(OpBeginForLoopCondition, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsBlockStart | IsBlockEnd | propagate})
	set(OpBeginForLoopAfterthought, Descriptor{NumInputs: 1, Attrs: IsBlockStart | IsBlockEnd | propagate})
	set(OpBeginForLoopBody, Descriptor{Attrs: IsBlockStart | IsBlockEnd | propagate, ContextOpened: loopCtx})
	set(OpEndForLoop, Descriptor{Attrs: IsBlockEnd})

	set(OpBeginForInLoop, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsBlockStart | propagate, ContextOpened: loopCtx})
	set(OpEndForInLoop, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginForOfLoop, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsBlockStart | propagate, ContextOpened: loopCtx})
	set(OpBeginForOfLoopWithDestruct, Descriptor{NumInputs: 1, FirstVariadicInput: 1, Attrs: IsBlockStart | IsVariadic | propagate, ContextOpened: loopCtx})
	set(OpEndForOfLoop, Descriptor{Attrs: IsBlockEnd})

	set(OpBeginRepeatLoop, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable | propagate, ContextOpened: loopCtx})
	set(OpEndRepeatLoop, Descriptor{Attrs: IsBlockEnd})

	set(OpLoopBreak, Descriptor{Attrs: IsJump, RequiredContext: ilctx.Loop})
	set(OpLoopContinue, Descriptor{Attrs: IsJump, RequiredContext: ilctx.Loop})
}

func describeFunctions() {
	subCtx := ilctx.JavaScript | ilctx.Subroutine
	set(OpBeginPlainFunction, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: subCtx})
	set(OpEndPlainFunction, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginArrowFunction, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: subCtx})
	set(OpEndArrowFunction, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginGeneratorFunction, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: subCtx | ilctx.GeneratorFunction})
	set(OpEndGeneratorFunction, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginAsyncFunction, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: subCtx | ilctx.AsyncFunction})
	set(OpEndAsyncFunction, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginAsyncArrowFunction, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: subCtx | ilctx.AsyncFunction})
	set(OpEndAsyncArrowFunction, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginAsyncGeneratorFunction, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: subCtx | ilctx.AsyncFunction | ilctx.GeneratorFunction})
	set(OpEndAsyncGeneratorFunction, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginConstructor, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: subCtx})
	set(OpEndConstructor, Descriptor{Attrs: IsBlockEnd})

	set(OpReturn, Descriptor{NumInputs: 1, Attrs: IsJump, RequiredContext: subCtx})
	set(OpYield, Descriptor{NumInputs: 1, NumOutputs: 1, RequiredContext: subCtx | ilctx.GeneratorFunction})
	set(OpYieldEach, Descriptor{NumInputs: 1, RequiredContext: subCtx | ilctx.GeneratorFunction})
	set(OpAwait, Descriptor{NumInputs: 1, NumOutputs: 1, RequiredContext: subCtx | ilctx.AsyncFunction})
}

func describeClasses() {
	classDefCtx := ilctx.ClassDefinition
	methodCtx := ilctx.JavaScript | ilctx.Subroutine | ilctx.Method | ilctx.ClassMethod
	set(OpBeginClassDefinition, Descriptor{NumOutputs: 1, NumInputs: 1, Attrs: IsBlockStart | IsMutable, ContextOpened: classDefCtx})
	set(OpEndClassDefinition, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginClassConstructor, Descriptor{Attrs: IsBlockStart, RequiredContext: classDefCtx, ContextOpened: methodCtx})
	set(OpEndClassConstructor, Descriptor{Attrs: IsBlockEnd, RequiredContext: classDefCtx})

	pair := func(begin, end Opcode) {
		set(begin, Descriptor{Attrs: IsBlockStart | IsBlockEnd, RequiredContext: classDefCtx, ContextOpened: methodCtx})
		set(end, Descriptor{Attrs: IsBlockEnd, RequiredContext: classDefCtx})
	}
	pair(OpBeginClassInstanceMethod, OpEndClassInstanceMethod)
	pair(OpBeginClassStaticMethod, OpEndClassStaticMethod)
	pair(OpBeginClassPrivateMethod, OpEndClassPrivateMethod)
	pair(OpBeginClassInstanceGetter, OpEndClassInstanceGetter)
	pair(OpBeginClassInstanceSetter, OpEndClassInstanceSetter)
	pair(OpBeginClassStaticGetter, OpEndClassStaticGetter)
	pair(OpBeginClassStaticSetter, OpEndClassStaticSetter)

	set(OpClassAddInstanceProperty, Descriptor{Attrs: IsMutable, RequiredContext: classDefCtx})
	set(OpClassAddStaticProperty, Descriptor{Attrs: IsMutable, RequiredContext: classDefCtx})
	set(OpClassAddPrivateProperty, Descriptor{Attrs: IsMutable, RequiredContext: classDefCtx})
	set(OpBeginClassStaticInitializer, Descriptor{Attrs: IsBlockStart | IsBlockEnd, RequiredContext: classDefCtx, ContextOpened: ilctx.JavaScript | methodCtx})
	set(OpEndClassStaticInitializer, Descriptor{Attrs: IsBlockEnd, RequiredContext: classDefCtx})
}

func describeExceptions() {
	set(OpBeginTry, Descriptor{Attrs: IsBlockStart | PropagatesSurroundingContext})
	set(OpBeginCatch, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsBlockEnd | PropagatesSurroundingContext})
	set(OpBeginFinally, Descriptor{Attrs: IsBlockStart | IsBlockEnd | PropagatesSurroundingContext})
	set(OpEndTryCatchFinally, Descriptor{Attrs: IsBlockEnd})
	set(OpThrowException, Descriptor{NumInputs: 1, Attrs: IsJump})
}

func describeDestructuring() {
	set(OpDestructArray, Descriptor{NumInputs: 1, FirstVariadicInput: 1, Attrs: IsVariadic | IsMutable})
	set(OpDestructArrayAndReassign, Descriptor{NumInputs: 1, FirstVariadicInput: 1, Attrs: IsVariadic | IsMutable | IsNotInputMutable})
	set(OpDestructObject, Descriptor{NumInputs: 1, FirstVariadicInput: 1, Attrs: IsVariadic | IsMutable})
	set(OpDestructObjectAndReassign, Descriptor{NumInputs: 1, FirstVariadicInput: 1, Attrs: IsVariadic | IsMutable | IsNotInputMutable})
}

func describeMisc() {
	set(OpDup, Descriptor{NumInputs: 1, NumOutputs: 1})
	set(OpReassign, Descriptor{NumInputs: 2, Attrs: IsNotInputMutable})
	set(OpNop, Descriptor{Attrs: IsInternal | IsNop})
	set(OpBeginCodeString, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable})
	set(OpEndCodeString, Descriptor{Attrs: IsBlockEnd})
	set(OpBeginBlockStatement, Descriptor{Attrs: IsBlockStart | PropagatesSurroundingContext})
	set(OpEndBlockStatement, Descriptor{Attrs: IsBlockEnd})
	set(OpPrint, Descriptor{NumInputs: 1})
	set(OpExplore, Descriptor{NumInputs: 1, FirstVariadicInput: 1, Attrs: IsVariadic | IsMutable})
	set(OpProbe, Descriptor{NumInputs: 1})
}

func describeWasm() {
	wasmCtx := ilctx.Wasm
	set(OpBeginWasmModule, Descriptor{Attrs: IsBlockStart, ContextOpened: wasmCtx})
	set(OpEndWasmModule, Descriptor{NumOutputs: 1, Attrs: IsBlockEnd})
	set(OpCreateWasmMemory, Descriptor{NumOutputs: 1, Attrs: IsMutable, RequiredContext: wasmCtx})
	set(OpCreateWasmTable, Descriptor{NumOutputs: 1, Attrs: IsMutable, RequiredContext: wasmCtx})
	set(OpCreateWasmGlobal, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsMutable, RequiredContext: wasmCtx})
	set(OpCreateWasmTag, Descriptor{NumOutputs: 1, Attrs: IsMutable, RequiredContext: wasmCtx})
	// A type group's member types are values carried in its variadic input
	// list, not a nested block: there is nothing for a WasmTypeGroup context
	// to scope, so unlike the other wasm constructs this is an ordinary
	// instruction rather than a Begin/End pair.
	set(OpWasmDefineTypeGroup, Descriptor{FirstVariadicInput: 0, Attrs: IsVariadic, RequiredContext: wasmCtx})

	fnCtx := wasmCtx | ilctx.WasmFunction
	set(OpBeginWasmFunction, Descriptor{NumOutputs: 1, Attrs: IsBlockStart | IsMutable, RequiredContext: wasmCtx, ContextOpened: fnCtx})
	set(OpEndWasmFunction, Descriptor{NumInputs: 1, Attrs: IsBlockEnd, RequiredContext: fnCtx})

	set(OpBeginWasmBlock, Descriptor{FirstVariadicInput: 0, Attrs: IsBlockStart | IsVariadic, RequiredContext: fnCtx, ContextOpened: fnCtx | ilctx.WasmBlock})
	set(OpEndWasmBlock, Descriptor{NumOutputs: 1, Attrs: IsBlockEnd, RequiredContext: ilctx.WasmBlock})
	set(OpBeginWasmLoop, Descriptor{FirstVariadicInput: 0, Attrs: IsBlockStart | IsVariadic, RequiredContext: fnCtx, ContextOpened: fnCtx | ilctx.WasmBlock})
	set(OpEndWasmLoop, Descriptor{NumOutputs: 1, Attrs: IsBlockEnd, RequiredContext: ilctx.WasmBlock})

	set(OpBeginWasmTry, Descriptor{Attrs: IsBlockStart, RequiredContext: fnCtx, ContextOpened: fnCtx | ilctx.WasmBlock})
	set(OpBeginWasmCatch, Descriptor{FirstVariadicInput: 0, Attrs: IsBlockStart | IsBlockEnd | IsVariadic | ResumesSurroundingContext, RequiredContext: ilctx.WasmBlock, ContextOpened: fnCtx | ilctx.WasmBlock})
	set(OpEndWasmTry, Descriptor{Attrs: IsBlockEnd})

	set(OpBeginWasmIf, Descriptor{NumInputs: 1, Attrs: IsBlockStart, RequiredContext: fnCtx, ContextOpened: fnCtx | ilctx.WasmBlock})
	set(OpBeginWasmElse, Descriptor{Attrs: IsBlockStart | IsBlockEnd | ResumesSurroundingContext, RequiredContext: ilctx.WasmBlock, ContextOpened: fnCtx | ilctx.WasmBlock})
	set(OpEndWasmIf, Descriptor{NumOutputs: 1, Attrs: IsBlockEnd})

	set(OpWasmBranch, Descriptor{Attrs: IsJump, RequiredContext: ilctx.WasmBlock})
	set(OpWasmBranchIf, Descriptor{NumInputs: 1, Attrs: IsJump, RequiredContext: ilctx.WasmBlock})
	set(OpWasmReturn, Descriptor{NumInputs: 1, Attrs: IsJump, RequiredContext: fnCtx})
	set(OpWasmThrow, Descriptor{FirstVariadicInput: 0, Attrs: IsJump | IsVariadic, RequiredContext: fnCtx})
	set(OpWasmRethrow, Descriptor{NumInputs: 1, Attrs: IsJump, RequiredContext: ilctx.WasmBlock})

	set(OpWasmConstI32, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: wasmCtx})
	set(OpWasmConstI64, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: wasmCtx})
	set(OpWasmConstF32, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: wasmCtx})
	set(OpWasmConstF64, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: wasmCtx})
	set(OpWasmConstSIMD128, Descriptor{NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: wasmCtx})

	set(OpWasmTruncate, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: fnCtx})
	set(OpWasmExtend, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: fnCtx})
	set(OpWasmReinterpret, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: fnCtx})
	set(OpWasmSignExtend, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: fnCtx})

	binop := Descriptor{NumInputs: 2, NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: fnCtx}
	unop := Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: fnCtx}
	cmpop := Descriptor{NumInputs: 2, NumOutputs: 1, Attrs: IsPure | IsMutable, RequiredContext: fnCtx}
	set(OpWasmI32BinaryOp, binop)
	set(OpWasmI64BinaryOp, binop)
	set(OpWasmF32BinaryOp, binop)
	set(OpWasmF64BinaryOp, binop)
	set(OpWasmI32UnaryOp, unop)
	set(OpWasmI64UnaryOp, unop)
	set(OpWasmF32UnaryOp, unop)
	set(OpWasmF64UnaryOp, unop)
	set(OpWasmI32CompareOp, cmpop)
	set(OpWasmI64CompareOp, cmpop)
	set(OpWasmF32CompareOp, cmpop)
	set(OpWasmF64CompareOp, cmpop)
	set(OpWasmSimd128Op, Descriptor{NumInputs: 2, FirstVariadicInput: 0, NumOutputs: 1, Attrs: IsPure | IsMutable | IsVariadic, RequiredContext: fnCtx})

	set(OpWasmGlobalLoad, Descriptor{NumInputs: 1, NumOutputs: 1, Attrs: IsMutable, RequiredContext: fnCtx})
	set(OpWasmGlobalStore, Descriptor{NumInputs: 2, Attrs: IsMutable, RequiredContext: fnCtx})
	set(OpWasmMemoryLoad, Descriptor{NumInputs: 2, NumOutputs: 1, Attrs: IsMutable, RequiredContext: fnCtx})
	set(OpWasmMemoryStore, Descriptor{NumInputs: 3, Attrs: IsMutable, RequiredContext: fnCtx})
	set(OpWasmTableGet, Descriptor{NumInputs: 2, NumOutputs: 1, Attrs: IsMutable, RequiredContext: fnCtx})
	set(OpWasmTableSet, Descriptor{NumInputs: 3, Attrs: IsMutable, RequiredContext: fnCtx})
	set(OpWasmCallFunction, Descriptor{NumInputs: 1, NumOutputs: 1, FirstVariadicInput: 1, Attrs: IsCall | IsVariadic, RequiredContext: fnCtx})
	set(OpWasmCallIndirect, Descriptor{NumInputs: 2, NumOutputs: 1, FirstVariadicInput: 2, Attrs: IsCall | IsVariadic, RequiredContext: fnCtx})
}
