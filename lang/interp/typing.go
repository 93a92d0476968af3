package interp

import (
	"github.com/mna/fuzzil/lang/ilop"
	"github.com/mna/fuzzil/lang/ilprog"
	"github.com/mna/fuzzil/lang/iltype"
	"github.com/mna/fuzzil/lang/ilvar"
)

// setEnclosing writes v's type into current and into every still-open
// level's parent snapshot, so a later refinement of a variable declared
// outside the block currently being typed (e.g. a class's own binding,
// refined once its constructor's signature is known) survives sibling
// rollback and merge undiluted.
func (in *Interpreter) setEnclosing(v ilvar.Variable, t iltype.Type) Change {
	in.current.Set(v, t)
	for _, lvl := range in.levels {
		lvl.parent.Set(v, t)
	}
	return Change{Var: v, Type: t}
}

// outerEffects types the outer-visible outputs of block-opening operations
// — bindings declared in the scope *surrounding* the block, such as a
// function expression's own value — before the branch-state stack is
// touched for this instruction (spec §4.3).
func (in *Interpreter) outerEffects(op ilop.Opcode, instr ilprog.Instruction) []Change {
	outs := instr.Outputs()
	one := func(t iltype.Type) []Change {
		if len(outs) == 0 {
			return nil
		}
		return []Change{in.set(outs[0], t)}
	}

	switch op {
	case ilop.OpBeginPlainFunction, ilop.OpBeginArrowFunction,
		ilop.OpBeginAsyncFunction, ilop.OpBeginAsyncArrowFunction:
		return one(iltype.FunctionT(signatureOf(instr)))
	case ilop.OpBeginGeneratorFunction, ilop.OpBeginAsyncGeneratorFunction:
		return one(iltype.FunctionT(signatureOf(instr)))
	case ilop.OpBeginConstructor:
		return one(iltype.ConstructorT(signatureOf(instr)))
	case ilop.OpBeginObjectLiteral:
		t := in.env.ObjectType()
		if len(outs) == 0 {
			return nil
		}
		in.objectLiteralVarStack = append(in.objectLiteralVarStack, outs[0])
		return one(t)
	case ilop.OpBeginObjectLiteralMethod, ilop.OpBeginObjectLiteralGetter, ilop.OpBeginObjectLiteralSetter:
		name, ok := propertyNameOf(instr)
		v, ok2 := in.objectLiteralVariable()
		if !ok || !ok2 {
			return nil
		}
		return []Change{in.set(v, in.TypeOf(v).Adding(name, true))}
	case ilop.OpBeginClassDefinition:
		// the precise functionAndConstructor(signature) is only known once
		// BeginClassConstructor is seen, a few instructions later; until then
		// the class's own binding is conservatively unknown.
		cls := &classFrame{}
		if cd, ok := instr.Operation.Payload.(ilop.ClassDefinition); ok && cd.HasSuperclass {
			ins := instr.Inputs()
			if len(ins) > 0 {
				superCtor := in.TypeOf(ins[0])
				if sig := superCtor.Signature(); sig != nil {
					cls.superType = sig.OutputType
				}
			}
		}
		in.classes = append(in.classes, cls)
		if len(outs) > 0 {
			in.classVarStack = append(in.classVarStack, outs[0])
		}
		return one(iltype.Unknown())
	}
	return nil
}

// innerEffects types inner outputs (parameters, loop/catch bindings, the
// implicit receiver) and the outputs of simple (non-block) operations,
// after any branch-state push/sibling/merge for this instruction has
// already happened (spec §4.3).
func (in *Interpreter) innerEffects(op ilop.Opcode, instr ilprog.Instruction) []Change {
	var changes []Change

	switch op {
	case ilop.OpBeginClassConstructor:
		cls := in.currentClass()
		sig := signatureOf(instr)
		cls.instanceType = sig.OutputType
		if classVar, ok := in.classVariable(); ok {
			changes = append(changes, in.setEnclosing(classVar, iltype.FunctionAndConstructorT(sig)))
		}
		changes = append(changes, in.bindParameters(instr.InnerOutputs(), sig)...)
		return changes
	case ilop.OpBeginClassInstanceMethod, ilop.OpBeginClassStaticMethod, ilop.OpBeginClassPrivateMethod,
		ilop.OpBeginClassInstanceGetter, ilop.OpBeginClassInstanceSetter,
		ilop.OpBeginClassStaticGetter, ilop.OpBeginClassStaticSetter:
		sig := signatureOf(instr)
		changes = append(changes, in.bindParameters(instr.InnerOutputs(), sig)...)
		return changes
	case ilop.OpEndClassDefinition:
		if len(in.classes) > 0 {
			in.classes = in.classes[:len(in.classes)-1]
		}
		if len(in.classVarStack) > 0 {
			in.classVarStack = in.classVarStack[:len(in.classVarStack)-1]
		}
		return changes
	case ilop.OpEndObjectLiteral:
		if len(in.objectLiteralVarStack) > 0 {
			in.objectLiteralVarStack = in.objectLiteralVarStack[:len(in.objectLiteralVarStack)-1]
		}
		return changes
	}

	switch op {
	case ilop.OpBeginPlainFunction, ilop.OpBeginArrowFunction, ilop.OpBeginGeneratorFunction,
		ilop.OpBeginAsyncFunction, ilop.OpBeginAsyncArrowFunction, ilop.OpBeginAsyncGeneratorFunction:
		return in.bindParameters(instr.InnerOutputs(), signatureOf(instr))
	case ilop.OpBeginCatch:
		for _, v := range instr.Outputs() {
			changes = append(changes, in.set(v, iltype.Unknown()))
		}
		return changes
	case ilop.OpBeginForInLoop:
		for _, v := range instr.Outputs() {
			changes = append(changes, in.set(v, iltype.StringT()))
		}
		return changes
	case ilop.OpBeginForOfLoop, ilop.OpBeginForOfLoopWithDestruct:
		for _, v := range instr.Outputs() {
			changes = append(changes, in.set(v, iltype.Unknown()))
		}
		return changes
	case ilop.OpBeginRepeatLoop:
		for _, v := range instr.Outputs() {
			changes = append(changes, in.set(v, iltype.IntegerT()))
		}
		return changes
	}

	return append(changes, in.typeSimpleOp(op, instr)...)
}

func (in *Interpreter) currentClass() *classFrame {
	return in.classes[len(in.classes)-1]
}

// classVariable returns the Variable the innermost open BeginClassDefinition
// declared in its enclosing scope.
func (in *Interpreter) classVariable() (ilvar.Variable, bool) {
	if len(in.classVarStack) == 0 {
		return 0, false
	}
	return in.classVarStack[len(in.classVarStack)-1], true
}

// objectLiteralVariable returns the Variable the innermost open
// BeginObjectLiteral declared.
func (in *Interpreter) objectLiteralVariable() (ilvar.Variable, bool) {
	if len(in.objectLiteralVarStack) == 0 {
		return 0, false
	}
	return in.objectLiteralVarStack[len(in.objectLiteralVarStack)-1], true
}

// signatureOf extracts the FunctionSignature payload a function/method/
// constructor-defining Begin operation carries. Panics if absent: every
// opcode this is called for requires one by construction (spec §4.1).
func signatureOf(instr ilprog.Instruction) iltype.Signature {
	sig, ok := instr.Operation.Payload.(ilop.FunctionSignature)
	if !ok {
		panic("interp: function-defining instruction without a FunctionSignature payload")
	}
	return sig.Signature
}

// bindParameters types each parameter inner-output per the signature's
// declared parameter kind: plain/opt parameters get their declared type
// directly, a trailing rest parameter's element type is given to every
// inner output past the plain/opt count (FuzzIL represents "...rest" as one
// inner output per call-site-independent formal, typed uniformly).
func (in *Interpreter) bindParameters(innerOutputs []ilvar.Variable, sig iltype.Signature) []Change {
	var changes []Change
	for i, v := range innerOutputs {
		var t iltype.Type
		switch {
		case i < len(sig.Parameters):
			t = sig.Parameters[i].Type
		case len(sig.Parameters) > 0 && sig.Parameters[len(sig.Parameters)-1].Kind == iltype.ParamRest:
			t = sig.Parameters[len(sig.Parameters)-1].Type
		default:
			t = iltype.Unknown()
		}
		changes = append(changes, in.set(v, t))
	}
	return changes
}

// propertyKey builds the "<group>.<name>" key the program-wide property and
// method tables are keyed by, falling back to an untagged "" group.
func propertyKey(group, name string) string { return group + "." + name }

// lookupPropertyType consults the program-wide table populated by
// LoadProperty/StoreProperty/ConfigureProperty sightings before falling back
// to the Environment (spec §4.3).
func (in *Interpreter) lookupPropertyType(name string, on iltype.Type) iltype.Type {
	if t, ok := in.propertyTypes[propertyKey(on.Group(), name)]; ok {
		return t
	}
	if t, ok := in.propertyTypes[propertyKey("", name)]; ok {
		return t
	}
	return in.env.TypeOfProperty(name, on)
}

// lookupMethodSignature consults the program-wide method table before
// falling back to the Environment.
func (in *Interpreter) lookupMethodSignature(name string, on iltype.Type) (iltype.Signature, bool) {
	if sig, ok := in.methodSignatures[propertyKey(on.Group(), name)]; ok {
		return sig, true
	}
	if sig, ok := in.methodSignatures[propertyKey("", name)]; ok {
		return sig, true
	}
	return in.env.SignatureOfMethod(name, on)
}

// numericFallback returns the BigInt-contagion fallback type for an
// arithmetic unary/binary operator: BigInt if any operand may be BigInt, the
// bitwise/number/primitive fallback otherwise (spec §4.3).
func numericFallback(isBitwise bool, operands ...iltype.Type) iltype.Type {
	for _, t := range operands {
		if t.Possible()&iltype.BigInt != 0 {
			return iltype.BigIntT()
		}
	}
	if isBitwise {
		return iltype.IntegerT()
	}
	return iltype.NumberT()
}

// typeSimpleOp is the main typing-rules switch for every non-block
// operation (spec §4.3): literals get their exact type, property/element
// access consults the program-wide tables then the Environment, calls type
// from the callee's signature when known, and operators apply the
// BigInt-contagion fallback. Anything not named here defaults to Unknown.
func (in *Interpreter) typeSimpleOp(op ilop.Opcode, instr ilprog.Instruction) []Change {
	outs := instr.Outputs()
	one := func(t iltype.Type) []Change {
		if len(outs) == 0 {
			return nil
		}
		return []Change{in.set(outs[0], t)}
	}

	switch op {
	case ilop.OpLoadInteger:
		return one(iltype.IntegerT())
	case ilop.OpLoadBigInt:
		return one(iltype.BigIntT())
	case ilop.OpLoadFloat:
		return one(iltype.FloatT())
	case ilop.OpLoadString, ilop.OpCreateTemplateString:
		return one(iltype.StringT())
	case ilop.OpLoadBoolean:
		return one(iltype.BooleanT())
	case ilop.OpLoadUndefined:
		return one(iltype.UndefinedT())
	case ilop.OpLoadNull:
		return one(iltype.Unknown())
	case ilop.OpLoadRegExp:
		return one(iltype.RegExpT())
	case ilop.OpLoadThis:
		if cls := in.currentClassOrNil(); cls != nil && !cls.instanceType.IsNothing() {
			return one(cls.instanceType)
		}
		return one(iltype.Unknown())
	case ilop.OpLoadArguments:
		return one(in.env.ArrayType())
	case ilop.OpLoadNewTarget:
		return one(iltype.Unknown())

	case ilop.OpCreateArray, ilop.OpCreateArrayWithSpread:
		return one(in.env.ArrayType())
	case ilop.OpCreateIntArray:
		return one(in.env.ArrayType())
	case ilop.OpCreateFloatArray:
		return one(in.env.ArrayType())
	case ilop.OpObjectLiteralAddProperty:
		name, ok := propertyNameOf(instr)
		v, ok2 := in.objectLiteralVariable()
		if !ok || !ok2 {
			return nil
		}
		return []Change{in.set(v, in.TypeOf(v).Adding(name, false))}

	case ilop.OpCreateNamedVariable:
		return one(iltype.Unknown())
	case ilop.OpLoadNamedVariable:
		return one(iltype.Unknown())
	case ilop.OpStoreNamedVariable:
		return nil

	case ilop.OpLoadProperty, ilop.OpLoadComputedProperty, ilop.OpLoadPrivateProperty, ilop.OpLoadSuperProperty:
		name, ok := propertyNameOf(instr)
		if !ok {
			return one(iltype.Unknown())
		}
		on := in.TypeOf(instr.Inputs()[0])
		return one(in.lookupPropertyType(name, on))
	case ilop.OpLoadElement:
		return one(iltype.Unknown())

	case ilop.OpStoreProperty, ilop.OpStoreComputedProperty, ilop.OpStorePrivateProperty, ilop.OpStoreSuperProperty,
		ilop.OpUpdateProperty, ilop.OpUpdateComputedProperty, ilop.OpUpdatePrivateProperty, ilop.OpUpdateSuperProperty,
		ilop.OpConfigureProperty, ilop.OpConfigureComputedProperty:
		var changes []Change
		if name, ok := propertyNameOf(instr); ok {
			ins := instr.Inputs()
			if len(ins) >= 2 {
				in.propertyTypes[propertyKey(in.TypeOf(ins[0]).Group(), name)] = in.TypeOf(ins[len(ins)-1])
				changes = append(changes, in.set(ins[0], in.TypeOf(ins[0]).Adding(name, false)))
			}
		}
		return changes
	case ilop.OpDeleteProperty, ilop.OpDeleteComputedProperty, ilop.OpDeleteElement:
		var changes []Change
		if op == ilop.OpDeleteProperty {
			if name, ok := propertyNameOf(instr); ok {
				ins := instr.Inputs()
				if len(ins) > 0 {
					changes = append(changes, in.set(ins[0], in.TypeOf(ins[0]).Removing(name, false)))
				}
			}
		}
		return append(changes, one(iltype.BooleanT())...)
	case ilop.OpStoreElement, ilop.OpUpdateElement, ilop.OpConfigureElement:
		return nil

	case ilop.OpCallFunction, ilop.OpCallFunctionWithSpread:
		callee := in.TypeOf(instr.Inputs()[0])
		if sig := callee.Signature(); sig != nil {
			return one(sig.OutputType)
		}
		return one(iltype.Unknown())
	case ilop.OpConstruct, ilop.OpConstructWithSpread, ilop.OpCallSuperConstructor:
		callee := in.TypeOf(instr.Inputs()[0])
		if sig := callee.Signature(); sig != nil {
			return one(sig.OutputType)
		}
		return one(in.env.ObjectType())
	case ilop.OpCallMethod, ilop.OpCallMethodWithSpread, ilop.OpCallComputedMethod, ilop.OpCallComputedMethodWithSpread,
		ilop.OpCallPrivateMethod, ilop.OpCallSuperMethod:
		name, ok := propertyNameOf(instr)
		if ok {
			on := in.TypeOf(instr.Inputs()[0])
			if sig, found := in.lookupMethodSignature(name, on); found {
				return one(sig.OutputType)
			}
		}
		return one(iltype.Unknown())
	case ilop.OpEval:
		return one(iltype.Unknown())

	case ilop.OpUnaryOperation:
		u, _ := instr.Operation.Payload.(ilop.UnaryOp)
		operand := in.TypeOf(instr.Inputs()[0])
		switch u.Operator {
		case ilop.UnaryLogicalNot:
			return one(iltype.BooleanT())
		case ilop.UnaryBitwiseNot:
			return one(numericFallback(true, operand))
		default:
			return one(numericFallback(false, operand))
		}
	case ilop.OpBinaryOperation:
		b, _ := instr.Operation.Payload.(ilop.BinaryOp)
		ins := instr.Inputs()
		lhs, rhs := in.TypeOf(ins[0]), in.TypeOf(ins[1])
		switch {
		case b.Operator.IsLogical():
			return one(lhs.Union(rhs))
		case b.Operator == ilop.BinaryAdd:
			// Add's result depends on the runtime types of both operands (string
			// concatenation vs. numeric addition vs. BigInt), so it is typed as the
			// primitive union, whatever the operand types; the one exception is an
			// operand that may be a BigInt, which is contagious (spec §4.3).
			if lhs.Possible()&iltype.BigInt != 0 || rhs.Possible()&iltype.BigInt != 0 {
				return one(iltype.BigIntT())
			}
			return one(iltype.PrimitiveT())
		default:
			return one(numericFallback(b.Operator.IsBitwise(), lhs, rhs))
		}
	case ilop.OpTernaryOperation:
		ins := instr.Inputs()
		return one(in.TypeOf(ins[1]).Union(in.TypeOf(ins[2])))
	case ilop.OpCompare:
		return one(iltype.BooleanT())
	case ilop.OpUpdate:
		return one(iltype.Unknown())

	case ilop.OpDup:
		return one(in.TypeOf(instr.Inputs()[0]))
	case ilop.OpReassign:
		ins := instr.Inputs()
		return []Change{in.set(ins[0], in.TypeOf(ins[1]))}

	case ilop.OpDestructArray, ilop.OpDestructArrayAndReassign, ilop.OpDestructObject, ilop.OpDestructObjectAndReassign:
		var changes []Change
		for _, v := range instr.Outputs() {
			changes = append(changes, in.set(v, iltype.Unknown()))
		}
		return changes

	case ilop.OpYield, ilop.OpYieldEach, ilop.OpAwait:
		return one(iltype.Unknown())

	default:
		return one(iltype.Unknown())
	}
}

// currentClassOrNil returns the innermost open class frame, or nil if none
// is open (a LoadThis outside any class method body is Unknown).
func (in *Interpreter) currentClassOrNil() *classFrame {
	if len(in.classes) == 0 {
		return nil
	}
	return in.classes[len(in.classes)-1]
}

// propertyNameOf extracts the static property/method name an instruction's
// PropertyName payload carries; computed/private variants that carry no
// static name return false.
func propertyNameOf(instr ilprog.Instruction) (string, bool) {
	p, ok := instr.Operation.Payload.(ilop.PropertyName)
	if !ok {
		return "", false
	}
	return p.Name, true
}
