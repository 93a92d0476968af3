package interp

import "github.com/mna/fuzzil/lang/ilop"

// blockRole classifies how an opcode participates in the branch-state stack
// (spec §4.3). Most non-block opcodes have roleNone.
type blockRole int

const (
	roleNone blockRole = iota
	// roleChild opens a body whose execution is conditional on something
	// outside the interpreter's control (an if body, a loop body, a
	// function/constructor/method body): pushChildState.
	roleChild
	// roleSibling closes the previous alternative and opens the next one
	// (BeginElse, each switch case, each class member after the
	// constructor): pushSiblingState.
	roleSibling
	// roleMerge closes the whole multi-alternative construct: mergeStates.
	roleMerge
)

// blockRoles maps every Begin/End-family opcode the interpreter must act on
// to its role. Opcodes absent from this table (plain instructions, and any
// block-family opcode not listed) have roleNone.
var blockRoles = map[ilop.Opcode]blockRole{
	ilop.OpBeginIf:   roleChild,
	ilop.OpBeginElse: roleSibling,
	ilop.OpEndIf:     roleMerge,

	ilop.OpBeginSwitch:            roleChild,
	ilop.OpBeginSwitchCase:        roleSibling,
	ilop.OpBeginSwitchDefaultCase: roleSibling,
	ilop.OpEndSwitch:              roleMerge,

	ilop.OpBeginWhileLoopBody:   roleChild,
	ilop.OpEndWhileLoop:         roleMerge,
	ilop.OpBeginDoWhileLoopBody: roleChild,
	ilop.OpEndDoWhileLoop:       roleMerge,
	ilop.OpBeginForLoopBody:     roleChild,
	ilop.OpEndForLoop:           roleMerge,
	ilop.OpBeginForInLoop:       roleChild,
	ilop.OpEndForInLoop:         roleMerge,
	ilop.OpBeginForOfLoop:             roleChild,
	ilop.OpBeginForOfLoopWithDestruct: roleChild,
	ilop.OpEndForOfLoop:               roleMerge,
	ilop.OpBeginRepeatLoop: roleChild,
	ilop.OpEndRepeatLoop:   roleMerge,

	ilop.OpBeginPlainFunction:          roleChild,
	ilop.OpEndPlainFunction:            roleMerge,
	ilop.OpBeginArrowFunction:          roleChild,
	ilop.OpEndArrowFunction:            roleMerge,
	ilop.OpBeginGeneratorFunction:      roleChild,
	ilop.OpEndGeneratorFunction:        roleMerge,
	ilop.OpBeginAsyncFunction:          roleChild,
	ilop.OpEndAsyncFunction:            roleMerge,
	ilop.OpBeginAsyncArrowFunction:     roleChild,
	ilop.OpEndAsyncArrowFunction:       roleMerge,
	ilop.OpBeginAsyncGeneratorFunction: roleChild,
	ilop.OpEndAsyncGeneratorFunction:   roleMerge,
	ilop.OpBeginConstructor:            roleChild,
	ilop.OpEndConstructor:              roleMerge,

	// BeginClassDefinition is a pure wrapper with no body of its own (like
	// BeginSwitch): every member, including the constructor, is introduced by
	// its own Begin op and treated as a sibling alternative.
	ilop.OpBeginClassDefinition:        roleChild,
	ilop.OpBeginClassConstructor:       roleSibling,
	ilop.OpEndClassConstructor:         roleNone,
	ilop.OpBeginClassInstanceMethod:    roleSibling,
	ilop.OpEndClassInstanceMethod:      roleNone,
	ilop.OpBeginClassStaticMethod:      roleSibling,
	ilop.OpEndClassStaticMethod:        roleNone,
	ilop.OpBeginClassPrivateMethod:     roleSibling,
	ilop.OpEndClassPrivateMethod:       roleNone,
	ilop.OpBeginClassInstanceGetter:    roleSibling,
	ilop.OpEndClassInstanceGetter:      roleNone,
	ilop.OpBeginClassInstanceSetter:    roleSibling,
	ilop.OpEndClassInstanceSetter:      roleNone,
	ilop.OpBeginClassStaticGetter:      roleSibling,
	ilop.OpEndClassStaticGetter:        roleNone,
	ilop.OpBeginClassStaticSetter:      roleSibling,
	ilop.OpEndClassStaticSetter:        roleNone,
	ilop.OpBeginClassStaticInitializer: roleSibling,
	ilop.OpEndClassStaticInitializer:   roleNone,
	ilop.OpEndClassDefinition:          roleMerge,

	ilop.OpBeginTry:     roleChild,
	ilop.OpBeginCatch:   roleSibling,
	ilop.OpBeginFinally: roleSibling,
	ilop.OpEndTryCatchFinally: roleMerge,

	ilop.OpBeginWasmFunction: roleChild,
	ilop.OpEndWasmFunction:   roleMerge,
	ilop.OpBeginWasmBlock:    roleChild,
	ilop.OpEndWasmBlock:      roleMerge,
	ilop.OpBeginWasmLoop:     roleChild,
	ilop.OpEndWasmLoop:       roleMerge,
	ilop.OpBeginWasmTry:      roleChild,
	ilop.OpBeginWasmCatch:    roleSibling,
	ilop.OpEndWasmTry:        roleMerge,
	ilop.OpBeginWasmIf:       roleChild,
	ilop.OpBeginWasmElse:     roleSibling,
	ilop.OpEndWasmIf:         roleMerge,

	// Object-literal methods/getters/setters and free-standing block
	// statements are independent scopes, each its own child/merge pair (not
	// siblings of one another, unlike class members).
	ilop.OpBeginObjectLiteralMethod: roleChild,
	ilop.OpEndObjectLiteralMethod:   roleMerge,
	ilop.OpBeginObjectLiteralGetter: roleChild,
	ilop.OpEndObjectLiteralGetter:   roleMerge,
	ilop.OpBeginObjectLiteralSetter: roleChild,
	ilop.OpEndObjectLiteralSetter:   roleMerge,
	ilop.OpBeginCodeString:          roleChild,
	ilop.OpEndCodeString:            roleMerge,
	ilop.OpBeginBlockStatement:      roleChild,
	ilop.OpEndBlockStatement:        roleMerge,
}
