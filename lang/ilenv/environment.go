// Package ilenv defines the Environment capability the abstract interpreter
// (lang/interp) is constructed with, plus Basic, a reference implementation
// suitable for embedding a plain JavaScript-shaped environment. Environment
// lets the embedding fuzzer teach the interpreter about builtins, property
// and method shapes, and the handful of typed constants the lattice needs,
// without the core knowing anything about a concrete target engine.
package ilenv

import "github.com/mna/fuzzil/lang/iltype"

// Environment is injected into the abstract interpreter at construction
// (spec §6). Every method is pure and side-effect free from the
// interpreter's point of view; Environment may itself be backed by a fixed
// table, a config file, or a live connection to a target engine, but the
// core never observes which.
type Environment interface {
	// TypeOfBuiltin returns the declared type of the global builtin named
	// name, or iltype.Unknown() if the environment has no opinion.
	TypeOfBuiltin(name string) iltype.Type

	// TypeOfProperty returns the declared type of the property named name on
	// a receiver of type on, or iltype.Unknown() if unknown.
	TypeOfProperty(name string, on iltype.Type) iltype.Type

	// SignatureOfMethod returns the call signature of the method named name
	// on a receiver of type on. The second result is false if the
	// environment has no declared signature for it.
	SignatureOfMethod(name string, on iltype.Type) (iltype.Signature, bool)

	// The typed constants below seed every primitive-literal and
	// CreateObject/CreateArray typing rule; an embedder may refine them
	// (e.g. giving ObjectType a non-empty Group) without touching the core.
	ObjectType() iltype.Type
	IntType() iltype.Type
	BigIntType() iltype.Type
	FloatType() iltype.Type
	StringType() iltype.Type
	BooleanType() iltype.Type
	RegExpType() iltype.Type
	ArrayType() iltype.Type

	// CustomMethodNames and CustomPropertyNames disambiguate object-literal
	// member names that are otherwise indistinguishable at the Operation
	// level (spec §4.3's CreateObject rule: a declared name backed by a
	// function-typed input is a method unless it is only ever used as a
	// property per this set, and vice versa).
	CustomMethodNames() map[string]struct{}
	CustomPropertyNames() map[string]struct{}
}
