// Package serialize implements the bit-exact binary encoding of spec §4.6: a
// Program round-trips as its UUID, its optional parent (encoded
// recursively), its comments and attribution set, and its Code as a flat
// instruction stream. Each instruction's Operation is either a back-reference
// into a bounded operation cache shared between writer and reader,
// populated in identical order on both sides and evicted first-in
// first-out (a cache hit does not refresh an entry), or a full encoding of its opcode and
// payload; enum payloads use fixed integer raw values that are themselves
// part of the wire format and must never be renumbered. Arity is recovered
// at decode time from the flat in/out variable vector's length together
// with the opcode's fixed output/inner-output counts, not stored on the
// wire.
package serialize
