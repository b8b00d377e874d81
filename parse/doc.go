// Package parse is a recovering, backtracking parsing engine for
// newline-sensitive languages with closures and deep operator tables.
//
// # Overview
//
// A grammar is written as ordinary Go values built from the combinators in
// this package. The engine consumes a token slice produced by a separate
// lexer and always returns a concrete syntax tree that spans the whole
// input, together with an ordered list of syntax errors.
//
//	┌─────────────┐     ┌─────────────┐     ┌─────────────┐
//	│   Tokens    │────▶│   Rules     │────▶│   Events    │
//	│  ([]Token)  │     │ (grammar)   │     │  (arena)    │
//	└─────────────┘     └─────────────┘     └─────────────┘
//	                                               │
//	                                               ▼
//	                                        ┌─────────────┐
//	                                        │    Tree     │
//	                                        │ Node+Errors │
//	                                        └─────────────┘
//
// # Markers
//
// Rules never build nodes directly. They open a [Marker], consume tokens and
// then complete, collapse, drop or roll the marker back. Markers are indices
// into an append-only event arena, so a rollback is a slice truncation and a
// completed node can be wrapped later with [Completed.Precede]. The arena is
// turned into [Node] values once, when the parse finishes.
//
// # Pins
//
// A [Production] with a pin commits once the pinned prefix has matched.
// Failures after that point keep the partial node, record one error at the
// cursor and report success to the caller, so a half-written construct
// does not send the surrounding rules into backtracking.
//
// # Precedence
//
// [Expr] implements a precedence-climbing loop over a flat operator table.
// Each operator carries a numeric level; an operator is only consumed when
// the caller's level is below it. Left operands are wrapped with
// [Completed.Precede] as the loop goes, which gives left associativity by
// default and right associativity for [BinaryRight] and [Ternary] shapes.
//
// # Recovery
//
// [List] and [Braced] parse separated sequences. When an item fails, tokens
// are skipped up to the next token in the list's synchronisation set and
// wrapped in an error node, so one bad item costs exactly one error.
//
// # Diagnostics
//
// Every failed token match records an expected variant at the cursor. Only
// the variants at the farthest position survive, and error messages are
// built from them ("')' or ',' expected, got 'x'"). Errors are attached to
// the tree, which means errors inside rolled-back regions disappear with
// the region.
package parse
