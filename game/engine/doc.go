// Package engine provides the core puzzle logic for Sudoku Arena.
//
// The engine package implements puzzle generation, placement validation,
// and the backtracking solver used at generation time:
//   - Generate produces a solved 9x9 grid plus a playable board with blanks
//   - IsValidPlacement checks a digit against row, column, and box constraints
//   - An internal bounded backtracking solver completes seeded grids
//
// Core Types:
//
// Grid is a fixed 9x9 array of digits where zero means empty. Puzzle pairs
// a playable Board with its authoritative Solution. Rules carries the
// generation and scoring parameters so difficulty presets can vary them.
//
// Usage:
//
//	puz, err := engine.Generate(engine.DefaultRules())
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	ok := engine.IsValidPlacement(&puz.Board, 0, 0, 5)
//
// Guarantees:
//
// Every generated Solution satisfies the Latin-square-plus-box invariant:
// each row, column, and 3x3 box contains the digits 1 through 9 exactly
// once. The Board's non-zero cells are always copies of the corresponding
// Solution cells, so gameplay validation is a direct comparison against the
// Solution rather than a re-solve.
package engine
