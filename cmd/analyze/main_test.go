package main

import (
	"testing"

	"github.com/sudokuarena/server/game/engine"
)

func TestBoxIndex(t *testing.T) {
	tests := []struct {
		row, col int
		expected int
	}{
		{0, 0, 0},
		{0, 8, 2},
		{2, 2, 0},
		{3, 0, 3},
		{4, 4, 4},
		{8, 8, 8},
		{6, 2, 6},
	}

	for _, test := range tests {
		result := boxIndex(test.row, test.col)
		if result != test.expected {
			t.Errorf("boxIndex(%d, %d) = %d, expected %d", test.row, test.col, result, test.expected)
		}
	}
}

func TestBoardStats_EmptyBoard(t *testing.T) {
	var g engine.Grid

	stats := boardStats(&g)
	if stats.Givens != 0 {
		t.Errorf("Expected 0 givens, got %d", stats.Givens)
	}
	if stats.EmptyBoxes != 9 {
		t.Errorf("Expected 9 empty boxes, got %d", stats.EmptyBoxes)
	}
	if stats.MinBoxGiven != 0 {
		t.Errorf("Expected min box givens 0, got %d", stats.MinBoxGiven)
	}
}

func TestBoardStats_PartialBoard(t *testing.T) {
	var g engine.Grid
	// Fill the top-left box completely and drop one digit elsewhere.
	digit := 1
	for r := 0; r < 3; r++ {
		for c := 0; c < 3; c++ {
			g[r][c] = digit
			digit++
		}
	}
	g[8][8] = 5

	stats := boardStats(&g)
	if stats.Givens != 10 {
		t.Errorf("Expected 10 givens, got %d", stats.Givens)
	}
	if stats.EmptyBoxes != 7 {
		t.Errorf("Expected 7 empty boxes, got %d", stats.EmptyBoxes)
	}
	if stats.MaxBoxGiven != 9 {
		t.Errorf("Expected max box givens 9, got %d", stats.MaxBoxGiven)
	}
	if stats.DigitCounts[5] != 2 {
		t.Errorf("Expected digit 5 to appear twice, got %d", stats.DigitCounts[5])
	}
}

func TestBoardStats_GeneratedBoard(t *testing.T) {
	rules := engine.DefaultRules()
	puzzle, err := engine.Generate(rules)
	if err != nil {
		t.Fatalf("Failed to generate puzzle: %v", err)
	}

	stats := boardStats(&puzzle.Board)
	expected := engine.CellCount - rules.RemovedCells
	if stats.Givens != expected {
		t.Errorf("Expected %d givens, got %d", expected, stats.Givens)
	}

	total := 0
	for digit := 1; digit <= engine.GridSize; digit++ {
		total += stats.DigitCounts[digit]
	}
	if total != expected {
		t.Errorf("Digit counts sum to %d, expected %d", total, expected)
	}
}
