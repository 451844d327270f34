package engine

import "testing"

func TestGenerateSolutionInvariant(t *testing.T) {
	for i := 0; i < 10; i++ {
		puz, err := Generate(DefaultRules())
		if err != nil {
			t.Fatalf("Generate failed: %v", err)
		}
		assertLatinSquare(t, &puz.Solution)
	}
}

func TestGenerateBoardIsSubsetOfSolution(t *testing.T) {
	puz, err := Generate(DefaultRules())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	for r := 0; r < GridSize; r++ {
		for c := 0; c < GridSize; c++ {
			if v := puz.Board[r][c]; v != 0 && v != puz.Solution[r][c] {
				t.Errorf("board cell (%d,%d)=%d conflicts with solution %d",
					r, c, v, puz.Solution[r][c])
			}
		}
	}
}

func TestGenerateRemovesExactCount(t *testing.T) {
	rules := DefaultRules()
	puz, err := Generate(rules)
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	want := CellCount - rules.RemovedCells
	if got := puz.Board.FilledCells(); got != want {
		t.Errorf("board has %d givens, want %d", got, want)
	}
	if got := puz.Solution.FilledCells(); got != CellCount {
		t.Errorf("solution has %d filled cells, want %d", got, CellCount)
	}
}

func TestGenerateVariesAcrossCalls(t *testing.T) {
	a, err := Generate(DefaultRules())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}
	b, err := Generate(DefaultRules())
	if err != nil {
		t.Fatalf("Generate failed: %v", err)
	}

	if a.Solution == b.Solution {
		t.Error("two generated puzzles produced identical solutions")
	}
}

func TestGenerateRejectsInvalidRules(t *testing.T) {
	rules := DefaultRules()
	rules.RemovedCells = CellCount

	if _, err := Generate(rules); err == nil {
		t.Error("Generate accepted invalid rules")
	}
}
