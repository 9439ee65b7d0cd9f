package tabular

import (
	"errors"
	"testing"

	"github.com/csvsweep/csvsweep/internal/domain"
)

func TestWithChecks(t *testing.T) {
	t.Parallel()

	parser := mustParser(t, Options{})
	input := []byte("Team,League\nBAL,AL\nNYM,NL\n")

	t.Run("passing checks return the frame", func(t *testing.T) {
		t.Parallel()

		parse := WithChecks(parser.Parse,
			RequireColumns("Team", "League"),
			MinRows(1),
			AllowedValues("League", "AL", "NL"),
		)

		frame, err := parse(input)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if frame.NumRows() != 2 {
			t.Errorf("Expected 2 rows, got %d", frame.NumRows())
		}
	})

	t.Run("first failing check aborts", func(t *testing.T) {
		t.Parallel()

		parse := WithChecks(parser.Parse,
			RequireColumns("Stadium"),
			MinRows(100),
		)

		frame, err := parse(input)
		if !errors.Is(err, ErrCheckFailed) {
			t.Errorf("Expected ErrCheckFailed, got %v", err)
		}
		if frame != nil {
			t.Error("Expected no frame on check failure")
		}
	})

	t.Run("parse errors skip the checks", func(t *testing.T) {
		t.Parallel()

		called := false
		parse := WithChecks(parser.Parse, func(*domain.Frame) error {
			called = true
			return nil
		})

		_, err := parse(nil)
		if !errors.Is(err, ErrEmptyInput) {
			t.Errorf("Expected ErrEmptyInput, got %v", err)
		}
		if called {
			t.Error("Checks should not run when parsing fails")
		}
	})
}

func TestRequireColumns(t *testing.T) {
	t.Parallel()

	frame := &domain.Frame{Columns: []string{"a", "b"}}

	if err := RequireColumns("a", "b")(frame); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := RequireColumns("a", "z")(frame); !errors.Is(err, ErrCheckFailed) {
		t.Errorf("Expected ErrCheckFailed, got %v", err)
	}
}

func TestMinRows(t *testing.T) {
	t.Parallel()

	frame := &domain.Frame{
		Columns: []string{"a"},
		Rows:    [][]string{{"1"}, {"2"}},
	}

	if err := MinRows(2)(frame); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := MinRows(3)(frame); !errors.Is(err, ErrCheckFailed) {
		t.Errorf("Expected ErrCheckFailed, got %v", err)
	}
}

func TestAllowedValues(t *testing.T) {
	t.Parallel()

	frame := &domain.Frame{
		Columns: []string{"grade"},
		Rows:    [][]string{{"A"}, {"B"}, {"F"}},
	}

	if err := AllowedValues("grade", "A", "B", "C", "D", "F")(frame); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}

	err := AllowedValues("grade", "A", "B")(frame)
	if !errors.Is(err, ErrCheckFailed) {
		t.Errorf("Expected ErrCheckFailed, got %v", err)
	}

	err = AllowedValues("missing", "A")(frame)
	if !errors.Is(err, ErrCheckFailed) {
		t.Errorf("Expected ErrCheckFailed for missing column, got %v", err)
	}
}
