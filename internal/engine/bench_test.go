package engine

import (
	"strings"
	"testing"
)

// ============================================================================
// Setup Helpers
// ============================================================================

func setupLargeBuffer(b *testing.B, lines int) *EditBuffer {
	b.Helper()
	var sb strings.Builder
	line := strings.Repeat("x", 40) + " needle " + strings.Repeat("y", 32) + "\n"
	for i := 0; i < lines; i++ {
		sb.WriteString(line)
	}
	return New(WithContent(sb.String()))
}

// ============================================================================
// Benchmarks
// ============================================================================

func BenchmarkInsertUndo(b *testing.B) {
	e := setupLargeBuffer(b, 10000)
	e.MoveCursor(e.Len() / 2)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		e.Insert("hello")
		_ = e.Undo()
	}
}

func BenchmarkDeleteRedo(b *testing.B) {
	e := setupLargeBuffer(b, 10000)
	e.MoveCursor(100)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Delete(10)
		_ = e.Undo()
		_ = e.Redo()
		_ = e.Undo()
	}
}

func BenchmarkSearch(b *testing.B) {
	e := setupLargeBuffer(b, 10000)
	b.ResetTimer()

	for i := 0; i < b.N; i++ {
		_ = e.Search("needle")
	}
}

func BenchmarkReplaceAll(b *testing.B) {
	for i := 0; i < b.N; i++ {
		b.StopTimer()
		e := setupLargeBuffer(b, 1000)
		b.StartTimer()

		e.ReplaceAll("needle", "haystack")
	}
}
