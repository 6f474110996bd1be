package task_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/ganot/taskboard/internal/domain/task"
)

func TestPaletteColorCycles(t *testing.T) {
	first := task.PaletteColor(0)
	require.NotEmpty(t, first)

	// Same count always yields the same color.
	require.Equal(t, first, task.PaletteColor(0))

	// The palette wraps rather than running out.
	require.Equal(t, task.PaletteColor(0), task.PaletteColor(10))
	require.Equal(t, task.PaletteColor(3), task.PaletteColor(13))

	// Adjacent counts differ.
	require.NotEqual(t, task.PaletteColor(0), task.PaletteColor(1))
}

func TestPaletteColorNegativeCount(t *testing.T) {
	require.Equal(t, task.PaletteColor(0), task.PaletteColor(-5))
}
