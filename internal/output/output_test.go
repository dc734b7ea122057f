package output

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/openhdg/hdg1d/internal/basis"
	"github.com/openhdg/hdg1d/internal/field"
)

func TestWriteFrameProducesHeaderAndRows(t *testing.T) {
	dir := t.TempDir()
	grid, err := basis.NewUniformGrid(0, 1, 2)
	require.NoError(t, err)
	bas, err := basis.NewLegendreBasis(1)
	require.NoError(t, err)
	L := field.Layout{N: 2, Nc: 2, K: 1}

	w, err := New(dir, "case", L, grid, bas, 4)
	require.NoError(t, err)

	Y := make([]float64, L.Len())
	Ydot := make([]float64, L.Len())
	require.NoError(t, w.WriteFrame(0.0, Y, Ydot))
	require.NoError(t, w.WriteFrame(0.5, Y, Ydot))
	require.NoError(t, w.Close())

	primary, err := os.ReadFile(dir + "/case.plot")
	require.NoError(t, err)
	lines := strings.Split(strings.TrimRight(string(primary), "\n"), "\n")
	// header + 5 rows + blank, twice.
	assert.Equal(t, "# t = 0", lines[0])
	assert.Equal(t, "", lines[6])
	assert.Equal(t, "# t = 0.5", lines[7])

	secondary, err := os.ReadFile(dir + "/u_t_1.plot")
	require.NoError(t, err)
	assert.Contains(t, string(secondary), "# t = 0")
}

func TestNewRejectsNonPositiveNOut(t *testing.T) {
	dir := t.TempDir()
	grid, _ := basis.NewUniformGrid(0, 1, 1)
	bas, _ := basis.NewLegendreBasis(0)
	L := field.Layout{N: 1, Nc: 1, K: 0}
	_, err := New(dir, "case", L, grid, bas, 0)
	assert.Error(t, err)
}
