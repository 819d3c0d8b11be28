package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mrlokans/ankipkg/internal/apkg"
)

func writeTestCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "spanish.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestNewDeckCommand_Run(t *testing.T) {
	csvPath := writeTestCSV(t, "hola,hello,greetings\nadios,goodbye\n")
	output := filepath.Join(t.TempDir(), "spanish.apkg")

	cmd := NewNewDeckCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-csv", csvPath, "-output", output}))
	require.NoError(t, cmd.Run())

	summary, err := apkg.Inspect(output)
	require.NoError(t, err)
	assert.Equal(t, 2, summary.Notes)
	assert.Equal(t, 2, summary.Cards)
	// Deck name defaults to the CSV filename stem
	assert.Contains(t, summary.Decks, "spanish")
}

func TestNewDeckCommand_Run_ExplicitNameAndType(t *testing.T) {
	csvPath := writeTestCSV(t, "uno,one\ndos,two\ntres,three\n")
	output := filepath.Join(t.TempDir(), "numbers.apkg")

	cmd := NewNewDeckCommand()
	require.NoError(t, cmd.ParseFlags([]string{
		"-csv", csvPath,
		"-name", "Numbers",
		"-notetype", "Basic (and reversed card)",
		"-output", output,
	}))
	require.NoError(t, cmd.Run())

	summary, err := apkg.Inspect(output)
	require.NoError(t, err)
	assert.Equal(t, 3, summary.Notes)
	// Reversed note type fans out two cards per note
	assert.Equal(t, 6, summary.Cards)
	assert.Contains(t, summary.Decks, "Numbers")
}

func TestNewDeckCommand_Run_UnknownNoteType(t *testing.T) {
	csvPath := writeTestCSV(t, "a,b\n")
	output := filepath.Join(t.TempDir(), "bad.apkg")

	cmd := NewNewDeckCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-csv", csvPath, "-notetype", "No Such Type", "-output", output}))
	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "No Such Type")

	_, statErr := os.Stat(output)
	assert.True(t, os.IsNotExist(statErr))
}

func TestNewDeckCommand_Run_TooManyColumns(t *testing.T) {
	csvPath := writeTestCSV(t, "a,b,tags,extra\n")
	output := filepath.Join(t.TempDir(), "wide.apkg")

	cmd := NewNewDeckCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-csv", csvPath, "-output", output}))
	err := cmd.Run()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "row 1")
}

func TestReadNoteRows(t *testing.T) {
	t.Run("tolerates varying widths", func(t *testing.T) {
		path := writeTestCSV(t, "a,b\nc,d,e f\n")
		rows, err := readNoteRows(path)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, []string{"a", "b"}, rows[0])
		assert.Equal(t, []string{"c", "d", "e f"}, rows[1])
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := readNoteRows(filepath.Join(t.TempDir(), "missing.csv"))
		assert.Error(t, err)
	})
}

func TestInspectCommand_Run(t *testing.T) {
	csvPath := writeTestCSV(t, "hola,hello\n")
	output := filepath.Join(t.TempDir(), "spanish.apkg")

	build := NewNewDeckCommand()
	require.NoError(t, build.ParseFlags([]string{"-csv", csvPath, "-output", output}))
	require.NoError(t, build.Run())

	cmd := NewInspectCommand()
	require.NoError(t, cmd.ParseFlags([]string{"-file", output}))
	assert.NoError(t, cmd.Run())
}

func TestInspectCommand_ParseFlags_PositionalFile(t *testing.T) {
	cmd := NewInspectCommand()
	require.NoError(t, cmd.ParseFlags([]string{"some.apkg"}))
	assert.Equal(t, "some.apkg", cmd.File)
}
