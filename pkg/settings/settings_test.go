package settings

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_MissingFile(t *testing.T) {
	paths, err := Load(filepath.Join(t.TempDir(), DefaultFilename), nil)
	require.NoError(t, err)
	assert.NotNil(t, paths)
	assert.Empty(t, paths)
}

func TestLoad_SingleEntry(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	require.NoError(t, os.WriteFile(path, []byte("output_path:/home/x\n"), 0o600))

	paths, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, LastUsedPaths{"output_path": "/home/x"}, paths)
}

func TestParse_SplitsOnFirstColon(t *testing.T) {
	input := "output_path:C:/Users/x/out\ninitial_pdf_dir:D:/scans\n"
	paths, err := Parse(strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, "C:/Users/x/out", paths[KeyOutputPath])
	assert.Equal(t, "D:/scans", paths[KeyInitialPDFDir])
}

func TestParse_SkipsBlankAndMalformedLines(t *testing.T) {
	input := "\n  \nno colon here\noutput_path:/out\r\n"
	paths, err := Parse(strings.NewReader(input), nil)
	require.NoError(t, err)
	assert.Equal(t, LastUsedPaths{"output_path": "/out"}, paths)
}

func TestParse_LaterKeyWins(t *testing.T) {
	paths, err := Parse(strings.NewReader("output_path:/a\noutput_path:/b\n"), nil)
	require.NoError(t, err)
	assert.Equal(t, "/b", paths[KeyOutputPath])
}

func TestSaveThenLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), DefaultFilename)
	want := LastUsedPaths{
		KeyOutputPath:    "/home/x/out",
		KeyInitialPDFDir: "C:/scans",
	}

	require.NoError(t, Save(path, want, nil))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "initial_pdf_dir:C:/scans\noutput_path:/home/x/out\n", string(data))

	got, err := Load(path, nil)
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestSave_RejectsUnrepresentableEntries(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, DefaultFilename)

	err := Save(path, LastUsedPaths{"bad:key": "/x"}, nil)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	err = Save(path, LastUsedPaths{KeyOutputPath: "/x\n/y"}, nil)
	assert.ErrorIs(t, err, ErrInvalidEntry)

	assert.NoFileExists(t, path)
}

func TestGetAndSet(t *testing.T) {
	paths := LastUsedPaths{}
	assert.Equal(t, "/home", paths.Get(KeyInitialPDFDir, "/home"))

	paths.Set(KeyInitialPDFDir, "/scans")
	assert.Equal(t, "/scans", paths.Get(KeyInitialPDFDir, "/home"))

	paths.Set(KeyOutputPath, "")
	assert.Equal(t, "/fallback", paths.Get(KeyOutputPath, "/fallback"))
}
