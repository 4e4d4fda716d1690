package inspect

import (
	"errors"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pdfmerge/pkg/pdftest"
)

func TestPageCounts_PreservesInputOrder(t *testing.T) {
	counter := func(path string) (int, error) {
		if strings.HasPrefix(path, "bad") {
			return 0, errors.New("broken")
		}
		return len(path), nil
	}
	paths := []string{"a", "bbb", "bad-1", "cc", "dddd", "a"}

	infos := PageCounts(paths, 3, counter, nil)
	require.Len(t, infos, len(paths))

	for i, info := range infos {
		assert.Equal(t, i, info.Index)
		assert.Equal(t, paths[i], info.Path)
	}
	assert.Equal(t, 3, infos[1].Pages)
	assert.Error(t, infos[2].Err)
	assert.Equal(t, 0, infos[2].Pages)
	assert.Equal(t, 1+3+2+4+1, Total(infos))
}

func TestPageCounts_Empty(t *testing.T) {
	infos := PageCounts(nil, 0, func(string) (int, error) { return 1, nil }, nil)
	assert.Empty(t, infos)
}

func TestPageCounts_PDFCPU(t *testing.T) {
	dir := t.TempDir()
	a := pdftest.Write(t, dir, "a.pdf", 2)
	b := pdftest.Write(t, dir, "b.pdf", 1)

	infos := PageCounts([]string{a, b, filepath.Join(dir, "missing.pdf")}, 0, nil, nil)
	require.Len(t, infos, 3)
	require.NoError(t, infos[0].Err)
	assert.Equal(t, 2, infos[0].Pages)
	require.NoError(t, infos[1].Err)
	assert.Equal(t, 1, infos[1].Pages)
	assert.Error(t, infos[2].Err)
	assert.Equal(t, 3, Total(infos))
}
