package exporter

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSVWriter(nil)

	err := c.WriteCSV(&buf, WriteOptions{
		Headers: []string{"DATE", "pH"},
		Records: [][]string{
			{"2024-01-01", "7.2"},
			{"2024-01-02", "7.4"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, "DATE,pH\n2024-01-01,7.2\n2024-01-02,7.4\n", buf.String())
}

func TestWriteCSVWithBOM(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSVWriter(nil)

	err := c.WriteCSV(&buf, WriteOptions{
		Headers:   []string{"A"},
		BOMPrefix: true,
	})
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(buf.Bytes(), []byte{0xEF, 0xBB, 0xBF}))
}

func TestWriteCSVQuotesFields(t *testing.T) {
	var buf bytes.Buffer
	c := NewCSVWriter(nil)

	err := c.WriteCSV(&buf, WriteOptions{
		Records: [][]string{{"Hardness, total", "250"}},
	})
	require.NoError(t, err)

	assert.Equal(t, "\"Hardness, total\",250\n", buf.String())
}

func TestWriteFileCreatesDirectories(t *testing.T) {
	dir := t.TempDir()
	c := NewCSVWriter(nil)

	path := filepath.Join(dir, "reports", "out.csv")
	err := c.WriteFile(path, WriteOptions{
		Headers: []string{"DATE"},
		Records: [][]string{{"2024-01-01"}},
	})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "2024-01-01")
}

func TestStreamWriter(t *testing.T) {
	dir := t.TempDir()
	c := NewCSVWriter(nil)

	path := filepath.Join(dir, "stream.csv")
	sw, err := c.CreateStreamWriter(path, []string{"DATE", "TDS"})
	require.NoError(t, err)

	require.NoError(t, sw.WriteRecord([]string{"2024-01-01", "1500"}))
	require.NoError(t, sw.WriteRecord([]string{"2024-01-02", "1620"}))
	require.NoError(t, sw.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	content := strings.TrimPrefix(string(data), "\xEF\xBB\xBF")
	lines := strings.Split(strings.TrimSpace(content), "\n")
	assert.Len(t, lines, 3)
	assert.Equal(t, "DATE,TDS", lines[0])
}
