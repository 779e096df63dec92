package cli

import (
	"bufio"
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("JohnDoe\n"))

	text, err := getSimpleText(reader, "Enter user name", &out)

	require.NoError(t, err)
	assert.Equal(t, "JohnDoe", text)
	assert.Contains(t, out.String(), "Enter user name")
}

func TestGetSimpleText_PartialLineOnEOF(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("JohnDoe"))

	text, err := getSimpleText(reader, "Enter user name", &out)

	require.NoError(t, err)
	assert.Equal(t, "JohnDoe", text)
}

func TestGetMultiline(t *testing.T) {
	var out bytes.Buffer
	reader := bufio.NewReader(strings.NewReader("line one\nline two\n\n"))

	text, err := getMultiline(reader, "Enter the secret to store", &out)

	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", text)
}

func TestGetPassword(t *testing.T) {
	orig := readPassword
	readPassword = func(fd int) ([]byte, error) {
		return []byte("hunter2"), nil
	}
	defer func() { readPassword = orig }()

	var out bytes.Buffer
	pw, err := getPassword(&out)

	require.NoError(t, err)
	assert.Equal(t, []byte("hunter2"), pw)
	assert.Contains(t, out.String(), "Enter master password")
}
