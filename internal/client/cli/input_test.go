package cli

import (
	"bufio"
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newReader(s string) *bufio.Reader {
	return bufio.NewReader(strings.NewReader(s))
}

func TestGetSimpleText(t *testing.T) {
	var out bytes.Buffer
	s, err := GetSimpleText(newReader("  hello world \n"), "Name", &out)
	require.NoError(t, err)
	assert.Equal(t, "hello world", s)
	assert.Equal(t, "Name\n> ", out.String())
}

func TestGetSimpleText_PartialLineAtEOF(t *testing.T) {
	s, err := GetSimpleText(newReader("abc"), "x", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "abc", s)
}

func TestGetSimpleText_EmptyEOF(t *testing.T) {
	_, err := GetSimpleText(newReader(""), "x", &bytes.Buffer{})
	require.Error(t, err)
}

func TestGetOptionalText(t *testing.T) {
	var out bytes.Buffer
	v, err := GetOptionalText(newReader("\n"), "Title", "Old", &out)
	require.NoError(t, err)
	assert.Nil(t, v)
	assert.Contains(t, out.String(), "Title [Old]")

	v, err = GetOptionalText(newReader("New\n"), "Title", "Old", &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.Equal(t, "New", *v)
}

func TestGetMultiline(t *testing.T) {
	s, err := GetMultiline(newReader("line one\nline two\n\nignored\n"), "Content", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "line one\nline two", s)
}

func TestGetMultiline_StopsAtEOF(t *testing.T) {
	s, err := GetMultiline(newReader("only"), "Content", &bytes.Buffer{})
	require.NoError(t, err)
	assert.Equal(t, "only", s)
}

func TestConfirm(t *testing.T) {
	cases := map[string]bool{
		"y\n":   true,
		"YES\n": true,
		"n\n":   false,
		"\n":    false,
		"maybe": false,
		"":      false,
	}
	for in, want := range cases {
		got, err := Confirm(newReader(in), "Sure?", &bytes.Buffer{})
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
}

func TestGetYesNo(t *testing.T) {
	v, err := GetYesNo(newReader("\n"), "Published", true, &bytes.Buffer{})
	require.NoError(t, err)
	assert.Nil(t, v)

	v, err = GetYesNo(newReader("no\n"), "Published", true, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.False(t, *v)

	v, err = GetYesNo(newReader("y\n"), "Published", false, &bytes.Buffer{})
	require.NoError(t, err)
	require.NotNil(t, v)
	assert.True(t, *v)

	_, err = GetYesNo(newReader("perhaps\n"), "Published", false, &bytes.Buffer{})
	require.Error(t, err)
}

func TestGetPassword_UsesTerminalReader(t *testing.T) {
	oldRead, oldFd := readPassword, stdinFd
	t.Cleanup(func() { readPassword, stdinFd = oldRead, oldFd })

	stdinFd = func() int { return 42 }
	var gotFd int
	readPassword = func(fd int) ([]byte, error) {
		gotFd = fd
		return []byte("secret"), nil
	}

	var out bytes.Buffer
	pw, err := GetPassword("Password", &out)
	require.NoError(t, err)
	assert.Equal(t, "secret", string(pw))
	assert.Equal(t, 42, gotFd)
	assert.Equal(t, "Password: \n", out.String())
}

func TestGetPassword_Error(t *testing.T) {
	oldRead, oldFd := readPassword, stdinFd
	t.Cleanup(func() { readPassword, stdinFd = oldRead, oldFd })

	stdinFd = func() int { return 0 }
	readPassword = func(int) ([]byte, error) { return nil, errors.New("not a terminal") }

	_, err := GetPassword("Password", &bytes.Buffer{})
	require.Error(t, err)
}
