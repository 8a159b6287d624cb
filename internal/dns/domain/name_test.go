package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewName_RoundTrip(t *testing.T) {
	n, err := NewName("www.example.com.")
	require.NoError(t, err)
	assert.Equal(t, [][]byte{[]byte("www"), []byte("example"), []byte("com")}, n.Labels)
	assert.Equal(t, "www.example.com.", n.String())
}

func TestNewName_Root(t *testing.T) {
	n, err := NewName(".")
	require.NoError(t, err)
	assert.True(t, n.IsRoot())
	assert.Equal(t, ".", n.String())

	n2, err := NewName("")
	require.NoError(t, err)
	assert.True(t, n2.IsRoot())
}

func TestNewName_EscapedLabel(t *testing.T) {
	n, err := NewName(`a\.b.example.com.`)
	require.NoError(t, err)
	require.Len(t, n.Labels, 3)
	assert.Equal(t, "a.b", string(n.Labels[0]))
	assert.Equal(t, `a\.b.example.com.`, n.String())
}

func TestNewName_LabelTooLong(t *testing.T) {
	long := make([]byte, 64)
	for i := range long {
		long[i] = 'a'
	}
	_, err := NewName(string(long) + ".com.")
	assert.ErrorIs(t, err, ErrLabelTooLong)
}

func TestNewName_NameTooLong(t *testing.T) {
	label := make([]byte, 63)
	for i := range label {
		label[i] = 'a'
	}
	presentation := ""
	for i := 0; i < 5; i++ {
		presentation += string(label) + "."
	}
	_, err := NewName(presentation)
	assert.ErrorIs(t, err, ErrNameTooLong)
}

func TestName_Canonical(t *testing.T) {
	n := MustName("WWW.Example.COM.")
	assert.Equal(t, "www.example.com.", n.Canonical())
}

func TestName_EqualFold(t *testing.T) {
	a := MustName("Example.COM.")
	b := MustName("example.com.")
	assert.True(t, a.EqualFold(b))
	assert.False(t, a.EqualFold(MustName("other.com.")))
}

func TestName_Suffixes(t *testing.T) {
	n := MustName("www.example.com.")
	suffixes := n.Suffixes()
	require.Len(t, suffixes, 4)
	assert.Equal(t, "www.example.com.", suffixes[0].String())
	assert.Equal(t, "example.com.", suffixes[1].String())
	assert.Equal(t, "com.", suffixes[2].String())
	assert.True(t, suffixes[3].IsRoot())
}

func TestName_EncodedLen(t *testing.T) {
	n := MustName("www.example.com.")
	// 1(len)+3(www) + 1(len)+7(example) + 1(len)+3(com) + 1(root) = 17
	assert.Equal(t, 17, n.EncodedLen())
}
