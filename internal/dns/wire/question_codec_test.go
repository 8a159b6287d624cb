package wire

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/wiredns/internal/dns/domain"
)

func TestEncodeDecodeQuestion_RoundTrip(t *testing.T) {
	q := domain.Question{Name: domain.MustName("example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN}
	buf := &bytes.Buffer{}
	require.NoError(t, EncodeQuestion(buf, q, NewCompressionTable()))

	got, next, err := DecodeQuestion(buf.Bytes(), 0)
	require.NoError(t, err)
	assert.Equal(t, buf.Len(), next)
	assert.True(t, q.Name.EqualFold(got.Name))
	assert.Equal(t, q.Type, got.Type)
	assert.Equal(t, q.Class, got.Class)
}

func TestDecodeQuestion_Truncated(t *testing.T) {
	buf := &bytes.Buffer{}
	require.NoError(t, EncodeQuestion(buf, domain.Question{Name: domain.MustName("a."), Type: domain.RRTypeA, Class: domain.RRClassIN}, NewCompressionTable()))
	_, _, err := DecodeQuestion(buf.Bytes()[:buf.Len()-1], 0)
	assert.ErrorIs(t, err, domain.ErrTruncatedSection)
}
