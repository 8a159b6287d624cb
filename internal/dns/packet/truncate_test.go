package packet

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/haukened/wiredns/internal/dns/domain"
)

func buildLargeAnswer(t *testing.T, n int) *Packet {
	t.Helper()
	p := New()
	p.Header.QR = true
	p.Question = []domain.Question{{Name: domain.MustName("example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN}}
	for i := 0; i < n; i++ {
		_, err := p.Push("answer", domain.ResourceRecord{
			// A long, distinct first label per record keeps compression
			// from shrinking the message: each answer is 67 octets on the
			// wire, so 10 of them encode to 699 octets.
			Name:  domain.MustName(fmt.Sprintf("host-%045d.example.com.", i)),
			Type:  domain.RRTypeA,
			Class: domain.RRClassIN,
			TTL:   300,
			RData: domain.OpaqueRData([]byte{10, 0, 0, byte(i)}),
		})
		require.NoError(t, err)
	}
	return p
}

func TestTruncate_ShrinksToFitAndSetsTC(t *testing.T) {
	p := buildLargeAnswer(t, 10)
	before, err := p.Encode()
	require.NoError(t, err)
	require.Greater(t, len(before), 512)

	Truncate(p, 512)

	after, err := p.Encode()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(after), 512)
	assert.True(t, p.Header.TC)
	assert.Less(t, len(p.Answer), 10)
}

func TestTruncate_DropsAdditionalBeforeSettingTC(t *testing.T) {
	p := New()
	p.Question = []domain.Question{{Name: domain.MustName("example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN}}
	_, err := p.Push("answer", domain.ResourceRecord{
		Name: domain.MustName("example.com."), Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 300,
		RData: domain.OpaqueRData([]byte{1, 2, 3, 4}),
	})
	require.NoError(t, err)

	// 30 glue records encode to 725 octets, above the 512 floor, so the
	// limit below is not clamped and Truncate has to drop glue.
	for i := 0; i < 30; i++ {
		_, err := p.Push("additional", domain.ResourceRecord{
			Name: domain.MustName(fmt.Sprintf("glue%d.example.com.", i)), Type: domain.RRTypeA, Class: domain.RRClassIN, TTL: 300,
			RData: domain.OpaqueRData([]byte{10, 0, 0, byte(i)}),
		})
		require.NoError(t, err)
	}

	fullWire, err := p.Encode()
	require.NoError(t, err)

	Truncate(p, len(fullWire)-1)

	assert.Less(t, len(p.Additional), 30)
	assert.False(t, p.Header.TC, "dropping additional-only records must not set TC")
	assert.Len(t, p.Answer, 1)
}

func TestTruncate_NeverBelowMinimumWireSize(t *testing.T) {
	p := buildLargeAnswer(t, 3)
	Truncate(p, 10) // below the 512 floor
	wireBytes, err := p.Encode()
	require.NoError(t, err)
	assert.LessOrEqual(t, len(wireBytes), 512)
}
