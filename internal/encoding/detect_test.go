package encoding_test

import (
	"bytes"
	"io"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/kpapadakis/emporos/internal/encoding"
)

func TestNewUTF8Reader_UTF8Passthrough(t *testing.T) {
	// Valid UTF-8 with Greek characters should pass through unchanged.
	input := "Ονοματεπώνυμο;ΑΦΜ\nΓιώργος Παπαδόπουλος;123456789\n"
	r, err := encoding.NewUTF8Reader(bytes.NewReader([]byte(input)))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, input, string(got))
}

func TestNewUTF8Reader_Windows1253(t *testing.T) {
	// Windows-1253 encoded customer import header and data row.
	greekBytes := []byte{
		0xCF, 0xED, 0xEF, 0xEC, 0xE1, 0xF4, 0xE5, 0xF0, 0xFE, 0xED, 0xF5, 0xEC, 0xEF, 0x3B,
		0xC5, 0xF0, 0xF9, 0xED, 0xF5, 0xEC, 0xDF, 0xE1, 0x3B,
		0xC1, 0xD6, 0xCC, 0x3B,
		0xC4, 0xE9, 0xE5, 0xFD, 0xE8, 0xF5, 0xED, 0xF3, 0xE7, 0x0A,
		0xC3, 0xE9, 0xFE, 0xF1, 0xE3, 0xEF, 0xF2, 0x20,
		0xD0, 0xE1, 0xF0, 0xE1, 0xE4, 0xFC, 0xF0, 0xEF, 0xF5, 0xEB, 0xEF, 0xF2, 0x3B,
		0xC1, 0xF6, 0xEF, 0xDF, 0x20,
		0xD0, 0xE1, 0xF0, 0xE1, 0xE4, 0xFC, 0xF0, 0xEF, 0xF5, 0xEB, 0xEF, 0xE9, 0x20, 0xCF, 0xC5, 0x3B,
		0x31, 0x32, 0x33, 0x34, 0x35, 0x36, 0x37, 0x38, 0x39, 0x3B,
		0xC1, 0xE8, 0xDE, 0xED, 0xE1, 0x0A,
	}

	r, err := encoding.NewUTF8Reader(bytes.NewReader(greekBytes))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t,
		"Ονοματεπώνυμο;Επωνυμία;ΑΦΜ;Διεύθυνση\nΓιώργος Παπαδόπουλος;Αφοί Παπαδόπουλοι ΟΕ;123456789;Αθήνα\n",
		string(got))
}

func TestNewUTF8Reader_UTF8BOM(t *testing.T) {
	// UTF-8 BOM (0xEF 0xBB 0xBF) should be stripped.
	bom := []byte{0xEF, 0xBB, 0xBF}
	content := []byte("Ονοματεπώνυμο;ΑΦΜ\n")
	input := append(bom, content...)

	r, err := encoding.NewUTF8Reader(bytes.NewReader(input))
	require.NoError(t, err)

	got, err := io.ReadAll(r)
	require.NoError(t, err)
	assert.Equal(t, "Ονοματεπώνυμο;ΑΦΜ\n", string(got))
}
