package flash

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"metadologie.com/portal/pkg/view"
)

func TestCodecRoundTrip(t *testing.T) {
	c := NewCodec([]byte("secret"), "portal_flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashSuccess, Message: "Signed in."})
	require.NoError(t, err)

	f, err := c.Decode(v)
	require.NoError(t, err)
	assert.Equal(t, view.FlashSuccess, f.Kind)
	assert.Equal(t, "Signed in.", f.Message)
}

func TestCodecRejectsTamperedValue(t *testing.T) {
	c := NewCodec([]byte("secret"), "portal_flash", false)

	v, err := c.Encode(view.Flash{Kind: view.FlashInfo, Message: "hello"})
	require.NoError(t, err)

	parts := strings.Split(v, ".")
	_, err = c.Decode("eyJraW5kIjoiaW5mbyJ9." + parts[1])
	assert.ErrorIs(t, err, ErrInvalid)

	// Signature from a different secret.
	other := NewCodec([]byte("other"), "portal_flash", false)
	ov, err := other.Encode(view.Flash{Kind: view.FlashInfo, Message: "hello"})
	require.NoError(t, err)
	_, err = c.Decode(ov)
	assert.ErrorIs(t, err, ErrInvalid)

	_, err = c.Decode("garbage")
	assert.ErrorIs(t, err, ErrInvalid)
}
