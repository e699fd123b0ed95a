package checkout

import (
	"net/url"
	"strings"
	"testing"

	"storefront/internal/domain/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleLines() []model.CartLine {
	return []model.CartLine{
		{ID: "1", Name: "Teak Chair", Price: 2500000, Quantity: 2},
		{ID: "2", Name: "Wooden Bowl Set", Price: 150000, Quantity: 1},
	}
}

func TestLinkBuilder_Message(t *testing.T) {
	b := NewLinkBuilder("", "")

	got := b.Message(sampleLines(), 5150000)

	want := strings.Join([]string{
		"Hello! I would like to place an order:",
		"",
		"- Teak Chair (x2): Rp 5.000.000",
		"- Wooden Bowl Set (x1): Rp 150.000",
		"",
		"*Total Price: Rp 5.150.000*",
		"",
		"Please confirm availability.",
	}, "\n")
	assert.Equal(t, want, got)
}

func TestLinkBuilder_Build(t *testing.T) {
	b := NewLinkBuilder("https://wa.me", "")

	link, err := b.Build(sampleLines(), 5150000, "+919876543210")
	require.NoError(t, err)

	u, err := url.Parse(link)
	require.NoError(t, err)
	assert.Equal(t, "wa.me", u.Host)
	assert.Equal(t, "/919876543210", u.Path)
	assert.Equal(t, b.Message(sampleLines(), 5150000), u.Query().Get("text"))
	assert.NotContains(t, u.RawQuery, "\n")
}

func TestLinkBuilder_Build_Rejects(t *testing.T) {
	b := NewLinkBuilder("", "")

	_, err := b.Build(nil, 0, "919876543210")
	assert.ErrorIs(t, err, ErrEmptyCart)

	_, err = b.Build(sampleLines(), 1, "  ")
	assert.ErrorIs(t, err, ErrNoDestination)
}

func TestLinkBuilder_CustomGreeting(t *testing.T) {
	b := NewLinkBuilder("", "Halo!")

	assert.True(t, strings.HasPrefix(b.Message(sampleLines(), 1), "Halo!\n\n"))
}

func TestLinkBuilder_FormatMoney(t *testing.T) {
	b := NewLinkBuilder("", "")

	assert.Equal(t, "Rp 0", b.FormatMoney(0))
	assert.Equal(t, "Rp 500", b.FormatMoney(500))
	assert.Equal(t, "Rp 7.000.000", b.FormatMoney(7000000))
}
