package share_test

import (
	"net/url"
	"strings"
	"testing"

	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/share"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummaryText(t *testing.T) {
	text := share.SummaryText(share.SummaryParams{
		ClientName: "ТОВ Агро",
		Label:      "ФЛОКИ",
		Area:       120,
		Total:      54000,
		Currency:   "UAH",
	})

	assert.Equal(t, "ТОВ Агро\nФЛОКИ - 120 м²\nРАЗОМ: 54000 UAH", text)
}

func TestBuildLink_Targets(t *testing.T) {
	text := "Клієнт\nҐРУНТ - 50 м²\nРАЗОМ: 6480 UAH"

	tg := share.BuildLink(domain.ShareTelegram, text)
	vb := share.BuildLink(domain.ShareViber, text)
	wa := share.BuildLink(domain.ShareWhatsApp, text)

	assert.True(t, strings.HasPrefix(tg.URL, "https://t.me/share/url?text="))
	assert.True(t, strings.HasPrefix(vb.URL, "viber://forward?text="))
	assert.True(t, strings.HasPrefix(wa.URL, "https://wa.me/?text="))

	// The payload must round-trip through URL decoding
	raw := strings.TrimPrefix(tg.URL, "https://t.me/share/url?text=")
	decoded, err := url.QueryUnescape(raw)
	require.NoError(t, err)
	assert.Equal(t, text, decoded)
	assert.Equal(t, text, tg.Text)
}

func TestBuildLink_UnknownTarget(t *testing.T) {
	link := share.BuildLink(domain.ShareTarget("sms"), "hi")
	assert.Empty(t, link.URL)
}

func TestLinks_AllMessengers(t *testing.T) {
	links := share.Links("hi")
	require.Len(t, links, 3)
	assert.Equal(t, domain.ShareTelegram, links[0].Target)
	assert.Equal(t, domain.ShareViber, links[1].Target)
	assert.Equal(t, domain.ShareWhatsApp, links[2].Target)
}
