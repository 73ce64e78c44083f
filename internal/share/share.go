// Package share builds messenger deep links carrying a plain-text
// summary of a calculation or proposal.
package share

import (
	"fmt"
	"net/url"

	"github.com/polibest/kp-api/internal/domain"
)

// SummaryParams describe the shared record in the summary text
type SummaryParams struct {
	ClientName string
	Label      string // product or proposal label line
	Area       float64
	Total      float64
	Currency   string
}

// SummaryText renders the three-line plain-text payload sent to the
// messenger. The layout is fixed: client, label with area, grand total.
func SummaryText(p SummaryParams) string {
	return fmt.Sprintf("%s\n%s - %g м²\nРАЗОМ: %g %s",
		p.ClientName, p.Label, p.Area, p.Total, p.Currency)
}

// BuildLink returns the deep link for the given messenger with the text
// URL-encoded into its query. Unknown targets yield an empty link.
func BuildLink(target domain.ShareTarget, text string) domain.ShareLinkDTO {
	encoded := url.QueryEscape(text)
	link := domain.ShareLinkDTO{Target: target, Text: text}
	switch target {
	case domain.ShareTelegram:
		link.URL = "https://t.me/share/url?text=" + encoded
	case domain.ShareViber:
		link.URL = "viber://forward?text=" + encoded
	case domain.ShareWhatsApp:
		link.URL = "https://wa.me/?text=" + encoded
	}
	return link
}

// Links returns the deep links for every supported messenger
func Links(text string) []domain.ShareLinkDTO {
	targets := []domain.ShareTarget{domain.ShareTelegram, domain.ShareViber, domain.ShareWhatsApp}
	out := make([]domain.ShareLinkDTO, 0, len(targets))
	for _, t := range targets {
		out = append(out, BuildLink(t, text))
	}
	return out
}
