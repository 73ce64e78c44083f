// Package composer assembles a proposal into the fixed-order printable
// layout of a commercial proposal document. The composer only produces
// structure (and an HTML rendering of it for the browser print dialog);
// it never writes anything back to the proposal.
package composer

import (
	"math"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/pricing"
)

// PhotoResolver looks up a photo library entry by id. A miss is not an
// error: proposals hold weak references and the composer silently skips
// ids that no longer resolve.
type PhotoResolver func(id uuid.UUID) (*domain.Photo, bool)

// Purposes is the fixed "intended for" bullet list printed under the
// proposal description.
var Purposes = []string{
	"Виробничих цехів та приміщень",
	"Складських комплексів",
	"Паркінгів та автосервісів",
	"Торгових площ",
	"Харчових виробництв",
	"Фармацевтичних підприємств",
}

// MaterialRow is one line of a room table. Unit price and line total
// are VAT-inclusive when the proposal has VAT enabled.
type MaterialRow struct {
	Name        string  `json:"name"`
	Layers      int     `json:"layers"`
	Consumption float64 `json:"consumption"`
	Quantity    float64 `json:"quantity"` // kg, rounded for display
	UnitPrice   float64 `json:"unitPrice"`
	LineTotal   float64 `json:"lineTotal"`
}

// RoomSection is the table plus totals block of one included room
type RoomSection struct {
	ID              uuid.UUID     `json:"id"`
	Name            string        `json:"name"`
	Area            float64       `json:"area"`
	TotalLayers     int           `json:"totalLayers"`
	Rows            []MaterialRow `json:"rows"`
	Subtotal        float64       `json:"subtotal"` // VAT-inclusive, before discount
	DiscountPercent float64       `json:"discountPercent"`
	DiscountAmount  float64       `json:"discountAmount"`
	Final           float64       `json:"final"`
}

// GalleryPhoto is one resolved photo of the document gallery
type GalleryPhoto struct {
	ID           uuid.UUID `json:"id"`
	Name         string    `json:"name"`
	URL          string    `json:"url"`
	ThumbnailURL string    `json:"thumbnailUrl"`
}

// Layout is the composed document in section order: header, client
// block, description, purposes, room tables, grand total, production
// terms, advantages/technical parameters, gallery, footer.
type Layout struct {
	Company        domain.CompanyDetails   `json:"company"`
	Title          string                  `json:"title"`
	Subtitle       string                  `json:"subtitle"`
	TotalArea      float64                 `json:"totalArea"`
	Location       string                  `json:"location"`
	Client         string                  `json:"client"`
	ProjectName    string                  `json:"projectName"`
	Date           string                  `json:"date"`
	Description    string                  `json:"description"`
	Purposes       []string                `json:"purposes"`
	Rooms          []RoomSection           `json:"rooms"`
	GrandTotal     float64                 `json:"grandTotal"`
	Currency       string                  `json:"currency"`
	VATEnabled     bool                    `json:"vatEnabled"`
	Discount       float64                 `json:"discount"`
	ProductionTime string                  `json:"productionTime"`
	Warranty       string                  `json:"warranty"`
	Advantages     []string                `json:"advantages"`
	TechnicalParams []domain.TechnicalParam `json:"technicalParams"`
	Photos         []GalleryPhoto          `json:"photos"`
	PhotosPosition domain.PhotosPosition   `json:"photosPosition"`
	Manager        domain.ManagerContact   `json:"manager"`
}

// Compose builds the document layout for a proposal restricted to the
// selected room ids. A nil selection includes every room. The photo
// gallery is capped at three entries; unresolved photo ids are skipped.
// The photos position flag is carried through for the consumer, but the
// gallery itself always renders as the trailing block, matching the
// printed document.
func Compose(p *domain.Proposal, selected []uuid.UUID, resolve PhotoResolver) *Layout {
	include := make(map[uuid.UUID]bool, len(p.Rooms))
	if selected == nil {
		for i := range p.Rooms {
			include[p.Rooms[i].ID] = true
		}
	} else {
		for _, id := range selected {
			include[id] = true
		}
	}

	layout := &Layout{
		Company:         p.CompanyDetails,
		Title:           "КОМЕРЦІЙНА ПРОПОЗИЦІЯ",
		Subtitle:        "Полімерні матеріали для захисного покриття PoliBest 911",
		Location:        p.Location,
		Client:          p.Client,
		ProjectName:     p.Name,
		Date:            p.Date,
		Description:     p.Description,
		Purposes:        Purposes,
		Currency:        p.Currency,
		VATEnabled:      p.VATEnabled,
		Discount:        p.Discount,
		ProductionTime:  p.ProductionTime,
		Warranty:        p.Warranty,
		Advantages:      p.Advantages,
		TechnicalParams: p.TechnicalParams,
		PhotosPosition:  p.PhotosPosition,
		Manager:         p.ManagerContact,
	}

	grand := 0.0
	for i := range p.Rooms {
		room := &p.Rooms[i]
		if !include[room.ID] {
			continue
		}
		layout.TotalArea += room.Area

		breakdown := pricing.RoomCost(room, p.VATEnabled, p.Discount)
		section := RoomSection{
			ID:              room.ID,
			Name:            room.Name,
			Area:            room.Area,
			TotalLayers:     breakdown.TotalLayers,
			Subtotal:        breakdown.WithVAT,
			DiscountPercent: p.Discount,
			DiscountAmount:  breakdown.DiscountAmount,
			Final:           breakdown.Final,
		}
		for _, m := range room.Materials {
			qty := room.Area * m.Consumption * float64(m.Layers)
			unit := pricing.UnitPriceWithVAT(m.PricePerKg, p.VATEnabled)
			section.Rows = append(section.Rows, MaterialRow{
				Name:        m.Name,
				Layers:      m.Layers,
				Consumption: m.Consumption,
				Quantity:    math.Round(qty),
				UnitPrice:   unit,
				LineTotal:   qty * unit,
			})
		}
		layout.Rooms = append(layout.Rooms, section)
		grand += breakdown.Final
	}
	layout.GrandTotal = math.Round(grand)

	for _, id := range p.PhotoIDs {
		if len(layout.Photos) >= domain.MaxProposalPhotos {
			break
		}
		photo, ok := resolve(id)
		if !ok {
			continue
		}
		layout.Photos = append(layout.Photos, GalleryPhoto{
			ID:           photo.ID,
			Name:         photo.Name,
			URL:          "/api/v1/photos/" + photo.ID.String() + "/download",
			ThumbnailURL: "/api/v1/photos/" + photo.ID.String() + "/thumbnail",
		})
	}

	return layout
}
