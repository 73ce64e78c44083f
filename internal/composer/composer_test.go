package composer_test

import (
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/composer"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleProposal() *domain.Proposal {
	p := &domain.Proposal{
		Name:            "Цех №2",
		Client:          "ТОВ Агро",
		Location:        "Київ",
		Date:            "2025-03-10",
		Currency:        "UAH",
		VATEnabled:      true,
		Discount:        20,
		ProductionTime:  "7-10 робочих днів",
		Warranty:        "5 років",
		CompanyDetails:  domain.DefaultCompanyDetails(),
		Advantages:      domain.DefaultAdvantages(),
		TechnicalParams: domain.DefaultTechnicalParams(),
		ManagerContact:  domain.ManagerContact{Position: "Менеджер", Name: "Олена", Phone: "067-000-00-00"},
		PhotosPosition:  domain.PhotosEnd,
	}
	p.ID = uuid.New()

	room := domain.Room{
		Name: "Приміщення 1",
		Area: 100,
		Materials: []domain.Material{
			{Name: domain.MaterialNameGruntivka, Consumption: 0.15, Layers: 2, PricePerKg: 864},
			{Name: domain.MaterialNameEmal, Consumption: 0.30, Layers: 3, PricePerKg: 1512},
		},
	}
	room.ID = uuid.New()
	p.Rooms = []domain.Room{room}
	return p
}

func noPhotos(uuid.UUID) (*domain.Photo, bool) { return nil, false }

func TestCompose_SectionContent(t *testing.T) {
	p := sampleProposal()

	layout := composer.Compose(p, nil, noPhotos)

	assert.Equal(t, "КОМЕРЦІЙНА ПРОПОЗИЦІЯ", layout.Title)
	assert.Equal(t, 100.0, layout.TotalArea)
	assert.Len(t, layout.Purposes, 6)
	require.Len(t, layout.Rooms, 1)

	section := layout.Rooms[0]
	require.Len(t, section.Rows, 2)
	assert.Equal(t, 5, section.TotalLayers)

	// Unit prices shown VAT-inclusive
	assert.InDelta(t, 864*1.2, section.Rows[0].UnitPrice, 1e-9)
	assert.InDelta(t, 30.0, section.Rows[0].Quantity, 1e-9)

	raw := 100*0.15*2*864 + 100*0.30*3*1512
	assert.InDelta(t, raw*1.2, section.Subtotal, 1e-9)
	assert.InDelta(t, raw*1.2*0.2, section.DiscountAmount, 1e-9)
	assert.InDelta(t, raw*1.2*0.8, layout.GrandTotal, 1)
}

func TestCompose_RoomSelection(t *testing.T) {
	p := sampleProposal()
	extra := domain.Room{Name: "Склад", Area: 50, Materials: []domain.Material{
		{Name: domain.MaterialNameFloki, Consumption: 0.2, Layers: 1, PricePerKg: 1620},
	}}
	extra.ID = uuid.New()
	p.Rooms = append(p.Rooms, extra)

	all := composer.Compose(p, nil, noPhotos)
	only := composer.Compose(p, []uuid.UUID{extra.ID}, noPhotos)

	assert.Len(t, all.Rooms, 2)
	require.Len(t, only.Rooms, 1)
	assert.Equal(t, "Склад", only.Rooms[0].Name)
	assert.Equal(t, 50.0, only.TotalArea)
	assert.Less(t, only.GrandTotal, all.GrandTotal)
}

func TestCompose_SkipsMissingPhotosAndCapsAtThree(t *testing.T) {
	p := sampleProposal()
	known := map[uuid.UUID]*domain.Photo{}
	var ids []uuid.UUID
	for i := 0; i < 4; i++ {
		photo := &domain.Photo{Name: "shot"}
		photo.ID = uuid.New()
		if i != 1 { // second id dangles
			known[photo.ID] = photo
		}
		ids = append(ids, photo.ID)
	}
	p.PhotoIDs = ids

	layout := composer.Compose(p, nil, func(id uuid.UUID) (*domain.Photo, bool) {
		ph, ok := known[id]
		return ph, ok
	})

	// The dangling id is skipped and does not count toward the cap
	require.Len(t, layout.Photos, 3)
	assert.Equal(t, ids[0], layout.Photos[0].ID)
	assert.Equal(t, ids[2], layout.Photos[1].ID)
	assert.Equal(t, ids[3], layout.Photos[2].ID)
	assert.Contains(t, layout.Photos[0].URL, ids[0].String())
}

func TestRenderHTML(t *testing.T) {
	p := sampleProposal()
	layout := composer.Compose(p, nil, noPhotos)

	html, err := composer.RenderHTML(layout)
	require.NoError(t, err)

	assert.Contains(t, html, "КОМЕРЦІЙНА ПРОПОЗИЦІЯ")
	assert.Contains(t, html, "Приміщення 1")
	assert.Contains(t, html, "ТОВ Агро")
	assert.Contains(t, html, "РАЗОМ:")
	// Room table precedes the grand total banner
	assert.Less(t, strings.Index(html, "Приміщення 1"), strings.Index(html, "РАЗОМ:"))
}
