// Package mapper converts persistence models to API DTOs
package mapper

import (
	"time"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
)

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

func ToSettingsDTO(s *domain.Settings) domain.SettingsDTO {
	dto := domain.SettingsDTO{
		CompanyName: s.CompanyName,
		Currency:    s.Currency,
		Units:       s.Units,
		Prices:      s.Prices,
	}
	if !s.UpdatedAt.IsZero() {
		dto.UpdatedAt = formatTime(s.UpdatedAt)
	}
	return dto
}

func ToCalculationDTO(c *domain.Calculation) domain.CalculationDTO {
	items := c.Items
	if items == nil {
		items = []domain.CalculationItem{}
	}
	return domain.CalculationDTO{
		ID:            c.ID,
		ClientName:    c.ClientName,
		ProductType:   c.ProductType,
		ProductLabel:  c.ProductType.Label(),
		LacType:       c.LacType,
		Area:          c.Area,
		Date:          c.Date,
		Source:        c.Source,
		Total:         c.Total,
		IncludedInSum: c.IncludedInSum,
		Items:         items,
		CreatedAt:     formatTime(c.CreatedAt),
	}
}

func ToCalculationDTOs(calcs []domain.Calculation) []domain.CalculationDTO {
	dtos := make([]domain.CalculationDTO, 0, len(calcs))
	for i := range calcs {
		dtos = append(dtos, ToCalculationDTO(&calcs[i]))
	}
	return dtos
}

func ToMaterialDTO(m *domain.Material) domain.MaterialDTO {
	return domain.MaterialDTO{
		ID:          m.ID,
		Name:        m.Name,
		Consumption: m.Consumption,
		Layers:      m.Layers,
		PricePerKg:  m.PricePerKg,
	}
}

func ToRoomDTO(r *domain.Room) domain.RoomDTO {
	materials := make([]domain.MaterialDTO, 0, len(r.Materials))
	for i := range r.Materials {
		materials = append(materials, ToMaterialDTO(&r.Materials[i]))
	}
	return domain.RoomDTO{
		ID:        r.ID,
		Name:      r.Name,
		Area:      r.Area,
		Materials: materials,
	}
}

func ToProposalDTO(p *domain.Proposal) domain.ProposalDTO {
	rooms := make([]domain.RoomDTO, 0, len(p.Rooms))
	for i := range p.Rooms {
		rooms = append(rooms, ToRoomDTO(&p.Rooms[i]))
	}
	photoIDs := p.PhotoIDs
	if photoIDs == nil {
		photoIDs = []uuid.UUID{}
	}
	advantages := p.Advantages
	if advantages == nil {
		advantages = []string{}
	}
	params := p.TechnicalParams
	if params == nil {
		params = []domain.TechnicalParam{}
	}
	return domain.ProposalDTO{
		ID:              p.ID,
		Name:            p.Name,
		Client:          p.Client,
		Location:        p.Location,
		Date:            p.Date,
		Status:          p.Status,
		Currency:        p.Currency,
		VATEnabled:      p.VATEnabled,
		Discount:        p.Discount,
		ProductionTime:  p.ProductionTime,
		Warranty:        p.Warranty,
		Rooms:           rooms,
		CompanyDetails:  p.CompanyDetails,
		Description:     p.Description,
		Advantages:      advantages,
		TechnicalParams: params,
		ManagerContact:  p.ManagerContact,
		PhotoIDs:        photoIDs,
		PhotosPosition:  p.PhotosPosition,
		Total:           p.Total,
		CreatedAt:       formatTime(p.CreatedAt),
		UpdatedAt:       formatTime(p.UpdatedAt),
	}
}

func ToProposalDTOs(proposals []domain.Proposal) []domain.ProposalDTO {
	dtos := make([]domain.ProposalDTO, 0, len(proposals))
	for i := range proposals {
		dtos = append(dtos, ToProposalDTO(&proposals[i]))
	}
	return dtos
}

func ToDocumentDTO(d *domain.Document) domain.DocumentDTO {
	return domain.DocumentDTO{
		ID:        d.ID,
		Name:      d.Name,
		Type:      d.Type,
		Area:      d.Area,
		Date:      d.Date,
		Content:   d.Content,
		CreatedAt: formatTime(d.CreatedAt),
	}
}

func ToDocumentDTOs(docs []domain.Document) []domain.DocumentDTO {
	dtos := make([]domain.DocumentDTO, 0, len(docs))
	for i := range docs {
		dtos = append(dtos, ToDocumentDTO(&docs[i]))
	}
	return dtos
}

func ToPhotoDTO(p *domain.Photo) domain.PhotoDTO {
	return domain.PhotoDTO{
		ID:           p.ID,
		Name:         p.Name,
		ContentType:  p.ContentType,
		Size:         p.Size,
		URL:          "/api/v1/photos/" + p.ID.String() + "/download",
		ThumbnailURL: "/api/v1/photos/" + p.ID.String() + "/thumbnail",
		DateAdded:    formatTime(p.CreatedAt),
	}
}

func ToPhotoDTOs(photos []domain.Photo) []domain.PhotoDTO {
	dtos := make([]domain.PhotoDTO, 0, len(photos))
	for i := range photos {
		dtos = append(dtos, ToPhotoDTO(&photos[i]))
	}
	return dtos
}
