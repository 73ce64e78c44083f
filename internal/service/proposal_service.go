package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/composer"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/mapper"
	"github.com/polibest/kp-api/internal/pricing"
	"github.com/polibest/kp-api/internal/repository"
	"github.com/polibest/kp-api/internal/share"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// ProposalService manages commercial proposals. The cached total is
// recomputed from the room tree on every write; it is never accepted
// from the client.
type ProposalService struct {
	proposalRepo    *repository.ProposalRepository
	photoRepo       *repository.PhotoRepository
	settingsService *SettingsService
	logger          *zap.Logger
}

func NewProposalService(
	proposalRepo *repository.ProposalRepository,
	photoRepo *repository.PhotoRepository,
	settingsService *SettingsService,
	logger *zap.Logger,
) *ProposalService {
	return &ProposalService{
		proposalRepo:    proposalRepo,
		photoRepo:       photoRepo,
		settingsService: settingsService,
		logger:          logger,
	}
}

// Create builds a proposal from the default scaffold: one 100 m² room
// with a primer and enamel line, VAT on, 20% discount. Name and client
// from the request override the scaffold placeholders.
func (s *ProposalService) Create(ctx context.Context, req *domain.CreateProposalRequest) (*domain.ProposalDTO, error) {
	settings, err := s.settingsService.Current(ctx)
	if err != nil {
		return nil, err
	}

	proposal := defaultProposal(settings)
	if req.Name != "" {
		proposal.Name = req.Name
	}
	if req.Client != "" {
		proposal.Client = req.Client
	}
	proposal.Total = pricing.ProposalTotal(proposal.Rooms, proposal.VATEnabled, proposal.Discount)

	if err := s.proposalRepo.Create(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to create proposal: %w", err)
	}

	s.logger.Info("Proposal created",
		zap.String("proposal_id", proposal.ID.String()),
		zap.String("client", proposal.Client),
	)

	return s.reload(ctx, proposal.ID)
}

func (s *ProposalService) GetByID(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	proposal, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

func (s *ProposalService) List(ctx context.Context, page, pageSize int, search string, status domain.ProposalStatus) ([]domain.ProposalDTO, int64, error) {
	proposals, total, err := s.proposalRepo.List(ctx, page, pageSize, search, status)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list proposals: %w", err)
	}
	return mapper.ToProposalDTOs(proposals), total, nil
}

// Update replaces the editable state wholesale and recomputes the
// total. Concurrent edits are last-write-wins.
func (s *ProposalService) Update(ctx context.Context, id uuid.UUID, req *domain.UpdateProposalRequest) (*domain.ProposalDTO, error) {
	proposal, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	if len(req.PhotoIDs) > domain.MaxProposalPhotos {
		return nil, ErrTooManyPhotos
	}

	proposal.Name = req.Name
	proposal.Client = req.Client
	proposal.Location = req.Location
	proposal.VATEnabled = req.VATEnabled
	proposal.Discount = req.Discount
	proposal.ProductionTime = req.ProductionTime
	proposal.Warranty = req.Warranty
	proposal.CompanyDetails = req.CompanyDetails
	proposal.Description = req.Description
	proposal.Advantages = req.Advantages
	proposal.TechnicalParams = req.TechnicalParams
	proposal.ManagerContact = req.ManagerContact
	proposal.PhotoIDs = req.PhotoIDs
	if req.Date != "" {
		proposal.Date = req.Date
	}
	if req.Currency != "" {
		proposal.Currency = req.Currency
	}
	if req.PhotosPosition != "" {
		proposal.PhotosPosition = req.PhotosPosition
	}

	proposal.Rooms = make([]domain.Room, 0, len(req.Rooms))
	for i, roomInput := range req.Rooms {
		room := domain.Room{
			ProposalID: proposal.ID,
			Name:       roomInput.Name,
			Area:       roomInput.Area,
			Position:   i,
		}
		for j, matInput := range roomInput.Materials {
			room.Materials = append(room.Materials, domain.Material{
				Name:        matInput.Name,
				Consumption: matInput.Consumption,
				Layers:      matInput.Layers,
				PricePerKg:  matInput.PricePerKg,
				Position:    j,
			})
		}
		proposal.Rooms = append(proposal.Rooms, room)
	}

	proposal.Total = pricing.ProposalTotal(proposal.Rooms, proposal.VATEnabled, proposal.Discount)

	if err := s.proposalRepo.Update(ctx, proposal); err != nil {
		return nil, fmt.Errorf("failed to update proposal: %w", err)
	}

	return s.reload(ctx, id)
}

// UpdateStatus sets the lifecycle status. Any status may follow any
// other; there is no transition graph.
func (s *ProposalService) UpdateStatus(ctx context.Context, id uuid.UUID, status domain.ProposalStatus) (*domain.ProposalDTO, error) {
	if _, err := s.getModel(ctx, id); err != nil {
		return nil, err
	}
	if err := s.proposalRepo.UpdateStatus(ctx, id, status); err != nil {
		return nil, fmt.Errorf("failed to update proposal status: %w", err)
	}
	return s.reload(ctx, id)
}

// Clone creates a deep copy of a proposal as a new draft. Photo
// references are carried over; the copy gets fresh ids throughout.
func (s *ProposalService) Clone(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	src, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}

	clone := *src
	clone.ID = uuid.Nil
	clone.CreatedAt = time.Time{}
	clone.UpdatedAt = time.Time{}
	clone.Name = src.Name + " (копія)"
	clone.Status = domain.ProposalStatusDraft
	clone.Rooms = make([]domain.Room, 0, len(src.Rooms))
	for _, room := range src.Rooms {
		roomCopy := domain.Room{
			Name:     room.Name,
			Area:     room.Area,
			Position: room.Position,
		}
		for _, m := range room.Materials {
			roomCopy.Materials = append(roomCopy.Materials, domain.Material{
				Name:        m.Name,
				Consumption: m.Consumption,
				Layers:      m.Layers,
				PricePerKg:  m.PricePerKg,
				Position:    m.Position,
			})
		}
		clone.Rooms = append(clone.Rooms, roomCopy)
	}

	if err := s.proposalRepo.Create(ctx, &clone); err != nil {
		return nil, fmt.Errorf("failed to clone proposal: %w", err)
	}

	s.logger.Info("Proposal cloned",
		zap.String("source_id", id.String()),
		zap.String("clone_id", clone.ID.String()),
	)

	return s.reload(ctx, clone.ID)
}

func (s *ProposalService) Delete(ctx context.Context, id uuid.UUID) error {
	if _, err := s.getModel(ctx, id); err != nil {
		return err
	}
	if err := s.proposalRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("failed to delete proposal: %w", err)
	}
	s.logger.Info("Proposal deleted", zap.String("proposal_id", id.String()))
	return nil
}

// Preview composes the document layout, optionally restricted to the
// given room ids (nil means all rooms).
func (s *ProposalService) Preview(ctx context.Context, id uuid.UUID, roomIDs []uuid.UUID) (*composer.Layout, error) {
	proposal, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	return composer.Compose(proposal, roomIDs, s.photoResolver(ctx)), nil
}

// PrintHTML renders the composed document as a printable HTML page
func (s *ProposalService) PrintHTML(ctx context.Context, id uuid.UUID, roomIDs []uuid.UUID) (string, error) {
	layout, err := s.Preview(ctx, id, roomIDs)
	if err != nil {
		return "", err
	}
	return composer.RenderHTML(layout)
}

// ShareLink builds a messenger deep link summarizing the proposal
func (s *ProposalService) ShareLink(ctx context.Context, id uuid.UUID, target domain.ShareTarget) (*domain.ShareLinkDTO, error) {
	if !target.IsValid() {
		return nil, ErrInvalidShareTarget
	}

	proposal, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}

	area := 0.0
	for _, room := range proposal.Rooms {
		area += room.Area
	}
	label := proposal.Name
	if label == "" {
		label = "Комерційна пропозиція"
	}
	text := share.SummaryText(share.SummaryParams{
		ClientName: proposal.Client,
		Label:      label,
		Area:       area,
		Total:      proposal.Total,
		Currency:   proposal.Currency,
	})
	link := share.BuildLink(target, text)
	return &link, nil
}

// RecalculateTotals recomputes and repairs the cached total of every
// proposal. Run periodically so drift from partial writes never
// survives for long.
func (s *ProposalService) RecalculateTotals(ctx context.Context) (int, error) {
	proposals, err := s.proposalRepo.ListAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to list proposals: %w", err)
	}

	fixed := 0
	for i := range proposals {
		p := &proposals[i]
		want := pricing.ProposalTotal(p.Rooms, p.VATEnabled, p.Discount)
		if want == p.Total {
			continue
		}
		if err := s.proposalRepo.UpdateTotal(ctx, p.ID, want); err != nil {
			return fixed, fmt.Errorf("failed to update total for proposal %s: %w", p.ID, err)
		}
		s.logger.Warn("Repaired stale proposal total",
			zap.String("proposal_id", p.ID.String()),
			zap.Float64("stored", p.Total),
			zap.Float64("computed", want),
		)
		fixed++
	}
	return fixed, nil
}

func (s *ProposalService) photoResolver(ctx context.Context) composer.PhotoResolver {
	return func(id uuid.UUID) (*domain.Photo, bool) {
		photo, err := s.photoRepo.GetByID(ctx, id)
		if err != nil {
			return nil, false
		}
		return photo, true
	}
}

func (s *ProposalService) reload(ctx context.Context, id uuid.UUID) (*domain.ProposalDTO, error) {
	proposal, err := s.getModel(ctx, id)
	if err != nil {
		return nil, err
	}
	dto := mapper.ToProposalDTO(proposal)
	return &dto, nil
}

func (s *ProposalService) getModel(ctx context.Context, id uuid.UUID) (*domain.Proposal, error) {
	proposal, err := s.proposalRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrProposalNotFound
		}
		return nil, fmt.Errorf("failed to get proposal: %w", err)
	}
	return proposal, nil
}

func defaultProposal(settings *domain.Settings) *domain.Proposal {
	return &domain.Proposal{
		Name:           "Нова пропозиція",
		Location:       "Україна",
		Date:           time.Now().UTC().Format("2006-01-02"),
		Status:         domain.ProposalStatusDraft,
		Currency:       settings.Currency,
		VATEnabled:     true,
		Discount:       20,
		ProductionTime: "до 9 календарних днів, після 100% оплати",
		Warranty:       "7 років гарантії на матеріали",
		Rooms: []domain.Room{
			{
				Name: "Приміщення 1",
				Area: 100,
				Materials: []domain.Material{
					{
						Name:        domain.MaterialNameGruntivka,
						Consumption: pricing.ConsumptionGrunt,
						Layers:      2,
						PricePerKg:  settings.Prices.Gruntivka,
						Position:    0,
					},
					{
						Name:        domain.MaterialNameEmal,
						Consumption: pricing.ConsumptionEmal,
						Layers:      3,
						PricePerKg:  settings.Prices.Emal,
						Position:    1,
					},
				},
			},
		},
		CompanyDetails:  domain.DefaultCompanyDetails(),
		Description:     "Полімерні матеріали для захисного полімерного покриття PoliBest 911 (без розчинників).",
		Advantages:      domain.DefaultAdvantages(),
		TechnicalParams: domain.DefaultTechnicalParams(),
		ManagerContact:  domain.DefaultManagerContact(),
		PhotosPosition:  domain.PhotosEnd,
	}
}
