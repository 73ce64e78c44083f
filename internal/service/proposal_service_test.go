package service_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/polibest/kp-api/internal/domain"
	"github.com/polibest/kp-api/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProposalService_Create(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	t.Run("scaffold has one room with primer and enamel", func(t *testing.T) {
		proposal, err := svc.Create(ctx, &domain.CreateProposalRequest{Client: "ТОВ Альфа"})
		require.NoError(t, err)

		assert.Equal(t, "ТОВ Альфа", proposal.Client)
		assert.Equal(t, domain.ProposalStatusDraft, proposal.Status)
		assert.True(t, proposal.VATEnabled)
		assert.Equal(t, 20.0, proposal.Discount)
		assert.Equal(t, domain.PhotosEnd, proposal.PhotosPosition)

		require.Len(t, proposal.Rooms, 1)
		room := proposal.Rooms[0]
		assert.Equal(t, "Приміщення 1", room.Name)
		assert.Equal(t, 100.0, room.Area)
		require.Len(t, room.Materials, 2)
		assert.Equal(t, 0.15, room.Materials[0].Consumption)
		assert.Equal(t, 2, room.Materials[0].Layers)
		assert.Equal(t, 864.0, room.Materials[0].PricePerKg)
		assert.Equal(t, 0.30, room.Materials[1].Consumption)
		assert.Equal(t, 3, room.Materials[1].Layers)
		assert.Equal(t, 1512.0, room.Materials[1].PricePerKg)

		// (100×0.15×2×864 + 100×0.30×3×1512) × 1.2 × 0.8
		assert.Equal(t, 155520.0, proposal.Total)
	})
}

func TestProposalService_Update(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateProposalRequest{})
	require.NoError(t, err)

	baseUpdate := func() *domain.UpdateProposalRequest {
		return &domain.UpdateProposalRequest{
			Name:       "Склад",
			Client:     "ТОВ Бета",
			VATEnabled: true,
			Discount:   0,
			Rooms: []domain.RoomInput{
				{
					Name: "Цех",
					Area: 50,
					Materials: []domain.MaterialInput{
						{Name: domain.MaterialNameEmal, Consumption: 0.30, Layers: 3, PricePerKg: 1512},
					},
				},
			},
		}
	}

	t.Run("total is recomputed from rooms", func(t *testing.T) {
		updated, err := svc.Update(ctx, created.ID, baseUpdate())
		require.NoError(t, err)

		require.Len(t, updated.Rooms, 1)
		assert.Equal(t, "Цех", updated.Rooms[0].Name)
		// 50×0.30×3×1512 × 1.2
		assert.Equal(t, 81648.0, updated.Total)
	})

	t.Run("vat applies before discount", func(t *testing.T) {
		req := baseUpdate()
		req.Discount = 10
		updated, err := svc.Update(ctx, created.ID, req)
		require.NoError(t, err)
		// 68040 × 1.2 × 0.9
		assert.Equal(t, 73483.0, updated.Total)
	})

	t.Run("vat disabled", func(t *testing.T) {
		req := baseUpdate()
		req.VATEnabled = false
		updated, err := svc.Update(ctx, created.ID, req)
		require.NoError(t, err)
		assert.Equal(t, 68040.0, updated.Total)
		assert.False(t, updated.VATEnabled)
	})

	t.Run("rejects more than three photo references", func(t *testing.T) {
		req := baseUpdate()
		req.PhotoIDs = []uuid.UUID{uuid.New(), uuid.New(), uuid.New(), uuid.New()}
		_, err := svc.Update(ctx, created.ID, req)
		assert.ErrorIs(t, err, service.ErrTooManyPhotos)
	})

	t.Run("unknown id", func(t *testing.T) {
		_, err := svc.Update(ctx, uuid.New(), baseUpdate())
		assert.ErrorIs(t, err, service.ErrProposalNotFound)
	})
}

func TestProposalService_UpdateStatus(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateProposalRequest{})
	require.NoError(t, err)

	// Any status may follow any other
	for _, status := range []domain.ProposalStatus{
		domain.ProposalStatusPaid,
		domain.ProposalStatusDraft,
		domain.ProposalStatusCancelled,
		domain.ProposalStatusSent,
	} {
		updated, err := svc.UpdateStatus(ctx, created.ID, status)
		require.NoError(t, err)
		assert.Equal(t, status, updated.Status)
	}
}

func TestProposalService_Clone(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateProposalRequest{Name: "Оригінал"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, created.ID, domain.ProposalStatusPaid)
	require.NoError(t, err)

	clone, err := svc.Clone(ctx, created.ID)
	require.NoError(t, err)

	assert.NotEqual(t, created.ID, clone.ID)
	assert.Equal(t, "Оригінал (копія)", clone.Name)
	assert.Equal(t, domain.ProposalStatusDraft, clone.Status)
	assert.Equal(t, created.Total, clone.Total)
	require.Len(t, clone.Rooms, 1)
	assert.NotEqual(t, created.Rooms[0].ID, clone.Rooms[0].ID)
	assert.Equal(t, created.Rooms[0].Area, clone.Rooms[0].Area)
	require.Len(t, clone.Rooms[0].Materials, 2)
}

func TestProposalService_List(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	a, err := svc.Create(ctx, &domain.CreateProposalRequest{Name: "Ангар", Client: "ТОВ Альфа"})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &domain.CreateProposalRequest{Name: "Гараж", Client: "ТОВ Бета"})
	require.NoError(t, err)
	_, err = svc.UpdateStatus(ctx, a.ID, domain.ProposalStatusSent)
	require.NoError(t, err)

	t.Run("search by client", func(t *testing.T) {
		items, total, err := svc.List(ctx, 1, 20, "Бета", "")
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, "Гараж", items[0].Name)
	})

	t.Run("filter by status", func(t *testing.T) {
		items, total, err := svc.List(ctx, 1, 20, "", domain.ProposalStatusSent)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, items, 1)
		assert.Equal(t, a.ID, items[0].ID)
	})
}

func TestProposalService_ShareLink(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateProposalRequest{Name: "Склад", Client: "ТОВ Альфа"})
	require.NoError(t, err)

	link, err := svc.ShareLink(ctx, created.ID, domain.ShareViber)
	require.NoError(t, err)
	assert.Equal(t, domain.ShareViber, link.Target)
	assert.Equal(t, "ТОВ Альфа\nСклад - 100 м²\nРАЗОМ: 155520 UAH", link.Text)
	assert.Contains(t, link.URL, "viber://forward")
}

func TestProposalService_RecalculateTotals(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateProposalRequest{})
	require.NoError(t, err)

	t.Run("nothing to repair", func(t *testing.T) {
		fixed, err := svc.RecalculateTotals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 0, fixed)
	})

	t.Run("repairs drifted totals", func(t *testing.T) {
		err := db.Model(&domain.Proposal{}).
			Where("id = ?", created.ID).
			Update("total", 1.0).Error
		require.NoError(t, err)

		fixed, err := svc.RecalculateTotals(ctx)
		require.NoError(t, err)
		assert.Equal(t, 1, fixed)

		reread, err := svc.GetByID(ctx, created.ID)
		require.NoError(t, err)
		assert.Equal(t, 155520.0, reread.Total)
	})
}

func TestProposalService_Preview(t *testing.T) {
	db := setupTestDB(t)
	svc := newProposalService(db)
	ctx := context.Background()

	created, err := svc.Create(ctx, &domain.CreateProposalRequest{Client: "ТОВ Альфа"})
	require.NoError(t, err)

	t.Run("all rooms by default", func(t *testing.T) {
		layout, err := svc.Preview(ctx, created.ID, nil)
		require.NoError(t, err)
		require.Len(t, layout.Rooms, 1)
		assert.Equal(t, 155520.0, layout.GrandTotal)
	})

	t.Run("html rendering", func(t *testing.T) {
		html, err := svc.PrintHTML(ctx, created.ID, nil)
		require.NoError(t, err)
		assert.Contains(t, html, "КОМЕРЦІЙНА ПРОПОЗИЦІЯ")
		assert.Contains(t, html, "ТОВ Альфа")
	})
}
