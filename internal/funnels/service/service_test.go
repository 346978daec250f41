package service

import (
	"context"
	"errors"
	"sort"
	"testing"

	"realty_portal_backend/internal/funnels/repository"
	"realty_portal_backend/internal/funnels/transport"
	"realty_portal_backend/platform/apperr"
	"realty_portal_backend/platform/logger"
)

type fakeRepo struct {
	funnels      map[int64]repository.SalesFunnel
	stages       map[int64]repository.FunnelStage
	nextFunnelID int64
	nextStageID  int64

	applyOrderErr error
	applyOrderLog [][]repository.StagePlacement
}

func newFakeRepo() *fakeRepo {
	return &fakeRepo{
		funnels:      make(map[int64]repository.SalesFunnel),
		stages:       make(map[int64]repository.FunnelStage),
		nextFunnelID: 1,
		nextStageID:  1,
	}
}

func (f *fakeRepo) GetFunnel(_ context.Context, id int64) (repository.SalesFunnel, error) {
	funnel, ok := f.funnels[id]
	if !ok {
		return repository.SalesFunnel{}, apperr.NotFound("sales funnel not found")
	}
	return funnel, nil
}

func (f *fakeRepo) ListFunnels(_ context.Context) ([]repository.SalesFunnel, error) {
	funnels := make([]repository.SalesFunnel, 0, len(f.funnels))
	for _, funnel := range f.funnels {
		funnels = append(funnels, funnel)
	}
	sort.Slice(funnels, func(i, j int) bool { return funnels[i].ID < funnels[j].ID })
	return funnels, nil
}

func (f *fakeRepo) CountFunnels(_ context.Context) (int, error) {
	return len(f.funnels), nil
}

func (f *fakeRepo) StageCounts(_ context.Context) (map[int64]int, error) {
	counts := make(map[int64]int)
	for _, stage := range f.stages {
		counts[stage.FunnelID]++
	}
	return counts, nil
}

func (f *fakeRepo) CreateFunnel(_ context.Context, params repository.CreateFunnelParams) (repository.SalesFunnel, error) {
	if params.IsDefault {
		for id, funnel := range f.funnels {
			funnel.IsDefault = false
			f.funnels[id] = funnel
		}
	}
	funnel := repository.SalesFunnel{
		ID:          f.nextFunnelID,
		Name:        params.Name,
		Description: params.Description,
		IsDefault:   params.IsDefault,
	}
	f.funnels[funnel.ID] = funnel
	f.nextFunnelID++
	return funnel, nil
}

func (f *fakeRepo) UpdateFunnel(_ context.Context, params repository.UpdateFunnelParams) (repository.SalesFunnel, error) {
	funnel, ok := f.funnels[params.ID]
	if !ok {
		return repository.SalesFunnel{}, apperr.NotFound("sales funnel not found")
	}
	if params.Name != nil {
		funnel.Name = *params.Name
	}
	if params.Description != nil {
		funnel.Description = params.Description
	}
	f.funnels[params.ID] = funnel
	return funnel, nil
}

func (f *fakeRepo) SetDefaultFunnel(_ context.Context, id int64) error {
	if _, ok := f.funnels[id]; !ok {
		return apperr.NotFound("sales funnel not found")
	}
	for fid, funnel := range f.funnels {
		funnel.IsDefault = fid == id
		f.funnels[fid] = funnel
	}
	return nil
}

func (f *fakeRepo) DeleteFunnel(_ context.Context, id int64) error {
	if _, ok := f.funnels[id]; !ok {
		return apperr.NotFound("sales funnel not found")
	}
	delete(f.funnels, id)
	for sid, stage := range f.stages {
		if stage.FunnelID == id {
			delete(f.stages, sid)
		}
	}
	return nil
}

func (f *fakeRepo) GetStage(_ context.Context, id int64) (repository.FunnelStage, error) {
	stage, ok := f.stages[id]
	if !ok {
		return repository.FunnelStage{}, apperr.NotFound("funnel stage not found")
	}
	return stage, nil
}

func (f *fakeRepo) ListStagesByFunnel(_ context.Context, funnelID int64) ([]repository.FunnelStage, error) {
	stages := make([]repository.FunnelStage, 0)
	for _, stage := range f.stages {
		if stage.FunnelID == funnelID {
			stages = append(stages, stage)
		}
	}
	sort.Slice(stages, func(i, j int) bool {
		if stages[i].Position != stages[j].Position {
			return stages[i].Position < stages[j].Position
		}
		return stages[i].ID < stages[j].ID
	})
	return stages, nil
}

func (f *fakeRepo) CreateStage(_ context.Context, params repository.CreateStageParams) (repository.FunnelStage, error) {
	stage := repository.FunnelStage{
		ID:          f.nextStageID,
		FunnelID:    params.FunnelID,
		Name:        params.Name,
		Description: params.Description,
		Color:       params.Color,
		Position:    params.Position,
	}
	f.stages[stage.ID] = stage
	f.nextStageID++
	return stage, nil
}

func (f *fakeRepo) UpdateStage(_ context.Context, params repository.UpdateStageParams) (repository.FunnelStage, error) {
	stage, ok := f.stages[params.ID]
	if !ok {
		return repository.FunnelStage{}, apperr.NotFound("funnel stage not found")
	}
	if params.Name != nil {
		stage.Name = *params.Name
	}
	if params.Description != nil {
		stage.Description = params.Description
	}
	if params.Color != nil {
		stage.Color = *params.Color
	}
	f.stages[params.ID] = stage
	return stage, nil
}

func (f *fakeRepo) DeleteStage(_ context.Context, id int64) error {
	if _, ok := f.stages[id]; !ok {
		return apperr.NotFound("funnel stage not found")
	}
	delete(f.stages, id)
	return nil
}

func (f *fakeRepo) ApplyStageOrder(_ context.Context, funnelID int64, placements []repository.StagePlacement) error {
	f.applyOrderLog = append(f.applyOrderLog, placements)
	if f.applyOrderErr != nil {
		return f.applyOrderErr
	}
	for _, placement := range placements {
		stage, ok := f.stages[placement.ID]
		if !ok || stage.FunnelID != funnelID {
			return apperr.NotFound("funnel stage not found")
		}
	}
	for _, placement := range placements {
		stage := f.stages[placement.ID]
		stage.Position = placement.Position
		f.stages[placement.ID] = stage
	}
	return nil
}

var _ repository.Repository = (*fakeRepo)(nil)

func newTestService(repo repository.Repository) *Service {
	return New(repo, logger.New("test"))
}

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestCreateFirstFunnelBecomesDefault(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)

	resp, err := svc.Create(context.Background(), transport.CreateFunnelRequest{Name: "Sales"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.IsDefault {
		t.Error("first funnel should be default")
	}
}

func TestCreateFunnelDefaultMovesFlag(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, err := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	second, err := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Rentals", IsDefault: boolPtr(true)})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !second.IsDefault {
		t.Error("second funnel should be default")
	}
	if repo.funnels[first.ID].IsDefault {
		t.Error("previous default flag should be cleared")
	}

	defaults := 0
	for _, funnel := range repo.funnels {
		if funnel.IsDefault {
			defaults++
		}
	}
	if defaults != 1 {
		t.Errorf("expected exactly 1 default funnel, got %d", defaults)
	}
}

func TestCreateFunnelRequiresName(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.Create(context.Background(), transport.CreateFunnelRequest{Name: "   "})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestSetDefaultIsIdempotent(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	first, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	second, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Rentals"})

	if err := svc.SetDefault(ctx, second.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := svc.SetDefault(ctx, second.ID); err != nil {
		t.Fatalf("second set-default should succeed: %v", err)
	}

	if repo.funnels[first.ID].IsDefault || !repo.funnels[second.ID].IsDefault {
		t.Error("default flag should stay on the second funnel")
	}
}

func TestSetDefaultUnknownFunnel(t *testing.T) {
	svc := newTestService(newFakeRepo())

	err := svc.SetDefault(context.Background(), 99)
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}

func TestDeleteDefaultFunnelBlocked(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})

	err := svc.Delete(ctx, funnel.ID)
	if !apperr.Is(err, apperr.KindConflict) {
		t.Fatalf("expected conflict, got %v", err)
	}
	if _, ok := repo.funnels[funnel.ID]; !ok {
		t.Error("funnel should still exist")
	}
}

func TestDeleteFunnelRemovesStages(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	_, _ = svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	other, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Rentals"})
	_, _ = svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: other.ID, Name: "New"})
	_, _ = svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: other.ID, Name: "Contacted"})

	if err := svc.Delete(ctx, other.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	stages, _ := repo.ListStagesByFunnel(ctx, other.ID)
	if len(stages) != 0 {
		t.Errorf("expected 0 stages after funnel delete, got %d", len(stages))
	}
}

func TestCreateStageAppendsAfterMaxPosition(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})

	first, err := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "New"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if first.Position != 1 {
		t.Errorf("first stage position = %d, want 1", first.Position)
	}

	second, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "Contacted"})
	if second.Position != 2 {
		t.Errorf("second stage position = %d, want 2", second.Position)
	}

	// Deleting the middle stage leaves a gap; the next stage still lands
	// after the current maximum.
	if err := svc.DeleteStage(ctx, first.ID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	third, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "Visit"})
	if third.Position != 3 {
		t.Errorf("third stage position = %d, want 3", third.Position)
	}
}

func TestCreateStageUnknownFunnel(t *testing.T) {
	svc := newTestService(newFakeRepo())

	_, err := svc.CreateStage(context.Background(), transport.CreateStageRequest{FunnelID: 42, Name: "New"})
	if !apperr.Is(err, apperr.KindValidation) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestCreateStageDefaultColor(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})

	stage, err := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "New"})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if stage.Color != defaultStageColor {
		t.Errorf("color = %q, want %q", stage.Color, defaultStageColor)
	}

	colored, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "Hot", Color: strPtr("#FF0000")})
	if colored.Color != "#FF0000" {
		t.Errorf("color = %q, want #FF0000", colored.Color)
	}
}

func TestReorderRewritesPositions(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	a, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "A"})
	b, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "B"})
	c, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "C"})

	reordered, err := svc.Reorder(ctx, funnel.ID, []int64{c.ID, a.ID, b.ID})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	wantIDs := []int64{c.ID, a.ID, b.ID}
	for i, stage := range reordered {
		if stage.ID != wantIDs[i] {
			t.Errorf("reordered[%d].ID = %d, want %d", i, stage.ID, wantIDs[i])
		}
		if stage.Position != i {
			t.Errorf("reordered[%d].Position = %d, want %d", i, stage.Position, i)
		}
	}

	stored, _ := repo.ListStagesByFunnel(ctx, funnel.ID)
	gotIDs := make([]int64, len(stored))
	for i, stage := range stored {
		gotIDs[i] = stage.ID
	}
	for i := range wantIDs {
		if gotIDs[i] != wantIDs[i] {
			t.Fatalf("stored order = %v, want %v", gotIDs, wantIDs)
		}
	}
}

func TestReorderRejectsBadPermutations(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	a, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "A"})
	b, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "B"})

	cases := []struct {
		name     string
		stageIDs []int64
	}{
		{"missing stage", []int64{a.ID}},
		{"unknown stage", []int64{a.ID, 999}},
		{"duplicate stage", []int64{a.ID, a.ID}},
		{"too many stages", []int64{a.ID, b.ID, 999}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Reorder(ctx, funnel.ID, tc.stageIDs)
			if !apperr.Is(err, apperr.KindValidation) {
				t.Fatalf("expected validation error, got %v", err)
			}
		})
	}

	if len(repo.applyOrderLog) != 0 {
		t.Errorf("no writes should be attempted for invalid reorders, got %d", len(repo.applyOrderLog))
	}
}

func TestReorderFailureLeavesOrderUnchanged(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	a, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "A"})
	b, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "B"})

	repo.applyOrderErr = errors.New("write conflict")

	_, err := svc.Reorder(ctx, funnel.ID, []int64{b.ID, a.ID})
	if err == nil {
		t.Fatal("expected error")
	}

	stored, _ := repo.ListStagesByFunnel(ctx, funnel.ID)
	if stored[0].ID != a.ID || stored[1].ID != b.ID {
		t.Error("stage order should be unchanged after a failed reorder")
	}
}

func TestUpdateFunnelReturnsStageCount(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	_, _ = svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "New"})
	_, _ = svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "Contacted"})

	updated, err := svc.Update(ctx, funnel.ID, transport.UpdateFunnelRequest{Name: strPtr("Buyers")})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if updated.Name != "Buyers" {
		t.Errorf("name = %q, want Buyers", updated.Name)
	}
	if updated.StageCount != 2 {
		t.Errorf("stageCount = %d, want 2", updated.StageCount)
	}
}

func TestDefaultFunnelID(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	if _, err := svc.DefaultFunnelID(ctx); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found with no funnels, got %v", err)
	}

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})

	id, err := svc.DefaultFunnelID(ctx)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if id != funnel.ID {
		t.Errorf("default funnel id = %d, want %d", id, funnel.ID)
	}
}

func TestGetStageRef(t *testing.T) {
	repo := newFakeRepo()
	svc := newTestService(repo)
	ctx := context.Background()

	funnel, _ := svc.Create(ctx, transport.CreateFunnelRequest{Name: "Sales"})
	stage, _ := svc.CreateStage(ctx, transport.CreateStageRequest{FunnelID: funnel.ID, Name: "New"})

	ref, err := svc.GetStageRef(ctx, stage.ID)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ref.FunnelID != funnel.ID {
		t.Errorf("ref.FunnelID = %d, want %d", ref.FunnelID, funnel.ID)
	}

	if _, err := svc.GetStageRef(ctx, 999); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found, got %v", err)
	}
}
