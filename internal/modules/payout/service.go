package payout

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"trainerhub/internal/database"
	"trainerhub/internal/domain"
	"trainerhub/internal/ledger"
	"trainerhub/internal/repository"
)

type Service struct {
	payouts  PayoutRepository
	trainers TrainerLookup
	settings SettingsReader
	now      func() time.Time
}

func NewService(payouts PayoutRepository, trainers TrainerLookup, settings SettingsReader) *Service {
	return &Service{
		payouts:  payouts,
		trainers: trainers,
		settings: settings,
		now:      func() time.Time { return time.Now().UTC() },
	}
}

func (s *Service) trainerID(ctx context.Context, userID int64) (int64, error) {
	t, err := s.trainers.GetByUserID(ctx, userID)
	if err != nil {
		if database.IsNotFound(err) {
			return 0, ErrNoTrainerProfile
		}
		return 0, err
	}
	return t.ID, nil
}

// Earnings summarizes every payout of the calling trainer.
func (s *Service) Earnings(ctx context.Context, userID int64) (ledger.Summary, error) {
	id, err := s.trainerID(ctx, userID)
	if err != nil {
		return ledger.Summary{}, err
	}
	rows, err := s.payouts.AllForTrainer(ctx, id)
	if err != nil {
		return ledger.Summary{}, err
	}
	return ledger.Summarize(rows), nil
}

func (s *Service) ListPayouts(ctx context.Context, userID int64, status string, page, limit int) ([]domain.TrainerPayout, int64, error) {
	id, err := s.trainerID(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	f := repository.PayoutFilter{TrainerID: id, Status: domain.PayoutStatus(status), Page: repository.NewPage(page, limit)}
	return s.payouts.List(ctx, f)
}

// groupByTrainer sums pending payouts per trainer, ordered by trainer id.
func groupByTrainer(rows []domain.TrainerPayout) []TrainerPending {
	byTrainer := map[int64][]domain.TrainerPayout{}
	for _, p := range rows {
		byTrainer[p.TrainerID] = append(byTrainer[p.TrainerID], p)
	}

	out := make([]TrainerPending, 0, len(byTrainer))
	for trainerID, ps := range byTrainer {
		g := TrainerPending{TrainerID: trainerID, Count: len(ps), TotalNet: ledger.SumNet(ps)}
		for _, p := range ps {
			g.PayoutIDs = append(g.PayoutIDs, p.ID)
		}
		out = append(out, g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TrainerID < out[j].TrainerID })
	return out
}

// ListPending groups pending payouts per trainer, keeping groups whose total
// reaches minAmount.
func (s *Service) ListPending(ctx context.Context, minAmount float64) ([]TrainerPending, error) {
	if minAmount < 0 {
		return nil, ErrValidation
	}
	rows, err := s.payouts.Pending(ctx, nil)
	if err != nil {
		return nil, err
	}
	groups := groupByTrainer(rows)
	out := groups[:0]
	for _, g := range groups {
		if ledger.ToCents(g.TotalNet) >= ledger.ToCents(minAmount) {
			out = append(out, g)
		}
	}
	return out, nil
}

// CreateBatch moves pending payouts into a new open batch. With explicit ids
// every id must be pending and every trainer involved must reach the minimum
// payout amount; without ids, trainers below the minimum are skipped.
func (s *Service) CreateBatch(ctx context.Context, adminID int64, payoutIDs []int64) (*domain.PayoutBatch, error) {
	ids := dedupe(payoutIDs)
	rows, err := s.payouts.Pending(ctx, ids)
	if err != nil {
		return nil, err
	}
	if len(ids) > 0 && len(rows) != len(ids) {
		return nil, ErrPayoutNotPending
	}

	cfg, err := s.settings.Current(ctx)
	if err != nil {
		return nil, err
	}
	minCents := ledger.ToCents(cfg.MinPayoutAmount)

	var chosen []domain.TrainerPayout
	var chosenIDs []int64
	for _, g := range groupByTrainer(rows) {
		if ledger.ToCents(g.TotalNet) < minCents {
			if len(ids) > 0 {
				return nil, ErrBelowMinimum
			}
			continue
		}
		chosenIDs = append(chosenIDs, g.PayoutIDs...)
	}
	if len(chosenIDs) == 0 {
		return nil, ErrNothingToBatch
	}
	picked := make(map[int64]bool, len(chosenIDs))
	for _, id := range chosenIDs {
		picked[id] = true
	}
	for _, p := range rows {
		if picked[p.ID] {
			chosen = append(chosen, p)
		}
	}

	batch := &domain.PayoutBatch{
		CreatedBy:   adminID,
		PayoutCount: len(chosen),
		TotalNet:    ledger.SumNet(chosen),
		Status:      domain.BatchOpen,
	}
	if err := s.payouts.CreateBatch(ctx, batch, chosenIDs); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrPayoutNotPending
		}
		return nil, err
	}
	return batch, nil
}

func (s *Service) MarkBatchPaid(ctx context.Context, batchID int64, reference string) (*domain.PayoutBatch, error) {
	reference = strings.TrimSpace(reference)
	if reference == "" {
		return nil, ErrValidation
	}
	b, err := s.GetBatch(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if b.Status == domain.BatchPaid {
		return nil, ErrBatchAlreadyPaid
	}
	if err := s.payouts.MarkBatchPaid(ctx, batchID, reference, s.now()); err != nil {
		if errors.Is(err, repository.ErrStale) {
			return nil, ErrBatchAlreadyPaid
		}
		return nil, err
	}
	return s.GetBatch(ctx, batchID)
}

func (s *Service) ListBatches(ctx context.Context, page, limit int) ([]domain.PayoutBatch, int64, error) {
	return s.payouts.ListBatches(ctx, repository.NewPage(page, limit))
}

func (s *Service) GetBatch(ctx context.Context, id int64) (*domain.PayoutBatch, error) {
	b, err := s.payouts.GetBatch(ctx, id)
	if err != nil {
		if database.IsNotFound(err) {
			return nil, ErrBatchNotFound
		}
		return nil, err
	}
	return b, nil
}

func dedupe(ids []int64) []int64 {
	if len(ids) == 0 {
		return nil
	}
	seen := make(map[int64]bool, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if id > 0 && !seen[id] {
			seen[id] = true
			out = append(out, id)
		}
	}
	return out
}
