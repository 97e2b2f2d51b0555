package out

import (
	"context"
	"sync"

	"diagnocare/internal/modules/flow/domain"
	flowout "diagnocare/internal/modules/flow/port/out"
	predictiondto "diagnocare/internal/modules/prediction/dto"
	apperrors "diagnocare/internal/platform/errors"
)

// MemoryFlowStore keeps the flow slots for the lifetime of the process.
type MemoryFlowStore struct {
	mu      sync.Mutex
	last    *predictiondto.PredictionWithResultsOutput
	pending *domain.PendingCheckIn
}

var _ flowout.FlowStore = (*MemoryFlowStore)(nil)

func NewMemoryFlowStore() *MemoryFlowStore {
	return &MemoryFlowStore{}
}

func (s *MemoryFlowStore) SaveLastPrediction(_ context.Context, last predictiondto.PredictionWithResultsOutput) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := last
	v.MLResults = append([]predictiondto.MLPredictionOutput{}, last.MLResults...)
	s.last = &v
	return nil
}

func (s *MemoryFlowStore) LoadLastPrediction(context.Context) (predictiondto.PredictionWithResultsOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.last == nil {
		return predictiondto.PredictionWithResultsOutput{}, apperrors.ErrNoLastPrediction
	}
	v := *s.last
	v.MLResults = append([]predictiondto.MLPredictionOutput{}, s.last.MLResults...)
	return v, nil
}

func (s *MemoryFlowStore) ClearLastPrediction(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.last = nil
	return nil
}

func (s *MemoryFlowStore) SavePendingCheckIn(_ context.Context, pending domain.PendingCheckIn) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	v := pending
	s.pending = &v
	return nil
}

func (s *MemoryFlowStore) LoadPendingCheckIn(context.Context) (domain.PendingCheckIn, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.pending == nil {
		return domain.PendingCheckIn{}, apperrors.ErrNoPendingCheckIn
	}
	return *s.pending, nil
}

func (s *MemoryFlowStore) ClearPendingCheckIn(context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.pending = nil
	return nil
}
