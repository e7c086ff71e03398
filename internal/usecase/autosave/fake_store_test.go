package autosave

import (
	"context"
	"sync"

	"github.com/simaogato/retireplan-backend/internal/domain"
)

type fakeStore struct {
	mu       sync.Mutex
	snapshot domain.PlanSnapshot
	loadErr  error
	saveErr  error
	saves    []domain.SaveRequest
	loads    int
}

func (f *fakeStore) Load(_ context.Context, _ domain.PlanKey) (domain.PlanSnapshot, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.loads++
	if f.loadErr != nil {
		return domain.DefaultSnapshot(), f.loadErr
	}
	return f.snapshot.Clone(), nil
}

func (f *fakeStore) Save(_ context.Context, _ domain.PlanKey, req domain.SaveRequest) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saves = append(f.saves, req)
	return nil
}

func (f *fakeStore) setSaveErr(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.saveErr = err
}

func (f *fakeStore) saveCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.saves)
}

func (f *fakeStore) lastSave() domain.SaveRequest {
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.saves) == 0 {
		return domain.SaveRequest{}
	}
	return f.saves[len(f.saves)-1]
}
