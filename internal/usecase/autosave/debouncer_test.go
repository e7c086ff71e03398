package autosave

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/simaogato/retireplan-backend/internal/domain"
	"github.com/simaogato/retireplan-backend/internal/platform/metrics"
)

func housingWithDown(amount int64) *domain.HousingPlan {
	plan := domain.DefaultHousingPlan()
	plan.DownPayment = decimal.NewFromInt(amount)
	return &plan
}

func TestDebouncer_BurstCollapsesIntoOneSave(t *testing.T) {
	store := &fakeStore{}
	d := NewDebouncer(store, domain.DefaultPlanKey, 30*time.Millisecond, nil, nil)

	for i := int64(1); i <= 5; i++ {
		require.NoError(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(i * 1000)}))
	}

	require.Eventually(t, func() bool { return store.saveCount() == 1 }, time.Second, 5*time.Millisecond)

	// No second write follows the first one
	time.Sleep(60 * time.Millisecond)
	assert.Equal(t, 1, store.saveCount())

	last := store.lastSave()
	require.NotNil(t, last.Housing)
	assert.True(t, last.Housing.DownPayment.Equal(decimal.NewFromInt(5000)))
	assert.False(t, d.Pending())
}

func TestDebouncer_MergesSlots(t *testing.T) {
	store := &fakeStore{}
	d := NewDebouncer(store, domain.DefaultPlanKey, time.Hour, nil, nil)

	ss := domain.DefaultSocialSecurity()
	require.NoError(t, d.Submit(domain.SaveRequest{SocialSecurity: &ss}))
	require.NoError(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(1)}))
	assert.True(t, d.Pending())

	require.NoError(t, d.Flush(context.Background()))

	req := store.lastSave()
	assert.NotNil(t, req.SocialSecurity)
	assert.NotNil(t, req.Housing)
	assert.Nil(t, req.CurrentHome)
	assert.False(t, req.HasAnnuities())
}

func TestDebouncer_FlushWithNothingPending(t *testing.T) {
	store := &fakeStore{}
	d := NewDebouncer(store, domain.DefaultPlanKey, 0, nil, nil)

	require.NoError(t, d.Flush(context.Background()))
	assert.Equal(t, 0, store.saveCount())

	require.NoError(t, d.Submit(domain.SaveRequest{}))
	assert.False(t, d.Pending())
}

func TestDebouncer_FailedFlushKeepsEdit(t *testing.T) {
	store := &fakeStore{saveErr: errors.New("database unavailable")}
	m := metrics.NewNoop()
	d := NewDebouncer(store, domain.DefaultPlanKey, time.Hour, nil, m)

	require.NoError(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(1000)}))
	require.Error(t, d.Flush(context.Background()))
	assert.True(t, d.Pending())
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AutosaveFlushes.WithLabelValues(metrics.ResultFailure)))

	// A newer edit to the same slot wins over the retained one
	require.NoError(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(2000)}))

	store.setSaveErr(nil)
	require.NoError(t, d.Flush(context.Background()))

	last := store.lastSave()
	require.NotNil(t, last.Housing)
	assert.True(t, last.Housing.DownPayment.Equal(decimal.NewFromInt(2000)))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.AutosaveFlushes.WithLabelValues(metrics.ResultSuccess)))
}

func TestDebouncer_CloseFlushesAndRejects(t *testing.T) {
	store := &fakeStore{}
	d := NewDebouncer(store, domain.DefaultPlanKey, time.Hour, nil, nil)

	require.NoError(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(1)}))
	require.NoError(t, d.Close(context.Background()))
	assert.Equal(t, 1, store.saveCount())

	err := d.Submit(domain.SaveRequest{Housing: housingWithDown(2)})
	assert.ErrorIs(t, err, ErrClosed)
}

func TestDebouncer_DiscardDropsPending(t *testing.T) {
	store := &fakeStore{}
	d := NewDebouncer(store, domain.DefaultPlanKey, 10*time.Millisecond, nil, nil)

	assert.False(t, d.Discard())

	d = NewDebouncer(store, domain.DefaultPlanKey, 10*time.Millisecond, nil, nil)
	require.NoError(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(1)}))
	assert.True(t, d.Discard())
	assert.False(t, d.Pending())

	// The stopped timer must not save the dropped edit
	time.Sleep(30 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())

	assert.ErrorIs(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(2)}), ErrClosed)
	require.NoError(t, d.Flush(context.Background()))
	assert.Equal(t, 0, store.saveCount())
}

func TestDebouncer_ZeroDelayWaitsForFlush(t *testing.T) {
	store := &fakeStore{}
	d := NewDebouncer(store, domain.DefaultPlanKey, time.Hour, nil, nil)
	d.delay = 0

	require.NoError(t, d.Submit(domain.SaveRequest{Housing: housingWithDown(1)}))
	time.Sleep(20 * time.Millisecond)
	assert.Equal(t, 0, store.saveCount())

	require.NoError(t, d.Flush(context.Background()))
	assert.Equal(t, 1, store.saveCount())
}
