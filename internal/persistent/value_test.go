package persistent_test

import (
	"context"
	"errors"
	"testing"

	infraRepo "shoppingcart/internal/infra/repository"
	"shoppingcart/internal/persistent"
	repo "shoppingcart/internal/repository"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// =====================
// KVStore モック
// =====================

type KVStoreMock struct{ mock.Mock }

func (m *KVStoreMock) GetItem(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *KVStoreMock) SetItem(ctx context.Context, key string, value string) error {
	args := m.Called(ctx, key, value)
	return args.Error(0)
}

func (m *KVStoreMock) RemoveItem(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *KVStoreMock) Ping(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

var _ repo.KVStore = (*KVStoreMock)(nil)

type settings struct {
	Theme string `json:"theme"`
	Size  int    `json:"size"`
}

func TestNew_UsesStoredValue(t *testing.T) {
	ctx := context.Background()
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "prefs").Return(`{"theme":"dark","size":3}`, nil)

	called := false
	v, err := persistent.New(ctx, store, "prefs", persistent.Lazy(func() settings {
		called = true
		return settings{Theme: "light"}
	}))
	require.NoError(t, err)

	assert.Equal(t, settings{Theme: "dark", Size: 3}, v.Get())
	assert.False(t, called, "factory must not run when a stored value exists")
	store.AssertNotCalled(t, "SetItem", mock.Anything, mock.Anything, mock.Anything)
}

func TestNew_MissingKeyUsesLiteral(t *testing.T) {
	ctx := context.Background()
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "prefs").Return("", repo.ErrNotFound)

	v, err := persistent.New(ctx, store, "prefs", persistent.Literal(settings{Theme: "light", Size: 1}))
	require.NoError(t, err)

	assert.Equal(t, settings{Theme: "light", Size: 1}, v.Get())
	assert.Equal(t, "prefs", v.Key())
}

func TestNew_MissingKeyInvokesFactoryOnce(t *testing.T) {
	ctx := context.Background()
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "counter").Return("", repo.ErrNotFound)

	calls := 0
	v, err := persistent.New(ctx, store, "counter", persistent.Lazy(func() int {
		calls++
		return 42
	}))
	require.NoError(t, err)

	assert.Equal(t, 42, v.Get())
	assert.Equal(t, 42, v.Get())
	assert.Equal(t, 1, calls)
}

func TestNew_CorruptValueFallsBackToInitial(t *testing.T) {
	ctx := context.Background()
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "prefs").Return(`{not json`, nil)

	v, err := persistent.New(ctx, store, "prefs", persistent.Literal(settings{Theme: "light"}))
	require.NoError(t, err)

	assert.Equal(t, settings{Theme: "light"}, v.Get())
}

// ログには key を1回だけ付ける（呼び出し側で付けなくてよい）
func TestNew_LogsCarryKey(t *testing.T) {
	ctx := context.Background()
	log, hook := test.NewNullLogger()
	log.SetLevel(logrus.DebugLevel)
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "prefs").Return(`{not json`, nil)
	store.On("SetItem", ctx, "prefs", `{"theme":"dark","size":0}`).Return(nil)

	v, err := persistent.New(ctx, store, "prefs", persistent.Literal(settings{Theme: "light"}),
		persistent.WithLogger(logrus.NewEntry(log).WithField("component", "prefs")))
	require.NoError(t, err)
	require.NoError(t, v.Set(ctx, settings{Theme: "dark"}))

	entries := hook.AllEntries()
	require.Len(t, entries, 2)
	assert.Equal(t, logrus.WarnLevel, entries[0].Level)
	assert.Equal(t, logrus.DebugLevel, entries[1].Level)
	for _, e := range entries {
		assert.Equal(t, "prefs", e.Data["key"])
		assert.Equal(t, "prefs", e.Data["component"])
	}
}

func TestNew_ReadErrorIsReturned(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("connection refused")
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "prefs").Return("", boom)

	v, err := persistent.New(ctx, store, "prefs", persistent.Literal(settings{}))

	assert.Nil(t, v)
	assert.ErrorIs(t, err, boom)
}

func TestSet_WritesOncePerUpdate(t *testing.T) {
	ctx := context.Background()
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "n").Return("", repo.ErrNotFound)
	store.On("SetItem", ctx, "n", "7").Return(nil).Once()
	store.On("SetItem", ctx, "n", "8").Return(nil).Once()

	v, err := persistent.New(ctx, store, "n", persistent.Literal(0))
	require.NoError(t, err)

	require.NoError(t, v.Set(ctx, 7))
	assert.Equal(t, 7, v.Get())

	require.NoError(t, v.Update(ctx, func(cur int) int { return cur + 1 }))
	assert.Equal(t, 8, v.Get())

	store.AssertExpectations(t)
	store.AssertNumberOfCalls(t, "SetItem", 2)
}

func TestSet_WriteFailureKeepsPreviousValue(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk full")
	store := new(KVStoreMock)
	store.On("GetItem", ctx, "n").Return("5", nil)
	store.On("SetItem", ctx, "n", "6").Return(boom)

	v, err := persistent.New(ctx, store, "n", persistent.Literal(0))
	require.NoError(t, err)

	err = v.Update(ctx, func(cur int) int { return cur + 1 })

	assert.ErrorIs(t, err, boom)
	assert.Equal(t, 5, v.Get())
}

func TestUpdate_SeesLatestValue(t *testing.T) {
	ctx := context.Background()
	store := infraRepo.NewKVMemoryRepository()

	v, err := persistent.New(ctx, store, "n", persistent.Literal(0))
	require.NoError(t, err)

	for i := 0; i < 10; i++ {
		require.NoError(t, v.Update(ctx, func(cur int) int { return cur + 1 }))
	}

	assert.Equal(t, 10, v.Get())
	raw, err := store.GetItem(ctx, "n")
	require.NoError(t, err)
	assert.Equal(t, "10", raw)
}

func TestValue_RestoresAcrossInstances(t *testing.T) {
	ctx := context.Background()
	store := infraRepo.NewKVMemoryRepository()

	first, err := persistent.New(ctx, store, "prefs", persistent.Literal(settings{}))
	require.NoError(t, err)
	require.NoError(t, first.Set(ctx, settings{Theme: "dark", Size: 2}))

	second, err := persistent.New(ctx, store, "prefs", persistent.Literal(settings{}))
	require.NoError(t, err)

	assert.Equal(t, settings{Theme: "dark", Size: 2}, second.Get())
}
