package pantry_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/infrastructure/storage"
	"fridge-chef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var today = time.Date(2026, 10, 19, 21, 30, 0, 0, time.Local)

func day(offset int) *time.Time {
	d := time.Date(2026, 10, 19+offset, 0, 0, 0, 0, time.UTC)
	return &d
}

func newService() *pantry.Service {
	return pantry.NewService(storage.NewMemoryStore()).WithClock(func() time.Time { return today })
}

type failingStore struct {
	storage.MemoryStore
}

func (f *failingStore) LoadPantry(context.Context) ([]pantry.Item, error) {
	return nil, errors.New("disk gone")
}

func TestAdd_OverwritesSameName(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Add(ctx, pantry.AddRequest{Name: "Spam", Expiry: day(10)})
	require.NoError(t, err)
	_, err = svc.Add(ctx, pantry.AddRequest{Name: "두부", Expiry: day(2)})
	require.NoError(t, err)
	_, err = svc.Add(ctx, pantry.AddRequest{Name: "  spam ", Expiry: day(30), Storage: "냉동"})
	require.NoError(t, err)

	items, err := svc.Items(ctx)
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, "spam", items[0].Name)
	assert.Equal(t, pantry.Freezer, items[0].Storage)
	assert.Equal(t, 30, pantry.DaysBetween(today, *items[0].Expiry))
}

func TestAdd_SeasoningHasNoExpiry(t *testing.T) {
	svc := newService()

	item, err := svc.Add(context.Background(), pantry.AddRequest{Name: "간장", Expiry: day(5), Seasoning: true})
	require.NoError(t, err)
	assert.Nil(t, item.Expiry)
}

func TestAdd_Validation(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Add(ctx, pantry.AddRequest{Name: "   "})
	assert.True(t, common.IsValidationError(err))

	_, err = svc.Add(ctx, pantry.AddRequest{Name: "두부", Storage: "선반"})
	assert.True(t, common.IsValidationError(err))
}

func TestList_ExpiryStatus(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	for _, req := range []pantry.AddRequest{
		{Name: "간장", Seasoning: true},
		{Name: "우유", Expiry: day(-1)},
		{Name: "두부", Expiry: day(0)},
		{Name: "콩나물", Expiry: day(2)},
		{Name: "김치", Expiry: day(3)},
	} {
		_, err := svc.Add(ctx, req)
		require.NoError(t, err)
	}

	views, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, views, 5)

	want := []pantry.Status{
		pantry.StatusIndefinite,
		pantry.StatusExpired,
		pantry.StatusUrgent,
		pantry.StatusUrgent,
		pantry.StatusFresh,
	}
	for i, v := range views {
		assert.Equal(t, want[i], v.Status, v.Name)
	}
	assert.Nil(t, views[0].DaysLeft)
	assert.Equal(t, -1, *views[1].DaysLeft)
	assert.Equal(t, 3, *views[4].DaysLeft)
}

func TestRemove(t *testing.T) {
	svc := newService()
	ctx := context.Background()

	_, err := svc.Add(ctx, pantry.AddRequest{Name: "두부"})
	require.NoError(t, err)

	require.NoError(t, svc.Remove(ctx, " 두부"))
	names, err := svc.Names(ctx)
	require.NoError(t, err)
	assert.Empty(t, names)

	err = svc.Remove(ctx, "두부")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}

func TestLoadFailureIsDataUnavailable(t *testing.T) {
	svc := pantry.NewService(&failingStore{})

	_, err := svc.Names(context.Background())
	assert.True(t, errors.Is(err, common.ErrDataUnavailable))
}

func TestParseStorage(t *testing.T) {
	for in, want := range map[string]pantry.Storage{
		"":        pantry.Fridge,
		"FRIDGE":  pantry.Fridge,
		"냉장":      pantry.Fridge,
		"freezer": pantry.Freezer,
		"냉동":      pantry.Freezer,
	} {
		got, err := pantry.ParseStorage(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := pantry.ParseStorage("pantry")
	assert.Error(t, err)
}

func TestParseDate(t *testing.T) {
	d, err := pantry.ParseDate("2026-10-25")
	require.NoError(t, err)
	assert.Equal(t, 6, pantry.DaysBetween(today, *d))

	d, err = pantry.ParseDate(" ")
	require.NoError(t, err)
	assert.Nil(t, d)

	_, err = pantry.ParseDate("25/10/2026")
	assert.True(t, common.IsValidationError(err))
}
