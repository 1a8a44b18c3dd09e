package recommend_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fridge-chef/internal/core/matching"
	"fridge-chef/internal/core/pantry"
	"fridge-chef/internal/core/recipe"
	"fridge-chef/internal/core/recommend"
	"fridge-chef/internal/core/session"
	"fridge-chef/internal/infrastructure/storage"
	"fridge-chef/internal/pkg/common"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type fixture struct {
	svc    *recommend.Service
	pantry *pantry.Service
	book   *recipe.BookService
}

func newFixture(t *testing.T, narrator *recommend.Narrator) fixture {
	t.Helper()
	store := storage.NewMemoryStore()
	f := fixture{
		pantry: pantry.NewService(store),
		book:   recipe.NewBookService(store),
	}
	f.svc = recommend.NewService(session.NewMemoryStore(time.Hour), f.pantry, f.book, matching.DefaultPolicy(), narrator)
	return f
}

func (f fixture) seed(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	for _, name := range fridge {
		_, err := f.pantry.Add(ctx, pantry.AddRequest{Name: name})
		require.NoError(t, err)
	}
	for _, e := range book {
		_, err := f.book.Add(ctx, e)
		require.NoError(t, err)
	}
}

func TestService_NextPerSession(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)
	ctx := context.Background()

	first, err := f.svc.Next(ctx, "alice", false)
	require.NoError(t, err)
	assert.Equal(t, "김치찌개", first.Recipe.Name)
	assert.Nil(t, first.Narration)

	second, err := f.svc.Next(ctx, "alice", false)
	require.NoError(t, err)
	assert.Equal(t, "콩나물국", second.Recipe.Name)

	other, err := f.svc.Next(ctx, "bob", false)
	require.NoError(t, err)
	assert.Equal(t, "김치찌개", other.Recipe.Name)

	last, err := f.svc.Last(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, last)
	assert.Equal(t, "콩나물국", last.Recipe.Name)

	require.NoError(t, f.svc.Reset(ctx, "alice"))
	again, err := f.svc.Next(ctx, "alice", false)
	require.NoError(t, err)
	assert.Equal(t, "김치찌개", again.Recipe.Name)
	assert.False(t, again.Reset)
}

func TestService_NextWithNarration(t *testing.T) {
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, "narration", mock.Anything).Return("", errors.New("timeout"))
	f := newFixture(t, recommend.NewNarrator(gen, time.Second, ""))
	f.seed(t)

	res, err := f.svc.Next(context.Background(), "alice", true)
	require.NoError(t, err)

	require.NotNil(t, res.Narration)
	assert.Equal(t, "김치찌개", res.Narration.Name)
	assert.Equal(t, recommend.FallbackReason, res.Narration.Reason)
	assert.Equal(t, res.MissingText, res.Narration.Missing)
}

func TestService_NarrationDoesNotBlockOtherSessions(t *testing.T) {
	called := make(chan struct{})
	release := make(chan struct{})
	gen := new(mockGenerator)
	gen.On("Generate", mock.Anything, "narration", mock.Anything).
		Run(func(mock.Arguments) {
			close(called)
			<-release
		}).
		Return(`{"reason": "김치가 있으니 딱이에요"}`, nil).Once()
	f := newFixture(t, recommend.NewNarrator(gen, 5*time.Second, ""))
	f.seed(t)
	ctx := context.Background()

	done := make(chan *recommend.Result, 1)
	go func() {
		res, err := f.svc.Next(ctx, "alice", true)
		assert.NoError(t, err)
		done <- res
	}()
	<-called

	// alice 的推薦理由仍在等待時，其他工作階段照常推薦與重置
	other, err := f.svc.Next(ctx, "bob", false)
	require.NoError(t, err)
	assert.Equal(t, "김치찌개", other.Recipe.Name)
	require.NoError(t, f.svc.Reset(ctx, "bob"))

	close(release)
	res := <-done
	require.NotNil(t, res)
	require.NotNil(t, res.Narration)
	assert.Equal(t, "김치가 있으니 딱이에요", res.Narration.Reason)
}

func TestService_NextDataUnavailable(t *testing.T) {
	f := newFixture(t, nil)
	ctx := context.Background()

	_, err := f.svc.Next(ctx, "alice", false)
	assert.Equal(t, common.ErrEmptyRecipeBook, err)

	_, err = f.book.Add(ctx, book[0])
	require.NoError(t, err)
	_, err = f.svc.Next(ctx, "alice", false)
	assert.Equal(t, common.ErrEmptyPantry, err)
}

func TestService_Cook(t *testing.T) {
	f := newFixture(t, nil)
	f.seed(t)

	res, err := f.svc.Cook(context.Background(), "김치찌개")
	require.NoError(t, err)
	assert.Equal(t, "김치찌개", res.Recipe.Name)
	assert.ElementsMatch(t, []string{"김치", "삼겹살"}, res.Used)

	res, err = f.svc.Cook(context.Background(), "계란말이")
	require.NoError(t, err)
	assert.NotNil(t, res.Used)
	assert.Empty(t, res.Used)

	_, err = f.svc.Cook(context.Background(), "없는 요리")
	assert.True(t, errors.Is(err, common.ErrNotFound))
}
