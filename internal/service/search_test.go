package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/pageza/receitas/backend/internal/logging"
	"github.com/pageza/receitas/backend/internal/model"
	"github.com/pageza/receitas/backend/internal/testhelpers/mocks"
)

func TestResolve(t *testing.T) {
	cases := []struct {
		action Action
		mode   model.SearchMode
		query  string
		ok     bool
	}{
		{Action{Kind: ActionSearch, Query: " Arrabiata "}, model.ModeSearch, "Arrabiata", true},
		{Action{Kind: ActionCategory, Query: "Seafood"}, model.ModeCategory, "Seafood", true},
		{Action{Kind: ActionCategory}, model.ModeRandom, "", true},
		{Action{Kind: ActionCategory, Query: " "}, model.ModeRandom, "", true},
		{Action{Kind: ActionCategory, Query: " Dessert "}, model.ModeCategory, "Dessert", true},
		{Action{Kind: ActionIngredient, Query: " chicken "}, model.ModeIngredient, "chicken", true},
		{Action{Kind: ActionIngredient, Query: "   "}, "", "", false},
		{Action{Kind: ActionRandom, Query: "ignored"}, model.ModeRandom, "", true},
		{Action{Kind: "area", Query: "Italian"}, "", "", false},
	}
	for _, tc := range cases {
		mode, query, ok := Resolve(tc.action)
		assert.Equal(t, tc.mode, mode, "%+v", tc.action)
		assert.Equal(t, tc.query, query, "%+v", tc.action)
		assert.Equal(t, tc.ok, ok, "%+v", tc.action)
	}
}

func TestDispatchCallsSourceOnce(t *testing.T) {
	src := new(mocks.MockRecipeSource)
	src.On("FetchRecipes", mock.Anything, model.ModeCategory, "Beef").
		Return([]model.Recipe{{ID: "1"}}).Once()

	s := NewSearch(src, logging.NewNop())
	got, ok := s.Dispatch(context.Background(), Action{Kind: ActionCategory, Query: "Beef"})
	require.True(t, ok)
	assert.Len(t, got, 1)
	src.AssertExpectations(t)
}

func TestDispatchCategoryDeselectFetchesRandom(t *testing.T) {
	src := new(mocks.MockRecipeSource)
	src.On("FetchRecipes", mock.Anything, model.ModeRandom, "").Return([]model.Recipe{{ID: "r"}})

	s := NewSearch(src, logging.NewNop())
	got, ok := s.Dispatch(context.Background(), Action{Kind: ActionCategory, Query: ""})
	require.True(t, ok)
	assert.Equal(t, "r", got[0].ID)
}

func TestDispatchIgnoresEmptyIngredient(t *testing.T) {
	src := new(mocks.MockRecipeSource)
	s := NewSearch(src, logging.NewNop())

	got, ok := s.Dispatch(context.Background(), Action{Kind: ActionIngredient})
	assert.False(t, ok)
	assert.Nil(t, got)
	src.AssertNotCalled(t, "FetchRecipes", mock.Anything, mock.Anything, mock.Anything)
}

func TestFeedLastResolvedWins(t *testing.T) {
	src := new(mocks.MockRecipeSource)
	slowStarted := make(chan struct{})
	release := make(chan struct{})

	src.On("FetchRecipes", mock.Anything, model.ModeSearch, "slow").
		Run(func(mock.Arguments) {
			close(slowStarted)
			<-release
		}).
		Return([]model.Recipe{{ID: "slow"}})
	src.On("FetchRecipes", mock.Anything, model.ModeSearch, "fast").
		Return([]model.Recipe{{ID: "fast"}})

	feed := NewFeed(NewSearch(src, logging.NewNop()))
	ctx := context.Background()

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		feed.Load(ctx, Action{Kind: ActionSearch, Query: "slow"})
	}()
	<-slowStarted

	feed.Load(ctx, Action{Kind: ActionSearch, Query: "fast"})
	state := feed.Current()
	assert.Equal(t, "fast", state.Recipes[0].ID)
	assert.Equal(t, 1, state.InFlight)

	close(release)
	wg.Wait()

	state = feed.Current()
	require.Len(t, state.Recipes, 1)
	assert.Equal(t, "slow", state.Recipes[0].ID, "the earlier request resolved last and wins")
	assert.Equal(t, "slow", state.Action.Query)
	assert.Zero(t, state.InFlight)
}

func TestFeedCancelledLoadKeepsDisplay(t *testing.T) {
	src := new(mocks.MockRecipeSource)
	src.On("FetchRecipes", mock.Anything, model.ModeRandom, "").Return([]model.Recipe{{ID: "r1"}})
	src.On("FetchRecipes", mock.Anything, model.ModeSearch, "pie").Return([]model.Recipe{})

	feed := NewFeed(NewSearch(src, logging.NewNop()))
	feed.Load(context.Background(), Action{Kind: ActionRandom})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	feed.Load(ctx, Action{Kind: ActionSearch, Query: "pie"})

	state := feed.Current()
	require.Len(t, state.Recipes, 1)
	assert.Equal(t, "r1", state.Recipes[0].ID)
	assert.Equal(t, ActionRandom, state.Action.Kind)
	assert.Zero(t, state.InFlight)
}

func TestFeedIgnoredActionKeepsDisplay(t *testing.T) {
	src := new(mocks.MockRecipeSource)
	src.On("FetchRecipes", mock.Anything, model.ModeRandom, "").Return([]model.Recipe{{ID: "r1"}, {ID: "r2"}})

	feed := NewFeed(NewSearch(src, logging.NewNop()))
	assert.Empty(t, feed.Current().Recipes)

	feed.Load(context.Background(), Action{Kind: ActionRandom})
	got := feed.Load(context.Background(), Action{Kind: ActionIngredient, Query: " "})
	assert.Len(t, got, 2)
	assert.Equal(t, ActionRandom, feed.Current().Action.Kind)
}

func TestFeedCurrentReturnsCopy(t *testing.T) {
	src := new(mocks.MockRecipeSource)
	src.On("FetchRecipes", mock.Anything, mock.Anything, mock.Anything).Return([]model.Recipe{{ID: "1"}})

	feed := NewFeed(NewSearch(src, logging.NewNop()))
	feed.Load(context.Background(), Action{Kind: ActionSearch, Query: "x"})

	state := feed.Current()
	state.Recipes[0].ID = "mutated"
	assert.Equal(t, "1", feed.Current().Recipes[0].ID)
}
