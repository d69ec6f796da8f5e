package conversations

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"unimate/internal/mocks"
	"unimate/internal/models"
)

func TestListProjectsRows(t *testing.T) {
	repo := new(mocks.ConversationRepositoryMock)
	svc := NewService(repo, time.UTC, zap.NewNop())

	repo.On("ListConversationRows", mock.Anything, "P").
		Return([]models.ConversationRow{row("Q", "P", false)}, nil).Once()

	summaries := svc.List(context.Background(), "P")

	require.Len(t, summaries, 1)
	assert.Equal(t, "Q", summaries[0].PeerID)
	assert.Equal(t, 1, summaries[0].Unread)
	repo.AssertExpectations(t)
}

func TestListFallsBackOnError(t *testing.T) {
	repo := new(mocks.ConversationRepositoryMock)
	svc := NewService(repo, time.UTC, zap.NewNop())

	repo.On("ListConversationRows", mock.Anything, "P").
		Return(([]models.ConversationRow)(nil), assert.AnError).Once()

	summaries := svc.List(context.Background(), "P")

	assert.Equal(t, Fallback(), summaries)
	repo.AssertExpectations(t)
}

func TestListEmptyIsNotFallback(t *testing.T) {
	repo := new(mocks.ConversationRepositoryMock)
	svc := NewService(repo, nil, nil)

	repo.On("ListConversationRows", mock.Anything, "P").Return([]models.ConversationRow{}, nil).Once()

	summaries := svc.List(context.Background(), "P")

	assert.Empty(t, summaries)
	assert.NotNil(t, summaries)
}

func TestFallbackReturnsCopies(t *testing.T) {
	first := Fallback()
	first[0].PeerName = "changed"

	assert.NotEqual(t, "changed", Fallback()[0].PeerName)
}

func TestFallbackGolden(t *testing.T) {
	data, err := json.MarshalIndent(Fallback(), "", "  ")
	require.NoError(t, err)

	g := goldie.New(t, goldie.WithFixtureDir("testdata"), goldie.WithNameSuffix(".golden"))
	g.Assert(t, "fallback", data)
}

func TestParseFallbackRejectsGarbage(t *testing.T) {
	_, err := parseFallback([]byte("peer_id: [unterminated"))
	require.Error(t, err)
}
