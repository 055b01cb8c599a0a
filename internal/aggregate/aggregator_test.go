package aggregate

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/Aanerud/Reddit-MCP/internal/filter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubClient serves canned hot listings per subreddit and records the
// limits it was asked for. Only HotPosts is implemented; the embedded
// interface panics on anything else.
type stubClient struct {
	domain.Client

	mu     sync.Mutex
	posts  map[string][]domain.Post
	errs   map[string]error
	calls  map[string]int
	limits map[string]int
}

func newStubClient() *stubClient {
	return &stubClient{
		posts:  make(map[string][]domain.Post),
		errs:   make(map[string]error),
		calls:  make(map[string]int),
		limits: make(map[string]int),
	}
}

func (s *stubClient) HotPosts(_ context.Context, sub string, limit int) ([]domain.Post, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls[sub]++
	s.limits[sub] = limit
	if err := s.errs[sub]; err != nil {
		return nil, err
	}
	return s.posts[sub], nil
}

func textPost(title string, createdUTC int64) domain.Post {
	return domain.Post{Title: title, Kind: domain.KindText, Content: "body", CreatedUTC: createdUTC}
}

func topicFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "list.txt")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func threeSubTopic(t *testing.T) string {
	return topicFile(t, "# Science\n/r/science\n/r/askscience\n/r/space\n")
}

func TestAggregate_UnknownTopic(t *testing.T) {
	agg := New(newStubClient(), filter.Permissive, threeSubTopic(t), 2)

	_, err := agg.Aggregate(context.Background(), "Cooking", 10, 5)

	var unknown *UnknownTopicError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "Cooking", unknown.Topic)
	assert.Contains(t, unknown.Error(), "Topic 'Cooking' not found")
	assert.Contains(t, unknown.Error(), "Science")
}

func TestAggregate_RespectsOverallLimit(t *testing.T) {
	client := newStubClient()
	for i := 0; i < 20; i++ {
		client.posts["science"] = append(client.posts["science"], textPost(fmt.Sprintf("s%d", i), int64(1000+i)))
		client.posts["askscience"] = append(client.posts["askscience"], textPost(fmt.Sprintf("a%d", i), int64(2000+i)))
		client.posts["space"] = append(client.posts["space"], textPost(fmt.Sprintf("p%d", i), int64(3000+i)))
	}
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 7, 10)

	require.NoError(t, err)
	assert.Len(t, res.Posts, 7)
	assert.Equal(t, 3, res.SubredditsQueried)
	assert.LessOrEqual(t, res.SourceCount, 3)
}

func TestAggregate_SortedNewestFirst(t *testing.T) {
	client := newStubClient()
	client.posts["science"] = []domain.Post{textPost("old", 100), textPost("newest", 900)}
	client.posts["askscience"] = []domain.Post{textPost("mid", 500)}
	client.posts["space"] = []domain.Post{textPost("ancient", 10)}
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 10, 10)

	require.NoError(t, err)
	require.Len(t, res.Posts, 4)
	for i := 0; i < len(res.Posts)-1; i++ {
		assert.GreaterOrEqual(t, res.Posts[i].CreatedUTC, res.Posts[i+1].CreatedUTC)
	}
	assert.Equal(t, "newest", res.Posts[0].Title)
}

func TestAggregate_DedupByNormalizedTitle(t *testing.T) {
	client := newStubClient()
	client.posts["science"] = []domain.Post{textPost("Breaking Discovery", 500)}
	client.posts["askscience"] = []domain.Post{textPost("  breaking discovery ", 700)}
	client.posts["space"] = nil
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 10, 10)

	require.NoError(t, err)
	require.Len(t, res.Posts, 1)
	// First scheduled subreddit wins.
	assert.Equal(t, "science", res.Posts[0].SourceSubreddit)
	assert.Equal(t, "Breaking Discovery", res.Posts[0].Title)
}

func TestAggregate_SourceStamping(t *testing.T) {
	client := newStubClient()
	client.posts["science"] = []domain.Post{textPost("one", 100)}
	client.posts["askscience"] = []domain.Post{textPost("two", 200)}
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 10, 10)

	require.NoError(t, err)
	bySource := map[string]string{}
	for _, p := range res.Posts {
		bySource[p.Title] = p.SourceSubreddit
	}
	assert.Equal(t, "science", bySource["one"])
	assert.Equal(t, "askscience", bySource["two"])
}

func TestAggregate_FailedSubredditIsAbsorbed(t *testing.T) {
	client := newStubClient()
	client.posts["science"] = []domain.Post{textPost("alpha", 300)}
	client.errs["askscience"] = errors.New("upstream 503")
	client.posts["space"] = []domain.Post{textPost("beta", 200)}
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 10, 10)

	require.NoError(t, err)
	assert.Len(t, res.Posts, 2)
	assert.Equal(t, 3, res.SubredditsQueried)
	assert.Equal(t, 2, res.SourceCount)
}

func TestAggregate_MaxSubredditsCoversAll(t *testing.T) {
	client := newStubClient()
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 12, 99)

	require.NoError(t, err)
	assert.Equal(t, 3, res.SubredditsQueried)
	for _, sub := range []string{"science", "askscience", "space"} {
		assert.Equal(t, 1, client.calls[sub], "subreddit %s queried exactly once", sub)
	}
}

func TestAggregate_MaxSubredditsTruncatesInOrder(t *testing.T) {
	client := newStubClient()
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 12, 2)

	require.NoError(t, err)
	assert.Equal(t, 2, res.SubredditsQueried)
	assert.Equal(t, 1, client.calls["science"])
	assert.Equal(t, 1, client.calls["askscience"])
	assert.Zero(t, client.calls["space"])
}

// The per-subreddit request is bounded: quota (limit/n + margin) times
// the over-fetch multiplier.
func TestAggregate_OverfetchBound(t *testing.T) {
	client := newStubClient()
	agg := New(client, filter.Permissive, threeSubTopic(t), 3)

	_, err := agg.Aggregate(context.Background(), "Science", 30, 10)

	require.NoError(t, err)
	wantLimit := (30/3 + quotaMargin) * 3
	assert.Equal(t, wantLimit, client.limits["science"])
}

// Filter is applied inside the fan-out: spam links never reach the
// merged result even when the subreddit returns them.
func TestAggregate_AppliesFilter(t *testing.T) {
	client := newStubClient()
	client.posts["science"] = []domain.Post{
		textPost("keep me", 500),
		{Title: "drop me", Kind: domain.KindLink, URL: "https://casino.example", Domain: "casino.example", CreatedUTC: 600},
	}
	agg := New(client, filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 10, 1)

	require.NoError(t, err)
	require.Len(t, res.Posts, 1)
	assert.Equal(t, "keep me", res.Posts[0].Title)
}

func TestAggregate_EmptyYieldEverywhere(t *testing.T) {
	agg := New(newStubClient(), filter.Permissive, threeSubTopic(t), 2)

	res, err := agg.Aggregate(context.Background(), "Science", 10, 10)

	require.NoError(t, err)
	assert.Empty(t, res.Posts)
	assert.Zero(t, res.SourceCount)
	assert.Equal(t, 3, res.SubredditsQueried)
}
