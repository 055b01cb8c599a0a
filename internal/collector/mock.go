package collector

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
)

// MockClient implements domain.Client but returns fake data. Useful for
// exercising both surfaces without Reddit credentials.
type MockClient struct{}

func NewMockClient() *MockClient {
	return &MockClient{}
}

func (mc *MockClient) HotPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	return mc.fakePosts(sub, "hot", limit), nil
}

func (mc *MockClient) NewPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	return mc.fakePosts(sub, "new", limit), nil
}

func (mc *MockClient) TopPosts(ctx context.Context, sub, period string, limit int) ([]domain.Post, error) {
	return mc.fakePosts(sub, "top-"+period, limit), nil
}

func (mc *MockClient) RisingPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	return mc.fakePosts(sub, "rising", limit), nil
}

func (mc *MockClient) FrontPage(ctx context.Context, sort, period string, limit int) ([]domain.Post, error) {
	return mc.fakePosts("popular", sort, limit), nil
}

func (mc *MockClient) PostWithComments(ctx context.Context, postID string, commentLimit, commentDepth int) (*domain.Thread, error) {
	thread := &domain.Thread{
		Post: domain.Post{
			Title:      fmt.Sprintf("Simulated post %s", postID),
			Score:      rand.Intn(500),
			Author:     "simulated_user",
			Kind:       domain.KindText,
			Content:    "Simulated self-post body for local testing.",
			Permalink:  "/r/golang/comments/" + postID + "/simulated_post/",
			CreatedUTC: time.Now().Unix(),
			IsSelf:     true,
		},
	}
	for i := 0; i < commentLimit && i < 3; i++ {
		node := &domain.CommentNode{
			Author: "simulated_user",
			Score:  rand.Intn(50),
			Body:   fmt.Sprintf("Simulated comment #%d", i),
		}
		if commentDepth > 1 {
			node.Children = append(node.Children, &domain.CommentNode{
				Author: "simulated_replier",
				Score:  rand.Intn(10),
				Body:   "Simulated reply",
			})
		}
		thread.Comments = append(thread.Comments, node)
	}
	return thread, nil
}

func (mc *MockClient) SubredditInfo(ctx context.Context, sub string) (*domain.SubredditInfo, error) {
	return &domain.SubredditInfo{
		Name:        sub,
		Title:       "Simulated " + sub,
		Description: "A simulated subreddit for local testing",
		Subscribers: rand.Intn(100000),
		CreatedAt:   time.Now().Add(-24 * 365 * time.Hour),
		Type:        "public",
	}, nil
}

func (mc *MockClient) fakePosts(sub, listing string, limit int) []domain.Post {
	// Simulate network latency (nice for testing concurrency)
	time.Sleep(50 * time.Millisecond)

	var posts []domain.Post
	for i := 0; i < limit; i++ {
		posts = append(posts, domain.Post{
			Title:        fmt.Sprintf("[%s/%s] Simulated Post #%d", sub, listing, i),
			Score:        rand.Intn(500),
			CommentCount: rand.Intn(50),
			Author:       "simulated_user",
			Subreddit:    sub,
			Kind:         domain.KindText,
			Content:      fmt.Sprintf("Simulated body for %s post %d", listing, i),
			Permalink:    fmt.Sprintf("/r/%s/comments/mock%d/simulated_post/", sub, i),
			CreatedUTC:   time.Now().Add(-time.Duration(i) * time.Minute).Unix(),
			IsSelf:       true,
			UpvoteRatio:  0.9,
		})
	}
	return posts
}
