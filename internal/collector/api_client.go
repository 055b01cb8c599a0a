package collector

import (
	"context"
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/loganintech/go-reddit/v2/reddit"
	"golang.org/x/time/rate"
)

const deletedAuthor = "[deleted]"

// APIClient talks to the authenticated Reddit API and adapts its responses
// into domain records.
type APIClient struct {
	client  *reddit.Client
	limiter *rate.Limiter
}

func NewAPIClient(id, secret, user, pass, userAgent string) (*APIClient, error) {
	creds := reddit.Credentials{ID: id, Secret: secret, Username: user, Password: pass}

	client, err := reddit.NewClient(creds, reddit.WithUserAgent(userAgent))
	if err != nil {
		return nil, err
	}

	// API Rate Limit: ~60 reqs/min (safe buffer)
	limiter := rate.NewLimiter(rate.Every(1*time.Second), 1)

	return &APIClient{client: client, limiter: limiter}, nil
}

func (ac *APIClient) HotPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.HotPosts(ctx, sub, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("hot posts for r/%s: %w", sub, err)
	}
	return convertPosts(posts), nil
}

func (ac *APIClient) NewPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.NewPosts(ctx, sub, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("new posts for r/%s: %w", sub, err)
	}
	return convertPosts(posts), nil
}

func (ac *APIClient) TopPosts(ctx context.Context, sub, period string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	opts := &reddit.ListPostOptions{ListOptions: reddit.ListOptions{Limit: limit}, Time: period}
	posts, _, err := ac.client.Subreddit.TopPosts(ctx, sub, opts)
	if err != nil {
		return nil, fmt.Errorf("top posts for r/%s: %w", sub, err)
	}
	return convertPosts(posts), nil
}

func (ac *APIClient) RisingPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	posts, _, err := ac.client.Subreddit.RisingPosts(ctx, sub, &reddit.ListOptions{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("rising posts for r/%s: %w", sub, err)
	}
	return convertPosts(posts), nil
}

// FrontPage pulls the site-wide front page. An empty subreddit name makes
// go-reddit hit the frontpage listing endpoints.
func (ac *APIClient) FrontPage(ctx context.Context, sort, period string, limit int) ([]domain.Post, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	var (
		posts []*reddit.Post
		err   error
	)
	switch sort {
	case "hot":
		posts, _, err = ac.client.Subreddit.HotPosts(ctx, "", &reddit.ListOptions{Limit: limit})
	case "new":
		posts, _, err = ac.client.Subreddit.NewPosts(ctx, "", &reddit.ListOptions{Limit: limit})
	case "top":
		opts := &reddit.ListPostOptions{ListOptions: reddit.ListOptions{Limit: limit}, Time: period}
		posts, _, err = ac.client.Subreddit.TopPosts(ctx, "", opts)
	default:
		return nil, fmt.Errorf("invalid sort method: %s", sort)
	}
	if err != nil {
		return nil, fmt.Errorf("front page (%s): %w", sort, err)
	}
	return convertPosts(posts), nil
}

func (ac *APIClient) PostWithComments(ctx context.Context, postID string, commentLimit, commentDepth int) (*domain.Thread, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	pc, _, err := ac.client.Post.Get(ctx, postID)
	if err != nil {
		return nil, fmt.Errorf("post %s: %w", postID, err)
	}

	comments := pc.Comments
	if commentLimit >= 0 && len(comments) > commentLimit {
		comments = comments[:commentLimit]
	}

	thread := &domain.Thread{Post: convertPost(pc.Post)}
	for _, c := range comments {
		thread.Comments = append(thread.Comments, convertComment(c, commentDepth))
	}
	return thread, nil
}

func (ac *APIClient) SubredditInfo(ctx context.Context, sub string) (*domain.SubredditInfo, error) {
	if err := ac.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	sr, _, err := ac.client.Subreddit.Get(ctx, sub)
	if err != nil {
		return nil, fmt.Errorf("subreddit r/%s: %w", sub, err)
	}

	info := &domain.SubredditInfo{
		Name:        sr.Name,
		Title:       sr.Title,
		Description: sr.Description,
		Subscribers: sr.Subscribers,
		NSFW:        sr.NSFW,
		Type:        sr.Type,
	}
	if sr.Created != nil {
		info.CreatedAt = sr.Created.Time
	}
	if info.Type == "" {
		info.Type = "public"
	}
	return info, nil
}

func convertPosts(posts []*reddit.Post) []domain.Post {
	var result []domain.Post
	for _, p := range posts {
		result = append(result, convertPost(p))
	}
	return result
}

func convertPost(p *reddit.Post) domain.Post {
	kind, content := classifyPost(p)

	author := p.Author
	if author == "" {
		author = deletedAuthor
	}

	post := domain.Post{
		Title:        p.Title,
		Score:        p.Score,
		CommentCount: p.NumberOfComments,
		Author:       author,
		Subreddit:    p.SubredditName,
		Kind:         kind,
		Content:      content,
		Permalink:    p.Permalink,
		URL:          p.URL,
		Domain:       hostOf(p.URL),
		UpvoteRatio:  float64(p.UpvoteRatio),
		IsSelf:       p.IsSelfPost,
	}
	if p.Created != nil {
		post.CreatedUTC = p.Created.Time.Unix()
	}
	return post
}

// classifyPost tags the post variant and picks the matching content field:
// permalink for links, body for self posts, the gallery URL for galleries.
func classifyPost(p *reddit.Post) (domain.PostKind, string) {
	switch {
	case p.IsSelfPost:
		return domain.KindText, p.Body
	case strings.Contains(p.URL, "/gallery/"):
		return domain.KindGallery, p.URL
	case p.URL != "":
		return domain.KindLink, p.Permalink
	default:
		return domain.KindUnknown, ""
	}
}

func convertComment(c *reddit.Comment, depth int) *domain.CommentNode {
	author := c.Author
	if author == "" {
		author = deletedAuthor
	}

	node := &domain.CommentNode{Author: author, Score: c.Score, Body: c.Body}
	if depth <= 0 || len(c.Replies.Comments) == 0 {
		return node
	}
	for _, child := range c.Replies.Comments {
		node.Children = append(node.Children, convertComment(child, depth-1))
	}
	return node
}

func hostOf(raw string) string {
	u, err := url.Parse(raw)
	if err != nil || u.Host == "" {
		return ""
	}
	return strings.TrimPrefix(u.Host, "www.")
}
