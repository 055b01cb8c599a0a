package collector

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"golang.org/x/time/rate"
)

// PublicClient reads the unauthenticated www.reddit.com JSON endpoints.
// No credentials needed, but the public quota is strict, so it paces
// itself harder than the API client.
type PublicClient struct {
	httpClient *http.Client
	limiter    *rate.Limiter
	userAgent  string
	baseURL    string
}

type publicPost struct {
	ID            string          `json:"id"`
	Title         string          `json:"title"`
	Selftext      string          `json:"selftext"`
	Subreddit     string          `json:"subreddit"`
	Author        string          `json:"author"`
	URL           string          `json:"url"`
	Domain        string          `json:"domain"`
	Permalink     string          `json:"permalink"`
	Score         int             `json:"score"`
	NumComments   int             `json:"num_comments"`
	CreatedUTC    float64         `json:"created_utc"`
	UpvoteRatio   float64         `json:"upvote_ratio"`
	IsSelf        bool            `json:"is_self"`
	IsGallery     bool            `json:"is_gallery"`
	LinkFlairText string          `json:"link_flair_text"`
	Replies       json.RawMessage `json:"replies"` // comments only; "" or a listing
	Body          string          `json:"body"`    // comments only
}

type publicListing struct {
	Data struct {
		Children []struct {
			Kind string     `json:"kind"`
			Data publicPost `json:"data"`
		} `json:"children"`
	} `json:"data"`
}

type publicAbout struct {
	Data struct {
		DisplayName       string  `json:"display_name"`
		Title             string  `json:"title"`
		PublicDescription string  `json:"public_description"`
		Subscribers       int     `json:"subscribers"`
		CreatedUTC        float64 `json:"created_utc"`
		Over18            bool    `json:"over18"`
		SubredditType     string  `json:"subreddit_type"`
	} `json:"data"`
}

func NewPublicClient(userAgent string) (*PublicClient, error) {
	if userAgent == "" {
		return nil, fmt.Errorf("REDDIT_USER_AGENT is required for public mode")
	}
	return &PublicClient{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		// Public JSON Limit: 1 req / 2 seconds (Stricter)
		limiter:   rate.NewLimiter(rate.Every(2*time.Second), 1),
		userAgent: userAgent,
		baseURL:   "https://www.reddit.com",
	}, nil
}

func (pc *PublicClient) HotPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	return pc.listing(ctx, fmt.Sprintf("/r/%s/hot.json?limit=%d", sub, limit))
}

func (pc *PublicClient) NewPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	return pc.listing(ctx, fmt.Sprintf("/r/%s/new.json?limit=%d", sub, limit))
}

func (pc *PublicClient) TopPosts(ctx context.Context, sub, period string, limit int) ([]domain.Post, error) {
	return pc.listing(ctx, fmt.Sprintf("/r/%s/top.json?limit=%d&t=%s", sub, limit, period))
}

func (pc *PublicClient) RisingPosts(ctx context.Context, sub string, limit int) ([]domain.Post, error) {
	return pc.listing(ctx, fmt.Sprintf("/r/%s/rising.json?limit=%d", sub, limit))
}

func (pc *PublicClient) FrontPage(ctx context.Context, sort, period string, limit int) ([]domain.Post, error) {
	switch sort {
	case "hot", "new":
		return pc.listing(ctx, fmt.Sprintf("/%s.json?limit=%d", sort, limit))
	case "top":
		return pc.listing(ctx, fmt.Sprintf("/top.json?limit=%d&t=%s", limit, period))
	default:
		return nil, fmt.Errorf("invalid sort method: %s", sort)
	}
}

func (pc *PublicClient) PostWithComments(ctx context.Context, postID string, commentLimit, commentDepth int) (*domain.Thread, error) {
	path := fmt.Sprintf("/comments/%s.json?limit=%d&depth=%d&sort=top", postID, commentLimit, commentDepth)

	var listings []publicListing
	if err := pc.get(ctx, path, &listings); err != nil {
		return nil, err
	}
	// First listing holds the post, second the comment forest.
	if len(listings) < 1 || len(listings[0].Data.Children) < 1 {
		return nil, fmt.Errorf("post %s not found", postID)
	}

	thread := &domain.Thread{Post: convertPublicPost(listings[0].Data.Children[0].Data)}
	if len(listings) > 1 {
		// The forest mixes t1 comments with "more" stubs; only accepted
		// comments count against the limit.
		for _, child := range listings[1].Data.Children {
			if child.Kind != "t1" {
				continue
			}
			if commentLimit >= 0 && len(thread.Comments) >= commentLimit {
				break
			}
			thread.Comments = append(thread.Comments, convertPublicComment(child.Data, commentDepth))
		}
	}
	return thread, nil
}

func (pc *PublicClient) SubredditInfo(ctx context.Context, sub string) (*domain.SubredditInfo, error) {
	var about publicAbout
	if err := pc.get(ctx, fmt.Sprintf("/r/%s/about.json", sub), &about); err != nil {
		return nil, err
	}

	info := &domain.SubredditInfo{
		Name:        about.Data.DisplayName,
		Title:       about.Data.Title,
		Description: about.Data.PublicDescription,
		Subscribers: about.Data.Subscribers,
		CreatedAt:   time.Unix(int64(about.Data.CreatedUTC), 0),
		NSFW:        about.Data.Over18,
		Type:        about.Data.SubredditType,
	}
	if info.Type == "" {
		info.Type = "public"
	}
	return info, nil
}

func (pc *PublicClient) listing(ctx context.Context, path string) ([]domain.Post, error) {
	var resp publicListing
	if err := pc.get(ctx, path, &resp); err != nil {
		return nil, err
	}

	var posts []domain.Post
	for _, child := range resp.Data.Children {
		posts = append(posts, convertPublicPost(child.Data))
	}
	return posts, nil
}

func (pc *PublicClient) get(ctx context.Context, path string, out any) error {
	if err := pc.limiter.Wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, pc.baseURL+path, nil)
	if err != nil {
		return err
	}
	req.Header.Set("User-Agent", pc.userAgent)

	resp, err := pc.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("reddit public access status: %d", resp.StatusCode)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func convertPublicPost(p publicPost) domain.Post {
	kind, content := classifyPublicPost(p)

	author := p.Author
	if author == "" {
		author = deletedAuthor
	}

	return domain.Post{
		Title:        p.Title,
		Score:        p.Score,
		CommentCount: p.NumComments,
		Author:       author,
		Subreddit:    p.Subreddit,
		Kind:         kind,
		Content:      content,
		Permalink:    p.Permalink,
		CreatedUTC:   int64(p.CreatedUTC),
		URL:          p.URL,
		Domain:       strings.TrimPrefix(p.Domain, "www."),
		UpvoteRatio:  p.UpvoteRatio,
		IsSelf:       p.IsSelf,
		Flair:        p.LinkFlairText,
	}
}

func classifyPublicPost(p publicPost) (domain.PostKind, string) {
	switch {
	case p.IsSelf:
		return domain.KindText, p.Selftext
	case p.IsGallery:
		return domain.KindGallery, p.URL
	case p.URL != "":
		return domain.KindLink, p.Permalink
	default:
		return domain.KindUnknown, ""
	}
}

func convertPublicComment(c publicPost, depth int) *domain.CommentNode {
	author := c.Author
	if author == "" {
		author = deletedAuthor
	}

	node := &domain.CommentNode{Author: author, Score: c.Score, Body: c.Body}
	if depth <= 0 {
		return node
	}

	// replies is "" when the comment is a leaf, a listing otherwise.
	var replies publicListing
	if len(c.Replies) == 0 || string(c.Replies) == `""` {
		return node
	}
	if err := json.Unmarshal(c.Replies, &replies); err != nil {
		return node
	}
	for _, child := range replies.Data.Children {
		if child.Kind != "t1" {
			continue
		}
		node.Children = append(node.Children, convertPublicComment(child.Data, depth-1))
	}
	return node
}
