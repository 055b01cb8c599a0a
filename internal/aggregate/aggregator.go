// Package aggregate implements the topic fan-out shared by the REST and
// MCP surfaces: fetch every subreddit mapped to a topic concurrently,
// filter, dedup by title, sort by recency, truncate.
package aggregate

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"sync"

	"github.com/Aanerud/Reddit-MCP/internal/domain"
	"github.com/Aanerud/Reddit-MCP/internal/filter"
	"github.com/Aanerud/Reddit-MCP/internal/topics"
)

// quotaMargin pads each subreddit's share of the overall limit so the
// merged union still reaches the limit when some subreddits under-yield.
const quotaMargin = 5

// UnknownTopicError carries the known topics so callers can guide the
// user instead of hard-failing.
type UnknownTopicError struct {
	Topic string
	Known []string
}

func (e *UnknownTopicError) Error() string {
	shown := e.Known
	suffix := ""
	if len(shown) > 10 {
		shown = shown[:10]
		suffix = "..."
	}
	return fmt.Sprintf("Topic '%s' not found. Available topics: %s%s",
		e.Topic, strings.Join(shown, ", "), suffix)
}

// Aggregator fans per-subreddit fetches out over a topic's mapping.
type Aggregator struct {
	client    domain.Client
	filter    filter.Policy
	topicFile string
	overfetch int
}

// New builds an Aggregator. overfetch is the multiplier on each
// subreddit's quota bounding how many raw candidates are examined when
// the filter rejects most of a listing.
func New(client domain.Client, policy filter.Policy, topicFile string, overfetch int) *Aggregator {
	if overfetch < 1 {
		overfetch = 1
	}
	return &Aggregator{client: client, filter: policy, topicFile: topicFile, overfetch: overfetch}
}

// Topics re-reads the mapping file. The file is small and reloaded per
// call so edits take effect without a restart.
func (a *Aggregator) Topics() topics.Map {
	return topics.Load(a.topicFile)
}

// Aggregate resolves the topic, queries up to maxSubreddits of its
// subreddits concurrently, and merges the results into a single feed of
// at most limit posts sorted newest-first.
//
// A single subreddit's failure never aborts the aggregation; it just
// contributes nothing.
func (a *Aggregator) Aggregate(ctx context.Context, topic string, limit, maxSubreddits int) (*domain.AggregationResult, error) {
	mapping := topics.Load(a.topicFile)

	subs, ok := mapping[topic]
	if !ok {
		names := mapping.Names()
		sort.Strings(names)
		return nil, &UnknownTopicError{Topic: topic, Known: names}
	}

	// Query all subreddits when maxSubreddits covers the full list.
	if maxSubreddits >= 0 && maxSubreddits < len(subs) {
		subs = subs[:maxSubreddits]
	}
	if len(subs) == 0 {
		return &domain.AggregationResult{}, nil
	}

	quota := limit/len(subs) + quotaMargin

	// Independent fan-out: one goroutine per subreddit, results land in
	// per-index slots, so merging is in scheduling order and dedup does
	// not depend on completion order.
	results := make([][]domain.Post, len(subs))
	var wg sync.WaitGroup
	for i, sub := range subs {
		wg.Add(1)
		go func(i int, sub string) {
			defer wg.Done()
			results[i] = a.fetchFiltered(ctx, sub, quota)
		}(i, sub)
	}
	wg.Wait()

	seen := make(map[string]struct{})
	var merged []domain.Post
	for i, posts := range results {
		for _, p := range posts {
			key := strings.ToLower(strings.TrimSpace(p.Title))
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			p.SourceSubreddit = subs[i]
			merged = append(merged, p)
		}
	}

	// Newest first; stable, so merge order breaks ties.
	sort.SliceStable(merged, func(i, j int) bool {
		return merged[i].CreatedUTC > merged[j].CreatedUTC
	})

	if len(merged) > limit {
		merged = merged[:limit]
	}

	sources := make(map[string]struct{})
	for _, p := range merged {
		sources[p.SourceSubreddit] = struct{}{}
	}

	return &domain.AggregationResult{
		Posts:             merged,
		SubredditsQueried: len(subs),
		SourceCount:       len(sources),
	}, nil
}

// fetchFiltered pulls the hot listing for one subreddit and keeps up to
// quota posts accepted by the filter. At most quota*overfetch raw
// candidates are requested. Errors are absorbed: log and return what we
// have.
func (a *Aggregator) fetchFiltered(ctx context.Context, sub string, quota int) []domain.Post {
	raw, err := a.client.HotPosts(ctx, sub, quota*a.overfetch)
	if err != nil {
		slog.Warn("Failed to fetch from subreddit", "subreddit", sub, "err", err)
		return nil
	}

	var kept []domain.Post
	for _, p := range raw {
		if !a.filter(p) {
			continue
		}
		kept = append(kept, p)
		if len(kept) >= quota {
			break
		}
	}
	return kept
}
