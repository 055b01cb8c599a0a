// Package dashboard renders a small analytics page over a topic
// aggregation: which subreddits dominate the feed and how the top posts
// score. Meant for eyeballing a topic's health, not for automation.
package dashboard

import (
	"net/http"

	"github.com/Aanerud/Reddit-MCP/internal/aggregate"
	"github.com/Aanerud/Reddit-MCP/internal/render"
	"github.com/gin-gonic/gin"
	"github.com/go-echarts/go-echarts/v2/charts"
	"github.com/go-echarts/go-echarts/v2/opts"
	"github.com/go-echarts/go-echarts/v2/types"
)

const (
	chartLimit   = 50
	maxBarPosts  = 15
	titleMaxLen  = 40
	maxSubsLimit = 20
)

// Handler serves GET /dashboard?topic=X.
func Handler(agg *aggregate.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		topic := c.Query("topic")
		if topic == "" {
			c.String(http.StatusBadRequest, "missing 'topic' query parameter")
			return
		}

		res, err := agg.Aggregate(c.Request.Context(), topic, chartLimit, maxSubsLimit)
		if err != nil {
			c.String(http.StatusBadRequest, err.Error())
			return
		}

		// 1. Subreddit Dominance
		pie := charts.NewPie()
		pie.SetGlobalOptions(
			charts.WithTitleOpts(opts.Title{Title: "Subreddit Dominance: " + topic}),
			charts.WithInitializationOpts(opts.Initialization{Theme: types.ThemeWesteros}),
		)

		subCounts := make(map[string]int)
		for _, p := range res.Posts {
			subCounts[p.SourceSubreddit]++
		}

		var pieItems []opts.PieData
		for k, v := range subCounts {
			pieItems = append(pieItems, opts.PieData{Name: k, Value: v})
		}
		pie.AddSeries("Posts", pieItems)

		// 2. Top Post Scores
		bar := charts.NewBar()
		bar.SetGlobalOptions(charts.WithTitleOpts(opts.Title{Title: "Top Post Scores"}))

		var barX []string
		var barY []opts.BarData
		for i, p := range res.Posts {
			if i >= maxBarPosts {
				break
			}
			barX = append(barX, render.Truncate(p.Title, titleMaxLen))
			barY = append(barY, opts.BarData{Value: p.Score})
		}
		bar.SetXAxis(barX).AddSeries("Score", barY)

		c.Status(http.StatusOK)
		c.Header("Content-Type", "text/html; charset=utf-8")
		pie.Render(c.Writer)
		bar.Render(c.Writer)
	}
}
