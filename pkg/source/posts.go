package source

import (
	"sort"
	"strings"

	"github.com/umputun/truckscope/pkg/domain"
)

// DefaultTopInfluencers is the number of authors returned by TopInfluencers when limit is not set
const DefaultTopInfluencers = 10

// Influencer is an author ranked by engagement across posts
type Influencer struct {
	Author          domain.Author   `json:"author"`
	Platform        domain.Platform `json:"platform"`
	Posts           int             `json:"posts"`
	TotalEngagement int             `json:"total_engagement"`
	AvgEngagement   float64         `json:"avg_engagement"`
}

// FilterByDateRange keeps posts with timestamp inside the range, bounds inclusive
func FilterByDateRange(posts []domain.Post, r domain.DateRange) []domain.Post {
	res := []domain.Post{}
	for _, p := range posts {
		if r.Contains(p.Timestamp) {
			res = append(res, p)
		}
	}
	return res
}

// FilterByEngagement keeps posts with at least minLikes likes and minShares shares
func FilterByEngagement(posts []domain.Post, minLikes, minShares int) []domain.Post {
	res := []domain.Post{}
	for _, p := range posts {
		if p.Engagement.Likes >= minLikes && p.Engagement.Shares >= minShares {
			res = append(res, p)
		}
	}
	return res
}

// GroupByHashtag groups posts by lowercased hashtag, a post appears once per distinct tag
func GroupByHashtag(posts []domain.Post) map[string][]domain.Post {
	res := map[string][]domain.Post{}
	for _, p := range posts {
		seen := map[string]bool{}
		for _, tag := range p.Hashtags {
			tag = strings.ToLower(strings.TrimPrefix(tag, "#"))
			if tag == "" || seen[tag] {
				continue
			}
			seen[tag] = true
			res[tag] = append(res[tag], p)
		}
	}
	return res
}

// TopInfluencers ranks authors by total interactions (likes, shares and comments) of their posts
func TopInfluencers(posts []domain.Post, limit int) []Influencer {
	if limit <= 0 {
		limit = DefaultTopInfluencers
	}
	type key struct {
		platform domain.Platform
		username string
	}
	byAuthor := map[key]*Influencer{}
	var order []key
	for _, p := range posts {
		k := key{platform: p.Platform, username: p.Author.Username}
		inf, ok := byAuthor[k]
		if !ok {
			inf = &Influencer{Author: p.Author, Platform: p.Platform}
			byAuthor[k] = inf
			order = append(order, k)
		}
		inf.Posts++
		inf.TotalEngagement += p.Engagement.Interactions()
		if p.Author.Verified {
			inf.Author.Verified = true
		}
	}

	res := make([]Influencer, 0, len(order))
	for _, k := range order {
		inf := byAuthor[k]
		inf.AvgEngagement = float64(inf.TotalEngagement) / float64(inf.Posts)
		res = append(res, *inf)
	}
	sort.SliceStable(res, func(i, j int) bool { return res[i].TotalEngagement > res[j].TotalEngagement })
	if len(res) > limit {
		res = res[:limit]
	}
	return res
}
