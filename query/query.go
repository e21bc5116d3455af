// Package query remembers jump queries and suggests them back, most used first.
package query

import (
	"sort"
	"strings"
	"time"

	"github.com/lithammer/fuzzysearch/fuzzy"
	"github.com/mapreel/mapreel/filesystem"
	"github.com/mapreel/mapreel/key"
	"github.com/mapreel/mapreel/where"
	"github.com/metafates/gache"
	"github.com/samber/lo"
	"github.com/samber/mo"
	"github.com/spf13/viper"
)

type queryRecord struct {
	Rank     int       `json:"rank"`
	Query    string    `json:"query"`
	LastUsed time.Time `json:"last_used"`
}

func store() *gache.Cache[map[string]*queryRecord] {
	return gache.New[map[string]*queryRecord](&gache.Options{
		Path:       where.Queries(),
		FileSystem: &filesystem.GacheFs{},
	})
}

func records() map[string]*queryRecord {
	cached, expired, err := store().Get()
	if expired || err != nil || cached == nil {
		return make(map[string]*queryRecord)
	}
	return cached
}

// Remember records q or raises its rank by weight.
func Remember(q string, weight int) error {
	q = sanitize(q)
	if q == "" {
		return nil
	}

	cached := records()
	if record, ok := cached[q]; ok {
		record.Rank += weight
		record.LastUsed = time.Now()
	} else {
		cached[q] = &queryRecord{Rank: weight, Query: q, LastUsed: time.Now()}
	}

	return store().Set(cached)
}

// Suggest returns the best suggestion for a partial query.
func Suggest(q string) mo.Option[string] {
	suggestions := SuggestMany(q)
	if len(suggestions) == 0 {
		return mo.None[string]()
	}
	return mo.Some(suggestions[0])
}

// SuggestMany returns remembered queries fuzzily matching q, by descending rank then recency.
func SuggestMany(q string) []string {
	if !viper.GetBool(key.MiniQuerySuggestions) {
		return []string{}
	}

	q = sanitize(q)
	matching := lo.Filter(lo.Values(records()), func(r *queryRecord, _ int) bool {
		return fuzzy.Match(q, r.Query)
	})

	sort.Slice(matching, func(i, j int) bool {
		if matching[i].Rank != matching[j].Rank {
			return matching[i].Rank > matching[j].Rank
		}
		return matching[i].LastUsed.After(matching[j].LastUsed)
	})

	return lo.Map(matching, func(r *queryRecord, _ int) string {
		return r.Query
	})
}

func sanitize(q string) string {
	return strings.TrimSpace(strings.ToLower(q))
}
