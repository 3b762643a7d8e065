package plan

import (
	"sort"

	"github.com/npillmayer/wingfont/diagnostic"
	"github.com/npillmayer/wingfont/ot"
)

// bucket holds the groups of all context rules of one word length.
type bucket struct {
	length int
	groups []Group
}

// orderRules buckets context rules by word length, longest first. Within a
// bucket, rules are grouped by initial glyph in ascending glyph index order;
// within a group, rules are ordered by input length (descending), then by word
// rule priority.
func orderRules(rules []ContextRule) []bucket {
	byLength := make(map[int][]ContextRule)
	var lengths []int
	for _, r := range rules {
		if _, ok := byLength[r.Len()]; !ok {
			lengths = append(lengths, r.Len())
		}
		byLength[r.Len()] = append(byLength[r.Len()], r)
	}
	sort.Sort(sort.Reverse(sort.IntSlice(lengths)))
	buckets := make([]bucket, 0, len(lengths))
	for _, l := range lengths {
		buckets = append(buckets, bucket{length: l, groups: groupRules(byLength[l])})
	}
	return buckets
}

func groupRules(rules []ContextRule) []Group {
	byInitial := make(map[ot.GlyphIndex]int)
	var groups []Group
	for _, r := range rules {
		i, ok := byInitial[r.InitialGlyph.ID]
		if !ok {
			i = len(groups)
			byInitial[r.InitialGlyph.ID] = i
			groups = append(groups, Group{Initial: r.Initial, Glyph: r.InitialGlyph})
		}
		groups[i].Rules = append(groups[i].Rules, r)
	}
	sort.Slice(groups, func(i, j int) bool {
		return groups[i].Glyph.ID < groups[j].Glyph.ID
	})
	for _, g := range groups {
		sort.SliceStable(g.Rules, func(i, j int) bool {
			a, b := g.Rules[i], g.Rules[j]
			if len(a.Input) != len(b.Input) {
				return len(a.Input) > len(b.Input)
			}
			return a.Priority < b.Priority
		})
	}
	return groups
}

// chunkBuckets splits every bucket into chunks of at most ChunkCapacity
// groups. A chunk never spans two buckets.
func (c *Compiler) chunkBuckets(buckets []bucket) ([]Chunk, error) {
	capacity := c.conf.ChunkCapacity
	var chunks []Chunk
	for _, b := range buckets {
		for start := 0; start < len(b.groups); start += capacity {
			end := min(start+capacity, len(b.groups))
			chunk := Chunk{Bucket: b.length, Groups: b.groups[start:end]}
			if err := c.checkChunk(chunk, len(chunks)); err != nil {
				return nil, err
			}
			chunks = append(chunks, chunk)
		}
	}
	return chunks, nil
}

// checkChunk asserts the capacity and homogeneity of a chunk before emission.
func (c *Compiler) checkChunk(chunk Chunk, n int) error {
	if len(chunk.Groups) > c.conf.ChunkCapacity || len(chunk.Groups) > ot.MaxCoverageCount {
		return diagnostic.Violation(diagnostic.StagePlan, chunkName(n, chunk),
			"holds %d initial glyphs, capacity is %d", len(chunk.Groups), c.conf.ChunkCapacity)
	}
	for _, g := range chunk.Groups {
		for _, r := range g.Rules {
			if r.Len() != chunk.Bucket {
				return diagnostic.Violation(diagnostic.StagePlan, chunkName(n, chunk),
					"rule %q of length %d in bucket %d", r.Word, r.Len(), chunk.Bucket)
			}
		}
	}
	return nil
}
