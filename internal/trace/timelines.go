package trace

import (
	"slices"

	"github.com/emirpasic/gods/trees/redblacktree"
	"github.com/emirpasic/gods/utils"
)

// Timelines maps core index to its CoreTimeline. Iteration is always in
// ascending core order.
type Timelines struct {
	cores int
	tree  *redblacktree.Tree // int core -> *CoreTimeline
}

// NewTimelines creates empty timelines for cores 0..cores-1.
func NewTimelines(cores int) *Timelines {
	t := &Timelines{
		cores: cores,
		tree:  redblacktree.NewWith(utils.IntComparator),
	}
	for c := 0; c < cores; c++ {
		t.tree.Put(c, &CoreTimeline{})
	}
	return t
}

// NumCores returns the configured number of cores.
func (t *Timelines) NumCores() int { return t.cores }

// Core returns a copy of the timeline of core c, or nil if c is out of range.
func (t *Timelines) Core(c int) CoreTimeline {
	tl := t.get(c)
	if tl == nil {
		return nil
	}
	return slices.Clone(*tl)
}

func (t *Timelines) get(c int) *CoreTimeline {
	v, found := t.tree.Get(c)
	if !found {
		return nil
	}
	return v.(*CoreTimeline)
}

// Each calls fn for every core in ascending order, including empty ones.
// fn receives a copy of each timeline.
func (t *Timelines) Each(fn func(core int, tl CoreTimeline)) {
	it := t.tree.Iterator()
	for it.Next() {
		fn(it.Key().(int), slices.Clone(*it.Value().(*CoreTimeline)))
	}
}

// Active returns, in ascending order, the cores that have at least one interval.
func (t *Timelines) Active() []int {
	var cores []int
	t.Each(func(core int, tl CoreTimeline) {
		if len(tl) > 0 {
			cores = append(cores, core)
		}
	})
	return cores
}

// Len returns the total number of intervals across all cores.
func (t *Timelines) Len() int {
	n := 0
	t.Each(func(_ int, tl CoreTimeline) { n += len(tl) })
	return n
}

// MaxEnd returns the largest end slot over all closed intervals, 0 if none.
func (t *Timelines) MaxEnd() int {
	end := 0
	t.Each(func(_ int, tl CoreTimeline) {
		for _, iv := range tl {
			if iv.End > end {
				end = iv.End
			}
		}
	})
	return end
}
