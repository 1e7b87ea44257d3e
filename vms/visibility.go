package vms

import (
	"github.com/sarchlab/vmquiz/sampling"
)

// A RelationGroup is a set of attributes that can be derived from one
// another. At most MaxHidden of them may be hidden at the same time.
type RelationGroup struct {
	Members   []Attribute
	MaxHidden int
}

// RelationGroups are the relations among the attributes of a problem. The
// address unit and the number of levels are never hidden.
var RelationGroups = []RelationGroup{
	{[]Attribute{VirtualAddressLength, VirtualSpaceBytes}, 1},
	{[]Attribute{PhysicalAddressLength, PhysicalMemoryBytes}, 1},
	{[]Attribute{PageOffsetLength, PPNLength, PhysicalAddressLength}, 1},
	{[]Attribute{PageOffsetLength, PageBytes}, 1},
	{[]Attribute{LevelOffsetLengths, PageTableEntryCounts}, 1},
	{[]Attribute{PageTableEntryCounts, PageTableEntryBytes, PageTableBytes}, 1},
	// Page counts are rounded up, so they do not give the table size back.
	{[]Attribute{PageTablePages}, 1},
	{[]Attribute{
		MaxPageTableCount, MaxPageTableBytes,
		MinPageTableCount, MinPageTableBytes,
	}, 4},
	// The entry size is rounded up to whole bytes.
	{[]Attribute{PageTableEntryBytes}, 1},
}

// hideChance is the probability of hiding something from a group.
const hideChance = 0.8

type visibility int

const (
	undecided visibility = iota
	mustShow
	mustHide
)

// A VisibilitySelector chooses the attributes to hide so that every hidden
// attribute can still be derived from the shown ones.
type VisibilitySelector struct {
	src    sampling.Source
	groups []RelationGroup
}

// NewVisibilitySelector creates a VisibilitySelector over the given relation
// groups.
func NewVisibilitySelector(
	src sampling.Source,
	groups []RelationGroup,
) *VisibilitySelector {
	return &VisibilitySelector{
		src:    src,
		groups: groups,
	}
}

// Select returns the attributes to hide, in the order they were chosen.
//
// Groups are visited in order. An attribute shown because of one group stays
// shown for all later groups, and an attribute hidden by an earlier group
// counts against the limit of every later group that contains it.
func (s *VisibilitySelector) Select() []Attribute {
	state := make(map[Attribute]visibility)
	hidden := []Attribute{}

	for _, g := range s.groups {
		if sampling.Chance(s.src, hideChance) {
			hidden = s.hideFromGroup(g, state, hidden)
		}

		for _, attr := range g.Members {
			if state[attr] != mustHide {
				state[attr] = mustShow
			}
		}
	}

	return hidden
}

func (s *VisibilitySelector) hideFromGroup(
	g RelationGroup,
	state map[Attribute]visibility,
	hidden []Attribute,
) []Attribute {
	numHidden := 0
	for _, attr := range g.Members {
		if state[attr] == mustHide {
			numHidden++
		}
	}

	for ; numHidden < g.MaxHidden; numHidden++ {
		candidates := make([]Attribute, 0, len(g.Members))
		for _, attr := range g.Members {
			if state[attr] == undecided {
				candidates = append(candidates, attr)
			}
		}

		if len(candidates) == 0 {
			break
		}

		attr := sampling.Choose(s.src, candidates)
		state[attr] = mustHide
		hidden = append(hidden, attr)
	}

	return hidden
}
