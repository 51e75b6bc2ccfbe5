package mapper

import (
	"github.com/dhindle/commerce-cif-commercetools/internal/ccif"
	"github.com/dhindle/commerce-cif-commercetools/internal/commercetools"
	"github.com/dhindle/commerce-cif-commercetools/internal/language"
)

// CategoryMapper maps CommerceTools categories to CCIF categories.
type CategoryMapper struct {
	lang *language.Parser
}

// NewCategoryMapper creates a category mapper bound to one request's locale.
func NewCategoryMapper(lang *language.Parser) *CategoryMapper {
	return &CategoryMapper{lang: lang}
}

// Category maps a single category, including parent references.
func (m *CategoryMapper) Category(ct *commercetools.Category) *ccif.Category {
	c := &ccif.Category{
		ID:               ct.ID,
		Name:             m.lang.Pick(ct.Name),
		CreatedDate:      ct.CreatedAt,
		LastModifiedDate: ct.LastModifiedAt,
	}
	if ct.Description != nil {
		c.Description = m.lang.Pick(ct.Description)
	}
	if ct.Parent != nil {
		c.ParentCategories = []ccif.Category{{ID: ct.Parent.ID}}
	}
	return c
}

// Categories maps a flat category list, preserving order.
func (m *CategoryMapper) Categories(cts []commercetools.Category) []ccif.Category {
	out := make([]ccif.Category, 0, len(cts))
	for i := range cts {
		out = append(out, *m.Category(&cts[i]))
	}
	return out
}

// Tree assembles the category forest from a flat listing: children are
// attached under their parent's SubCategories and only roots are returned.
// depth limits nesting; 0 keeps roots only (without SubCategories), a
// negative depth means unlimited.
func (m *CategoryMapper) Tree(cts []commercetools.Category, depth int) []ccif.Category {
	nodes := make(map[string]*ccif.Category, len(cts))
	order := make([]string, 0, len(cts))
	for i := range cts {
		nodes[cts[i].ID] = m.Category(&cts[i])
		order = append(order, cts[i].ID)
	}

	var roots []ccif.Category
	level := make(map[string]int, len(cts))
	for i := range cts {
		level[cts[i].ID] = len(cts[i].Ancestors)
	}

	// Attach deepest nodes first so each subtree is complete before it is
	// copied into its parent.
	maxLevel := 0
	for _, l := range level {
		if l > maxLevel {
			maxLevel = l
		}
	}
	for l := maxLevel; l > 0; l-- {
		for i := range cts {
			ct := &cts[i]
			if level[ct.ID] != l || ct.Parent == nil {
				continue
			}
			parent, ok := nodes[ct.Parent.ID]
			if !ok {
				continue
			}
			if depth < 0 || l <= depth {
				parent.SubCategories = append(parent.SubCategories, *nodes[ct.ID])
			}
		}
	}

	for _, id := range order {
		if level[id] == 0 {
			roots = append(roots, *nodes[id])
		}
	}
	return roots
}
