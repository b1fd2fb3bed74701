package opf

// Item is the atomic unit of package metadata: one expression, either a
// Dublin Core element or a <meta> element, after property resolution.
type Item struct {
	// Property is the fully-qualified property identifier. Not necessarily
	// unique across items.
	Property string

	// Value is the raw textual value.
	Value string

	// Lang is the language tag, possibly empty (inherit document default).
	Lang string

	// Scheme is the optional scheme qualifier, resolved like a property.
	Scheme string

	// Refines is the id of the expression this item annotates; empty for
	// root expressions.
	Refines string

	// ID is the element's id attribute, usable as a refinement target.
	ID string

	// Children maps a property name to the ordered items refining this one.
	// Populated by hierarchy resolution; also used during extraction to
	// fold EPUB 2 legacy attributes into the EPUB 3 shape.
	Children map[string][]*Item
}

// child returns the first child item with the given property, or nil.
func (it *Item) child(property string) *Item {
	if c := it.Children[property]; len(c) > 0 {
		return c[0]
	}
	return nil
}

// childValue returns the value of the first child with the given property,
// or "".
func (it *Item) childValue(property string) string {
	if c := it.child(property); c != nil {
		return c.Value
	}
	return ""
}

// addChild appends a child item under its property key.
func (it *Item) addChild(c *Item) {
	if it.Children == nil {
		it.Children = make(map[string][]*Item)
	}
	it.Children[c.Property] = append(it.Children[c.Property], c)
}

// RawMetadata is the structural parse result of a <metadata> element,
// before semantic adaptation.
type RawMetadata struct {
	// Global maps a property name to the root-level items carrying it,
	// in document order.
	Global map[string][]*Item

	// Refine maps a refined id to the items targeting it, grouped by
	// property. Item-to-item refinement is already folded into Children;
	// this map serves refinements whose target is not an item (e.g. a
	// link element).
	Refine map[string]map[string][]*Item

	// Links lists the metadata <link> declarations in document order.
	Links []Link
}

// maxRefineDepth bounds refinement-chain recursion. Real packages nest two
// or three levels; anything deeper is adversarial input.
const maxRefineDepth = 100

// resolveItemHierarchy builds the refinement forest from a flat item list
// and returns the root items with their Children populated.
//
// An item is a root when it refines nothing, or when its refines target
// does not match any known item id (dangling references degrade to roots).
// Resolution is depth-first with sibling order preserved; a visited-id set
// along each chain breaks cycles, so an item never ends up in its own
// transitive children.
func resolveItemHierarchy(items []*Item) []*Item {
	ids := make(map[string]bool, len(items))
	for _, it := range items {
		if it.ID != "" {
			ids[it.ID] = true
		}
	}

	byRefines := make(map[string][]*Item)
	for _, it := range items {
		if it.Refines != "" && ids[it.Refines] {
			byRefines[it.Refines] = append(byRefines[it.Refines], it)
		}
	}

	var roots []*Item
	for _, it := range items {
		if it.Refines == "" || !ids[it.Refines] {
			roots = append(roots, materializeItem(it, byRefines, nil))
		}
	}
	return roots
}

// materializeItem returns a copy of it with all refining items attached as
// children, recursively. visited holds the ids already seen along the
// current chain; refining items whose id is in the set are omitted.
func materializeItem(it *Item, byRefines map[string][]*Item, visited map[string]bool) *Item {
	out := &Item{
		Property: it.Property,
		Value:    it.Value,
		Lang:     it.Lang,
		Scheme:   it.Scheme,
		Refines:  it.Refines,
		ID:       it.ID,
	}

	// Preserve children attached before resolution (legacy-attribute
	// synthesis, or re-resolution of an already-resolved forest).
	for _, group := range it.Children {
		for _, c := range group {
			out.addChild(c)
		}
	}

	if it.ID == "" || len(visited) >= maxRefineDepth {
		return out
	}

	chain := make(map[string]bool, len(visited)+1)
	for id := range visited {
		chain[id] = true
	}
	chain[it.ID] = true

	for _, c := range byRefines[it.ID] {
		if c.ID != "" && chain[c.ID] {
			continue
		}
		out.addChild(materializeItem(c, byRefines, chain))
	}
	return out
}

// partitionItems splits the resolved roots into the global and refine sets.
// Roots with a (dangling or non-item) refines target stay addressable via
// the refine map.
func partitionItems(roots []*Item) (global map[string][]*Item, refine map[string]map[string][]*Item) {
	global = make(map[string][]*Item)
	refine = make(map[string]map[string][]*Item)

	for _, it := range roots {
		if it.Refines == "" {
			global[it.Property] = append(global[it.Property], it)
			continue
		}
		byProp := refine[it.Refines]
		if byProp == nil {
			byProp = make(map[string][]*Item)
			refine[it.Refines] = byProp
		}
		byProp[it.Property] = append(byProp[it.Property], it)
	}
	return global, refine
}
