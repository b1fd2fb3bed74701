package opf

import (
	"reflect"
	"testing"
)

func TestResolveItemHierarchyNesting(t *testing.T) {
	items := []*Item{
		{Property: propDCTitle, Value: "Main Title", ID: "t1"},
		{Property: propTitleType, Value: "main", Refines: "t1", ID: "tt1"},
		{Property: propFileAs, Value: "Title, Main", Refines: "t1"},
		{Property: propDCCreator, Value: "Jane Smith", ID: "c1"},
		{Property: propRole, Value: "aut", Refines: "c1"},
	}

	roots := resolveItemHierarchy(items)
	if len(roots) != 2 {
		t.Fatalf("got %d roots, want 2", len(roots))
	}

	title := roots[0]
	if title.Value != "Main Title" {
		t.Fatalf("first root = %q, want title", title.Value)
	}
	if got := title.childValue(propTitleType); got != "main" {
		t.Errorf("title-type child = %q, want main", got)
	}
	if got := title.childValue(propFileAs); got != "Title, Main" {
		t.Errorf("file-as child = %q, want %q", got, "Title, Main")
	}

	creator := roots[1]
	if got := creator.childValue(propRole); got != "aut" {
		t.Errorf("role child = %q, want aut", got)
	}
}

func TestResolveItemHierarchyDeepChain(t *testing.T) {
	items := []*Item{
		{Property: propDCTitle, Value: "Title", ID: "a"},
		{Property: propFileAs, Value: "sort", Refines: "a", ID: "b"},
		{Property: propDisplaySeq, Value: "1", Refines: "b", ID: "c"},
	}

	roots := resolveItemHierarchy(items)
	if len(roots) != 1 {
		t.Fatalf("got %d roots, want 1", len(roots))
	}
	fileAs := roots[0].child(propFileAs)
	if fileAs == nil {
		t.Fatal("missing file-as child")
	}
	if got := fileAs.childValue(propDisplaySeq); got != "1" {
		t.Errorf("grandchild display-seq = %q, want 1", got)
	}
}

func TestResolveItemHierarchyDanglingRefines(t *testing.T) {
	items := []*Item{
		{Property: propFileAs, Value: "orphan", Refines: "nonexistent", ID: "x"},
	}

	roots := resolveItemHierarchy(items)
	if len(roots) != 1 {
		t.Fatalf("dangling refines must degrade to root, got %d roots", len(roots))
	}
	if roots[0].Refines != "nonexistent" {
		t.Errorf("refines target must be preserved, got %q", roots[0].Refines)
	}
}

func TestResolveItemHierarchyPureCycle(t *testing.T) {
	// A refines B and B refines A: no member is a root, the whole
	// component is unreachable and must be dropped without looping.
	items := []*Item{
		{Property: propFileAs, Value: "A", ID: "a", Refines: "b"},
		{Property: propFileAs, Value: "B", ID: "b", Refines: "a"},
	}

	roots := resolveItemHierarchy(items)
	if len(roots) != 0 {
		t.Fatalf("got %d roots, want 0", len(roots))
	}
}

func TestResolveItemHierarchyDuplicateIDCycle(t *testing.T) {
	// Two items share an id and the second refines it; without the
	// visited set the root would contain itself.
	items := []*Item{
		{Property: propDCTitle, Value: "Title", ID: "t"},
		{Property: propFileAs, Value: "loop", ID: "t", Refines: "t"},
	}

	roots := resolveItemHierarchy(items)
	for _, root := range roots {
		assertNotInChildren(t, root, root.ID, nil)
	}
}

// assertNotInChildren walks the children of root and fails when id occurs
// more often than the visited chain allows (i.e. an item contains itself).
func assertNotInChildren(t *testing.T, it *Item, id string, path []string) {
	t.Helper()
	for _, group := range it.Children {
		for _, c := range group {
			if c.ID == id {
				t.Fatalf("item %q contains itself via %v", id, path)
			}
			assertNotInChildren(t, c, id, append(path, c.Property))
		}
	}
}

func TestResolveItemHierarchyIdempotent(t *testing.T) {
	items := []*Item{
		{Property: propDCTitle, Value: "Title", ID: "t1"},
		{Property: propFileAs, Value: "Title, The", Refines: "t1"},
		{Property: propDCCreator, Value: "Someone", ID: "c1"},
		{Property: propRole, Value: "aut", Refines: "c1", ID: "r1"},
	}

	once := resolveItemHierarchy(items)
	twice := resolveItemHierarchy(once)
	if !reflect.DeepEqual(once, twice) {
		t.Errorf("hierarchy resolution is not idempotent:\nonce:  %+v\ntwice: %+v", once, twice)
	}
}

func TestPartitionItems(t *testing.T) {
	roots := []*Item{
		{Property: propDCTitle, Value: "Title"},
		{Property: propDCLanguage, Value: "en"},
		{Property: propDCLanguage, Value: "fr"},
		// Refines a link element id: stays addressable via the refine map.
		{Property: propFileAs, Value: "record sort", Refines: "rec"},
	}

	global, refine := partitionItems(roots)

	if got := len(global[propDCLanguage]); got != 2 {
		t.Errorf("global languages = %d, want 2", got)
	}
	if _, ok := global[propFileAs]; ok {
		t.Error("refining item must not appear in global")
	}
	byProp, ok := refine["rec"]
	if !ok {
		t.Fatal("missing refine entry for link target")
	}
	if got := byProp[propFileAs][0].Value; got != "record sort" {
		t.Errorf("refine item value = %q", got)
	}
}
