package search

import "testing"

// testRegistry declares a small blog model:
//
//	Article -> Author (belongs to), Comments (has many), Tags (text array)
//	Comment -> Author (belongs to)
//	Node    -> Parent (self reference, full-text annotated)
//	Counter has no string fields
func testRegistry(t testing.TB) *Registry {
	t.Helper()

	reg, err := NewRegistry(
		NewSchema("Article", "",
			Int("Id"),
			String("Title").Searchable(),
			String("Body"),
			Int("Views"),
			Strings("Tags"),
			BelongsTo("Author", "Author", "author_id").Searchable("Name"),
			HasMany("Comments", "Comment", "article_id"),
		),
		NewSchema("Author", "",
			Int("Id"),
			String("Name"),
			String("Email"),
		),
		NewSchema("Comment", "",
			Int("Id"),
			String("Text"),
			Int("ArticleId"),
			BelongsTo("Author", "Author", "author_id"),
		),
		NewSchema("Node", "",
			String("Name").Searchable(),
			BelongsTo("Parent", "Node", "parent_id").Searchable(),
		),
		NewSchema("Counter", "",
			Int("Id"),
			Int("Value"),
		),
	)
	if err != nil {
		t.Fatalf("build registry: %v", err)
	}
	if err := reg.Validate(); err != nil {
		t.Fatalf("validate registry: %v", err)
	}
	return reg
}

func mustSchema(t testing.TB, reg *Registry, name string) *Schema {
	t.Helper()
	s, err := reg.Schema(name)
	if err != nil {
		t.Fatalf("schema %s: %v", name, err)
	}
	return s
}

func mustResolve(t testing.TB, reg *Registry, s *Schema, path string) Path {
	t.Helper()
	segs, err := Resolve(reg, s, path)
	if err != nil {
		t.Fatalf("resolve %s: %v", path, err)
	}
	return segs
}
