package search

import (
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPathCache_AnnotatedFieldsWithOverride(t *testing.T) {
	reg := testRegistry(t)
	cache := NewPathCache(reg, Config{}, nil)

	paths := cache.Paths(mustSchema(t, reg, "Article"))
	assert.Equal(t, []string{"Title", "Author.Name"}, paths)
}

func TestPathCache_DefaultsToStringFields(t *testing.T) {
	reg := testRegistry(t)
	cache := NewPathCache(reg, Config{}, nil)

	assert.Equal(t, []string{"Name", "Email"}, cache.Paths(mustSchema(t, reg, "Author")))
	assert.Equal(t, []string{"Text"}, cache.Paths(mustSchema(t, reg, "Comment")))
	assert.Empty(t, cache.Paths(mustSchema(t, reg, "Counter")))
}

func TestPathCache_CycleTerminatesAtDepthBound(t *testing.T) {
	reg := testRegistry(t)
	cache := NewPathCache(reg, Config{}, nil)

	paths := cache.Paths(mustSchema(t, reg, "Node"))
	require.Len(t, paths, DefaultMaxDepth)

	assert.Equal(t, "Name", paths[0])
	assert.Equal(t, "Parent.Name", paths[1])
	deepest := paths[len(paths)-1]
	assert.Equal(t, DefaultMaxDepth-1, strings.Count(deepest, "Parent."))
}

func TestPathCache_ConfiguredDepth(t *testing.T) {
	reg := testRegistry(t)
	cache := NewPathCache(reg, Config{MaxDepth: 3}, nil)

	assert.Equal(t, []string{"Name", "Parent.Name", "Parent.Parent.Name"}, cache.Paths(mustSchema(t, reg, "Node")))
}

func TestPathCache_OverrideThroughCollection(t *testing.T) {
	reg, err := NewRegistry(
		NewSchema("Post", "",
			String("Title"),
			HasMany("Replies", "Reply", "post_id").Searchable("Text", "Author.Name"),
		),
		NewSchema("Reply", "", String("Text"), String("Mood"), BelongsTo("Author", "Author", "author_id")),
		NewSchema("Author", "", String("Name"), String("Email")),
	)
	require.NoError(t, err)

	cache := NewPathCache(reg, Config{}, nil)
	post, _ := reg.Schema("Post")
	assert.Equal(t, []string{"Replies.Text", "Replies.Author.Name"}, cache.Paths(post))
}

func TestPathCache_ReturnsCopies(t *testing.T) {
	reg := testRegistry(t)
	cache := NewPathCache(reg, Config{}, nil)
	article := mustSchema(t, reg, "Article")

	first := cache.Paths(article)
	first[0] = "mutated"
	assert.Equal(t, "Title", cache.Paths(article)[0])
}

func TestPathCache_ConcurrentFirstAccess(t *testing.T) {
	reg := testRegistry(t)
	cache := NewPathCache(reg, Config{}, nil)
	node := mustSchema(t, reg, "Node")

	const workers = 32
	results := make([][]string, workers)

	var wg sync.WaitGroup
	start := make(chan struct{})
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-start
			results[i] = cache.Paths(node)
		}()
	}
	close(start)
	wg.Wait()

	for i := 1; i < workers; i++ {
		assert.Equal(t, results[0], results[i])
	}
}
