package session

import (
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yarberjoseph/seo-analyst-agent/internal/model"
)

func result(id string) model.AnalysisResult {
	return model.AnalysisResult{ID: id, Keyword: "kw " + id, Domain: "d.com"}
}

func TestStoreEmpty(t *testing.T) {
	s := NewStore()

	assert.Equal(t, 0, s.Len())
	_, ok := s.Latest()
	assert.False(t, ok)
	assert.Nil(t, s.Last(5))
	_, ok = s.Get("missing")
	assert.False(t, ok)
}

func TestStoreAppendAndLatest(t *testing.T) {
	s := NewStore()
	s.Append(result("a"))
	s.Append(result("b"))

	assert.Equal(t, 2, s.Len())
	latest, ok := s.Latest()
	require.True(t, ok)
	assert.Equal(t, "b", latest.ID)
}

func TestStoreLast(t *testing.T) {
	s := NewStore()
	for _, id := range []string{"a", "b", "c", "d"} {
		s.Append(result(id))
	}

	last := s.Last(3)
	require.Len(t, last, 3)
	// Oldest first within the window.
	assert.Equal(t, "b", last[0].ID)
	assert.Equal(t, "d", last[2].ID)

	assert.Len(t, s.Last(10), 4)
	assert.Nil(t, s.Last(0))
}

func TestStoreLastReturnsCopy(t *testing.T) {
	s := NewStore()
	s.Append(result("a"))

	last := s.Last(1)
	last[0].ID = "mutated"

	latest, _ := s.Latest()
	assert.Equal(t, "a", latest.ID)
}

func TestStoreGet(t *testing.T) {
	s := NewStore()
	s.Append(result("a"))
	s.Append(result("b"))

	got, ok := s.Get("a")
	require.True(t, ok)
	assert.Equal(t, "kw a", got.Keyword)

	_, ok = s.Get("z")
	assert.False(t, ok)
}

func TestStoreConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s.Append(result(fmt.Sprintf("r%d", i)))
			s.Latest()
			s.Last(5)
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 20, s.Len())
}
