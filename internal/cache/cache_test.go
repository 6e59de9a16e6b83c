package cache

import (
	"testing"
	"time"

	"roboscout/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRankingCache(t *testing.T) {
	c := New(time.Minute, time.Minute)

	_, ok := c.Get("overall")
	assert.False(t, ok)

	rows := []domain.RankingRow{{Rank: 1, TeamNumber: "254"}}
	c.Set("overall", rows)
	rows[0].TeamNumber = "mutated"

	got, ok := c.Get("overall")
	require.True(t, ok)
	assert.Equal(t, "254", got[0].TeamNumber)
	assert.Equal(t, 1, c.ItemCount())

	got[0].TeamNumber = "mutated"
	again, ok := c.Get("overall")
	require.True(t, ok)
	assert.Equal(t, "254", again[0].TeamNumber)

	c.Invalidate()
	_, ok = c.Get("overall")
	assert.False(t, ok)
	assert.Equal(t, 0, c.ItemCount())
}

func TestRankingCache_Expires(t *testing.T) {
	c := New(20*time.Millisecond, time.Minute)
	c.Set("auto", []domain.RankingRow{{Rank: 1}})

	time.Sleep(40 * time.Millisecond)
	_, ok := c.Get("auto")
	assert.False(t, ok)
}

func TestRankingCache_SetIfGeneration(t *testing.T) {
	c := New(time.Minute, time.Minute)
	rows := []domain.RankingRow{{Rank: 1, TeamNumber: "254"}}

	gen := c.Generation()
	assert.True(t, c.SetIfGeneration("overall", gen, rows))
	_, ok := c.Get("overall")
	assert.True(t, ok)

	stale := c.Generation()
	c.Invalidate()
	assert.Equal(t, stale+1, c.Generation())

	assert.False(t, c.SetIfGeneration("overall", stale, rows))
	_, ok = c.Get("overall")
	assert.False(t, ok, "rows read before an invalidation must not be cached")

	assert.True(t, c.SetIfGeneration("overall", c.Generation(), rows))
}
