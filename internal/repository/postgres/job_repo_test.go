package postgres

import (
	"testing"

	"go-jobboard-backend/internal/domain"

	"github.com/stretchr/testify/assert"
)

func TestActiveJobsQuery(t *testing.T) {
	t.Run("Should serve only active jobs newest first with no filters", func(t *testing.T) {
		query, args := activeJobsQuery(domain.JobFilter{})
		assert.Contains(t, query, "WHERE j.is_active = TRUE")
		assert.Contains(t, query, "ORDER BY j.created_at DESC")
		assert.Empty(t, args)
	})

	t.Run("Should match search against title or company with one pattern", func(t *testing.T) {
		query, args := activeJobsQuery(domain.JobFilter{Search: "engineer"})
		assert.Contains(t, query, "(j.title ILIKE $1 OR j.company ILIKE $1)")
		assert.Equal(t, []interface{}{"%engineer%"}, args)
	})

	t.Run("Should use array overlap for the tag set", func(t *testing.T) {
		query, args := activeJobsQuery(domain.JobFilter{Tags: []string{"React", "Node.js"}})
		assert.Contains(t, query, "j.tags && $1")
		assert.Equal(t, []interface{}{[]string{"React", "Node.js"}}, args)
	})

	t.Run("Should AND all filters with sequential placeholders", func(t *testing.T) {
		query, args := activeJobsQuery(domain.JobFilter{
			Search:   "go",
			Location: "berlin",
			JobType:  domain.JobTypeRemote,
			Tags:     []string{"go"},
		})
		assert.Contains(t, query, "(j.title ILIKE $1 OR j.company ILIKE $1)")
		assert.Contains(t, query, "AND j.location ILIKE $2")
		assert.Contains(t, query, "AND j.job_type = $3")
		assert.Contains(t, query, "AND j.tags && $4")
		assert.Contains(t, query, "WHERE j.is_active = TRUE")
		assert.Len(t, args, 4)
		assert.Equal(t, domain.JobTypeRemote, args[2])
	})
}
