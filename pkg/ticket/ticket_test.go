package ticket

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtract(t *testing.T) {
	t.Run("single bracketed id in summary", func(t *testing.T) {
		assert.Equal(t, []string{"ABC-123"}, Extract("work on [ABC-123]", ""))
	})

	t.Run("braced id is accepted too", func(t *testing.T) {
		assert.Equal(t, []string{"ABC-123"}, Extract("work on {ABC-123}", ""))
	})

	t.Run("two ids in one summary, left to right", func(t *testing.T) {
		assert.Equal(t, []string{"ABC-1", "ABC-2"}, Extract("work [ABC-1][ABC-2]", ""))
	})

	t.Run("summary ids come before description ids", func(t *testing.T) {
		assert.Equal(t, []string{"DEF-2", "ABC-1"}, Extract("standup [DEF-2]", "notes [ABC-1]"))
	})

	t.Run("duplicate ids across fields are both emitted", func(t *testing.T) {
		assert.Equal(t, []string{"ABC-1", "ABC-1"}, Extract("[ABC-1]", "[ABC-1]"))
	})

	t.Run("id without brackets is ignored", func(t *testing.T) {
		assert.Nil(t, Extract("work on ABC-123", "ABC-456"))
	})

	t.Run("malformed references are ignored", func(t *testing.T) {
		assert.Nil(t, Extract("[ABC123] [123-ABC] [-1] [ABC-]", ""))
	})

	t.Run("no fields at all", func(t *testing.T) {
		assert.Nil(t, Extract("", ""))
	})

	t.Run("mixed brackets and braces keep discovery order", func(t *testing.T) {
		assert.Equal(t, []string{"AA-1", "BB-2", "CC-3"}, Extract("{AA-1} then [BB-2]", "{CC-3}"))
	})
}
