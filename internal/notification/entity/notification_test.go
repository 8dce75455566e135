package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWelcome_DedupKey(t *testing.T) {
	assert.Equal(t, "welcome:event:ev-1", Welcome{EventID: "ev-1", UserID: "7"}.DedupKey())
	assert.Equal(t, "welcome:user:7", Welcome{UserID: "7"}.DedupKey())
}

func TestWelcome_IsAuthor(t *testing.T) {
	assert.True(t, Welcome{Kind: "book_author"}.IsAuthor())
	assert.False(t, Welcome{Kind: "customer"}.IsAuthor())
}
