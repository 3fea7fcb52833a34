package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPairKeyFor(t *testing.T) {
	assert.Equal(t, "2:7", PairKeyFor(2, 7))
	assert.Equal(t, "2:7", PairKeyFor(7, 2))
	assert.Equal(t, "3:3", PairKeyFor(3, 3))
	assert.Equal(t, PairKeyFor(10, 4), PairKeyFor(4, 10))
}

func TestConversation_OtherParticipant(t *testing.T) {
	conv := Conversation{User1ID: 2, User2ID: 7}

	assert.Equal(t, uint(7), conv.OtherParticipant(2))
	assert.Equal(t, uint(2), conv.OtherParticipant(7))
}

func TestConversation_Involves(t *testing.T) {
	conv := Conversation{User1ID: 2, User2ID: 7}

	assert.True(t, conv.Involves(2))
	assert.True(t, conv.Involves(7))
	assert.False(t, conv.Involves(5))
}

func TestConversation_BeforeCreate(t *testing.T) {
	conv := Conversation{User1ID: 9, User2ID: 4}
	assert.NoError(t, conv.BeforeCreate(nil))
	assert.Equal(t, "4:9", conv.PairKey)

	// an explicitly supplied key is kept
	preset := Conversation{User1ID: 9, User2ID: 4, PairKey: "4:9"}
	assert.NoError(t, preset.BeforeCreate(nil))
	assert.Equal(t, "4:9", preset.PairKey)
}
