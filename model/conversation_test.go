package model

import (
	"fmt"
	"regexp"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestConversationAppendOrderAndIDs(t *testing.T) {
	c := NewConversation()

	a := c.Append(SenderUser, "first")
	b := c.Append(SenderAssistant, "second")
	s := c.Append(SenderSystem, "third")

	all := c.All()
	require.Len(t, all, 3)
	require.Equal(t, []string{"first", "second", "third"}, []string{all[0].Text, all[1].Text, all[2].Text})
	require.NotEqual(t, a.ID, b.ID)
	require.NotEqual(t, b.ID, s.ID)
	require.NotEqual(t, a.ID, s.ID)

	last, ok := c.Last()
	require.True(t, ok)
	require.Equal(t, s, last)
}

func TestConversationTimestampsNeverDecrease(t *testing.T) {
	base := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	clock := []time.Time{base, base.Add(-time.Minute), base.Add(time.Second)}
	i := 0
	n := 0

	c := &Conversation{
		now: func() time.Time {
			ts := clock[i]
			i++
			return ts
		},
		newID: func() string {
			n++
			return fmt.Sprintf("id-%d", n)
		},
	}

	first := c.Append(SenderUser, "a")
	second := c.Append(SenderAssistant, "b")
	third := c.Append(SenderUser, "c")

	require.Equal(t, base, first.Timestamp)
	require.Equal(t, base, second.Timestamp, "clock step back is clamped")
	require.Equal(t, base.Add(time.Second), third.Timestamp)
}

func TestConversationAllIsACopy(t *testing.T) {
	c := NewConversation()
	c.Append(SenderUser, "original")

	all := c.All()
	all[0].Text = "mutated"

	require.Equal(t, "original", c.All()[0].Text)
}

func TestConversationLastFrom(t *testing.T) {
	c := NewConversation()
	_, ok := c.LastFrom(SenderAssistant)
	require.False(t, ok)

	_, ok = c.Last()
	require.False(t, ok)

	c.Append(SenderAssistant, "one")
	c.Append(SenderUser, "q")
	c.Append(SenderAssistant, "two")
	c.Append(SenderSystem, "oops")

	msg, ok := c.LastFrom(SenderAssistant)
	require.True(t, ok)
	require.Equal(t, "two", msg.Text)
	require.Equal(t, 4, c.Len())
}

func TestNewSessionIDFormat(t *testing.T) {
	now := time.UnixMilli(1760882400123)
	id := NewSessionID(now)

	require.Regexp(t, regexp.MustCompile(`^session_1760882400123_[0-9a-f]{9}$`), id)
	require.NotEqual(t, id, NewSessionID(now))
}
