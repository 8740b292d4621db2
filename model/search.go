package model

import (
	"strings"
	"time"

	"github.com/mattn/go-runewidth"
	"github.com/sahilm/fuzzy"
)

const searchPreviewWidth = 100

// SearchMatch is one message hit in the current conversation
type SearchMatch struct {
	MessageIndex int
	MessageID    string
	Sender       Sender
	Preview      string
	Timestamp    time.Time
	Score        int
}

type messageSource []Message

func (s messageSource) String(i int) string { return s[i].Text }
func (s messageSource) Len() int            { return len(s) }

// Search fuzzy-matches query against user and assistant messages, best match
// first. System notices are skipped.
func (m *Model) Search(query string) []SearchMatch {
	if strings.TrimSpace(query) == "" {
		return []SearchMatch{}
	}

	all := m.Conversation.All()
	candidates := make(messageSource, 0, len(all))
	indexes := make([]int, 0, len(all))
	for i, msg := range all {
		if msg.Sender == SenderSystem {
			continue
		}
		candidates = append(candidates, msg)
		indexes = append(indexes, i)
	}

	results := fuzzy.FindFrom(query, candidates)
	matches := make([]SearchMatch, 0, len(results))
	for _, r := range results {
		msg := candidates[r.Index]
		matches = append(matches, SearchMatch{
			MessageIndex: indexes[r.Index],
			MessageID:    msg.ID,
			Sender:       msg.Sender,
			Preview:      searchPreview(msg.Text),
			Timestamp:    msg.Timestamp,
			Score:        r.Score,
		})
	}
	return matches
}

func searchPreview(text string) string {
	flat := strings.Join(strings.Fields(text), " ")
	return runewidth.Truncate(flat, searchPreviewWidth, "...")
}
