package model

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"calchat/config"
	"calchat/webhook"
)

type fakeWebhook struct {
	calls     int
	endpoints []string
	requests  []webhook.Request

	reply string
	err   error
}

func (f *fakeWebhook) Send(_ context.Context, endpoint string, req webhook.Request) (string, error) {
	f.calls++
	f.endpoints = append(f.endpoints, endpoint)
	f.requests = append(f.requests, req)
	return f.reply, f.err
}

func newTestModel(t *testing.T, url string, hook *fakeWebhook) *Model {
	t.Helper()
	cfg := &config.Config{
		WebhookURL: url,
		Greeting:   config.DefaultGreeting,
	}
	return NewModel(cfg, hook, "test", "MIT")
}

func runTurn(t *testing.T, m *Model, text string) Message {
	t.Helper()
	cmd := m.Submit(text)
	require.NotNil(t, cmd)
	require.Equal(t, PhaseSending, m.Phase)

	reply, ok := cmd().(ReplyMsg)
	require.True(t, ok)
	return m.ApplyReply(reply)
}

func TestNewModelGreeting(t *testing.T) {
	m := newTestModel(t, "", &fakeWebhook{})

	all := m.Conversation.All()
	require.Len(t, all, 1)
	require.Equal(t, SenderAssistant, all[0].Sender)
	require.Equal(t, config.DefaultGreeting, all[0].Text)
	require.Equal(t, PhaseIdle, m.Phase)
	require.False(t, m.Configured())
	require.Regexp(t, `^session_\d+_[0-9a-f]{9}$`, m.SessionID)
}

func TestNewModelWithoutGreeting(t *testing.T) {
	m := NewModel(&config.Config{}, &fakeWebhook{}, "test", "MIT")
	require.Equal(t, 0, m.Conversation.Len())
}

func TestSetEndpointTrims(t *testing.T) {
	m := newTestModel(t, "", &fakeWebhook{})

	m.SetEndpoint("   ")
	require.False(t, m.Configured())

	m.SetEndpoint("  https://hooks.example.com/cal  ")
	require.True(t, m.Configured())
	require.Equal(t, "https://hooks.example.com/cal", m.Endpoint())

	m.SetEndpoint("")
	require.False(t, m.Configured())
}

func TestSubmitRejected(t *testing.T) {
	hook := &fakeWebhook{reply: "ok"}

	t.Run("not configured", func(t *testing.T) {
		m := newTestModel(t, "", hook)
		before := m.Conversation.Len()
		require.Nil(t, m.Submit("hello"))
		require.Equal(t, before, m.Conversation.Len())
		require.Equal(t, PhaseIdle, m.Phase)
	})

	t.Run("blank text", func(t *testing.T) {
		m := newTestModel(t, "http://hook", hook)
		before := m.Conversation.Len()
		for _, text := range []string{"", "   ", "\n\t "} {
			require.Nil(t, m.Submit(text))
		}
		require.Equal(t, before, m.Conversation.Len())
		require.Equal(t, PhaseIdle, m.Phase)
	})

	require.Zero(t, hook.calls)
}

func TestSubmitWhileSendingIsDropped(t *testing.T) {
	hook := &fakeWebhook{reply: "ok"}
	m := newTestModel(t, "http://hook", hook)

	cmd := m.Submit("first")
	require.NotNil(t, cmd)
	lenDuring := m.Conversation.Len()

	require.False(t, m.CanSend("second"))
	require.Nil(t, m.Submit("second"))
	require.Equal(t, lenDuring, m.Conversation.Len())

	m.ApplyReply(cmd().(ReplyMsg))
	require.Equal(t, 1, hook.calls)
	require.Equal(t, "first", hook.requests[0].Message)
}

func TestTurnSuccess(t *testing.T) {
	hook := &fakeWebhook{reply: "You have 2 meetings tomorrow."}
	m := newTestModel(t, " http://hook/cal ", hook)
	m.Banner = "Failed to send message: stale"

	cmd := m.Submit("What's on tomorrow?")
	require.Empty(t, m.Banner, "a new send clears the banner")

	user, ok := m.Conversation.Last()
	require.True(t, ok)
	require.Equal(t, SenderUser, user.Sender)
	require.Equal(t, "What's on tomorrow?", user.Text)

	reply := m.ApplyReply(cmd().(ReplyMsg))
	require.Equal(t, SenderAssistant, reply.Sender)
	require.Equal(t, "You have 2 meetings tomorrow.", reply.Text)
	require.Equal(t, PhaseIdle, m.Phase)
	require.Empty(t, m.Banner)
	require.Equal(t, 3, m.Conversation.Len())

	require.Equal(t, []string{"http://hook/cal"}, hook.endpoints)
	req := hook.requests[0]
	require.Equal(t, "What's on tomorrow?", req.Message)
	require.Equal(t, m.SessionID, req.SessionID)
	require.Equal(t, user.Timestamp.UTC().Format(webhook.TimestampLayout), req.Timestamp)
}

func TestTurnFailure(t *testing.T) {
	hook := &fakeWebhook{err: &webhook.TransportError{StatusCode: 500}}
	m := newTestModel(t, "http://hook", hook)

	notice := runTurn(t, m, "hi")

	require.Equal(t, SenderSystem, notice.Sender)
	require.Equal(t, FailureNotice, notice.Text)
	require.Equal(t, PhaseIdle, m.Phase)
	require.Equal(t, "Failed to send message: HTTP error! status: 500", m.Banner)

	// user message is kept
	all := m.Conversation.All()
	require.Equal(t, SenderUser, all[len(all)-2].Sender)
	require.Equal(t, "hi", all[len(all)-2].Text)

	m.DismissBanner()
	require.Empty(t, m.Banner)
}

func TestSessionIDStableAcrossTurns(t *testing.T) {
	hook := &fakeWebhook{reply: "ok"}
	m := newTestModel(t, "http://hook", hook)

	runTurn(t, m, "one")
	hook.err = errors.New("boom")
	runTurn(t, m, "two")
	hook.err = nil
	runTurn(t, m, "three")

	require.Len(t, hook.requests, 3)
	for _, req := range hook.requests {
		require.Equal(t, m.SessionID, req.SessionID)
	}
}

func TestEndpointChangeAppliesToNextSend(t *testing.T) {
	hook := &fakeWebhook{reply: "ok"}
	m := newTestModel(t, "http://first", hook)

	runTurn(t, m, "one")
	m.SetEndpoint("http://second")
	runTurn(t, m, "two")

	require.Equal(t, []string{"http://first", "http://second"}, hook.endpoints)
}

func TestUserTextSentVerbatim(t *testing.T) {
	hook := &fakeWebhook{reply: "ok"}
	m := newTestModel(t, "http://hook", hook)

	runTurn(t, m, "  padded\nmulti-line  ")

	require.Equal(t, "  padded\nmulti-line  ", hook.requests[0].Message)
}

func TestTranscript(t *testing.T) {
	hook := &fakeWebhook{reply: "Sure."}
	m := newTestModel(t, "http://hook", hook)
	runTurn(t, m, "Book lunch")

	out := m.Transcript()
	require.Contains(t, out, "Assistant:\n"+config.DefaultGreeting)
	require.Contains(t, out, "You:\nBook lunch")
	require.Contains(t, out, "Assistant:\nSure.")
}

func TestSearch(t *testing.T) {
	hook := &fakeWebhook{err: errors.New("down")}
	m := newTestModel(t, "http://hook", hook)
	runTurn(t, m, "schedule dentist appointment")

	require.Empty(t, m.Search(""))

	matches := m.Search("dentist")
	require.Len(t, matches, 1)
	require.Equal(t, SenderUser, matches[0].Sender)
	require.Equal(t, 1, matches[0].MessageIndex)

	// system notices are not searchable
	for _, match := range m.Search("Error") {
		require.NotEqual(t, SenderSystem, match.Sender)
	}
}

func TestSearchPreviewTruncates(t *testing.T) {
	long := ""
	for i := 0; i < 30; i++ {
		long += "meeting "
	}
	preview := searchPreview(long)
	require.LessOrEqual(t, len(preview), searchPreviewWidth)
	require.True(t, len(preview) > 3 && preview[len(preview)-3:] == "...")
}

func TestPhaseString(t *testing.T) {
	require.Equal(t, "idle", PhaseIdle.String())
	require.Equal(t, "sending", PhaseSending.String())
}
