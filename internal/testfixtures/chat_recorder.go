package testfixtures

import (
	"context"
	"fmt"
	"sync"

	"github.com/slack-go/slack"
)

// ChatCall records one gateway invocation.
type ChatCall struct {
	Method    string
	TeamID    string
	ChannelID string
	TS        string
	Fallback  string
	Blocks    []slack.Block
	Dialog    slack.Dialog
}

// ChatRecorder is an in-memory chat gateway that records every call. Posted
// messages are assigned sequential timestamps so follow-up updates can be
// matched to the message they target.
type ChatRecorder struct {
	mu       sync.Mutex
	calls    []ChatCall
	tsSerial int

	// Timezones maps user IDs to profile timezones. Lookups for unknown
	// users fail.
	Timezones map[string]string
}

// NewChatRecorder returns an empty recorder.
func NewChatRecorder() *ChatRecorder {
	return &ChatRecorder{Timezones: make(map[string]string)}
}

// Calls returns a copy of the recorded calls in order.
func (r *ChatRecorder) Calls() []ChatCall {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]ChatCall, len(r.calls))
	copy(out, r.calls)
	return out
}

// LastCall returns the most recent call, if any.
func (r *ChatRecorder) LastCall() (ChatCall, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.calls) == 0 {
		return ChatCall{}, false
	}
	return r.calls[len(r.calls)-1], true
}

func (r *ChatRecorder) PostMessage(_ context.Context, teamID, channelID, fallback string, blocks []slack.Block) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.tsSerial++
	ts := fmt.Sprintf("1700000000.%06d", r.tsSerial)
	r.calls = append(r.calls, ChatCall{
		Method: "post", TeamID: teamID, ChannelID: channelID, TS: ts,
		Fallback: fallback, Blocks: blocks,
	})
	return ts, nil
}

func (r *ChatRecorder) UpdateMessage(_ context.Context, teamID, channelID, ts, fallback string, blocks []slack.Block) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ChatCall{
		Method: "update", TeamID: teamID, ChannelID: channelID, TS: ts,
		Fallback: fallback, Blocks: blocks,
	})
	return nil
}

func (r *ChatRecorder) DeleteMessage(_ context.Context, teamID, channelID, ts string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ChatCall{Method: "delete", TeamID: teamID, ChannelID: channelID, TS: ts})
	return nil
}

func (r *ChatRecorder) OpenDialog(_ context.Context, teamID, triggerID string, dialog slack.Dialog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, ChatCall{Method: "dialog", TeamID: teamID, TS: triggerID, Dialog: dialog})
	return nil
}

func (r *ChatRecorder) UserTimezone(_ context.Context, _, userID string) (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	tz, ok := r.Timezones[userID]
	if !ok {
		return "", fmt.Errorf("testfixtures: no timezone for user %s", userID)
	}
	return tz, nil
}
