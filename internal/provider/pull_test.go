package provider

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeClient struct {
	ids      []string
	listErr  error
	messages map[string]Message
	sent     [][]byte
}

func (f *fakeClient) ListMessages(ctx context.Context, max int) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	if max < len(f.ids) {
		return f.ids[:max], nil
	}
	return f.ids, nil
}

func (f *fakeClient) GetMessage(ctx context.Context, id string) (Message, error) {
	msg, ok := f.messages[id]
	if !ok {
		return Message{}, errors.New("not found")
	}
	return msg, nil
}

func (f *fakeClient) SendRaw(ctx context.Context, raw []byte) error {
	f.sent = append(f.sent, raw)
	return nil
}

func TestFormatLine(t *testing.T) {
	self := "me@example.com"

	line := FormatLine(Message{Subject: "Lunch?", From: "Alice <alice@example.com>"}, self)
	assert.Equal(t, "Alice <alice@example.com>: Lunch?", line)

	line = FormatLine(Message{Subject: "Re: Lunch?", From: "Nam <me@example.com>"}, self)
	assert.Equal(t, "Me: Re: Lunch?", line)

	// An empty own address matches every sender. Observed contract,
	// kept as-is.
	line = FormatLine(Message{Subject: "x", From: "anyone@example.com"}, "")
	assert.Equal(t, "Me: x", line)
}

func TestPullFormatsInListOrder(t *testing.T) {
	c := &fakeClient{
		ids: []string{"m1", "m2"},
		messages: map[string]Message{
			"m1": {Subject: "hi", From: "alice@example.com"},
			"m2": {Subject: "yo", From: "me@example.com"},
		},
	}

	lines := Pull(context.Background(), c, "me@example.com", 10)
	assert.Equal(t, []string{"alice@example.com: hi", "Me: yo"}, lines)
}

func TestPullSkipsFailedFetches(t *testing.T) {
	c := &fakeClient{
		ids: []string{"m1", "gone", "m3"},
		messages: map[string]Message{
			"m1": {Subject: "a", From: "x@example.com"},
			"m3": {Subject: "b", From: "y@example.com"},
		},
	}

	lines := Pull(context.Background(), c, "me@example.com", 10)
	assert.Equal(t, []string{"x@example.com: a", "y@example.com: b"}, lines)
}

func TestPullListFailureYieldsNothing(t *testing.T) {
	c := &fakeClient{listErr: errors.New("network down")}

	lines := Pull(context.Background(), c, "me@example.com", 10)
	assert.Empty(t, lines)
}
