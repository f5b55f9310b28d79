package transport

import (
	"context"
	"testing"

	"guard_bot/internal/model"
)

func TestIsGroup(t *testing.T) {
	tests := []struct {
		scope string
		want  bool
	}{
		{scope: "12345@g.us", want: true},
		{scope: "friend@s.net", want: false},
		{scope: "status@broadcast", want: false},
		{scope: "", want: false},
	}
	for _, tt := range tests {
		if got := IsGroup(tt.scope); got != tt.want {
			t.Errorf("IsGroup(%q) = %v, want %v", tt.scope, got, tt.want)
		}
	}
}

func TestContentConstructors(t *testing.T) {
	if c := Text("hi"); c.Kind != ContentText || c.Text != "hi" {
		t.Errorf("Text() = %+v", c)
	}

	c := Media(model.MediaVideo, []byte("x"), "caption")
	if c.Kind != ContentMedia || c.MediaKind != model.MediaVideo || c.Caption != "caption" {
		t.Errorf("Media() = %+v", c)
	}

	key := model.EventKey{ID: "m1", ScopeID: "chat@g.us", Sender: "user@s.net"}
	if c := Reaction("🔥", key); c.Kind != ContentReaction || c.Emoji != "🔥" || c.ReactTo != key {
		t.Errorf("Reaction() = %+v", c)
	}
}

type nopClient struct{}

func (nopClient) Events() <-chan model.Event                  { return nil }
func (nopClient) Send(context.Context, string, Content) error { return nil }
func (nopClient) DownloadMedia(context.Context, model.Event) ([]byte, error) {
	return nil, nil
}
func (nopClient) MarkRead(context.Context, []model.EventKey) error { return nil }
func (nopClient) GroupMetadata(context.Context, string) (GroupInfo, error) {
	return GroupInfo{}, nil
}
func (nopClient) SelfID() string { return "bot@s.net" }

func TestDial(t *testing.T) {
	t.Cleanup(func() { dialer = nil })

	dialer = nil
	if _, err := Dial(DialOptions{}); err == nil {
		t.Fatal("Dial succeeded with no registered client")
	}

	var gotOpts DialOptions
	RegisterDialer(func(opts DialOptions) (Client, error) {
		gotOpts = opts
		return nopClient{}, nil
	})

	client, err := Dial(DialOptions{SessionDir: "/tmp/session"})
	if err != nil {
		t.Fatalf("dial: %v", err)
	}
	if client.SelfID() != "bot@s.net" {
		t.Errorf("SelfID = %q", client.SelfID())
	}
	if gotOpts.SessionDir != "/tmp/session" {
		t.Errorf("session dir = %q", gotOpts.SessionDir)
	}
}
