package pipeline

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"testing"

	"guard_bot/internal/blobstore"
	"guard_bot/internal/capture"
	"guard_bot/internal/model"
	"guard_bot/internal/notify"
	"guard_bot/internal/storage"
	"guard_bot/internal/transport"
)

const (
	testOwner  = "owner@s.net"
	testSender = "sender@s.net"
	testGroup  = "chat@g.us"
)

type sentMessage struct {
	Scope   string
	Content transport.Content
}

type fakeClient struct {
	self        string
	media       []byte
	mediaErr    error
	sent        []sentMessage
	marked      [][]model.EventKey
	markReadErr error
}

func (f *fakeClient) Events() <-chan model.Event { return nil }

func (f *fakeClient) Send(_ context.Context, scopeID string, c transport.Content) error {
	f.sent = append(f.sent, sentMessage{Scope: scopeID, Content: c})
	return nil
}

func (f *fakeClient) DownloadMedia(context.Context, model.Event) ([]byte, error) {
	return f.media, f.mediaErr
}

func (f *fakeClient) MarkRead(_ context.Context, keys []model.EventKey) error {
	if f.markReadErr != nil {
		return f.markReadErr
	}
	f.marked = append(f.marked, keys)
	return nil
}

func (f *fakeClient) GroupMetadata(context.Context, string) (transport.GroupInfo, error) {
	return transport.GroupInfo{}, nil
}

func (f *fakeClient) SelfID() string { return f.self }

func (f *fakeClient) sentTo(scope string) []transport.Content {
	var out []transport.Content
	for _, m := range f.sent {
		if m.Scope == scope {
			out = append(out, m.Content)
		}
	}
	return out
}

func newTestPipeline(t *testing.T, client *fakeClient) (*Pipeline, storage.Storage) {
	t.Helper()

	store, err := storage.NewSQLite(":memory:")
	if err != nil {
		t.Fatalf("new sqlite: %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	blobs, err := blobstore.New(t.TempDir())
	if err != nil {
		t.Fatalf("new blobstore: %v", err)
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	cap := capture.New(store, blobs, log)
	relay := notify.New(client, testOwner, log)
	return New(client, store, cap, relay, testOwner, "!", log), store
}

func enable(t *testing.T, store storage.Storage, scope string, patch model.SettingsPatch) {
	t.Helper()
	if _, err := store.UpdateSettings(context.Background(), scope, patch); err != nil {
		t.Fatalf("update settings: %v", err)
	}
}

func TestApplyAntiLinkConsumes(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)
	enable(t, store, testGroup, model.SettingsPatch{AntiLink: model.Bool(true)})

	ev := model.Event{ID: "m1", ScopeID: testGroup, SenderID: testSender, Kind: model.EventText, Text: "join https://spam.example.com now"}
	if !p.Apply(context.Background(), ev) {
		t.Fatal("link event not consumed")
	}

	warnings := client.sentTo(testGroup)
	if len(warnings) != 1 {
		t.Fatalf("expected 1 warning, got %d", len(warnings))
	}
	if !strings.Contains(warnings[0].Text, "Links are not allowed") {
		t.Errorf("warning text = %q", warnings[0].Text)
	}
	if warnings[0].QuoteID != "m1" {
		t.Errorf("warning quote id = %q, want m1", warnings[0].QuoteID)
	}
}

func TestApplyAntiLinkConsumesCommandLookalike(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)
	enable(t, store, testGroup, model.SettingsPatch{AntiLink: model.Bool(true)})

	// A prefixed message containing a link is still blocked; it never
	// reaches the command router.
	ev := model.Event{ID: "m1", ScopeID: testGroup, SenderID: testSender, Kind: model.EventText, Text: "!calc https://example.com"}
	if !p.Apply(context.Background(), ev) {
		t.Fatal("prefixed link event not consumed")
	}
}

func TestApplyAntiLinkDisabled(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, _ := newTestPipeline(t, client)

	ev := model.Event{ID: "m1", ScopeID: testGroup, SenderID: testSender, Kind: model.EventText, Text: "https://example.com"}
	if p.Apply(context.Background(), ev) {
		t.Fatal("event consumed with anti-link off")
	}
	if len(client.sent) != 0 {
		t.Fatalf("unexpected sends: %v", client.sent)
	}
}

func TestApplyAntiLinkIgnoresDirectChats(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)
	enable(t, store, "friend@s.net", model.SettingsPatch{AntiLink: model.Bool(true)})

	ev := model.Event{ID: "m1", ScopeID: "friend@s.net", SenderID: testSender, Kind: model.EventText, Text: "https://example.com"}
	if p.Apply(context.Background(), ev) {
		t.Fatal("direct-chat link consumed")
	}
}

func TestApplyAutoReact(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)
	enable(t, store, testGroup, model.SettingsPatch{AutoReact: model.Bool(true)})

	ev := model.Event{ID: "m1", ScopeID: testGroup, SenderID: testSender, Kind: model.EventText, Text: "I am so happy today"}
	if p.Apply(context.Background(), ev) {
		t.Fatal("reaction consumed the event")
	}

	sent := client.sentTo(testGroup)
	if len(sent) != 1 || sent[0].Kind != transport.ContentReaction {
		t.Fatalf("expected one reaction, got %v", sent)
	}
	if sent[0].ReactTo != ev.Key() {
		t.Errorf("reaction key = %+v, want %+v", sent[0].ReactTo, ev.Key())
	}
}

func TestApplyCustomEmojiForNeutralText(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)
	enable(t, store, testGroup, model.SettingsPatch{
		AutoReact:        model.Bool(true),
		CustomReactEmoji: model.String("🖤"),
	})

	ev := model.Event{ID: "m1", ScopeID: testGroup, SenderID: testSender, Kind: model.EventText, Text: "meeting at 5"}
	p.Apply(context.Background(), ev)

	sent := client.sentTo(testGroup)
	if len(sent) != 1 || sent[0].Emoji != "🖤" {
		t.Fatalf("expected custom emoji reaction, got %v", sent)
	}
}

func TestApplyOwnerAlwaysGetsReaction(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, _ := newTestPipeline(t, client)

	// No flags set anywhere; the owner still gets a reaction.
	ev := model.Event{ID: "m1", ScopeID: testGroup, SenderID: testOwner, Kind: model.EventText, Text: "meeting at 5"}
	p.Apply(context.Background(), ev)

	sent := client.sentTo(testGroup)
	if len(sent) != 1 || sent[0].Kind != transport.ContentReaction {
		t.Fatalf("expected owner reaction, got %v", sent)
	}
}

func TestApplySkipsReactionForCommands(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)
	enable(t, store, testGroup, model.SettingsPatch{AutoReact: model.Bool(true)})

	ev := model.Event{ID: "m1", ScopeID: testGroup, SenderID: testSender, Kind: model.EventText, Text: "!ping"}
	if p.Apply(context.Background(), ev) {
		t.Fatal("command text consumed by the pipeline")
	}
	if len(client.sent) != 0 {
		t.Fatalf("unexpected reaction on command text: %v", client.sent)
	}
}

func TestApplyViewOnceCapture(t *testing.T) {
	client := &fakeClient{self: "bot@s.net", media: []byte("jpeg-bytes")}
	p, store := newTestPipeline(t, client)
	enable(t, store, testGroup, model.SettingsPatch{AntiViewOnce: model.Bool(true)})

	ev := model.Event{
		ID: "m1", ScopeID: testGroup, SenderID: testSender,
		Kind: model.EventImage, MediaKind: model.MediaImage, ViewOnce: true,
	}
	if p.Apply(context.Background(), ev) {
		t.Fatal("view-once event consumed")
	}

	group := client.sentTo(testGroup)
	if len(group) != 1 || group[0].Kind != transport.ContentMedia {
		t.Fatalf("expected media rebroadcast, got %v", group)
	}
	if !strings.Contains(group[0].Caption, "Saved view-once image") {
		t.Errorf("caption = %q", group[0].Caption)
	}

	owner := client.sentTo(testOwner)
	if len(owner) != 1 || owner[0].Kind != transport.ContentMedia {
		t.Fatalf("expected owner media copy, got %v", owner)
	}

	artifacts, err := store.ListArtifacts(context.Background(), model.ArtifactViewOnceImage, 10)
	if err != nil {
		t.Fatalf("list artifacts: %v", err)
	}
	if len(artifacts) != 1 {
		t.Fatalf("expected 1 view-once artifact, got %d", len(artifacts))
	}
	if artifacts[0].MediaRef == "" {
		t.Error("artifact has no media ref")
	}
}

func TestApplyViewOnceDownloadFailure(t *testing.T) {
	client := &fakeClient{self: "bot@s.net", mediaErr: errors.New("media gone")}
	p, store := newTestPipeline(t, client)
	enable(t, store, testGroup, model.SettingsPatch{AntiViewOnce: model.Bool(true)})

	ev := model.Event{
		ID: "m1", ScopeID: testGroup, SenderID: testSender,
		Kind: model.EventImage, MediaKind: model.MediaImage, ViewOnce: true,
	}
	if p.Apply(context.Background(), ev) {
		t.Fatal("failed view-once consumed")
	}
	if len(client.sent) != 0 {
		t.Fatalf("unexpected sends after download failure: %v", client.sent)
	}

	artifacts, err := store.ListArtifacts(context.Background(), model.ArtifactViewOnceImage, 10)
	if err != nil {
		t.Fatalf("list artifacts: %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("artifact captured despite failed download: %v", artifacts)
	}
}

func TestApplyStatusStagesIndependent(t *testing.T) {
	client := &fakeClient{self: "bot@s.net", markReadErr: errors.New("read receipt refused")}
	p, store := newTestPipeline(t, client)
	enable(t, store, model.GlobalScope, model.SettingsPatch{
		AutoViewStatus:  model.Bool(true),
		AutoStatusReact: model.Bool(true),
		SaveStatus:      model.Bool(true),
	})

	ev := model.Event{
		ID: "s1", ScopeID: transport.StatusBroadcast, SenderID: testSender,
		Kind: model.EventStatus, Text: "status text",
	}
	p.ApplyStatus(context.Background(), ev)

	// Auto-view failed, but the reaction and the save still ran.
	var reactions int
	for _, m := range client.sentTo(transport.StatusBroadcast) {
		if m.Kind == transport.ContentReaction {
			reactions++
		}
	}
	if reactions != 1 {
		t.Errorf("reactions = %d, want 1 despite mark-read failure", reactions)
	}

	artifacts, err := store.ListArtifacts(context.Background(), model.ArtifactSavedStatus, 10)
	if err != nil {
		t.Fatalf("list artifacts: %v", err)
	}
	if len(artifacts) != 1 || artifacts[0].TextSummary != "status text" {
		t.Fatalf("saved statuses = %v, want one with the status text", artifacts)
	}
}

func TestApplyStatusAllOff(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)

	ev := model.Event{
		ID: "s1", ScopeID: transport.StatusBroadcast, SenderID: testSender,
		Kind: model.EventStatus, Text: "status text",
	}
	p.ApplyStatus(context.Background(), ev)

	if len(client.sent) != 0 || len(client.marked) != 0 {
		t.Fatalf("status processed with all flags off: sent=%v marked=%v", client.sent, client.marked)
	}

	artifacts, err := store.ListArtifacts(context.Background(), model.ArtifactSavedStatus, 10)
	if err != nil {
		t.Fatalf("list artifacts: %v", err)
	}
	if len(artifacts) != 0 {
		t.Errorf("status saved with save-status off: %v", artifacts)
	}
}

func TestApplyStatusStatusReactEmoji(t *testing.T) {
	client := &fakeClient{self: "bot@s.net"}
	p, store := newTestPipeline(t, client)
	enable(t, store, model.GlobalScope, model.SettingsPatch{
		AutoStatusReact:  model.Bool(true),
		StatusReactEmoji: model.String("❤️"),
	})

	ev := model.Event{
		ID: "s1", ScopeID: transport.StatusBroadcast, SenderID: testSender,
		Kind: model.EventStatus, Text: "hello",
	}
	p.ApplyStatus(context.Background(), ev)

	sent := client.sentTo(transport.StatusBroadcast)
	if len(sent) != 1 || sent[0].Emoji != "❤️" {
		t.Fatalf("expected configured status reaction, got %v", sent)
	}
}
