// Package router resolves prefixed text commands and dispatches them to
// handlers.
package router

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"guard_bot/internal/capture"
	"guard_bot/internal/model"
	"guard_bot/internal/storage"
	"guard_bot/internal/sweeper"
	"guard_bot/internal/transport"
)

// AccessLevel is the authorization a command requires.
type AccessLevel int

// Authorization levels.
const (
	AccessPublic AccessLevel = iota
	AccessGroupAdmin
	AccessOwner
	AccessOwnerOrGroupAdmin
)

// Request carries a parsed command invocation into a handler.
type Request struct {
	Event   model.Event
	Scope   string
	Sender  string
	Args    []string
	RawArgs string
}

// Handler executes one command and sends its own replies.
type Handler func(ctx context.Context, req Request) error

type command struct {
	desc    model.CommandDescriptor
	access  AccessLevel
	handler Handler
}

// Router normalizes prefixed text, resolves aliases, enforces per-user
// cooldowns and authorization, and dispatches to the matching handler.
type Router struct {
	client    transport.Client
	store     storage.Storage
	capture   *capture.Capture
	sweeper   *sweeper.Sweeper
	prefix    string
	ownerID   string
	loc       *time.Location
	cooldowns *cooldownTable
	commands  map[string]*command
	order     []string
	aliases   map[string]string
	startedAt time.Time
	log       *slog.Logger
}

// Options configures a Router.
type Options struct {
	Prefix   string
	OwnerID  string
	Cooldown time.Duration
	Location *time.Location
}

// New creates a Router with the full static command table registered. It
// returns an error if two commands share an alias or an alias collides with
// a command name.
func New(client transport.Client, store storage.Storage, cap *capture.Capture, sw *sweeper.Sweeper, opts Options, log *slog.Logger) (*Router, error) {
	loc := opts.Location
	if loc == nil {
		loc = time.Local
	}
	r := &Router{
		client:    client,
		store:     store,
		capture:   cap,
		sweeper:   sw,
		prefix:    opts.Prefix,
		ownerID:   opts.OwnerID,
		loc:       loc,
		cooldowns: newCooldownTable(opts.Cooldown),
		commands:  make(map[string]*command),
		aliases:   make(map[string]string),
		startedAt: time.Now(),
		log:       log,
	}
	if err := r.registerAll(); err != nil {
		return nil, err
	}
	return r, nil
}

func (r *Router) register(desc model.CommandDescriptor, access AccessLevel, h Handler) error {
	if _, dup := r.commands[desc.Name]; dup {
		return fmt.Errorf("duplicate command %q", desc.Name)
	}
	for _, alias := range desc.Aliases {
		if prev, dup := r.aliases[alias]; dup {
			return fmt.Errorf("alias %q already bound to %q", alias, prev)
		}
		if _, dup := r.commands[alias]; dup {
			return fmt.Errorf("alias %q collides with command name", alias)
		}
		r.aliases[alias] = desc.Name
	}
	r.commands[desc.Name] = &command{desc: desc, access: access, handler: h}
	r.order = append(r.order, desc.Name)
	return nil
}

// Descriptors returns the command table in registration order.
func (r *Router) Descriptors() []model.CommandDescriptor {
	out := make([]model.CommandDescriptor, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.commands[name].desc)
	}
	return out
}

// Resolve maps a command token to its canonical name. Unresolved tokens are
// returned as-is and fall through to the unknown-command path.
func (r *Router) Resolve(token string) string {
	if canonical, ok := r.aliases[token]; ok {
		return canonical
	}
	return token
}

// Dispatch handles a prefixed text event. It reports whether the event was
// a command invocation (including unknown commands and rejected ones).
func (r *Router) Dispatch(ctx context.Context, ev model.Event) bool {
	text := strings.TrimSpace(ev.Text)
	if !strings.HasPrefix(text, r.prefix) {
		return false
	}

	fields := strings.Fields(strings.TrimPrefix(text, r.prefix))
	if len(fields) == 0 {
		return false
	}
	token := strings.ToLower(fields[0])
	args := fields[1:]
	canonical := r.Resolve(token)

	cmd, known := r.commands[canonical]
	if !known {
		r.log.Info("unknown command", "command", canonical, "sender", ev.SenderID)
		r.reply(ctx, ev.ScopeID, fmt.Sprintf(
			"Unknown command: %s\nType %smenu to see available commands.", canonical, r.prefix))
		return true
	}

	// Cooldown applies only to known commands and is checked before
	// authorization; a rejected invocation does not refresh the timestamp.
	if !r.cooldowns.Allow(ev.SenderID, canonical, time.Now()) {
		r.reply(ctx, ev.ScopeID, "Cooldown active. Please wait a moment before using this command again.")
		return true
	}

	if !r.authorized(ctx, cmd.access, ev.ScopeID, ev.SenderID) {
		r.reply(ctx, ev.ScopeID, "Access denied. You are not allowed to use this command.")
		return true
	}

	r.log.Info("command", "command", canonical, "sender", ev.SenderID, "scope", ev.ScopeID)

	req := Request{
		Event:   ev,
		Scope:   ev.ScopeID,
		Sender:  ev.SenderID,
		Args:    args,
		RawArgs: strings.TrimSpace(strings.TrimPrefix(strings.TrimPrefix(text, r.prefix), fields[0])),
	}
	if err := cmd.handler(ctx, req); err != nil {
		r.log.Error("command failed", "command", canonical, "error", err)
		r.reply(ctx, ev.ScopeID, "An error occurred while processing your request.")
	}
	return true
}

func (r *Router) authorized(ctx context.Context, level AccessLevel, scopeID, senderID string) bool {
	switch level {
	case AccessPublic:
		return true
	case AccessGroupAdmin:
		return r.isGroupAdmin(ctx, scopeID, senderID)
	case AccessOwner:
		return r.isOwner(senderID)
	case AccessOwnerOrGroupAdmin:
		return r.isOwner(senderID) || r.isGroupAdmin(ctx, scopeID, senderID)
	}
	return false
}

func (r *Router) isOwner(senderID string) bool {
	if r.ownerID != "" && senderID == r.ownerID {
		return true
	}
	self := r.client.SelfID()
	return self != "" && senderID == self
}

// isGroupAdmin defaults to false when the scope is not a group or the
// metadata lookup fails.
func (r *Router) isGroupAdmin(ctx context.Context, scopeID, senderID string) bool {
	if !transport.IsGroup(scopeID) {
		return false
	}
	info, err := r.client.GroupMetadata(ctx, scopeID)
	if err != nil {
		r.log.Warn("group metadata lookup", "scope", scopeID, "error", err)
		return false
	}
	for _, p := range info.Participants {
		if p.ID == senderID {
			return p.IsAdmin
		}
	}
	return false
}

func (r *Router) reply(ctx context.Context, scopeID, text string) {
	if err := r.client.Send(ctx, scopeID, transport.Text(text)); err != nil {
		r.log.Error("send reply", "scope", scopeID, "error", err)
	}
}
