// Package model defines the domain types used across the application.
package model

import "time"

// GlobalScope is the scope id for account-wide settings (status features).
const GlobalScope = "global"

// ScopeSettings holds the feature flags for one conversation scope.
// The zero value is the default record: every feature off, no custom emoji.
type ScopeSettings struct {
	AntiDelete       bool
	AntiLink         bool
	AutoReact        bool
	CustomReactEmoji string
	AntiViewOnce     bool
	SaveStatus       bool
	AutoViewStatus   bool
	AutoStatusReact  bool
	StatusReactEmoji string
}

// SettingsPatch is a partial update for ScopeSettings. Nil fields are left
// unchanged by a merge. Emoji fields distinguish "unset" (nil) from "clear"
// (pointer to empty string).
type SettingsPatch struct {
	AntiDelete       *bool
	AntiLink         *bool
	AutoReact        *bool
	CustomReactEmoji *string
	AntiViewOnce     *bool
	SaveStatus       *bool
	AutoViewStatus   *bool
	AutoStatusReact  *bool
	StatusReactEmoji *string
}

// Apply merges the patch onto s and returns the result.
func (p SettingsPatch) Apply(s ScopeSettings) ScopeSettings {
	if p.AntiDelete != nil {
		s.AntiDelete = *p.AntiDelete
	}
	if p.AntiLink != nil {
		s.AntiLink = *p.AntiLink
	}
	if p.AutoReact != nil {
		s.AutoReact = *p.AutoReact
	}
	if p.CustomReactEmoji != nil {
		s.CustomReactEmoji = *p.CustomReactEmoji
	}
	if p.AntiViewOnce != nil {
		s.AntiViewOnce = *p.AntiViewOnce
	}
	if p.SaveStatus != nil {
		s.SaveStatus = *p.SaveStatus
	}
	if p.AutoViewStatus != nil {
		s.AutoViewStatus = *p.AutoViewStatus
	}
	if p.AutoStatusReact != nil {
		s.AutoStatusReact = *p.AutoStatusReact
	}
	if p.StatusReactEmoji != nil {
		s.StatusReactEmoji = *p.StatusReactEmoji
	}
	return s
}

// Bool returns a pointer to b, for building patches inline.
func Bool(b bool) *bool { return &b }

// String returns a pointer to s, for building patches inline.
func String(s string) *string { return &s }

// ArtifactKind classifies a captured artifact.
type ArtifactKind string

// Supported artifact kinds.
const (
	ArtifactDeletedMessage ArtifactKind = "deleted_message"
	ArtifactSavedStatus    ArtifactKind = "saved_status"
	ArtifactViewOnceImage  ArtifactKind = "viewonce_image"
	ArtifactViewOnceVideo  ArtifactKind = "viewonce_video"
)

// CapturedArtifact is one piece of otherwise-ephemeral content that the bot
// preserved: a deleted message, a saved status, or a view-once item.
type CapturedArtifact struct {
	ID          string
	ScopeID     string
	SenderID    string
	Kind        ArtifactKind
	CapturedAt  time.Time
	TextSummary string
	MediaRef    string
}

// Category groups commands in the menu.
type Category string

// Supported command categories.
const (
	CategoryGeneral Category = "general"
	CategoryFun     Category = "fun"
	CategoryUtility Category = "utility"
	CategoryAdmin   Category = "admin"
)

// CommandDescriptor is one static entry of the command table.
type CommandDescriptor struct {
	Name        string
	Category    Category
	Description string
	Usage       string
	Aliases     []string
}
