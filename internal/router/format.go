package router

import (
	"fmt"
	"strings"

	"guard_bot/internal/model"
	"guard_bot/internal/transport"
)

var categoryOrder = []model.Category{
	model.CategoryGeneral,
	model.CategoryUtility,
	model.CategoryFun,
	model.CategoryAdmin,
}

var categoryTitles = map[model.Category]string{
	model.CategoryGeneral: "General Commands",
	model.CategoryUtility: "Utility Commands",
	model.CategoryFun:     "Fun Commands",
	model.CategoryAdmin:   "Admin Commands",
}

func (r *Router) formatMenu() string {
	var b strings.Builder
	b.WriteString("Command menu\n")

	for _, cat := range categoryOrder {
		var lines []string
		for _, name := range r.order {
			cmd := r.commands[name]
			if cmd.desc.Category != cat {
				continue
			}
			lines = append(lines, fmt.Sprintf("  %s%s - %s", r.prefix, cmd.desc.Name, cmd.desc.Description))
		}
		if len(lines) == 0 {
			continue
		}
		fmt.Fprintf(&b, "\n%s:\n", categoryTitles[cat])
		b.WriteString(strings.Join(lines, "\n"))
		b.WriteString("\n")
	}

	fmt.Fprintf(&b, "\nType any command with the %s prefix, e.g. %sping.\n", r.prefix, r.prefix)
	b.WriteString("Admin commands require group-admin rights.")
	return b.String()
}

func formatSettings(scopeID string, scoped, global model.ScopeSettings, prefix string) string {
	scopeLabel := "Global"
	if transport.IsGroup(scopeID) {
		scopeLabel = shortID(scopeID)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Feature settings for %s\n\n", scopeLabel)
	b.WriteString("Group settings:\n")
	fmt.Fprintf(&b, "  Anti-Delete: %s\n", onOff(scoped.AntiDelete))
	fmt.Fprintf(&b, "  Anti-Link: %s\n", onOff(scoped.AntiLink))
	fmt.Fprintf(&b, "  Auto React: %s\n", onOff(scoped.AutoReact))
	fmt.Fprintf(&b, "  Custom Emoji: %s\n", orNotSet(scoped.CustomReactEmoji))
	fmt.Fprintf(&b, "  Anti-View Once: %s\n", onOff(scoped.AntiViewOnce))
	b.WriteString("\nGlobal settings:\n")
	fmt.Fprintf(&b, "  Save Status: %s\n", onOff(global.SaveStatus))
	fmt.Fprintf(&b, "  Auto View Status: %s\n", onOff(global.AutoViewStatus))
	fmt.Fprintf(&b, "  Auto Status React: %s\n", onOff(global.AutoStatusReact))
	fmt.Fprintf(&b, "  Status React Emoji: %s\n", orNotSet(global.StatusReactEmoji))
	fmt.Fprintf(&b, "\nToggle with %s<feature> on/off. Status settings are global.", prefix)
	return b.String()
}

func onOff(v bool) string {
	if v {
		return "ON"
	}
	return "OFF"
}

func orNotSet(s string) string {
	if s == "" {
		return "not set"
	}
	return s
}
