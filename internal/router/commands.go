package router

import "guard_bot/internal/model"

func (r *Router) registerAll() error {
	type entry struct {
		desc    model.CommandDescriptor
		access  AccessLevel
		handler Handler
	}

	table := []entry{
		{model.CommandDescriptor{
			Name: "menu", Category: model.CategoryGeneral,
			Description: "Show the complete command menu",
			Usage:       r.prefix + "menu",
			Aliases:     []string{"help", "commands"},
		}, AccessPublic, r.handleMenu},
		{model.CommandDescriptor{
			Name: "ping", Category: model.CategoryGeneral,
			Description: "Check bot response",
			Usage:       r.prefix + "ping",
			Aliases:     []string{"pong"},
		}, AccessPublic, r.handlePing},
		{model.CommandDescriptor{
			Name: "info", Category: model.CategoryGeneral,
			Description: "Show bot information",
			Usage:       r.prefix + "info",
			Aliases:     []string{"about", "botinfo"},
		}, AccessPublic, r.handleInfo},
		{model.CommandDescriptor{
			Name: "time", Category: model.CategoryUtility,
			Description: "Show current date and time",
			Usage:       r.prefix + "time",
			Aliases:     []string{"date", "clock"},
		}, AccessPublic, r.handleTime},
		{model.CommandDescriptor{
			Name: "quote", Category: model.CategoryFun,
			Description: "Get a random motivational quote",
			Usage:       r.prefix + "quote",
			Aliases:     []string{"quotes", "motivation"},
		}, AccessPublic, r.handleQuote},
		{model.CommandDescriptor{
			Name: "joke", Category: model.CategoryFun,
			Description: "Get a random joke",
			Usage:       r.prefix + "joke",
			Aliases:     []string{"jokes", "funny"},
		}, AccessPublic, r.handleJoke},
		{model.CommandDescriptor{
			Name: "calc", Category: model.CategoryUtility,
			Description: "Evaluate an arithmetic expression",
			Usage:       r.prefix + "calc <expression>",
			Aliases:     []string{"calculate", "math"},
		}, AccessPublic, r.handleCalc},

		{model.CommandDescriptor{
			Name: "antidelete", Category: model.CategoryAdmin,
			Description: "Toggle deleted-message capture",
			Usage:       r.prefix + "antidelete on/off",
		}, AccessGroupAdmin, r.toggleHandler("Anti-Delete", func(v bool) model.SettingsPatch {
			return model.SettingsPatch{AntiDelete: model.Bool(v)}
		})},
		{model.CommandDescriptor{
			Name: "antilink", Category: model.CategoryAdmin,
			Description: "Toggle link blocking",
			Usage:       r.prefix + "antilink on/off",
		}, AccessGroupAdmin, r.toggleHandler("Anti-Link", func(v bool) model.SettingsPatch {
			return model.SettingsPatch{AntiLink: model.Bool(v)}
		})},
		{model.CommandDescriptor{
			Name: "autoreact", Category: model.CategoryAdmin,
			Description: "Toggle automatic reactions",
			Usage:       r.prefix + "autoreact on/off",
		}, AccessGroupAdmin, r.toggleHandler("Auto React", func(v bool) model.SettingsPatch {
			return model.SettingsPatch{AutoReact: model.Bool(v)}
		})},
		{model.CommandDescriptor{
			Name: "antiviewonce", Category: model.CategoryAdmin,
			Description: "Toggle view-once capture",
			Usage:       r.prefix + "antiviewonce on/off",
		}, AccessGroupAdmin, r.toggleHandler("Anti-View Once", func(v bool) model.SettingsPatch {
			return model.SettingsPatch{AntiViewOnce: model.Bool(v)}
		})},
		{model.CommandDescriptor{
			Name: "customemoji", Category: model.CategoryAdmin,
			Description: "Set the custom reaction emoji",
			Usage:       r.prefix + "customemoji <emoji|reset>",
		}, AccessGroupAdmin, r.handleCustomEmoji},

		{model.CommandDescriptor{
			Name: "savestatus", Category: model.CategoryAdmin,
			Description: "Toggle status saving",
			Usage:       r.prefix + "savestatus on/off",
		}, AccessOwner, r.globalToggleHandler("Save Status", func(v bool) model.SettingsPatch {
			return model.SettingsPatch{SaveStatus: model.Bool(v)}
		})},
		{model.CommandDescriptor{
			Name: "autoviewstatus", Category: model.CategoryAdmin,
			Description: "Toggle automatic status viewing",
			Usage:       r.prefix + "autoviewstatus on/off",
		}, AccessOwner, r.globalToggleHandler("Auto View Status", func(v bool) model.SettingsPatch {
			return model.SettingsPatch{AutoViewStatus: model.Bool(v)}
		})},
		{model.CommandDescriptor{
			Name: "autostatusreact", Category: model.CategoryAdmin,
			Description: "Toggle automatic status reactions",
			Usage:       r.prefix + "autostatusreact on/off",
		}, AccessOwner, r.globalToggleHandler("Auto Status React", func(v bool) model.SettingsPatch {
			return model.SettingsPatch{AutoStatusReact: model.Bool(v)}
		})},
		{model.CommandDescriptor{
			Name: "statusreactemoji", Category: model.CategoryAdmin,
			Description: "Set the status reaction emoji",
			Usage:       r.prefix + "statusreactemoji <emoji|reset>",
		}, AccessOwner, r.handleStatusReactEmoji},

		{model.CommandDescriptor{
			Name: "settings", Category: model.CategoryAdmin,
			Description: "Show feature settings for this scope",
			Usage:       r.prefix + "settings",
		}, AccessPublic, r.handleSettings},
		{model.CommandDescriptor{
			Name: "session", Category: model.CategoryAdmin,
			Description: "Show session information",
			Usage:       r.prefix + "session",
			Aliases:     []string{"sessioninfo"},
		}, AccessOwner, r.handleSession},
		{model.CommandDescriptor{
			Name: "setup", Category: model.CategoryAdmin,
			Description: "Show the first-time setup guide",
			Usage:       r.prefix + "setup",
			Aliases:     []string{"firstsetup"},
		}, AccessOwner, r.handleSetup},
		{model.CommandDescriptor{
			Name: "cleanup", Category: model.CategoryAdmin,
			Description: "Manually remove captured data older than 24h",
			Usage:       r.prefix + "cleanup",
			Aliases:     []string{"clean", "clear"},
		}, AccessOwnerOrGroupAdmin, r.handleCleanup},
		{model.CommandDescriptor{
			Name: "cleanupstats", Category: model.CategoryAdmin,
			Description: "Show retention cleanup statistics",
			Usage:       r.prefix + "cleanupstats",
			Aliases:     []string{"stats"},
		}, AccessOwnerOrGroupAdmin, r.handleCleanupStats},
		{model.CommandDescriptor{
			Name: "ownerreact", Category: model.CategoryAdmin,
			Description: "React to the command message with an emoji",
			Usage:       r.prefix + "ownerreact <emoji>",
		}, AccessOwner, r.handleOwnerReact},
		{model.CommandDescriptor{
			Name: "viewstatus", Category: model.CategoryAdmin,
			Description: "List recently saved statuses",
			Usage:       r.prefix + "viewstatus",
			Aliases:     []string{"savedstatus"},
		}, AccessOwner, r.handleViewStatus},
	}

	for _, e := range table {
		if err := r.register(e.desc, e.access, e.handler); err != nil {
			return err
		}
	}
	return nil
}
