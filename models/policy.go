package models

import "fmt"

// SanitizerMode controls when the bot rewrites links in a guild.
type SanitizerMode int

const (
	ModeAutomatic SanitizerMode = iota
	ModeManualEmote
	ModeManualMention
	ModeManualBoth
)

// SanitizerModeFromInt maps a stored integer to a mode. Out-of-range values
// decode to the default mode, never an error.
func SanitizerModeFromInt(v int) SanitizerMode {
	switch v {
	case 0, 1, 2, 3:
		return SanitizerMode(v)
	default:
		return ModeAutomatic
	}
}

// ComponentID returns the select-menu option value for the mode.
func (m SanitizerMode) ComponentID() string {
	switch m {
	case ModeManualEmote:
		return "manual_emote"
	case ModeManualMention:
		return "manual_mention"
	case ModeManualBoth:
		return "manual_both"
	default:
		return "automatic"
	}
}

// DisplayName returns a human-readable label for the mode.
func (m SanitizerMode) DisplayName() string {
	switch m {
	case ModeManualEmote:
		return "Manual (Emote)"
	case ModeManualMention:
		return "Manual (Mention)"
	case ModeManualBoth:
		return "Manual (Emote and Mention)"
	default:
		return "Automatic"
	}
}

// ParseSanitizerMode parses a select-menu option value.
func ParseSanitizerMode(s string) (SanitizerMode, error) {
	switch s {
	case "automatic":
		return ModeAutomatic, nil
	case "manual_emote":
		return ModeManualEmote, nil
	case "manual_mention":
		return ModeManualMention, nil
	case "manual_both":
		return ModeManualBoth, nil
	default:
		return ModeAutomatic, fmt.Errorf("unknown sanitizer mode: %q", s)
	}
}

// UsesMarker reports whether the mode relies on the marker reaction.
func (m SanitizerMode) UsesMarker() bool {
	return m == ModeManualEmote || m == ModeManualBoth
}

// UsesMention reports whether the mode is triggered by mentions/replies.
func (m SanitizerMode) UsesMention() bool {
	return m == ModeManualMention || m == ModeManualBoth
}

// DeletePermission controls who may use the delete button on a reply.
type DeletePermission int

const (
	DeleteAuthorAndMods DeletePermission = iota
	DeleteEveryone
	DeleteDisabled
)

// DeletePermissionFromInt maps a stored integer to a permission level.
// Out-of-range values decode to the default, never an error.
func DeletePermissionFromInt(v int) DeletePermission {
	switch v {
	case 0, 1, 2:
		return DeletePermission(v)
	default:
		return DeleteAuthorAndMods
	}
}

// ComponentID returns the select-menu option value for the permission level.
func (p DeletePermission) ComponentID() string {
	switch p {
	case DeleteEveryone:
		return "everyone"
	case DeleteDisabled:
		return "disabled"
	default:
		return "author_and_mods"
	}
}

// DisplayName returns a human-readable label for the permission level.
func (p DeletePermission) DisplayName() string {
	switch p {
	case DeleteEveryone:
		return "everyone"
	case DeleteDisabled:
		return "disabled"
	default:
		return "default (Author and moderators)"
	}
}

// ParseDeletePermission parses a select-menu option value.
func ParseDeletePermission(s string) (DeletePermission, error) {
	switch s {
	case "author_and_mods":
		return DeleteAuthorAndMods, nil
	case "everyone":
		return DeleteEveryone, nil
	case "disabled":
		return DeleteDisabled, nil
	default:
		return DeleteAuthorAndMods, fmt.Errorf("unknown delete permission: %q", s)
	}
}

// SettingsMenu identifies one of the settings select menus by custom id.
type SettingsMenu int

const (
	MenuSanitizerMode SettingsMenu = iota
	MenuDeletePermission
	MenuHideOriginalEmbed
)

// CustomID returns the component custom id for the menu.
func (m SettingsMenu) CustomID() string {
	switch m {
	case MenuDeletePermission:
		return "delete_permission"
	case MenuHideOriginalEmbed:
		return "hide_original_embed"
	default:
		return "sanitizer_mode"
	}
}

// ParseSettingsMenu parses a component custom id into a menu identity.
// Unknown ids are a distinct error so the dispatcher can tell a bad
// component apart from a malformed value.
func ParseSettingsMenu(s string) (SettingsMenu, error) {
	switch s {
	case "sanitizer_mode":
		return MenuSanitizerMode, nil
	case "delete_permission":
		return MenuDeletePermission, nil
	case "hide_original_embed":
		return MenuHideOriginalEmbed, nil
	default:
		return MenuSanitizerMode, fmt.Errorf("unknown settings menu: %q", s)
	}
}

// GuildPolicy is the per-guild configuration row.
type GuildPolicy struct {
	GuildID           uint64
	SanitizerMode     SanitizerMode
	DeletePermission  DeletePermission
	HideOriginalEmbed bool
}

// DefaultGuildPolicy returns the policy used when a guild has no stored row.
func DefaultGuildPolicy(guildID uint64) GuildPolicy {
	return GuildPolicy{
		GuildID:           guildID,
		SanitizerMode:     ModeAutomatic,
		DeletePermission:  DeleteAuthorAndMods,
		HideOriginalEmbed: true,
	}
}
