package handlers

import (
	"sanitizer-bot/models"
)

// TriggerAction is what the bot should do with an incoming guild message.
type TriggerAction int

const (
	// ActionNone ignores the message.
	ActionNone TriggerAction = iota
	// ActionSanitize rewrites the link in the message itself.
	ActionSanitize
	// ActionSanitizeReferenced rewrites the link in the message the
	// incoming message replies to.
	ActionSanitizeReferenced
	// ActionAddMarker places the marker reaction and waits for a user to
	// confirm via the same emoji.
	ActionAddMarker
)

// DecideTrigger applies the guild's sanitizer mode to one incoming message.
//
// In the mention modes a mention and a reply are each sufficient intent on
// their own, and the triggering message's own link wins over the link of the
// message it replies to. In the marker modes a link-bearing message is only
// primed with the reaction, never processed directly.
func DecideTrigger(mode models.SanitizerMode, ownHasLink, mentioned, isReply, refHasLink bool) TriggerAction {
	if mode.UsesMention() && (mentioned || isReply) {
		if ownHasLink {
			return ActionSanitize
		}
		if isReply && refHasLink {
			return ActionSanitizeReferenced
		}
		return ActionNone
	}

	if !ownHasLink {
		return ActionNone
	}

	switch mode {
	case models.ModeAutomatic:
		return ActionSanitize
	case models.ModeManualEmote, models.ModeManualBoth:
		return ActionAddMarker
	default:
		// ManualMention without a mention or reply.
		return ActionNone
	}
}

// StripReferencedMarker reports whether a pass that sanitized the triggering
// message itself must also clear the marker from the message it replies to.
// In the combined mode either message may have been primed earlier, and a
// surviving marker would allow a duplicate rewrite.
func StripReferencedMarker(mode models.SanitizerMode, action TriggerAction, isReply bool) bool {
	return mode.UsesMarker() && action == ActionSanitize && isReply
}
