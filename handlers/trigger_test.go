package handlers

import (
	"testing"

	"sanitizer-bot/models"
)

func TestDecideTriggerAutomatic(t *testing.T) {
	if got := DecideTrigger(models.ModeAutomatic, true, false, false, false); got != ActionSanitize {
		t.Fatalf("link in automatic mode: got %v, want ActionSanitize", got)
	}
	if got := DecideTrigger(models.ModeAutomatic, false, false, false, false); got != ActionNone {
		t.Fatalf("no link in automatic mode: got %v, want ActionNone", got)
	}
	// A stray mention without a link never triggers processing.
	if got := DecideTrigger(models.ModeAutomatic, false, true, false, false); got != ActionNone {
		t.Fatalf("mention without link in automatic mode: got %v, want ActionNone", got)
	}
}

func TestDecideTriggerManualEmote(t *testing.T) {
	if got := DecideTrigger(models.ModeManualEmote, true, false, false, false); got != ActionAddMarker {
		t.Fatalf("link in emote mode: got %v, want ActionAddMarker", got)
	}
	// Mentions mean nothing in the emote-only mode.
	if got := DecideTrigger(models.ModeManualEmote, true, true, false, false); got != ActionAddMarker {
		t.Fatalf("mentioned link in emote mode: got %v, want ActionAddMarker", got)
	}
	if got := DecideTrigger(models.ModeManualEmote, false, true, true, true); got != ActionNone {
		t.Fatalf("mentioned reply without own link in emote mode: got %v, want ActionNone", got)
	}
}

// A reply is sufficient intent on its own in the mention modes, no mention
// required.
func TestDecideTriggerReplyWithoutMention(t *testing.T) {
	for _, mode := range []models.SanitizerMode{models.ModeManualMention, models.ModeManualBoth} {
		if got := DecideTrigger(mode, false, false, true, true); got != ActionSanitizeReferenced {
			t.Fatalf("mode %v, reply to a link without mention: got %v, want ActionSanitizeReferenced", mode, got)
		}
		if got := DecideTrigger(mode, true, false, true, false); got != ActionSanitize {
			t.Fatalf("mode %v, link-bearing reply without mention: got %v, want ActionSanitize", mode, got)
		}
		if got := DecideTrigger(mode, false, false, true, false); got != ActionNone {
			t.Fatalf("mode %v, reply with no link anywhere: got %v, want ActionNone", mode, got)
		}
	}
}

func TestDecideTriggerManualMention(t *testing.T) {
	if got := DecideTrigger(models.ModeManualMention, true, true, false, false); got != ActionSanitize {
		t.Fatalf("mentioned link: got %v, want ActionSanitize", got)
	}
	if got := DecideTrigger(models.ModeManualMention, true, false, false, false); got != ActionNone {
		t.Fatalf("unmentioned link: got %v, want ActionNone", got)
	}
	if got := DecideTrigger(models.ModeManualMention, false, true, true, true); got != ActionSanitizeReferenced {
		t.Fatalf("mentioned reply to link: got %v, want ActionSanitizeReferenced", got)
	}
	if got := DecideTrigger(models.ModeManualMention, false, true, true, false); got != ActionNone {
		t.Fatalf("mentioned reply to linkless message: got %v, want ActionNone", got)
	}
	if got := DecideTrigger(models.ModeManualMention, false, true, false, false); got != ActionNone {
		t.Fatalf("bare mention: got %v, want ActionNone", got)
	}
}

// When a mentioning reply carries its own link and also points at a
// link-bearing message, the reply's own link wins.
func TestDecideTriggerPrefersOwnLinkOverReferenced(t *testing.T) {
	for _, mode := range []models.SanitizerMode{models.ModeManualMention, models.ModeManualBoth} {
		if got := DecideTrigger(mode, true, true, true, true); got != ActionSanitize {
			t.Fatalf("mode %v: got %v, want ActionSanitize", mode, got)
		}
	}
}

// When a reply's own link wins in the combined mode, the replied-to message
// may still carry a marker from an earlier priming pass and must be cleared
// too, or it could trigger a second rewrite.
func TestStripReferencedMarker(t *testing.T) {
	if !StripReferencedMarker(models.ModeManualBoth, ActionSanitize, true) {
		t.Error("combined mode, own link wins on a reply: referenced marker must be stripped")
	}
	if StripReferencedMarker(models.ModeManualBoth, ActionSanitize, false) {
		t.Error("not a reply: nothing to strip")
	}
	if StripReferencedMarker(models.ModeManualBoth, ActionSanitizeReferenced, true) {
		t.Error("referenced target is already stripped by the pipeline")
	}
	if StripReferencedMarker(models.ModeManualMention, ActionSanitize, true) {
		t.Error("mention-only mode never places markers")
	}
}

func TestDecideTriggerManualBoth(t *testing.T) {
	// Mention behavior mirrors the mention-only mode.
	if got := DecideTrigger(models.ModeManualBoth, true, true, false, false); got != ActionSanitize {
		t.Fatalf("mentioned link: got %v, want ActionSanitize", got)
	}
	if got := DecideTrigger(models.ModeManualBoth, false, true, true, true); got != ActionSanitizeReferenced {
		t.Fatalf("mentioned reply to link: got %v, want ActionSanitizeReferenced", got)
	}
	// Without a mention it falls back to marker priming.
	if got := DecideTrigger(models.ModeManualBoth, true, false, false, false); got != ActionAddMarker {
		t.Fatalf("unmentioned link: got %v, want ActionAddMarker", got)
	}
	if got := DecideTrigger(models.ModeManualBoth, false, false, false, false); got != ActionNone {
		t.Fatalf("linkless message: got %v, want ActionNone", got)
	}
}
