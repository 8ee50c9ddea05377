package models

import "testing"

func TestSanitizerModeComponentIDs(t *testing.T) {
	cases := map[SanitizerMode]string{
		ModeAutomatic:     "automatic",
		ModeManualEmote:   "manual_emote",
		ModeManualMention: "manual_mention",
		ModeManualBoth:    "manual_both",
	}
	for mode, id := range cases {
		if got := mode.ComponentID(); got != id {
			t.Errorf("ComponentID() = %q, want %q", got, id)
		}
		parsed, err := ParseSanitizerMode(id)
		if err != nil {
			t.Fatalf("ParseSanitizerMode(%q): %v", id, err)
		}
		if parsed != mode {
			t.Errorf("ParseSanitizerMode(%q) = %v, want %v", id, parsed, mode)
		}
	}
}

func TestDeletePermissionComponentIDs(t *testing.T) {
	cases := map[DeletePermission]string{
		DeleteAuthorAndMods: "author_and_mods",
		DeleteEveryone:      "everyone",
		DeleteDisabled:      "disabled",
	}
	for perm, id := range cases {
		if got := perm.ComponentID(); got != id {
			t.Errorf("ComponentID() = %q, want %q", got, id)
		}
		parsed, err := ParseDeletePermission(id)
		if err != nil {
			t.Fatalf("ParseDeletePermission(%q): %v", id, err)
		}
		if parsed != perm {
			t.Errorf("ParseDeletePermission(%q) = %v, want %v", id, parsed, perm)
		}
	}
}

func TestSettingsMenuRoundtrip(t *testing.T) {
	for _, menu := range []SettingsMenu{MenuSanitizerMode, MenuDeletePermission, MenuHideOriginalEmbed} {
		parsed, err := ParseSettingsMenu(menu.CustomID())
		if err != nil {
			t.Fatalf("ParseSettingsMenu(%q): %v", menu.CustomID(), err)
		}
		if parsed != menu {
			t.Errorf("roundtrip for %q: got %v, want %v", menu.CustomID(), parsed, menu)
		}
	}
}

func TestFromIntDefaultsOutOfRange(t *testing.T) {
	if got := SanitizerModeFromInt(1); got != ModeManualEmote {
		t.Errorf("SanitizerModeFromInt(1) = %v", got)
	}
	if got := SanitizerModeFromInt(999); got != ModeAutomatic {
		t.Errorf("SanitizerModeFromInt(999) = %v, want ModeAutomatic", got)
	}
	if got := SanitizerModeFromInt(-1); got != ModeAutomatic {
		t.Errorf("SanitizerModeFromInt(-1) = %v, want ModeAutomatic", got)
	}
	if got := DeletePermissionFromInt(2); got != DeleteDisabled {
		t.Errorf("DeletePermissionFromInt(2) = %v", got)
	}
	if got := DeletePermissionFromInt(999); got != DeleteAuthorAndMods {
		t.Errorf("DeletePermissionFromInt(999) = %v, want DeleteAuthorAndMods", got)
	}
}

func TestParseErrorsOnUnknownIDs(t *testing.T) {
	if _, err := ParseSanitizerMode("invalid"); err == nil {
		t.Error("ParseSanitizerMode accepted unknown id")
	}
	if _, err := ParseDeletePermission("invalid"); err == nil {
		t.Error("ParseDeletePermission accepted unknown id")
	}
	if _, err := ParseSettingsMenu("invalid"); err == nil {
		t.Error("ParseSettingsMenu accepted unknown id")
	}
}

func TestDefaultGuildPolicy(t *testing.T) {
	p := DefaultGuildPolicy(42)
	if p.GuildID != 42 {
		t.Errorf("GuildID = %d", p.GuildID)
	}
	if p.SanitizerMode != ModeAutomatic {
		t.Errorf("SanitizerMode = %v", p.SanitizerMode)
	}
	if p.DeletePermission != DeleteAuthorAndMods {
		t.Errorf("DeletePermission = %v", p.DeletePermission)
	}
	if !p.HideOriginalEmbed {
		t.Error("HideOriginalEmbed should default to true")
	}
}
