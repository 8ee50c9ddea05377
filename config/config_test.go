package config

import (
	"testing"

	"github.com/spf13/viper"
)

func TestDefaults(t *testing.T) {
	viper.Reset()
	setDefaults()

	// The author lookup budget is the HTTP timeout plus one second of
	// slack and must land inside the 1-3 s window end to end.
	timeoutMs := viper.GetInt("lookup.timeoutMs")
	if timeoutMs < 500 || timeoutMs+1000 > 3000 {
		t.Errorf("lookup.timeoutMs = %d, total budget %dms exceeds the 1-3s window", timeoutMs, timeoutMs+1000)
	}

	if got := viper.GetInt("cache.capacity"); got != 1000 {
		t.Errorf("cache.capacity = %d, want 1000", got)
	}
	if got := viper.GetInt("guardian.pollIntervalMs"); got != 500 {
		t.Errorf("guardian.pollIntervalMs = %d, want 500", got)
	}
	if got := viper.GetInt("guardian.timeoutMs"); got != 8000 {
		t.Errorf("guardian.timeoutMs = %d, want 8000", got)
	}
	if viper.GetString("database.path") == "" {
		t.Error("database.path must have a default")
	}
	if viper.GetString("bot.sanitizedEmojiId") == "" {
		t.Error("bot.sanitizedEmojiId must have a default")
	}
}
