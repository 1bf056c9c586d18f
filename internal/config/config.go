// Package config locates and decodes the hook's settings from the
// assistant's settings files. The loader is deliberately forgiving: a
// missing file, malformed JSON or a wrong-typed value falls back to that
// key's default instead of failing the invocation.
package config

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
	"github.com/tidwall/jsonc"

	"github.com/opencode-ai/readonly-bash-hook/internal/logging"
)

// settingsKey is the object key the hook owns inside settings.json.
const settingsKey = "readonlyBashHook"

// Settings is the user-tunable configuration. The zero value is the
// built-in default behavior.
type Settings struct {
	// ExtraCommands are added to the whitelist.
	ExtraCommands []string

	// RemoveCommands are removed from the whitelist.
	RemoveCommands []string

	// GitLocalWrites allows the local-write git subcommands (branch, tag,
	// remote, stash, add, config).
	GitLocalWrites bool

	// AwkSafeMode enables the awk program analyzer instead of treating
	// awk as never-approve.
	AwkSafeMode bool

	// SubcommandWhitelist adds per-executable allowed subcommands.
	// Entries for git are unioned with the built-in sets, not replaced.
	SubcommandWhitelist map[string][]string
}

// Load reads settings from the first parseable settings file: project
// .claude/settings.json, then the user-global ~/.claude/settings.json.
// The filesystem is injected so tests can run against a memory fs.
func Load(fs afero.Fs) Settings {
	for _, path := range searchPaths() {
		data, err := afero.ReadFile(fs, path)
		if err != nil {
			continue
		}
		st, ok := decode(data)
		if !ok {
			logging.Debug().Str("path", path).Msg("settings file unreadable, skipping")
			continue
		}
		logging.Trace().Str("path", path).Msg("settings loaded")
		return st
	}
	return Settings{}
}

// searchPaths lists candidate settings files, project first.
func searchPaths() []string {
	paths := []string{filepath.Join(".claude", "settings.json")}
	if home, err := os.UserHomeDir(); err == nil {
		paths = append(paths, filepath.Join(home, ".claude", "settings.json"))
	}
	return paths
}

// decode extracts the hook's sub-object from a settings document. The
// bool result is false only when the document itself does not parse; a
// parseable document without the hook's key still wins the search and
// yields defaults. Keys decode independently so one bad value cannot
// poison the rest.
func decode(data []byte) (Settings, bool) {
	var doc map[string]json.RawMessage
	if err := json.Unmarshal(jsonc.ToJSON(data), &doc); err != nil {
		return Settings{}, false
	}

	var st Settings
	raw, ok := doc[settingsKey]
	if !ok {
		return st, true
	}
	var keys map[string]json.RawMessage
	if err := json.Unmarshal(raw, &keys); err != nil {
		return st, true
	}

	unmarshalKey(keys, "extraCommands", &st.ExtraCommands)
	unmarshalKey(keys, "removeCommands", &st.RemoveCommands)
	unmarshalKey(keys, "subcommandWhitelist", &st.SubcommandWhitelist)

	var features map[string]json.RawMessage
	unmarshalKey(keys, "features", &features)
	unmarshalKey(features, "gitLocalWrites", &st.GitLocalWrites)
	unmarshalKey(features, "awkSafeMode", &st.AwkSafeMode)
	// Unknown feature keys are reserved for the future and ignored.

	return st, true
}

// unmarshalKey decodes one key into dst, leaving dst untouched on a
// missing key or a type mismatch.
func unmarshalKey[T any](m map[string]json.RawMessage, key string, dst *T) {
	raw, ok := m[key]
	if !ok {
		return
	}
	var v T
	if err := json.Unmarshal(raw, &v); err != nil {
		logging.Debug().Str("key", key).Err(err).Msg("settings key ignored")
		return
	}
	*dst = v
}
