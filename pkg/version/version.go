package version

import (
	"fmt"
	"runtime/debug"
	"strings"
	"time"
)

const devVersion = "0.0.0-dev"

// Valores definidos via ldflags; vazios são completados pelo build info do Go.
var (
	Version   = devVersion
	Commit    = ""
	BuildTime = ""
)

// Info descreve o binário em execução (CLI ou Lambda).
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
}

// Current devolve a versão resolvida no carregamento do pacote.
func Current() Info {
	v := Version
	if v == "" {
		v = devVersion
	}
	return Info{Version: v, Commit: Commit, BuildTime: BuildTime}
}

// String formata como "1.2.3 (commit: abc1234, built at: 2025-10-23T10:20:30Z)".
func (i Info) String() string {
	switch {
	case i.Commit == "" && i.BuildTime == "":
		return fmt.Sprintf("%s (development)", i.Version)
	case i.BuildTime == "":
		return fmt.Sprintf("%s (commit: %s)", i.Version, i.Commit)
	case i.Commit == "":
		return fmt.Sprintf("%s (commit: development, built at: %s)", i.Version, i.BuildTime)
	default:
		return fmt.Sprintf("%s (commit: %s, built at: %s)", i.Version, i.Commit, i.BuildTime)
	}
}

// FormatVersion retorna a versão atual formatada.
func FormatVersion() string {
	return Current().String()
}

// fromBuildSettings completa base com as chaves vcs.* gravadas pelo go build.
// Campos já preenchidos não são sobrescritos; a tag só vale para versões dev.
func fromBuildSettings(base Info, settings []debug.BuildSetting) Info {
	vcs := make(map[string]string, len(settings))
	for _, s := range settings {
		if strings.HasPrefix(s.Key, "vcs.") {
			vcs[s.Key] = s.Value
		}
	}

	if rev := vcs["vcs.revision"]; base.Commit == "" && len(rev) >= 7 {
		base.Commit = rev[:7]
	}
	if base.BuildTime == "" {
		if ts, err := time.Parse(time.RFC3339, vcs["vcs.time"]); err == nil {
			base.BuildTime = ts.UTC().Format("2006-01-02T15:04:05Z")
		}
	}
	if tag := vcs["vcs.tag"]; tag != "" && base.Version == devVersion {
		base.Version = strings.TrimPrefix(tag, "v")
		if strings.EqualFold(vcs["vcs.modified"], "true") {
			base.Version += "-dirty"
		}
	}
	return base
}

func init() {
	if Version != "" && Version != devVersion {
		return
	}
	bi, ok := debug.ReadBuildInfo()
	if !ok || bi == nil {
		return
	}
	info := fromBuildSettings(Current(), bi.Settings)
	Version, Commit, BuildTime = info.Version, info.Commit, info.BuildTime
}
