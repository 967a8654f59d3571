package buildinfo

import (
	"runtime/debug"
	"strings"
	"testing"
)

func TestResolve(t *testing.T) {
	stamped := &debug.BuildInfo{
		Main: debug.Module{Version: "v0.4.0"},
		Settings: []debug.BuildSetting{
			{Key: "vcs.revision", Value: "abc123"},
			{Key: "vcs.time", Value: "2026-01-02T03:04:05Z"},
		},
	}

	devel := &debug.BuildInfo{Main: debug.Module{Version: "(devel)"}}

	tests := []struct {
		name                  string
		version, commit, date string
		bi                    *debug.BuildInfo
		want                  Info
	}{
		{"ldflags win", "v1.0.0", "deadbeef", "2026-05-01", stamped, Info{Version: "v1.0.0", Commit: "deadbeef", Date: "2026-05-01"}},
		{"module stamp fills defaults", "dev", "none", "unknown", stamped, Info{Version: "v0.4.0", Commit: "abc123", Date: "2026-01-02T03:04:05Z"}},
		{"devel build keeps dev", "dev", "none", "unknown", devel, Info{Version: "dev", Commit: "none", Date: "unknown"}},
		{"no build info", "dev", "none", "unknown", nil, Info{Version: "dev", Commit: "none", Date: "unknown"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := resolve(tt.version, tt.commit, tt.date, tt.bi)
			if got.GoVersion == "" {
				t.Error("GoVersion is empty")
			}
			got.GoVersion = ""
			if got != tt.want {
				t.Errorf("resolve() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestUserAgent(t *testing.T) {
	ua := UserAgent()
	if !strings.HasPrefix(ua, "svgreveal/") || ua == "svgreveal/" {
		t.Errorf("UserAgent() = %q", ua)
	}
	if !strings.Contains(Template(), "{{.Name}} version "+Current().Version) {
		t.Errorf("Template() = %q", Template())
	}
}
