package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Set at build time with -ldflags.
var (
	Version   = "dev"
	GitCommit = ""
	GitBranch = ""
	BuildTime = ""
)

// Info describes the running prodcon binary.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit,omitempty" yaml:"git_commit,omitempty"`
	GitBranch string `json:"git_branch,omitempty" yaml:"git_branch,omitempty"`
	BuildTime string `json:"build_time,omitempty" yaml:"build_time,omitempty"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	IsRelease bool   `json:"is_release" yaml:"is_release"`
	IsDirty   bool   `json:"is_dirty" yaml:"is_dirty"`
}

// Get returns the version of the running binary. Values set with -ldflags
// win over the VCS settings recorded by the Go toolchain.
func Get() Info {
	return fromBuildInfo(debug.ReadBuildInfo())
}

func fromBuildInfo(bi *debug.BuildInfo, ok bool) Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		GitBranch: GitBranch,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if ok && bi != nil {
		if bi.GoVersion != "" {
			info.GoVersion = bi.GoVersion
		}
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "" {
					info.GitCommit = s.Value
				}
			case "vcs.modified":
				info.IsDirty = s.Value == "true"
			case "vcs.time":
				if info.BuildTime == "" {
					info.BuildTime = s.Value
				}
			}
		}
	}

	if len(info.GitCommit) > 7 {
		info.GitCommit = info.GitCommit[:7]
	}
	info.IsRelease = info.Version != "dev" && !info.IsDirty && !strings.Contains(info.Version, "dirty")
	return info
}

// Short returns "<version>[-<commit>][-dirty]".
func (i Info) Short() string {
	if i.GitCommit == "" {
		return i.Version
	}
	s := i.Version + "-" + i.GitCommit
	if i.IsDirty {
		s += "-dirty"
	}
	return s
}

// String returns the short version plus branch, build time and platform.
func (i Info) String() string {
	parts := []string{i.Short()}
	if i.GitBranch != "" && i.GitBranch != "main" && i.GitBranch != "master" {
		parts = append(parts, "("+i.GitBranch+")")
	}
	if i.BuildTime != "" {
		parts = append(parts, "built "+i.BuildTime)
	}
	parts = append(parts, fmt.Sprintf("%s %s", i.GoVersion, i.Platform))
	return strings.Join(parts, " ")
}

// Fields returns the version as structured log fields.
func (i Info) Fields() map[string]interface{} {
	return map[string]interface{}{
		"version":    i.Short(),
		"go_version": i.GoVersion,
		"platform":   i.Platform,
	}
}

// Short returns the short version string of the running binary.
func Short() string {
	return Get().Short()
}
