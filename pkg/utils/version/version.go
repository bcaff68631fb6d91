// Package version 保存构建时注入的版本信息
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"time"
)

// 以下变量通过 -ldflags "-X" 在构建时注入
var (
	Version   = "dev"
	GitCommit = "unknown"
	BuildDate = "unknown"
	GoVersion = runtime.Version()
	Platform  = fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH)
	// Modified 源码树是否有未提交的修改（"true" 或 "false"）
	Modified = "false"
)

// Info 版本信息
type Info struct {
	Version   string `json:"version" yaml:"version"`
	GitCommit string `json:"git_commit" yaml:"git_commit"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
	Modified  string `json:"modified" yaml:"modified"`
}

// GetVersion 返回版本信息
// 未通过 ldflags 注入时，尝试从 go install 写入的构建信息中补全
func GetVersion() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: GoVersion,
		Platform:  Platform,
		Modified:  Modified,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fillFromBuildInfo(&info, bi)
	}
	return info
}

func fillFromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.GitCommit == "unknown" {
				info.GitCommit = s.Value
			}
		case "vcs.time":
			if info.BuildDate == "unknown" {
				info.BuildDate = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value
		}
	}
}

// GetVersionString 返回详细版本字符串
func GetVersionString() string {
	info := GetVersion()
	return fmt.Sprintf("locscope has version %s built with %s from %s (%s, modified: %s) on %s",
		info.Version,
		info.GoVersion,
		info.GitCommit,
		info.Platform,
		info.Modified,
		info.BuildDate,
	)
}

// GetShortVersionString 返回简短版本字符串
func GetShortVersionString() string {
	info := GetVersion()
	date := info.BuildDate
	if t, err := time.Parse(time.RFC3339, info.BuildDate); err == nil {
		date = t.Format("2006-01-02")
	}
	return fmt.Sprintf("locscope version %s (%s)", info.Version, date)
}
