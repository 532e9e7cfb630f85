package cmd

import (
	"runtime"

	"smc/cmd/root"

	"github.com/spf13/cobra"
)

// Filled by -ldflags "-X smc/cmd.SoftwareVer=..." at build time.
var (
	SoftwareVer   = "dev"
	BuildTime     = ""
	BuildTag      = ""
	BuildCommitId = ""
)

// VersionInfo 版本信息
type VersionInfo struct {
	Version   string `json:"version"`
	BuildTime string `json:"build_time"`
	BuildTag  string `json:"build_tag"`
	CommitId  string `json:"commit_id"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

func currentVersion() VersionInfo {
	return VersionInfo{
		Version:   SoftwareVer,
		BuildTime: BuildTime,
		BuildTag:  BuildTag,
		CommitId:  BuildCommitId,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Display version information",
	Long:  `The 'version' command shows the smc version, build details and Go runtime`,
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return root.PrintRows([]VersionInfo{currentVersion()}, "")
	},
}

func init() {
	root.RootCmd.AddCommand(versionCmd)

	versionCmd.Example = `  smc version
  smc version -j`
}
