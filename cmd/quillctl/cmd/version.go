package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

// Build information. Populated at build time via -ldflags.
var (
	Version   = "0.3.0"
	Commit    = "none"
	BuildDate = "unknown"
)

var versionShort bool

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Long: `Print the quillctl build details.

Include the full output in bug reports; --short prints just the version
string for use in scripts.`,
	Run: func(cmd *cobra.Command, args []string) {
		if versionShort {
			fmt.Println(Version)
			return
		}
		fmt.Printf("quillctl %s (commit %s, built %s)\n", Version, Commit, BuildDate)
		fmt.Printf("  %s %s/%s\n", runtime.Version(), runtime.GOOS, runtime.GOARCH)
	},
}

func init() {
	versionCmd.Flags().BoolVar(&versionShort, "short", false, "print only the version string")
	rootCmd.AddCommand(versionCmd)
}
