package cmd

import (
	"fmt"

	"github.com/mdrtools/cacheprimer/cmd/prime"
	"github.com/spf13/cobra"
)

var (
	BuildTS   = "None"
	GitHash   = "None"
	GitBranch = "None"
	Version   = "None"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "print version",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		v := Version
		if len(GitHash) > 7 {
			v = fmt.Sprintf("%s-%s", Version, GitHash[:7])
		}
		fmt.Println("Version:         ", v)
		fmt.Println("Git Branch:      ", GitBranch)
		fmt.Println("Git Commit:      ", GitHash)
		fmt.Println("Build Time (UTC):", BuildTS)
	},
}

func Execute() error {
	var rootCmd = &cobra.Command{
		Use:   "cacheprimer",
		Short: "recursively fetch a hypermedia API to prime its HTTP cache",
	}
	rootCmd.AddCommand(prime.PrimeCmd, versionCmd)
	return rootCmd.Execute()
}
