package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var cfgFile string

var rootCmd = &cobra.Command{
	Use:   "mint-relay",
	Short: "asa-studio mint relay",
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "conf", "./config/relay.toml", "conf file path")
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
