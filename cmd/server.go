package cmd

import (
	"peako/server"

	"github.com/spf13/cobra"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "启动Peak'O站点服务器",
	Long:  `启动Peak'O音乐站点的HTTP服务器，提供公开内容API和管理端API`,
	Run: func(cmd *cobra.Command, args []string) {
		server.Start()
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
}
