package cmd

import (
	"github.com/gin-gonic/gin"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"github.com/vessel-io/agent/pkg/agent"
	"github.com/vessel-io/agent/pkg/droplet"
	"github.com/vessel-io/agent/pkg/env"
	"github.com/vessel-io/agent/pkg/http"
	"github.com/vessel-io/agent/pkg/loop"
	"github.com/vessel-io/agent/pkg/runtimes"
	"github.com/vessel-io/agent/pkg/trace"
	_ "github.com/vessel-io/agent/pkg/tools/log"
)

var rootCmd = &cobra.Command{
	Use:   "agent",
	Short: "node agent running application instances",
	Long:  "node agent running application instances",
	Run: func(cmd *cobra.Command, args []string) {
		loop.Initial()
		runtimes.Initial()
		droplet.Initial()
		agent.Initial()
		trace.TraceInit()
		defer func() {
			lp := loop.GetLoop()
			lp.Stop()
			lp.Drain()
		}()
		r := gin.Default()
		http.RegisterRoute(r)
		r.Run(":" + viper.GetString(env.Port))
	},
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.AddCommand(versionCmd)
	rootCmd.PersistentFlags().String("port", "8080", "http listen port")
	rootCmd.PersistentFlags().String("droplet-dir", "/var/vessel/droplets", "local droplet directory")
	rootCmd.PersistentFlags().String("runtimes", "", "path of the runtimes yaml file")
	rootCmd.PersistentFlags().Bool("mock", false, "use mock droplet handles")
	viper.BindPFlag(env.Port, rootCmd.PersistentFlags().Lookup("port"))
	viper.BindPFlag(env.DropletDirectory, rootCmd.PersistentFlags().Lookup("droplet-dir"))
	viper.BindPFlag(env.RuntimesPath, rootCmd.PersistentFlags().Lookup("runtimes"))
	viper.BindPFlag(env.Mock, rootCmd.PersistentFlags().Lookup("mock"))
	viper.SetDefault(env.DownloadAttempts, 3)
}
