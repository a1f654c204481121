package cmd

import (
	"github.com/dapplist/registry/src/serve"
	"github.com/dapplist/registry/src/utils/logger"

	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(serveCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Runs the registry service with its REST gateway",
	RunE: func(cmd *cobra.Command, args []string) (err error) {
		controller, err := serve.NewController(conf)
		if err != nil {
			return
		}

		err = controller.Start()
		if err != nil {
			return
		}

		select {
		case <-controller.CtxRunning.Done():
		case <-applicationCtx.Done():
		}

		controller.StopWait()

		return
	},
	PostRunE: func(cmd *cobra.Command, args []string) (err error) {
		log := logger.NewSublogger("serve-cmd")
		log.Debug("Finished serve command")
		applicationCtxCancel()
		return
	},
}
