package cli

import (
	"github.com/averonne/chainsight/internal/api"
	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/spf13/cobra"
)

var (
	syncCmd = &cobra.Command{
		Use:   "sync",
		Short: "Chain synchronizer controls",
	}

	sync_suspendCmd = &cobra.Command{
		Use:   "suspend",
		Short: "suspend the chain synchronizer, keeping the last snapshot",
		Run:   runSyncSuspend,
	}

	sync_resumeCmd = &cobra.Command{
		Use:   "resume",
		Short: "resume the chain synchronizer",
		Run:   runSyncResume,
	}
)

func runSyncSuspend(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	if err := api.Suspend(); err != nil {
		logging.WithError(err).Error("suspending synchronizer")
	}
}

func runSyncResume(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	if err := api.Resume(); err != nil {
		logging.WithError(err).Error("resuming synchronizer")
	}
}
