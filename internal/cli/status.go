package cli

import (
	"encoding/json"
	"fmt"

	"github.com/averonne/chainsight/internal/api"
	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/spf13/cobra"
)

var (
	statusCmd = &cobra.Command{
		Use:   "status",
		Short: "show node liveness",
		Run:   runStatus,
	}

	chainCmd = &cobra.Command{
		Use:   "chain",
		Short: "show the current chain snapshot stats",
		Run:   runChain,
	}
)

func runStatus(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	res, err := api.Status()
	if err != nil {
		logging.WithError(err).Error("fetching status")
		return
	}

	s, _ := json.Marshal(res)

	fmt.Printf("%s", s)
}

func runChain(cmd *cobra.Command, args []string) {
	api, err := api.NewClient()
	if err != nil {
		logging.WithError(err).Error("constructing client")
		return
	}

	res, err := api.Chain()
	if err != nil {
		logging.WithError(err).Error("fetching chain")
		return
	}

	s, _ := json.Marshal(res.Stats)

	fmt.Printf("%s", s)
}
