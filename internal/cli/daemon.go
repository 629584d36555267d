package cli

import (
	"context"
	"fmt"
	"net"
	"os"
	"os/signal"
	"syscall"

	"github.com/averonne/chainsight/internal/api"
	"github.com/averonne/chainsight/internal/config"
	"github.com/averonne/chainsight/internal/utils/logging"
	"github.com/averonne/chainsight/pkg/chain"
	"github.com/averonne/chainsight/pkg/health"
	"github.com/averonne/chainsight/pkg/reputation"
	"github.com/averonne/chainsight/pkg/scheduler"
	"github.com/averonne/chainsight/pkg/wallet"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	daemonCmd = &cobra.Command{
		Use:   "daemon",
		RunE:  runDaemon,
		Short: "run the dashboard daemon",
	}
)

func init() {
	daemonCmd.Flags().IntP("api-port", "p", 5001, "api port")
	viper.BindPFlag("api_port", daemonCmd.Flags().Lookup("api-port"))
}

func runDaemon(cmd *cobra.Command, args []string) error {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	cfg, err := config.GetConfig()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}

	monitor := health.NewMonitor(
		cfg.Nodes().Registry,
		health.NewHTTPStatusClient(cfg.RequestTimeout(), viper.GetInt("node_rate_limit")),
		cfg.RequestTimeout(),
	)

	sync := chain.NewSynchronizer(
		chain.NewHTTPClient(cfg.Nodes().Current, cfg.RequestTimeout(), viper.GetInt("node_rate_limit")),
		chain.NewSnapshotValidator(),
	)

	store, err := buildProfileStore()
	if err != nil {
		return errors.Wrap(err, "initing profile store")
	}
	defer store.Close()

	engine, err := reputation.NewEngine(ctx, store)
	if err != nil {
		return errors.Wrap(err, "initing reputation engine")
	}
	go engine.Run(ctx)

	healthRunner := scheduler.NewRunner("health", cfg.PollInterval(), func(ctx context.Context) error {
		monitor.PollAll(ctx)
		return nil
	})

	syncRunner := scheduler.NewRunner("chain", cfg.PollInterval(), func(ctx context.Context) error {
		_, err := sync.Refresh(ctx)
		return err
	})

	healthRunner.Start(ctx)
	syncRunner.Start(ctx)
	defer healthRunner.Stop()
	defer syncRunner.Stop()

	wallets := wallet.NewHTTPClient(cfg.Nodes().Current, cfg.RequestTimeout())

	a, err := api.NewAPI(monitor, sync, syncRunner, engine, wallets)
	if err != nil {
		return err
	}
	defer a.Shutdown(ctx)

	errCh := make(chan error)

	go func() {
		fmt.Printf("Starting dashboard API on %d\n", viper.GetInt("api_port"))
		if err := a.ListenAndServe(ctx, &net.TCPAddr{Port: viper.GetInt("api_port")}); err != nil {
			errCh <- err
		}
	}()

	select {
	case err := <-errCh:
		return err
	case <-waitExit(ctx):
		logging.Entry().Warn("Shutting down")
		return nil
	}
}

func buildProfileStore() (reputation.Store, error) {
	switch viper.GetString("profile.store") {
	case "leveldb":
		return reputation.NewLevelDBStore(os.ExpandEnv(viper.GetString("profile.leveldb")))
	case "memory":
		return reputation.NewMemStore(), nil
	default:
		return reputation.NewFileStore(os.ExpandEnv(viper.GetString("profile.path")))
	}
}

func waitExit(ctx context.Context) <-chan os.Signal {
	sigs := make(chan os.Signal, 1)
	signal.Notify(sigs, syscall.SIGINT, syscall.SIGTERM)
	return sigs
}
