package main

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"net/http"
	"os"
	"sync/atomic"
	"time"

	lg "github.com/Andrej220/go-utils/zlog"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/spf13/cobra"
	flag "github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/azargarov/taskpool"
)

// benchParams are the load settings; pool settings live in taskpool.Config.
type benchParams struct {
	Tasks        int
	Priorities   uint64
	TaskDuration time.Duration
	MetricsAddr  string
}

var (
	v       = viper.New()
	cfgFile string
)

var rootCmd = &cobra.Command{
	Use:   "poolbench",
	Short: "Run synthetic prioritized load through a taskpool",
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := readConfigFile(); err != nil {
			return err
		}
		cfg, err := taskpool.DecodeConfig(v.AllSettings())
		if err != nil {
			return err
		}
		params := benchParams{
			Tasks:        v.GetInt("tasks"),
			Priorities:   v.GetUint64("priorities"),
			TaskDuration: v.GetDuration("task-duration"),
			MetricsAddr:  v.GetString("metrics-addr"),
		}
		return run(cmd.Context(), cfg, params)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.Flags().StringVar(&cfgFile, "config", "", "YAML config file")
	if err := bindFlags(rootCmd.Flags()); err != nil {
		panic(fmt.Errorf("error while binding flags: %w", err))
	}
}

func bindFlags(fs *flag.FlagSet) error {
	fs.Uint("workers", 4, "number of pool workers")
	fs.Bool("pin-workers", false, "pin workers to CPUs")
	fs.String("metrics-namespace", "poolbench", "prometheus namespace")
	fs.Int("tasks", 10000, "number of tasks to submit")
	fs.Uint64("priorities", 8, "number of distinct priorities, 0 uses the default priority")
	fs.Duration("task-duration", 0, "time each task sleeps")
	fs.String("metrics-addr", "", "serve /metrics on this address while running")
	return v.BindPFlags(fs)
}

func readConfigFile() error {
	if cfgFile == "" {
		return nil
	}
	v.SetConfigFile(cfgFile)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("error while reading the config file: %w", err)
	}
	return nil
}

func run(ctx context.Context, cfg taskpool.Config, params benchParams) error {
	if ctx == nil {
		ctx = context.Background()
	}
	logger := lg.FromContext(ctx)

	reg := prometheus.NewRegistry()
	metrics, err := taskpool.NewPrometheusMetrics(reg, cfg.MetricsNamespace)
	if err != nil {
		return err
	}

	if params.MetricsAddr != "" {
		srv := &http.Server{
			Addr:    params.MetricsAddr,
			Handler: promhttp.HandlerFor(reg, promhttp.HandlerOpts{}),
		}
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				logger.Error("metrics server failed", lg.Any("error", err))
			}
		}()
		defer srv.Close()
	}

	opts := cfg.Options()
	opts.Metrics = metrics
	opts.Context = ctx
	opts.OnTaskError = func(err error) {
		logger.Warn("task failed", lg.Any("error", err))
	}
	pool := taskpool.NewPool(opts)
	defer pool.Close()

	var executed atomic.Int64
	task := func() {
		if params.TaskDuration > 0 {
			time.Sleep(params.TaskDuration)
		}
		executed.Add(1)
	}

	start := time.Now()
	for range params.Tasks {
		var err error
		if params.Priorities == 0 {
			err = pool.Submit(task)
		} else {
			err = pool.SubmitPriority(taskpool.Priority(rand.Uint64N(params.Priorities)), task)
		}
		if err != nil {
			return err
		}
	}
	pool.Stop()
	elapsed := time.Since(start)

	fmt.Printf("workers=%d tasks=%d executed=%d elapsed=%s\n",
		cfg.Workers, params.Tasks, executed.Load(), elapsed)
	return nil
}
