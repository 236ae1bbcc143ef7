// Command conv1 runs the conv1 layer on random data and checks the result
// against the reference model.
package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/sarchlab/akita/v4/monitoring"
	"github.com/sarchlab/akita/v4/sim"
	"github.com/sarchlab/tileconv/api"
	"github.com/sarchlab/tileconv/config"
	"github.com/sarchlab/tileconv/core"
	"github.com/sarchlab/tileconv/tensor"
	valgen "github.com/sarchlab/tileconv/util"
	"github.com/sarchlab/tileconv/verify"
	"github.com/spf13/cobra"
	"github.com/tebeka/atexit"
)

type options struct {
	configFile string
	mode       string
	seed       int64
	workers    int
	plan       bool
	monitor    bool
	logLevel   string
	reportFile string
}

func main() {
	opts := options{}

	cmd := &cobra.Command{
		Use:           "conv1",
		Short:         "Run the tiled conv1 layer and verify it",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.configFile, "config", "", "YAML file with the layer and tiling")
	f.StringVar(&opts.mode, "mode", "seq", "engine: seq, parallel or sim")
	f.Int64Var(&opts.seed, "seed", 1, "seed of the random operands")
	f.IntVar(&opts.workers, "workers", 0, "parallel workers, 0 for GOMAXPROCS")
	f.BoolVar(&opts.plan, "plan", false, "pick the largest tiling that fits the budget")
	f.BoolVar(&opts.monitor, "monitor", false, "serve the akita monitor in sim mode")
	f.StringVar(&opts.logLevel, "log", "info", "log level: info, trace or off")
	f.StringVar(&opts.reportFile, "report", "", "also write the verification report to this file")

	if err := cmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "conv1:", err)
		atexit.Exit(1)
	}

	atexit.Exit(0)
}

func setupLogger(level string) error {
	var l slog.Level
	switch strings.ToLower(level) {
	case "info":
		l = slog.LevelInfo
	case "trace":
		l = core.LevelTrace
	case "off":
		l = slog.LevelError + 1
	default:
		return fmt.Errorf("unknown log level %q", level)
	}

	handler := slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{Level: l})
	slog.SetDefault(slog.New(handler))

	return nil
}

func loadConfig(opts options) (config.Layer, config.Config, error) {
	layer := config.Conv1

	cfg, err := config.FromEnv(config.Default())
	if err != nil {
		return layer, cfg, err
	}

	if opts.configFile != "" {
		layer, cfg, err = config.LoadFile(opts.configFile, layer, cfg)
		if err != nil {
			return layer, cfg, err
		}
	}

	if opts.plan {
		planned, err := config.AutoPlan(layer, cfg.Budget)
		if err != nil {
			return layer, cfg, err
		}
		cfg = planned.WithOverflow(cfg.Overflow)
	}

	return layer, cfg, cfg.Validate(layer)
}

func run(opts options) error {
	if err := setupLogger(opts.logLevel); err != nil {
		return err
	}

	layer, cfg, err := loadConfig(opts)
	if err != nil {
		return err
	}

	slog.Info("Config",
		"Layer", layer.String(),
		"Tiling", cfg.String(),
		"BufferBytes", cfg.Budget.Bytes(),
		"Mode", opts.mode,
	)

	input, weights, bias := valgen.RandomLayer(layer, opts.seed)

	got, err := runMode(opts, layer, cfg, input, weights, bias)
	if err != nil {
		return err
	}

	want, _, err := verify.ReferenceConv(input, weights, bias, cfg.Overflow)
	if err != nil {
		return err
	}

	report := verify.GenerateReport("conv1/"+opts.mode, got, want)
	report.WriteReport(os.Stdout)

	if opts.reportFile != "" {
		if err := report.SaveReportToFile(opts.reportFile); err != nil {
			return err
		}
	}

	if !report.OK() {
		return fmt.Errorf("%d of %d elements differ from the reference",
			report.Total, report.Elements)
	}

	return nil
}

func runMode(
	opts options,
	layer config.Layer,
	cfg config.Config,
	input *tensor.FeatureMap,
	weights *tensor.WeightTensor,
	bias *tensor.BiasVector,
) (*tensor.FeatureMap, error) {
	switch opts.mode {
	case "seq", "parallel":
		output := tensor.NewFeatureMap(layer.OutChannels, layer.Height, layer.Width)
		ops := core.Operands{
			Input:   input,
			Output:  output,
			Weights: weights,
			Bias:    bias,
		}

		var (
			stats core.Stats
			err   error
		)
		if opts.mode == "seq" {
			stats, err = core.RunConvLayer(input, output, weights, bias, cfg)
		} else {
			stats, err = core.RunParallel(ops, cfg, opts.workers)
		}
		if err != nil {
			return nil, err
		}

		fmt.Println(stats.Table("conv1"))

		return output, nil
	case "sim":
		return runSim(opts, layer, cfg, input, weights, bias)
	default:
		return nil, fmt.Errorf("unknown mode %q", opts.mode)
	}
}

func runSim(
	opts options,
	layer config.Layer,
	cfg config.Config,
	input *tensor.FeatureMap,
	weights *tensor.WeightTensor,
	bias *tensor.BiasVector,
) (*tensor.FeatureMap, error) {
	engine := sim.NewSerialEngine()

	driver := api.MakeDriverBuilder().
		WithEngine(engine).
		WithFreq(1 * sim.GHz).
		WithLayer(layer).
		WithConfig(cfg).
		Build("Driver")

	if opts.monitor {
		monitor := monitoring.NewMonitor()
		monitor.RegisterEngine(engine)
		monitor.RegisterComponent(driver)
		monitor.StartServer()
	}

	if err := driver.Load(input, weights, bias); err != nil {
		return nil, err
	}

	if err := driver.Run(); err != nil {
		return nil, err
	}

	fmt.Println(driver.Stats().Table("conv1 (simulated)"))

	return driver.Result()
}
