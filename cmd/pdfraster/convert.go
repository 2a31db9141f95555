package main

import (
	"fmt"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/pdiddy/pdfraster/internal/history"
	"github.com/pdiddy/pdfraster/internal/logging"
	"github.com/pdiddy/pdfraster/internal/preflight"
	"github.com/pdiddy/pdfraster/internal/render"
	"github.com/pdiddy/pdfraster/pkg/types"
)

// newRenderer and runPreflight are swapped for fakes in tests.
var (
	newRenderer  = func() render.Renderer { return render.NewPopplerRenderer() }
	runPreflight = preflight.Run
)

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := appConfig()
	if err := logging.Setup(cfg.Logging); err != nil {
		return err
	}

	req, err := buildRequest(cmd, args, cfg.Render)
	if err != nil {
		return err
	}

	checks, err := runPreflight(req)
	for _, c := range checks {
		if c.OK {
			logging.Debug("pre-flight check passed", "check", c.Name, "detail", c.Detail)
		}
	}
	if err != nil {
		return err
	}

	result, err := newRenderer().Render(req)
	if err != nil {
		return err
	}

	logging.Info("conversion complete",
		"pages", result.Pages, "duration", result.Duration.String())
	color.Green("Wrote %d page(s) to %s", result.Pages, req.OutputDir)

	recordRun(req, result)
	return nil
}

// buildRequest merges positional arguments, flags, and config into a
// conversion request. Flags win over config, config over built-in
// defaults.
func buildRequest(cmd *cobra.Command, args []string, cfg types.RenderConfig) (types.Request, error) {
	dpi, _ := cmd.Flags().GetInt("dpi")
	if dpi == 0 {
		dpi = cfg.DPI
	}
	if dpi <= 0 {
		return types.Request{}, fmt.Errorf("dpi must be a positive integer, got %d", dpi)
	}

	format, _ := cmd.Flags().GetString("fmt")
	if format == "" {
		format = cfg.Format
	}

	popplerPath, _ := cmd.Flags().GetString("poppler_path")
	if popplerPath == "" {
		popplerPath = cfg.PopplerPath
	}

	return types.Request{
		InputPath:   args[0],
		OutputDir:   args[1],
		DPI:         dpi,
		Format:      types.ParseFormat(format),
		PopplerPath: popplerPath,
	}, nil
}

// recordRun appends the run to the history ledger. Ledger trouble is
// logged, never fatal.
func recordRun(req types.Request, result *render.Result) {
	cfg := appConfig().History
	if !cfg.Enabled {
		return
	}

	store, err := history.Open(cfg)
	if err != nil {
		logging.Warn("history ledger unavailable", "error", err)
		return
	}
	defer store.Close()

	_, err = store.Record(types.RunRecord{
		InputPath: req.InputPath,
		OutputDir: req.OutputDir,
		Format:    req.Format,
		DPI:       req.DPI,
		Pages:     result.Pages,
		Duration:  result.Duration,
		CreatedAt: time.Now().UTC(),
	})
	if err != nil {
		logging.Warn("recording run failed", "error", err)
	}
}
