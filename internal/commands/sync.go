package commands

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pokenest/internal/app"
	"github.com/tildaslashalef/pokenest/internal/catalog"
	synctui "github.com/tildaslashalef/pokenest/internal/commands/sync"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/loggy"
	"github.com/tildaslashalef/pokenest/internal/utils"
)

// SyncCommand returns the sync command
func SyncCommand() *cli.Command {
	return &cli.Command{
		Name:  "sync",
		Usage: "Synchronize the local pokemon catalog with PokeAPI",
		Description: "Compares the remote pokemon count with the local cache. When they match the " +
			"cache is used as is; otherwise the first page of missing records is fetched and " +
			"the rest follows in the background.",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "plain",
				Usage: "Print a progress bar instead of the interactive view",
			},
			&cli.BoolFlag{
				Name:  "initial-only",
				Usage: "Stop once the first page is ready",
			},
		},
		Action: syncAction,
		Subcommands: []*cli.Command{
			{
				Name:  "history",
				Usage: "Show recent sync runs",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  "limit",
						Usage: "Number of runs to show",
						Value: 10,
					},
				},
				Action: syncHistoryAction,
			},
		},
	}
}

func syncAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	initialOnly := c.Bool("initial-only")
	loggy.Info("Starting sync", "plain", c.Bool("plain"), "initial_only", initialOnly)

	if c.Bool("plain") {
		return runPlainSync(c.Context, application.Catalog, initialOnly)
	}
	return synctui.Run(c.Context, application.Catalog, initialOnly)
}

// runPlainSync drives a sync run with a go-pretty progress bar
func runPlainSync(ctx context.Context, controller *catalog.Controller, initialOnly bool) error {
	runCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	updates, unsubscribe := controller.Subscribe()

	pw := utils.CreateProgressWriter()
	tracker := utils.CreateProgressTracker("Fetching pokemon records", 0)
	pw.AppendTracker(tracker)
	go pw.Render()

	tracked := make(chan struct{})
	go func() {
		defer close(tracked)
		for s := range updates {
			if s.RemoteCount > 0 {
				tracker.UpdateTotal(int64(s.RemoteCount))
			}
			tracker.SetValue(int64(s.Loaded))
		}
	}()

	stop := func(failed bool) {
		unsubscribe()
		<-tracked
		if failed {
			tracker.MarkAsErrored()
		} else {
			tracker.MarkAsDone()
		}
		pw.Stop()
		for pw.IsRenderInProgress() {
			time.Sleep(10 * time.Millisecond)
		}
	}

	result, err := controller.Sync(runCtx)
	if err != nil {
		stop(true)
		if !fetch.Reportable(err) {
			utils.PrintWarning("Sync stopped")
			return nil
		}
		utils.PrintError(fmt.Sprintf("Sync failed: %s", err))
		return err
	}

	if initialOnly {
		cancel()
	}
	err = result.Wait(ctx)
	stop(fetch.Reportable(err))
	if fetch.Reportable(err) {
		utils.PrintError(fmt.Sprintf("Background fetch failed: %s", err))
		return err
	}

	status := controller.Status()
	if status.Cancelled {
		utils.PrintWarning("Sync stopped after the first page")
	} else {
		utils.PrintSuccess("Sync complete")
	}
	utils.PrintKeyValue("Run", result.RunID)
	utils.PrintKeyValue("Path", string(result.Path))
	utils.PrintKeyValue("Remote count", strconv.Itoa(result.RemoteCount))
	utils.PrintKeyValue("Records ready", strconv.Itoa(len(controller.Records())))
	return nil
}

func syncHistoryAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	runs, err := application.Runs.ListRuns(c.Context, c.Int("limit"))
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to list sync runs: %s", err))
		return fmt.Errorf("failed to list sync runs: %w", err)
	}
	if len(runs) == 0 {
		utils.PrintInfo("No sync runs yet. Run 'pokenest sync' first.")
		return nil
	}

	rows := make([][]string, 0, len(runs))
	for _, run := range runs {
		rows = append(rows, []string{
			run.ID.String(),
			run.StartedAt.Local().Format("2006-01-02 15:04:05"),
			utils.FormatDuration(run.Duration()),
			string(run.Path),
			strconv.Itoa(run.RemoteCount),
			strconv.Itoa(run.CachedCount),
			strconv.Itoa(run.RecordsStored),
			string(run.State),
			utils.Truncate(run.Error, 40),
		})
	}

	opts := utils.DefaultTableOptions()
	opts.Title = "Sync history"
	utils.PrintTable(
		[]string{"Run", "Started", "Duration", "Path", "Remote", "Cached", "Stored", "State", "Error"},
		rows, opts,
	)
	return nil
}
