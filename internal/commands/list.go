package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pokenest/internal/app"
	"github.com/tildaslashalef/pokenest/internal/catalog"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/utils"
)

// ListCommand returns the list command
func ListCommand() *cli.Command {
	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List cached pokemon",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:    "page",
				Aliases: []string{"p"},
				Usage:   "Page to show, starting at 1",
				Value:   1,
			},
			&cli.IntFlag{
				Name:  "size",
				Usage: "Records per page (default: sync page size)",
			},
			&cli.StringFlag{
				Name:    "search",
				Aliases: []string{"q"},
				Usage:   "Filter by pokedex number, id or name",
			},
		},
		Action: listAction,
	}
}

func listAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	if _, err := application.Catalog.LoadCached(c.Context); err != nil {
		utils.PrintWarning(fmt.Sprintf("Could not read cached records: %s", err))
	}
	records := application.Catalog.Records()
	if len(records) == 0 {
		utils.PrintInfo("No cached records. Run 'pokenest sync' first.")
		return nil
	}

	size := c.Int("size")
	if size <= 0 {
		size = application.Config.Sync.PageSize
	}

	query := c.String("search")
	result := catalog.Page(catalog.Search(records, query), c.Int("page"), size)
	if result.Total == 0 {
		utils.PrintInfo(fmt.Sprintf("No pokemon match %q", query))
		return nil
	}

	opts := utils.DefaultTableOptions()
	opts.Footer = fmt.Sprintf("Page %d of %d (%d pokemon)", result.Page, result.Pages, result.Total)
	utils.PrintTable([]string{"No.", "ID", "Name", "Types", "Gen"}, recordRows(result.Records), opts)
	return nil
}

func recordRows(records []dex.Record) [][]string {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		rows = append(rows, []string{
			fmt.Sprintf("%04d", r.Pokedex),
			strconv.Itoa(r.ID),
			recordTitle(r),
			strings.Join(dex.TypeNames(r.Types), "/"),
			strconv.Itoa(r.Generation),
		})
	}
	return rows
}

// recordTitle is the display name followed by the variant label, if any
func recordTitle(r dex.Record) string {
	if v := r.VariantLabel(); v != "" {
		return fmt.Sprintf("%s (%s)", r.DisplayName(), v)
	}
	return r.DisplayName()
}
