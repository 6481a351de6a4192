package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pokenest/internal/app"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/utils"
)

// RefsCommand returns the command for the ability and pokedex reference data
func RefsCommand() *cli.Command {
	return &cli.Command{
		Name:  "refs",
		Usage: "Show reference data used by pokemon details",
		Subcommands: []*cli.Command{
			{
				Name:  "abilities",
				Usage: "List abilities with their latest description",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "search",
						Aliases: []string{"q"},
						Usage:   "Filter by ability name",
					},
				},
				Action: refsAbilitiesAction,
			},
			{
				Name:   "pokedexes",
				Usage:  "List regional pokedexes by region",
				Action: refsPokedexesAction,
			},
		},
	}
}

func refsAbilitiesAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	abilities, err := application.References.Abilities(c.Context)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to load abilities: %s", err))
		return err
	}

	query := strings.TrimSpace(c.String("search"))
	rows := make([][]string, 0, len(abilities))
	for _, a := range abilities {
		if query != "" && !strings.Contains(a.Name, query) {
			continue
		}
		rows = append(rows, []string{strconv.Itoa(a.ID), a.Name, abilitySummary(a)})
	}
	if len(rows) == 0 {
		utils.PrintInfo("No abilities found")
		return nil
	}

	opts := utils.DefaultTableOptions()
	opts.Title = "Abilities"
	opts.Footer = fmt.Sprintf("%d abilities", len(rows))
	utils.PrintTable([]string{"ID", "Name", "Description"}, rows, opts)
	return nil
}

// abilitySummary returns the last description of a, wrapped for a table cell
func abilitySummary(a dex.AbilityData) string {
	if len(a.FlavorTextEntries) == 0 {
		return ""
	}
	latest := a.FlavorTextEntries[len(a.FlavorTextEntries)-1]
	return utils.Wrap(latest.FlavorText, 48, 0)
}

func refsPokedexesAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	pokedexes, err := application.References.Pokedexes(c.Context)
	if err != nil {
		utils.PrintError(fmt.Sprintf("Failed to load pokedexes: %s", err))
		return err
	}
	if len(pokedexes) == 0 {
		utils.PrintInfo("No pokedexes found")
		return nil
	}

	groups, items := pokedexTree(pokedexes)
	utils.PrintTreeList("Pokedexes", groups, items)
	return nil
}

// pokedexTree groups pokedexes under their region, keeping first-seen order
func pokedexTree(pokedexes []dex.PokedexData) ([]string, map[string][]string) {
	var groups []string
	items := make(map[string][]string)
	for _, p := range pokedexes {
		region := p.Region.Name
		if region == "" {
			region = "?"
		}
		if _, ok := items[region]; !ok {
			groups = append(groups, region)
		}

		var versions []dex.Version
		for _, vg := range p.VGroup {
			versions = append(versions, vg.Version...)
		}
		entry := p.Name
		if len(versions) > 0 {
			entry = fmt.Sprintf("%s (%s)", p.Name, versionNames(versions))
		}
		items[region] = append(items[region], entry)
	}
	return groups, items
}
