package commands

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/urfave/cli/v2"

	"github.com/tildaslashalef/pokenest/internal/app"
	"github.com/tildaslashalef/pokenest/internal/dex"
	"github.com/tildaslashalef/pokenest/internal/fetch"
	"github.com/tildaslashalef/pokenest/internal/utils"
)

// ShowCommand returns the show command
func ShowCommand() *cli.Command {
	return &cli.Command{
		Name:      "show",
		Usage:     "Show the details of one pokemon",
		ArgsUsage: "<id>",
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  "raw",
				Usage: "Print markdown without rendering it",
			},
		},
		Action: showAction,
	}
}

func showAction(c *cli.Context) error {
	application, err := app.FromContext(c)
	if err != nil {
		return err
	}

	id, err := strconv.Atoi(c.Args().First())
	if err != nil || id <= 0 {
		return fmt.Errorf("usage: pokenest show <id>")
	}

	if _, err := application.Catalog.LoadCached(c.Context); err != nil {
		utils.PrintWarning(fmt.Sprintf("Could not read cached records: %s", err))
	}

	agg, err := application.Details.Select(c.Context, id)
	if err != nil {
		if fetch.IsNotFound(err) {
			utils.PrintError(fmt.Sprintf("Pokemon %d not found", id))
		} else if fetch.Reportable(err) {
			utils.PrintError(fmt.Sprintf("Failed to load pokemon %d: %s", id, err))
		}
		return err
	}

	md := detailMarkdown(agg)
	if c.Bool("raw") {
		fmt.Print(md)
		return nil
	}

	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(100),
	)
	if err != nil {
		return fmt.Errorf("failed to create markdown renderer: %w", err)
	}
	out, err := renderer.Render(md)
	if err != nil {
		return fmt.Errorf("failed to render details: %w", err)
	}
	fmt.Print(out)
	return nil
}

// flavorWidth is the column flavor text is wrapped at inside a blockquote
const flavorWidth = 80

// detailMarkdown lays out a detail aggregate as a markdown document
func detailMarkdown(agg dex.DetailAggregate) string {
	var sb strings.Builder
	r := agg.Record

	fmt.Fprintf(&sb, "# No.%04d %s\n\n", r.Pokedex, recordTitle(r))
	fmt.Fprintf(&sb, "| Types | Generation | ID |\n|---|---|---|\n| %s | %d | %d |\n\n",
		strings.Join(dex.TypeNames(r.Types), "/"), r.Generation, r.ID)
	if agg.Images.Default != "" {
		fmt.Fprintf(&sb, "Sprite: %s\n\n", agg.Images.Default)
	}

	if len(agg.Appearance.RegionNames) > 0 || len(agg.Appearance.Versions) > 0 {
		sb.WriteString("## Appearance\n\n")
		if len(agg.Appearance.RegionNames) > 0 {
			fmt.Fprintf(&sb, "- Regions: %s\n", strings.Join(agg.Appearance.RegionNames, "、"))
		}
		if len(agg.Appearance.Versions) > 0 {
			fmt.Fprintf(&sb, "- Versions: %s\n", versionNames(agg.Appearance.Versions))
		}
		sb.WriteString("\n")
	}

	if len(agg.Abilities) > 0 {
		sb.WriteString("## Abilities\n\n")
		for _, a := range agg.Abilities {
			name := a.Name
			if name == "" {
				name = "?"
			}
			if a.IsHidden {
				name += " (hidden)"
			}
			fmt.Fprintf(&sb, "- **%s**", name)
			if len(a.Texts) > 0 {
				fmt.Fprintf(&sb, ": %s", strings.Join(strings.Fields(a.Texts[0].Text), " "))
			}
			sb.WriteString("\n")
		}
		sb.WriteString("\n")
	}

	if len(agg.Flavors) > 0 {
		sb.WriteString("## Pokedex entries\n\n")
		for _, f := range agg.Flavors {
			for _, line := range strings.Split(utils.Wrap(f.Text, flavorWidth, 0), "\n") {
				fmt.Fprintf(&sb, "> %s\n", line)
			}
			fmt.Fprintf(&sb, ">\n> *%s*\n\n", versionNames(f.Versions))
		}
	}

	if len(agg.Evolution) > 1 {
		sb.WriteString("## Evolution\n\n")
		for _, n := range agg.Evolution {
			line := n.Name
			if line == "" {
				line = "?"
			}
			if n.IsMain {
				line = "**" + line + "**"
			}
			if n.Stage != "" {
				line = fmt.Sprintf("[%s] %s", n.Stage, line)
			}
			if n.EggItem != "" {
				line += fmt.Sprintf(" (egg: %s)", n.EggItem)
			}
			fmt.Fprintf(&sb, "%s- %s\n", strings.Repeat("  ", n.Depth), line)
		}
		sb.WriteString("\n")
	}

	if len(agg.Forms.Varieties) > 0 || len(agg.Forms.Sprites) > 0 {
		sb.WriteString("## Forms\n\n")
		for _, v := range agg.Forms.Varieties {
			fmt.Fprintf(&sb, "- %s (#%d)\n", v.FormName, v.ID)
		}
		for _, s := range agg.Forms.Sprites {
			fmt.Fprintf(&sb, "- %s\n", s.FormName)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

func versionNames(versions []dex.Version) string {
	names := make([]string, 0, len(versions))
	for _, v := range versions {
		names = append(names, v.Name)
	}
	return strings.Join(names, "・")
}
