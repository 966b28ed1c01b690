package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/introflow/replybrain/internal/anchor"
	"github.com/introflow/replybrain/internal/cli"
)

func patternsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "patterns",
		Short: "Inspect the pattern tables",
	}
	cmd.AddCommand(patternsListCmd())
	return cmd
}

func patternsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List the compiled pattern families and the forbidden patterns",
		RunE:  runPatternsList,
	}

	cmd.Flags().Bool("json", false, "emit JSON instead of styled output")

	return cmd
}

func runPatternsList(cmd *cobra.Command, _ []string) error {
	eng, err := buildEngine()
	if err != nil {
		return err
	}

	families := eng.Families()

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(map[string]any{
			"families":  families,
			"forbidden": anchor.ForbiddenPatterns(),
		})
	}

	for _, f := range families {
		fmt.Println(cli.TitleStyle.Render(fmt.Sprintf("%s (%s)", f.Stage, f.Signal)))
		for _, p := range f.Patterns {
			fmt.Println("  " + cli.SubtleStyle.Render(p))
		}
	}

	fmt.Println(cli.TitleStyle.Render("forbidden"))
	for _, p := range anchor.ForbiddenPatterns() {
		fmt.Println("  " + cli.SubtleStyle.Render(p))
	}

	return nil
}
