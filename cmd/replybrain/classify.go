package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/introflow/replybrain/internal/cli"
)

func classifyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "classify [reply text]",
		Short: "Classify an inbound reply into a conversational stage",
		Long: `Classify an inbound reply into one of the twelve stages.

The reply text can be given as arguments or piped on stdin:

  replybrain classify "not sure what you mean"
  pbpaste | replybrain classify`,
		RunE: runClassify,
	}

	cmd.Flags().Bool("json", false, "emit JSON instead of styled output")

	return cmd
}

func runClassify(cmd *cobra.Command, args []string) error {
	text, err := readTextArg(args)
	if err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	result := eng.Classify(text)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(result)
	}
	fmt.Print(cli.RenderClassification(result))
	return nil
}
