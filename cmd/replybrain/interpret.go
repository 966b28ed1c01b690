package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/introflow/replybrain/internal/cli"
)

func interpretCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "interpret",
		Short: "Classify an inbound reply and compose anchors in one pass",
		RunE:  runInterpret,
	}

	cmd.Flags().String("inbound", "", "the inbound reply text")
	cmd.Flags().String("outbound", "", "the operator's outbound message")
	cmd.Flags().Bool("json", false, "emit JSON instead of styled output")
	_ = cmd.MarkFlagRequired("inbound")

	return cmd
}

func runInterpret(cmd *cobra.Command, _ []string) error {
	inbound, _ := cmd.Flags().GetString("inbound")
	outbound, _ := cmd.Flags().GetString("outbound")

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	interp := eng.Interpret(inbound, outbound)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(interp)
	}
	fmt.Print(cli.RenderInterpretation(interp))
	return nil
}
