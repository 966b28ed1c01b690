package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/introflow/replybrain/internal/cli"
)

func composeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compose [outbound text]",
		Short: "Compose reply-template anchors from an outbound message",
		Long: `Extract provider, audience, pain and offer from the operator's outbound
message and compose the anchor fragments a reply template slots in.`,
		RunE: runCompose,
	}

	cmd.Flags().Bool("json", false, "emit JSON instead of styled output")
	cmd.Flags().Bool("frame", false, "also show the raw extracted frame")

	return cmd
}

func runCompose(cmd *cobra.Command, args []string) error {
	text, err := readTextArg(args)
	if err != nil {
		return err
	}

	eng, err := buildEngine()
	if err != nil {
		return err
	}

	pack := eng.Compose(text)

	if asJSON, _ := cmd.Flags().GetBool("json"); asJSON {
		return json.NewEncoder(os.Stdout).Encode(pack)
	}

	if showFrame, _ := cmd.Flags().GetBool("frame"); showFrame {
		frame := eng.ExtractFrame(text)
		fmt.Printf("frame: provider=%q audience=%q pain=%q offer=%s score=%d\n",
			frame.Provider, frame.Audience, frame.Pain, frame.Offer, frame.Score)
	}
	fmt.Print(cli.RenderAnchorPack(pack))
	return nil
}
