package main

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/spf13/cobra"

	"castprep/internal/config"
	"castprep/internal/media/container"
)

func newProbeCommand(ctx *commandContext) *cobra.Command {
	var jsonFlag bool

	cmd := &cobra.Command{
		Use:   "probe <input>",
		Short: "Inspect a media file's container and streams",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("inspect input %q: %w", input, err)
			}

			sup, err := ctx.newSupervisor()
			if err != nil {
				return err
			}
			result, err := sup.ProbeMetadata(cmd.Context(), input)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if jsonFlag {
				out.Write(result.RawJSON())
				fmt.Fprintln(out)
				return nil
			}

			fmt.Fprintf(out, "File:      %s\n", result.Format.Filename)
			fmt.Fprintf(out, "Container: %s\n", result.Format.FormatName)
			if secs := result.DurationSeconds(); secs > 0 {
				fmt.Fprintf(out, "Duration:  %s\n", time.Duration(secs*float64(time.Second)).Round(time.Second))
			}
			if size := result.SizeBytes(); size > 0 {
				fmt.Fprintf(out, "Size:      %.1f MiB\n", float64(size)/(1024*1024))
			}
			if needed, err := container.NeedsTranscoding(input); err == nil {
				fmt.Fprintf(out, "Playable:  %s\n", yesNo(!needed))
			}

			rows := make([][]string, 0, len(result.Streams))
			for _, stream := range result.Streams {
				detail := ""
				switch stream.CodecType {
				case "video":
					if stream.Width > 0 {
						detail = fmt.Sprintf("%dx%d", stream.Width, stream.Height)
					}
				case "audio":
					if stream.Channels > 0 {
						detail = fmt.Sprintf("%dch %s Hz", stream.Channels, stream.SampleRate)
					}
				}
				rows = append(rows, []string{
					strconv.Itoa(stream.Index),
					stream.CodecType,
					stream.CodecName,
					detail,
				})
			}
			if len(rows) > 0 {
				fmt.Fprintln(out, renderTable(
					[]string{"#", "Type", "Codec", "Detail"},
					rows,
					[]columnAlignment{alignRight, alignLeft, alignLeft, alignLeft},
				))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonFlag, "json", false, "Print the raw prober JSON payload")
	return cmd
}

func yesNo(value bool) string {
	if value {
		return "yes"
	}
	return "no"
}
