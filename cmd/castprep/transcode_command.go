package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"castprep/internal/config"
	"castprep/internal/history"
	"castprep/internal/media/container"
	"castprep/internal/services"
	"castprep/internal/services/ffmpeg"
	"castprep/internal/transcode"
)

func newTranscodeCommand(ctx *commandContext) *cobra.Command {
	var seekFlag time.Duration
	var forceFlag bool

	cmd := &cobra.Command{
		Use:   "transcode <input> [output]",
		Short: "Transcode a media file into a web-playable MP4",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			input, err := config.ExpandPath(args[0])
			if err != nil {
				return fmt.Errorf("resolve input path: %w", err)
			}
			if _, err := os.Stat(input); err != nil {
				return fmt.Errorf("inspect input %q: %w", input, err)
			}

			output, err := resolveOutputPath(input, args)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !forceFlag {
				needed, err := container.NeedsTranscoding(input)
				if err != nil {
					return fmt.Errorf("classify input: %w", err)
				}
				if !needed {
					fmt.Fprintf(out, "%s is already web-playable; nothing to do (use --force to transcode anyway)\n", filepath.Base(input))
					return nil
				}
			}

			return runTranscode(cmd, ctx, input, output, seekFlag)
		},
	}

	cmd.Flags().DurationVar(&seekFlag, "seek", 0, "Skip this much of the input before encoding (e.g. 90s, 2m)")
	cmd.Flags().BoolVar(&forceFlag, "force", false, "Transcode even when the input container is already web-playable")
	return cmd
}

func resolveOutputPath(input string, args []string) (string, error) {
	if len(args) > 1 {
		output, err := config.ExpandPath(args[1])
		if err != nil {
			return "", fmt.Errorf("resolve output path: %w", err)
		}
		return output, nil
	}
	ext := filepath.Ext(input)
	output := strings.TrimSuffix(input, ext) + ".mp4"
	if output == input {
		output = strings.TrimSuffix(input, ext) + ".web.mp4"
	}
	return output, nil
}

func runTranscode(cmd *cobra.Command, ctx *commandContext, input, output string, seek time.Duration) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()

	// One writer per output path across processes.
	lock := flock.New(output + ".lock")
	locked, err := lock.TryLock()
	if err != nil {
		return fmt.Errorf("acquire output lock: %w", err)
	}
	if !locked {
		return fmt.Errorf("another castprep run is already writing %s", output)
	}
	defer func() {
		_ = lock.Unlock()
		_ = os.Remove(output + ".lock")
	}()

	sup, err := ctx.newSupervisor()
	if err != nil {
		return err
	}

	runCtx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// The duration hint feeds progress percentages; a probe failure here
	// surfaces during the encode anyway.
	var duration time.Duration
	if probed, err := sup.ProbeMetadata(runCtx, input); err == nil {
		if secs := probed.DurationSeconds(); secs > 0 {
			duration = time.Duration(secs * float64(time.Second))
		}
	}

	store, err := history.Open(cfg.Paths.HistoryDB)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer store.Close()

	colorless := !shouldColorize(out)
	listener := transcode.Listener{
		TranscodeStarted: func(commandLine string) {
			fmt.Fprintf(out, "Running: %s\n", commandLine)
		},
		TranscodeProgress: func(update ffmpeg.ProgressUpdate) {
			line := transcode.FormatProgress(update)
			if colorless {
				fmt.Fprintln(out, line)
				return
			}
			fmt.Fprintf(out, "\r%-70s", line)
		},
	}

	job, err := sup.Transcode(runCtx, input, output, transcode.Options{
		Seek:     seek,
		Duration: duration,
		Listener: listener,
	})
	if err != nil {
		return err
	}

	if histErr := store.Add(runCtx, history.Record{
		ID:          job.ID(),
		Input:       input,
		Output:      output,
		SeekSeconds: seek.Seconds(),
		Status:      string(transcode.StatusRunning),
	}); histErr != nil {
		ctx.ensureLogger().Warn("failed to record job start", "error", histErr)
	}

	waitErr := job.Wait(runCtx)
	if runCtx.Err() != nil && waitErr == runCtx.Err() {
		// Interrupted: kill the encoder and wait for the real outcome.
		sup.KillProcess()
		waitErr = job.Wait(context.Background())
	}
	if !colorless {
		fmt.Fprintln(out)
	}

	message := ""
	if waitErr != nil {
		message = waitErr.Error()
	}
	if histErr := store.Finish(context.Background(), job.ID(), services.Outcome(waitErr), message); histErr != nil {
		ctx.ensureLogger().Warn("failed to record job outcome", "error", histErr)
	}

	if waitErr != nil {
		if errors.Is(waitErr, services.ErrPreempted) {
			return fmt.Errorf("transcode preempted: %w", waitErr)
		}
		return waitErr
	}
	fmt.Fprintf(out, "Wrote %s\n", output)
	return nil
}
