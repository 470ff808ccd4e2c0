// Command framevault drives the storage codec from the command line: it
// encodes an arbitrary file into a directory of lossless PNG frames, or
// decodes such a directory back into the original file. The PNG directory
// stands in for the real lossy-video muxer/demuxer, which is out of the
// codec's scope (see SPEC_FULL.md).
package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ashuwhy/framevault/codec"
	"github.com/ashuwhy/framevault/internal/logx"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "framevault",
		Short:         "Encode and decode files as redundant, lossy-video-safe frame sequences",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return bindLogging(cmd)
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level: debug, info, warn, error")
	root.PersistentFlags().String("log-format", "text", "log format: text, json")
	viper.BindPFlag("log.level", root.PersistentFlags().Lookup("log-level"))
	viper.BindPFlag("log.format", root.PersistentFlags().Lookup("log-format"))
	viper.SetEnvPrefix("FRAMEVAULT")
	viper.AutomaticEnv()

	root.AddCommand(newEncodeCmd(), newDecodeCmd())
	return root
}

func bindLogging(cmd *cobra.Command) error {
	level := parseLevel(viper.GetString("log.level"))
	logx.Set(logx.New(viper.GetString("log.format"), level, os.Stderr))
	return nil
}

func parseLevel(s string) slog.Level {
	switch s {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func newEncodeCmd() *cobra.Command {
	var password, mime, name string

	cmd := &cobra.Command{
		Use:   "encode <input-file> <output-frame-dir>",
		Short: "Encode a file into a directory of redundant PNG frames",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			inputPath, outDir := args[0], args[1]

			data, err := os.ReadFile(inputPath)
			if err != nil {
				return fmt.Errorf("reading input file: %w", err)
			}
			if name == "" {
				name = filepath.Base(inputPath)
			}

			sink, err := newPNGDirSink(outDir)
			if err != nil {
				return err
			}

			in := codec.Input{Name: name, Bytes: data, Mime: mime}
			opts := codec.Options{Password: password}
			if err := codec.Encode(in, opts, sink); err != nil {
				return fmt.Errorf("encoding: %w", err)
			}
			logx.L().Info("encode complete", "frames", sink.count, "outDir", outDir)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "encrypt the payload under this password")
	cmd.Flags().StringVar(&mime, "mime", "application/octet-stream", "media type to record in the metadata frame")
	cmd.Flags().StringVar(&name, "name", "", "filename to record in the metadata frame (defaults to the input file's basename)")
	return cmd
}

func newDecodeCmd() *cobra.Command {
	var password, outputPath string

	cmd := &cobra.Command{
		Use:   "decode <input-frame-dir>",
		Short: "Decode a directory of PNG frames back into the original file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			inDir := args[0]
			source := newPNGDirSource(inDir)

			out, err := codec.Decode(source, codec.Options{Password: password})
			if err != nil {
				return fmt.Errorf("decoding: %w", err)
			}

			dest := outputPath
			if dest == "" {
				dest = out.Name
			}
			if err := os.WriteFile(dest, out.Bytes, 0o644); err != nil {
				return fmt.Errorf("writing output file: %w", err)
			}
			logx.L().Info("decode complete", "name", out.Name, "bytes", len(out.Bytes), "output", dest)
			return nil
		},
	}

	cmd.Flags().StringVar(&password, "password", "", "password to decrypt the payload, if it was encrypted")
	cmd.Flags().StringVar(&outputPath, "output", "", "path to write the decoded file (defaults to the recorded filename)")
	return cmd
}
