package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/config"
	"github.com/arloliu/sitab/internal/logging"
	"github.com/arloliu/sitab/section"
	"github.com/spf13/cobra"
)

// errFailed is returned when at least one input could not be processed.
var errFailed = errors.New("sitabcomp: some files failed")

// NewRootCmd builds the sitabcomp command. Log output goes to logOut.
func NewRootCmd(logOut io.Writer) *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sitabcomp [flags] file...",
		Short: "Compile and decompile broadcast SI tables",
		Long: `sitabcomp converts XML table descriptions into binary sections and
binary sections back into XML.

Files ending in .xml are compiled into .bin files, files ending in .bin
(optionally compressed: .bin.zst, .bin.sz, .bin.lz4) are decompiled into .xml
files. For other names use --compile or --decompile. An argument starting
with "<?xml" is inline XML content and requires --output.`,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}

			level := cfg.LogLevel
			if verbose, _ := cmd.Flags().GetBool("verbose"); verbose {
				level = "debug"
			}
			logger, err := logging.New(logOut, level, true)
			if err != nil {
				return err
			}

			c, err := newCompiler(cmd, cfg, logger, len(args))
			if err != nil {
				return err
			}

			failed := 0
			for _, input := range args {
				if err := c.process(input); err != nil {
					logger.Error().Err(err).Str("input", displayName(input)).Msg("processing failed")
					failed++
				}
			}
			if failed > 0 {
				return fmt.Errorf("%w: %d of %d", errFailed, failed, len(args))
			}

			return nil
		},
	}

	flags := rootCmd.Flags()
	flags.BoolP("compile", "c", false, "compile all files as XML files into binary files")
	flags.BoolP("decompile", "d", false, "decompile all files as binary files into XML files")
	flags.StringP("output", "o", "", "output file or directory (a directory with several inputs)")
	flags.StringSlice("standard", nil, "active standard: mpeg, dvb, atsc, isdb, japan (repeatable)")
	flags.String("crc", "", "CRC32 handling of binary input: check, ignore, compute")
	flags.String("compress", "", "compression of binary output and input: none, zstd, s2, lz4")
	flags.Bool("dedup", false, "drop duplicated sections")
	flags.Int("indent", 0, "XML indentation width")
	flags.String("config", "", "TOML configuration file")
	flags.String("log-level", "", "log level: debug, info, warn, error")
	flags.BoolP("verbose", "v", false, "report each conversion")
	rootCmd.MarkFlagsMutuallyExclusive("compile", "decompile")

	return rootCmd
}

// Execute runs the command and exits with a non-zero status on failure.
func Execute() {
	if err := NewRootCmd(os.Stderr).Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig loads --config over the defaults, then applies the flags
// that were set explicitly.
func resolveConfig(cmd *cobra.Command) (config.Config, error) {
	flags := cmd.Flags()

	cfg := config.Default()
	if path, _ := flags.GetString("config"); path != "" {
		loaded, err := config.Load(path)
		if err != nil {
			return config.Config{}, err
		}
		cfg = loaded
	}

	if flags.Changed("standard") {
		names, _ := flags.GetStringSlice("standard")
		s, err := format.ParseStandards(names...)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Standards |= s
	}
	if flags.Changed("crc") {
		name, _ := flags.GetString("crc")
		mode, err := section.ParseCRCMode(name)
		if err != nil {
			return config.Config{}, err
		}
		cfg.CRC = mode
	}
	if flags.Changed("compress") {
		name, _ := flags.GetString("compress")
		ct, err := format.ParseCompression(name)
		if err != nil {
			return config.Config{}, err
		}
		cfg.Compression = ct
	}
	if flags.Changed("dedup") {
		cfg.Deduplicate, _ = flags.GetBool("dedup")
	}
	if flags.Changed("indent") {
		cfg.Indent, _ = flags.GetInt("indent")
	}
	if flags.Changed("log-level") {
		cfg.LogLevel, _ = flags.GetString("log-level")
	}

	return cfg, cfg.Validate()
}
