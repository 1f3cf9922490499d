package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/arloliu/sitab/compress"
	"github.com/arloliu/sitab/format"
	"github.com/arloliu/sitab/internal/config"
	"github.com/arloliu/sitab/profile"
	"github.com/arloliu/sitab/sectionfile"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// inlineBaseName names the output of inline XML written into a directory.
const inlineBaseName = "inline"

type compiler struct {
	cfg       config.Config
	logger    zerolog.Logger
	compile   bool
	decompile bool
	output    string
	outDir    bool
}

func newCompiler(cmd *cobra.Command, cfg config.Config, logger zerolog.Logger, inputs int) (*compiler, error) {
	flags := cmd.Flags()
	c := &compiler{cfg: cfg, logger: logger}
	c.compile, _ = flags.GetBool("compile")
	c.decompile, _ = flags.GetBool("decompile")
	c.output, _ = flags.GetString("output")

	if c.output != "" {
		if info, err := os.Stat(c.output); err == nil && info.IsDir() {
			c.outDir = true
		}
	}
	if inputs > 1 && c.output != "" && !c.outDir {
		return nil, errors.New("with more than one input file, --output must be a directory")
	}

	return c, nil
}

// process converts one input. The direction comes from the flags, or from
// the input file type.
func (c *compiler) process(input string) error {
	inline := sectionfile.IsInlineXML(input)
	inType := format.FileXML
	if !inline {
		inType = sectionfile.FileTypeOf(input)
	}

	compile := c.compile || inType == format.FileXML
	decompile := c.decompile || inType == format.FileBinary

	switch {
	case !compile && !decompile:
		return fmt.Errorf("unknown file type of %s, specify --compile or --decompile", input)
	case compile && inType == format.FileBinary:
		return fmt.Errorf("cannot compile binary file %s", input)
	case decompile && inType == format.FileXML:
		return fmt.Errorf("cannot decompile XML file %s", displayName(input))
	}

	outType := format.FileXML
	if compile {
		outType = format.FileBinary
	}
	output, err := c.outputName(input, inline, outType)
	if err != nil {
		return err
	}

	file, err := c.newFile()
	if err != nil {
		return err
	}

	if compile {
		c.logger.Debug().Str("input", displayName(input)).Str("output", output).Msg("compiling")
		if inline {
			err = file.LoadXMLString(input)
		} else {
			err = file.LoadXMLFile(input)
		}
		if err != nil {
			return err
		}

		return file.SaveBinaryFile(output)
	}

	c.logger.Debug().Str("input", input).Str("output", output).Msg("decompiling")
	if err := file.LoadBinaryFile(input); err != nil {
		return err
	}

	return file.SaveXMLFile(output)
}

func (c *compiler) newFile() (*sectionfile.File, error) {
	ctx, err := profile.New(profile.WithStandards(c.cfg.Standards), profile.WithLogger(c.logger))
	if err != nil {
		return nil, err
	}

	opts := []sectionfile.Option{
		sectionfile.WithCRCMode(c.cfg.CRC),
		sectionfile.WithDeduplication(c.cfg.Deduplicate),
		sectionfile.WithIndent(c.cfg.Indent),
	}
	if c.cfg.Compression != format.CompressionNone {
		opts = append(opts, sectionfile.WithCompression(c.cfg.Compression))
	}

	return sectionfile.New(ctx, opts...)
}

// outputName computes the output path. A compiled file gets the suffix of
// the configured compression when its name is derived from the input.
func (c *compiler) outputName(input string, inline bool, outType format.FileType) (string, error) {
	if c.output != "" && !c.outDir {
		return c.output, nil
	}

	var name string
	switch {
	case inline && !c.outDir:
		return "", errors.New("inline XML requires --output")
	case inline:
		name = sectionfile.BuildFileName(inlineBaseName, outType)
	default:
		name = sectionfile.BuildFileName(input, outType)
	}
	if outType == format.FileBinary {
		name += compress.Suffix(c.cfg.Compression)
	}
	if c.outDir {
		name = filepath.Join(c.output, filepath.Base(name))
	}

	return name, nil
}

func displayName(input string) string {
	if sectionfile.IsInlineXML(input) {
		return "inline XML"
	}

	return input
}
