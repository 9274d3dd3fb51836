package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/phanxgames/anya"
)

var packOpts struct {
	output string
}

var packCmd = &cobra.Command{
	Use:   "pack <dir|file.gif>",
	Short: "Pack animation frames into an atlas",
	Long: `Pack a directory of equally sized frames, or the frames of a GIF, into a
single horizontal strip atlas.

Frames from a directory are ordered by file name. The atlas is written as a
PNG together with a TexturePacker-style JSON manifest next to it, ready for
background.atlas_png and background.atlas_json in the config file.`,
	Args: cobra.ExactArgs(1),
	RunE: runPack,
}

func init() {
	rootCmd.AddCommand(packCmd)

	packCmd.Flags().StringVarP(&packOpts.output, "output", "o", "atlas.png",
		"Output PNG path; the manifest uses the same name with .json")
}

// packResult describes a written atlas.
type packResult struct {
	ImagePath    string
	ManifestPath string
	Frames       int
	Width        int
	Height       int
	Bytes        int64
}

func runPack(cmd *cobra.Command, args []string) error {
	res, err := writeAtlas(args[0], packOpts.output)
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "packed %d frames into %s (%dx%d, %s)\n",
		res.Frames, res.ImagePath, res.Width, res.Height, humanize.Bytes(uint64(res.Bytes)))
	fmt.Fprintf(cmd.OutOrStdout(), "manifest %s\n", res.ManifestPath)
	return nil
}

// writeAtlas packs src and writes the PNG to out and the manifest beside it.
func writeAtlas(src, out string) (packResult, error) {
	sheet, err := packSource(src)
	if err != nil {
		return packResult{}, err
	}

	manifestPath := strings.TrimSuffix(out, filepath.Ext(out)) + ".json"
	manifest, err := sheet.Manifest(filepath.Base(out))
	if err != nil {
		return packResult{}, err
	}

	if dir := filepath.Dir(out); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return packResult{}, err
		}
	}
	f, err := os.Create(out)
	if err != nil {
		return packResult{}, err
	}
	if err := sheet.Canvas.EncodePNG(f); err != nil {
		_ = f.Close()
		return packResult{}, err
	}
	if err := f.Close(); err != nil {
		return packResult{}, err
	}
	if err := os.WriteFile(manifestPath, manifest, 0644); err != nil {
		return packResult{}, err
	}

	info, err := os.Stat(out)
	if err != nil {
		return packResult{}, err
	}
	logger.Debug("wrote atlas", "path", out, "frames", sheet.Len(), "size", humanize.Bytes(uint64(info.Size())))
	return packResult{
		ImagePath:    out,
		ManifestPath: manifestPath,
		Frames:       sheet.Len(),
		Width:        sheet.Canvas.Width(),
		Height:       sheet.Canvas.Height(),
		Bytes:        info.Size(),
	}, nil
}

func packSource(src string) (*anya.Sheet, error) {
	info, err := os.Stat(src)
	if err != nil {
		return nil, err
	}
	if info.IsDir() {
		return anya.PackDir(src)
	}
	if !strings.EqualFold(filepath.Ext(src), ".gif") {
		return nil, errors.New("pack source must be a directory or a .gif file")
	}
	f, err := os.Open(src)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()
	return anya.PackGIF(f)
}
