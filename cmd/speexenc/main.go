// SPDX-License-Identifier: EPL-2.0

// Command speexenc encodes an audio file into an Ogg Speex stream.
//
// Usage:
//
//	speexenc [flags] input.{wav|mp3|ogg|aiff|spx} output.spx
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/ik5/gospeex"
	"github.com/ik5/gospeex/mode"
)

func main() {
	var (
		modeName   = flag.String("mode", "nb", "codec mode: nb, wb or uwb")
		quality    = flag.Int("quality", 8, "constant-rate quality (0..10)")
		vbr        = flag.Bool("vbr", false, "enable variable bitrate")
		vbrQuality = flag.Float64("vbr-quality", 8, "VBR quality (0..10)")
		vad        = flag.Bool("vad", false, "send non-speech frames as comfort noise")
		abr        = flag.Int("abr", 0, "average bitrate target in bps (implies vbr)")
		stereo     = flag.Bool("stereo", false, "keep two channels (intensity stereo)")
		fpp        = flag.Int("frames-per-packet", 1, "frames per Ogg packet")
	)
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: speexenc [flags] <input> <output.spx>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	id, err := parseMode(*modeName)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	registry := gospeex.NewFormatRegistry()
	ext := strings.TrimPrefix(filepath.Ext(inPath), ".")
	dec, ok := registry.Get(ext)
	if !ok {
		fmt.Fprintf(os.Stderr, "unsupported input format %q (supported: %s)\n",
			ext, strings.Join(registry.Formats(), ", "))
		os.Exit(1)
	}

	inFile, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer inFile.Close()

	src, err := dec.Decode(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}
	defer src.Close()

	opts := gospeex.DefaultEncodeOptions()
	opts.Mode = id
	opts.Quality = *quality
	opts.VBR = *vbr
	opts.VBRQuality = float32(*vbrQuality)
	opts.VAD = *vad
	opts.ABR = *abr
	opts.FramesPerPacket = *fpp
	if *stereo {
		opts.Channels = 2
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := gospeex.Encode(outFile, src, opts); err != nil {
		fmt.Fprintln(os.Stderr, "encode:", err)
		os.Exit(1)
	}

	fmt.Println("Wrote:", outPath)
}

func parseMode(name string) (mode.ID, error) {
	switch name {
	case "nb", "narrowband":
		return mode.NarrowBand, nil
	case "wb", "wideband":
		return mode.WideBand, nil
	case "uwb", "ultra-wideband":
		return mode.UltraWideBand, nil
	}
	return 0, fmt.Errorf("unknown mode %q (want nb, wb or uwb)", name)
}
