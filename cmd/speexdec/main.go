// SPDX-License-Identifier: EPL-2.0

// Command speexdec decodes an Ogg Speex stream to a 16-bit PCM WAV
// file.
//
// Usage:
//
//	speexdec [flags] input.spx output.wav
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/ik5/gospeex"
	"github.com/ik5/gospeex/formats/wav"
)

func main() {
	rate := flag.Int("rate", 0, "output sample rate (0 = stream rate)")
	flag.Parse()

	if flag.NArg() != 2 {
		fmt.Fprintln(os.Stderr, "usage: speexdec [flags] <input.spx> <output.wav>")
		flag.PrintDefaults()
		os.Exit(1)
	}
	inPath, outPath := flag.Arg(0), flag.Arg(1)

	inFile, err := os.Open(inPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer inFile.Close()

	src, err := gospeex.Decode(inFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, "decode:", err)
		os.Exit(1)
	}
	defer src.Close()

	outRate := *rate
	if outRate == 0 {
		outRate = src.SampleRate()
	}

	// The WAV writer is mono; stereo streams are mixed down.
	pcm16, _, err := gospeex.ResampleToMono16(src, outRate, 4096)
	if err != nil && err != io.EOF {
		fmt.Fprintln(os.Stderr, "resample:", err)
		os.Exit(1)
	}

	outFile, err := os.Create(outPath)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
	defer outFile.Close()

	if err := wav.WriteWAV16(outFile, outRate, pcm16); err != nil {
		fmt.Fprintln(os.Stderr, "write:", err)
		os.Exit(1)
	}

	fmt.Println("Wrote:", outPath)
}
