// Command vp9dump decodes the block-level syntax of a VP9 stream in an IVF
// file and prints it, writes it as a block-record dump, or compares it
// with a reference dump.
//
// Usage:
//
//	vp9dump -in clip.ivf
//	vp9dump -in clip.ivf -trace
//	vp9dump -in clip.ivf -dump clip.blk -z
//	vp9dump -in clip.ivf -compare reference.blk
//	vp9dump -synth 352x288 -frames 3 -out synth.ivf
package main

import (
	"bytes"
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/pkg/errors"

	"github.com/thesyncim/govp9"
	"github.com/thesyncim/govp9/container/ivf"
	"github.com/thesyncim/govp9/internal/dump"
	"github.com/thesyncim/govp9/internal/vp9"
)

type config struct {
	in       string
	trace    bool
	dumpPath string
	zstd     bool
	compare  string
	workers  int
	strict   bool
	frames   int
	synth    string
	out      string
}

func main() {
	log.SetFlags(0)
	log.SetPrefix("vp9dump: ")
	if err := run(os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(args []string, stdout io.Writer) error {
	var cfg config
	fs := flag.NewFlagSet("vp9dump", flag.ContinueOnError)
	fs.StringVar(&cfg.in, "in", "", "Input IVF file")
	fs.BoolVar(&cfg.trace, "trace", false, "Print every header, partition, block and transform unit")
	fs.StringVar(&cfg.dumpPath, "dump", "", "Write block records to this file")
	fs.BoolVar(&cfg.zstd, "z", false, "Compress the -dump output with zstd")
	fs.StringVar(&cfg.compare, "compare", "", "Compare block records with this reference dump")
	fs.IntVar(&cfg.workers, "workers", 1, "Tile columns decoded in parallel")
	fs.BoolVar(&cfg.strict, "strict", false, "Reject tiles with nonzero padding")
	fs.IntVar(&cfg.frames, "frames", 0, "Stop after this many frames (0: all); with -synth, frames to write")
	fs.StringVar(&cfg.synth, "synth", "", "Write a synthesized key frame stream of size WxH to -out")
	fs.StringVar(&cfg.out, "out", "", "Output IVF file for -synth")
	if err := fs.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return nil
		}
		return err
	}

	if cfg.synth != "" {
		return writeSynth(cfg)
	}
	if cfg.in == "" {
		return errors.New("missing -in")
	}
	return decodeFile(cfg, stdout)
}

func decodeFile(cfg config, stdout io.Writer) error {
	f, err := os.Open(cfg.in)
	if err != nil {
		return err
	}
	defer f.Close()

	r, err := ivf.NewReader(f)
	if err != nil {
		return errors.Wrap(err, cfg.in)
	}
	if r.Header.FourCC != ivf.FourCCVP9 {
		return errors.Errorf("%s: fourcc %q is not VP9", cfg.in, r.Header.FourCC)
	}

	opts := []govp9.Option{govp9.WithTileWorkers(cfg.workers), govp9.WithStrictPadding(cfg.strict)}
	if cfg.trace {
		opts = append(opts, govp9.WithTracer(&govp9.LogTracer{W: stdout}))
	}
	dec := govp9.NewDecoder(opts...)

	var records bytes.Buffer
	var dw *dump.Writer
	if cfg.dumpPath != "" || cfg.compare != "" {
		if dw, err = dump.NewWriter(&records, cfg.zstd); err != nil {
			return err
		}
	}

	n := 0
	for cfg.frames == 0 || n < cfg.frames {
		data, pts, err := r.ReadFrame()
		if err == io.EOF {
			break
		}
		if err != nil {
			return errors.Wrapf(err, "packet %d", r.Frames())
		}
		frames, err := dec.Decode(data)
		if err != nil {
			return errors.Wrapf(err, "packet %d (pts %d)", r.Frames()-1, pts)
		}
		for _, frame := range frames {
			if !cfg.trace {
				printSummary(stdout, n, pts, frame)
			}
			if dw != nil {
				if err := dw.WriteFrame(n, frame); err != nil {
					return err
				}
			}
			n++
		}
	}

	if dw == nil {
		return nil
	}
	if err := dw.Close(); err != nil {
		return err
	}
	if cfg.dumpPath != "" {
		if err := os.WriteFile(cfg.dumpPath, records.Bytes(), 0o644); err != nil {
			return err
		}
	}
	if cfg.compare != "" {
		return compareDump(&records, cfg.compare, stdout)
	}
	return nil
}

func compareDump(records io.Reader, path string, stdout io.Writer) error {
	ref, err := os.Open(path)
	if err != nil {
		return err
	}
	defer ref.Close()
	m, err := dump.Compare(ref, records)
	if err != nil {
		return errors.Wrap(err, path)
	}
	if m != nil {
		return m
	}
	fmt.Fprintf(stdout, "match: %s\n", path)
	return nil
}

func printSummary(w io.Writer, n int, pts uint64, f *govp9.Frame) {
	h := f.Header
	if h.ShowExisting {
		fmt.Fprintf(w, "frame %d pts=%d show_existing=%d\n", n, pts, h.ShowExistingIdx)
		return
	}
	blocks, skipped, inter := 0, 0, 0
	for _, tile := range f.Tiles {
		for _, sb := range tile.SuperBlocks {
			for _, b := range sb.Blocks {
				blocks++
				if b.Mode.Skip {
					skipped++
				}
				if b.Mode.IsInter() {
					inter++
				}
			}
		}
	}
	fmt.Fprintf(w, "frame %d pts=%d type=%d show=%d size=%dx%d q=%d tiles=%dx%d blocks=%d skip=%d inter=%d\n",
		n, pts, h.FrameType, b2i(h.ShowFrame), h.Width, h.Height, h.Quant.BaseQIdx,
		1<<h.Tile.Log2Cols, 1<<h.Tile.Log2Rows, blocks, skipped, inter)
}

func writeSynth(cfg config) error {
	var width, height int
	if _, err := fmt.Sscanf(cfg.synth, "%dx%d", &width, &height); err != nil || width < 1 || height < 1 {
		return errors.Errorf("invalid -synth %q, want WxH", cfg.synth)
	}
	if width > 4096 || height > 0xffff {
		return errors.Errorf("-synth %dx%d out of range", width, height)
	}
	if cfg.out == "" {
		return errors.New("-synth needs -out")
	}
	count := max(cfg.frames, 1)

	f, err := os.Create(cfg.out)
	if err != nil {
		return err
	}
	w, err := ivf.NewWriter(f, ivf.FileHeader{
		FourCC:      ivf.FourCCVP9,
		Width:       uint16(width),
		Height:      uint16(height),
		TimebaseDen: 30,
		TimebaseNum: 1,
		FrameCount:  uint32(count),
	})
	if err != nil {
		f.Close()
		return err
	}
	frame := vp9.SynthesizeKeyFrame(width, height)
	for i := 0; i < count; i++ {
		if err := w.WriteFrame(frame, uint64(i)); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}

func b2i(b bool) int {
	if b {
		return 1
	}
	return 0
}
