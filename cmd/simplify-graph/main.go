// Command simplify-graph is the CLI harness for the haplotype-resolution
// passes: it loads a graph and an optional read-alignment set from JSON,
// runs bulge collapse, loop collapse and the complex-haplotype finder in
// either mask or collapse mode, and prints the per-pass counts.
package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"runtime/pprof"
	"strconv"
	"time"

	"golang.org/x/sys/unix"

	"github.com/eernst/Flye/alnidx"
	"github.com/eernst/Flye/config"
	"github.com/eernst/Flye/haplotype"
	"github.com/eernst/Flye/internal"
	"github.com/eernst/Flye/logsink"
)

const helpMessage = "Usage: simplify-graph -graph <file> [-alignments <file>] [-mode mask|collapse]\n" +
	"  [-max-bubble-length <n>] [-log <dir>] [-timed] [-profile <prefix>]\n"

func main() {
	flags := flag.NewFlagSet("simplify-graph", flag.ContinueOnError)
	flags.SetOutput(io.Discard)

	graphFile := flags.String("graph", "", "graph JSON file (required)")
	alignmentsFile := flags.String("alignments", "", "read-alignment JSON file")
	mode := flags.String("mode", "mask", "mask (annotate only) or collapse (detach and fold coverage)")
	maxBubbleLength := flags.Int("max-bubble-length", config.DefaultMaxBubbleLength, "reject bulges whose longer branch exceeds this length")
	logDir := flags.String("log", "", "redirect stderr logging to a timestamped file under this directory")
	timed := flags.Bool("timed", false, "print phase timings")
	profile := flags.String("profile", "", "write a pprof CPU profile per phase with this filename prefix")

	if err := flags.Parse(os.Args[1:]); err != nil {
		fmt.Fprint(os.Stderr, helpMessage)
		if err == flag.ErrHelp {
			os.Exit(0)
		}
		os.Exit(1)
	}
	if *graphFile == "" {
		fmt.Fprintln(os.Stderr, "Error: missing required -graph flag.")
		fmt.Fprint(os.Stderr, helpMessage)
		os.Exit(1)
	}

	collapse, ok := parseMode(*mode)
	if !ok {
		fmt.Fprintf(os.Stderr, "Error: unknown -mode %q, must be mask or collapse.\n", *mode)
		os.Exit(1)
	}

	if *logDir != "" {
		setLogOutput(*logDir)
	}

	g, byID := loadGraph(*graphFile)
	var alignments []alnidx.GraphAlignment
	if *alignmentsFile != "" {
		alignments = loadAlignments(*alignmentsFile, byID)
	}

	cfg := config.Default()
	cfg.MaxBubbleLength = *maxBubbleLength
	sink := logsink.NewLogSink(nil)
	aligner := alnidx.NewMemAligner(alignments)
	resolver := haplotype.NewResolver(g, nil, aligner, cfg, sink)

	phase := int64(1)
	timedRun(*timed, *profile, "Collapsing heterozygous bulges.", phase, func() {
		n := resolver.CollapseHeterozygousBulges(collapse)
		fmt.Printf("bulges: %d\n", n)
	})

	phase++
	timedRun(*timed, *profile, "Collapsing heterozygous loops.", phase, func() {
		n := resolver.CollapseHeterozygousLoops(collapse)
		fmt.Printf("loops: %d\n", n)
	})

	phase++
	timedRun(*timed, *profile, "Scanning for complex haplotypes.", phase, func() {
		_, bubbles := resolver.FindComplexHaplotypes()
		fmt.Printf("complex regions: %d\n", len(bubbles))
		for _, b := range bubbles {
			fmt.Printf("  bubble %d -> %d: %d branches\n", b.StartEdge.EdgeId, b.EndEdge.EdgeId, len(b.Branches))
		}
	})
}

func parseMode(mode string) (collapse, ok bool) {
	switch mode {
	case "mask":
		return false, true
	case "collapse":
		return true, true
	default:
		return false, false
	}
}

func createLogFilename() string {
	t := time.Now()
	zone, _ := t.Zone()
	return fmt.Sprintf("simplify-graph-%d-%02d-%02d-%02d-%02d-%02d-%09d-%v.log",
		t.Year(), t.Month(), t.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), zone)
}

// setLogOutput redirects both the standard logger and the process's raw
// stderr fd to a fresh timestamped file under dir, so that output from
// collaborators that write straight to fd 2 (rather than through
// log.Logger) is captured too.
func setLogOutput(dir string) {
	fullPath := filepath.Join(dir, createLogFilename())
	internal.MkdirAll(filepath.Dir(fullPath), 0700)
	f := internal.FileCreate(fullPath)

	orgStderr, err := unix.Dup(2)
	if err != nil {
		log.Panic(err)
	}
	ferr := os.NewFile(uintptr(orgStderr), "/dev/stderr")
	if err := unix.Dup2(int(f.Fd()), 2); err != nil {
		log.Panic(err)
	}

	log.SetOutput(io.MultiWriter(f, ferr))
	log.Println("Logging to", fullPath)
	log.Println("Command line:", os.Args)
}

func timedRun(timed bool, profile, msg string, phase int64, f func()) {
	if profile != "" {
		filename := profile + strconv.FormatInt(phase, 10) + ".prof"
		file := internal.FileCreate(filename)
		defer internal.Close(file)
		if err := pprof.StartCPUProfile(file); err != nil {
			log.Panic(err)
		}
		defer pprof.StopCPUProfile()
	}
	if timed {
		log.Println(msg)
		start := time.Now()
		defer func() {
			log.Println("Elapsed time:", time.Since(start))
		}()
	}
	f()
}
