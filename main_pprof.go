//go:build !no_pprof

package main

import (
	"flag"
	"os"
	"runtime/pprof"

	"fortio.org/log"
)

// High precision evaluations (e.g. -p 100000 -c 'pi') are worth profiling.
var (
	cpuprofile = flag.String("profile-cpu", "", "write cpu profile of the evaluation to `file`")
	memprofile = flag.String("profile-mem", "", "write heap profile after the evaluation to `file`")
)

func init() {
	startProfiling = startPprof
}

// startPprof starts the cpu profile, the returned function stops it and
// writes the heap profile.
func startPprof() (func() int, int) {
	var cpu *os.File
	if *cpuprofile != "" {
		f, err := os.Create(*cpuprofile)
		if err != nil {
			return nil, log.FErrf("can't open file for cpu profile: %v", err)
		}
		if err = pprof.StartCPUProfile(f); err != nil {
			f.Close()
			return nil, log.FErrf("can't start cpu profile: %v", err)
		}
		log.Infof("Writing cpu profile to %s", *cpuprofile)
		cpu = f
	}
	return func() int {
		if cpu != nil {
			pprof.StopCPUProfile()
			cpu.Close()
		}
		if *memprofile == "" {
			return 0
		}
		f, err := os.Create(*memprofile)
		if err != nil {
			return log.FErrf("can't open file for heap profile: %v", err)
		}
		defer f.Close()
		if err = pprof.WriteHeapProfile(f); err != nil {
			return log.FErrf("can't write heap profile: %v", err)
		}
		log.Infof("Wrote heap profile to %s", *memprofile)
		return 0
	}, 0
}
