// Command cdclsat loads a DIMACS CNF instance and reports its
// satisfiability, grounded on the teacher's main.go CLI.
package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime/pprof"
	"time"

	"github.com/go-sat/cdclsat/dimacs"
	"github.com/go-sat/cdclsat/sat"
)

var (
	flagCPUProfile = flag.Bool("cpuprof", false, "save pprof CPU profile in cpuprof")
	flagMemProfile = flag.Bool("memprof", false, "save pprof memory profile in memprof")
	flagGzip       = flag.Bool("gzip", false, "treat the instance file as gzip-compressed")
	flagTimeout    = flag.Duration("timeout", 0, "wall-clock solve timeout (0 disables)")
	flagVerbosity  = flag.Int("v", 1, "progress log verbosity (0 silences it)")
)

type config struct {
	instanceFile string
	gzipped      bool
	cpuProfile   bool
	memProfile   bool
	timeout      time.Duration
	verbosity    int
}

func parseConfig() (*config, error) {
	flag.Parse()
	if flag.NArg() == 0 || flag.Arg(0) == "" {
		return nil, fmt.Errorf("missing instance file")
	}
	return &config{
		instanceFile: flag.Arg(0),
		gzipped:      *flagGzip,
		cpuProfile:   *flagCPUProfile,
		memProfile:   *flagMemProfile,
		timeout:      *flagTimeout,
		verbosity:    *flagVerbosity,
	}, nil
}

func run(cfg *config) error {
	solverCfg := sat.DefaultConfig
	solverCfg.Verbosity = cfg.verbosity
	if cfg.timeout > 0 {
		solverCfg.TimeoutMode = sat.TimeoutWallClock
		solverCfg.Timeout = cfg.timeout
	}

	s := sat.NewSolver(solverCfg)
	if err := dimacs.LoadDIMACS(cfg.instanceFile, cfg.gzipped, s); err != nil {
		return fmt.Errorf("could not parse instance: %s", err)
	}

	fmt.Printf("c variables:  %d\n", s.NumVars())

	t := time.Now()
	satisfiable, err := s.IsSatisfiable()
	elapsed := time.Since(t)
	if err != nil {
		return fmt.Errorf("solve error: %w", err)
	}

	status := "UNSATISFIABLE"
	if satisfiable {
		status = "SATISFIABLE"
	}

	fmt.Printf("c time (sec): %f\n", elapsed.Seconds())
	fmt.Printf("c status:     %s\n", status)
	if satisfiable {
		fmt.Printf("v %v 0\n", s.Model())
	}

	return nil
}

func main() {
	cfg, err := parseConfig()
	if err != nil {
		log.Fatal(err)
	}

	if cfg.cpuProfile {
		f, err := os.Create("cpuprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.StartCPUProfile(f)
		defer pprof.StopCPUProfile()
	}

	if err := run(cfg); err != nil {
		log.Fatal(err)
	}

	if cfg.memProfile {
		f, err := os.Create("memprof")
		if err != nil {
			log.Fatal(err)
		}
		pprof.WriteHeapProfile(f)
		f.Close()
	}
}
