// cmd/abccore/main.go
package main

import (
	"bufio"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"

	"abccore/internal/adapt"
	"abccore/internal/coreerr"
	"abccore/internal/corelog"
	"abccore/internal/exact"
	"abccore/internal/miaig"
	"abccore/internal/miniaig"
	"abccore/internal/resultcache"
	"abccore/internal/satwrap"
	"abccore/internal/telemetry"
	"abccore/internal/truth"
)

const version = "0.1.0"

// Exit status codes: every long call returns 0 (undecided/timeout),
// 1 (success), or 2 (proven no-solution).
const (
	statusUndecided  = 0
	statusSuccess    = 1
	statusNoSolution = 2
)

// Config is the flag-parsed driver configuration, split into the two
// parameter surfaces the engine exposes: rewiring and exact synthesis.
// Short aliases follow cmd/sentra's commandAliases style — one-letter
// forms for the flags an interactive user reaches for most.
type Config struct {
	Mode string // "rewire" or "synth"

	// Rewiring parameters.
	MaxIterations  int
	LevelGrowth    float64
	ExpandBudget   int
	FaninGrowth    int
	DivisorCap     int
	RewireMode     string // "and2", "area", "delay"
	Seed           int64
	FCheck         bool
	KeepChoices    bool
	Verbose        bool

	// Exact-synthesis parameters.
	NumInputs int
	K         int
	MaxBudget int
	Target    string // hex truth table, or "sym:2,3" for a symmetric-function spec
	ANDOnly   bool
	Incremental bool

	// Shared.
	CacheDSN string
	CacheDriver string
	TelemetryAddr string
}

func parseFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("abccore", flag.ContinueOnError)
	var c Config

	fs.StringVar(&c.Mode, "mode", "rewire", "operation to run: rewire or synth")

	fs.IntVar(&c.MaxIterations, "iterations", 100, "rewire: maximum loop iterations")
	fs.IntVar(&c.MaxIterations, "i", 100, "alias for -iterations")
	fs.Float64Var(&c.LevelGrowth, "level-growth", 0.2, "rewire: max allowed level growth ratio")
	fs.IntVar(&c.ExpandBudget, "expand-budget", 6, "rewire: max fanins a node may reach via expand")
	fs.IntVar(&c.FaninGrowth, "fanin-growth", 4, "rewire: max fanin-max a perturbation may target")
	fs.IntVar(&c.DivisorCap, "divisor-cap", 0, "rewire: divisor-enumeration bound for sharing (0 = unbounded)")
	fs.StringVar(&c.RewireMode, "rewire-mode", "and2", "rewire: cost mode: and2, area, delay")
	fs.Int64Var(&c.Seed, "seed", 1, "seed for the stochastic search")
	fs.BoolVar(&c.FCheck, "fcheck", false, "rewire: sets Params.FCheck, which Rewire does not read; no equivalence check is run")
	fs.BoolVar(&c.KeepChoices, "use-choices", false, "rewire: retain every sampled candidate, not only the best")
	fs.BoolVar(&c.Verbose, "v", false, "verbose logging")
	fs.BoolVar(&c.Verbose, "verbose", false, "alias for -v")

	fs.IntVar(&c.NumInputs, "n", 3, "synth: number of inputs")
	fs.IntVar(&c.K, "k", 2, "synth: LUT size (2 = AND-only special case)")
	fs.IntVar(&c.MaxBudget, "nodes", 4, "synth: node/gate budget to search up to")
	fs.StringVar(&c.Target, "target", "", "synth: target function, hex truth table or sym:<weights>")
	fs.BoolVar(&c.ANDOnly, "and-only", true, "synth: restrict internal gates to 2-input AND")
	fs.BoolVar(&c.Incremental, "incremental", true, "synth: use the incremental (gini) SAT backend")

	fs.StringVar(&c.CacheDriver, "cache-driver", "sqlite3", "resultcache driver: sqlite3, mysql, postgres, sqlserver")
	fs.StringVar(&c.CacheDSN, "cache-dsn", "", "resultcache DSN (empty = local sqlite3 file)")
	fs.StringVar(&c.TelemetryAddr, "telemetry-addr", "", "address to serve the websocket progress broadcaster on (empty = disabled)")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return c, nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	cfg, err := parseFlags(args)
	if err != nil {
		return statusUndecided
	}

	level := corelog.LevelInfo
	if cfg.Verbose {
		level = corelog.LevelDebug
	}
	logger := corelog.New(level)
	logger.Infof("abccore %s starting mode=%s", version, cfg.Mode)

	cache, err := resultcache.Open(resultcache.Driver(cfg.CacheDriver), cfg.CacheDSN)
	if err != nil {
		logger.Errorf("opening resultcache: %v", err)
		return statusUndecided
	}
	defer cache.Close()

	var broadcaster *telemetry.Broadcaster
	if cfg.TelemetryAddr != "" {
		broadcaster = telemetry.NewBroadcaster()
		go serveTelemetry(cfg.TelemetryAddr, broadcaster, logger)
		defer broadcaster.Close()
	}

	switch cfg.Mode {
	case "synth":
		return runSynth(cfg, cache, logger)
	case "rewire":
		return runRewire(cfg, cache, broadcaster, logger)
	default:
		logger.Errorf("unrecognized -mode %q, want rewire or synth", cfg.Mode)
		return statusUndecided
	}
}

func runSynth(cfg Config, cache *resultcache.Cache, logger *corelog.Logger) int {
	target, err := parseTarget(cfg.Target, cfg.NumInputs)
	if err != nil {
		logger.Errorf("parsing -target: %v", err)
		return statusUndecided
	}

	newBackend := func() satwrap.Solver {
		if cfg.Incremental {
			return satwrap.NewIncremental()
		}
		return satwrap.NewBulk()
	}

	jobID := exact.JobID()
	logger.Infof("synth job %s: n=%d k=%d budget<=%d and-only=%v", jobID, cfg.NumInputs, cfg.K, cfg.MaxBudget, cfg.ANDOnly)

	tableHash := target.Hash()
	careHash := (*truth.Table)(nil).Hash()

	if cfg.ANDOnly {
		if cached, ok, _ := cache.Lookup(tableHash, careHash, 2, cfg.MaxBudget); ok {
			logger.Infof("resultcache hit for job %s: found=%v", jobID, cached.Found)
			if cached.Found {
				return statusSuccess
			}
			return statusNoSolution
		}
		circuit, ok := exact.SynthesizeMinimal(target, nil, cfg.NumInputs, cfg.MaxBudget, newBackend)
		_ = cache.Store(tableHash, careHash, 2, cfg.MaxBudget, resultcache.SynthResult{Found: ok, Circuit: circuitSummary(ok, len(circuit.Gates))})
		if !ok {
			logger.Infof("job %s: UNSAT within %d AND gates", jobID, cfg.MaxBudget)
			return statusNoSolution
		}
		logger.Infof("job %s: found a %d-gate AND-only circuit", jobID, len(circuit.Gates))
		return statusSuccess
	}

	if cached, ok, _ := cache.Lookup(tableHash, careHash, cfg.K, cfg.MaxBudget); ok {
		logger.Infof("resultcache hit for job %s: found=%v", jobID, cached.Found)
		if cached.Found {
			return statusSuccess
		}
		return statusNoSolution
	}
	circuit, ok := exact.SynthesizeLUTMinimal(target, nil, cfg.NumInputs, cfg.K, cfg.MaxBudget, newBackend)
	_ = cache.Store(tableHash, careHash, cfg.K, cfg.MaxBudget, resultcache.SynthResult{Found: ok, Circuit: circuitSummary(ok, len(circuit.Gates))})
	if !ok {
		logger.Infof("job %s: UNSAT within %d %d-LUTs", jobID, cfg.MaxBudget, cfg.K)
		return statusNoSolution
	}
	logger.Infof("job %s: found a %d-gate %d-LUT circuit", jobID, len(circuit.Gates), cfg.K)
	return statusSuccess
}

func circuitSummary(found bool, gates int) string {
	if !found {
		return ""
	}
	return fmt.Sprintf("gates=%d", gates)
}

// parseTarget accepts either a hex truth-table literal or a
// "sym:<comma-separated weights>" symmetric-function descriptor for
// the exact-synthesis mode's target function.
func parseTarget(spec string, n int) (*truth.Table, error) {
	site := coreerr.Site{Package: "main", Operation: "parseTarget"}
	if spec == "" {
		return nil, coreerr.New(coreerr.Precondition, site, "-target is required in -mode=synth")
	}
	if strings.HasPrefix(spec, "sym:") {
		var onSizes []int
		for _, tok := range strings.Split(strings.TrimPrefix(spec, "sym:"), ",") {
			tok = strings.TrimSpace(tok)
			if tok == "" {
				continue
			}
			w, err := strconv.Atoi(tok)
			if err != nil {
				return nil, coreerr.Wrap(err, coreerr.Malformed, site, "parsing symmetric-function weight %q", tok)
			}
			onSizes = append(onSizes, w)
		}
		return exact.SymmetricTable(n, onSizes), nil
	}

	bits := truth.New(n)
	hex := strings.TrimPrefix(spec, "0x")
	nibbles := []byte(hex)
	for i := len(nibbles) - 1; i >= 0; i-- {
		v, err := strconv.ParseUint(string(nibbles[i]), 16, 8)
		if err != nil {
			return nil, coreerr.Wrap(err, coreerr.Malformed, site, "parsing target hex digit %q", nibbles[i])
		}
		base := (len(nibbles) - 1 - i) * 4
		for b := 0; b < 4; b++ {
			m := base + b
			if m >= 1<<uint(n) {
				break
			}
			if v&(1<<uint(b)) != 0 {
				bits.SetBit(m, true)
			}
		}
	}
	return bits, nil
}

func serveTelemetry(addr string, b *telemetry.Broadcaster, logger *corelog.Logger) {
	logger.Infof("telemetry broadcaster listening on %s", addr)
	mux := http.NewServeMux()
	mux.Handle("/progress", b)
	if err := http.ListenAndServe(addr, mux); err != nil {
		logger.Warnf("telemetry server stopped: %v", err)
	}
}

// runRewire reads a MiniAIG literal object stream from stdin (entry i
// holds fanin0/fanin1, sentinel 0x7FFFFFFF marking "absent"), runs the
// rewiring loop over it, and writes the rewired stream to stdout in
// the same format.
func runRewire(cfg Config, cache *resultcache.Cache, broadcaster *telemetry.Broadcaster, logger *corelog.Logger) int {
	mini, err := readMiniAIG(os.Stdin)
	if err != nil {
		logger.Errorf("reading MiniAIG stream: %v", err)
		return statusUndecided
	}

	m := adapt.MiniAIGToMIAIG(mini)
	before := m.And2Count()

	mode := miaig.ModeAnd2Count
	switch cfg.RewireMode {
	case "area":
		mode = miaig.ModeMappedArea
	case "delay":
		mode = miaig.ModeMappedDelay
	}

	runID := miaig.RunID()
	improvements := m.Rewire(miaig.Params{
		MaxIterations:  cfg.MaxIterations,
		LevelGrowth:    cfg.LevelGrowth,
		ExpandBudget:   cfg.ExpandBudget,
		FaninGrowth:    cfg.FaninGrowth,
		DivisorCap:     cfg.DivisorCap,
		Mode:           mode,
		FCheck:         cfg.FCheck,
		Seed:           cfg.Seed,
		KeepAllChoices: cfg.KeepChoices,
		RootPoolSize:   4,
		BestPoolSize:   4,
		RestartStreak:  cfg.MaxIterations/4 + 1,
		Telemetry:      broadcaster,
	})

	after := m.And2Count()
	logger.Infof("run %s: %d improving iterations, cost %d -> %d", runID, improvements, before, after)
	if err := cache.RecordIteration(runID, 0, after, m.MaxLevel()); err != nil {
		logger.Warnf("recording rewire_history: %v", err)
	}

	out := adapt.MIAIGToMiniAIG(m)
	if err := writeMiniAIG(os.Stdout, out); err != nil {
		logger.Errorf("writing MiniAIG stream: %v", err)
		return statusUndecided
	}
	return statusSuccess
}

// readMiniAIG parses the literal stream format: a register-count
// line, then one "fanin0 fanin1" pair per object (entry 0's pair is
// ignored; the constant entry is implicit).
func readMiniAIG(r io.Reader) (*miniaig.MiniAIG, error) {
	site := coreerr.Site{Package: "main", Operation: "readMiniAIG"}
	m := miniaig.New()

	br := bufio.NewReader(r)
	var numRegs int
	if _, err := fmt.Fscan(br, &numRegs); err != nil {
		return nil, coreerr.Wrap(err, coreerr.Malformed, site, "reading register count")
	}
	m.NumRegs = numRegs

	for {
		var a, b uint32
		_, err := fmt.Fscan(br, &a, &b)
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, coreerr.Wrap(err, coreerr.Malformed, site, "reading fanin pair")
		}
		m.Entries = append(m.Entries, miniaig.Entry{Fanin0: a, Fanin1: b})
	}
	return m, nil
}

// writeMiniAIG serializes m back into the literal stream format:
// register count, then one "fanin0 fanin1" pair per object after the
// implicit constant entry.
func writeMiniAIG(w io.Writer, m *miniaig.MiniAIG) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintln(bw, m.NumRegs)
	for i := 1; i < len(m.Entries); i++ {
		e := m.Entries[i]
		fmt.Fprintln(bw, e.Fanin0, e.Fanin1)
	}
	return bw.Flush()
}
