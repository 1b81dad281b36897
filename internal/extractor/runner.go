// Package extractor runs the external term extraction tool over a corpus
// and reads back its JSON result.
package extractor

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/exec"
	"strconv"
	"strings"
	"time"

	"github.com/google/shlex"
)

// ErrJarNotFound is returned when the configured extractor jar is missing.
var ErrJarNotFound = errors.New("extractor jar not found")

const maxStderr = 2048

// Config locates the extractor and bounds its run time.
type Config struct {
	JavaBin  string
	JarPath  string
	JavaOpts string
	Timeout  time.Duration
}

// Request is one extraction run.
type Request struct {
	CorpusDir    string
	OutputPath   string
	Language     string
	MinFrequency int
}

// Runner invokes the extractor as a subprocess.
type Runner struct {
	log      *slog.Logger
	cfg      Config
	javaOpts []string
}

// NewRunner validates cfg and splits the JVM options.
func NewRunner(logger *slog.Logger, cfg Config) (*Runner, error) {
	opts, err := shlex.Split(cfg.JavaOpts)
	if err != nil {
		return nil, fmt.Errorf("parse java opts: %w", err)
	}
	if cfg.JavaBin == "" {
		cfg.JavaBin = "java"
	}
	return &Runner{
		log:      logger.With("component", "extractor"),
		cfg:      cfg,
		javaOpts: opts,
	}, nil
}

// Args returns the argument list passed to the JVM for req.
func (r *Runner) Args(req Request) []string {
	args := make([]string, 0, len(r.javaOpts)+14)
	args = append(args, r.javaOpts...)
	args = append(args,
		"-jar", r.cfg.JarPath,
		"-c", req.CorpusDir,
		"-l", req.Language,
		"--json", req.OutputPath,
		"--post-filter-property", "freq",
		"--post-filter-th", strconv.Itoa(req.MinFrequency),
		"--info",
	)
	return args
}

// Run executes the extractor and returns its parsed result.
func (r *Runner) Run(ctx context.Context, req Request) (*Result, error) {
	if _, err := os.Stat(r.cfg.JarPath); err != nil {
		return nil, fmt.Errorf("%w: %s", ErrJarNotFound, r.cfg.JarPath)
	}

	if r.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, r.cfg.Timeout)
		defer cancel()
	}

	cmd := exec.CommandContext(ctx, r.cfg.JavaBin, r.Args(req)...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	cmd.WaitDelay = 5 * time.Second

	start := time.Now()
	err := cmd.Run()
	if errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return nil, fmt.Errorf("extractor exceeded timeout of %s", r.cfg.Timeout)
	}
	if err != nil {
		return nil, fmt.Errorf("run extractor: %w: %s", err, tail(stderr.String()))
	}

	r.log.InfoContext(ctx, "extraction finished",
		slog.String("corpus", req.CorpusDir),
		slog.String("language", req.Language),
		slog.Duration("duration", time.Since(start)),
	)
	return ReadResult(req.OutputPath)
}

func tail(s string) string {
	s = strings.TrimSpace(s)
	if len(s) > maxStderr {
		return "…" + s[len(s)-maxStderr:]
	}
	return s
}
