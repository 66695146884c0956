// Package envdetect classifies the current execution context as constrained
// (cloud deployment, tight memory budget) or unconstrained (local machine).
//
// Classification is a logical OR over independent signals: any single signal
// firing marks the environment constrained. The check is a heuristic, not
// authoritative; it errs toward the safer, slower tier. Business logic must
// never branch on individual signals, only on the returned classification,
// and an explicit tier override bypasses the sniffer entirely.
package envdetect

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
)

// Classification is the outcome of environment detection.
type Classification int

const (
	Unconstrained Classification = iota
	Constrained
)

func (c Classification) String() string {
	if c == Constrained {
		return "Constrained"
	}
	return "Unconstrained"
}

// Report carries the classification and the names of the signals that fired.
type Report struct {
	Classification Classification
	Signals        []string
}

// Constrained reports whether any signal fired.
func (r Report) Constrained() bool { return r.Classification == Constrained }

// cloudEnvVars are set by common deployment platforms.
var cloudEnvVars = []string{
	"DYNO",
	"RAILWAY_ENVIRONMENT",
	"RENDER",
	"KUBERNETES_SERVICE_HOST",
	"ECS_CONTAINER_METADATA_URI_V4",
}

// cloudHostnameHints appear in the hostnames handed out by cloud providers.
var cloudHostnameHints = []string{
	"heroku",
	"railway",
	"render",
	"ec2.internal",
	"compute.internal",
}

const (
	memTotalThresholdBytes = 2 << 30 // below 2 GiB counts as constrained
	memInfoPath            = "/proc/meminfo"
	dockerEnvPath          = "/.dockerenv"
)

// Classifier runs the detection. The zero value is not usable; construct
// with New. The probe functions are injectable so tests can force signals.
type Classifier struct {
	ForceConstrainedAt int // batch sizes above this always fire; <= 0 disables

	getenv        func(string) string
	hostname      func() (string, error)
	fileExists    func(string) bool
	memTotalBytes func() (uint64, bool)
}

// New returns a Classifier probing the real process environment.
func New(forceConstrainedAt int) *Classifier {
	return &Classifier{
		ForceConstrainedAt: forceConstrainedAt,
		getenv:             os.Getenv,
		hostname:           os.Hostname,
		fileExists: func(path string) bool {
			_, err := os.Stat(path)
			return err == nil
		},
		memTotalBytes: readMemTotal,
	}
}

// Classify inspects the environment and the size of the pending batch.
func (c *Classifier) Classify(batchSize int) Report {
	var signals []string

	for _, key := range cloudEnvVars {
		if c.getenv(key) != "" {
			signals = append(signals, "env_"+key)
		}
	}

	if host, err := c.hostname(); err == nil {
		host = strings.ToLower(host)
		for _, hint := range cloudHostnameHints {
			if strings.Contains(host, hint) {
				signals = append(signals, "hostname")
				break
			}
		}
	}

	if c.fileExists(dockerEnvPath) {
		signals = append(signals, "docker")
	}

	if total, ok := c.memTotalBytes(); ok && total < memTotalThresholdBytes {
		signals = append(signals, "memory_limit")
	}

	if c.ForceConstrainedAt > 0 && batchSize > c.ForceConstrainedAt {
		signals = append(signals, "batch_size")
	}

	report := Report{Classification: Unconstrained, Signals: signals}
	if len(signals) > 0 {
		report.Classification = Constrained
	}

	slog.Debug("[EnvDetect] Environment classified",
		slog.String("classification", report.Classification.String()),
		slog.String("signals", strings.Join(signals, ",")),
		slog.Int("batch_size", batchSize))

	return report
}

// readMemTotal parses MemTotal from /proc/meminfo. Returns ok=false when
// the file is missing or malformed, in which case the signal stays silent.
func readMemTotal() (uint64, bool) {
	data, err := os.ReadFile(memInfoPath)
	if err != nil {
		return 0, false
	}
	for _, line := range strings.Split(string(data), "\n") {
		if !strings.HasPrefix(line, "MemTotal:") {
			continue
		}
		fields := strings.Fields(line)
		if len(fields) < 2 {
			return 0, false
		}
		kb, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return 0, false
		}
		return kb * 1024, true
	}
	return 0, false
}
