package envdetect

import (
	"errors"
	"testing"
)

// quietClassifier returns a classifier whose probes all report a roomy
// local machine; individual tests flip single signals on.
func quietClassifier(forceConstrainedAt int) *Classifier {
	return &Classifier{
		ForceConstrainedAt: forceConstrainedAt,
		getenv:             func(string) string { return "" },
		hostname:           func() (string, error) { return "dev-laptop", nil },
		fileExists:         func(string) bool { return false },
		memTotalBytes:      func() (uint64, bool) { return 16 << 30, true },
	}
}

func TestClassifyQuietEnvironmentIsUnconstrained(t *testing.T) {
	report := quietClassifier(0).Classify(10)
	if report.Constrained() {
		t.Errorf("quiet environment classified constrained: signals %v", report.Signals)
	}
	if len(report.Signals) != 0 {
		t.Errorf("unexpected signals: %v", report.Signals)
	}
}

func TestClassifySingleSignalIsEnough(t *testing.T) {
	tests := []struct {
		name       string
		mutate     func(*Classifier)
		wantSignal string
	}{
		{
			name: "cloud env var",
			mutate: func(c *Classifier) {
				c.getenv = func(key string) string {
					if key == "DYNO" {
						return "web.1"
					}
					return ""
				}
			},
			wantSignal: "env_DYNO",
		},
		{
			name: "cloud hostname",
			mutate: func(c *Classifier) {
				c.hostname = func() (string, error) { return "ip-10-0-0-1.ec2.internal", nil }
			},
			wantSignal: "hostname",
		},
		{
			name: "docker marker file",
			mutate: func(c *Classifier) {
				c.fileExists = func(string) bool { return true }
			},
			wantSignal: "docker",
		},
		{
			name: "low memory",
			mutate: func(c *Classifier) {
				c.memTotalBytes = func() (uint64, bool) { return 1 << 30, true }
			},
			wantSignal: "memory_limit",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := quietClassifier(0)
			tt.mutate(c)

			report := c.Classify(10)
			if !report.Constrained() {
				t.Fatal("signal did not flip classification")
			}
			if len(report.Signals) != 1 || report.Signals[0] != tt.wantSignal {
				t.Errorf("signals = %v, want [%s]", report.Signals, tt.wantSignal)
			}
		})
	}
}

func TestClassifyBatchSizeThreshold(t *testing.T) {
	c := quietClassifier(30)

	if report := c.Classify(30); report.Constrained() {
		t.Errorf("batch at the threshold classified constrained: %v", report.Signals)
	}
	report := c.Classify(31)
	if !report.Constrained() {
		t.Fatal("batch above the threshold not classified constrained")
	}
	if report.Signals[0] != "batch_size" {
		t.Errorf("signals = %v, want batch_size", report.Signals)
	}
}

func TestClassifyHostnameErrorStaysSilent(t *testing.T) {
	c := quietClassifier(0)
	c.hostname = func() (string, error) { return "", errors.New("no hostname") }

	if report := c.Classify(10); report.Constrained() {
		t.Errorf("hostname error produced signals: %v", report.Signals)
	}
}

func TestClassifyUnknownMemoryStaysSilent(t *testing.T) {
	c := quietClassifier(0)
	c.memTotalBytes = func() (uint64, bool) { return 0, false }

	if report := c.Classify(10); report.Constrained() {
		t.Errorf("unreadable meminfo produced signals: %v", report.Signals)
	}
}
