// Package debug writes diagnostic bundles. Bundles carry record counts and
// configuration, never journal text, notes or contact details.
package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"time"
)

type Check struct {
	Name    string `json:"name"`
	OK      bool   `json:"ok"`
	Message string `json:"message"`
}

// RecordCounts summarises what is stored without exposing it.
type RecordCounts struct {
	Started          bool `json:"started"`
	JournalEntries   int  `json:"journal_entries"`
	UrgeLogs         int  `json:"urge_logs"`
	ShownMilestones  int  `json:"shown_milestones"`
	EmergencyContact bool `json:"emergency_contact"`
}

type Bundle struct {
	GeneratedAt string         `json:"generated_at"`
	GOOS        string         `json:"goos"`
	GOARCH      string         `json:"goarch"`
	GoVersion   string         `json:"go_version"`
	Version     map[string]any `json:"version,omitempty"`
	Config      map[string]any `json:"config,omitempty"`
	Records     *RecordCounts  `json:"records,omitempty"`
	Checks      []Check        `json:"checks,omitempty"`
	Notes       []string       `json:"notes,omitempty"`
}

func NewBundle(now time.Time) Bundle {
	return Bundle{
		GeneratedAt: now.UTC().Format(time.RFC3339Nano),
		GOOS:        runtime.GOOS,
		GOARCH:      runtime.GOARCH,
		GoVersion:   runtime.Version(),
	}
}

func (b *Bundle) AddCheck(name string, err error, okMessage string) {
	if err != nil {
		b.Checks = append(b.Checks, Check{Name: name, OK: false, Message: err.Error()})
		return
	}
	b.Checks = append(b.Checks, Check{Name: name, OK: true, Message: okMessage})
}

// Healthy reports whether every check passed.
func (b Bundle) Healthy() bool {
	for _, c := range b.Checks {
		if !c.OK {
			return false
		}
	}
	return true
}

func WriteBundle(outputPath string, bundle Bundle) error {
	if outputPath == "" {
		return fmt.Errorf("write debug bundle: output path is required")
	}
	if err := os.MkdirAll(filepath.Dir(outputPath), 0o700); err != nil {
		return fmt.Errorf("write debug bundle: create output directory: %w", err)
	}

	payload, err := json.MarshalIndent(bundle, "", "  ")
	if err != nil {
		return fmt.Errorf("write debug bundle: marshal json: %w", err)
	}
	if err := os.WriteFile(outputPath, payload, 0o600); err != nil {
		return fmt.Errorf("write debug bundle: %w", err)
	}
	return nil
}
