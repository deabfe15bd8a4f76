// Package cli is the calnotes command tree. Without a subcommand it starts
// the terminal UI.
package cli

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"calnotes/internal/config"
	"calnotes/internal/kv"
	"calnotes/internal/logs"
	"calnotes/internal/notes"
)

// rootOptions holds the persistent flags shared by every command.
type rootOptions struct {
	dataDir string
	backend string
}

// New returns the root command.
func New() *cobra.Command {
	ro := &rootOptions{}

	cmd := &cobra.Command{
		Use:           "calnotes",
		Short:         "A month calendar with notes attached to days.",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runUI(ro)
		},
	}

	cmd.PersistentFlags().StringVarP(&ro.dataDir, "data-dir", "d", "", "Directory holding notes and logs (default ~/calnotes).")
	cmd.PersistentFlags().StringVarP(&ro.backend, "backend", "b", "", fmt.Sprintf("Storage backend. One of %s.", strings.Join(kv.Backends(), ", ")))

	AddCommands(cmd, ro)
	return cmd
}

// AddCommands registers every subcommand on topLevel.
func AddCommands(topLevel *cobra.Command, ro *rootOptions) {
	addUI(topLevel, ro)
	addMonth(topLevel, ro)
	addNote(topLevel, ro)
	addExport(topLevel, ro)
	addImport(topLevel, ro)
	addVersion(topLevel)
}

// session is an open notes store backed by durable storage.
type session struct {
	cfg       *config.Config
	kv        kv.Store
	store     *notes.Store
	persister *notes.Persister
}

func (ro *rootOptions) open() (*session, error) {
	cfg, err := config.Load(config.CLIFlags{DataDir: ro.dataDir, Backend: ro.backend})
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if err := cfg.EnsureDataDir(); err != nil {
		return nil, fmt.Errorf("create data dir: %w", err)
	}
	if err := logs.Initialize(cfg.DataDir); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not initialize logger: %v\n", err)
	}
	if err := config.EnsureConfigFile(); err != nil {
		logs.Logger.Printf("Warning: could not create config file: %v", err)
	}

	backend, err := kv.Open(cfg.Backend, cfg.DataDir)
	if err != nil {
		logs.Close()
		return nil, err
	}
	store, persister := notes.Open(backend, cfg.SaveDelay)
	return &session{cfg: cfg, kv: backend, store: store, persister: persister}, nil
}

// Close writes pending changes and releases the storage.
func (s *session) Close() error {
	s.persister.Close()
	saveErr := s.persister.LastError()
	if saveErr != nil {
		saveErr = fmt.Errorf("save notes: %w", saveErr)
	}
	closeErr := s.kv.Close()
	logs.Close()
	return errors.Join(saveErr, closeErr)
}

// withSession opens a session, runs fn and closes the session, reporting
// the first error.
func (ro *rootOptions) withSession(fn func(*session) error) (err error) {
	s, err := ro.open()
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}
