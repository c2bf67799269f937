package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/harrison/dirsweep/internal/config"
	"github.com/harrison/dirsweep/internal/display"
	"github.com/harrison/dirsweep/internal/history"
	"github.com/harrison/dirsweep/internal/logger"
	"github.com/harrison/dirsweep/internal/monitor"
)

// session is everything one command invocation works with.
type session struct {
	cfg     *config.Config
	monitor *monitor.Monitor
	history *history.Store // nil when history is disabled
	log     logger.Sink
	fileLog *logger.FileLogger
	printer *display.Printer
}

// loadConfig resolves the home directory, reads the config file and applies
// the persistent flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	homeFlag, _ := cmd.Flags().GetString("home")
	var home string
	var err error
	if homeFlag != "" {
		home, err = filepath.Abs(homeFlag)
		if err == nil {
			err = os.MkdirAll(home, 0755)
		}
	} else {
		home, err = config.GetHome()
	}
	if err != nil {
		return nil, fmt.Errorf("resolve home directory: %w", err)
	}

	var cfg *config.Config
	if configPath, _ := cmd.Flags().GetString("config"); configPath != "" {
		cfg, err = config.LoadConfig(configPath)
		if err == nil {
			cfg.ResolvePaths(home)
		}
	} else {
		cfg, err = config.LoadConfigFromHome(home)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	var logLevelPtr, stateDirPtr *string
	var logToFilePtr *bool
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevelPtr = &v
	}
	if cmd.Flags().Changed("state-dir") {
		v, _ := cmd.Flags().GetString("state-dir")
		if abs, err := filepath.Abs(v); err == nil {
			v = abs
		}
		stateDirPtr = &v
	}
	if cmd.Flags().Changed("log-file") {
		v, _ := cmd.Flags().GetBool("log-file")
		logToFilePtr = &v
	}
	cfg.MergeWithFlags(logLevelPtr, stateDirPtr, logToFilePtr)

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// openSession loads configuration and state. Load problems are logged as
// warnings and never stop the command.
func openSession(cmd *cobra.Command) (*session, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}

	s := &session{
		cfg:     cfg,
		printer: display.NewPrinter(cmd.OutOrStdout()),
	}

	console := logger.NewConsoleLogger(cmd.ErrOrStderr(), cfg.LogLevel)
	s.log = console
	if cfg.LogToFile {
		fileLog, err := logger.NewFileLoggerWithLevel(cfg.LogDir, cfg.LogLevel)
		if err != nil {
			console.LogWarn(fmt.Sprintf("file logging disabled: %v", err))
		} else {
			s.fileLog = fileLog
			s.log = logger.Tee{console, fileLog}
			s.log.LogDebug(fmt.Sprintf("writing run log to %s", fileLog.RunFile()))
		}
	}

	opts := monitor.Options{
		SnapshotPath:   cfg.SnapshotPath(),
		ExclusionsPath: cfg.ExclusionsPath(),
		Logger:         s.log,
	}
	if cfg.History.Enabled {
		hist, err := history.NewStore(cfg.HistoryDBPath())
		if err != nil {
			s.log.LogWarn(fmt.Sprintf("cleanup history disabled: %v", err))
		} else {
			s.history = hist
			opts.History = hist
		}
	}

	// load diagnostics are already logged by the monitor
	s.monitor, _ = monitor.Open(opts)
	return s, nil
}

// Close releases the history database and run log.
func (s *session) Close() {
	if s.history != nil {
		s.history.Close()
	}
	if s.fileLog != nil {
		s.fileLog.Close()
	}
}

// absPaths resolves every argument against the working directory.
func absPaths(args []string) ([]string, error) {
	paths := make([]string, 0, len(args))
	for _, arg := range args {
		abs, err := filepath.Abs(arg)
		if err != nil {
			return nil, fmt.Errorf("resolve %s: %w", arg, err)
		}
		paths = append(paths, abs)
	}
	return paths, nil
}

// confirmAction prompts the user for confirmation
func confirmAction(in io.Reader, out io.Writer) bool {
	scanner := bufio.NewScanner(in)

	fmt.Fprintf(out, "Continue? [y/N]: ")

	if !scanner.Scan() {
		return false
	}

	response := strings.TrimSpace(strings.ToLower(scanner.Text()))
	return response == "y" || response == "yes"
}
