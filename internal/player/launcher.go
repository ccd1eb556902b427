package player

import (
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoPlayer is returned when no candidate player could be started
var ErrNoPlayer = errors.New("no candidate players found")

// Launcher starts stream URLs in an external player
type Launcher struct {
	command string   // configured player command, empty to auto-detect
	args    []string // additional arguments for the player
	logger  *slog.Logger

	// lookPath and newCmd are swapped in tests
	lookPath func(string) (string, error)
	newCmd   func(name string, args ...string) *exec.Cmd
}

// launchPath defines a single way to launch a player
type launchPath struct {
	path      string   // Command path: "mpv", "vlc", or "open-a:AppName"
	openFlags []string // For "open-a:" paths only - flags for macOS open command (e.g., ["-n"])
}

// players registry of known players and how to reach them per platform
var players = map[string]map[string][]launchPath{
	"mpv": {
		"darwin":  {{path: "mpv"}},
		"linux":   {{path: "mpv"}},
		"windows": {{path: "mpv"}},
	},
	"vlc": {
		"darwin": {
			{path: "vlc"},
			{path: "open-a:VLC"},
		},
		"linux":   {{path: "vlc"}},
		"windows": {{path: "vlc"}},
	},
	"iina": {
		"darwin": {{path: "open-a:IINA", openFlags: []string{"-n"}}},
	},
	"celluloid": {
		"linux": {{path: "celluloid"}},
	},
	"haruna": {
		"linux": {{path: "haruna"}},
	},
	"potplayer": {
		"windows": {{path: "PotPlayerMini64.exe"}, {path: "PotPlayerMini.exe"}},
	},
}

// candidatePlayers defines the preferred player order for each platform
var candidatePlayers = map[string][]string{
	"darwin":  {"iina", "vlc", "mpv"},
	"linux":   {"mpv", "celluloid", "haruna", "vlc"},
	"windows": {"vlc", "mpv", "potplayer"},
}

// NewLauncher creates a Launcher. An empty command auto-detects a player.
func NewLauncher(command string, args []string, logger *slog.Logger) *Launcher {
	if logger == nil {
		logger = slog.Default()
	}
	return &Launcher{
		command:  command,
		args:     args,
		logger:   logger,
		lookPath: exec.LookPath,
		newCmd:   exec.Command,
	}
}

// Start opens url in the configured player, a detected candidate, or the
// system default handler, and returns the playback session.
func (l *Launcher) Start(url string) (*Session, error) {
	// Tier 1: User configured a specific player
	if l.command != "" {
		l.logger.Info("using configured player", "command", l.command)
		return l.startCommand(l.command, append(append([]string{}, l.args...), url))
	}

	// Tier 2: Try candidate chain
	if s, err := l.detectAndStart(url); err == nil {
		return s, nil
	}

	// Tier 3: Fall back to system default (open/xdg-open/start)
	l.logger.Info("no candidate players found, using system default")
	return l.startDefault(url)
}

// detectAndStart tries candidate players in order for the current platform
func (l *Launcher) detectAndStart(url string) (*Session, error) {
	candidates, ok := candidatePlayers[runtime.GOOS]
	if !ok {
		candidates = candidatePlayers["linux"]
	}

	for _, name := range candidates {
		paths, ok := players[name][runtime.GOOS]
		if !ok {
			l.logger.Debug("player not available on this platform", "player", name, "platform", runtime.GOOS)
			continue
		}

		for _, lp := range paths {
			var (
				s   *Session
				err error
			)
			if appName, isApp := strings.CutPrefix(lp.path, "open-a:"); isApp {
				s, err = l.startApp(appName, lp.openFlags, url)
			} else {
				s, err = l.startCommand(lp.path, []string{url})
			}
			if err == nil {
				l.logger.Info("launched with detected player", "player", name, "path", lp.path)
				return s, nil
			}
			l.logger.Debug("launch path not available", "player", name, "path", lp.path, "error", err)
		}
	}

	return nil, ErrNoPlayer
}

// startCommand starts a CLI player that stays attached until it exits
func (l *Launcher) startCommand(command string, args []string) (*Session, error) {
	if _, err := l.lookPath(command); err != nil {
		return nil, fmt.Errorf("player %q not found: %w", command, err)
	}

	cmd := l.newCmd(command, args...)
	l.logger.Info("launching player", "command", command, "args", args)
	return startAttached(cmd)
}

// startApp opens a macOS app with "open -a". The helper exits immediately,
// so the session stays open until it is stopped.
func (l *Launcher) startApp(appName string, openFlags []string, url string) (*Session, error) {
	cmdArgs := append(append([]string{}, openFlags...), "-a", appName)
	if len(l.args) > 0 {
		cmdArgs = append(cmdArgs, "--args")
		cmdArgs = append(cmdArgs, l.args...)
	}
	cmdArgs = append(cmdArgs, url)

	if err := l.newCmd("open", cmdArgs...).Run(); err != nil {
		return nil, fmt.Errorf("open -a %s: %w", appName, err)
	}
	return newDetached(), nil
}

// startDefault opens url with the system default handler
func (l *Launcher) startDefault(url string) (*Session, error) {
	var cmd *exec.Cmd
	switch runtime.GOOS {
	case "darwin":
		cmd = l.newCmd("open", url)
	case "windows":
		cmd = l.newCmd("cmd", "/c", "start", "", url)
	default:
		cmd = l.newCmd("xdg-open", url)
	}

	l.logger.Info("launching with system default", "os", runtime.GOOS, "url", url)

	if err := cmd.Run(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrNoPlayer, err)
	}
	return newDetached(), nil
}
