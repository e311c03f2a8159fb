package ffmpegdecoder

import (
	"errors"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"
)

// ErrToolNotFound is returned when an ffmpeg-family binary is missing.
var ErrToolNotFound = errors.New("ffmpegdecoder: tool not found")

// customToolDir overrides tool discovery when set via SetToolDir.
var customToolDir string

// SetToolDir sets a directory searched first for ffmpeg and ffprobe.
func SetToolDir(dir string) {
	customToolDir = dir
}

// IsAvailable checks if both ffmpeg and ffprobe can be located.
func IsAvailable() bool {
	if _, err := findTool("ffmpeg"); err != nil {
		return false
	}
	_, err := findTool("ffprobe")
	return err == nil
}

// findTool searches for an ffmpeg-family binary.
// Priority: 1) SetToolDir, 2) <NAME>_PATH env, 3) PATH, 4) common locations.
func findTool(name string) (string, error) {
	execName := name
	if runtime.GOOS == "windows" {
		execName += ".exe"
	}

	if customToolDir != "" {
		p := filepath.Join(customToolDir, execName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
		return "", fmt.Errorf("%w: %s not in %s", ErrToolNotFound, name, customToolDir)
	}

	if envPath := os.Getenv(strings.ToUpper(name) + "_PATH"); envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			return envPath, nil
		}
		return "", fmt.Errorf("%w: %s_PATH %s not found", ErrToolNotFound, strings.ToUpper(name), envPath)
	}

	if path, err := exec.LookPath(execName); err == nil {
		return path, nil
	}

	var commonDirs []string
	switch runtime.GOOS {
	case "windows":
		commonDirs = []string{
			`C:\ffmpeg\bin`,
			`C:\Program Files\ffmpeg\bin`,
			`C:\Program Files (x86)\ffmpeg\bin`,
		}
	case "darwin":
		commonDirs = []string{
			"/opt/homebrew/bin",
			"/usr/local/bin",
			"/usr/bin",
		}
	default:
		commonDirs = []string{
			"/usr/bin",
			"/usr/local/bin",
			"/opt/homebrew/bin",
			"/snap/bin",
		}
	}
	for _, dir := range commonDirs {
		p := filepath.Join(dir, execName)
		if _, err := os.Stat(p); err == nil {
			return p, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrToolNotFound, name)
}
