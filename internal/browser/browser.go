// Package browser opens URLs with the user's configured command.
package browser

import (
	"fmt"
	"os/exec"
	"runtime"

	"github.com/kballard/go-shellquote"
)

// Args resolves the argv for opening url. command comes from the
// config file and may carry flags ("open -a Firefox"); it is split
// with shell quoting rules and the URL appended. An empty command
// falls back to the platform opener.
func Args(command, url string) ([]string, error) {
	if command == "" {
		command = defaultCommand()
	}

	parts, err := shellquote.Split(command)
	if err != nil {
		return nil, fmt.Errorf("invalid browser command %q: %w", command, err)
	}
	if len(parts) == 0 {
		return nil, fmt.Errorf("empty browser command")
	}

	return append(parts, url), nil
}

// Open launches the browser command for url without waiting for it.
func Open(command, url string) error {
	argv, err := Args(command, url)
	if err != nil {
		return err
	}

	cmd := exec.Command(argv[0], argv[1:]...)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("failed to open %s: %w", url, err)
	}

	// Reap the child in the background.
	go func() { _ = cmd.Wait() }()
	return nil
}

func defaultCommand() string {
	switch runtime.GOOS {
	case "darwin":
		return "open"
	case "windows":
		return "rundll32 url.dll,FileProtocolHandler"
	default:
		return "xdg-open"
	}
}
