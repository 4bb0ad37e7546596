package system

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/sirupsen/logrus"
)

// runner executes an external command and returns its stdout. Tests
// replace it to record invocations.
type runner func(name string, args ...string) ([]byte, error)

// commandRunner logs every command and folds stderr into the error.
func commandRunner(log *logrus.Entry) runner {
	return func(name string, args ...string) ([]byte, error) {
		log.WithField("cmd", append([]string{name}, args...)).Debug("running command")

		cmd := exec.Command(name, args...)
		var stderr bytes.Buffer
		cmd.Stderr = &stderr

		out, err := cmd.Output()
		if err != nil {
			msg := strings.TrimSpace(stderr.String())
			log.WithError(err).WithField("stderr", msg).Warn("command failed")
			if msg != "" {
				return out, fmt.Errorf("running %s failed: %w: %s", name, err, msg)
			}
			return out, fmt.Errorf("running %s failed: %w", name, err)
		}
		return out, nil
	}
}

// asAdmin prefixes a command with pkexec unless we already run as root,
// so the desktop shows its usual password prompt.
func asAdmin(run runner) runner {
	if os.Geteuid() == 0 {
		return run
	}
	return func(name string, args ...string) ([]byte, error) {
		return run("pkexec", append([]string{name}, args...)...)
	}
}
