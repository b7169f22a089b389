// Package dockercli invokes the container runtime's listing command. The
// runtime binary is treated as an opaque process: it gets a filter/format/
// limit configuration and either returns JSON records on stdout or fails
// with a non-zero exit code and stderr text, which are propagated verbatim.
package dockercli

import (
	"bytes"
	"context"
	"errors"
	"os/exec"
	"strconv"
	"strings"

	"github.com/sirupsen/logrus"

	apperrors "github.com/dps-tool/dps/internal/errors"
)

// ListOptions mirrors the `docker ps` flags the wrapper passes through.
type ListOptions struct {
	All     bool     // -a: include stopped containers
	Last    int      // -n: show n last created containers; negative means unset
	Latest  bool     // -l: show the latest created container
	NoTrunc bool     // --no-trunc: ask the runtime for full values
	Size    bool     // -s: include container sizes
	Filters []string // raw key=value filters pushed down to the runtime
}

// Runner executes the runtime's listing command.
type Runner interface {
	// ListJSON runs the listing command with JSON output and returns its
	// raw stdout. A non-zero exit surfaces as *apperrors.FetchError.
	ListJSON(ctx context.Context, opts ListOptions) ([]byte, error)
}

// execRunner shells out to the runtime binary.
type execRunner struct {
	binary string
}

// Compile-time verification that execRunner implements Runner.
var _ Runner = (*execRunner)(nil)

// NewRunner creates a Runner for the given runtime binary (e.g. "docker").
func NewRunner(binary string) Runner {
	if binary == "" {
		binary = "docker"
	}
	return &execRunner{binary: binary}
}

func (r *execRunner) ListJSON(ctx context.Context, opts ListOptions) ([]byte, error) {
	args := buildArgs(opts)
	logrus.WithFields(logrus.Fields{
		"binary": r.binary,
		"args":   strings.Join(args, " "),
	}).Debug("Executing runtime listing command")

	cmd := exec.CommandContext(ctx, r.binary, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		fetchErr := &apperrors.FetchError{
			Binary:   r.binary,
			ExitCode: 1,
			Stderr:   strings.TrimSpace(stderr.String()),
			Err:      err,
		}
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) && exitErr.ExitCode() > 0 {
			fetchErr.ExitCode = exitErr.ExitCode()
		}
		return nil, fetchErr
	}

	return stdout.Bytes(), nil
}

func buildArgs(opts ListOptions) []string {
	args := []string{"ps", "--format", "json"}

	if opts.All {
		args = append(args, "-a")
	}
	if opts.Last >= 0 {
		args = append(args, "-n", strconv.Itoa(opts.Last))
	}
	if opts.Latest {
		args = append(args, "-l")
	}
	if opts.NoTrunc {
		args = append(args, "--no-trunc")
	}
	if opts.Size {
		args = append(args, "-s")
	}
	for _, f := range opts.Filters {
		args = append(args, "-f", f)
	}

	return args
}
