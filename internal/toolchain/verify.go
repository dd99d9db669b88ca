package toolchain

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"keygrip/internal/logging"
	"keygrip/internal/services"
)

const verifyLockRetry = 250 * time.Millisecond

// VerifyEncoder proves an encoder can actually initialize by encoding a
// single synthetic frame to the null muxer. Listing presence only means the
// toolchain was built with the encoder; drivers, firmware, and device nodes
// can still be broken, and this is the check that catches that.
//
// Hardware encode sessions are a scarce per-device resource, so a file lock
// serializes verification across processes on the same host.
func (p *Probe) VerifyEncoder(ctx context.Context, binary, encoderKey string) error {
	if strings.TrimSpace(binary) == "" {
		return services.Wrap(ErrNotFound, "toolchain", "verify", "no toolchain binary located", nil)
	}
	if strings.TrimSpace(encoderKey) == "" {
		return services.Wrap(services.ErrValidation, "toolchain", "verify", "encoder key is required", nil)
	}

	ctx, cancel := context.WithTimeout(ctx, p.opts.VerifyTimeout)
	defer cancel()

	lock := flock.New(verifyLockPath())
	locked, err := lock.TryLockContext(ctx, verifyLockRetry)
	if err != nil {
		return services.Wrap(services.ErrTimeout, "toolchain", "verify", "waiting for verification lock", err)
	}
	if !locked {
		return services.Wrap(services.ErrTimeout, "toolchain", "verify", "verification lock busy", nil)
	}
	defer func() {
		if unlockErr := lock.Unlock(); unlockErr != nil {
			p.logger.Warn("failed to release verification lock", logging.Error(unlockErr))
		}
	}()

	args := []string{
		"-hide_banner", "-loglevel", "error",
		"-f", "lavfi", "-i", "nullsrc=s=256x256:d=0.1",
		"-frames:v", "1",
		"-c:v", encoderKey,
		"-f", "null", "-",
	}
	output, err := p.runner.Run(ctx, binary, args...)
	if err != nil {
		return services.Wrap(services.ErrExternalTool, "toolchain", "verify",
			encoderKey+": "+summarizeOutput(output), err)
	}
	p.logger.Debug("encoder verified", logging.String("encoder", encoderKey))
	return nil
}

func verifyLockPath() string {
	return filepath.Join(os.TempDir(), "keygrip-verify.lock")
}
