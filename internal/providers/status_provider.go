package providers

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"time"

	"dbpd/internal/structures"
)

type StatusProviderInterface interface {
	IsDefault(ctx context.Context) (bool, error)
}

// XdgStatusProvider asks the desktop environment whether this browser is
// the system default. The probe shells out to xdg-settings and is bounded
// by the configured timeout regardless of the caller's context.
type XdgStatusProvider struct {
	desktopEntry string
	timeout      time.Duration
}

func NewStatusProvider(conf *structures.Config) StatusProviderInterface {
	return &XdgStatusProvider{
		desktopEntry: conf.Status.DesktopEntry,
		timeout:      conf.Status.ProbeTimeout,
	}
}

func (p *XdgStatusProvider) IsDefault(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.timeout)
	defer cancel()

	out, err := exec.CommandContext(ctx, "xdg-settings", "check", "default-web-browser", p.desktopEntry).Output()
	if err != nil {
		return false, fmt.Errorf("xdg-settings probe: %w", err)
	}
	return strings.HasPrefix(strings.TrimSpace(string(out)), "yes"), nil
}
