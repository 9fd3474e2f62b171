package providers

import (
	"os"
	"strings"
	"time"

	"dbpd/internal/structures"
)

type InstallDateProviderInterface interface {
	InstallDate() (time.Time, bool)
}

// StampFileInstallDateProvider reads the install stamp written on first
// daemon start. When no stamp exists yet one is created with the current
// time; a stamp that cannot be read or parsed reports the install date
// as unknown rather than failing.
type StampFileInstallDateProvider struct {
	path   string
	logger Logger
}

func NewInstallDateProvider(conf *structures.Config, logger Logger) InstallDateProviderInterface {
	p := &StampFileInstallDateProvider{
		path:   conf.Prompt.InstallStampPath,
		logger: logger,
	}
	p.ensureStamp()
	return p
}

func (p *StampFileInstallDateProvider) ensureStamp() {
	if _, err := os.Stat(p.path); err == nil {
		return
	} else if !os.IsNotExist(err) {
		p.logger.Warnf(TypeApp, "Install stamp unreadable: %v", err)
		return
	}

	data := []byte(time.Now().Format(time.RFC3339) + "\n")
	if err := os.WriteFile(p.path, data, 0o644); err != nil {
		p.logger.Warnf(TypeApp, "Install stamp not written: %v", err)
		return
	}
	p.logger.Infof(TypeApp, "Install stamp created at %s", p.path)
}

func (p *StampFileInstallDateProvider) InstallDate() (time.Time, bool) {
	data, err := os.ReadFile(p.path)
	if err != nil {
		return time.Time{}, false
	}
	ts, err := time.Parse(time.RFC3339, strings.TrimSpace(string(data)))
	if err != nil {
		p.logger.Warnf(TypeApp, "Install stamp corrupt: %v", err)
		return time.Time{}, false
	}
	return ts, true
}
