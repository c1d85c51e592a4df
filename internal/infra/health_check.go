package infra

import (
	"context"
	"os"
	"time"

	log "github.com/sirupsen/logrus"
)

const checkExecInterval = 5 * time.Second

// WatchExecutable closes the returned channel once the running binary is
// replaced on disk, so a supervisor can restart the fresh build.
func WatchExecutable(ctx context.Context) <-chan struct{} {
	return watchFile(ctx, "", checkExecInterval)
}

func watchFile(ctx context.Context, filename string, interval time.Duration) <-chan struct{} {
	ch := make(chan struct{})
	entry := log.WithField("context", "watch_file")
	go func() {
		if filename == "" {
			exe, err := os.Executable()
			if err != nil {
				entry.WithError(err).Warn("cant resolve executable path")
				return
			}
			filename = exe
		}
		stat, err := os.Stat(filename)
		if err != nil {
			entry.WithError(err).Warn("cant stat watched file")
			return
		}
		original := stat.ModTime()

		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				stat, err := os.Stat(filename)
				if err != nil {
					entry.WithError(err).Warn("cant stat watched file on tick")
					continue
				}
				if !original.Equal(stat.ModTime()) {
					close(ch)
					return
				}
			}
		}
	}()
	return ch
}
