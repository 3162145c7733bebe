package services

import (
	"context"
	"time"

	"github.com/go-faster/errors"
	"github.com/robfig/cron/v3"
	"github.com/sirupsen/logrus"
)

const refreshTimeout = 2 * time.Minute

// Refresher reloads the directory on a cron schedule. A failed run is
// logged and waits for the next tick.
type Refresher struct {
	svc  *DirectoryService
	cron *cron.Cron
	log  *logrus.Entry
}

// NewRefresher validates schedule (standard 5-field cron or @every/@hourly descriptors).
func NewRefresher(svc *DirectoryService, schedule string, log *logrus.Logger) (*Refresher, error) {
	if log == nil {
		log = logrus.StandardLogger()
	}
	r := &Refresher{
		svc:  svc,
		cron: cron.New(),
		log:  log.WithField("component", "directory.refresher"),
	}
	if _, err := r.cron.AddFunc(schedule, r.run); err != nil {
		return nil, errors.Wrapf(err, "invalid refresh schedule %q", schedule)
	}
	return r, nil
}

func (r *Refresher) Start() {
	r.log.Info("directory refresher started")
	r.cron.Start()
}

// Stop halts scheduling and waits for a running refresh to finish.
func (r *Refresher) Stop() {
	<-r.cron.Stop().Done()
	r.log.Info("directory refresher stopped")
}

func (r *Refresher) run() {
	ctx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()

	snap, err := r.svc.Refresh(ctx)
	if err != nil {
		r.log.WithError(err).Warn("scheduled directory refresh failed")
		return
	}
	r.log.WithField("records", snap.Stats.Records).Info("scheduled directory refresh completed")
}
