// Package sweeper запускает периодическую уборку просроченных заказов.
package sweeper

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
)

// Servicer один проход уборки. Реализуется service.SweepService.
type Servicer interface {
	SweepOnce(ctx context.Context) (int, error)
}

// Sweeper тикающий процесс: раз в интервал делает один проход по активным
// заказам. Останавливается по отмене контекста, начатый проход при этом
// не бросается на середине транзакции - атомарность обеспечивает сам проход.
type Sweeper struct {
	svs      Servicer
	l        *logrus.Entry
	interval time.Duration
}

// New создает новый экземпляр свипера.
func New(svs Servicer, interval time.Duration, l *logrus.Logger) *Sweeper {
	loggerEntry := l.WithFields(logrus.Fields{
		"component": "sweeper",
		"module":    "runner",
	})

	return &Sweeper{
		svs:      svs,
		l:        loggerEntry,
		interval: interval,
	}
}

// Run выполняет проходы уборки в бесконечном цикле до отмены контекста.
func (s *Sweeper) Run(ctx context.Context) {
	s.l.WithField("interval", s.interval.String()).Info("Starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.l.Info("Got stop signal, exiting...")
			return
		case <-ticker.C:
			transitioned, sweepErr := s.svs.SweepOnce(ctx)
			if sweepErr != nil {
				s.l.WithError(sweepErr).Error("sweep pass failed")
				continue
			}
			if transitioned > 0 {
				s.l.WithField("transitioned", transitioned).Info("sweep pass finished")
			}
		}
	}
}
