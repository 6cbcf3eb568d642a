package cli

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/shiviagarwalwork/brainbites/internal/notify"
	"github.com/shiviagarwalwork/brainbites/internal/scheduler"
)

func newDaemonCmd(e *env) *cobra.Command {
	return &cobra.Command{
		Use:   "daemon",
		Short: "Send streak reminders and serve metrics until interrupted",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return e.runDaemon(cmd.Context())
		},
	}
}

func (e *env) runDaemon(ctx context.Context) error {
	var notifier notify.Notifier = notify.NewLogNotifier(e.log)
	if token := e.cfg.Reminders.TelegramToken; token != "" {
		tg, err := notify.NewTelegramNotifier(token, e.cfg.Reminders.TelegramChatID)
		if err != nil {
			return err
		}
		notifier = tg
	}

	sched := scheduler.New(e.app, notifier, e.app, e.cfg.Reminders, e.cfg.Persistence.FlushInterval, e.log, e.metrics)
	if err := sched.Start(); err != nil {
		return err
	}
	defer sched.Stop()

	g, ctx := errgroup.WithContext(ctx)
	if addr := e.cfg.Metrics.Addr; addr != "" {
		g.Go(func() error { return e.metrics.Serve(ctx, addr, e.log) })
	}
	g.Go(func() error {
		<-ctx.Done()
		return nil
	})

	e.log.Info("daemon running")
	err := g.Wait()
	e.log.Info("daemon stopping")
	if errors.Is(err, context.Canceled) {
		return nil
	}
	return err
}
