package cli

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/utsavm/nexus/internal/core/api"
	"github.com/utsavm/nexus/internal/core/commands"
	"github.com/utsavm/nexus/internal/core/health"
	"github.com/utsavm/nexus/internal/core/logging"
	"github.com/utsavm/nexus/internal/core/store"
	"github.com/utsavm/nexus/internal/core/telegram"
	"github.com/utsavm/nexus/internal/interface/tui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Launch the interactive client",
	Long:  "Launch the full-screen terminal client: chat, task board, sessions, and notifications",
	RunE:  runTUI,
}

func init() {
	rootCmd.AddCommand(tuiCmd)
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	log, err := logging.New(cfg.LogPath)
	if err != nil {
		return fmt.Errorf("failed to open log: %w", err)
	}
	defer func() {
		_ = log.Sync()
	}()

	client := api.New(cfg.APIBaseURL)

	var notifier store.Notifier
	if cfg.DesktopNotifications {
		notifier = store.DesktopNotifier{}
	}
	st := store.New(client, notifier, log)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	monitor := health.NewMonitor(client, cfg.HealthPollInterval, log.Named("health"))
	monitor.Start(ctx)
	defer monitor.Stop()

	scheduler := commands.NewReminderScheduler(st.Notifications)
	defer scheduler.Stop()

	var poller *telegram.Poller
	if cfg.TelegramConfigured() {
		transport := telegram.NewClient(cfg.TelegramBotToken)
		poller = telegram.NewPoller(transport, st.Notifications, cfg.TelegramChatID,
			cfg.TelegramPollInterval, log.Named("telegram"))
		poller.Start(ctx)
		defer poller.Stop()

		scheduler.SetOutbound(transport, cfg.TelegramChatID)
	}

	model := tui.New(tui.App{
		Store:     st,
		Client:    client,
		Monitor:   monitor,
		Poller:    poller,
		Scheduler: scheduler,
		Version:   versionInfo,
	})

	p := tea.NewProgram(
		model,
		tea.WithAltScreen(),
		tea.WithMouseCellMotion(),
	)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("TUI failed: %w", err)
	}
	return nil
}
