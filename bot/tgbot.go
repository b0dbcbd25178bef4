package bot

import (
	"PerfDash/entity"
	"PerfDash/internal/lib/sl"
	"context"
	"fmt"
	tgbotapi "github.com/PaulSonOfLars/gotgbot/v2"
	"github.com/PaulSonOfLars/gotgbot/v2/ext"
	"github.com/PaulSonOfLars/gotgbot/v2/ext/handlers"
	"log/slog"
	"strings"
	"time"
)

// Reporter answers the admin commands.
type Reporter interface {
	Performance(scope entity.Scope) (*entity.Report, error)
	RequestRefresh(ctx context.Context, username string) error
}

const refreshTimeout = 2 * time.Minute

type TgBot struct {
	log         *slog.Logger
	api         *tgbotapi.Bot
	botUsername string
	adminId     int64
	reporter    Reporter
}

func NewTgBot(botName, apiKey string, adminId int64, log *slog.Logger) (*TgBot, error) {
	tgBot := &TgBot{
		log:         log.With(sl.Module("tgbot")),
		adminId:     adminId,
		botUsername: botName,
	}

	api, err := tgbotapi.NewBot(apiKey, nil)
	if err != nil {
		return nil, fmt.Errorf("creating api instance: %v", err)
	}
	tgBot.api = api

	return tgBot, nil
}

func (t *TgBot) SetReporter(reporter Reporter) {
	t.reporter = reporter
}

func (t *TgBot) Start() error {
	dispatcher := ext.NewDispatcher(&ext.DispatcherOpts{
		// If an error is returned by a handler, log it and continue going.
		Error: func(b *tgbotapi.Bot, ctx *ext.Context, err error) ext.DispatcherAction {
			t.log.Error("handling update", sl.Err(err))
			return ext.DispatcherActionNoop
		},
		MaxRoutines: ext.DefaultMaxRoutines,
	})
	updater := ext.NewUpdater(dispatcher, nil)

	dispatcher.AddHandler(handlers.NewCommand("status", t.handleStatus))
	dispatcher.AddHandler(handlers.NewCommand("refresh", t.handleRefresh))

	err := updater.StartPolling(t.api, &ext.PollingOpts{
		DropPendingUpdates: true,
		GetUpdatesOpts: &tgbotapi.GetUpdatesOpts{
			Timeout: 9,
			RequestOpts: &tgbotapi.RequestOpts{
				Timeout: time.Second * 10,
			},
		},
	})
	if err != nil {
		return fmt.Errorf("failed to start polling: %w", err)
	}

	t.log.Info("admin bot started", slog.String("username", t.botUsername))

	// Idle, to keep updates coming in, and avoid bot stopping.
	updater.Idle()

	return nil
}

// handleStatus answers /status [management] with the scope KPIs and alerts.
func (t *TgBot) handleStatus(_ *tgbotapi.Bot, ctx *ext.Context) error {
	if !t.isAdmin(ctx) || t.reporter == nil {
		return nil
	}

	scope := entity.Scope{Management: commandArg(ctx.EffectiveMessage.Text)}
	report, err := t.reporter.Performance(scope)
	if err != nil {
		t.plainResponse(ctx.EffectiveChat.Id, fmt.Sprintf("Report not available: %v", err))
		return nil
	}
	t.plainResponse(ctx.EffectiveChat.Id, formatStatus(report))
	return nil
}

func (t *TgBot) handleRefresh(_ *tgbotapi.Bot, ctx *ext.Context) error {
	if !t.isAdmin(ctx) || t.reporter == nil {
		return nil
	}

	username := ctx.EffectiveUser.Username
	if username == "" {
		username = fmt.Sprintf("tg:%d", ctx.EffectiveUser.Id)
	}
	refreshCtx, cancel := context.WithTimeout(context.Background(), refreshTimeout)
	defer cancel()
	if err := t.reporter.RequestRefresh(refreshCtx, username); err != nil {
		t.plainResponse(ctx.EffectiveChat.Id, fmt.Sprintf("Refresh failed: %v", err))
		return nil
	}
	t.plainResponse(ctx.EffectiveChat.Id, "Performance data refreshed.")
	return nil
}

func (t *TgBot) isAdmin(ctx *ext.Context) bool {
	if ctx.EffectiveUser == nil || ctx.EffectiveUser.Id != t.adminId {
		if ctx.EffectiveUser != nil {
			t.log.With(slog.Int64("user_id", ctx.EffectiveUser.Id)).Warn("command from non-admin user")
		}
		return false
	}
	return true
}

func (t *TgBot) SendMessage(msg string) {
	t.plainResponse(t.adminId, msg)
}

func (t *TgBot) plainResponse(chatId int64, text string) {
	sanitized := sanitize(text)

	if sanitized != "" {
		_, err := t.api.SendMessage(chatId, sanitized, &tgbotapi.SendMessageOpts{
			ParseMode: "MarkdownV2",
		})
		if err != nil {
			t.log.With(
				slog.Int64("id", chatId),
			).Debug("sending message", sl.Err(err))
			_, err = t.api.SendMessage(chatId, text, &tgbotapi.SendMessageOpts{})
			if err != nil {
				t.log.With(
					slog.Int64("id", chatId),
				).Debug("sending safe message", sl.Err(err))
			}
		}
	} else {
		t.log.With(
			slog.Int64("id", chatId),
		).Debug("empty message")
	}
}

// commandArg returns the text after the command word.
func commandArg(text string) string {
	fields := strings.Fields(text)
	if len(fields) < 2 {
		return ""
	}
	return strings.Join(fields[1:], " ")
}

func formatStatus(report *entity.Report) string {
	s := report.Summary
	scope := report.Scope.Management
	if report.Scope.AllManagements() {
		scope = "network"
	}

	var b strings.Builder
	fmt.Fprintf(&b, "*Performance %s*\n", scope)
	fmt.Fprintf(&b, "Consultants active: %d of %d (%d on vacation)\n", s.ActiveConsultants, s.TotalConsultants, s.VacationConsultants)
	fmt.Fprintf(&b, "Week visits: %d, completed %d%%, cancelled %d%%\n", s.WeekTotal, s.WeekCompletionRate, s.WeekCancellationRate)
	fmt.Fprintf(&b, "Schools without visit: %d of %d\n", s.SchoolsWithoutRecentVisit, s.TotalSchools)
	fmt.Fprintf(&b, "Educator access 7d: %d%% (%+d)\n", s.AccessRate7d, s.AccessDeltaRate)
	for _, alert := range report.Alerts {
		fmt.Fprintf(&b, "- %s\n", alert)
	}
	if report.Warning != "" {
		fmt.Fprintf(&b, "%s: %s\n", report.Warning, strings.Join(report.FailedSources, ", "))
	}
	return strings.TrimSpace(b.String())
}

// sanitize escapes the MarkdownV2 reserved characters, leaving * for bold.
func sanitize(input string) string {
	const reservedChars = "\\`_{}#+-.!|()[]=>~"

	var sanitized strings.Builder
	for _, char := range input {
		if strings.ContainsRune(reservedChars, char) {
			sanitized.WriteRune('\\')
		}
		sanitized.WriteRune(char)
	}

	return sanitized.String()
}
