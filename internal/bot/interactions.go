package bot

import (
	"context"
	"errors"
	"fmt"

	"github.com/slack-go/slack"

	"github.com/example/serier/internal/application"
	"github.com/example/serier/internal/draft"
	"github.com/example/serier/internal/logging"
	"github.com/example/serier/internal/recurrence"
	"github.com/example/serier/internal/slackui"
)

// HandleInteraction routes an interactive payload. Block actions are routed
// on their action ID, dialog submissions on their callback ID. Events with
// no route return ErrUnhandled.
func (b *Bot) HandleInteraction(ctx context.Context, cb slack.InteractionCallback) error {
	switch cb.Type {
	case slack.InteractionTypeBlockActions:
		if len(cb.ActionCallback.BlockActions) == 0 {
			return ErrUnhandled
		}
		return b.handleBlockAction(ctx, cb, cb.ActionCallback.BlockActions[0])
	case slack.InteractionTypeDialogSubmission:
		return b.handleDialogSubmission(ctx, cb)
	default:
		return ErrUnhandled
	}
}

func (b *Bot) handleBlockAction(ctx context.Context, cb slack.InteractionCallback, action *slack.BlockAction) error {
	teamID := cb.Team.ID
	channelID := cb.Container.ChannelID
	messageTS := cb.Container.MessageTs
	key := draft.Key{TeamID: teamID, ChannelID: channelID, UserID: cb.User.ID}
	logging.Default(ctx, b.logger).InfoContext(ctx, "block action",
		"action_id", action.ActionID, "team", teamID, "user", cb.User.ID)

	switch action.ActionID {
	case slackui.ActionCreateNewSeries:
		fromHelp := action.Value == slackui.FromHelpValue
		return b.openCreationMenu(ctx, key, messageTS, fromHelp)

	case slackui.ActionEditTitle:
		d, ok := b.series.Draft(key)
		if !ok {
			return application.ErrNoActiveDraft
		}
		dialog := slackui.TitleDialog(cb.TriggerID, d.Title, messageTS)
		return b.chat.OpenDialog(ctx, teamID, cb.TriggerID, dialog)

	case slackui.ActionStartSeries:
		return b.confirmDraft(ctx, key, messageTS, false)

	case slackui.ActionCompleteUpdate:
		return b.confirmDraft(ctx, key, messageTS, true)

	case slackui.ActionCancelSeries:
		d, ok := b.series.Draft(key)
		b.series.CancelDraft(ctx, key)
		if ok && d.FromHelp {
			return b.chat.UpdateMessage(ctx, teamID, channelID, messageTS, "Serier help", slackui.HelpBlocks())
		}
		return b.chat.DeleteMessage(ctx, teamID, channelID, messageTS)

	case slackui.ActionCancelUpdate:
		b.series.CancelDraft(ctx, key)
		return b.chat.DeleteMessage(ctx, teamID, channelID, messageTS)

	case slackui.ActionDeleteSeries:
		seriesID, err := slackui.ParseSeriesIDValue(action.Value)
		if err != nil {
			return err
		}
		series, err := b.series.GetSeries(ctx, seriesID)
		if err != nil {
			return err
		}
		if err := b.series.DeleteSeries(ctx, seriesID); err != nil {
			return err
		}
		b.series.CancelDraft(ctx, key)
		return b.chat.UpdateMessage(ctx, teamID, channelID, messageTS,
			series.Title+" deleted", slackui.DeleteNotice(series.Title))

	case slackui.ActionSelectSeriesRead:
		seriesID, err := slackui.ParseSeriesIDValue(action.SelectedOption.Value)
		if err != nil {
			return err
		}
		series, err := b.series.GetSeries(ctx, seriesID)
		if err != nil {
			return err
		}
		return b.chat.UpdateMessage(ctx, teamID, channelID, messageTS,
			series.Title+" schedule", slackui.ScheduleBlocks(series))

	case slackui.ActionSelectSeriesUpdate:
		seriesID, err := slackui.ParseSeriesIDValue(action.SelectedOption.Value)
		if err != nil {
			return err
		}
		tz := b.userTimezone(ctx, teamID, cb.User.ID)
		d, err := b.series.BeginEdit(ctx, key, seriesID, messageTS, tz)
		if err != nil {
			return err
		}
		return b.refreshMenu(ctx, key, d)

	case slackui.ActionChangeSessionPresenter:
		sessionID, err := slackui.ParseSessionIDValue(action.Value)
		if err != nil {
			return err
		}
		dialog := slackui.SessionPresenterDialog(cb.TriggerID, messageTS, sessionID)
		return b.chat.OpenDialog(ctx, teamID, cb.TriggerID, dialog)

	case slackui.ActionChangeSessionTopic:
		sessionID, err := slackui.ParseSessionIDValue(action.Value)
		if err != nil {
			return err
		}
		session, err := b.series.Session(ctx, sessionID)
		if err != nil {
			return err
		}
		dialog := slackui.SessionTopicDialog(cb.TriggerID, messageTS, sessionID, session.Topic)
		return b.chat.OpenDialog(ctx, teamID, cb.TriggerID, dialog)

	case slackui.ActionShowCommands:
		return b.chat.UpdateMessage(ctx, teamID, channelID, messageTS, "Serier commands", slackui.CommandsBlocks())

	case slackui.ActionBackToHelp:
		return b.chat.UpdateMessage(ctx, teamID, channelID, messageTS, "Serier help", slackui.HelpBlocks())

	case slackui.ActionPastScheduleOK, slackui.ActionConfigWarningOK, slackui.ActionCreationOK,
		slackui.ActionNoSeriesOK, slackui.ActionDeleteOK, slackui.ActionHideSchedule,
		slackui.ActionCloseHelp, slackui.ActionCommandsListOK:
		return b.chat.DeleteMessage(ctx, teamID, channelID, messageTS)

	case slackui.ActionSelectPresenter:
		return b.updateDraft(ctx, key, func() (*draft.Draft, error) {
			return b.series.SetDraftPresenter(key, action.SelectedUser)
		})

	case slackui.ActionSelectTopicSelection:
		return b.updateDraft(ctx, key, func() (*draft.Draft, error) {
			return b.series.SetDraftTopicSelection(key, action.SelectedOption.Value)
		})

	case slackui.ActionPickDate:
		return b.updateDraft(ctx, key, func() (*draft.Draft, error) {
			return b.series.SetDraftStartDate(key, action.SelectedDate)
		})

	case slackui.ActionSelectTime:
		clock, err := slackui.ParseTimeValue(action.SelectedOption.Value)
		if err != nil {
			return err
		}
		return b.updateDraft(ctx, key, func() (*draft.Draft, error) {
			return b.series.SetDraftStartTime(key, clock)
		})

	case slackui.ActionSelectFrequency:
		return b.updateDraft(ctx, key, func() (*draft.Draft, error) {
			return b.series.SetDraftFrequency(key, action.SelectedOption.Value)
		})

	case slackui.ActionSelectNumSessions:
		count, err := slackui.ParseNumSessionsValue(action.SelectedOption.Value)
		if err != nil {
			return err
		}
		return b.updateDraft(ctx, key, func() (*draft.Draft, error) {
			return b.series.SetDraftNumSessions(key, count)
		})
	}

	return fmt.Errorf("%w: block action %q", ErrUnhandled, action.ActionID)
}

func (b *Bot) handleDialogSubmission(ctx context.Context, cb slack.InteractionCallback) error {
	teamID := cb.Team.ID
	channelID := cb.Channel.ID
	logging.Default(ctx, b.logger).InfoContext(ctx, "dialog submission",
		"callback_id", cb.CallbackID, "team", teamID, "user", cb.User.ID)

	switch cb.CallbackID {
	case slackui.CallbackUpdateTitle:
		key := draft.Key{TeamID: teamID, ChannelID: channelID, UserID: cb.User.ID}
		d, err := b.series.SetDraftTitle(key, cb.Submission[slackui.FieldSeriesTitle])
		if err != nil {
			return err
		}
		return b.refreshMenu(ctx, key, d)

	case slackui.CallbackUpdateSessionPresenter:
		anchorTS, sessionID := slackui.SplitDialogState(cb.State)
		session, err := b.series.SetSessionPresenter(ctx, sessionID, cb.Submission[slackui.FieldSessionPresenter])
		if err != nil {
			return err
		}
		return b.refreshSchedule(ctx, teamID, channelID, anchorTS, session.SeriesID)

	case slackui.CallbackUpdateSessionTopic:
		anchorTS, sessionID := slackui.SplitDialogState(cb.State)
		session, err := b.series.SetSessionTopic(ctx, sessionID, cb.Submission[slackui.FieldSessionTopic])
		if err != nil {
			return err
		}
		return b.refreshSchedule(ctx, teamID, channelID, anchorTS, session.SeriesID)
	}

	return fmt.Errorf("%w: dialog %q", ErrUnhandled, cb.CallbackID)
}

// updateDraft applies a field mutation and re-renders the menu message from
// the updated draft.
func (b *Bot) updateDraft(ctx context.Context, key draft.Key, mutate func() (*draft.Draft, error)) error {
	d, err := mutate()
	if err != nil {
		return err
	}
	return b.refreshMenu(ctx, key, d)
}

func (b *Bot) refreshMenu(ctx context.Context, key draft.Key, d *draft.Draft) error {
	edit := d.SeriesID != ""
	return b.chat.UpdateMessage(ctx, key.TeamID, key.ChannelID, d.AnchorTS,
		"Series configuration", slackui.CreationMenu(d, edit))
}

func (b *Bot) refreshSchedule(ctx context.Context, teamID, channelID, anchorTS, seriesID string) error {
	series, err := b.series.GetSeries(ctx, seriesID)
	if err != nil {
		return err
	}
	return b.chat.UpdateMessage(ctx, teamID, channelID, anchorTS,
		series.Title+" schedule", slackui.ScheduleBlocks(series))
}

// confirmDraft persists the draft. A past start slot or a bad configuration
// is reported as a separate warning message so the menu stays up for
// correction; an incomplete edit draft is re-rendered as-is.
func (b *Bot) confirmDraft(ctx context.Context, key draft.Key, messageTS string, edit bool) error {
	series, err := b.series.Confirm(ctx, key)
	var cfgErr *application.ConfigurationError
	switch {
	case errors.Is(err, application.ErrPastSchedule):
		_, perr := b.chat.PostMessage(ctx, key.TeamID, key.ChannelID,
			"That start time is already in the past.", slackui.PastScheduleWarning())
		return perr
	case errors.As(err, &cfgErr):
		text := configWarningText(cfgErr)
		_, perr := b.chat.PostMessage(ctx, key.TeamID, key.ChannelID,
			text, slackui.ConfigurationWarning(text))
		return perr
	case errors.Is(err, application.ErrIncompleteDraft):
		if d, ok := b.series.Draft(key); ok {
			return b.refreshMenu(ctx, key, d)
		}
		return nil
	case err != nil:
		return err
	}

	if edit {
		return b.chat.UpdateMessage(ctx, key.TeamID, key.ChannelID, messageTS,
			series.Title+" schedule", slackui.ScheduleBlocks(series))
	}
	return b.chat.UpdateMessage(ctx, key.TeamID, key.ChannelID, messageTS,
		series.Title+" scheduled", slackui.CreationSuccess(series))
}

func configWarningText(err *application.ConfigurationError) string {
	if errors.Is(err, recurrence.ErrWeekendStart) {
		return "An every-weekday series has to start on a weekday. Pick a Monday through Friday start date, then try again."
	}
	return "That configuration can't be scheduled. Check the date, time and frequency, then try again."
}
