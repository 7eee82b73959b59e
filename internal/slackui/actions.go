// Package slackui builds the Block Kit surfaces and dialogs the bot posts.
// Builders are pure: they render whatever state they are handed and never
// touch storage or the Slack API, so every surface can be asserted on as
// plain block structures.
package slackui

// Action IDs of interactive elements. The interaction handler routes block
// actions on these values.
const (
	ActionCreateNewSeries      = "create_new_series"
	ActionSelectPresenter      = "select_series_presenter"
	ActionSelectTopicSelection = "select_topic_selection"
	ActionPickDate             = "pick_series_date"
	ActionSelectTime           = "select_series_time"
	ActionSelectFrequency      = "select_series_frequency"
	ActionSelectNumSessions    = "select_series_numsessions"
	ActionEditTitle            = "edit_series_title"
	ActionStartSeries          = "start_series"
	ActionCancelSeries         = "cancel_series"
	ActionCompleteUpdate       = "complete_update_series"
	ActionDeleteSeries         = "delete_series"
	ActionCancelUpdate         = "cancel_update_series"

	ActionSelectSeriesRead   = "select_series_read"
	ActionSelectSeriesUpdate = "select_series_update"

	ActionChangeSessionPresenter = "change_session_presenter"
	ActionChangeSessionTopic     = "change_session_topic"
	ActionHideSchedule           = "hide_schedule_message"

	ActionPastScheduleOK  = "past_schedule_ok"
	ActionConfigWarningOK = "config_warning_ok"
	ActionCreationOK      = "series_creation_ok"
	ActionNoSeriesOK      = "no_series_read_ok"
	ActionDeleteOK        = "delete_series_ok"
	ActionShowCommands    = "show_app_commands"
	ActionBackToHelp      = "back_to_help"
	ActionCloseHelp       = "close_help_message"
	ActionCommandsListOK  = "commands_list_ok"
)

// Callback IDs of dialog submissions.
const (
	CallbackUpdateTitle            = "update_series_title"
	CallbackUpdateSessionPresenter = "update_session_presenter"
	CallbackUpdateSessionTopic     = "update_session_topic"
)
