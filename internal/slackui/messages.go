package slackui

import (
	"github.com/slack-go/slack"

	"github.com/example/serier/internal/application"
)

// GreetingText is the direct-message reply to a greeting.
const GreetingText = "Hi! Welcome to Serier :wave: I keep your recurring meeting series on schedule. Say `help` or use `/serier help` to see what I can do :books:"

// DefaultResponseText is the reply to messages the bot does not understand.
const DefaultResponseText = "Sorry, I didn't catch that. Try `help` to see what I can do."

// ReadPicker renders a picker over the user's series for the read flow.
func ReadPicker(refs []application.SeriesRef) []slack.Block {
	return seriesPicker("Which series would you like to look at?", ActionSelectSeriesRead, refs)
}

// UpdatePicker renders a picker over the user's series for the update flow.
func UpdatePicker(refs []application.SeriesRef) []slack.Block {
	return seriesPicker("Which series would you like to change?", ActionSelectSeriesUpdate, refs)
}

func seriesPicker(prompt, actionID string, refs []application.SeriesRef) []slack.Block {
	options := make([]*slack.OptionBlockObject, 0, len(refs))
	for _, ref := range refs {
		options = append(options, slack.NewOptionBlockObject(
			seriesIDValue(ref.ID), plainText(ref.Title), nil))
	}
	picker := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic, plainText("Select a series"), actionID, options...)
	return []slack.Block{
		slack.NewSectionBlock(markdownText(prompt), nil, slack.NewAccessory(picker)),
	}
}

// PastScheduleWarning tells the user their start slot has already passed.
func PastScheduleWarning() []slack.Block {
	return notice(
		"That start time is already in the past. Pick a future date and time, then try again.",
		ActionPastScheduleOK)
}

// ConfigurationWarning tells the user why their configuration could not be
// scheduled, leaving the menu in place for correction.
func ConfigurationWarning(text string) []slack.Block {
	return notice(text, ActionConfigWarningOK)
}

// CreationSuccess confirms that a series was scheduled.
func CreationSuccess(series application.Series) []slack.Block {
	return notice(
		"*"+series.Title+"* is on the calendar :tada: I'll keep the schedule here whenever you need it.",
		ActionCreationOK)
}

// NoSeriesNotice tells the user they have no series to read or change.
func NoSeriesNotice() []slack.Block {
	return notice(
		"You don't have any series yet. Start one with `/serier create`.",
		ActionNoSeriesOK)
}

// DeleteNotice confirms that a series and its sessions were removed.
func DeleteNotice(title string) []slack.Block {
	return notice(
		"*"+title+"* and all of its sessions have been deleted.",
		ActionDeleteOK)
}

func notice(text, okActionID string) []slack.Block {
	ok := slack.NewButtonBlockElement(okActionID, "ok", plainText("Got it"))
	return []slack.Block{
		slack.NewSectionBlock(markdownText(text), nil, nil),
		slack.NewActionBlock("notice_controls", ok),
	}
}

// HelpBlocks renders the top-level help surface.
func HelpBlocks() []slack.Block {
	commands := slack.NewButtonBlockElement(ActionShowCommands, "commands", plainText("Show Commands"))
	commands.Style = slack.StylePrimary
	create := slack.NewButtonBlockElement(ActionCreateNewSeries, FromHelpValue, plainText("Create a Series"))
	dismiss := slack.NewButtonBlockElement(ActionCloseHelp, "close", plainText("Close"))
	return []slack.Block{
		slack.NewHeaderBlock(plainText("Serier Help")),
		slack.NewSectionBlock(markdownText(
			"I schedule recurring meeting series for your team: pick a presenter, a topic policy, a start slot and a cadence, and I'll lay out every session."), nil, nil),
		slack.NewActionBlock("help_controls", commands, create, dismiss),
	}
}

// CommandsBlocks renders the slash-command reference.
func CommandsBlocks() []slack.Block {
	lines := []string{
		"`/serier create`: start configuring a new series",
		"`/serier read`: show the schedule of one of your series",
		"`/serier update`: change or delete one of your series",
		"`/serier help`: show this help",
	}
	back := slack.NewButtonBlockElement(ActionBackToHelp, "back", plainText("Back"))
	ok := slack.NewButtonBlockElement(ActionCommandsListOK, "ok", plainText("Got it"))
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainText("Commands")),
	}
	for _, line := range lines {
		blocks = append(blocks, slack.NewSectionBlock(markdownText(line), nil, nil))
	}
	blocks = append(blocks, slack.NewActionBlock("commands_controls", back, ok))
	return blocks
}
