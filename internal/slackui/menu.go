package slackui

import (
	"fmt"
	"strings"

	"github.com/slack-go/slack"

	"github.com/example/serier/internal/draft"
	"github.com/example/serier/internal/recurrence"
)

const notSelected = "Not Selected"

var menuFrequencies = []recurrence.Frequency{
	recurrence.FrequencyDaily,
	recurrence.FrequencyEveryWeekday,
	recurrence.FrequencyWeekly,
	recurrence.FrequencyBiweekly,
	recurrence.FrequencyEvery3Weeks,
	recurrence.FrequencyMonthly28,
}

// CreationMenu renders the configuration menu for a draft. The same surface
// serves creation and editing; edit mode swaps the confirm control for update
// and delete controls. Every field update re-renders the whole menu from the
// draft, so the message always shows current state.
func CreationMenu(d *draft.Draft, edit bool) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainText("Series Configuration")),
		titleSection(d),
		selectSection("Who presents by default?", presenterSelect(d)),
		selectSection("How are topics chosen?", topicSelect(d)),
		selectSection("When is the first session?", datePicker(d)),
		selectSection("What time does it start?", timeSelect(d)),
		selectSection("How often does it repeat?", frequencySelect(d)),
		selectSection("How many sessions?", numSessionsSelect(d)),
		slack.NewDividerBlock(),
		summaryContext(d),
		controlActions(d, edit),
	}
	return blocks
}

func titleSection(d *draft.Draft) *slack.SectionBlock {
	editButton := slack.NewButtonBlockElement(ActionEditTitle, "edit", plainText("Edit Title"))
	return slack.NewSectionBlock(
		markdownText(fmt.Sprintf("*%s*", d.Title)),
		nil,
		slack.NewAccessory(editButton),
	)
}

func selectSection(prompt string, element slack.BlockElement) *slack.SectionBlock {
	return slack.NewSectionBlock(markdownText(prompt), nil, slack.NewAccessory(element))
}

func presenterSelect(d *draft.Draft) *slack.SelectBlockElement {
	element := slack.NewOptionsSelectBlockElement(
		slack.OptTypeUser, plainText("Select a presenter"), ActionSelectPresenter)
	element.InitialUser = d.Presenter
	return element
}

func topicSelect(d *draft.Draft) *slack.SelectBlockElement {
	options := []*slack.OptionBlockObject{
		slack.NewOptionBlockObject(draft.TopicPreDetermined.Value(), plainText(draft.TopicPreDetermined.String()), nil),
		slack.NewOptionBlockObject(draft.TopicPresenterChoice.Value(), plainText(draft.TopicPresenterChoice.String()), nil),
	}
	element := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic, plainText("Select topic policy"), ActionSelectTopicSelection, options...)
	if d.TopicSelection != draft.TopicUnset {
		element.InitialOption = slack.NewOptionBlockObject(
			d.TopicSelection.Value(), plainText(d.TopicSelection.String()), nil)
	}
	return element
}

func datePicker(d *draft.Draft) *slack.DatePickerBlockElement {
	element := slack.NewDatePickerBlockElement(ActionPickDate)
	element.InitialDate = d.StartDate
	return element
}

func timeSelect(d *draft.Draft) *slack.SelectBlockElement {
	options := make([]*slack.OptionBlockObject, 0, 24*4)
	for hour := 0; hour < 24; hour++ {
		for minute := 0; minute < 60; minute += 15 {
			clock := fmt.Sprintf("%02d:%02d", hour, minute)
			options = append(options, timeOption(clock))
		}
	}
	element := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic, plainText("Select a time"), ActionSelectTime, options...)
	if d.StartTime != "" {
		element.InitialOption = timeOption(d.StartTime)
	}
	return element
}

func timeOption(clock string) *slack.OptionBlockObject {
	value := timePrefix + strings.Replace(clock, ":", "", 1)
	return slack.NewOptionBlockObject(value, plainText(clock), nil)
}

func frequencySelect(d *draft.Draft) *slack.SelectBlockElement {
	options := make([]*slack.OptionBlockObject, 0, len(menuFrequencies))
	for _, freq := range menuFrequencies {
		options = append(options, slack.NewOptionBlockObject(freq.Value(), plainText(freq.String()), nil))
	}
	element := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic, plainText("Select frequency"), ActionSelectFrequency, options...)
	if d.Frequency != recurrence.FrequencyUnset {
		element.InitialOption = slack.NewOptionBlockObject(
			d.Frequency.Value(), plainText(d.Frequency.String()), nil)
	}
	return element
}

func numSessionsSelect(d *draft.Draft) *slack.SelectBlockElement {
	options := make([]*slack.OptionBlockObject, 0, 20)
	for n := 1; n <= 20; n++ {
		value := fmt.Sprintf("%s%d", numSessionsPrefix, n)
		options = append(options, slack.NewOptionBlockObject(value, plainText(fmt.Sprintf("%d", n)), nil))
	}
	element := slack.NewOptionsSelectBlockElement(
		slack.OptTypeStatic, plainText("Select count"), ActionSelectNumSessions, options...)
	if d.NumSessions > 0 {
		value := fmt.Sprintf("%s%d", numSessionsPrefix, d.NumSessions)
		element.InitialOption = slack.NewOptionBlockObject(value, plainText(fmt.Sprintf("%d", d.NumSessions)), nil)
	}
	return element
}

func summaryContext(d *draft.Draft) *slack.ContextBlock {
	presenter := notSelected
	if d.Presenter != "" {
		presenter = mention(d.Presenter)
	}
	startTime := notSelected
	if d.StartTime != "" {
		startTime = d.StartTime
	}
	lastSession := "N/A"
	if preview, ok := d.EndDatePreview(); ok {
		lastSession = preview
	}
	lines := []string{
		"*Title*: " + d.Title,
		"*Presenter*: " + presenter,
		"*Topic Selection*: " + d.TopicSelection.String(),
		"*First Session*: " + d.StartDate,
		"*Time*: " + startTime,
		"*Frequency*: " + d.Frequency.String(),
		"*Last Session*: " + lastSession,
	}
	elements := make([]slack.MixedElement, 0, len(lines))
	for _, line := range lines {
		elements = append(elements, markdownText(line))
	}
	return slack.NewContextBlock("series_summary", elements...)
}

func controlActions(d *draft.Draft, edit bool) *slack.ActionBlock {
	var elements []slack.BlockElement
	if edit {
		update := slack.NewButtonBlockElement(ActionCompleteUpdate, "update", plainText("Update Series"))
		update.Style = slack.StylePrimary
		del := slack.NewButtonBlockElement(ActionDeleteSeries, seriesIDValue(d.SeriesID), plainText("Delete Series"))
		del.Style = slack.StyleDanger
		cancel := slack.NewButtonBlockElement(ActionCancelUpdate, "cancel", plainText("Cancel"))
		elements = []slack.BlockElement{update, del, cancel}
	} else {
		if d.IsComplete() {
			start := slack.NewButtonBlockElement(ActionStartSeries, "start", plainText("Start Series"))
			start.Style = slack.StylePrimary
			elements = append(elements, start)
		}
		cancel := slack.NewButtonBlockElement(ActionCancelSeries, "cancel", plainText("Cancel"))
		elements = append(elements, cancel)
	}
	return slack.NewActionBlock("series_controls", elements...)
}

func plainText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.PlainTextType, text, true, false)
}

func markdownText(text string) *slack.TextBlockObject {
	return slack.NewTextBlockObject(slack.MarkdownType, text, false, false)
}

func mention(userID string) string {
	return "<@" + userID + ">"
}
