package slackui

import (
	"fmt"

	"github.com/slack-go/slack"

	"github.com/example/serier/internal/application"
)

// ScheduleBlocks renders the full session schedule of a series. Session
// instants use Slack date formatting so every reader sees them in their own
// timezone. The ordinal shown next to each session is its position in the
// schedule; the buttons carry the session's persisted identity.
func ScheduleBlocks(series application.Series) []slack.Block {
	blocks := []slack.Block{
		slack.NewHeaderBlock(plainText(series.Title)),
		slack.NewSectionBlock(markdownText(fmt.Sprintf(
			"%d sessions, %s.", series.NumSessions, series.Frequency.String())), nil, nil),
		slack.NewDividerBlock(),
	}
	for i, session := range series.Sessions {
		blocks = append(blocks, sessionSection(i+1, session), sessionActions(session))
	}
	hide := slack.NewButtonBlockElement(ActionHideSchedule, "hide", plainText("Hide Schedule"))
	blocks = append(blocks,
		slack.NewDividerBlock(),
		slack.NewActionBlock("schedule_controls", hide),
	)
	return blocks
}

func sessionSection(ordinal int, session application.Session) *slack.SectionBlock {
	epoch := session.StartsAt.Unix()
	fallback := session.StartsAt.UTC().Format("Jan 2, 2006 at 15:04 MST")
	text := fmt.Sprintf(
		"*%d.* <!date^%d^{date_long_pretty} at {time}|%s>\n*Presenter*: %s\n*Topic*: %s",
		ordinal, epoch, fallback, mention(session.Presenter), session.Topic)
	return slack.NewSectionBlock(markdownText(text), nil, nil)
}

func sessionActions(session application.Session) *slack.ActionBlock {
	presenter := slack.NewButtonBlockElement(
		ActionChangeSessionPresenter, sessionIDValue(session.ID), plainText("Change Presenter"))
	topic := slack.NewButtonBlockElement(
		ActionChangeSessionTopic, sessionIDValue(session.ID), plainText("Change Topic"))
	return slack.NewActionBlock("session_actions_"+session.ID, presenter, topic)
}
