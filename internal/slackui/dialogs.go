package slackui

import "github.com/slack-go/slack"

// Dialog element names.
const (
	FieldSeriesTitle      = "series_title"
	FieldSessionPresenter = "session_presenter"
	FieldSessionTopic     = "session_topic"
)

// TitleDialog builds the dialog for renaming a series draft. The state
// carries the timestamp of the menu message so submission can refresh it.
func TitleDialog(triggerID, currentTitle, anchorTS string) slack.Dialog {
	title := slack.NewTextInput(FieldSeriesTitle, "Series Title", currentTitle)
	return slack.Dialog{
		TriggerID:   triggerID,
		CallbackID:  CallbackUpdateTitle,
		Title:       "Edit Series Title",
		SubmitLabel: "Save",
		State:       anchorTS,
		Elements:    []slack.DialogElement{title},
	}
}

// SessionPresenterDialog builds the dialog for reassigning one session's
// presenter. The state carries both the schedule message timestamp and the
// session's persisted identity, comma separated.
func SessionPresenterDialog(triggerID, anchorTS, sessionID string) slack.Dialog {
	presenter := slack.DialogInputSelect{
		DialogInput: slack.DialogInput{
			Type:  slack.InputTypeSelect,
			Label: "Presenter",
			Name:  FieldSessionPresenter,
		},
		DataSource: slack.DialogDataSourceUsers,
	}
	return slack.Dialog{
		TriggerID:   triggerID,
		CallbackID:  CallbackUpdateSessionPresenter,
		Title:       "Change Presenter",
		SubmitLabel: "Save",
		State:       anchorTS + "," + sessionID,
		Elements:    []slack.DialogElement{presenter},
	}
}

// SessionTopicDialog builds the dialog for changing one session's topic.
func SessionTopicDialog(triggerID, anchorTS, sessionID, currentTopic string) slack.Dialog {
	topic := slack.NewTextInput(FieldSessionTopic, "Topic", currentTopic)
	return slack.Dialog{
		TriggerID:   triggerID,
		CallbackID:  CallbackUpdateSessionTopic,
		Title:       "Change Topic",
		SubmitLabel: "Save",
		State:       anchorTS + "," + sessionID,
		Elements:    []slack.DialogElement{topic},
	}
}

// SplitDialogState splits a "timestamp,sessionID" dialog state back into its
// parts. The second value is empty when the state carried only a timestamp.
func SplitDialogState(state string) (anchorTS, sessionID string) {
	for i := 0; i < len(state); i++ {
		if state[i] == ',' {
			return state[:i], state[i+1:]
		}
	}
	return state, ""
}
