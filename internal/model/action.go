package model

import "fmt"

// Action enumerates the kinds of events that appear in the activity feed.
type Action string

const (
	ActionRegisterUser       Action = "REGISTER_USER"
	ActionCreateConversation Action = "CREATE_CONVERSATION"
	ActionSendMessage        Action = "SEND_MESSAGE"
	ActionJoinConversation   Action = "JOIN_CONVERSATION"
	ActionLeaveConversation  Action = "LEAVE_CONVERSATION"
)

// ParseAction maps a stored name back to an Action.
func ParseAction(s string) (Action, error) {
	switch a := Action(s); a {
	case ActionRegisterUser, ActionCreateConversation, ActionSendMessage,
		ActionJoinConversation, ActionLeaveConversation:
		return a, nil
	default:
		return "", fmt.Errorf("unknown action %q", s)
	}
}

func (a Action) String() string { return string(a) }
