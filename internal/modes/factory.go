package modes

import (
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/models"
)

// NewHandler returns the mode handler for the session's type. An
// unrecognized type logs a warning and falls back to the base handler so
// the conversation can still proceed with generic behavior; constructing
// a handler never fails.
func NewHandler(session *models.Session, state ConversationState, log *logrus.Logger) Handler {
	base := BaseHandler{Session: session, State: state}

	switch session.SessionType {
	case models.SessionTypeChat:
		return &ChatHandler{BaseHandler: base}
	case models.SessionTypeWidget:
		return &WidgetHandler{BaseHandler: base}
	case models.SessionTypeLibrary:
		return &LibraryHandler{BaseHandler: base}
	case models.SessionTypeTopic:
		return &TopicHandler{BaseHandler: base}
	default:
		log.WithField("session_type", session.SessionType).Warn("unknown session type, using base handler")
		return &base
	}
}

// WelcomeMessage returns the greeting for a session type without needing
// a full session.
func WelcomeMessage(sessionType string) string {
	switch sessionType {
	case models.SessionTypeChat:
		return (&ChatHandler{}).WelcomeMessage()
	case models.SessionTypeWidget:
		return (&WidgetHandler{}).WelcomeMessage()
	case models.SessionTypeLibrary:
		return (&LibraryHandler{}).WelcomeMessage()
	case models.SessionTypeTopic:
		return (&TopicHandler{}).WelcomeMessage()
	default:
		return (&BaseHandler{}).WelcomeMessage()
	}
}
