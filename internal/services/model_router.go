package services

import (
	"github.com/sirupsen/logrus"

	"github.com/boardboost/boardboost/internal/config"
	"github.com/boardboost/boardboost/internal/models"
	"github.com/boardboost/boardboost/internal/providers"
)

// ModelRouter resolves which provider and models serve a request. Every
// choice follows the same override chain: session setting, then the
// user's default, then the process-wide default.
type ModelRouter struct {
	registry *providers.Registry
	cfg      *config.Config
	log      *logrus.Logger
}

// NewModelRouter creates a model router.
func NewModelRouter(registry *providers.Registry, cfg *config.Config, log *logrus.Logger) *ModelRouter {
	return &ModelRouter{registry: registry, cfg: cfg, log: log}
}

// ResolveProvider returns the provider serving this session. A name that
// resolves to an unregistered provider logs a warning and falls back to
// the default; nil is returned only when the default itself is missing.
func (r *ModelRouter) ResolveProvider(session *models.Session, user *models.User) providers.Provider {
	name := session.Provider
	if name == "" && user != nil {
		name = user.DefaultProvider
	}
	if name == "" {
		name = r.registry.DefaultID()
	}

	if p := r.registry.Get(name); p != nil {
		return p
	}

	if name != r.registry.DefaultID() {
		r.log.WithField("provider", name).Warn("configured provider not registered, falling back to default")
	}
	return r.registry.Default()
}

// ResolveQueryModel returns the model used for chat completions.
func (r *ModelRouter) ResolveQueryModel(session *models.Session, user *models.User) string {
	if session.QueryModel != "" {
		return session.QueryModel
	}
	if user != nil && user.DefaultQueryModel != "" {
		return user.DefaultQueryModel
	}
	return r.cfg.DefaultModel
}

// ResolveSummaryModel returns the model used for summary generation.
func (r *ModelRouter) ResolveSummaryModel(session *models.Session, user *models.User) string {
	if session.SummaryModel != "" {
		return session.SummaryModel
	}
	if user != nil && user.DefaultSummaryModel != "" {
		return user.DefaultSummaryModel
	}
	if r.cfg.DefaultSummaryModel != "" {
		return r.cfg.DefaultSummaryModel
	}
	return r.cfg.DefaultModel
}
