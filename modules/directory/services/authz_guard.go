package services

import (
	"context"

	"github.com/jacksonlee411/hcdash/pkg/authz"
	"github.com/jacksonlee411/hcdash/pkg/session"
)

var (
	ProfilesAuthzObject  = authz.ObjectName("directory", "profiles")
	AnalyticsAuthzObject = authz.ObjectName("directory", "analytics")
)

const (
	ActionList    = "list"
	ActionViewOwn = "view_own"
	ActionView    = "view"
)

func (s *DirectoryService) authorize(ctx context.Context, sess session.Session, object, action string) error {
	req := authz.NewRequest(authz.SubjectForRole(string(sess.Role)), object, action)
	return s.authorizer.Authorize(ctx, req)
}

// AuthorizeLive checks that sess may subscribe to live directory updates,
// which expose the same data as listing.
func (s *DirectoryService) AuthorizeLive(ctx context.Context, sess session.Session) error {
	return s.authorize(ctx, sess, ProfilesAuthzObject, ActionList)
}
