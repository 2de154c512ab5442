// internal/app/system/indexes/indexes.go
package indexes

import (
	"context"
	"errors"
	"strings"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
	"go.uber.org/zap"
)

/*
EnsureAll is called at startup. Each ensure* function is idempotent.
We aggregate errors so any problem is visible and startup can fail fast.

The unique indexes here carry real invariants:
  - one user per username (case-insensitive)
  - one group per name (case-insensitive)
  - one membership per (group, user)
  - at most one pending join request per (group, user)
*/
func EnsureAll(ctx context.Context, db *mongo.Database) error {
	var problems []string

	if err := ensureUsers(ctx, db); err != nil {
		problems = append(problems, "users: "+err.Error())
	}
	if err := ensureGroups(ctx, db); err != nil {
		problems = append(problems, "groups: "+err.Error())
	}
	if err := ensureGroupMemberships(ctx, db); err != nil {
		problems = append(problems, "group_memberships: "+err.Error())
	}
	if err := ensureJoinRequests(ctx, db); err != nil {
		problems = append(problems, "join_requests: "+err.Error())
	}
	if err := ensureStudySessions(ctx, db); err != nil {
		problems = append(problems, "study_sessions: "+err.Error())
	}
	if err := ensureSessionTasks(ctx, db); err != nil {
		problems = append(problems, "session_tasks: "+err.Error())
	}

	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

/* ------------------------- per-collection sets --------------------------- */

func ensureUsers(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("users")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "username_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_users_username_ci"),
		},
	})
}

func ensureGroups(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("groups")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Group names are unique across the system, compared case-insensitively.
		{
			Keys:    bson.D{{Key: "name_ci", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_groups_name_ci"),
		},
		{
			Keys:    bson.D{{Key: "owner_id", Value: 1}},
			Options: options.Index().SetName("idx_groups_owner"),
		},
	})
}

func ensureGroupMemberships(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("group_memberships")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Uniqueness: exactly one membership per (group, user) — role is
		// scalar; update the doc to change role.
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_gm_group_user"),
		},
		// Fast: list a user's groups.
		{
			Keys:    bson.D{{Key: "user_id", Value: 1}},
			Options: options.Index().SetName("idx_gm_user"),
		},
	})
}

func ensureJoinRequests(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("join_requests")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// At most one *pending* request per (group, user); resolved
		// requests are kept as history, so the constraint is partial.
		{
			Keys: bson.D{{Key: "group_id", Value: 1}, {Key: "user_id", Value: 1}},
			Options: options.Index().
				SetUnique(true).
				SetName("uniq_jr_pending_group_user").
				SetPartialFilterExpression(bson.M{"status": "pending"}),
		},
		// Public token lookup (ref is in notification emails).
		{
			Keys:    bson.D{{Key: "ref", Value: 1}},
			Options: options.Index().SetUnique(true).SetName("uniq_jr_ref"),
		},
		// Fast: admin views of a group's request queue.
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "status", Value: 1}},
			Options: options.Index().SetName("idx_jr_group_status"),
		},
	})
}

func ensureStudySessions(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("study_sessions")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		{
			Keys:    bson.D{{Key: "group_id", Value: 1}, {Key: "start_time", Value: 1}},
			Options: options.Index().SetName("idx_ss_group_start"),
		},
		{
			Keys:    bson.D{{Key: "participants", Value: 1}},
			Options: options.Index().SetName("idx_ss_participants"),
		},
		// The reaper scans by end time.
		{
			Keys:    bson.D{{Key: "end_time", Value: 1}},
			Options: options.Index().SetName("idx_ss_end"),
		},
	})
}

func ensureSessionTasks(ctx context.Context, db *mongo.Database) error {
	c := db.Collection("session_tasks")
	return ensureIndexSet(ctx, c, []mongo.IndexModel{
		// Cascade deletes and per-session listings key on session_id.
		{
			Keys:    bson.D{{Key: "session_id", Value: 1}},
			Options: options.Index().SetName("idx_st_session"),
		},
		{
			Keys:    bson.D{{Key: "assignee_id", Value: 1}, {Key: "deadline", Value: 1}},
			Options: options.Index().SetName("idx_st_assignee_deadline"),
		},
	})
}

/* -------------------------------------------------------------------------- */
/* Core helper: reconcile a set of desired indexes for one collection         */
/* -------------------------------------------------------------------------- */

// Mongo/DocDB sometimes returns IndexOptionsConflict when an index with the
// same keys already exists under a different name (or options differ).
func isOptionsConflictErr(err error) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), "IndexOptionsConflict")
}

// ensureIndexSet creates each desired index, tolerating the cases that mean
// "already there": an exact duplicate is a silent success, and an options
// conflict is logged and skipped so startup does not flap on legacy names.
func ensureIndexSet(ctx context.Context, c *mongo.Collection, desired []mongo.IndexModel) error {
	var problems []string
	for _, model := range desired {
		if _, err := c.Indexes().CreateOne(ctx, model); err != nil {
			if isOptionsConflictErr(err) {
				zap.L().Warn("index options conflict; leaving existing index in place",
					zap.String("collection", c.Name()),
					zap.String("index", indexName(model)),
					zap.Error(err))
				continue
			}
			problems = append(problems, indexName(model)+": "+err.Error())
		}
	}
	if len(problems) > 0 {
		return errors.New(strings.Join(problems, "; "))
	}
	return nil
}

func indexName(model mongo.IndexModel) string {
	if model.Options != nil && model.Options.Name != nil {
		return *model.Options.Name
	}
	return "(unnamed)"
}
