// internal/app/system/txn/txn.go

// Package txn runs multi-document write sequences inside a MongoDB
// transaction when the deployment supports one, and falls back to plain
// sequential writes when it does not (standalone mongod, some DocumentDB
// configurations).
//
// The engines use a Runner for compound operations that must be
// all-or-nothing: approve-join-request + insert-membership, delete-tasks +
// delete-session, delete-memberships + delete-requests + delete-group.
// On deployments without transaction support the per-entity key locks and
// the stores' compare-and-swap filters still prevent double-processing;
// the fallback only loses rollback of partial failures, which is the best
// a single mongod offers.
package txn

import (
	"context"
	"strings"

	"go.mongodb.org/mongo-driver/mongo"
)

// Runner executes functions transactionally against one Mongo client.
type Runner struct {
	client *mongo.Client
}

// NewRunner wraps client for transactional execution.
func NewRunner(client *mongo.Client) *Runner {
	return &Runner{client: client}
}

// Run executes fn inside a transaction. The context passed to fn carries
// the mongo session, so any store call made with it joins the
// transaction. If the server does not support transactions, fn runs once
// with the original context instead.
func (r *Runner) Run(ctx context.Context, fn func(ctx context.Context) error) error {
	sess, err := r.client.StartSession()
	if err != nil {
		if IsNotSupported(err) {
			return fn(ctx)
		}
		return err
	}
	defer sess.EndSession(ctx)

	_, err = sess.WithTransaction(ctx, func(sc mongo.SessionContext) (any, error) {
		return nil, fn(sc)
	})
	if err != nil && IsNotSupported(err) {
		return fn(ctx)
	}
	return err
}

// Transaction-unsupported server error codes:
//
//	20  IllegalOperation (transaction numbers require a replica set)
//	51  no such command / sessions unavailable
//	263 OperationNotSupportedInTransaction
var notSupportedCodes = map[int32]bool{20: true, 51: true, 263: true}

// Keyword fragments that, in combination, indicate a deployment without
// transaction support. A single fragment alone is too ambiguous.
var notSupportedKeywords = []string{
	"transaction",
	"session",
	"replica set",
	"not supported",
	"illegal operation",
}

// IsNotSupported reports whether err indicates the server cannot run
// transactions at all, as opposed to a transaction that legitimately
// failed. It checks known command error codes first and falls back to
// keyword matching for drivers and vendors that wrap the error.
func IsNotSupported(err error) bool {
	if err == nil {
		return false
	}
	if ce, ok := err.(mongo.CommandError); ok {
		if notSupportedCodes[ce.Code] {
			return true
		}
	}

	s := strings.ToLower(err.Error())
	hits := 0
	for _, kw := range notSupportedKeywords {
		if strings.Contains(s, kw) {
			hits++
		}
	}
	return hits >= 2
}
