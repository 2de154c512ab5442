// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	membershipengine "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/engine/membership"
	sessionengine "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/engine/session"
	taskengine "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/engine/task"
	groupsfeature "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/groups"
	healthfeature "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/health"
	studysessionsfeature "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/studysessions"
	tasksfeature "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/features/tasks"
	groupstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/groups"
	joinrequeststore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/joinrequests"
	membershipstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/memberships"
	sessionstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/studysessions"
	taskstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/tasks"
	userstore "github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/store/users"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/keylock"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/mailer"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/notify"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/txn"
	"github.com/Hoonie-O/CAB302-PeerPracticeManager-sub001/internal/app/system/workers"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler (router) for this WAFFLE app.
//
// WAFFLE calls this after configuration, DB connections, schema setup, and
// any Startup hooks have completed. The three engines are assembled here
// along with their shared infrastructure: one transaction runner for the
// multi-document writes, and one keyed-lock map shared between the
// session and task engines so a session delete and a task create on the
// same session serialize.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	groups := groupstore.New(db)
	memberships := membershipstore.New(db)
	requests := joinrequeststore.New(db)
	sessions := sessionstore.New(db)
	tasks := taskstore.New(db)

	uow := txn.NewRunner(deps.MongoClient)
	locks := keylock.New()

	notifier := buildNotifier(appCfg, logger)

	membership := membershipengine.New(groups, memberships, requests, users, notifier, uow, locks, logger)
	taskEng := taskengine.New(tasks, sessions, locks, logger)
	sessionEng := sessionengine.New(sessions, taskEng, membership, users, uow, locks, logger)

	if appCfg.ReaperEnabled {
		reaper = workers.NewSessionReaper(sessionEng, logger, appCfg.ReaperInterval, appCfg.ReaperRetention)
		reaper.Start()
	}

	r := chi.NewRouter()

	// Health check endpoint for load balancers and orchestrators
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))

	groupsHandler := groupsfeature.NewHandler(membership, logger)
	r.Mount("/groups", groupsfeature.Routes(groupsHandler))

	sessionsHandler := studysessionsfeature.NewHandler(sessionEng, logger)
	r.Mount("/sessions", studysessionsfeature.Routes(sessionsHandler))

	tasksHandler := tasksfeature.NewHandler(taskEng, logger)
	r.Mount("/tasks", tasksfeature.Routes(tasksHandler))

	return r, nil
}

// buildNotifier picks the join-request notification sink from config.
func buildNotifier(appCfg AppConfig, logger *zap.Logger) membershipengine.Notifier {
	if appCfg.NotifyMode != "email" {
		return &notify.LogNotifier{Log: logger}
	}
	sender := mailer.NewSender(mailer.Config{
		Host:     appCfg.MailSMTPHost,
		Port:     appCfg.MailSMTPPort,
		User:     appCfg.MailSMTPUser,
		Password: appCfg.MailSMTPPass,
		From:     appCfg.MailFrom,
		FromName: appCfg.MailFromName,
	})
	return &notify.MailNotifier{
		Sender:   sender,
		Log:      logger,
		SiteName: appCfg.SiteName,
		BaseURL:  appCfg.BaseURL,
	}
}
