// internal/app/bootstrap/routes.go
package bootstrap

import (
	"net/http"

	analyticsfeature "github.com/showroomhq/showroomhub/internal/app/features/analytics"
	authgooglefeature "github.com/showroomhq/showroomhub/internal/app/features/authgoogle"
	categoriesfeature "github.com/showroomhq/showroomhub/internal/app/features/categories"
	customersfeature "github.com/showroomhq/showroomhub/internal/app/features/customers"
	feedbackfeature "github.com/showroomhq/showroomhub/internal/app/features/feedback"
	healthfeature "github.com/showroomhq/showroomhub/internal/app/features/health"
	loginfeature "github.com/showroomhq/showroomhub/internal/app/features/login"
	logoutfeature "github.com/showroomhq/showroomhub/internal/app/features/logout"
	officeadminfeature "github.com/showroomhq/showroomhub/internal/app/features/officeadmin"
	salesfeature "github.com/showroomhq/showroomhub/internal/app/features/sales"
	settingsfeature "github.com/showroomhq/showroomhub/internal/app/features/settings"
	showroomsfeature "github.com/showroomhq/showroomhub/internal/app/features/showrooms"
	usersfeature "github.com/showroomhq/showroomhub/internal/app/features/users"
	categorystore "github.com/showroomhq/showroomhub/internal/app/store/categories"
	customerstore "github.com/showroomhq/showroomhub/internal/app/store/customers"
	dailycountstore "github.com/showroomhq/showroomhub/internal/app/store/dailycounts"
	feedbackstore "github.com/showroomhq/showroomhub/internal/app/store/feedback"
	"github.com/showroomhq/showroomhub/internal/app/store/oauthstate"
	salestore "github.com/showroomhq/showroomhub/internal/app/store/sales"
	settingsstore "github.com/showroomhq/showroomhub/internal/app/store/settings"
	showroomstore "github.com/showroomhq/showroomhub/internal/app/store/showrooms"
	tokenstore "github.com/showroomhq/showroomhub/internal/app/store/tokens"
	userstore "github.com/showroomhq/showroomhub/internal/app/store/users"
	"github.com/showroomhq/showroomhub/internal/app/system/auth"
	"github.com/showroomhq/showroomhub/internal/app/system/metrics"
	"github.com/showroomhq/showroomhub/internal/app/system/sms"
	"github.com/dalemusser/waffle/config"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// BuildHandler constructs the root HTTP handler. WAFFLE calls this
// after configuration, DB connection, schema setup, and Startup have
// completed.
//
// The React dashboards talk to /api/user/*; /api/feedback is the one
// public write endpoint, reached from the SMS link.
func BuildHandler(coreCfg *config.CoreConfig, appCfg AppConfig, deps DBDeps, logger *zap.Logger) (http.Handler, error) {
	db := deps.MongoDatabase

	users := userstore.New(db)
	tokens := tokenstore.New(db)
	states := oauthstate.New(db)
	customers := customerstore.New(db)
	feedback := feedbackstore.New(db)
	showrooms := showroomstore.New(db)
	categories := categorystore.New(db)
	dailyCounts := dailycountstore.New(db)
	sales := salestore.New(db)
	settings := settingsstore.New(db)

	// Secure cookies in production; dev keeps Lax over plain HTTP.
	secure := coreCfg.Env == "prod"
	sessionMgr, err := auth.NewSessionManager(appCfg.SessionKey, appCfg.SessionName, appCfg.SessionDomain, secure, logger)
	if err != nil {
		logger.Error("session manager init failed", zap.Error(err))
		return nil, err
	}
	// Bearer tokens win; cookie sessions re-fetch the user so role
	// changes and disabled accounts take effect immediately.
	sessionMgr.SetTokenFetcher(tokens)
	sessionMgr.SetUserFetcher(users)

	m := metrics.New()
	dispatcher := sms.NewDispatcher(sms.NewHTTPProvider(), m, logger)

	r := chi.NewRouter()

	r.Use(m.Middleware)
	r.Use(sessionMgr.LoadSessionUser)

	// Operational endpoints
	healthHandler := healthfeature.NewHandler(deps.MongoClient, logger)
	r.Mount("/health", healthfeature.Routes(healthHandler))
	r.Handle("/metrics", metrics.Handler())

	// Authentication
	loginHandler := loginfeature.NewHandler(users, tokens, sessionMgr, logger)
	r.Mount("/api/user/login", loginfeature.Routes(loginHandler))

	logoutHandler := logoutfeature.NewHandler(tokens, sessionMgr, logger)
	r.Mount("/api/user/logout", logoutfeature.Routes(logoutHandler))

	googleHandler := authgooglefeature.NewHandler(users, sessionMgr, states,
		appCfg.GoogleClientID, appCfg.GoogleClientSecret, appCfg.GoogleRedirectURL, logger)
	r.Mount("/auth/google", authgooglefeature.Routes(googleHandler))

	// Public feedback submission (linked from the visit SMS)
	feedbackHandler := feedbackfeature.NewHandler(feedback, logger)
	r.Mount("/api/feedback", feedbackfeature.PublicRoutes(feedbackHandler))

	// Analytics rollups
	analyticsHandler := analyticsfeature.NewHandler(db, showrooms, m, logger)
	r.Mount("/api/user/analytics", analyticsfeature.Routes(analyticsHandler, sessionMgr))

	// Office-admin reconciliation
	officeAdminHandler := officeadminfeature.NewHandler(db, customers, dailyCounts, m, logger)
	r.Mount("/api/user/office-admin", officeadminfeature.Routes(officeAdminHandler, sessionMgr))

	// CRUD surfaces
	customersHandler := customersfeature.NewHandler(customers, settings, dispatcher, logger)
	r.Mount("/api/user/customers", customersfeature.Routes(customersHandler, sessionMgr))

	r.Mount("/api/user/feedback", feedbackfeature.Routes(feedbackHandler, sessionMgr))

	showroomsHandler := showroomsfeature.NewHandler(showrooms, logger)
	r.Mount("/api/user/showrooms", showroomsfeature.Routes(showroomsHandler, sessionMgr))

	categoriesHandler := categoriesfeature.NewHandler(categories, logger)
	r.Mount("/api/user/categories", categoriesfeature.Routes(categoriesHandler, sessionMgr))

	salesHandler := salesfeature.NewHandler(sales, logger)
	r.Mount("/api/user/sales", salesfeature.Routes(salesHandler, sessionMgr))

	settingsHandler := settingsfeature.NewHandler(settings, logger)
	r.Mount("/api/user/settings", settingsfeature.Routes(settingsHandler, sessionMgr))

	usersHandler := usersfeature.NewHandler(users, logger)
	r.Mount("/api/user/accounts", usersfeature.Routes(usersHandler, sessionMgr))

	return r, nil
}
