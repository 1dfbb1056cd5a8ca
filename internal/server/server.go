package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"petcare15/internal/admin"
	"petcare15/internal/applications"
	"petcare15/internal/customers"
	"petcare15/internal/media"
	"petcare15/internal/metrics"
	"petcare15/pkg/types"

	"github.com/alexedwards/flow"
	"github.com/go-playground/form/v4"
	"github.com/sirupsen/logrus"
)

var decoder = form.NewDecoder()

type UpdateStore interface {
	Updates(ctx context.Context) ([]*types.Update, error)
	ReplaceUpdates(ctx context.Context, updates []*types.Update) error
}

type ContactStore interface {
	Contact(ctx context.Context) (*types.Contact, error)
	SaveContact(ctx context.Context, contact *types.Contact) error
	DeleteContact(ctx context.Context) error
}

type ProfileStore interface {
	Profiles(ctx context.Context) ([]*types.Profile, error)
	Profile(ctx context.Context, id string) (*types.Profile, error)
	UpsertProfile(ctx context.Context, profile *types.Profile) error
	ModifyProfile(ctx context.Context, id string, fn func(profile *types.Profile) error) (*types.Profile, error)
}

type Pinger interface {
	Ping(ctx context.Context) error
}

type Service struct {
	logger *logrus.Logger
	config *types.Config
	guard  *admin.Guard

	updatesRepo  UpdateStore
	contactRepo  ContactStore
	profilesRepo ProfileStore

	applications *applications.Service
	customers    *customers.Service
	media        *media.Service

	// nil unless media is kept on the local disk
	fileStore *media.FileStore
	db        Pinger

	handler http.Handler
	server  *http.Server
}

func New(
	config *types.Config,
	logger *logrus.Logger,
	guard *admin.Guard,
	updatesRepo UpdateStore,
	contactRepo ContactStore,
	profilesRepo ProfileStore,
	applicationsService *applications.Service,
	customersService *customers.Service,
	mediaService *media.Service,
	fileStore *media.FileStore,
	db Pinger,
) (*Service, error) {
	mux := flow.New()

	s := &Service{
		logger: logger,
		config: config,
		guard:  guard,

		updatesRepo:  updatesRepo,
		contactRepo:  contactRepo,
		profilesRepo: profilesRepo,

		applications: applicationsService,
		customers:    customersService,
		media:        mediaService,

		fileStore: fileStore,
		db:        db,

		server: &http.Server{
			Addr:              fmt.Sprintf(":%d", config.ServerPort),
			ReadTimeout:       time.Duration(config.ReadTimeoutSec) * time.Second,
			ReadHeaderTimeout: time.Duration(config.ReadTimeoutSec) * time.Second,
			WriteTimeout:      time.Duration(config.WriteTimeoutSec) * time.Second,
			MaxHeaderBytes:    1 << 20,
		},
	}

	s.buildRouter(mux)

	// Redirect before routing, a trailing slash never matches a pattern.
	s.handler = s.RedirectTrailingSlash(mux)
	s.server.Handler = s.handler

	return s, nil
}

func (s *Service) Start() error {
	return s.server.ListenAndServe()
}

func (s *Service) Stop(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Handler returns the routed handler without a listener.
func (s *Service) Handler() http.Handler {
	return s.handler
}

func (s *Service) buildRouter(r *flow.Mux) {
	r.Use(s.LogRequests)

	handle := func(r *flow.Mux, pattern string, h http.HandlerFunc, method string) {
		r.Handle(pattern, s.instrument(pattern, h), method)
	}

	handle(r, "/admin-login", s.handlePostLogin, http.MethodPost)
	handle(r, "/admin-check", s.handleGetCheck, http.MethodGet)
	handle(r, "/admin-logout", s.handlePostLogout, http.MethodPost)

	handle(r, "/api/updates", s.handleGetUpdates, http.MethodGet)
	handle(r, "/api/contact", s.handleGetContact, http.MethodGet)
	handle(r, "/api/profiles", s.handleGetProfiles, http.MethodGet)
	handle(r, "/api/profiles/:id", s.handleGetProfile, http.MethodGet)

	r.Group(func(r *flow.Mux) {
		r.Use(s.RequireAdmin)

		handle(r, "/api/updates", s.handlePostUpdates, http.MethodPost)
		handle(r, "/api/contact", s.handlePostContact, http.MethodPost)
		handle(r, "/api/profiles/:id", s.handlePostProfile, http.MethodPost)

		handle(r, "/api/upload-image", s.handlePostUploadImage, http.MethodPost)
		handle(r, "/api/delete-images", s.handlePostDeleteImages, http.MethodPost)

		handle(r, "/api/applications", s.handleGetApplications, http.MethodGet)
		handle(r, "/api/approve-application", s.handlePostApproveApplication, http.MethodPost)
		handle(r, "/api/reject-application", s.handlePostRejectApplication, http.MethodPost)
		handle(r, "/api/unreject-application", s.handlePostUnrejectApplication, http.MethodPost)

		handle(r, "/api/customers", s.handleGetCustomers, http.MethodGet)
		handle(r, "/api/customers/:id", s.handleGetCustomer, http.MethodGet)
		handle(r, "/api/customers/:id/blacklist", s.handlePostBlacklistCustomer, http.MethodPost)
	})

	handle(r, "/healthz", s.handleHealth, http.MethodGet)
	r.Handle("/metrics", metrics.Handler(), http.MethodGet)

	s.mountStatic(r)
}
