// Package shelf is a Go client for the shelf resource API. It owns the
// authenticated session lifecycle end to end: credential persistence,
// bearer decoration of outbound requests, the session state machine, and
// typed clients for the catalog, library, review, rating, activity, and
// profile endpoints.
package shelf

import (
	"context"
	"io"

	glog "github.com/goliatone/go-logger/glog"
	"github.com/goliatone/go-shelf/auth"
	"github.com/goliatone/go-shelf/command"
	"github.com/goliatone/go-shelf/core"
	"github.com/goliatone/go-shelf/credstore"
	sqlstore "github.com/goliatone/go-shelf/credstore/sql"
	"github.com/goliatone/go-shelf/guard"
	"github.com/goliatone/go-shelf/query"
	"github.com/goliatone/go-shelf/resource"
	"github.com/goliatone/go-shelf/session"
	"github.com/goliatone/go-shelf/transport"
)

// Convenience aliases so embedding hosts rarely need the core import.
type Config = core.Config

type StorageConfig = core.StorageConfig

type Credential = core.Credential

type Identity = core.Identity

type Session = core.Session

type SessionPhase = core.SessionPhase

type CredentialStore = core.CredentialStore

func DefaultConfig() Config {
	return core.DefaultConfig()
}

type clientBuilder struct {
	logger          core.Logger
	loggerProvider  core.LoggerProvider
	httpClient      transport.HTTPDoer
	adapter         core.TransportAdapter
	credentials     core.CredentialStore
	configProvider  core.ConfigProvider
	optionsResolver core.OptionsResolver
	errorMapper     core.ErrorMapper
}

type Option func(*clientBuilder)

func WithLogger(logger core.Logger) Option {
	return func(b *clientBuilder) { b.logger = logger }
}

func WithLoggerProvider(provider core.LoggerProvider) Option {
	return func(b *clientBuilder) { b.loggerProvider = provider }
}

func WithHTTPClient(client transport.HTTPDoer) Option {
	return func(b *clientBuilder) { b.httpClient = client }
}

func WithTransportAdapter(adapter core.TransportAdapter) Option {
	return func(b *clientBuilder) { b.adapter = adapter }
}

func WithCredentialStore(store core.CredentialStore) Option {
	return func(b *clientBuilder) { b.credentials = store }
}

func WithConfigProvider(provider core.ConfigProvider) Option {
	return func(b *clientBuilder) { b.configProvider = provider }
}

func WithOptionsResolver(resolver core.OptionsResolver) Option {
	return func(b *clientBuilder) { b.optionsResolver = resolver }
}

func WithErrorMapper(mapper core.ErrorMapper) Option {
	return func(b *clientBuilder) { b.errorMapper = mapper }
}

// Commands exposes the message-driven handlers for hosts that dispatch
// through go-command instead of calling the gateways directly.
type Commands struct {
	Register             *command.RegisterCommand
	Login                *command.LoginCommand
	Logout               *command.LogoutCommand
	RequestPasswordReset *command.RequestPasswordResetCommand
	ConfirmPasswordReset *command.ConfirmPasswordResetCommand
	Bootstrap            *command.BootstrapCommand
}

// Queries exposes the read-side handlers.
type Queries struct {
	CurrentSession  *query.CurrentSessionQuery
	CurrentIdentity *query.CurrentIdentityQuery
	CheckAccess     *query.CheckAccessQuery
}

// Client is one fully wired shelf client. Construct it with New; every
// client owns its own session, so two clients never share login state.
type Client struct {
	config      core.Config
	logger      core.Logger
	credentials core.CredentialStore
	transport   *transport.Gateway
	session     *session.Manager
	auth        *auth.Gateway
	guard       *guard.Guard
	contents    *resource.ContentClient
	external    *resource.ExternalClient
	library     *resource.LibraryClient
	reviews     *resource.ReviewClient
	ratings     *resource.RatingClient
	activities  *resource.ActivityClient
	profiles    *resource.ProfileClient
	commands    Commands
	queries     Queries
	ownedStore  io.Closer
}

func New(cfg Config, opts ...Option) (*Client, error) {
	builder := clientBuilder{}
	for _, opt := range opts {
		if opt == nil {
			continue
		}
		opt(&builder)
	}

	provider, logger := glog.Resolve("shelf", builder.loggerProvider, builder.logger)
	logger = glog.Ensure(logger)
	if provider != nil {
		if named := provider.GetLogger("shelf"); named != nil {
			logger = glog.Ensure(named)
		}
	}

	finalConfig, err := core.ResolveConfig(context.Background(), builder.configProvider, builder.optionsResolver, cfg)
	if err != nil {
		return nil, err
	}

	store := builder.credentials
	var owned io.Closer
	if store == nil {
		store, owned, err = buildCredentialStore(finalConfig.Storage)
		if err != nil {
			return nil, err
		}
	}

	manager, err := session.NewManager(session.ManagerConfig{
		Credentials: store,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}

	gateway, err := transport.NewGateway(transport.GatewayConfig{
		BaseURL:     finalConfig.BaseURL,
		HTTPClient:  builder.httpClient,
		Adapter:     builder.adapter,
		Credentials: store,
		Invalidator: manager,
		Logger:      logger,
		ErrorMapper: builder.errorMapper,
	})
	if err != nil {
		return nil, err
	}

	authGateway, err := auth.NewGateway(auth.GatewayConfig{
		Transport:   gateway,
		Credentials: store,
		Session:     manager,
		Logger:      logger,
	})
	if err != nil {
		return nil, err
	}
	manager.BindResolver(authGateway)

	accessGuard, err := guard.New(manager, finalConfig.LoginPath)
	if err != nil {
		return nil, err
	}

	client := &Client{
		config:      finalConfig,
		logger:      logger,
		credentials: store,
		transport:   gateway,
		session:     manager,
		auth:        authGateway,
		guard:       accessGuard,
		contents:    resource.NewContentClient(gateway),
		external:    resource.NewExternalClient(gateway),
		library:     resource.NewLibraryClient(gateway),
		reviews:     resource.NewReviewClient(gateway),
		ratings:     resource.NewRatingClient(gateway),
		activities:  resource.NewActivityClient(gateway),
		profiles:    resource.NewProfileClient(gateway),
		ownedStore:  owned,
	}
	client.commands = Commands{
		Register:             command.NewRegisterCommand(authGateway),
		Login:                command.NewLoginCommand(authGateway),
		Logout:               command.NewLogoutCommand(authGateway),
		RequestPasswordReset: command.NewRequestPasswordResetCommand(authGateway),
		ConfirmPasswordReset: command.NewConfirmPasswordResetCommand(authGateway),
		Bootstrap:            command.NewBootstrapCommand(manager),
	}
	client.queries = Queries{
		CurrentSession:  query.NewCurrentSessionQuery(manager),
		CurrentIdentity: query.NewCurrentIdentityQuery(manager),
		CheckAccess:     query.NewCheckAccessQuery(accessGuard),
	}
	return client, nil
}

func buildCredentialStore(cfg core.StorageConfig) (core.CredentialStore, io.Closer, error) {
	switch cfg.ResolveDriver() {
	case core.StorageDriverFile:
		store, err := credstore.NewFileStore(cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, nil, nil
	case core.StorageDriverSQLite:
		store, err := sqlstore.Open(context.Background(), cfg.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, store, nil
	default:
		return credstore.NewMemoryStore(), nil, nil
	}
}

// Bootstrap settles the session from whatever credentials survived the last
// run. Safe to call concurrently; only the first call does work.
func (c *Client) Bootstrap(ctx context.Context) (core.Session, error) {
	if c == nil || c.session == nil {
		return core.Session{}, core.InternalError("shelf: client is not constructed")
	}
	return c.session.Bootstrap(ctx)
}

// Close releases resources owned by the client, such as a sqlite-backed
// credential store opened from config. Injected stores are the caller's to
// close.
func (c *Client) Close() error {
	if c == nil || c.ownedStore == nil {
		return nil
	}
	return c.ownedStore.Close()
}

func (c *Client) Config() core.Config {
	if c == nil {
		return core.Config{}
	}
	return c.config
}

func (c *Client) Session() *session.Manager {
	if c == nil {
		return nil
	}
	return c.session
}

func (c *Client) Auth() *auth.Gateway {
	if c == nil {
		return nil
	}
	return c.auth
}

func (c *Client) Guard() *guard.Guard {
	if c == nil {
		return nil
	}
	return c.guard
}

func (c *Client) Transport() *transport.Gateway {
	if c == nil {
		return nil
	}
	return c.transport
}

func (c *Client) Contents() *resource.ContentClient {
	if c == nil {
		return nil
	}
	return c.contents
}

func (c *Client) External() *resource.ExternalClient {
	if c == nil {
		return nil
	}
	return c.external
}

func (c *Client) Library() *resource.LibraryClient {
	if c == nil {
		return nil
	}
	return c.library
}

func (c *Client) Reviews() *resource.ReviewClient {
	if c == nil {
		return nil
	}
	return c.reviews
}

func (c *Client) Ratings() *resource.RatingClient {
	if c == nil {
		return nil
	}
	return c.ratings
}

func (c *Client) Activities() *resource.ActivityClient {
	if c == nil {
		return nil
	}
	return c.activities
}

func (c *Client) Profiles() *resource.ProfileClient {
	if c == nil {
		return nil
	}
	return c.profiles
}

func (c *Client) Commands() Commands {
	if c == nil {
		return Commands{}
	}
	return c.commands
}

func (c *Client) Queries() Queries {
	if c == nil {
		return Queries{}
	}
	return c.queries
}
