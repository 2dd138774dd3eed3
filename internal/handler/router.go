package handler

import (
	"context"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/noah-isme/sma-vote-api/internal/middleware"
	appErrors "github.com/noah-isme/sma-vote-api/pkg/errors"
	"github.com/noah-isme/sma-vote-api/pkg/response"
)

// APIPrefix is the mount point of the dispatcher.
const APIPrefix = "/api"

var (
	errEndpointNotFound    = appErrors.Clone(appErrors.ErrNotFound, "endpoint not found")
	errSubEndpointNotFound = appErrors.Clone(appErrors.ErrNotFound, "sub-endpoint not found")
)

// explicitAdminPaths are admin routes matched on the full path before the generic split.
var explicitAdminPaths = map[string]struct{}{
	"login":          {},
	"students":       {},
	"candidates":     {},
	"election":       {},
	"import":         {},
	"reset-codes":    {},
	"reset-votes":    {},
	"clear-data":     {},
	"clear-students": {},
}

type accessAuthorizer interface {
	AuthorizeAdmin(ctx context.Context, provided string) error
	AuthorizeVoter(ctx context.Context, provided string) error
}

// Handlers groups the endpoint handlers served behind the dispatcher.
type Handlers struct {
	Ballot  *BallotHandler
	Config  *ConfigHandler
	Admin   *AdminHandler
	Reports *ReportHandler
	Metrics *MetricsHandler
}

// Router resolves /api/<endpoint>[/<sub>] through lookup tables.
type Router struct {
	endpoints map[string]gin.HandlerFunc
	admin     map[string]gin.HandlerFunc
	login     gin.HandlerFunc
	health    gin.HandlerFunc
	adminGate gin.HandlerFunc
	logger    *zap.Logger
}

// NewRouter builds the dispatch tables.
func NewRouter(h Handlers, access accessAuthorizer, logger *zap.Logger) *Router {
	if logger == nil {
		logger = zap.NewNop()
	}
	voterGate := middleware.VoterGate(access)
	headerAdminGate := middleware.AdminGate(access, false)

	r := &Router{
		login:     h.Admin.Login,
		health:    h.Metrics.Health,
		adminGate: middleware.AdminGate(access, true),
		logger:    logger,
	}
	r.endpoints = map[string]gin.HandlerFunc{
		"check-status":   h.Ballot.CheckStatus,
		"verify-code":    chain(voterGate, h.Ballot.VerifyCode),
		"cast-vote":      chain(voterGate, h.Ballot.CastVote),
		"get-candidates": h.Ballot.Candidates,
		"config":         h.Config.Config,
		"stats":          chain(headerAdminGate, h.Reports.Stats),
		"monitor":        chain(headerAdminGate, h.Reports.Monitor),
		"results":        h.Reports.Results,
	}
	r.admin = map[string]gin.HandlerFunc{
		"students":       h.Admin.Students,
		"candidates":     h.Admin.Candidates,
		"election":       h.Admin.Election,
		"import":         h.Admin.Import,
		"reset-codes":    h.Admin.ResetCodes,
		"reset-votes":    h.Admin.ResetVotes,
		"clear-data":     h.Admin.ClearData,
		"clear-students": h.Admin.ClearStudents,
		"export":         h.Admin.Export,
	}
	return r
}

// Register mounts the dispatcher on engine.
func (r *Router) Register(engine gin.IRouter) {
	engine.Any(APIPrefix+"/*path", r.Dispatch)
}

// Dispatch routes one /api request.
func (r *Router) Dispatch(c *gin.Context) {
	path := strings.TrimPrefix(c.Param("path"), "/")

	if path == "health" || path == "health/" {
		c.Set(middleware.RouteKey, APIPrefix+"/health")
		r.health(c)
		return
	}
	if c.Request.Method == http.MethodOptions {
		c.Status(http.StatusOK)
		return
	}

	if sub, ok := explicitAdminPath(path); ok {
		r.dispatchAdmin(c, sub)
		return
	}

	endpoint, sub := splitPath(path)
	if endpoint == "admin" {
		r.dispatchAdmin(c, sub)
		return
	}
	handler, ok := r.endpoints[endpoint]
	if !ok {
		r.logger.Debug("endpoint not found", zap.String("path", c.Request.URL.Path))
		response.Error(c, errEndpointNotFound)
		return
	}
	c.Set(middleware.RouteKey, APIPrefix+"/"+endpoint)
	handler(c)
}

func (r *Router) dispatchAdmin(c *gin.Context, sub string) {
	if sub == "login" {
		c.Set(middleware.RouteKey, APIPrefix+"/admin/login")
		r.login(c)
		return
	}
	r.adminGate(c)
	if c.IsAborted() {
		return
	}
	handler, ok := r.admin[sub]
	if !ok {
		response.Error(c, errSubEndpointNotFound)
		return
	}
	c.Set(middleware.RouteKey, APIPrefix+"/admin/"+sub)
	handler(c)
}

func explicitAdminPath(path string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSuffix(path, "/"), "admin/")
	if !ok {
		return "", false
	}
	if _, known := explicitAdminPaths[rest]; !known {
		return "", false
	}
	return rest, true
}

func splitPath(path string) (string, string) {
	var parts []string
	for _, p := range strings.Split(path, "/") {
		if p != "" {
			parts = append(parts, p)
		}
	}
	switch len(parts) {
	case 0:
		return "", ""
	case 1:
		return parts[0], ""
	default:
		return parts[0], parts[1]
	}
}

// chain runs handlers in order, stopping once one aborts.
func chain(handlers ...gin.HandlerFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		for _, h := range handlers {
			h(c)
			if c.IsAborted() {
				return
			}
		}
	}
}
