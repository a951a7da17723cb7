package httpapi

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"walletd/internal/events"
	"walletd/internal/networks"
	"walletd/internal/wallet"
	"walletd/pkg/types"
)

// NetworkRegistry is the read side of the network table.
type NetworkRegistry interface {
	Lookup(id string) (networks.Descriptor, error)
	ListAll() []networks.Descriptor
	DefaultID() string
}

// EventBus is the part of *events.Dispatcher the API uses.
type EventBus interface {
	Subscribe(cat events.Category, l *events.Listener)
	Unsubscribe(cat events.Category, l *events.Listener)
	Emit(cat events.Category, payload any)
	ListenerCount(cat events.Category) int
	ActiveCategories() []events.Category
}

// Session is the wallet session driven by the /session routes.
type Session interface {
	Connect(networkID, address string) error
	Disconnect()
	SwitchNetwork(id string) error
	State() wallet.SessionState
}

// Service bundles the collaborators of the HTTP API.
type Service struct {
	Networks NetworkRegistry
	Bus      EventBus
	Session  Session
}

func NewMux(svc Service) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Recoverer)
	r.Use(accessLog)
	r.Use(MetricsMiddleware)
	// Security headers
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("X-Content-Type-Options", "nosniff")
			next.ServeHTTP(w, r)
		})
	})
	if corsEnabled {
		r.Use(cors.Handler(cors.Options{
			AllowedOrigins: corsAllowedOrigins,
			AllowedMethods: corsAllowedMethods,
			AllowedHeaders: corsAllowedHeaders,
			MaxAge:         300,
		}))
	}

	limiter := rate.NewLimiter(rate.Limit(emitRatePerSec), emitBurst)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("ok"))
	})
	r.Get("/metrics", promhttp.Handler().ServeHTTP)
	MountSwagger(r)

	r.Get("/networks", func(w http.ResponseWriter, r *http.Request) {
		all := svc.Networks.ListAll()
		out := types.NetworksResponse{Networks: make([]types.Network, 0, len(all)), Default: svc.Networks.DefaultID()}
		for _, d := range all {
			out.Networks = append(out.Networks, toNetwork(d))
		}
		writeJSON(w, out)
	})

	r.Get("/networks/{id}", func(w http.ResponseWriter, r *http.Request) {
		d, err := svc.Networks.Lookup(chi.URLParam(r, "id"))
		if err != nil {
			writeJSONError(w, statusFor(err), err.Error())
			return
		}
		writeJSON(w, toNetwork(d))
	})

	r.Route("/session", func(r chi.Router) {
		r.Get("/", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, toSession(svc.Session.State()))
		})
		r.Post("/connect", func(w http.ResponseWriter, r *http.Request) {
			var req types.ConnectRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if err := svc.Session.Connect(req.Network, req.Address); err != nil {
				writeJSONError(w, statusFor(err), err.Error())
				return
			}
			writeJSON(w, toSession(svc.Session.State()))
		})
		r.Post("/disconnect", func(w http.ResponseWriter, r *http.Request) {
			svc.Session.Disconnect()
			writeJSON(w, toSession(svc.Session.State()))
		})
		r.Post("/network", func(w http.ResponseWriter, r *http.Request) {
			var req types.SwitchNetworkRequest
			if !decodeJSON(w, r, &req) {
				return
			}
			if strings.TrimSpace(req.Network) == "" {
				writeJSONError(w, http.StatusBadRequest, "network is required")
				return
			}
			if err := svc.Session.SwitchNetwork(req.Network); err != nil {
				writeJSONError(w, statusFor(err), err.Error())
				return
			}
			writeJSON(w, toSession(svc.Session.State()))
		})
	})

	r.Route("/events", func(r chi.Router) {
		r.Get("/categories", func(w http.ResponseWriter, r *http.Request) {
			cats := svc.Bus.ActiveCategories()
			out := types.CategoriesResponse{Categories: make([]types.CategoryStatus, 0, len(cats))}
			for _, c := range cats {
				out.Categories = append(out.Categories, types.CategoryStatus{
					Category:  string(c),
					Listeners: svc.Bus.ListenerCount(c),
				})
			}
			writeJSON(w, out)
		})
		r.Get("/stream", streamNDJSON(svc.Bus))
		r.Get("/ws", streamWebsocket(svc.Bus))
		r.Post("/{category}", func(w http.ResponseWriter, r *http.Request) {
			if !limiter.Allow() {
				incrementRateLimited("emit")
				writeJSONError(w, http.StatusTooManyRequests, "emit rate exceeded")
				return
			}
			var payload json.RawMessage
			if !decodeJSON(w, r, &payload) {
				return
			}
			cat := events.Category(chi.URLParam(r, "category"))
			n := svc.Bus.ListenerCount(cat)
			svc.Bus.Emit(cat, payload)
			writeJSON(w, types.EmitResponse{Category: string(cat), Listeners: n})
		})
	})

	return r
}

// decodeJSON enforces the content type and body limit and decodes into v.
// It writes the error response itself and reports whether decoding succeeded.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	ct := r.Header.Get("Content-Type")
	if ct == "" || !strings.HasPrefix(strings.ToLower(ct), "application/json") {
		writeJSONError(w, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
		return false
	}
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSONError(w, http.StatusBadRequest, "invalid JSON body")
		return false
	}
	return true
}

func toNetwork(d networks.Descriptor) types.Network {
	return types.Network{
		ID:          d.ID,
		Name:        d.Name,
		RPCURL:      d.RPCURL,
		ExplorerURL: d.ExplorerURL,
		Color:       d.Color,
		IsTestnet:   d.IsTestnet,
	}
}

func toSession(s wallet.SessionState) types.SessionResponse {
	return types.SessionResponse{Connected: s.Connected, Address: s.Address, Network: toNetwork(s.Network)}
}
