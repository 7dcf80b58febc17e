// cmd/server/server.go
package main

import (
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/codr1/Peladeiro/internal/api"
	"github.com/codr1/Peladeiro/internal/api/apiutil"
	"github.com/codr1/Peladeiro/internal/api/auth"
	"github.com/codr1/Peladeiro/internal/api/jogadores"
	"github.com/codr1/Peladeiro/internal/api/media"
	"github.com/codr1/Peladeiro/internal/api/partidas"
	"github.com/codr1/Peladeiro/internal/api/peladas"
	"github.com/codr1/Peladeiro/internal/api/rankings"
	"github.com/codr1/Peladeiro/internal/api/rodadas"
	"github.com/codr1/Peladeiro/internal/api/temporadas"
	"github.com/codr1/Peladeiro/internal/api/times"
	"github.com/codr1/Peladeiro/internal/api/votacoes"
	"github.com/codr1/Peladeiro/internal/apiclient"
	"github.com/codr1/Peladeiro/internal/config"
	"github.com/codr1/Peladeiro/internal/metrics"
	"github.com/codr1/Peladeiro/internal/scheduler"
	"github.com/codr1/Peladeiro/internal/services"
	"github.com/codr1/Peladeiro/internal/session"
	"github.com/codr1/Peladeiro/internal/templates/layouts"
)

const (
	notFoundFlash   = "Página não encontrada."
	notFoundMessage = "O link que você tentou acessar não existe ou foi movido."
)

type app struct {
	cfg     *config.Config
	client  *apiclient.Client
	service *services.Service
	store   *session.Store
	health  *scheduler.HealthMonitor
}

func newApp(cfg *config.Config) (*app, error) {
	client := apiclient.New(apiclient.Config{
		BaseURL:       cfg.API.BaseURL,
		Timeout:       cfg.API.Timeout,
		UploadTimeout: cfg.API.UploadTimeout,
		MediaTimeout:  cfg.API.MediaTimeout,
	})
	store, err := session.NewStore(session.Options{
		CookieName:     cfg.Session.CookieName,
		Secret:         cfg.App.SecretKey,
		TTL:            cfg.Session.TTL,
		Secure:         !cfg.IsDevelopment(),
		MaxRecentVotes: cfg.Session.MaxRecentVotes,
	})
	if err != nil {
		return nil, fmt.Errorf("session store: %w", err)
	}

	a := &app{
		cfg:     cfg,
		client:  client,
		service: services.New(client),
		store:   store,
	}
	if cfg.Features.EnableHealthProbe {
		if err := scheduler.Init(); err != nil {
			return nil, fmt.Errorf("scheduler: %w", err)
		}
		a.health = scheduler.NewHealthMonitor(client, 0)
		if _, err := scheduler.RegisterHealthProbe(a.health, cfg.Scheduler.HealthProbeCron); err != nil {
			return nil, fmt.Errorf("health probe: %w", err)
		}
	}

	layouts.MediaPrefix = cfg.API.MediaPrefix
	a.initHandlers()
	return a, nil
}

func (a *app) initHandlers() {
	auth.InitHandlers(a.service, a.cfg.App.TrustProxy)
	peladas.InitHandlers(a.service)
	jogadores.InitHandlers(a.service)
	temporadas.InitHandlers(a.service)
	times.InitHandlers(a.service)
	rodadas.InitHandlers(a.service)
	partidas.InitHandlers(a.service)
	rankings.InitHandlers(a.service)
	votacoes.InitHandlers(a.service)
	media.InitHandlers(a.client, a.cfg.API.MediaPrefix)
}

func (a *app) httpServer() *http.Server {
	router := http.NewServeMux()

	// Setup middleware chain; the last entry runs first.
	handler := api.ChainMiddleware(
		router,
		api.WithAuthGuard(a.service),
		a.store.Middleware,
		api.WithLogging,
		api.WithRecovery,
		api.WithRequestID,
		api.WithContentType,
	)

	a.registerRoutes(router)

	return &http.Server{
		Addr:         fmt.Sprintf(":%d", a.cfg.App.Port),
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 60 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

func (a *app) registerRoutes(mux *http.ServeMux) {
	mux.HandleFunc("/", handleNotFound)
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, apiutil.HomePath, http.StatusFound)
	})

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(a.health.Status()))
	})
	if a.cfg.Features.EnableMetrics {
		mux.Handle("GET /metrics", metrics.Handler())
	}

	// Auth
	mux.HandleFunc("GET /login", auth.HandleLoginPage)
	mux.HandleFunc("POST /login", auth.HandleLogin)
	mux.HandleFunc("GET /register", auth.HandleRegisterPage)
	mux.HandleFunc("POST /register", auth.HandleRegister)
	mux.HandleFunc("GET /logout", auth.HandleLogout)

	// Leagues
	mux.HandleFunc("GET /peladas", peladas.HandleLeaguesPage)
	mux.HandleFunc("POST /peladas", peladas.HandleCreateLeague)
	mux.HandleFunc("GET /peladas/{id}", peladas.HandleLeagueProfile)
	mux.HandleFunc("GET /peladas/{id}/edit", peladas.HandleEditLeaguePage)
	mux.HandleFunc("POST /peladas/{id}/edit", peladas.HandleUpdateLeague)
	mux.HandleFunc("GET /peladas/{id}/scout-anual", peladas.HandleYearlyScout)
	mux.HandleFunc("GET /peladas/{id}/publico", peladas.HandlePublicProfile)
	mux.HandleFunc("GET /perfil/{slug}", peladas.HandlePublicProfileBySlug)

	// Players
	mux.HandleFunc("GET /peladas/{id}/jogadores", jogadores.HandlePlayersPage)
	mux.HandleFunc("POST /peladas/{id}/jogadores", jogadores.HandleCreatePlayer)
	mux.HandleFunc("GET /jogadores/{id}/edit", jogadores.HandleEditPlayerPage)
	mux.HandleFunc("POST /jogadores/{id}/edit", jogadores.HandleUpdatePlayer)

	// Seasons
	mux.HandleFunc("GET /peladas/{id}/temporadas", temporadas.HandleSeasonsPage)
	mux.HandleFunc("POST /peladas/{id}/temporadas", temporadas.HandleCreateSeason)
	mux.HandleFunc("GET /temporadas/{id}", temporadas.HandleSeasonPage)
	mux.HandleFunc("POST /temporadas/{id}", temporadas.HandleSeasonAction)

	// Teams
	mux.HandleFunc("GET /temporadas/{id}/times", times.HandleTeamsPage)
	mux.HandleFunc("POST /temporadas/{id}/times", times.HandleCreateTeam)
	mux.HandleFunc("GET /times/{id}", times.HandleTeamPage)
	mux.HandleFunc("POST /times/{id}", times.HandleTeamAction)

	// Rounds
	mux.HandleFunc("GET /temporadas/{id}/rodadas", rodadas.HandleRoundsPage)
	mux.HandleFunc("POST /temporadas/{id}/rodadas", rodadas.HandleCreateRound)
	mux.HandleFunc("GET /rodadas/{id}", rodadas.HandleRoundPage)
	mux.HandleFunc("POST /rodadas/{id}", rodadas.HandleCreateMatch)

	// Matches and goals
	mux.HandleFunc("GET /rodadas/{id}/partidas", partidas.HandleMatchesPage)
	mux.HandleFunc("POST /rodadas/{id}/partidas", partidas.HandleCreateMatch)
	mux.HandleFunc("GET /partidas/{id}", partidas.HandleMatchPage)
	mux.HandleFunc("POST /partidas/{id}/iniciar", partidas.HandleStartMatch)
	mux.HandleFunc("POST /partidas/{id}/finalizar", partidas.HandleFinishMatch)
	mux.HandleFunc("POST /partidas/{id}/gol", partidas.HandleCreateGoal)
	mux.HandleFunc("POST /gols/{id}/delete", partidas.HandleDeleteGoal)

	// Rankings
	mux.HandleFunc("GET /temporadas/{id}/ranking", rankings.HandleRankingHub)
	mux.HandleFunc("GET /temporadas/{id}/ranking/times", rankings.HandleTeamRanking)
	mux.HandleFunc("GET /temporadas/{id}/ranking/artilheiros", rankings.HandleScorersRanking)
	mux.HandleFunc("GET /temporadas/{id}/ranking/assistencias", rankings.HandleAssistsRanking)

	// Votes
	mux.HandleFunc("GET /rodadas/{id}/votacoes", votacoes.HandleVotesPage)
	mux.HandleFunc("POST /rodadas/{id}/votacoes", votacoes.HandleCreateVote)
	mux.HandleFunc("GET /rodadas/{id}/votacoes/resultados", votacoes.HandleRoundResults)
	mux.HandleFunc("GET /votacoes/{id}/votar", votacoes.HandleBallotPage)
	mux.HandleFunc("POST /votacoes/{id}/votar", votacoes.HandleCastBallot)
	mux.HandleFunc("GET /votacoes/{id}/resultado", votacoes.HandleVoteResult)

	// Media proxy
	mux.HandleFunc("GET /media/{path...}", media.HandleMedia)

	// Static files
	fs := http.FileServer(http.Dir(a.cfg.StaticDir))
	mux.Handle("GET /static/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Ctx(r.Context()).Debug().
			Str("path", r.URL.Path).
			Str("static_dir", a.cfg.StaticDir).
			Msg("Static file request")
		http.StripPrefix("/static/", fs).ServeHTTP(w, r)
	}))
}

// handleNotFound renders the friendly 404 page for broken links.
func handleNotFound(w http.ResponseWriter, r *http.Request) {
	log.Ctx(r.Context()).Info().Str("path", r.URL.Path).Str("method", r.Method).Msg("Route not found")
	apiutil.Flash(r, session.FlashError, notFoundFlash)
	apiutil.RenderPageStatus(w, r, http.StatusNotFound, "Página não encontrada",
		layouts.ErrorPage(http.StatusNotFound, notFoundMessage))
}
