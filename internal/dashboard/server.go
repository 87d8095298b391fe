// Package dashboard serves predictions and derived standings over HTTP.
package dashboard

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/utakatalp/match-predictor/internal/league"
	"github.com/utakatalp/match-predictor/internal/predictions"
)

type Server struct {
	router *mux.Router
	index  *predictions.Index
	logger *zap.Logger
}

func NewServer(index *predictions.Index, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{router: mux.NewRouter(), index: index, logger: logger}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	// seasons such as 2015/2016 arrive as 2015%2F2016
	r.UseEncodedPath()
	r.HandleFunc("/healthz", s.handleHealth).Methods(http.MethodGet)
	r.HandleFunc("/leagues", s.handleLeagues).Methods(http.MethodGet)
	r.HandleFunc("/leagues/{league}/seasons", s.handleSeasons).Methods(http.MethodGet)
	r.HandleFunc("/leagues/{league}/seasons/{season}/stages", s.handleStages).Methods(http.MethodGet)
	r.HandleFunc("/leagues/{league}/seasons/{season}/stages/{stage:[0-9]+}", s.handleFixtures).Methods(http.MethodGet)
	r.HandleFunc("/leagues/{league}/seasons/{season}/table", s.handleTable).Methods(http.MethodGet)
	r.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		s.writeError(w, http.StatusNotFound, "not found")
	})
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleLeagues(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string][]string{"leagues": s.index.Leagues()})
}

func (s *Server) handleSeasons(w http.ResponseWriter, r *http.Request) {
	name := pathVars(r)["league"]
	seasons, ok := s.index.Seasons(name)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown league")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"league": name, "seasons": seasons})
}

func (s *Server) handleStages(w http.ResponseWriter, r *http.Request) {
	vars := pathVars(r)
	stages, ok := s.index.Stages(vars["league"], vars["season"])
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown league season")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"league": vars["league"],
		"season": vars["season"],
		"stages": stages,
	})
}

// fixture is the dashboard view of one predicted match.
type fixture struct {
	MatchAPIID int64   `json:"match_api_id"`
	Fixture    string  `json:"fixture"`
	Actual     string  `json:"actual_result"`
	HomeGoals  int     `json:"home_goals"`
	AwayGoals  int     `json:"away_goals"`
	Win        float64 `json:"prob_win"`
	Draw       float64 `json:"prob_draw"`
	Defeat     float64 `json:"prob_defeat"`
	Predicted  string  `json:"predicted_result"`
}

func newFixture(r predictions.Record) fixture {
	outcomes := league.Outcomes()
	best := 0
	for k := range r.Probabilities {
		if r.Probabilities[k] > r.Probabilities[best] {
			best = k
		}
	}
	return fixture{
		MatchAPIID: r.MatchAPIID,
		Fixture:    r.FixtureKey(),
		Actual:     string(r.Actual),
		HomeGoals:  r.HomeGoals,
		AwayGoals:  r.AwayGoals,
		Win:        r.Probabilities[0],
		Draw:       r.Probabilities[1],
		Defeat:     r.Probabilities[2],
		Predicted:  string(outcomes[best]),
	}
}

func (s *Server) handleFixtures(w http.ResponseWriter, r *http.Request) {
	vars := pathVars(r)
	stage, err := strconv.Atoi(vars["stage"])
	if err != nil {
		s.writeError(w, http.StatusBadRequest, "invalid stage")
		return
	}
	records, ok := s.index.Fixtures(vars["league"], vars["season"], stage)
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown stage")
		return
	}
	out := make([]fixture, len(records))
	for i, rec := range records {
		out[i] = newFixture(rec)
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"league":   vars["league"],
		"season":   vars["season"],
		"stage":    stage,
		"fixtures": out,
	})
}

type standing struct {
	Position     int    `json:"position"`
	Team         string `json:"team"`
	Played       int    `json:"played"`
	Wins         int    `json:"wins"`
	Draws        int    `json:"draws"`
	Losses       int    `json:"losses"`
	GoalsFor     int    `json:"goals_for"`
	GoalsAgainst int    `json:"goals_against"`
	GoalDiff     int    `json:"goal_diff"`
	Points       int    `json:"points"`
}

func (s *Server) handleTable(w http.ResponseWriter, r *http.Request) {
	vars := pathVars(r)
	records, ok := s.index.Season(vars["league"], vars["season"])
	if !ok {
		s.writeError(w, http.StatusNotFound, "unknown league season")
		return
	}
	scores := make([]league.Score, len(records))
	for i, rec := range records {
		scores[i] = rec.Score()
	}
	table := league.CalculateTable(scores)
	out := make([]standing, len(table))
	for i, e := range table {
		out[i] = standing{
			Position:     i + 1,
			Team:         e.Team,
			Played:       e.Played,
			Wins:         e.Wins,
			Draws:        e.Draws,
			Losses:       e.Losses,
			GoalsFor:     e.GoalsFor,
			GoalsAgainst: e.GoalsAgainst,
			GoalDiff:     e.GoalDiff,
			Points:       e.Points,
		}
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"league": vars["league"],
		"season": vars["season"],
		"table":  out,
	})
}

// pathVars returns the route variables unescaped.
func pathVars(r *http.Request) map[string]string {
	vars := mux.Vars(r)
	out := make(map[string]string, len(vars))
	for k, v := range vars {
		if u, err := url.PathUnescape(v); err == nil {
			v = u
		}
		out[k] = v
	}
	return out
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Warn("writing response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}
