package sidegamehandlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/Black-And-White-Club/frolf-bot-shared/observability/attr"
	sidegameservice "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/application"
	sidegamedomain "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/domain"
	sidegamedb "github.com/Black-And-White-Club/golf-sidegames/app/modules/sidegame/infrastructure/repositories"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

// MaxScorecardBytes caps uploaded scorecard files.
const MaxScorecardBytes = 10 << 20

// HTTPHandlers serves the side-game REST API.
type HTTPHandlers struct {
	service sidegameservice.Service
	logger  *slog.Logger
}

func NewHTTPHandlers(service sidegameservice.Service, logger *slog.Logger) *HTTPHandlers {
	return &HTTPHandlers{service: service, logger: logger}
}

// Mount registers every route on r. Mutating routes are wrapped with auth.
func (h *HTTPHandlers) Mount(r chi.Router, auth func(http.Handler) http.Handler) {
	r.Get("/rounds/{roundID}", h.HandleGetRound)
	r.Get("/rounds/{roundID}/results", h.HandleRoundResults)
	r.Get("/rounds/{roundID}/games/{gameID}/results", h.HandleGameResults)
	r.Get("/rounds/{roundID}/games/{gameID}/chart.png", h.HandleGameChart)

	r.Group(func(r chi.Router) {
		r.Use(auth)
		r.Post("/rounds", h.HandleCreateRound)
		r.Post("/rounds/{roundID}/complete", h.HandleCompleteRound)
		r.Put("/rounds/{roundID}/scores", h.HandleRecordScore)
		r.Post("/rounds/{roundID}/import", h.HandleImportScorecard)
		r.Post("/rounds/{roundID}/games", h.HandleAddGame)
		r.Put("/rounds/{roundID}/games/{gameID}/wolf/{hole}", h.HandleSetWolfChoice)
	})
}

type errorBody struct {
	Error string `json:"error"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, sidegamedb.ErrRoundNotFound), errors.Is(err, sidegamedb.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, sidegameservice.ErrRoundCompleted):
		return http.StatusConflict
	case sidegameservice.IsFailure(err):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// writeError reports business failures verbatim and hides infrastructure errors.
func (h *HTTPHandlers) writeError(w http.ResponseWriter, r *http.Request, err error) {
	status := statusFor(err)
	if status == http.StatusInternalServerError {
		h.logger.ErrorContext(r.Context(), "Side game request failed",
			attr.String("path", r.URL.Path),
			attr.Error(err),
		)
		writeJSON(w, status, errorBody{Error: "internal error"})
		return
	}
	writeJSON(w, status, errorBody{Error: err.Error()})
}

func badRequest(w http.ResponseWriter, msg string) {
	writeJSON(w, http.StatusBadRequest, errorBody{Error: msg})
}

func pathUUID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, fmt.Errorf("invalid %s", name)
	}
	return id, nil
}

func decode(r *http.Request, v any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("invalid body: %w", err)
	}
	return nil
}

func (h *HTTPHandlers) HandleCreateRound(w http.ResponseWriter, r *http.Request) {
	var req sidegameservice.CreateRoundRequest
	if err := decode(r, &req); err != nil {
		badRequest(w, err.Error())
		return
	}
	round, err := h.service.CreateRound(r.Context(), req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, round)
}

func (h *HTTPHandlers) HandleGetRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	view, err := h.service.GetRound(r.Context(), roundID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *HTTPHandlers) HandleCompleteRound(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	view, err := h.service.CompleteRound(r.Context(), roundID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (h *HTTPHandlers) HandleRecordScore(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	var entry sidegameservice.ScoreEntry
	if err := decode(r, &entry); err != nil {
		badRequest(w, err.Error())
		return
	}
	recorded, err := h.service.RecordScore(r.Context(), roundID, entry)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, recorded)
}

func (h *HTTPHandlers) HandleImportScorecard(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	r.Body = http.MaxBytesReader(w, r.Body, MaxScorecardBytes)
	file, header, err := r.FormFile("file")
	if err != nil {
		badRequest(w, "missing scorecard file")
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		badRequest(w, "could not read scorecard file")
		return
	}
	summary, err := h.service.ImportScorecard(r.Context(), roundID, header.Filename, data)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (h *HTTPHandlers) HandleAddGame(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	// Settings are an open bag: keys this service does not know are ignored.
	var body struct {
		Format    sidegamedomain.Format     `json:"format"`
		Name      string                    `json:"name"`
		PlayerIDs []sidegamedomain.PlayerID `json:"playerIds"`
		Teams     []sidegamedomain.Team     `json:"teams,omitempty"`
		Settings  json.RawMessage           `json:"settings"`
	}
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}
	bag, err := sidegamedomain.DecodeSettingsBag(body.Settings)
	if err != nil {
		badRequest(w, fmt.Sprintf("invalid body: %v", err))
		return
	}
	req := sidegameservice.GameRequest{
		Format:    body.Format,
		Name:      body.Name,
		PlayerIDs: body.PlayerIDs,
		Teams:     body.Teams,
		Settings:  bag,
	}
	game, err := h.service.AddGame(r.Context(), roundID, req)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, game)
}

type wolfChoiceBody struct {
	Choice *string `json:"choice"`
}

func (h *HTTPHandlers) HandleSetWolfChoice(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	hole, err := strconv.Atoi(chi.URLParam(r, "hole"))
	if err != nil {
		badRequest(w, "invalid hole")
		return
	}
	var body wolfChoiceBody
	if err := decode(r, &body); err != nil {
		badRequest(w, err.Error())
		return
	}

	var choice *sidegamedomain.WolfChoice
	if body.Choice != nil {
		parsed, err := sidegamedomain.ParseWolfChoice(*body.Choice)
		if err != nil {
			badRequest(w, err.Error())
			return
		}
		choice = &parsed
	}

	game, err := h.service.SetWolfChoice(r.Context(), roundID, gameID, hole, choice)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, game)
}

func (h *HTTPHandlers) HandleRoundResults(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	res, err := h.service.ComputeRoundResults(r.Context(), roundID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *HTTPHandlers) HandleGameResults(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	res, err := h.service.ComputeGameResults(r.Context(), roundID, gameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func (h *HTTPHandlers) HandleGameChart(w http.ResponseWriter, r *http.Request) {
	roundID, err := pathUUID(r, "roundID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	gameID, err := pathUUID(r, "gameID")
	if err != nil {
		badRequest(w, err.Error())
		return
	}
	png, err := h.service.RenderGameChart(r.Context(), roundID, gameID)
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}
