package handlers

import (
	"net/http"

	"github.com/dustin/go-humanize"

	"github.com/Dosada05/maze-tournament/models"
	"github.com/Dosada05/maze-tournament/services"
)

type MazeHandler struct {
	mazeService services.MazeService
}

func NewMazeHandler(ms services.MazeService) *MazeHandler {
	return &MazeHandler{
		mazeService: ms,
	}
}

type solveMazeRequest struct {
	Maze models.Grid `json:"maze"`
}

type runPlayerRequest struct {
	PlayerName string      `json:"playerName"`
	Maze       models.Grid `json:"maze"`
	Seed       seedParam   `json:"seed"`
	Strategy   string      `json:"strategy"`
}

type runTournamentRequest struct {
	Players  []string  `json:"players"`
	Size     int       `json:"size"`
	Seed     seedParam `json:"seed"`
	Strategy string    `json:"strategy"`
	Mode     string    `json:"mode"`
}

// historyEntry is a run record with its age in words, e.g. "3 minutes ago".
type historyEntry struct {
	models.RunRecord
	Ran string `json:"ran"`
}

// GenerateMaze godoc
// @Summary Generate a maze
// @Description Builds a square maze with a guaranteed route from the top-left to the bottom-right cell. The same size and seed always give the same maze.
// @Tags maze
// @Produce json
// @Param size query int false "Side length, 5 to 20" default(10)
// @Param seed query string false "Seed for a reproducible maze"
// @Success 200 {object} services.GeneratedMaze
// @Failure 400 {object} map[string]string "InvalidSize"
// @Failure 500 {object} map[string]string "GenerationRetryExhausted"
// @Router /api/maze/generate [get]
func (h *MazeHandler) GenerateMaze(w http.ResponseWriter, r *http.Request) {
	size, err := queryInt(r, "size", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	generated, err := h.mazeService.GenerateMaze(r.Context(), size, r.URL.Query().Get("seed"))
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, generated, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// SolveMaze godoc
// @Summary Shortest route through a maze
// @Tags maze
// @Accept json
// @Produce json
// @Param input body solveMazeRequest true "Maze to solve"
// @Success 200 {object} maze.Solution
// @Failure 400 {object} map[string]string "MalformedGrid"
// @Router /api/maze/solve [post]
func (h *MazeHandler) SolveMaze(w http.ResponseWriter, r *http.Request) {
	var input solveMazeRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	solution, err := h.mazeService.SolveMaze(r.Context(), input.Maze)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, solution, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RunPlayer godoc
// @Summary Run one player through a maze
// @Description Plays the player through the given maze and records the run in the history.
// @Tags maze
// @Accept json
// @Produce json
// @Param input body runPlayerRequest true "Player and maze"
// @Success 200 {object} services.RunPlayerOutput
// @Failure 400 {object} map[string]string
// @Router /api/maze/run [post]
func (h *MazeHandler) RunPlayer(w http.ResponseWriter, r *http.Request) {
	var input runPlayerRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	out, err := h.mazeService.RunPlayer(r.Context(), services.RunPlayerInput{
		PlayerName: input.PlayerName,
		Maze:       input.Maze,
		Seed:       string(input.Seed),
		Strategy:   input.Strategy,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, out, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// RunTournament godoc
// @Summary Run every player and rank them
// @Description Generates a maze (or one per player in individual mode), runs all players in parallel and ranks the results.
// @Tags maze
// @Accept json
// @Produce json
// @Param input body runTournamentRequest true "Players and maze settings"
// @Success 200 {object} services.TournamentResult
// @Failure 400 {object} map[string]string
// @Router /api/maze [post]
func (h *MazeHandler) RunTournament(w http.ResponseWriter, r *http.Request) {
	var input runTournamentRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	result, err := h.mazeService.RunTournament(r.Context(), services.RunTournamentInput{
		Players:  input.Players,
		Size:     input.Size,
		Seed:     string(input.Seed),
		Strategy: input.Strategy,
		Mode:     input.Mode,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, result, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// History godoc
// @Summary Recent runs
// @Tags maze
// @Produce json
// @Param limit query int false "Number of runs" default(50)
// @Success 200 {object} map[string][]historyEntry
// @Router /api/maze/history [get]
func (h *MazeHandler) History(w http.ResponseWriter, r *http.Request) {
	limit, err := queryInt(r, "limit", 0)
	if err != nil {
		badRequestResponse(w, r, err)
		return
	}

	records, err := h.mazeService.History(r.Context(), limit)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	history := make([]historyEntry, 0, len(records))
	for _, rec := range records {
		history = append(history, historyEntry{RunRecord: rec, Ran: humanize.Time(rec.Timestamp)})
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"history": history}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Runs godoc
// @Summary Every stored run
// @Tags maze
// @Produce json
// @Success 200 {array} models.RunRecord
// @Router /api/maze/runs [get]
func (h *MazeHandler) Runs(w http.ResponseWriter, r *http.Request) {
	runs, err := h.mazeService.Runs(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, runs, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// Rankings godoc
// @Summary Stored runs ranked
// @Description Completed runs first, then higher reward, then fewer steps.
// @Tags maze
// @Produce json
// @Success 200 {array} models.RunRecord
// @Router /api/maze/rankings [get]
func (h *MazeHandler) Rankings(w http.ResponseWriter, r *http.Request) {
	rankings, err := h.mazeService.Rankings(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, rankings, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
