package handlers

import (
	"net/http"

	"github.com/Dosada05/maze-tournament/services"
)

type BracketHandler struct {
	bracketService services.BracketService
}

func NewBracketHandler(bs services.BracketService) *BracketHandler {
	return &BracketHandler{
		bracketService: bs,
	}
}

type buildBracketRequest struct {
	Players []string `json:"players"`
	Format  string   `json:"format"`
}

type updateMatchRequest struct {
	MatchPath string `json:"matchPath"`
	Winner    string `json:"winner"`
}

// BuildBracket godoc
// @Summary Build a bracket from a ranking
// @Description Players are ordered best to worst; the first player is seed 1.
// @Tags bracket
// @Accept json
// @Produce json
// @Param input body buildBracketRequest true "Ranked players and optional format (SingleElimination or FixedSeeding)"
// @Success 200 {object} models.Bracket
// @Failure 400 {object} map[string]string "InsufficientPlayers, DuplicateOrEmptyName or UnknownFormat"
// @Router /api/bracket [post]
func (h *BracketHandler) BuildBracket(w http.ResponseWriter, r *http.Request) {
	var input buildBracketRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	bracket, err := h.bracketService.BuildBracket(r.Context(), services.BuildBracketInput{
		Players: input.Players,
		Format:  input.Format,
	})
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, bracket, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracket godoc
// @Summary Latest bracket
// @Tags bracket
// @Produce json
// @Success 200 {object} models.Bracket
// @Failure 404 {object} map[string]string
// @Router /api/bracket [get]
func (h *BracketHandler) GetBracket(w http.ResponseWriter, r *http.Request) {
	bracket, err := h.bracketService.GetBracket(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, bracket, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// GetBracketTree godoc
// @Summary Latest bracket as a match tree
// @Tags bracket
// @Produce json
// @Success 200 {object} models.MatchNode
// @Failure 404 {object} map[string]string
// @Router /api/bracket/tree [get]
func (h *BracketHandler) GetBracketTree(w http.ResponseWriter, r *http.Request) {
	tree, err := h.bracketService.GetBracketTree(r.Context())
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, tree, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}

// UpdateMatch godoc
// @Summary Override a match winner
// @Description Sets the winner of the match at a dotted tree path such as root.left.right. Later rounds are not recomputed.
// @Tags bracket
// @Accept json
// @Produce json
// @Param input body updateMatchRequest true "Match path and winner name"
// @Success 200 {object} map[string]interface{}
// @Failure 400 {object} map[string]string "InvalidMatchPath or WinnerNotInMatch"
// @Failure 404 {object} map[string]string
// @Router /api/bracket/match [put]
func (h *BracketHandler) UpdateMatch(w http.ResponseWriter, r *http.Request) {
	var input updateMatchRequest
	if err := readJSON(w, r, &input); err != nil {
		badRequestResponse(w, r, err)
		return
	}

	match, err := h.bracketService.SetMatchWinner(r.Context(), input.MatchPath, input.Winner)
	if err != nil {
		mapServiceErrorToHTTP(w, r, err)
		return
	}

	if err := writeJSON(w, http.StatusOK, jsonResponse{"success": true, "match": match}, nil); err != nil {
		serverErrorResponse(w, r, err)
	}
}
