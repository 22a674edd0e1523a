package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/Dosada05/maze-tournament/brackets"
	"github.com/Dosada05/maze-tournament/maze"
	"github.com/Dosada05/maze-tournament/services"
)

type jsonResponse map[string]interface{}

// Error kinds reported in the "kind" field of error bodies.
const (
	kindBadRequest               = "BadRequest"
	kindValidationFailed         = "ValidationFailed"
	kindInvalidSize              = "InvalidSize"
	kindMalformedGrid            = "MalformedGrid"
	kindInsufficientPlayers      = "InsufficientPlayers"
	kindDuplicateOrEmptyName     = "DuplicateOrEmptyName"
	kindInvalidMatchPath         = "InvalidMatchPath"
	kindWinnerNotInMatch         = "WinnerNotInMatch"
	kindUnknownStrategy          = "UnknownStrategy"
	kindUnknownFormat            = "UnknownFormat"
	kindUnknownMode              = "UnknownMode"
	kindNotFound                 = "NotFound"
	kindGenerationRetryExhausted = "GenerationRetryExhausted"
	kindInternal                 = "Internal"
)

func readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()

	err := dec.Decode(dst)
	if err != nil {
		var syntaxError *json.SyntaxError
		var unmarshalTypeError *json.UnmarshalTypeError
		var maxBytesError *http.MaxBytesError

		switch {
		case errors.As(err, &syntaxError):
			return fmt.Errorf("body contains badly-formed JSON (at character %d)", syntaxError.Offset)
		case errors.Is(err, io.ErrUnexpectedEOF):
			return errors.New("body contains badly-formed JSON")
		case errors.As(err, &unmarshalTypeError):
			if unmarshalTypeError.Field != "" {
				return fmt.Errorf("body contains incorrect JSON type for field %q", unmarshalTypeError.Field)
			}
			return fmt.Errorf("body contains incorrect JSON type (at character %d)", unmarshalTypeError.Offset)
		case errors.Is(err, io.EOF):
			return errors.New("body must not be empty")
		case strings.HasPrefix(err.Error(), "json: unknown field "):
			fieldName := strings.TrimPrefix(err.Error(), "json: unknown field ")
			return fmt.Errorf("body contains unknown key %s", fieldName)
		case errors.As(err, &maxBytesError):
			return fmt.Errorf("body must not be larger than %d bytes", maxBytes)
		default:
			return err
		}
	}

	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return errors.New("body must only contain a single JSON value")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, data interface{}, headers http.Header) error {
	js, err := json.MarshalIndent(data, "", "\t")
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, err = w.Write(js)
	return err
}

func errorResponse(w http.ResponseWriter, r *http.Request, status int, kind string, message interface{}) {
	env := jsonResponse{"error": message, "kind": kind}
	if err := writeJSON(w, status, env, nil); err != nil {
		slog.Default().Error("failed to write error response", slog.Any("error", err))
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func serverErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	slog.Default().Error("internal server error",
		slog.String("method", r.Method),
		slog.String("path", r.URL.Path),
		slog.Any("error", err))
	message := "the server encountered a problem and could not process your request"
	errorResponse(w, r, http.StatusInternalServerError, kindInternal, message)
}

func badRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	errorResponse(w, r, http.StatusBadRequest, kindBadRequest, err.Error())
}

func notFoundResponse(w http.ResponseWriter, r *http.Request, message string) {
	errorResponse(w, r, http.StatusNotFound, kindNotFound, message)
}

// mapServiceErrorToHTTP turns engine and service errors into responses.
func mapServiceErrorToHTTP(w http.ResponseWriter, r *http.Request, err error) {
	kind := ""
	switch {
	case errors.Is(err, maze.ErrInvalidSize):
		kind = kindInvalidSize
	case errors.Is(err, maze.ErrMalformedGrid):
		kind = kindMalformedGrid
	case errors.Is(err, brackets.ErrInsufficientPlayers):
		kind = kindInsufficientPlayers
	case errors.Is(err, brackets.ErrDuplicateOrEmptyName):
		kind = kindDuplicateOrEmptyName
	case errors.Is(err, brackets.ErrInvalidMatchPath):
		kind = kindInvalidMatchPath
	case errors.Is(err, brackets.ErrWinnerNotInMatch):
		kind = kindWinnerNotInMatch
	case errors.Is(err, services.ErrUnknownStrategy):
		kind = kindUnknownStrategy
	case errors.Is(err, services.ErrUnknownFormat):
		kind = kindUnknownFormat
	case errors.Is(err, services.ErrUnknownMode):
		kind = kindUnknownMode
	case errors.Is(err, services.ErrValidationFailed):
		kind = kindValidationFailed

	case errors.Is(err, services.ErrSnapshotNotFound),
		errors.Is(err, services.ErrBracketNotFound),
		errors.Is(err, brackets.ErrEmptyBracket):
		notFoundResponse(w, r, "no bracket has been generated yet")
		return

	case errors.Is(err, maze.ErrGenerationRetryExhausted):
		slog.Default().Error("maze generation exhausted retries", slog.Any("error", err))
		errorResponse(w, r, http.StatusInternalServerError, kindGenerationRetryExhausted, err.Error())
		return

	default:
		serverErrorResponse(w, r, err)
		return
	}
	errorResponse(w, r, http.StatusBadRequest, kind, err.Error())
}

// seedParam accepts a JSON string or number.
type seedParam string

func (s *seedParam) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = ""
		return nil
	}
	if len(data) > 0 && data[0] == '"' {
		var str string
		if err := json.Unmarshal(data, &str); err != nil {
			return err
		}
		*s = seedParam(str)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("seed must be a string or a number")
	}
	*s = seedParam(n.String())
	return nil
}

func queryInt(r *http.Request, key string, fallback int) (int, error) {
	v := r.URL.Query().Get(key)
	if v == "" {
		return fallback, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("query parameter %q must be an integer", key)
	}
	return n, nil
}
