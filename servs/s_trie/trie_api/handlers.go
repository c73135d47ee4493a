// file: rtrie/servs/s_trie/trie_api/handlers.go
package trie_api

import (
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rskv-p/rtrie/codec"
	"github.com/rskv-p/rtrie/constant"
	"github.com/rskv-p/rtrie/pkg/x_log"
	"github.com/rskv-p/rtrie/servs/s_trie/trie_serv"
)

// putResult is the response body of PUT /api/keys/{key}.
type putResult struct {
	codec.Entry
	Replaced bool   `json:"replaced"`
	Previous string `json:"previous,omitempty"`
}

// handleList returns entries in key order; ?reverse=1 flips it and ?limit=N caps it.
func handleList(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		reverse, _ := codec.ToBool(q.Get("reverse"))
		limit := constant.DefaultListLimit
		if raw := q.Get("limit"); raw != "" {
			n, ok := codec.ToInt64(raw)
			if !ok || n <= 0 {
				writeError(w, constant.ErrBadRequest)
				return
			}
			limit = int(min(n, int64(constant.MaxListLimit)))
		}
		writeJSON(w, http.StatusOK, s.Range(reverse, limit))
	}
}

// handleGet returns the entry under {key}.
func handleGet(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := codec.ParseKey(chi.URLParam(r, "key"))
		if err != nil {
			writeError(w, err)
			return
		}
		v, err := s.Get(k)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, codec.Entry{Key: k, Value: v})
	}
}

// handlePut stores the body under {key}. A JSON object's "value" field is used when present,
// otherwise the raw body is the value.
func handlePut(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := codec.ParseKey(chi.URLParam(r, "key"))
		if err != nil {
			writeError(w, err)
			return
		}
		body, err := readBody(r)
		if err != nil {
			writeError(w, constant.ErrBadRequest)
			return
		}
		value := string(body)
		var obj map[string]any
		if codec.Unmarshal(body, &obj) == nil {
			if raw, ok := obj["value"]; ok {
				if value, ok = codec.ToString(raw); !ok {
					writeError(w, constant.ErrBadRequest)
					return
				}
			}
		}

		prev, replaced := s.Put(k, value)
		x_log.From(r.Context()).Debug().Int64("key", k).Bool("replaced", replaced).Msg("put")
		status := http.StatusCreated
		if replaced {
			status = http.StatusOK
		}
		writeJSON(w, status, putResult{
			Entry:    codec.Entry{Key: k, Value: value},
			Replaced: replaced,
			Previous: prev,
		})
	}
}

// handleDelete removes {key} and returns the removed entry.
func handleDelete(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		k, err := codec.ParseKey(chi.URLParam(r, "key"))
		if err != nil {
			writeError(w, err)
			return
		}
		v, err := s.Delete(k)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, codec.Entry{Key: k, Value: v})
	}
}

func handleFirst(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := s.First()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func handleLast(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		e, err := s.Last()
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, e)
	}
}

func handleStats(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, s.Stats())
	}
}

func handleDump(s *trie_serv.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		s.Dump(w)
	}
}

//---------------------
// Requests & responses

func readBody(r *http.Request) ([]byte, error) {
	return io.ReadAll(io.LimitReader(r.Body, 1<<20))
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	data, err := codec.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(data)
}

func writeError(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, constant.ErrNotFound):
		status = http.StatusNotFound
	case errors.Is(err, constant.ErrBadKey), errors.Is(err, constant.ErrBadRequest):
		status = http.StatusBadRequest
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}
