package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/docflow-io/docflow/internal/doctype"
	"github.com/docflow-io/docflow/internal/permission"
	"github.com/docflow-io/docflow/internal/store"
	"github.com/docflow-io/docflow/internal/web/middleware"
	"github.com/docflow-io/docflow/internal/web/response"
)

// maxBodyBytes caps document payloads at 1MB
const maxBodyBytes = 1 << 20

// resourceHandler serves the generated CRUD and lifecycle routes for one
// document type
type resourceHandler struct {
	ops   *store.Operations
	perms *permission.Evaluator
}

func (h *resourceHandler) authorize(r *http.Request, action doctype.Action) error {
	roles := middleware.GetUserRoles(r.Context())
	return h.perms.Check(roles, action, h.ops.DocType())
}

func (h *resourceHandler) list(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionRead); err != nil {
		response.Error(w, err)
		return
	}

	opts, err := parseListOptions(r, h.ops.DocType())
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	result, err := h.ops.List(r.Context(), opts)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, result)
}

func (h *resourceHandler) get(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionRead); err != nil {
		response.Error(w, err)
		return
	}

	doc, err := h.ops.Get(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, doc)
}

func (h *resourceHandler) create(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionCreate); err != nil {
		response.Error(w, err)
		return
	}

	input, err := decodeBody(w, r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	doc, err := h.ops.Create(r.Context(), middleware.GetUserID(r.Context()), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, doc)
}

func (h *resourceHandler) update(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionWrite); err != nil {
		response.Error(w, err)
		return
	}

	input, err := decodeBody(w, r)
	if err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	doc, err := h.ops.Update(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"), input)
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, doc)
}

func (h *resourceHandler) delete(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionDelete); err != nil {
		response.Error(w, err)
		return
	}

	if err := h.ops.Delete(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id")); err != nil {
		response.Error(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *resourceHandler) submit(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionSubmit); err != nil {
		response.Error(w, err)
		return
	}

	doc, err := h.ops.Submit(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, doc)
}

func (h *resourceHandler) cancel(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionCancel); err != nil {
		response.Error(w, err)
		return
	}

	doc, err := h.ops.Cancel(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusOK, doc)
}

func (h *resourceHandler) amend(w http.ResponseWriter, r *http.Request) {
	if err := h.authorize(r, doctype.ActionAmend); err != nil {
		response.Error(w, err)
		return
	}

	doc, err := h.ops.Amend(r.Context(), middleware.GetUserID(r.Context()), chi.URLParam(r, "id"))
	if err != nil {
		response.Error(w, err)
		return
	}
	response.JSON(w, http.StatusCreated, doc)
}

func decodeBody(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)

	var input map[string]interface{}
	decoder := json.NewDecoder(r.Body)
	if err := decoder.Decode(&input); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %v", err)
	}
	if input == nil {
		return nil, fmt.Errorf("request body must be a JSON object")
	}
	return input, nil
}

// parseListOptions reads pagination, search, and field filters from the
// query string. Unknown query keys that match no declared or standard field
// are rejected rather than silently ignored.
func parseListOptions(r *http.Request, dt *doctype.DocType) (store.ListOptions, error) {
	opts := store.ListOptions{Filters: map[string]string{}}
	query := r.URL.Query()

	for key, values := range query {
		if len(values) == 0 {
			continue
		}
		value := values[0]

		switch key {
		case "page":
			page, err := strconv.Atoi(value)
			if err != nil || page < 1 {
				return opts, fmt.Errorf("invalid page %q", value)
			}
			opts.Page = page
		case "limit":
			limit, err := strconv.Atoi(value)
			if err != nil || limit < 1 {
				return opts, fmt.Errorf("invalid limit %q", value)
			}
			opts.Limit = limit
		case "search", "q":
			opts.Search = value
		default:
			// Hidden fields never surface in payloads; they are not
			// filterable either.
			if f := dt.Field(key); f != nil && !f.Hidden {
				opts.Filters[key] = value
			} else if doctype.IsStandardFieldname(key) {
				opts.Filters[key] = value
			} else {
				return opts, fmt.Errorf("unknown filter field %q", key)
			}
		}
	}

	return opts, nil
}
