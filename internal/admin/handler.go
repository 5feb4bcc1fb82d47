// Package admin exposes read-only operational endpoints over the identifier
// map and the resource store.
package admin

import (
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"

	"github.com/ehr/transforms/internal/idmap"
	"github.com/ehr/transforms/internal/store"
	"github.com/ehr/transforms/pkg/fhirmodels"
	"github.com/ehr/transforms/pkg/pagination"
)

type Handler struct {
	ids   *idmap.Mapper
	store store.Store
}

func NewHandler(ids *idmap.Mapper, st store.Store) *Handler {
	return &Handler{ids: ids, store: st}
}

func (h *Handler) RegisterRoutes(e *echo.Echo) {
	e.GET("/ids/reverse/:type/:id", h.ReverseLookup)
	e.GET("/ids/:scope/:type/:local", h.LookupID)
	e.GET("/resources/:scope/:type/:id", h.GetResource)
	e.GET("/resources/:scope/:type/:id/_history", h.GetHistory)
}

type idResponse struct {
	Scope        string `json:"scope"`
	ResourceType string `json:"resourceType"`
	LocalID      string `json:"localId"`
	GlobalID     string `json:"globalId"`
}

func (h *Handler) LookupID(c echo.Context) error {
	kind, err := fhirmodels.ParseKind(c.Param("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhirmodels.ErrorOutcome(err.Error()))
	}
	key := idmap.Key{Scope: c.Param("scope"), ResourceType: string(kind), LocalID: c.Param("local")}
	id, ok, err := h.ids.GetExisting(c.Request().Context(), key)
	if err != nil {
		return c.JSON(statusFor(err), fhirmodels.ErrorOutcome(err.Error()))
	}
	if !ok {
		return c.JSON(http.StatusNotFound, fhirmodels.NotFoundOutcome(string(kind), key.LocalID))
	}
	return c.JSON(http.StatusOK, idResponse{
		Scope:        key.Scope,
		ResourceType: key.ResourceType,
		LocalID:      key.LocalID,
		GlobalID:     id.String(),
	})
}

func (h *Handler) ReverseLookup(c echo.Context) error {
	kind, err := fhirmodels.ParseKind(c.Param("type"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhirmodels.ErrorOutcome(err.Error()))
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhirmodels.ErrorOutcome("invalid global id"))
	}
	key, err := h.ids.Reverse(c.Request().Context(), string(kind), id)
	if err != nil {
		if errors.Is(err, idmap.ErrNotFound) {
			return c.JSON(http.StatusNotFound, fhirmodels.NotFoundOutcome(string(kind), id.String()))
		}
		return c.JSON(statusFor(err), fhirmodels.ErrorOutcome(err.Error()))
	}
	return c.JSON(http.StatusOK, idResponse{
		Scope:        key.Scope,
		ResourceType: key.ResourceType,
		LocalID:      key.LocalID,
		GlobalID:     id.String(),
	})
}

func (h *Handler) GetResource(c echo.Context) error {
	key, err := storeKey(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhirmodels.ErrorOutcome(err.Error()))
	}
	res, err := h.store.GetCurrentVersion(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, fhirmodels.NotFoundOutcome(string(key.Kind), key.ID.String()))
		}
		return c.JSON(statusFor(err), fhirmodels.ErrorOutcome(err.Error()))
	}
	body, err := fhirmodels.Marshal(res)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, fhirmodels.ErrorOutcome(err.Error()))
	}
	return c.JSONBlob(http.StatusOK, body)
}

type historyEntry struct {
	Version    int    `json:"version"`
	Action     string `json:"action"`
	RecordedAt string `json:"recordedAt"`
}

func (h *Handler) GetHistory(c echo.Context) error {
	key, err := storeKey(c)
	if err != nil {
		return c.JSON(http.StatusBadRequest, fhirmodels.ErrorOutcome(err.Error()))
	}
	versions, err := h.store.History(c.Request().Context(), key)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return c.JSON(http.StatusNotFound, fhirmodels.NotFoundOutcome(string(key.Kind), key.ID.String()))
		}
		return c.JSON(statusFor(err), fhirmodels.ErrorOutcome(err.Error()))
	}
	out := make([]historyEntry, 0, len(versions))
	for _, v := range versions {
		out = append(out, historyEntry{
			Version:    v.Version,
			Action:     v.Action,
			RecordedAt: v.RecordedAt.UTC().Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	return c.JSON(http.StatusOK, pagination.Slice(out, pagination.FromContext(c)))
}

func storeKey(c echo.Context) (store.Key, error) {
	kind, err := fhirmodels.ParseKind(c.Param("type"))
	if err != nil {
		return store.Key{}, err
	}
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		return store.Key{}, errors.New("invalid global id")
	}
	return store.Key{Scope: c.Param("scope"), Kind: kind, ID: id}, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, idmap.ErrAmbiguousMatch):
		return http.StatusConflict
	case errors.Is(err, idmap.ErrInvalidKey):
		return http.StatusBadRequest
	case errors.Is(err, idmap.ErrUnavailable), errors.Is(err, store.ErrUnavailable):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}
