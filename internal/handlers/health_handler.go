package handlers

import (
	"context"
	"net/http"
	"time"

	"gorm.io/gorm"

	"github.com/polishettivamshi/mockmate-interview-simulator/internal/handoff"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/llm"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/prompts"
	"github.com/polishettivamshi/mockmate-interview-simulator/internal/utils"
)

type ReadinessCheck struct {
	Status  string `json:"status"` // "ok" | "failed"
	Message string `json:"message,omitempty"`
}

type ReadinessResponse struct {
	Status string                    `json:"status"` // "ready" | "not_ready"
	Checks map[string]ReadinessCheck `json:"checks"`
}

type HealthHandler struct {
	db       *gorm.DB
	provider llm.Provider
	prompts  *prompts.Manager
	handoff  *handoff.Store
}

func NewHealthHandler(db *gorm.DB, provider llm.Provider, pm *prompts.Manager, hs *handoff.Store) *HealthHandler {
	return &HealthHandler{db: db, provider: provider, prompts: pm, handoff: hs}
}

func (h *HealthHandler) HealthzHandler(w http.ResponseWriter, r *http.Request) {
	utils.JSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "mockmate",
		"version": "1.0.0",
	})
}

func (h *HealthHandler) ReadyzHandler(w http.ResponseWriter, r *http.Request) {
	checks := make(map[string]ReadinessCheck)
	ready := true

	fail := func(name, message string) {
		checks[name] = ReadinessCheck{Status: "failed", Message: message}
		ready = false
	}
	pass := func(name string) {
		checks[name] = ReadinessCheck{Status: "ok"}
	}

	if h.db == nil {
		fail("database", "database not initialized")
	} else if sqlDB, err := h.db.DB(); err != nil || sqlDB.Ping() != nil {
		fail("database", "database unreachable")
	} else {
		pass("database")
	}

	if h.provider == nil {
		fail("provider", "AI provider not initialized")
	} else {
		pass("provider")
	}

	if h.prompts == nil || len(h.prompts.Names()) == 0 {
		fail("prompts", "no prompt templates loaded")
	} else {
		pass("prompts")
	}

	if h.handoff == nil {
		pass("handoff") // optional component
	} else {
		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()
		if err := h.handoff.Ping(ctx); err != nil {
			fail("handoff", "redis unreachable")
		} else {
			pass("handoff")
		}
	}

	resp := ReadinessResponse{Checks: checks}
	if ready {
		resp.Status = "ready"
		utils.JSON(w, http.StatusOK, resp)
	} else {
		resp.Status = "not_ready"
		utils.JSON(w, http.StatusServiceUnavailable, resp)
	}
}
