// internal/team/handler.go
package team

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"paddock/internal/apperr"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

// Routes mounts the team endpoints. Team CRUD is admin-only; everything
// else is open to admins and engineers, so staff gets the admin
// middleware stacked on the full router and admin-only routes get it a
// second time.
func (h *Handler) Routes(admin, staff func(http.Handler) http.Handler) chi.Router {
	r := chi.NewRouter()
	r.Use(staff)

	r.Get("/", h.handleList)
	r.With(admin).Post("/", h.handleCreate)
	r.Get("/{id}", h.handleGet)
	r.With(admin).Put("/{id}", h.handleUpdate)
	r.With(admin).Delete("/{id}", h.handleDelete)

	r.Patch("/{id}/budget", h.handleSetBudget)

	r.Post("/{id}/sponsors", h.handleAddSponsor)
	r.Delete("/{id}/sponsors/{sponsorId}", h.handleRemoveSponsor)
	r.Post("/{id}/contributions", h.handleAddContribution)

	r.Post("/{id}/drivers", h.handleAddDriver)
	r.Delete("/{id}/drivers/{driverId}", h.handleRemoveDriver)
	r.Post("/{id}/drivers/{driverId}/results", h.handleAddDriverResult)
	r.Get("/{id}/drivers/{driverId}/stats", h.handleDriverStats)

	r.Post("/{id}/store/purchase", h.handlePurchase)

	r.Post("/{id}/cars", h.handleAddCar)
	r.Delete("/{id}/cars/{carId}", h.handleRemoveCar)
	r.Post("/{id}/cars/{carId}/install", h.handleInstallPart)
	r.Post("/{id}/cars/{carId}/uninstall", h.handleUninstallPart)
	r.Post("/{id}/cars/{carId}/assign-driver", h.handleAssignDriver)
	r.Post("/{id}/cars/{carId}/finalize", h.handleFinalizeCar)
	r.Post("/{id}/cars/{carId}/unfinalize", h.handleUnfinalizeCar)

	r.Post("/{id}/inventory", h.handleAddInventoryItem)
	r.Delete("/{id}/inventory/{itemId}", h.handleRemoveInventoryItem)

	return r
}

func pathID(r *http.Request, name string) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, name))
	if err != nil {
		return uuid.Nil, apperr.Validation("invalid " + name)
	}
	return id, nil
}

func decode(r *http.Request, dst any) error {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		return apperr.Validation("invalid request body")
	}
	return nil
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeTeam(w http.ResponseWriter, status int, t *Team, err error) {
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, status, map[string]any{"team": t})
}

func (h *Handler) handleList(w http.ResponseWriter, r *http.Request) {
	teams, err := h.service.List(r.Context())
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"teams": teams})
}

func (h *Handler) handleGet(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.Get(r.Context(), id)
	writeTeam(w, http.StatusOK, t, err)
}

func (h *Handler) handleCreate(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name    string `json:"name"`
		Country string `json:"country"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.Create(r.Context(), req.Name, req.Country)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleUpdate(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		Name    *string `json:"name"`
		Country *string `json:"country"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.Update(r.Context(), id, req.Name, req.Country)
	writeTeam(w, http.StatusOK, t, err)
}

func (h *Handler) handleDelete(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	if err := h.service.Delete(r.Context(), id); err != nil {
		apperr.Write(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// handleSetBudget preserves the old endpoint shape but always refuses:
// the budget is derived from contributions and cannot be assigned.
func (h *Handler) handleSetBudget(w http.ResponseWriter, r *http.Request) {
	apperr.Write(w, apperr.Conflict("the team budget is derived from sponsor contributions and cannot be set directly"))
}

func (h *Handler) handleAddSponsor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		Name        string `json:"name"`
		Description string `json:"description"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.AddSponsor(r.Context(), id, req.Name, req.Description)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleRemoveSponsor(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	sponsorID, err := pathID(r, "sponsorId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.RemoveSponsor(r.Context(), id, sponsorID)
	writeTeam(w, http.StatusOK, t, err)
}

func (h *Handler) handleAddContribution(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		SponsorID   uuid.UUID `json:"sponsorId"`
		Amount      float64   `json:"amount"`
		Date        time.Time `json:"date"`
		Description string    `json:"description"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.AddContribution(r.Context(), id, req.SponsorID, req.Amount, req.Date, req.Description)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleAddDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		Name  string `json:"name"`
		Skill int    `json:"skill"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.AddDriver(r.Context(), id, req.Name, req.Skill)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleRemoveDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	driverID, err := pathID(r, "driverId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.RemoveDriver(r.Context(), id, driverID)
	writeTeam(w, http.StatusOK, t, err)
}

func (h *Handler) handleAddDriverResult(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	driverID, err := pathID(r, "driverId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		Date     time.Time `json:"date"`
		Race     string    `json:"race"`
		Position int       `json:"position"`
		Points   float64   `json:"points"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.AddDriverResult(r.Context(), id, driverID, req.Date, req.Race, req.Position, req.Points)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleDriverStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	driverID, err := pathID(r, "driverId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	stats, err := h.service.DriverStats(r.Context(), id, driverID)
	if err != nil {
		apperr.Write(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"stats": stats})
}

func (h *Handler) handlePurchase(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		PartID uuid.UUID `json:"partId"`
		Qty    int       `json:"qty"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.PurchasePart(r.Context(), id, req.PartID, req.Qty)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleAddCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		Code string `json:"code"`
		Name string `json:"name"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.AddCar(r.Context(), id, req.Code, req.Name)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleRemoveCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	carID, err := pathID(r, "carId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.RemoveCar(r.Context(), id, carID)
	writeTeam(w, http.StatusOK, t, err)
}

func (h *Handler) handleInstallPart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	carID, err := pathID(r, "carId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		InventoryItemID uuid.UUID `json:"inventoryItemId"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.InstallPart(r.Context(), id, carID, req.InventoryItemID)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleUninstallPart(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	carID, err := pathID(r, "carId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		InstalledPartID uuid.UUID `json:"installedPartId"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.UninstallPart(r.Context(), id, carID, req.InstalledPartID)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleAssignDriver(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	carID, err := pathID(r, "carId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		DriverID *uuid.UUID `json:"driverId"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.AssignDriver(r.Context(), id, carID, req.DriverID)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleFinalizeCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	carID, err := pathID(r, "carId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.FinalizeCar(r.Context(), id, carID)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleUnfinalizeCar(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	carID, err := pathID(r, "carId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.UnfinalizeCar(r.Context(), id, carID)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleAddInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	var req struct {
		PartName string  `json:"partName"`
		Category string  `json:"category"`
		Qty      int     `json:"qty"`
		UnitCost float64 `json:"unitCost"`
	}
	if err := decode(r, &req); err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.AddInventoryItem(r.Context(), id, req.PartName, req.Category, req.Qty, req.UnitCost)
	writeTeam(w, http.StatusCreated, t, err)
}

func (h *Handler) handleRemoveInventoryItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r, "id")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	itemID, err := pathID(r, "itemId")
	if err != nil {
		apperr.Write(w, err)
		return
	}
	t, err := h.service.RemoveInventoryItem(r.Context(), id, itemID)
	writeTeam(w, http.StatusOK, t, err)
}
