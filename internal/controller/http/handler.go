package http

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/KarpovAlexandrGo/todo-service/internal/entity"
	"github.com/KarpovAlexandrGo/todo-service/internal/metrics"
	"github.com/KarpovAlexandrGo/todo-service/internal/usecase"
	"github.com/KarpovAlexandrGo/todo-service/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// TodoHandler обрабатывает HTTP-запросы для работы со списками и задачами.
type TodoHandler struct {
	newUseCase usecase.Factory
	metrics    *metrics.Metrics
}

// NewTodoHandler создает новый экземпляр TodoHandler. metrics может быть nil.
func NewTodoHandler(newUseCase usecase.Factory, m *metrics.Metrics) *TodoHandler {
	return &TodoHandler{
		newUseCase: newUseCase,
		metrics:    m,
	}
}

// RegisterRoutes регистрирует маршруты списков и задач.
func (h *TodoHandler) RegisterRoutes(r chi.Router) {
	r.Route("/v1", func(r chi.Router) {
		r.Route("/lists", func(r chi.Router) {
			r.Post("/", h.CreateList)
			r.Patch("/{id}/name", h.RenameList)
		})
		r.Route("/tasks", func(r chi.Router) {
			r.Post("/", h.CreateTask)
			r.Route("/{id}", func(r chi.Router) {
				r.Patch("/title", h.UpdateTaskTitle)
				r.Patch("/description", h.UpdateTaskDescription)
				r.Patch("/deadline", h.SetTaskDeadline)
				r.Patch("/complete", h.MarkTaskCompleted)
				r.Patch("/in-progress", h.MarkTaskInProgress)
				r.Patch("/move", h.MoveTask)
				r.Delete("/", h.DeleteTask)
			})
		})
	})
}

type createListRequest struct {
	Name string `json:"name"`
}

type renameListRequest struct {
	Name string `json:"name"`
}

type createTaskRequest struct {
	ListID      uuid.UUID `json:"listId"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
}

type updateTitleRequest struct {
	Title string `json:"title"`
}

type updateDescriptionRequest struct {
	Description string `json:"description"`
}

type setDeadlineRequest struct {
	Deadline *time.Time `json:"deadline"`
}

type moveTaskRequest struct {
	ListID uuid.UUID `json:"listId"`
}

type errorResponse struct {
	Error string `json:"error"`
}

// CreateList обрабатывает создание списка.
// @Summary      Создать список
// @Description  Создает новый список задач
// @Tags         lists
// @Accept       json
// @Produce      json
// @Param        list body     createListRequest true "Данные списка"
// @Success      201  {object} entity.TaskListState
// @Failure      400  {object} errorResponse "Неверный формат данных или ошибка валидации"
// @Router       /v1/lists [post]
func (h *TodoHandler) CreateList(w http.ResponseWriter, r *http.Request) {
	var req createListRequest
	if !decode(w, r, &req) {
		return
	}

	list, err := h.newUseCase().CreateList(r.Context(), req.Name)
	if err != nil {
		h.respondWithUseCaseError(w, err)
		return
	}

	w.Header().Set("Location", "/v1/lists/"+list.ID().String())
	respondWithJSON(w, http.StatusCreated, list.State())
}

// RenameList обрабатывает переименование списка.
// @Summary      Переименовать список
// @Tags         lists
// @Accept       json
// @Param        id   path     string true "ID списка"
// @Param        list body     renameListRequest true "Новое имя"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат ID или данных"
// @Failure      404  {object} errorResponse "Список не найден"
// @Router       /v1/lists/{id}/name [patch]
func (h *TodoHandler) RenameList(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req renameListRequest
	if !decode(w, r, &req) {
		return
	}

	h.respondNoContent(w, h.newUseCase().RenameList(r.Context(), id, req.Name))
}

// CreateTask обрабатывает создание задачи в списке.
// @Summary      Создать задачу
// @Description  Создает незавершенную задачу без дедлайна в существующем списке
// @Tags         tasks
// @Accept       json
// @Produce      json
// @Param        task body     createTaskRequest true "Данные задачи"
// @Success      201  {object} entity.TodoTaskState
// @Failure      400  {object} errorResponse "Неверный формат данных или ошибка валидации"
// @Failure      404  {object} errorResponse "Список не найден"
// @Router       /v1/tasks [post]
func (h *TodoHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if !decode(w, r, &req) {
		return
	}

	task, err := h.newUseCase().CreateTask(r.Context(), req.ListID, req.Title, req.Description)
	if err != nil {
		h.respondWithUseCaseError(w, err)
		return
	}

	w.Header().Set("Location", "/v1/tasks/"+task.ID().String())
	respondWithJSON(w, http.StatusCreated, task.State())
}

// UpdateTaskTitle обрабатывает изменение заголовка.
// @Summary      Изменить заголовок задачи
// @Tags         tasks
// @Accept       json
// @Param        id   path     string true "ID задачи"
// @Param        body body     updateTitleRequest true "Новый заголовок"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат ID или данных"
// @Failure      404  {object} errorResponse "Задача не найдена"
// @Router       /v1/tasks/{id}/title [patch]
func (h *TodoHandler) UpdateTaskTitle(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateTitleRequest
	if !decode(w, r, &req) {
		return
	}

	h.respondNoContent(w, h.newUseCase().UpdateTaskTitle(r.Context(), id, req.Title))
}

// UpdateTaskDescription обрабатывает изменение описания.
// @Summary      Изменить описание задачи
// @Tags         tasks
// @Accept       json
// @Param        id   path     string true "ID задачи"
// @Param        body body     updateDescriptionRequest true "Новое описание"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат ID или данных"
// @Failure      404  {object} errorResponse "Задача не найдена"
// @Router       /v1/tasks/{id}/description [patch]
func (h *TodoHandler) UpdateTaskDescription(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req updateDescriptionRequest
	if !decode(w, r, &req) {
		return
	}

	h.respondNoContent(w, h.newUseCase().UpdateTaskDescription(r.Context(), id, req.Description))
}

// SetTaskDeadline обрабатывает установку или сброс дедлайна.
// @Summary      Установить дедлайн
// @Description  deadline в RFC 3339 или null для сброса. Дедлайн в прошлом отклоняется.
// @Tags         tasks
// @Accept       json
// @Param        id   path     string true "ID задачи"
// @Param        body body     setDeadlineRequest true "Дедлайн"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат или дедлайн в прошлом"
// @Failure      404  {object} errorResponse "Задача не найдена"
// @Router       /v1/tasks/{id}/deadline [patch]
func (h *TodoHandler) SetTaskDeadline(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req setDeadlineRequest
	if !decode(w, r, &req) {
		return
	}

	h.respondNoContent(w, h.newUseCase().SetTaskDeadline(r.Context(), id, req.Deadline))
}

// MarkTaskCompleted отмечает задачу выполненной.
// @Summary      Завершить задачу
// @Tags         tasks
// @Param        id   path     string true "ID задачи"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат ID"
// @Failure      404  {object} errorResponse "Задача не найдена"
// @Router       /v1/tasks/{id}/complete [patch]
func (h *TodoHandler) MarkTaskCompleted(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	h.respondNoContent(w, h.newUseCase().MarkTaskCompleted(r.Context(), id))
}

// MarkTaskInProgress снимает отметку о выполнении.
// @Summary      Вернуть задачу в работу
// @Tags         tasks
// @Param        id   path     string true "ID задачи"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат ID"
// @Failure      404  {object} errorResponse "Задача не найдена"
// @Router       /v1/tasks/{id}/in-progress [patch]
func (h *TodoHandler) MarkTaskInProgress(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	h.respondNoContent(w, h.newUseCase().MarkTaskInProgress(r.Context(), id))
}

// MoveTask переносит задачу в другой список.
// @Summary      Перенести задачу
// @Tags         tasks
// @Accept       json
// @Param        id   path     string true "ID задачи"
// @Param        body body     moveTaskRequest true "Целевой список"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат ID или данных"
// @Failure      404  {object} errorResponse "Задача или список не найдены"
// @Router       /v1/tasks/{id}/move [patch]
func (h *TodoHandler) MoveTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	var req moveTaskRequest
	if !decode(w, r, &req) {
		return
	}

	h.respondNoContent(w, h.newUseCase().MoveTask(r.Context(), id, req.ListID))
}

// DeleteTask обрабатывает удаление задачи. Удаление отсутствующей задачи - тоже 204.
// @Summary      Удалить задачу
// @Tags         tasks
// @Param        id   path     string true "ID задачи"
// @Success      204
// @Failure      400  {object} errorResponse "Неверный формат ID"
// @Router       /v1/tasks/{id} [delete]
func (h *TodoHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	id, ok := parseID(w, r)
	if !ok {
		return
	}

	h.respondNoContent(w, h.newUseCase().DeleteTask(r.Context(), id))
}

func (h *TodoHandler) respondNoContent(w http.ResponseWriter, err error) {
	if err != nil {
		h.respondWithUseCaseError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// respondWithUseCaseError: ValidationError -> 400, NotFoundError -> 404, остальное -> 500.
func (h *TodoHandler) respondWithUseCaseError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, entity.ErrValidation):
		h.countError("validation")
		respondWithError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, usecase.ErrNotFound):
		h.countError("not_found")
		respondWithError(w, http.StatusNotFound, err.Error())
	default:
		h.countError("internal")
		logger.Log.WithError(err).Error("Request failed")
		respondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func (h *TodoHandler) countError(kind string) {
	if h.metrics != nil {
		h.metrics.DomainError(kind)
	}
}

func parseID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		logger.Log.WithFields(logrus.Fields{"id": raw}).WithError(err).Warn("Invalid ID format")
		respondWithError(w, http.StatusBadRequest, "Invalid ID format")
		return uuid.Nil, false
	}
	return id, true
}

func decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		logger.Log.WithError(err).Warn("Failed to decode request body")
		respondWithError(w, http.StatusBadRequest, "Invalid request payload")
		return false
	}
	return true
}

func respondWithError(w http.ResponseWriter, code int, message string) {
	respondWithJSON(w, code, errorResponse{Error: message})
}

func respondWithJSON(w http.ResponseWriter, code int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if payload != nil {
		if err := json.NewEncoder(w).Encode(payload); err != nil {
			logger.Log.WithError(err).Error("Failed to encode response")
		}
	}
}
