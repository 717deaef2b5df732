package handlers

import (
	"encoding/json"
	"errors"
	"log"
	"net/http"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

func validateCategoryRequest(req *models.CategoryRequest) error {
	if req.Name == "" {
		return errors.New("Category name is required")
	}
	if !util.ValidateTransactionType(req.Type) {
		return errors.New("Type must be either income or expense")
	}
	if req.Color != "" && !util.ValidateHexColor(req.Color) {
		return errors.New("Color must be a valid hex color")
	}
	if req.Icon == "" {
		req.Icon = "💰"
	}
	if req.Color == "" {
		req.Color = "#3B82F6"
	}
	return nil
}

func ListCategories(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		categories, err := db.ListCategories(r.Context(), pool, userID, r.URL.Query().Get("type"))
		if err != nil {
			log.Printf("ERROR: Failed to list categories for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get categories")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"count":   len(categories),
			"data":    categories,
		})
	}
}

func GetCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		id := chi.URLParam(r, "id")

		category, err := db.GetCategory(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Category not found")
				return
			}
			log.Printf("ERROR: Failed to get category %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to get category")
			return
		}
		if category.UserID != userID {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		writeData(w, http.StatusOK, category)
	}
}

func CreateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		var req models.CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create category request body for user %s: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validateCategoryRequest(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		// Custom categories are never default
		category, err := db.CreateCategory(r.Context(), pool, &models.Category{
			ID:        uuid.New().String(),
			UserID:    userID,
			Name:      req.Name,
			Type:      req.Type,
			Icon:      req.Icon,
			Color:     req.Color,
			IsDefault: false,
		})
		if err != nil {
			log.Printf("ERROR: Failed to create category for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to create category")
			return
		}

		log.Printf("INFO: Created category %s for user %s", category.ID, userID)
		writeData(w, http.StatusCreated, category)
	}
}

func UpdateCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		id := chi.URLParam(r, "id")

		existing, err := db.GetCategory(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Category not found")
				return
			}
			log.Printf("ERROR: Failed to get category %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to update category")
			return
		}
		if existing.UserID != userID {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		if existing.IsDefault {
			writeError(w, http.StatusBadRequest, "Cannot update default categories")
			return
		}

		var req models.CategoryRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update category request body for user %s: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validateCategoryRequest(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		category, err := db.UpdateCategory(r.Context(), pool, &models.Category{
			ID:    id,
			Name:  req.Name,
			Type:  req.Type,
			Icon:  req.Icon,
			Color: req.Color,
		})
		if err != nil {
			log.Printf("ERROR: Failed to update category %s for user %s: %v", id, userID, err)
			writeError(w, http.StatusInternalServerError, "failed to update category")
			return
		}

		log.Printf("INFO: Updated category %s for user %s", id, userID)
		writeData(w, http.StatusOK, category)
	}
}

func DeleteCategory(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		id := chi.URLParam(r, "id")

		existing, err := db.GetCategory(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Category not found")
				return
			}
			log.Printf("ERROR: Failed to get category %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to delete category")
			return
		}
		if existing.UserID != userID {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}
		if existing.IsDefault {
			writeError(w, http.StatusBadRequest, "Cannot delete default categories")
			return
		}

		if err := db.DeleteCategory(r.Context(), pool, id); err != nil {
			log.Printf("ERROR: Failed to delete category %s for user %s: %v", id, userID, err)
			writeError(w, http.StatusInternalServerError, "failed to delete category")
			return
		}

		log.Printf("INFO: Deleted category %s for user %s", id, userID)
		writeData(w, http.StatusOK, map[string]any{})
	}
}
