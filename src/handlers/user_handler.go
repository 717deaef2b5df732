package handlers

import (
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

const maxUploadBytes = 5 * 1024 * 1024 // 5MB

var allowedImageExts = map[string]struct{}{
	".jpg":  {},
	".jpeg": {},
	".png":  {},
	".gif":  {},
}

func GetProfile(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to load profile for user %s: %v", userID, err)
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeData(w, http.StatusOK, user)
	}
}

func UpdateProfile(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to load profile for user %s: %v", userID, err)
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		var req models.UpdateProfileRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update profile request body for user %s: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		if req.Name != nil {
			if strings.TrimSpace(*req.Name) == "" {
				writeError(w, http.StatusBadRequest, "Name is required")
				return
			}
			user.Name = strings.TrimSpace(*req.Name)
		}
		if req.Email != nil {
			email := strings.ToLower(strings.TrimSpace(*req.Email))
			if !util.ValidateEmail(email) {
				writeError(w, http.StatusBadRequest, "Please provide a valid email")
				return
			}
			user.Email = email
		}
		if req.Currency != nil {
			user.Currency = *req.Currency
		}
		if req.MonthlyBudget != nil {
			if req.MonthlyBudget.IsNegative() {
				writeError(w, http.StatusBadRequest, "Monthly budget cannot be negative")
				return
			}
			user.MonthlyBudget = *req.MonthlyBudget
		}
		if req.BudgetAlertThreshold != nil {
			if *req.BudgetAlertThreshold < 0 || *req.BudgetAlertThreshold > 100 {
				writeError(w, http.StatusBadRequest, "Budget alert threshold must be between 0 and 100")
				return
			}
			user.BudgetAlertThreshold = *req.BudgetAlertThreshold
		}
		if req.EmailNotifications != nil {
			user.EmailNotifications = *req.EmailNotifications
		}

		updated, err := db.UpdateUser(r.Context(), pool, user)
		if err != nil {
			if strings.Contains(err.Error(), "duplicate key") {
				writeError(w, http.StatusBadRequest, "Email already in use")
				return
			}
			log.Printf("ERROR: Failed to update profile for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to update profile")
			return
		}

		log.Printf("INFO: Updated profile for user %s", userID)
		writeData(w, http.StatusOK, updated)
	}
}

// UpdateProfilePicture stores the uploaded image under a temp name, renames it
// into place, records it, and only then removes the previous file. A failed
// write or a failed DB update leaves the old picture untouched.
func UpdateProfilePicture(pool *pgxpool.Pool, uploadDir string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		r.Body = http.MaxBytesReader(w, r.Body, maxUploadBytes)
		if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
			writeError(w, http.StatusBadRequest, "File too large or invalid upload")
			return
		}

		file, header, err := r.FormFile("profilePicture")
		if err != nil {
			writeError(w, http.StatusBadRequest, "Please upload a file")
			return
		}
		defer file.Close()

		ext := strings.ToLower(filepath.Ext(header.Filename))
		if _, ok := allowedImageExts[ext]; !ok {
			writeError(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}

		sniff := make([]byte, 512)
		n, _ := file.Read(sniff)
		if !strings.HasPrefix(http.DetectContentType(sniff[:n]), "image/") {
			writeError(w, http.StatusBadRequest, "Only image files are allowed")
			return
		}
		if _, err := file.Seek(0, io.SeekStart); err != nil {
			log.Printf("ERROR: Failed to rewind upload for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to load profile for user %s: %v", userID, err)
			writeError(w, http.StatusNotFound, "User not found")
			return
		}

		dir := filepath.Join(uploadDir, "profiles")
		if err := os.MkdirAll(dir, 0o755); err != nil {
			log.Printf("ERROR: Failed to create upload dir %s: %v", dir, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}

		filename := fmt.Sprintf("user-%s-%d%s", userID, time.Now().UnixMilli(), ext)
		finalPath := filepath.Join(dir, filename)

		tmp, err := os.CreateTemp(dir, "upload-*")
		if err != nil {
			log.Printf("ERROR: Failed to create temp file in %s: %v", dir, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}
		if _, err := io.Copy(tmp, file); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			log.Printf("ERROR: Failed to write upload for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}
		if err := tmp.Sync(); err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
			log.Printf("ERROR: Failed to sync upload for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}
		tmp.Close()
		if err := os.Rename(tmp.Name(), finalPath); err != nil {
			os.Remove(tmp.Name())
			log.Printf("ERROR: Failed to move upload into place for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}

		publicPath := "/uploads/profiles/" + filename
		if err := db.UpdateProfilePicture(r.Context(), pool, userID, publicPath); err != nil {
			os.Remove(finalPath)
			log.Printf("ERROR: Failed to record profile picture for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}

		// New file is durable and recorded; the old one can go
		if user.ProfilePicture != nil {
			old := filepath.Join(uploadDir, strings.TrimPrefix(*user.ProfilePicture, "/uploads/"))
			if err := os.Remove(old); err != nil && !os.IsNotExist(err) {
				log.Printf("ERROR: Failed to remove old profile picture %s: %v", old, err)
			}
		}

		updated, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to reload profile for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to save file")
			return
		}

		log.Printf("INFO: Updated profile picture for user %s", userID)
		writeData(w, http.StatusOK, updated)
	}
}

func DeleteAccount(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		if err := db.DeleteUser(r.Context(), pool, userID); err != nil {
			log.Printf("ERROR: Failed to delete account for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to delete account")
			return
		}

		log.Printf("INFO: Deleted account for user %s", userID)
		writeData(w, http.StatusOK, map[string]any{})
	}
}
