package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/report"
	"fintrack-server/src/util"

	"github.com/jackc/pgx/v5/pgxpool"
)

// buildReportData runs the shared query+aggregate path every report format
// consumes: user scope, optional type and date range, newest first.
func buildReportData(r *http.Request, pool *pgxpool.Pool, userID, startStr, endStr, txType string) (report.Data, error) {
	filter := models.TransactionFilter{UserID: userID, Type: txType}
	if startStr != "" {
		t, err := util.ParseDate(startStr)
		if err != nil {
			return report.Data{}, errors.New("Invalid date format")
		}
		filter.StartDate = &t
	}
	if endStr != "" {
		t, err := util.ParseDate(endStr)
		if err != nil {
			return report.Data{}, errors.New("Invalid date format")
		}
		filter.EndDate = &t
	}

	transactions, err := db.ListTransactions(r.Context(), pool, filter, "t.date DESC, t.id", 0, 0)
	if err != nil {
		return report.Data{}, fmt.Errorf("list transactions: %w", err)
	}

	return report.Build(transactions, filter.StartDate, filter.EndDate, time.Now()), nil
}

func PDFReport(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		q := r.URL.Query()

		data, err := buildReportData(r, pool, userID, q.Get("startDate"), q.Get("endDate"), q.Get("type"))
		if err != nil {
			if err.Error() == "Invalid date format" {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("ERROR: Failed to build PDF report for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}

		pdf, err := report.RenderPDF(data)
		if err != nil {
			log.Printf("ERROR: Failed to render PDF report for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}

		w.Header().Set("Content-Type", "application/pdf")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=expense-report-%d.pdf", time.Now().UnixMilli()))
		w.Write(pdf)
	}
}

func CSVReport(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		q := r.URL.Query()

		data, err := buildReportData(r, pool, userID, q.Get("startDate"), q.Get("endDate"), q.Get("type"))
		if err != nil {
			if err.Error() == "Invalid date format" {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("ERROR: Failed to build CSV report for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}

		csvBody, err := report.RenderCSV(data)
		if err != nil {
			log.Printf("ERROR: Failed to render CSV report for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}

		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=expense-report-%d.csv", time.Now().UnixMilli()))
		w.Write([]byte(csvBody))
	}
}

func EmailReport(pool *pgxpool.Pool, mailer report.Mailer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		var req struct {
			StartDate string `json:"startDate"`
			EndDate   string `json:"endDate"`
			Type      string `json:"type"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode email report request body for user %s: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}

		data, err := buildReportData(r, pool, userID, req.StartDate, req.EndDate, req.Type)
		if err != nil {
			if err.Error() == "Invalid date format" {
				writeError(w, http.StatusBadRequest, err.Error())
				return
			}
			log.Printf("ERROR: Failed to build email report for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}

		htmlBody, err := report.RenderEmailHTML(data)
		if err != nil {
			log.Printf("ERROR: Failed to render email report for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to generate report")
			return
		}

		user, err := db.GetUserByID(r.Context(), pool, userID)
		if err != nil {
			log.Printf("ERROR: Failed to load user %s for email report: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to send report")
			return
		}

		if err := mailer.SendReport(r.Context(), user.Email, htmlBody); err != nil {
			log.Printf("ERROR: Failed to send report email to %s: %v", user.Email, err)
			writeError(w, http.StatusInternalServerError, "failed to send report")
			return
		}

		log.Printf("INFO: Sent report email to user %s", userID)
		writeJSON(w, http.StatusOK, map[string]any{"success": true, "message": "Report sent to your email"})
	}
}
