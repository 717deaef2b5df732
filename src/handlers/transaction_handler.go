package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	cache "fintrack-server/src/db"
	db "fintrack-server/src/db/sql"
	"fintrack-server/src/models"
	"fintrack-server/src/stats"
	"fintrack-server/src/util"

	"github.com/go-chi/chi/v5"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// parseTransactionFilter builds the user-scoped filter from query parameters.
// The user conjunct comes from the authenticated context, never the query.
func parseTransactionFilter(r *http.Request, userID string) (models.TransactionFilter, error) {
	q := r.URL.Query()
	f := models.TransactionFilter{
		UserID:     userID,
		Type:       q.Get("type"),
		CategoryID: q.Get("category"),
		Search:     q.Get("search"),
	}
	if s := q.Get("startDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, errors.New("Invalid date format")
		}
		f.StartDate = &t
	}
	if s := q.Get("endDate"); s != "" {
		t, err := util.ParseDate(s)
		if err != nil {
			return f, errors.New("Invalid date format")
		}
		f.EndDate = &t
	}
	return f, nil
}

func validateTransactionRequest(req *models.TransactionRequest) error {
	if req.Title == "" {
		return errors.New("Title is required")
	}
	if req.Amount.IsNegative() {
		return errors.New("Amount must be a positive number")
	}
	if !util.ValidateTransactionType(req.Type) {
		return errors.New("Type must be either income or expense")
	}
	if req.Category == "" {
		return errors.New("Category is required")
	}
	if req.PaymentMethod == "" {
		req.PaymentMethod = "cash"
	}
	if !util.ValidatePaymentMethod(req.PaymentMethod) {
		return errors.New("Invalid payment method")
	}
	return nil
}

// checkCategory verifies the referenced category exists and belongs to the
// requester. A type mismatch between transaction and category is accepted.
func checkCategory(r *http.Request, pool *pgxpool.Pool, userID, categoryID string) error {
	category, err := db.GetCategory(r.Context(), pool, categoryID)
	if err != nil || category.UserID != userID {
		return errors.New("Invalid category")
	}
	return nil
}

func ListTransactions(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		filter, err := parseTransactionFilter(r, userID)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		page, limit := util.ResolvePage(r.URL.Query().Get("page"), r.URL.Query().Get("limit"))
		orderBy := util.ResolveSort(r.URL.Query().Get("sortBy"))

		total, err := db.CountTransactions(r.Context(), pool, filter)
		if err != nil {
			log.Printf("ERROR: Failed to count transactions for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get transactions")
			return
		}

		transactions, err := db.ListTransactions(r.Context(), pool, filter, orderBy, limit, (page-1)*limit)
		if err != nil {
			log.Printf("ERROR: Failed to list transactions for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get transactions")
			return
		}

		writeJSON(w, http.StatusOK, map[string]any{
			"success": true,
			"count":   len(transactions),
			"total":   total,
			"page":    page,
			"pages":   util.Pages(total, limit),
			"data":    transactions,
		})
	}
}

func CreateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		var req models.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode create transaction request body for user %s: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validateTransactionRequest(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := checkCategory(r, pool, userID, req.Category); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		date := time.Now()
		if req.Date != "" {
			parsed, err := util.ParseDate(req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid date format")
				return
			}
			date = parsed
		}

		transaction, err := db.CreateTransaction(r.Context(), pool, userID, req, date)
		if err != nil {
			log.Printf("ERROR: Failed to create transaction for user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to create transaction")
			return
		}

		cache.ClearStatsCache(userID)
		log.Printf("INFO: Created transaction %s for user %s", transaction.ID, userID)
		writeData(w, http.StatusCreated, transaction)
	}
}

func GetTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		id := chi.URLParam(r, "id")

		transaction, err := db.GetTransaction(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			log.Printf("ERROR: Failed to get transaction %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to get transaction")
			return
		}
		if transaction.UserID != userID {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		writeData(w, http.StatusOK, transaction)
	}
}

func UpdateTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		id := chi.URLParam(r, "id")

		existing, err := db.GetTransaction(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			log.Printf("ERROR: Failed to get transaction %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to update transaction")
			return
		}
		if existing.UserID != userID {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		var req models.TransactionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			log.Printf("ERROR: Failed to decode update transaction request body for user %s: %v", userID, err)
			writeError(w, http.StatusBadRequest, "invalid request")
			return
		}
		if err := validateTransactionRequest(&req); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if err := checkCategory(r, pool, userID, req.Category); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}

		date := existing.Date
		if req.Date != "" {
			parsed, err := util.ParseDate(req.Date)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid date format")
				return
			}
			date = parsed
		}

		transaction, err := db.UpdateTransaction(r.Context(), pool, id, req, date)
		if err != nil {
			log.Printf("ERROR: Failed to update transaction %s for user %s: %v", id, userID, err)
			writeError(w, http.StatusInternalServerError, "failed to update transaction")
			return
		}

		cache.ClearStatsCache(userID)
		log.Printf("INFO: Updated transaction %s for user %s", id, userID)
		writeData(w, http.StatusOK, transaction)
	}
}

func DeleteTransaction(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)
		id := chi.URLParam(r, "id")

		existing, err := db.GetTransaction(r.Context(), pool, id)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				writeError(w, http.StatusNotFound, "Transaction not found")
				return
			}
			log.Printf("ERROR: Failed to get transaction %s: %v", id, err)
			writeError(w, http.StatusInternalServerError, "failed to delete transaction")
			return
		}
		if existing.UserID != userID {
			writeError(w, http.StatusUnauthorized, "Not authorized")
			return
		}

		if err := db.DeleteTransaction(r.Context(), pool, id); err != nil {
			log.Printf("ERROR: Failed to delete transaction %s for user %s: %v", id, userID, err)
			writeError(w, http.StatusInternalServerError, "failed to delete transaction")
			return
		}

		cache.ClearStatsCache(userID)
		log.Printf("INFO: Deleted transaction %s for user %s", id, userID)
		writeData(w, http.StatusOK, map[string]any{})
	}
}

// GetStats serves the summary: date-filtered totals and breakdown plus the
// always-last-6-months trend. Summaries are cached per user until the next
// transaction write.
func GetStats(pool *pgxpool.Pool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID := r.Context().Value("user_id").(string)

		q := r.URL.Query()
		filter := models.TransactionFilter{UserID: userID}
		if s := q.Get("startDate"); s != "" {
			t, err := util.ParseDate(s)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid date format")
				return
			}
			filter.StartDate = &t
		}
		if s := q.Get("endDate"); s != "" {
			t, err := util.ParseDate(s)
			if err != nil {
				writeError(w, http.StatusBadRequest, "Invalid date format")
				return
			}
			filter.EndDate = &t
		}

		cacheKey := fmt.Sprintf("stats:%s:%s:%s", userID, q.Get("startDate"), q.Get("endDate"))
		if cached, ok := cache.GetStatsCache(cacheKey); ok {
			if summary, ok := cached.(models.StatsSummary); ok {
				writeData(w, http.StatusOK, summary)
				return
			}
		}

		filtered, err := db.ListTransactions(r.Context(), pool, filter, "t.date DESC, t.id", 0, 0)
		if err != nil {
			log.Printf("ERROR: Failed to load transactions for stats, user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get stats")
			return
		}

		windowStart := stats.WindowStart(time.Now())
		trailing, err := db.ListTransactions(r.Context(), pool, models.TransactionFilter{
			UserID:    userID,
			StartDate: &windowStart,
		}, "t.date, t.id", 0, 0)
		if err != nil {
			log.Printf("ERROR: Failed to load trailing transactions for stats, user %s: %v", userID, err)
			writeError(w, http.StatusInternalServerError, "failed to get stats")
			return
		}

		summary := stats.Summarize(filtered, trailing)
		cache.SetStatsCache(userID, cacheKey, summary)
		writeData(w, http.StatusOK, summary)
	}
}
