package api

import (
	"errors"                                    // Error classification
	"net/http"                                  // HTTP status codes
	"transaction_dashboard/internal/dashboard"  // Aggregations
	"transaction_dashboard/internal/db"         // Store interface
	"transaction_dashboard/internal/middleware" // Request ids
	"transaction_dashboard/internal/query"      // Parameter validation
	"transaction_dashboard/internal/seed"       // Seed operation

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logging library
)

// Generic failure messages; details stay in the server log
const (
	msgInitializeFailed = "Failed to initialize database"
	msgSeedInProgress   = "Database initialization already in progress"
	msgListFailed       = "Error fetching transactions"
	msgStatisticsFailed = "Error fetching statistics"
	msgBarChartFailed   = "Error fetching bar chart data"
	msgPieChartFailed   = "Error fetching pie chart data"
	msgCombinedFailed   = "Error fetching combined data"
	msgSeedSucceeded    = "Database initialized with seed data"
	msgStoreUnavailable = "Database unavailable"
)

// RegisterRoutes mounts the health check and the transaction endpoints on r
func RegisterRoutes(r gin.IRouter, store db.Store, agg *dashboard.Aggregator, seeder *seed.Seeder) {
	r.GET("/healthz", HealthHandler(store)) // Health check

	group := r.Group("/transactions")
	group.GET("/initialize", InitializeHandler(seeder)) // Seed endpoint
	group.GET("/list", ListTransactionsHandler(agg))    // Paginated listing
	group.GET("/statistics", StatisticsHandler(agg))    // Monthly totals
	group.GET("/barchart", BarChartHandler(agg))        // Price histogram
	group.GET("/piechart", PieChartHandler(agg))        // Category breakdown
	group.GET("/combined", CombinedHandler(agg))        // All three monthly payloads
}

// badRequest writes a validation failure
func badRequest(c *gin.Context, err error) {
	var verr *query.ValidationError
	if errors.As(err, &verr) {
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Message})
		return
	}
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}

// serverError logs the cause and writes a generic failure
func serverError(c *gin.Context, msg string, err error, fields logrus.Fields) {
	logrus.WithFields(fields).WithFields(logrus.Fields{
		"request_id": middleware.RequestID(c), // Request id
		"error":      err.Error(),             // Error message
	}).Error(msg)
	c.JSON(http.StatusInternalServerError, gin.H{"error": msg})
}

// monthParam validates the required month, writing the 400 itself when it is invalid
func monthParam(c *gin.Context) (int, bool) {
	month, err := query.ParseMonth(c.Request.URL.Query())
	if err != nil {
		badRequest(c, err)
		return 0, false
	}
	return month, true
}

// InitializeHandler replaces the collection with the seed dataset
func InitializeHandler(seeder *seed.Seeder) gin.HandlerFunc {
	return func(c *gin.Context) {
		n, err := seeder.Run(c.Request.Context())
		if errors.Is(err, seed.ErrSeedInProgress) {
			c.JSON(http.StatusConflict, gin.H{"error": msgSeedInProgress})
			return
		}
		if err != nil {
			serverError(c, msgInitializeFailed, err, logrus.Fields{"endpoint": "initialize"})
			return
		}
		c.JSON(http.StatusOK, gin.H{"message": msgSeedSucceeded, "records": n})
	}
}

// ListTransactionsHandler returns a page of transactions, optionally filtered by month and search text
func ListTransactionsHandler(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		params, err := query.ParseListParams(c.Request.URL.Query())
		if err != nil {
			badRequest(c, err)
			return
		}
		page, err := agg.List(c.Request.Context(), params)
		if err != nil {
			serverError(c, msgListFailed, err, logrus.Fields{
				"endpoint": "list",
				"month":    params.Filter.Month,
				"search":   params.Filter.Search,
				"page":     params.Page,
			})
			return
		}
		c.JSON(http.StatusOK, page)
	}
}

// StatisticsHandler returns the sale totals of a month
func StatisticsHandler(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		month, ok := monthParam(c)
		if !ok {
			return
		}
		stats, err := agg.Statistics(c.Request.Context(), month)
		if err != nil {
			serverError(c, msgStatisticsFailed, err, logrus.Fields{"endpoint": "statistics", "month": month})
			return
		}
		c.JSON(http.StatusOK, stats)
	}
}

// BarChartHandler returns the price histogram of a month
func BarChartHandler(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		month, ok := monthParam(c)
		if !ok {
			return
		}
		bands, err := agg.BarChart(c.Request.Context(), month)
		if err != nil {
			serverError(c, msgBarChartFailed, err, logrus.Fields{"endpoint": "barchart", "month": month})
			return
		}
		c.JSON(http.StatusOK, bands)
	}
}

// PieChartHandler returns the category breakdown of a month
func PieChartHandler(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		month, ok := monthParam(c)
		if !ok {
			return
		}
		categories, err := agg.PieChart(c.Request.Context(), month)
		if err != nil {
			serverError(c, msgPieChartFailed, err, logrus.Fields{"endpoint": "piechart", "month": month})
			return
		}
		c.JSON(http.StatusOK, categories)
	}
}

// CombinedHandler returns statistics, bar chart and pie chart of a month in one payload
func CombinedHandler(agg *dashboard.Aggregator) gin.HandlerFunc {
	return func(c *gin.Context) {
		month, ok := monthParam(c)
		if !ok {
			return
		}
		payload, err := agg.Combined(c.Request.Context(), month)
		if err != nil {
			serverError(c, msgCombinedFailed, err, logrus.Fields{"endpoint": "combined", "month": month})
			return
		}
		c.JSON(http.StatusOK, payload)
	}
}

// HealthHandler reports whether the store answers
func HealthHandler(store db.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := store.Ping(c.Request.Context()); err != nil {
			logrus.WithError(err).Warn("Health check failed")
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "error": msgStoreUnavailable})
			return
		}
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	}
}
