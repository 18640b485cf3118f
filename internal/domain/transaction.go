package domain

import "time" // Time for the sale date

// Transaction Model
type Transaction struct {
	ID          int64     `json:"id" bson:"id"`                   // Identifier from the seed dataset
	Title       string    `json:"title" bson:"title"`             // Product title
	Price       float64   `json:"price" bson:"price"`             // Sale price
	Description string    `json:"description" bson:"description"` // Product description
	Category    string    `json:"category" bson:"category"`       // Product category
	Image       string    `json:"image" bson:"image"`             // Image URL
	Sold        bool      `json:"sold" bson:"sold"`               // Whether the item was sold
	DateOfSale  time.Time `json:"dateOfSale" bson:"dateOfSale"`   // Date of sale
}

// Pagination describes one page of a listing
type Pagination struct {
	CurrentPage  int   `json:"currentPage"`  // Requested page
	PerPage      int   `json:"perPage"`      // Page size
	TotalPages   int   `json:"totalPages"`   // ceil(TotalRecords / PerPage)
	TotalRecords int64 `json:"totalRecords"` // Matching records before pagination
}

// TransactionPage is one page of matching transactions
type TransactionPage struct {
	Data       []Transaction `json:"data"`       // Records on this page
	Pagination Pagination    `json:"pagination"` // Pagination metadata
}

// Statistics holds the monthly sale totals
type Statistics struct {
	TotalSaleAmount float64 `json:"totalSaleAmount" bson:"totalSaleAmount"` // Sum of price over the month
	SoldItems       int64   `json:"soldItems" bson:"soldItems"`             // Records with sold=true
	NotSoldItems    int64   `json:"notSoldItems" bson:"notSoldItems"`       // Records with sold=false
}

// PriceRangeCount is one bar of the price histogram
type PriceRangeCount struct {
	PriceRange string `json:"priceRange"` // Band label, e.g. "100 - 200"
	Count      int64  `json:"count"`      // Records in the band
}

// CategoryCount is one slice of the category breakdown
type CategoryCount struct {
	Category string `json:"category" bson:"category"` // Category name
	Count    int64  `json:"count" bson:"count"`       // Records in the category
}

// Dashboard is the combined monthly payload
type Dashboard struct {
	Statistics Statistics        `json:"statistics"` // Sale totals
	BarChart   []PriceRangeCount `json:"barChart"`   // Price histogram
	PieChart   []CategoryCount   `json:"pieChart"`   // Category breakdown
}
