// Package model holds the wire types shared between the storefront and the
// user, product and order services.
package model

// User is the authenticated-user snapshot returned by the user service.
type User struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

// Product is a single catalog entry served by the product service.
type Product struct {
	ID          string  `json:"id"`
	Name        string  `json:"name"`
	Price       float64 `json:"price"`
	Description string  `json:"description,omitempty"`
}

// OrderSnapshot is a point-in-time view of a cart: product id -> quantity
// plus the running total. The authoritative copy lives in the order service;
// the frontend session only ever holds a cached copy.
type OrderSnapshot struct {
	Items map[string]int `json:"items"`
	Total float64        `json:"total"`
}

// EmptyOrder returns the zero snapshot: no items, zero total.
func EmptyOrder() OrderSnapshot {
	return OrderSnapshot{Items: map[string]int{}}
}

// IsEmpty reports whether the snapshot holds no items.
func (o OrderSnapshot) IsEmpty() bool {
	return len(o.Items) == 0
}
