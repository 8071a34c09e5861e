package domain

// Order is the checkout payload. The contact record is carried as an
// explicit field; it is never an orderable item.
type Order struct {
	Items   []OrderLine  `json:"items"`
	Contact OrderContact `json:"contact"`
}

type OrderLine struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

type OrderContact struct {
	User  string `json:"user"`
	Email string `json:"email"`
	Phone string `json:"phone"`
}
