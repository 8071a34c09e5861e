package domain

import "time"

// Cart holds an ordered sequence of product ids. Duplicates are
// allowed; each add appends a new item.
type Cart struct {
	ID        string     `bson:"_id" json:"id"`
	Items     []CartItem `bson:"items" json:"items"`
	CreatedAt time.Time  `bson:"created_at" json:"created_at"`
	UpdatedAt time.Time  `bson:"updated_at" json:"updated_at"`
}

type CartItem struct {
	ProductID int64     `bson:"product_id" json:"product_id"`
	AddedAt   time.Time `bson:"added_at" json:"added_at"`
}

// ProductIDs returns the stored ids in insertion order.
func (c *Cart) ProductIDs() []int64 {
	ids := make([]int64, len(c.Items))
	for i, item := range c.Items {
		ids[i] = item.ProductID
	}
	return ids
}
